package flagtypes

import (
	"testing"

	"github.com/iver-wharf/wharf-core/v2/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLogLevel(t *testing.T) {
	testCases := []struct {
		input string
		want  logger.Level
	}{
		{"debug", logger.LevelDebug},
		{"D", logger.LevelDebug},
		{"5", logger.LevelDebug},
		{"info", logger.LevelInfo},
		{" Information ", logger.LevelInfo},
		{"3", logger.LevelWarn},
		{"warnings", logger.LevelWarn},
		{"e", logger.LevelError},
		{"panic", logger.LevelPanic},
	}
	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			got, err := ParseLogLevel(tc.input)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParseLogLevel_invalid(t *testing.T) {
	_, err := ParseLogLevel("loud")
	assert.Error(t, err)
}

func TestLogLevel_Set(t *testing.T) {
	level := LogLevel(logger.LevelInfo)
	require.NoError(t, level.Set("w"))
	assert.Equal(t, logger.LevelWarn, level.Level())
	assert.Equal(t, "warn", level.String())

	assert.Error(t, level.Set("nope"))
	assert.Equal(t, logger.LevelWarn, level.Level())
}

func TestCompleteLogLevel(t *testing.T) {
	completions, _ := CompleteLogLevel(nil, nil, "")
	assert.Contains(t, completions, "debug\tIncludes all logs")
	assert.Contains(t, completions, "1\tSilent, except for PANIC logs")
}

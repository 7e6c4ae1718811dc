package main

import (
	"bytes"
	"testing"

	"github.com/iver-wharf/wharf-jokes/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteConfigYAML_redactsRapidAPIKey(t *testing.T) {
	cfg := config.DefaultConfig
	cfg.Sources.RapidAPIKey = "super-secret-key"

	var buf bytes.Buffer
	require.NoError(t, writeConfigYAML(&buf, cfg))

	assert.NotContains(t, buf.String(), "super-secret-key")
	assert.Contains(t, buf.String(), redactedValue)
	assert.Equal(t, "super-secret-key", cfg.Sources.RapidAPIKey, "caller's config must be left untouched")
}

func TestRedactConfig_emptyKeyStaysEmpty(t *testing.T) {
	cfg := config.DefaultConfig
	cfg.Sources.RapidAPIKey = ""
	assert.Empty(t, redactConfig(cfg).Sources.RapidAPIKey)
}

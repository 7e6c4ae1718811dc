package flagtypes

import (
	"fmt"
	"strings"

	"github.com/iver-wharf/wharf-core/v2/pkg/logger"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

type levelAlias struct {
	level       logger.Level
	names       []string
	description string
}

// The first name of each alias is the one shown in completions and in
// String().
var levelAliases = []levelAlias{
	{logger.LevelDebug, []string{"debug", "d", "5", "debugging"}, "Includes all logs"},
	{logger.LevelInfo, []string{"info", "i", "4", "information"}, "Includes INFO, WARN, ERROR, and PANIC logs (default)"},
	{logger.LevelWarn, []string{"warn", "w", "3", "warning", "warnings"}, "Includes WARN, ERROR, and PANIC logs"},
	{logger.LevelError, []string{"error", "e", "2", "errors"}, "Includes ERROR and PANIC logs"},
	{logger.LevelPanic, []string{"panic", "p", "1", "panics"}, "Silent, except for PANIC logs"},
}

// LogLevel is a pflag.Value for picking the minimum logging level.
type LogLevel logger.Level

var _ pflag.Value = (*LogLevel)(nil)

// Level returns the logger.Level this flag value represents.
func (l LogLevel) Level() logger.Level {
	return logger.Level(l)
}

// String implements pflag.Value.
func (l *LogLevel) String() string {
	for _, alias := range levelAliases {
		if alias.level == l.Level() {
			return alias.names[0]
		}
	}
	return l.Level().String()
}

// Set implements pflag.Value.
func (l *LogLevel) Set(val string) error {
	level, err := ParseLogLevel(val)
	if err != nil {
		return err
	}
	*l = LogLevel(level)
	return nil
}

// Type implements pflag.Value.
func (l *LogLevel) Type() string {
	return "loglevel"
}

// ParseLogLevel parses a logging level by name, shorthand, or number, where
// 5 is the most verbose. The parsing is case-insensitive.
func ParseLogLevel(val string) (logger.Level, error) {
	val = strings.ToLower(strings.TrimSpace(val))
	for _, alias := range levelAliases {
		for _, name := range alias.names {
			if name == val {
				return alias.level, nil
			}
		}
	}
	var sb strings.Builder
	sb.WriteString("invalid logging level, possible values:")
	for _, alias := range levelAliases {
		fmt.Fprintf(&sb, "\n\t%s", strings.Join(alias.names, "  "))
	}
	return logger.LevelInfo, fmt.Errorf("%q: %s", val, sb.String())
}

// CompleteLogLevel is a cobra completion function for the LogLevel flag.
func CompleteLogLevel(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	completions := make([]string, 0, len(levelAliases)*2)
	for _, alias := range levelAliases {
		completions = append(completions,
			alias.names[0]+"\t"+alias.description,
			alias.names[2]+"\t"+alias.description)
	}
	return completions, cobra.ShellCompDirectiveNoFileComp
}

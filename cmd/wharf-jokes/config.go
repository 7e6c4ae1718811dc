package main

import (
	"io"
	"os"

	"github.com/iver-wharf/wharf-jokes/pkg/config"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

const redactedValue = "********"

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Prints the effective configuration as YAML",
	Long: `Prints the configuration after all config files and environment
variables have been applied, as YAML. The output can be used as a
starting point for a wharf-jokes-config.yml file.

Secrets, such as the RapidAPI key, are redacted.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return writeConfigYAML(os.Stdout, rootConfig)
	},
}

func writeConfigYAML(w io.Writer, cfg config.Config) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(redactConfig(cfg)); err != nil {
		return err
	}
	return enc.Close()
}

// redactConfig returns a copy of the config with secrets masked.
func redactConfig(cfg config.Config) config.Config {
	if cfg.Sources.RapidAPIKey != "" {
		cfg.Sources.RapidAPIKey = redactedValue
	}
	return cfg
}

func init() {
	rootCmd.AddCommand(configCmd)
}

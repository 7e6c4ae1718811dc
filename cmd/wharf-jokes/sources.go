package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/iver-wharf/wharf-jokes/pkg/aggregator"
	"github.com/iver-wharf/wharf-jokes/pkg/jokesclient"
	"github.com/spf13/cobra"
)

var (
	colorSourceName     = color.New(color.FgHiMagenta)
	colorSourceDisabled = color.New(color.FgHiBlack, color.CrossedOut)
)

var sourcesFlags = struct {
	url string
}{}

var sourcesCmd = &cobra.Command{
	Use:     "sources",
	Aliases: []string{"src"},
	Short:   "Lists the joke sources in priority order",
	Long: `Lists the configured joke sources in the order they are consulted,
together with their quotas. Sources with a quota of zero are disabled.

When the --url flag is set, the sources of a running wharf-jokes server
are listed instead.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var sources []aggregator.SourceInfo
		if sourcesFlags.url != "" {
			var err error
			client := jokesclient.Client{APIURL: sourcesFlags.url}
			sources, err = client.ListSources(rootContext)
			if err != nil {
				return err
			}
		} else {
			agg, err := newAggregator(rootConfig)
			if err != nil {
				return err
			}
			sources = agg.Sources()
		}

		if len(sources) == 0 {
			log.Info().Message("No sources configured.")
			return nil
		}

		var sb strings.Builder
		fmt.Fprintf(&sb, "Found %d sources:\n", len(sources))
		for i, src := range sources {
			if src.Enabled {
				fmt.Fprintf(&sb, "  %d. %s  quota=%d\n", i+1, colorSourceName.Sprint(src.Name), src.Quota)
			} else {
				fmt.Fprintf(&sb, "  %d. %s\n", i+1,
					colorSourceDisabled.Sprintf("%s  quota=%d (disabled)", src.Name, src.Quota))
			}
		}
		log.Info().Message(sb.String())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(sourcesCmd)

	sourcesCmd.Flags().StringVarP(&sourcesFlags.url, "url", "u", "", "Base URL of a wharf-jokes server to list the sources of")
}

package main

import (
	"os"

	"github.com/iver-wharf/wharf-jokes/pkg/jokesclient"
	"github.com/spf13/cobra"
	"gopkg.in/typ.v4/slices"
)

var getFlags = struct {
	url string
}{}

var getCmd = &cobra.Command{
	Use:   "get [count]",
	Short: "Gets jokes from a running wharf-jokes server",
	Long: `Asks a running "wharf-jokes serve" server for jokes and prints them.

The count defaults to the configured http.defaultCount.`,
	Args:              cobra.MaximumNArgs(1),
	ValidArgsFunction: completeCount,
	RunE: func(cmd *cobra.Command, args []string) error {
		count, err := parseCountArg(slices.SafeGet(args, 0))
		if err != nil {
			return err
		}
		client := jokesclient.Client{APIURL: getFlags.url}
		jokes, err := client.GetJokes(rootContext, count)
		if err != nil {
			return err
		}
		printJokes(os.Stdout, jokes, count)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(getCmd)

	getCmd.Flags().StringVarP(&getFlags.url, "url", "u", "http://localhost:8080", "Base URL of the wharf-jokes server")
}

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/iver-wharf/wharf-jokes/pkg/aggregator"
	"github.com/spf13/cobra"
	"gopkg.in/typ.v4/slices"
)

var (
	colorJokeSource = color.New(color.FgYellow)
	colorJokeText   = color.New()
	colorJokeNote   = color.New(color.FgHiBlack, color.Italic)
)

var fetchFlags = struct {
	quotas quotaFlags
}{}

var fetchCmd = &cobra.Command{
	Use:   "fetch [count]",
	Short: "Collects jokes from the joke sources and prints them",
	Long: `Collects jokes directly from the configured joke sources, the same
way as "wharf-jokes serve" would do for a single request, and prints
them.

The count defaults to the configured http.defaultCount.`,
	Args:              cobra.MaximumNArgs(1),
	ValidArgsFunction: completeCount,
	RunE: func(cmd *cobra.Command, args []string) error {
		count, err := parseCountArg(slices.SafeGet(args, 0))
		if err != nil {
			return err
		}
		cfg := rootConfig
		if err := fetchFlags.quotas.apply(cmd.Flags(), &cfg.Sources); err != nil {
			return err
		}
		agg, err := newAggregator(cfg)
		if err != nil {
			return err
		}
		jokes, err := agg.GetJokes(rootContext, count)
		if err != nil {
			return err
		}
		printJokes(os.Stdout, jokes, count)
		return nil
	},
}

func printJokes(w io.Writer, jokes []aggregator.Joke, requested int) {
	for i, joke := range jokes {
		if i > 0 {
			fmt.Fprintln(w)
		}
		colorJokeSource.Fprintf(w, "%s:\n", joke.Source)
		fmt.Fprint(w, "  ")
		colorJokeText.Fprintln(w, joke.Text)
	}
	if len(jokes) < requested {
		fmt.Fprintln(w)
		colorJokeNote.Fprintf(w, "(only got %d of %d requested jokes)\n", len(jokes), requested)
	}
}

func init() {
	rootCmd.AddCommand(fetchCmd)

	fetchFlags.quotas = addQuotaFlags(fetchCmd.Flags())
}

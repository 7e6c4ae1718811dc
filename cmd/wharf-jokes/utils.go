package main

import (
	"fmt"
	"strconv"

	"github.com/iver-wharf/wharf-core/v2/pkg/logger"
	"github.com/iver-wharf/wharf-jokes/pkg/aggregator"
	"github.com/iver-wharf/wharf-jokes/pkg/config"
	"github.com/iver-wharf/wharf-jokes/pkg/jokesource"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// quotaFlags holds one --quota-<source> flag per known source.
type quotaFlags map[string]*int

func addQuotaFlags(flags *pflag.FlagSet) quotaFlags {
	quotas := make(quotaFlags, len(config.KnownSources))
	for _, name := range config.KnownSources {
		quotas[name] = flags.Int(quotaFlagName(name), 0,
			fmt.Sprintf("Override the configured quota of the %q source. Zero disables it.", name))
	}
	return quotas
}

func quotaFlagName(source string) string {
	return "quota-" + source
}

// apply overrides the quotas in the config for each flag that was set.
func (q quotaFlags) apply(flags *pflag.FlagSet, cfg *config.SourcesConfig) error {
	for _, name := range config.KnownSources {
		if !flags.Changed(quotaFlagName(name)) {
			continue
		}
		if err := jokesource.SetQuota(cfg, name, *q[name]); err != nil {
			return err
		}
		log.Debug().
			WithString("source", name).
			WithInt("quota", *q[name]).
			Message("Overriding quota from flag.")
	}
	return nil
}

func newAggregator(cfg config.Config, extraDiag ...aggregator.Diagnostics) (*aggregator.Aggregator, error) {
	sources, err := jokesource.FromConfig(cfg.Sources, cfg.Aggregator.Order)
	if err != nil {
		return nil, fmt.Errorf("create sources: %w", err)
	}
	diag := aggregator.MultiDiagnostics{
		aggregator.NewLogDiagnostics(logger.NewScoped("AGGREGATOR")),
	}
	diag = append(diag, extraDiag...)
	return aggregator.New(sources, diag, cfg.Aggregator), nil
}

// parseCountArg parses the optional [count] argument, falling back to the
// configured default count.
func parseCountArg(arg string) (int, error) {
	if arg == "" {
		return rootConfig.HTTP.DefaultCount, nil
	}
	count, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("parse count %q: %w", arg, err)
	}
	if count <= 0 {
		return 0, fmt.Errorf("count must be positive, got %d", count)
	}
	return count, nil
}

func completeCount(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return []string{"1", "5", "10"}, cobra.ShellCompDirectiveNoFileComp
}

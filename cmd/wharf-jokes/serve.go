package main

import (
	"github.com/iver-wharf/wharf-jokes/pkg/aggregator"
	"github.com/iver-wharf/wharf-jokes/pkg/jokesapi"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
)

var serveFlags = struct {
	quotas quotaFlags
}{}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Starts serving HTTP REST API",
	Long: `Starts serving a HTTP REST API that returns jokes collected from the
configured joke sources. Prometheus metrics are served on /metrics,
either on the same address or on the separately configured
metrics.bindAddress.

You can see an offline Swagger documentation of the API by visiting
the following URL path on a running wharf-jokes server:

	/api/swagger/index.html
`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := rootConfig
		if err := serveFlags.quotas.apply(cmd.Flags(), &cfg.Sources); err != nil {
			return err
		}

		reg := prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		metrics, err := aggregator.NewMetricsDiagnostics(reg)
		if err != nil {
			return err
		}

		agg, err := newAggregator(cfg, metrics)
		if err != nil {
			return err
		}
		for _, src := range agg.Sources() {
			log.Info().
				WithString("source", src.Name).
				WithInt("quota", src.Quota).
				Message("Using source.")
		}
		return jokesapi.Serve(rootContext, agg, cfg, reg)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveFlags.quotas = addQuotaFlags(serveCmd.Flags())
}

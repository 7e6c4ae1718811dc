package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/iver-wharf/wharf-core/v2/pkg/app"
	"github.com/iver-wharf/wharf-core/v2/pkg/logger"
	"github.com/iver-wharf/wharf-core/v2/pkg/logger/consolepretty"
	"github.com/iver-wharf/wharf-jokes/internal/flagtypes"
	"github.com/iver-wharf/wharf-jokes/pkg/config"
	"github.com/spf13/cobra"
)

var log = logger.NewScoped("WHARF-JOKES")

var isLoggingInitialized bool

var rootContext, rootCancel = context.WithCancel(context.Background())
var rootConfig config.Config

var rootFlags = struct {
	loglevel   flagtypes.LogLevel
	configFile string
}{
	loglevel: flagtypes.LogLevel(logger.LevelInfo),
}

var rootCmd = &cobra.Command{
	SilenceErrors: true,
	SilenceUsage:  true,
	Use:           "wharf-jokes",
	Short:         "Aggregates jokes from multiple joke providers",
	Long: `Collects jokes from an ordered list of joke providers, such as
JokeAPI, Jokester, World of Jokes, and RSS feeds, where each provider
has a quota of how many jokes it may contribute per request.

The jokes can either be fetched directly from the command line, or
served over a HTTP REST API.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig(rootFlags.configFile)
		if err != nil {
			return err
		}
		rootConfig = cfg
		return nil
	},
}

func execute(version app.Version) {
	rootCmd.Version = versionString(version)
	go handleCancelSignals(rootCancel)
	err := rootCmd.Execute()
	rootCancel()
	if err != nil {
		initLoggingIfNeeded()
		log.Error().Message(err.Error())
		os.Exit(1)
	}
}

func versionString(v app.Version) string {
	var sb strings.Builder
	if v.Version != "" {
		sb.WriteString(v.Version)
	} else {
		sb.WriteString("v0.0.0")
	}
	if v.BuildRef != 0 {
		fmt.Fprintf(&sb, " #%d", v.BuildRef)
	}
	if v.BuildGitCommit != "" && v.BuildGitCommit != "HEAD" {
		fmt.Fprintf(&sb, " (%s)", v.BuildGitCommit)
	}
	if v.BuildDate != (time.Time{}) {
		sb.WriteString(" built ")
		sb.WriteString(v.BuildDate.Format(time.RFC1123))
	}
	return sb.String()
}

func init() {
	cobra.OnInitialize(initLogging)
	rootCmd.InitDefaultVersionFlag()

	rootCmd.PersistentFlags().VarP(&rootFlags.loglevel, "loglevel", "l", "Show debug information")
	rootCmd.RegisterFlagCompletionFunc("loglevel", flagtypes.CompleteLogLevel)
	rootCmd.PersistentFlags().StringVarP(&rootFlags.configFile, "config", "c", "",
		"Path to an additional YAML config file, read after the default config files")
}

func initLoggingIfNeeded() {
	if !isLoggingInitialized {
		initLogging()
	}
}

func initLogging() {
	level := rootFlags.loglevel.Level()
	logConfig := consolepretty.DefaultConfig
	if level != logger.LevelDebug {
		logConfig.DisableCaller = true
		logConfig.DisableDate = true
		logConfig.ScopeMinLengthAuto = false
	}
	logger.AddOutput(level, consolepretty.New(logConfig))
	log.Debug().WithStringer("loglevel", level).Message("Setting log-level.")
	isLoggingInitialized = true
}

func handleCancelSignals(cancel func()) {
	waitForCancelSignal()
	log.Info().Message("Shutting down. Press ^C again to force quit.")
	go func() {
		waitForCancelSignal()
		log.Warn().Message("Received second interrupt. Force quitting now.")
		os.Exit(2)
	}()
	cancel()
}

func waitForCancelSignal() {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	<-ch
}

package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/iver-wharf/wharf-core/v2/pkg/config"
)

// Names of the joke sources, as used in AggregatorConfig.Order.
const (
	SourceJokeAPI      = "jokeapi"
	SourceJokester     = "jokester"
	SourceWorldOfJokes = "worldofjokes"
	SourceRSS          = "rss"
)

// KnownSources lists all source names that can be referenced in
// AggregatorConfig.Order.
var KnownSources = []string{
	SourceJokeAPI,
	SourceJokester,
	SourceWorldOfJokes,
	SourceRSS,
}

// Config holds all configurable settings for wharf-jokes.
//
// The config is read in the following order:
//
// 1. File: ~/.config/iver-wharf/wharf-jokes/wharf-jokes-config.yml
//
// 2. File: ./wharf-jokes-config.yml
//
// 3. File from environment variable: WHARF_JOKES_CONFIG
//
// 4. File from the --config flag, if set.
//
// 5. Environment variables, prefixed with WHARF_JOKES
//
// Each inner struct is represented as a deeper field in the different
// configurations. For YAML they represent deeper nested maps. For environment
// variables they are joined together by underscores, such as:
//
//	WHARF_JOKES_SOURCES_JOKEAPI_QUOTA=5
//
// All environment variables must be uppercased, while YAML files are
// case-insensitive. Keeping camelCasing in YAML config files is recommended
// for consistency.
type Config struct {
	HTTP       HTTPConfig
	Metrics    MetricsConfig
	Aggregator AggregatorConfig
	Sources    SourcesConfig
}

// HTTPConfig holds settings for the HTTP server.
type HTTPConfig struct {
	CORS CORSConfig

	// BindAddress is the IP-address and port, separated by a colon, to bind
	// the HTTP server to. An IP-address of 0.0.0.0 will bind to all
	// IP-addresses.
	BindAddress string

	// DefaultCount is the number of jokes returned by GET /api/jokes when
	// no count query parameter is given.
	DefaultCount int

	// ShutdownTimeout is how long the server waits for in-flight requests
	// to finish when shutting down.
	ShutdownTimeout time.Duration
}

// CORSConfig holds settings for the HTTP server's CORS settings.
type CORSConfig struct {
	// AllowAllOrigins enables CORS and allows all hostnames and URLs in the
	// HTTP request origins when set to true. Practically speaking, this
	// results in the HTTP header "Access-Control-Allow-Origin" set to "*".
	AllowAllOrigins bool

	// AllowOrigins enables CORS and allows the list of origins in the
	// HTTP request origins when set. Practically speaking, this
	// results in the HTTP header "Access-Control-Allow-Origin".
	AllowOrigins []string
}

// MetricsConfig holds settings for the Prometheus metrics endpoint.
type MetricsConfig struct {
	// Enabled toggles the /metrics endpoint.
	Enabled bool

	// BindAddress is an optional separate address to serve /metrics on.
	// When left empty, the metrics are served on the same address as the
	// REST API.
	BindAddress string
}

// AggregatorConfig holds settings for the joke aggregator.
type AggregatorConfig struct {
	// Order is the priority order in which the sources are consulted. Only
	// sources listed here are used. Valid values are "jokeapi", "jokester",
	// "worldofjokes", and "rss".
	Order []string

	// SourceTimeout is the deadline of a single source's fetch. A value of
	// zero leaves it up to the source's own HTTP timeout.
	SourceTimeout time.Duration
}

// SourcesConfig holds settings for each joke source.
//
// A source's Quota is the maximum number of jokes it may be asked for in a
// single aggregation. A quota of zero or less disables the source.
type SourcesConfig struct {
	// RapidAPIKey is sent as the "x-rapidapi-key" header to all sources
	// hosted on RapidAPI.
	RapidAPIKey  string
	JokeAPI      JokeAPIConfig
	Jokester     JokesterConfig
	WorldOfJokes WorldOfJokesConfig
	RSS          RSSConfig
}

// JokeAPIConfig holds settings for the JokeAPI v2 source.
type JokeAPIConfig struct {
	URL      string
	Host     string
	Language string
	Quota    int
	Timeout  time.Duration
}

// JokesterConfig holds settings for the Jokester source.
type JokesterConfig struct {
	URL     string
	Host    string
	Quota   int
	Timeout time.Duration
}

// WorldOfJokesConfig holds settings for the World of Jokes source.
type WorldOfJokesConfig struct {
	URL     string
	Host    string
	Quota   int
	Timeout time.Duration
}

// RSSConfig holds settings for the RSS/Atom feed source.
type RSSConfig struct {
	// FeedURL is the RSS or Atom feed to read jokes from, one per item.
	FeedURL string
	Quota   int
	Timeout time.Duration
}

// DefaultConfig is the hard-coded default values for wharf-jokes' configs.
var DefaultConfig = Config{
	HTTP: HTTPConfig{
		CORS: CORSConfig{
			AllowAllOrigins: false,
			AllowOrigins:    []string{},
		},
		BindAddress:     "0.0.0.0:8080",
		DefaultCount:    5,
		ShutdownTimeout: 10 * time.Second,
	},
	Metrics: MetricsConfig{
		Enabled: true,
	},
	Aggregator: AggregatorConfig{
		Order: []string{
			SourceJokeAPI,
			SourceJokester,
			SourceWorldOfJokes,
			SourceRSS,
		},
	},
	Sources: SourcesConfig{
		JokeAPI: JokeAPIConfig{
			URL:      "https://jokeapi-v2.p.rapidapi.com",
			Host:     "jokeapi-v2.p.rapidapi.com",
			Language: "en",
			Timeout:  10 * time.Second,
		},
		Jokester: JokesterConfig{
			URL:     "https://jokester.p.rapidapi.com",
			Host:    "jokester.p.rapidapi.com",
			Timeout: 10 * time.Second,
		},
		WorldOfJokes: WorldOfJokesConfig{
			URL:     "https://world-of-jokes1.p.rapidapi.com",
			Host:    "world-of-jokes1.p.rapidapi.com",
			Timeout: 10 * time.Second,
		},
		RSS: RSSConfig{
			Timeout: 10 * time.Second,
		},
	},
}

// LoadConfig looks for, parses and validates the config and returns it as a
// Config object. The extraFile, if not empty, is read after all the default
// config files but before the environment variables.
func LoadConfig(extraFile string) (Config, error) {
	cfgBuilder := config.NewBuilder(DefaultConfig)

	cfgBuilder.AddConfigYAMLFile("~/.config/iver-wharf/wharf-jokes/wharf-jokes-config.yml")
	cfgBuilder.AddConfigYAMLFile("wharf-jokes-config.yml")
	if cfgFile, ok := os.LookupEnv("WHARF_JOKES_CONFIG"); ok {
		cfgBuilder.AddConfigYAMLFile(cfgFile)
	}
	if extraFile != "" {
		cfgBuilder.AddConfigYAMLFile(extraFile)
	}
	cfgBuilder.AddEnvironmentVariables("WHARF_JOKES")

	var cfg Config
	if err := cfgBuilder.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.HTTP.BindAddress == "" {
		return errors.New("http.bindAddress: must not be empty")
	}
	if c.HTTP.DefaultCount <= 0 {
		return fmt.Errorf("http.defaultCount: must be positive, got %d", c.HTTP.DefaultCount)
	}
	if c.HTTP.ShutdownTimeout < 0 {
		return fmt.Errorf("http.shutdownTimeout: must not be negative, got %s", c.HTTP.ShutdownTimeout)
	}
	if c.Aggregator.SourceTimeout < 0 {
		return fmt.Errorf("aggregator.sourceTimeout: must not be negative, got %s", c.Aggregator.SourceTimeout)
	}
	order, err := normalizeOrder(c.Aggregator.Order)
	if err != nil {
		return fmt.Errorf("aggregator.order: %w", err)
	}
	c.Aggregator.Order = order
	return nil
}

// normalizeOrder lowercases the source names and checks that each one is
// known and only listed once.
func normalizeOrder(order []string) ([]string, error) {
	normalized := make([]string, 0, len(order))
	seen := make(map[string]struct{}, len(order))
	for _, name := range order {
		name = strings.ToLower(strings.TrimSpace(name))
		if !isKnownSource(name) {
			return nil, fmt.Errorf("unknown source %q, possible values: %s",
				name, strings.Join(KnownSources, ", "))
		}
		if _, ok := seen[name]; ok {
			return nil, fmt.Errorf("source %q is listed more than once", name)
		}
		seen[name] = struct{}{}
		normalized = append(normalized, name)
	}
	return normalized, nil
}

func isKnownSource(name string) bool {
	for _, known := range KnownSources {
		if name == known {
			return true
		}
	}
	return false
}

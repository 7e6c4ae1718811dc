package jokesource

import (
	"fmt"

	"github.com/iver-wharf/wharf-jokes/pkg/aggregator"
	"github.com/iver-wharf/wharf-jokes/pkg/config"
)

// FromConfig creates the sources listed in order, in that same order. The
// names must be the ones found in config.KnownSources.
func FromConfig(cfg config.SourcesConfig, order []string) ([]aggregator.Source, error) {
	sources := make([]aggregator.Source, 0, len(order))
	for _, name := range order {
		src, err := newSource(cfg, name)
		if err != nil {
			return nil, err
		}
		sources = append(sources, src)
	}
	return sources, nil
}

func newSource(cfg config.SourcesConfig, name string) (aggregator.Source, error) {
	switch name {
	case config.SourceJokeAPI:
		return NewJokeAPI(cfg.JokeAPI, cfg.RapidAPIKey), nil
	case config.SourceJokester:
		return NewJokester(cfg.Jokester, cfg.RapidAPIKey), nil
	case config.SourceWorldOfJokes:
		return NewWorldOfJokes(cfg.WorldOfJokes, cfg.RapidAPIKey), nil
	case config.SourceRSS:
		if cfg.RSS.Quota > 0 && cfg.RSS.FeedURL == "" {
			return nil, fmt.Errorf("source %q: feedURL is required when quota is positive", name)
		}
		return NewRSS(cfg.RSS), nil
	default:
		return nil, fmt.Errorf("unknown source %q", name)
	}
}

// SetQuota overrides the quota of the named source in the config.
func SetQuota(cfg *config.SourcesConfig, name string, quota int) error {
	switch name {
	case config.SourceJokeAPI:
		cfg.JokeAPI.Quota = quota
	case config.SourceJokester:
		cfg.Jokester.Quota = quota
	case config.SourceWorldOfJokes:
		cfg.WorldOfJokes.Quota = quota
	case config.SourceRSS:
		cfg.RSS.Quota = quota
	default:
		return fmt.Errorf("unknown source %q", name)
	}
	return nil
}

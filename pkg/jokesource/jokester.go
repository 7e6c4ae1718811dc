package jokesource

import (
	"context"
	"fmt"

	"github.com/iver-wharf/wharf-jokes/pkg/aggregator"
	"github.com/iver-wharf/wharf-jokes/pkg/config"
)

const jokesterLabel = "Jokester"

// Jokester fetches jokes from the Jokester API through RapidAPI. Each request
// returns a single random joke.
type Jokester struct {
	api   rapidAPIClient
	quota int
}

// NewJokester creates a new Jokester source.
func NewJokester(cfg config.JokesterConfig, rapidAPIKey string) *Jokester {
	return &Jokester{
		api:   newRapidAPIClient(cfg.URL, cfg.Host, rapidAPIKey, cfg.Timeout),
		quota: cfg.Quota,
	}
}

// Name implements aggregator.Source.
func (s *Jokester) Name() string {
	return config.SourceJokester
}

// Quota implements aggregator.Source.
func (s *Jokester) Quota() int {
	return s.quota
}

type jokesterJoke struct {
	Joke string `json:"joke"`
}

// Fetch implements aggregator.Source.
func (s *Jokester) Fetch(ctx context.Context, limit int) ([]aggregator.Joke, error) {
	if s.quota > 0 && limit > s.quota {
		limit = s.quota
	}
	jokes := make([]aggregator.Joke, 0, limit)
	var lastErr error
	for i := 0; i < limit; i++ {
		text, err := s.randomJoke(ctx)
		if err != nil {
			lastErr = err
			log.Warn().
				WithError(err).
				WithInt("collected", len(jokes)).
				Message("Failed to fetch joke from Jokester. Returning the jokes collected so far.")
			break
		}
		jokes = append(jokes, aggregator.Joke{Text: text, Source: jokesterLabel})
	}
	if len(jokes) == 0 {
		if lastErr == nil {
			lastErr = ErrNoJokes
		}
		return nil, fmt.Errorf("jokester: %w", lastErr)
	}
	return jokes, nil
}

func (s *Jokester) randomJoke(ctx context.Context) (string, error) {
	var resp []jokesterJoke
	if err := s.api.getJSON(ctx, &resp, nil, "jokes"); err != nil {
		return "", err
	}
	if len(resp) == 0 || resp[0].Joke == "" {
		return "", ErrNoJokes
	}
	return resp[0].Joke, nil
}

package jokesource

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/iver-wharf/wharf-jokes/pkg/aggregator"
	"github.com/iver-wharf/wharf-jokes/pkg/config"
)

const worldOfJokesLabel = "WorldOfJokes"

// WorldOfJokes fetches jokes from the World of Jokes API through RapidAPI.
// A single request returns as many jokes as asked for.
type WorldOfJokes struct {
	api   rapidAPIClient
	quota int
}

// NewWorldOfJokes creates a new WorldOfJokes source.
func NewWorldOfJokes(cfg config.WorldOfJokesConfig, rapidAPIKey string) *WorldOfJokes {
	return &WorldOfJokes{
		api:   newRapidAPIClient(cfg.URL, cfg.Host, rapidAPIKey, cfg.Timeout),
		quota: cfg.Quota,
	}
}

// Name implements aggregator.Source.
func (s *WorldOfJokes) Name() string {
	return config.SourceWorldOfJokes
}

// Quota implements aggregator.Source.
func (s *WorldOfJokes) Quota() int {
	return s.quota
}

type worldOfJokesResponse struct {
	Jokes []struct {
		Joke string `json:"joke"`
	} `json:"jokes"`
}

// Fetch implements aggregator.Source.
func (s *WorldOfJokes) Fetch(ctx context.Context, limit int) ([]aggregator.Joke, error) {
	var resp worldOfJokesResponse
	query := url.Values{"limit": {strconv.Itoa(limit)}}
	if err := s.api.getJSON(ctx, &resp, query, "v1", "jokes"); err != nil {
		return nil, fmt.Errorf("worldofjokes: %w", err)
	}
	jokes := make([]aggregator.Joke, 0, limit)
	for _, j := range resp.Jokes {
		if len(jokes) == limit {
			break
		}
		if j.Joke == "" {
			continue
		}
		jokes = append(jokes, aggregator.Joke{Text: j.Joke, Source: worldOfJokesLabel})
	}
	if len(jokes) == 0 {
		return nil, fmt.Errorf("worldofjokes: %w", ErrNoJokes)
	}
	return jokes, nil
}

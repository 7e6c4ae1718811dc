package jokesource

import (
	"context"
	"fmt"
	"math/rand"
	"net/url"
	"strconv"

	"github.com/iver-wharf/wharf-jokes/pkg/aggregator"
	"github.com/iver-wharf/wharf-jokes/pkg/config"
)

const jokeAPILabel = "Joke Api 2"

// JokeAPI fetches jokes from JokeAPI v2 through RapidAPI.
//
// The API only returns a single joke per request, so the source first looks
// up the range of joke IDs available for the configured language, picks
// random IDs from it, and then requests each joke by its ID.
type JokeAPI struct {
	api      rapidAPIClient
	language string
	quota    int
	intn     func(n int) int
}

// NewJokeAPI creates a new JokeAPI source.
func NewJokeAPI(cfg config.JokeAPIConfig, rapidAPIKey string) *JokeAPI {
	return &JokeAPI{
		api:      newRapidAPIClient(cfg.URL, cfg.Host, rapidAPIKey, cfg.Timeout),
		language: cfg.Language,
		quota:    cfg.Quota,
		intn:     rand.Intn,
	}
}

// Name implements aggregator.Source.
func (s *JokeAPI) Name() string {
	return config.SourceJokeAPI
}

// Quota implements aggregator.Source.
func (s *JokeAPI) Quota() int {
	return s.quota
}

type jokeAPIInfo struct {
	Jokes struct {
		IDRange map[string][]int `json:"idRange"`
	} `json:"jokes"`
}

type jokeAPIJoke struct {
	Type     string `json:"type"`
	Joke     string `json:"joke"`
	Setup    string `json:"setup"`
	Delivery string `json:"delivery"`
}

// text returns the joke as a single line of text. Two-part jokes have their
// setup and delivery joined with a space.
func (j jokeAPIJoke) text() string {
	if j.Joke != "" {
		return j.Joke
	}
	if j.Setup != "" {
		return j.Setup + " " + j.Delivery
	}
	return ""
}

// Fetch implements aggregator.Source.
func (s *JokeAPI) Fetch(ctx context.Context, limit int) ([]aggregator.Joke, error) {
	ids, err := s.randomIDs(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("jokeapi: %w", err)
	}
	jokes := make([]aggregator.Joke, 0, len(ids))
	var lastErr error
	for _, id := range ids {
		text, err := s.jokeByID(ctx, id)
		if err != nil {
			lastErr = err
			log.Warn().
				WithError(err).
				WithInt("jokeId", id).
				WithInt("collected", len(jokes)).
				Message("Failed to fetch joke from JokeAPI. Returning the jokes collected so far.")
			break
		}
		jokes = append(jokes, aggregator.Joke{Text: text, Source: jokeAPILabel})
	}
	if len(jokes) == 0 {
		if lastErr == nil {
			lastErr = ErrNoJokes
		}
		return nil, fmt.Errorf("jokeapi: %w", lastErr)
	}
	return jokes, nil
}

// randomIDs returns up to count distinct random joke IDs available in the
// configured language.
func (s *JokeAPI) randomIDs(ctx context.Context, count int) ([]int, error) {
	var info jokeAPIInfo
	query := url.Values{"format": {"json"}}
	if err := s.api.getJSON(ctx, &info, query, "info"); err != nil {
		return nil, fmt.Errorf("get info: %w", err)
	}
	idRange, ok := info.Jokes.IDRange[s.language]
	if !ok || len(idRange) < 2 || idRange[1] <= 0 {
		log.Warn().
			WithString("language", s.language).
			Message("Unable to find any jokes for the configured language.")
		return nil, fmt.Errorf("no jokes available for language %q", s.language)
	}
	highestID := idRange[1]
	if count > highestID {
		count = highestID
	}
	if count <= 0 {
		return nil, nil
	}
	ids := make([]int, 0, count)
	seen := make(map[int]struct{}, count)
	for len(ids) < count {
		id := s.intn(highestID) + 1
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids, nil
}

// jokeByID returns the text of the joke with the given ID.
func (s *JokeAPI) jokeByID(ctx context.Context, id int) (string, error) {
	var joke jokeAPIJoke
	query := url.Values{
		"format":  {"json"},
		"idRange": {strconv.Itoa(id)},
	}
	if err := s.api.getJSON(ctx, &joke, query, "joke", "Any"); err != nil {
		return "", fmt.Errorf("get joke %d: %w", id, err)
	}
	text := joke.text()
	if text == "" {
		return "", fmt.Errorf("get joke %d: %w", id, ErrNoJokes)
	}
	return text, nil
}

package jokesource

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/iver-wharf/wharf-jokes/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sequentialIntn returns 0, 1, 2 and so on, wrapping at n.
func sequentialIntn() func(n int) int {
	next := 0
	return func(n int) int {
		v := next % n
		next++
		return v
	}
}

func newJokeAPIServer(t *testing.T, idRange map[string][]int, jokes map[string]jokeAPIJoke) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/info", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.Header.Get("x-rapidapi-key"))
		assert.Equal(t, "jokeapi.test", r.Header.Get("x-rapidapi-host"))
		var info jokeAPIInfo
		info.Jokes.IDRange = idRange
		json.NewEncoder(w).Encode(info)
	})
	mux.HandleFunc("/joke/Any", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "json", r.URL.Query().Get("format"))
		joke, ok := jokes[r.URL.Query().Get("idRange")]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		json.NewEncoder(w).Encode(joke)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newTestJokeAPI(url string) *JokeAPI {
	src := NewJokeAPI(config.JokeAPIConfig{
		URL:      url,
		Host:     "jokeapi.test",
		Language: "en",
		Quota:    5,
		Timeout:  time.Second,
	}, "test-key")
	src.intn = sequentialIntn()
	return src
}

func TestJokeAPI_Fetch(t *testing.T) {
	srv := newJokeAPIServer(t,
		map[string][]int{"en": {0, 10}},
		map[string]jokeAPIJoke{
			"1": {Type: "single", Joke: "Single joke"},
			"2": {Type: "twopart", Setup: "Why?", Delivery: "Because."},
			"3": {Type: "single", Joke: "Third joke"},
		})
	src := newTestJokeAPI(srv.URL)

	jokes, err := src.Fetch(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, jokes, 2)
	assert.Equal(t, "Single joke", jokes[0].Text)
	assert.Equal(t, "Why? Because.", jokes[1].Text)
	assert.Equal(t, "Joke Api 2", jokes[0].Source)
}

func TestJokeAPI_Fetch_stopsAtFirstMissingJoke(t *testing.T) {
	srv := newJokeAPIServer(t,
		map[string][]int{"en": {0, 10}},
		map[string]jokeAPIJoke{
			"1": {Joke: "First"},
			"3": {Joke: "Never reached"},
		})
	src := newTestJokeAPI(srv.URL)

	jokes, err := src.Fetch(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, jokes, 1)
	assert.Equal(t, "First", jokes[0].Text)
}

func TestJokeAPI_Fetch_noJokesForLanguage(t *testing.T) {
	testCases := []struct {
		name    string
		idRange map[string][]int
	}{
		{name: "language missing", idRange: map[string][]int{"de": {0, 10}}},
		{name: "zero range", idRange: map[string][]int{"en": {0, 0}}},
		{name: "malformed range", idRange: map[string][]int{"en": {5}}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			srv := newJokeAPIServer(t, tc.idRange, nil)
			src := newTestJokeAPI(srv.URL)

			jokes, err := src.Fetch(context.Background(), 2)
			assert.Error(t, err)
			assert.Empty(t, jokes)
		})
	}
}

func TestJokeAPI_Fetch_emptyJokeIsError(t *testing.T) {
	srv := newJokeAPIServer(t,
		map[string][]int{"en": {0, 10}},
		map[string]jokeAPIJoke{"1": {}})
	src := newTestJokeAPI(srv.URL)

	_, err := src.Fetch(context.Background(), 1)
	assert.ErrorIs(t, err, ErrNoJokes)
}

func TestJokeAPI_Fetch_limitedByIDRange(t *testing.T) {
	srv := newJokeAPIServer(t,
		map[string][]int{"en": {0, 2}},
		map[string]jokeAPIJoke{
			"1": {Joke: "One"},
			"2": {Joke: "Two"},
		})
	src := newTestJokeAPI(srv.URL)

	jokes, err := src.Fetch(context.Background(), 5)
	require.NoError(t, err)
	assert.Len(t, jokes, 2)
}

func TestJokeAPI_Fetch_largeIDRange(t *testing.T) {
	const highestID = 100000000
	srv := newJokeAPIServer(t,
		map[string][]int{"en": {0, highestID}},
		map[string]jokeAPIJoke{"42": {Joke: "Forty-two"}})
	src := newTestJokeAPI(srv.URL)
	var calls int
	src.intn = func(n int) int {
		calls++
		assert.Equal(t, highestID, n)
		return 41
	}

	jokes, err := src.Fetch(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, jokes, 1)
	assert.Equal(t, "Forty-two", jokes[0].Text)
	assert.Equal(t, 1, calls)
}

func TestJokeAPI_randomIDs_distinct(t *testing.T) {
	srv := newJokeAPIServer(t, map[string][]int{"en": {0, 3}}, nil)
	src := newTestJokeAPI(srv.URL)
	rolls := []int{2, 2, 0, 2, 1}
	src.intn = func(n int) int {
		v := rolls[0]
		rolls = rolls[1:]
		return v
	}

	ids, err := src.randomIDs(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, []int{3, 1, 2}, ids)
}

func TestJokeAPI_Fetch_infoFails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()
	src := newTestJokeAPI(srv.URL)

	_, err := src.Fetch(context.Background(), 1)
	assert.Error(t, err)
}

func TestJokeAPIJoke_text(t *testing.T) {
	testCases := []struct {
		name string
		joke jokeAPIJoke
		want string
	}{
		{name: "single", joke: jokeAPIJoke{Joke: "A"}, want: "A"},
		{name: "twopart", joke: jokeAPIJoke{Setup: "A", Delivery: "B"}, want: "A B"},
		{name: "single wins", joke: jokeAPIJoke{Joke: "A", Setup: "B", Delivery: "C"}, want: "A"},
		{name: "empty", joke: jokeAPIJoke{}, want: ""},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.joke.text())
		})
	}
}

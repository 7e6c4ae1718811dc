package jokesapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/iver-wharf/wharf-core/v2/pkg/problem"
	"github.com/iver-wharf/wharf-jokes/pkg/aggregator"
	"github.com/iver-wharf/wharf-jokes/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeAggregator struct {
	jokes      []aggregator.Joke
	err        error
	gotCount   int
	sourceInfo []aggregator.SourceInfo
}

func (a *fakeAggregator) GetJokes(_ context.Context, count int) ([]aggregator.Joke, error) {
	a.gotCount = count
	if count <= 0 {
		return nil, fmt.Errorf("%w: got %d", aggregator.ErrInvalidCount, count)
	}
	if a.err != nil {
		return nil, a.err
	}
	return a.jokes, nil
}

func (a *fakeAggregator) Sources() []aggregator.SourceInfo {
	return a.sourceInfo
}

func serve(t *testing.T, agg JokeAggregator, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	cfg := config.DefaultConfig.HTTP
	cfg.DefaultCount = 3
	r := NewRouter(agg, cfg)
	req := httptest.NewRequest(method, target, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestPing(t *testing.T) {
	w := serve(t, &fakeAggregator{}, http.MethodGet, "/")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"pong"}`, w.Body.String())
}

func TestGetJokes(t *testing.T) {
	agg := &fakeAggregator{jokes: []aggregator.Joke{
		{Text: "A", Source: "Jokester"},
		{Text: "B", Source: "Joke Api 2"},
	}}
	w := serve(t, agg, http.MethodGet, "/api/jokes/2")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 2, agg.gotCount)
	assert.JSONEq(t,
		`[{"text":"A","source":"Jokester"},{"text":"B","source":"Joke Api 2"}]`,
		w.Body.String())
}

func TestGetJokes_query(t *testing.T) {
	testCases := []struct {
		name      string
		target    string
		wantCount int
	}{
		{name: "default count", target: "/api/jokes", wantCount: 3},
		{name: "explicit count", target: "/api/jokes?count=7", wantCount: 7},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			agg := &fakeAggregator{jokes: []aggregator.Joke{{Text: "A", Source: "X"}}}
			w := serve(t, agg, http.MethodGet, tc.target)
			require.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, tc.wantCount, agg.gotCount)
		})
	}
}

func TestGetJokes_invalidCount(t *testing.T) {
	testCases := []struct {
		name   string
		target string
	}{
		{name: "zero path count", target: "/api/jokes/0"},
		{name: "negative path count", target: "/api/jokes/-2"},
		{name: "non-numeric path count", target: "/api/jokes/many"},
		{name: "zero query count", target: "/api/jokes?count=0"},
		{name: "non-numeric query count", target: "/api/jokes?count=lots"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := serve(t, &fakeAggregator{}, http.MethodGet, tc.target)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, w.Header().Get("Content-Type"), problem.HTTPContentType)
		})
	}
}

func TestGetJokes_unavailable(t *testing.T) {
	agg := &fakeAggregator{err: aggregator.ErrNoJokes}
	w := serve(t, agg, http.MethodGet, "/api/jokes/5")

	require.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), problem.HTTPContentType)
	var prob problem.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &prob))
	assert.Equal(t, "unable to retrieve items from the available sources", prob.Detail)
	assert.Equal(t, http.StatusServiceUnavailable, prob.Status)
}

func TestGetJokes_unexpectedError(t *testing.T) {
	agg := &fakeAggregator{err: errors.New("boom")}
	w := serve(t, agg, http.MethodGet, "/api/jokes/5")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestListSources(t *testing.T) {
	agg := &fakeAggregator{sourceInfo: []aggregator.SourceInfo{
		{Name: "jokester", Quota: 2, Enabled: true},
		{Name: "jokeapi", Quota: 0, Enabled: false},
	}}
	w := serve(t, agg, http.MethodGet, "/api/sources")

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t,
		`[{"name":"jokester","quota":2,"enabled":true},{"name":"jokeapi","quota":0,"enabled":false}]`,
		w.Body.String())
}

func TestRequestID(t *testing.T) {
	t.Run("generated when missing", func(t *testing.T) {
		w := serve(t, &fakeAggregator{}, http.MethodGet, "/")
		assert.NotEmpty(t, w.Header().Get(requestIDHeader))
	})

	t.Run("reused when given", func(t *testing.T) {
		r := NewRouter(&fakeAggregator{}, config.DefaultConfig.HTTP)
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(requestIDHeader, "abc-123")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, "abc-123", w.Header().Get(requestIDHeader))
	})
}

func TestCORS(t *testing.T) {
	testCases := []struct {
		name       string
		cors       config.CORSConfig
		origin     string
		wantOrigin string
	}{
		{
			name:       "listed origin",
			cors:       config.CORSConfig{AllowOrigins: []string{"https://example.com"}},
			origin:     "https://example.com",
			wantOrigin: "https://example.com",
		},
		{
			name:       "all origins",
			cors:       config.CORSConfig{AllowAllOrigins: true},
			origin:     "https://example.com",
			wantOrigin: "*",
		},
		{
			name:       "unlisted origin",
			cors:       config.CORSConfig{AllowOrigins: []string{"https://example.com"}},
			origin:     "https://other.example.com",
			wantOrigin: "",
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := config.DefaultConfig.HTTP
			cfg.CORS = tc.cors
			r := NewRouter(&fakeAggregator{}, cfg)

			req := httptest.NewRequest(http.MethodGet, "http://api.local/", nil)
			req.Header.Set("Origin", tc.origin)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tc.wantOrigin, w.Header().Get("Access-Control-Allow-Origin"))
		})
	}
}

func TestListenAndServe_stopsOnCancel(t *testing.T) {
	srv := &http.Server{Addr: "127.0.0.1:0", Handler: http.NotFoundHandler()}
	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() {
		errCh <- listenAndServe(ctx, srv, time.Second)
	}()

	cancel()
	select {
	case err := <-errCh:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}

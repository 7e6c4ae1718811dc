// Package jokesource contains the aggregator.Source implementations, one per
// joke provider.
package jokesource

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/iver-wharf/wharf-core/v2/pkg/logger"
	"github.com/iver-wharf/wharf-jokes/internal/urlutil"
)

var log = logger.NewScoped("JOKESOURCE")

// ErrNoJokes is returned by a source when the provider responded, but not
// with a single usable joke.
var ErrNoJokes = errors.New("provider returned no jokes")

// rapidAPIClient performs GET requests against an API hosted on RapidAPI.
type rapidAPIClient struct {
	baseURL string
	host    string
	key     string
	client  *http.Client
}

func newRapidAPIClient(baseURL, host, key string, timeout time.Duration) rapidAPIClient {
	return rapidAPIClient{
		baseURL: baseURL,
		host:    host,
		key:     key,
		client:  &http.Client{Timeout: timeout},
	}
}

// getJSON sends a GET request to the path made up of the given segments and
// decodes the JSON response body into dst.
func (c rapidAPIClient) getJSON(ctx context.Context, dst any, query url.Values, segments ...string) error {
	u, err := urlutil.JoinPath(c.baseURL, segments...)
	if err != nil {
		return err
	}
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	urlStr := u.String()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if c.key != "" {
		req.Header.Set("x-rapidapi-key", c.key)
	}
	if c.host != "" {
		req.Header.Set("x-rapidapi-host", c.host)
	}
	log.Debug().
		WithString("method", req.Method).
		WithString("url", urlStr).
		Message("")
	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("non-2xx status code: %s", resp.Status)
	}
	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

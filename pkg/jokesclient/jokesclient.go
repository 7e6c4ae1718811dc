// Package jokesclient contains a HTTP client for the wharf-jokes REST API.
package jokesclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/iver-wharf/wharf-core/v2/pkg/logger"
	"github.com/iver-wharf/wharf-core/v2/pkg/problem"
	"github.com/iver-wharf/wharf-jokes/internal/urlutil"
	"github.com/iver-wharf/wharf-jokes/pkg/aggregator"
)

var log = logger.NewScoped("JOKES-CLIENT")

// Client is a HTTP client that talks to a wharf-jokes server.
type Client struct {
	// APIURL is the base API URL used. Example value:
	// 	http://localhost:8080
	APIURL string

	// HTTPClient is the client used to send the requests. When nil, the
	// http.DefaultClient is used.
	HTTPClient *http.Client
}

// GetJokes asks the server for count jokes. The server may return fewer.
func (c Client) GetJokes(ctx context.Context, count int) ([]aggregator.Joke, error) {
	u, err := urlutil.JoinPath(c.APIURL, "api", "jokes", strconv.Itoa(count))
	if err != nil {
		return nil, err
	}
	var jokes []aggregator.Joke
	if err := c.getJSON(ctx, u, &jokes); err != nil {
		return nil, err
	}
	return jokes, nil
}

// ListSources returns the sources configured on the server, in priority
// order.
func (c Client) ListSources(ctx context.Context) ([]aggregator.SourceInfo, error) {
	u, err := urlutil.JoinPath(c.APIURL, "api", "sources")
	if err != nil {
		return nil, err
	}
	var sources []aggregator.SourceInfo
	if err := c.getJSON(ctx, u, &sources); err != nil {
		return nil, err
	}
	return sources, nil
}

// Ping pongs.
func (c Client) Ping(ctx context.Context) error {
	u, err := urlutil.JoinPath(c.APIURL)
	if err != nil {
		return err
	}
	resp, err := c.doRequest(ctx, http.MethodGet, u)
	if err != nil {
		return err
	}
	return resp.Body.Close()
}

func (c Client) getJSON(ctx context.Context, u *url.URL, dst any) error {
	resp, err := c.doRequest(ctx, http.MethodGet, u)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c Client) doRequest(ctx context.Context, method string, u *url.URL) (*http.Response, error) {
	urlStr := u.String()
	req, err := http.NewRequestWithContext(ctx, method, urlStr, nil)
	if err != nil {
		return nil, err
	}
	log.Debug().
		WithString("method", method).
		WithString("url", urlStr).
		Message("")
	resp, err := c.httpClient().Do(req)
	if err != nil {
		return nil, err
	}
	if err := parseErrorResponse(resp); err != nil {
		resp.Body.Close()
		return nil, err
	}
	return resp, nil
}

func (c Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return http.DefaultClient
}

func parseErrorResponse(resp *http.Response) error {
	if problem.IsHTTPResponse(resp) {
		prob, err := problem.ParseHTTPResponse(resp)
		if err != nil {
			return err
		}
		return prob
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("non-2xx status code: %s", resp.Status)
	}
	return nil
}

package jokesource

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/iver-wharf/wharf-jokes/pkg/config"
	"github.com/mmcdole/gofeed"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testFeed = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
<channel>
  <title>Daily Puns</title>
  <item><title>Why did the gopher cross the road?</title><description>&lt;p&gt;To get to the other side.&lt;/p&gt;</description></item>
  <item><title>Second joke</title></item>
  <item><title>Third joke</title></item>
</channel>
</rss>`

func TestRSS_Fetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		fmt.Fprint(w, testFeed)
	}))
	defer srv.Close()

	src := NewRSS(config.RSSConfig{FeedURL: srv.URL, Quota: 5, Timeout: time.Second})
	jokes, err := src.Fetch(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"Why did the gopher cross the road? To get to the other side.",
		"Second joke",
	}, jokeTexts(jokes))
	assert.Equal(t, "Daily Puns", jokes[0].Source)
}

func TestRSS_Fetch_serverError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	src := NewRSS(config.RSSConfig{FeedURL: srv.URL, Quota: 5, Timeout: time.Second})
	_, err := src.Fetch(context.Background(), 2)
	assert.Error(t, err)
}

func TestJokesFromFeed(t *testing.T) {
	feed := &gofeed.Feed{
		Items: []*gofeed.Item{
			{Title: ""},
			{Title: "Same", Description: "Same"},
			{Content: "<b>Only</b> content"},
		},
	}
	jokes := jokesFromFeed(feed, 5)
	assert.Equal(t, []string{"Same", "Only content"}, jokeTexts(jokes))
	assert.Equal(t, "RSS", jokes[0].Source)
}

func TestStripHTML(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		want  string
	}{
		{name: "plain", input: "hello", want: "hello"},
		{name: "tags", input: "<p>hello <i>world</i></p>", want: "hello world"},
		{name: "entities", input: "fish &amp; chips", want: "fish & chips"},
		{name: "whitespace", input: "  a \n\n b  ", want: "a b"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, stripHTML(tc.input))
		})
	}
}

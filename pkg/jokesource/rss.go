package jokesource

import (
	"context"
	"fmt"
	"html"
	"net/http"
	"regexp"
	"strings"

	"github.com/iver-wharf/wharf-jokes/pkg/aggregator"
	"github.com/iver-wharf/wharf-jokes/pkg/config"
	"github.com/mmcdole/gofeed"
)

const (
	rssLabel     = "RSS"
	rssUserAgent = "wharf-jokes (+https://github.com/iver-wharf/wharf-jokes)"
)

var (
	htmlTagRe    = regexp.MustCompile(`<[^>]*>`)
	whitespaceRe = regexp.MustCompile(`\s+`)
)

// RSS reads jokes from an RSS or Atom feed, one joke per feed item. The item
// title and its description are joined, which suits feeds where the title is
// the setup and the description is the punchline.
type RSS struct {
	feedURL string
	quota   int
	parser  *gofeed.Parser
}

// NewRSS creates a new RSS source.
func NewRSS(cfg config.RSSConfig) *RSS {
	parser := gofeed.NewParser()
	parser.UserAgent = rssUserAgent
	parser.Client = &http.Client{Timeout: cfg.Timeout}
	return &RSS{
		feedURL: cfg.FeedURL,
		quota:   cfg.Quota,
		parser:  parser,
	}
}

// Name implements aggregator.Source.
func (s *RSS) Name() string {
	return config.SourceRSS
}

// Quota implements aggregator.Source.
func (s *RSS) Quota() int {
	return s.quota
}

// Fetch implements aggregator.Source.
func (s *RSS) Fetch(ctx context.Context, limit int) ([]aggregator.Joke, error) {
	log.Debug().WithString("url", s.feedURL).Message("Fetching RSS feed.")
	feed, err := s.parser.ParseURLWithContext(s.feedURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("rss: fetch %s: %w", s.feedURL, err)
	}
	jokes := jokesFromFeed(feed, limit)
	if len(jokes) == 0 {
		return nil, fmt.Errorf("rss: %w", ErrNoJokes)
	}
	return jokes, nil
}

func jokesFromFeed(feed *gofeed.Feed, limit int) []aggregator.Joke {
	label := feedLabel(feed)
	var jokes []aggregator.Joke
	for _, item := range feed.Items {
		if len(jokes) == limit {
			break
		}
		text := itemText(item)
		if text == "" {
			continue
		}
		jokes = append(jokes, aggregator.Joke{Text: text, Source: label})
	}
	return jokes
}

func feedLabel(feed *gofeed.Feed) string {
	if title := strings.TrimSpace(feed.Title); title != "" {
		return title
	}
	return rssLabel
}

func itemText(item *gofeed.Item) string {
	title := stripHTML(item.Title)
	desc := stripHTML(item.Description)
	if desc == "" {
		desc = stripHTML(item.Content)
	}
	switch {
	case desc == "" || desc == title:
		return title
	case title == "":
		return desc
	default:
		return title + " " + desc
	}
}

func stripHTML(s string) string {
	s = htmlTagRe.ReplaceAllString(s, " ")
	s = html.UnescapeString(s)
	s = whitespaceRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

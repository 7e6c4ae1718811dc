package aggregator

import "context"

// Joke is a single normalized joke.
type Joke struct {
	// Text is the joke itself. Two-part jokes have their setup and delivery
	// joined by a single space.
	Text string `json:"text" example:"Why do programmers wear glasses? Because they can't C#."`
	// Source is the label of the source that produced the joke.
	Source string `json:"source" example:"Joke Api 2"`
}

// Source is an interface that is meant to be implemented for each different
// joke provider.
//
// Configuration, including the quota, is provided when constructing the
// implementing struct and must not change afterwards.
type Source interface {
	// Name returns the identifier of the source, used in diagnostics.
	Name() string

	// Quota returns the maximum number of jokes the source may be asked for
	// in a single aggregation. A quota of zero or less disables the source.
	Quota() int

	// Fetch retrieves at most limit jokes from the provider, performing any
	// necessary conversion to the Joke type.
	//
	// Fewer jokes than asked for may be returned if the provider could not
	// supply more. An error is only returned when nothing could be
	// retrieved.
	Fetch(ctx context.Context, limit int) ([]Joke, error)
}

// SourceInfo describes a configured source.
type SourceInfo struct {
	Name    string `json:"name" example:"jokeapi"`
	Quota   int    `json:"quota" example:"5"`
	Enabled bool   `json:"enabled" example:"true"`
}

package aggregator

import (
	"context"
	"errors"
	"fmt"

	"github.com/iver-wharf/wharf-jokes/pkg/config"
	"github.com/samber/lo"
	"github.com/samber/mo"
)

var (
	// ErrNoJokes is returned when none of the sources contributed a joke.
	ErrNoJokes = errors.New("unable to retrieve items from the available sources")
	// ErrInvalidCount is returned when asking for less than one joke.
	ErrInvalidCount = errors.New("requested joke count must be positive")
	// ErrSourcePanicked is reported to the diagnostics when a source's Fetch
	// panics.
	ErrSourcePanicked = errors.New("source panicked")
)

// Aggregator collects jokes from an ordered list of sources.
//
// The sources are consulted one at a time in the order they were given, and
// consulting stops as soon as enough jokes have been collected. A failing
// source only ever reduces the number of jokes returned.
type Aggregator struct {
	sources []Source
	diag    Diagnostics
	config  config.AggregatorConfig
}

// New creates a new Aggregator. The slice of sources is copied, so later
// changes to it do not affect the aggregator. A nil Diagnostics discards all
// diagnostic events.
func New(sources []Source, diag Diagnostics, cfg config.AggregatorConfig) *Aggregator {
	if diag == nil {
		diag = NopDiagnostics{}
	}
	return &Aggregator{
		sources: append([]Source(nil), sources...),
		diag:    diag,
		config:  cfg,
	}
}

// GetJokes collects up to count jokes from the sources.
//
// On success at least one and at most count jokes are returned, ordered by
// source priority and then by the order each source produced them. If no
// source contributed any joke then ErrNoJokes is returned.
func (a *Aggregator) GetJokes(ctx context.Context, count int) ([]Joke, error) {
	if count <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidCount, count)
	}
	var jokes []Joke
	for _, src := range a.sources {
		if ctx.Err() != nil {
			break
		}
		name := src.Name()
		quota := src.Quota()
		a.diag.SourceConsulted(name, quota)
		if quota <= 0 {
			a.diag.SourceSkipped(name, quota)
			continue
		}

		limit := lo.Min([]int{count - len(jokes), quota})
		fetched, err := a.fetch(ctx, src, limit).Get()
		if err != nil {
			a.diag.SourceFailed(name, err)
			continue
		}
		if len(fetched) > limit {
			a.diag.SourceOverDelivered(name, limit, len(fetched))
			fetched = fetched[:limit]
		}
		jokes = append(jokes, fetched...)
		if len(jokes) >= count {
			break
		}
	}

	if len(jokes) == 0 {
		a.diag.NoJokes(count)
		return nil, ErrNoJokes
	}
	if len(jokes) < count {
		a.diag.Shortfall(count, len(jokes))
	}
	return jokes, nil
}

// Sources returns the name and quota of each source, in priority order.
func (a *Aggregator) Sources() []SourceInfo {
	return lo.Map(a.sources, func(src Source, _ int) SourceInfo {
		quota := src.Quota()
		return SourceInfo{
			Name:    src.Name(),
			Quota:   quota,
			Enabled: quota > 0,
		}
	})
}

// fetch calls the source's Fetch, turning both returned errors and panics
// into a failed result.
func (a *Aggregator) fetch(ctx context.Context, src Source, limit int) (result mo.Result[[]Joke]) {
	if a.config.SourceTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.config.SourceTimeout)
		defer cancel()
	}
	defer func() {
		if r := recover(); r != nil {
			result = mo.Err[[]Joke](fmt.Errorf("%w: %v", ErrSourcePanicked, r))
		}
	}()
	return mo.TupleToResult(src.Fetch(ctx, limit))
}

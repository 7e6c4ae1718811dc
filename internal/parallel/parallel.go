// Package parallel runs long-lived functions side by side, such as the HTTP
// servers of wharf-jokes, and stops all of them once one fails.
package parallel

import (
	"context"
	"fmt"
)

// Func is a function declaration used in parallel runs. It is expected to
// return once the context is cancelled.
type Func func(ctx context.Context) error

type task struct {
	name string
	f    Func
}

type result struct {
	name string
	err  error
}

// Group is a list of functions to run in parallel.
type Group []task

// AddFunc adds a function to the group to later be used in the parallel call.
// The name is prepended to the error message, if any.
func (g *Group) AddFunc(name string, f Func) {
	*g = append(*g, task{name, f})
}

// RunCancelEarly runs all functions in separate goroutines and cancels the
// context given to the others as soon as one of them returns an error. It
// waits for all functions to return. The resulting error is the first error
// returned, if any.
func (g Group) RunCancelEarly(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	results := make(chan result, len(g))
	for _, t := range g {
		go func(t task) {
			results <- result{t.name, t.f(ctx)}
		}(t)
	}

	var firstErr error
	for range g {
		r := <-results
		if r.err != nil && firstErr == nil {
			firstErr = fmt.Errorf("%s: %w", r.name, r.err)
			cancel()
		}
	}
	return firstErr
}

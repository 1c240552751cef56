package resolver

import (
	"context"
	"errors"
	"math/rand/v2"

	"tweetgen/internal/catalog"
)

// RandSource draws an integer uniformly from [0, n). *rand.Rand from
// math/rand/v2 satisfies it.
type RandSource interface {
	IntN(n int) int
}

// RandFunc adapts a function to RandSource.
type RandFunc func(n int) int

// IntN calls f.
func (f RandFunc) IntN(n int) int { return f(n) }

// Local picks a random candidate from the catalog.
type Local struct {
	catalog *catalog.Catalog
	rand    RandSource
}

// LocalOption configures a Local resolver.
type LocalOption func(*Local)

// WithRandSource injects the random source. Tests pass a fixed source to
// make selection deterministic.
func WithRandSource(src RandSource) LocalOption {
	return func(l *Local) { l.rand = src }
}

// NewLocal returns a resolver backed by cat. The default random source
// is the goroutine-safe top-level generator of math/rand/v2.
func NewLocal(cat *catalog.Catalog, opts ...LocalOption) *Local {
	l := &Local{
		catalog: cat,
		rand:    RandFunc(rand.IntN),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Resolve returns one candidate of categoryID chosen uniformly at random.
// Calls are independent: nothing is remembered between them.
func (l *Local) Resolve(_ context.Context, categoryID string) (string, error) {
	cat, err := l.catalog.Find(categoryID)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			return "", failure(ErrCategoryNotFound, categoryID, nil)
		}
		return "", err
	}

	n := len(cat.Candidates)
	if n == 0 {
		return "", failure(ErrEmptyCandidateSet, categoryID, nil)
	}

	i := l.rand.IntN(n)
	if i < 0 || i >= n {
		// A broken injected source must not panic the caller.
		i = ((i % n) + n) % n
	}
	return cat.Candidates[i], nil
}

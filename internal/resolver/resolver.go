// Package resolver produces one tweet for a category id.
//
// Two strategies implement the same Resolver contract: Local draws a
// uniformly random candidate from the catalog, Remote asks the tweet
// service over HTTP. Which one is used is decided once, at construction,
// from configuration.
package resolver

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"tweetgen/internal/catalog"

	"go.uber.org/zap"
)

// Resolver turns a category id into a tweet. A nil error means the
// string is the result; otherwise the error is a *Error.
type Resolver interface {
	Resolve(ctx context.Context, categoryID string) (string, error)
}

// Func adapts a plain function to Resolver.
type Func func(ctx context.Context, categoryID string) (string, error)

// Resolve calls f.
func (f Func) Resolve(ctx context.Context, categoryID string) (string, error) {
	return f(ctx, categoryID)
}

// Mode selects the resolution strategy.
type Mode string

const (
	ModeLocal  Mode = "local"
	ModeRemote Mode = "remote"
)

// Options configures New.
type Options struct {
	Mode Mode

	// Remote mode.
	Endpoint     string
	Timeout      time.Duration
	MissingTweet MissingTweetPolicy
	FallbackText string
	HTTPClient   *http.Client
	Logger       *zap.Logger

	// Local mode. Nil means math/rand/v2.
	RandSource RandSource
}

// New builds the resolver selected by opts.Mode. The catalog is required
// for local mode and ignored in remote mode.
func New(opts Options, cat *catalog.Catalog) (Resolver, error) {
	switch opts.Mode {
	case ModeLocal, "":
		if cat == nil {
			return nil, fmt.Errorf("local resolver requires a catalog")
		}
		var lopts []LocalOption
		if opts.RandSource != nil {
			lopts = append(lopts, WithRandSource(opts.RandSource))
		}
		return NewLocal(cat, lopts...), nil

	case ModeRemote:
		if opts.Endpoint == "" {
			return nil, fmt.Errorf("remote resolver requires an endpoint")
		}
		var ropts []RemoteOption
		if opts.HTTPClient != nil {
			ropts = append(ropts, WithHTTPClient(opts.HTTPClient))
		} else if opts.Timeout > 0 {
			ropts = append(ropts, WithTimeout(opts.Timeout))
		}
		if opts.MissingTweet != "" {
			policy, err := ParseMissingTweetPolicy(string(opts.MissingTweet))
			if err != nil {
				return nil, err
			}
			ropts = append(ropts, WithMissingTweetPolicy(policy))
		}
		if opts.FallbackText != "" {
			ropts = append(ropts, WithFallbackText(opts.FallbackText))
		}
		if opts.Logger != nil {
			ropts = append(ropts, WithLogger(opts.Logger))
		}
		return NewRemote(opts.Endpoint, ropts...), nil

	default:
		return nil, fmt.Errorf("unknown resolver mode: %q (valid: %s, %s)", opts.Mode, ModeLocal, ModeRemote)
	}
}

package resolver

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

// DefaultEndpoint is where the tweet service listens out of the box.
const DefaultEndpoint = "http://localhost:8080/api/v1/tweet"

// DefaultFallbackText replaces a missing tweet under MissingTweetFallback.
const DefaultFallbackText = "No tweet was generated"

// maxResponseBytes bounds how much of a response body is read.
const maxResponseBytes = 64 << 10

// MissingTweetPolicy decides what a well-formed response without a tweet
// means.
type MissingTweetPolicy string

const (
	// MissingTweetFallback substitutes the fallback text and succeeds.
	MissingTweetFallback MissingTweetPolicy = "fallback"
	// MissingTweetError fails with ErrMalformedResponse.
	MissingTweetError MissingTweetPolicy = "error"
)

// ParseMissingTweetPolicy validates a policy name from configuration.
func ParseMissingTweetPolicy(s string) (MissingTweetPolicy, error) {
	switch p := MissingTweetPolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case MissingTweetFallback, MissingTweetError:
		return p, nil
	case "":
		return MissingTweetFallback, nil
	default:
		return "", fmt.Errorf("invalid missing tweet policy: %q (valid: %s, %s)", s, MissingTweetFallback, MissingTweetError)
	}
}

// TweetRequest is the request body of the tweet service.
type TweetRequest struct {
	Category string `json:"category"`
}

// TweetResponse is the success body of the tweet service.
type TweetResponse struct {
	Tweet string `json:"tweet"`
}

// wireResponse distinguishes an absent tweet from an empty one.
type wireResponse struct {
	Tweet *string `json:"tweet"`
}

// Remote asks the tweet service for a tweet.
type Remote struct {
	endpoint     string
	httpClient   *http.Client
	missing      MissingTweetPolicy
	fallbackText string
	logger       *zap.Logger
}

// RemoteOption configures a Remote resolver.
type RemoteOption func(*Remote)

// WithHTTPClient replaces the HTTP client. Tests inject a client whose
// transport is stubbed.
func WithHTTPClient(c *http.Client) RemoteOption {
	return func(r *Remote) { r.httpClient = c }
}

// WithTimeout bounds each request. A request that times out fails with
// ErrRemoteUnavailable.
func WithTimeout(d time.Duration) RemoteOption {
	return func(r *Remote) { r.httpClient = &http.Client{Timeout: d} }
}

// WithMissingTweetPolicy sets how a response without a tweet is treated.
func WithMissingTweetPolicy(p MissingTweetPolicy) RemoteOption {
	return func(r *Remote) { r.missing = p }
}

// WithFallbackText sets the text used under MissingTweetFallback.
func WithFallbackText(s string) RemoteOption {
	return func(r *Remote) { r.fallbackText = s }
}

// WithLogger sets a logger for request diagnostics.
func WithLogger(l *zap.Logger) RemoteOption {
	return func(r *Remote) { r.logger = l }
}

// NewRemote returns a resolver that posts to endpoint.
func NewRemote(endpoint string, opts ...RemoteOption) *Remote {
	r := &Remote{
		endpoint:     endpoint,
		httpClient:   &http.Client{Timeout: 10 * time.Second},
		missing:      MissingTweetFallback,
		fallbackText: DefaultFallbackText,
		logger:       zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Endpoint returns the configured service address.
func (r *Remote) Endpoint() string { return r.endpoint }

// Resolve sends exactly one request. It never retries.
func (r *Remote) Resolve(ctx context.Context, categoryID string) (string, error) {
	body, err := json.Marshal(TweetRequest{Category: categoryID})
	if err != nil {
		return "", failure(ErrRemoteUnavailable, categoryID, fmt.Errorf("failed to marshal request: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", failure(ErrRemoteUnavailable, categoryID, fmt.Errorf("failed to create request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := r.httpClient.Do(req)
	if err != nil {
		r.logger.Debug("Tweet request failed",
			zap.String("category", categoryID),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err))
		return "", failure(ErrRemoteUnavailable, categoryID, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return "", failure(ErrRemoteUnavailable, categoryID, fmt.Errorf("failed to read response: %w", err))
	}

	r.logger.Debug("Tweet response",
		zap.String("category", categoryID),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		e := failure(ErrRemoteRejected, categoryID, nil)
		e.StatusCode = resp.StatusCode
		if msg := strings.TrimSpace(string(data)); msg != "" {
			e.Err = fmt.Errorf("%s", truncate(msg, 200))
		}
		return "", e
	}

	var wr wireResponse
	if err := json.Unmarshal(data, &wr); err != nil {
		return "", failure(ErrMalformedResponse, categoryID, fmt.Errorf("failed to parse response: %w", err))
	}

	if wr.Tweet == nil || *wr.Tweet == "" {
		if r.missing == MissingTweetError {
			return "", failure(ErrMalformedResponse, categoryID, fmt.Errorf("response has no tweet field"))
		}
		r.logger.Warn("Tweet service returned no tweet, using fallback", zap.String("category", categoryID))
		return r.fallbackText, nil
	}
	return *wr.Tweet, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

// Package httpclient implements the single HTTP Fetcher shared by every
// source adapter: bounded retries, a backoff that grows linearly with the
// attempt number (base × attempt) plus an initial jitter, and
// classification of every outcome into the typed error taxonomy.
package httpclient

import (
	"bytes"
	"context"
	"errors"
	"io"
	"math/rand"
	"net"
	"net/http"
	"net/url"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	userAgent        = "Mozilla/5.0 (compatible; snow-api/1.0; +https://github.com/jimmysun0815/snow-api)"
	defaultTimeout   = 30 * time.Second
	defaultRetries   = 3
	backoffBase      = 2 * time.Second
	jitterMinSeconds = 0.5
	jitterMaxSeconds = 1.0
)

// Response is a fetch's successful outcome: the raw body plus status.
type Response struct {
	StatusCode int
	Body       []byte
	Header     http.Header
}

// Fetcher performs retrying, rate-limited HTTP calls on behalf of every
// adapter. One Fetcher is constructed per process and shared — it holds no
// per-resort state, only transport configuration and per-host limiters.
type Fetcher struct {
	client   *http.Client
	logger   *zap.SugaredLogger
	sleeper  func(time.Duration)
	rng      *rand.Rand
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
}

// Option configures a Fetcher at construction time.
type Option func(*Fetcher)

// WithSleeper overrides the backoff sleep function, so tests can run a
// multi-retry scenario without waiting in real time.
func WithSleeper(fn func(time.Duration)) Option {
	return func(f *Fetcher) { f.sleeper = fn }
}

// WithRand overrides the jitter source for deterministic tests.
func WithRand(rng *rand.Rand) Option {
	return func(f *Fetcher) { f.rng = rng }
}

// New builds a Fetcher with a default transport-level timeout. Per-call
// timeouts (passed to Do) are enforced via context and take precedence.
func New(logger *zap.SugaredLogger, opts ...Option) *Fetcher {
	f := &Fetcher{
		client:   &http.Client{Timeout: defaultTimeout},
		logger:   logger,
		sleeper:  time.Sleep,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
		limiters: make(map[string]*rate.Limiter),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// limiterFor returns (creating if needed) the rate limiter for a URL's host.
// Each host gets 2 requests/second with a burst of 4 — polite enough for
// the free-tier upstreams this service polls (§5 backpressure).
func (f *Fetcher) limiterFor(rawURL string) *rate.Limiter {
	host := rawURL
	if u, err := url.Parse(rawURL); err == nil {
		host = u.Host
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if lim, ok := f.limiters[host]; ok {
		return lim
	}
	lim := rate.NewLimiter(rate.Limit(2), 4)
	f.limiters[host] = lim
	return lim
}

// Do performs one fetch with bounded retries and classifies the outcome.
// It never returns a raw error — only (*Response, nil) or (nil, *TypedError).
func (f *Fetcher) Do(ctx context.Context, method, rawURL string, body []byte, timeout time.Duration, maxRetries int) (*Response, error) {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if maxRetries <= 0 {
		maxRetries = defaultRetries
	}

	jitter := time.Duration((jitterMinSeconds+f.rng.Float64()*(jitterMaxSeconds-jitterMinSeconds))*1000) * time.Millisecond
	f.sleeper(jitter)

	lim := f.limiterFor(rawURL)

	var lastErr *TypedError
	for attempt := 1; attempt <= maxRetries; attempt++ {
		if err := lim.Wait(ctx); err != nil {
			return nil, NewTypedError(ErrConnection, rawURL, err)
		}

		resp, terr, canRetry := f.attempt(ctx, method, rawURL, body, timeout)
		if terr == nil {
			return resp, nil
		}
		lastErr = terr

		if !canRetry {
			return nil, terr
		}
		if attempt == maxRetries {
			break
		}

		wait := backoffBase * time.Duration(attempt)
		if f.logger != nil {
			f.logger.Debugw("retrying fetch", "url", rawURL, "attempt", attempt, "wait", wait, "error_type", terr.Type)
		}
		f.sleeper(wait)
	}

	if lastErr == nil {
		lastErr = NewTypedError(ErrUnknown, rawURL, errors.New("retries exhausted"))
	}
	return nil, lastErr
}

// attempt performs one HTTP round trip and classifies the outcome per
// §4.1. The bool return reports whether this specific outcome is eligible
// for another attempt: transport error, 408/425/429/5xx, or timeout — never
// 404, never any other 4xx.
func (f *Fetcher) attempt(ctx context.Context, method, rawURL string, body []byte, timeout time.Duration) (*Response, *TypedError, bool) {
	attemptCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var bodyReader io.Reader
	if body != nil {
		bodyReader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(attemptCtx, method, rawURL, bodyReader)
	if err != nil {
		return nil, NewTypedError(ErrUnknown, rawURL, err), false
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json, text/html;q=0.9, */*;q=0.8")
	if body != nil && method != http.MethodGet {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := f.client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, NewTypedError(ErrTimeout, rawURL, err), true
		}
		var netErr net.Error
		if errors.As(err, &netErr) && netErr.Timeout() {
			return nil, NewTypedError(ErrTimeout, rawURL, err), true
		}
		return nil, NewTypedError(ErrConnection, rawURL, err), true
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, NewTypedError(ErrConnection, rawURL, err), true
	}

	if resp.StatusCode == http.StatusNotFound {
		return nil, NewTypedError(ErrHTTP404, rawURL, errors.New("not found")), false
	}
	if isRetryableStatus(resp.StatusCode) {
		return nil, NewTypedError(ErrUnknown, rawURL, errors.New(http.StatusText(resp.StatusCode))), true
	}
	if resp.StatusCode >= 400 {
		return nil, NewTypedError(ErrUnknown, rawURL, errors.New(http.StatusText(resp.StatusCode))), false
	}

	return &Response{StatusCode: resp.StatusCode, Body: data, Header: resp.Header}, nil, false
}

func isRetryableStatus(status int) bool {
	switch status {
	case http.StatusRequestTimeout, http.StatusTooEarly, http.StatusTooManyRequests:
		return true
	}
	return status >= 500
}

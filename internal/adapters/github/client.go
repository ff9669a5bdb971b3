// Package github is a small GitHub REST v3 client used to confirm that
// repositories and commits named by proof references exist
package github

import (
	"context"
	"io"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	perr "skillproof/internal/platform/errors"
	"skillproof/internal/platform/logger"
)

const (
	baseURLDefault   = "https://api.github.com"
	defaultTimeout   = 10 * time.Second
	defaultUA        = "skillproof-verify"
	defaultMaxRetry  = 3
	defaultRetryBase = 500 * time.Millisecond
	maxBackoff       = 30 * time.Second
)

// Options configures the Client; zero values take the defaults above
type Options struct {
	BaseURL   string
	UserAgent string
	Timeout   time.Duration

	// TokensCSV is rotated per request; empty means anonymous, which GitHub caps at 60 requests an hour
	TokensCSV string

	MaxRetries int
	RetryBase  time.Duration
}

// Client issues GETs with token rotation, exponential backoff on 5xx and rate limit waits
type Client struct {
	http   *http.Client
	opts   Options
	tokens *tokenRing
	log    logger.Logger
	now    func() time.Time
	sleep  func(context.Context, time.Duration) error
}

// NewClient applies defaults to o
func NewClient(o Options) *Client {
	o.BaseURL = strings.TrimRight(orDefault(o.BaseURL, baseURLDefault), "/")
	o.UserAgent = orDefault(o.UserAgent, defaultUA)
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	if o.MaxRetries <= 0 {
		o.MaxRetries = defaultMaxRetry
	}
	if o.RetryBase <= 0 {
		o.RetryBase = defaultRetryBase
	}
	return &Client{
		http:   &http.Client{Timeout: o.Timeout},
		opts:   o,
		tokens: newTokenRing(o.TokensCSV),
		log:    *logger.Named("github"),
		now:    time.Now,
		sleep:  sleepCtx,
	}
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

type tokenRing struct {
	tokens []string
	n      atomic.Uint64
}

func newTokenRing(csv string) *tokenRing {
	r := &tokenRing{}
	for t := range strings.SplitSeq(csv, ",") {
		if t = strings.TrimSpace(t); t != "" {
			r.tokens = append(r.tokens, t)
		}
	}
	return r
}

func (r *tokenRing) next() string {
	if len(r.tokens) == 0 {
		return ""
	}
	return r.tokens[(r.n.Add(1)-1)%uint64(len(r.tokens))]
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// retry is a failed attempt that may be repeated after wait; exhausted is returned once retries run out
type retry struct {
	wait      time.Duration
	reason    string
	exhausted error
}

// Do GETs path. 404 and 422 come back as responses so callers can read them as absent.
// Transport failures and 5xx are Unavailable once retries are spent; 403 and 429 become TooManyRequests
func (c *Client) Do(ctx context.Context, path string) (*http.Response, error) {
	for attempt := 0; ; attempt++ {
		resp, r, err := c.attempt(ctx, path, attempt)
		if r == nil {
			return resp, err
		}
		if attempt >= c.opts.MaxRetries {
			return nil, r.exhausted
		}
		wait := min(r.wait, maxBackoff)
		c.log.Warn().Str("path", path).Str("reason", r.reason).Int("attempt", attempt).Dur("retry_in", wait).Msg("github retrying")
		if err := c.sleep(ctx, wait); err != nil {
			return nil, err
		}
	}
}

func (c *Client) attempt(ctx context.Context, path string, attempt int) (*http.Response, *retry, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.opts.BaseURL+path, nil)
	if err != nil {
		return nil, nil, perr.Wrap(err, perr.ErrorCodeInvalidArgument, "github request build failed")
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("User-Agent", c.opts.UserAgent)
	if tok := c.tokens.next(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	start := c.now()
	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, nil, perr.Wrap(err, perr.ErrorCodeUnavailable, "github request failed")
		}
		return nil, &retry{
			wait:      c.backoff(attempt),
			reason:    err.Error(),
			exhausted: perr.Wrap(err, perr.ErrorCodeUnavailable, "github request failed"),
		}, nil
	}

	rl := readRateLimit(resp.Header)
	c.log.Debug().
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("latency", c.now().Sub(start)).
		Int("rate_remaining", rl.remaining).
		Msg("github response")

	switch code := resp.StatusCode; {
	case code == http.StatusOK, code == http.StatusNotFound, code == http.StatusUnprocessableEntity:
		return resp, nil, nil
	case code == http.StatusTooManyRequests, code == http.StatusForbidden:
		_ = drainAndClose(resp.Body)
		wait := rl.wait(c.now())
		if wait <= 0 {
			wait = c.backoff(attempt)
		}
		return nil, &retry{wait: wait, reason: "rate limited", exhausted: perr.New(perr.ErrorCodeTooManyRequests, "github rate limited")}, nil
	case code == http.StatusBadGateway, code == http.StatusServiceUnavailable, code == http.StatusGatewayTimeout:
		_ = drainAndClose(resp.Body)
		return nil, &retry{wait: c.backoff(attempt), reason: resp.Status, exhausted: perr.New(perr.ErrorCodeUnavailable, "github transient server error")}, nil
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		_ = resp.Body.Close()
		return nil, nil, &StatusError{Status: code, Body: string(body)}
	}
}

// backoff doubles RetryBase per attempt up to maxBackoff
func (c *Client) backoff(attempt int) time.Duration {
	d := c.opts.RetryBase << uint(attempt)
	if d <= 0 || d > maxBackoff {
		return maxBackoff
	}
	return d
}

package github

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"
)

// StatusError is a response GitHub should not have sent for a GET we retry or accept
type StatusError struct {
	Status int
	Body   string
}

func (e *StatusError) Error() string { return fmt.Sprintf("github unexpected status %d", e.Status) }

// IsStatus reports whether err is a StatusError with the given status
func IsStatus(err error, status int) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Status == status
}

// rateLimit is what GitHub reports about the remaining quota
type rateLimit struct {
	remaining  int
	reset      time.Time
	retryAfter time.Duration
}

func readRateLimit(h http.Header) rateLimit {
	num := func(k string) int {
		n, _ := strconv.Atoi(h.Get(k))
		return n
	}
	rl := rateLimit{
		remaining:  num("X-RateLimit-Remaining"),
		retryAfter: time.Duration(num("Retry-After")) * time.Second,
	}
	if sec := num("X-RateLimit-Reset"); sec > 0 {
		rl.reset = time.Unix(int64(sec), 0).UTC()
	}
	return rl
}

// wait prefers Retry-After, then the reset time of an exhausted quota; zero means no hint
func (rl rateLimit) wait(now time.Time) time.Duration {
	switch {
	case rl.retryAfter > 0:
		return rl.retryAfter
	case rl.remaining <= 0 && rl.reset.After(now):
		return rl.reset.Sub(now)
	default:
		return 0
	}
}

func drainAndClose(rc io.ReadCloser) error {
	_, _ = io.Copy(io.Discard, io.LimitReader(rc, 512))
	return rc.Close()
}

// Package randutil provides the cryptographically strong randomness source
// used by the splitter, and a resource discipline wrapper around it.
//
// When the splitter parallelizes across byte columns (see package sss's
// Split), every worker goroutine wants its own random coefficients at
// roughly the same time. A burst of concurrent crypto/rand.Read calls is
// harmless on every platform we target, but bounding the burst is cheap
// insurance against pathological callers handing Split a very wide column
// fan-out, so the entropy source is acquired through a rate-limited Source
// rather than called directly.
package randutil

import (
	"context"
	"crypto/rand"
	"fmt"
	"io"

	"golang.org/x/time/rate"
)

// Source draws cryptographically secure random bytes, gated by a rate
// limiter shared across however many callers were handed the same Source.
type Source struct {
	limiter *rate.Limiter
	reader  io.Reader
}

// DefaultBurst is the maximum number of concurrent column workers allowed
// to draw randomness without waiting on the limiter.
const DefaultBurst = 64

// New returns a Source backed by crypto/rand.Reader, permitting up to
// burst concurrent reads before subsequent callers start waiting.
func New(burst int) *Source {
	if burst <= 0 {
		burst = DefaultBurst
	}
	return &Source{
		// Tokens refill fast relative to burst: this isn't meant to throttle
		// steady-state throughput, only to cap how many column workers can
		// pile onto the entropy source in the same instant.
		limiter: rate.NewLimiter(rate.Limit(burst*1000), burst),
		reader:  rand.Reader,
	}
}

// Read fills b with random bytes, waiting on the rate limiter first. It
// returns a wrapped error distinguishing OS entropy failures from
// unrelated callers' bugs, since the caller (the splitter) must surface
// this as CannotGenerateRandomNumbers rather than any other error kind.
func (s *Source) Read(ctx context.Context, b []byte) error {
	if len(b) == 0 {
		return nil
	}
	if err := s.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("randutil: rate limiter wait failed: %w", err)
	}
	if _, err := io.ReadFull(s.reader, b); err != nil {
		return fmt.Errorf("randutil: failed to read from entropy source: %w", err)
	}
	return nil
}

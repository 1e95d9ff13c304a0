// Package splitter implements the byte-wise secret-splitting half of
// Shamir secret sharing: for each byte of the secret, a random
// degree-(k-1) polynomial is sampled with that byte as its constant term,
// then evaluated at x = 1..n to produce the n shares' bytes for that
// column.
//
// Splitting is embarrassingly parallel across byte columns: each column
// only touches its own slice of every share's Data, so columns are split
// across a worker pool and assembled back into shares in deterministic
// index order.
package splitter

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/lcrostarosa/airgapper-sss/internal/field"
	"github.com/lcrostarosa/airgapper-sss/internal/poly"
	"github.com/lcrostarosa/airgapper-sss/internal/randutil"
)

// Share is one participant's raw (unsigned, unwrapped) slice of the split
// secret: the byte at Data[i] is P_i(ID), where P_i is the random
// polynomial chosen for secret byte i.
type Share struct {
	ID   byte
	Data []byte
}

// Split divides secret into n shares such that any k of them recover it
// exactly. k and n must satisfy 1 <= k <= n <= 255. k = 1 is the
// degenerate case: every resulting share's Data is a verbatim copy of
// secret, since a degree-0 polynomial is just its own constant term.
//
// Randomness is drawn from src, which is expected to wrap a
// cryptographically secure source; a failure there is returned to the
// caller wrapped (with %w) so it can be reported as
// CannotGenerateRandomNumbers.
func Split(ctx context.Context, secret []byte, k, n int, src *randutil.Source) ([]Share, error) {
	if k < 1 || n < 1 {
		return nil, fmt.Errorf("splitter: k and n must be at least 1, got k=%d n=%d", k, n)
	}
	if k > n {
		return nil, fmt.Errorf("splitter: threshold k=%d cannot exceed n=%d", k, n)
	}
	if n > 255 {
		return nil, fmt.Errorf("splitter: n cannot exceed 255, got %d", n)
	}

	shares := make([]Share, n)
	for i := range shares {
		shares[i] = Share{ID: byte(i + 1), Data: make([]byte, len(secret))}
	}
	if len(secret) == 0 {
		return shares, nil
	}

	workers := runtime.GOMAXPROCS(0)
	if workers > len(secret) {
		workers = len(secret)
	}
	if workers < 1 {
		workers = 1
	}

	columns := make(chan int)
	done := make(chan struct{})
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		firstErr  error
		closeOnce sync.Once
	)

	recordErr := func(err error) {
		mu.Lock()
		if firstErr == nil {
			firstErr = err
		}
		mu.Unlock()
		// Wake the feed loop below so it stops sending into columns once
		// every worker has stopped receiving from it; without this a
		// simultaneous failure across all workers (e.g. ctx canceled while
		// len(secret) > workers) leaves nothing to drain the channel and
		// the feed loop blocks forever on columns <- col.
		closeOnce.Do(func() { close(done) })
	}

	worker := func() {
		defer wg.Done()
		for col := range columns {
			if err := splitColumn(ctx, secret[col], k, n, shares, col, src); err != nil {
				recordErr(err)
				return
			}
		}
	}

	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go worker()
	}
feed:
	for col := range secret {
		select {
		case columns <- col:
		case <-done:
			break feed
		}
	}
	close(columns)
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	return shares, nil
}

// splitColumn samples one random polynomial for secret byte col and
// writes its evaluation at each share's ID into that share's Data[col].
// Disjoint col values touch disjoint memory across all goroutines, so no
// further synchronization is required here.
func splitColumn(ctx context.Context, secretByte byte, k, n int, shares []Share, col int, src *randutil.Source) error {
	degree := k - 1
	coeffs := make([]byte, degree+1)
	coeffs[0] = secretByte
	if degree > 0 {
		if err := src.Read(ctx, coeffs[1:]); err != nil {
			return fmt.Errorf("splitter: cannot generate random numbers: %w", err)
		}
	}
	p := poly.New(coeffs)

	for i := 0; i < n; i++ {
		shares[i].Data[col] = p.Evaluate(field.Elem(shares[i].ID))
	}
	return nil
}

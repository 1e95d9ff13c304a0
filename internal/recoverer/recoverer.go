// Package recoverer orchestrates byte-wise secret recovery from a
// validated set of shares, using the barycentric Lagrange interpolator in
// package lagrange.
//
// Because the barycentric weights depend only on the shares' x
// coordinates, which are identical across every byte column, they are
// computed once and reused for all columns — only the diffs (and so the
// final value) are recomputed per byte. Columns are otherwise independent
// and are recovered in parallel, then assembled back in order.
package recoverer

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/lcrostarosa/airgapper-sss/internal/field"
	"github.com/lcrostarosa/airgapper-sss/internal/lagrange"
)

// Point is one share reduced to what recovery needs: its id and its full
// data column.
type Point struct {
	ID   byte
	Data []byte
}

// Recover reconstructs the secret from k points (at least one point, every
// point's Data of equal length, with no duplicate or zero ids — the caller,
// the validation pipeline, is responsible for the ids; empty and
// mismatched-length inputs are rejected here). Empty Data yields an empty
// secret.
// k = 1 is the degenerate case: the single point's Data is the secret
// verbatim.
func Recover(points []Point) ([]byte, error) {
	if len(points) == 0 {
		return nil, fmt.Errorf("recoverer: no points provided")
	}

	secretLen := len(points[0].Data)
	for _, p := range points {
		if len(p.Data) != secretLen {
			return nil, fmt.Errorf("recoverer: mismatched data lengths across shares")
		}
	}

	if len(points) == 1 {
		secret := make([]byte, secretLen)
		copy(secret, points[0].Data)
		return secret, nil
	}

	ids := make([]field.Elem, len(points))
	for i, p := range points {
		ids[i] = field.Elem(p.ID)
	}
	weights := lagrange.Weights(ids)

	secret := make([]byte, secretLen)
	if secretLen == 0 {
		return secret, nil
	}

	workers := runtime.GOMAXPROCS(0)
	if workers > secretLen {
		workers = secretLen
	}
	if workers < 1 {
		workers = 1
	}

	columns := make(chan int)
	var wg sync.WaitGroup

	worker := func() {
		defer wg.Done()
		ys := make([]field.Elem, len(points))
		for col := range columns {
			for i, p := range points {
				ys[i] = field.Elem(p.Data[col])
			}
			secret[col] = lagrange.EvaluateWithWeights(ids, weights, ys)
		}
	}

	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go worker()
	}
	for col := 0; col < secretLen; col++ {
		columns <- col
	}
	close(columns)
	wg.Wait()

	return secret, nil
}

// Package lagrange implements incremental barycentric Lagrange interpolation
// over GF(2^8), evaluated at x = 0.
//
// Classical Lagrange interpolation across k points at a single evaluation
// point costs O(k^2); recomputing it from scratch every time a new share
// trickles in costs O(k^3) overall. The "second" or "true" form of
// barycentric interpolation lets the Interpolator update its weights in
// O(k) per new point (the Werner recurrence) and evaluate at any x in O(k).
// Because recovery always evaluates at x = 0, the implementation
// precomputes d_j = y_j / x_j so the final evaluation collapses to
//
//	value(0) = ( sum_j w_j * d_j ) / ( sum_j w_j / x_j )
package lagrange

import (
	"fmt"

	"github.com/lcrostarosa/airgapper-sss/internal/field"
)

// Interpolator holds the intermediate state of one barycentric Lagrange
// computation: the diffs d_j = y_j / x_j, the barycentric weights w_j, and
// the ids (x-coordinates) seen so far. It is not safe for concurrent use.
type Interpolator struct {
	threshold int
	ids       []field.Elem
	diffs     []field.Elem
	weights   []field.Elem
	result    *field.Elem
}

// New creates an Interpolator for a k-out-of-n recovery and ingests an
// initial batch of points. threshold must be >= 2 (k = 1 is degenerate and
// bypasses this package entirely — the secret is simply the one share's
// byte). len(ids) must equal len(ys), be non-zero, and be at most
// threshold. No id may be zero, since the polynomial's value at x = 0 is
// the secret itself.
func New(threshold int, ids, ys []field.Elem) *Interpolator {
	if threshold < 2 {
		panic("lagrange: threshold must be at least 2")
	}
	if len(ys) == 0 {
		panic("lagrange: given an empty set of points")
	}
	if len(ids) != len(ys) {
		panic("lagrange: unequal number of x and y coordinates")
	}
	if len(ids) > threshold {
		panic("lagrange: given more points than the threshold")
	}

	interp := &Interpolator{
		threshold: threshold,
		diffs:     make([]field.Elem, 0, threshold),
	}
	interp.updateDiffs(ids, ys)
	interp.updateWeights(ids)
	return interp
}

// Update ingests an additional batch of points into an existing
// computation. The new ids must be appended to the ids already supplied to
// New or a prior Update call — the Interpolator only ever sees the tail of
// the growing id slice via the new y values. Supplying a duplicate id is a
// programmer error, not a recoverable one: it is caught by the Werner
// recurrence's non-zero-difference assertion and panics.
func (in *Interpolator) Update(ids, ys []field.Elem) {
	if len(ys) == 0 {
		panic("lagrange: given an empty set of points")
	}
	if len(ids) > in.threshold {
		panic("lagrange: given more points than the threshold")
	}
	if len(ids) < len(ys) {
		panic("lagrange: fewer ids than new y values")
	}

	in.updateDiffs(ids, ys)
	in.updateWeights(ids)
}

// updateDiffs appends d_j = y_j / x_j for the newly supplied ys. ids holds
// the full id list seen so far; only its tail (corresponding to the new ys)
// is consumed.
func (in *Interpolator) updateDiffs(ids, newYs []field.Elem) {
	newPoints, totalPoints := len(newYs), len(ids)
	tail := ids[totalPoints-newPoints:]

	for i, xi := range tail {
		if xi == 0 {
			panic("lagrange: invalid share identifier 0")
		}
		in.diffs = append(in.diffs, field.Div(newYs[i], xi))
	}
	in.ids = ids
}

// updateWeights runs the Werner recurrence (algorithm 3.1 from "Polynomial
// Interpolation: Lagrange vs Newton") to bring the barycentric weights up
// to date with the full id list, then finalizes the result once threshold
// points are in hand.
func (in *Interpolator) updateWeights(ids []field.Elem) {
	total := len(ids)
	// Need at least two points before weights mean anything.
	if total == 1 {
		return
	}

	var start int
	if len(in.weights) == 0 {
		in.weights = make([]field.Elem, total)
		in.weights[0] = field.One
		start = 1
	} else {
		newPoints := total - len(in.weights)
		in.weights = append(in.weights, make([]field.Elem, newPoints)...)
		start = total - newPoints
	}

	for i := start; i < total; i++ {
		for j := 0; j < i; j++ {
			diff := field.Sub(ids[j], ids[i])
			if diff == 0 {
				panic("lagrange: duplicate share identifier encountered")
			}
			in.weights[j] = field.Div(in.weights[j], diff)
			in.weights[i] = field.Sub(in.weights[i], in.weights[j])
		}
	}

	if in.threshold-total == 0 {
		in.finalize()
	}
}

// finalize computes the interpolant's value at x = 0 using the second form
// of the barycentric interpolation formula.
func (in *Interpolator) finalize() {
	var num, denom field.Elem
	for i, xi := range in.ids {
		wi := in.weights[i]
		num = field.Add(num, field.Mul(wi, in.diffs[i]))
		denom = field.Add(denom, field.Div(wi, xi))
	}
	result := field.Div(num, denom)
	in.result = &result
}

// Result returns the recovered secret byte, once threshold points have
// been ingested. It returns an error if called before then.
func (in *Interpolator) Result() (field.Elem, error) {
	if in.result == nil {
		return 0, fmt.Errorf("lagrange: not enough points interpolated to recover the value yet (have %d, need %d)", len(in.ids), in.threshold)
	}
	return *in.result, nil
}

// Done reports whether enough points have been ingested to produce a
// result.
func (in *Interpolator) Done() bool {
	return in.result != nil
}

// EvaluateAt evaluates the already-determined interpolant at an arbitrary
// point x, rather than just at the origin. It is only valid once Done
// reports true.
func (in *Interpolator) EvaluateAt(x field.Elem) (field.Elem, error) {
	if in.result == nil {
		return 0, fmt.Errorf("lagrange: not enough points interpolated yet")
	}
	if x == 0 {
		return *in.result, nil
	}

	var num, denom field.Elem
	for i, xi := range in.ids {
		delta := field.Sub(x, xi)
		if delta == 0 {
			// Evaluating exactly at one of the known nodes: the value is
			// just that node's y, which we can recover as d_i * x_i.
			return field.Mul(in.diffs[i], xi), nil
		}
		wi := in.weights[i]
		num = field.Add(num, field.Div(field.Mul(field.Mul(wi, in.diffs[i]), xi), delta))
		denom = field.Add(denom, field.Div(wi, delta))
	}
	return field.Div(num, denom), nil
}

package lagrange

import "github.com/lcrostarosa/airgapper-sss/internal/field"

// Weights computes the full barycentric weight vector for a fixed set of
// distinct, non-zero ids. The weights depend only on the x-coordinates,
// not on any y values, so when recovering a multi-byte secret from the
// same k share identifiers, Weights can be computed once and reused for
// every byte column — only the diffs (and hence the final value) need
// recomputing per column. This is a factor-of-k speedup over constructing
// one Interpolator per byte.
func Weights(ids []field.Elem) []field.Elem {
	n := len(ids)
	weights := make([]field.Elem, n)
	if n == 0 {
		return weights
	}
	weights[0] = field.One

	for i := 1; i < n; i++ {
		for j := 0; j < i; j++ {
			diff := field.Sub(ids[j], ids[i])
			if diff == 0 {
				panic("lagrange: duplicate share identifier encountered")
			}
			weights[j] = field.Div(weights[j], diff)
			weights[i] = field.Sub(weights[i], weights[j])
		}
	}
	return weights
}

// EvaluateWithWeights computes the interpolant's value at x = 0 given
// ids, their precomputed barycentric Weights, and one column's y values
// (ys[i] is the evaluation of the secret-byte polynomial at ids[i]).
func EvaluateWithWeights(ids, weights, ys []field.Elem) field.Elem {
	var num, denom field.Elem
	for i, xi := range ids {
		di := field.Div(ys[i], xi)
		wi := weights[i]
		num = field.Add(num, field.Mul(wi, di))
		denom = field.Add(denom, field.Div(wi, xi))
	}
	return field.Div(num, denom)
}

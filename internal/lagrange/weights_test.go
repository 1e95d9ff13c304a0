package lagrange

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lcrostarosa/airgapper-sss/internal/field"
	"github.com/lcrostarosa/airgapper-sss/internal/poly"
)

func TestWeightsMatchIncrementalInterpolator(t *testing.T) {
	ids := []field.Elem{1, 2, 3, 4, 5, 6}
	weights := Weights(ids)

	p, err := poly.Random(0x37, len(ids)-1)
	require.NoError(t, err)

	ys := make([]field.Elem, len(ids))
	for i, x := range ids {
		ys[i] = p.Evaluate(x)
	}

	want, err := New(len(ids), ids, ys).Result()
	require.NoError(t, err)

	got := EvaluateWithWeights(ids, weights, ys)
	assert.Equal(t, want, got)
}

func TestWeightsReusedAcrossColumns(t *testing.T) {
	ids := []field.Elem{2, 4, 6, 8}
	weights := Weights(ids)

	for trial := 0; trial < 10; trial++ {
		p, err := poly.Random(field.Elem(trial*23), len(ids)-1)
		require.NoError(t, err)

		ys := make([]field.Elem, len(ids))
		for i, x := range ids {
			ys[i] = p.Evaluate(x)
		}

		got := EvaluateWithWeights(ids, weights, ys)
		assert.Equal(t, field.Elem(trial*23), got)
	}
}

package lagrange

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lcrostarosa/airgapper-sss/internal/field"
	"github.com/lcrostarosa/airgapper-sss/internal/poly"
)

func TestInterpolatorMatchesPolynomialIntercept(t *testing.T) {
	p, err := poly.Random(0x99, 4)
	require.NoError(t, err)

	ids := []field.Elem{1, 2, 3, 4, 5}
	ys := make([]field.Elem, len(ids))
	for i, x := range ids {
		ys[i] = p.Evaluate(x)
	}

	interp := New(5, ids, ys)
	got, err := interp.Result()
	require.NoError(t, err)
	assert.Equal(t, field.Elem(0x99), got)
}

func TestInterpolatorEqualsExplicitLagrange(t *testing.T) {
	for trial := 0; trial < 20; trial++ {
		degree := 2 + trial%5
		secret := field.Elem(trial * 17)
		p, err := poly.Random(secret, degree)
		require.NoError(t, err)

		k := degree + 1
		ids := make([]field.Elem, k)
		points := make([]poly.Point, k)
		ys := make([]field.Elem, k)
		for i := 0; i < k; i++ {
			x := field.Elem(i + 1)
			y := p.Evaluate(x)
			ids[i] = x
			ys[i] = y
			points[i] = poly.Point{X: x, Y: y}
		}

		explicit, err := poly.FromPoints(points)
		require.NoError(t, err)

		interp := New(k, ids, ys)
		got, err := interp.Result()
		require.NoError(t, err)

		assert.Equal(t, explicit.Evaluate(0), got)
	}
}

func TestInterpolatorIncrementalUpdate(t *testing.T) {
	p, err := poly.Random(0x42, 2)
	require.NoError(t, err)

	ids := []field.Elem{1, 2, 3}
	ys := make([]field.Elem, len(ids))
	for i, x := range ids {
		ys[i] = p.Evaluate(x)
	}

	interp := New(3, ids[:1], ys[:1])
	assert.False(t, interp.Done())
	_, err = interp.Result()
	assert.Error(t, err)

	interp.Update(ids[:2], ys[1:2])
	assert.False(t, interp.Done())

	interp.Update(ids[:3], ys[2:3])
	require.True(t, interp.Done())

	got, err := interp.Result()
	require.NoError(t, err)
	assert.Equal(t, field.Elem(0x42), got)
}

func TestInterpolatorEvaluateAtArbitraryPoint(t *testing.T) {
	p, err := poly.Random(0x10, 3)
	require.NoError(t, err)

	ids := []field.Elem{1, 2, 3, 4}
	ys := make([]field.Elem, len(ids))
	for i, x := range ids {
		ys[i] = p.Evaluate(x)
	}

	interp := New(4, ids, ys)
	require.True(t, interp.Done())

	for x := 5; x < 20; x++ {
		got, err := interp.EvaluateAt(field.Elem(x))
		require.NoError(t, err)
		assert.Equal(t, p.Evaluate(field.Elem(x)), got, "x=%d", x)
	}
}

func TestInterpolatorRejectsZeroID(t *testing.T) {
	assert.Panics(t, func() {
		New(2, []field.Elem{0, 1}, []field.Elem{5, 6})
	})
}

func TestInterpolatorRejectsDuplicateID(t *testing.T) {
	assert.Panics(t, func() {
		New(2, []field.Elem{3, 3}, []field.Elem{5, 6})
	})
}

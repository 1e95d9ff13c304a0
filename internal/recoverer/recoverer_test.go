package recoverer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lcrostarosa/airgapper-sss/internal/randutil"
	"github.com/lcrostarosa/airgapper-sss/internal/splitter"
)

func splitPoints(t *testing.T, secret []byte, k, n int, indices ...int) []Point {
	t.Helper()
	src := randutil.New(8)
	shares, err := splitter.Split(context.Background(), secret, k, n, src)
	require.NoError(t, err)

	points := make([]Point, len(indices))
	for i, idx := range indices {
		points[i] = Point{ID: shares[idx].ID, Data: shares[idx].Data}
	}
	return points
}

func TestRecoverRoundTrip(t *testing.T) {
	secret := []byte("the quick brown fox jumps over the lazy dog")
	points := splitPoints(t, secret, 3, 6, 0, 2, 5)

	got, err := Recover(points)
	require.NoError(t, err)
	assert.Equal(t, secret, got)
}

func TestRecoverWithKEqualsOne(t *testing.T) {
	secret := []byte("abc")
	points := splitPoints(t, secret, 1, 4, 2)

	got, err := Recover(points)
	require.NoError(t, err)
	assert.Equal(t, secret, got)
}

func TestRecoverAllSubsetsAgree(t *testing.T) {
	secret := []byte("subset agreement")
	src := randutil.New(8)
	shares, err := splitter.Split(context.Background(), secret, 2, 4, src)
	require.NoError(t, err)

	combos := [][2]int{{0, 1}, {0, 2}, {0, 3}, {1, 2}, {1, 3}, {2, 3}}
	for _, c := range combos {
		points := []Point{
			{ID: shares[c[0]].ID, Data: shares[c[0]].Data},
			{ID: shares[c[1]].ID, Data: shares[c[1]].Data},
		}
		got, err := Recover(points)
		require.NoError(t, err)
		assert.Equal(t, secret, got, "combo %v", c)
	}
}

func TestRecoverEmptySecret(t *testing.T) {
	points := splitPoints(t, nil, 2, 3, 0, 1)
	got, err := Recover(points)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestRecoverRejectsNoPoints(t *testing.T) {
	_, err := Recover(nil)
	assert.Error(t, err)
}

func TestRecoverRejectsMismatchedLengths(t *testing.T) {
	points := []Point{
		{ID: 1, Data: []byte("short")},
		{ID: 2, Data: []byte("longer data")},
	}
	_, err := Recover(points)
	assert.Error(t, err)
}

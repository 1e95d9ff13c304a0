package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sss "github.com/lcrostarosa/airgapper-sss"
)

func TestSSSFixtureRoundTrip(t *testing.T) {
	f := NewSSSFixture().
		WithSecret([]byte("fixture secret")).
		WithThreshold(2, 4).
		MustBuild()

	require.Len(t, f.Shares, 4)
	assert.NoError(t, f.ValidateReconstruction(0, 2))
}

func TestSSSFixtureAllCombinationsAgree(t *testing.T) {
	f := NewSSSFixture().
		WithSecret([]byte("combo secret")).
		WithThreshold(2, 4).
		MustBuild()

	for _, combo := range f.AllCombinations() {
		assert.NoError(t, f.ValidateReconstruction(combo...))
	}
}

func TestSSSFixtureTamperedShareFailsSignedRecovery(t *testing.T) {
	f := NewSSSFixture().
		WithSecret([]byte("signed fixture secret")).
		WithThreshold(2, 4).
		WithSigning().
		MustBuild()

	tampered := f.TamperedShare(1)
	shares := []string{f.Shares[0], tampered}

	_, err := sss.Recover(shares, true)
	assert.Error(t, err)
}

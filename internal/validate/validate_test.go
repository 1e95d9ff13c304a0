package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunRejectsEmptyBatch(t *testing.T) {
	_, err := Run(nil, false)
	require.Error(t, err)
	assert.Equal(t, KindEmptyShares, err.(*Error).Kind)
}

func TestRunRejectsIDOutOfRange(t *testing.T) {
	shares := []Share{
		{ID: 9, K: 2, N: 4, Data: []byte("a")},
		{ID: 2, K: 2, N: 4, Data: []byte("b")},
	}
	_, err := Run(shares, false)
	require.Error(t, err)
	assert.Equal(t, KindShareIdentifierTooBig, err.(*Error).Kind)
}

func TestRunRejectsDuplicateID(t *testing.T) {
	shares := []Share{
		{ID: 1, K: 2, N: 4, Data: []byte("a")},
		{ID: 1, K: 2, N: 4, Data: []byte("b")},
	}
	_, err := Run(shares, false)
	require.Error(t, err)
	assert.Equal(t, KindDuplicateShareID, err.(*Error).Kind)
}

func TestRunRejectsDuplicateDataUnlessKEqualsOne(t *testing.T) {
	dup := []Share{
		{ID: 1, K: 2, N: 4, Data: []byte("same")},
		{ID: 2, K: 2, N: 4, Data: []byte("same")},
	}
	_, err := Run(dup, false)
	require.Error(t, err)
	assert.Equal(t, KindDuplicateShareData, err.(*Error).Kind)

	tolerated := []Share{
		{ID: 1, K: 1, N: 4, Data: []byte("same")},
		{ID: 2, K: 1, N: 4, Data: []byte("same")},
	}
	res, err := Run(tolerated, false)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Threshold)
}

func TestRunRejectsIncompatibleThresholds(t *testing.T) {
	shares := []Share{
		{ID: 1, K: 2, N: 4, Data: []byte("a")},
		{ID: 2, K: 3, N: 4, Data: []byte("b")},
	}
	_, err := Run(shares, false)
	require.Error(t, err)
	assert.Equal(t, KindIncompatibleThresholds, err.(*Error).Kind)
}

func TestRunRejectsInsufficientShares(t *testing.T) {
	shares := []Share{
		{ID: 1, K: 3, N: 5, Data: []byte("a")},
		{ID: 2, K: 3, N: 5, Data: []byte("b")},
	}
	_, err := Run(shares, false)
	require.Error(t, err)
	e := err.(*Error)
	assert.Equal(t, KindMissingShares, e.Kind)
	assert.Equal(t, 3, e.Required)
	assert.Equal(t, 2, e.Provided)
}

func TestRunTruncatesToThreshold(t *testing.T) {
	shares := []Share{
		{ID: 1, K: 2, N: 5, Data: []byte("a")},
		{ID: 2, K: 2, N: 5, Data: []byte("b")},
		{ID: 3, K: 2, N: 5, Data: []byte("c")},
	}
	res, err := Run(shares, false)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Threshold)
	assert.Len(t, res.Shares, 2)
}

func TestRunRequiresSignatureWhenVerifying(t *testing.T) {
	shares := []Share{
		{ID: 1, K: 2, N: 4, Data: []byte("a"), Signed: true, RootHash: []byte("r")},
		{ID: 2, K: 2, N: 4, Data: []byte("b")},
	}
	_, err := Run(shares, true)
	require.Error(t, err)
	assert.Equal(t, KindMissingSignature, err.(*Error).Kind)
}

func TestRunRejectsIncompatibleRoots(t *testing.T) {
	shares := []Share{
		{ID: 1, K: 2, N: 4, Data: []byte("a"), Signed: true, RootHash: []byte("root-a")},
		{ID: 2, K: 2, N: 4, Data: []byte("b"), Signed: true, RootHash: []byte("root-b")},
	}
	_, err := Run(shares, true)
	require.Error(t, err)
	assert.Equal(t, KindIncompatibleRoots, err.(*Error).Kind)
}

func TestRunAcceptsMatchingRoots(t *testing.T) {
	shares := []Share{
		{ID: 1, K: 2, N: 4, Data: []byte("a"), Signed: true, RootHash: []byte("root")},
		{ID: 2, K: 2, N: 4, Data: []byte("b"), Signed: true, RootHash: []byte("root")},
	}
	res, err := Run(shares, true)
	require.NoError(t, err)
	assert.Len(t, res.Shares, 2)
}

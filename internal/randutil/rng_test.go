package randutil

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSourceFillsBuffer(t *testing.T) {
	s := New(4)
	buf := make([]byte, 32)
	require.NoError(t, s.Read(context.Background(), buf))

	allZero := true
	for _, b := range buf {
		if b != 0 {
			allZero = false
		}
	}
	assert.False(t, allZero, "expected non-zero random bytes")
}

func TestSourceEmptyReadIsNoop(t *testing.T) {
	s := New(4)
	assert.NoError(t, s.Read(context.Background(), nil))
}

func TestSourceRespectsCancellation(t *testing.T) {
	s := New(1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := s.Read(ctx, make([]byte, 1))
	assert.Error(t, err, "a pre-cancelled context should fail the limiter wait")
}

package sss

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShareStringRoundTripUnsigned(t *testing.T) {
	s := Share{ID: 3, K: 2, N: 5, Data: []byte{0x01, 0x02, 0x03}}
	raw := s.String()

	got, err := ParseShare(raw, 0)
	require.NoError(t, err)
	assert.Equal(t, s.ID, got.ID)
	assert.Equal(t, s.K, got.K)
	assert.Equal(t, s.N, got.N)
	assert.Equal(t, s.Data, got.Data)
	assert.False(t, got.Signed)
}

func TestShareStringGrammar(t *testing.T) {
	s := Share{ID: 7, K: 3, N: 9, Data: []byte("xyz")}
	raw := s.String()

	parts := 0
	for i, c := range raw {
		if c == '-' {
			parts++
			if parts == 1 {
				assert.Equal(t, "7", raw[:i])
			}
		}
	}
	assert.Equal(t, 2, parts, "share string must have exactly two dashes before the payload")
}

func TestParseShareRejectsMalformedGrammar(t *testing.T) {
	_, err := ParseShare("not-a-share", 4)
	require.Error(t, err)
	var pe *ShareParsingError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, 4, pe.ID)
}

func TestParseShareRejectsBadBase64(t *testing.T) {
	_, err := ParseShare("2-1-not valid base64!!", 0)
	require.Error(t, err)
	var pe *ShareParsingError
	require.ErrorAs(t, err, &pe)
}

func TestParseShareRejectsCorruptPayload(t *testing.T) {
	_, err := ParseShare("2-1-//////8=", 0)
	require.Error(t, err)
	var ce *CorruptedShareError
	require.ErrorAs(t, err, &ce)
}

func TestParseShareRejectsMismatchedOuterInnerK(t *testing.T) {
	s := Share{ID: 1, K: 2, N: 4, Data: []byte("data")}
	raw := s.String()

	// Rewrite the outer K field to disagree with the payload's embedded K.
	tampered := "9" + raw[1:]

	_, err := ParseShare(tampered, 0)
	require.Error(t, err)
	var ce *CorruptedShareError
	require.ErrorAs(t, err, &ce)
}

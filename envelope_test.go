package sss

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvelopeRoundTripWithMime(t *testing.T) {
	e := Envelope{Version: InitialRelease, Secret: []byte("hello"), Mime: "text/plain", HasMime: true}
	raw := e.Encode()

	got, err := DecodeEnvelope(raw)
	require.NoError(t, err)
	assert.Equal(t, e.Version, got.Version)
	assert.Equal(t, e.Secret, got.Secret)
	assert.Equal(t, e.Mime, got.Mime)
	assert.True(t, got.HasMime)
}

func TestEnvelopeRoundTripWithoutMime(t *testing.T) {
	e := Envelope{Version: InitialRelease, Secret: []byte("no mime")}
	raw := e.Encode()

	got, err := DecodeEnvelope(raw)
	require.NoError(t, err)
	assert.Equal(t, e.Secret, got.Secret)
	assert.False(t, got.HasMime)
}

func TestDecodeEnvelopeRejectsGarbage(t *testing.T) {
	_, err := DecodeEnvelope([]byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF})
	require.Error(t, err)
	var se *SecretDeserializationError
	require.ErrorAs(t, err, &se)
}

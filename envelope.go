package sss

import "github.com/lcrostarosa/airgapper-sss/internal/wire"

// EnvelopeVersion enumerates the wire formats an Envelope can be encoded
// as. New fields are additive and decoders skip anything they don't
// recognize, but the version is still carried explicitly so a future
// incompatible change has somewhere to signal itself.
type EnvelopeVersion uint64

// InitialRelease is the first and, so far, only envelope version.
const InitialRelease EnvelopeVersion = 0

// Envelope wraps a raw secret with a version tag and an optional MIME
// type before it is handed to the Splitter. SplitWrapped/RecoverWrapped
// encode and decode it to/from its canonical binary form automatically;
// Envelope itself is exposed for callers that want to inspect a decoded
// secret's metadata directly.
type Envelope struct {
	Version EnvelopeVersion
	Secret  []byte
	Mime    string
	HasMime bool
}

// Encode serializes the envelope to its canonical binary form.
func (e Envelope) Encode() []byte {
	return wire.EncodeEnvelope(wire.Envelope{
		Version: uint64(e.Version),
		Secret:  e.Secret,
		Mime:    e.Mime,
		HasMime: e.HasMime,
	})
}

// DecodeEnvelope parses the canonical binary form produced by Encode.
func DecodeEnvelope(raw []byte) (Envelope, error) {
	w, err := wire.DecodeEnvelope(raw)
	if err != nil {
		return Envelope{}, &SecretDeserializationError{Cause: err}
	}
	return Envelope{
		Version: EnvelopeVersion(w.Version),
		Secret:  w.Secret,
		Mime:    w.Mime,
		HasMime: w.HasMime,
	}, nil
}

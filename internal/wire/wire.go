// Package wire encodes and decodes the structured binary records carried
// inside share payloads and envelopes. Rather than generating code from a
// .proto schema, the records are hand-encoded with
// google.golang.org/protobuf/encoding/protowire, using the same tag/wire-type
// conventions a generated protobuf message would: each field gets a stable
// field number, and unknown trailing fields are tolerated on decode so the
// format stays forward-compatible as new fields are added.
package wire

import (
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"
)

// ShareData field numbers.
const (
	shareFieldData      = 1
	shareFieldSignature = 2
	shareFieldProof     = 3
	shareFieldK         = 4
	shareFieldN         = 5
)

// MerkleProof field numbers.
const (
	proofFieldLeafIndex = 1
	proofFieldPublicKey = 2
	proofFieldSiblings  = 3
	proofFieldRootHash  = 4
)

// Envelope field numbers.
const (
	envelopeFieldVersion = 1
	envelopeFieldSecret  = 2
	envelopeFieldMime    = 3
)

// MerkleProof is the wire-level twin of motsig.Proof: plain byte slices and
// ints rather than ed25519 types, so this package stays independent of the
// signature scheme it's serializing.
type MerkleProof struct {
	LeafIndex int64
	PublicKey []byte
	// Siblings holds one entry per tree level; a nil entry marks a level
	// where the node was promoted without a partner.
	Siblings [][]byte
	RootHash []byte
}

// ShareData is the decoded form of a share's base64 payload: the share's
// data column and, when the dealing was signed, its signature and Merkle
// inclusion proof.
type ShareData struct {
	Data      []byte
	Signature [][]byte
	Proof     *MerkleProof
	// HasSignature distinguishes an explicitly-absent signature from a
	// signature whose components happen to be empty.
	HasSignature bool

	// K and N echo the dealing's threshold and total share count inside
	// the payload itself, so the signer string "k-n-base64(data)" can be
	// recomputed on verification without trusting the outer share
	// string's K field alone. A decoder carrying K cross-checks it
	// against the outer K; one carrying N supplies what the outer string
	// omits.
	HasK bool
	K    uint64
	HasN bool
	N    uint64
}

// Envelope is the decoded form of the versioned wrapper that carries the
// secret bytes and optional MIME type.
type Envelope struct {
	Version uint64
	Secret  []byte
	Mime    string
	HasMime bool
}

// present sibling marker bytes: a single 0x01 means "real sibling follows
// as the value", a single 0x00 means "promoted, no sibling".
const (
	siblingAbsent = 0x00
	siblingReal   = 0x01
)

func appendProof(b []byte, p *MerkleProof) []byte {
	var pb []byte
	pb = protowire.AppendTag(pb, proofFieldLeafIndex, protowire.VarintType)
	pb = protowire.AppendVarint(pb, uint64(p.LeafIndex))
	pb = protowire.AppendTag(pb, proofFieldPublicKey, protowire.BytesType)
	pb = protowire.AppendBytes(pb, p.PublicKey)
	for _, sib := range p.Siblings {
		pb = protowire.AppendTag(pb, proofFieldSiblings, protowire.BytesType)
		if sib == nil {
			pb = protowire.AppendBytes(pb, []byte{siblingAbsent})
		} else {
			marked := make([]byte, 0, len(sib)+1)
			marked = append(marked, siblingReal)
			marked = append(marked, sib...)
			pb = protowire.AppendBytes(pb, marked)
		}
	}
	pb = protowire.AppendTag(pb, proofFieldRootHash, protowire.BytesType)
	pb = protowire.AppendBytes(pb, p.RootHash)

	b = protowire.AppendTag(b, shareFieldProof, protowire.BytesType)
	return protowire.AppendBytes(b, pb)
}

// EncodeShareData serializes a ShareData into its binary record.
func EncodeShareData(s ShareData) []byte {
	var b []byte
	b = protowire.AppendTag(b, shareFieldData, protowire.BytesType)
	b = protowire.AppendBytes(b, s.Data)

	if s.HasK {
		b = protowire.AppendTag(b, shareFieldK, protowire.VarintType)
		b = protowire.AppendVarint(b, s.K)
	}
	if s.HasN {
		b = protowire.AppendTag(b, shareFieldN, protowire.VarintType)
		b = protowire.AppendVarint(b, s.N)
	}

	if s.HasSignature {
		for _, sig := range s.Signature {
			b = protowire.AppendTag(b, shareFieldSignature, protowire.BytesType)
			b = protowire.AppendBytes(b, sig)
		}
		if s.Proof != nil {
			b = appendProof(b, s.Proof)
		}
	}
	return b
}

func decodeProof(raw []byte) (*MerkleProof, error) {
	proof := &MerkleProof{}
	for len(raw) > 0 {
		num, typ, n := protowire.ConsumeTag(raw)
		if n < 0 {
			return nil, fmt.Errorf("wire: malformed proof tag: %w", protowire.ParseError(n))
		}
		raw = raw[n:]

		switch num {
		case proofFieldLeafIndex:
			v, n := protowire.ConsumeVarint(raw)
			if n < 0 {
				return nil, fmt.Errorf("wire: malformed proof leaf index")
			}
			proof.LeafIndex = int64(v)
			raw = raw[n:]
		case proofFieldPublicKey:
			v, n := protowire.ConsumeBytes(raw)
			if n < 0 {
				return nil, fmt.Errorf("wire: malformed proof public key")
			}
			proof.PublicKey = append([]byte{}, v...)
			raw = raw[n:]
		case proofFieldSiblings:
			v, n := protowire.ConsumeBytes(raw)
			if n < 0 {
				return nil, fmt.Errorf("wire: malformed proof sibling")
			}
			if len(v) == 0 {
				return nil, fmt.Errorf("wire: empty sibling marker")
			}
			switch v[0] {
			case siblingAbsent:
				proof.Siblings = append(proof.Siblings, nil)
			case siblingReal:
				proof.Siblings = append(proof.Siblings, append([]byte{}, v[1:]...))
			default:
				return nil, fmt.Errorf("wire: unrecognized sibling marker %d", v[0])
			}
			raw = raw[n:]
		case proofFieldRootHash:
			v, n := protowire.ConsumeBytes(raw)
			if n < 0 {
				return nil, fmt.Errorf("wire: malformed proof root hash")
			}
			proof.RootHash = append([]byte{}, v...)
			raw = raw[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, raw)
			if n < 0 {
				return nil, fmt.Errorf("wire: malformed unknown proof field %d", num)
			}
			raw = raw[n:]
		}
	}
	return proof, nil
}

// DecodeShareData parses a binary record produced by EncodeShareData.
// Unrecognized fields are skipped, so a payload from a newer encoder that
// adds fields still decodes.
func DecodeShareData(raw []byte) (ShareData, error) {
	var s ShareData
	for len(raw) > 0 {
		num, typ, n := protowire.ConsumeTag(raw)
		if n < 0 {
			return ShareData{}, fmt.Errorf("wire: malformed share tag: %w", protowire.ParseError(n))
		}
		raw = raw[n:]

		switch num {
		case shareFieldData:
			v, n := protowire.ConsumeBytes(raw)
			if n < 0 {
				return ShareData{}, fmt.Errorf("wire: malformed share data field")
			}
			s.Data = append([]byte{}, v...)
			raw = raw[n:]
		case shareFieldSignature:
			v, n := protowire.ConsumeBytes(raw)
			if n < 0 {
				return ShareData{}, fmt.Errorf("wire: malformed share signature field")
			}
			s.Signature = append(s.Signature, append([]byte{}, v...))
			s.HasSignature = true
			raw = raw[n:]
		case shareFieldProof:
			v, n := protowire.ConsumeBytes(raw)
			if n < 0 {
				return ShareData{}, fmt.Errorf("wire: malformed share proof field")
			}
			proof, err := decodeProof(v)
			if err != nil {
				return ShareData{}, err
			}
			s.Proof = proof
			s.HasSignature = true
			raw = raw[n:]
		case shareFieldK:
			v, n := protowire.ConsumeVarint(raw)
			if n < 0 {
				return ShareData{}, fmt.Errorf("wire: malformed share k field")
			}
			s.K = v
			s.HasK = true
			raw = raw[n:]
		case shareFieldN:
			v, n := protowire.ConsumeVarint(raw)
			if n < 0 {
				return ShareData{}, fmt.Errorf("wire: malformed share n field")
			}
			s.N = v
			s.HasN = true
			raw = raw[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, raw)
			if n < 0 {
				return ShareData{}, fmt.Errorf("wire: malformed unknown share field %d", num)
			}
			raw = raw[n:]
		}
	}
	return s, nil
}

// EncodeEnvelope serializes an Envelope into its binary record.
func EncodeEnvelope(e Envelope) []byte {
	var b []byte
	b = protowire.AppendTag(b, envelopeFieldVersion, protowire.VarintType)
	b = protowire.AppendVarint(b, e.Version)
	b = protowire.AppendTag(b, envelopeFieldSecret, protowire.BytesType)
	b = protowire.AppendBytes(b, e.Secret)
	if e.HasMime {
		b = protowire.AppendTag(b, envelopeFieldMime, protowire.BytesType)
		b = protowire.AppendBytes(b, []byte(e.Mime))
	}
	return b
}

// DecodeEnvelope parses a binary record produced by EncodeEnvelope.
func DecodeEnvelope(raw []byte) (Envelope, error) {
	var e Envelope
	for len(raw) > 0 {
		num, typ, n := protowire.ConsumeTag(raw)
		if n < 0 {
			return Envelope{}, fmt.Errorf("wire: malformed envelope tag: %w", protowire.ParseError(n))
		}
		raw = raw[n:]

		switch num {
		case envelopeFieldVersion:
			v, n := protowire.ConsumeVarint(raw)
			if n < 0 {
				return Envelope{}, fmt.Errorf("wire: malformed envelope version field")
			}
			e.Version = v
			raw = raw[n:]
		case envelopeFieldSecret:
			v, n := protowire.ConsumeBytes(raw)
			if n < 0 {
				return Envelope{}, fmt.Errorf("wire: malformed envelope secret field")
			}
			e.Secret = append([]byte{}, v...)
			raw = raw[n:]
		case envelopeFieldMime:
			v, n := protowire.ConsumeBytes(raw)
			if n < 0 {
				return Envelope{}, fmt.Errorf("wire: malformed envelope mime field")
			}
			e.Mime = string(v)
			e.HasMime = true
			raw = raw[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, raw)
			if n < 0 {
				return Envelope{}, fmt.Errorf("wire: malformed unknown envelope field %d", num)
			}
			raw = raw[n:]
		}
	}
	return e, nil
}

package sss

import (
	"crypto/ed25519"
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"

	"github.com/lcrostarosa/airgapper-sss/internal/motsig"
	"github.com/lcrostarosa/airgapper-sss/internal/wire"
)

// Share is one k-of-n Shamir share: its identifier, the threshold and total
// it was dealt under, its data column, and — when the dealing was signed —
// the one-time signature and Merkle inclusion proof binding it to the
// other shares from the same ceremony.
type Share struct {
	ID   int
	K    int
	N    int
	Data []byte

	Signed    bool
	Signature [][]byte
	Proof     motsig.Proof
}

// formatForSigning returns the canonical byte string signed for a share:
// "k-n-base64(data)". All n such strings from a single dealing are signed
// together in one call to SignMany.
func formatForSigning(k, n int, data []byte) []byte {
	return []byte(fmt.Sprintf("%d-%d-%s", k, n, base64.StdEncoding.EncodeToString(data)))
}

// String renders the share in the "K-ID-BASE64(payload)" wire grammar.
func (s Share) String() string {
	sd := wire.ShareData{
		Data: s.Data,
		HasK: true,
		K:    uint64(s.K),
		HasN: true,
		N:    uint64(s.N),
	}
	if s.Signed {
		sd.HasSignature = true
		sd.Signature = s.Signature
		sd.Proof = &wire.MerkleProof{
			LeafIndex: int64(s.Proof.LeafIndex),
			PublicKey: s.Proof.PublicKey,
			Siblings:  s.Proof.Siblings,
			RootHash:  s.Proof.RootHash,
		}
	}
	payload := wire.EncodeShareData(sd)
	return fmt.Sprintf("%d-%d-%s", s.K, s.ID, base64.StdEncoding.EncodeToString(payload))
}

// ParseShare parses a share string in the "K-ID-BASE64(payload)" grammar.
// The outer string carries only K and the share ID; N is taken from the
// payload's embedded N field and is left at zero when the payload has none.
// ordinal is used only to identify this entry in parsing error messages
// before a real ID is known (mirroring the upstream parser, which numbers
// shares by their position in the input list until they parse).
func ParseShare(raw string, ordinal int) (Share, error) {
	parts := strings.SplitN(raw, "-", 3)
	if len(parts) != 3 {
		return Share{}, &ShareParsingError{ID: ordinal, Raw: raw}
	}

	k, err := strconv.ParseUint(parts[0], 10, 8)
	if err != nil {
		return Share{}, &ShareParsingError{ID: ordinal, Raw: raw}
	}
	id, err := strconv.ParseUint(parts[1], 10, 8)
	if err != nil {
		return Share{}, &ShareParsingError{ID: ordinal, Raw: raw}
	}

	payload, err := base64.StdEncoding.DecodeString(parts[2])
	if err != nil {
		return Share{}, &ShareParsingError{ID: ordinal, Raw: raw}
	}

	sd, err := wire.DecodeShareData(payload)
	if err != nil {
		return Share{}, &CorruptedShareError{ID: int(id)}
	}

	if sd.HasK && sd.K != k {
		return Share{}, &CorruptedShareError{ID: int(id)}
	}

	share := Share{
		ID:   int(id),
		K:    int(k),
		Data: sd.Data,
	}
	if sd.HasN {
		share.N = int(sd.N)
	}

	if sd.HasSignature {
		share.Signed = true
		share.Signature = sd.Signature
		if sd.Proof != nil {
			share.Proof = motsig.Proof{
				LeafIndex: int(sd.Proof.LeafIndex),
				PublicKey: ed25519.PublicKey(sd.Proof.PublicKey),
				Siblings:  sd.Proof.Siblings,
				RootHash:  sd.Proof.RootHash,
			}
		}
	}

	return share, nil
}

// ParseShares parses every raw share string, numbering parse failures by
// their position in the input.
func ParseShares(raws []string) ([]Share, error) {
	shares := make([]Share, len(raws))
	for i, raw := range raws {
		s, err := ParseShare(raw, i)
		if err != nil {
			return nil, err
		}
		shares[i] = s
	}
	return shares, nil
}

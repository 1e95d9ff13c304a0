// Package motsig implements the Merkle one-time-signature primitive that
// share signing builds on: sign_many(messages) commits to a fresh Ed25519
// key pair per message, signs each message with its own one-time key, and
// binds all the one-time public keys into a single Merkle root so that a
// verifier holding only one message's signature, proof, and the root can
// confirm the message was part of the same batch — without trusting any
// long-lived key.
//
// The scheme's "one-time" property comes entirely from discipline at the
// call site: SignMany must only ever be invoked once per dealing
// ceremony, with every share's canonical signing string in the same
// batch, so that the resulting root uniquely identifies that ceremony.
package motsig

import (
	"crypto/ed25519"
	"crypto/rand"
	"fmt"

	"golang.org/x/crypto/blake2b"
)

// Proof is a Merkle inclusion proof binding a one-time public key to a
// batch root.
type Proof struct {
	// LeafIndex is this message's position in the signed batch.
	LeafIndex int
	// PublicKey is the one-time Ed25519 public key that signed this leaf's
	// message.
	PublicKey ed25519.PublicKey
	// Siblings are the sibling hashes along the path from this leaf up to
	// the root, ordered bottom-up.
	Siblings [][]byte
	// RootHash is the Merkle root the proof was built against, carried
	// alongside the proof so a verifier can bucket shares by root without
	// needing a separate channel for it.
	RootHash []byte
}

// Signed pairs one message's signature with its inclusion proof.
type Signed struct {
	Signature []byte
	Proof     Proof
}

// Domain-separation prefixes for leaf and internal node hashing. Without
// these, a two-child internal node hash (blake2b over the concatenation of
// two 32-byte children) and some other leaf's hash could in principle be
// confused by a verifier walking a proof, letting an attacker graft an
// internal node in where a leaf is expected. Prefixing each hash input by
// the kind of node being hashed rules that out.
const (
	leafHashPrefix = 0x00
	nodeHashPrefix = 0x01
)

func leafHash(publicKey ed25519.PublicKey) []byte {
	h := blake2b.Sum256(append([]byte{leafHashPrefix}, publicKey...))
	return h[:]
}

func nodeHash(left, right []byte) []byte {
	buf := make([]byte, 0, 1+len(left)+len(right))
	buf = append(buf, nodeHashPrefix)
	buf = append(buf, left...)
	buf = append(buf, right...)
	h := blake2b.Sum256(buf)
	return h[:]
}

// SignMany generates one one-time Ed25519 key pair per message, signs
// each message with its own key, and commits all the public keys into a
// single Merkle tree. It returns one Signed result per message, in input
// order, each carrying a proof against the same root.
func SignMany(messages [][]byte) ([]Signed, []byte, error) {
	if len(messages) == 0 {
		return nil, nil, fmt.Errorf("motsig: cannot sign an empty batch")
	}

	publicKeys := make([]ed25519.PublicKey, len(messages))
	signatures := make([][]byte, len(messages))

	for i, msg := range messages {
		pub, priv, err := ed25519.GenerateKey(rand.Reader)
		if err != nil {
			return nil, nil, fmt.Errorf("motsig: failed to generate one-time key pair: %w", err)
		}
		publicKeys[i] = pub
		signatures[i] = ed25519.Sign(priv, msg)
	}

	layers := buildTree(publicKeys)
	root := layers[len(layers)-1][0]

	signed := make([]Signed, len(messages))
	for i := range messages {
		signed[i] = Signed{
			Signature: signatures[i],
			Proof: Proof{
				LeafIndex: i,
				PublicKey: publicKeys[i],
				Siblings:  siblingPath(layers, i),
				RootHash:  root,
			},
		}
	}
	return signed, root, nil
}

// buildTree returns every layer of the Merkle tree, leaves first, root
// last. When a layer has an odd number of nodes, its final node is
// promoted to the next layer unchanged rather than duplicated and
// rehashed; siblingPath records that level with a nil sibling.
func buildTree(publicKeys []ed25519.PublicKey) [][][]byte {
	leaves := make([][]byte, len(publicKeys))
	for i, pk := range publicKeys {
		leaves[i] = leafHash(pk)
	}

	layers := [][][]byte{leaves}
	current := leaves
	for len(current) > 1 {
		var next [][]byte
		for i := 0; i < len(current); i += 2 {
			if i+1 < len(current) {
				next = append(next, nodeHash(current[i], current[i+1]))
			} else {
				next = append(next, current[i])
			}
		}
		layers = append(layers, next)
		current = next
	}
	return layers
}

// siblingPath walks up the tree from leafIndex, collecting the sibling
// needed to recompute each parent.
func siblingPath(layers [][][]byte, leafIndex int) [][]byte {
	var siblings [][]byte
	idx := leafIndex
	for layer := 0; layer < len(layers)-1; layer++ {
		level := layers[layer]
		var siblingIdx int
		if idx%2 == 0 {
			siblingIdx = idx + 1
		} else {
			siblingIdx = idx - 1
		}
		if siblingIdx < len(level) {
			siblings = append(siblings, level[siblingIdx])
		} else {
			// Odd node promoted without a sibling; nil marks that this
			// level passes the hash through unchanged rather than
			// combining it with anything.
			siblings = append(siblings, nil)
		}
		idx /= 2
	}
	return siblings
}

// Verify checks that message was signed by the one-time key committed to
// in proof, and that proof's sibling path recomputes to root.
func Verify(message []byte, signature []byte, proof Proof, root []byte) error {
	if !ed25519.Verify(proof.PublicKey, message, signature) {
		return fmt.Errorf("motsig: signature does not verify against the one-time public key")
	}

	hash := leafHash(proof.PublicKey)
	idx := proof.LeafIndex
	for _, sibling := range proof.Siblings {
		switch {
		case sibling == nil:
			// Promoted without a partner at this level; hash unchanged.
		case idx%2 == 0:
			hash = nodeHash(hash, sibling)
		default:
			hash = nodeHash(sibling, hash)
		}
		idx /= 2
	}

	if string(hash) != string(root) {
		return fmt.Errorf("motsig: proof does not recompute to the expected root")
	}
	return nil
}

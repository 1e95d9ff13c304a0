package testutil

import (
	"bytes"
	"context"
	"fmt"

	sss "github.com/lcrostarosa/airgapper-sss"
)

// SSSFixture provides a complete split/recover test setup built around the
// public sss package.
type SSSFixture struct {
	// Secret is the original secret data.
	Secret []byte
	// SecretHash is SHA256 of the secret.
	SecretHash [32]byte
	// Shares is the result of splitting the secret, as wire strings.
	Shares []string
	// Threshold is the minimum shares needed (k).
	Threshold int
	// TotalShares is the total number of shares (n).
	TotalShares int
	// Signed records whether Shares carry Merkle signatures.
	Signed bool
}

// SSSFixtureBuilder constructs SSSFixture with a fluent API.
type SSSFixtureBuilder struct {
	secret    []byte
	threshold int
	total     int
	sign      bool
	opts      []FixtureOption
	err       error
}

// NewSSSFixture starts building an SSS fixture.
func NewSSSFixture() *SSSFixtureBuilder {
	return &SSSFixtureBuilder{
		threshold: 2,
		total:     2,
	}
}

// WithSecret sets a specific secret for the fixture.
func (b *SSSFixtureBuilder) WithSecret(secret []byte) *SSSFixtureBuilder {
	b.secret = secret
	return b
}

// WithRandomSecret generates a random secret of the specified byte size.
func (b *SSSFixtureBuilder) WithRandomSecret(size int) *SSSFixtureBuilder {
	r := newRand(b.opts...)
	b.secret = generateRandomBytes(r, size)
	return b
}

// WithThreshold sets the k-of-n threshold scheme.
func (b *SSSFixtureBuilder) WithThreshold(k, n int) *SSSFixtureBuilder {
	if k < 1 {
		b.err = fmt.Errorf("threshold k must be at least 1, got %d", k)
		return b
	}
	if n < k {
		b.err = fmt.Errorf("total n must be >= threshold k, got k=%d, n=%d", k, n)
		return b
	}
	b.threshold = k
	b.total = n
	return b
}

// WithSeed sets deterministic seeding for reproducible tests.
func (b *SSSFixtureBuilder) WithSeed(seed int64) *SSSFixtureBuilder {
	b.opts = append(b.opts, WithSeed(seed))
	return b
}

// WithSigning requests Merkle-signed shares.
func (b *SSSFixtureBuilder) WithSigning() *SSSFixtureBuilder {
	b.sign = true
	return b
}

// Build creates the SSSFixture, performing the split operation.
func (b *SSSFixtureBuilder) Build() (*SSSFixture, error) {
	if b.err != nil {
		return nil, b.err
	}

	if b.secret == nil {
		r := newRand(b.opts...)
		b.secret = generateRandomBytes(r, 32)
	}

	shares, err := sss.Split(context.Background(), b.threshold, b.total, b.secret, b.sign)
	if err != nil {
		return nil, fmt.Errorf("sss split failed: %w", err)
	}

	return &SSSFixture{
		Secret:      b.secret,
		SecretHash:  HashData(b.secret),
		Shares:      shares,
		Threshold:   b.threshold,
		TotalShares: b.total,
		Signed:      b.sign,
	}, nil
}

// MustBuild creates the fixture or panics (for use in test setup).
func (b *SSSFixtureBuilder) MustBuild() *SSSFixture {
	f, err := b.Build()
	if err != nil {
		panic(fmt.Sprintf("SSSFixture build failed: %v", err))
	}
	return f
}

// Recover reconstructs the secret using the specified share indices.
func (f *SSSFixture) Recover(indices ...int) ([]byte, error) {
	if len(indices) < f.Threshold {
		return nil, fmt.Errorf("need at least %d shares, got %d", f.Threshold, len(indices))
	}

	subset := make([]string, len(indices))
	for i, idx := range indices {
		if idx < 0 || idx >= len(f.Shares) {
			return nil, fmt.Errorf("invalid share index %d (have %d shares)", idx, len(f.Shares))
		}
		subset[i] = f.Shares[idx]
	}

	return sss.Recover(subset, f.Signed)
}

// ValidateReconstruction recovers shares and verifies the result matches
// the original secret.
func (f *SSSFixture) ValidateReconstruction(indices ...int) error {
	reconstructed, err := f.Recover(indices...)
	if err != nil {
		return fmt.Errorf("recover failed: %w", err)
	}

	if !CompareHashes(HashData(reconstructed), f.SecretHash) {
		return fmt.Errorf("hash mismatch: expected %x", f.SecretHash[:8])
	}

	if !bytes.Equal(f.Secret, reconstructed) {
		return fmt.Errorf("content mismatch")
	}

	return nil
}

// AllCombinations returns all valid k-combinations of share indices.
func (f *SSSFixture) AllCombinations() [][]int {
	return combinations(f.TotalShares, f.Threshold)
}

// combinations generates all k-combinations from n items (0..n-1).
func combinations(n, k int) [][]int {
	var result [][]int
	indices := make([]int, k)
	for i := range indices {
		indices[i] = i
	}

	for {
		combo := make([]int, k)
		copy(combo, indices)
		result = append(result, combo)

		i := k - 1
		for i >= 0 && indices[i] == n-k+i {
			i--
		}
		if i < 0 {
			break
		}

		indices[i]++
		for j := i + 1; j < k; j++ {
			indices[j] = indices[j-1] + 1
		}
	}

	return result
}

// TamperedShare returns the share string at index with its payload data
// tampered.
func (f *SSSFixture) TamperedShare(index int) string {
	if index < 0 || index >= len(f.Shares) {
		panic(fmt.Sprintf("invalid share index %d", index))
	}

	s, err := sss.ParseShare(f.Shares[index], index)
	if err != nil {
		panic(fmt.Sprintf("fixture share %d failed to parse: %v", index, err))
	}

	if len(s.Data) > 0 {
		s.Data[0] ^= 0xFF
	}
	return s.String()
}

// Package sss implements threshold Shamir secret sharing over GF(2^8):
// splitting an arbitrary byte string into n shares such that any k recover
// it exactly, optional per-share authentication via a one-time Merkle
// signature scheme, and a versioned envelope for carrying MIME metadata
// alongside the secret.
package sss

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/lcrostarosa/airgapper-sss/internal/logging"
	"github.com/lcrostarosa/airgapper-sss/internal/motsig"
	"github.com/lcrostarosa/airgapper-sss/internal/randutil"
	"github.com/lcrostarosa/airgapper-sss/internal/recoverer"
	"github.com/lcrostarosa/airgapper-sss/internal/splitter"
	"github.com/lcrostarosa/airgapper-sss/internal/validate"
)

// Split divides secret into n shares such that any k of them recover it
// exactly; fewer than k reveal nothing. When sign is true, every share
// additionally carries a one-time Merkle signature binding it to the
// other n-1 shares from this dealing.
func Split(ctx context.Context, k, n int, secret []byte, sign bool) ([]string, error) {
	opID := uuid.New().String()
	log := logging.L().With(logging.String("op", "split"), logging.String("op_id", opID))

	if k == 0 || n == 0 {
		return nil, &InvalidSplitParametersZeroError{K: k, N: n}
	}
	if k > n || n > 255 {
		return nil, &InvalidThresholdError{K: k, N: n}
	}

	log.Debug("splitting secret", logging.Int("k", k), logging.Int("n", n), logging.Bool("sign", sign))

	src := randutil.New(randutil.DefaultBurst)
	raw, err := splitter.Split(ctx, secret, k, n, src)
	if err != nil {
		log.Error("split failed", logging.Err(err))
		return nil, &CannotGenerateRandomNumbersError{Cause: err}
	}

	shares := make([]Share, len(raw))
	for i, rs := range raw {
		shares[i] = Share{ID: int(rs.ID), K: k, N: n, Data: rs.Data}
	}

	if sign {
		if err := signShares(shares); err != nil {
			log.Error("signing failed", logging.Err(err))
			return nil, err
		}
	}

	out := make([]string, len(shares))
	for i, s := range shares {
		out[i] = s.String()
	}
	log.Info("split complete", logging.Int("shares", len(out)))
	return out, nil
}

// signShares computes the canonical signing string for every share, signs
// them as one batch via the Merkle one-time-signature primitive, and
// attaches each share's signature and inclusion proof in place.
func signShares(shares []Share) error {
	messages := make([][]byte, len(shares))
	for i, s := range shares {
		messages[i] = formatForSigning(s.K, s.N, s.Data)
	}

	signed, _, err := motsig.SignMany(messages)
	if err != nil {
		return fmt.Errorf("sss: failed to sign shares: %w", err)
	}

	for i := range shares {
		shares[i].Signed = true
		shares[i].Signature = [][]byte{signed[i].Signature}
		shares[i].Proof = signed[i].Proof
	}
	return nil
}

// Recover reconstructs the original secret from a set of share strings.
// At least k of the n shares from a dealing must be present; any k
// suffice, and any fewer reveal nothing. When verify is true, every
// candidate share must carry a valid signature against a shared Merkle
// root, or recovery fails.
func Recover(shares []string, verify bool) ([]byte, error) {
	opID := uuid.New().String()
	log := logging.L().With(logging.String("op", "recover"), logging.String("op_id", opID))

	parsed, err := ParseShares(shares)
	if err != nil {
		log.Warn("share parsing failed", logging.Err(err))
		return nil, err
	}

	vshares := make([]validate.Share, len(parsed))
	for i, s := range parsed {
		vshares[i] = validate.Share{
			ID:       s.ID,
			K:        s.K,
			N:        s.N,
			Data:     s.Data,
			Signed:   s.Signed,
			RootHash: s.Proof.RootHash,
		}
	}

	result, err := validate.Run(vshares, verify)
	if err != nil {
		log.Warn("validation failed", logging.Err(err))
		return nil, translateValidationError(err)
	}

	if verify {
		byID := make(map[int]Share, len(parsed))
		for _, s := range parsed {
			byID[s.ID] = s
		}
		for _, vs := range result.Shares {
			s := byID[vs.ID]
			msg := formatForSigning(s.K, s.N, s.Data)
			var sig []byte
			if len(s.Signature) > 0 {
				sig = s.Signature[0]
			}
			if err := motsig.Verify(msg, sig, s.Proof, s.Proof.RootHash); err != nil {
				log.Warn("signature verification failed", logging.Int("share_id", s.ID), logging.Err(err))
				return nil, &InvalidSignatureError{ID: s.ID, Detail: err.Error()}
			}
		}
	}

	points := make([]recoverer.Point, len(result.Shares))
	for i, vs := range result.Shares {
		points[i] = recoverer.Point{ID: byte(vs.ID), Data: vs.Data}
	}

	secret, err := recoverer.Recover(points)
	if err != nil {
		log.Error("recovery failed", logging.Err(err))
		return nil, fmt.Errorf("sss: recovery failed: %w", err)
	}

	log.Info("recovery complete", logging.Int("secret_len", len(secret)))
	return secret, nil
}

// translateValidationError maps the validation pipeline's generic error
// kinds onto this package's public, payload-bearing error taxonomy.
func translateValidationError(err error) error {
	ve, ok := err.(*validate.Error)
	if !ok {
		return err
	}
	switch ve.Kind {
	case validate.KindEmptyShares:
		return &EmptySharesError{}
	case validate.KindShareIdentifierTooBig:
		return &ShareIdentifierTooBigError{ID: ve.ShareID, N: ve.N}
	case validate.KindDuplicateShareID:
		return &DuplicateShareIDError{ID: ve.ShareID}
	case validate.KindDuplicateShareData:
		return &DuplicateShareDataError{ID: ve.ShareID}
	case validate.KindIncompatibleThresholds, validate.KindIncompatibleRoots:
		return &IncompatibleSetsError{Buckets: ve.Buckets}
	case validate.KindMissingShares:
		return &MissingSharesError{Required: ve.Required, Provided: ve.Provided}
	case validate.KindMissingSignature:
		return &MissingSignatureError{ID: ve.ShareID}
	default:
		return err
	}
}

// SplitWrapped is Split's envelope variant: secret is wrapped in a
// versioned Envelope (optionally tagged with a MIME type) before being
// split, so RecoverWrapped can hand back both the secret and its
// metadata.
func SplitWrapped(ctx context.Context, k, n int, secret []byte, mime string, hasMime bool, sign bool) ([]string, error) {
	env := Envelope{
		Version: InitialRelease,
		Secret:  secret,
		Mime:    mime,
		HasMime: hasMime,
	}
	return Split(ctx, k, n, env.Encode(), sign)
}

// RecoverWrapped is Recover's envelope variant: the recovered bytes are
// decoded back into an Envelope rather than returned raw.
func RecoverWrapped(shares []string, verify bool) (Envelope, error) {
	secret, err := Recover(shares, verify)
	if err != nil {
		return Envelope{}, err
	}
	return DecodeEnvelope(secret)
}

package sss

import "fmt"

// Error is implemented by every error kind this package returns, so callers
// can type-switch on the concrete kind when they need more than the message.
type Error interface {
	error
	sssError()
}

// InvalidThresholdError reports that the requested threshold k exceeds the
// total number of shares n, or that n exceeds 255.
type InvalidThresholdError struct {
	K, N int
}

func (e *InvalidThresholdError) Error() string {
	return fmt.Sprintf("sss: threshold k must be smaller than or equal to n, got k=%d, n=%d", e.K, e.N)
}
func (*InvalidThresholdError) sssError() {}

// InvalidSplitParametersZeroError reports that k or n was zero.
type InvalidSplitParametersZeroError struct {
	K, N int
}

func (e *InvalidSplitParametersZeroError) Error() string {
	return fmt.Sprintf("sss: parameters k and n must be greater than zero, got k=%d, n=%d", e.K, e.N)
}
func (*InvalidSplitParametersZeroError) sssError() {}

// EmptySharesError reports that no shares were supplied, or that bucketing
// found no threshold at all.
type EmptySharesError struct{}

func (e *EmptySharesError) Error() string { return "sss: no shares were provided" }
func (*EmptySharesError) sssError()       {}

// IncompatibleSetsError reports that the supplied shares disagree on their
// threshold or on their signing root, and so cannot be combined. Buckets
// holds the share ids grouped by whichever property disagreed.
type IncompatibleSetsError struct {
	Buckets [][]int
}

func (e *IncompatibleSetsError) Error() string {
	return fmt.Sprintf("sss: the shares are incompatible with each other (%d disjoint sets)", len(e.Buckets))
}
func (*IncompatibleSetsError) sssError() {}

// ShareIdentifierTooBigError reports a share id outside [1, n].
type ShareIdentifierTooBigError struct {
	ID, N int
}

func (e *ShareIdentifierTooBigError) Error() string {
	return fmt.Sprintf("sss: share identifier %d is bigger than the maximum number of shares %d", e.ID, e.N)
}
func (*ShareIdentifierTooBigError) sssError() {}

// MissingSharesError reports that fewer than the threshold's worth of
// shares were provided.
type MissingSharesError struct {
	Required, Provided int
}

func (e *MissingSharesError) Error() string {
	return fmt.Sprintf("sss: %d shares are required to recover the secret, found only %d", e.Required, e.Provided)
}
func (*MissingSharesError) sssError() {}

// DuplicateShareIDError reports that a share id was seen more than once.
type DuplicateShareIDError struct {
	ID int
}

func (e *DuplicateShareIDError) Error() string {
	return fmt.Sprintf("sss: share id %d has already been used by a previous share", e.ID)
}
func (*DuplicateShareIDError) sssError() {}

// DuplicateShareDataError reports that a share's data column matches a
// previous share's, which is only a problem outside the k=1 degenerate
// case.
type DuplicateShareDataError struct {
	ID int
}

func (e *DuplicateShareDataError) Error() string {
	return fmt.Sprintf("sss: the data encoded in share #%d matches a previous share", e.ID)
}
func (*DuplicateShareDataError) sssError() {}

// ShareParsingError reports that a share string did not match the
// K-ID-BASE64(payload) grammar.
type ShareParsingError struct {
	ID  int
	Raw string
}

func (e *ShareParsingError) Error() string {
	return fmt.Sprintf("sss: share #%d is incorrectly formatted: %q", e.ID, e.Raw)
}
func (*ShareParsingError) sssError() {}

// CorruptedShareError reports that a share's base64 payload decoded to
// bytes the structured codec could not parse.
type CorruptedShareError struct {
	ID int
}

func (e *CorruptedShareError) Error() string {
	return fmt.Sprintf("sss: share #%d is corrupted", e.ID)
}
func (*CorruptedShareError) sssError() {}

// MissingSignatureError reports that signature verification was requested
// but a share carries no signature.
type MissingSignatureError struct {
	ID int
}

func (e *MissingSignatureError) Error() string {
	return fmt.Sprintf("sss: share #%d is missing a signature", e.ID)
}
func (*MissingSignatureError) sssError() {}

// InvalidSignatureError reports that a share's signature failed
// cryptographic verification.
type InvalidSignatureError struct {
	ID     int
	Detail string
}

func (e *InvalidSignatureError) Error() string {
	return fmt.Sprintf("sss: signature of share #%d is not valid: %s", e.ID, e.Detail)
}
func (*InvalidSignatureError) sssError() {}

// SecretDeserializationError reports that the envelope decode failed after
// recovery.
type SecretDeserializationError struct {
	Cause error
}

func (e *SecretDeserializationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("sss: failed to deserialize the recovered secret: %v", e.Cause)
	}
	return "sss: failed to deserialize the recovered secret"
}
func (e *SecretDeserializationError) Unwrap() error { return e.Cause }
func (*SecretDeserializationError) sssError()       {}

// CannotGenerateRandomNumbersError reports that the OS random source
// failed or was cancelled.
type CannotGenerateRandomNumbersError struct {
	Cause error
}

func (e *CannotGenerateRandomNumbersError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("sss: cannot generate random numbers: %v", e.Cause)
	}
	return "sss: cannot generate random numbers"
}
func (e *CannotGenerateRandomNumbersError) Unwrap() error { return e.Cause }
func (*CannotGenerateRandomNumbersError) sssError()       {}

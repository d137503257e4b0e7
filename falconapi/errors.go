package falconapi

import (
	"errors"
	"fmt"

	"github.com/pornin/go-falcon/falcon"
)

var (
	// ErrEntropyUnavailable is returned when the entropy source cannot
	// provide a seed.
	ErrEntropyUnavailable = errors.New("falconapi: entropy unavailable")
	// ErrKeyGenerationFailed is matched by primitive failures during
	// key generation.
	ErrKeyGenerationFailed = errors.New("falconapi: key generation failed")
	// ErrSigningFailed is matched by primitive failures during signing.
	ErrSigningFailed = errors.New("falconapi: signing failed")
	// ErrVerificationFailed is matched by unexpected primitive statuses
	// during verification (a signature mismatch is not an error).
	ErrVerificationFailed = errors.New("falconapi: verification failed")
	// ErrDecodingFailed is matched by primitive failures while decoding
	// signatures or public keys.
	ErrDecodingFailed = errors.New("falconapi: decoding failed")
	// ErrHashComputationFailed is matched by primitive failures while
	// hashing a message to a polynomial.
	ErrHashComputationFailed = errors.New("falconapi: hash computation failed")
	// ErrParameterMismatch is returned when a key, a signature or a
	// parameter does not match the degree in effect.
	ErrParameterMismatch = errors.New("falconapi: security parameter mismatch")
	// ErrInsufficientCapacity is returned when caller-provided storage
	// is shorter than the ring degree.
	ErrInsufficientCapacity = errors.New("falconapi: insufficient capacity")
)

// Op names a primitive operation.
type Op string

const (
	OpKeyGen Op = "keygen"
	OpSign   Op = "sign"
	OpVerify Op = "verify"
	OpDecode Op = "decode"
	OpHash   Op = "hash"
)

// PrimitiveError reports a failure status of the signing primitive.
// It matches both the sentinel error of its operation and the
// falcon.ErrorCode of its status with errors.Is.
type PrimitiveError struct {
	Op   Op
	Code int
}

func (e *PrimitiveError) Error() string {
	return fmt.Sprintf("falconapi: %s: primitive status %d (%v)",
		e.Op, e.Code, falcon.ErrorCode(e.Code))
}

func (e *PrimitiveError) Unwrap() []error {
	errs := []error{falcon.ErrorCode(e.Code)}
	if s := opSentinel(e.Op); s != nil {
		errs = append(errs, s)
	}
	return errs
}

func opSentinel(op Op) error {
	switch op {
	case OpKeyGen:
		return ErrKeyGenerationFailed
	case OpSign:
		return ErrSigningFailed
	case OpVerify:
		return ErrVerificationFailed
	case OpDecode:
		return ErrDecodingFailed
	case OpHash:
		return ErrHashComputationFailed
	}
	return nil
}

func primitiveError(op Op, err error) error {
	return &PrimitiveError{Op: op, Code: falcon.Code(err)}
}

// StatusCode returns the primitive status carried by err, or 0 if err
// does not come from the primitive.
func StatusCode(err error) int {
	var pe *PrimitiveError
	if errors.As(err, &pe) {
		return pe.Code
	}
	var ec falcon.ErrorCode
	if errors.As(err, &ec) {
		return int(ec)
	}
	return 0
}

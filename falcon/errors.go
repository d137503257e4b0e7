package falcon

import (
	"errors"
	"strconv"
)

// ErrorCode is a status code reported by the primitive. Successful calls
// return a nil error; failures return one of the constants below, whose
// numeric values are the Falcon status codes.
type ErrorCode int

const (
	// ErrRandom is returned when the random source fails.
	ErrRandom ErrorCode = -1
	// ErrSize is returned when a buffer is too small.
	ErrSize ErrorCode = -2
	// ErrFormat is returned when a key or signature cannot be decoded.
	ErrFormat ErrorCode = -3
	// ErrBadSig is returned when a well-formed signature does not match.
	ErrBadSig ErrorCode = -4
	// ErrBadArg is returned for an invalid parameter (degree, type).
	ErrBadArg ErrorCode = -5
	// ErrInternal signals an unexpected internal failure.
	ErrInternal ErrorCode = -6
)

func (e ErrorCode) Error() string {
	switch e {
	case ErrRandom:
		return "falcon: random source failure"
	case ErrSize:
		return "falcon: buffer too small"
	case ErrFormat:
		return "falcon: invalid encoding"
	case ErrBadSig:
		return "falcon: signature mismatch"
	case ErrBadArg:
		return "falcon: invalid argument"
	case ErrInternal:
		return "falcon: internal error"
	}
	return "falcon: status " + strconv.Itoa(int(e))
}

// Code returns the numeric status carried by err: 0 for nil, the Falcon
// code for an ErrorCode (possibly wrapped), and the ErrInternal code
// for anything else.
func Code(err error) int {
	if err == nil {
		return 0
	}
	var ec ErrorCode
	if errors.As(err, &ec) {
		return int(ec)
	}
	return int(ErrInternal)
}

package falconapi

import (
	"fmt"
	"time"

	"github.com/pornin/go-falcon/falcon"
	"go.uber.org/zap"
)

// DecodedSignature holds the vectors recovered from a verified
// signature. They satisfy S1 + S2*PublicKey = c mod (X^n+1, q), where c
// is the hash polynomial of the message.
type DecodedSignature struct {
	S1        []int16
	S2        []int16
	PublicKey []uint16
}

// DecodedKeyResult is the outcome of decoding one public key.
type DecodedKeyResult struct {
	Coeffs []uint16
	Err    error
}

// DecodeSignatureAndKey verifies a deterministic signature over message
// and writes the short vectors s1 and s2 and the decoded public key h
// into caller storage. Each slice must hold at least 512 elements; only the first
// 512 are written.
func (e *Engine) DecodeSignatureAndKey(signature, publicKey, message []byte,
	s1, s2 []int16, h []uint16) (err error) {

	start := time.Now()
	defer func() {
		e.finish(OpDecode, SignParameter, start, err, false, zap.Int("size", len(signature)))
	}()

	if err := checkPublicKey(SignParameter, publicKey); err != nil {
		return err
	}
	n := SignParameter.Degree()
	if len(s1) < n || len(s2) < n || len(h) < n {
		return fmt.Errorf("%w: need %d elements, have s1=%d s2=%d h=%d",
			ErrInsufficientCapacity, n, len(s1), len(s2), len(h))
	}
	err = withScratch(SignParameter, func(tmp []byte) error {
		return falcon.ExtractValues(signature, falcon.SigDeterministic, publicKey, message,
			tmp, s1[:n], s2[:n], h[:n])
	})
	if err != nil {
		return primitiveError(OpDecode, err)
	}
	return nil
}

// DecodeSignatureAndKeyAlloc is DecodeSignatureAndKey with freshly
// allocated outputs.
func (e *Engine) DecodeSignatureAndKeyAlloc(signature, publicKey, message []byte) (*DecodedSignature, error) {
	n := SignParameter.Degree()
	d := &DecodedSignature{
		S1:        make([]int16, n),
		S2:        make([]int16, n),
		PublicKey: make([]uint16, n),
	}
	if err := e.DecodeSignatureAndKey(signature, publicKey, message, d.S1, d.S2, d.PublicKey); err != nil {
		return nil, err
	}
	return d, nil
}

// MessageHashPolynomial returns the hash of message to a polynomial of
// degree 512 with coefficients in [0, q-1]. An empty nonce gives the
// hash used by deterministic signatures.
func (e *Engine) MessageHashPolynomial(nonce, message []byte) (c []uint16, err error) {
	start := time.Now()
	defer func() {
		e.finish(OpHash, SignParameter, start, err, false)
	}()

	c = make([]uint16, SignParameter.Degree())
	if err := falcon.HashToPoint(uint(SignParameter), nonce, message, c); err != nil {
		return nil, primitiveError(OpHash, err)
	}
	return c, nil
}

// DecodePublicKeys decodes each public key independently. Results are
// in input order; a failing key does not affect the others.
func (e *Engine) DecodePublicKeys(publicKeys [][]byte) []DecodedKeyResult {
	start := time.Now()
	res := make([]DecodedKeyResult, len(publicKeys))
	failed := 0
	for i, pk := range publicKeys {
		res[i] = decodePublicKey(pk)
		if res[i].Err != nil {
			failed++
		}
	}
	e.finish(OpDecode, SignParameter, start, nil, false,
		zap.Int("keys", len(publicKeys)), zap.Int("failed", failed))
	return res
}

func decodePublicKey(publicKey []byte) DecodedKeyResult {
	if err := checkPublicKey(SignParameter, publicKey); err != nil {
		return DecodedKeyResult{Err: err}
	}
	h := make([]uint16, SignParameter.Degree())
	if _, err := falcon.DecodePublicKey(publicKey, h); err != nil {
		return DecodedKeyResult{Err: primitiveError(OpDecode, err)}
	}
	return DecodedKeyResult{Coeffs: h}
}

// DecodeShortVectorS2 decodes the s2 vector of a deterministic
// Falcon-512 signature. The signature is not verified.
func (e *Engine) DecodeShortVectorS2(signature []byte) (s2 []int16, err error) {
	start := time.Now()
	defer func() {
		e.finish(OpDecode, SignParameter, start, err, false, zap.Int("size", len(signature)))
	}()

	logn, err := falcon.GetLogn(signature)
	if err != nil {
		return nil, primitiveError(OpDecode, err)
	}
	if SecurityParameter(logn) != SignParameter {
		return nil, fmt.Errorf("%w: signature is for %v", ErrParameterMismatch, SecurityParameter(logn))
	}
	s2 = make([]int16, SignParameter.Degree())
	if _, err := falcon.DecodeS2(signature, falcon.SigDeterministic, 0, s2); err != nil {
		return nil, primitiveError(OpDecode, err)
	}
	return s2, nil
}

// DecodeSignatureAndKey decodes a signature with the default engine.
func DecodeSignatureAndKey(signature, publicKey, message []byte, s1, s2 []int16, h []uint16) error {
	return defaultEngine.DecodeSignatureAndKey(signature, publicKey, message, s1, s2, h)
}

// DecodeSignatureAndKeyAlloc decodes a signature with the default engine.
func DecodeSignatureAndKeyAlloc(signature, publicKey, message []byte) (*DecodedSignature, error) {
	return defaultEngine.DecodeSignatureAndKeyAlloc(signature, publicKey, message)
}

// MessageHashPolynomial hashes a message with the default engine.
func MessageHashPolynomial(nonce, message []byte) ([]uint16, error) {
	return defaultEngine.MessageHashPolynomial(nonce, message)
}

// DecodePublicKeys decodes public keys with the default engine.
func DecodePublicKeys(publicKeys [][]byte) []DecodedKeyResult {
	return defaultEngine.DecodePublicKeys(publicKeys)
}

// DecodeShortVectorS2 decodes s2 with the default engine.
func DecodeShortVectorS2(signature []byte) ([]int16, error) {
	return defaultEngine.DecodeShortVectorS2(signature)
}

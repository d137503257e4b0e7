package falconapi

import (
	"errors"
	"fmt"
	"time"

	"github.com/pornin/go-falcon/falcon"
	"go.uber.org/zap"
)

// Verify reports whether signature is a valid deterministic Falcon-512
// signature of message under publicKey. Other signature encodings are
// rejected. A malformed or mismatching signature or key yields false and
// no error; an error is returned only if publicKey does not have the
// Falcon-512 length or if the primitive reports an unexpected status.
func (e *Engine) Verify(message, signature, publicKey []byte) (ok bool, err error) {
	start := time.Now()
	defer func() {
		e.finish(OpVerify, SignParameter, start, err, err == nil && !ok,
			zap.Int("size", len(signature)))
	}()

	if len(publicKey) != SignParameter.PublicKeySize() {
		return false, fmt.Errorf("%w: public key has %d bytes, %v keys have %d",
			ErrParameterMismatch, len(publicKey), SignParameter, SignParameter.PublicKeySize())
	}
	// A damaged header would make the primitive pick another degree.
	if publicKey[0] != byte(SignParameter) {
		return false, nil
	}
	err = withScratch(SignParameter, func(tmp []byte) error {
		return falcon.Verify(signature, falcon.SigDeterministic, publicKey, message, tmp)
	})
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, falcon.ErrBadSig), errors.Is(err, falcon.ErrFormat):
		return false, nil
	}
	return false, primitiveError(OpVerify, err)
}

// Verify checks a signature with the default engine.
func Verify(message, signature, publicKey []byte) (bool, error) {
	return defaultEngine.Verify(message, signature, publicKey)
}

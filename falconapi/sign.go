package falconapi

import (
	"fmt"
	"time"

	"github.com/pornin/go-falcon/falcon"
	"go.uber.org/zap"
)

// Sign produces a deterministic Falcon-512 signature of message. The
// same message and private key always give the same signature bytes.
// The returned slice has the exact length of the encoded signature.
func (e *Engine) Sign(message, privateKey []byte) (sig []byte, err error) {
	start := time.Now()
	defer func() {
		e.finish(OpSign, SignParameter, start, err, false, zap.Int("size", len(sig)))
	}()

	if err := checkPrivateKey(SignParameter, privateKey); err != nil {
		return nil, err
	}
	rng, err := e.seedFromSystemEntropy()
	if err != nil {
		return nil, err
	}
	buf := make([]byte, SignParameter.SignatureMaxSize())
	var n int
	err = withScratch(SignParameter, func(tmp []byte) error {
		var err error
		n, err = falcon.SignDyn(rng, buf, falcon.SigDeterministic, privateKey, message, tmp)
		return err
	})
	if err != nil {
		return nil, primitiveError(OpSign, err)
	}
	return buf[:n:n], nil
}

// SignKeyPair signs message with the private key of kp, which must have
// been generated for SignParameter.
func (e *Engine) SignKeyPair(message []byte, kp *KeyPair) ([]byte, error) {
	if kp == nil || kp.LogN != SignParameter {
		var got SecurityParameter
		if kp != nil {
			got = kp.LogN
		}
		return nil, fmt.Errorf("%w: key pair is for %v, signing uses %v",
			ErrParameterMismatch, got, SignParameter)
	}
	return e.Sign(message, kp.PrivateKey)
}

// Sign signs message with the default engine.
func Sign(message, privateKey []byte) ([]byte, error) {
	return defaultEngine.Sign(message, privateKey)
}

// SignKeyPair signs message with the default engine.
func SignKeyPair(message []byte, kp *KeyPair) ([]byte, error) {
	return defaultEngine.SignKeyPair(message, kp)
}

package falconapi

import (
	"fmt"
	"time"

	"github.com/pornin/go-falcon/falcon"
	"go.uber.org/zap"
)

// KeyPair is an encoded Falcon key pair. LogN records the degree the
// keys were generated for; it is checked again by SignKeyPair.
type KeyPair struct {
	LogN       SecurityParameter
	PublicKey  []byte
	PrivateKey []byte
}

// Wipe zeroes the private key.
func (kp *KeyPair) Wipe() {
	wipe(kp.PrivateKey)
}

// GenerateKeyPair generates a key pair of degree 2^p, seeded from the
// engine's entropy source. Degrees below Falcon512 are supported for
// testing only.
func (e *Engine) GenerateKeyPair(p SecurityParameter) (kp *KeyPair, err error) {
	start := time.Now()
	defer func() {
		e.finish(OpKeyGen, p, start, err, false)
	}()

	if err := p.validate(); err != nil {
		return nil, err
	}
	rng, err := e.seedFromSystemEntropy()
	if err != nil {
		return nil, err
	}
	priv := make([]byte, p.PrivateKeySize())
	pub := make([]byte, p.PublicKeySize())
	err = withScratch(p, func(tmp []byte) error {
		return falcon.KeyGen(rng, uint(p), priv, pub, tmp)
	})
	if err != nil {
		wipe(priv)
		return nil, primitiveError(OpKeyGen, err)
	}
	return &KeyPair{LogN: p, PublicKey: pub, PrivateKey: priv}, nil
}

// PublicKeyFromPrivate recomputes the public key matching privateKey,
// at any supported degree.
func (e *Engine) PublicKeyFromPrivate(privateKey []byte) (pub []byte, err error) {
	start := time.Now()
	var p SecurityParameter
	defer func() {
		e.finish(OpKeyGen, p, start, err, false, zap.Int("size", len(pub)))
	}()

	logn, err := falcon.GetLogn(privateKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecodingFailed, err)
	}
	p = SecurityParameter(logn)
	if err := checkPrivateKey(p, privateKey); err != nil {
		return nil, err
	}
	pub = make([]byte, p.PublicKeySize())
	err = withScratch(p, func(tmp []byte) error {
		return falcon.MakePublic(pub, privateKey, tmp)
	})
	if err != nil {
		return nil, primitiveError(OpDecode, err)
	}
	return pub, nil
}

// GenerateKeyPair generates a key pair with the default engine.
func GenerateKeyPair(p SecurityParameter) (*KeyPair, error) {
	return defaultEngine.GenerateKeyPair(p)
}

// PublicKeyFromPrivate recomputes a public key with the default engine.
func PublicKeyFromPrivate(privateKey []byte) ([]byte, error) {
	return defaultEngine.PublicKeyFromPrivate(privateKey)
}

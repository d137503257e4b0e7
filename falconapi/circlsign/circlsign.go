// Package circlsign exposes deterministic Falcon-512 through the
// github.com/cloudflare/circl/sign Scheme interface.
//
// Signatures have a variable length; SignatureSize reports the maximum.
// Contexts are not supported.
package circlsign

import (
	"bytes"
	"crypto"
	"crypto/subtle"
	"errors"
	"fmt"
	"io"

	"github.com/cloudflare/circl/sign"
	"github.com/pornin/go-falcon/falconapi"
)

const (
	// PublicKeySize is the length of a marshalled public key.
	PublicKeySize = 897
	// PrivateKeySize is the length of a marshalled private key.
	PrivateKeySize = 1281
	// SignatureSize is the maximum length of a signature.
	SignatureSize = 713
	// SeedSize is the length of the seed accepted by DeriveKey.
	SeedSize = 48
)

var sch sign.Scheme = &scheme{engine: falconapi.New()}

// Scheme returns a signature interface backed by a default engine.
func Scheme() sign.Scheme { return sch }

// New returns a signature interface backed by e, so that operations are
// logged and measured through the engine's options.
func New(e *falconapi.Engine) sign.Scheme {
	if e == nil {
		return sch
	}
	return &scheme{engine: e}
}

type scheme struct {
	engine *falconapi.Engine
}

func (*scheme) Name() string          { return "Falcon-512-Det" }
func (*scheme) PublicKeySize() int    { return PublicKeySize }
func (*scheme) PrivateKeySize() int   { return PrivateKeySize }
func (*scheme) SignatureSize() int    { return SignatureSize }
func (*scheme) SeedSize() int         { return SeedSize }
func (*scheme) SupportsContext() bool { return false }

func (s *scheme) GenerateKey() (sign.PublicKey, sign.PrivateKey, error) {
	kp, err := s.engine.GenerateKeyPair(falconapi.Falcon512)
	if err != nil {
		return nil, nil, fmt.Errorf("falcon: generate key: %w", err)
	}
	pk, sk := s.wrap(kp)
	return pk, sk, nil
}

// DeriveKey generates a key pair from seed, which replaces the
// operating-system entropy of the scheme's engine for this call only.
// It panics if seed is not SeedSize bytes.
func (s *scheme) DeriveKey(seed []byte) (sign.PublicKey, sign.PrivateKey) {
	if len(seed) != SeedSize {
		panic(sign.ErrSeedSize)
	}
	seedCopy := bytes.Clone(seed)
	defer wipe(seedCopy)
	e := s.engine.With(falconapi.WithEntropy(bytes.NewReader(seedCopy)))
	kp, err := e.GenerateKeyPair(falconapi.Falcon512)
	if err != nil {
		panic(err)
	}
	return s.wrap(kp)
}

func (s *scheme) wrap(kp *falconapi.KeyPair) (*PublicKey, *PrivateKey) {
	pk := &PublicKey{scheme: s, key: kp.PublicKey}
	return pk, &PrivateKey{scheme: s, key: kp.PrivateKey, pub: pk}
}

// Sign panics if sk is not a Falcon private key of this package or if
// opts carries a context.
func (s *scheme) Sign(sk sign.PrivateKey, message []byte, opts *sign.SignatureOpts) []byte {
	priv, ok := sk.(*PrivateKey)
	if !ok {
		panic(sign.ErrTypeMismatch)
	}
	if opts != nil && opts.Context != "" {
		panic(sign.ErrContextNotSupported)
	}
	sig, err := s.engine.Sign(message, priv.key)
	if err != nil {
		panic(err)
	}
	return sig
}

func (s *scheme) Verify(pk sign.PublicKey, message, signature []byte, opts *sign.SignatureOpts) bool {
	pub, ok := pk.(*PublicKey)
	if !ok {
		panic(sign.ErrTypeMismatch)
	}
	if opts != nil && opts.Context != "" {
		panic(sign.ErrContextNotSupported)
	}
	valid, err := s.engine.Verify(message, signature, pub.key)
	return err == nil && valid
}

func (s *scheme) UnmarshalBinaryPublicKey(buf []byte) (sign.PublicKey, error) {
	if len(buf) != PublicKeySize {
		return nil, sign.ErrPubKeySize
	}
	if res := s.engine.DecodePublicKeys([][]byte{buf}); res[0].Err != nil {
		return nil, fmt.Errorf("falcon: invalid public key: %w", res[0].Err)
	}
	return &PublicKey{scheme: s, key: bytes.Clone(buf)}, nil
}

func (s *scheme) UnmarshalBinaryPrivateKey(buf []byte) (sign.PrivateKey, error) {
	if len(buf) != PrivateKeySize {
		return nil, sign.ErrPrivKeySize
	}
	pub, err := s.engine.PublicKeyFromPrivate(buf)
	if err != nil {
		return nil, fmt.Errorf("falcon: invalid private key: %w", err)
	}
	pk := &PublicKey{scheme: s, key: pub}
	return &PrivateKey{scheme: s, key: bytes.Clone(buf), pub: pk}, nil
}

// PublicKey is a Falcon-512 public key.
type PublicKey struct {
	scheme *scheme
	key    []byte
}

func (pk *PublicKey) Scheme() sign.Scheme { return pk.scheme }

func (pk *PublicKey) Equal(other crypto.PublicKey) bool {
	o, ok := other.(*PublicKey)
	return ok && bytes.Equal(pk.key, o.key)
}

func (pk *PublicKey) MarshalBinary() ([]byte, error) {
	return bytes.Clone(pk.key), nil
}

// PrivateKey is a Falcon-512 private key. It also holds the matching
// public key.
type PrivateKey struct {
	scheme *scheme
	key    []byte
	pub    *PublicKey
}

func (sk *PrivateKey) Scheme() sign.Scheme { return sk.scheme }

func (sk *PrivateKey) Equal(other crypto.PrivateKey) bool {
	o, ok := other.(*PrivateKey)
	return ok && subtle.ConstantTimeCompare(sk.key, o.key) == 1
}

func (sk *PrivateKey) Public() crypto.PublicKey { return sk.pub }

// Sign signs message, which must not be pre-hashed: opts.HashFunc()
// must return zero. The rand argument is ignored, signatures are
// deterministic.
func (sk *PrivateKey) Sign(_ io.Reader, message []byte, opts crypto.SignerOpts) ([]byte, error) {
	if opts != nil && opts.HashFunc() != crypto.Hash(0) {
		return nil, errors.New("falcon: cannot sign hashed message")
	}
	return sk.scheme.engine.Sign(message, sk.key)
}

func (sk *PrivateKey) MarshalBinary() ([]byte, error) {
	return bytes.Clone(sk.key), nil
}

func wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

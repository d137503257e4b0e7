package falconapi

import (
	"fmt"

	"github.com/pornin/go-falcon/falcon"
)

// SecurityParameter is the base-2 logarithm of the ring degree.
type SecurityParameter uint

const (
	// Falcon512 is the degree used for signing, verification and
	// extraction.
	Falcon512 SecurityParameter = 9
	// Falcon1024 is the largest supported degree.
	Falcon1024 SecurityParameter = 10

	// MinSecurityParameter and MaxSecurityParameter bound the degrees
	// accepted by key generation; degrees below 512 are for tests only.
	MinSecurityParameter SecurityParameter = falcon.LogNMin
	MaxSecurityParameter SecurityParameter = falcon.LogNMax
)

// SignParameter is the only degree accepted by Sign, Verify and the
// introspection functions.
const SignParameter = Falcon512

// Valid reports whether p is a supported degree.
func (p SecurityParameter) Valid() bool {
	return p >= MinSecurityParameter && p <= MaxSecurityParameter
}

func (p SecurityParameter) validate() error {
	if !p.Valid() {
		return fmt.Errorf("%w: unsupported security parameter %d", ErrParameterMismatch, uint(p))
	}
	return nil
}

// Degree returns the ring degree 2^p.
func (p SecurityParameter) Degree() int {
	return 1 << p
}

func (p SecurityParameter) String() string {
	return fmt.Sprintf("falcon-%d", p.Degree())
}

// PublicKeySize returns the length of an encoded public key.
func (p SecurityParameter) PublicKeySize() int {
	return falcon.PubKeySize(uint(p))
}

// PrivateKeySize returns the length of an encoded private key.
func (p SecurityParameter) PrivateKeySize() int {
	return falcon.PrivKeySize(uint(p))
}

// SignatureMaxSize returns the maximum length of a deterministic
// signature. Actual signatures are usually shorter.
func (p SecurityParameter) SignatureMaxSize() int {
	return falcon.SigDeterministicMaxSize(uint(p))
}

// Key headers are 0x00+logn (public) and 0x50+logn (private).
func checkPublicKey(p SecurityParameter, publicKey []byte) error {
	if len(publicKey) != p.PublicKeySize() || publicKey[0] != byte(p) {
		return fmt.Errorf("%w: public key is not a %v key", ErrParameterMismatch, p)
	}
	return nil
}

func checkPrivateKey(p SecurityParameter, privateKey []byte) error {
	if len(privateKey) != p.PrivateKeySize() || privateKey[0] != byte(0x50+p) {
		return fmt.Errorf("%w: private key is not a %v key", ErrParameterMismatch, p)
	}
	return nil
}

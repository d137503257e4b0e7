package falcon

// Supported degrees (logarithmic).
const (
	LogNMin = 2
	LogNMax = 10
)

// NonceSize is the length of the nonce in randomized signatures.
const NonceSize = 40

// Salt version byte written after the header of deterministic signatures.
const detSaltVersion = 0x00

// SigType selects a signature encoding.
type SigType int

const (
	// SigAuto is accepted by verification and extraction only: the
	// encoding is inferred from the signature header.
	SigAuto SigType = 0
	// SigCompressed is a variable-length Golomb-Rice encoding.
	SigCompressed SigType = 1
	// SigPadded is the compressed encoding padded to a fixed length.
	SigPadded SigType = 2
	// SigCT is a fixed-width encoding of s2.
	SigCT SigType = 3
	// SigDeterministic has no nonce: the message is hashed alone and
	// the sampler is seeded from the private key and the message.
	SigDeterministic SigType = 4
)

func (t SigType) String() string {
	switch t {
	case SigAuto:
		return "auto"
	case SigCompressed:
		return "compressed"
	case SigPadded:
		return "padded"
	case SigCT:
		return "ct"
	case SigDeterministic:
		return "deterministic"
	}
	return "unknown"
}

// Number of bits used for each coefficient of f and g in a private key.
func nbits_fg(logn uint) int {
	switch logn {
	case 2, 3, 4, 5:
		return 8
	case 6, 7:
		return 7
	case 8, 9:
		return 6
	default:
		return 5
	}
}

// Number of bits used for each coefficient of F (and G) in a private key.
const nbits_FG = 8

// Number of bits per coefficient of s2 in the fixed-width (CT) encoding.
func nbits_sig_ct(logn uint) int {
	switch logn {
	case 2, 3:
		return 11
	default:
		return 12
	}
}

func validLogN(logn uint) bool {
	return logn >= LogNMin && logn <= LogNMax
}

// PubKeySize returns the size (in bytes) of an encoded public key.
func PubKeySize(logn uint) int {
	return 1 + (7 << (logn - 2))
}

// PrivKeySize returns the size (in bytes) of an encoded private key.
func PrivKeySize(logn uint) int {
	return 1 + (nbits_fg(logn) << (logn - 2)) + ((nbits_FG << logn) >> 3)
}

// SigCompressedMaxSize returns the maximum size (in bytes) of a
// compressed signature. The actual size is usually lower.
func SigCompressedMaxSize(logn uint) int {
	return ((((11 << logn) + (101 >> (10 - logn))) + 7) >> 3) + 1 + NonceSize
}

// SigPaddedSize returns the size (in bytes) of a padded signature.
func SigPaddedSize(logn uint) int {
	return 44 + 3*(256>>(10-logn)) + 2*(128>>(10-logn)) +
		3*(64>>(10-logn)) + 2*(16>>(10-logn)) -
		2*(2>>(10-logn)) - 8*(1>>(10-logn))
}

// SigCTSize returns the size (in bytes) of a CT signature.
func SigCTSize(logn uint) int {
	return 1 + NonceSize + (((nbits_sig_ct(logn) << logn) + 7) >> 3)
}

// SigDeterministicMaxSize returns the maximum size (in bytes) of a
// deterministic signature. The nonce is replaced with a single salt
// version byte.
func SigDeterministicMaxSize(logn uint) int {
	return SigCompressedMaxSize(logn) - NonceSize + 1
}

// SigMaxSize returns the maximum size of a signature of the given type.
// It returns 0 for an unknown type.
func SigMaxSize(logn uint, sigType SigType) int {
	switch sigType {
	case SigCompressed:
		return SigCompressedMaxSize(logn)
	case SigPadded:
		return SigPaddedSize(logn)
	case SigCT:
		return SigCTSize(logn)
	case SigDeterministic:
		return SigDeterministicMaxSize(logn)
	}
	return 0
}

// ExpandedKeySize returns the size (in bytes) of an expanded private key:
// a header byte, a 64-byte hash of the private key, then the lattice
// basis and its Gram matrix in FFT representation (7*n little-endian
// binary64 values).
func ExpandedKeySize(logn uint) int {
	return 1 + 64 + 8*(7<<logn)
}

// TmpSizeKeygen returns the scratch size (in bytes) needed by KeyGen.
func TmpSizeKeygen(logn uint) int {
	n := 1 << logn
	var s sizer
	s.add(n) // f
	s.add(n) // g
	s.add(n) // F
	s.add(n) // G
	s.add(2 * n)
	s.add(2 * n)
	s.add(8 * 3 * n)
	return s.total()
}

// TmpSizeMakePub returns the scratch size (in bytes) needed by MakePublic.
func TmpSizeMakePub(logn uint) int {
	n := 1 << logn
	var s sizer
	s.add(n) // f
	s.add(n) // g
	s.add(n) // F
	s.add(n) // G
	s.add(2 * n)
	s.add(2 * n)
	return s.total()
}

// TmpSizeSignDyn returns the scratch size (in bytes) needed by SignDyn.
func TmpSizeSignDyn(logn uint) int {
	n := 1 << logn
	var s sizer
	s.add(n) // f
	s.add(n) // g
	s.add(n) // F
	s.add(n) // G
	s.add(2 * n)
	s.add(2 * n)
	s.add(2 * n) // s2
	s.add(8 * 9 * n)
	return s.total()
}

// TmpSizeSignTree returns the scratch size (in bytes) needed by SignTree.
func TmpSizeSignTree(logn uint) int {
	n := 1 << logn
	var s sizer
	s.add(2 * n) // hm
	s.add(2 * n) // s2
	s.add(8 * 9 * n)
	s.add(8 * 4 * n) // basis
	return s.total()
}

// TmpSizeExpandPriv returns the scratch size (in bytes) needed by
// ExpandPrivate.
func TmpSizeExpandPriv(logn uint) int {
	n := 1 << logn
	var s sizer
	s.add(n)
	s.add(n)
	s.add(n)
	s.add(n)
	s.add(2 * n)
	s.add(2 * n)
	return s.total()
}

// TmpSizeVerify returns the scratch size (in bytes) needed by Verify and
// by ExtractValues.
func TmpSizeVerify(logn uint) int {
	n := 1 << logn
	var s sizer
	s.add(2 * n) // s2
	s.add(2 * n) // h
	s.add(2 * n) // c
	return s.total()
}

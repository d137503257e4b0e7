package falcon

// Decode signature sig (of type sigType, which must not be SigAuto) into
// its nonce and s2. The nonce is a sub-slice of sig; it is empty for the
// deterministic type.
func decode_signature(logn uint, sig []byte, sigType SigType,
	s2 []int16) ([]byte, error) {

	if len(sig) < 2 {
		return nil, ErrFormat
	}
	switch sigType {
	case SigCompressed, SigPadded:
		if sig[0] != byte(0x30+logn) || len(sig) < 2+NonceSize {
			return nil, ErrFormat
		}
		if sigType == SigPadded && len(sig) != SigPaddedSize(logn) {
			return nil, ErrFormat
		}
		if len(sig) > SigCompressedMaxSize(logn) {
			return nil, ErrFormat
		}
		body := sig[1+NonceSize:]
		j, err := comp_decode(logn, body, s2)
		if err != nil {
			return nil, err
		}
		// Only the padded type has room for a tail of zeros.
		if sigType == SigCompressed && j != len(body) {
			return nil, ErrFormat
		}
		if !all_zero(body[j:]) {
			return nil, ErrFormat
		}
		return sig[1 : 1+NonceSize], nil
	case SigCT:
		if sig[0] != byte(0x50+logn) || len(sig) != SigCTSize(logn) {
			return nil, ErrFormat
		}
		_, err := trim_i16_decode(logn, sig[1+NonceSize:], s2, nbits_sig_ct(logn))
		if err != nil {
			return nil, err
		}
		return sig[1 : 1+NonceSize], nil
	case SigDeterministic:
		if sig[0] != byte(0x30+logn) || sig[1] != detSaltVersion {
			return nil, ErrFormat
		}
		if len(sig) > SigDeterministicMaxSize(logn) {
			return nil, ErrFormat
		}
		j, err := comp_decode(logn, sig[2:], s2)
		if err != nil {
			return nil, err
		}
		if 2+j != len(sig) {
			return nil, ErrFormat
		}
		return sig[:0], nil
	}
	return nil, ErrBadArg
}

func all_zero(b []byte) bool {
	for _, x := range b {
		if x != 0 {
			return false
		}
	}
	return true
}

// Concrete type for a signature with header 0x30+logn: the padded type
// has a fixed length, anything else is tried as compressed.
func comp_type(logn uint, sig []byte) SigType {
	if len(sig) == SigPaddedSize(logn) {
		return SigPadded
	}
	return SigCompressed
}

// Scratch regions shared by verification and extraction.
type vrfy_tmp struct {
	s2 []int16
	h  []uint16
	c  []uint16
}

func newVrfyTmp(logn uint, tmp []byte) *vrfy_tmp {
	n := 1 << logn
	a := newArena(tmp)
	return &vrfy_tmp{s2: a.i16(n), h: a.u16(n), c: a.u16(n)}
}

// Check the signature for a given concrete type. On success, vt.s2
// contains s2 and vt.c contains s1 (modulo q). vt.h must contain the
// decoded public key and is modified.
func vrfy_typed(logn uint, sig []byte, sigType SigType, msg []byte,
	vt *vrfy_tmp) error {

	nonce, err := decode_signature(logn, sig, sigType, vt.s2)
	if err != nil {
		return err
	}
	n2 := signed_poly_sqnorm(logn, vt.s2)

	// h <- s2*h
	mqpoly_signed_to_ext(logn, vt.s2, vt.c)
	mqpoly_ntt(logn, vt.c)
	mqpoly_ntt(logn, vt.h)
	mqpoly_mul_ntt(logn, vt.h, vt.c)
	mqpoly_intt(logn, vt.h)

	// c <- hash(nonce || msg) - s2*h = s1
	hash_to_point(logn, nonce, msg, vt.c)
	mqpoly_sub(logn, vt.c, vt.h)
	if !mqpoly_sqnorm_is_acceptable(logn, n2+mqpoly_sqnorm(logn, vt.c)) {
		return ErrBadSig
	}
	return nil
}

// Verify a signature, resolving SigAuto from the header byte. Headers
// 0x30+logn are tried as compressed (or padded, by length) and then,
// if the salt version byte matches, as deterministic.
func vrfy_inner(logn uint, sig []byte, sigType SigType, pubKey []byte,
	msg []byte, vt *vrfy_tmp) error {

	if err := decode_public_key(logn, pubKey, vt.h); err != nil {
		return err
	}
	if sigType != SigAuto {
		return vrfy_typed(logn, sig, sigType, msg, vt)
	}
	if len(sig) == 0 {
		return ErrFormat
	}
	switch sig[0] {
	case byte(0x50 + logn):
		return vrfy_typed(logn, sig, SigCT, msg, vt)
	case byte(0x30 + logn):
		err := vrfy_typed(logn, sig, comp_type(logn, sig), msg, vt)
		if err == nil || len(sig) < 2 || sig[1] != detSaltVersion {
			return err
		}
		if err2 := decode_public_key(logn, pubKey, vt.h); err2 != nil {
			return err2
		}
		return vrfy_typed(logn, sig, SigDeterministic, msg, vt)
	}
	return ErrFormat
}

// Verify checks signature sig over msg against pubKey.
//
// sigType is the expected signature type, or SigAuto to infer it from
// the signature header. tmp must have room for TmpSizeVerify(logn)
// bytes. ErrBadSig is returned for a well-formed signature that does not
// match, ErrFormat for a malformed key or signature, including one whose
// degree differs from that of the key.
func Verify(sig []byte, sigType SigType, pubKey []byte,
	msg []byte, tmp []byte) error {

	logn, err := GetLogn(pubKey)
	if err != nil {
		return err
	}
	if sigType < SigAuto || sigType > SigDeterministic {
		return ErrBadArg
	}
	if err := checkTmp(tmp, TmpSizeVerify(logn)); err != nil {
		return err
	}
	return vrfy_inner(logn, sig, sigType, pubKey, msg, newVrfyTmp(logn, tmp))
}

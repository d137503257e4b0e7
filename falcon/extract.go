package falcon

// ExtractValues verifies sig over msg against pubKey and, on success,
// writes the short vectors s1 and s2 and the decoded public key h (each
// with 2^logn elements, coefficients of h in [0,q-1]). Arguments are as
// for Verify; ErrSize is returned if an output slice is too short.
//
// The three vectors satisfy s1 + s2*h = c mod (X^n+1, q), where c is the
// hash polynomial of the message (see HashToPoint).
func ExtractValues(sig []byte, sigType SigType, pubKey []byte, msg []byte,
	tmp []byte, s1 []int16, s2 []int16, h []uint16) error {

	logn, err := GetLogn(pubKey)
	if err != nil {
		return err
	}
	if sigType < SigAuto || sigType > SigDeterministic {
		return ErrBadArg
	}
	n := 1 << logn
	if len(s1) < n || len(s2) < n || len(h) < n {
		return ErrSize
	}
	if err := checkTmp(tmp, TmpSizeVerify(logn)); err != nil {
		return err
	}
	vt := newVrfyTmp(logn, tmp)
	if err := vrfy_inner(logn, sig, sigType, pubKey, msg, vt); err != nil {
		return err
	}
	for i := 0; i < n; i++ {
		s1[i] = int16(mq_to_signed(vt.c[i]))
	}
	copy(s2, vt.s2)
	return decode_public_key(logn, pubKey, h)
}

// DecodePublicKey decodes pubKey into h (at least 2^logn elements, with
// values in [0,q-1]) and returns its degree.
func DecodePublicKey(pubKey []byte, h []uint16) (uint, error) {
	logn, err := GetLogn(pubKey)
	if err != nil {
		return 0, err
	}
	if len(h) < (1 << logn) {
		return 0, ErrSize
	}
	if err := decode_public_key(logn, pubKey, h); err != nil {
		return 0, err
	}
	return logn, nil
}

// DecodeS2 decodes the s2 vector of a signature without verifying it,
// and returns the degree read from the signature header. ct selects the
// body encoding: 0 for the compressed one (compressed, padded and
// deterministic types), 1 for the fixed-width one (CT type). With
// SigAuto, the type is inferred from ct. s2 must have room for 2^logn
// elements.
func DecodeS2(sig []byte, sigType SigType, ct int, s2 []int16) (uint, error) {
	switch ct {
	case 0:
		if sigType == SigCT {
			return 0, ErrBadArg
		}
	case 1:
		if sigType != SigCT && sigType != SigAuto {
			return 0, ErrBadArg
		}
		sigType = SigCT
	default:
		return 0, ErrBadArg
	}
	logn, err := GetLogn(sig)
	if err != nil {
		return 0, err
	}
	if sigType == SigAuto {
		sigType = comp_type(logn, sig)
	}
	if sigType < SigCompressed || sigType > SigDeterministic {
		return 0, ErrBadArg
	}
	if len(s2) < (1 << logn) {
		return 0, ErrSize
	}
	if _, err := decode_signature(logn, sig, sigType, s2); err != nil {
		return 0, err
	}
	return logn, nil
}

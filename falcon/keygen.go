package falcon

// KeyGen generates a new key pair of degree 2^logn (logn in [2,10]).
//
//   - rng provides the randomness; it is read exactly once, for a
//     32-byte seed, so the same PRNG state always yields the same keys.
//   - privKey receives the private key (PrivKeySize(logn) bytes).
//   - pubKey receives the public key (PubKeySize(logn) bytes); it may be
//     nil, in which case only the private key is produced.
//   - tmp is the scratch area (TmpSizeKeygen(logn) bytes).
//
// ErrBadArg is returned for an unsupported degree, ErrRandom for a nil
// rng, ErrSize for undersized buffers.
func KeyGen(rng *PRNG, logn uint, privKey []byte, pubKey []byte, tmp []byte) error {
	if !validLogN(logn) {
		return ErrBadArg
	}
	if rng == nil {
		return ErrRandom
	}
	if len(privKey) < PrivKeySize(logn) {
		return ErrSize
	}
	if pubKey != nil && len(pubKey) < PubKeySize(logn) {
		return ErrSize
	}
	if err := checkTmp(tmp, TmpSizeKeygen(logn)); err != nil {
		return err
	}

	n := 1 << logn
	a := newArena(tmp)
	f := a.i8(n)
	g := a.i8(n)
	F := a.i8(n)
	G := a.i8(n)
	h := a.u16(n)
	t := a.u16(n)
	tf := a.f64s(3 * n)

	seed := rng.subseed()
	keygen_inner(logn, seed[:], f, g, F, G, t, tf)

	privKey[0] = byte(0x50 + logn)
	j := 1
	j += trim_i8_encode(logn, f, nbits_fg(logn), privKey[j:])
	j += trim_i8_encode(logn, g, nbits_fg(logn), privKey[j:])
	_ = trim_i8_encode(logn, F, nbits_FG, privKey[j:])

	if pubKey != nil {
		if !compute_public(logn, f, g, h, t) {
			return ErrInternal
		}
		pubKey[0] = byte(0x00 + logn)
		_ = modq_encode(logn, h, pubKey[1:])
	}
	return nil
}

// Deterministic key pair generation from a seed. tmp_u16 has room for n
// elements, tmp_f64 for 3*n elements.
func keygen_inner(logn uint, seed []byte,
	f []int8, g []int8, F []int8, G []int8,
	tmp_u16 []uint16, tmp_f64 []f64) {

	n := 1 << logn
	pc := newSHAKE256x4(seed)
	for {
		sample_f(logn, pc, f)
		sample_f(logn, pc, g)

		// Coefficients must fit the private key encoding.
		if !fits_bits(logn, f, nbits_fg(logn)) || !fits_bits(logn, g, nbits_fg(logn)) {
			continue
		}

		// ||(g, -f)||^2 < (1.17^2)*q = 16822.4121
		sn := int32(0)
		for i := 0; i < n; i++ {
			xf := int32(f[i])
			xg := int32(g[i])
			sn += xf*xf + xg*xg
		}
		if sn >= 16823 {
			continue
		}

		if !mqpoly_is_invertible(logn, f, tmp_u16) {
			continue
		}
		if !check_ortho_norm(logn, f, g, tmp_f64) {
			continue
		}
		if !solve_NTRU(logn, f, g, F, G) {
			continue
		}
		return
	}
}

// True if all coefficients of f are in ]-2^(nbits-1), 2^(nbits-1)[.
func fits_bits(logn uint, f []int8, nbits int) bool {
	lim := int32(1) << (nbits - 1)
	n := 1 << logn
	for i := 0; i < n; i++ {
		x := int32(f[i])
		if x <= -lim || x >= lim {
			return false
		}
	}
	return true
}

// The orthogonalized vector (q*adj(f), q*adj(g))/(f*adj(f) + g*adj(g))
// must also have squared norm below 16822.4121. tmp has room for 3*n
// elements.
func check_ortho_norm(logn uint, f []int8, g []int8, tmp []f64) bool {
	n := 1 << logn
	rt1 := tmp[:n]
	rt2 := tmp[n : 2*n]
	rt3 := tmp[2*n : 3*n]
	fpoly_set_small(logn, rt1, f)
	fpoly_set_small(logn, rt2, g)
	fpoly_FFT(logn, rt1)
	fpoly_FFT(logn, rt2)
	fpoly_invnorm2_fft(logn, rt3, rt1, rt2)
	fpoly_adj_fft(logn, rt1)
	fpoly_adj_fft(logn, rt2)
	fpoly_mulconst(logn, rt1, q)
	fpoly_mulconst(logn, rt2, q)
	fpoly_mul_autoadj_fft(logn, rt1, rt3)
	fpoly_mul_autoadj_fft(logn, rt2, rt3)
	fpoly_iFFT(logn, rt1)
	fpoly_iFFT(logn, rt2)
	sn := f64_add(fpoly_sqnorm(logn, rt1), fpoly_sqnorm(logn, rt2))
	return sn < 16822.4121
}

// h <- g/f mod X^n+1 mod q. False is returned if f is not invertible.
// t has room for n elements.
func compute_public(logn uint, f []int8, g []int8, h []uint16, t []uint16) bool {
	mqpoly_small_to_ext(logn, g, h)
	mqpoly_small_to_ext(logn, f, t)
	mqpoly_ntt(logn, h)
	mqpoly_ntt(logn, t)
	if !mqpoly_div_ntt(logn, h, t) {
		return false
	}
	mqpoly_intt(logn, h)
	return true
}

// G <- g*F/f mod X^n+1 mod q, which is the solution of the NTRU equation
// for (f, g, F). ErrFormat is returned if f is not invertible or if G is
// out of range. t0 and t1 have room for n elements each.
func complete_private(logn uint, f []int8, g []int8, F []int8, G []int8,
	t0 []uint16, t1 []uint16) error {

	if !compute_public(logn, f, g, t0, t1) {
		return ErrFormat
	}
	mqpoly_ntt(logn, t0)
	mqpoly_small_to_ext(logn, F, t1)
	mqpoly_ntt(logn, t1)
	mqpoly_mul_ntt(logn, t1, t0)
	mqpoly_intt(logn, t1)
	if !mqpoly_ext_to_small(logn, t1, G) {
		return ErrFormat
	}
	return nil
}

// GetLogn returns the degree (logarithmic) from the header byte of an
// encoded key or signature. ErrFormat is returned for an empty input or
// an unsupported degree.
func GetLogn(obj []byte) (uint, error) {
	if len(obj) == 0 {
		return 0, ErrFormat
	}
	logn := uint(obj[0] & 0x0F)
	if !validLogN(logn) {
		return 0, ErrFormat
	}
	return logn, nil
}

// Decode a private key of degree 2^logn into f, g and F.
func decode_private_key(logn uint, privKey []byte, f []int8, g []int8, F []int8) error {
	if len(privKey) != PrivKeySize(logn) || privKey[0] != byte(0x50+logn) {
		return ErrFormat
	}
	off := 1
	j, err := trim_i8_decode(logn, privKey[off:], f, nbits_fg(logn))
	if err != nil {
		return err
	}
	off += j
	j, err = trim_i8_decode(logn, privKey[off:], g, nbits_fg(logn))
	if err != nil {
		return err
	}
	off += j
	_, err = trim_i8_decode(logn, privKey[off:], F, nbits_FG)
	return err
}

// Decode a public key of degree 2^logn into h.
func decode_public_key(logn uint, pubKey []byte, h []uint16) error {
	if len(pubKey) != PubKeySize(logn) || pubKey[0] != byte(0x00+logn) {
		return ErrFormat
	}
	_, err := modq_decode(logn, pubKey[1:], h)
	return err
}

// MakePublic recomputes the public key from a private key, which is fully
// decoded and checked (ErrFormat if F yields an out-of-range G). pubKey must
// have room for PubKeySize(logn) bytes and tmp for TmpSizeMakePub(logn)
// bytes, where logn is the degree of the private key.
func MakePublic(pubKey []byte, privKey []byte, tmp []byte) error {
	logn, err := GetLogn(privKey)
	if err != nil {
		return err
	}
	if len(pubKey) < PubKeySize(logn) {
		return ErrSize
	}
	if err := checkTmp(tmp, TmpSizeMakePub(logn)); err != nil {
		return err
	}
	n := 1 << logn
	a := newArena(tmp)
	f := a.i8(n)
	g := a.i8(n)
	F := a.i8(n)
	G := a.i8(n)
	h := a.u16(n)
	t := a.u16(n)

	// The whole key is checked, so that it can later be used for signing.
	if err := decode_private_key(logn, privKey, f, g, F); err != nil {
		return err
	}
	if err := complete_private(logn, f, g, F, G, h, t); err != nil {
		return err
	}
	if !compute_public(logn, f, g, h, t) {
		return ErrFormat
	}
	pubKey[0] = byte(0x00 + logn)
	_ = modq_encode(logn, h, pubKey[1:])
	return nil
}

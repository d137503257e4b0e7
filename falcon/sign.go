package falcon

import (
	"encoding/binary"
	"math"
)

// Given f, g, F and G, write the basis [[g, -f], [G, -F]] in FFT
// representation into dst (b00, b01, b10 and b11, in that order).
func basis_to_FFT(logn uint,
	f []int8, g []int8, F []int8, G []int8, dst []f64) {

	n := 1 << logn
	b00 := dst[:n]
	b01 := dst[n : n*2]
	b10 := dst[n*2 : n*3]
	b11 := dst[n*3 : n*4]
	fpoly_set_small(logn, b01, f)
	fpoly_set_small(logn, b00, g)
	fpoly_set_small(logn, b11, F)
	fpoly_set_small(logn, b10, G)
	fpoly_FFT(logn, b01)
	fpoly_FFT(logn, b00)
	fpoly_FFT(logn, b11)
	fpoly_FFT(logn, b10)
	fpoly_neg(logn, b01)
	fpoly_neg(logn, b11)
}

// Signing key material, either as the four small polynomials (dynamic
// signing) or as an expanded key (tree signing).
type sign_key struct {
	f, g, F, G []int8

	// Expanded key: basis (b00 b01 b10 b11, FFT) decoded once, and the
	// encoded Gram matrix, decoded again for every attempt since the
	// sampler consumes it.
	basis   []f64
	gramEnc []byte
}

// One signing attempt: sample a lattice point close to the target hm,
// write s2 and report whether (s1, s2) is short enough. tmp has room for
// 9*n elements.
func (k *sign_key) sample(logn uint, ss *sampler,
	hm []uint16, s2 []int16, tmp []f64) bool {

	n := 1 << logn
	var b00, b01, b10, b11 []f64
	var t0, t1 []f64
	if k.basis == nil {
		// Layout: g00 g01 g11 b11 b01 t0 t1
		basis_to_FFT(logn, k.f, k.g, k.F, k.G, tmp)
		copy(tmp[n*4:n*5], tmp[n:n*2])
		fpoly_gram_fft(logn, tmp[:n], tmp[n:n*2], tmp[n*2:n*3], tmp[n*3:n*4])
		b11 = tmp[n*3 : n*4]
		b01 = tmp[n*4 : n*5]
		t0 = tmp[n*5 : n*6]
		t1 = tmp[n*6 : n*7]
		fpoly_apply_basis(logn, t0, t1, b01, b11, hm)
		copy(tmp[n*3:n*5], tmp[n*5:n*7])
	} else {
		// Layout: g00 g01 g11 t0 t1
		decode_f64s(k.gramEnc, tmp[:n*3])
		b01 = k.basis[n : n*2]
		b11 = k.basis[n*3 : n*4]
		fpoly_apply_basis(logn, tmp[n*3:n*4], tmp[n*4:n*5], b01, b11, hm)
	}
	t0 = tmp[n*3 : n*4]
	t1 = tmp[n*4 : n*5]
	ss.ffsamp_fft(t0, t1, tmp[:n], tmp[n:n*2], tmp[n*2:n*3], tmp[n*5:])

	// Layout (dynamic): b00 b01 b10 b11 t0 t1 tx ty
	// Layout (expanded): tx ty - t0 t1
	var tx, ty []f64
	if k.basis == nil {
		copy(tmp[n*4:n*6], tmp[n*3:n*5])
		basis_to_FFT(logn, k.f, k.g, k.F, k.G, tmp[:n*4])
		b00 = tmp[:n]
		b01 = tmp[n : n*2]
		b10 = tmp[n*2 : n*3]
		b11 = tmp[n*3 : n*4]
		t0 = tmp[n*4 : n*5]
		t1 = tmp[n*5 : n*6]
		tx = tmp[n*6 : n*7]
		ty = tmp[n*7 : n*8]
	} else {
		b00 = k.basis[:n]
		b01 = k.basis[n : n*2]
		b10 = k.basis[n*2 : n*3]
		b11 = k.basis[n*3 : n*4]
		tx = tmp[:n]
		ty = tmp[n : n*2]
	}

	// (v0, v1) = (t0, t1)*B is the lattice point.
	copy(tx, t0)
	copy(ty, t1)
	fpoly_mul_fft(logn, tx, b00)
	fpoly_mul_fft(logn, ty, b10)
	fpoly_add(logn, tx, ty)
	copy(ty, t0)
	fpoly_mul_fft(logn, ty, b01)
	copy(t0, tx)
	fpoly_mul_fft(logn, t1, b11)
	fpoly_add(logn, t1, ty)
	fpoly_iFFT(logn, t0)
	fpoly_iFFT(logn, t1)

	// s1 = hm - v0, s2 = -v1; only s2 is kept.
	sqn := uint64(0)
	for i := 0; i < n; i++ {
		z := int64(hm[i]) - int64(f64_rint(t0[i]))
		sqn += uint64(z * z)
	}
	for i := 0; i < n; i++ {
		z := -int64(f64_rint(t1[i]))
		sqn += uint64(z * z)
		s2[i] = int16(z)
	}
	return mqpoly_sqnorm_is_acceptable(logn, sqn)
}

// Signing loop common to SignDyn and SignTree. For randomized types the
// nonce and the sampler seeds come from rng; for the deterministic type
// the message is hashed without a nonce and sampler seeds are derived
// from keyHash, msg and an attempt counter.
func sign_loop(logn uint, rng *PRNG, sig []byte, sigType SigType,
	k *sign_key, keyHash []byte, msg []byte,
	hm []uint16, s2 []int16, tmp []f64) int {

	var nonce [NonceSize]byte
	if sigType == SigDeterministic {
		hash_to_point(logn, nil, msg, hm)
	} else {
		rng.Read(nonce[:])
		hash_to_point(logn, nonce[:], msg, hm)
	}
	for counter := uint32(0); ; counter++ {
		var seed [56]byte
		if sigType == SigDeterministic {
			seed = det_seed(keyHash, msg, counter)
		} else {
			rng.Read(seed[:])
		}
		ss := newSampler(logn, seed[:])
		if !k.sample(logn, ss, hm, s2, tmp) {
			continue
		}
		if sz := encode_signature(logn, sig, sigType, nonce[:], s2); sz > 0 {
			return sz
		}
	}
}

// Encode s2 (and the nonce) into sig, which has room for the maximum
// size of the signature type. The signature length is returned, or 0
// if s2 cannot be encoded with this type.
func encode_signature(logn uint, sig []byte, sigType SigType,
	nonce []byte, s2 []int16) int {

	n := 1 << logn
	switch sigType {
	case SigCompressed:
		sz := comp_size(logn, s2)
		if sz < 0 || 1+NonceSize+sz > len(sig) {
			return 0
		}
		sig[0] = byte(0x30 + logn)
		copy(sig[1:], nonce)
		comp_encode(logn, s2, sig[1+NonceSize:1+NonceSize+sz])
		return 1 + NonceSize + sz
	case SigPadded:
		sz := SigPaddedSize(logn)
		if !comp_encode(logn, s2, sig[1+NonceSize:sz]) {
			return 0
		}
		sig[0] = byte(0x30 + logn)
		copy(sig[1:], nonce)
		return sz
	case SigCT:
		nbits := nbits_sig_ct(logn)
		lim := int32(1)<<(nbits-1) - 1
		for i := 0; i < n; i++ {
			if x := int32(s2[i]); x < -lim || x > lim {
				return 0
			}
		}
		sig[0] = byte(0x50 + logn)
		copy(sig[1:], nonce)
		return 1 + NonceSize + trim_i16_encode(logn, s2, nbits, sig[1+NonceSize:])
	case SigDeterministic:
		sz := comp_size(logn, s2)
		if sz < 0 || 2+sz > len(sig) {
			return 0
		}
		sig[0] = byte(0x30 + logn)
		sig[1] = detSaltVersion
		comp_encode(logn, s2, sig[2:2+sz])
		return 2 + sz
	}
	return 0
}

// Common argument checks for signing.
func check_sign_args(logn uint, rng *PRNG, sig []byte, sigType SigType) error {
	if sigType < SigCompressed || sigType > SigDeterministic {
		return ErrBadArg
	}
	if rng == nil && sigType != SigDeterministic {
		return ErrRandom
	}
	if len(sig) < SigMaxSize(logn, sigType) {
		return ErrSize
	}
	return nil
}

// SignDyn signs msg with an encoded private key.
//
//   - rng provides the nonce and the sampler seeds; it is not used (and
//     may be nil) for SigDeterministic.
//   - sig receives the signature; it must have room for
//     SigMaxSize(logn, sigType) bytes.
//   - tmp is the scratch area (TmpSizeSignDyn(logn) bytes).
//
// The signature length is returned. ErrFormat is returned for an invalid
// private key.
func SignDyn(rng *PRNG, sig []byte, sigType SigType,
	privKey []byte, msg []byte, tmp []byte) (int, error) {

	logn, err := GetLogn(privKey)
	if err != nil {
		return 0, err
	}
	if err := check_sign_args(logn, rng, sig, sigType); err != nil {
		return 0, err
	}
	if err := checkTmp(tmp, TmpSizeSignDyn(logn)); err != nil {
		return 0, err
	}

	n := 1 << logn
	a := newArena(tmp)
	k := &sign_key{f: a.i8(n), g: a.i8(n), F: a.i8(n), G: a.i8(n)}
	hm := a.u16(n)
	t1 := a.u16(n)
	s2 := a.i16(n)
	tf := a.f64s(9 * n)
	if err := decode_private_key(logn, privKey, k.f, k.g, k.F); err != nil {
		return 0, err
	}
	if err := complete_private(logn, k.f, k.g, k.F, k.G, hm, t1); err != nil {
		return 0, err
	}

	var keyHash [64]byte
	if sigType == SigDeterministic {
		keyHash = priv_key_hash(privKey)
	}
	return sign_loop(logn, rng, sig, sigType, k, keyHash[:], msg, hm, s2, tf), nil
}

// ExpandPrivate computes an expanded private key, which makes repeated
// signing with SignTree faster. expandedKey must have room for
// ExpandedKeySize(logn) bytes and tmp for TmpSizeExpandPriv(logn) bytes.
func ExpandPrivate(expandedKey []byte, privKey []byte, tmp []byte) error {
	logn, err := GetLogn(privKey)
	if err != nil {
		return err
	}
	if len(expandedKey) < ExpandedKeySize(logn) {
		return ErrSize
	}
	if err := checkTmp(tmp, TmpSizeExpandPriv(logn)); err != nil {
		return err
	}

	n := 1 << logn
	a := newArena(tmp)
	f := a.i8(n)
	g := a.i8(n)
	F := a.i8(n)
	G := a.i8(n)
	t0 := a.u16(n)
	t1 := a.u16(n)
	if err := decode_private_key(logn, privKey, f, g, F); err != nil {
		return err
	}
	if err := complete_private(logn, f, g, F, G, t0, t1); err != nil {
		return err
	}

	// The basis and Gram matrix are computed in a heap buffer, then
	// serialized.
	fb := make([]f64, 7*n)
	basis_to_FFT(logn, f, g, F, G, fb[:n*4])
	copy(fb[n*4:n*7], fb[:n*3])
	fpoly_gram_fft(logn, fb[n*4:n*5], fb[n*5:n*6], fb[n*6:n*7], fb[n*3:n*4])

	expandedKey[0] = byte(logn)
	kh := priv_key_hash(privKey)
	copy(expandedKey[1:65], kh[:])
	encode_f64s(fb, expandedKey[65:])
	for i := range fb {
		fb[i] = 0
	}
	return nil
}

// SignTree signs msg with an expanded private key (see ExpandPrivate).
// Arguments and results are as for SignDyn, with tmp sized by
// TmpSizeSignTree(logn). A given key and message yield the same
// deterministic signature with SignDyn and SignTree.
func SignTree(rng *PRNG, sig []byte, sigType SigType,
	expandedKey []byte, msg []byte, tmp []byte) (int, error) {

	if len(expandedKey) == 0 {
		return 0, ErrFormat
	}
	logn := uint(expandedKey[0])
	if !validLogN(logn) || len(expandedKey) != ExpandedKeySize(logn) {
		return 0, ErrFormat
	}
	if err := check_sign_args(logn, rng, sig, sigType); err != nil {
		return 0, err
	}
	if err := checkTmp(tmp, TmpSizeSignTree(logn)); err != nil {
		return 0, err
	}

	n := 1 << logn
	a := newArena(tmp)
	hm := a.u16(n)
	s2 := a.i16(n)
	tf := a.f64s(9 * n)
	basis := a.f64s(4 * n)
	body := expandedKey[65:]
	decode_f64s(body[:8*4*n], basis)
	k := &sign_key{basis: basis, gramEnc: body[8*4*n:]}
	return sign_loop(logn, rng, sig, sigType, k, expandedKey[1:65], msg, hm, s2, tf), nil
}

func encode_f64s(src []f64, dst []byte) {
	for i, x := range src {
		binary.LittleEndian.PutUint64(dst[8*i:], math.Float64bits(x))
	}
}

func decode_f64s(src []byte, dst []f64) {
	for i := range dst {
		dst[i] = math.Float64frombits(binary.LittleEndian.Uint64(src[8*i:]))
	}
}

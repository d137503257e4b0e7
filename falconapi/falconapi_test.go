package falconapi

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"sync"
	"testing"

	"github.com/pornin/go-falcon/falcon"
	"github.com/stretchr/testify/require"
	sha3 "golang.org/x/crypto/sha3"
)

// fixedEntropy returns a deterministic entropy stream derived from tag.
func fixedEntropy(tag string) io.Reader {
	sh := sha3.NewShake256()
	sh.Write([]byte(tag))
	return sh
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("no entropy")
}

var (
	keysOnce sync.Once
	keys512  *KeyPair
	keysErr  error
)

// testKeys returns a Falcon-512 key pair shared by the tests.
func testKeys(t testing.TB) *KeyPair {
	t.Helper()
	keysOnce.Do(func() {
		keys512, keysErr = New(WithEntropy(fixedEntropy("keys-512"))).GenerateKeyPair(Falcon512)
	})
	require.NoError(t, keysErr)
	return keys512
}

func TestResolveScratchSize(t *testing.T) {
	for p := MinSecurityParameter; p <= MaxSecurityParameter; p++ {
		size := ResolveScratchSize(p)
		logn := uint(p)
		require.GreaterOrEqual(t, size, falcon.TmpSizeKeygen(logn))
		require.GreaterOrEqual(t, size, falcon.TmpSizeSignDyn(logn))
		require.GreaterOrEqual(t, size, falcon.TmpSizeSignTree(logn))
		require.GreaterOrEqual(t, size, falcon.TmpSizeExpandPriv(logn))
		require.GreaterOrEqual(t, size, falcon.TmpSizeVerify(logn))
		require.GreaterOrEqual(t, size, falcon.TmpSizeMakePub(logn))
		if p > MinSecurityParameter {
			require.Greater(t, size, ResolveScratchSize(p-1))
		}
	}
	for _, p := range []SecurityParameter{0, 1, 11, 64} {
		require.Panics(t, func() { ResolveScratchSize(p) }, "param %d", p)
	}
}

func TestWithScratchWipes(t *testing.T) {
	var kept []byte
	err := withScratch(Falcon512, func(tmp []byte) error {
		require.Len(t, tmp, ResolveScratchSize(Falcon512))
		for i := range tmp {
			tmp[i] = 0xA5
		}
		kept = tmp
		return errors.New("boom")
	})
	require.EqualError(t, err, "boom")
	require.Equal(t, make([]byte, len(kept)), kept)
}

func TestSeedFromSystemEntropy(t *testing.T) {
	rng, err := New().seedFromSystemEntropy()
	require.NoError(t, err)
	require.NotNil(t, rng)

	_, err = New(WithEntropy(failingReader{})).seedFromSystemEntropy()
	require.ErrorIs(t, err, ErrEntropyUnavailable)

	_, err = New(WithEntropy(bytes.NewReader(make([]byte, seedSize-1)))).seedFromSystemEntropy()
	require.ErrorIs(t, err, ErrEntropyUnavailable)
	require.ErrorIs(t, err, io.ErrUnexpectedEOF)

	// Same seed, same stream.
	seed := bytes.Repeat([]byte{7}, seedSize)
	r1, err := New(WithEntropy(bytes.NewReader(seed))).seedFromSystemEntropy()
	require.NoError(t, err)
	r2, err := New(WithEntropy(bytes.NewReader(seed))).seedFromSystemEntropy()
	require.NoError(t, err)
	b1 := make([]byte, 64)
	b2 := make([]byte, 64)
	r1.Read(b1)
	r2.Read(b2)
	require.Equal(t, b1, b2)
}

func TestGenerateKeyPair(t *testing.T) {
	for p := MinSecurityParameter; p <= SecurityParameter(6); p++ {
		t.Run(p.String(), func(t *testing.T) {
			kp, err := New(WithEntropy(fixedEntropy(p.String()))).GenerateKeyPair(p)
			require.NoError(t, err)
			require.Equal(t, p, kp.LogN)
			require.Len(t, kp.PublicKey, p.PublicKeySize())
			require.Len(t, kp.PrivateKey, p.PrivateKeySize())
			require.Equal(t, byte(p), kp.PublicKey[0])
			require.Equal(t, byte(0x50+p), kp.PrivateKey[0])

			again, err := New(WithEntropy(fixedEntropy(p.String()))).GenerateKeyPair(p)
			require.NoError(t, err)
			require.Equal(t, kp, again)

			pub, err := PublicKeyFromPrivate(kp.PrivateKey)
			require.NoError(t, err)
			require.Equal(t, kp.PublicKey, pub)
		})
	}

	kp := testKeys(t)
	require.Len(t, kp.PublicKey, 897)
	require.Len(t, kp.PrivateKey, 1281)

	other, err := GenerateKeyPair(Falcon512)
	require.NoError(t, err)
	require.NotEqual(t, kp.PublicKey, other.PublicKey)
}

func TestGenerateKeyPairErrors(t *testing.T) {
	for _, p := range []SecurityParameter{0, 1, 11} {
		kp, err := GenerateKeyPair(p)
		require.ErrorIs(t, err, ErrParameterMismatch)
		require.Nil(t, kp)
	}
	kp, err := New(WithEntropy(failingReader{})).GenerateKeyPair(Falcon512)
	require.ErrorIs(t, err, ErrEntropyUnavailable)
	require.Nil(t, kp)

	_, err = PublicKeyFromPrivate(nil)
	require.ErrorIs(t, err, ErrDecodingFailed)
	_, err = PublicKeyFromPrivate(testKeys(t).PrivateKey[:100])
	require.ErrorIs(t, err, ErrParameterMismatch)
}

func TestPublicKeyFromCorruptPrivate(t *testing.T) {
	kp := testKeys(t)

	// The last byte holds the last coefficient of F; -128 has no encoding.
	reserved := bytes.Clone(kp.PrivateKey)
	reserved[len(reserved)-1] = 0x80
	_, err := PublicKeyFromPrivate(reserved)
	require.ErrorIs(t, err, ErrDecodingFailed)
	require.Equal(t, int(falcon.ErrFormat), StatusCode(err))

	// A valid encoding of another F leaves G out of range.
	changed := bytes.Clone(kp.PrivateKey)
	changed[len(changed)-1] ^= 0x01
	_, err = PublicKeyFromPrivate(changed)
	require.ErrorIs(t, err, ErrDecodingFailed)
	require.Equal(t, int(falcon.ErrFormat), StatusCode(err))
}

func TestWithEntropyConcurrent(t *testing.T) {
	e := New(WithEntropy(fixedEntropy("shared stream")))
	var wg sync.WaitGroup
	errs := make(chan error, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := e.seedFromSystemEntropy()
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}
}

func TestKeyPairWipe(t *testing.T) {
	kp, err := New(WithEntropy(fixedEntropy("wipe"))).GenerateKeyPair(4)
	require.NoError(t, err)
	kp.Wipe()
	require.Equal(t, make([]byte, len(kp.PrivateKey)), kp.PrivateKey)
}

func TestSignVerify(t *testing.T) {
	kp := testKeys(t)
	msg := []byte("data1")

	sig, err := Sign(msg, kp.PrivateKey)
	require.NoError(t, err)
	require.LessOrEqual(t, len(sig), SignParameter.SignatureMaxSize())
	require.Equal(t, len(sig), cap(sig))
	require.Equal(t, byte(0x39), sig[0])
	require.Equal(t, byte(0x00), sig[1])

	ok, err := Verify(msg, sig, kp.PublicKey)
	require.NoError(t, err)
	require.True(t, ok)

	// Deterministic regardless of the entropy source.
	sig2, err := New(WithEntropy(fixedEntropy("other"))).Sign(msg, kp.PrivateKey)
	require.NoError(t, err)
	require.Equal(t, sig, sig2)

	sig3, err := SignKeyPair(msg, kp)
	require.NoError(t, err)
	require.Equal(t, sig, sig3)

	sig4, err := Sign([]byte("data2"), kp.PrivateKey)
	require.NoError(t, err)
	require.NotEqual(t, sig, sig4)

	ok, err = Verify([]byte("data2"), sig, kp.PublicKey)
	require.NoError(t, err)
	require.False(t, ok)

	// Empty messages are signed like any other.
	sig5, err := Sign(nil, kp.PrivateKey)
	require.NoError(t, err)
	ok, err = Verify([]byte{}, sig5, kp.PublicKey)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestVerifyRejects(t *testing.T) {
	kp := testKeys(t)
	msg := []byte("mutation target")
	sig, err := Sign(msg, kp.PrivateKey)
	require.NoError(t, err)

	flip := func(b []byte, i int) []byte {
		c := bytes.Clone(b)
		c[i] ^= 0x01
		return c
	}
	cases := []struct {
		name     string
		msg, sig []byte
		pub      []byte
	}{
		{"message", flip(msg, 3), sig, kp.PublicKey},
		{"signature", msg, flip(sig, len(sig)/2), kp.PublicKey},
		{"public key", msg, sig, flip(kp.PublicKey, 100)},
		{"public key header", msg, sig, flip(kp.PublicKey, 0)},
		{"empty signature", msg, nil, kp.PublicKey},
		{"truncated signature", msg, sig[:1], kp.PublicKey},
		{"other degree header", msg, append([]byte{0x3A}, sig[1:]...), kp.PublicKey},
		{"oversized signature", msg, append(bytes.Clone(sig), make([]byte, 1024)...), kp.PublicKey},
		{"one trailing zero", msg, append(bytes.Clone(sig), 0), kp.PublicKey},
		{"two trailing zeros", msg, append(bytes.Clone(sig), 0, 0), kp.PublicKey},
		{"three trailing zeros", msg, append(bytes.Clone(sig), 0, 0, 0), kp.PublicKey},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ok, err := Verify(tc.msg, tc.sig, tc.pub)
			require.NoError(t, err)
			require.False(t, ok)
		})
	}

	other, err := New(WithEntropy(fixedEntropy("other-512"))).GenerateKeyPair(Falcon512)
	require.NoError(t, err)
	ok, err := Verify(msg, sig, other.PublicKey)
	require.NoError(t, err)
	require.False(t, ok)
}

// Randomized signatures from the same key are valid for the primitive
// but are not deterministic signatures.
func TestOtherSignatureTypes(t *testing.T) {
	kp := testKeys(t)
	msg := []byte("randomized")
	rng := falcon.NewPRNG([]byte("other signature types"))
	tmp := make([]byte, falcon.TmpSizeSignDyn(9))
	for _, st := range []falcon.SigType{falcon.SigCompressed, falcon.SigPadded, falcon.SigCT} {
		sig := make([]byte, falcon.SigMaxSize(9, st))
		n, err := falcon.SignDyn(rng, sig, st, kp.PrivateKey, msg, tmp)
		require.NoError(t, err)
		sig = sig[:n]
		require.NoError(t, falcon.Verify(sig, st, kp.PublicKey, msg, make([]byte, falcon.TmpSizeVerify(9))))

		ok, err := Verify(msg, sig, kp.PublicKey)
		require.NoError(t, err, "type %v", st)
		require.False(t, ok, "type %v", st)

		_, err = DecodeSignatureAndKeyAlloc(sig, kp.PublicKey, msg)
		require.ErrorIs(t, err, ErrDecodingFailed, "type %v", st)
		_, err = DecodeShortVectorS2(sig)
		require.ErrorIs(t, err, ErrDecodingFailed, "type %v", st)
	}
}

// Every bit of a short message is flipped; signature and public key bits
// are sampled with a stride.
func TestVerifySingleBitFlips(t *testing.T) {
	kp := testKeys(t)
	msg := []byte("single-bit flips!")
	sig, err := Sign(msg, kp.PrivateKey)
	require.NoError(t, err)

	flipBit := func(b []byte, bit int) []byte {
		c := bytes.Clone(b)
		c[bit>>3] ^= 1 << (bit & 7)
		return c
	}
	check := func(what string, bit int, m, s, p []byte) {
		ok, err := Verify(m, s, p)
		require.NoError(t, err, "%s bit %d", what, bit)
		require.False(t, ok, "%s bit %d", what, bit)
	}
	for bit := 0; bit < 8*len(msg); bit++ {
		check("message", bit, flipBit(msg, bit), sig, kp.PublicKey)
	}
	for bit := 0; bit < 8*len(sig); bit += 7 {
		check("signature", bit, msg, flipBit(sig, bit), kp.PublicKey)
	}
	for bit := 0; bit < 8*len(kp.PublicKey); bit += 11 {
		check("public key", bit, msg, sig, flipBit(kp.PublicKey, bit))
	}
}

func TestEndToEnd(t *testing.T) {
	kp := testKeys(t)
	msg := make([]byte, 1009)
	_, err := io.ReadFull(fixedEntropy("end-to-end message"), msg)
	require.NoError(t, err)

	sig, err := Sign(msg, kp.PrivateKey)
	require.NoError(t, err)
	ok, err := Verify(msg, sig, kp.PublicKey)
	require.NoError(t, err)
	require.True(t, ok)

	d, err := DecodeSignatureAndKeyAlloc(sig, kp.PublicKey, msg)
	require.NoError(t, err)
	require.Len(t, d.S1, SignParameter.Degree())
	require.Len(t, d.S2, SignParameter.Degree())
	require.Len(t, d.PublicKey, SignParameter.Degree())

	c, err := MessageHashPolynomial(nil, msg)
	require.NoError(t, err)
	require.Len(t, c, SignParameter.Degree())
	require.Equal(t, c, mulAdd(d.S1, d.S2, d.PublicKey))
}

func TestDecodePublicKeysBatch(t *testing.T) {
	keys := [][]byte{testKeys(t).PublicKey}
	for i := 1; i < 5; i++ {
		kp, err := New(WithEntropy(fixedEntropy(fmt.Sprintf("batch-%d", i)))).GenerateKeyPair(Falcon512)
		require.NoError(t, err)
		keys = append(keys, kp.PublicKey)
	}

	res := DecodePublicKeys(keys)
	require.Len(t, res, len(keys))
	for i, pk := range keys {
		require.NoError(t, res[i].Err)
		want := make([]uint16, SignParameter.Degree())
		_, err := falcon.DecodePublicKey(pk, want)
		require.NoError(t, err)
		require.Equal(t, want, res[i].Coeffs, "key %d", i)
		if i > 0 {
			require.NotEqual(t, res[i-1].Coeffs, res[i].Coeffs)
		}
	}
}

func TestParameterMismatch(t *testing.T) {
	kp := testKeys(t)
	small, err := New(WithEntropy(fixedEntropy("small"))).GenerateKeyPair(6)
	require.NoError(t, err)

	_, err = Sign([]byte("m"), small.PrivateKey)
	require.ErrorIs(t, err, ErrParameterMismatch)
	_, err = Sign([]byte("m"), kp.PrivateKey[:len(kp.PrivateKey)-1])
	require.ErrorIs(t, err, ErrParameterMismatch)
	_, err = Sign([]byte("m"), nil)
	require.ErrorIs(t, err, ErrParameterMismatch)
	_, err = SignKeyPair([]byte("m"), small)
	require.ErrorIs(t, err, ErrParameterMismatch)
	_, err = SignKeyPair([]byte("m"), nil)
	require.ErrorIs(t, err, ErrParameterMismatch)

	// A 512 private key passed with a wrong header byte.
	bad := bytes.Clone(kp.PrivateKey)
	bad[0] = 0x5A
	_, err = Sign([]byte("m"), bad)
	require.ErrorIs(t, err, ErrParameterMismatch)

	sig, err := Sign([]byte("m"), kp.PrivateKey)
	require.NoError(t, err)
	ok, err := Verify([]byte("m"), sig, small.PublicKey)
	require.ErrorIs(t, err, ErrParameterMismatch)
	require.False(t, ok)
	ok, err = Verify([]byte("m"), sig, kp.PublicKey[:896])
	require.ErrorIs(t, err, ErrParameterMismatch)
	require.False(t, ok)

	_, err = New(WithEntropy(failingReader{})).Sign([]byte("m"), kp.PrivateKey)
	require.ErrorIs(t, err, ErrEntropyUnavailable)
}

// mulAdd returns s1 + s2*h mod (X^n+1, q), computed naively.
func mulAdd(s1, s2 []int16, h []uint16) []uint16 {
	const q = 12289
	n := len(h)
	acc := make([]int64, n)
	for i := 0; i < n; i++ {
		acc[i] = int64(s1[i])
	}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			v := int64(s2[i]) * int64(h[j])
			if i+j < n {
				acc[i+j] += v
			} else {
				acc[i+j-n] -= v
			}
		}
	}
	out := make([]uint16, n)
	for i, v := range acc {
		v %= q
		if v < 0 {
			v += q
		}
		out[i] = uint16(v)
	}
	return out
}

func TestIntrospection(t *testing.T) {
	kp := testKeys(t)
	msg := []byte("introspect me")
	sig, err := Sign(msg, kp.PrivateKey)
	require.NoError(t, err)

	d, err := DecodeSignatureAndKeyAlloc(sig, kp.PublicKey, msg)
	require.NoError(t, err)
	require.Len(t, d.S1, 512)
	require.Len(t, d.S2, 512)
	require.Len(t, d.PublicKey, 512)

	c, err := MessageHashPolynomial(nil, msg)
	require.NoError(t, err)
	require.Equal(t, c, mulAdd(d.S1, d.S2, d.PublicKey))

	s2, err := DecodeShortVectorS2(sig)
	require.NoError(t, err)
	require.Equal(t, d.S2, s2)

	res := DecodePublicKeys([][]byte{kp.PublicKey})
	require.Len(t, res, 1)
	require.NoError(t, res[0].Err)
	require.Equal(t, d.PublicKey, res[0].Coeffs)

	// Caller storage larger than the degree is accepted.
	s1b := make([]int16, 600)
	s2b := make([]int16, 600)
	hb := make([]uint16, 600)
	require.NoError(t, DecodeSignatureAndKey(sig, kp.PublicKey, msg, s1b, s2b, hb))
	require.Equal(t, d.S1, s1b[:512])
	require.Equal(t, make([]int16, 88), s1b[512:])
}

func TestIntrospectionErrors(t *testing.T) {
	kp := testKeys(t)
	msg := []byte("introspect me")
	sig, err := Sign(msg, kp.PrivateKey)
	require.NoError(t, err)

	n := 512
	err = DecodeSignatureAndKey(sig, kp.PublicKey, msg,
		make([]int16, n-1), make([]int16, n), make([]uint16, n))
	require.ErrorIs(t, err, ErrInsufficientCapacity)
	err = DecodeSignatureAndKey(sig, kp.PublicKey, msg,
		make([]int16, n), make([]int16, n), nil)
	require.ErrorIs(t, err, ErrInsufficientCapacity)

	_, err = DecodeSignatureAndKeyAlloc(sig, kp.PublicKey, []byte("other"))
	require.ErrorIs(t, err, ErrDecodingFailed)
	require.ErrorIs(t, err, falcon.ErrBadSig)
	require.Equal(t, int(falcon.ErrBadSig), StatusCode(err))

	_, err = DecodeSignatureAndKeyAlloc(sig[:10], kp.PublicKey, msg)
	require.ErrorIs(t, err, ErrDecodingFailed)

	_, err = DecodeSignatureAndKeyAlloc(sig, kp.PublicKey[:10], msg)
	require.ErrorIs(t, err, ErrParameterMismatch)

	_, err = DecodeShortVectorS2(nil)
	require.ErrorIs(t, err, ErrDecodingFailed)
	_, err = DecodeShortVectorS2(append([]byte{0x3A}, sig[1:]...))
	require.ErrorIs(t, err, ErrParameterMismatch)
	bad := bytes.Clone(sig)
	bad[1] = 0x01
	_, err = DecodeShortVectorS2(bad)
	require.ErrorIs(t, err, ErrDecodingFailed)
	require.Equal(t, int(falcon.ErrFormat), StatusCode(err))

	// Trailing bytes are not part of a deterministic signature.
	padded := append(bytes.Clone(sig), 0)
	_, err = DecodeSignatureAndKeyAlloc(padded, kp.PublicKey, msg)
	require.ErrorIs(t, err, ErrDecodingFailed)
	require.Equal(t, int(falcon.ErrFormat), StatusCode(err))
	_, err = DecodeShortVectorS2(padded)
	require.ErrorIs(t, err, ErrDecodingFailed)
}

func TestDecodePublicKeys(t *testing.T) {
	kp := testKeys(t)
	small, err := New(WithEntropy(fixedEntropy("small"))).GenerateKeyPair(6)
	require.NoError(t, err)

	// All-ones coefficients encode 16383, which is not below q.
	outOfRange := bytes.Repeat([]byte{0xFF}, len(kp.PublicKey))
	outOfRange[0] = 0x09

	res := DecodePublicKeys([][]byte{
		kp.PublicKey,
		small.PublicKey,
		nil,
		outOfRange,
		kp.PublicKey,
	})
	require.Len(t, res, 5)
	require.NoError(t, res[0].Err)
	require.ErrorIs(t, res[1].Err, ErrParameterMismatch)
	require.ErrorIs(t, res[2].Err, ErrParameterMismatch)
	require.ErrorIs(t, res[3].Err, ErrDecodingFailed)
	require.Nil(t, res[3].Coeffs)
	require.NoError(t, res[4].Err)
	require.Equal(t, res[0].Coeffs, res[4].Coeffs)
	for _, x := range res[0].Coeffs {
		require.Less(t, x, uint16(12289))
	}

	require.Empty(t, DecodePublicKeys(nil))
}

func TestMessageHashPolynomial(t *testing.T) {
	nonce := bytes.Repeat([]byte{0x42}, falcon.NonceSize)
	c1, err := MessageHashPolynomial(nonce, []byte("abc"))
	require.NoError(t, err)
	require.Len(t, c1, 512)
	for _, x := range c1 {
		require.Less(t, x, uint16(12289))
	}
	c2, err := MessageHashPolynomial(nonce, []byte("abc"))
	require.NoError(t, err)
	require.Equal(t, c1, c2)

	c3, err := MessageHashPolynomial(nil, []byte("abc"))
	require.NoError(t, err)
	require.NotEqual(t, c1, c3)

	want := make([]uint16, 512)
	require.NoError(t, falcon.HashToPoint(9, nonce, []byte("abc"), want))
	require.Equal(t, want, c1)
}

func TestPrimitiveError(t *testing.T) {
	cases := map[Op]error{
		OpKeyGen: ErrKeyGenerationFailed,
		OpSign:   ErrSigningFailed,
		OpVerify: ErrVerificationFailed,
		OpDecode: ErrDecodingFailed,
		OpHash:   ErrHashComputationFailed,
	}
	for op, sentinel := range cases {
		err := fmt.Errorf("wrapped: %w", primitiveError(op, falcon.ErrSize))
		require.ErrorIs(t, err, sentinel)
		require.ErrorIs(t, err, falcon.ErrSize)
		require.NotErrorIs(t, err, falcon.ErrFormat)
		require.Equal(t, -2, StatusCode(err))

		var pe *PrimitiveError
		require.ErrorAs(t, err, &pe)
		require.Equal(t, op, pe.Op)
		require.Contains(t, pe.Error(), string(op))
	}
	require.Equal(t, int(falcon.ErrInternal), StatusCode(primitiveError(OpSign, errors.New("x"))))
	require.Equal(t, 0, StatusCode(nil))
	require.Equal(t, 0, StatusCode(ErrParameterMismatch))
}

func TestConcurrentUse(t *testing.T) {
	kp := testKeys(t)
	e := New()
	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			msg := []byte(fmt.Sprintf("message %d", i))
			sig, err := e.Sign(msg, kp.PrivateKey)
			if err != nil {
				errs <- err
				return
			}
			ok, err := e.Verify(msg, sig, kp.PublicKey)
			if err != nil {
				errs <- err
				return
			}
			if !ok {
				errs <- fmt.Errorf("message %d: signature rejected", i)
			}
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}
}

func BenchmarkSign(b *testing.B) {
	kp := testKeys(b)
	msg := []byte("benchmark")
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Sign(msg, kp.PrivateKey); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkVerify(b *testing.B) {
	kp := testKeys(b)
	msg := []byte("benchmark")
	sig, err := Sign(msg, kp.PrivateKey)
	require.NoError(b, err)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if ok, err := Verify(msg, sig, kp.PublicKey); err != nil || !ok {
			b.Fatal("verification failed", err)
		}
	}
}

package falcon

import (
	"bytes"
	"fmt"
	sha3 "golang.org/x/crypto/sha3"
	"testing"
)

var allSigTypes = []SigType{SigCompressed, SigPadded, SigCT, SigDeterministic}

// Key pair generated from a seed derived from (tag, logn, j).
func seededKeyPair(t testing.TB, tag byte, logn uint, j int) (priv []byte, pub []byte) {
	var seed [32]byte
	sh := sha3.NewShake256()
	sh.Write([]byte{tag, byte(logn), byte(j), byte(j >> 8)})
	sh.Read(seed[:])
	priv = make([]byte, PrivKeySize(logn))
	pub = make([]byte, PubKeySize(logn))
	tmp := make([]byte, TmpSizeKeygen(logn))
	if err := KeyGen(NewPRNG(seed[:]), logn, priv, pub, tmp); err != nil {
		t.Fatal(err)
	}
	return priv, pub
}

func signDyn(t testing.TB, rng *PRNG, sigType SigType, priv []byte, msg []byte) []byte {
	logn, err := GetLogn(priv)
	if err != nil {
		t.Fatal(err)
	}
	sig := make([]byte, SigMaxSize(logn, sigType))
	n, err := SignDyn(rng, sig, sigType, priv, msg, make([]byte, TmpSizeSignDyn(logn)))
	if err != nil {
		t.Fatalf("sign (logn=%d, type=%v): %v", logn, sigType, err)
	}
	return sig[:n]
}

func verify(sig []byte, sigType SigType, pub []byte, msg []byte) error {
	logn, err := GetLogn(pub)
	if err != nil {
		return err
	}
	return Verify(sig, sigType, pub, msg, make([]byte, TmpSizeVerify(logn)))
}

func TestFalcon_Self(t *testing.T) {
	for logn := uint(2); logn <= uint(10); logn++ {
		fmt.Printf("[%d]", logn)
		for j := 0; j < 2; j++ {
			priv, pub := seededKeyPair(t, 0x00, logn, j)
			rng := NewPRNG([]byte{0x01, byte(logn), byte(j)})
			msg := []byte("test")
			for _, st := range allSigTypes {
				sig := signDyn(t, rng, st, priv, msg)
				if st == SigPadded || st == SigCT {
					if len(sig) != SigMaxSize(logn, st) {
						t.Fatalf("wrong signature size (logn=%d, type=%v): %d\n",
							logn, st, len(sig))
					}
				}
				if err := verify(sig, st, pub, msg); err != nil {
					t.Fatalf("verification failed (logn=%d, type=%v): %v\n",
						logn, st, err)
				}
				if err := verify(sig, SigAuto, pub, msg); err != nil {
					t.Fatalf("auto verification failed (logn=%d, type=%v): %v\n",
						logn, st, err)
				}
				if err := verify(sig, st, pub, []byte("tesT")); err == nil {
					t.Fatalf("wrong message accepted (logn=%d, type=%v)\n", logn, st)
				}
			}
			fmt.Print(".")
		}
	}
	fmt.Println()
}

func TestFalcon_SeededKeyGen(t *testing.T) {
	for logn := uint(2); logn <= uint(9); logn++ {
		priv1, pub1 := seededKeyPair(t, 0x02, logn, 0)
		priv2, pub2 := seededKeyPair(t, 0x02, logn, 0)
		if !bytes.Equal(priv1, priv2) || !bytes.Equal(pub1, pub2) {
			t.Fatalf("key generation is not reproducible (logn=%d)", logn)
		}
		if priv1[0] != byte(0x50+logn) || pub1[0] != byte(logn) {
			t.Fatalf("wrong key headers (logn=%d): %02x %02x", logn, priv1[0], pub1[0])
		}
		pub3 := make([]byte, PubKeySize(logn))
		if err := MakePublic(pub3, priv1, make([]byte, TmpSizeMakePub(logn))); err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(pub1, pub3) {
			t.Fatalf("recomputed public key differs (logn=%d)", logn)
		}
		for _, obj := range [][]byte{priv1, pub1} {
			if l, err := GetLogn(obj); err != nil || l != logn {
				t.Fatalf("GetLogn: %d, %v (exp: %d)", l, err, logn)
			}
		}

		// Keys without a public part.
		priv4 := make([]byte, PrivKeySize(logn))
		var seed [32]byte
		sh := sha3.NewShake256()
		sh.Write([]byte{0x02, byte(logn), 0, 0})
		sh.Read(seed[:])
		if err := KeyGen(NewPRNG(seed[:]), logn, priv4, nil,
			make([]byte, TmpSizeKeygen(logn))); err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(priv1, priv4) {
			t.Fatalf("private key depends on the public key buffer (logn=%d)", logn)
		}
	}
}

func TestFalcon_Deterministic(t *testing.T) {
	for _, logn := range []uint{4, 9} {
		priv, pub := seededKeyPair(t, 0x03, logn, 0)
		msg := []byte("deterministic message")

		sig1 := signDyn(t, nil, SigDeterministic, priv, msg)
		sig2 := signDyn(t, NewPRNG([]byte("ignored")), SigDeterministic, priv, msg)
		if !bytes.Equal(sig1, sig2) {
			t.Fatalf("deterministic signatures differ (logn=%d)", logn)
		}
		if sig1[0] != byte(0x30+logn) || sig1[1] != detSaltVersion {
			t.Fatalf("wrong deterministic header (logn=%d): %02x %02x",
				logn, sig1[0], sig1[1])
		}

		ek := make([]byte, ExpandedKeySize(logn))
		if err := ExpandPrivate(ek, priv, make([]byte, TmpSizeExpandPriv(logn))); err != nil {
			t.Fatal(err)
		}
		sig3 := make([]byte, SigDeterministicMaxSize(logn))
		n, err := SignTree(nil, sig3, SigDeterministic, ek, msg,
			make([]byte, TmpSizeSignTree(logn)))
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(sig1, sig3[:n]) {
			t.Fatalf("tree and dynamic deterministic signatures differ (logn=%d)", logn)
		}

		sig4 := signDyn(t, nil, SigDeterministic, priv, []byte("another message"))
		if bytes.Equal(sig1, sig4) {
			t.Fatalf("distinct messages yield the same signature (logn=%d)", logn)
		}
		if err := verify(sig1, SigDeterministic, pub, msg); err != nil {
			t.Fatal(err)
		}
		if err := verify(sig4, SigDeterministic, pub, msg); err != ErrBadSig {
			t.Fatalf("signature over another message: %v", err)
		}
	}
}

func TestFalcon_Tree(t *testing.T) {
	for _, logn := range []uint{3, 8, 10} {
		priv, pub := seededKeyPair(t, 0x04, logn, 0)
		ek := make([]byte, ExpandedKeySize(logn))
		if err := ExpandPrivate(ek, priv, make([]byte, TmpSizeExpandPriv(logn))); err != nil {
			t.Fatal(err)
		}
		rng := NewPRNG([]byte("tree"))
		tmp := make([]byte, TmpSizeSignTree(logn))
		for i := 0; i < 5; i++ {
			msg := []byte{byte(i), 0x42}
			for _, st := range allSigTypes {
				sig := make([]byte, SigMaxSize(logn, st))
				n, err := SignTree(rng, sig, st, ek, msg, tmp)
				if err != nil {
					t.Fatal(err)
				}
				if err := verify(sig[:n], st, pub, msg); err != nil {
					t.Fatalf("tree signature rejected (logn=%d, type=%v): %v",
						logn, st, err)
				}
			}
		}
	}
}

func TestFalcon_Mutation(t *testing.T) {
	logn := uint(9)
	priv, pub := seededKeyPair(t, 0x05, logn, 0)
	msg := make([]byte, 1009)
	sh := sha3.NewShake256()
	sh.Write([]byte("mutation"))
	sh.Read(msg)
	sig := signDyn(t, nil, SigDeterministic, priv, msg)
	if err := verify(sig, SigDeterministic, pub, msg); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 20; i++ {
		var r [6]byte
		sh.Read(r[:])
		bit := byte(1) << (r[0] & 7)
		m := append([]byte{}, msg...)
		m[(int(r[1])|int(r[2])<<8)%len(m)] ^= bit
		s := append([]byte{}, sig...)
		s[(int(r[3])|int(r[4])<<8)%len(s)] ^= bit
		p := append([]byte{}, pub...)
		p[(int(r[5])|int(r[2])<<8)%len(p)] ^= bit
		if err := verify(sig, SigDeterministic, pub, m); err == nil {
			t.Fatalf("mutated message accepted")
		}
		if err := verify(s, SigDeterministic, pub, msg); err == nil {
			t.Fatalf("mutated signature accepted")
		}
		if err := verify(sig, SigDeterministic, p, msg); err == nil {
			t.Fatalf("mutated public key accepted")
		}
	}
}

func TestFalcon_Extract(t *testing.T) {
	for _, logn := range []uint{2, 5, 9} {
		n := 1 << logn
		priv, pub := seededKeyPair(t, 0x06, logn, 0)
		msg := []byte("extract")
		rng := NewPRNG([]byte("extract"))
		for _, st := range allSigTypes {
			sig := signDyn(t, rng, st, priv, msg)
			s1 := make([]int16, n)
			s2 := make([]int16, n)
			h := make([]uint16, n)
			err := ExtractValues(sig, st, pub, msg,
				make([]byte, TmpSizeVerify(logn)), s1, s2, h)
			if err != nil {
				t.Fatal(err)
			}

			// s1 + s2*h = c, with a schoolbook product.
			c := make([]uint16, n)
			var nonce []byte
			if st != SigDeterministic {
				nonce = sig[1 : 1+NonceSize]
			}
			if err := HashToPoint(logn, nonce, msg, c); err != nil {
				t.Fatal(err)
			}
			for i := 0; i < n; i++ {
				acc := int64(s1[i])
				for j := 0; j < n; j++ {
					v := int64(s2[j]) * int64(h[(i-j+n)%n])
					if j > i {
						v = -v
					}
					acc += v
				}
				acc %= q
				if acc < 0 {
					acc += q
				}
				if acc != int64(c[i]) {
					t.Fatalf("s1 + s2*h != c (logn=%d, type=%v, i=%d)", logn, st, i)
				}
			}
			if sq := signed_poly_sqnorm(logn, s1) + signed_poly_sqnorm(logn, s2); !mqpoly_sqnorm_is_acceptable(logn, sq) {
				t.Fatalf("extracted vectors are too long (logn=%d)", logn)
			}

			ct := 0
			if st == SigCT {
				ct = 1
			}
			d2 := make([]int16, n)
			if l, err := DecodeS2(sig, st, ct, d2); err != nil || l != logn {
				t.Fatalf("DecodeS2: %d, %v", l, err)
			}
			for i := 0; i < n; i++ {
				if d2[i] != s2[i] {
					t.Fatalf("DecodeS2 mismatch (logn=%d, type=%v, i=%d)", logn, st, i)
				}
			}
			if _, err := DecodeS2(sig, st, 1-ct, d2); err != ErrBadArg {
				t.Fatalf("DecodeS2 accepted a wrong body selector: %v", err)
			}
		}

		h2 := make([]uint16, n)
		if l, err := DecodePublicKey(pub, h2); err != nil || l != logn {
			t.Fatalf("DecodePublicKey: %d, %v", l, err)
		}
		if _, err := DecodePublicKey(pub, h2[:n-1]); err != ErrSize {
			t.Fatalf("short output accepted: %v", err)
		}
	}
}

func TestFalcon_Errors(t *testing.T) {
	logn := uint(4)
	priv, pub := seededKeyPair(t, 0x07, logn, 0)
	rng := NewPRNG([]byte("errors"))
	msg := []byte("msg")
	sig := make([]byte, SigCompressedMaxSize(logn))
	tmp := make([]byte, TmpSizeSignDyn(logn))

	if _, err := SignDyn(rng, sig, SigAuto, priv, msg, tmp); err != ErrBadArg {
		t.Fatalf("SigAuto accepted for signing: %v", err)
	}
	if _, err := SignDyn(nil, sig, SigCompressed, priv, msg, tmp); err != ErrRandom {
		t.Fatalf("nil rng accepted: %v", err)
	}
	if _, err := SignDyn(rng, sig[:10], SigCompressed, priv, msg, tmp); err != ErrSize {
		t.Fatalf("short signature buffer accepted: %v", err)
	}
	if _, err := SignDyn(rng, sig, SigCompressed, priv, msg, tmp[:10]); err != ErrSize {
		t.Fatalf("short scratch accepted: %v", err)
	}
	if _, err := SignDyn(rng, sig, SigCompressed, priv[:len(priv)-1], msg, tmp); err != ErrFormat {
		t.Fatalf("truncated key accepted: %v", err)
	}
	if err := KeyGen(rng, 1, nil, nil, nil); err != ErrBadArg {
		t.Fatalf("logn=1 accepted: %v", err)
	}
	if err := KeyGen(nil, logn, make([]byte, PrivKeySize(logn)), nil,
		make([]byte, TmpSizeKeygen(logn))); err != ErrRandom {
		t.Fatalf("nil rng accepted: %v", err)
	}

	// A signature of another degree does not verify.
	good := signDyn(t, rng, SigCompressed, priv, msg)
	_, pub5 := seededKeyPair(t, 0x07, 5, 0)
	if err := verify(good, SigCompressed, pub5, msg); err != ErrFormat {
		t.Fatalf("degree mismatch: %v", err)
	}
	if err := verify(good, SigCT, pub, msg); err != ErrFormat {
		t.Fatalf("wrong type: %v", err)
	}
	if err := verify(good, SigType(9), pub, msg); err != ErrBadArg {
		t.Fatalf("unknown type: %v", err)
	}
	if err := verify(nil, SigAuto, pub, msg); err != ErrFormat {
		t.Fatalf("empty signature: %v", err)
	}

	// Only the padded type may carry bytes after the encoded s2.
	det := signDyn(t, rng, SigDeterministic, priv, msg)
	for k := 1; k <= 3; k++ {
		tail := make([]byte, k)
		if err := verify(append(bytes.Clone(good), tail...), SigCompressed, pub, msg); err != ErrFormat {
			t.Fatalf("compressed signature with %d trailing zeros: %v", k, err)
		}
		if err := verify(append(bytes.Clone(det), tail...), SigDeterministic, pub, msg); err != ErrFormat {
			t.Fatalf("deterministic signature with %d trailing zeros: %v", k, err)
		}
		if err := verify(append(bytes.Clone(det), tail...), SigAuto, pub, msg); err == nil {
			t.Fatalf("deterministic signature with %d trailing zeros accepted (auto)", k)
		}
	}
	padded := signDyn(t, rng, SigPadded, priv, msg)
	if err := verify(padded, SigPadded, pub, msg); err != nil {
		t.Fatalf("padded signature: %v", err)
	}
	if j, err := comp_decode(logn, padded[1+NonceSize:], make([]int16, 1<<logn)); err != nil {
		t.Fatal(err)
	} else if 1+NonceSize+j < len(padded) {
		padded[len(padded)-1] = 0x01
		if err := verify(padded, SigPadded, pub, msg); err != ErrFormat {
			t.Fatalf("non-zero padding accepted: %v", err)
		}
	}

	// The whole private key is checked when recomputing the public key.
	badF := bytes.Clone(priv)
	badF[len(badF)-1] ^= 0x01
	if err := MakePublic(make([]byte, PubKeySize(logn)), badF,
		make([]byte, TmpSizeMakePub(logn))); err != ErrFormat {
		t.Fatalf("damaged F accepted: %v", err)
	}
	badF[len(badF)-1] = 0x80
	if err := MakePublic(make([]byte, PubKeySize(logn)), badF,
		make([]byte, TmpSizeMakePub(logn))); err != ErrFormat {
		t.Fatalf("reserved F coefficient accepted: %v", err)
	}
	if err := Verify(good, SigCompressed, pub, msg, nil); err != ErrSize {
		t.Fatalf("missing scratch: %v", err)
	}

	if Code(nil) != 0 || Code(ErrBadSig) != -4 || Code(fmt.Errorf("x: %w", ErrSize)) != -2 {
		t.Fatalf("wrong status codes")
	}
	if Code(fmt.Errorf("plain")) != int(ErrInternal) {
		t.Fatalf("foreign error not mapped to ErrInternal")
	}
}

func TestHashToPoint(t *testing.T) {
	c1 := make([]uint16, 512)
	c2 := make([]uint16, 512)
	if err := HashToPoint(9, nil, []byte("abc"), c1); err != nil {
		t.Fatal(err)
	}
	if err := HashToPoint(9, []byte{}, []byte("abc"), c2); err != nil {
		t.Fatal(err)
	}
	for i := range c1 {
		if c1[i] >= q || c1[i] != c2[i] {
			t.Fatalf("ERR: i=%d: %d %d", i, c1[i], c2[i])
		}
	}
	// The nonce is a plain prefix of the hashed data.
	if err := HashToPoint(9, []byte("a"), []byte("bc"), c2); err != nil {
		t.Fatal(err)
	}
	for i := range c1 {
		if c1[i] != c2[i] {
			t.Fatalf("ERR: nonce is not a prefix (i=%d)", i)
		}
	}
	if err := HashToPoint(1, nil, nil, c1); err != ErrBadArg {
		t.Fatalf("logn=1 accepted: %v", err)
	}
	if err := HashToPoint(9, nil, nil, c1[:511]); err != ErrSize {
		t.Fatalf("short output accepted: %v", err)
	}
}

func BenchmarkKeyGen512(b *testing.B) {
	bench_keygen_inner(b, 9)
}

func BenchmarkKeyGen1024(b *testing.B) {
	bench_keygen_inner(b, 10)
}

func bench_keygen_inner(b *testing.B, logn uint) {
	priv := make([]byte, PrivKeySize(logn))
	pub := make([]byte, PubKeySize(logn))
	tmp := make([]byte, TmpSizeKeygen(logn))
	rng := NewPRNG([]byte("bench"))
	for i := 0; i < b.N; i++ {
		KeyGen(rng, logn, priv, pub, tmp)
	}
}

func BenchmarkSign512(b *testing.B) {
	bench_sign_inner(b, 9)
}

func BenchmarkSign1024(b *testing.B) {
	bench_sign_inner(b, 10)
}

func bench_sign_inner(b *testing.B, logn uint) {
	priv, _ := seededKeyPair(b, 0x10, logn, 0)
	sig := make([]byte, SigDeterministicMaxSize(logn))
	tmp := make([]byte, TmpSizeSignDyn(logn))
	data := []byte("test")

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		n, _ := SignDyn(nil, sig, SigDeterministic, priv, data, tmp)
		data = sig[n-32 : n]
	}
}

func BenchmarkSignTree512(b *testing.B) {
	logn := uint(9)
	priv, _ := seededKeyPair(b, 0x11, logn, 0)
	ek := make([]byte, ExpandedKeySize(logn))
	if err := ExpandPrivate(ek, priv, make([]byte, TmpSizeExpandPriv(logn))); err != nil {
		b.Fatal(err)
	}
	sig := make([]byte, SigDeterministicMaxSize(logn))
	tmp := make([]byte, TmpSizeSignTree(logn))
	data := []byte("test")

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		n, _ := SignTree(nil, sig, SigDeterministic, ek, data, tmp)
		data = sig[n-32 : n]
	}
}

func BenchmarkVerify512(b *testing.B) {
	logn := uint(9)
	priv, pub := seededKeyPair(b, 0x12, logn, 0)
	data := []byte("test")
	var sigs [10][]byte
	for i := 0; i < 10; i++ {
		sigs[i] = signDyn(b, NewPRNG([]byte{byte(i)}), SigCompressed, priv, data)
	}
	tmp := make([]byte, TmpSizeVerify(logn))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if Verify(sigs[i%len(sigs)], SigCompressed, pub, data, tmp) != nil {
			b.Fatal("signature verification failed")
		}
	}
}

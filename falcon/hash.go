package falcon

import (
	sha3 "golang.org/x/crypto/sha3"
)

// Hash a nonce and a message into a polynomial c with coefficients in
// [0,q-1]: SHAKE256(nonce || msg) is read as big-endian 16-bit words,
// values of 61445 (5*q) and more are rejected, the others are reduced
// modulo q.
func hash_to_point(logn uint, nonce []byte, msg []byte, c []uint16) {
	n := 1 << logn
	sh := sha3.NewShake256()
	sh.Write(nonce)
	sh.Write(msg)
	var v [2]byte
	for i := 0; i < n; {
		sh.Read(v[:])
		w := (uint32(v[0]) << 8) | uint32(v[1])
		if w < 61445 {
			for w >= q {
				w -= q
			}
			c[i] = uint16(w)
			i++
		}
	}
}

// HashToPoint computes the hash polynomial of a message, as used by
// signing and verification, into c (at least 2^logn elements). An empty
// nonce corresponds to the deterministic signature type.
func HashToPoint(logn uint, nonce []byte, msg []byte, c []uint16) error {
	if !validLogN(logn) {
		return ErrBadArg
	}
	if len(c) < (1 << logn) {
		return ErrSize
	}
	hash_to_point(logn, nonce, msg, c)
	return nil
}

// Domain separation tag for the sampler seed of deterministic signatures.
var detSeedTag = []byte("FALCON_DET")

// Hash of an encoded private key, which keys the deterministic sampler.
// Expanded keys store it so that both signing paths agree.
func priv_key_hash(privKey []byte) [64]byte {
	var d [64]byte
	sha3.ShakeSum256(d[:], privKey)
	return d
}

// Derive the sampler seed for a deterministic signature attempt, from the
// private key hash, the message and the attempt counter.
func det_seed(keyHash []byte, msg []byte, counter uint32) [56]byte {
	sh := sha3.NewShake256()
	sh.Write(detSeedTag)
	sh.Write(keyHash)
	sh.Write(msg)
	sh.Write([]byte{
		byte(counter), byte(counter >> 8), byte(counter >> 16), byte(counter >> 24),
	})
	var s [56]byte
	sh.Read(s[:])
	return s
}

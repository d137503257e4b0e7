package falcon

import (
	sha3 "golang.org/x/crypto/sha3"
)

// PRNG is a random stream based on SHAKE256. It is seeded once (with
// NewPRNG) and then produces an unbounded output stream. A PRNG must
// not be used concurrently.
type PRNG struct {
	sh sha3.ShakeHash
}

// NewPRNG returns a PRNG seeded with the provided bytes. The seed should
// contain enough entropy (at least 32 bytes of it) for key generation
// and randomized signing; the same seed always yields the same stream.
func NewPRNG(seed []byte) *PRNG {
	p := &PRNG{sh: sha3.NewShake256()}
	p.sh.Write(seed)
	return p
}

// Read fills dst with the next bytes of the stream. It never fails.
func (p *PRNG) Read(dst []byte) (int, error) {
	return p.sh.Read(dst)
}

// Get a fresh 32-byte seed for an internal generator.
func (p *PRNG) subseed() [32]byte {
	var s [32]byte
	p.sh.Read(s[:])
	return s
}

// A PRNG based on four parallel SHAKE256 instances, with interleaved
// outputs (8 bytes from each instance in turn). It feeds the key-pair
// sampler and the Gaussian sampler of the signer.
type shake256x4 struct {
	state [4]sha3.ShakeHash
	buf   [4 * 136]byte
	ptr   int
}

func newSHAKE256x4(seed []byte) *shake256x4 {
	r := new(shake256x4)
	for i := 0; i < 4; i++ {
		r.state[i] = sha3.NewShake256()
		r.state[i].Write(seed)
		r.state[i].Write([]byte{byte(i)})
	}
	r.ptr = len(r.buf)
	return r
}

func (r *shake256x4) next_u8() uint8 {
	ptr := r.ptr
	if ptr == len(r.buf) {
		r.refill()
		ptr = 0
	}
	r.ptr = ptr + 1
	return r.buf[ptr]
}

func (r *shake256x4) next_u16() uint16 {
	ptr := r.ptr
	if ptr >= (len(r.buf) - 1) {
		r.refill()
		ptr = 0
	}
	r.ptr = ptr + 2
	return uint16(r.buf[ptr]) | (uint16(r.buf[ptr+1]) << 8)
}

func (r *shake256x4) next_u64() uint64 {
	ptr := r.ptr
	if ptr >= (len(r.buf) - 7) {
		r.refill()
		ptr = 0
	}
	x := uint64(0)
	r.ptr = ptr + 8
	for i := 0; i < 8; i++ {
		x |= uint64(r.buf[ptr+i]) << (i << 3)
	}
	return x
}

func (r *shake256x4) refill() {
	var tmp [136]byte
	for i := 0; i < 4; i++ {
		r.state[i].Read(tmp[:])
		for j := 0; j < 17; j++ {
			u := (i << 3) + (j << 5)
			v := j << 3
			copy(r.buf[u:u+8], tmp[v:v+8])
		}
	}
	r.ptr = 0
}

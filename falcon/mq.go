package falcon

// Computations on polynomials modulo X^n+1 and modulo q = 12289.
//
// Coefficients are held in uint16 slices, with values in [0,q-1] in
// both the coefficient and the NTT representations. The NTT evaluates
// a polynomial at the n roots psi^(2*i+1) of X^n+1, where psi is a
// primitive 2n-th root of 1 modulo q: coefficients are first multiplied
// by powers of psi, then a cyclic transform over omega = psi^2 is applied.

const q = 12289

// 7 is a primitive 2048-th root of 1 modulo q.
const mq_root2048 = 7

type mq_tables struct {
	tw  []uint16 // psi^i, for i < n
	itw []uint16 // psi^(-i)/n, for i < n
	om  []uint16 // omega^i, for i < n/2
	iom []uint16 // omega^(-i), for i < n/2
	rev []uint16 // bit-reversal permutation
}

var mq_tab [LogNMax + 1]*mq_tables

func init() {
	for logn := uint(1); logn <= LogNMax; logn++ {
		mq_tab[logn] = mq_make_tables(logn)
	}
}

func mq_make_tables(logn uint) *mq_tables {
	n := 1 << logn
	psi := mq_pow(mq_root2048, uint32(1)<<(LogNMax-logn))
	ipsi := mq_inv(psi)
	omega := mq_mul(psi, psi)
	iomega := mq_mul(ipsi, ipsi)
	ninv := mq_inv(uint32(n))
	t := &mq_tables{
		tw:  make([]uint16, n),
		itw: make([]uint16, n),
		om:  make([]uint16, n>>1),
		iom: make([]uint16, n>>1),
		rev: make([]uint16, n),
	}
	x := uint32(1)
	y := ninv
	for i := 0; i < n; i++ {
		t.tw[i] = uint16(x)
		t.itw[i] = uint16(y)
		x = mq_mul(x, psi)
		y = mq_mul(y, ipsi)
	}
	x = 1
	y = 1
	for i := 0; i < (n >> 1); i++ {
		t.om[i] = uint16(x)
		t.iom[i] = uint16(y)
		x = mq_mul(x, omega)
		y = mq_mul(y, iomega)
	}
	for i := 0; i < n; i++ {
		r := 0
		for j := uint(0); j < logn; j++ {
			r |= ((i >> j) & 1) << (logn - 1 - j)
		}
		t.rev[i] = uint16(r)
	}
	return t
}

// Operands are in [0,q-1]; so are the results.
func mq_add(x uint32, y uint32) uint32 {
	z := x + y - q
	return z + (q & -(z >> 31))
}

func mq_sub(x uint32, y uint32) uint32 {
	z := x - y
	return z + (q & -(z >> 31))
}

func mq_mul(x uint32, y uint32) uint32 {
	return (x * y) % q
}

func mq_pow(x uint32, e uint32) uint32 {
	r := uint32(1)
	for e != 0 {
		if (e & 1) != 0 {
			r = mq_mul(r, x)
		}
		x = mq_mul(x, x)
		e >>= 1
	}
	return r
}

// Inverse modulo q (0 is mapped to 0).
func mq_inv(x uint32) uint32 {
	return mq_pow(x, q-2)
}

// Reduce a signed value in ]-q,q[ to [0,q-1].
func mq_of_signed(x int32) uint16 {
	x += q & (x >> 31)
	return uint16(x)
}

// Map a value in [0,q-1] to ]-q/2,q/2].
func mq_to_signed(x uint16) int32 {
	v := int32(x)
	return v - (q & ((q/2 - v) >> 31))
}

// Convert a small polynomial to [0,q-1] coefficients.
func mqpoly_small_to_ext(logn uint, f []int8, d []uint16) {
	n := 1 << logn
	for i := 0; i < n; i++ {
		d[i] = mq_of_signed(int32(f[i]))
	}
}

// Convert a signed polynomial (coefficients in ]-q,q[) to [0,q-1]
// coefficients.
func mqpoly_signed_to_ext(logn uint, s []int16, d []uint16) {
	n := 1 << logn
	for i := 0; i < n; i++ {
		d[i] = mq_of_signed(int32(s[i]))
	}
}

// Convert a polynomial to its centered representation, as a small
// polynomial. False is returned if a coefficient is not in [-127,+127].
func mqpoly_ext_to_small(logn uint, a []uint16, f []int8) bool {
	n := 1 << logn
	ok := true
	for i := 0; i < n; i++ {
		v := mq_to_signed(a[i])
		if v < -127 || v > 127 {
			ok = false
		}
		f[i] = int8(v)
	}
	return ok
}

// NTT, in place.
func mqpoly_ntt(logn uint, a []uint16) {
	t := mq_tab[logn]
	n := 1 << logn
	for i := 0; i < n; i++ {
		a[i] = uint16(mq_mul(uint32(a[i]), uint32(t.tw[i])))
	}
	mq_cyclic(logn, a, t.om, t.rev)
}

// Inverse NTT, in place.
func mqpoly_intt(logn uint, a []uint16) {
	t := mq_tab[logn]
	n := 1 << logn
	mq_cyclic(logn, a, t.iom, t.rev)
	for i := 0; i < n; i++ {
		a[i] = uint16(mq_mul(uint32(a[i]), uint32(t.itw[i])))
	}
}

// Cyclic transform (decimation in time): bit-reversed input, natural
// output; om[] holds the powers of the primitive n-th root to use.
func mq_cyclic(logn uint, a []uint16, om []uint16, rev []uint16) {
	n := 1 << logn
	for i := 0; i < n; i++ {
		j := int(rev[i])
		if i < j {
			a[i], a[j] = a[j], a[i]
		}
	}
	for m := 2; m <= n; m <<= 1 {
		hm := m >> 1
		step := n / m
		for k := 0; k < n; k += m {
			for j := 0; j < hm; j++ {
				u := uint32(a[k+j])
				v := mq_mul(uint32(a[k+j+hm]), uint32(om[j*step]))
				a[k+j] = uint16(mq_add(u, v))
				a[k+j+hm] = uint16(mq_sub(u, v))
			}
		}
	}
}

// a <- a*b (NTT representation)
func mqpoly_mul_ntt(logn uint, a []uint16, b []uint16) {
	n := 1 << logn
	for i := 0; i < n; i++ {
		a[i] = uint16(mq_mul(uint32(a[i]), uint32(b[i])))
	}
}

// a <- a/b (NTT representation). If b is not invertible then false is
// returned and the contents of a are unspecified.
func mqpoly_div_ntt(logn uint, a []uint16, b []uint16) bool {
	n := 1 << logn
	r := uint32(0xFFFFFFFF)
	for i := 0; i < n; i++ {
		x := uint32(b[i])
		r &= -x >> 31
		a[i] = uint16(mq_mul(uint32(a[i]), mq_inv(x)))
	}
	return r != 0
}

// a <- a - b
func mqpoly_sub(logn uint, a []uint16, b []uint16) {
	n := 1 << logn
	for i := 0; i < n; i++ {
		a[i] = uint16(mq_sub(uint32(a[i]), uint32(b[i])))
	}
}

// Check whether small polynomial f is invertible modulo X^n+1 and q.
// tmp must have room for n elements.
func mqpoly_is_invertible(logn uint, f []int8, tmp []uint16) bool {
	n := 1 << logn
	mqpoly_small_to_ext(logn, f, tmp)
	mqpoly_ntt(logn, tmp)
	r := uint32(0xFFFFFFFF)
	for i := 0; i < n; i++ {
		r &= -uint32(tmp[i]) >> 31
	}
	return r != 0
}

// Squared norm of a polynomial, with coefficients taken in their
// centered representation.
func mqpoly_sqnorm(logn uint, a []uint16) uint64 {
	n := 1 << logn
	s := uint64(0)
	for i := 0; i < n; i++ {
		x := int64(mq_to_signed(a[i]))
		s += uint64(x * x)
	}
	return s
}

// Squared norm of a signed polynomial.
func signed_poly_sqnorm(logn uint, s []int16) uint64 {
	n := 1 << logn
	r := uint64(0)
	for i := 0; i < n; i++ {
		x := int64(s[i])
		r += uint64(x * x)
	}
	return r
}

// Maximum squared norm of (s1,s2), indexed by logn:
// floor((1.1*sigma)^2*2*n).
var l2bound = []uint64{
	0, // unused
	101498,
	208714,
	428865,
	892039,
	1852696,
	3842630,
	7959734,
	16468416,
	34034726,
	70265242,
}

func mqpoly_sqnorm_is_acceptable(logn uint, norm uint64) bool {
	return norm <= l2bound[logn]
}

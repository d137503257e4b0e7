package falcon

import (
	"math"
	"math/big"
	"math/bits"
)

// Solving the NTRU equation f*G - g*F = q over Z[X]/(X^n+1).
//
// The solver works recursively over the tower of fields: (f,g) is mapped
// to its field norm (f',g') at half degree, a solution (F',G') is found
// there, lifted back as F = F'(X^2)*g(-X) and G = G'(X^2)*f(-X), then
// reduced with Babai's round-off against (f,g). At degree 1 the equation
// is solved with an extended GCD. Intermediate values grow to several
// thousand bits at the bottom of the tower, hence big integers.

type bigpoly []*big.Int

var big_q = big.NewInt(q)

func bigpoly_from_small(f []int8) bigpoly {
	r := make(bigpoly, len(f))
	for i, x := range f {
		r[i] = big.NewInt(int64(x))
	}
	return r
}

// Maximum bit length of the absolute values of the coefficients.
func bigpoly_maxbits(a bigpoly) int {
	m := 0
	for _, x := range a {
		if b := x.BitLen(); b > m {
			m = b
		}
	}
	return m
}

// Product modulo X^n+1, with n = len(a) = len(b).
func bigpoly_mul(a bigpoly, b bigpoly) bigpoly {
	n := len(a)
	logn := bits.Len(uint(n)) - 1
	r := make(bigpoly, n)

	// Small operands: all partial sums fit in an int64.
	if bigpoly_maxbits(a)+bigpoly_maxbits(b)+logn+1 <= 62 {
		ai := make([]int64, n)
		bi := make([]int64, n)
		for i := 0; i < n; i++ {
			ai[i] = a[i].Int64()
			bi[i] = b[i].Int64()
		}
		acc := make([]int64, n)
		for i := 0; i < n; i++ {
			x := ai[i]
			if x == 0 {
				continue
			}
			for j := 0; j < n; j++ {
				if k := i + j; k < n {
					acc[k] += x * bi[j]
				} else {
					acc[k-n] -= x * bi[j]
				}
			}
		}
		for i := 0; i < n; i++ {
			r[i] = big.NewInt(acc[i])
		}
		return r
	}

	for i := range r {
		r[i] = new(big.Int)
	}
	t := new(big.Int)
	for i := 0; i < n; i++ {
		if a[i].Sign() == 0 {
			continue
		}
		for j := 0; j < n; j++ {
			t.Mul(a[i], b[j])
			if k := i + j; k < n {
				r[k].Add(r[k], t)
			} else {
				r[k-n].Sub(r[k-n], t)
			}
		}
	}
	return r
}

// Field norm of a (degree n) down to degree n/2: with
// a = ae(X^2) + X*ao(X^2), the norm is ae^2 - X*ao^2.
func field_norm(a bigpoly) bigpoly {
	hn := len(a) >> 1
	ae := make(bigpoly, hn)
	ao := make(bigpoly, hn)
	for i := 0; i < hn; i++ {
		ae[i] = a[2*i]
		ao[i] = a[2*i+1]
	}
	r := bigpoly_mul(ae, ae)
	ao2 := bigpoly_mul(ao, ao)
	for i := 0; i < hn-1; i++ {
		r[i+1].Sub(r[i+1], ao2[i])
	}
	r[0].Add(r[0], ao2[hn-1])
	return r
}

// a(X^2), at twice the degree.
func bigpoly_lift(a bigpoly) bigpoly {
	r := make(bigpoly, 2*len(a))
	for i := range a {
		r[2*i] = a[i]
		r[2*i+1] = new(big.Int)
	}
	return r
}

// a(-X)
func galois_conjugate(a bigpoly) bigpoly {
	r := make(bigpoly, len(a))
	for i, x := range a {
		if (i & 1) != 0 {
			r[i] = new(big.Int).Neg(x)
		} else {
			r[i] = x
		}
	}
	return r
}

// Bit length rounded up to a multiple of 8, at least 53.
func babai_size(a bigpoly, b bigpoly) int {
	m := bigpoly_maxbits(a)
	if mb := bigpoly_maxbits(b); mb > m {
		m = mb
	}
	m = (m + 7) &^ 7
	if m < 53 {
		m = 53
	}
	return m
}

// Top 53 bits of each coefficient (scaled down by 2^(size-53)), as
// floating-point values in d.
func bigpoly_top53(a bigpoly, size int, d []f64) {
	t := new(big.Int)
	for i, x := range a {
		t.Rsh(x, uint(size-53))
		d[i] = f64_of_i64(t.Int64())
	}
}

// Reduce (F,G) against (f,g): repeatedly subtract k*(f,g) with
// k = round((F*adj(f) + G*adj(g))/(f*adj(f) + g*adj(g))), computed over
// the top bits of all values, until (F,G) is no larger than (f,g) or k
// vanishes. False is returned if the process does not converge.
func babai_reduce(logn uint, f, g, F, G bigpoly) bool {
	n := 1 << logn
	size := babai_size(f, g)
	fa := make([]f64, n)
	ga := make([]f64, n)
	bigpoly_top53(f, size, fa)
	bigpoly_top53(g, size, ga)
	fpoly_FFT(logn, fa)
	fpoly_FFT(logn, ga)
	den := make([]f64, n)
	fpoly_invnorm2_fft(logn, den, fa, ga)

	Fa := make([]f64, n)
	Ga := make([]f64, n)
	k := make(bigpoly, n)
	for iter := 0; iter < 1000; iter++ {
		Size := babai_size(F, G)
		if Size < size {
			return true
		}
		bigpoly_top53(F, Size, Fa)
		bigpoly_top53(G, Size, Ga)
		fpoly_FFT(logn, Fa)
		fpoly_FFT(logn, Ga)
		fpoly_muladj_fft(logn, Fa, fa)
		fpoly_muladj_fft(logn, Ga, ga)
		fpoly_add(logn, Fa, Ga)
		fpoly_mul_autoadj_fft(logn, Fa, den)
		fpoly_iFFT(logn, Fa)

		zero := true
		for i := 0; i < n; i++ {
			x := math.Round(Fa[i])
			if math.IsNaN(x) || math.Abs(x) > 0x1p62 {
				return false
			}
			v := int64(x)
			if v != 0 {
				zero = false
			}
			k[i] = big.NewInt(v)
		}
		if zero {
			return true
		}
		fk := bigpoly_mul(f, k)
		gk := bigpoly_mul(g, k)
		sh := uint(Size - size)
		for i := 0; i < n; i++ {
			F[i].Sub(F[i], fk[i].Lsh(fk[i], sh))
			G[i].Sub(G[i], gk[i].Lsh(gk[i], sh))
		}
	}
	return false
}

func solve_ntru_rec(logn uint, f bigpoly, g bigpoly) (F bigpoly, G bigpoly, ok bool) {
	if logn == 0 {
		u := new(big.Int)
		v := new(big.Int)
		d := new(big.Int).GCD(u, v, f[0], g[0])
		if d.Cmp(big.NewInt(1)) != 0 {
			return nil, nil, false
		}
		// u*f + v*g = 1, hence f*(q*u) - g*(-q*v) = q.
		F = bigpoly{new(big.Int).Neg(v.Mul(v, big_q))}
		G = bigpoly{u.Mul(u, big_q)}
		return F, G, true
	}

	Fp, Gp, ok := solve_ntru_rec(logn-1, field_norm(f), field_norm(g))
	if !ok {
		return nil, nil, false
	}
	F = bigpoly_mul(bigpoly_lift(Fp), galois_conjugate(g))
	G = bigpoly_mul(bigpoly_lift(Gp), galois_conjugate(f))
	if !babai_reduce(logn, f, g, F, G) {
		return nil, nil, false
	}
	return F, G, true
}

// Solve the NTRU equation for the small polynomials f and g. On success,
// F and G are filled and true is returned. False is returned if there is
// no solution (the resultants of f and g are not coprime) or if the
// reduced solution has coefficients outside of [-127,+127].
func solve_NTRU(logn uint, f []int8, g []int8, F []int8, G []int8) bool {
	n := 1 << logn
	fb := bigpoly_from_small(f[:n])
	gb := bigpoly_from_small(g[:n])
	Fb, Gb, ok := solve_ntru_rec(logn, fb, gb)
	if !ok {
		return false
	}
	for i := 0; i < n; i++ {
		if !Fb[i].IsInt64() || !Gb[i].IsInt64() {
			return false
		}
		x := Fb[i].Int64()
		y := Gb[i].Int64()
		if x < -127 || x > 127 || y < -127 || y > 127 {
			return false
		}
		F[i] = int8(x)
		G[i] = int8(y)
	}

	// Check the equation exactly.
	r := bigpoly_mul(fb, bigpoly_from_small(G[:n]))
	t := bigpoly_mul(gb, bigpoly_from_small(F[:n]))
	for i := 0; i < n; i++ {
		r[i].Sub(r[i], t[i])
		var want int64
		if i == 0 {
			want = q
		}
		if !r[i].IsInt64() || r[i].Int64() != want {
			return false
		}
	}
	return true
}

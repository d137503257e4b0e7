package falcon

import (
	"math"
)

// Polynomials with real coefficients modulo X^n+1.
//
// In FFT representation, a polynomial f is evaluated at n/2 roots of
// X^n+1, one per conjugate pair; the real parts are stored in f[0..n/2]
// and the imaginary parts in f[n/2..n]. Roots are ordered so that, for
// j < n/4, slots j and j+n/4 hold the two square roots w and -w of the
// j-th root used at degree n/2. With f = f0(X^2) + X*f1(X^2), this makes
// splitting and merging a per-slot butterfly:
//
//	f(w)  = f0(w^2) + w*f1(w^2)
//	f(-w) = f0(w^2) - w*f1(w^2)
//
// At degree 2, the only stored root is i, and the FFT of f0 + f1*X is
// (f0, f1) itself.

// gm_re[L][j] + i*gm_im[L][j] is the j-th stored root of X^(2^L)+1.
var gm_re, gm_im [LogNMax + 1][]f64

func init() {
	// Angles are kept as integer multiples of pi/2^L, in ]-2^L, 2^L].
	ang := []int{1}
	for L := uint(1); L <= LogNMax; L++ {
		if L >= 2 {
			hq := 1 << (L - 2)
			cur := make([]int, 1<<(L-1))
			for j := 0; j < hq; j++ {
				a := ang[j]
				cur[j] = a
				if a > 0 {
					cur[j+hq] = a - (1 << L)
				} else {
					cur[j+hq] = a + (1 << L)
				}
			}
			ang = cur
		}
		re := make([]f64, len(ang))
		im := make([]f64, len(ang))
		for j, a := range ang {
			th := float64(a) * math.Pi / float64(uint64(1)<<L)
			re[j] = math.Cos(th)
			im[j] = math.Sin(th)
		}
		gm_re[L] = re
		gm_im[L] = im
	}
}

// Set d to the small polynomial f (coefficient representation).
func fpoly_set_small(logn uint, d []f64, f []int8) {
	n := 1 << logn
	for i := 0; i < n; i++ {
		d[i] = f64_of_i32(int32(f[i]))
	}
}

// Convert f (in place) from coefficients to FFT representation.
func fpoly_FFT(logn uint, f []f64) {
	if logn <= 1 {
		return
	}
	tmp := make([]f64, 1<<logn)
	fft_rec(logn, f, tmp)
}

// Convert f (in place) from FFT to coefficient representation.
func fpoly_iFFT(logn uint, f []f64) {
	if logn <= 1 {
		return
	}
	tmp := make([]f64, 1<<logn)
	ifft_rec(logn, f, tmp)
}

// tmp must have room for n values; f is free space while the halves,
// copied into tmp, are transformed.
func fft_rec(logn uint, f []f64, tmp []f64) {
	if logn <= 1 {
		return
	}
	n := 1 << logn
	hn := n >> 1
	f0 := tmp[:hn]
	f1 := tmp[hn:n]
	for i := 0; i < hn; i++ {
		f0[i] = f[2*i]
		f1[i] = f[2*i+1]
	}
	fft_rec(logn-1, f0, f[:hn])
	fft_rec(logn-1, f1, f[hn:n])
	fpoly_merge_fft(logn, f, f0, f1)
}

func ifft_rec(logn uint, f []f64, tmp []f64) {
	if logn <= 1 {
		return
	}
	n := 1 << logn
	hn := n >> 1
	f0 := tmp[:hn]
	f1 := tmp[hn:n]
	fpoly_split_fft(logn, f0, f1, f)
	ifft_rec(logn-1, f0, f[:hn])
	ifft_rec(logn-1, f1, f[hn:n])
	for i := 0; i < hn; i++ {
		f[2*i] = f0[i]
		f[2*i+1] = f1[i]
	}
}

// Split f (FFT) into f0 and f1 (FFT, half degree) such that
// f = f0(X^2) + X*f1(X^2). f0 and f1 must not overlap f.
func fpoly_split_fft(logn uint, f0 []f64, f1 []f64, f []f64) {
	if logn == 1 {
		f0[0] = f[0]
		f1[0] = f[1]
		return
	}
	hn := 1 << (logn - 1)
	qn := hn >> 1
	gr := gm_re[logn]
	gi := gm_im[logn]
	for j := 0; j < qn; j++ {
		x_re := f[j]
		x_im := f[j+hn]
		y_re := f[j+qn]
		y_im := f[j+qn+hn]
		f0[j] = f64_half(f64_add(x_re, y_re))
		f0[j+qn] = f64_half(f64_add(x_im, y_im))
		t_re, t_im := flc_mul(f64_sub(x_re, y_re), f64_sub(x_im, y_im),
			gr[j], f64_neg(gi[j]))
		f1[j] = f64_half(t_re)
		f1[j+qn] = f64_half(t_im)
	}
}

// Same as fpoly_split_fft(), for a self-adjoint f; f0 is then
// self-adjoint as well.
func fpoly_split_selfadj_fft(logn uint, f0 []f64, f1 []f64, f []f64) {
	fpoly_split_fft(logn, f0, f1, f)
	hn := 1 << (logn - 1)
	qn := hn >> 1
	for j := qn; j < hn; j++ {
		f0[j] = f64_ZERO
	}
}

// Merge f0 and f1 (FFT, half degree) into f = f0(X^2) + X*f1(X^2).
func fpoly_merge_fft(logn uint, f []f64, f0 []f64, f1 []f64) {
	if logn == 1 {
		f[0] = f0[0]
		f[1] = f1[0]
		return
	}
	hn := 1 << (logn - 1)
	qn := hn >> 1
	gr := gm_re[logn]
	gi := gm_im[logn]
	for j := 0; j < qn; j++ {
		a_re := f0[j]
		a_im := f0[j+qn]
		b_re, b_im := flc_mul(f1[j], f1[j+qn], gr[j], gi[j])
		f[j] = f64_add(a_re, b_re)
		f[j+hn] = f64_add(a_im, b_im)
		f[j+qn] = f64_sub(a_re, b_re)
		f[j+qn+hn] = f64_sub(a_im, b_im)
	}
}

// a <- a + b
func fpoly_add(logn uint, a []f64, b []f64) {
	n := 1 << logn
	for i := 0; i < n; i++ {
		a[i] = f64_add(a[i], b[i])
	}
}

// a <- a - b
func fpoly_sub(logn uint, a []f64, b []f64) {
	n := 1 << logn
	for i := 0; i < n; i++ {
		a[i] = f64_sub(a[i], b[i])
	}
}

// a <- -a
func fpoly_neg(logn uint, a []f64) {
	n := 1 << logn
	for i := 0; i < n; i++ {
		a[i] = f64_neg(a[i])
	}
}

// a <- adj(a) (FFT)
func fpoly_adj_fft(logn uint, a []f64) {
	n := 1 << logn
	for i := n >> 1; i < n; i++ {
		a[i] = f64_neg(a[i])
	}
}

// a <- a*x for a real constant x (any representation).
func fpoly_mulconst(logn uint, a []f64, x f64) {
	n := 1 << logn
	for i := 0; i < n; i++ {
		a[i] = f64_mul(a[i], x)
	}
}

// a <- a*b (FFT)
func fpoly_mul_fft(logn uint, a []f64, b []f64) {
	hn := 1 << (logn - 1)
	for i := 0; i < hn; i++ {
		a[i], a[i+hn] = flc_mul(a[i], a[i+hn], b[i], b[i+hn])
	}
}

// a <- a*adj(b) (FFT)
func fpoly_muladj_fft(logn uint, a []f64, b []f64) {
	hn := 1 << (logn - 1)
	for i := 0; i < hn; i++ {
		a[i], a[i+hn] = flc_mul(a[i], a[i+hn], b[i], f64_neg(b[i+hn]))
	}
}

// a <- a*b, with b self-adjoint (FFT; only real parts of b are used).
func fpoly_mul_autoadj_fft(logn uint, a []f64, b []f64) {
	hn := 1 << (logn - 1)
	for i := 0; i < hn; i++ {
		a[i] = f64_mul(a[i], b[i])
		a[i+hn] = f64_mul(a[i+hn], b[i])
	}
}

// d <- 1/(a*adj(a) + b*adj(b)) (FFT; the result is self-adjoint).
func fpoly_invnorm2_fft(logn uint, d []f64, a []f64, b []f64) {
	hn := 1 << (logn - 1)
	for i := 0; i < hn; i++ {
		nf := f64_add(
			f64_add(f64_sqr(a[i]), f64_sqr(a[i+hn])),
			f64_add(f64_sqr(b[i]), f64_sqr(b[i+hn])))
		d[i] = f64_inv(nf)
		d[i+hn] = f64_ZERO
	}
}

// Compute the Gram matrix of the basis [[b00, b01], [b10, b11]]:
//
//	g00 = b00*adj(b00) + b01*adj(b01)   (into b00)
//	g01 = b00*adj(b10) + b01*adj(b11)   (into b01)
//	g11 = b10*adj(b10) + b11*adj(b11)   (into b10)
//
// b11 is unmodified. All values are in FFT representation.
func fpoly_gram_fft(logn uint, b00 []f64, b01 []f64, b10 []f64, b11 []f64) {
	hn := 1 << (logn - 1)
	for i := 0; i < hn; i++ {
		b00_re, b00_im := b00[i], b00[i+hn]
		b01_re, b01_im := b01[i], b01[i+hn]
		b10_re, b10_im := b10[i], b10[i+hn]
		b11_re, b11_im := b11[i], b11[i+hn]

		g00 := f64_add(
			f64_add(f64_sqr(b00_re), f64_sqr(b00_im)),
			f64_add(f64_sqr(b01_re), f64_sqr(b01_im)))
		u_re, u_im := flc_mul(b00_re, b00_im, b10_re, f64_neg(b10_im))
		v_re, v_im := flc_mul(b01_re, b01_im, b11_re, f64_neg(b11_im))
		g11 := f64_add(
			f64_add(f64_sqr(b10_re), f64_sqr(b10_im)),
			f64_add(f64_sqr(b11_re), f64_sqr(b11_im)))

		b00[i] = g00
		b00[i+hn] = f64_ZERO
		b01[i] = f64_add(u_re, v_re)
		b01[i+hn] = f64_add(u_im, v_im)
		b10[i] = g11
		b10[i+hn] = f64_ZERO
	}
}

// LDL decomposition of the self-adjoint Gram matrix
// [[g00, g01], [adj(g01), g11]]: g00 is left unchanged (it is d00),
// g01 is replaced with l10 = adj(g01)/g00, and g11 with
// d11 = g11 - g01*adj(g01)/g00. All values are in FFT representation.
func fpoly_LDL_fft(logn uint, g00 []f64, g01 []f64, g11 []f64) {
	hn := 1 << (logn - 1)
	for i := 0; i < hn; i++ {
		inv := f64_inv(g00[i])
		g01_re := g01[i]
		g01_im := g01[i+hn]
		mu_re := f64_mul(g01_re, inv)
		mu_im := f64_mul(g01_im, inv)
		zo := f64_add(f64_mul(mu_re, g01_re), f64_mul(mu_im, g01_im))
		g11[i] = f64_sub(g11[i], zo)
		g01[i] = mu_re
		g01[i+hn] = f64_neg(mu_im)
	}
}

// Given the target hm (coefficients in [0,q-1]) and the second column
// (b01, b11) of the basis [[g, -f], [G, -F]] in FFT representation, set
// (t0, t1) = (hm, 0)*B^(-1), i.e. t0 = hm*b11/q and t1 = -hm*b01/q
// (FFT representation).
func fpoly_apply_basis(logn uint,
	t0 []f64, t1 []f64, b01 []f64, b11 []f64, hm []uint16) {

	n := 1 << logn
	for i := 0; i < n; i++ {
		t0[i] = f64_of_i32(int32(hm[i]))
	}
	fpoly_FFT(logn, t0)
	copy(t1[:n], t0[:n])
	fpoly_mul_fft(logn, t1, b01)
	fpoly_mulconst(logn, t1, f64_neg(inv_q))
	fpoly_mul_fft(logn, t0, b11)
	fpoly_mulconst(logn, t0, inv_q)
}

var inv_q = f64_inv(q)

// Squared norm of a polynomial in coefficient representation.
func fpoly_sqnorm(logn uint, a []f64) f64 {
	n := 1 << logn
	s := f64_ZERO
	for i := 0; i < n; i++ {
		s = f64_add(s, f64_sqr(a[i]))
	}
	return s
}

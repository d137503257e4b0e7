package falcon

import (
	"math/bits"
)

// 1/(2*(1.8205^2))
var inv_2sqrsigma0 = f64mk(5435486223186882, -55)

// Per-degree constants, indexed by logn (entry 0 is unused). With
// n = 2^logn and q = 12289:
//
//	gs_norm   = (117/100)*sqrt(q)
//	eps       = 1/sqrt(max(2, n/4)*2^64)
//	sigma_min = sqrt(log(4*n*(1 + 1/eps))/pi)/sqrt(2*pi)
//	sigma     = sigma_min*gs_norm
var sampler_params = [LogNMax + 1]struct {
	inv_sigma f64
	sigma_min f64
}{
	{f64_ZERO, f64_ZERO},
	{f64mk(7961475618707097, -60), f64mk(5028307297130123, -52)}, // 0.00690548 1.11650851
	{f64mk(7851656902127320, -60), f64mk(5098636688852518, -52)}, // 0.00681023 1.13212477
	{f64mk(7746260754658859, -60), f64mk(5168009084304506, -52)}, // 0.00671881 1.14752854
	{f64mk(7595833604889141, -60), f64mk(5270355833453349, -52)}, // 0.00658834 1.17025408
	{f64mk(7453842886538220, -60), f64mk(5370752584786614, -52)}, // 0.00646518 1.19254664
	{f64mk(7319528409832599, -60), f64mk(5469306724145091, -52)}, // 0.00634868 1.21443005
	{f64mk(7192222552237877, -60), f64mk(5566116128735780, -52)}, // 0.00623826 1.23592606
	{f64mk(7071336252758509, -60), f64mk(5661270305715104, -52)}, // 0.00613341 1.25705453
	{f64mk(6956347512113097, -60), f64mk(5754851361258101, -52)}, // 0.00603367 1.27783370
	{f64mk(6846791885593314, -60), f64mk(5846934829975396, -52)}, // 0.00593865 1.29828033
}

// Reverse cumulative table of the base half-Gaussian (sigma0 = 1.8205):
// 72-bit thresholds, most significant 24-bit limb first.
var gaussian0_rcdt = [...][3]uint32{
	{10745844, 3068844, 3741698},
	{5559083, 1580863, 8248194},
	{2260429, 13669192, 2736639},
	{708981, 4421575, 10046180},
	{169348, 7122675, 4136815},
	{30538, 13063405, 7650655},
	{4132, 14505003, 7826148},
	{417, 16768101, 11363290},
	{31, 8444042, 8086568},
	{1, 12844466, 265321},
	{0, 1232676, 13644283},
	{0, 38047, 9111839},
	{0, 870, 6138264},
	{0, 14, 12545723},
	{0, 0, 3104126},
	{0, 0, 28824},
	{0, 0, 198},
	{0, 0, 1},
}

// log(2)
var log2 = f64mk(6243314768165359, -53)

// 1/log(2)
var inv_log2 = f64mk(6497320848556798, -52)

// Gaussian sampler over the integers, keyed by a SHAKE256x4 stream. The
// degree selects the sigma_min and 1/sigma constants.
type sampler struct {
	pc   *shake256x4
	logn uint
}

func newSampler(logn uint, seed []byte) *sampler {
	return &sampler{pc: newSHAKE256x4(seed), logn: logn}
}

// Half-Gaussian sample: the number of table thresholds that exceed a
// uniform 72-bit value. Every entry is compared, with borrows propagated
// across the three limbs.
func (s *sampler) gaussian0() int32 {
	lo := s.pc.next_u64()
	hi := s.pc.next_u8()
	v := [3]uint32{
		uint32(lo>>48) | (uint32(hi) << 16),
		uint32(lo>>24) & 0xFFFFFF,
		uint32(lo) & 0xFFFFFF,
	}

	var z int32
	for _, th := range gaussian0_rcdt {
		borrow := (v[2] - th[2]) >> 31
		borrow = (v[1] - th[1] - borrow) >> 31
		borrow = (v[0] - th[0] - borrow) >> 31
		z += int32(borrow)
	}
	return z
}

// Polynomial approximation of exp(-x), from FACCT
// (https://eprint.iacr.org/2018/1234, coefficients from
// https://github.com/raykzhao/gaussian).
var expm_coeffs = []uint64{
	0x00000004741183A3,
	0x00000036548CFC06,
	0x0000024FDCBF140A,
	0x0000171D939DE045,
	0x0000D00CF58F6F84,
	0x000680681CF796E3,
	0x002D82D8305B0FEA,
	0x011111110E066FD0,
	0x0555555555070F00,
	0x155555555581FF00,
	0x400000000002B400,
	0x7FFFFFFFFFFF4800,
	0x8000000000000000,
}

// ccs*exp(-x)*2^63, rounded, for 0 <= x < log(2) and 0 <= ccs <= 1.
func expm_p63(x f64, ccs f64) uint64 {
	y := expm_coeffs[0]
	z := f64_mtwop63(x) << 1
	w := f64_mtwop63(ccs) << 1

	// bits.Mul64 is assumed to be constant-time (a single MUL or UMULH on
	// the usual 64-bit targets).
	for i := 1; i < len(expm_coeffs); i++ {
		c, _ := bits.Mul64(y, z)
		y = expm_coeffs[i] - c
	}
	c, _ := bits.Mul64(y, w)
	return c
}

// Return true with probability ccs*exp(-x), for x >= 0.
func (s *sampler) ber_exp(x f64, ccs f64) bool {
	// x = t*log(2) + r with 0 <= r < log(2); t is saturated at 63
	// (larger values happen with negligible probability).
	ti := f64_trunc(f64_mul(x, inv_log2))
	r := f64_sub(x, f64_mul(f64_of_i32(ti), log2))
	t := uint32(ti)
	t |= (63 - t) >> 26

	// ccs*exp(-x) = ccs*exp(-r)/2^t, scaled to 64 bits; the shift and
	// decrement keep the value below 2^64.
	z := ursh((expm_p63(r, ccs)<<1)-1, t)

	// Compare with a uniform 64-bit value, one byte at a time.
	for i := 56; i >= 0; i -= 8 {
		w := s.pc.next_u8()
		bz := uint8(z >> i)
		if w != bz {
			return w < bz
		}
	}
	return false
}

// Sample an integer from the discrete Gaussian of centre mu and standard
// deviation 1/isigma.
func (s *sampler) next(mu f64, isigma f64) int32 {
	t := f64_floor(mu)
	r := f64_sub(mu, f64_of_i32(t))
	dss := f64_half(f64_sqr(isigma))
	ccs := f64_mul(isigma, sampler_params[s.logn].sigma_min)

	for {
		// Bimodal candidate: z0 from the half-Gaussian, then z0+1 or
		// -z0 depending on a random bit, accepted by rejection
		// sampling toward centre r. The extra ccs factor makes the
		// rejection rate independent of sigma.
		z0 := s.gaussian0()
		b := int32(s.pc.next_u8()) & 1
		z := b + ((b<<1)-1)*z0

		x := f64_mul(f64_sqr(f64_sub(f64_of_i32(z), r)), dss)
		x = f64_sub(x, f64_mul(f64_of_i32(z0*z0), inv_2sqrsigma0))
		if s.ber_exp(x, ccs) {
			return t + z
		}
	}
}

// Fast Fourier sampling of (t0, t1) (FFT representation) against the
// Gram matrix [[g00, g01], [adj(g01), g11]]. The result is written back
// into t0 and t1; g00, g01 and g11 are consumed; tmp has room for 4*n
// elements.
func (s *sampler) ffsamp_fft(
	t0 []f64, t1 []f64, g00 []f64, g01 []f64, g11 []f64, tmp []f64) {

	s.ffsamp_fft_inner(s.logn, t0, t1, g00, g01, g11, tmp)
}

func (s *sampler) ffsamp_fft_inner(logn uint,
	t0 []f64, t1 []f64, g00 []f64, g01 []f64, g11 []f64, tmp []f64) {

	if logn == 1 {
		s.ffsamp_deg2(t0, t1, g00, g01, g11)
		return
	}

	n := 1 << logn
	hn := n >> 1

	// LDL: g00 <- d00, g01 <- l10, g11 <- d11.
	fpoly_LDL_fft(logn, g00, g01, g11)

	// d00 and d11 are split in place into the Gram matrices of the two
	// sub-trees. Their (equal) diagonal halves are also copied into g01,
	// once l10 is saved in tmp[:n].
	fpoly_split_selfadj_inplace(logn, g00, tmp)
	fpoly_split_selfadj_inplace(logn, g11, tmp)
	l10 := tmp[:n]
	copy(l10, g01[:n])
	copy(g01[:hn], g00[:hn])
	copy(g01[hn:n], g11[:hn])

	// Right sub-tree: z1 is sampled from t1 into tmp[2*n:3*n].
	z1 := tmp[2*n : 3*n]
	s.ffsamp_half(logn, z1, t1, g11[:hn], g11[hn:n], g01[hn:n], tmp[n:])

	// t0 <- t0 + (t1 - z1)*l10, t1 <- z1.
	d := tmp[n : 2*n]
	copy(d, t1[:n])
	fpoly_sub(logn, d, z1)
	copy(t1[:n], z1)
	fpoly_mul_fft(logn, l10, d)
	fpoly_add(logn, t0, l10)

	// Left sub-tree, on the updated t0.
	s.ffsamp_half(logn, t0, t0, g00[:hn], g00[hn:n], g01[:hn], tmp)
}

// Split t, sample it on the sub-tree with Gram matrix
// [[a00, a01], [adj(a01), a11]] and merge the result into out. The
// halves use tmp[:n]; the recursive call works in tmp[n:].
func (s *sampler) ffsamp_half(logn uint,
	out []f64, t []f64, a00 []f64, a01 []f64, a11 []f64, tmp []f64) {

	n := 1 << logn
	h0 := tmp[:n>>1]
	h1 := tmp[n>>1 : n]
	fpoly_split_fft(logn, h0, h1, t)
	s.ffsamp_fft_inner(logn-1, h0, h1, a00, a01, a11, tmp[n:])
	fpoly_merge_fft(logn, out, h0, h1)
}

// Split the self-adjoint f in place: f[:n/2] and f[n/2:n] receive its
// two halves. tmp has room for n elements.
func fpoly_split_selfadj_inplace(logn uint, f []f64, tmp []f64) {
	n := 1 << logn
	fpoly_split_selfadj_fft(logn, tmp[:n>>1], tmp[n>>1:n], f)
	copy(f[:n], tmp[:n])
}

// Degree 2 leaves. With a single complex slot, the LDL decomposition of
// the Gram matrix is d00 = g00, l10 = conj(mu) and d11 = g11 - <mu, g01>
// where mu = g01/g00.
func (s *sampler) ffsamp_deg2(t0 []f64, t1 []f64, g00 []f64, g01 []f64, g11 []f64) {
	isig := sampler_params[s.logn].inv_sigma
	ig00 := f64_inv(g00[0])
	mu_re := f64_mul(g01[0], ig00)
	mu_im := f64_mul(g01[1], ig00)
	d11 := f64_sub(g11[0], f64_add(f64_mul(mu_re, g01[0]), f64_mul(mu_im, g01[1])))

	// z1 from t1, then t0 moves by (t1 - z1)*l10.
	sd := f64_mul(f64_sqrt(d11), isig)
	z1_re := f64_of_i32(s.next(t1[0], sd))
	z1_im := f64_of_i32(s.next(t1[1], sd))
	e_re, e_im := flc_mul(f64_sub(t1[0], z1_re), f64_sub(t1[1], z1_im), mu_re, f64_neg(mu_im))
	c_re := f64_add(t0[0], e_re)
	c_im := f64_add(t0[1], e_im)
	t1[0], t1[1] = z1_re, z1_im

	sd = f64_mul(f64_sqrt(g00[0]), isig)
	t0[0] = f64_of_i32(s.next(c_re, sd))
	t0[1] = f64_of_i32(s.next(c_im, sd))
}

package falcon

import (
	"math"
)

// Floating-point helpers for the signer. All values are IEEE-754 binary64
// held in native float64; each helper forces rounding to 64 bits with an
// explicit conversion so that fused operations do not change results.

type f64 = float64

const f64_ZERO = 0.0

// Make a f64 value equal to i*2^e. This is meant for tables of constants.
func f64mk(i int64, e int32) f64 {
	return math.Ldexp(float64(i), int(e))
}

func f64_to_bits(x f64) uint64 {
	return math.Float64bits(x)
}

func f64_of_i32(i int32) f64 {
	return float64(i)
}

func f64_of_i64(i int64) f64 {
	return float64(i)
}

// Round a value toward zero. Source value must be less than 2^31 in
// absolute value.
func f64_trunc(x f64) int32 {
	return int32(x)
}

// Round x to the nearest integer (ties to even). Input must be less
// than 2^31 in absolute value.
func f64_rint(x f64) int32 {
	// For 0 <= x < 2^52, x + 2^52 is rounded to an integer by the FPU
	// with the right rules; x - 2^52 does the same for negative x. Both
	// are computed and the sign of x selects one of them.
	rp := int32(int64(float64(x+4503599627370496.0)) - 4503599627370496)
	rn := int32(int64(float64(x-4503599627370496.0)) + 4503599627370496)
	sx := int32(int64(f64_to_bits(x)) >> 63)
	return rp ^ (sx & (rp ^ rn))
}

// Round x toward -infinity. Input must be less than 2^31 in absolute
// value.
func f64_floor(x f64) int32 {
	// Truncate, then subtract 1 if the result is greater than the source;
	// bit patterns of non-negative values are ordered like the values.
	r := int32(x)
	y := float64(r)
	xv := f64_to_bits(x)
	yv := f64_to_bits(y)
	return r - int32((((yv-xv)&xv&yv)|(xv^yv))>>63)
}

// floor(x*2^63) for x in [0,1[.
func f64_mtwop63(x f64) uint64 {
	return uint64(int64(f64_mul(x, 9223372036854775808.0)))
}

func f64_add(x f64, y f64) f64 {
	return float64(x + y)
}

func f64_sub(x f64, y f64) f64 {
	return float64(x - y)
}

func f64_neg(x f64) f64 {
	return float64(-x)
}

func f64_half(x f64) f64 {
	return float64(x * 0.5)
}

func f64_mul(x f64, y f64) f64 {
	return float64(x * y)
}

func f64_sqr(x f64) f64 {
	return float64(x * x)
}

func f64_inv(x f64) f64 {
	return float64(1.0 / x)
}

func f64_sqrt(x f64) f64 {
	return float64(math.Sqrt(x))
}

// Shift with a possibly secret count; plain shifts are constant-time on
// the 64-bit platforms this code targets.
func ursh(x uint64, n uint32) uint64 {
	return x >> n
}

// Complex multiplication: (a_re + i*a_im)*(b_re + i*b_im).
func flc_mul(a_re, a_im, b_re, b_im f64) (f64, f64) {
	d_re := f64_sub(f64_mul(a_re, b_re), f64_mul(a_im, b_im))
	d_im := f64_add(f64_mul(a_re, b_im), f64_mul(a_im, b_re))
	return d_re, d_im
}

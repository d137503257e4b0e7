package falcon

// Encode a small polynomial with a fixed number of bits (at most 8) per
// coefficient; values are truncated. The parameters MUST be such that an
// integral number of bytes is produced. The written size is returned.
func trim_i8_encode(logn uint, f []int8, nbits int, dst []byte) int {
	n := 1 << logn
	acc := uint32(0)
	acc_len := 0
	mask := (uint32(1) << nbits) - 1
	j := 0
	for i := 0; i < n; i++ {
		acc = (acc << nbits) | (uint32(f[i]) & mask)
		acc_len += nbits
		for acc_len >= 8 {
			acc_len -= 8
			dst[j] = uint8(acc >> acc_len)
			j++
		}
	}
	return j
}

// Decode a small polynomial with a fixed number of bits (at most 8) per
// coefficient. The number of read bytes is returned. ErrFormat is
// reported if the source is truncated, if a coefficient decodes to
// -2^(nbits-1), or if unused bits of the last byte are not zero.
func trim_i8_decode(logn uint, src []byte, f []int8, nbits int) (int, error) {
	needed := ((nbits << logn) + 7) >> 3
	if len(src) < needed {
		return 0, ErrFormat
	}
	n := 1 << logn
	j := 0
	acc := uint32(0)
	acc_len := 0
	mask1 := (uint32(1) << nbits) - 1
	mask2 := uint32(1) << (nbits - 1)
	for i := 0; i < needed; i++ {
		acc = (acc << 8) | uint32(src[i])
		acc_len += 8
		for acc_len >= nbits && j < n {
			acc_len -= nbits
			w := (acc >> acc_len) & mask1
			w |= -(w & mask2)
			if w == -mask2 {
				return 0, ErrFormat
			}
			f[j] = int8(w)
			j++
		}
	}
	if (acc & ((uint32(1) << acc_len) - 1)) != 0 {
		return 0, ErrFormat
	}
	return needed, nil
}

// Fixed-width encoding of a signed polynomial, nbits (at most 16) per
// coefficient. Source values MUST fit. Unused bits of the last byte are
// set to zero. The written size is returned.
func trim_i16_encode(logn uint, s []int16, nbits int, dst []byte) int {
	n := 1 << logn
	acc := uint32(0)
	acc_len := 0
	mask := (uint32(1) << nbits) - 1
	j := 0
	for i := 0; i < n; i++ {
		acc = (acc << nbits) | (uint32(s[i]) & mask)
		acc_len += nbits
		for acc_len >= 8 {
			acc_len -= 8
			dst[j] = uint8(acc >> acc_len)
			j++
		}
	}
	if acc_len > 0 {
		dst[j] = uint8(acc << (8 - acc_len))
		j++
	}
	return j
}

// Decode a fixed-width signed polynomial (see trim_i16_encode()). Same
// error rules as trim_i8_decode().
func trim_i16_decode(logn uint, src []byte, s []int16, nbits int) (int, error) {
	needed := ((nbits << logn) + 7) >> 3
	if len(src) < needed {
		return 0, ErrFormat
	}
	n := 1 << logn
	j := 0
	acc := uint32(0)
	acc_len := 0
	mask1 := (uint32(1) << nbits) - 1
	mask2 := uint32(1) << (nbits - 1)
	for i := 0; i < needed; i++ {
		acc = (acc << 8) | uint32(src[i])
		acc_len += 8
		for acc_len >= nbits && j < n {
			acc_len -= nbits
			w := (acc >> acc_len) & mask1
			w |= -(w & mask2)
			if w == -mask2 {
				return 0, ErrFormat
			}
			s[j] = int16(int32(w))
			j++
		}
	}
	if (acc & ((uint32(1) << acc_len) - 1)) != 0 {
		return 0, ErrFormat
	}
	return needed, nil
}

// Encode polynomial h (values in [0,q-1]) with 14 bits per coefficient.
// The degree must be at least 4. The written size is returned.
func modq_encode(logn uint, h []uint16, dst []byte) int {
	n := 1 << logn
	j := 0
	for i := 0; i < n; i += 4 {
		x := (uint64(h[i+0]) << 42) | (uint64(h[i+1]) << 28) |
			(uint64(h[i+2]) << 14) | uint64(h[i+3])
		for k := 48; k >= 0; k -= 8 {
			dst[j] = uint8(x >> k)
			j++
		}
	}
	return j
}

// Decode polynomial h with 14 bits per coefficient. ErrFormat is
// reported on truncated input or on a value not in [0,q-1]. The number
// of read bytes is returned.
func modq_decode(logn uint, src []byte, h []uint16) (int, error) {
	needed := 7 << (logn - 2)
	if len(src) < needed {
		return 0, ErrFormat
	}
	n := 1 << logn
	i := 0
	for j := 0; j < n; j += 4 {
		x := uint64(0)
		for k := 0; k < 7; k++ {
			x = (x << 8) | uint64(src[i+k])
		}
		i += 7
		for k := 0; k < 4; k++ {
			v := uint32(x>>(42-14*k)) & 0x3FFF
			if v >= q {
				return 0, ErrFormat
			}
			h[j+k] = uint16(v)
		}
	}
	return needed, nil
}

// Compressed (Golomb-Rice) encoding of a signed polynomial. Each value x
// is written as a sign bit, the low 7 bits of abs(x), then
// floor(abs(x)/128) zeros and a one. Values must be in [-2047,+2047],
// so a coefficient never uses more than 24 bits.
//
// The whole destination is written (unused trailing bytes are zero) and
// true is returned; false is returned if a value is out of range or the
// encoding does not fit.
func comp_encode(logn uint, s []int16, dst []byte) bool {
	n := 1 << logn
	acc := uint32(0)
	acc_len := 0
	j := 0
	for i := 0; i < n; i++ {
		x := int32(s[i])
		if x < -2047 || x > +2047 {
			return false
		}
		sw := uint32(x >> 16)
		w := (uint32(x) ^ sw) - sw
		acc <<= 8
		acc |= sw & 0x80
		acc |= w & 0x7F
		acc_len += 8
		w = (w >> 7) + 1
		acc = (acc << w) | 1
		acc_len += int(w)
		for acc_len >= 8 {
			acc_len -= 8
			if j >= len(dst) {
				return false
			}
			dst[j] = uint8(acc >> acc_len)
			j++
		}
	}
	if acc_len > 0 {
		if j >= len(dst) {
			return false
		}
		dst[j] = uint8(acc << (8 - acc_len))
		j++
	}
	for j < len(dst) {
		dst[j] = 0
		j++
	}
	return true
}

// Compressed size of s, in bytes, or -1 if a value is out of range.
func comp_size(logn uint, s []int16) int {
	n := 1 << logn
	bits := 0
	for i := 0; i < n; i++ {
		x := int32(s[i])
		if x < -2047 || x > +2047 {
			return -1
		}
		if x < 0 {
			x = -x
		}
		bits += 9 + int(x>>7)
	}
	return (bits + 7) >> 3
}

// Decode a compressed signed polynomial (see comp_encode()) and return
// the number of bytes it uses. ErrFormat is reported on truncated input,
// on an out-of-range or "minus zero" value, and on non-zero unused bits
// in the last byte. Bytes after the encoding are not read.
func comp_decode(logn uint, src []byte, f []int16) (int, error) {
	n := 1 << logn
	i := 0
	acc := uint32(0)
	acc_len := 0
	for j := 0; j < n; j++ {
		if i >= len(src) {
			return 0, ErrFormat
		}
		acc = (acc << 8) | uint32(src[i])
		i++
		s := (acc >> (acc_len + 7)) & 1
		m := (acc >> acc_len) & 0x7F

		for {
			if acc_len == 0 {
				if i >= len(src) {
					return 0, ErrFormat
				}
				acc = (acc << 8) | uint32(src[i])
				i++
				acc_len = 8
			}
			acc_len--
			if ((acc >> acc_len) & 1) != 0 {
				break
			}
			m += 0x80
			if m > 2047 {
				return 0, ErrFormat
			}
		}

		if (s & ((m - 1) >> 31)) != 0 {
			return 0, ErrFormat
		}
		f[j] = int16((m ^ -s) + s)
	}

	if acc_len > 0 {
		if (acc & ((uint32(1) << acc_len) - 1)) != 0 {
			return 0, ErrFormat
		}
	}
	return i, nil
}

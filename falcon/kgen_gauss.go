package falcon

// (f,g) sampling (Gaussian distribution).

// q = 12289, n = 256 -> kmax = 24
var gauss_256 = []uint16{
	1, 3, 6, 11, 22, 40, 73, 129,
	222, 371, 602, 950, 1460, 2183, 3179, 4509,
	6231, 8395, 11032, 14150, 17726, 21703, 25995, 30487,
	35048, 39540, 43832, 47809, 51385, 54503, 57140, 59304,
	61026, 62356, 63352, 64075, 64585, 64933, 65164, 65313,
	65406, 65462, 65495, 65513, 65524, 65529, 65532, 65534,
}

// q = 12289, n = 512 -> kmax = 17
var gauss_512 = []uint16{
	1, 4, 11, 28, 65, 146, 308, 615,
	1164, 2083, 3535, 5692, 8706, 12669, 17574, 23285,
	29542, 35993, 42250, 47961, 52866, 56829, 59843, 62000,
	63452, 64371, 64920, 65227, 65389, 65470, 65507, 65524,
	65531, 65534,
}

// q = 12289, n = 1024 -> kmax = 12
var gauss_1024 = []uint16{
	2, 8, 28, 94, 280, 742, 1761, 3753,
	7197, 12472, 19623, 28206, 37329, 45912, 53063, 58338,
	61782, 63774, 64793, 65255, 65441, 65507, 65527, 65533,
}

// Get the CDF table for degree 2^logn; degrees below 256 use the table
// for 256 and add zz samples together.
func gauss_table(logn uint) (tab []uint16, zz int) {
	switch logn {
	case 9:
		return gauss_512, 1
	case 10:
		return gauss_1024, 1
	}
	return gauss_256, 1 << (8 - logn)
}

// Sample f (or g) with the key-pair Gaussian distribution. Only
// polynomials with odd parity (odd sum of coefficients) are returned;
// coefficients are in [-127,+127].
func sample_f(logn uint, pc *shake256x4, f []int8) {
	n := 1 << logn
	tab, zz := gauss_table(logn)
	kmax := uint32(len(tab)>>1) << 16

	for {
		parity := uint32(0)
		for i := 0; i < n; {
			// Each sample starts at -kmax and adds 1 for every table
			// entry below a random 16-bit y; the whole table is always
			// scanned. The value lives in the high 16 bits of v.
			v := uint32(0)
			for t := 0; t < zz; t++ {
				y := uint32(pc.next_u16())
				v -= kmax
				for _, c := range tab {
					v -= (uint32(c) - y) & ^uint32(0xFFFF)
				}
			}
			s := int32(v) >> 16
			// Sums of several samples (small degrees) may overflow a byte.
			if s < -127 || s > +127 {
				continue
			}
			f[i] = int8(s)
			i++
			parity ^= v
		}
		if ((parity >> 16) & 1) != 0 {
			return
		}
	}
}

// Package ringcheck recomputes the Falcon verification relation
// s1 + s2*h = c over Z_q[x]/(x^n+1) with an NTT implementation that is
// independent of the signing primitive.
package ringcheck

import (
	"errors"
	"fmt"

	"github.com/tuneinsight/lattigo/v4/ring"
)

// Q is the Falcon modulus.
const Q = 12289

// Ring degrees below 16 are not supported by the NTT backend.
const (
	MinLogN = 4
	MaxLogN = 10
)

// ErrMismatch is returned when the relation does not hold.
var ErrMismatch = errors.New("ringcheck: s1 + s2*h != c")

// Checker evaluates products in Z_q[x]/(x^n+1). It is safe for
// concurrent use.
type Checker struct {
	r *ring.Ring
	n int
}

// New returns a Checker for degree 2^logn.
func New(logn uint) (*Checker, error) {
	if logn < MinLogN || logn > MaxLogN {
		return nil, fmt.Errorf("ringcheck: unsupported degree 2^%d", logn)
	}
	n := 1 << logn
	r, err := ring.NewRing(n, []uint64{Q})
	if err != nil {
		return nil, fmt.Errorf("ringcheck: ring.NewRing: %w", err)
	}
	return &Checker{r: r, n: n}, nil
}

// N returns the ring degree.
func (c *Checker) N() int { return c.n }

// Mul returns a*b mod (x^n+1, q), with coefficients in [0, q-1].
func (c *Checker) Mul(a []int16, b []uint16) ([]uint16, error) {
	if len(a) < c.n || len(b) < c.n {
		return nil, fmt.Errorf("ringcheck: operands shorter than %d", c.n)
	}
	pa := c.r.NewPoly()
	pb := c.r.NewPoly()
	for i := 0; i < c.n; i++ {
		pa.Coeffs[0][i] = liftSigned(a[i])
		pb.Coeffs[0][i] = uint64(b[i]) % Q
	}
	c.r.MForm(pa, pa)
	c.r.MForm(pb, pb)
	c.r.NTT(pa, pa)
	c.r.NTT(pb, pb)
	res := c.r.NewPoly()
	c.r.MulCoeffsMontgomery(pa, pb, res)
	c.r.InvNTT(res, res)
	c.r.InvMForm(res, res)

	out := make([]uint16, c.n)
	for i := range out {
		out[i] = uint16(res.Coeffs[0][i] % Q)
	}
	return out, nil
}

// Relation checks that s1 + s2*h = hm mod (x^n+1, q), where hm is the
// hash polynomial of the message. The first mismatching coefficient is
// reported in the error.
func (c *Checker) Relation(s1, s2 []int16, h, hm []uint16) error {
	if len(s1) < c.n || len(hm) < c.n {
		return fmt.Errorf("ringcheck: operands shorter than %d", c.n)
	}
	prod, err := c.Mul(s2, h)
	if err != nil {
		return err
	}
	ps := c.r.NewPoly()
	pp := c.r.NewPoly()
	for i := 0; i < c.n; i++ {
		ps.Coeffs[0][i] = liftSigned(s1[i])
		pp.Coeffs[0][i] = uint64(prod[i])
	}
	c.r.Add(ps, pp, ps)
	for i := 0; i < c.n; i++ {
		got := ps.Coeffs[0][i] % Q
		want := uint64(hm[i]) % Q
		if got != want {
			return fmt.Errorf("%w: coefficient %d is %d, expected %d", ErrMismatch, i, got, want)
		}
	}
	return nil
}

func liftSigned(x int16) uint64 {
	v := int64(x) % Q
	if v < 0 {
		v += Q
	}
	return uint64(v)
}

package falcon

import (
	"unsafe"
)

// Scratch areas are provided by callers as plain byte slices. An arena
// carves typed, 8-byte aligned regions out of such a slice; the TmpSize*
// functions use a sizer that mirrors the same allocations, so that a
// buffer of the advertised size never runs out.

type sizer int

// Account for a region of the given size (in bytes).
func (s *sizer) add(size int) {
	*s += sizer((size + 7) &^ 7)
}

// Total size, including the slack needed to align the first region.
func (s sizer) total() int {
	return int(s) + 7
}

type arena struct {
	buf []byte
	off int
}

func newArena(buf []byte) *arena {
	return &arena{buf: buf}
}

// Get the next region of size bytes, aligned on 8 bytes. The caller has
// checked the buffer length against the matching TmpSize* function, so
// running out of space is a programming error.
func (a *arena) take(size int) []byte {
	base := uintptr(unsafe.Pointer(&a.buf[0]))
	start := a.off
	if r := int((base + uintptr(start)) & 7); r != 0 {
		start += 8 - r
	}
	end := start + size
	if end > len(a.buf) {
		panic("falcon: scratch area overflow")
	}
	a.off = end
	return a.buf[start:end:end]
}

func (a *arena) i8(n int) []int8 {
	b := a.take(n)
	return unsafe.Slice((*int8)(unsafe.Pointer(&b[0])), n)
}

func (a *arena) i16(n int) []int16 {
	b := a.take(2 * n)
	return unsafe.Slice((*int16)(unsafe.Pointer(&b[0])), n)
}

func (a *arena) u16(n int) []uint16 {
	b := a.take(2 * n)
	return unsafe.Slice((*uint16)(unsafe.Pointer(&b[0])), n)
}

func (a *arena) f64s(n int) []f64 {
	b := a.take(8 * n)
	return unsafe.Slice((*f64)(unsafe.Pointer(&b[0])), n)
}

// Check that tmp is at least the given size.
func checkTmp(tmp []byte, size int) error {
	if len(tmp) < size {
		return ErrSize
	}
	return nil
}

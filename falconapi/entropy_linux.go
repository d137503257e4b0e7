//go:build linux

package falconapi

import (
	"errors"

	"golang.org/x/sys/unix"
)

// systemEntropy reads from the getrandom(2) system call, blocking until
// the kernel pool is initialized.
type systemEntropy struct{}

func (systemEntropy) Read(p []byte) (int, error) {
	off := 0
	for off < len(p) {
		n, err := unix.Getrandom(p[off:], 0)
		if errors.Is(err, unix.EINTR) {
			continue
		}
		if err != nil {
			return off, err
		}
		off += n
	}
	return off, nil
}

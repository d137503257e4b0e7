package falconapi

import (
	"fmt"

	"github.com/pornin/go-falcon/falcon"
)

// ResolveScratchSize returns a scratch size large enough for every
// primitive operation at degree p. It panics if p is not supported.
func ResolveScratchSize(p SecurityParameter) int {
	if !p.Valid() {
		panic(fmt.Sprintf("falconapi: unsupported security parameter %d", uint(p)))
	}
	logn := uint(p)
	return max(
		falcon.TmpSizeKeygen(logn),
		falcon.TmpSizeMakePub(logn),
		falcon.TmpSizeSignDyn(logn),
		falcon.TmpSizeSignTree(logn),
		falcon.TmpSizeExpandPriv(logn),
		falcon.TmpSizeVerify(logn),
	)
}

// withScratch runs fn with a fresh scratch buffer sized for p. The
// buffer holds decoded key material during signing and is zeroed
// before it is released.
func withScratch(p SecurityParameter, fn func(tmp []byte) error) error {
	tmp := make([]byte, ResolveScratchSize(p))
	defer wipe(tmp)
	return fn(tmp)
}

func wipe(b []byte) {
	clear(b)
}

package falconapi

import (
	"fmt"
	"io"

	"github.com/pornin/go-falcon/falcon"
)

// seedSize is the number of entropy bytes used to seed a PRNG.
const seedSize = 48

// seedFromSystemEntropy returns a PRNG seeded from the engine's entropy
// source. The seed bytes are wiped once absorbed.
func (e *Engine) seedFromSystemEntropy() (*falcon.PRNG, error) {
	var seed [seedSize]byte
	defer wipe(seed[:])
	if _, err := io.ReadFull(e.entropy, seed[:]); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEntropyUnavailable, err)
	}
	return falcon.NewPRNG(seed[:]), nil
}

//go:build !linux

package falconapi

import (
	"crypto/rand"
)

type systemEntropy struct{}

func (systemEntropy) Read(p []byte) (int, error) {
	return rand.Read(p)
}

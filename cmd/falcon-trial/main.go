// Command falcon-trial exercises the Falcon-512 façade: key generation,
// deterministic signing, verification, tamper detection and extraction
// of the signature vectors.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Package falconapi is a typed, memory-safe layer over the falcon
// signing primitive.
//
// The primitive works on caller-provided buffers and scratch areas and
// reports integer status codes. This package sizes every buffer from a
// [SecurityParameter], seeds the primitive from operating-system
// entropy, and returns owned byte slices and Go errors:
//
//   - key generation at any supported degree ([Engine.GenerateKeyPair]);
//   - deterministic signing and verification at the fixed degree 512
//     ([Engine.Sign], [Engine.Verify]);
//   - introspection helpers that expose the short vectors s1 and s2 of
//     a signature, the decoded public key polynomial and the message
//     hash polynomial, for test harnesses and external verifiers.
//
// An [Engine] is immutable after construction and safe for concurrent
// use; reads from a custom entropy source are serialized. [Engine.With]
// derives an engine with some options replaced. The package-level
// functions use a default engine with a no-op logger, the system
// entropy source and no metrics.
package falconapi

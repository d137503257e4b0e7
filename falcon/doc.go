// Package falcon implements the Falcon lattice-based signature scheme
// with a fixed-buffer calling convention.
//
// Every operation is parameterized by a degree n = 2^logn, given
// logarithmically ("logn", from 2 to 10; 9 and 10 are the standard
// degrees 512 and 1024, lower values are for tests and research only).
// Callers provide all output buffers and a temporary scratch area,
// sized with the functions of this package:
//
//   - keys: [PubKeySize], [PrivKeySize]
//   - signatures: [SigCompressedMaxSize], [SigPaddedSize], [SigCTSize],
//     [SigDeterministicMaxSize]
//   - expanded private keys: [ExpandedKeySize]
//   - scratch areas: [TmpSizeKeygen], [TmpSizeMakePub], [TmpSizeSignDyn],
//     [TmpSizeSignTree], [TmpSizeExpandPriv], [TmpSizeVerify]
//
// Failures are reported as [ErrorCode] values, which carry the usual
// negative Falcon status codes.
//
// Randomness comes from a [PRNG], a SHAKE256 stream which the caller
// seeds, either from a fixed seed (for reproducible tests) or from the
// operating system. Signatures come in four flavours (see [SigType]);
// the deterministic flavour does not draw from the PRNG at all and
// produces the same bytes for the same key and message.
package falcon

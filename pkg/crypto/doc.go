// Package crypto provides the symmetric primitives used by the AUTOSAR
// Secure Hardware Extension (SHE): AES-128 in ECB and CBC mode, AES-CMAC,
// and the Miyaguchi-Preneel compression function SHE builds its key
// derivation on.
//
// The protocol engine consumes these through the Primitives interface so
// that a hardware-backed or instrumented implementation can be swapped in.
package crypto

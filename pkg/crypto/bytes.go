package crypto

import (
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"
)

// ErrLengthMismatch is returned when XOR operands differ in length.
var ErrLengthMismatch = errors.New("crypto: cannot XOR buffers of different lengths")

// Bytes is a byte buffer with a length-checked XOR.
type Bytes []byte

// XOR returns b ^ other as a new buffer. Both operands must have the same
// length; b and other are left untouched.
func (b Bytes) XOR(other []byte) (Bytes, error) {
	if len(b) != len(other) {
		return nil, fmt.Errorf("%w: %d and %d bytes", ErrLengthMismatch, len(b), len(other))
	}

	out := make(Bytes, len(b))
	for i := range b {
		out[i] = b[i] ^ other[i]
	}
	return out, nil
}

// Equal reports whether b and other hold the same bytes.
func (b Bytes) Equal(other []byte) bool {
	return bytes.Equal(b, other)
}

// String returns the lowercase hex encoding of b.
func (b Bytes) String() string {
	return hex.EncodeToString(b)
}

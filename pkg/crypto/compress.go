package crypto

import (
	"errors"
	"fmt"
)

// ErrNoInput is returned when the compression function is given nothing to compress.
var ErrNoInput = errors.New("crypto: compression requires at least one block")

// MiyaguchiPreneel is the one-way compression function SHE uses as its key
// derivation primitive.
//
// Starting from an all-zero accumulator H, every 16-byte message block M is
// absorbed as
//
//	H = E_H(M) ^ H ^ M
//
// i.e. the block is encrypted under the current accumulator. The final
// accumulator is returned. Input order matters and the function is not invertible.
//
// Every message must be exactly one block long. Callers that need the
// padded form of the standard append PRNG_EXTENSION_C style padding
// themselves.
func MiyaguchiPreneel(p Primitives, messages ...[]byte) (Bytes, error) {
	if len(messages) == 0 {
		return nil, ErrNoInput
	}
	if p == nil {
		p = Standard
	}

	h := make(Bytes, BlockSize)
	for i, m := range messages {
		if len(m) != BlockSize {
			return nil, fmt.Errorf("%w: block %d has %d bytes", ErrInvalidBlockSize, i, len(m))
		}

		enc, err := p.EncryptBlock(h, m)
		if err != nil {
			return nil, err
		}

		if h, err = h.XOR(enc); err != nil {
			return nil, err
		}
		if h, err = h.XOR(m); err != nil {
			return nil, err
		}
	}
	return h, nil
}

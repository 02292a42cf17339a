package crypto

import (
	"github.com/jacobsa/crypto/cmac"
)

// CMACSize is the AES-CMAC tag size in bytes. SHE never truncates tags.
const CMACSize = 16

// AESCMAC computes the AES-128-CMAC tag of message.
// The key must be exactly 16 bytes; SHE has no use for longer AES keys.
func AESCMAC(key, message []byte) ([]byte, error) {
	if len(key) != KeySize {
		return nil, ErrInvalidKeySize
	}

	h, err := cmac.New(key)
	if err != nil {
		return nil, err
	}

	// hash.Hash.Write never returns an error.
	h.Write(message)
	return h.Sum(nil), nil
}

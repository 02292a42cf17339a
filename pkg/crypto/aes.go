// AES primitives for the SHE key-update protocol.
// SHE only ever uses AES-128, in three shapes:
//   - single-block ECB encryption (Miyaguchi-Preneel, M4 counter block)
//   - CBC with an all-zero IV (M2)
//   - CMAC (M3, M5, debug authorization)

package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"errors"
)

// AES constants for SHE.
const (
	// KeySize is the AES-128 key size in bytes.
	KeySize = 16

	// BlockSize is the AES block size in bytes.
	BlockSize = aes.BlockSize
)

// Errors for AES operations.
var (
	ErrInvalidKeySize   = errors.New("crypto: invalid key size, must be 16 bytes")
	ErrInvalidBlockSize = errors.New("crypto: input is not a multiple of the block size")
	ErrInvalidIVSize    = errors.New("crypto: invalid IV size, must be 16 bytes")
)

// ZeroIV is the all-zero initialization vector SHE uses for CBC.
var ZeroIV = make([]byte, BlockSize)

// Primitives is the set of block cipher capabilities the SHE engine consumes.
// Implementations must be safe for concurrent use.
type Primitives interface {
	// EncryptBlock encrypts a single 16-byte block in ECB mode.
	EncryptBlock(key, block []byte) ([]byte, error)

	// EncryptCBC encrypts whole blocks in CBC mode without padding.
	EncryptCBC(key, iv, plaintext []byte) ([]byte, error)

	// DecryptCBC decrypts whole blocks in CBC mode without padding.
	DecryptCBC(key, iv, ciphertext []byte) ([]byte, error)

	// CMAC computes the 16-byte AES-CMAC tag of message.
	CMAC(key, message []byte) ([]byte, error)
}

// AES implements Primitives with crypto/aes and AES-CMAC.
// The zero value is ready to use. Every call builds its own cipher
// state, so a single AES value can be shared between goroutines.
type AES struct{}

// Verify AES implements Primitives.
var _ Primitives = AES{}

// Standard is the default Primitives implementation.
var Standard Primitives = AES{}

func newBlock(key []byte) (cipher.Block, error) {
	if len(key) != KeySize {
		return nil, ErrInvalidKeySize
	}
	return aes.NewCipher(key)
}

// EncryptBlock encrypts exactly one block under key (AES-128-ECB).
func (AES) EncryptBlock(key, block []byte) ([]byte, error) {
	if len(block) != BlockSize {
		return nil, ErrInvalidBlockSize
	}

	b, err := newBlock(key)
	if err != nil {
		return nil, err
	}

	out := make([]byte, BlockSize)
	b.Encrypt(out, block)
	return out, nil
}

// EncryptCBC encrypts plaintext in CBC mode. The plaintext length must be a
// multiple of the block size; no padding is applied.
func (AES) EncryptCBC(key, iv, plaintext []byte) ([]byte, error) {
	b, err := cbcPrecheck(key, iv, plaintext)
	if err != nil {
		return nil, err
	}

	out := make([]byte, len(plaintext))
	cipher.NewCBCEncrypter(b, iv).CryptBlocks(out, plaintext)
	return out, nil
}

// DecryptCBC decrypts ciphertext in CBC mode. The ciphertext length must be a
// multiple of the block size; no padding is removed.
func (AES) DecryptCBC(key, iv, ciphertext []byte) ([]byte, error) {
	b, err := cbcPrecheck(key, iv, ciphertext)
	if err != nil {
		return nil, err
	}

	out := make([]byte, len(ciphertext))
	cipher.NewCBCDecrypter(b, iv).CryptBlocks(out, ciphertext)
	return out, nil
}

func cbcPrecheck(key, iv, data []byte) (cipher.Block, error) {
	if len(iv) != BlockSize {
		return nil, ErrInvalidIVSize
	}
	if len(data) == 0 || len(data)%BlockSize != 0 {
		return nil, ErrInvalidBlockSize
	}
	return newBlock(key)
}

// CMAC computes AES-CMAC (NIST SP 800-38B) of message under key.
func (AES) CMAC(key, message []byte) ([]byte, error) {
	return AESCMAC(key, message)
}

// AESECBEncrypt is a convenience function for single-block AES-128-ECB
// encryption using the standard primitives.
func AESECBEncrypt(key, block []byte) ([]byte, error) {
	return AES{}.EncryptBlock(key, block)
}

// AESCBCEncrypt is a convenience function for AES-128-CBC encryption using
// the standard primitives.
func AESCBCEncrypt(key, iv, plaintext []byte) ([]byte, error) {
	return AES{}.EncryptCBC(key, iv, plaintext)
}

// AESCBCDecrypt is a convenience function for AES-128-CBC decryption using
// the standard primitives.
func AESCBCDecrypt(key, iv, ciphertext []byte) ([]byte, error) {
	return AES{}.DecryptCBC(key, iv, ciphertext)
}

package she

import (
	"github.com/backkem/she/pkg/crypto"
)

// DeriveKey implements the SHE key derivation function
//
//	KDF(K, C) = AES-MP(K | C)
//
// from the AUTOSAR SHE specification, where C is one of the constants above.
// A nil p uses the standard AES primitives.
func DeriveKey(p crypto.Primitives, key, constant Key) (Key, error) {
	out, err := crypto.MiyaguchiPreneel(p, key[:], constant[:])
	if err != nil {
		return Key{}, err
	}
	return KeyFromBytes(out)
}

// DebugKey derives the key that authorizes CMD_DEBUG from the
// MASTER_ECU_KEY.
func DebugKey(p crypto.Primitives, masterECUKey Key) (Key, error) {
	return DeriveKey(p, masterECUKey, DebugKeyC)
}

// PRNGKey derives the PRNG key from the SECRET_KEY.
func PRNGKey(p crypto.Primitives, secretKey Key) (Key, error) {
	return DeriveKey(p, secretKey, PRNGKeyC)
}

// PRNGSeedKey derives the PRNG seed key from the SECRET_KEY.
func PRNGSeedKey(p crypto.Primitives, secretKey Key) (Key, error) {
	return DeriveKey(p, secretKey, PRNGSeedKeyC)
}

// ChallengeSize is the size of the CMD_DEBUG challenge.
const ChallengeSize = 16

// DebugAuthorization computes the response to a CMD_DEBUG challenge:
//
//	AUTHORIZATION = CMAC_{KDF(MASTER_ECU_KEY, DEBUG_KEY_C)}(CHALLENGE | UID)
func DebugAuthorization(p crypto.Primitives, masterECUKey Key, challenge [ChallengeSize]byte, uid UID) ([]byte, error) {
	if p == nil {
		p = crypto.Standard
	}

	k, err := DebugKey(p, masterECUKey)
	if err != nil {
		return nil, err
	}

	msg := make([]byte, 0, ChallengeSize+UIDSize)
	msg = append(msg, challenge[:]...)
	msg = append(msg, uid[:]...)
	return p.CMAC(k[:], msg)
}

package keystore

import (
	"errors"
	"fmt"
)

// Key store errors, named after the SHE error codes they stand for.
var (
	// ErrKeyInvalid (ERC_KEY_INVALID): the slot pair may not perform an update.
	ErrKeyInvalid = errors.New("keystore: key slot not usable for this update")

	// ErrKeyEmpty (ERC_KEY_EMPTY): the authorizing slot holds no key.
	ErrKeyEmpty = errors.New("keystore: key slot is empty")

	// ErrKeyUpdateError (ERC_KEY_UPDATE_ERROR): the request failed
	// authentication, names another module or replays an old counter.
	ErrKeyUpdateError = errors.New("keystore: key update rejected")

	// ErrWriteProtected (ERC_KEY_WRITE_PROTECTED): the target slot is locked.
	ErrWriteProtected = errors.New("keystore: key slot is write protected")

	// ErrCounterRollback is a key update error for a counter that does not
	// exceed the stored one.
	ErrCounterRollback = fmt.Errorf("%w: counter not increased", ErrKeyUpdateError)

	// ErrUIDMismatch is a key update error for a request addressed to
	// another module.
	ErrUIDMismatch = fmt.Errorf("%w: UID mismatch", ErrKeyUpdateError)
)

package keyslot

import (
	"errors"
	"fmt"

	"github.com/backkem/she/pkg/she"
)

// Key slot errors. All of them are value errors.
var (
	ErrInvalidID      = fmt.Errorf("%w: key slot id outside [0, 15]", she.ErrInvalidValue)
	ErrUnknownLabel   = fmt.Errorf("%w: unknown key slot", she.ErrInvalidValue)
	ErrEmptyLabel     = fmt.Errorf("%w: empty key slot label", she.ErrInvalidValue)
	ErrDuplicateLabel = fmt.Errorf("%w: duplicate key slot label", she.ErrInvalidValue)
	ErrEmptySetName   = fmt.Errorf("%w: key slot set needs a name", she.ErrInvalidValue)
)

// Registry errors.
var (
	ErrDuplicateSet = errors.New("keyslot: set already registered")
	ErrUnknownSet   = errors.New("keyslot: no such set")
)

package she

import (
	"errors"
	"fmt"
)

// Error classes. Every validation error in this module wraps exactly one
// of these, so callers can classify with errors.Is.
var (
	// ErrInvalidValue covers bad lengths, bad hex, empty input and
	// out-of-range integers.
	ErrInvalidValue = errors.New("she: invalid value")

	// ErrInvalidType is returned when a value of an unsupported kind is
	// supplied where an integer, a key slot or an update source is expected.
	ErrInvalidType = errors.New("she: invalid type")
)

// Value errors.
var (
	ErrEmptyInput    = fmt.Errorf("%w: empty input", ErrInvalidValue)
	ErrOddHexLength  = fmt.Errorf("%w: odd number of hex digits", ErrInvalidValue)
	ErrInvalidHex    = fmt.Errorf("%w: non-hex characters", ErrInvalidValue)
	ErrInvalidLength = fmt.Errorf("%w: wrong length", ErrInvalidValue)
	ErrOutOfRange    = fmt.Errorf("%w: out of range", ErrInvalidValue)
)

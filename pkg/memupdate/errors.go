package memupdate

import (
	"errors"
	"fmt"

	"github.com/backkem/she/pkg/she"
)

// Memory update errors.
var (
	// ErrAuthenticationFailed is returned when a received message does not
	// match the value recomputed from the update parameters.
	ErrAuthenticationFailed = errors.New("memupdate: message authentication failed")

	// ErrUnsupportedSource is returned when New is given a nil or unknown Source.
	ErrUnsupportedSource = fmt.Errorf("%w: update source must be FromInfo or FromMessages", she.ErrInvalidType)
)

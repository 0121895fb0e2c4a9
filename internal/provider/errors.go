package provider

import (
	"errors"
	"fmt"
)

// ErrUnavailable classifies every adapter failure: network errors, non-2xx
// responses and malformed payloads. Callers treat it as "no data for this
// cycle" and skip the affected categories; it is never fatal.
var ErrUnavailable = errors.New("provider unavailable")

func unavailable(source string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrUnavailable, source, err)
}

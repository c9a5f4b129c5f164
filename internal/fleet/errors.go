package fleet

import (
	"errors"
	"fmt"
)

// ErrRuntimeUnavailable indicates the container engine could not be
// reached at all. Fatal for the pass: without a complete view of the
// fleet no retention decision is safe.
var ErrRuntimeUnavailable = errors.New("container runtime unavailable")

// TimestampParseError indicates a single container's creation time
// could not be interpreted. Scoped to one container: it is skipped for
// the pass, never evicted on the basis of an unknown age.
type TimestampParseError struct {
	ID  string
	Raw string
	Err error
}

func (e *TimestampParseError) Error() string {
	return fmt.Sprintf("parse creation time %q of container %s: %v", e.Raw, ShortID(e.ID), e.Err)
}

func (e *TimestampParseError) Unwrap() error { return e.Err }

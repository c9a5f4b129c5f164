package fleet

import (
	"strings"
	"time"
)

// Container is one discovered member of the fleet: a point-in-time
// snapshot taken during discovery and discarded when the pass ends.
type Container struct {
	ID    string
	Image string

	// RawCreated is the creation timestamp exactly as the engine
	// returned it. Parsing is deferred to age evaluation so that an
	// unreadable value skips one container instead of failing the pass.
	RawCreated string
}

// EvaluateAge computes the container's age in whole minutes at the
// reference instant now, truncated toward zero. A creation time that
// cannot be interpreted yields a *TimestampParseError; the caller must
// treat the age as unknown.
func EvaluateAge(c Container, now time.Time) (int64, error) {
	created, err := time.Parse(time.RFC3339Nano, strings.TrimSpace(c.RawCreated))
	if err != nil {
		return 0, &TimestampParseError{ID: c.ID, Raw: c.RawCreated, Err: err}
	}
	return int64(now.Sub(created) / time.Minute), nil
}

// ShortID returns the 12-character short form of a container ID, the
// form the engine's own CLI prints.
func ShortID(id string) string {
	if len(id) > 12 {
		return id[:12]
	}
	return id
}

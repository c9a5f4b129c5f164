package fleet

import "fmt"

// Policy is the retention policy for one pass, supplied by the operator
// and read-only while the pass runs. Exactly one mode is in effect:
// age-gated eviction above MinAgeMinutes, or unconditional eviction
// with ReapAll. There is no implicit default; selection happens at the
// flag and config layer so an unset threshold can never widen into
// reap-everything.
type Policy struct {
	// MinAgeMinutes is the eviction threshold in whole minutes for the
	// age-gated mode. A container is evicted when its age is greater
	// than or equal to the threshold. Ignored when ReapAll is set.
	MinAgeMinutes int64

	// ReapAll evicts every discovered container regardless of age.
	ReapAll bool

	// DryRun computes and reports every decision without issuing
	// removals.
	DryRun bool
}

// Validate rejects policies no pass should run with.
func (p Policy) Validate() error {
	if p.MinAgeMinutes < 0 {
		return fmt.Errorf("minimum age must not be negative, got %d", p.MinAgeMinutes)
	}
	if p.ReapAll && p.MinAgeMinutes > 0 {
		return fmt.Errorf("reap-all and a minimum age are mutually exclusive")
	}
	return nil
}

// Verdict is the retention decision for one container's age.
type Verdict uint8

const (
	Retain Verdict = iota
	Evict
)

// Decide applies the retention policy to an already-computed age. It is
// pure: the caller supplies the age, and Decide never consults the
// clock or the runtime.
func Decide(ageMinutes int64, p Policy) Verdict {
	if p.ReapAll {
		return Evict
	}
	if ageMinutes >= p.MinAgeMinutes {
		return Evict
	}
	return Retain
}

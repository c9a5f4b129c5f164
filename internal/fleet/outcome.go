package fleet

// Decision classifies the terminal state of one container in one pass.
type Decision uint8

const (
	// SkippedUnparsable means the creation time was unreadable; the
	// container's age is unknown, so it is never evicted.
	SkippedUnparsable Decision = iota
	// RetainedUnderThreshold means the container is younger than the
	// age-gated threshold.
	RetainedUnderThreshold
	// RetainedWouldEvict means a dry run chose eviction but issued no
	// removal.
	RetainedWouldEvict
	Evicted
	EvictionFailed
)

func (d Decision) String() string {
	switch d {
	case SkippedUnparsable:
		return "skipped-unparsable"
	case RetainedUnderThreshold:
		return "retained-under-threshold"
	case RetainedWouldEvict:
		return "retained-would-evict"
	case Evicted:
		return "evicted"
	case EvictionFailed:
		return "eviction-failed"
	default:
		return "unknown"
	}
}

// Outcome records what one pass decided for one container. Outcomes are
// emitted to logs and observers, never persisted.
type Outcome struct {
	ID    string
	Image string

	// AgeMinutes is the evaluated age, or -1 when the creation time was
	// unparsable.
	AgeMinutes int64

	Decision Decision

	// Detail carries the error text for SkippedUnparsable and
	// EvictionFailed outcomes.
	Detail string
}

// Summary aggregates the outcomes of one pass.
type Summary struct {
	Discovered int
	Evicted    int
	WouldEvict int
	Retained   int
	Skipped    int
	Failed     int
}

// Summarize folds outcomes into per-decision counts.
func Summarize(outcomes []Outcome) Summary {
	s := Summary{Discovered: len(outcomes)}
	for _, o := range outcomes {
		switch o.Decision {
		case SkippedUnparsable:
			s.Skipped++
		case RetainedUnderThreshold:
			s.Retained++
		case RetainedWouldEvict:
			s.WouldEvict++
		case Evicted:
			s.Evicted++
		case EvictionFailed:
			s.Failed++
		}
	}
	return s
}

package engine

// Outcome is the per-file result of applying an action. The numeric values
// double as severity: the run's exit status is the worst outcome seen.
type Outcome int

const (
	OutcomeOK      Outcome = 0
	OutcomeMissing Outcome = 1
	// 2 is reserved for target-not-found at the run level.
	OutcomeMismatch Outcome = 3
)

// Worse returns the more severe of two outcomes. Mismatch dominates
// missing dominates success.
func Worse(a, b Outcome) Outcome {
	if b > a {
		return b
	}
	return a
}

func (o Outcome) String() string {
	switch o {
	case OutcomeOK:
		return "ok"
	case OutcomeMissing:
		return "attribute-missing"
	case OutcomeMismatch:
		return "checksum-mismatch"
	default:
		return "unknown"
	}
}

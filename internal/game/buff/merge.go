package buff

// MergeOutcome is the resolution of an incoming buff against an active one.
// The zero value is not a valid outcome.
type MergeOutcome uint8

const (
	// Coexist attaches the incoming buff next to the existing one.
	Coexist MergeOutcome = iota + 1
	// Replace removes the existing buff and attaches the incoming one.
	Replace
	// Merge keeps the existing buff, which absorbed the incoming one.
	Merge
	// Reject discards the incoming buff.
	Reject
)

func (o MergeOutcome) String() string {
	switch o {
	case Coexist:
		return "coexist"
	case Replace:
		return "replace"
	case Merge:
		return "merge"
	case Reject:
		return "reject"
	default:
		return "invalid"
	}
}

// Valid reports whether o is one of the four outcomes.
func (o MergeOutcome) Valid() bool {
	return o >= Coexist && o <= Reject
}

// MergeResult is produced by exactly one existing buff per merge attempt.
type MergeResult struct {
	Outcome MergeOutcome
	// Buff is the replacement for Replace and the survivor for Merge.
	Buff Buff
	// Reason explains a Reject.
	Reason string
}

// CoexistWith lets both buffs stay active.
func CoexistWith() MergeResult {
	return MergeResult{Outcome: Coexist}
}

// ReplaceWith swaps the existing buff for next.
func ReplaceWith(next Buff) MergeResult {
	return MergeResult{Outcome: Replace, Buff: next}
}

// MergedInto reports that survivor absorbed the incoming buff.
func MergedInto(survivor Buff) MergeResult {
	return MergeResult{Outcome: Merge, Buff: survivor}
}

// Rejected discards the incoming buff.
func Rejected(reason string) MergeResult {
	return MergeResult{Outcome: Reject, Reason: reason}
}

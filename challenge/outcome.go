package challenge

type Outcome int

const (
	Pending Outcome = iota
	Succeeded
	Failed
)

func (o Outcome) String() string {
	switch o {
	case Succeeded:
		return "success"
	case Failed:
		return "fail"
	default:
		return "pending"
	}
}

// FailReason says why a challenge failed.
type FailReason int

const (
	FailNone FailReason = iota
	// FailNoWord means no target word was available at start.
	FailNoWord
	// FailMiss means the right word arrived outside the accept window.
	FailMiss
	// FailTimeout means a countdown ran out with no correct input.
	FailTimeout
	// FailBudget means the whole-sequence time budget ran out.
	FailBudget
	// FailCollision means a bomb reached its target.
	FailCollision
	// FailCanceled means the owner stopped the challenge early.
	FailCanceled
)

func (r FailReason) String() string {
	switch r {
	case FailNoWord:
		return "no_word"
	case FailMiss:
		return "miss"
	case FailTimeout:
		return "timeout"
	case FailBudget:
		return "budget"
	case FailCollision:
		return "collision"
	case FailCanceled:
		return "canceled"
	default:
		return "none"
	}
}

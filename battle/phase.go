// Package battle runs the boss encounter: bombs with timing windows, the
// repeat-word charge, the vulnerable damage window and the director that
// cycles between them.
package battle

// Phase is the director's encounter state.
type Phase int

const (
	PhaseNormal Phase = iota
	PhaseCharging
	PhaseVulnerable
)

func (p Phase) String() string {
	switch p {
	case PhaseCharging:
		return "charging"
	case PhaseVulnerable:
		return "vulnerable"
	default:
		return "normal"
	}
}

// BossPhase is the phase the boss shows to the rest of the game.
type BossPhase int

const (
	BossInactive BossPhase = iota
	BossThrowing
	BossCharging
	BossVulnerable
	BossDead
)

func (p BossPhase) String() string {
	switch p {
	case BossThrowing:
		return "throwing"
	case BossCharging:
		return "charging"
	case BossVulnerable:
		return "vulnerable"
	case BossDead:
		return "dead"
	default:
		return "inactive"
	}
}

// Mirror maps a director phase to the boss phase it must show.
func (p Phase) Mirror() BossPhase {
	switch p {
	case PhaseCharging:
		return BossCharging
	case PhaseVulnerable:
		return BossVulnerable
	default:
		return BossThrowing
	}
}

// Result is the outcome of a whole battle.
type Result int

const (
	ResultPending Result = iota
	ResultWon
	ResultLost
)

func (r Result) String() string {
	switch r {
	case ResultWon:
		return "won"
	case ResultLost:
		return "lost"
	default:
		return "pending"
	}
}

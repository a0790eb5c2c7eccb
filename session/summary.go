package session

import (
	"time"

	"github.com/milk9111/wordtitan/battle"
)

type tally struct {
	submissions   int
	misses        int
	perfect       int
	bombsFailed   int
	chargesWon    int
	chargesFailed int
	bossHits      int
}

// Summary is the scoreboard of one battle, final or in progress.
type Summary struct {
	Result         battle.Result
	Elapsed        time.Duration
	BossHP         int
	BossMaxHP      int
	PlayerHP       int
	PlayerMaxHP    int
	BestCombo      int
	PerfectDefuses int
	BombsFailed    int
	ChargesWon     int
	ChargesFailed  int
	BossHits       int
	Submissions    int
	Misses         int
}

// Accuracy is the share of submissions that were not misses.
func (s Summary) Accuracy() float64 {
	if s.Submissions == 0 {
		return 0
	}
	return float64(s.Submissions-s.Misses) / float64(s.Submissions)
}

func (s *Session) Summary() Summary {
	if s == nil {
		return Summary{}
	}
	return Summary{
		Result:         s.director.Result(),
		Elapsed:        s.elapsed,
		BossHP:         s.boss.Health().Current(),
		BossMaxHP:      s.boss.Health().Max(),
		PlayerHP:       s.player.Health().Current(),
		PlayerMaxHP:    s.player.Health().Max(),
		BestCombo:      s.combo.Best(),
		PerfectDefuses: s.tally.perfect,
		BombsFailed:    s.tally.bombsFailed,
		ChargesWon:     s.tally.chargesWon,
		ChargesFailed:  s.tally.chargesFailed,
		BossHits:       s.tally.bossHits,
		Submissions:    s.tally.submissions,
		Misses:         s.tally.misses,
	}
}

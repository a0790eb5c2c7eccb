// Package sim plays battles headlessly with a scripted typist, for tuning
// battle.yaml without a window.
package sim

import (
	"math/rand/v2"
	"time"

	"github.com/milk9111/wordtitan/battle"
	"github.com/milk9111/wordtitan/common"
	"github.com/milk9111/wordtitan/session"
)

// Typist waits for an open timing window (or a vulnerable boss), reacts
// after Reaction with ±25% jitter and types the word. With probability
// 1-Accuracy the word comes out wrong.
type Typist struct {
	Accuracy float64
	Reaction time.Duration

	rng    *rand.Rand
	target string
	wait   time.Duration
	armed  bool
}

func NewTypist(accuracy float64, reaction time.Duration, rng *rand.Rand) *Typist {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Typist{Accuracy: accuracy, Reaction: reaction, rng: rng}
}

// Step looks at the session and submits at most one line.
func (t *Typist) Step(s *session.Session, dt time.Duration) (battle.Verdict, bool) {
	target := t.pick(s)
	if target == "" {
		t.armed = false
		return battle.VerdictEmpty, false
	}
	if !t.armed || target != t.target {
		t.armed = true
		t.target = target
		t.wait = time.Duration(float64(t.Reaction) * (0.75 + 0.5*t.rng.Float64()))
	}
	t.wait -= dt
	if t.wait > 0 {
		return battle.VerdictEmpty, false
	}
	t.armed = false

	text := target
	if t.rng.Float64() >= t.Accuracy {
		text += "q"
	}
	return s.Submit(text), true
}

func (t *Typist) pick(s *session.Session) string {
	if ring := s.Ring(); ring.Visible() {
		if ring.InWindow() {
			return ring.Word()
		}
		return ""
	}
	if s.Phase() == battle.PhaseVulnerable && s.Boss().IsVulnerableNow() {
		if w := s.Boss().Word(); w != nil {
			return w.Text
		}
	}
	return ""
}

// Run plays s at the fixed tick rate until it ends or limit passes. onEvent
// may be nil.
func Run(s *session.Session, typist *Typist, limit time.Duration, onEvent func(battle.Event)) session.Summary {
	dt := time.Second / common.TPS
	for s.Elapsed() < limit && !s.Over() {
		if typist != nil {
			typist.Step(s, dt)
		}
		s.Update(dt)
		for _, evt := range s.Events() {
			if onEvent != nil {
				onEvent(evt)
			}
		}
	}
	return s.Summary()
}

package battle

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/jakecoffman/cp"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/wordtitan/challenge"
	"github.com/milk9111/wordtitan/words"
)

const tick = 10 * time.Millisecond

type mockWords struct {
	mock.Mock
}

func (m *mockWords) RandomWord() *words.Word {
	args := m.Called()
	w, _ := args.Get(0).(*words.Word)
	return w
}

// fixedWords always hands out the same word.
type fixedWords struct {
	text string
}

func (f fixedWords) RandomWord() *words.Word {
	if f.text == "" {
		return nil
	}
	return &words.Word{ID: f.text, Text: f.text}
}

type countingReporter struct {
	calls   int
	success []bool
	perfect []bool
}

func (r *countingReporter) NotifyBombResolved(success, perfect bool) {
	r.calls++
	r.success = append(r.success, success)
	r.perfect = append(r.perfect, perfect)
}

// reasonReporter also takes the failure reason.
type reasonReporter struct {
	countingReporter
	reasons []challenge.FailReason
}

func (r *reasonReporter) NotifyBombFailed(reason challenge.FailReason) {
	r.reasons = append(r.reasons, reason)
}

type recordingPresenter struct {
	shown  []string
	hidden int
	onHide func()
}

func (p *recordingPresenter) ShowTimingRing(word string, _ time.Duration, _, _ float64) {
	p.shown = append(p.shown, word)
}

func (p *recordingPresenter) HideTimingRing() {
	p.hidden++
	if p.onHide != nil {
		p.onHide()
	}
}

type fixture struct {
	director  *Director
	boss      *Boss
	slot      *challenge.Slot
	player    *PlayerHealth
	patrol    *Patrol
	presenter *recordingPresenter
	typing    *Typing
}

func testDirectorConfig() DirectorConfig {
	cfg := DefaultDirectorConfig()
	cfg.Bomb.Speed = 0
	cfg.Bomb.RingDuration = time.Second
	return cfg
}

func newFixture(t *testing.T, cfg DirectorConfig, src words.Source) *fixture {
	t.Helper()
	slot := challenge.NewSlot()
	boss := NewBoss(BossConfig{MaxHP: 3, DamagePerHit: 1}, src)
	player := NewPlayerHealth(PlayerConfig{MaxHP: 100, Position: cp.Vector{X: 0, Y: -100}})
	patrol := NewPatrol(DefaultPatrolConfig())
	presenter := &recordingPresenter{}

	d, err := NewDirector(cfg, boss, slot,
		WithRefs(Refs{Words: src, Player: player}),
		WithMover(patrol),
		WithPresenter(presenter),
		WithRand(rand.New(rand.NewPCG(7, 11))),
	)
	require.NoError(t, err)
	return &fixture{
		director:  d,
		boss:      boss,
		slot:      slot,
		player:    player,
		patrol:    patrol,
		presenter: presenter,
		typing:    NewTyping(slot, boss),
	}
}

func (f *fixture) run(d time.Duration) {
	for elapsed := time.Duration(0); elapsed < d; elapsed += tick {
		f.player.Update(tick)
		f.patrol.Update(tick)
		f.director.Update(tick)
	}
}

func countEvents(events []Event, kind EventKind) int {
	n := 0
	for _, e := range events {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

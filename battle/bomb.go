package battle

import (
	"time"

	"github.com/jakecoffman/cp"

	"github.com/milk9111/wordtitan/challenge"
	"github.com/milk9111/wordtitan/wordmatch"
	"github.com/milk9111/wordtitan/words"
)

type BombConfig struct {
	RingDuration time.Duration
	WindowStart  float64
	WindowEnd    float64
	Speed        float64
	HitDistance  float64
	Damage       int
}

func DefaultBombConfig() BombConfig {
	return BombConfig{
		RingDuration: 2500 * time.Millisecond,
		WindowStart:  0.35,
		WindowEnd:    0.55,
		Speed:        4.5,
		HitDistance:  0.35,
		Damage:       1,
	}
}

// Reporter receives a bomb's outcome exactly once.
type Reporter interface {
	NotifyBombResolved(success, perfect bool)
}

// FailureReporter is a Reporter that also wants the reason a bomb failed. A
// failing bomb calls NotifyBombFailed in place of NotifyBombResolved.
type FailureReporter interface {
	Reporter
	NotifyBombFailed(reason challenge.FailReason)
}

// Bomb flies at the player carrying a word and its own timing window. Typing
// the word inside the window defuses it; typing it outside the window, letting
// the window run out or letting it reach the player detonates it.
type Bomb struct {
	cfg       BombConfig
	word      *words.Word
	target    string
	pos       cp.Vector
	window    challenge.Window
	slot      *challenge.Slot
	presenter challenge.Presenter
	player    PlayerTarget
	reporter  Reporter

	armed    bool
	resolved bool
	outcome  challenge.Outcome
	reason   challenge.FailReason
}

// BombDeps are the collaborators a bomb talks to. Any of them may be nil.
type BombDeps struct {
	Slot      *challenge.Slot
	Presenter challenge.Presenter
	Player    PlayerTarget
	Reporter  Reporter
}

func NewBomb(word *words.Word, pos cp.Vector, cfg BombConfig, deps BombDeps) *Bomb {
	p := deps.Presenter
	if p == nil {
		p = challenge.NopPresenter{}
	}
	return &Bomb{
		cfg:       cfg,
		word:      word,
		target:    word.Normalized(),
		pos:       pos,
		slot:      deps.Slot,
		presenter: p,
		player:    deps.Player,
		reporter:  deps.Reporter,
	}
}

// Arm starts the window, shows the ring and claims the input slot.
func (b *Bomb) Arm() {
	if b == nil || b.armed || b.resolved {
		return
	}
	b.armed = true
	b.window.Start(b.cfg.RingDuration, b.cfg.WindowStart, b.cfg.WindowEnd)
	text := ""
	if b.word != nil {
		text = b.word.Text
	}
	challenge.ShowWindow(b.presenter, text, &b.window)
	b.slot.Claim(b, b)
}

// Update moves the bomb toward target and checks both fail conditions.
func (b *Bomb) Update(dt time.Duration, target cp.Vector) {
	if b == nil || b.resolved || !b.armed {
		return
	}
	b.window.Tick(dt)

	if b.pos.Near(target, b.cfg.HitDistance) {
		b.Fail(challenge.FailCollision)
	} else if dt > 0 {
		step := b.cfg.Speed * dt.Seconds()
		to := target.Sub(b.pos)
		if to.Length() <= step {
			b.pos = target
		} else {
			b.pos = b.pos.Add(to.Normalize().Mult(step))
		}
	}

	if b.window.Expired() {
		b.Fail(challenge.FailTimeout)
	}
}

// TryConsume implements challenge.Challenge.
func (b *Bomb) TryConsume(normalized string) bool {
	if b == nil {
		return false
	}
	if b.resolved {
		return true
	}
	if !wordmatch.Equal(normalized, b.target) {
		return false
	}
	if !b.window.InWindow() {
		b.Fail(challenge.FailMiss)
		return true
	}
	b.succeed()
	return true
}

// Fail detonates the bomb on the player. Only the first resolution counts.
func (b *Bomb) Fail(reason challenge.FailReason) {
	if b == nil || b.resolved {
		return
	}
	b.resolved = true
	b.outcome = challenge.Failed
	b.reason = reason
	if b.player != nil {
		b.player.TakeDamage(b.cfg.Damage)
	}
	b.cleanup()
	switch r := b.reporter.(type) {
	case nil:
	case FailureReporter:
		r.NotifyBombFailed(reason)
	default:
		r.NotifyBombResolved(false, false)
	}
}

// Discard removes the bomb without an outcome, for battle teardown.
func (b *Bomb) Discard() {
	if b == nil || b.resolved {
		return
	}
	b.resolved = true
	b.reason = challenge.FailCanceled
	b.cleanup()
}

func (b *Bomb) succeed() {
	b.resolved = true
	b.outcome = challenge.Succeeded
	b.cleanup()
	if b.reporter != nil {
		b.reporter.NotifyBombResolved(true, true)
	}
}

func (b *Bomb) cleanup() {
	b.window.Stop()
	b.presenter.HideTimingRing()
	b.slot.ReleaseByOwner(b)
}

func (b *Bomb) Resolved() bool { return b != nil && b.resolved }

func (b *Bomb) Outcome() challenge.Outcome {
	if b == nil {
		return challenge.Pending
	}
	return b.outcome
}

func (b *Bomb) Reason() challenge.FailReason {
	if b == nil {
		return challenge.FailNone
	}
	return b.reason
}

func (b *Bomb) Position() cp.Vector {
	if b == nil {
		return cp.Vector{}
	}
	return b.pos
}

func (b *Bomb) Word() *words.Word {
	if b == nil {
		return nil
	}
	return b.word
}

// Window exposes the bomb's countdown for display.
func (b *Bomb) Window() *challenge.Window {
	if b == nil {
		return nil
	}
	return &b.window
}

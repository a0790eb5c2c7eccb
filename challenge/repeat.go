package challenge

import (
	"time"

	"github.com/milk9111/wordtitan/wordmatch"
	"github.com/milk9111/wordtitan/words"
)

// RepeatConfig tunes a RepeatWord sequence.
type RepeatConfig struct {
	Repeats     int
	PerRepeat   time.Duration
	WindowStart float64
	WindowEnd   float64
	Budget      time.Duration
	Gap         time.Duration
}

// RepeatWord asks for the same word Repeats times, each inside its own
// Window, before Budget runs out. One miss fails the sequence.
//
// The sequence claims the slot once for its whole life. Whoever runs it calls
// Release when it is done.
type RepeatWord struct {
	cfg       RepeatConfig
	word      *words.Word
	target    string
	slot      *Slot
	presenter Presenter

	window   Window
	attempts int
	elapsed  time.Duration
	inGap    bool
	gapLeft  time.Duration

	started  bool
	done     bool
	success  bool
	reason   FailReason
	released bool
}

func NewRepeatWord(word *words.Word, cfg RepeatConfig, slot *Slot, presenter Presenter) *RepeatWord {
	if cfg.Repeats < 1 {
		cfg.Repeats = 1
	}
	return &RepeatWord{
		cfg:       cfg,
		word:      word,
		target:    word.Normalized(),
		slot:      slot,
		presenter: presenterOrNop(presenter),
	}
}

// Begin claims the slot and opens attempt one. Without a usable word the
// sequence fails at once.
func (r *RepeatWord) Begin() {
	if r == nil || r.started {
		return
	}
	r.started = true
	if r.word == nil || r.target == "" {
		r.finish(false, FailNoWord)
		return
	}
	r.slot.Claim(r, r)
	r.startAttempt()
}

// Update advances the budget clock and the current attempt or gap.
func (r *RepeatWord) Update(dt time.Duration) {
	if r == nil || !r.started || r.done || dt < 0 {
		return
	}
	r.elapsed += dt

	if r.inGap {
		r.gapLeft -= dt
		if r.gapLeft <= 0 && !r.budgetSpent() {
			r.startAttempt()
		}
	} else {
		r.window.Tick(dt)
	}

	if r.budgetSpent() {
		r.finish(false, FailBudget)
		return
	}
	if !r.inGap && r.window.Expired() {
		r.finish(false, FailTimeout)
	}
}

// TryConsume implements Challenge. Finished sequences swallow everything;
// wrong words are left for other handlers.
func (r *RepeatWord) TryConsume(normalized string) bool {
	if r == nil {
		return false
	}
	if r.done {
		return true
	}
	if !r.started || !wordmatch.Equal(normalized, r.target) {
		return false
	}
	if r.inGap || !r.window.InWindow() {
		r.finish(false, FailMiss)
		return true
	}

	r.attempts++
	r.window.Stop()
	if r.attempts >= r.cfg.Repeats {
		r.finish(true, FailNone)
		return true
	}
	if r.cfg.Gap <= 0 {
		r.startAttempt()
		return true
	}
	r.inGap = true
	r.gapLeft = r.cfg.Gap
	r.presenter.HideTimingRing()
	return true
}

// Cancel fails a running sequence and releases it.
func (r *RepeatWord) Cancel() {
	if r == nil {
		return
	}
	if !r.done {
		r.finish(false, FailCanceled)
	}
	r.Release()
}

// Release hides the ring and gives the slot back if this sequence still
// holds it. Safe to call more than once.
func (r *RepeatWord) Release() {
	if r == nil || r.released {
		return
	}
	r.released = true
	r.window.Stop()
	r.presenter.HideTimingRing()
	r.slot.ReleaseByOwner(r)
}

// budgetSpent reports whether the sequence budget ran out. A zero budget
// never runs out.
func (r *RepeatWord) budgetSpent() bool {
	return r.cfg.Budget > 0 && r.elapsed >= r.cfg.Budget
}

func (r *RepeatWord) startAttempt() {
	r.inGap = false
	r.gapLeft = 0
	r.window.Start(r.cfg.PerRepeat, r.cfg.WindowStart, r.cfg.WindowEnd)
	ShowWindow(r.presenter, r.word.Text, &r.window)
}

func (r *RepeatWord) finish(success bool, reason FailReason) {
	r.done = true
	r.success = success
	r.reason = reason
	r.inGap = false
	r.window.Stop()
}

func (r *RepeatWord) Done() bool    { return r != nil && r.done }
func (r *RepeatWord) Success() bool { return r != nil && r.success }

func (r *RepeatWord) Outcome() Outcome {
	switch {
	case r == nil || !r.done:
		return Pending
	case r.success:
		return Succeeded
	default:
		return Failed
	}
}

func (r *RepeatWord) Reason() FailReason {
	if r == nil {
		return FailNone
	}
	return r.reason
}

// Attempts returns how many repeats have been landed so far.
func (r *RepeatWord) Attempts() int {
	if r == nil {
		return 0
	}
	return r.attempts
}

func (r *RepeatWord) Elapsed() time.Duration {
	if r == nil {
		return 0
	}
	return r.elapsed
}

func (r *RepeatWord) Word() *words.Word {
	if r == nil {
		return nil
	}
	return r.word
}

// Window exposes the current attempt's countdown for display.
func (r *RepeatWord) Window() *Window {
	if r == nil {
		return nil
	}
	return &r.window
}

func (r *RepeatWord) InGap() bool { return r != nil && r.inGap }

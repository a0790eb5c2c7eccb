// Package session assembles one boss battle and drives it. Every front end
// (window, terminal, headless sim) owns exactly one Session per battle and
// calls Update once per tick.
package session

import (
	"errors"
	"math/rand/v2"
	"time"

	"github.com/rs/zerolog"

	"github.com/milk9111/wordtitan/battle"
	"github.com/milk9111/wordtitan/challenge"
	"github.com/milk9111/wordtitan/words"
)

var ErrNoWords = errors.New("session: word source is nil")

type Option func(*Session)

func WithLogger(log zerolog.Logger) Option {
	return func(s *Session) { s.log = log.With().Str("component", "session").Logger() }
}

// WithRand seeds bomb placement.
func WithRand(rng *rand.Rand) Option {
	return func(s *Session) { s.rng = rng }
}

// WithPresenter mirrors ring show/hide calls to p in addition to the
// session's own Ring.
func WithPresenter(p challenge.Presenter) Option {
	return func(s *Session) {
		if p != nil {
			s.presenters = append(s.presenters, p)
		}
	}
}

type Session struct {
	tuning     Tuning
	log        zerolog.Logger
	rng        *rand.Rand
	presenters fanout
	words      words.Source

	slot     *challenge.Slot
	ring     *challenge.Ring
	boss     *battle.Boss
	player   *battle.PlayerHealth
	patrol   *battle.Patrol
	director *battle.Director
	typing   *battle.Typing
	combo    *battle.Combo

	elapsed time.Duration
	tally   tally
	pending []battle.Event
	over    bool
}

func New(t Tuning, src words.Source, opts ...Option) (*Session, error) {
	if src == nil {
		return nil, ErrNoWords
	}
	s := &Session{
		tuning: t,
		log:    zerolog.Nop(),
		words:  src,
		slot:   challenge.NewSlot(),
		ring:   &challenge.Ring{},
	}
	for _, opt := range opts {
		opt(s)
	}
	s.presenters = append(fanout{s.ring}, s.presenters...)
	if s.rng == nil {
		s.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	s.boss = battle.NewBoss(t.Boss, src)
	s.player = battle.NewPlayerHealth(t.Player)
	s.patrol = battle.NewPatrol(t.Patrol)
	s.combo = battle.NewCombo(t.Combo)
	s.typing = battle.NewTyping(s.slot, s.boss)

	director, err := battle.NewDirector(t.Director, s.boss, s.slot,
		battle.WithLogger(s.log),
		battle.WithRand(s.rng),
		battle.WithMover(s.patrol),
		battle.WithPresenter(s.presenters),
		battle.WithRefs(battle.Refs{Words: src, Player: s.player}),
	)
	if err != nil {
		return nil, err
	}
	s.director = director

	s.boss.Health().Subscribe(func(c battle.HealthChange) {
		s.tally.bossHits++
		s.pending = append(s.pending, battle.Event{Kind: battle.EventBossHit, Phase: s.director.Phase(), Damage: c.Amount, Count: c.Current})
	})
	s.player.Health().Subscribe(func(c battle.HealthChange) {
		s.pending = append(s.pending, battle.Event{Kind: battle.EventPlayerHit, Phase: s.director.Phase(), Damage: c.Amount, Count: c.Current})
	})
	return s, nil
}

// Update advances the battle by dt. It does nothing once the battle is over.
func (s *Session) Update(dt time.Duration) {
	if s == nil || s.over || dt <= 0 {
		return
	}
	s.elapsed += dt
	s.player.Update(dt)
	s.patrol.Update(dt)
	s.director.Update(dt)
	s.ring.Update(dt)

	for _, evt := range s.director.Events() {
		s.observe(evt)
		s.pending = append(s.pending, evt)
	}
}

func (s *Session) observe(evt battle.Event) {
	switch evt.Kind {
	case battle.EventBombResolved:
		switch {
		case evt.Success && evt.Perfect:
			s.tally.perfect++
			s.combo.Hit()
		case !evt.Success:
			s.tally.bombsFailed++
			s.combo.Break()
		}
	case battle.EventChargeRepeat:
		s.combo.Hit()
	case battle.EventChargeResult:
		if evt.Success {
			s.tally.chargesWon++
		} else {
			s.tally.chargesFailed++
			s.combo.Break()
		}
	case battle.EventBattleOver:
		s.over = true
		s.log.Info().
			Stringer("result", evt.Result).
			Dur("elapsed", s.elapsed).
			Int("best_combo", s.combo.Best()).
			Msg("battle finished")
	}
}

// Submit routes one typed line.
func (s *Session) Submit(raw string) battle.Verdict {
	if s == nil || s.over {
		return battle.VerdictEmpty
	}
	return s.account(s.typing.Submit(raw))
}

// SubmitSpeech routes one recognized utterance.
func (s *Session) SubmitSpeech(utterance string) battle.Verdict {
	if s == nil || s.over {
		return battle.VerdictEmpty
	}
	return s.account(s.typing.SubmitSpeech(utterance))
}

func (s *Session) account(v battle.Verdict) battle.Verdict {
	switch v {
	case battle.VerdictEmpty:
		return v
	case battle.VerdictBossHit:
		s.combo.Hit()
	case battle.VerdictRejected, battle.VerdictMiss:
		s.tally.misses++
		s.combo.Break()
	}
	s.tally.submissions++
	s.log.Debug().Stringer("verdict", v).Msg("submission")
	return v
}

// SetFallback installs the handler for input nothing else wants.
func (s *Session) SetFallback(fn func(normalized string) bool) {
	if s == nil {
		return
	}
	s.typing.SetFallback(fn)
}

// SetPatrolOffset replaces the boss sweep pattern. Nil restores the sine.
func (s *Session) SetPatrolOffset(fn battle.OffsetFunc) {
	if s == nil {
		return
	}
	s.patrol.SetOffset(fn)
}

// Retune applies new director and patrol tuning. Running challenges keep
// the values they started with.
func (s *Session) Retune(t Tuning) {
	if s == nil {
		return
	}
	s.tuning.Director = t.Director
	s.tuning.Patrol = t.Patrol
	s.director.SetConfig(t.Director)
	s.patrol.SetConfig(t.Patrol)
	s.log.Info().Msg("session retuned")
}

// Events returns and clears everything that happened since the last call,
// oldest first.
func (s *Session) Events() []battle.Event {
	if s == nil || len(s.pending) == 0 {
		return nil
	}
	out := s.pending
	s.pending = nil
	return out
}

func (s *Session) Over() bool { return s != nil && s.over }

func (s *Session) Elapsed() time.Duration {
	if s == nil {
		return 0
	}
	return s.elapsed
}

func (s *Session) Phase() battle.Phase          { return s.director.Phase() }
func (s *Session) Boss() *battle.Boss           { return s.boss }
func (s *Session) Player() *battle.PlayerHealth { return s.player }
func (s *Session) Patrol() *battle.Patrol       { return s.patrol }
func (s *Session) Director() *battle.Director   { return s.director }
func (s *Session) Combo() *battle.Combo         { return s.combo }
func (s *Session) Ring() *challenge.Ring        { return s.ring }
func (s *Session) Slot() *challenge.Slot        { return s.slot }
func (s *Session) Tuning() Tuning               { return s.tuning }

// fanout forwards ring calls to every presenter in order.
type fanout []challenge.Presenter

func (f fanout) ShowTimingRing(word string, d time.Duration, start, end float64) {
	for _, p := range f {
		p.ShowTimingRing(word, d, start, end)
	}
}

func (f fanout) HideTimingRing() {
	for _, p := range f {
		p.HideTimingRing()
	}
}

func (f fanout) Track(w *challenge.Window) {
	for _, p := range f {
		if t, ok := p.(challenge.Tracker); ok {
			t.Track(w)
		}
	}
}

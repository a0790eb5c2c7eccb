package session

import (
	"math"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/wordtitan/battle"
	"github.com/milk9111/wordtitan/words"
)

const step = time.Second / 60

func testTuning() Tuning {
	t := DefaultTuning()
	t.Director.Bomb.Speed = 0
	t.Director.BombInterval = 5 * time.Second
	t.Player.InvincibleTime = 0
	return t
}

func newTestSession(t *testing.T, tuning Tuning) *Session {
	t.Helper()
	lib := words.NewLibrary([]words.Word{{ID: "apple", Text: "Apple"}}, rand.New(rand.NewPCG(1, 2)))
	s, err := New(tuning, lib, WithRand(rand.New(rand.NewPCG(3, 4))), WithLogger(zerolog.Nop()))
	require.NoError(t, err)
	return s
}

// runUntil steps s until cond holds, failing after limit of game time.
func runUntil(t *testing.T, s *Session, limit time.Duration, cond func() bool) []battle.Event {
	t.Helper()
	var events []battle.Event
	for elapsed := time.Duration(0); elapsed < limit; elapsed += step {
		if cond() {
			return events
		}
		s.Update(step)
		events = append(events, s.Events()...)
	}
	require.FailNow(t, "condition not reached", "after %s", limit)
	return nil
}

func kinds(events []battle.Event, kind battle.EventKind) []battle.Event {
	var out []battle.Event
	for _, e := range events {
		if e.Kind == kind {
			out = append(out, e)
		}
	}
	return out
}

func (s *Session) defuseNextBomb(t *testing.T) []battle.Event {
	t.Helper()
	events := runUntil(t, s, 10*time.Second, func() bool { return s.Ring().InWindow() })
	require.Equal(t, battle.VerdictChallenge, s.Submit(s.Ring().Word()))
	s.Update(step)
	return append(events, s.Events()...)
}

func TestNewRequiresWords(t *testing.T) {
	_, err := New(DefaultTuning(), nil)
	assert.ErrorIs(t, err, ErrNoWords)
}

func TestPerfectDefuseBuildsCombo(t *testing.T) {
	s := newTestSession(t, testTuning())

	events := s.defuseNextBomb(t)
	require.Len(t, kinds(events, battle.EventBombSpawned), 1)
	resolved := kinds(events, battle.EventBombResolved)
	require.Len(t, resolved, 1)
	assert.True(t, resolved[0].Perfect)
	assert.Equal(t, 1, s.Combo().Count())

	sum := s.Summary()
	assert.Equal(t, 1, sum.PerfectDefuses)
	assert.Equal(t, 1, sum.Submissions)
	assert.Equal(t, 1.0, sum.Accuracy())
}

func TestMissedBombHurtsPlayerAndBreaksCombo(t *testing.T) {
	s := newTestSession(t, testTuning())
	s.defuseNextBomb(t)
	require.Equal(t, 1, s.Combo().Count())

	events := runUntil(t, s, 15*time.Second, func() bool { return s.Summary().BombsFailed == 1 })
	hits := kinds(events, battle.EventPlayerHit)
	require.Len(t, hits, 1)
	assert.Equal(t, 1, hits[0].Damage)
	assert.Equal(t, 4, hits[0].Count)
	assert.Zero(t, s.Combo().Count())
	assert.Equal(t, 1, s.Combo().Best())
}

func TestWrongWordWhileBombActiveIsRejected(t *testing.T) {
	s := newTestSession(t, testTuning())
	runUntil(t, s, 10*time.Second, func() bool { return s.Slot().Claimed() })

	assert.Equal(t, battle.VerdictRejected, s.Submit("pear"))
	assert.Equal(t, battle.VerdictEmpty, s.Submit("   "))
	assert.Equal(t, 1, s.Summary().Misses)
}

func TestChargeAttemptsAcceptFirstRingFrame(t *testing.T) {
	tuning := testTuning()
	tuning.Director.PerfectDefuseToCharge = 1
	tuning.Director.ChargeRepeatCount = 3
	s := newTestSession(t, tuning)

	s.defuseNextBomb(t)
	require.Equal(t, battle.PhaseCharging, s.Phase())

	for attempt := 1; attempt <= 3; attempt++ {
		runUntil(t, s, 5*time.Second, func() bool {
			if charge := s.Director().Charge(); charge != nil && s.Ring().Visible() {
				require.InDelta(t, charge.Window().Progress(), s.Ring().Progress(), 1e-9, "attempt %d", attempt)
				require.Equal(t, charge.Window().InWindow(), s.Ring().InWindow(), "attempt %d", attempt)
			}
			return s.Ring().InWindow()
		})
		require.Equal(t, battle.VerdictChallenge, s.Submit(s.Ring().Word()), "attempt %d", attempt)
		require.Equal(t, attempt, s.Director().Charge().Attempts())
	}

	s.Update(step)
	events := s.Events()
	results := kinds(events, battle.EventChargeResult)
	require.Len(t, results, 1)
	assert.True(t, results[0].Success)
	assert.Equal(t, battle.PhaseVulnerable, s.Phase())
	assert.Empty(t, kinds(events, battle.EventPlayerHit))
}

func TestChargeThenBossHitsWinBattle(t *testing.T) {
	tuning := testTuning()
	tuning.Director.PerfectDefuseToCharge = 1
	tuning.Director.ChargeRepeatCount = 2
	tuning.Boss.MaxHP = 2
	s := newTestSession(t, tuning)

	s.defuseNextBomb(t)
	require.Equal(t, battle.PhaseCharging, s.Phase())
	assert.True(t, s.Patrol().Frozen())

	s.defuseNextBomb(t)
	s.defuseNextBomb(t)
	require.Equal(t, battle.PhaseVulnerable, s.Phase())
	assert.Equal(t, 3, s.Combo().Count())

	word := s.Boss().Word().Text
	assert.Equal(t, battle.VerdictBossHit, s.Submit(word))
	assert.Equal(t, battle.VerdictBossHit, s.Submit(word))
	bossHits := kinds(s.Events(), battle.EventBossHit)
	require.Len(t, bossHits, 2)
	assert.Equal(t, 0, bossHits[1].Count)

	s.Update(step)
	assert.True(t, s.Over())
	over := kinds(s.Events(), battle.EventBattleOver)
	require.Len(t, over, 1)
	assert.Equal(t, battle.ResultWon, over[0].Result)

	assert.Equal(t, battle.VerdictEmpty, s.Submit(word))
	sum := s.Summary()
	assert.Equal(t, battle.ResultWon, sum.Result)
	assert.Equal(t, 2, sum.BossHits)
	assert.Equal(t, 1, sum.ChargesWon)
	assert.Equal(t, 5, sum.BestCombo)

	before := s.Elapsed()
	s.Update(time.Second)
	assert.Equal(t, before, s.Elapsed())
}

func TestPlayerDeathLosesBattle(t *testing.T) {
	tuning := testTuning()
	tuning.Player.MaxHP = 1
	s := newTestSession(t, tuning)

	runUntil(t, s, 20*time.Second, s.Over)
	assert.Equal(t, battle.ResultLost, s.Summary().Result)
	assert.Equal(t, 0, s.Summary().PlayerHP)
}

func TestRetuneAppliesToDirectorAndPatrol(t *testing.T) {
	s := newTestSession(t, testTuning())
	next := testTuning()
	next.Director.BombsPerInterval = 3
	next.Patrol.Range = 9

	s.Retune(next)
	assert.Equal(t, 3, s.Director().Config().BombsPerInterval)
	assert.Equal(t, 9.0, s.Tuning().Patrol.Range)
}

type spyPresenter struct {
	shows, hides int
}

func (p *spyPresenter) ShowTimingRing(string, time.Duration, float64, float64) { p.shows++ }
func (p *spyPresenter) HideTimingRing()                                        { p.hides++ }

func TestExtraPresenterMirrorsRing(t *testing.T) {
	spy := &spyPresenter{}
	lib := words.NewLibrary([]words.Word{{Text: "apple"}}, nil)
	s, err := New(testTuning(), lib, WithPresenter(spy))
	require.NoError(t, err)

	runUntil(t, s, 10*time.Second, func() bool { return s.Ring().Visible() })
	assert.Equal(t, 1, spy.shows)
}

func TestCompileOffset(t *testing.T) {
	src := []byte(`
x := 5
offset := func(t) {
	if t > 1 {
		return x(t)
	}
	return 0.25
}
`)
	fn, err := CompileOffset("test.tengo", src, zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, 0.25, fn(0.5))
	assert.InDelta(t, math.Sin(2), fn(2), 1e-9)
	assert.InDelta(t, math.Sin(0.5), fn(0.5), 1e-9, "a failed script stays on the fallback")

	_, err = CompileOffset("broken.tengo", []byte(`offset := func(t) {`), zerolog.Nop())
	assert.Error(t, err)

	_, err = CompileOffset("missing.tengo", []byte(`x := 1`), zerolog.Nop())
	assert.Error(t, err)
}

func TestLoadAssetsFromEmbeddedPrefabs(t *testing.T) {
	a, err := LoadAssets("", rand.New(rand.NewPCG(1, 1)))
	require.NoError(t, err)
	assert.Equal(t, 6, a.Tuning.Director.PerfectDefuseToCharge)
	assert.Equal(t, 2200*time.Millisecond, a.Tuning.Director.BombInterval)
	assert.Equal(t, 750*time.Millisecond, a.Tuning.Director.RepeatWordDuration)
	assert.Equal(t, 10, a.Tuning.Boss.MaxHP)
	assert.Equal(t, -3.5, a.Tuning.Player.Position.Y)
	assert.Positive(t, a.Library.Len())

	cafe, ok := a.Library.Lookup("07_cafe")
	require.True(t, ok)
	assert.Equal(t, "café", cafe.Text)

	s, err := FromAssets(a, zerolog.Nop())
	require.NoError(t, err)
	s.Update(time.Second)
	assert.LessOrEqual(t, math.Abs(s.Patrol().Position().X), a.Tuning.Patrol.Range+1e-9)
}

func TestTuningFromSpecNormalizes(t *testing.T) {
	a, err := LoadAssets("", nil)
	require.NoError(t, err)
	spec := a.Spec
	spec.Director.BombsPerInterval = -4
	spec.Director.RepeatWordGap = -1

	tuning := TuningFromSpec(spec)
	assert.Equal(t, 1, tuning.Director.BombsPerInterval)
	assert.Zero(t, tuning.Director.RepeatWordGap)
}

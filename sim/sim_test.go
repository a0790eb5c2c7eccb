package sim

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/wordtitan/battle"
	"github.com/milk9111/wordtitan/session"
)

func newSession(t *testing.T) *session.Session {
	t.Helper()
	assets, err := session.LoadAssets("", rand.New(rand.NewPCG(1, 2)))
	require.NoError(t, err)
	s, err := session.New(assets.Tuning, assets.Library, session.WithRand(rand.New(rand.NewPCG(3, 4))))
	require.NoError(t, err)
	return s
}

func TestPerfectTypistWins(t *testing.T) {
	s := newSession(t)
	typist := NewTypist(1, 60*time.Millisecond, rand.New(rand.NewPCG(5, 6)))

	var kinds []battle.EventKind
	sum := Run(s, typist, 5*time.Minute, func(evt battle.Event) { kinds = append(kinds, evt.Kind) })

	assert.Equal(t, battle.ResultWon, sum.Result)
	assert.Zero(t, sum.BossHP)
	assert.Zero(t, sum.BombsFailed)
	assert.Zero(t, sum.Misses)
	assert.Positive(t, sum.ChargesWon)
	assert.Contains(t, kinds, battle.EventBattleOver)
}

func TestHopelessTypistLoses(t *testing.T) {
	s := newSession(t)
	typist := NewTypist(0, 60*time.Millisecond, rand.New(rand.NewPCG(5, 6)))

	sum := Run(s, typist, 5*time.Minute, nil)

	assert.Equal(t, battle.ResultLost, sum.Result)
	assert.Zero(t, sum.PlayerHP)
	assert.Zero(t, sum.PerfectDefuses)
	assert.Equal(t, sum.Submissions, sum.Misses)
}

func TestRunStopsAtLimit(t *testing.T) {
	s := newSession(t)
	sum := Run(s, nil, time.Second, nil)
	assert.Equal(t, battle.ResultPending, sum.Result)
	assert.GreaterOrEqual(t, sum.Elapsed, time.Second)
	assert.Less(t, sum.Elapsed, time.Second+time.Second/30)
}

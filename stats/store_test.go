package stats

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/wordtitan/battle"
	"github.com/milk9111/wordtitan/session"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSessionLifecycle(t *testing.T) {
	s := newTestStore(t)
	id, err := s.StartSession(42)
	require.NoError(t, err)

	require.NoError(t, s.RecordEvent(id, "bomb_spawned", "phase=normal word=Apple"))
	require.NoError(t, s.RecordEvent(id, "battle_over", "phase=vulnerable result=won"))
	require.NoError(t, s.FinishSession(id, session.Summary{
		Result:         battle.ResultWon,
		Elapsed:        90 * time.Second,
		BossHP:         0,
		PlayerHP:       3,
		BestCombo:      7,
		PerfectDefuses: 6,
		Submissions:    10,
		Misses:         2,
	}))

	recent, err := s.Recent(5)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	got := recent[0]
	assert.Equal(t, id, got.ID)
	assert.Equal(t, int64(42), got.Seed)
	assert.Equal(t, "won", got.Result)
	assert.Equal(t, 90*time.Second, got.Elapsed)
	assert.Equal(t, 7, got.BestCombo)
	assert.Equal(t, 2, got.Events)
	assert.InDelta(t, 0.8, got.Accuracy(), 1e-9)
	assert.False(t, got.FinishedAt.IsZero())

	events, err := s.Events(id)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "bomb_spawned", events[0][0])
}

func TestRecentOrdersNewestFirst(t *testing.T) {
	s := newTestStore(t)
	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	var ids []uuid.UUID
	for i := 0; i < 3; i++ {
		at := base.Add(time.Duration(i) * time.Minute)
		s.now = func() time.Time { return at }
		id, err := s.StartSession(int64(i))
		require.NoError(t, err)
		ids = append(ids, id)
	}

	recent, err := s.Recent(2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, ids[2], recent[0].ID)
	assert.Equal(t, ids[1], recent[1].ID)
	assert.Equal(t, "pending", recent[0].Result)
	assert.True(t, recent[0].FinishedAt.IsZero())
}

func TestFinishUnknownSession(t *testing.T) {
	s := newTestStore(t)
	err := s.FinishSession(uuid.New(), session.Summary{})
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestRecordEventRequiresSession(t *testing.T) {
	s := newTestStore(t)
	assert.Error(t, s.RecordEvent(uuid.New(), "boss_hit", ""))
}

func TestRetryOp(t *testing.T) {
	cfg := retryConfig{maxRetries: 2, baseDelay: time.Millisecond, maxDelay: 2 * time.Millisecond}

	calls := 0
	err := retryOp(cfg, func() error {
		calls++
		if calls < 3 {
			return errors.New("database is locked")
		}
		return nil
	})
	assert.NoError(t, err)
	assert.Equal(t, 3, calls)

	calls = 0
	permanent := errors.New("no such table")
	err = retryOp(cfg, func() error {
		calls++
		return permanent
	})
	assert.ErrorIs(t, err, permanent)
	assert.Equal(t, 1, calls)
}

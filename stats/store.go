// Package stats keeps a sqlite ledger of played battles: one row per battle
// with its final summary, plus every event the battle produced.
package stats

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/milk9111/wordtitan/session"

	_ "modernc.org/sqlite"
)

var ErrSessionNotFound = errors.New("stats: session not found")

// Store wraps a WAL-mode sqlite database.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// New opens (or creates) the database at path and initializes the schema.
func New(path string) (*Store, error) {
	dsn := path + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(10000)&_pragma=synchronous(NORMAL)&_pragma=foreign_keys(1)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("stats: open %s: %w", path, err)
	}
	db.SetMaxOpenConns(1)

	s := &Store{db: db, now: func() time.Time { return time.Now().UTC() }}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("stats: migrate: %w", err)
	}
	return s, nil
}

func (s *Store) Close() error { return s.db.Close() }

func retryOnContention(fn func() error) error {
	return retryOp(defaultRetryConfig, fn)
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS sessions (
		id              TEXT PRIMARY KEY,
		seed            INTEGER NOT NULL DEFAULT 0,
		started_at      TEXT NOT NULL,
		finished_at     TEXT,
		result          TEXT NOT NULL DEFAULT 'pending',
		elapsed_ms      INTEGER NOT NULL DEFAULT 0,
		boss_hp         INTEGER NOT NULL DEFAULT 0,
		player_hp       INTEGER NOT NULL DEFAULT 0,
		best_combo      INTEGER NOT NULL DEFAULT 0,
		perfect_defuses INTEGER NOT NULL DEFAULT 0,
		bombs_failed    INTEGER NOT NULL DEFAULT 0,
		charges_won     INTEGER NOT NULL DEFAULT 0,
		charges_failed  INTEGER NOT NULL DEFAULT 0,
		boss_hits       INTEGER NOT NULL DEFAULT 0,
		submissions     INTEGER NOT NULL DEFAULT 0,
		misses          INTEGER NOT NULL DEFAULT 0
	);

	CREATE TABLE IF NOT EXISTS events (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		session_id TEXT NOT NULL REFERENCES sessions(id),
		kind       TEXT NOT NULL,
		detail     TEXT,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_events_session ON events(session_id, id);
	CREATE INDEX IF NOT EXISTS idx_sessions_started ON sessions(started_at);
	`
	_, err := s.db.Exec(schema)
	return err
}

func (s *Store) stamp() string {
	return s.now().Format(time.RFC3339Nano)
}

// StartSession opens a new battle record.
func (s *Store) StartSession(seed int64) (uuid.UUID, error) {
	id := uuid.New()
	err := retryOnContention(func() error {
		_, err := s.db.Exec(
			`INSERT INTO sessions (id, seed, started_at) VALUES (?, ?, ?)`,
			id.String(), seed, s.stamp(),
		)
		return err
	})
	if err != nil {
		return uuid.Nil, fmt.Errorf("stats: insert session: %w", err)
	}
	return id, nil
}

// RecordEvent appends one event to a battle.
func (s *Store) RecordEvent(id uuid.UUID, kind, detail string) error {
	err := retryOnContention(func() error {
		_, err := s.db.Exec(
			`INSERT INTO events (session_id, kind, detail, created_at) VALUES (?, ?, ?, ?)`,
			id.String(), kind, detail, s.stamp(),
		)
		return err
	})
	if err != nil {
		return fmt.Errorf("stats: insert event: %w", err)
	}
	return nil
}

// FinishSession stores the final summary of a battle.
func (s *Store) FinishSession(id uuid.UUID, sum session.Summary) error {
	var affected int64
	err := retryOnContention(func() error {
		res, err := s.db.Exec(
			`UPDATE sessions SET
				finished_at = ?, result = ?, elapsed_ms = ?, boss_hp = ?, player_hp = ?,
				best_combo = ?, perfect_defuses = ?, bombs_failed = ?, charges_won = ?,
				charges_failed = ?, boss_hits = ?, submissions = ?, misses = ?
			 WHERE id = ?`,
			s.stamp(), sum.Result.String(), sum.Elapsed.Milliseconds(), sum.BossHP, sum.PlayerHP,
			sum.BestCombo, sum.PerfectDefuses, sum.BombsFailed, sum.ChargesWon,
			sum.ChargesFailed, sum.BossHits, sum.Submissions, sum.Misses,
			id.String(),
		)
		if err != nil {
			return err
		}
		affected, err = res.RowsAffected()
		return err
	})
	if err != nil {
		return fmt.Errorf("stats: finish session: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	return nil
}

// Summary is one stored battle.
type Summary struct {
	ID             uuid.UUID
	Seed           int64
	StartedAt      time.Time
	FinishedAt     time.Time
	Result         string
	Elapsed        time.Duration
	BossHP         int
	PlayerHP       int
	BestCombo      int
	PerfectDefuses int
	BombsFailed    int
	ChargesWon     int
	ChargesFailed  int
	BossHits       int
	Submissions    int
	Misses         int
	Events         int
}

// Accuracy is the share of counted submissions that were not misses.
func (s Summary) Accuracy() float64 {
	if s.Submissions == 0 {
		return 0
	}
	return float64(s.Submissions-s.Misses) / float64(s.Submissions)
}

// Recent returns up to n battles, newest first. n <= 0 means 10.
func (s *Store) Recent(n int) ([]Summary, error) {
	if n <= 0 {
		n = 10
	}
	rows, err := s.db.Query(
		`SELECT s.id, s.seed, s.started_at, COALESCE(s.finished_at, ''), s.result, s.elapsed_ms,
			s.boss_hp, s.player_hp, s.best_combo, s.perfect_defuses, s.bombs_failed,
			s.charges_won, s.charges_failed, s.boss_hits, s.submissions, s.misses,
			(SELECT COUNT(*) FROM events e WHERE e.session_id = s.id)
		 FROM sessions s
		 ORDER BY s.started_at DESC, s.rowid DESC
		 LIMIT ?`, n,
	)
	if err != nil {
		return nil, fmt.Errorf("stats: query sessions: %w", err)
	}
	defer rows.Close()

	var out []Summary
	for rows.Next() {
		sum, err := scanSummary(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, sum)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("stats: query sessions: %w", err)
	}
	return out, nil
}

// Events returns the kinds and details recorded for one battle, oldest first.
func (s *Store) Events(id uuid.UUID) ([][2]string, error) {
	rows, err := s.db.Query(`SELECT kind, COALESCE(detail, '') FROM events WHERE session_id = ? ORDER BY id`, id.String())
	if err != nil {
		return nil, fmt.Errorf("stats: query events: %w", err)
	}
	defer rows.Close()

	var out [][2]string
	for rows.Next() {
		var kind, detail string
		if err := rows.Scan(&kind, &detail); err != nil {
			return nil, fmt.Errorf("stats: scan event: %w", err)
		}
		out = append(out, [2]string{kind, detail})
	}
	return out, rows.Err()
}

func scanSummary(rows *sql.Rows) (Summary, error) {
	var (
		sum                 Summary
		id, started, finish string
		elapsedMS           int64
	)
	err := rows.Scan(&id, &sum.Seed, &started, &finish, &sum.Result, &elapsedMS,
		&sum.BossHP, &sum.PlayerHP, &sum.BestCombo, &sum.PerfectDefuses, &sum.BombsFailed,
		&sum.ChargesWon, &sum.ChargesFailed, &sum.BossHits, &sum.Submissions, &sum.Misses,
		&sum.Events)
	if err != nil {
		return Summary{}, fmt.Errorf("stats: scan session: %w", err)
	}
	if sum.ID, err = uuid.Parse(id); err != nil {
		return Summary{}, fmt.Errorf("stats: parse session id %q: %w", id, err)
	}
	sum.StartedAt, _ = time.Parse(time.RFC3339Nano, started)
	if finish != "" {
		sum.FinishedAt, _ = time.Parse(time.RFC3339Nano, finish)
	}
	sum.Elapsed = time.Duration(elapsedMS) * time.Millisecond
	return sum, nil
}

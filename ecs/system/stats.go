package system

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/milk9111/wordtitan/battle"
	"github.com/milk9111/wordtitan/ecs"
	"github.com/milk9111/wordtitan/session"
)

// Recorder persists one battle. stats.Store satisfies it.
type Recorder interface {
	RecordEvent(id uuid.UUID, kind, detail string) error
	FinishSession(id uuid.UUID, sum session.Summary) error
}

// StatsSystem writes every battle and submission event of the frame to a
// Recorder and closes the session record when the battle ends. It must run
// after the systems that push those events.
type StatsSystem struct {
	rec  Recorder
	id   uuid.UUID
	sess *session.Session
	log  zerolog.Logger
	done bool
}

func NewStatsSystem(rec Recorder, id uuid.UUID, sess *session.Session, log zerolog.Logger) *StatsSystem {
	return &StatsSystem{rec: rec, id: id, sess: sess, log: log.With().Str("component", "stats").Logger()}
}

func (s *StatsSystem) Update(w *ecs.World) {
	if s == nil || w == nil || s.rec == nil || s.done {
		return
	}

	w.Events().Each("", func(evt ecs.Event) {
		if s.done {
			return
		}
		var detail string
		switch data := evt.Data.(type) {
		case battle.Event:
			detail = DescribeEvent(data)
		case battle.Verdict:
			detail = data.String()
		default:
			return
		}
		if err := s.rec.RecordEvent(s.id, evt.Type, detail); err != nil {
			s.log.Error().Err(err).Str("kind", evt.Type).Msg("record event")
		}
		if evt.Type == string(battle.EventBattleOver) {
			s.finish()
		}
	})
}

func (s *StatsSystem) finish() {
	s.done = true
	if err := s.rec.FinishSession(s.id, s.sess.Summary()); err != nil {
		s.log.Error().Err(err).Msg("finish session")
	}
}

// DescribeEvent renders the fields of evt that apply to its kind as
// space-separated key=value pairs.
func DescribeEvent(evt battle.Event) string {
	var b strings.Builder
	field := func(k string, v any) {
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%s=%v", k, v)
	}
	field("phase", evt.Phase)
	switch evt.Kind {
	case battle.EventPhaseChanged:
		field("from", evt.From)
	case battle.EventBombSpawned, battle.EventChargeStarted:
		field("word", evt.Word)
	case battle.EventBombResolved, battle.EventChargeResult:
		field("success", evt.Success)
		if evt.Success {
			field("perfect", evt.Perfect)
		} else {
			field("reason", evt.Reason)
		}
	case battle.EventChargeRepeat:
		field("count", evt.Count)
	case battle.EventPlayerHit, battle.EventBossHit:
		field("damage", evt.Damage)
		field("hp", evt.Count)
	case battle.EventBattleOver:
		field("result", evt.Result)
	}
	return b.String()
}

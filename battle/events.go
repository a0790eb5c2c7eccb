package battle

import (
	"github.com/milk9111/wordtitan/challenge"
)

type EventKind string

const (
	EventPhaseChanged  EventKind = "phase_changed"
	EventBombSpawned   EventKind = "bomb_spawned"
	EventBombResolved  EventKind = "bomb_resolved"
	EventChargeStarted EventKind = "charge_started"
	EventChargeRepeat  EventKind = "charge_repeat"
	EventChargeResult  EventKind = "charge_result"
	EventPlayerHit     EventKind = "player_hit"
	EventBossHit       EventKind = "boss_hit"
	EventBattleOver    EventKind = "battle_over"
)

// Event is one thing that happened during a battle. Fields that do not apply
// to a kind are left zero.
type Event struct {
	Kind    EventKind
	From    Phase
	Phase   Phase
	Word    string
	Success bool
	Perfect bool
	Reason  challenge.FailReason
	Damage  int
	Count   int
	Result  Result
}

// eventLog is a FIFO the owner drains once per frame.
type eventLog struct {
	items []Event
}

func (l *eventLog) push(evt Event) {
	l.items = append(l.items, evt)
}

func (l *eventLog) drain() []Event {
	if len(l.items) == 0 {
		return nil
	}
	out := l.items
	l.items = nil
	return out
}

package system

import (
	"strings"
	"unicode"

	"github.com/milk9111/wordtitan/battle"
	"github.com/milk9111/wordtitan/ecs"
	"github.com/milk9111/wordtitan/ecs/component"
	"github.com/milk9111/wordtitan/session"
)

// EventSubmission is pushed once per submitted line with the Verdict as data.
const EventSubmission = "submission"

// KeySource is the per-tick keyboard state the typing system reads.
type KeySource interface {
	// AppendChars appends the characters typed since the last tick.
	AppendChars(dst []rune) []rune
	Backspace() bool
	Submit() bool
	// Paste returns text to insert, or "" when nothing was pasted.
	Paste() string
}

// TypingInputSystem edits the HUD typing buffer from a KeySource and submits
// finished lines to the session.
type TypingInputSystem struct {
	sess *session.Session
	keys KeySource

	MaxLen      int
	ShakeFrames int

	scratch []rune
}

func NewTypingInputSystem(sess *session.Session, keys KeySource) *TypingInputSystem {
	return &TypingInputSystem{sess: sess, keys: keys, MaxLen: 32, ShakeFrames: 12}
}

func (s *TypingInputSystem) Update(w *ecs.World) {
	if s == nil || w == nil || s.keys == nil {
		return
	}

	e, ok := ecs.First(w, component.TypingBufferComponent.Kind())
	if !ok {
		return
	}
	buf, _ := ecs.Get(w, e, component.TypingBufferComponent.Kind())
	if buf.Shake > 0 {
		buf.Shake--
	}
	if s.sess == nil || s.sess.Over() {
		return
	}

	s.scratch = s.keys.AppendChars(s.scratch[:0])
	if pasted := s.keys.Paste(); pasted != "" {
		s.scratch = append(s.scratch, []rune(strings.TrimSpace(pasted))...)
	}
	for _, r := range s.scratch {
		if !unicode.IsPrint(r) || len(buf.Text) >= s.MaxLen {
			continue
		}
		buf.Text = append(buf.Text, r)
	}

	if s.keys.Backspace() && len(buf.Text) > 0 {
		buf.Text = buf.Text[:len(buf.Text)-1]
	}

	if !s.keys.Submit() {
		return
	}
	verdict := s.sess.Submit(string(buf.Text))
	if verdict == battle.VerdictEmpty {
		return
	}
	buf.Text = buf.Text[:0]
	buf.Verdict = verdict.String()
	if verdict == battle.VerdictRejected || verdict == battle.VerdictMiss {
		buf.Shake = s.ShakeFrames
	}
	w.Events().Push(ecs.Event{Type: EventSubmission, Data: verdict})
}

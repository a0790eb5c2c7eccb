package battle

import (
	"github.com/milk9111/wordtitan/challenge"
	"github.com/milk9111/wordtitan/wordmatch"
)

// Verdict says where a submission went.
type Verdict int

const (
	VerdictEmpty Verdict = iota
	// VerdictChallenge means the slot claimant consumed the input.
	VerdictChallenge
	// VerdictRejected means a claimant held the slot but did not want the
	// input. Front ends shake the input box.
	VerdictRejected
	// VerdictBossHit means the boss word matched and damage landed.
	VerdictBossHit
	// VerdictBossBlocked means the boss word matched outside the damage window.
	VerdictBossBlocked
	// VerdictFallback means the fallback handler took the input.
	VerdictFallback
	VerdictMiss
)

func (v Verdict) String() string {
	switch v {
	case VerdictChallenge:
		return "challenge"
	case VerdictRejected:
		return "rejected"
	case VerdictBossHit:
		return "boss_hit"
	case VerdictBossBlocked:
		return "boss_blocked"
	case VerdictFallback:
		return "fallback"
	case VerdictMiss:
		return "miss"
	default:
		return "empty"
	}
}

// Taken reports whether some handler accepted the input.
func (v Verdict) Taken() bool {
	switch v {
	case VerdictChallenge, VerdictBossHit, VerdictBossBlocked, VerdictFallback:
		return true
	}
	return false
}

// Typing routes player submissions: the active challenge first, then the
// boss word, then an optional fallback (ordinary typed enemies).
type Typing struct {
	slot     *challenge.Slot
	boss     *Boss
	fallback func(normalized string) bool
}

func NewTyping(slot *challenge.Slot, boss *Boss) *Typing {
	return &Typing{slot: slot, boss: boss}
}

// SetFallback installs the handler tried when nothing else wants the input.
func (t *Typing) SetFallback(fn func(normalized string) bool) {
	if t == nil {
		return
	}
	t.fallback = fn
}

// Submit routes one typed submission.
func (t *Typing) Submit(raw string) Verdict {
	if t == nil {
		return VerdictEmpty
	}
	normalized := wordmatch.Letters(raw)
	if normalized == "" {
		return VerdictEmpty
	}
	return t.route(normalized)
}

// SubmitSpeech routes a recognized utterance, trying each spoken token, then
// the whole utterance, then the utterance without spaces.
func (t *Typing) SubmitSpeech(utterance string) Verdict {
	if t == nil {
		return VerdictEmpty
	}
	candidates := wordmatch.Candidates(utterance)
	if len(candidates) == 0 {
		return VerdictEmpty
	}
	last := VerdictMiss
	for _, c := range candidates {
		last = t.route(c)
		if last.Taken() {
			return last
		}
	}
	return last
}

func (t *Typing) route(normalized string) Verdict {
	if t.slot.Claimed() {
		if t.slot.Submit(normalized) {
			return VerdictChallenge
		}
		return VerdictRejected
	}
	if t.boss != nil && t.boss.IsMatch(normalized) {
		if t.boss.OnCorrectHit() {
			return VerdictBossHit
		}
		return VerdictBossBlocked
	}
	if t.fallback != nil && t.fallback(normalized) {
		return VerdictFallback
	}
	return VerdictMiss
}

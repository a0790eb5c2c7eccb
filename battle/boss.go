package battle

import (
	"github.com/milk9111/wordtitan/wordmatch"
	"github.com/milk9111/wordtitan/words"
)

type BossConfig struct {
	MaxHP        int
	DamagePerHit int
}

func DefaultBossConfig() BossConfig {
	return BossConfig{MaxHP: 10, DamagePerHit: 1}
}

// Boss holds the boss's health, the phase the director last pushed to it and
// the word the player types to hit it. Damage is accepted only while the
// pushed phase is vulnerable.
type Boss struct {
	cfg    BossConfig
	health *Health
	phase  BossPhase
	words  words.Source
	word   *words.Word
}

func NewBoss(cfg BossConfig, src words.Source) *Boss {
	if cfg.DamagePerHit < 1 {
		cfg.DamagePerHit = 1
	}
	b := &Boss{cfg: cfg, words: src, phase: BossInactive}
	b.health = NewHealth(cfg.MaxHP, b)
	b.RerollWord()
	return b
}

// SetPhase records the phase pushed by the director. Entering vulnerable
// draws a fresh word. A dead boss stays dead.
func (b *Boss) SetPhase(p BossPhase) {
	if b == nil || b.health.IsDead() {
		return
	}
	b.phase = p
	if p == BossVulnerable {
		b.RerollWord()
	}
}

// Phase returns the last pushed phase, or BossDead once health is gone.
func (b *Boss) Phase() BossPhase {
	if b == nil {
		return BossInactive
	}
	if b.health.IsDead() {
		return BossDead
	}
	return b.phase
}

func (b *Boss) IsVulnerableNow() bool {
	return b.Phase() == BossVulnerable
}

// CanTakeDamage implements DamageGate.
func (b *Boss) CanTakeDamage(amount int) bool {
	return amount > 0 && b.IsVulnerableNow()
}

func (b *Boss) Health() *Health {
	if b == nil {
		return nil
	}
	return b.health
}

func (b *Boss) IsDead() bool { return b != nil && b.health.IsDead() }

func (b *Boss) Word() *words.Word {
	if b == nil {
		return nil
	}
	return b.word
}

// SetWordSource swaps the vocabulary used for rerolls.
func (b *Boss) SetWordSource(src words.Source) {
	if b == nil {
		return
	}
	b.words = src
	if b.word == nil {
		b.RerollWord()
	}
}

func (b *Boss) RerollWord() {
	if b == nil || b.words == nil {
		return
	}
	if w := b.words.RandomWord(); w != nil {
		b.word = w
	}
}

// IsMatch compares letters-only forms of raw and the current word.
func (b *Boss) IsMatch(raw string) bool {
	if b == nil || b.word == nil {
		return false
	}
	return wordmatch.Equal(wordmatch.Letters(raw), b.word.Normalized())
}

// OnCorrectHit lands one typing hit if the boss is vulnerable and rerolls the
// word either way. It reports whether damage landed.
func (b *Boss) OnCorrectHit() bool {
	if b == nil || b.health.IsDead() {
		return false
	}
	landed := b.health.TakeDamage(b.cfg.DamagePerHit)
	if !b.health.IsDead() {
		b.RerollWord()
	}
	return landed
}

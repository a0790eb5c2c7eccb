package battle

import (
	"testing"
	"time"

	"github.com/jakecoffman/cp"
	"github.com/stretchr/testify/assert"

	"github.com/milk9111/wordtitan/challenge"
	"github.com/milk9111/wordtitan/words"
)

func TestTypingRoutesToClaimantFirst(t *testing.T) {
	slot := challenge.NewSlot()
	boss := NewBoss(DefaultBossConfig(), fixedWords{"apple"})
	boss.SetPhase(BossVulnerable)
	typing := NewTyping(slot, boss)

	bomb := NewBomb(&words.Word{Text: "apple"}, cp.Vector{}, staticBombConfig(), BombDeps{Slot: slot})
	bomb.Arm()
	bomb.Update(450*time.Millisecond, farAway())

	assert.Equal(t, VerdictChallenge, typing.Submit("apple"))
	assert.True(t, bomb.Resolved())
	assert.Equal(t, 10, boss.Health().Current(), "claimant wins over the boss word")

	assert.Equal(t, VerdictBossHit, typing.Submit("apple"))
	assert.Equal(t, 9, boss.Health().Current())
}

func TestTypingRejectsWhileClaimed(t *testing.T) {
	slot := challenge.NewSlot()
	boss := NewBoss(DefaultBossConfig(), fixedWords{"pear"})
	boss.SetPhase(BossVulnerable)
	typing := NewTyping(slot, boss)
	fallbackCalls := 0
	typing.SetFallback(func(string) bool {
		fallbackCalls++
		return true
	})

	bomb := NewBomb(&words.Word{Text: "apple"}, cp.Vector{}, staticBombConfig(), BombDeps{Slot: slot})
	bomb.Arm()

	assert.Equal(t, VerdictRejected, typing.Submit("pear"))
	assert.Equal(t, 10, boss.Health().Current())
	assert.Zero(t, fallbackCalls)
}

func TestTypingFallbackAndMiss(t *testing.T) {
	slot := challenge.NewSlot()
	boss := NewBoss(DefaultBossConfig(), fixedWords{"apple"})
	typing := NewTyping(slot, boss)

	assert.Equal(t, VerdictEmpty, typing.Submit("  !! "))
	assert.Equal(t, VerdictBossBlocked, typing.Submit("apple"))
	assert.Equal(t, VerdictMiss, typing.Submit("kiwi"))

	typing.SetFallback(func(n string) bool { return n == "kiwi" })
	assert.Equal(t, VerdictFallback, typing.Submit("Kiwi"))
	assert.Equal(t, VerdictMiss, typing.Submit("plum"))
}

func TestTypingSpeechTriesEachCandidate(t *testing.T) {
	slot := challenge.NewSlot()
	boss := NewBoss(DefaultBossConfig(), fixedWords{"icecream"})
	boss.SetPhase(BossVulnerable)
	typing := NewTyping(slot, boss)

	assert.Equal(t, VerdictBossHit, typing.SubmitSpeech("ice cream"))
	assert.Equal(t, VerdictMiss, typing.SubmitSpeech("banana split"))
	assert.Equal(t, VerdictEmpty, typing.SubmitSpeech("   "))
}

func TestVerdictTaken(t *testing.T) {
	taken := map[Verdict]bool{
		VerdictEmpty:       false,
		VerdictChallenge:   true,
		VerdictRejected:    false,
		VerdictBossHit:     true,
		VerdictBossBlocked: true,
		VerdictFallback:    true,
		VerdictMiss:        false,
	}
	for v, want := range taken {
		assert.Equal(t, want, v.Taken(), v.String())
	}
}

func TestComboModes(t *testing.T) {
	c := NewCombo(DefaultComboConfig())
	assert.Equal(t, ShotSingle, c.Mode())
	assert.Equal(t, 1.0, c.Multiplier())

	for i := 0; i < 5; i++ {
		c.Hit()
	}
	assert.Equal(t, ShotDouble, c.Mode())
	assert.InDelta(t, 1.25, c.Multiplier(), 1e-9)

	for i := 0; i < 25; i++ {
		c.Hit()
	}
	assert.Equal(t, ShotSpread, c.Mode())
	assert.Equal(t, 2.0, c.Multiplier())

	c.Break()
	assert.Zero(t, c.Count())
	assert.Equal(t, 30, c.Best())
	assert.Equal(t, ShotSingle, c.Mode())
}

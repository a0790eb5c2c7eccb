package challenge

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type recordingChallenge struct {
	name    string
	inputs  []string
	consume bool
}

func (c *recordingChallenge) TryConsume(normalized string) bool {
	c.inputs = append(c.inputs, normalized)
	return c.consume
}

func TestSlotEmptySubmitFallsThrough(t *testing.T) {
	s := NewSlot()
	assert.False(t, s.Submit("apple"))
	assert.False(t, s.Claimed())

	var nilSlot *Slot
	assert.False(t, nilSlot.Submit("apple"))
}

func TestSlotForwardsClaimantResult(t *testing.T) {
	s := NewSlot()
	c := &recordingChallenge{consume: false}
	s.Claim(c, nil)

	assert.False(t, s.Submit("pear"))
	c.consume = true
	assert.True(t, s.Submit("apple"))
	assert.Equal(t, []string{"pear", "apple"}, c.inputs)
	assert.Same(t, c, s.Owner())
}

func TestSlotNewestClaimWins(t *testing.T) {
	s := NewSlot()
	a := &recordingChallenge{name: "a", consume: true}
	b := &recordingChallenge{name: "b", consume: true}
	ownerA, ownerB := &struct{ n int }{1}, &struct{ n int }{2}

	s.Claim(a, ownerA)
	s.Claim(b, ownerB)
	assert.True(t, s.Submit("x"))
	assert.Empty(t, a.inputs)
	assert.Equal(t, []string{"x"}, b.inputs)

	assert.False(t, s.ReleaseByOwner(ownerA), "superseded owner must not clear the newer claim")
	assert.True(t, s.Claimed())
	assert.False(t, s.Release(a))
	assert.True(t, s.Claimed())

	assert.True(t, s.ReleaseByOwner(ownerB))
	assert.False(t, s.Claimed())
	assert.False(t, s.ReleaseByOwner(ownerB))
}

func TestSlotReleaseByChallenge(t *testing.T) {
	s := NewSlot()
	c := &recordingChallenge{}
	s.Claim(c, "owner")
	assert.True(t, s.Release(c))
	assert.Nil(t, s.Current())
}

func TestSlotNilClaimClears(t *testing.T) {
	s := NewSlot()
	s.Claim(&recordingChallenge{}, nil)
	s.Claim(nil, nil)
	assert.False(t, s.Claimed())
}

package battle

import (
	"testing"
	"time"

	"github.com/jakecoffman/cp"
	"github.com/stretchr/testify/assert"
)

type gateFunc func(int) bool

func (g gateFunc) CanTakeDamage(amount int) bool { return g(amount) }

func TestHealthTakeDamage(t *testing.T) {
	tests := []struct {
		name    string
		max     int
		gate    DamageGate
		hits    []int
		want    int
		wantDie bool
	}{
		{name: "plain", max: 5, hits: []int{1, 2}, want: 2},
		{name: "ignores non-positive", max: 5, hits: []int{0, -3}, want: 5},
		{name: "clamps at zero", max: 3, hits: []int{10}, want: 0, wantDie: true},
		{name: "gate blocks", max: 3, gate: gateFunc(func(int) bool { return false }), hits: []int{1}, want: 3},
		{name: "max raised to one", max: 0, hits: []int{1}, want: 0, wantDie: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHealth(tt.max, tt.gate)
			for _, hit := range tt.hits {
				h.TakeDamage(hit)
			}
			assert.Equal(t, tt.want, h.Current())
			assert.Equal(t, tt.wantDie, h.IsDead())
		})
	}
}

func TestHealthObservers(t *testing.T) {
	h := NewHealth(3, nil)
	var order []string
	var changes []HealthChange
	first := h.Subscribe(func(c HealthChange) {
		order = append(order, "first")
		changes = append(changes, c)
	})
	h.Subscribe(func(HealthChange) { order = append(order, "second") })

	h.TakeDamage(1)
	assert.Equal(t, []string{"first", "second"}, order)
	assert.Equal(t, HealthChange{Current: 2, Max: 3, Amount: 1}, changes[0])

	assert.True(t, h.Unsubscribe(first))
	assert.False(t, h.Unsubscribe(first))
	h.TakeDamage(5)
	assert.Equal(t, []string{"first", "second", "second"}, order)
	assert.Len(t, changes, 1)

	h.TakeDamage(1)
	assert.Len(t, order, 3, "dead pools stay quiet")
}

func TestHealthObserverMayUnsubscribeDuringNotify(t *testing.T) {
	h := NewHealth(3, nil)
	calls := 0
	var id int
	id = h.Subscribe(func(HealthChange) {
		calls++
		h.Unsubscribe(id)
	})
	h.TakeDamage(1)
	h.TakeDamage(1)
	assert.Equal(t, 1, calls)
}

func TestPlayerInvincibility(t *testing.T) {
	p := NewPlayerHealth(PlayerConfig{MaxHP: 5, InvincibleTime: 300 * time.Millisecond})

	assert.True(t, p.TakeDamage(1))
	assert.True(t, p.Invincible())
	assert.False(t, p.TakeDamage(1))
	assert.Equal(t, 4, p.Health().Current())

	p.Update(200 * time.Millisecond)
	assert.False(t, p.TakeDamage(1))
	p.Update(100 * time.Millisecond)
	assert.False(t, p.Invincible())
	assert.True(t, p.TakeDamage(2))
	assert.Equal(t, 2, p.Health().Current())
}

func TestPlayerReset(t *testing.T) {
	start := cp.Vector{X: 1, Y: -2}
	p := NewPlayerHealth(PlayerConfig{MaxHP: 2, InvincibleTime: time.Second, Position: start})
	p.SetPosition(cp.Vector{X: 9, Y: 9})
	p.TakeDamage(2)
	assert.True(t, p.IsDead())

	p.Reset()
	assert.False(t, p.IsDead())
	assert.False(t, p.Invincible())
	assert.Equal(t, 2, p.Health().Current())
	assert.Equal(t, start, p.Position())
}

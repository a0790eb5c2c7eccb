package battle

// DamageGate decides whether an incoming hit may land.
type DamageGate interface {
	CanTakeDamage(amount int) bool
}

// HealthChange is delivered to health observers after every accepted hit.
type HealthChange struct {
	Current int
	Max     int
	Amount  int
	Died    bool
}

type healthObserver struct {
	id int
	fn func(HealthChange)
}

// Health is a hit-point pool with one-shot death and an optional gate.
type Health struct {
	max       int
	current   int
	dead      bool
	gate      DamageGate
	observers []healthObserver
	nextID    int
}

func NewHealth(max int, gate DamageGate) *Health {
	h := &Health{gate: gate}
	h.Reset(max)
	return h
}

// Reset refills the pool. Max is raised to at least 1.
func (h *Health) Reset(max int) {
	if h == nil {
		return
	}
	if max < 1 {
		max = 1
	}
	h.max = max
	h.current = max
	h.dead = false
}

// TakeDamage applies amount if the pool is alive, the amount is positive and
// the gate allows it. It reports whether damage landed.
func (h *Health) TakeDamage(amount int) bool {
	if h == nil || h.dead || amount <= 0 {
		return false
	}
	if h.gate != nil && !h.gate.CanTakeDamage(amount) {
		return false
	}
	h.current -= amount
	if h.current < 0 {
		h.current = 0
	}
	died := h.current == 0
	if died {
		h.dead = true
	}
	h.notify(HealthChange{Current: h.current, Max: h.max, Amount: amount, Died: died})
	return true
}

// Subscribe registers fn and returns an id for Unsubscribe. Observers run in
// registration order.
func (h *Health) Subscribe(fn func(HealthChange)) int {
	if h == nil || fn == nil {
		return 0
	}
	h.nextID++
	h.observers = append(h.observers, healthObserver{id: h.nextID, fn: fn})
	return h.nextID
}

// Unsubscribe removes an observer. Unknown ids are ignored.
func (h *Health) Unsubscribe(id int) bool {
	if h == nil {
		return false
	}
	for i, o := range h.observers {
		if o.id == id {
			h.observers = append(h.observers[:i:i], h.observers[i+1:]...)
			return true
		}
	}
	return false
}

func (h *Health) notify(change HealthChange) {
	observers := append([]healthObserver(nil), h.observers...)
	for _, o := range observers {
		o.fn(change)
	}
}

func (h *Health) Current() int {
	if h == nil {
		return 0
	}
	return h.current
}

func (h *Health) Max() int {
	if h == nil {
		return 0
	}
	return h.max
}

func (h *Health) IsDead() bool { return h != nil && h.dead }

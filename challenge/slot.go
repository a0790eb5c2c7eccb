package challenge

// Challenge is anything that can claim the input slot. TryConsume receives
// letters-normalized input and reports whether the input was spent.
type Challenge interface {
	TryConsume(normalized string) bool
}

// Slot arbitrates which challenge sees the next submission. At most one claim
// exists; a new claim silently replaces the old one. Owners are compared with
// ==, so they must be comparable values (pointers in practice).
type Slot struct {
	current Challenge
	owner   any
}

func NewSlot() *Slot {
	return &Slot{}
}

// Claim installs c as the current claimant. A nil owner means c owns itself.
func (s *Slot) Claim(c Challenge, owner any) {
	if s == nil {
		return
	}
	if c == nil {
		s.current, s.owner = nil, nil
		return
	}
	if owner == nil {
		owner = c
	}
	s.current, s.owner = c, owner
}

// Submit forwards normalized input to the claimant. It returns false when
// nothing holds the slot.
func (s *Slot) Submit(normalized string) bool {
	if s == nil || s.current == nil {
		return false
	}
	return s.current.TryConsume(normalized)
}

// ReleaseByOwner clears the claim only if owner still holds it.
func (s *Slot) ReleaseByOwner(owner any) bool {
	if s == nil || s.current == nil || owner == nil || s.owner != owner {
		return false
	}
	s.current, s.owner = nil, nil
	return true
}

// Release clears the claim only if c is still the claimant.
func (s *Slot) Release(c Challenge) bool {
	if s == nil || s.current == nil || c == nil || s.current != c {
		return false
	}
	s.current, s.owner = nil, nil
	return true
}

func (s *Slot) Claimed() bool {
	return s != nil && s.current != nil
}

func (s *Slot) Current() Challenge {
	if s == nil {
		return nil
	}
	return s.current
}

func (s *Slot) Owner() any {
	if s == nil {
		return nil
	}
	return s.owner
}

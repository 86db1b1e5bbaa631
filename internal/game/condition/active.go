package condition

// Permanent is the duration of a condition that never expires by ticking.
const Permanent = -1

// Set tracks the conditions applied to one actor. Membership is a fixed
// array lookup over the closed ID range.
//
// A Set is not safe for concurrent use; the caller must serialise access.
type Set struct {
	active [Count]bool
	turns  [Count]int
}

// Apply adds the condition or extends its duration.
//
// Precondition: 0 <= id < Count.
// Postcondition: Has(id) is true; the remaining duration is the longer of the
// existing and the new one, Permanent winning over any finite duration.
func (s *Set) Apply(id ID, turns int) {
	if s.active[id] {
		if s.turns[id] == Permanent {
			return
		}
		if turns == Permanent || turns > s.turns[id] {
			s.turns[id] = turns
		}
		return
	}
	s.active[id] = true
	s.turns[id] = turns
}

// TryApply applies id unless an active resistance prevents it. It reports
// whether the condition was applied.
func (s *Set) TryApply(id ID, turns int) bool {
	if id == Burning && s.active[RFire] {
		return false
	}
	s.Apply(id, turns)
	return true
}

// Remove clears the condition. Removing an absent condition is a no-op.
//
// Postcondition: Has(id) is false.
func (s *Set) Remove(id ID) {
	s.active[id] = false
	s.turns[id] = 0
}

// Has reports whether id is active.
func (s *Set) Has(id ID) bool {
	return s.active[id]
}

// TurnsLeft returns the remaining duration of id, Permanent, or 0 if absent.
func (s *Set) TurnsLeft(id ID) int {
	return s.turns[id]
}

// Tick counts every timed condition down by one turn and removes the ones
// that run out.
//
// Postcondition: For every id in the returned slice, Has(id) is false.
func (s *Set) Tick() []ID {
	var expired []ID
	for id := range Count {
		if !s.active[id] || s.turns[id] == Permanent {
			continue
		}
		s.turns[id]--
		if s.turns[id] <= 0 {
			s.Remove(id)
			expired = append(expired, id)
		}
	}
	return expired
}

// All returns the active conditions in ID order.
func (s *Set) All() []ID {
	var out []ID
	for id := range Count {
		if s.active[id] {
			out = append(out, id)
		}
	}
	return out
}

package controller

// Slot is a single-slot delayed-task scheduler: arming it invalidates any
// previously armed generation, so of all timers ever scheduled only the most
// recent one can fire. The host owns the actual clock (tea.Tick in the TUI)
// and feeds the generation back when the delay elapses.
type Slot struct {
	gen   int
	armed bool
}

// Arm registers a new pending task and returns its generation token. Any
// earlier generation becomes stale immediately.
func (s *Slot) Arm() int {
	s.gen++
	s.armed = true
	return s.gen
}

// Live consumes the slot if gen is the currently armed generation. Stale or
// cancelled generations return false and leave the slot untouched.
func (s *Slot) Live(gen int) bool {
	if !s.armed || gen != s.gen {
		return false
	}
	s.armed = false
	return true
}

// Cancel discards the pending task, if any.
func (s *Slot) Cancel() {
	s.armed = false
}

// Pending reports whether a task is armed and not yet fired.
func (s *Slot) Pending() bool {
	return s.armed
}

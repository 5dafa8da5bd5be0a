package model

// Phase identifies the kind of interval currently being timed.
type Phase string

const (
	PhaseWork       Phase = "work"
	PhaseShortBreak Phase = "short_break"
	PhaseLongBreak  Phase = "long_break"
)

// Valid reports whether p is one of the three known phases.
func (p Phase) Valid() bool {
	switch p {
	case PhaseWork, PhaseShortBreak, PhaseLongBreak:
		return true
	}
	return false
}

// DisplayName returns a human readable phase name.
func (p Phase) DisplayName() string {
	switch p {
	case PhaseWork:
		return "Work"
	case PhaseShortBreak:
		return "Short Break"
	case PhaseLongBreak:
		return "Long Break"
	}
	return string(p)
}

// Next returns the phase that follows p. cycleCount is the number of
// completed work phases including the one that just finished; every
// cyclesUntilLongBreak-th work completion leads into a long break, and
// every break leads back to work.
func (p Phase) Next(cycleCount, cyclesUntilLongBreak int) Phase {
	if p != PhaseWork {
		return PhaseWork
	}
	if cyclesUntilLongBreak > 0 && cycleCount%cyclesUntilLongBreak == 0 {
		return PhaseLongBreak
	}
	return PhaseShortBreak
}

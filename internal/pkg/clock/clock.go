package clock

import "time"

// Clock abstracts the server clock so lifecycle rules can be tested against
// fixed instants.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// System returns the wall clock.
func System() Clock {
	return systemClock{}
}

// Fixed is a clock pinned to a settable instant.
type Fixed struct {
	Current time.Time
}

func (f *Fixed) Now() time.Time { return f.Current }

// Advance moves the fixed clock forward.
func (f *Fixed) Advance(d time.Duration) {
	f.Current = f.Current.Add(d)
}

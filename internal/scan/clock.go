package scan

import "time"

// Clock abstracts wall time so that dwell pacing and the persistence slot are
// deterministic under test. Now must be monotonic non-decreasing.
type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
}

// SystemClock returns a Clock backed by the runtime clock.
func SystemClock() Clock {
	return systemClock{}
}

type systemClock struct{}

func (systemClock) Now() time.Time        { return time.Now() }
func (systemClock) Sleep(d time.Duration) { time.Sleep(d) }

package kernel

import "time"

// Clock returns the current instant. Handlers and jobs receive one so tests
// can pin time.
type Clock func() time.Time

// SystemClock reports wall time in UTC.
func SystemClock() Clock {
	return func() time.Time {
		return time.Now().UTC()
	}
}

// FixedClock always reports t.
func FixedClock(t time.Time) Clock {
	return func() time.Time {
		return t
	}
}

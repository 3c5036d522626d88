package core

import "time"

// Clock abstracts wall-clock access so progress and ETA math can be driven
// by a scripted clock in tests.
type Clock func() time.Time

// SystemClock reads the real wall clock.
func SystemClock() time.Time {
	return time.Now()
}

package engine

import "time"

// Clock abstracts wall-clock reads so reconciliation and tick logic can be
// tested against simulated time.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the real wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}

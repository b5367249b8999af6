package engine

import "time"

// Clock abstracts time.Now() so the card clock and the birthday feed can be
// tested at a fixed instant.
type Clock interface {
	Now() time.Time
}

// RealClock implements Clock using the standard time package.
type RealClock struct{}

// Now returns the current local time.
func (RealClock) Now() time.Time {
	return time.Now()
}

// Package clock abstracts the current time so that rotation-window and
// expiry decisions in internal/state can be driven deterministically in
// tests instead of by the real wall clock.
package clock

import "time"

// Clock supplies the current time and the local hour-of-day used by the
// rotation time-window gate.
type Clock interface {
	// Now returns the current wall-clock time.
	Now() time.Time

	// LocalHour returns the hour (0-23) of Now() in the server's local
	// timezone, the unit the rotation window is expressed in.
	LocalHour() int
}

// SystemClock is the production Clock, backed directly by the time package.
type SystemClock struct{}

// NewSystemClock returns a Clock backed by the real wall clock.
func NewSystemClock() SystemClock { return SystemClock{} }

func (SystemClock) Now() time.Time { return time.Now() }

func (SystemClock) LocalHour() int { return time.Now().Local().Hour() }

// FixedClock is a test double that always reports the same instant.
type FixedClock struct {
	At time.Time
}

func (c FixedClock) Now() time.Time { return c.At }

func (c FixedClock) LocalHour() int { return c.At.Local().Hour() }

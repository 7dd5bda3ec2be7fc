package state

import "time"

// RotationWindow describes the recurring local-clock hour range during
// which key rotation is permitted, e.g. [3,5] for "between 3am and 5am".
// MinHour > MaxHour denotes a window that wraps midnight, e.g. [22,2].
type RotationWindow struct {
	MinHour int
	MaxHour int
}

// Contains reports whether hour (0-23) falls inside the window.
func (w RotationWindow) Contains(hour int) bool {
	if w.MinHour <= w.MaxHour {
		return hour >= w.MinHour && hour <= w.MaxHour
	}
	return hour >= w.MinHour || hour <= w.MaxHour
}

// ShouldRegenerateKeys implements the rotation decision: true iff the
// interval has elapsed since lastRotation AND the server's local hour
// falls inside window. It does not mutate state; callers commit the
// decision via Store.MarkRotated.
func ShouldRegenerateKeys(lastRotation, now time.Time, interval time.Duration, window RotationWindow, localHour int) bool {
	if now.Sub(lastRotation) < interval {
		return false
	}
	return window.Contains(localHour)
}

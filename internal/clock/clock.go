// Package clock supplies the current time so "today" can be fixed in tests.
package clock

import "time"

// Clock reports the current time.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock in Location (time.Local when nil).
type SystemClock struct {
	Location *time.Location
}

// Now returns the wall clock time in the configured location.
func (s SystemClock) Now() time.Time {
	if s.Location != nil {
		return time.Now().In(s.Location)
	}
	return time.Now()
}

// MockClock is a Clock stopped at FixedNow.
type MockClock struct {
	FixedNow time.Time
}

// Now returns FixedNow.
func (m *MockClock) Now() time.Time {
	return m.FixedNow
}

// SetNow moves the clock to now.
func (m *MockClock) SetNow(now time.Time) {
	m.FixedNow = now
}

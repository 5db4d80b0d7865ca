package utils

import "time"

type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (s SystemClock) Now() time.Time {
	return time.Now()
}

// MockClock returns FixedNow until changed.
type MockClock struct {
	FixedNow time.Time
}

func (m *MockClock) Now() time.Time {
	return m.FixedNow
}

func (m *MockClock) SetNow(now time.Time) {
	m.FixedNow = now
}

// NowIn returns the clock's current time in loc.
func NowIn(c Clock, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	return c.Now().In(loc)
}

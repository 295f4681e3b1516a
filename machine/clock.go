package machine

import "time"

// Clock provides the current time for state-entry bookkeeping
// Injectable so tests can feed synthetic time
type Clock interface {
	Now() time.Time
}

// SystemClock is the real monotonic time source
type SystemClock struct{}

// Now returns the current time with monotonic clock reading
func (SystemClock) Now() time.Time {
	return time.Now()
}

// MockClock is a controllable time source for testing
type MockClock struct {
	Current time.Time
}

// NewMockClock creates a mock clock starting at the given time
func NewMockClock(start time.Time) *MockClock {
	return &MockClock{Current: start}
}

// Now returns the current mocked time
func (m *MockClock) Now() time.Time {
	return m.Current
}

// Advance moves the mocked time forward
func (m *MockClock) Advance(d time.Duration) {
	m.Current = m.Current.Add(d)
}

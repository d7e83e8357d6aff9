package game

import (
	"sync"
	"time"
)

// TimeProvider supplies the current time to the phase controller.
type TimeProvider interface {
	Now() time.Time
}

// MonotonicTimeProvider reads the wall clock (with its monotonic reading).
type MonotonicTimeProvider struct{}

// NewMonotonicTimeProvider returns the real clock.
func NewMonotonicTimeProvider() *MonotonicTimeProvider {
	return &MonotonicTimeProvider{}
}

// Now returns time.Now().
func (MonotonicTimeProvider) Now() time.Time {
	return time.Now()
}

// MockTimeProvider provides a controllable time source for testing
type MockTimeProvider struct {
	mu          sync.RWMutex
	currentTime time.Time
}

// NewMockTimeProvider creates a new mock time provider with the given start time
func NewMockTimeProvider(startTime time.Time) *MockTimeProvider {
	return &MockTimeProvider{currentTime: startTime}
}

// Now returns the current mocked time
func (m *MockTimeProvider) Now() time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.currentTime
}

// Advance moves the mocked time forward by d and returns the new time.
func (m *MockTimeProvider) Advance(d time.Duration) time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.currentTime = m.currentTime.Add(d)
	return m.currentTime
}

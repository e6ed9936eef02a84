package simplecal

import (
	"context"
	"sync"
	"time"
)

// Test utilities - shared helpers for tests in this and other packages

func timePtr(t time.Time) *time.Time {
	return &t
}

// FixedClock is a settable clock for WithClock
type FixedClock struct {
	mu  sync.Mutex
	now time.Time
}

// NewFixedClock starts the clock at now
func NewFixedClock(now time.Time) *FixedClock {
	return &FixedClock{now: now}
}

// Now returns the current fake time
func (c *FixedClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward by d
func (c *FixedClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// MockDecomposer is a test double that never calls a real model
type MockDecomposer struct {
	mu        sync.Mutex
	CallCount int
	Prompts   []string
	Subtasks  []string
	Err       error
}

func (m *MockDecomposer) Decompose(ctx context.Context, text string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CallCount++
	m.Prompts = append(m.Prompts, text)
	if m.Err != nil {
		return nil, m.Err
	}
	return append([]string(nil), m.Subtasks...), nil
}

package mocks

import (
	"fmt"
	"sync"
	"time"
)

// MockClock is a settable clock so tests can pin or advance time.
type MockClock struct {
	mu  sync.Mutex
	now time.Time
}

func NewMockClock(start time.Time) *MockClock {
	return &MockClock{now: start}
}

func (c *MockClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *MockClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func (c *MockClock) SetNow(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

// MockIDGenerator issues sequential ids ("id-1", "id-2", ...) unless a
// NewIDFunc is provided.
type MockIDGenerator struct {
	mu        sync.Mutex
	n         int
	NewIDFunc func() string
}

func (g *MockIDGenerator) NewID() string {
	if g.NewIDFunc != nil {
		return g.NewIDFunc()
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	return fmt.Sprintf("id-%d", g.n)
}

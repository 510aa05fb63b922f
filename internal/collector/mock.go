package collector

import (
	"context"
	"sync/atomic"
)

// MockRoute returns a fixed payload or error, counting its attempts.
type MockRoute struct {
	Label    string
	Payload  *Payload
	Err      error
	attempts atomic.Int32
}

func (m *MockRoute) Name() string { return "mock:" + m.Label }

func (m *MockRoute) Attempt(_ context.Context) (*Payload, error) {
	m.attempts.Add(1)
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Payload, nil
}

// Attempts returns how many times the route was tried.
func (m *MockRoute) Attempts() int { return int(m.attempts.Load()) }

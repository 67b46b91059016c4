package mocks

import (
	"context"
	"sync"

	"github.com/phrazzld/flashlearn/internal/generation"
)

// MockGenerator implements generation.Generator and generation.Pinger.
type MockGenerator struct {
	// GenerateCardsFn overrides the default Cards/Err response when set.
	GenerateCardsFn func(ctx context.Context, req generation.Request) ([]generation.Card, error)

	Cards   []generation.Card
	Err     error
	PingErr error

	mu       sync.Mutex
	requests []generation.Request
}

var (
	_ generation.Generator = (*MockGenerator)(nil)
	_ generation.Pinger    = (*MockGenerator)(nil)
)

// GenerateCards records the request and returns the configured response.
func (m *MockGenerator) GenerateCards(ctx context.Context, req generation.Request) ([]generation.Card, error) {
	m.mu.Lock()
	m.requests = append(m.requests, req)
	m.mu.Unlock()

	if m.GenerateCardsFn != nil {
		return m.GenerateCardsFn(ctx, req)
	}
	return m.Cards, m.Err
}

// Ping returns PingErr.
func (m *MockGenerator) Ping(context.Context) error {
	return m.PingErr
}

// Requests returns a copy of every request seen so far.
func (m *MockGenerator) Requests() []generation.Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]generation.Request(nil), m.requests...)
}

package counter

import (
	"context"
	"errors"
	"sync"
)

// MockTicketStore is a test mock for TicketStore
type MockTicketStore struct {
	mu          sync.Mutex
	tickets     map[string]*Ticket
	SaveFunc    func(ctx context.Context, t *Ticket) error
	FindFunc    func(ctx context.Context, token string) (*Ticket, error)
	ListFunc    func(ctx context.Context, filter TicketFilter) ([]Ticket, error)
	ListCalls   int
}

func NewMockTicketStore() *MockTicketStore {
	return &MockTicketStore{
		tickets: make(map[string]*Ticket),
	}
}

func (m *MockTicketStore) Save(ctx context.Context, t *Ticket) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, t)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tickets[t.Token] = t
	return nil
}

func (m *MockTicketStore) FindByToken(ctx context.Context, token string) (*Ticket, error) {
	if m.FindFunc != nil {
		return m.FindFunc(ctx, token)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	t, exists := m.tickets[token]
	if !exists {
		return nil, errors.New("ticket not found")
	}
	return t, nil
}

func (m *MockTicketStore) List(ctx context.Context, filter TicketFilter) ([]Ticket, error) {
	m.mu.Lock()
	m.ListCalls++
	m.mu.Unlock()
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Ticket, 0, len(m.tickets))
	for _, t := range m.tickets {
		if filter.Service != nil && t.Service != *filter.Service {
			continue
		}
		if filter.Status != nil && t.Status != *filter.Status {
			continue
		}
		out = append(out, *t)
	}
	return out, nil
}

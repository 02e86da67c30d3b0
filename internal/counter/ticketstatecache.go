package counter

import (
	"context"
	"sync"

	"github.com/aquamarinepk/aqm"
)

// TicketStateCache maintains an in-memory snapshot of counter tickets,
// indexed by status and service type for board queries. The poller refreshes
// it on a fixed cadence; the aggregator only ever reads the snapshot.
type TicketStateCache struct {
	mu sync.RWMutex
	// tickets indexed by token
	tickets map[string]*Ticket
	// index by status code -> token
	byStatus map[TicketStatus][]string
	// index by service type -> token
	byService map[ServiceType][]string

	store  TicketStore // fallback warm source
	logger aqm.Logger
}

func NewTicketStateCache(store TicketStore, logger aqm.Logger) *TicketStateCache {
	if logger == nil {
		logger = aqm.NewNoopLogger()
	}
	return &TicketStateCache{
		tickets:   make(map[string]*Ticket),
		byStatus:  make(map[TicketStatus][]string),
		byService: make(map[ServiceType][]string),
		store:     store,
		logger:    logger,
	}
}

// Warm loads tickets from the tracking store. An unreachable or empty store
// leaves the cache empty and never fails the caller; the board falls back to
// demo data in that case.
func (c *TicketStateCache) Warm(ctx context.Context) (err error) {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Info("ticket store panic recovered, cache will remain empty", "panic", r)
			err = nil
		}
	}()

	if c.store == nil {
		c.logger.Info("ticket store not configured, cache remains empty")
		return nil
	}

	tickets, storeErr := c.store.List(ctx, TicketFilter{})
	if storeErr != nil {
		c.logger.Info("cannot warm ticket cache, cache will remain empty", "error", storeErr)
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range tickets {
		c.setLocked(&tickets[i])
	}

	c.logger.Info("ticket cache warmed", "count", len(tickets))
	return nil
}

// Set updates or adds a ticket to the cache.
func (c *TicketStateCache) Set(t *Ticket) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.setLocked(t)
}

func (c *TicketStateCache) setLocked(t *Ticket) {
	if t == nil || t.Token == "" {
		return
	}

	if old, exists := c.tickets[t.Token]; exists {
		c.byStatus[old.Status] = removeToken(c.byStatus[old.Status], t.Token)
		c.byService[old.Service] = removeToken(c.byService[old.Service], t.Token)
	}

	c.tickets[t.Token] = t
	c.byStatus[t.Status] = append(c.byStatus[t.Status], t.Token)
	c.byService[t.Service] = append(c.byService[t.Service], t.Token)
}

func (c *TicketStateCache) Get(token string) *Ticket {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.tickets[token]
}

func (c *TicketStateCache) GetByStatus(status TicketStatus) []*Ticket {
	c.mu.RLock()
	defer c.mu.RUnlock()

	tokens := c.byStatus[status]
	result := make([]*Ticket, 0, len(tokens))
	for _, token := range tokens {
		if t := c.tickets[token]; t != nil {
			result = append(result, t)
		}
	}
	return result
}

func (c *TicketStateCache) GetByService(service ServiceType) []*Ticket {
	c.mu.RLock()
	defer c.mu.RUnlock()

	tokens := c.byService[service]
	result := make([]*Ticket, 0, len(tokens))
	for _, token := range tokens {
		if t := c.tickets[token]; t != nil {
			result = append(result, t)
		}
	}
	return result
}

func (c *TicketStateCache) GetAll() []*Ticket {
	c.mu.RLock()
	defer c.mu.RUnlock()

	result := make([]*Ticket, 0, len(c.tickets))
	for _, t := range c.tickets {
		result = append(result, t)
	}
	return result
}

func (c *TicketStateCache) Remove(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	t := c.tickets[token]
	if t == nil {
		return
	}
	c.byStatus[t.Status] = removeToken(c.byStatus[t.Status], token)
	c.byService[t.Service] = removeToken(c.byService[t.Service], token)
	delete(c.tickets, token)
}

func (c *TicketStateCache) Count() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.tickets)
}

func removeToken(tokens []string, token string) []string {
	for i, t := range tokens {
		if t == token {
			return append(tokens[:i], tokens[i+1:]...)
		}
	}
	return tokens
}

package counter

import (
	"context"
	"time"

	"github.com/aquamarinepk/aqm"
)

const DefaultPollInterval = 3 * time.Second

// Poller refreshes the ticket cache from the tracking store on a fixed short
// cadence. Each poll replaces the cached snapshots; the board recomputes from
// the latest snapshot, so repeated polls of unchanged data are idempotent.
type Poller struct {
	store    TicketStore
	cache    *TicketStateCache
	interval time.Duration
	logger   aqm.Logger
}

func NewPoller(store TicketStore, cache *TicketStateCache, interval time.Duration, logger aqm.Logger) *Poller {
	if logger == nil {
		logger = aqm.NewNoopLogger()
	}
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &Poller{
		store:    store,
		cache:    cache,
		interval: interval,
		logger:   logger,
	}
}

// Start warms the cache once, then polls until the context is cancelled.
func (p *Poller) Start(ctx context.Context) error {
	if p.cache == nil {
		return nil
	}
	if err := p.cache.Warm(ctx); err != nil {
		p.logger.Info("ticket cache warmup failed", "error", err)
	}

	go p.run(ctx)
	return nil
}

func (p *Poller) run(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			p.logger.Info("ticket poller stopped")
			return
		case <-ticker.C:
			p.poll(ctx)
		}
	}
}

func (p *Poller) poll(ctx context.Context) {
	if p.store == nil {
		return
	}
	tickets, err := p.store.List(ctx, TicketFilter{})
	if err != nil {
		// Unreachable store is not an error for the board; the cache simply
		// keeps serving the previous snapshot.
		p.logger.Info("ticket poll failed, keeping previous snapshot", "error", err)
		return
	}
	seen := make(map[string]bool, len(tickets))
	for i := range tickets {
		p.cache.Set(&tickets[i])
		seen[tickets[i].Token] = true
	}

	// Tickets the store no longer returns were deleted server-side; evict
	// them so they do not linger on the board until restart.
	for _, cached := range p.cache.GetAll() {
		if !seen[cached.Token] {
			p.cache.Remove(cached.Token)
			p.logger.Info("evicting ticket missing from store", "token", cached.Token)
		}
	}
}

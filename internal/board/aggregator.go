package board

import (
	"sort"
	"time"

	"github.com/appetiteclub/foh/internal/counter"
	"github.com/appetiteclub/foh/internal/order"
	"github.com/aquamarinepk/aqm"
)

// Aggregator merges the three order sources (seated tables, tracked counter
// tickets and demo seeds) into one unified list. It never mutates the
// sources: every call reads the latest snapshots and computes fresh output.
type Aggregator struct {
	sessions *order.SessionStore
	tickets  *counter.TicketStateCache
	demo     func(now time.Time) []UnifiedOrder
	logger   aqm.Logger
}

func NewAggregator(sessions *order.SessionStore, tickets *counter.TicketStateCache, logger aqm.Logger) *Aggregator {
	if logger == nil {
		logger = aqm.NewNoopLogger()
	}
	return &Aggregator{
		sessions: sessions,
		tickets:  tickets,
		demo:     DemoOrders,
		logger:   logger,
	}
}

// SetDemoSource overrides the demo fallback, mainly for tests. A nil source
// disables the fallback entirely.
func (a *Aggregator) SetDemoSource(demo func(now time.Time) []UnifiedOrder) {
	a.demo = demo
}

// Snapshot builds the unified order list: union of the live sources (demo
// seeds only when both are empty), overrides applied, table orders re-derived,
// and the whole list sorted ascending by creation time. That sort is the only
// global ordering guarantee the boards may rely on.
func (a *Aggregator) Snapshot(now time.Time, overrides Overrides) []UnifiedOrder {
	var orders []UnifiedOrder

	if a.sessions != nil {
		for _, s := range a.sessions.Occupied() {
			orders = append(orders, FromSession(s))
		}
	}
	if a.tickets != nil {
		for _, t := range a.tickets.GetAll() {
			orders = append(orders, FromTicket(t))
		}
	}

	if len(orders) == 0 && a.demo != nil {
		orders = a.demo(now)
		a.logger.Debug("no live orders, board serving demo data", "count", len(orders))
	}

	for i := range orders {
		applyOverride(&orders[i], overrides)
	}

	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].CreatedAt.Before(orders[j].CreatedAt)
	})
	return orders
}

// applyOverride patches the order's wave statuses from the override map. Live
// table orders are then re-derived through the same rules as always, so an
// override can never leave a table order internally inconsistent. Counter and
// demo orders carry no wave semantics: the raw statuses are replaced and the
// order status is left alone.
func applyOverride(o *UnifiedOrder, overrides Overrides) {
	waves, ok := overrides[o.ID]
	if !ok || len(waves) == 0 {
		return
	}

	for i := range o.Waves {
		if status, ok := waves[o.Waves[i].Number]; ok {
			o.Waves[i].Status = status
		}
	}

	if o.Source == SourceTable && !o.Demo {
		o.Status = order.DeriveTableStatus(o.Waves, o.Billing)
	}
}

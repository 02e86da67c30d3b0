package counter

import (
	"context"
	"errors"
	"testing"

	"github.com/aquamarinepk/aqm"
)

func TestNewTicketStateCache(t *testing.T) {
	tests := []struct {
		name   string
		store  TicketStore
		logger aqm.Logger
	}{
		{name: "withAllDependencies", store: NewMockTicketStore(), logger: aqm.NewNoopLogger()},
		{name: "withNilStore", store: nil, logger: aqm.NewNoopLogger()},
		{name: "withNilLogger", store: NewMockTicketStore(), logger: nil},
		{name: "withAllNil", store: nil, logger: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cache := NewTicketStateCache(tt.store, tt.logger)
			if cache == nil {
				t.Fatal("NewTicketStateCache() returned nil")
			}
			if cache.tickets == nil {
				t.Error("tickets map is nil")
			}
			if cache.byStatus == nil {
				t.Error("byStatus map is nil")
			}
			if cache.byService == nil {
				t.Error("byService map is nil")
			}
		})
	}
}

func TestTicketStateCacheSetAndGet(t *testing.T) {
	cache := NewTicketStateCache(nil, aqm.NewNoopLogger())

	ticket := NewTicket("PK-9001", ServicePickup)
	cache.Set(ticket)

	got := cache.Get("PK-9001")
	if got == nil {
		t.Fatal("Get() returned nil after Set()")
	}
	if got.Service != ServicePickup {
		t.Errorf("Get() Service = %q, want %q", got.Service, ServicePickup)
	}
}

func TestTicketStateCacheSetNilTicket(t *testing.T) {
	cache := NewTicketStateCache(nil, aqm.NewNoopLogger())

	// Should not panic
	cache.Set(nil)
	cache.Set(&Ticket{})

	if cache.Count() != 0 {
		t.Errorf("Count() = %d, want 0 after setting nil/empty tickets", cache.Count())
	}
}

func TestTicketStateCacheReindexesOnStatusChange(t *testing.T) {
	cache := NewTicketStateCache(nil, aqm.NewNoopLogger())

	ticket := NewTicket("PK-9002", ServicePickup)
	cache.Set(ticket)

	if got := len(cache.GetByStatus(TicketSent)); got != 1 {
		t.Fatalf("GetByStatus(sent) returned %d tickets, want 1", got)
	}

	updated := *ticket
	updated.Status = TicketReady
	cache.Set(&updated)

	if got := len(cache.GetByStatus(TicketSent)); got != 0 {
		t.Errorf("GetByStatus(sent) returned %d tickets after update, want 0", got)
	}
	if got := len(cache.GetByStatus(TicketReady)); got != 1 {
		t.Errorf("GetByStatus(ready) returned %d tickets, want 1", got)
	}
	if cache.Count() != 1 {
		t.Errorf("Count() = %d, want 1", cache.Count())
	}
}

func TestTicketStateCacheGetByService(t *testing.T) {
	cache := NewTicketStateCache(nil, aqm.NewNoopLogger())
	cache.Set(NewTicket("PK-1", ServicePickup))
	cache.Set(NewTicket("PK-2", ServicePickup))
	cache.Set(NewTicket("DI-1", ServiceDineIn))

	if got := len(cache.GetByService(ServicePickup)); got != 2 {
		t.Errorf("GetByService(pickup) = %d tickets, want 2", got)
	}
	if got := len(cache.GetByService(ServiceDineIn)); got != 1 {
		t.Errorf("GetByService(dine_in) = %d tickets, want 1", got)
	}
}

func TestTicketStateCacheRemove(t *testing.T) {
	cache := NewTicketStateCache(nil, aqm.NewNoopLogger())
	cache.Set(NewTicket("PK-1", ServicePickup))

	cache.Remove("PK-1")
	cache.Remove("missing") // no-op

	if cache.Count() != 0 {
		t.Errorf("Count() = %d, want 0", cache.Count())
	}
	if got := len(cache.GetByService(ServicePickup)); got != 0 {
		t.Errorf("GetByService(pickup) = %d tickets after remove, want 0", got)
	}
}

func TestTicketStateCacheWarm(t *testing.T) {
	store := NewMockTicketStore()
	ctx := context.Background()
	_ = store.Save(ctx, NewTicket("PK-1", ServicePickup))
	_ = store.Save(ctx, NewTicket("DI-1", ServiceDineIn))

	cache := NewTicketStateCache(store, aqm.NewNoopLogger())
	if err := cache.Warm(ctx); err != nil {
		t.Fatalf("Warm() error = %v", err)
	}
	if cache.Count() != 2 {
		t.Errorf("Count() = %d, want 2", cache.Count())
	}
}

func TestTicketStateCacheWarmStoreUnavailable(t *testing.T) {
	store := NewMockTicketStore()
	store.ListFunc = func(ctx context.Context, filter TicketFilter) ([]Ticket, error) {
		return nil, errors.New("store unreachable")
	}

	cache := NewTicketStateCache(store, aqm.NewNoopLogger())
	if err := cache.Warm(context.Background()); err != nil {
		t.Errorf("Warm() must not propagate store failures, got %v", err)
	}
	if cache.Count() != 0 {
		t.Errorf("Count() = %d, want 0", cache.Count())
	}
}

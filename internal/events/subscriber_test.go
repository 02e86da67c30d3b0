package events

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/appetiteclub/foh/internal/order"
	"github.com/aquamarinepk/aqm"
	aqmevents "github.com/aquamarinepk/aqm/events"
	"github.com/google/uuid"
)

// mockSubscriber records subscriptions and lets tests push messages.
type mockSubscriber struct {
	handlers map[string]aqmevents.HandlerFunc
}

func newMockSubscriber() *mockSubscriber {
	return &mockSubscriber{handlers: make(map[string]aqmevents.HandlerFunc)}
}

func (m *mockSubscriber) Subscribe(ctx context.Context, topic string, handler aqmevents.HandlerFunc) error {
	m.handlers[topic] = handler
	return nil
}

func (m *mockSubscriber) push(t *testing.T, topic string, payload interface{}) {
	t.Helper()
	data, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	handler, ok := m.handlers[topic]
	if !ok {
		t.Fatalf("no handler subscribed on %s", topic)
	}
	if err := handler(context.Background(), data); err != nil {
		t.Fatalf("handler error: %v", err)
	}
}

func startSubscriber(t *testing.T) (*mockSubscriber, *order.SessionStore) {
	t.Helper()
	sub := newMockSubscriber()
	sessions := order.NewSessionStore(aqm.NewNoopLogger())
	s := NewTableSubscriber(sub, sessions, aqm.NewNoopLogger())
	if err := s.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	return sub, sessions
}

func TestTableSubscriberRequiresSubscriber(t *testing.T) {
	s := NewTableSubscriber(nil, order.NewSessionStore(nil), nil)
	if err := s.Start(context.Background()); err == nil {
		t.Error("Start() without a subscriber should fail")
	}
}

func TestTableSubscriberStatusEvents(t *testing.T) {
	sub, sessions := startSubscriber(t)
	tableID := uuid.New()

	sub.push(t, TableStatusTopic, TableStatusEvent{
		EventType:  EventTableStatusChanged,
		TableID:    tableID.String(),
		Status:     "open",
		GuestCount: 3,
		OccurredAt: time.Now(),
	})

	session := sessions.Get(tableID)
	if session == nil {
		t.Fatal("session not created for open event")
	}
	if !session.Occupied() {
		t.Error("session not occupied after open event")
	}
	if len(session.Seats) != 3 {
		t.Errorf("seats = %d, want 3", len(session.Seats))
	}

	sub.push(t, TableStatusTopic, TableStatusEvent{
		EventType: EventTableStatusChanged,
		TableID:   tableID.String(),
		Status:    "billing",
	})
	if !sessions.Get(tableID).Billing {
		t.Error("billing flag not set")
	}

	sub.push(t, TableStatusTopic, TableStatusEvent{
		EventType: EventTableStatusChanged,
		TableID:   tableID.String(),
		Status:    "available",
	})
	if sessions.Get(tableID).Occupied() {
		t.Error("session still occupied after available event")
	}
}

func TestTableSubscriberSnapshot(t *testing.T) {
	sub, sessions := startSubscriber(t)
	tableID := uuid.New()
	seated := time.Now().Add(-20 * time.Minute)

	sub.push(t, TableSnapshotTopic, TableSnapshotEvent{
		EventType:  EventTableSnapshot,
		TableID:    tableID.String(),
		Number:     "Terrace-8",
		Section:    "Terrace",
		GuestCount: 2,
		SeatedAt:   &seated,
		Seats: []SeatSnapshot{
			{
				Number: 1,
				Items: []ItemSnapshot{
					{ID: uuid.New().String(), Name: "Sea Bass", Price: 34, Quantity: 1, Status: "cooking", Wave: 2},
				},
			},
			{
				Number: 2,
				Items: []ItemSnapshot{
					{ID: uuid.New().String(), Name: "Martini", Price: 13, Quantity: 1, Status: "served", Wave: 1},
				},
			},
		},
		Shared: []ItemSnapshot{
			{Name: "Focaccia", Price: 7, Quantity: 1, Status: "served", Wave: 1},
		},
		OccurredAt: time.Now(),
	})

	session := sessions.Get(tableID)
	if session == nil {
		t.Fatal("session not created from snapshot")
	}
	if session.TableNumber != "Terrace-8" {
		t.Errorf("TableNumber = %q, want %q", session.TableNumber, "Terrace-8")
	}
	if len(session.Items()) != 3 {
		t.Errorf("items = %d, want 3", len(session.Items()))
	}
	if got := session.Status(); got != order.StatusPreparing {
		t.Errorf("derived status = %q, want %q", got, order.StatusPreparing)
	}
	if len(session.Shared) != 1 || session.Shared[0].Seat != 0 {
		t.Error("shared item not placed on the shared list")
	}
}

func TestTableSubscriberSnapshotFallbacks(t *testing.T) {
	sub, sessions := startSubscriber(t)
	tableID := uuid.New()

	sub.push(t, TableSnapshotTopic, TableSnapshotEvent{
		EventType: EventTableSnapshot,
		TableID:   tableID.String(),
		Number:    "Bar-2",
		Seats: []SeatSnapshot{
			{
				Number: 1,
				Items: []ItemSnapshot{
					// No id, zero wave and quantity, junk status.
					{Name: "Mystery", Price: 9, Status: "??"},
				},
			},
		},
	})

	items := sessions.Get(tableID).Items()
	if len(items) != 1 {
		t.Fatalf("items = %d, want 1", len(items))
	}
	if items[0].Wave != 1 {
		t.Errorf("wave = %d, want 1", items[0].Wave)
	}
	if items[0].Quantity != 1 {
		t.Errorf("quantity = %d, want 1", items[0].Quantity)
	}
	if items[0].Status != order.ItemHeld {
		t.Errorf("status = %q, want %q", items[0].Status, order.ItemHeld)
	}
	if items[0].ID == uuid.Nil {
		t.Error("item id not generated")
	}
}

func TestTableSubscriberIgnoresMalformedEvents(t *testing.T) {
	sub, sessions := startSubscriber(t)

	handler := sub.handlers[TableStatusTopic]
	if err := handler(context.Background(), []byte("not json")); err != nil {
		t.Errorf("malformed payload must not error, got %v", err)
	}

	sub.push(t, TableStatusTopic, TableStatusEvent{
		EventType: EventTableStatusChanged,
		TableID:   "not-a-uuid",
		Status:    "open",
	})

	if sessions.Count() != 0 {
		t.Errorf("sessions created from malformed events: %d", sessions.Count())
	}
}

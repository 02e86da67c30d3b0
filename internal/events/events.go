package events

import "time"

const (
	// TableStatusTopic delivers authoritative status changes for tables.
	TableStatusTopic = "tables.status"
	// TableSnapshotTopic delivers full per-table order snapshots from the floor source.
	TableSnapshotTopic = "tables.snapshot"
	// BoardOrdersTopic groups events emitted by the board for presentation clients.
	BoardOrdersTopic = "board.orders"

	// EventTableStatusChanged identifies a table status change payload.
	EventTableStatusChanged = "table.status.changed"
	// EventTableSnapshot identifies a full table snapshot payload.
	EventTableSnapshot = "table.snapshot"
	// EventBoardOrderChanged identifies a unified order status change payload.
	EventBoardOrderChanged = "board.order.status_changed"
)

// TableStatusEvent captures the minimal information the board needs to reason
// about a table's availability.
type TableStatusEvent struct {
	EventType      string    `json:"event_type"`
	TableID        string    `json:"table_id"`
	Status         string    `json:"status"`
	PreviousStatus string    `json:"previous_status,omitempty"`
	GuestCount     int       `json:"guest_count,omitempty"`
	OccurredAt     time.Time `json:"occurred_at"`
}

// ItemSnapshot is one committed item inside a table snapshot. Wave is a typed
// field; the floor source stopped encoding it in notes long ago.
type ItemSnapshot struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Price     float64  `json:"price"`
	Quantity  int      `json:"quantity"`
	Status    string   `json:"status"`
	Wave      int      `json:"wave"`
	Seat      int      `json:"seat,omitempty"`
	Modifiers []string `json:"modifiers,omitempty"`
	Notes     string   `json:"notes,omitempty"`
}

type SeatSnapshot struct {
	Number int            `json:"number"`
	Items  []ItemSnapshot `json:"items"`
}

// TableSnapshotEvent is the floor source's full description of one table:
// seating state, per-seat item lists and shared items.
type TableSnapshotEvent struct {
	EventType  string         `json:"event_type"`
	TableID    string         `json:"table_id"`
	Number     string         `json:"number"`
	Section    string         `json:"section,omitempty"`
	Guest      string         `json:"guest,omitempty"`
	GuestCount int            `json:"guest_count"`
	Billing    bool           `json:"billing"`
	Seats      []SeatSnapshot `json:"seats"`
	Shared     []ItemSnapshot `json:"shared,omitempty"`
	SeatedAt   *time.Time     `json:"seated_at,omitempty"`
	OccurredAt time.Time      `json:"occurred_at"`
}

// BoardOrderChangedEvent announces a unified-order status change to
// presentation clients (SSE stream, future consumers).
type BoardOrderChangedEvent struct {
	EventType      string    `json:"event_type"`
	OrderID        string    `json:"order_id"`
	Source         string    `json:"source"`
	NewStatus      string    `json:"new_status"`
	PreviousStatus string    `json:"previous_status,omitempty"`
	OccurredAt     time.Time `json:"occurred_at"`
}

package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/appetiteclub/foh/internal/order"
	"github.com/aquamarinepk/aqm"
	"github.com/aquamarinepk/aqm/events"
	"github.com/google/uuid"
)

// TableSubscriber feeds floor-source events into the session store. Malformed
// events are logged and dropped; the floor feed must never take the board down.
type TableSubscriber struct {
	subscriber events.Subscriber
	sessions   *order.SessionStore
	logger     aqm.Logger
}

func NewTableSubscriber(sub events.Subscriber, sessions *order.SessionStore, logger aqm.Logger) *TableSubscriber {
	if logger == nil {
		logger = aqm.NewNoopLogger()
	}
	return &TableSubscriber{
		subscriber: sub,
		sessions:   sessions,
		logger:     logger,
	}
}

func (s *TableSubscriber) Start(ctx context.Context) error {
	if s.subscriber == nil {
		return fmt.Errorf("table subscriber not configured")
	}
	s.logger.Info("starting table subscriber", "topics", TableStatusTopic+","+TableSnapshotTopic)
	if err := s.subscriber.Subscribe(ctx, TableStatusTopic, s.handleEvent); err != nil {
		return err
	}
	return s.subscriber.Subscribe(ctx, TableSnapshotTopic, s.handleEvent)
}

func (s *TableSubscriber) handleEvent(ctx context.Context, msg []byte) error {
	var base struct {
		EventType string `json:"event_type"`
	}
	if err := json.Unmarshal(msg, &base); err != nil {
		s.logger.Info("invalid table event", "error", err)
		return nil
	}

	switch base.EventType {
	case EventTableStatusChanged:
		s.handleStatusChanged(msg)
	case EventTableSnapshot:
		s.handleSnapshot(msg)
	default:
		// Unknown event types are ignored for forward compatibility.
	}
	return nil
}

func (s *TableSubscriber) handleStatusChanged(msg []byte) {
	var evt TableStatusEvent
	if err := json.Unmarshal(msg, &evt); err != nil {
		s.logger.Info("invalid table status event", "error", err)
		return
	}

	id, err := uuid.Parse(evt.TableID)
	if err != nil {
		s.logger.Info("invalid table id in event", "table_id", evt.TableID)
		return
	}

	session := s.sessions.Ensure(id)
	switch evt.Status {
	case "open", "occupied":
		if !session.Occupied() {
			size := evt.GuestCount
			if size < 1 {
				size = 1
			}
			session.SeatParty(size)
		}
	case "billing":
		session.StartBilling()
	case "available":
		if session.Occupied() {
			session.Settle()
		}
	}
	s.logger.Debug("table status applied", "table_id", id.String(), "status", evt.Status)
}

// handleSnapshot rebuilds the table's session from the floor source's full
// description. The snapshot is authoritative for seating and items.
func (s *TableSubscriber) handleSnapshot(msg []byte) {
	var evt TableSnapshotEvent
	if err := json.Unmarshal(msg, &evt); err != nil {
		s.logger.Info("invalid table snapshot event", "error", err)
		return
	}

	id, err := uuid.Parse(evt.TableID)
	if err != nil {
		s.logger.Info("invalid table id in snapshot", "table_id", evt.TableID)
		return
	}

	session := order.NewSession(id, evt.Number, evt.Section)
	session.GuestLabel = evt.Guest
	session.GuestCount = evt.GuestCount
	session.Billing = evt.Billing
	session.SeatedAt = evt.SeatedAt
	if evt.OccurredAt.IsZero() {
		session.UpdatedAt = session.CreatedAt
	} else {
		session.CreatedAt = evt.OccurredAt
		session.UpdatedAt = evt.OccurredAt
	}
	if evt.SeatedAt != nil {
		session.CreatedAt = *evt.SeatedAt
	}

	for _, seat := range evt.Seats {
		items := make([]order.Item, 0, len(seat.Items))
		for _, snap := range seat.Items {
			items = append(items, itemFromSnapshot(snap, seat.Number))
		}
		session.Seats = append(session.Seats, order.Seat{Number: seat.Number, Items: items})
	}
	for _, snap := range evt.Shared {
		session.Shared = append(session.Shared, itemFromSnapshot(snap, 0))
	}

	s.sessions.Set(session)
	s.logger.Debug("table snapshot applied", "table_id", id.String(), "seats", len(evt.Seats))
}

func itemFromSnapshot(snap ItemSnapshot, seat int) order.Item {
	wave := snap.Wave
	if wave < 1 {
		wave = 1
	}
	quantity := snap.Quantity
	if quantity < 1 {
		quantity = 1
	}

	item := order.NewItem(snap.Name, snap.Price, quantity, wave)
	if id, err := uuid.Parse(snap.ID); err == nil {
		item.ID = id
	}
	if status := order.ItemStatus(snap.Status); validItemStatus(status) {
		item.Status = status
	}
	item.Seat = seat
	item.Modifiers = snap.Modifiers
	item.Notes = snap.Notes
	return *item
}

func validItemStatus(status order.ItemStatus) bool {
	switch status {
	case order.ItemHeld, order.ItemSent, order.ItemCooking, order.ItemReady, order.ItemServed, order.ItemVoid:
		return true
	}
	return false
}

package board

import (
	"fmt"
	"time"

	"github.com/appetiteclub/foh/internal/counter"
	"github.com/appetiteclub/foh/internal/order"
)

type Source string

const (
	SourceTable  Source = "table"
	SourcePickup Source = "pickup"
	SourceDineIn Source = "dine_in_no_table"
)

// Line is the source-agnostic item row shown on the boards.
type Line struct {
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
	Status   string  `json:"status,omitempty"`
	Wave     int     `json:"wave,omitempty"`
	Seat     int     `json:"seat,omitempty"`
}

type Payment struct {
	Paid   bool   `json:"paid"`
	Method string `json:"method,omitempty"`
}

// UnifiedOrder is the merged, source-agnostic check used by the live and
// history boards. It is the only shape the presentation layer ever sees; raw
// sessions and tickets never leave the aggregator.
type UnifiedOrder struct {
	ID        string       `json:"id"`
	Source    Source       `json:"source"`
	Label     string       `json:"label"`
	Section   string       `json:"section,omitempty"`
	Guest     string       `json:"guest,omitempty"`
	Status    order.Status `json:"status"`
	Items     []Line       `json:"items"`
	Waves     []order.Wave `json:"waves,omitempty"`
	Total     float64      `json:"total"`
	Payment   *Payment     `json:"payment,omitempty"`
	Note      string       `json:"note,omitempty"`
	Billing   bool         `json:"billing,omitempty"`
	Demo      bool         `json:"demo,omitempty"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

// UnifiedID builds the composite id encoding source plus source-local id.
func UnifiedID(source Source, local string) string {
	return fmt.Sprintf("%s:%s", source, local)
}

func lineFromItem(item order.Item) Line {
	return Line{
		Name:     item.Name,
		Price:    item.Price,
		Quantity: item.Quantity,
		Status:   string(item.Status),
		Wave:     item.Wave,
		Seat:     item.Seat,
	}
}

func lineFromTicketItem(item counter.TicketItem) Line {
	return Line{
		Name:     item.Name,
		Price:    item.Price,
		Quantity: item.Quantity,
	}
}

// FromSession builds the unified view of one seated table.
func FromSession(s *order.Session) UnifiedOrder {
	items := s.Items()
	lines := make([]Line, 0, len(items))
	for _, item := range items {
		lines = append(lines, lineFromItem(item))
	}
	return UnifiedOrder{
		ID:        UnifiedID(SourceTable, s.ID.String()),
		Source:    SourceTable,
		Label:     s.TableNumber,
		Section:   s.Section,
		Guest:     s.GuestLabel,
		Status:    s.Status(),
		Items:     lines,
		Waves:     s.Waves(),
		Total:     s.Total(),
		Billing:   s.Billing,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

// FromTicket builds the unified view of one tracked counter ticket. Counter
// checks have no waves; their status maps straight from the ticket.
func FromTicket(t *counter.Ticket) UnifiedOrder {
	source := SourcePickup
	if t.Service == counter.ServiceDineIn {
		source = SourceDineIn
	}
	lines := make([]Line, 0, len(t.Items))
	for _, item := range t.Items {
		lines = append(lines, lineFromTicketItem(item))
	}
	var payment *Payment
	if t.Status == counter.TicketClosed {
		payment = &Payment{Paid: true}
	}
	return UnifiedOrder{
		ID:        UnifiedID(source, t.Token),
		Source:    source,
		Label:     t.Token,
		Guest:     t.Customer,
		Status:    t.UnifiedStatus(),
		Items:     lines,
		Total:     t.Total(),
		Payment:   payment,
		Note:      t.Note,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}

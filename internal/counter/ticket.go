package counter

import (
	"time"

	"github.com/appetiteclub/foh/internal/order"
)

type ServiceType string

const (
	ServicePickup ServiceType = "pickup"
	ServiceDineIn ServiceType = "dine_in"
)

type TicketStatus string

const (
	TicketSent      TicketStatus = "sent"
	TicketPreparing TicketStatus = "preparing"
	TicketReady     TicketStatus = "ready"
	TicketPickedUp  TicketStatus = "picked_up"
	TicketClosed    TicketStatus = "closed"
	TicketRefunded  TicketStatus = "refunded"
)

// ticketRank orders the service chain sent -> preparing -> ready -> picked_up.
// Closed and refunded are terminal and reachable from any point.
var ticketRank = map[TicketStatus]int{
	TicketSent:      0,
	TicketPreparing: 1,
	TicketReady:     2,
	TicketPickedUp:  3,
}

type TicketItem struct {
	Name     string  `json:"name" bson:"name"`
	Price    float64 `json:"price" bson:"price"`
	Quantity int     `json:"quantity" bson:"quantity"`
}

// Ticket is one tracked counter check (pickup or walk-in dine-in), keyed by
// its public token. Unlike table orders its status is stored, not derived;
// the tracking store is authoritative.
type Ticket struct {
	Token     string       `json:"token" bson:"_id"`
	Service   ServiceType  `json:"service" bson:"service"`
	Status    TicketStatus `json:"status" bson:"status"`
	Customer  string       `json:"customer,omitempty" bson:"customer,omitempty"`
	Note      string       `json:"note,omitempty" bson:"note,omitempty"`
	Items     []TicketItem `json:"items" bson:"items"`
	CreatedAt time.Time    `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time    `json:"updated_at" bson:"updated_at"`

	ModelVersion int `json:"-" bson:"model_version"`
}

func NewTicket(token string, service ServiceType) *Ticket {
	now := time.Now()
	return &Ticket{
		Token:     token,
		Service:   service,
		Status:    TicketSent,
		Items:     []TicketItem{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// advanceTo moves the ticket forward along the service chain. Terminal and
// backward targets are no-ops.
func (t *Ticket) advanceTo(target TicketStatus) bool {
	if t.Status == TicketClosed || t.Status == TicketRefunded {
		return false
	}
	if ticketRank[target] <= ticketRank[t.Status] {
		return false
	}
	t.Status = target
	t.UpdatedAt = time.Now()
	return true
}

func (t *Ticket) MarkAsPreparing() {
	t.advanceTo(TicketPreparing)
}

func (t *Ticket) MarkAsReady() {
	t.advanceTo(TicketReady)
}

func (t *Ticket) MarkAsPickedUp() {
	t.advanceTo(TicketPickedUp)
}

func (t *Ticket) Close() {
	if t.Status == TicketRefunded {
		return
	}
	t.Status = TicketClosed
	t.UpdatedAt = time.Now()
}

func (t *Ticket) Refund() {
	t.Status = TicketRefunded
	t.UpdatedAt = time.Now()
}

// UnifiedStatus maps the tracked ticket status onto the board status. Only
// picked_up changes name (it reads as served); everything else maps as-is.
func (t *Ticket) UnifiedStatus() order.Status {
	if t.Status == TicketPickedUp {
		return order.StatusServed
	}
	return order.Status(t.Status)
}

func (t *Ticket) Total() float64 {
	var total float64
	for _, item := range t.Items {
		total += item.Price * float64(item.Quantity)
	}
	return total
}

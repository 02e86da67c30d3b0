package counter

import "context"

type TicketFilter struct {
	Service *ServiceType
	Status  *TicketStatus
	Limit   int
	Offset  int
}

// TicketStore is the counter-ticket tracking store. The board both reads it
// (poll) and writes it (status transitions producing updated snapshots).
type TicketStore interface {
	Save(ctx context.Context, t *Ticket) error
	FindByToken(ctx context.Context, token string) (*Ticket, error)
	List(ctx context.Context, filter TicketFilter) ([]Ticket, error)
}

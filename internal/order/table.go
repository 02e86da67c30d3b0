package order

import (
	"time"

	"github.com/aquamarinepk/aqm"
	"github.com/google/uuid"
)

// Seat holds the items ordered by one guest position at a table.
type Seat struct {
	Number int    `json:"number"`
	Items  []Item `json:"items"`
}

type Note struct {
	ID        uuid.UUID `json:"id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	CreatedBy string    `json:"created_by"`
}

// Session is the in-memory order state of one table: seats, shared items, a
// draft awaiting submission and the billing flag. It never stores a status;
// Status() recomputes it from the items on every call.
type Session struct {
	ID          uuid.UUID   `json:"id"`
	TableID     uuid.UUID   `json:"table_id"`
	TableNumber string      `json:"table_number"`
	Section     string      `json:"section"`
	GuestLabel  string      `json:"guest_label,omitempty"`
	GuestCount  int         `json:"guest_count"`
	Billing     bool        `json:"billing"`
	Seats       []Seat      `json:"seats"`
	Shared      []Item      `json:"shared"`
	Draft       []DraftItem `json:"draft,omitempty"`
	Notes       []Note      `json:"notes,omitempty"`
	SeatedAt    *time.Time  `json:"seated_at,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

func NewSession(tableID uuid.UUID, number, section string) *Session {
	now := time.Now()
	return &Session{
		ID:          aqm.GenerateNewID(),
		TableID:     tableID,
		TableNumber: number,
		Section:     section,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// Occupied reports whether a party is currently seated.
func (s *Session) Occupied() bool {
	return s.SeatedAt != nil
}

// SeatParty opens the table for a party: seats 1..partySize with empty item
// lists, a fresh order id, and all previous state reset.
func (s *Session) SeatParty(partySize int) {
	if partySize < 1 {
		return
	}
	now := time.Now()
	s.ID = aqm.GenerateNewID()
	s.GuestCount = partySize
	s.Seats = make([]Seat, partySize)
	for i := range s.Seats {
		s.Seats[i] = Seat{Number: i + 1, Items: []Item{}}
	}
	s.Shared = nil
	s.Draft = nil
	s.Notes = nil
	s.Billing = false
	s.SeatedAt = &now
	s.CreatedAt = now
	s.UpdatedAt = now
}

// Settle completes payment and returns the table to available: seats, waves,
// items and notes are all cleared.
func (s *Session) Settle() {
	s.GuestCount = 0
	s.Seats = nil
	s.Shared = nil
	s.Draft = nil
	s.Notes = nil
	s.Billing = false
	s.SeatedAt = nil
	s.UpdatedAt = time.Now()
}

func (s *Session) StartBilling() {
	s.Billing = true
	s.UpdatedAt = time.Now()
}

func (s *Session) AddNote(content, createdBy string) {
	s.Notes = append(s.Notes, Note{
		ID:        aqm.GenerateNewID(),
		Content:   content,
		CreatedAt: time.Now(),
		CreatedBy: createdBy,
	})
	s.UpdatedAt = time.Now()
}

// Items returns all committed items across seats and the shared list.
func (s *Session) Items() []Item {
	var items []Item
	for _, seat := range s.Seats {
		items = append(items, seat.Items...)
	}
	items = append(items, s.Shared...)
	return items
}

// Waves groups the session's committed items into course waves.
func (s *Session) Waves() []Wave {
	return GroupWaves(s.Items())
}

// Status derives the table's order status from its waves. Never cached.
func (s *Session) Status() Status {
	return DeriveTableStatus(s.Waves(), s.Billing)
}

// Total sums price times quantity over non-void items.
func (s *Session) Total() float64 {
	var total float64
	for _, item := range s.Items() {
		if item.Active() {
			total += item.Price * float64(item.Quantity)
		}
	}
	return total
}

// ElapsedMinutes is advisory display data; it never affects state.
func (s *Session) ElapsedMinutes(now time.Time) int {
	if s.SeatedAt == nil {
		return 0
	}
	minutes := int(now.Sub(*s.SeatedAt).Minutes())
	if minutes < 0 {
		return 0
	}
	return minutes
}

// eachItem visits every committed item, allowing in-place mutation.
func (s *Session) eachItem(fn func(*Item)) {
	for si := range s.Seats {
		for ii := range s.Seats[si].Items {
			fn(&s.Seats[si].Items[ii])
		}
	}
	for ii := range s.Shared {
		fn(&s.Shared[ii])
	}
}

func (s *Session) findItem(id uuid.UUID) *Item {
	var found *Item
	s.eachItem(func(item *Item) {
		if item.ID == id {
			found = item
		}
	})
	return found
}

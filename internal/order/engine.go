package order

import (
	"time"

	"github.com/google/uuid"
)

// Refusal is returned when a destructive operation cannot complete. The floor
// UI needs a human explanation for these, so unlike the guarded no-ops the
// refusal carries a reason code and a display label.
type Refusal struct {
	Reason string `json:"reason"`
	Label  string `json:"label"`
}

const (
	RefusalWaveHasItems = "wave_has_items"
	RefusalSeatHasItems = "seat_has_items"
)

// DraftItem is a not-yet-submitted line on the pad. Wave is required; drafts
// without one land in wave 1.
type DraftItem struct {
	Name      string   `json:"name"`
	Price     float64  `json:"price"`
	Quantity  int      `json:"quantity"`
	Seat      int      `json:"seat,omitempty"`
	Wave      int      `json:"wave"`
	Modifiers []string `json:"modifiers,omitempty"`
	Notes     string   `json:"notes,omitempty"`
}

// AddDraft appends lines to the pad without committing them.
func (s *Session) AddDraft(items ...DraftItem) {
	s.Draft = append(s.Draft, items...)
	s.UpdatedAt = time.Now()
}

// NextFireableWave returns the lowest wave number that still has held items,
// or 0 when nothing is left to fire. Waves fire strictly in ascending order;
// this is the only wave the engine ever offers as fireable.
func (s *Session) NextFireableWave() int {
	next := 0
	s.eachItem(func(item *Item) {
		if item.Status != ItemHeld {
			return
		}
		if next == 0 || item.Wave < next {
			next = item.Wave
		}
	})
	return next
}

// Fire sends every held item of the given wave to the kitchen. Waves fire
// strictly in ascending order: only the wave NextFireableWave reports is
// eligible, so firing a higher wave while a lower one still holds held items
// is a no-op, as is re-firing an already-fired wave.
func (s *Session) Fire(wave int) {
	if wave != s.NextFireableWave() {
		return
	}
	changed := false
	s.eachItem(func(item *Item) {
		if item.Wave == wave && item.Status == ItemHeld {
			item.MarkAsSent()
			changed = true
		}
	})
	if changed {
		s.UpdatedAt = time.Now()
	}
}

// Advance applies a guarded bulk transition to one wave: sent items move to
// cooking, cooking items to ready, and anything already in the kitchen can be
// marked served in one go. Out-of-order targets (held to cooking, ready back
// to cooking) fall through as no-ops, as do void items.
func (s *Session) Advance(wave int, target ItemStatus) {
	changed := false
	s.eachItem(func(item *Item) {
		if item.Wave != wave || !item.Active() {
			return
		}
		switch target {
		case ItemCooking:
			if item.Status == ItemSent {
				item.MarkAsCooking()
				changed = true
			}
		case ItemReady:
			if item.Status == ItemCooking {
				item.MarkAsReady()
				changed = true
			}
		case ItemServed:
			switch item.Status {
			case ItemSent, ItemCooking, ItemReady:
				item.MarkAsServed()
				changed = true
			}
		}
	})
	if changed {
		s.UpdatedAt = time.Now()
		s.normalize()
	}
}

// MarkItemServed is the single-item shortcut used when a runner drops one dish.
func (s *Session) MarkItemServed(id uuid.UUID) {
	item := s.findItem(id)
	if item == nil {
		return
	}
	switch item.Status {
	case ItemSent, ItemCooking, ItemReady:
	default:
		return
	}
	item.MarkAsServed()
	s.UpdatedAt = time.Now()
	s.normalize()
}

// VoidItem cancels a single item. Unknown ids are a no-op.
func (s *Session) VoidItem(id uuid.UUID) {
	item := s.findItem(id)
	if item == nil {
		return
	}
	item.Void()
	s.UpdatedAt = time.Now()
	s.normalize()
}

// SendDraft commits every drafted line as a held item on its seat (seat 0 goes
// to the shared list), then fires the lowest wave that now holds held items,
// across both the new lines and anything previously held. One atomic action:
// "add to the check and send the course that's ready".
func (s *Session) SendDraft() {
	if len(s.Draft) == 0 {
		return
	}
	for _, d := range s.Draft {
		wave := d.Wave
		if wave < 1 {
			wave = 1
		}
		quantity := d.Quantity
		if quantity < 1 {
			quantity = 1
		}
		item := NewItem(d.Name, d.Price, quantity, wave)
		item.Seat = d.Seat
		item.Modifiers = d.Modifiers
		item.Notes = d.Notes
		s.placeItem(*item)
	}
	s.Draft = nil
	s.UpdatedAt = time.Now()

	if next := s.NextFireableWave(); next > 0 {
		s.Fire(next)
	}
}

func (s *Session) placeItem(item Item) {
	if item.Seat > 0 {
		for i := range s.Seats {
			if s.Seats[i].Number == item.Seat {
				s.Seats[i].Items = append(s.Seats[i].Items, item)
				return
			}
		}
	}
	item.Seat = 0
	s.Shared = append(s.Shared, item)
}

// RemoveWave drops an entire wave, refused while it still holds non-void items.
func (s *Session) RemoveWave(wave int) *Refusal {
	for _, item := range s.Items() {
		if item.Wave == wave && item.Active() {
			return &Refusal{
				Reason: RefusalWaveHasItems,
				Label:  "Wave still has active items; void or serve them first",
			}
		}
	}
	for si := range s.Seats {
		s.Seats[si].Items = withoutWave(s.Seats[si].Items, wave)
	}
	s.Shared = withoutWave(s.Shared, wave)
	s.UpdatedAt = time.Now()
	return nil
}

// RemoveSeat drops a seat, refused while it still holds non-void items.
func (s *Session) RemoveSeat(number int) *Refusal {
	for i, seat := range s.Seats {
		if seat.Number != number {
			continue
		}
		for _, item := range seat.Items {
			if item.Active() {
				return &Refusal{
					Reason: RefusalSeatHasItems,
					Label:  "Seat still has active items; void or serve them first",
				}
			}
		}
		s.Seats = append(s.Seats[:i], s.Seats[i+1:]...)
		s.GuestCount = len(s.Seats)
		s.UpdatedAt = time.Now()
		return nil
	}
	return nil
}

func withoutWave(items []Item, wave int) []Item {
	out := items[:0]
	for _, item := range items {
		if item.Wave != wave {
			out = append(out, item)
		}
	}
	return out
}

// normalize auto-fires the lowest held wave whenever the derived status is
// "sent" with nothing actually in the kitchen. The kitchen always starts on
// the first course immediately, which keeps "fire next wave" meaningful only
// from wave 2 on.
func (s *Session) normalize() {
	waves := s.Waves()
	if DeriveTableStatus(waves, s.Billing) != StatusSent {
		return
	}
	for _, w := range waves {
		if w.hasActiveItems() && w.Status == WaveFired {
			return
		}
	}
	if next := s.NextFireableWave(); next > 0 {
		s.Fire(next)
	}
}

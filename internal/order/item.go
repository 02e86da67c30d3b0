package order

import (
	"time"

	"github.com/aquamarinepk/aqm"
	"github.com/google/uuid"
)

type ItemStatus string

const (
	ItemHeld    ItemStatus = "held"
	ItemSent    ItemStatus = "sent"
	ItemCooking ItemStatus = "cooking"
	ItemReady   ItemStatus = "ready"
	ItemServed  ItemStatus = "served"
	ItemVoid    ItemStatus = "void"
)

// itemRank orders the forward chain held -> sent -> cooking -> ready -> served.
// Void is terminal and sits outside the chain.
var itemRank = map[ItemStatus]int{
	ItemHeld:    0,
	ItemSent:    1,
	ItemCooking: 2,
	ItemReady:   3,
	ItemServed:  4,
}

// Item is a single menu item instance on a check. Wave is the course batch the
// item belongs to; it is a first-class field, never parsed out of notes at
// runtime (see ParseWaveTag for the import path).
type Item struct {
	ID        uuid.UUID  `json:"id" bson:"_id"`
	Name      string     `json:"name" bson:"name"`
	Price     float64    `json:"price" bson:"price"`
	Quantity  int        `json:"quantity" bson:"quantity"`
	Status    ItemStatus `json:"status" bson:"status"`
	Wave      int        `json:"wave" bson:"wave"`
	Seat      int        `json:"seat,omitempty" bson:"seat,omitempty"`
	Modifiers []string   `json:"modifiers,omitempty" bson:"modifiers,omitempty"`
	Notes     string     `json:"notes,omitempty" bson:"notes,omitempty"`
	CreatedAt time.Time  `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time  `json:"updated_at" bson:"updated_at"`
}

func NewItem(name string, price float64, quantity, wave int) *Item {
	now := time.Now()
	return &Item{
		ID:        aqm.GenerateNewID(),
		Name:      name,
		Price:     price,
		Quantity:  quantity,
		Status:    ItemHeld,
		Wave:      wave,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Active reports whether the item still counts toward wave status and totals.
func (i *Item) Active() bool {
	return i.Status != ItemVoid
}

// advanceTo applies a forward transition. Void items never move again, and the
// chain cannot run backwards or repeat a state.
func (i *Item) advanceTo(target ItemStatus) bool {
	if i.Status == ItemVoid || target == ItemVoid {
		return false
	}
	if itemRank[target] <= itemRank[i.Status] {
		return false
	}
	i.Status = target
	i.UpdatedAt = time.Now()
	return true
}

func (i *Item) MarkAsSent() {
	i.advanceTo(ItemSent)
}

func (i *Item) MarkAsCooking() {
	i.advanceTo(ItemCooking)
}

func (i *Item) MarkAsReady() {
	i.advanceTo(ItemReady)
}

func (i *Item) MarkAsServed() {
	i.advanceTo(ItemServed)
}

// Void cancels the item. Terminal: a void item is excluded from derivation and
// totals and never transitions again.
func (i *Item) Void() {
	if i.Status == ItemVoid {
		return
	}
	i.Status = ItemVoid
	i.UpdatedAt = time.Now()
}

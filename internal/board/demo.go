package board

import (
	"time"

	"github.com/appetiteclub/foh/internal/order"
)

// Demo orders keep the board from rendering empty on a fresh install or when
// both live sources are unreachable. Each record carries a creation offset and
// a status schedule; the stage whose age has passed wins, so the demo board
// appears to move on its own as time goes by.

type demoStage struct {
	after  time.Duration
	status order.Status
}

func stagedStatus(age time.Duration, base order.Status, stages []demoStage) order.Status {
	status := base
	for _, s := range stages {
		if age >= s.after {
			status = s.status
		}
	}
	return status
}

// DemoOrders returns the illustrative seed orders, aged relative to now.
func DemoOrders(now time.Time) []UnifiedOrder {
	demos := []struct {
		id      string
		source  Source
		label   string
		section string
		guest   string
		note    string
		items   []Line
		created time.Duration
		base    order.Status
		stages  []demoStage
		paid    bool
	}{
		{
			id:      "seed-t1",
			source:  SourceTable,
			label:   "Window-1",
			section: "Main Room",
			guest:   "Party of 2",
			items: []Line{
				{Name: "Burrata", Price: 16, Quantity: 1, Status: string(order.ItemServed), Wave: 1, Seat: 1},
				{Name: "Tagliatelle", Price: 24, Quantity: 1, Status: string(order.ItemCooking), Wave: 2, Seat: 1},
				{Name: "Ribeye", Price: 52, Quantity: 1, Status: string(order.ItemCooking), Wave: 2, Seat: 2},
			},
			created: 35 * time.Minute,
			base:    order.StatusPreparing,
		},
		{
			id:      "seed-t2",
			source:  SourceTable,
			label:   "Patio-3",
			section: "Patio",
			guest:   "Party of 4",
			items: []Line{
				{Name: "Gazpacho", Price: 11, Quantity: 4, Status: string(order.ItemSent), Wave: 1},
			},
			created: 6 * time.Minute,
			base:    order.StatusSent,
			stages: []demoStage{
				{after: 10 * time.Minute, status: order.StatusPreparing},
				{after: 18 * time.Minute, status: order.StatusReady},
			},
		},
		{
			id:     "seed-p1",
			source: SourcePickup,
			label:  "PK-1101",
			guest:  "Ines",
			items: []Line{
				{Name: "Club Sandwich", Price: 14, Quantity: 1},
				{Name: "Iced Tea", Price: 5, Quantity: 1},
			},
			created: 12 * time.Minute,
			base:    order.StatusPreparing,
			stages: []demoStage{
				{after: 15 * time.Minute, status: order.StatusReady},
			},
		},
		{
			id:     "seed-d1",
			source: SourceDineIn,
			label:  "DI-0420",
			guest:  "Walk-in",
			note:   "bar seating",
			items: []Line{
				{Name: "Fish Tacos", Price: 16, Quantity: 2},
			},
			created: 55 * time.Minute,
			base:    order.StatusServed,
		},
		{
			id:     "seed-p2",
			source: SourcePickup,
			label:  "PK-1097",
			guest:  "Tomas",
			items: []Line{
				{Name: "Pad Thai", Price: 17, Quantity: 1},
			},
			created: 2 * time.Hour,
			base:    order.StatusClosed,
			paid:    true,
		},
	}

	out := make([]UnifiedOrder, 0, len(demos))
	for _, d := range demos {
		createdAt := now.Add(-d.created)
		status := stagedStatus(d.created, d.base, d.stages)

		var total float64
		for _, line := range d.items {
			total += line.Price * float64(line.Quantity)
		}

		var payment *Payment
		if d.paid {
			payment = &Payment{Paid: true, Method: "card"}
		}

		o := UnifiedOrder{
			ID:        UnifiedID(d.source, d.id),
			Source:    d.source,
			Label:     d.label,
			Section:   d.section,
			Guest:     d.guest,
			Status:    status,
			Items:     d.items,
			Total:     total,
			Payment:   payment,
			Note:      d.note,
			Demo:      true,
			CreatedAt: createdAt,
			UpdatedAt: createdAt,
		}
		if d.source == SourceTable {
			o.Waves = demoWaves(d.items)
		}
		out = append(out, o)
	}
	return out
}

// demoWaves rebuilds wave groupings for table-source seeds from their lines.
// Seed lines come from legacy exports, so the wave falls back through the
// historical chain when the typed field is absent.
func demoWaves(lines []Line) []order.Wave {
	items := make([]order.Item, 0, len(lines))
	for _, line := range lines {
		item := order.NewItem(line.Name, line.Price, line.Quantity, order.ImportWave(line.Wave, "", ""))
		item.Status = order.ItemStatus(line.Status)
		item.Seat = line.Seat
		items = append(items, *item)
	}
	return order.GroupWaves(items)
}

package order

import "sort"

type WaveStatus string

const (
	WaveHeld    WaveStatus = "held"
	WaveFired   WaveStatus = "fired"
	WaveCooking WaveStatus = "cooking"
	WaveReady   WaveStatus = "ready"
	WaveServed  WaveStatus = "served"
)

// Wave is a computed grouping of a check's items into one course batch. It is
// never stored on its own; Status is always recomputed from the items.
type Wave struct {
	Number int        `json:"number"`
	Status WaveStatus `json:"status"`
	Items  []Item     `json:"items"`
}

// DeriveWaveStatus computes a wave's status from its non-void items. The
// precedence is fixed: ready beats cooking beats fired beats served beats held,
// so the board always surfaces the most urgent sub-state. An empty wave is held.
func DeriveWaveStatus(items []Item) WaveStatus {
	var anyReady, anyCooking, anySent, anyServed, anyHeld bool
	for i := range items {
		switch items[i].Status {
		case ItemReady:
			anyReady = true
		case ItemCooking:
			anyCooking = true
		case ItemSent:
			anySent = true
		case ItemServed:
			anyServed = true
		case ItemHeld:
			anyHeld = true
		}
	}
	switch {
	case anyReady:
		return WaveReady
	case anyCooking:
		return WaveCooking
	case anySent:
		return WaveFired
	case anyServed:
		return WaveServed
	case anyHeld:
		return WaveHeld
	default:
		return WaveHeld
	}
}

// GroupWaves partitions items into waves ordered by wave number. Void items
// stay listed inside their wave but do not vote on its status.
func GroupWaves(items []Item) []Wave {
	byNumber := make(map[int][]Item)
	for _, item := range items {
		byNumber[item.Wave] = append(byNumber[item.Wave], item)
	}

	numbers := make([]int, 0, len(byNumber))
	for n := range byNumber {
		numbers = append(numbers, n)
	}
	sort.Ints(numbers)

	waves := make([]Wave, 0, len(numbers))
	for _, n := range numbers {
		group := byNumber[n]
		active := make([]Item, 0, len(group))
		for _, item := range group {
			if item.Active() {
				active = append(active, item)
			}
		}
		waves = append(waves, Wave{
			Number: n,
			Status: DeriveWaveStatus(active),
			Items:  group,
		})
	}
	return waves
}

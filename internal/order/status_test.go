package order

import "testing"

func itemsWithStatuses(statuses ...ItemStatus) []Item {
	items := make([]Item, len(statuses))
	for i, st := range statuses {
		item := NewItem("dish", 10, 1, 1)
		item.Status = st
		items[i] = *item
	}
	return items
}

func TestDeriveWaveStatus(t *testing.T) {
	tests := []struct {
		name     string
		statuses []ItemStatus
		want     WaveStatus
	}{
		{
			name:     "readyBeatsServed",
			statuses: []ItemStatus{ItemReady, ItemServed},
			want:     WaveReady,
		},
		{
			name:     "readyBeatsCooking",
			statuses: []ItemStatus{ItemCooking, ItemReady},
			want:     WaveReady,
		},
		{
			name:     "cookingBeatsSent",
			statuses: []ItemStatus{ItemSent, ItemCooking},
			want:     WaveCooking,
		},
		{
			name:     "sentBeatsServed",
			statuses: []ItemStatus{ItemSent, ItemServed},
			want:     WaveFired,
		},
		{
			name:     "servedBeatsHeld",
			statuses: []ItemStatus{ItemServed, ItemHeld},
			want:     WaveServed,
		},
		{
			name:     "allServed",
			statuses: []ItemStatus{ItemServed, ItemServed},
			want:     WaveServed,
		},
		{
			name:     "allHeld",
			statuses: []ItemStatus{ItemHeld, ItemHeld},
			want:     WaveHeld,
		},
		{
			name:     "empty",
			statuses: nil,
			want:     WaveHeld,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DeriveWaveStatus(itemsWithStatuses(tt.statuses...))
			if got != tt.want {
				t.Errorf("DeriveWaveStatus() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDeriveWaveStatusIgnoresVoid(t *testing.T) {
	items := itemsWithStatuses(ItemHeld)
	voided := NewItem("86d dish", 12, 1, 1)
	voided.Status = ItemVoid

	// GroupWaves filters void items before derivation; mirror that here.
	got := DeriveWaveStatus(items)
	if got != WaveHeld {
		t.Errorf("DeriveWaveStatus() = %q, want %q", got, WaveHeld)
	}

	waves := GroupWaves(append(items, *voided))
	if len(waves) != 1 {
		t.Fatalf("GroupWaves() returned %d waves, want 1", len(waves))
	}
	if waves[0].Status != WaveHeld {
		t.Errorf("wave status = %q, want %q", waves[0].Status, WaveHeld)
	}
	if len(waves[0].Items) != 2 {
		t.Errorf("wave keeps void items listed, got %d items, want 2", len(waves[0].Items))
	}
}

func TestGroupWavesOrdersAscending(t *testing.T) {
	items := []Item{}
	for _, wave := range []int{3, 1, 2, 1} {
		item := NewItem("dish", 10, 1, wave)
		items = append(items, *item)
	}

	waves := GroupWaves(items)
	if len(waves) != 3 {
		t.Fatalf("GroupWaves() returned %d waves, want 3", len(waves))
	}
	for i, want := range []int{1, 2, 3} {
		if waves[i].Number != want {
			t.Errorf("waves[%d].Number = %d, want %d", i, waves[i].Number, want)
		}
	}
	if len(waves[0].Items) != 2 {
		t.Errorf("wave 1 has %d items, want 2", len(waves[0].Items))
	}
}

func waveWith(number int, statuses ...ItemStatus) Wave {
	items := itemsWithStatuses(statuses...)
	for i := range items {
		items[i].Wave = number
	}
	return Wave{Number: number, Status: DeriveWaveStatus(items), Items: items}
}

func TestDeriveTableStatus(t *testing.T) {
	tests := []struct {
		name    string
		waves   []Wave
		billing bool
		want    Status
	}{
		{
			name:  "readyWaveWins",
			waves: []Wave{waveWith(1, ItemServed, ItemServed), waveWith(2, ItemReady)},
			want:  StatusReady,
		},
		{
			name:  "cookingWave",
			waves: []Wave{waveWith(1, ItemCooking)},
			want:  StatusPreparing,
		},
		{
			name:  "firedWaveBeatsServedCourse",
			waves: []Wave{waveWith(1, ItemServed, ItemServed), waveWith(2, ItemSent)},
			want:  StatusSent,
		},
		{
			name:  "servedPlusHeldIsStillDining",
			waves: []Wave{waveWith(1, ItemServed, ItemServed), waveWith(2, ItemHeld)},
			want:  StatusServed,
		},
		{
			name:  "allServed",
			waves: []Wave{waveWith(1, ItemServed), waveWith(2, ItemServed)},
			want:  StatusServed,
		},
		{
			name:    "allServedWhileBilling",
			waves:   []Wave{waveWith(1, ItemServed)},
			billing: true,
			want:    StatusClosed,
		},
		{
			name:  "heldOnlyIsSent",
			waves: []Wave{waveWith(1, ItemHeld)},
			want:  StatusSent,
		},
		{
			name:  "noWaves",
			waves: nil,
			want:  StatusSent,
		},
		{
			name:    "noWavesWhileBilling",
			waves:   nil,
			billing: true,
			want:    StatusClosed,
		},
		{
			name:  "allVoidWaveDoesNotVote",
			waves: []Wave{waveWith(1, ItemVoid, ItemVoid), waveWith(2, ItemServed)},
			want:  StatusServed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DeriveTableStatus(tt.waves, tt.billing)
			if got != tt.want {
				t.Errorf("DeriveTableStatus() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseWaveTag(t *testing.T) {
	tests := []struct {
		name  string
		notes string
		want  int
	}{
		{name: "plainTag", notes: "Wave 2", want: 2},
		{name: "lowercase", notes: "share with wave 3 please", want: 3},
		{name: "noSpace", notes: "wave2", want: 2},
		{name: "noTag", notes: "no onions", want: 0},
		{name: "empty", notes: "", want: 0},
		{name: "zeroIsInvalid", notes: "wave 0", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseWaveTag(tt.notes); got != tt.want {
				t.Errorf("ParseWaveTag(%q) = %d, want %d", tt.notes, got, tt.want)
			}
		})
	}
}

func TestImportWave(t *testing.T) {
	tests := []struct {
		name     string
		explicit int
		notes    string
		category string
		want     int
	}{
		{name: "explicitFieldWins", explicit: 4, notes: "wave 2", category: "desserts", want: 4},
		{name: "noteTagFallback", notes: "Wave 2", category: "desserts", want: 2},
		{name: "categoryFallback", category: "desserts", want: 3},
		{name: "mainsCategory", category: "Mains", want: 2},
		{name: "unknownCategoryDefaultsToOne", category: "specials", want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ImportWave(tt.explicit, tt.notes, tt.category); got != tt.want {
				t.Errorf("ImportWave() = %d, want %d", got, tt.want)
			}
		})
	}
}

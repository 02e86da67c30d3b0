package board

import (
	"reflect"
	"testing"
	"time"

	"github.com/appetiteclub/foh/internal/order"
)

func boardFixtures() []UnifiedOrder {
	now := time.Now()
	mk := func(id string, source Source, status order.Status, label, guest string, items ...Line) UnifiedOrder {
		return UnifiedOrder{
			ID:        UnifiedID(source, id),
			Source:    source,
			Label:     label,
			Guest:     guest,
			Status:    status,
			Items:     items,
			CreatedAt: now,
		}
	}
	return []UnifiedOrder{
		mk("t1", SourceTable, order.StatusReady, "Window-1", "Party of 2", Line{Name: "Ribeye"}),
		mk("t2", SourceTable, order.StatusServed, "Patio-3", "Party of 4", Line{Name: "Gazpacho"}),
		mk("t3", SourceTable, order.StatusClosed, "Booth-7", "", Line{Name: "Espresso"}),
		mk("p1", SourcePickup, order.StatusPreparing, "PK-1101", "Ines", Line{Name: "Club Sandwich"}),
		mk("p2", SourcePickup, order.StatusServed, "PK-1097", "Tomas", Line{Name: "Pad Thai"}),
		mk("p3", SourcePickup, order.StatusRefunded, "PK-1080", "Ana", Line{Name: "Ramen"}),
		mk("d1", SourceDineIn, order.StatusSent, "DI-0420", "Walk-in", Line{Name: "Fish Tacos"}),
		mk("d2", SourceDineIn, order.StatusVoided, "DI-0399", "Walk-in", Line{Name: "Nachos"}),
	}
}

func TestBoardModePartitionIsTotalAndDisjoint(t *testing.T) {
	orders := boardFixtures()
	for _, o := range orders {
		live := VisibleIn(ModeLive, o)
		history := VisibleIn(ModeHistory, o)
		if live == history {
			t.Errorf("order %s: live=%v history=%v, want exactly one board", o.ID, live, history)
		}
	}
}

func TestServedVisibilityDependsOnSource(t *testing.T) {
	orders := boardFixtures()
	for _, o := range orders {
		if o.Status != order.StatusServed {
			continue
		}
		wantLive := o.Source == SourceTable
		if got := VisibleIn(ModeLive, o); got != wantLive {
			t.Errorf("served order %s: VisibleIn(live) = %v, want %v", o.ID, got, wantLive)
		}
	}
}

func TestApplyModeFilter(t *testing.T) {
	orders := boardFixtures()

	live := Apply(orders, Filter{Mode: ModeLive})
	history := Apply(orders, Filter{Mode: ModeHistory})

	if len(live)+len(history) != len(orders) {
		t.Errorf("partition dropped or duplicated orders: %d + %d != %d", len(live), len(history), len(orders))
	}

	wantLive := []string{"table:t1", "table:t2", "pickup:p1", "dine_in_no_table:d1"}
	gotLive := make([]string, 0, len(live))
	for _, o := range live {
		gotLive = append(gotLive, o.ID)
	}
	if !reflect.DeepEqual(gotLive, wantLive) {
		t.Errorf("live board = %v, want %v", gotLive, wantLive)
	}
}

func TestApplySourceFilterToggleIsIdempotent(t *testing.T) {
	orders := boardFixtures()

	before := Apply(orders, Filter{Mode: ModeLive})
	_ = Apply(orders, Filter{Mode: ModeLive, Source: SourcePickup})
	after := Apply(orders, Filter{Mode: ModeLive})

	if !reflect.DeepEqual(before, after) {
		t.Error("clearing the source filter must restore the exact previous list and ordering")
	}
}

func TestApplyInvalidStatusFilterResetsToAll(t *testing.T) {
	orders := boardFixtures()

	// "sent" is not a history status; the filter silently resets to all.
	got := Apply(orders, Filter{Mode: ModeHistory, Status: order.StatusSent})
	all := Apply(orders, Filter{Mode: ModeHistory})

	if !reflect.DeepEqual(got, all) {
		t.Errorf("invalid status filter returned %d orders, want the unfiltered %d", len(got), len(all))
	}
}

func TestApplyStatusFilter(t *testing.T) {
	orders := boardFixtures()

	got := Apply(orders, Filter{Mode: ModeLive, Status: order.StatusReady})
	if len(got) != 1 || got[0].ID != "table:t1" {
		t.Errorf("status filter returned %v", got)
	}
}

func TestApplySearch(t *testing.T) {
	orders := boardFixtures()

	tests := []struct {
		name   string
		search string
		want   []string
	}{
		{name: "matchesLabel", search: "window", want: []string{"table:t1"}},
		{name: "matchesGuest", search: "ines", want: []string{"pickup:p1"}},
		{name: "matchesItemName", search: "ribeye", want: []string{"table:t1"}},
		{name: "caseInsensitive", search: "FISH TACOS", want: []string{"dine_in_no_table:d1"}},
		{name: "noMatch", search: "sushi", want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Apply(orders, Filter{Mode: ModeLive, Search: tt.search})
			ids := make([]string, 0, len(got))
			for _, o := range got {
				ids = append(ids, o.ID)
			}
			if !reflect.DeepEqual(ids, tt.want) {
				t.Errorf("search %q = %v, want %v", tt.search, ids, tt.want)
			}
		})
	}
}

func TestSourceCountsIgnoreStatusAndSourceFilters(t *testing.T) {
	orders := boardFixtures()

	counts := SourceCounts(orders, Filter{
		Mode:   ModeLive,
		Source: SourcePickup,      // must be ignored
		Status: order.StatusReady, // must be ignored
	})

	want := map[Source]int{SourceTable: 2, SourcePickup: 1, SourceDineIn: 1}
	if !reflect.DeepEqual(counts, want) {
		t.Errorf("SourceCounts() = %v, want %v", counts, want)
	}
}

func TestStatusCountsRespectSourceFilter(t *testing.T) {
	orders := boardFixtures()

	counts := StatusCounts(orders, Filter{
		Mode:   ModeLive,
		Source: SourceTable,
		Status: order.StatusReady, // must be ignored
	})

	want := map[order.Status]int{order.StatusReady: 1, order.StatusServed: 1}
	if !reflect.DeepEqual(counts, want) {
		t.Errorf("StatusCounts() = %v, want %v", counts, want)
	}
}

func TestGroupByStatusFixedOrderAndOmitsEmpty(t *testing.T) {
	orders := boardFixtures()

	live := GroupByStatus(Apply(orders, Filter{Mode: ModeLive}), ModeLive)
	gotOrder := make([]order.Status, 0, len(live))
	for _, g := range live {
		gotOrder = append(gotOrder, g.Status)
		if len(g.Orders) == 0 {
			t.Errorf("empty bucket %q included in output", g.Status)
		}
	}
	want := []order.Status{order.StatusReady, order.StatusPreparing, order.StatusSent, order.StatusServed}
	if !reflect.DeepEqual(gotOrder, want) {
		t.Errorf("live group order = %v, want %v", gotOrder, want)
	}

	history := GroupByStatus(Apply(orders, Filter{Mode: ModeHistory}), ModeHistory)
	wantHistory := []order.Status{order.StatusServed, order.StatusClosed, order.StatusVoided, order.StatusRefunded}
	gotHistory := make([]order.Status, 0, len(history))
	for _, g := range history {
		gotHistory = append(gotHistory, g.Status)
	}
	if !reflect.DeepEqual(gotHistory, wantHistory) {
		t.Errorf("history group order = %v, want %v", gotHistory, wantHistory)
	}
}

func TestFilterNormalizeDefaultsToLive(t *testing.T) {
	f := Filter{}.Normalize()
	if f.Mode != ModeLive {
		t.Errorf("Normalize() mode = %q, want %q", f.Mode, ModeLive)
	}
}

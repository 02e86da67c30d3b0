package board

import (
	"strings"

	"github.com/appetiteclub/foh/internal/order"
)

type Mode string

const (
	ModeLive    Mode = "live"
	ModeHistory Mode = "history"
)

// liveBucketOrder and historyBucketOrder fix the display order of board
// groups. Empty buckets are computed but omitted from output.
var (
	liveBucketOrder    = []order.Status{order.StatusReady, order.StatusPreparing, order.StatusSent, order.StatusServed}
	historyBucketOrder = []order.Status{order.StatusServed, order.StatusClosed, order.StatusVoided, order.StatusRefunded}
)

// Filter is the conjunction of board mode, optional source, optional status
// and free-text search. Empty Source/Status/Search mean "all".
type Filter struct {
	Mode   Mode         `json:"mode"`
	Source Source       `json:"source,omitempty"`
	Status order.Status `json:"status,omitempty"`
	Search string       `json:"search,omitempty"`
}

// VisibleIn decides the live/history partition. Live shows the active
// statuses, plus served for table orders only: a served counter ticket is
// done and belongs to history, a served table is still occupied. History is
// the exact complement, so every order lands in exactly one board.
func VisibleIn(mode Mode, o UnifiedOrder) bool {
	live := false
	switch o.Status {
	case order.StatusSent, order.StatusPreparing, order.StatusReady:
		live = true
	case order.StatusServed:
		live = o.Source == SourceTable
	}
	if mode == ModeLive {
		return live
	}
	return !live
}

// ValidStatuses lists the status filters that make sense for a board mode.
func ValidStatuses(mode Mode) []order.Status {
	if mode == ModeHistory {
		return historyBucketOrder
	}
	return liveBucketOrder
}

func statusValidFor(mode Mode, status order.Status) bool {
	for _, s := range ValidStatuses(mode) {
		if s == status {
			return true
		}
	}
	return false
}

// Normalize resets a status filter that is invalid for the current board mode
// back to "all". Toggling board modes never errors, it only drops the filter.
func (f Filter) Normalize() Filter {
	if f.Mode == "" {
		f.Mode = ModeLive
	}
	if f.Status != "" && !statusValidFor(f.Mode, f.Status) {
		f.Status = ""
	}
	return f
}

// Apply filters the unified list. Input order is preserved, so clearing a
// filter always restores the previous view exactly.
func Apply(orders []UnifiedOrder, f Filter) []UnifiedOrder {
	f = f.Normalize()
	out := make([]UnifiedOrder, 0, len(orders))
	for _, o := range orders {
		if !matchesBase(o, f) {
			continue
		}
		if f.Status != "" && o.Status != f.Status {
			continue
		}
		out = append(out, o)
	}
	return out
}

// matchesBase applies everything except the status filter: mode visibility,
// source filter and search.
func matchesBase(o UnifiedOrder, f Filter) bool {
	if !VisibleIn(f.Mode, o) {
		return false
	}
	if f.Source != "" && o.Source != f.Source {
		return false
	}
	return matchesSearch(o, f.Search)
}

func matchesSearch(o UnifiedOrder, query string) bool {
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	if strings.Contains(strings.ToLower(o.Label), q) ||
		strings.Contains(strings.ToLower(o.Section), q) ||
		strings.Contains(strings.ToLower(o.Guest), q) {
		return true
	}
	for _, line := range o.Items {
		if strings.Contains(strings.ToLower(line.Name), q) {
			return true
		}
	}
	return false
}

// SourceCounts counts orders per source, ignoring both the status filter and
// the source filter, so each chip shows what selecting it would yield.
func SourceCounts(orders []UnifiedOrder, f Filter) map[Source]int {
	f = f.Normalize()
	counts := make(map[Source]int)
	for _, o := range orders {
		if !VisibleIn(f.Mode, o) || !matchesSearch(o, f.Search) {
			continue
		}
		counts[o.Source]++
	}
	return counts
}

// StatusCounts counts orders per status, ignoring the status filter but
// respecting the source filter.
func StatusCounts(orders []UnifiedOrder, f Filter) map[order.Status]int {
	f = f.Normalize()
	counts := make(map[order.Status]int)
	for _, o := range orders {
		if !matchesBase(o, f) {
			continue
		}
		counts[o.Status]++
	}
	return counts
}

// Group is one status bucket of the board.
type Group struct {
	Status order.Status   `json:"status"`
	Orders []UnifiedOrder `json:"orders"`
}

// GroupByStatus partitions filtered orders into the fixed bucket sequence for
// the board mode. Buckets that end up empty are dropped from the result.
func GroupByStatus(orders []UnifiedOrder, mode Mode) []Group {
	byStatus := make(map[order.Status][]UnifiedOrder)
	for _, o := range orders {
		byStatus[o.Status] = append(byStatus[o.Status], o)
	}

	buckets := liveBucketOrder
	if mode == ModeHistory {
		buckets = historyBucketOrder
	}

	groups := make([]Group, 0, len(buckets))
	for _, status := range buckets {
		if members := byStatus[status]; len(members) > 0 {
			groups = append(groups, Group{Status: status, Orders: members})
		}
	}
	return groups
}

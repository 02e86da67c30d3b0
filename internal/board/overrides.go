package board

import (
	"sync"

	"github.com/appetiteclub/foh/internal/order"
)

// Overrides is a live patch of wave statuses, keyed by unified order id then
// wave number. It is applied after the merge and before re-derivation; because
// re-derivation is a pure function of the patched snapshot, applying the same
// override repeatedly is idempotent.
type Overrides map[string]map[int]order.WaveStatus

// OverrideStore keeps the live override map for the current UI session.
type OverrideStore struct {
	mu        sync.RWMutex
	overrides Overrides
}

func NewOverrideStore() *OverrideStore {
	return &OverrideStore{overrides: make(Overrides)}
}

func (st *OverrideStore) Set(orderID string, wave int, status order.WaveStatus) {
	st.mu.Lock()
	defer st.mu.Unlock()
	if st.overrides[orderID] == nil {
		st.overrides[orderID] = make(map[int]order.WaveStatus)
	}
	st.overrides[orderID][wave] = status
}

func (st *OverrideStore) Clear(orderID string) {
	st.mu.Lock()
	defer st.mu.Unlock()
	delete(st.overrides, orderID)
}

// Snapshot returns a deep copy safe to hand to the aggregator.
func (st *OverrideStore) Snapshot() Overrides {
	st.mu.RLock()
	defer st.mu.RUnlock()
	out := make(Overrides, len(st.overrides))
	for id, waves := range st.overrides {
		copied := make(map[int]order.WaveStatus, len(waves))
		for n, status := range waves {
			copied[n] = status
		}
		out[id] = copied
	}
	return out
}

package quota

import (
	"sync"

	"arlan-hq/meridian/pkg/catalog"
	"arlan-hq/meridian/pkg/config"
)

// Tracker maintains running counts of committed decisions per product.
//
// Counts only ever grow during a run; Reset starts a fresh batch. Target
// shares come from configuration and stay fixed for the tracker's
// lifetime.
type Tracker struct {
	cfg config.QuotaConfig

	counts map[catalog.Product]int64
	total  int64

	mu sync.RWMutex
}

// NewTracker creates a tracker with zero counts.
func NewTracker(cfg config.QuotaConfig) *Tracker {
	return &Tracker{
		cfg:    cfg,
		counts: make(map[catalog.Product]int64, catalog.Size()),
	}
}

// Record commits one decision for the product.
func (t *Tracker) Record(p catalog.Product) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.counts[p]++
	t.total++
}

// Total returns the number of committed decisions.
func (t *Tracker) Total() int64 {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.total
}

// Count returns the number of decisions committed to the product.
func (t *Tracker) Count(p catalog.Product) int64 {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.counts[p]
}

// Share returns the product's current share of all decisions. With no
// decisions yet it returns 0 for every product.
func (t *Tracker) Share(p catalog.Product) float64 {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.shareLocked(p)
}

func (t *Tracker) shareLocked(p catalog.Product) float64 {
	if t.total == 0 {
		return 0
	}
	return float64(t.counts[p]) / float64(t.total)
}

// ShareIf returns the share the product would hold if it won the next
// decision. The denominator includes that hypothetical decision, so with
// no history the result is 1.
func (t *Tracker) ShareIf(p catalog.Product) float64 {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return float64(t.counts[p]+1) / float64(t.total+1)
}

// Target returns the product's configured target share, falling back to
// the default target for products without an explicit entry.
func (t *Tracker) Target(p catalog.Product) float64 {
	if target, ok := t.cfg.Targets[string(p)]; ok {
		return target
	}
	return t.cfg.DefaultTarget
}

// Underrepresented reports whether the product's share sits below the
// configured minimum share. Before any decision is committed no product
// is considered underrepresented.
func (t *Tracker) Underrepresented(p catalog.Product) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if t.total == 0 {
		return false
	}
	return t.shareLocked(p) < t.cfg.MinShare
}

// Snapshot returns a copy of per-product counts and the total. The copy
// includes zero entries for every catalog product so callers can report
// a full distribution.
func (t *Tracker) Snapshot() (map[catalog.Product]int64, int64) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	counts := make(map[catalog.Product]int64, catalog.Size())
	for _, p := range catalog.All() {
		counts[p] = t.counts[p]
	}
	return counts, t.total
}

// Reset clears all counts for a new batch.
func (t *Tracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.counts = make(map[catalog.Product]int64, catalog.Size())
	t.total = 0
}

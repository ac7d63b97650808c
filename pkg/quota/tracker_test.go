package quota

import (
	"sync"
	"testing"

	"arlan-hq/meridian/pkg/catalog"
	"arlan-hq/meridian/pkg/config"
)

func newTestTracker() *Tracker {
	cfg := config.QuotaConfig{
		Targets: map[string]float64{
			string(catalog.CreditCard): 0.20,
			string(catalog.TravelCard): 0.10,
		},
		DefaultTarget: 0.10,
		MinShare:      0.05,
	}
	return NewTracker(cfg)
}

func TestTracker_SharesSumToOne(t *testing.T) {
	tr := newTestTracker()

	tr.Record(catalog.CreditCard)
	tr.Record(catalog.CreditCard)
	tr.Record(catalog.TravelCard)
	tr.Record(catalog.SavingsDeposit)

	var sum float64
	for _, p := range catalog.All() {
		sum += tr.Share(p)
	}
	if sum != 1.0 {
		t.Errorf("shares sum to %v, want 1", sum)
	}
	if got := tr.Share(catalog.CreditCard); got != 0.5 {
		t.Errorf("credit_card share = %v, want 0.5", got)
	}
}

func TestTracker_EmptyShares(t *testing.T) {
	tr := newTestTracker()

	if got := tr.Share(catalog.CreditCard); got != 0 {
		t.Errorf("Share() on empty tracker = %v, want 0", got)
	}
	if tr.Underrepresented(catalog.GoldBars) {
		t.Error("no product should be underrepresented before any decision")
	}
	if got := tr.ShareIf(catalog.CreditCard); got != 1 {
		t.Errorf("ShareIf() on empty tracker = %v, want 1", got)
	}
}

func TestTracker_ShareIf(t *testing.T) {
	tr := newTestTracker()
	for i := 0; i < 9; i++ {
		tr.Record(catalog.SavingsDeposit)
	}

	// 0 of 9 now; winning the 10th makes it 1 of 10.
	if got := tr.ShareIf(catalog.CreditCard); got != 0.1 {
		t.Errorf("ShareIf() = %v, want 0.1", got)
	}
	// Share itself must not move on a query.
	if got := tr.Share(catalog.CreditCard); got != 0 {
		t.Errorf("Share() after ShareIf = %v, want 0", got)
	}
}

func TestTracker_TargetFallback(t *testing.T) {
	tr := newTestTracker()

	if got := tr.Target(catalog.CreditCard); got != 0.20 {
		t.Errorf("Target(credit_card) = %v, want 0.20", got)
	}
	if got := tr.Target(catalog.GoldBars); got != 0.10 {
		t.Errorf("Target(gold_bars) = %v, want default 0.10", got)
	}
}

func TestTracker_Underrepresented(t *testing.T) {
	tr := newTestTracker()
	for i := 0; i < 30; i++ {
		tr.Record(catalog.CreditCard)
	}
	tr.Record(catalog.TravelCard)

	// travel_card holds 1/31 ≈ 3.2%, below the 5% minimum.
	if !tr.Underrepresented(catalog.TravelCard) {
		t.Error("travel_card should be underrepresented")
	}
	if tr.Underrepresented(catalog.CreditCard) {
		t.Error("credit_card should not be underrepresented")
	}
}

func TestTracker_SnapshotAndReset(t *testing.T) {
	tr := newTestTracker()
	tr.Record(catalog.Investments)

	counts, total := tr.Snapshot()
	if total != 1 || counts[catalog.Investments] != 1 {
		t.Errorf("Snapshot() = %v/%d, want investments=1 total=1", counts, total)
	}
	if len(counts) != catalog.Size() {
		t.Errorf("Snapshot() has %d entries, want %d", len(counts), catalog.Size())
	}

	// Mutating the snapshot must not touch the tracker.
	counts[catalog.Investments] = 99
	if tr.Count(catalog.Investments) != 1 {
		t.Error("snapshot mutation leaked into the tracker")
	}

	tr.Reset()
	if tr.Total() != 0 || tr.Count(catalog.Investments) != 0 {
		t.Error("Reset() should clear all counts")
	}
}

func TestTracker_ConcurrentRecord(t *testing.T) {
	tr := newTestTracker()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				tr.Record(catalog.CreditCard)
				tr.Share(catalog.CreditCard)
			}
		}()
	}
	wg.Wait()

	if tr.Total() != 800 {
		t.Errorf("Total() = %d, want 800", tr.Total())
	}
}

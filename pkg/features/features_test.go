package features

import (
	"reflect"
	"testing"
)

func TestAccessors_ZeroDefaults(t *testing.T) {
	// A zero-value feature vector must never panic and must report zero
	// activity everywhere.
	f := &ClientFeatures{ClientCode: 1}

	if got := f.SpendAmount(CategoryTaxi); got != 0 {
		t.Errorf("SpendAmount on nil map = %v, want 0", got)
	}
	if got := f.TransferAmount(TransferFXBuy); got != 0 {
		t.Errorf("TransferAmount on nil map = %v, want 0", got)
	}
	if got := f.TotalSpend(); got != 0 {
		t.Errorf("TotalSpend = %v, want 0", got)
	}
	if got := f.FXVolume(); got != 0 {
		t.Errorf("FXVolume = %v, want 0", got)
	}
	if got := f.PropensityScore("travel_card"); got != 0.5 {
		t.Errorf("PropensityScore with no scores = %v, want neutral 0.5", got)
	}
}

func TestCashFlow(t *testing.T) {
	tests := []struct {
		name        string
		transfers   map[string]float64
		wantDeficit float64
		wantSurplus float64
	}{
		{
			name: "deficit",
			transfers: map[string]float64{
				TransferSalaryIn: 100000,
				TransferP2POut:   250000,
			},
			wantDeficit: 150000,
			wantSurplus: 0,
		},
		{
			name: "surplus",
			transfers: map[string]float64{
				TransferSalaryIn: 400000,
				TransferCardOut:  150000,
			},
			wantDeficit: 0,
			wantSurplus: 250000,
		},
		{
			name:        "no activity",
			transfers:   nil,
			wantDeficit: 0,
			wantSurplus: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &ClientFeatures{Transfers: tt.transfers}
			if got := f.CashDeficit(); got != tt.wantDeficit {
				t.Errorf("CashDeficit() = %v, want %v", got, tt.wantDeficit)
			}
			if got := f.CashSurplus(); got != tt.wantSurplus {
				t.Errorf("CashSurplus() = %v, want %v", got, tt.wantSurplus)
			}
		})
	}
}

func TestTopSpendCategories(t *testing.T) {
	f := &ClientFeatures{
		Spend: map[string]float64{
			CategoryTaxi:        30000,
			CategoryRestaurants: 90000,
			CategoryGroceries:   60000,
			CategoryCinema:      0, // zero spend excluded
			CategoryGas:         30000,
		},
	}

	got := f.TopSpendCategories(3)
	// gas and taxi tie at 30000; alphabetical order breaks the tie.
	want := []string{CategoryRestaurants, CategoryGroceries, CategoryGas}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("TopSpendCategories(3) = %v, want %v", got, want)
	}

	if total := f.TopSpendTotal(3); total != 180000 {
		t.Errorf("TopSpendTotal(3) = %v, want 180000", total)
	}
}

func TestFXVolume(t *testing.T) {
	f := &ClientFeatures{
		Transfers: map[string]float64{
			TransferFXBuy:  20000,
			TransferFXSell: 15000,
		},
	}
	if got := f.FXVolume(); got != 35000 {
		t.Errorf("FXVolume() = %v, want 35000", got)
	}
}

package segment

import (
	"arlan-hq/meridian/pkg/catalog"
	"arlan-hq/meridian/pkg/features"
)

// Propensities estimates how receptive the client is to each product on
// a 0 to 1 scale, 0.5 being neutral. The estimates come from simple
// activity ratios rather than the benefit model, so decision
// diagnostics can show affinity and benefit separately.
func Propensities(f *features.ClientFeatures) map[string]float64 {
	out := make(map[string]float64, len(catalog.All()))
	for _, p := range catalog.All() {
		out[string(p)] = 0.5
	}

	if total := f.TotalSpend(); total > 0 {
		travel := f.SpendAmount(features.CategoryTravel) +
			f.SpendAmount(features.CategoryHotels) +
			f.SpendAmount(features.CategoryTaxi)
		out[string(catalog.TravelCard)] = clamp01(0.35 + 0.65*travel/total)

		lifestyle := f.SpendAmount(features.CategoryRestaurants) +
			f.SpendAmount(features.CategoryCosmetics) +
			f.SpendAmount(features.CategoryJewelry)
		out[string(catalog.PremiumCard)] = clamp01(0.35 + 0.65*lifestyle/total)

		out[string(catalog.CreditCard)] = clamp01(0.35 + 0.65*f.TopSpendTotal(3)/total)
	}

	if fx := f.FXVolume(); fx > 0 {
		out[string(catalog.FXExchange)] = clamp01(0.5 + fx/1_000_000)
		out[string(catalog.MulticurrencyDeposit)] = clamp01(0.5 + fx/2_000_000)
	}

	if deficit := f.CashDeficit(); deficit > 0 {
		out[string(catalog.CashLoan)] = clamp01(0.5 + deficit/1_000_000)
	}

	// Idle money raises affinity for savings products, saturating
	// around a 3M balance.
	saver := clamp01(f.Balance / 3_000_000)
	out[string(catalog.SavingsDeposit)] = clamp01(0.4 + 0.5*saver)
	out[string(catalog.AccumulationDeposit)] = clamp01(0.4 + 0.4*saver)
	out[string(catalog.Investments)] = clamp01(0.4 + 0.3*saver)
	out[string(catalog.GoldBars)] = clamp01(0.4 + 0.2*saver)

	return out
}

// AddPropensities fills the Propensity map of every client in place.
func AddPropensities(clients []*features.ClientFeatures) {
	for _, f := range clients {
		f.Propensity = Propensities(f)
	}
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}

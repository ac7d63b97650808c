package rules

import (
	"arlan-hq/meridian/pkg/catalog"
	"arlan-hq/meridian/pkg/config"
	"arlan-hq/meridian/pkg/features"
)

// Rule is a mandatory business rule: a predicate over client features
// and the product it forces when the predicate holds.
type Rule interface {
	// Name identifies the rule in decision diagnostics and logs.
	Name() string

	// Product is the catalog product the rule forces.
	Product() catalog.Product

	// Applies reports whether the rule's predicate holds for the client.
	Applies(f *features.ClientFeatures) bool
}

// HighFXVolume forces the currency exchange product for clients whose
// exchange volume over the window exceeds the threshold.
type HighFXVolume struct {
	Threshold float64
}

func (r HighFXVolume) Name() string             { return "high_fx_volume" }
func (r HighFXVolume) Product() catalog.Product { return catalog.FXExchange }

func (r HighFXVolume) Applies(f *features.ClientFeatures) bool {
	return f.FXVolume() > r.Threshold
}

// CashFlowDeficit forces the cash loan for clients whose outflows exceed
// inflows by more than the threshold while their balance cannot cover
// the gap.
type CashFlowDeficit struct {
	Deficit    float64
	LowBalance float64
}

func (r CashFlowDeficit) Name() string             { return "cash_flow_deficit" }
func (r CashFlowDeficit) Product() catalog.Product { return catalog.CashLoan }

func (r CashFlowDeficit) Applies(f *features.ClientFeatures) bool {
	return f.CashDeficit() > r.Deficit && f.Balance < r.LowBalance
}

// DefaultRules returns the rule set in priority order.
func DefaultRules(cfg config.RulesConfig) []Rule {
	return []Rule{
		HighFXVolume{Threshold: cfg.FXVolumeThreshold},
		CashFlowDeficit{
			Deficit:    cfg.CashDeficitThreshold,
			LowBalance: cfg.LowBalance,
		},
	}
}

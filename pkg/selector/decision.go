package selector

import (
	"arlan-hq/meridian/pkg/benefit"
	"arlan-hq/meridian/pkg/catalog"
)

// Reason records which path produced a decision.
type Reason string

const (
	// ReasonMandatory means a mandatory rule short-circuited selection.
	ReasonMandatory Reason = "mandatory"

	// ReasonScored means the weighted ranking chose the product.
	ReasonScored Reason = "scored"

	// ReasonAntiMonopoly means a near-tied runner-up was preferred over
	// an over-assigned leader.
	ReasonAntiMonopoly Reason = "anti_monopoly"

	// ReasonQuotaFallback means every candidate was past its quota and
	// the lowest-share fallback applied.
	ReasonQuotaFallback Reason = "quota_fallback"
)

// Decision is the outcome of one selection, carrying both the minimal
// (client, product) pair and the diagnostic detail so callers never need
// to rescore.
type Decision struct {
	// ClientCode identifies the client the decision is for.
	ClientCode int64

	// Product is the chosen catalog product.
	Product catalog.Product

	// Score is the chosen product's raw benefit score.
	Score float64

	// Weighted is the chosen product's weighted score. Zero for
	// mandatory decisions, which never enter the weighted ranking.
	Weighted float64

	// Benefits is the full benefit map computed for the client.
	Benefits benefit.Map

	// Propensity is the client's affinity estimate for the chosen
	// product, 0.5 when no propensity model ran.
	Propensity float64

	// Reason records which selection path produced the decision.
	Reason Reason

	// RuleName names the fired rule for mandatory decisions.
	RuleName string
}

// Pair returns the minimal (client, product) output.
func (d Decision) Pair() (int64, catalog.Product) {
	return d.ClientCode, d.Product
}

package rules

import (
	"arlan-hq/meridian/pkg/benefit"
	"arlan-hq/meridian/pkg/catalog"
	"arlan-hq/meridian/pkg/config"
	"arlan-hq/meridian/pkg/features"
)

// QuotaView is the read-only quota state the checker consults before
// letting a rule fire. ShareIf is the prospective share the product
// would hold after winning this decision. *quota.Tracker satisfies it.
type QuotaView interface {
	ShareIf(p catalog.Product) float64
	Target(p catalog.Product) float64
	Total() int64
}

// Match describes a fired rule.
type Match struct {
	// RuleName is the name of the rule that fired.
	RuleName string

	// Product is the forced product.
	Product catalog.Product
}

// Checker evaluates the rule set in priority order.
type Checker struct {
	rules []Rule

	minBenefit float64
	tolerance  float64
	warmup     int
}

// NewChecker builds a checker from the default rule set. The selector
// configuration supplies the quota tolerance and warmup that gate
// mandatory overrides against monopolizing the stream.
func NewChecker(rulesCfg config.RulesConfig, selCfg config.SelectorConfig) *Checker {
	return &Checker{
		rules:      DefaultRules(rulesCfg),
		minBenefit: rulesCfg.MinBenefit,
		tolerance:  selCfg.ToleranceFactor,
		warmup:     selCfg.WarmupDecisions,
	}
}

// Check evaluates the rules against the client and returns the first
// match whose forced product passes both gates:
//
//   - the product's own benefit score is at least the sanity floor, and
//   - during warmup always, afterwards only while the product's share
//     stays under its target times the tolerance factor.
//
// A gated rule does not fall through to lower-priority rules for the
// same product, but lower-priority rules for other products still get
// their turn.
func (c *Checker) Check(f *features.ClientFeatures, scores benefit.Map, view QuotaView) (Match, bool) {
	for _, r := range c.rules {
		if !r.Applies(f) {
			continue
		}
		p := r.Product()
		if scores.Score(p) < c.minBenefit {
			continue
		}
		if !c.quotaAllows(p, view) {
			continue
		}
		return Match{RuleName: r.Name(), Product: p}, true
	}
	return Match{}, false
}

func (c *Checker) quotaAllows(p catalog.Product, view QuotaView) bool {
	if view.Total() < int64(c.warmup) {
		return true
	}
	return view.ShareIf(p) < view.Target(p)*c.tolerance
}

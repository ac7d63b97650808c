package selector

import (
	"sync"

	"arlan-hq/meridian/pkg/benefit"
	"arlan-hq/meridian/pkg/catalog"
	"arlan-hq/meridian/pkg/config"
	"arlan-hq/meridian/pkg/features"
	"arlan-hq/meridian/pkg/quota"
	"arlan-hq/meridian/pkg/rules"
)

// Scorer produces a benefit map for a client. *benefit.Model satisfies
// it; tests substitute fixed maps.
type Scorer interface {
	Score(f *features.ClientFeatures) benefit.Map
}

// Selector owns the decision state machine and the quota tracker it
// commits into.
//
// Decide is safe for concurrent use: scoring runs outside the lock since
// it is stateless, while the rule check, weighting, and commit form one
// atomic read-modify-write against the tracker so every decision
// observes exactly the committed state of its predecessors.
type Selector struct {
	cfg     config.SelectorConfig
	scorer  Scorer
	checker *rules.Checker
	tracker *quota.Tracker

	mu sync.Mutex
}

// New creates a selector around the given scorer, rule checker, and
// quota tracker.
func New(cfg config.SelectorConfig, scorer Scorer, checker *rules.Checker, tracker *quota.Tracker) *Selector {
	return &Selector{
		cfg:     cfg,
		scorer:  scorer,
		checker: checker,
		tracker: tracker,
	}
}

// Tracker exposes the selector's quota state for reporting.
func (s *Selector) Tracker() *quota.Tracker {
	return s.tracker
}

// Decide produces exactly one decision for the client and records it in
// the quota tracker. It never fails: a degenerate benefit map falls back
// to the full candidate set and quota exhaustion falls back to the
// lowest-share ranking.
func (s *Selector) Decide(f *features.ClientFeatures) Decision {
	scores := s.scorer.Score(f)

	s.mu.Lock()
	defer s.mu.Unlock()

	if match, ok := s.checker.Check(f, scores, s.tracker); ok {
		return s.commit(f, scores, Decision{
			Product:  match.Product,
			Score:    scores.Score(match.Product),
			Reason:   ReasonMandatory,
			RuleName: match.RuleName,
		})
	}

	candidates := s.viable(scores)

	if runnerUp, ok := s.tieCheck(scores, candidates); ok {
		return s.commit(f, scores, Decision{
			Product: runnerUp,
			Score:   scores.Score(runnerUp),
			Reason:  ReasonAntiMonopoly,
		})
	}

	winner, weighted, reason := s.quotaAdjust(scores, candidates)
	return s.commit(f, scores, Decision{
		Product:  winner,
		Score:    scores.Score(winner),
		Weighted: weighted,
		Reason:   reason,
	})
}

// commit records the decision in the tracker and fills the diagnostic
// fields shared by every path.
func (s *Selector) commit(f *features.ClientFeatures, scores benefit.Map, d Decision) Decision {
	s.tracker.Record(d.Product)
	d.ClientCode = f.ClientCode
	d.Benefits = scores
	d.Propensity = f.PropensityScore(string(d.Product))
	return d
}

// viable drops products scoring under the viability threshold, keeping
// the descending score order. A degenerate map where everything is under
// the threshold keeps the full set so the machine always has candidates.
func (s *Selector) viable(scores benefit.Map) []catalog.Product {
	sorted := scores.Sorted()
	kept := make([]catalog.Product, 0, len(sorted))
	for _, p := range sorted {
		if scores[p] >= s.cfg.MinViableBenefit {
			kept = append(kept, p)
		}
	}
	if len(kept) == 0 {
		return sorted
	}
	return kept
}

// tieCheck applies the anti-monopoly rule and reports the runner-up to
// prefer when it fires. The rule needs a near-tie at the top, a warm
// tracker, and a leader whose share after winning would either cross
// the monopoly cap or sit past its quota multiple while the runner-up
// still has headroom under its own.
func (s *Selector) tieCheck(scores benefit.Map, candidates []catalog.Product) (catalog.Product, bool) {
	if len(candidates) < 2 || s.tracker.Total() < int64(s.cfg.WarmupDecisions) {
		return "", false
	}

	leader, runnerUp := candidates[0], candidates[1]
	if scores[runnerUp] < scores[leader]*s.cfg.NearTieMargin {
		return "", false
	}

	leaderShare := s.tracker.ShareIf(leader)
	if leaderShare > s.cfg.MonopolyShare {
		return runnerUp, true
	}

	overQuota := leaderShare > s.tracker.Target(leader)*s.cfg.OverageMultiple
	hasHeadroom := s.tracker.ShareIf(runnerUp)*s.cfg.RunnerUpHeadroom < s.tracker.Target(runnerUp)
	if overQuota && hasHeadroom {
		return runnerUp, true
	}
	return "", false
}

// quotaAdjust ranks candidates by weighted score and returns the winner.
// The top raw score is the normalization denominator, so the benefit
// term stays in [0, 1] and quota pressure is a bounded correction on
// top. Quota terms stay zero until the tracker is past warmup.
func (s *Selector) quotaAdjust(scores benefit.Map, candidates []catalog.Product) (catalog.Product, float64, Reason) {
	_, leaderScore := scores.Leader()
	if leaderScore <= 0 {
		leaderScore = 1
	}

	warm := s.tracker.Total() >= int64(s.cfg.WarmupDecisions)
	exhausted := warm

	winner := candidates[0]
	best := -1.0
	for _, p := range candidates {
		normalized := scores[p] / leaderScore

		var penalty, bonus float64
		if warm {
			if over := s.overage(p); over > 0 {
				penalty = over
			} else {
				exhausted = false
			}
			if s.tracker.Underrepresented(p) {
				bonus = s.cfg.UnderrepBonus
			}
		}

		weighted := s.cfg.BenefitWeight*normalized - s.cfg.QuotaWeight*penalty + bonus
		if weighted > best || (weighted == best && scores[p] > scores[winner]) {
			winner, best = p, weighted
		}
	}

	if exhausted {
		return s.lowestShareFallback(scores, candidates)
	}
	return winner, best, ReasonScored
}

// overage returns how far past its tolerance band the product's share
// would sit if it won this decision, in units of its target. Zero while
// the share has room.
func (s *Selector) overage(p catalog.Product) float64 {
	target := s.tracker.Target(p)
	if target <= 0 {
		return 0
	}
	over := s.tracker.ShareIf(p)/target - s.cfg.ToleranceFactor
	if over < 0 {
		return 0
	}
	return over
}

// lowestShareFallback picks the best raw benefit among the candidates
// holding the lowest current share. It runs when every candidate is past
// its quota, so COMMIT still yields a decision.
func (s *Selector) lowestShareFallback(scores benefit.Map, candidates []catalog.Product) (catalog.Product, float64, Reason) {
	lowest := s.tracker.Share(candidates[0])
	for _, p := range candidates[1:] {
		if sh := s.tracker.Share(p); sh < lowest {
			lowest = sh
		}
	}

	var winner catalog.Product
	best := -1.0
	for _, p := range candidates {
		if s.tracker.Share(p) != lowest {
			continue
		}
		if scores[p] > best {
			winner, best = p, scores[p]
		}
	}
	return winner, 0, ReasonQuotaFallback
}

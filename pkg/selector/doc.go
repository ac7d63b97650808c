// Package selector implements the quota-constrained decision state
// machine that produces exactly one product per client.
//
// Each decision walks four stages. SCORING obtains the benefit map and
// drops products below the viability threshold unless that would empty
// the candidate set. TIE_CHECK applies the anti-monopoly rule when the
// top two candidates are nearly tied and enough decisions have
// accumulated for shares to be meaningful. QUOTA_ADJUST blends the
// normalized benefit with a quota overage penalty and an
// underrepresentation bonus, with the benefit term dominant so diversity
// never costs more than a bounded correction. COMMIT picks the highest
// weighted candidate, breaks ties by raw benefit then catalog order,
// records the winner in the quota tracker, and always succeeds.
//
// Mandatory rules are checked before the state machine runs and
// short-circuit straight to COMMIT when they fire.
//
// Decisions for a given input order are deterministic: replaying the
// same client sequence through a fresh selector reproduces the same
// decision sequence.
package selector

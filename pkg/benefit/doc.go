// Package benefit implements the benefit model: a pure, deterministic
// scoring of every catalog product for one client.
//
// Each product has a dedicated formula estimating the client's expected
// monthly benefit in the base currency (cashback earned, deposit
// interest, spread savings, or interest avoided). Raw 3-month aggregates
// are divided by the observation window before the rate math, and every
// score is divided by a uniform scale factor at the end so selection is
// invariant to the chosen unit. Every product has a strictly positive
// floor, so the resulting map never contains a zero entry.
//
// The model holds no mutable state: scoring the same features twice
// yields identical results, and scoring never consults quota counts or
// ordering. Those concerns belong to pkg/quota and pkg/selector.
package benefit

// Package rules implements the mandatory business rules that bypass
// scored selection.
//
// Each rule is a typed predicate over client features paired with the
// product it forces. Rules are evaluated in a fixed priority order, and
// the first one that fires wins. A rule only fires when the forced
// product's own benefit score clears a sanity floor and its running
// quota share has room left, so a mandatory product can never be forced
// into a client where it is worthless or monopolize the stream.
package rules

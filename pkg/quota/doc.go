// Package quota tracks the running distribution of committed decisions.
//
// The tracker keeps one counter per catalog product plus a total, and
// answers share queries against that state. ShareIf answers the
// counterfactual "what would this product's share be if it won the next
// decision", which the selector uses before committing. All methods are
// safe for concurrent use.
package quota

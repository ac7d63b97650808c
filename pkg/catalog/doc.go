// Package catalog defines the closed set of bank products the
// recommendation engine can assign to a client.
//
// The catalog is fixed at configuration time: products are never created
// or destroyed at runtime. All other packages reference products through
// the Product type defined here, and rely on All() for the stable
// catalog order used as the final deterministic tie-break.
package catalog

// Package config defines the configuration structures for Meridian and
// provides loading, defaulting, and validation.
//
// Configuration is loaded from a YAML file, defaults are applied for any
// zero-valued fields, environment variables prefixed with MERIDIAN_ may
// override individual fields, and the final configuration is validated
// before any component is constructed. Invalid configuration (an empty
// product catalog, weights outside their ranges, malformed quota targets)
// is a startup error: the decision path never re-validates it.
package config

// Package logging provides structured logging for Meridian built on
// log/slog. It parses levels and formats from configuration and exposes
// a Logger that components pass down explicitly rather than reaching for
// a global.
package logging

package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handler returns the HTTP handler for the metrics endpoint, exposing
// the collector's registry in Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
		ErrorHandling:     promhttp.ContinueOnError,
	})
}

// Serve starts an HTTP server for the metrics endpoint on the configured
// listen address. It returns immediately; the server runs until the
// process exits. A collector with no listen address serves nothing.
func (c *Collector) Serve() {
	if !c.cfg.Enabled || c.cfg.ListenAddress == "" {
		return
	}
	path := c.cfg.Path
	if path == "" {
		path = "/metrics"
	}
	mux := http.NewServeMux()
	mux.Handle(path, c.Handler())
	go func() {
		// Serving metrics is best-effort; a bind failure must not take
		// down the batch.
		_ = http.ListenAndServe(c.cfg.ListenAddress, mux)
	}()
}

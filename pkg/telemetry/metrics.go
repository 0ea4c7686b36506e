package telemetry

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsHandler serves the default Prometheus registry, which Setup feeds when metrics are enabled.
func MetricsHandler() http.Handler {
	return promhttp.Handler()
}

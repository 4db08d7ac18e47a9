package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/ammarmusa/travel-app-backend/internal/platform/metrics"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

// Metrics records per-route latency and error counts. Routes are labeled by
// the chi pattern, not the raw path, to keep label cardinality bounded.
func Metrics(mm *metrics.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r)

			route := chi.RouteContext(r.Context()).RoutePattern()
			if route == "" {
				route = "unmatched"
			}
			mm.HTTPRequestLatency.WithLabelValues(route).Observe(time.Since(start).Seconds())
			if ww.Status() >= http.StatusInternalServerError {
				mm.HTTPRequestErrorsTotal.WithLabelValues(route, strconv.Itoa(ww.Status())).Inc()
			}
		})
	}
}

package http

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"deal-engine/logger"
)

// NewRouter registers every route. Mutating routes go through the rate
// limiter; reads and /metrics do not.
func NewRouter(
	worksheets *WorksheetHandler,
	comparisons *ComparisonHandler,
	limiter *RateLimiter,
	log logger.Logger,
) *http.ServeMux {
	limited := func(h http.HandlerFunc) http.Handler {
		return RateLimitMiddleware(limiter, log, h)
	}

	mux := http.NewServeMux()
	mux.Handle("POST /worksheet/{strategy}", limited(worksheets.Calculate))
	mux.Handle("POST /amortization", limited(worksheets.Amortization))
	mux.Handle("POST /grade", limited(worksheets.Grade))
	mux.Handle("POST /deal-gap", limited(worksheets.DealGap))

	mux.HandleFunc("GET /comparisons/{setID}", comparisons.Get)
	mux.Handle("POST /comparisons/{setID}", limited(comparisons.Add))
	mux.HandleFunc("DELETE /comparisons/{setID}", comparisons.Clear)
	mux.HandleFunc("DELETE /comparisons/{setID}/{propertyID}", comparisons.Remove)
	mux.HandleFunc("GET /comparisons/{setID}/rank", comparisons.Rank)

	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	return mux
}

package http

import (
	"math"
	"net"
	"net/http"
	"strconv"

	"deal-engine/domain"
	"deal-engine/logger"
	"deal-engine/metrics"
)

// ErrCodeRateLimited is reported when a client has exhausted its bucket.
const ErrCodeRateLimited domain.ErrorCode = "RATE_LIMITED"

func RateLimitMiddleware(
	limiter *RateLimiter,
	log logger.Logger,
	next http.Handler,
) http.Handler {

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

		ip, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			ip = r.RemoteAddr
		}

		ok, wait := limiter.Allow(ip)
		if !ok {
			metrics.RateLimited.Inc()
			log.Warn("rate limit exceeded", map[string]interface{}{
				"client": ip,
				"path":   r.URL.Path,
			})
			w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(wait.Seconds()))))
			writeJSON(w, http.StatusTooManyRequests, errorResponse{
				Code:    ErrCodeRateLimited,
				Message: "rate limit exceeded",
			})
			return
		}

		next.ServeHTTP(w, r)
	})
}

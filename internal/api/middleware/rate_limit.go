package middleware

import (
	"log/slog"
	"math"
	"net/http"
	"strconv"

	"github.com/hlewluv/Food-Delivery-App-sub000/internal/errors"
	repository "github.com/hlewluv/Food-Delivery-App-sub000/internal/repositories"
	"github.com/hlewluv/Food-Delivery-App-sub000/internal/utils/response"
)

// RateLimit caps requests per caller on one route group. Callers are keyed by their token
// subject, so it has to run inside Authenticate; anonymous requests fall back to the remote
// address. Limiter failures let the request through.
func RateLimit(limiter repository.RateLimiter, scope string, next http.Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := LoggerFromContext(r.Context())

		caller := r.RemoteAddr
		if claims, ok := ClaimsFromContext(r.Context()); ok {
			caller = claims.UserID.String()
		}

		allowed, retryAfter, err := limiter.Allow(r.Context(), scope+":"+caller)
		if err != nil {
			logger.Warn("Rate limiter unavailable, allowing request", slog.String("scope", scope), slog.String("error", err.Error()))
			next.ServeHTTP(w, r)
			return
		}

		if !allowed {
			seconds := int(math.Ceil(retryAfter.Seconds()))
			logger.Warn("Rate limit exceeded", slog.String("scope", scope), slog.Int("retryAfterSeconds", seconds))

			w.Header().Set("Retry-After", strconv.Itoa(seconds))
			response.Error(w, errors.TooManyRequestsError("Too many requests, please try again later"))
			return
		}

		next.ServeHTTP(w, r)
	}
}

package middleware

import (
	"fmt"
	"net/http"

	"mess-review/pkg/utils"

	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/middleware/stdlib"
	"github.com/ulule/limiter/v3/drivers/store/memory"
	"go.uber.org/zap"
)

// RateLimit throttles write endpoints per authenticated user, falling back
// to the client IP. rate uses the limiter format, e.g. "30-M".
func RateLimit(rate string, logger *zap.Logger) (func(http.Handler) http.Handler, error) {
	parsed, err := limiter.NewRateFromFormatted(rate)
	if err != nil {
		return nil, fmt.Errorf("parse rate limit %q: %w", rate, err)
	}

	instance := limiter.New(memory.NewStore(), parsed, limiter.WithTrustForwardHeader(true))

	mw := stdlib.NewMiddleware(instance,
		stdlib.WithKeyGetter(func(r *http.Request) string {
			if userID, ok := utils.GetUserIDFromContext(r.Context()); ok {
				return "user:" + userID.String() + ":" + r.URL.Path
			}
			return "ip:" + instance.GetIPKey(r) + ":" + r.URL.Path
		}),
		stdlib.WithLimitReachedHandler(func(w http.ResponseWriter, r *http.Request) {
			logger.Warn("Rate limit reached",
				zap.String("path", r.URL.Path),
				zap.String("ip", r.RemoteAddr),
			)
			utils.ResponseTooManyRequests(w, "Too many requests, slow down")
		}),
		stdlib.WithErrorHandler(func(w http.ResponseWriter, r *http.Request, err error) {
			logger.Error("Rate limiter failure", zap.Error(err))
			utils.ResponseInternalError(w, "Internal server error")
		}),
	)

	return mw.Handler, nil
}

// internal/middleware/usage_tracking.go
package middleware

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"imgsafe-backend/internal/services"
)

// UsageTracker records one usage entry per authenticated request. The raw
// request path is stored, dynamic id segments included; the stats layer
// collapses those at aggregation time. Recording is fire-and-forget so a
// slow usage store never delays the response.
func UsageTracker(usageService services.UsageService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if token, ok := GetTokenFromContext(r.Context()); ok {
				endpoint := r.URL.Path
				go func() {
					trackCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
					defer cancel()

					if err := usageService.RecordUsage(trackCtx, token, endpoint); err != nil {
						zap.L().Warn("Failed to record usage",
							zap.String("endpoint", endpoint),
							zap.Error(err))
					}
				}()
			}

			next.ServeHTTP(w, r)
		})
	}
}

package middleware

import (
	"log/slog"
	"net/http"

	"github.com/shopsphere/storefront/pkg/logger"
)

// RequestLogger returns middleware that builds a request-scoped logger
// enriched with correlation_id, profile_id, trace_id, and span_id, then
// stores it in context via logger.NewContext. Downstream handlers retrieve it
// with logger.FromContext(ctx).
//
// Mount AFTER RequestLogging (which sets correlation_id) and Tracing (which
// sets the OpenTelemetry span context).
func RequestLogger(base *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			// Pick up the browser profile id set by the identity middleware,
			// falling back to the raw header.
			profileID := logger.ProfileIDFromContext(ctx)
			if profileID == "" {
				profileID = r.Header.Get("X-Profile-ID")
			}
			if profileID != "" {
				ctx = logger.WithProfileID(ctx, profileID)
			}

			enriched := logger.WithContext(ctx, base)
			ctx = logger.NewContext(ctx, enriched)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

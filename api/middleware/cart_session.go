package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/loopstackhq/loopstack-backend/pkg/logger"
)

// CartSessionHeader carries the anonymous cart identifier between the
// storefront and the API. Clients persist the value we hand back.
const CartSessionHeader = "X-Cart-Session"

// CartSession ensures every request under the cart tree has a usable session
// id. Missing or malformed headers get a fresh uuid rather than an error, so
// first-time visitors start an empty cart transparently.
func CartSession(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sessionID := r.Header.Get(CartSessionHeader)
			if _, err := uuid.Parse(sessionID); err != nil {
				sessionID = uuid.NewString()
			}

			w.Header().Set(CartSessionHeader, sessionID)

			ctx := WithSessionID(r.Context(), sessionID)
			if logg != nil {
				ctx = logg.WithCartSession(ctx, sessionID)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

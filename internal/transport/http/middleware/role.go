package middleware

import (
	"net/http"
)

// RequirePosition returns middleware that allows access only to users whose
// JWT position matches one of the provided names (e.g. domain.PositionAdmin).
func RequirePosition(allowed ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := ClaimsFromContext(r.Context())
			if !ok {
				writeJSONError(w, http.StatusUnauthorized, "unauthorized")
				return
			}
			for _, p := range allowed {
				if claims.Position == p {
					next.ServeHTTP(w, r)
					return
				}
			}
			writeJSONError(w, http.StatusForbidden, "forbidden")
		})
	}
}

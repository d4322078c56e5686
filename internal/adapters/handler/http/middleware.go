package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/bettrack/api/internal/core/ports"
)

type contextKey string

const claimsKey contextKey = "accessClaims"

// Authenticator verifies the bearer token and stores its claims in the
// request context. Missing, malformed and invalid tokens are all 401.
func Authenticator(signer ports.TokenSigner) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				writeError(w, http.StatusUnauthorized, "missing bearer token")
				return
			}

			claims, err := signer.Verify(token)
			if err != nil {
				writeError(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), claimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func claimsFromContext(ctx context.Context) (*ports.AccessClaims, bool) {
	claims, ok := ctx.Value(claimsKey).(*ports.AccessClaims)
	return claims, ok
}

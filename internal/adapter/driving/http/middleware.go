package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/animo-meet/backend/internal/core/domain"
)

type ctxKey int

const identityKey ctxKey = iota

// RequireAuth checks the Authorization bearer token and attaches the
// verified identity to the request context.
func (h *Handler) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			h.respondJSON(w, http.StatusUnauthorized, messageResponse{Message: "no token provided"})
			return
		}

		identity, err := h.Accounts.Verify(token)
		if err != nil {
			h.respondJSON(w, http.StatusUnauthorized, messageResponse{Message: "Invalid token, login again"})
			return
		}

		ctx := context.WithValue(r.Context(), identityKey, identity)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func identityFrom(ctx context.Context) (domain.Identity, bool) {
	identity, ok := ctx.Value(identityKey).(domain.Identity)
	return identity, ok
}

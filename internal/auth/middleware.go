package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/jainilbavishi24/spotify-clone/internal/httputil"
)

type ctxUserIDKey struct{}

// WithUserID stores the authenticated user's identifier on the context.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, ctxUserIDKey{}, userID)
}

// UserIDFrom returns the authenticated user's identifier, or "" when
// the request never passed RequireUser.
func UserIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(ctxUserIDKey{}).(string)
	return id
}

// RequireUser rejects requests without a well-formed bearer token
// before the token itself is ever validated.
func (s *Server) RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			httputil.WriteError(w, http.StatusUnauthorized, "missing Authorization header")
			return
		}
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			httputil.WriteError(w, http.StatusUnauthorized, "invalid Authorization header")
			return
		}

		userID, err := VerifyToken(parts[1], s.jwtSecret)
		if err != nil {
			if errors.Is(err, ErrMalformedSubject) {
				httputil.WriteError(w, http.StatusUnauthorized, err.Error())
				return
			}
			httputil.WriteError(w, http.StatusUnauthorized, "invalid token")
			return
		}

		next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
	})
}

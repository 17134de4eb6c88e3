package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/hirewire/hirewire/internal/auth"
	"github.com/hirewire/hirewire/internal/models"
	"github.com/hirewire/hirewire/internal/store"
)

// SessionCookie is the cookie the login handler sets for browser clients.
// API clients may send the same token as a bearer header instead.
const SessionCookie = "session_token"

type ctxKey string

const ctxUserKey ctxKey = "user"

// UserFrom returns the authenticated user placed in the context by Session,
// or nil outside a protected route.
func UserFrom(ctx context.Context) *models.User {
	u, _ := ctx.Value(ctxUserKey).(*models.User)
	return u
}

// WithUser returns a context carrying the user. Exposed for handler tests.
func WithUser(ctx context.Context, u *models.User) context.Context {
	return context.WithValue(ctx, ctxUserKey, u)
}

// TokenFrom extracts the session token from the Authorization header or,
// failing that, the session cookie.
func TokenFrom(r *http.Request) string {
	if a := r.Header.Get("Authorization"); a != "" {
		parts := strings.SplitN(a, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			return strings.TrimSpace(parts[1])
		}
	}
	if c, err := r.Cookie(SessionCookie); err == nil {
		return c.Value
	}
	return ""
}

// Session authenticates every request passing through it. A valid signature
// is not enough: the token must still have a row in the sessions table, so
// logged-out tokens are dead even before their expiry.
func Session(st store.Store, secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := TokenFrom(r)
			if token == "" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}

			claims, err := auth.VerifyToken(token, secret)
			if err != nil {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}

			if _, err := st.SessionByToken(r.Context(), token); err != nil {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}

			user, err := st.UserByID(r.Context(), claims.SubjectInt())
			if err != nil {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
		})
	}
}

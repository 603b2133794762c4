package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/unisync/api/internal/model"
)

// SessionResolver resolves an opaque token to a live session.
type SessionResolver interface {
	GetSession(ctx context.Context, token string) (*model.Session, error)
}

// Auth returns a middleware that resolves the caller's session. The
// token is read from the Authorization header (Bearer scheme) first,
// falling back to the session cookie, so API clients and browser pages
// share one authentication path.
func Auth(resolver SessionResolver, cookieName string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractToken(r, cookieName)
			if token == "" {
				model.NewUnauthorizedError("authentication required").WriteJSON(w)
				return
			}

			session, err := resolver.GetSession(r.Context(), token)
			if err != nil {
				model.NewUnauthorizedError("invalid or expired session").WriteJSON(w)
				return
			}

			ctx := context.WithValue(r.Context(), SessionKey, session)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole returns a middleware restricting a route to the given
// roles. It must run after Auth.
func RequireRole(roles ...model.Role) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session := GetSession(r.Context())
			if session == nil {
				model.NewUnauthorizedError("authentication required").WriteJSON(w)
				return
			}
			for _, role := range roles {
				if session.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}
			model.NewForbiddenError("insufficient role for this resource").WriteJSON(w)
		})
	}
}

// GetSession extracts the authenticated session from context. Returns
// nil when the request did not pass the Auth middleware.
func GetSession(ctx context.Context) *model.Session {
	if session, ok := ctx.Value(SessionKey).(*model.Session); ok {
		return session
	}
	return nil
}

func extractToken(r *http.Request, cookieName string) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return parts[1]
		}
		return ""
	}
	if cookie, err := r.Cookie(cookieName); err == nil {
		return cookie.Value
	}
	return ""
}

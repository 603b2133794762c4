package web

import (
	"context"
	"net/http"
	"net/url"

	"github.com/unisync/api/internal/middleware"
	"github.com/unisync/api/internal/model"
)

// PageAuth guards a page route with the same session and role rules as
// the JSON API, but answers browsers with redirects: missing or expired
// sessions go back to the login page, a wrong role goes to that role's
// own dashboard.
func PageAuth(resolver middleware.SessionResolver, cookieName string, roles ...model.Role) middleware.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(cookieName)
			if err != nil {
				redirectToLogin(w, r)
				return
			}

			session, err := resolver.GetSession(r.Context(), cookie.Value)
			if err != nil {
				redirectToLogin(w, r)
				return
			}

			for _, role := range roles {
				if session.Role == role {
					ctx := context.WithValue(r.Context(), middleware.SessionKey, session)
					next.ServeHTTP(w, r.WithContext(ctx))
					return
				}
			}
			http.Redirect(w, r, session.RedirectURL(), http.StatusSeeOther)
		})
	}
}

func redirectToLogin(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/?error="+url.QueryEscape("please sign in"), http.StatusSeeOther)
}

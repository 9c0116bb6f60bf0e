package middleware

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/beanmap/beanmap/internal/ctxkeys"
	"github.com/beanmap/beanmap/internal/repository"
	"github.com/beanmap/beanmap/internal/service"
)

// Session resolves the request's identity: it verifies the session cookie
// and loads the user by id. Any failure along the way leaves the request
// anonymous rather than erroring; a stale cookie is cleared.
func Session(authService *service.AuthService, users repository.UserRepository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := authService.SessionCookie(r)
			if err != nil {
				// No cookie, continue without auth
				next.ServeHTTP(w, r)
				return
			}

			claims, err := authService.VerifyJWT(cookie.Value)
			if err != nil {
				authService.ClearSessionCookie(w)
				next.ServeHTTP(w, r)
				return
			}

			sub, ok := claims["sub"].(string)
			if !ok {
				authService.ClearSessionCookie(w)
				next.ServeHTTP(w, r)
				return
			}

			userID, err := strconv.ParseInt(sub, 10, 64)
			if err != nil {
				authService.ClearSessionCookie(w)
				next.ServeHTTP(w, r)
				return
			}

			user, err := users.ByID(userID)
			if err != nil {
				// Deleted account is not an error, just anonymous
				if errors.Is(err, repository.ErrUserNotFound) {
					authService.ClearSessionCookie(w)
				}
				next.ServeHTTP(w, r)
				return
			}

			// Security: never expose the hash via context
			user.PasswordHash = ""

			ctx := ctxkeys.WithUser(r.Context(), user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAuth ensures the user is authenticated
func RequireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := ctxkeys.User(r.Context())
		if user == nil {
			http.Redirect(w, r, "/join", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	}
}

// RequireGuest ensures the user is not authenticated
func RequireGuest(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := ctxkeys.User(r.Context())
		if user != nil {
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	}
}

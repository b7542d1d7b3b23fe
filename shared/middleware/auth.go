// Package middleware holds HTTP middleware shared by the site's services.
package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/vasapolrittideah/school-site-api/shared/provider"
)

type contextKey struct{}

var authKey = contextKey{}

var (
	ErrInvalidAuthorizationHeader = errors.New("invalid authorization header format")
	ErrNotSignedIn                = errors.New("no signed-in user")
)

// ErrorResponder writes an error response for a rejected request.
type ErrorResponder func(w http.ResponseWriter, r *http.Request, status int, err error)

// AuthHandle attaches a fresh provider auth handle to every request. When the
// request carries a bearer ID token the handle is restored from it, and a
// token that cannot be restored is rejected with 401.
func AuthHandle(backend provider.Backend, logger *zerolog.Logger, respond ErrorResponder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			auth := backend.NewAuth()

			token, err := bearerToken(r.Header.Get("Authorization"))
			if err != nil {
				respond(w, r, http.StatusUnauthorized, err)
				return
			}

			if token != "" {
				if _, err := auth.Restore(r.Context(), token); err != nil {
					logger.Debug().Err(err).Msg("failed to restore auth handle")
					respond(w, r, http.StatusUnauthorized, err)
					return
				}
			}

			next.ServeHTTP(w, r.WithContext(WithAuth(r.Context(), auth)))
		})
	}
}

// RequireSignIn rejects requests whose auth handle has nobody signed in.
func RequireSignIn(respond ErrorResponder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			auth, ok := AuthFromContext(r.Context())
			if !ok || auth.CurrentUser() == nil {
				respond(w, r, http.StatusUnauthorized, ErrNotSignedIn)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// WithAuth returns a copy of ctx carrying auth.
func WithAuth(ctx context.Context, auth provider.Auth) context.Context {
	return context.WithValue(ctx, authKey, auth)
}

// AuthFromContext returns the auth handle attached by AuthHandle.
func AuthFromContext(ctx context.Context) (provider.Auth, bool) {
	auth, ok := ctx.Value(authKey).(provider.Auth)
	return auth, ok
}

func bearerToken(header string) (string, error) {
	if header == "" {
		return "", nil
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" || strings.TrimSpace(parts[1]) == "" {
		return "", ErrInvalidAuthorizationHeader
	}

	return strings.TrimSpace(parts[1]), nil
}

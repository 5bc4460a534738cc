// Package middlewares holds the HTTP middleware that gates protected routes
// on a bearer token.
package middlewares

import (
	"context"
	"net/http"
	"strings"

	"github.com/bee-edu/askbee/internal/api/respond"
	"github.com/bee-edu/askbee/internal/auth"
)

// TokenVerifier is the slice of the credential store the middleware needs.
type TokenVerifier interface {
	VerifyToken(token string) (*auth.Claims, error)
}

// Identity is the authenticated caller attached to the request context.
type Identity struct {
	UserID string
	Email  string
}

type ctxKey int

const identityKey ctxKey = iota

// RequireAuth validates the Authorization header and attaches the caller's
// identity to the request context. Missing or invalid tokens end the request
// with 401.
func RequireAuth(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := verify(verifier, r)
			if !ok {
				respond.Error(w, http.StatusUnauthorized, "missing or invalid token")
				return
			}
			next.ServeHTTP(w, r.WithContext(withIdentity(r.Context(), claims)))
		})
	}
}

// OptionalAuth attaches an identity when a valid token is presented but never
// rejects the request. Used by the public answer endpoint so history can be
// recorded for logged-in callers.
func OptionalAuth(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if claims, ok := verify(verifier, r); ok {
				r = r.WithContext(withIdentity(r.Context(), claims))
			}
			next.ServeHTTP(w, r)
		})
	}
}

func verify(verifier TokenVerifier, r *http.Request) (*auth.Claims, bool) {
	header := r.Header.Get("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return nil, false
	}
	claims, err := verifier.VerifyToken(strings.TrimPrefix(header, "Bearer "))
	if err != nil {
		return nil, false
	}
	return claims, true
}

func withIdentity(ctx context.Context, claims *auth.Claims) context.Context {
	return context.WithValue(ctx, identityKey, &Identity{
		UserID: claims.Subject,
		Email:  claims.Email,
	})
}

// IdentityFrom extracts the authenticated caller, if any.
func IdentityFrom(ctx context.Context) (*Identity, bool) {
	id, ok := ctx.Value(identityKey).(*Identity)
	return id, ok
}

package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/flowpilot/portal-go/internal/crypto"
	"github.com/flowpilot/portal-go/internal/model"
	"github.com/flowpilot/portal-go/internal/scope"
)

type contextKey string

const scopeKey contextKey = "scope"

// ScopeCookie is the cookie that binds a browser to its scope.
const ScopeCookie = "portal_scope"

// Scope resolves the browser's scope from its signed cookie, creating a fresh
// scope when the cookie is missing, invalid or refers to an evicted scope.
// Scope creation is limited per IP to createRPS with createBurst; a cookie
// past half its lifetime is re-issued so active browsers keep their scope.
func Scope(ctx context.Context, registry *scope.Registry, secret string, ttl time.Duration, createRPS float64, createBurst int) func(http.Handler) http.Handler {
	creations := newIPRateLimiter(ctx, createRPS, createBurst)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if s, claims := lookupScope(registry, secret, r); s != nil {
				if claims.ExpiresAt == nil || time.Until(claims.ExpiresAt.Time) < ttl/2 {
					if err := setScopeCookie(w, r, s, secret, ttl); err != nil {
						slog.Warn("re-issuing scope cookie", "scope_id", s.ID, "error", err)
					}
				}
				next.ServeHTTP(w, r.WithContext(WithScope(r.Context(), s)))
				return
			}

			if !creations.allow(clientIP(r)) {
				w.Header().Set("Retry-After", "1")
				writeEnvelopeError(w, http.StatusTooManyRequests, model.APIError{Code: model.CodeRateLimited, Message: "too many requests"})
				return
			}

			s, err := registry.Create()
			if errors.Is(err, scope.ErrRegistryFull) {
				slog.Warn("scope registry full", "live", registry.Len())
				w.Header().Set("Retry-After", "60")
				writeEnvelopeError(w, http.StatusServiceUnavailable, model.APIError{Code: model.CodeRateLimited, Message: "too many sessions"})
				return
			}
			if err != nil {
				slog.Error("creating scope", "error", err)
				writeEnvelopeError(w, http.StatusInternalServerError, model.APIError{Code: model.CodeInternalError, Message: "internal server error"})
				return
			}

			if err := setScopeCookie(w, r, s, secret, ttl); err != nil {
				slog.Error("signing scope token", "scope_id", s.ID, "error", err)
				writeEnvelopeError(w, http.StatusInternalServerError, model.APIError{Code: model.CodeInternalError, Message: "internal server error"})
				return
			}

			next.ServeHTTP(w, r.WithContext(WithScope(r.Context(), s)))
		})
	}
}

func setScopeCookie(w http.ResponseWriter, r *http.Request, s *scope.Scope, secret string, ttl time.Duration) error {
	token, err := crypto.GenerateScopeToken(s.ID, secret, ttl)
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     ScopeCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(ttl.Seconds()),
	})
	return nil
}

func lookupScope(registry *scope.Registry, secret string, r *http.Request) (*scope.Scope, *crypto.ScopeClaims) {
	cookie, err := r.Cookie(ScopeCookie)
	if err != nil || cookie.Value == "" {
		return nil, nil
	}

	claims, err := crypto.ValidateScopeToken(cookie.Value, secret)
	if err != nil {
		slog.Debug("rejecting scope cookie", "error", err)
		return nil, nil
	}

	s, err := registry.Get(claims.ScopeID)
	if err != nil {
		return nil, nil
	}
	return s, claims
}

// WithScope stores s in ctx.
func WithScope(ctx context.Context, s *scope.Scope) context.Context {
	return context.WithValue(ctx, scopeKey, s)
}

// ScopeFromContext extracts the browser scope from the request context.
func ScopeFromContext(ctx context.Context) (*scope.Scope, bool) {
	s, ok := ctx.Value(scopeKey).(*scope.Scope)
	return s, ok && s != nil
}

package auth

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/TanmoyTheBoT/fmdb-api/internal/api/response"
	"github.com/TanmoyTheBoT/fmdb-api/internal/models"
	"github.com/TanmoyTheBoT/fmdb-api/internal/repository"
)

// Context keys for the resolved credential
type contextKey string

const (
	roleContextKey   contextKey = "role"
	apiKeyContextKey contextKey = "apikey"
)

// RoleResolver maps a presented API key to its role.
type RoleResolver interface {
	RoleForAPIKey(ctx context.Context, apiKey string) (models.Role, error)
}

// Middleware resolves the apikey query parameter before data handlers run.
type Middleware struct {
	resolver RoleResolver
}

// NewMiddleware creates the API key middleware
func NewMiddleware(resolver RoleResolver) *Middleware {
	return &Middleware{resolver: resolver}
}

// RequireAPIKey rejects requests without a valid key and attaches the
// resolved role and the key itself to the request context. A missing key is a
// 400, an unknown key a 403; both are distinct from rate limiting and lookup
// failures downstream.
func (m *Middleware) RequireAPIKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		apiKey := r.URL.Query().Get("apikey")
		if apiKey == "" {
			response.BadRequest(w, "API key required")
			return
		}

		role, err := m.resolver.RoleForAPIKey(r.Context(), apiKey)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				response.Forbidden(w, "Invalid API key")
				return
			}
			log.Printf("[auth] API key resolution error: %v", err)
			response.InternalError(w)
			return
		}

		ctx := WithAPIKey(WithRole(r.Context(), role), apiKey)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// WithRole returns a context carrying the resolved role
func WithRole(ctx context.Context, role models.Role) context.Context {
	return context.WithValue(ctx, roleContextKey, role)
}

// WithAPIKey returns a context carrying the presented API key
func WithAPIKey(ctx context.Context, apiKey string) context.Context {
	return context.WithValue(ctx, apiKeyContextKey, apiKey)
}

// GetRole returns the resolved role from the context, defaulting to free so
// downstream policy lookups never widen on a missing role.
func GetRole(ctx context.Context) models.Role {
	if role, ok := ctx.Value(roleContextKey).(models.Role); ok {
		return role
	}
	return models.RoleFree
}

// GetAPIKey returns the presented API key from the context, or "".
func GetAPIKey(ctx context.Context) string {
	if key, ok := ctx.Value(apiKeyContextKey).(string); ok {
		return key
	}
	return ""
}

// Package ratelimit enforces the per-plan request ceilings over a rolling
// 24-hour window. Counters live in Redis so limits hold across processes;
// each (role, identity) pair owns its own counter, so a credential that
// changes plans starts a fresh window under the new role.
package ratelimit

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/TanmoyTheBoT/fmdb-api/internal/api/response"
	"github.com/TanmoyTheBoT/fmdb-api/internal/auth"
	"github.com/TanmoyTheBoT/fmdb-api/internal/cache"
	"github.com/TanmoyTheBoT/fmdb-api/internal/models"
)

// Limit defines the rate-limit policy for one plan
type Limit struct {
	Window  time.Duration
	Max     int
	Message string
}

// defaultLimits is the compiled-in policy per plan. Unknown roles use the
// free entry.
var defaultLimits = map[models.Role]Limit{
	models.RoleFree: {
		Window:  24 * time.Hour,
		Max:     1000,
		Message: "Too many requests for free plan. Please try again later.",
	},
	models.RolePaid: {
		Window:  24 * time.Hour,
		Max:     10000,
		Message: "Too many requests for paid plan. Please try again later.",
	},
	models.RoleAdmin: {
		Window:  24 * time.Hour,
		Max:     100000,
		Message: "Too many requests for admin plan. Please try again later.",
	},
}

// Limiter applies per-role limits against Redis-backed counters
type Limiter struct {
	cache  *cache.Redis
	limits map[models.Role]Limit
}

// NewLimiter creates a limiter with the default per-plan policy
func NewLimiter(cache *cache.Redis) *Limiter {
	return &Limiter{cache: cache, limits: defaultLimits}
}

// NewLimiterWithLimits creates a limiter with a custom policy table.
// Used by tests to shrink windows and ceilings.
func NewLimiterWithLimits(cache *cache.Redis, limits map[models.Role]Limit) *Limiter {
	return &Limiter{cache: cache, limits: limits}
}

// LimitFor returns the policy for a role, falling back to free
func (l *Limiter) LimitFor(role models.Role) Limit {
	if limit, ok := l.limits[role]; ok {
		return limit
	}
	return l.limits[models.RoleFree]
}

// Allow records one request for (role, identity) and reports whether it fits
// inside the window ceiling.
func (l *Limiter) Allow(ctx context.Context, role models.Role, identity string) (bool, error) {
	limit := l.LimitFor(role)
	key := counterKey(role, identity)
	return l.takeSlot(ctx, key, limit.Max, limit.Window)
}

// Reset clears the counter for (role, identity)
func (l *Limiter) Reset(ctx context.Context, role models.Role, identity string) error {
	return l.cache.Delete(ctx, counterKey(role, identity))
}

// counterKey buckets counts by role first so two roles never share a counter,
// even for the same identity.
func counterKey(role models.Role, identity string) string {
	return fmt.Sprintf("ratelimit:%s:%s", role, identity)
}

// ByRole returns middleware that enforces the resolved role's limit. It must
// run after the API key middleware. Identity is the presented key, or the
// caller's network address when no key is attached.
func (l *Limiter) ByRole(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		role := auth.GetRole(ctx)
		identity := auth.GetAPIKey(ctx)
		if identity == "" {
			identity = clientIP(r)
		}

		allowed, err := l.Allow(ctx, role, identity)
		if err != nil {
			// Redis being down must not take the API with it; let the
			// request through and log the failure.
			log.Printf("[ratelimit] check failed for role=%s: %v", role, err)
			next.ServeHTTP(w, r)
			return
		}

		if !allowed {
			response.TooManyRequests(w, l.LimitFor(role).Message)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// clientIP extracts the caller's address for keyless identities
func clientIP(r *http.Request) string {
	// X-Forwarded-For first (proxies/load balancers), first hop wins
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		for i := 0; i < len(xff); i++ {
			if xff[i] == ',' {
				return xff[:i]
			}
		}
		return xff
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}

	// RemoteAddr is "IP:port"; strip the port
	addr := r.RemoteAddr
	for i := len(addr) - 1; i >= 0; i-- {
		if addr[i] == ':' {
			return addr[:i]
		}
		if addr[i] == ']' {
			break
		}
	}
	return addr
}

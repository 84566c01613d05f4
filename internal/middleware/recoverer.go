package middleware

import (
	"log"
	"net/http"
	"runtime/debug"

	"github.com/TanmoyTheBoT/fmdb-api/internal/api/response"
)

// Recoverer converts handler panics into the generic 500 envelope
func Recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Printf("[%s] PANIC: %v\n%s", GetRequestID(r.Context()), rec, debug.Stack())
				response.InternalError(w)
			}
		}()

		next.ServeHTTP(w, r)
	})
}

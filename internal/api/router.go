package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/TanmoyTheBoT/fmdb-api/internal/api/handlers"
	"github.com/TanmoyTheBoT/fmdb-api/internal/auth"
	"github.com/TanmoyTheBoT/fmdb-api/internal/cache"
	"github.com/TanmoyTheBoT/fmdb-api/internal/config"
	"github.com/TanmoyTheBoT/fmdb-api/internal/database"
	"github.com/TanmoyTheBoT/fmdb-api/internal/mail"
	"github.com/TanmoyTheBoT/fmdb-api/internal/middleware"
	"github.com/TanmoyTheBoT/fmdb-api/internal/ratelimit"
	"github.com/TanmoyTheBoT/fmdb-api/internal/repository"
)

// NewRouter creates and configures the main router
func NewRouter(cfg *config.Config, db *database.DB, redisCache *cache.Redis) *chi.Mux {
	r := chi.NewRouter()

	// Repositories and collaborators
	userRepo := repository.NewUserRepository(db)
	titleRepo := repository.NewTitleRepository(db)
	mailer := mail.NewMailer(cfg.SMTP)

	authMiddleware := auth.NewMiddleware(userRepo)
	limiter := ratelimit.NewLimiter(redisCache)

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.SecurityHeaders)
	r.Use(middleware.CORSWithOrigins(cfg.CORSOrigins))

	// Handlers
	catalogHandler := handlers.NewCatalogHandler(titleRepo)
	registerHandler := handlers.NewRegisterHandler(userRepo, mailer)
	pagesHandler := handlers.NewPagesHandler(cfg)

	// Every data-returning request resolves its key, then pays its rate
	// budget, then runs. The chain is composed once and shared.
	protected := func(h http.HandlerFunc) http.Handler {
		return authMiddleware.RequireAPIKey(limiter.ByRole(h))
	}

	lookupOrSearch := protected(catalogHandler.Dispatch)

	// / serves the landing page for plain browser visits and the API for
	// anything carrying query parameters.
	r.Get("/", func(w http.ResponseWriter, req *http.Request) {
		q := req.URL.Query()
		if q.Get("i") == "" && q.Get("s") == "" && q.Get("apikey") == "" {
			pagesHandler.Landing(w, req)
			return
		}
		lookupOrSearch.ServeHTTP(w, req)
	})

	r.Get("/stats", protected(catalogHandler.Stats).ServeHTTP)
	r.Post("/register", registerHandler.Register)
	r.Get("/config.js", pagesHandler.ConfigJS)

	// Everything else is a JSON 404, methods included.
	r.NotFound(handlers.NotFound)
	r.MethodNotAllowed(handlers.NotFound)

	return r
}

package handlers

import (
	"fmt"
	"net/http"
	"path/filepath"

	"github.com/TanmoyTheBoT/fmdb-api/internal/api/response"
	"github.com/TanmoyTheBoT/fmdb-api/internal/config"
)

// PagesHandler serves the non-JSON surface: the static landing page and the
// browser config snippet.
type PagesHandler struct {
	cfg *config.Config
}

// NewPagesHandler creates a new pages handler
func NewPagesHandler(cfg *config.Config) *PagesHandler {
	return &PagesHandler{cfg: cfg}
}

// Landing serves the static landing page
func (h *PagesHandler) Landing(w http.ResponseWriter, r *http.Request) {
	http.ServeFile(w, r, filepath.Join(h.cfg.StaticDir, "index.html"))
}

// ConfigJS handles GET /config.js
// Exposes the one runtime value the landing page needs.
func (h *PagesHandler) ConfigJS(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/javascript")
	fmt.Fprintf(w, "window.APP_CONFIG = {\n  SOCKET_SERVER_URL: '%s'\n};\n", h.cfg.SocketServerURL)
}

// NotFound is the JSON fallback for unmatched routes
func NotFound(w http.ResponseWriter, r *http.Request) {
	response.NotFound(w, "Not Found")
}

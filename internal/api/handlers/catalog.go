package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"regexp"
	"strconv"

	"github.com/TanmoyTheBoT/fmdb-api/internal/api/request"
	"github.com/TanmoyTheBoT/fmdb-api/internal/api/response"
	"github.com/TanmoyTheBoT/fmdb-api/internal/auth"
	"github.com/TanmoyTheBoT/fmdb-api/internal/models"
	"github.com/TanmoyTheBoT/fmdb-api/internal/policy"
	"github.com/TanmoyTheBoT/fmdb-api/internal/repository"
)

// ResultsPerPage is the fixed search page size
const ResultsPerPage = 10

// imdbIDPattern validates catalog identifiers: tt followed by 7 or 8 digits
var imdbIDPattern = regexp.MustCompile(`^tt\d{7,8}$`)

// TitleStore is the catalog read surface the handlers need
type TitleStore interface {
	GetByID(ctx context.Context, imdbID string, fields []string) (models.Title, error)
	SearchByTitle(ctx context.Context, term string, fields []string, limit, offset int) ([]models.Title, error)
	CountByTitle(ctx context.Context, term string) (int, error)
	CountByType(ctx context.Context) (map[string]int, error)
}

// CatalogHandler serves the data-returning endpoints: ID lookup, title
// search, and catalog stats.
type CatalogHandler struct {
	titles TitleStore
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(titles TitleStore) *CatalogHandler {
	return &CatalogHandler{titles: titles}
}

// Dispatch routes an authenticated query on / to lookup or search based on
// which parameter is present. i wins when both are supplied.
func (h *CatalogHandler) Dispatch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if q.Get("i") != "" {
		h.Lookup(w, r)
		return
	}
	if q.Get("s") != "" {
		h.Search(w, r)
		return
	}
	response.BadRequest(w, "Invalid parameters")
}

// Lookup handles GET /?i=<imdb id>
// Fetches exactly one catalog row projected to the caller's role.
func (h *CatalogHandler) Lookup(w http.ResponseWriter, r *http.Request) {
	imdbID := request.GetQueryString(r, "i", "")

	if !imdbIDPattern.MatchString(imdbID) {
		response.BadRequest(w, "Invalid IMDb ID format")
		return
	}

	fields := policy.Fields(auth.GetRole(r.Context()), policy.EndpointLookup)

	title, err := h.titles.GetByID(r.Context(), imdbID, fields)
	if err != nil {
		if errors.Is(err, repository.ErrTitleNotFound) {
			response.NotFound(w, "Title not found")
			return
		}
		log.Printf("[catalog] lookup %s failed: %v", imdbID, err)
		response.InternalError(w)
		return
	}

	response.Success(w, policy.MapFields(title))
}

// Search handles GET /?s=<term>&page=<n>
// Unanchored substring match against titles, ten results per page, plus the
// total match count across all pages.
func (h *CatalogHandler) Search(w http.ResponseWriter, r *http.Request) {
	term := request.GetQueryString(r, "s", "")
	page := request.GetPage(r)
	offset := (page - 1) * ResultsPerPage

	fields := policy.Fields(auth.GetRole(r.Context()), policy.EndpointSearch)

	titles, err := h.titles.SearchByTitle(r.Context(), term, fields, ResultsPerPage, offset)
	if err != nil {
		log.Printf("[catalog] search %q failed: %v", term, err)
		response.InternalError(w)
		return
	}

	total, err := h.titles.CountByTitle(r.Context(), term)
	if err != nil {
		log.Printf("[catalog] search count %q failed: %v", term, err)
		response.InternalError(w)
		return
	}

	// An empty page is a 404 even when other pages would match; page bounds
	// are not validated against the total.
	if len(titles) == 0 {
		response.NotFound(w, "No results found")
		return
	}

	results := make([]map[string]any, len(titles))
	for i, title := range titles {
		results[i] = policy.MapFields(title)
	}

	response.Success(w, map[string]any{
		"Search":       results,
		"totalResults": strconv.Itoa(total),
	})
}

// Stats handles GET /stats
// Role gates access and rate limiting only; the output is identical for all
// roles.
func (h *CatalogHandler) Stats(w http.ResponseWriter, r *http.Request) {
	counts, err := h.titles.CountByType(r.Context())
	if err != nil {
		log.Printf("[catalog] stats failed: %v", err)
		response.InternalError(w)
		return
	}

	total := 0
	for _, count := range counts {
		total += count
	}

	response.Success(w, map[string]any{
		"stats": counts,
		"total": total,
	})
}

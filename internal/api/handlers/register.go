package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/TanmoyTheBoT/fmdb-api/internal/api/response"
	"github.com/TanmoyTheBoT/fmdb-api/internal/auth"
	"github.com/TanmoyTheBoT/fmdb-api/internal/models"
	"github.com/TanmoyTheBoT/fmdb-api/internal/repository"
)

// CredentialStore is the write surface registration needs
type CredentialStore interface {
	Create(ctx context.Context, user *models.User) error
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// KeySender delivers a freshly issued key to its owner
type KeySender interface {
	SendAPIKey(toEmail, firstName, apiKey string) error
}

// RegisterHandler issues new credentials. Registration is the only
// unauthenticated write path in the API.
type RegisterHandler struct {
	users  CredentialStore
	mailer KeySender
}

// NewRegisterHandler creates a new registration handler
func NewRegisterHandler(users CredentialStore, mailer KeySender) *RegisterHandler {
	return &RegisterHandler{users: users, mailer: mailer}
}

// RegisterRequest is the registration request body
type RegisterRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	UseCase   string `json:"use_case"`
}

// Register handles POST /register
// Validates the input, generates a key under the default free plan, persists
// the credential, and emails the key to the registrant.
func (h *RegisterHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	req.FirstName = strings.TrimSpace(req.FirstName)
	req.LastName = strings.TrimSpace(req.LastName)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.UseCase = strings.TrimSpace(req.UseCase)

	if req.FirstName == "" || req.LastName == "" || req.Email == "" || req.UseCase == "" {
		response.BadRequest(w, "All fields are required")
		return
	}

	exists, err := h.users.ExistsByEmail(r.Context(), req.Email)
	if err != nil {
		log.Printf("[register] email check failed: %v", err)
		response.InternalError(w)
		return
	}
	if exists {
		response.BadRequest(w, "An API key was already issued for this email")
		return
	}

	apiKey, err := auth.GenerateAPIKey()
	if err != nil {
		log.Printf("[register] key generation failed: %v", err)
		response.InternalError(w)
		return
	}

	user := &models.User{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		APIKey:    apiKey,
		UseCase:   req.UseCase,
	}

	if err := h.users.Create(r.Context(), user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			// Lost a race with a concurrent registration for the same email.
			response.BadRequest(w, "An API key was already issued for this email")
			return
		}
		log.Printf("[register] create failed: %v", err)
		response.InternalError(w)
		return
	}

	if err := h.mailer.SendAPIKey(req.Email, req.FirstName, apiKey); err != nil {
		// The credential row stays; log enough to re-send the key by hand.
		log.Printf("[register] key delivery to %s failed (credential %s persisted): %v", req.Email, user.ID, err)
		response.InternalError(w)
		return
	}

	response.Success(w, map[string]any{
		"message": "API key sent to your email",
	})
}

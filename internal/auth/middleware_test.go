package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/TanmoyTheBoT/fmdb-api/internal/models"
	"github.com/TanmoyTheBoT/fmdb-api/internal/repository"
)

// stubResolver maps known keys to roles
type stubResolver struct {
	keys map[string]models.Role
	err  error
}

func (s *stubResolver) RoleForAPIKey(ctx context.Context, apiKey string) (models.Role, error) {
	if s.err != nil {
		return "", s.err
	}
	role, ok := s.keys[apiKey]
	if !ok {
		return "", repository.ErrUserNotFound
	}
	return role, nil
}

func TestRequireAPIKey(t *testing.T) {
	resolver := &stubResolver{keys: map[string]models.Role{
		"goodkey": models.RolePaid,
	}}
	m := NewMiddleware(resolver)

	var seenRole models.Role
	var seenKey string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenRole = GetRole(r.Context())
		seenKey = GetAPIKey(r.Context())
		w.WriteHeader(http.StatusOK)
	})
	handler := m.RequireAPIKey(next)

	t.Run("missing key is a 400", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/?i=tt0111161", nil))

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", rec.Code)
		}
		assertErrorBody(t, rec, "API key required")
	})

	t.Run("unknown key is a 403", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/?apikey=BAD&i=tt0111161", nil))

		if rec.Code != http.StatusForbidden {
			t.Fatalf("status = %d, want 403", rec.Code)
		}
		assertErrorBody(t, rec, "Invalid API key")
	})

	t.Run("valid key attaches role and key to the context", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/?apikey=goodkey&i=tt0111161", nil))

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		if seenRole != models.RolePaid {
			t.Errorf("role in context = %q, want paid", seenRole)
		}
		if seenKey != "goodkey" {
			t.Errorf("api key in context = %q, want goodkey", seenKey)
		}
	})

	t.Run("store failure is a generic 500", func(t *testing.T) {
		broken := NewMiddleware(&stubResolver{err: errors.New("pool exhausted")})
		rec := httptest.NewRecorder()
		broken.RequireAPIKey(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/?apikey=goodkey", nil))

		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("status = %d, want 500", rec.Code)
		}
		assertErrorBody(t, rec, "Internal server error")
	})
}

func TestContextDefaults(t *testing.T) {
	ctx := context.Background()
	if role := GetRole(ctx); role != models.RoleFree {
		t.Errorf("GetRole on empty context = %q, want free", role)
	}
	if key := GetAPIKey(ctx); key != "" {
		t.Errorf("GetAPIKey on empty context = %q, want empty", key)
	}
}

func assertErrorBody(t *testing.T, rec *httptest.ResponseRecorder, wantErr string) {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid error body: %v", err)
	}
	if body["Response"] != "False" {
		t.Errorf("Response = %v, want False", body["Response"])
	}
	if body["Error"] != wantErr {
		t.Errorf("Error = %v, want %q", body["Error"], wantErr)
	}
}

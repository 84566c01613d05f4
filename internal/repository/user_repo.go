package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/TanmoyTheBoT/fmdb-api/internal/database"
	"github.com/TanmoyTheBoT/fmdb-api/internal/models"
)

var (
	// ErrUserNotFound is returned when no credential matches the lookup
	ErrUserNotFound = errors.New("user not found")
	// ErrDuplicateEmail is returned when the email already has a credential
	ErrDuplicateEmail = errors.New("email already registered")
)

// UserRepository handles credential database operations
type UserRepository struct {
	db *database.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *database.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create persists a new credential row. The role defaults to free; callers
// never supply a role through the registration flow.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if user.Role == "" {
		user.Role = models.RoleFree
	}
	user.CreatedAt = time.Now()

	query := `
		INSERT INTO users (id, first_name, last_name, email, api_key, role, use_case, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.db.Exec(ctx, query,
		user.ID, user.FirstName, user.LastName, user.Email,
		user.APIKey, user.Role.String(), user.UseCase, user.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

// RoleForAPIKey resolves a presented key to its role. This is the single
// credential-store read on the hot path; every data request goes through it.
func (r *UserRepository) RoleForAPIKey(ctx context.Context, apiKey string) (models.Role, error) {
	var role string
	err := r.db.QueryRow(ctx, `SELECT role FROM users WHERE api_key = $1`, apiKey).Scan(&role)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrUserNotFound
		}
		return "", fmt.Errorf("failed to resolve api key: %w", err)
	}

	return models.ParseRole(role), nil
}

// ExistsByEmail reports whether a credential already exists for the email.
func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)`, email).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check email: %w", err)
	}
	return exists, nil
}

// GetByEmail retrieves a credential by email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `
		SELECT id, first_name, last_name, email, api_key, role, use_case, created_at
		FROM users
		WHERE email = $1
	`
	var user models.User
	var role string
	err := r.db.QueryRow(ctx, query, email).Scan(
		&user.ID, &user.FirstName, &user.LastName, &user.Email,
		&user.APIKey, &role, &user.UseCase, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	user.Role = models.ParseRole(role)

	return &user, nil
}

// isUniqueViolation checks if an error is a unique constraint violation
func isUniqueViolation(err error) bool {
	// PostgreSQL unique violation error code is 23505
	if err == nil {
		return false
	}
	errMsg := err.Error()
	return strings.Contains(errMsg, "duplicate key") || strings.Contains(errMsg, "23505")
}

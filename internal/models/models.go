package models

import (
	"time"
)

// Role is the plan tier assigned to a credential. It controls which fields
// each endpoint returns and which rate-limit ceiling applies.
type Role string

// Role constants
const (
	RoleFree  Role = "free"
	RolePaid  Role = "paid"
	RoleAdmin Role = "admin"
)

// ParseRole maps a stored role string onto the closed Role set.
// Anything unrecognized degrades to the free tier rather than failing open.
func ParseRole(s string) Role {
	switch Role(s) {
	case RoleFree, RolePaid, RoleAdmin:
		return Role(s)
	default:
		return RoleFree
	}
}

// IsValid reports whether r is one of the known roles.
func (r Role) IsValid() bool {
	switch r {
	case RoleFree, RolePaid, RoleAdmin:
		return true
	default:
		return false
	}
}

func (r Role) String() string {
	return string(r)
}

// User represents a registered credential. Rows are created at registration
// and never updated or deleted through the API.
type User struct {
	ID        string    `json:"id" db:"id"`
	FirstName string    `json:"first_name" db:"first_name"`
	LastName  string    `json:"last_name" db:"last_name"`
	Email     string    `json:"email" db:"email"`
	APIKey    string    `json:"-" db:"api_key"`
	Role      Role      `json:"role" db:"role"`
	UseCase   string    `json:"use_case" db:"use_case"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Title is a catalog row from imdb_data. Because the column set returned by a
// query depends on the caller's role, rows travel through the system as
// generic maps rather than a fixed struct.
type Title = map[string]any

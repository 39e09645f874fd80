package user

import (
	"time"

	"github.com/jasonwuio/clubhub-backend/internal/pkg/apperror"
)

var (
	ErrNotFound         = apperror.NotFound("user not found")
	ErrEmailAlreadyUsed = apperror.Conflict("email already used")
	ErrEmailRequired    = apperror.Validation("email is required")
	ErrNameRequired     = apperror.Validation("name is required")
	ErrPasswordTooShort = apperror.Validation("password must be at least 8 characters")
)

// User represents a registered user. IsAdmin marks platform moderators who
// may create clubs and override event/announcement ownership checks.
type User struct {
	ID           string // UUID
	Name         string
	Email        string
	PasswordHash string
	IsAdmin      bool
	Bio          *string
	SocialMedia  map[string]string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Filter defines filter options for listing users.
type Filter struct {
	Email    string
	Name     string
	Page     int
	PageSize int
}

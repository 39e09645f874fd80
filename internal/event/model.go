package event

import (
	"time"

	"github.com/jasonwuio/clubhub-backend/internal/pkg/apperror"
)

var (
	ErrNotFound         = apperror.NotFound("event not found")
	ErrTitleRequired    = apperror.Validation("event title is required")
	ErrInvalidTimeRange = apperror.Validation("end date must not be before start date")
	ErrNegativeFee      = apperror.Validation("fee must be non-negative")
	ErrNotOwner         = apperror.Forbidden("only the club owner or a platform admin can manage this event")
)

// Event is a scheduled activity belonging to exactly one club.
type Event struct {
	ID          string // UUID
	ClubID      string
	Title       string
	Description *string
	PosterURL   *string
	StartDate   time.Time
	EndDate     time.Time
	Location    *string
	Link        *string
	Fee         float64
	Status      Status
	Metadata    map[string]any
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Filter defines filter options for listing events.
type Filter struct {
	ClubID   string
	Status   string
	Page     int
	PageSize int
}

package announcement

import (
	"time"

	"github.com/jasonwuio/clubhub-backend/internal/pkg/apperror"
)

var (
	ErrNotFound        = apperror.NotFound("announcement not found")
	ErrTitleRequired   = apperror.Validation("title is required")
	ErrContentRequired = apperror.Validation("content is required")
	ErrNotOwner        = apperror.Forbidden("only the club owner or a platform admin can manage announcements for this event")
)

// Announcement is a news post attached to an event.
type Announcement struct {
	ID        string // UUID
	EventID   string
	Title     string
	Content   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Filter defines parameters for listing announcements.
type Filter struct {
	EventID  string
	Page     int
	PageSize int
}

package http

import (
	"time"

	"github.com/jasonwuio/clubhub-backend/internal/announcement"
	"github.com/jasonwuio/clubhub-backend/internal/pkg/request"
)

// ListAnnouncementsRequest defines query parameters for listing announcements.
type ListAnnouncementsRequest struct {
	request.PageRequest
	EventID string `form:"event_id" binding:"omitempty,uuid"`
}

type AnnouncementResponse struct {
	ID        string    `json:"id"`
	EventID   string    `json:"event_id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewResponse(a *announcement.Announcement) AnnouncementResponse {
	return AnnouncementResponse{
		ID:        a.ID,
		EventID:   a.EventID,
		Title:     a.Title,
		Content:   a.Content,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

type CreateRequest struct {
	EventID string `json:"event_id" binding:"required,uuid"`
	Title   string `json:"title" binding:"required"`
	Content string `json:"content" binding:"required"`
}

type UpdateRequest struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
}

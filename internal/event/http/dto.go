package http

import (
	"time"

	"github.com/jasonwuio/clubhub-backend/internal/event"
	"github.com/jasonwuio/clubhub-backend/internal/pkg/request"
)

// ListEventsRequest defines query parameters for listing events.
type ListEventsRequest struct {
	request.PageRequest
	ClubID string `form:"club_id" binding:"omitempty,uuid"`
	Status string `form:"status" binding:"omitempty,oneof=upcoming ongoing completed cancelled"`
}

type EventResponse struct {
	ID          string         `json:"id"`
	ClubID      string         `json:"club_id"`
	Title       string         `json:"title"`
	Description *string        `json:"description"`
	PosterURL   *string        `json:"poster_url"`
	StartDate   time.Time      `json:"start_date"`
	EndDate     time.Time      `json:"end_date"`
	Location    *string        `json:"location"`
	Link        *string        `json:"link"`
	Fee         float64        `json:"fee"`
	Status      string         `json:"status"`
	Metadata    map[string]any `json:"metadata"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

func NewEventResponse(e *event.Event) EventResponse {
	return EventResponse{
		ID:          e.ID,
		ClubID:      e.ClubID,
		Title:       e.Title,
		Description: e.Description,
		PosterURL:   e.PosterURL,
		StartDate:   e.StartDate,
		EndDate:     e.EndDate,
		Location:    e.Location,
		Link:        e.Link,
		Fee:         e.Fee,
		Status:      string(e.Status),
		Metadata:    e.Metadata,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

type CreateEventRequest struct {
	ClubID      string         `json:"club_id" binding:"required,uuid"`
	Title       string         `json:"title" binding:"required"`
	Description *string        `json:"description"`
	PosterURL   *string        `json:"poster_url"`
	StartDate   time.Time      `json:"start_date" binding:"required" time_format:"2006-01-02T15:04:05Z07:00"`
	EndDate     time.Time      `json:"end_date" binding:"required" time_format:"2006-01-02T15:04:05Z07:00"`
	Location    *string        `json:"location"`
	Link        *string        `json:"link"`
	Fee         float64        `json:"fee" binding:"omitempty,min=0"`
	Metadata    map[string]any `json:"metadata"`
}

type UpdateEventRequest struct {
	Title       *string        `json:"title"`
	Description *string        `json:"description"`
	PosterURL   *string        `json:"poster_url"`
	StartDate   *time.Time     `json:"start_date" time_format:"2006-01-02T15:04:05Z07:00"`
	EndDate     *time.Time     `json:"end_date" time_format:"2006-01-02T15:04:05Z07:00"`
	Location    *string        `json:"location"`
	Link        *string        `json:"link"`
	Fee         *float64       `json:"fee" binding:"omitempty,min=0"`
	Metadata    map[string]any `json:"metadata"`
}

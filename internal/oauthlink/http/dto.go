package http

import (
	"time"

	"github.com/jasonwuio/clubhub-backend/internal/oauthlink"
)

type ProviderURIRequest struct {
	Provider string `uri:"provider" binding:"required"`
}

type ConnectRequest struct {
	Code string `json:"code" binding:"required"`
}

type AuthURLResponse struct {
	URL string `json:"url"`
}

type LinkResponse struct {
	ID             string         `json:"id"`
	Provider       string         `json:"provider"`
	ProviderUserID string         `json:"provider_user_id"`
	Metadata       map[string]any `json:"metadata,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

// toLinkResponse deliberately omits tokens; they never leave the server.
func toLinkResponse(l *oauthlink.Link) LinkResponse {
	return LinkResponse{
		ID:             l.ID,
		Provider:       l.Provider,
		ProviderUserID: l.ProviderUserID,
		Metadata:       l.Metadata,
		CreatedAt:      l.CreatedAt,
		UpdatedAt:      l.UpdatedAt,
	}
}

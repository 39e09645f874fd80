package http

import (
	"time"

	"github.com/jasonwuio/clubhub-backend/internal/club"
	"github.com/jasonwuio/clubhub-backend/internal/pkg/request"
)

// ListClubsRequest defines query parameters for listing clubs.
type ListClubsRequest struct {
	request.PageRequest
	Category string `form:"category"`
}

type MemberResponse struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
}

type ClubResponse struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Description *string          `json:"description"`
	OwnerID     string           `json:"owner_id"`
	Members     []MemberResponse `json:"members"`
	LogoURL     *string          `json:"logo_url"`
	Category    *string          `json:"category"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

func NewClubResponse(c *club.Club) ClubResponse {
	members := make([]MemberResponse, len(c.Members))
	for i, m := range c.Members {
		members[i] = MemberResponse{UserID: m.UserID, Role: m.Role}
	}
	return ClubResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		OwnerID:     c.OwnerID,
		Members:     members,
		LogoURL:     c.LogoURL,
		Category:    c.Category,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

type CreateClubRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description"`
	Category    *string `json:"category"`
	LogoURL     *string `json:"logo_url"`
}

type UpdateClubRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Category    *string `json:"category"`
	LogoURL     *string `json:"logo_url"`
}

type JoinClubRequest struct {
	Message       *string `json:"message"`
	RequestedRole *string `json:"role"`
}

type ResolveRequestRequest struct {
	Status        string  `json:"status" binding:"required,oneof=accepted rejected"`
	AdminResponse *string `json:"admin_response"`
}

type RequestResponse struct {
	ID            string    `json:"id"`
	ClubID        string    `json:"club_id"`
	UserID        string    `json:"user_id"`
	Status        string    `json:"status"`
	Message       *string   `json:"message"`
	RequestedRole *string   `json:"requested_role"`
	AdminResponse *string   `json:"admin_response"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func NewRequestResponse(r *club.Request) RequestResponse {
	return RequestResponse{
		ID:            r.ID,
		ClubID:        r.ClubID,
		UserID:        r.UserID,
		Status:        string(r.Status),
		Message:       r.Message,
		RequestedRole: r.RequestedRole,
		AdminResponse: r.AdminResponse,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}

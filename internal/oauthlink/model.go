package oauthlink

import (
	"time"

	"github.com/jasonwuio/clubhub-backend/internal/pkg/apperror"
)

var (
	ErrNotFound          = apperror.NotFound("no linked account for this provider")
	ErrUnknownProvider   = apperror.Validation("unknown oauth provider")
	ErrNotConfigured     = apperror.Validation("oauth provider is not configured")
	ErrLinkedToOtherUser = apperror.Conflict("this account is already connected to another user")
)

// Supported identity providers.
const (
	ProviderGitHub   = "github"
	ProviderLinkedIn = "linkedin"
)

// Link is one external identity connected to a local user. The pair
// (provider, provider_user_id) is globally unique so one external account
// can never be linked to two local users.
type Link struct {
	ID             string // UUID
	UserID         string
	Provider       string
	ProviderUserID string
	AccessToken    string
	RefreshToken   *string
	TokenExpiry    *time.Time
	// Metadata holds the provider-returned profile document. Payload size
	// is unbounded, so it is stored as JSONB rather than a short string.
	Metadata  map[string]any
	CreatedAt time.Time
	UpdatedAt time.Time
}

package oauthlink

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/github"
	"golang.org/x/oauth2/linkedin"

	"github.com/jasonwuio/clubhub-backend/internal/config"
)

// Providers maps provider names to their oauth2 client configuration.
// A provider missing from the map was not configured at startup.
type Providers map[string]*oauth2.Config

// NewProviders builds the provider map from configured credentials,
// skipping providers whose client ID is unset.
func NewProviders(cfg *config.Config) Providers {
	p := Providers{}
	if cfg.GitHubClientID != "" {
		p[ProviderGitHub] = &oauth2.Config{
			ClientID:     cfg.GitHubClientID,
			ClientSecret: cfg.GitHubClientSecret,
			RedirectURL:  cfg.GitHubRedirectURL,
			Scopes:       []string{"read:user", "user:email"},
			Endpoint:     github.Endpoint,
		}
	}
	if cfg.LinkedInClientID != "" {
		p[ProviderLinkedIn] = &oauth2.Config{
			ClientID:     cfg.LinkedInClientID,
			ClientSecret: cfg.LinkedInClientSecret,
			RedirectURL:  cfg.LinkedInRedirectURL,
			Scopes:       []string{"openid", "profile", "email"},
			Endpoint:     linkedin.Endpoint,
		}
	}
	return p
}

// ProfileFetcher resolves the provider-side account behind an access token.
type ProfileFetcher interface {
	Fetch(ctx context.Context, provider string, token *oauth2.Token) (providerUserID string, profile map[string]any, err error)
}

type httpProfileFetcher struct {
	providers Providers
}

func NewProfileFetcher(providers Providers) ProfileFetcher {
	return &httpProfileFetcher{providers: providers}
}

var profileEndpoints = map[string]string{
	ProviderGitHub:   "https://api.github.com/user",
	ProviderLinkedIn: "https://api.linkedin.com/v2/userinfo",
}

// idFields lists, per provider, the profile key carrying the stable account id.
var idFields = map[string]string{
	ProviderGitHub:   "id",
	ProviderLinkedIn: "sub",
}

func (f *httpProfileFetcher) Fetch(ctx context.Context, provider string, token *oauth2.Token) (string, map[string]any, error) {
	cfg, ok := f.providers[provider]
	if !ok {
		return "", nil, ErrNotConfigured
	}

	resp, err := cfg.Client(ctx, token).Get(profileEndpoints[provider])
	if err != nil {
		return "", nil, fmt.Errorf("fetch %s profile: %w", provider, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", nil, fmt.Errorf("fetch %s profile: unexpected status %d", provider, resp.StatusCode)
	}

	var profile map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return "", nil, fmt.Errorf("decode %s profile: %w", provider, err)
	}

	id, err := stringID(profile[idFields[provider]])
	if err != nil {
		return "", nil, fmt.Errorf("%s profile: %w", provider, err)
	}
	return id, profile, nil
}

// stringID normalizes the account id field, which GitHub returns as a JSON
// number and LinkedIn as a string.
func stringID(v any) (string, error) {
	switch id := v.(type) {
	case string:
		if id == "" {
			return "", fmt.Errorf("empty account id")
		}
		return id, nil
	case float64:
		return fmt.Sprintf("%.0f", id), nil
	default:
		return "", fmt.Errorf("missing account id")
	}
}

package oauthlink

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/oauth2"
)

type Service interface {
	// AuthURL returns the provider consent-screen URL for the given state.
	AuthURL(provider, state string) (string, error)
	// Connect exchanges an authorization code and links the resulting
	// provider account to userID.
	Connect(ctx context.Context, userID, provider, code string) (*Link, error)
	ListByUser(ctx context.Context, userID string) ([]Link, error)
	Disconnect(ctx context.Context, userID, provider string) error
}

type service struct {
	repo      Repository
	providers Providers
	profiles  ProfileFetcher
}

func NewService(repo Repository, providers Providers, profiles ProfileFetcher) Service {
	return &service{repo: repo, providers: providers, profiles: profiles}
}

func (s *service) AuthURL(provider, state string) (string, error) {
	cfg, err := s.providerConfig(provider)
	if err != nil {
		return "", err
	}
	return cfg.AuthCodeURL(state), nil
}

func (s *service) Connect(ctx context.Context, userID, provider, code string) (*Link, error) {
	cfg, err := s.providerConfig(provider)
	if err != nil {
		return nil, err
	}

	token, err := cfg.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("exchange %s authorization code: %w", provider, err)
	}

	providerUserID, profile, err := s.profiles.Fetch(ctx, provider, token)
	if err != nil {
		return nil, err
	}

	// The same external account must not end up linked to two local users.
	existing, err := s.repo.GetByProviderAccount(ctx, provider, providerUserID)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, err
	}
	if existing != nil && existing.UserID != userID {
		return nil, ErrLinkedToOtherUser
	}

	link := &Link{
		UserID:         userID,
		Provider:       provider,
		ProviderUserID: providerUserID,
		AccessToken:    token.AccessToken,
		Metadata:       profile,
	}
	if token.RefreshToken != "" {
		rt := token.RefreshToken
		link.RefreshToken = &rt
	}
	if !token.Expiry.IsZero() {
		exp := token.Expiry
		link.TokenExpiry = &exp
	}

	if err := s.repo.Upsert(ctx, link); err != nil {
		return nil, err
	}
	return link, nil
}

func (s *service) ListByUser(ctx context.Context, userID string) ([]Link, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *service) Disconnect(ctx context.Context, userID, provider string) error {
	if _, err := s.providerConfig(provider); errors.Is(err, ErrUnknownProvider) {
		return err
	}
	return s.repo.Delete(ctx, userID, provider)
}

func (s *service) providerConfig(provider string) (*oauth2.Config, error) {
	switch provider {
	case ProviderGitHub, ProviderLinkedIn:
	default:
		return nil, ErrUnknownProvider
	}
	c, ok := s.providers[provider]
	if !ok {
		return nil, ErrNotConfigured
	}
	return c, nil
}

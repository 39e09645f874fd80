package app

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jasonwuio/clubhub-backend/internal/announcement"
	"github.com/jasonwuio/clubhub-backend/internal/api"
	"github.com/jasonwuio/clubhub-backend/internal/auth"
	"github.com/jasonwuio/clubhub-backend/internal/club"
	"github.com/jasonwuio/clubhub-backend/internal/config"
	"github.com/jasonwuio/clubhub-backend/internal/event"
	"github.com/jasonwuio/clubhub-backend/internal/file"
	"github.com/jasonwuio/clubhub-backend/internal/oauthlink"
	"github.com/jasonwuio/clubhub-backend/internal/pkg/storage"
	"github.com/jasonwuio/clubhub-backend/internal/user"
)

// Container holds the initialized components that are needed externally.
type Container struct {
	Router *gin.Engine
	Tokens *auth.TokenManager
}

// NewContainer initializes all modules and returns the container.
func NewContainer(cfg *config.Config, pool *pgxpool.Pool) (*Container, error) {
	passwordHasher := auth.NewBcryptHasher(cfg.BcryptCost)
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTAccessTokenTTL)

	// User module
	userRepo := user.NewPgxRepository(pool)
	userService := user.NewService(userRepo, passwordHasher)

	// Club module (membership ledger and join requests included)
	clubRepo := club.NewPgxRepository(pool)
	clubService := club.NewService(clubRepo, userService)

	// Event module
	eventRepo := event.NewPgxRepository(pool)
	eventService := event.NewService(eventRepo, clubService, userService)

	// Announcement module
	annRepo := announcement.NewPgxRepository(pool)
	annService := announcement.NewService(annRepo, eventService, clubService, userService)

	// OAuth profile linking
	providers := oauthlink.NewProviders(cfg)
	oauthRepo := oauthlink.NewPgxRepository(pool)
	oauthService := oauthlink.NewService(oauthRepo, providers, oauthlink.NewProfileFetcher(providers))

	// File storage
	store, err := storage.NewLocalStorage(cfg.MediaDir)
	if err != nil {
		return nil, fmt.Errorf("init media storage: %w", err)
	}
	fileRepo := file.NewPgxRepository(pool)
	fileService := file.NewService(fileRepo, store)

	router := api.NewRouter(cfg, api.Services{
		User:         userService,
		Club:         clubService,
		Event:        eventService,
		Announcement: annService,
		OAuthLink:    oauthService,
		File:         fileService,
		Tokens:       tokens,
	})

	return &Container{
		Router: router,
		Tokens: tokens,
	}, nil
}

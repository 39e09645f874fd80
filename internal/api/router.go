package api

import (
	"context"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/jasonwuio/clubhub-backend/internal/announcement"
	announcementHttp "github.com/jasonwuio/clubhub-backend/internal/announcement/http"
	"github.com/jasonwuio/clubhub-backend/internal/auth"
	"github.com/jasonwuio/clubhub-backend/internal/club"
	clubHttp "github.com/jasonwuio/clubhub-backend/internal/club/http"
	"github.com/jasonwuio/clubhub-backend/internal/config"
	"github.com/jasonwuio/clubhub-backend/internal/event"
	eventHttp "github.com/jasonwuio/clubhub-backend/internal/event/http"
	"github.com/jasonwuio/clubhub-backend/internal/file"
	fileHttp "github.com/jasonwuio/clubhub-backend/internal/file/http"
	"github.com/jasonwuio/clubhub-backend/internal/oauthlink"
	oauthHttp "github.com/jasonwuio/clubhub-backend/internal/oauthlink/http"
	"github.com/jasonwuio/clubhub-backend/internal/pkg/request"
	"github.com/jasonwuio/clubhub-backend/internal/user"
)

const uploadMaxBytes = 10 << 20 // 10 MiB

// Services groups everything the router needs injected.
type Services struct {
	User         user.Service
	Club         club.Service
	Event        event.Service
	Announcement announcement.Service
	OAuthLink    oauthlink.Service
	File         file.Service
	Tokens       *auth.TokenManager
}

// NewRouter assembles middleware (CORS, logging, auth) and registers the
// routes of every module under /v1.
func NewRouter(cfg *config.Config, svcs Services) *gin.Engine {
	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	corsConfig := cors.DefaultConfig()
	if cfg.IsProduction && cfg.ProdOrigins != "" {
		corsConfig.AllowOrigins = []string{cfg.ProdOrigins}
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	r.Use(cors.New(corsConfig))

	authMiddleware := auth.AuthRequired(svcs.Tokens)
	adminMiddleware := RequireAdmin(svcs.User)

	authHandler := NewAuthHandler(svcs.User, svcs.Tokens)
	userHandler := NewUserHandler(svcs.User)
	clubHandler := clubHttp.NewHandler(svcs.Club)
	eventHandler := eventHttp.NewHandler(svcs.Event)
	announcementHandler := announcementHttp.NewHandler(svcs.Announcement)
	oauthHandler := oauthHttp.NewHandler(svcs.OAuthLink)
	fileHandler := fileHttp.NewHandler(svcs.File)

	v1 := r.Group("/v1")
	{
		v1.POST("/auth/register", authHandler.Register)
		v1.POST("/auth/login", authHandler.Login)
		v1.GET("/me", authMiddleware, authHandler.Me)

		users := v1.Group("/users")
		users.Use(authMiddleware)
		{
			users.GET("", adminMiddleware, userHandler.List)
			users.GET("/:id", userHandler.Get)
			users.PATCH("/:id", userHandler.Update)
			users.DELETE("/:id", userHandler.Delete)
		}

		clubHttp.RegisterRoutes(v1, clubHandler, authMiddleware)
		eventHttp.RegisterRoutes(v1, eventHandler, authMiddleware)
		announcementHttp.RegisterRoutes(v1, announcementHandler, authMiddleware)
		oauthHttp.RegisterRoutes(v1, oauthHandler, authMiddleware)
		fileHttp.RegisterRoutes(v1, fileHandler, authMiddleware)

		registerMediaUploads(v1, fileHandler, svcs, authMiddleware)
	}

	return r
}

// registerMediaUploads wires the image endpoints that attach uploaded files
// to their owning entities. Ownership is enforced by the Update call each
// hook performs, so an unauthorized upload rolls back.
func registerMediaUploads(v1 *gin.RouterGroup, fileHandler *fileHttp.Handler, svcs Services, authMiddleware gin.HandlerFunc) {
	imageTypes := []string{"image/jpeg", "image/png", "image/gif", "image/webp"}

	v1.POST("/clubs/:id/logo", authMiddleware, func(c *gin.Context) {
		var uri request.ByIDRequest
		if err := c.ShouldBindUri(&uri); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
			return
		}
		actorID := auth.GetUserID(c)

		fileHandler.HandleUpload(c, fileHttp.UploadConfig{
			MaxSizeBytes:   uploadMaxBytes,
			AllowedTypes:   imageTypes,
			NormalizeImage: true,
			AfterUpload: func(ctx context.Context, fileID string) error {
				url := file.FileURL(fileID)
				_, err := svcs.Club.Update(ctx, uri.ID, club.UpdateRequest{LogoURL: &url}, actorID)
				return err
			},
		})
	})

	v1.POST("/events/:id/poster", authMiddleware, func(c *gin.Context) {
		var uri request.ByIDRequest
		if err := c.ShouldBindUri(&uri); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
			return
		}
		actorID := auth.GetUserID(c)

		fileHandler.HandleUpload(c, fileHttp.UploadConfig{
			MaxSizeBytes:   uploadMaxBytes,
			AllowedTypes:   imageTypes,
			NormalizeImage: true,
			AfterUpload: func(ctx context.Context, fileID string) error {
				url := file.FileURL(fileID)
				_, err := svcs.Event.Update(ctx, uri.ID, event.UpdateRequest{PosterURL: &url}, actorID)
				return err
			},
		})
	})
}

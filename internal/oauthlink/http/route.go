package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	oauth := g.Group("/oauth")
	oauth.Use(authMiddleware)
	{
		oauth.GET("", h.List)
		oauth.GET("/:provider/url", h.AuthURL)
		oauth.POST("/:provider/connect", h.Connect)
		oauth.DELETE("/:provider", h.Disconnect)
	}
}

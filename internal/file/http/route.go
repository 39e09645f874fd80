package http

import "github.com/gin-gonic/gin"

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	files := g.Group("/files")
	files.Use(authMiddleware)
	{
		files.GET("/:id", h.ServeFile)
		files.GET("/:id/thumbnail", h.ServeThumbnail)
		files.DELETE("/:id", h.Delete)
	}
}

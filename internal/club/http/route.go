package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	clubs := g.Group("/clubs")
	clubs.Use(authMiddleware)
	{
		clubs.GET("", h.List)
		clubs.GET("/managed", h.ListManaged)
		clubs.GET("/:id", h.Get)
		clubs.POST("", h.Create)
		clubs.PATCH("/:id", h.Update)
		clubs.DELETE("/:id", h.Delete)

		clubs.POST("/:id/requests", h.Join)
		clubs.GET("/:id/requests", h.ListRequests)
	}

	requests := g.Group("/requests")
	requests.Use(authMiddleware)
	{
		requests.GET("/mine", h.ListMine)
		requests.GET("/:id", h.GetRequest)
		requests.PATCH("/:id", h.Resolve)
	}
}

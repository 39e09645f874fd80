package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jasonwuio/clubhub-backend/internal/auth"
	"github.com/jasonwuio/clubhub-backend/internal/oauthlink"
	"github.com/jasonwuio/clubhub-backend/internal/pkg/response"
)

type Handler struct {
	service oauthlink.Service
}

func NewHandler(service oauthlink.Service) *Handler {
	return &Handler{service: service}
}

// AuthURL hands the client the provider consent-screen URL to redirect to.
func (h *Handler) AuthURL(c *gin.Context) {
	var uri ProviderURIRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	url, err := h.service.AuthURL(uri.Provider, auth.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, AuthURLResponse{URL: url})
}

// Connect exchanges the authorization code the client obtained and links
// the provider account to the authenticated user.
func (h *Handler) Connect(c *gin.Context) {
	var uri ProviderURIRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	var body ConnectRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	link, err := h.service.Connect(c.Request.Context(), auth.GetUserID(c), uri.Provider, body.Code)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, toLinkResponse(link))
}

// List returns the authenticated user's connected accounts.
func (h *Handler) List(c *gin.Context) {
	links, err := h.service.ListByUser(c.Request.Context(), auth.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]LinkResponse, len(links))
	for i := range links {
		items[i] = toLinkResponse(&links[i])
	}

	c.JSON(http.StatusOK, items)
}

func (h *Handler) Disconnect(c *gin.Context) {
	var uri ProviderURIRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	if err := h.service.Disconnect(c.Request.Context(), auth.GetUserID(c), uri.Provider); err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

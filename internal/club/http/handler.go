package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jasonwuio/clubhub-backend/internal/auth"
	"github.com/jasonwuio/clubhub-backend/internal/club"
	"github.com/jasonwuio/clubhub-backend/internal/pkg/request"
	"github.com/jasonwuio/clubhub-backend/internal/pkg/response"
)

type Handler struct {
	service club.Service
}

func NewHandler(service club.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) List(c *gin.Context) {
	var req ListClubsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}

	filter := club.Filter{
		Category: req.Category,
		Page:     req.Page,
		PageSize: req.PageSize,
	}

	list, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]ClubResponse, len(list))
	for i, cl := range list {
		items[i] = NewClubResponse(cl)
	}

	c.JSON(http.StatusOK, response.NewPage(items, filter.Page, filter.PageSize, total))
}

// ListManaged returns the clubs owned by the authenticated user.
func (h *Handler) ListManaged(c *gin.Context) {
	list, err := h.service.ListByOwner(c.Request.Context(), auth.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]ClubResponse, len(list))
	for i, cl := range list {
		items[i] = NewClubResponse(cl)
	}

	c.JSON(http.StatusOK, items)
}

func (h *Handler) Get(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	cl, err := h.service.GetByID(c.Request.Context(), req.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewClubResponse(cl))
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateClubRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	req := club.CreateRequest{
		Name:        body.Name,
		Description: body.Description,
		Category:    body.Category,
		LogoURL:     body.LogoURL,
	}

	cl, err := h.service.Create(c.Request.Context(), auth.GetUserID(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewClubResponse(cl))
}

func (h *Handler) Update(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	var body UpdateClubRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	req := club.UpdateRequest{
		Name:        body.Name,
		Description: body.Description,
		Category:    body.Category,
		LogoURL:     body.LogoURL,
	}

	cl, err := h.service.Update(c.Request.Context(), uri.ID, req, auth.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewClubResponse(cl))
}

func (h *Handler) Delete(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	if err := h.service.Delete(c.Request.Context(), req.ID, auth.GetUserID(c)); err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Join creates a pending membership request for the authenticated user.
func (h *Handler) Join(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	var body JoinClubRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	req := club.JoinRequest{
		Message:       body.Message,
		RequestedRole: body.RequestedRole,
	}

	r, err := h.service.Join(c.Request.Context(), uri.ID, auth.GetUserID(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewRequestResponse(r))
}

// ListRequests returns a club's join requests to its owner.
func (h *Handler) ListRequests(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	list, err := h.service.ListRequests(c.Request.Context(), uri.ID, auth.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]RequestResponse, len(list))
	for i, r := range list {
		items[i] = NewRequestResponse(r)
	}

	c.JSON(http.StatusOK, items)
}

// GetRequest returns a single join request to the owning club's owner.
func (h *Handler) GetRequest(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	r, err := h.service.GetRequest(c.Request.Context(), uri.ID, auth.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewRequestResponse(r))
}

// ListMine returns the authenticated user's own join requests.
func (h *Handler) ListMine(c *gin.Context) {
	list, err := h.service.ListUserRequests(c.Request.Context(), auth.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]RequestResponse, len(list))
	for i, r := range list {
		items[i] = NewRequestResponse(r)
	}

	c.JSON(http.StatusOK, items)
}

// Resolve accepts or rejects a pending join request.
func (h *Handler) Resolve(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	var body ResolveRequestRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	req := club.ResolveRequest{
		Status:        club.RequestStatus(body.Status),
		AdminResponse: body.AdminResponse,
	}

	r, err := h.service.Resolve(c.Request.Context(), uri.ID, req, auth.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewRequestResponse(r))
}

package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jasonwuio/clubhub-backend/internal/auth"
	"github.com/jasonwuio/clubhub-backend/internal/event"
	"github.com/jasonwuio/clubhub-backend/internal/pkg/request"
	"github.com/jasonwuio/clubhub-backend/internal/pkg/response"
)

type Handler struct {
	service event.Service
}

func NewHandler(service event.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) List(c *gin.Context) {
	var req ListEventsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}

	filter := event.Filter{
		ClubID:   req.ClubID,
		Status:   req.Status,
		Page:     req.Page,
		PageSize: req.PageSize,
	}

	list, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]EventResponse, len(list))
	for i, e := range list {
		items[i] = NewEventResponse(e)
	}

	c.JSON(http.StatusOK, response.NewPage(items, filter.Page, filter.PageSize, total))
}

func (h *Handler) Get(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	e, err := h.service.GetByID(c.Request.Context(), req.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewEventResponse(e))
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateEventRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	req := event.CreateRequest{
		ClubID:      body.ClubID,
		Title:       body.Title,
		Description: body.Description,
		PosterURL:   body.PosterURL,
		StartDate:   body.StartDate,
		EndDate:     body.EndDate,
		Location:    body.Location,
		Link:        body.Link,
		Fee:         body.Fee,
		Metadata:    body.Metadata,
	}

	e, err := h.service.Create(c.Request.Context(), req, auth.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewEventResponse(e))
}

func (h *Handler) Update(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	var body UpdateEventRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	req := event.UpdateRequest{
		Title:       body.Title,
		Description: body.Description,
		PosterURL:   body.PosterURL,
		StartDate:   body.StartDate,
		EndDate:     body.EndDate,
		Location:    body.Location,
		Link:        body.Link,
		Fee:         body.Fee,
		Metadata:    body.Metadata,
	}

	e, err := h.service.Update(c.Request.Context(), uri.ID, req, auth.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewEventResponse(e))
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

package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jasonwuio/clubhub-backend/internal/auth"
	"github.com/jasonwuio/clubhub-backend/internal/pkg/request"
	"github.com/jasonwuio/clubhub-backend/internal/pkg/response"
	"github.com/jasonwuio/clubhub-backend/internal/user"
)

type UserHandler struct {
	userService user.Service
}

func NewUserHandler(userService user.Service) *UserHandler {
	return &UserHandler{userService: userService}
}

// GET /v1/users
// Admin only; members look up profiles individually.
func (h *UserHandler) List(c *gin.Context) {
	var page request.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}

	filter := user.Filter{
		Email:    c.Query("email"),
		Name:     c.Query("name"),
		Page:     page.Page,
		PageSize: page.PageSize,
	}

	users, total, err := h.userService.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]UserResponse, len(users))
	for i, u := range users {
		items[i] = NewUserResponse(u)
	}

	c.JSON(http.StatusOK, response.NewPage(items, filter.Page, filter.PageSize, total))
}

// GET /v1/users/:id
func (h *UserHandler) Get(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	u, err := h.userService.GetByID(c.Request.Context(), uri.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewUserResponse(u))
}

// PATCH /v1/users/:id
// A user edits their own profile; admins may edit anyone's.
func (h *UserHandler) Update(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	if !h.canManage(c, uri.ID) {
		return
	}

	var body UpdateUserBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	u, err := h.userService.Update(c.Request.Context(), uri.ID, user.UpdateRequest{
		Name:        body.Name,
		Bio:         body.Bio,
		SocialMedia: body.SocialMedia,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewUserResponse(u))
}

// DELETE /v1/users/:id
// A user removes their own account; admins may remove anyone's.
func (h *UserHandler) Delete(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	if !h.canManage(c, uri.ID) {
		return
	}

	if err := h.userService.Delete(c.Request.Context(), uri.ID); err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// canManage aborts with 403 unless the caller is targetID or an admin.
func (h *UserHandler) canManage(c *gin.Context, targetID string) bool {
	actorID := auth.GetUserID(c)
	if actorID == targetID {
		return true
	}

	actor, err := h.userService.GetByID(c.Request.Context(), actorID)
	if err == nil && actor.IsAdmin {
		return true
	}

	c.JSON(http.StatusForbidden, gin.H{"error": "forbidden: cannot manage another user's account"})
	return false
}

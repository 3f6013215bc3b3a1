package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"innervoice/internal/http-api/dto"
	"innervoice/internal/http-api/middleware"
	"innervoice/internal/http-api/service"
)

type AdminHandler struct {
	adminService service.AdminService
}

func NewAdminHandler(adminService service.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

// ListUsers returns the paginated user directory with optional search and
// verification filters.
// GET /admin/users?search=&verified=&page=1&per_page=15
func (h *AdminHandler) ListUsers(c *gin.Context) {
	page, perPage := paginationParams(c)
	search := c.Query("search")

	var verified *bool
	if raw := c.Query("verified"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "Invalid verified filter"})
			return
		}
		verified = &parsed
	}

	users, total, err := h.adminService.ListUsers(search, verified, page, perPage)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to load users", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":       users,
		"pagination": dto.NewPagination(total, perPage, page, len(users)),
	})
}

// GetUser returns a user with their confessions.
// GET /admin/users/:id
func (h *AdminHandler) GetUser(c *gin.Context) {
	user, err := h.adminService.GetUser(c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to load user", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

// UpdateUser applies a partial update to a user's profile and flags.
// PUT /admin/users/:id
func (h *AdminHandler) UpdateUser(c *gin.Context) {
	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": err.Error()})
		return
	}

	user, err := h.adminService.UpdateUser(c.Param("id"), req)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update user", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User updated successfully", "user": user})
}

// DeleteUser removes a user and their content. Self-deletion is refused.
// DELETE /admin/users/:id
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	caller := middleware.CurrentUser(c)
	if caller == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthenticated"})
		return
	}

	if err := h.adminService.DeleteUser(c.Param("id"), caller.ID); err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		case errors.Is(err, service.ErrCannotDeleteSelf):
			c.JSON(http.StatusForbidden, gin.H{"message": "Cannot delete your own admin account."})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to delete user", "error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
}

// Stats returns the dashboard aggregate counters.
// GET /admin/stats
func (h *AdminHandler) Stats(c *gin.Context) {
	stats, err := h.adminService.Stats(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to load stats", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, stats)
}

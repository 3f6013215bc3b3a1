package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"innervoice/internal/http-api/dto"
	"innervoice/internal/http-api/middleware"
	"innervoice/internal/http-api/service"
)

type AdminAuthHandler struct {
	authService service.AuthService
}

func NewAdminAuthHandler(authService service.AuthService) *AdminAuthHandler {
	return &AdminAuthHandler{authService: authService}
}

// Login authenticates an admin with the stricter gate and a longer token.
// POST /admin/login
func (h *AdminAuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": err.Error()})
		return
	}

	token, user, err := h.authService.AdminLogin(req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid credentials."})
		case errors.Is(err, service.ErrNotAdmin):
			c.JSON(http.StatusForbidden, gin.H{"message": "Unauthorized. Admin access required."})
		case errors.Is(err, service.ErrNotVerified):
			c.JSON(http.StatusForbidden, gin.H{"message": "Admin account not verified."})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to log in", "error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "user": user, "message": "Admin logged in successfully"})
}

// Me returns the authenticated admin identity.
// GET /admin/me
func (h *AdminAuthHandler) Me(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthenticated"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

// Logout revokes the admin session token.
// POST /admin/logout
func (h *AdminAuthHandler) Logout(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthenticated"})
		return
	}

	if err := h.authService.Logout(user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to log out", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully."})
}

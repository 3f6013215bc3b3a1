package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"innervoice/internal/http-api/dto"
	"innervoice/internal/http-api/middleware"
	"innervoice/internal/http-api/service"
)

type AuthHandler struct {
	authService service.AuthService
}

func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register creates an unverified account and mails the verification OTP.
// POST /auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": err.Error()})
		return
	}

	_, err := h.authService.Register(req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrEmailInUse) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "The email has already been taken."})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to register", "error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Registered successfully. Please verify the OTP sent to your email."})
}

// VerifyOtp confirms the emailed code and returns the first session token.
// POST /auth/verify
func (h *AuthHandler) VerifyOtp(c *gin.Context) {
	var req dto.VerifyOtpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": err.Error()})
		return
	}

	token, user, err := h.authService.VerifyOtp(req.Email, req.Otp)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": "User not found."})
		case errors.Is(err, service.ErrAlreadyVerified):
			c.JSON(http.StatusOK, gin.H{"message": "User already verified."})
		case errors.Is(err, service.ErrInvalidOtp):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "Invalid OTP."})
		case errors.Is(err, service.ErrOtpExpired):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "OTP expired."})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to verify OTP", "error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Verified", "token": token, "user": user})
}

// ResendOtp issues a fresh code for an unverified account.
// POST /auth/resend-otp
func (h *AuthHandler) ResendOtp(c *gin.Context) {
	var req dto.ResendOtpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": err.Error()})
		return
	}

	if err := h.authService.ResendOtp(req.Email); err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "User not found."})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to resend OTP", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "OTP sent. Please check your email."})
}

// Login authenticates a verified user and rotates the session token.
// POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": err.Error()})
		return
	}

	token, user, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid credentials."})
		case errors.Is(err, service.ErrNotVerified):
			c.JSON(http.StatusForbidden, gin.H{"message": "Please verify your account via OTP before logging in."})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to log in", "error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "user": user})
}

// ForgotPassword mails a reset code. The response is identical whether or
// not the email exists, so accounts cannot be enumerated here.
// POST /auth/forgot-password
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req dto.ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": err.Error()})
		return
	}

	if err := h.authService.ForgotPassword(req.Email); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to process request", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "If the email exists, a reset code has been sent."})
}

// ResetPassword performs the OTP-gated password change and revokes the
// active session token.
// POST /auth/reset-password
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req dto.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": err.Error()})
		return
	}

	if err := h.authService.ResetPassword(req.Email, req.Otp, req.Password); err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": "User not found."})
		case errors.Is(err, service.ErrInvalidOtp):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "Invalid OTP."})
		case errors.Is(err, service.ErrOtpExpired):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "OTP expired."})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to reset password", "error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password reset successfully. Please log in with your new password."})
}

// Logout revokes the caller's session token.
// POST /logout
func (h *AuthHandler) Logout(c *gin.Context) {
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

// Me returns the authenticated identity.
// GET /me
func (h *AuthHandler) Me(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthenticated"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

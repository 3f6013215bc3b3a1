package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"innervoice/internal/http-api/dto"
	"innervoice/internal/http-api/models"
	"innervoice/internal/http-api/service"
)

// MockAuthService mocks the AuthService interface
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(name, email, password string) (*models.User, error) {
	args := m.Called(name, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockAuthService) VerifyOtp(email, otp string) (string, *models.User, error) {
	args := m.Called(email, otp)
	if args.Get(1) == nil {
		return args.String(0), nil, args.Error(2)
	}
	return args.String(0), args.Get(1).(*models.User), args.Error(2)
}

func (m *MockAuthService) ResendOtp(email string) error {
	args := m.Called(email)
	return args.Error(0)
}

func (m *MockAuthService) Login(email, password string) (string, *models.User, error) {
	args := m.Called(email, password)
	if args.Get(1) == nil {
		return args.String(0), nil, args.Error(2)
	}
	return args.String(0), args.Get(1).(*models.User), args.Error(2)
}

func (m *MockAuthService) AdminLogin(email, password string) (string, *models.User, error) {
	args := m.Called(email, password)
	if args.Get(1) == nil {
		return args.String(0), nil, args.Error(2)
	}
	return args.String(0), args.Get(1).(*models.User), args.Error(2)
}

func (m *MockAuthService) ForgotPassword(email string) error {
	args := m.Called(email)
	return args.Error(0)
}

func (m *MockAuthService) ResetPassword(email, otp, password string) error {
	args := m.Called(email, otp, password)
	return args.Error(0)
}

func (m *MockAuthService) Logout(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockAuthService) Authenticate(token string) (*models.User, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func postJSON(router *gin.Engine, path string, payload any) *httptest.ResponseRecorder {
	body, _ := json.Marshal(payload)
	req, _ := http.NewRequest("POST", path, bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRegisterHandler_Success(t *testing.T) {
	mockAuthService := new(MockAuthService)
	handler := NewAuthHandler(mockAuthService)
	router := setupRouter()
	router.POST("/register", handler.Register)

	user := &models.User{ID: "user-123", Email: "test@example.com"}
	mockAuthService.On("Register", "Test User", "test@example.com", "password123").Return(user, nil)

	w := postJSON(router, "/register", dto.RegisterRequest{
		Name:     "Test User",
		Email:    "test@example.com",
		Password: "password123",
	})

	assert.Equal(t, http.StatusCreated, w.Code)

	var response map[string]string
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "Registered successfully. Please verify the OTP sent to your email.", response["message"])

	mockAuthService.AssertExpectations(t)
}

func TestRegisterHandler_EmailTaken(t *testing.T) {
	mockAuthService := new(MockAuthService)
	handler := NewAuthHandler(mockAuthService)
	router := setupRouter()
	router.POST("/register", handler.Register)

	mockAuthService.On("Register", "Test User", "test@example.com", "password123").
		Return(nil, service.ErrEmailInUse)

	w := postJSON(router, "/register", dto.RegisterRequest{
		Name:     "Test User",
		Email:    "test@example.com",
		Password: "password123",
	})

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var response map[string]string
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "The email has already been taken.", response["message"])

	mockAuthService.AssertExpectations(t)
}

func TestRegisterHandler_ShortPassword(t *testing.T) {
	mockAuthService := new(MockAuthService)
	handler := NewAuthHandler(mockAuthService)
	router := setupRouter()
	router.POST("/register", handler.Register)

	w := postJSON(router, "/register", dto.RegisterRequest{
		Name:     "Test User",
		Email:    "test@example.com",
		Password: "short",
	})

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	mockAuthService.AssertNotCalled(t, "Register", mock.Anything, mock.Anything, mock.Anything)
}

func TestVerifyOtpHandler_Success(t *testing.T) {
	mockAuthService := new(MockAuthService)
	handler := NewAuthHandler(mockAuthService)
	router := setupRouter()
	router.POST("/verify", handler.VerifyOtp)

	user := &models.User{ID: "user-123", Email: "test@example.com", IsVerified: true}
	mockAuthService.On("VerifyOtp", "test@example.com", "123456").Return("plaintext-token", user, nil)

	w := postJSON(router, "/verify", dto.VerifyOtpRequest{
		Email: "test@example.com",
		Otp:   "123456",
	})

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]any
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "Verified", response["message"])
	assert.Equal(t, "plaintext-token", response["token"])

	mockAuthService.AssertExpectations(t)
}

func TestVerifyOtpHandler_AlreadyVerified(t *testing.T) {
	mockAuthService := new(MockAuthService)
	handler := NewAuthHandler(mockAuthService)
	router := setupRouter()
	router.POST("/verify", handler.VerifyOtp)

	user := &models.User{Email: "test@example.com", IsVerified: true}
	mockAuthService.On("VerifyOtp", "test@example.com", "123456").
		Return("", user, service.ErrAlreadyVerified)

	w := postJSON(router, "/verify", dto.VerifyOtpRequest{
		Email: "test@example.com",
		Otp:   "123456",
	})

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]string
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "User already verified.", response["message"])

	mockAuthService.AssertExpectations(t)
}

func TestVerifyOtpHandler_Expired(t *testing.T) {
	mockAuthService := new(MockAuthService)
	handler := NewAuthHandler(mockAuthService)
	router := setupRouter()
	router.POST("/verify", handler.VerifyOtp)

	mockAuthService.On("VerifyOtp", "test@example.com", "123456").
		Return("", nil, service.ErrOtpExpired)

	w := postJSON(router, "/verify", dto.VerifyOtpRequest{
		Email: "test@example.com",
		Otp:   "123456",
	})

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var response map[string]string
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "OTP expired.", response["message"])

	mockAuthService.AssertExpectations(t)
}

func TestLoginHandler_Success(t *testing.T) {
	mockAuthService := new(MockAuthService)
	handler := NewAuthHandler(mockAuthService)
	router := setupRouter()
	router.POST("/login", handler.Login)

	user := &models.User{ID: "user-123", Email: "test@example.com", IsVerified: true}
	mockAuthService.On("Login", "test@example.com", "password123").Return("plaintext-token", user, nil)

	w := postJSON(router, "/login", dto.LoginRequest{
		Email:    "test@example.com",
		Password: "password123",
	})

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]any
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "plaintext-token", response["token"])

	mockAuthService.AssertExpectations(t)
}

func TestLoginHandler_NotVerified(t *testing.T) {
	mockAuthService := new(MockAuthService)
	handler := NewAuthHandler(mockAuthService)
	router := setupRouter()
	router.POST("/login", handler.Login)

	mockAuthService.On("Login", "test@example.com", "password123").
		Return("", nil, service.ErrNotVerified)

	w := postJSON(router, "/login", dto.LoginRequest{
		Email:    "test@example.com",
		Password: "password123",
	})

	assert.Equal(t, http.StatusForbidden, w.Code)

	var response map[string]string
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "Please verify your account via OTP before logging in.", response["message"])

	mockAuthService.AssertExpectations(t)
}

func TestForgotPasswordHandler_AlwaysGeneric(t *testing.T) {
	mockAuthService := new(MockAuthService)
	handler := NewAuthHandler(mockAuthService)
	router := setupRouter()
	router.POST("/forgot-password", handler.ForgotPassword)

	mockAuthService.On("ForgotPassword", "nobody@example.com").Return(nil)

	w := postJSON(router, "/forgot-password", dto.ForgotPasswordRequest{
		Email: "nobody@example.com",
	})

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]string
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "If the email exists, a reset code has been sent.", response["message"])

	mockAuthService.AssertExpectations(t)
}

func TestResetPasswordHandler_MismatchedConfirmation(t *testing.T) {
	mockAuthService := new(MockAuthService)
	handler := NewAuthHandler(mockAuthService)
	router := setupRouter()
	router.POST("/reset-password", handler.ResetPassword)

	w := postJSON(router, "/reset-password", dto.ResetPasswordRequest{
		Email:                "test@example.com",
		Otp:                  "123456",
		Password:             "newpassword123",
		PasswordConfirmation: "different",
	})

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	mockAuthService.AssertNotCalled(t, "ResetPassword", mock.Anything, mock.Anything, mock.Anything)
}

func TestAdminLoginHandler_NotAdmin(t *testing.T) {
	mockAuthService := new(MockAuthService)
	handler := NewAdminAuthHandler(mockAuthService)
	router := setupRouter()
	router.POST("/admin/login", handler.Login)

	mockAuthService.On("AdminLogin", "test@example.com", "password123").
		Return("", nil, service.ErrNotAdmin)

	w := postJSON(router, "/admin/login", dto.LoginRequest{
		Email:    "test@example.com",
		Password: "password123",
	})

	assert.Equal(t, http.StatusForbidden, w.Code)

	var response map[string]string
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "Unauthorized. Admin access required.", response["message"])

	mockAuthService.AssertExpectations(t)
}

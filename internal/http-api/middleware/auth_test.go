package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

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

func setupProtectedRouter(authService service.AuthService, adminOnly bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	handlers := []gin.HandlerFunc{AuthMiddleware(authService)}
	if adminOnly {
		handlers = append(handlers, RequireAdmin())
	}
	handlers = append(handlers, func(c *gin.Context) {
		user := CurrentUser(c)
		c.JSON(http.StatusOK, gin.H{"id": user.ID})
	})
	router.GET("/protected", handlers...)
	return router
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	mockAuthService := new(MockAuthService)
	user := &models.User{ID: "user-123"}
	mockAuthService.On("Authenticate", "raw-token").Return(user, nil)

	router := setupProtectedRouter(mockAuthService, false)

	req, _ := http.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer raw-token")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "user-123")
	mockAuthService.AssertExpectations(t)
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	mockAuthService := new(MockAuthService)
	router := setupProtectedRouter(mockAuthService, false)

	req, _ := http.NewRequest("GET", "/protected", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Unauthenticated")
	mockAuthService.AssertNotCalled(t, "Authenticate", mock.Anything)
}

func TestAuthMiddleware_MalformedHeader(t *testing.T) {
	mockAuthService := new(MockAuthService)
	router := setupProtectedRouter(mockAuthService, false)

	req, _ := http.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Token raw-token")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	mockAuthService.AssertNotCalled(t, "Authenticate", mock.Anything)
}

func TestAuthMiddleware_UnknownToken(t *testing.T) {
	mockAuthService := new(MockAuthService)
	mockAuthService.On("Authenticate", "stale-token").Return(nil, service.ErrInvalidToken)

	router := setupProtectedRouter(mockAuthService, false)

	req, _ := http.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer stale-token")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	mockAuthService.AssertExpectations(t)
}

func TestRequireAdmin_NonAdmin(t *testing.T) {
	mockAuthService := new(MockAuthService)
	user := &models.User{ID: "user-123", IsAdmin: false}
	mockAuthService.On("Authenticate", "raw-token").Return(user, nil)

	router := setupProtectedRouter(mockAuthService, true)

	req, _ := http.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer raw-token")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "Admin access required")
	mockAuthService.AssertExpectations(t)
}

func TestRequireAdmin_Admin(t *testing.T) {
	mockAuthService := new(MockAuthService)
	user := &models.User{ID: "admin-123", IsAdmin: true}
	mockAuthService.On("Authenticate", "raw-token").Return(user, nil)

	router := setupProtectedRouter(mockAuthService, true)

	req, _ := http.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer raw-token")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockAuthService.AssertExpectations(t)
}

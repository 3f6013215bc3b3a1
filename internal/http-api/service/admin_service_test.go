package service

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"innervoice/internal/http-api/dto"
	"innervoice/internal/http-api/models"
)

func newAdminServiceForTest(
	userRepo *MockUserRepository,
	confessionRepo *MockConfessionRepository,
	categoryRepo *MockCategoryRepository,
) AdminService {
	return NewAdminService(userRepo, confessionRepo, categoryRepo, nil, time.Minute, zerolog.Nop())
}

func TestAdminListUsers(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	mockConfessionRepo := new(MockConfessionRepository)
	mockCategoryRepo := new(MockCategoryRepository)
	adminService := newAdminServiceForTest(mockUserRepo, mockConfessionRepo, mockCategoryRepo)

	verified := true
	users := []models.User{{ID: "a"}, {ID: "b"}}
	mockUserRepo.On("List", "alice", &verified, 1, 15).Return(users, int64(2), nil)

	returned, total, err := adminService.ListUsers("alice", &verified, 1, 15)

	assert.NoError(t, err)
	assert.Len(t, returned, 2)
	assert.Equal(t, int64(2), total)
	mockUserRepo.AssertExpectations(t)
}

func TestAdminGetUser_NotFound(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	mockConfessionRepo := new(MockConfessionRepository)
	mockCategoryRepo := new(MockCategoryRepository)
	adminService := newAdminServiceForTest(mockUserRepo, mockConfessionRepo, mockCategoryRepo)

	mockUserRepo.On("FindByIDWithConfessions", "missing").Return(nil, gorm.ErrRecordNotFound)

	user, err := adminService.GetUser("missing")

	assert.Error(t, err)
	assert.Equal(t, ErrUserNotFound, err)
	assert.Nil(t, user)
	mockUserRepo.AssertExpectations(t)
}

func TestAdminUpdateUser_Flags(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	mockConfessionRepo := new(MockConfessionRepository)
	mockCategoryRepo := new(MockCategoryRepository)
	adminService := newAdminServiceForTest(mockUserRepo, mockConfessionRepo, mockCategoryRepo)

	user := &models.User{ID: "user-id", Name: "Old Name", IsVerified: false, IsAdmin: false}
	mockUserRepo.On("FindByID", "user-id").Return(user, nil)
	mockUserRepo.On("Save", mock.AnythingOfType("*models.User")).Return(nil)

	isVerified := true
	isAdmin := true
	updated, err := adminService.UpdateUser("user-id", dto.UpdateUserRequest{
		IsVerified: &isVerified,
		IsAdmin:    &isAdmin,
	})

	assert.NoError(t, err)
	assert.Equal(t, "Old Name", updated.Name)
	assert.True(t, updated.IsVerified)
	assert.True(t, updated.IsAdmin)
	mockUserRepo.AssertExpectations(t)
}

func TestAdminDeleteUser_Self(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	mockConfessionRepo := new(MockConfessionRepository)
	mockCategoryRepo := new(MockCategoryRepository)
	adminService := newAdminServiceForTest(mockUserRepo, mockConfessionRepo, mockCategoryRepo)

	admin := &models.User{ID: "admin-id", IsAdmin: true}
	mockUserRepo.On("FindByID", "admin-id").Return(admin, nil)

	err := adminService.DeleteUser("admin-id", "admin-id")

	assert.Error(t, err)
	assert.Equal(t, ErrCannotDeleteSelf, err)
	mockUserRepo.AssertNotCalled(t, "Delete", mock.Anything)
}

func TestAdminDeleteUser_Success(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	mockConfessionRepo := new(MockConfessionRepository)
	mockCategoryRepo := new(MockCategoryRepository)
	adminService := newAdminServiceForTest(mockUserRepo, mockConfessionRepo, mockCategoryRepo)

	user := &models.User{ID: "user-id"}
	mockUserRepo.On("FindByID", "user-id").Return(user, nil)
	mockUserRepo.On("Delete", "user-id").Return(nil)

	err := adminService.DeleteUser("user-id", "admin-id")

	assert.NoError(t, err)
	mockUserRepo.AssertExpectations(t)
}

func TestAdminStats_WithoutCache(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	mockConfessionRepo := new(MockConfessionRepository)
	mockCategoryRepo := new(MockCategoryRepository)
	adminService := newAdminServiceForTest(mockUserRepo, mockConfessionRepo, mockCategoryRepo)

	mockUserRepo.On("Count").Return(int64(10), nil)
	mockUserRepo.On("CountVerified").Return(int64(8), nil)
	mockUserRepo.On("CountAdmins").Return(int64(1), nil)
	mockConfessionRepo.On("Count").Return(int64(25), nil)
	mockCategoryRepo.On("Count").Return(int64(8), nil)

	stats, err := adminService.Stats(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, int64(10), stats.TotalUsers)
	assert.Equal(t, int64(8), stats.VerifiedUsers)
	assert.Equal(t, int64(1), stats.AdminUsers)
	assert.Equal(t, int64(25), stats.TotalConfessions)
	assert.Equal(t, int64(8), stats.TotalCategories)
	mockUserRepo.AssertExpectations(t)
	mockConfessionRepo.AssertExpectations(t)
	mockCategoryRepo.AssertExpectations(t)
}

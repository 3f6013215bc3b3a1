package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"innervoice/internal/http-api/dto"
	"innervoice/internal/http-api/models"
	"innervoice/internal/http-api/repository"
)

var ErrCannotDeleteSelf = errors.New("cannot delete own account")

const statsCacheKey = "innervoice:admin:stats"

type AdminService interface {
	ListUsers(search string, verified *bool, page, perPage int) ([]models.User, int64, error)
	GetUser(userID string) (*models.User, error)
	UpdateUser(userID string, req dto.UpdateUserRequest) (*models.User, error)
	DeleteUser(userID, callerID string) error
	Stats(ctx context.Context) (*dto.StatsResponse, error)
}

type adminService struct {
	userRepo       repository.UserRepository
	confessionRepo repository.ConfessionRepository
	categoryRepo   repository.CategoryRepository
	cache          *redis.Client // nil when redis is not configured
	cacheTTL       time.Duration
	logger         zerolog.Logger
}

func NewAdminService(
	userRepo repository.UserRepository,
	confessionRepo repository.ConfessionRepository,
	categoryRepo repository.CategoryRepository,
	cache *redis.Client,
	cacheTTL time.Duration,
	logger zerolog.Logger,
) AdminService {
	return &adminService{
		userRepo:       userRepo,
		confessionRepo: confessionRepo,
		categoryRepo:   categoryRepo,
		cache:          cache,
		cacheTTL:       cacheTTL,
		logger:         logger,
	}
}

func (s *adminService) ListUsers(search string, verified *bool, page, perPage int) ([]models.User, int64, error) {
	return s.userRepo.List(search, verified, page, perPage)
}

func (s *adminService) GetUser(userID string) (*models.User, error) {
	user, err := s.userRepo.FindByIDWithConfessions(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *adminService) UpdateUser(userID string, req dto.UpdateUserRequest) (*models.User, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.IsVerified != nil {
		user.IsVerified = *req.IsVerified
	}
	if req.IsAdmin != nil {
		user.IsAdmin = *req.IsAdmin
	}

	if err := s.userRepo.Save(user); err != nil {
		return nil, err
	}
	return user, nil
}

// DeleteUser removes a user and, via FK cascade, their content. Admins
// cannot delete their own account.
func (s *adminService) DeleteUser(userID, callerID string) error {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	if user.ID == callerID {
		return ErrCannotDeleteSelf
	}

	return s.userRepo.Delete(userID)
}

// Stats serves the dashboard aggregate from redis when a fresh copy exists,
// recomputing from SQL counts on a miss or when redis is not configured.
// Cache failures degrade to the SQL path rather than failing the request.
func (s *adminService) Stats(ctx context.Context) (*dto.StatsResponse, error) {
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, statsCacheKey).Result(); err == nil {
			var stats dto.StatsResponse
			if err := json.Unmarshal([]byte(cached), &stats); err == nil {
				return &stats, nil
			}
		}
	}

	stats, err := s.computeStats()
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if payload, err := json.Marshal(stats); err == nil {
			if err := s.cache.Set(ctx, statsCacheKey, payload, s.cacheTTL).Err(); err != nil {
				s.logger.Warn().Err(err).Msg("failed to cache admin stats")
			}
		}
	}

	return stats, nil
}

func (s *adminService) computeStats() (*dto.StatsResponse, error) {
	totalUsers, err := s.userRepo.Count()
	if err != nil {
		return nil, err
	}
	verifiedUsers, err := s.userRepo.CountVerified()
	if err != nil {
		return nil, err
	}
	adminUsers, err := s.userRepo.CountAdmins()
	if err != nil {
		return nil, err
	}
	totalConfessions, err := s.confessionRepo.Count()
	if err != nil {
		return nil, err
	}
	totalCategories, err := s.categoryRepo.Count()
	if err != nil {
		return nil, err
	}

	return &dto.StatsResponse{
		TotalUsers:       totalUsers,
		VerifiedUsers:    verifiedUsers,
		AdminUsers:       adminUsers,
		TotalConfessions: totalConfessions,
		TotalCategories:  totalCategories,
	}, nil
}

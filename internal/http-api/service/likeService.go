package service

import (
	"errors"

	"gorm.io/gorm"

	"innervoice/internal/http-api/models"
	"innervoice/internal/http-api/repository"
)

var ErrLikeNotFound = errors.New("like not found")

type LikeService interface {
	Like(userID string, confessionID int64) (alreadyLiked bool, likesCount int64, err error)
	Unlike(userID string, confessionID int64) (likesCount int64, err error)
	Check(userID string, confessionID int64) (bool, error)
}

type likeService struct {
	likeRepo       repository.LikeRepository
	confessionRepo repository.ConfessionRepository
}

func NewLikeService(likeRepo repository.LikeRepository, confessionRepo repository.ConfessionRepository) LikeService {
	return &likeService{
		likeRepo:       likeRepo,
		confessionRepo: confessionRepo,
	}
}

// Like records a (user, confession) like. Idempotent: a second call reports
// alreadyLiked and leaves likes_count untouched.
func (s *likeService) Like(userID string, confessionID int64) (bool, int64, error) {
	confession, err := s.confessionRepo.GetByID(confessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, 0, ErrConfessionNotFound
		}
		return false, 0, err
	}

	exists, err := s.likeRepo.Exists(userID, confessionID)
	if err != nil {
		return false, 0, err
	}
	if exists {
		return true, confession.LikesCount, nil
	}

	like := &models.Like{
		UserID:       userID,
		ConfessionID: confessionID,
	}
	if err := s.likeRepo.Create(like); err != nil {
		return false, 0, err
	}

	if err := s.confessionRepo.IncrementLikes(confessionID, 1); err != nil {
		return false, 0, err
	}

	confession, err = s.confessionRepo.GetByID(confessionID)
	if err != nil {
		return false, 0, err
	}
	return false, confession.LikesCount, nil
}

// Unlike removes an existing like and decrements the counter; missing likes
// are reported, not absorbed.
func (s *likeService) Unlike(userID string, confessionID int64) (int64, error) {
	if _, err := s.confessionRepo.GetByID(confessionID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrConfessionNotFound
		}
		return 0, err
	}

	if err := s.likeRepo.Delete(userID, confessionID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrLikeNotFound
		}
		return 0, err
	}

	if err := s.confessionRepo.IncrementLikes(confessionID, -1); err != nil {
		return 0, err
	}

	confession, err := s.confessionRepo.GetByID(confessionID)
	if err != nil {
		return 0, err
	}
	return confession.LikesCount, nil
}

// Check is a pure existence query with no side effect.
func (s *likeService) Check(userID string, confessionID int64) (bool, error) {
	return s.likeRepo.Exists(userID, confessionID)
}

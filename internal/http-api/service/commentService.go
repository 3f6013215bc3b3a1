package service

import (
	"errors"

	"gorm.io/gorm"

	"innervoice/internal/http-api/dto"
	"innervoice/internal/http-api/models"
	"innervoice/internal/http-api/repository"
)

var (
	ErrCommentNotFound = errors.New("comment not found")
	ErrInvalidParent   = errors.New("invalid parent comment")
)

type CommentService interface {
	ListForConfession(confessionID int64) ([]dto.CommentResponse, error)
	Create(userID string, confessionID int64, text string, parentCommentID *int64) (*dto.CommentResponse, error)
	Update(commentID int64, userID string, text string) (*dto.CommentResponse, error)
	Delete(commentID int64, userID string) error
	GetReplies(commentID int64) ([]dto.CommentResponse, error)
	AddReply(commentID int64, userID string, text string) (*dto.CommentResponse, error)
}

type commentService struct {
	commentRepo    repository.CommentRepository
	confessionRepo repository.ConfessionRepository
}

func NewCommentService(commentRepo repository.CommentRepository, confessionRepo repository.ConfessionRepository) CommentService {
	return &commentService{
		commentRepo:    commentRepo,
		confessionRepo: confessionRepo,
	}
}

// ListForConfession returns the thread view: root comments newest-first,
// replies grouped under their parent. Two queries total (roots, then every
// reply for the confession) so loading never recurses into the store.
func (s *commentService) ListForConfession(confessionID int64) ([]dto.CommentResponse, error) {
	if _, err := s.confessionRepo.GetByID(confessionID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrConfessionNotFound
		}
		return nil, err
	}

	roots, err := s.commentRepo.GetRootsByConfession(confessionID)
	if err != nil {
		return nil, err
	}

	replies, err := s.commentRepo.GetRepliesByConfession(confessionID)
	if err != nil {
		return nil, err
	}

	byParent := make(map[int64][]models.Comment)
	for _, reply := range replies {
		parentID := *reply.ParentCommentID
		byParent[parentID] = append(byParent[parentID], reply)
	}

	responses := make([]dto.CommentResponse, 0, len(roots))
	for i := range roots {
		responses = append(responses, buildThread(&roots[i], byParent))
	}
	return responses, nil
}

// buildThread attaches each comment's replies from the in-memory grouping.
// Replies of replies nest the same way; the product only surfaces one level,
// but the shape stays correct if deeper rows exist.
func buildThread(comment *models.Comment, byParent map[int64][]models.Comment) dto.CommentResponse {
	response := dto.FromModelToCommentResponse(comment)
	children := byParent[comment.ID]
	for i := range children {
		response.Replies = append(response.Replies, buildThread(&children[i], byParent))
	}
	return response
}

// Create adds a comment, validating that a supplied parent belongs to the
// same confession. comments_count is incremented for every created comment,
// replies included; see Delete for the matching (asymmetric) decrement rule.
func (s *commentService) Create(userID string, confessionID int64, text string, parentCommentID *int64) (*dto.CommentResponse, error) {
	if _, err := s.confessionRepo.GetByID(confessionID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrConfessionNotFound
		}
		return nil, err
	}

	if parentCommentID != nil {
		parent, err := s.commentRepo.GetByID(*parentCommentID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrInvalidParent
			}
			return nil, err
		}
		if parent.ConfessionID != confessionID {
			return nil, ErrInvalidParent
		}
	}

	comment := &models.Comment{
		UserID:          userID,
		ConfessionID:    confessionID,
		Text:            text,
		ParentCommentID: parentCommentID,
	}

	if err := s.commentRepo.Create(comment); err != nil {
		return nil, err
	}

	if err := s.confessionRepo.IncrementComments(confessionID, 1); err != nil {
		return nil, err
	}

	// Reload with the author attached
	comment, err := s.commentRepo.GetByID(comment.ID)
	if err != nil {
		return nil, err
	}

	response := dto.FromModelToCommentResponse(comment)
	return &response, nil
}

// Update edits a comment's text. Only the author may edit.
func (s *commentService) Update(commentID int64, userID string, text string) (*dto.CommentResponse, error) {
	comment, err := s.commentRepo.GetByID(commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}

	if comment.UserID != userID {
		return nil, ErrNotOwner
	}

	comment.Text = text
	if err := s.commentRepo.Save(comment); err != nil {
		return nil, err
	}

	comment, err = s.commentRepo.GetByID(commentID)
	if err != nil {
		return nil, err
	}

	response := dto.FromModelToCommentResponse(comment)
	return &response, nil
}

// Delete removes a comment; descendant replies cascade at the storage layer.
// comments_count decrements only when the deleted comment is a root. Replies
// incremented the counter on create but do not decrement here; that is the
// platform's counting rule, kept as-is.
func (s *commentService) Delete(commentID int64, userID string) error {
	comment, err := s.commentRepo.GetByID(commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCommentNotFound
		}
		return err
	}

	if comment.UserID != userID {
		return ErrNotOwner
	}

	if err := s.commentRepo.Delete(commentID); err != nil {
		return err
	}

	if comment.IsRoot() {
		return s.confessionRepo.IncrementComments(comment.ConfessionID, -1)
	}
	return nil
}

// GetReplies returns the direct replies of a comment, newest-first.
func (s *commentService) GetReplies(commentID int64) ([]dto.CommentResponse, error) {
	if _, err := s.commentRepo.GetByID(commentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}

	replies, err := s.commentRepo.GetRepliesByParent(commentID)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.CommentResponse, 0, len(replies))
	for i := range replies {
		responses = append(responses, dto.FromModelToCommentResponse(&replies[i]))
	}
	return responses, nil
}

// AddReply creates a reply directly under a parent comment, inheriting the
// parent's confession.
func (s *commentService) AddReply(commentID int64, userID string, text string) (*dto.CommentResponse, error) {
	parent, err := s.commentRepo.GetByID(commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}

	reply := &models.Comment{
		UserID:          userID,
		ConfessionID:    parent.ConfessionID,
		Text:            text,
		ParentCommentID: &parent.ID,
	}

	if err := s.commentRepo.Create(reply); err != nil {
		return nil, err
	}

	if err := s.confessionRepo.IncrementComments(parent.ConfessionID, 1); err != nil {
		return nil, err
	}

	reply, err = s.commentRepo.GetByID(reply.ID)
	if err != nil {
		return nil, err
	}

	response := dto.FromModelToCommentResponse(reply)
	return &response, nil
}

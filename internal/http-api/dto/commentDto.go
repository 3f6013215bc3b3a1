package dto

import (
	"time"

	"innervoice/internal/http-api/models"
)

// CreateCommentRequest for commenting on a confession
type CreateCommentRequest struct {
	Text            string `json:"text" binding:"required,min=1,max=1000"`
	ParentCommentID *int64 `json:"parent_comment_id"`
}

// UpdateCommentRequest for editing a comment
type UpdateCommentRequest struct {
	Text string `json:"text" binding:"required,min=1,max=1000"`
}

// CreateReplyRequest for replying directly under a parent comment
type CreateReplyRequest struct {
	Text string `json:"text" binding:"required,min=1,max=1000"`
}

// CommentAuthor is the author identity attached to every comment in a thread.
type CommentAuthor struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	IsAnonymous bool   `json:"is_anonymous"`
}

// CommentResponse is the thread view of a comment: author attached and
// replies nested one level below their parent.
type CommentResponse struct {
	ID              int64             `json:"id"`
	User            CommentAuthor     `json:"user"`
	Text            string            `json:"text"`
	LikesCount      int64             `json:"likes_count"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
	ParentCommentID *int64            `json:"parent_comment_id"`
	Replies         []CommentResponse `json:"replies"`
}

// FromModelToCommentResponse converts a Comment model to CommentResponse DTO.
// The replies slice is always non-nil so leaf comments serialize as [].
func FromModelToCommentResponse(comment *models.Comment) CommentResponse {
	return CommentResponse{
		ID: comment.ID,
		User: CommentAuthor{
			ID:          comment.User.ID,
			Name:        comment.User.Name,
			IsAnonymous: false,
		},
		Text:            comment.Text,
		LikesCount:      comment.LikesCount,
		CreatedAt:       comment.CreatedAt,
		UpdatedAt:       comment.UpdatedAt,
		ParentCommentID: comment.ParentCommentID,
		Replies:         []CommentResponse{},
	}
}

// CommentListResponse wraps a comment collection with its size.
type CommentListResponse struct {
	Data  []CommentResponse `json:"data"`
	Count int               `json:"count"`
}

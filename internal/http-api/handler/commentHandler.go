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

type CommentHandler struct {
	commentService service.CommentService
}

func NewCommentHandler(commentService service.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

// Index retrieves all comments for a confession with nested replies
// GET /confessions/:id/comments
func (h *CommentHandler) Index(c *gin.Context) {
	confessionID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid confession ID"})
		return
	}

	comments, err := h.commentService.ListForConfession(confessionID)
	if err != nil {
		if errors.Is(err, service.ErrConfessionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Confession not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to load comments", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, dto.CommentListResponse{Data: comments, Count: len(comments)})
}

// Store creates a comment, optionally as a reply to a parent on the same confession
// POST /confessions/:id/comments
func (h *CommentHandler) Store(c *gin.Context) {
	confessionID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid confession ID"})
		return
	}

	user := middleware.CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthenticated"})
		return
	}

	var req dto.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": err.Error()})
		return
	}

	comment, err := h.commentService.Create(user.ID, confessionID, req.Text, req.ParentCommentID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrConfessionNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": "Confession not found"})
		case errors.Is(err, service.ErrInvalidParent):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "Invalid parent comment"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create comment", "error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": comment, "message": "Comment created successfully"})
}

// Update edits a comment's text (author only)
// PUT /comments/:id
func (h *CommentHandler) Update(c *gin.Context) {
	commentID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid comment ID"})
		return
	}

	user := middleware.CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthenticated"})
		return
	}

	var req dto.UpdateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": err.Error()})
		return
	}

	comment, err := h.commentService.Update(commentID, user.ID, req.Text)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCommentNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": "Comment not found"})
		case errors.Is(err, service.ErrNotOwner):
			c.JSON(http.StatusForbidden, gin.H{"message": "Unauthorized"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update comment", "error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": comment, "message": "Comment updated successfully"})
}

// Destroy deletes a comment and its replies (author only)
// DELETE /comments/:id
func (h *CommentHandler) Destroy(c *gin.Context) {
	commentID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid comment ID"})
		return
	}

	user := middleware.CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthenticated"})
		return
	}

	if err := h.commentService.Delete(commentID, user.ID); err != nil {
		switch {
		case errors.Is(err, service.ErrCommentNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": "Comment not found"})
		case errors.Is(err, service.ErrNotOwner):
			c.JSON(http.StatusForbidden, gin.H{"message": "Unauthorized"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to delete comment", "error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Comment deleted successfully"})
}

// GetReplies retrieves the direct replies of a comment
// GET /comments/:id/replies
func (h *CommentHandler) GetReplies(c *gin.Context) {
	commentID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid comment ID"})
		return
	}

	replies, err := h.commentService.GetReplies(commentID)
	if err != nil {
		if errors.Is(err, service.ErrCommentNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Comment not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to load replies", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, dto.CommentListResponse{Data: replies, Count: len(replies)})
}

// AddReply creates a reply directly under a parent comment
// POST /comments/:id/replies
func (h *CommentHandler) AddReply(c *gin.Context) {
	commentID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid comment ID"})
		return
	}

	user := middleware.CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthenticated"})
		return
	}

	var req dto.CreateReplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": err.Error()})
		return
	}

	reply, err := h.commentService.AddReply(commentID, user.ID, req.Text)
	if err != nil {
		if errors.Is(err, service.ErrCommentNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Comment not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to add reply", "error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": reply, "message": "Reply added successfully"})
}

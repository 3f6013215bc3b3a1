package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"innervoice/internal/http-api/middleware"
	"innervoice/internal/http-api/service"
)

type LikeHandler struct {
	likeService service.LikeService
}

func NewLikeHandler(likeService service.LikeService) *LikeHandler {
	return &LikeHandler{likeService: likeService}
}

// Like records the caller's like on a confession. Liking twice is a no-op.
// POST /confessions/:id/like
func (h *LikeHandler) Like(c *gin.Context) {
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

	alreadyLiked, likesCount, err := h.likeService.Like(user.ID, confessionID)
	if err != nil {
		if errors.Is(err, service.ErrConfessionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Confession not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to like confession", "error": err.Error()})
		return
	}

	if alreadyLiked {
		c.JSON(http.StatusOK, gin.H{"message": "Already liked", "already_liked": true, "likes_count": likesCount})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Confession liked successfully", "liked": true, "likes_count": likesCount})
}

// Unlike removes the caller's like from a confession.
// DELETE /confessions/:id/like
func (h *LikeHandler) Unlike(c *gin.Context) {
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

	likesCount, err := h.likeService.Unlike(user.ID, confessionID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrConfessionNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": "Confession not found"})
		case errors.Is(err, service.ErrLikeNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": "Like not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to unlike confession", "error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Confession unliked successfully", "liked": false, "likes_count": likesCount})
}

// Check reports whether the caller has liked a confession.
// GET /confessions/:id/like/check
func (h *LikeHandler) Check(c *gin.Context) {
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

	liked, err := h.likeService.Check(user.ID, confessionID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to check like", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"liked": liked})
}

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

type ConfessionHandler struct {
	confessionService service.ConfessionService
}

func NewConfessionHandler(confessionService service.ConfessionService) *ConfessionHandler {
	return &ConfessionHandler{confessionService: confessionService}
}

// List retrieves the public feed with pagination and optional category filter
// GET /confessions?page=1&per_page=15&category=Work
func (h *ConfessionHandler) List(c *gin.Context) {
	page, perPage := paginationParams(c)
	category := c.Query("category")

	confessions, total, err := h.confessionService.List(category, page, perPage)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to load confessions", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":       confessions,
		"pagination": dto.NewPagination(total, perPage, page, len(confessions)),
	})
}

// Get retrieves a single confession
// GET /confessions/:id
func (h *ConfessionHandler) Get(c *gin.Context) {
	confessionID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid confession ID"})
		return
	}

	confession, err := h.confessionService.Get(confessionID)
	if err != nil {
		if errors.Is(err, service.ErrConfessionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Confession not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to load confession", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"confession": confession})
}

// MyConfessions retrieves the caller's confessions with pagination
// GET /my-confessions
func (h *ConfessionHandler) MyConfessions(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthenticated"})
		return
	}

	page, perPage := paginationParams(c)

	confessions, total, err := h.confessionService.GetByUser(user.ID, page, perPage)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to load confessions", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":       confessions,
		"pagination": dto.NewPagination(total, perPage, page, len(confessions)),
	})
}

// Create stores a confession owned by the caller
// POST /confessions
func (h *ConfessionHandler) Create(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthenticated"})
		return
	}

	var req dto.CreateConfessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": err.Error()})
		return
	}

	confession, err := h.confessionService.Create(user.ID, req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create confession", "error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Confession created successfully", "confession": confession})
}

// Update applies a partial update to an owned confession
// PUT /confessions/:id
func (h *ConfessionHandler) Update(c *gin.Context) {
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

	var req dto.UpdateConfessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": err.Error()})
		return
	}

	confession, err := h.confessionService.Update(confessionID, user.ID, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrConfessionNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": "Confession not found"})
		case errors.Is(err, service.ErrNotOwner):
			c.JSON(http.StatusForbidden, gin.H{"message": "Unauthorized"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update confession", "error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Confession updated successfully", "confession": confession})
}

// Delete removes an owned confession along with its likes and comments
// DELETE /confessions/:id
func (h *ConfessionHandler) Delete(c *gin.Context) {
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

	if err := h.confessionService.Delete(confessionID, user.ID); err != nil {
		switch {
		case errors.Is(err, service.ErrConfessionNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": "Confession not found"})
		case errors.Is(err, service.ErrNotOwner):
			c.JSON(http.StatusForbidden, gin.H{"message": "Unauthorized"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to delete confession", "error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Confession deleted successfully"})
}

// paginationParams reads page/per_page with the feed defaults.
func paginationParams(c *gin.Context) (page, perPage int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ = strconv.Atoi(c.DefaultQuery("per_page", "15"))

	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 15
	}
	return page, perPage
}

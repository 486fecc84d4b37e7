package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"edu-guidance/internal/service"
)

// CollegeHandler exposes the college directory endpoints.
type CollegeHandler struct {
	logger   *zap.Logger
	colleges *service.CollegeService
}

func NewCollegeHandler(logger *zap.Logger, colleges *service.CollegeService) *CollegeHandler {
	return &CollegeHandler{logger: logger, colleges: colleges}
}

// Health handles GET /api/college/health.
func (h *CollegeHandler) Health(c *gin.Context) {
	colleges, err := h.colleges.List(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{
		"status":         "healthy",
		"service":        "College Finder API",
		"total_colleges": len(colleges),
		"data_available": err == nil,
	})
}

// List handles GET /api/college/colleges.
func (h *CollegeHandler) List(c *gin.Context) {
	colleges, err := h.colleges.List(c.Request.Context())
	if err != nil {
		h.logger.Error("list colleges failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No college data available"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"total": len(colleges), "colleges": colleges})
}

// Filter handles POST /api/college/colleges/filter.
func (h *CollegeHandler) Filter(c *gin.Context) {
	var filters map[string]string
	if err := c.ShouldBindJSON(&filters); err != nil {
		h.logger.Warn("invalid filter request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "No filter criteria provided"})
		return
	}

	colleges, err := h.colleges.Filter(c.Request.Context(), filters)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMissingParameter):
			c.JSON(http.StatusBadRequest, gin.H{"error": "No filter criteria provided"})
		default:
			h.logger.Error("filter colleges failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "No college data available"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"total":           len(colleges),
		"filters_applied": filters,
		"colleges":        colleges,
	})
}

// Search handles GET /api/college/colleges/search?q=<name>.
func (h *CollegeHandler) Search(c *gin.Context) {
	query := c.Query("q")

	colleges, err := h.colleges.Search(c.Request.Context(), query)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMissingParameter):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Search query parameter 'q' is required"})
		default:
			h.logger.Error("search colleges failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "No college data available"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"total":        len(colleges),
		"search_query": query,
		"colleges":     colleges,
	})
}

// Stats handles GET /api/college/colleges/stats.
func (h *CollegeHandler) Stats(c *gin.Context) {
	stats, err := h.colleges.Stats(c.Request.Context())
	if err != nil {
		if errors.Is(err, service.ErrDatasetUnavailable) {
			c.JSON(http.StatusNotFound, gin.H{"error": "No college data available"})
			return
		}
		h.logger.Error("college stats failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not compute stats"})
		return
	}
	c.JSON(http.StatusOK, stats)
}

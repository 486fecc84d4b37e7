package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"edu-guidance/internal/service"
)

// CourseHandler exposes the course recommendation endpoints.
type CourseHandler struct {
	logger  *zap.Logger
	courses *service.CourseService
}

func NewCourseHandler(logger *zap.Logger, courses *service.CourseService) *CourseHandler {
	return &CourseHandler{logger: logger, courses: courses}
}

// Health handles GET /api/course/health.
func (h *CourseHandler) Health(c *gin.Context) {
	info, err := h.courses.DatasetInfo(c.Request.Context())
	loaded := err == nil
	c.JSON(http.StatusOK, gin.H{
		"status":         "healthy",
		"service":        "Course Suggestion API",
		"dataset_loaded": loaded,
		"total_courses":  info.TotalCourses,
	})
}

// Recommend handles POST /api/course/recommend.
func (h *CourseHandler) Recommend(c *gin.Context) {
	var req struct {
		UserLatitude   *float64           `json:"user_latitude"`
		UserLongitude  *float64           `json:"user_longitude"`
		EducationLevel string             `json:"education_level"`
		RiasecProfile  map[string]float64 `json:"riasec_profile"`
		RadiusKm       *float64           `json:"radius_km"`
		MaxResults     int                `json:"max_results"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid recommend request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "No JSON data provided"})
		return
	}

	courseReq := service.CourseRequest{
		Latitude:       req.UserLatitude,
		Longitude:      req.UserLongitude,
		EducationLevel: req.EducationLevel,
		Profile:        req.RiasecProfile,
		MaxResults:     req.MaxResults,
	}
	if req.RadiusKm != nil {
		courseReq.SetRadius(*req.RadiusKm)
	}

	recommendations, err := h.courses.Recommend(c.Request.Context(), courseReq)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMissingParameter),
			errors.Is(err, service.ErrInvalidProfileValue):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrDatasetUnavailable):
			c.JSON(http.StatusNotFound, gin.H{"error": "Dataset not loaded"})
		default:
			h.logger.Error("recommend failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not compute recommendations"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"total_results":   len(recommendations.Results),
		"recommendations": recommendations.Results,
		"algorithm_info": gin.H{
			"approach":        "3-Layer Filtering (Knowledge-Based + Content-Based + Learning-to-Rank)",
			"layer1_filtered": recommendations.Layer1Matched,
			"weights": gin.H{
				"personality_match": 0.6,
				"course_rating":     0.25,
				"college_rating":    0.15,
			},
		},
	})
}

// DatasetInfo handles GET /api/course/dataset-info.
func (h *CourseHandler) DatasetInfo(c *gin.Context) {
	info, err := h.courses.DatasetInfo(c.Request.Context())
	if err != nil {
		if errors.Is(err, service.ErrDatasetUnavailable) {
			c.JSON(http.StatusNotFound, gin.H{"error": "No dataset loaded"})
			return
		}
		h.logger.Error("dataset info failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load dataset info"})
		return
	}
	c.JSON(http.StatusOK, info)
}

package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"edu-guidance/internal/domain"
	"edu-guidance/internal/service"
)

// ScholarshipHandler exposes the scholarship matching endpoints.
type ScholarshipHandler struct {
	logger       *zap.Logger
	scholarships *service.ScholarshipService
}

func NewScholarshipHandler(logger *zap.Logger, scholarships *service.ScholarshipService) *ScholarshipHandler {
	return &ScholarshipHandler{logger: logger, scholarships: scholarships}
}

// Health handles GET /api/scholarship/health.
func (h *ScholarshipHandler) Health(c *gin.Context) {
	records, err := h.scholarships.List(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{
		"status":             "healthy",
		"service":            "Scholarship API",
		"total_scholarships": len(records),
		"data_available":     err == nil,
	})
}

// Match handles POST /api/scholarship/match.
func (h *ScholarshipHandler) Match(c *gin.Context) {
	var req struct {
		Gender         string   `json:"gender" binding:"required"`
		Age            *int     `json:"age" binding:"required"`
		EducationLevel string   `json:"education_level" binding:"required"`
		Domicile       string   `json:"domicile" binding:"required"`
		AnnualIncome   *int     `json:"annual_income"`
		SocialCategory string   `json:"social_category"`
		CourseStream   string   `json:"course_stream"`
		Percentage     *float64 `json:"percentage"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid match request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Missing required fields: gender, age, education_level, domicile",
		})
		return
	}

	profile := domain.EligibilityProfile{
		Gender:         req.Gender,
		Age:            req.Age,
		EducationLevel: req.EducationLevel,
		Domicile:       req.Domicile,
		AnnualIncome:   req.AnnualIncome,
		SocialCategory: req.SocialCategory,
		CourseStream:   req.CourseStream,
		Percentage:     req.Percentage,
	}

	result, err := h.scholarships.Match(c.Request.Context(), profile)
	if err != nil {
		h.logger.Error("match scholarships failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "could not match scholarships"})
		return
	}

	var eligible, ineligible []domain.ScholarshipMatch
	byLevel := map[string][]domain.ScholarshipMatch{"High": {}, "Medium": {}, "Low": {}}
	for _, m := range result.Matches {
		if m.IsEligible {
			eligible = append(eligible, m)
			byLevel[m.RecommendationLevel] = append(byLevel[m.RecommendationLevel], m)
		} else {
			ineligible = append(ineligible, m)
		}
	}
	// Only a peek at the ineligible tail is useful to the caller.
	if len(ineligible) > 5 {
		ineligible = ineligible[:5]
	}

	c.JSON(http.StatusOK, gin.H{
		"success":                 true,
		"user_profile":            profile,
		"total_scholarships":      len(result.Matches),
		"eligible_count":          result.EligibleCount,
		"ineligible_count":        result.IneligibleCount,
		"eligible_scholarships":   eligible,
		"ineligible_scholarships": ineligible,
		"recommendations": gin.H{
			"high_match":   byLevel["High"],
			"medium_match": byLevel["Medium"],
			"low_match":    byLevel["Low"],
		},
	})
}

// Recommend handles POST /api/scholarship/recommend.
func (h *ScholarshipHandler) Recommend(c *gin.Context) {
	var req struct {
		RiasecTypes  string  `json:"riasec_types" binding:"required"`
		CGPA         float64 `json:"cgpa"`
		IncomeLevel  string  `json:"income_level"`
		Location     string  `json:"location"`
		FieldOfStudy string  `json:"field_of_study"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid recommend request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "RIASEC types are required"})
		return
	}

	recommendations, err := h.scholarships.Recommend(c.Request.Context(), service.RecommendRequest{
		Traits:       req.RiasecTypes,
		CGPA:         req.CGPA,
		IncomeLevel:  req.IncomeLevel,
		Location:     req.Location,
		FieldOfStudy: req.FieldOfStudy,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidTraitInput):
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error":   "Valid RIASEC types are required (R, I, A, S, E, C)",
			})
		default:
			h.logger.Error("recommend scholarships failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "could not recommend scholarships"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":         true,
		"riasec_types":    req.RiasecTypes,
		"count":           len(recommendations),
		"recommendations": recommendations,
	})
}

// List handles GET /api/scholarship/scholarships.
func (h *ScholarshipHandler) List(c *gin.Context) {
	records, err := h.scholarships.List(c.Request.Context())
	if err != nil {
		h.logger.Error("list scholarships failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "could not list scholarships"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":            true,
		"total_scholarships": len(records),
		"scholarships":       records,
	})
}

// GetByID handles GET /api/scholarship/scholarships/:scholarship_id.
func (h *ScholarshipHandler) GetByID(c *gin.Context) {
	record, err := h.scholarships.GetByID(c.Request.Context(), c.Param("scholarship_id"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrScholarshipNotFound):
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Scholarship not found"})
		default:
			h.logger.Error("get scholarship failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "could not get scholarship"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "scholarship": record})
}

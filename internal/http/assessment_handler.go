package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"edu-guidance/internal/service"
)

// AssessmentHandler exposes the career guidance questionnaire endpoints.
type AssessmentHandler struct {
	logger      *zap.Logger
	assessments *service.AssessmentService
}

func NewAssessmentHandler(logger *zap.Logger, assessments *service.AssessmentService) *AssessmentHandler {
	return &AssessmentHandler{logger: logger, assessments: assessments}
}

// Health handles GET /api/career/health.
func (h *AssessmentHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":          "healthy",
		"service":         "Career Guidance API",
		"active_sessions": h.assessments.ActiveSessions(c.Request.Context()),
		"timestamp":       time.Now().UTC().Format(time.RFC3339),
	})
}

// StartTest handles POST /api/career/start-test.
func (h *AssessmentHandler) StartTest(c *gin.Context) {
	var req struct {
		UserID string `json:"user_id"`
	}
	// Body is optional; an anonymous start is fine.
	_ = c.ShouldBindJSON(&req)

	session, err := h.assessments.StartTest(c.Request.Context(), req.UserID)
	if err != nil {
		h.logger.Error("start test failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not start test session"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":         true,
		"session_id":      session.ID,
		"total_questions": h.assessments.TotalQuestions(),
		"message":         "Test session started successfully",
	})
}

// GetQuestion handles GET /api/career/question/:session_id.
func (h *AssessmentHandler) GetQuestion(c *gin.Context) {
	sessionID := c.Param("session_id")

	next, err := h.assessments.GetQuestion(c.Request.Context(), sessionID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSessionNotFound):
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Session not found"})
		case errors.Is(err, service.ErrAssessmentComplete):
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "No more questions"})
		default:
			h.logger.Error("get question failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "could not get question"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":         true,
		"session_id":      next.SessionID,
		"question_number": next.QuestionNumber,
		"total_questions": next.TotalQuestions,
		"question":        next.Question.Text,
		"riasec_type":     next.Question.Trait,
		"progress":        next.Progress,
	})
}

// SubmitAnswer handles POST /api/career/answer.
func (h *AssessmentHandler) SubmitAnswer(c *gin.Context) {
	var req struct {
		SessionID string `json:"session_id" binding:"required"`
		Answer    *int   `json:"answer" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid answer request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Missing session_id or answer"})
		return
	}

	session, err := h.assessments.SubmitAnswer(c.Request.Context(), req.SessionID, *req.Answer)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSessionNotFound):
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Session not found"})
		case errors.Is(err, service.ErrInvalidAnswer):
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Answer must be between 1 and 5"})
		case errors.Is(err, service.ErrAssessmentComplete):
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Test already completed"})
		default:
			h.logger.Error("submit answer failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "could not submit answer"})
		}
		return
	}

	if session.Completed {
		c.JSON(http.StatusOK, gin.H{
			"success":    true,
			"session_id": session.ID,
			"completed":  true,
			"results":    session.Results,
			"message":    "Test completed successfully!",
		})
		return
	}

	total := h.assessments.TotalQuestions()
	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"session_id":    session.ID,
		"completed":     false,
		"next_question": session.CurrentQuestion + 1,
		"progress":      float64(session.CurrentQuestion) / float64(total) * 100,
		"message":       "Answer recorded successfully",
	})
}

// GetResults handles GET /api/career/results/:session_id.
func (h *AssessmentHandler) GetResults(c *gin.Context) {
	sessionID := c.Param("session_id")

	session, err := h.assessments.GetResults(c.Request.Context(), sessionID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSessionNotFound):
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Session not found"})
		case errors.Is(err, service.ErrAssessmentIncomplete):
			c.JSON(http.StatusBadRequest, gin.H{
				"success":            false,
				"error":              "Test not completed yet",
				"answered_questions": session.CurrentQuestion,
				"total_questions":    h.assessments.TotalQuestions(),
			})
		default:
			h.logger.Error("get results failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "could not get results"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"session_id": session.ID,
		"created_at": session.CreatedAt,
		"results":    session.Results,
		"answers":    session.Answers,
	})
}

package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"edu-guidance/internal/domain"
	"edu-guidance/internal/service"
)

// NewsHandler exposes the RIASEC news recommendation endpoints.
type NewsHandler struct {
	logger *zap.Logger
	news   *service.NewsService
}

func NewNewsHandler(logger *zap.Logger, news *service.NewsService) *NewsHandler {
	return &NewsHandler{logger: logger, news: news}
}

// Health handles GET /api/news/health.
func (h *NewsHandler) Health(c *gin.Context) {
	stats, err := h.news.Stats(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{
		"status":         "healthy",
		"service":        "News Recommender API",
		"total_articles": stats.TotalArticles,
		"data_available": err == nil,
	})
}

// Recommend handles POST /api/news/recommend.
func (h *NewsHandler) Recommend(c *gin.Context) {
	var req struct {
		RiasecTypes        string `json:"riasec_types" binding:"required"`
		NumRecommendations int    `json:"num_recommendations"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid news recommend request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required field: riasec_types"})
		return
	}
	if req.NumRecommendations < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "num_recommendations must be a positive integer"})
		return
	}

	recommendations, err := h.news.Recommend(c.Request.Context(), req.RiasecTypes, req.NumRecommendations)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidTraitInput):
			c.JSON(http.StatusBadRequest, gin.H{"error": "riasec_types must contain valid RIASEC letters"})
		default:
			h.logger.Error("news recommend failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not recommend news"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"riasec_input":        req.RiasecTypes,
		"num_recommendations": len(recommendations),
		"recommendations":     recommendations,
	})
}

// TraitTypes handles GET /api/news/riasec-types.
func (h *NewsHandler) TraitTypes(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"riasec_types": domain.TraitDescriptions})
}

// ByType handles GET /api/news/news-by-type/:riasec_type.
func (h *NewsHandler) ByType(c *gin.Context) {
	trait := c.Param("riasec_type")

	articles, err := h.news.ByType(c.Request.Context(), trait)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidTraitInput):
			c.JSON(http.StatusBadRequest, gin.H{
				"error":       "invalid RIASEC type: " + trait,
				"valid_types": domain.TraitOrder,
			})
		default:
			h.logger.Error("news by type failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load news"})
		}
		return
	}
	if len(articles) == 0 {
		c.JSON(http.StatusNotFound, gin.H{
			"error":       "No news found for RIASEC type: " + trait,
			"valid_types": domain.TraitOrder,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"riasec_type": articles[0].Trait,
		"count":       len(articles),
		"articles":    articles,
	})
}

// Stats handles GET /api/news/stats.
func (h *NewsHandler) Stats(c *gin.Context) {
	stats, err := h.news.Stats(c.Request.Context())
	if err != nil {
		if errors.Is(err, service.ErrDatasetUnavailable) {
			c.JSON(http.StatusNotFound, gin.H{"error": "No news data available"})
			return
		}
		h.logger.Error("news stats failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load news stats"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"total_articles":      stats.TotalArticles,
		"articles_by_riasec":  stats.ArticlesByTrait,
		"riasec_descriptions": domain.TraitDescriptions,
	})
}

package http

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NewRouter configures the Gin router with middleware and all service
// route groups, mirroring the platform's /api/<service> URL layout.
func NewRouter(
	logger *zap.Logger,
	assessmentH *AssessmentHandler,
	courseH *CourseHandler,
	collegeH *CollegeHandler,
	scholarshipH *ScholarshipHandler,
	newsH *NewsHandler,
) *gin.Engine {
	r := gin.New()

	r.Use(zapLoggerMiddleware(logger), gin.Recovery(), corsMiddleware(), jsonContentTypeMiddleware())

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "Education Guidance Backend",
			"status":  "running",
			"services": []string{
				"Career Guidance",
				"College Finder",
				"Course Suggestions",
				"News Recommender",
				"Scholarship Matcher",
			},
		})
	})
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	career := r.Group("/api/career")
	career.GET("/health", assessmentH.Health)
	career.POST("/start-test", assessmentH.StartTest)
	career.GET("/question/:session_id", assessmentH.GetQuestion)
	career.POST("/answer", assessmentH.SubmitAnswer)
	career.GET("/results/:session_id", assessmentH.GetResults)

	course := r.Group("/api/course")
	course.GET("/health", courseH.Health)
	course.POST("/recommend", courseH.Recommend)
	course.GET("/dataset-info", courseH.DatasetInfo)

	college := r.Group("/api/college")
	college.GET("/health", collegeH.Health)
	college.GET("/colleges", collegeH.List)
	college.POST("/colleges/filter", collegeH.Filter)
	college.GET("/colleges/search", collegeH.Search)
	college.GET("/colleges/stats", collegeH.Stats)

	scholarship := r.Group("/api/scholarship")
	scholarship.GET("/health", scholarshipH.Health)
	scholarship.POST("/match", scholarshipH.Match)
	scholarship.POST("/recommend", scholarshipH.Recommend)
	scholarship.GET("/scholarships", scholarshipH.List)
	scholarship.GET("/scholarships/:scholarship_id", scholarshipH.GetByID)

	news := r.Group("/api/news")
	news.GET("/health", newsH.Health)
	news.POST("/recommend", newsH.Recommend)
	news.GET("/riasec-types", newsH.TraitTypes)
	news.GET("/news-by-type/:riasec_type", newsH.ByType)
	news.GET("/stats", newsH.Stats)

	return r
}

// zapLoggerMiddleware logs one line per request.
func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", latency),
			zap.String("client_ip", c.ClientIP()),
		)
	}
}

// corsMiddleware allows all origins; the platform serves public read-only
// data to browser frontends on other hosts.
func corsMiddleware() gin.HandlerFunc {
	cfg := cors.DefaultConfig()
	cfg.AllowAllOrigins = true
	cfg.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	return cors.New(cfg)
}

// jsonContentTypeMiddleware forces Content-Type: application/json on responses.
func jsonContentTypeMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Content-Type", "application/json")
		c.Next()
	}
}

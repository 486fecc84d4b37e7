package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"edu-guidance/internal/config"
	"edu-guidance/internal/db"
	"edu-guidance/internal/domain"
	apihttp "edu-guidance/internal/http"
	"edu-guidance/internal/repository"
	"edu-guidance/internal/service"
)

func main() {
	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: loading .env: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		logger.Fatal("db connect", zap.Error(err))
	}
	defer pool.Close()

	if err := db.Ping(ctx, pool); err != nil {
		logger.Fatal("db ping", zap.Error(err))
	}

	courseRepo := repository.NewPgCourseRepository(pool)
	collegeRepo := repository.NewPgCollegeRepository(pool)
	scholarshipRepo := repository.NewPgScholarshipRepository(pool)
	newsRepo := repository.NewPgNewsRepository(pool)

	// Sessions live in redis when available; otherwise in process memory,
	// which is fine for a single instance.
	sessionStore := service.NewMemorySessionStore()
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		ctxPing, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := redisClient.Ping(ctxPing).Err(); err != nil {
			logger.Warn("redis ping failed, using in-memory sessions", zap.Error(err))
		} else {
			ttl := time.Duration(cfg.SessionTTLMin) * time.Minute
			sessionStore = service.NewRedisSessionStore(redisClient, ttl)
		}
		cancel()
	}

	assessmentSvc := service.NewAssessmentService(sessionStore, domain.DefaultQuestionBank(), logger)
	courseSvc := service.NewCourseService(courseRepo, cfg.DefaultRadius, logger)
	collegeSvc := service.NewCollegeService(collegeRepo, logger)
	scholarshipSvc := service.NewScholarshipService(scholarshipRepo, logger)
	newsSvc := service.NewNewsService(newsRepo, logger)

	assessmentHandler := apihttp.NewAssessmentHandler(logger, assessmentSvc)
	courseHandler := apihttp.NewCourseHandler(logger, courseSvc)
	collegeHandler := apihttp.NewCollegeHandler(logger, collegeSvc)
	scholarshipHandler := apihttp.NewScholarshipHandler(logger, scholarshipSvc)
	newsHandler := apihttp.NewNewsHandler(logger, newsSvc)

	router := apihttp.NewRouter(logger, assessmentHandler, courseHandler, collegeHandler, scholarshipHandler, newsHandler)

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Info("starting server", zap.String("port", cfg.HTTPPort))

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("server error", zap.Error(err))
	}
}

package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-talentscout-backend/config"
	_ "go-talentscout-backend/docs" // Important for Swagger
	"go-talentscout-backend/internal/adapter/gemini"
	"go-talentscout-backend/internal/adapter/heuristic"
	v1 "go-talentscout-backend/internal/delivery/http/v1"
	"go-talentscout-backend/internal/domain"
	"go-talentscout-backend/internal/repository/jsonl"
	"go-talentscout-backend/internal/repository/memory"
	"go-talentscout-backend/internal/repository/postgres"
	"go-talentscout-backend/internal/usecase"
	"go-talentscout-backend/pkg/database"
	"go-talentscout-backend/pkg/logger"
	"go-talentscout-backend/pkg/ratelimit"
	"go-talentscout-backend/pkg/redis"
	"go-talentscout-backend/pkg/validation"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// @title           TalentScout Hiring Assistant API
// @version         1.0
// @description     Conversational candidate intake: profile extraction, question generation and screening sessions.
// @BasePath        /v1
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Logger
	logger.Init(cfg.LogLevel)
	logger.Log.Info("Starting talentscout backend", "port", cfg.Port)

	// 3. Setup Redis (optional, backs the HTTP rate limiter)
	if cfg.UpstashRedisURL != "" {
		if err := redis.Initialize(redis.Config{URL: cfg.UpstashRedisURL, Password: cfg.UpstashRedisPassword}); err != nil {
			logger.Log.Warn("Redis unavailable, rate limiting falls back to in-memory", "error", err)
		}
		defer redis.Close()
	}

	// 4. Setup Candidate Record Store
	var records domain.CandidateRepository
	if cfg.DBUrl != "" {
		dbPool, err := database.NewPostgresConnection(cfg.DBUrl)
		if err != nil {
			logger.Log.Error("Failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer dbPool.Close()
		records = postgres.NewCandidateRepository(dbPool)
	} else {
		logger.Log.Info("No DB_URL configured, storing candidate records on disk", "dir", cfg.DataDir)
		records = jsonl.NewCandidateRepository(cfg.DataDir, cfg.RetentionDays)
	}

	sessions := memory.NewSessionRepository()

	// 5. Setup Model Adapters
	var (
		extractor   domain.Extractor
		questionGen domain.QuestionGenerator
		replyGen    domain.ReplyGenerator
		sentiment   domain.SentimentClassifier
	)
	if cfg.GeminiAPIKey != "" {
		limiter := ratelimit.NewWindow(
			cfg.RateLimitRequests,
			time.Duration(cfg.RateLimitPeriodSeconds)*time.Second,
			cfg.EnableRateLimiting,
		)
		client, err := gemini.NewClient(cfg.GeminiAPIKey, cfg.ModelName, cfg.ModelTemperature, cfg.LLMMaxAttempts)
		if err != nil {
			logger.Log.Error("Failed to create gemini client", "error", err)
			os.Exit(1)
		}
		extractor = gemini.NewExtractor(client, limiter)
		questionGen = gemini.NewQuestionGenerator(client, limiter)
		replyGen = gemini.NewReplyGenerator(client, limiter)
		sentiment = gemini.NewSentimentClassifier(client, limiter)
	} else {
		logger.Log.Warn("GEMINI_API_KEY not set, running with heuristic extraction only")
		extractor = heuristic.NewExtractor()
	}

	// 6. Setup UseCase
	conversationUC := usecase.NewConversationUsecase(usecase.Deps{
		Sessions:        sessions,
		Records:         records,
		Extractor:       extractor,
		QuestionGen:     questionGen,
		ReplyGen:        replyGen,
		Sentiment:       sentiment,
		MaxMessageChars: cfg.MaxMessageChars,
		MaxAnswerChars:  cfg.MaxAnswerChars,
	})

	// 7. Register custom validators on Gin's binding engine
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		validation.RegisterValidators(v)
	}

	// 8. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		ConversationUC: conversationUC,
		Config:         cfg,
	})

	// 9. Start Server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}

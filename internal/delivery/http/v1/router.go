package v1

import (
	"net/http"
	"time"

	"go-talentscout-backend/config"
	"go-talentscout-backend/internal/delivery/http/middleware"
	"go-talentscout-backend/internal/delivery/http/response"
	"go-talentscout-backend/internal/domain"
	"go-talentscout-backend/pkg/redis"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	ConversationUC domain.ConversationUsecase
	Config         *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()

	// Global Middlewares
	r.Use(middleware.CORSMiddleware(deps.Config.FrontendURL)) // CORS must be first!
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.RequestID())
	r.Use(middleware.ErrorHandler())

	if deps.Config.EnableRateLimiting {
		r.Use(middleware.RateLimitMiddleware(middleware.GlobalRateLimitConfig(
			deps.Config.RateLimitGlobalThreshold,
			time.Duration(deps.Config.RateLimitWindowSeconds)*time.Second,
		)))
	}

	v1 := r.Group("/v1")

	// Health Check
	v1.GET("/health", func(c *gin.Context) {
		var data interface{}
		if redis.Client() != nil {
			status := "ok"
			if err := redis.HealthCheck(c.Request.Context()); err != nil {
				status = "unavailable"
			}
			data = gin.H{"redis": status}
		}
		response.Success(c, http.StatusOK, "System operational", data)
	})

	// Swagger
	v1.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Per-session message throttle, applied only to the chat turn endpoint.
	messageLimiter := noopMiddleware()
	if deps.Config.EnableRateLimiting {
		messageLimiter = middleware.RateLimitMiddleware(middleware.MessageRateLimitConfig(
			deps.Config.RateLimitMessageThreshold,
			time.Duration(deps.Config.RateLimitWindowSeconds)*time.Second,
		))
	}

	NewSessionHandler(v1, deps.ConversationUC, messageLimiter)

	return r
}

func noopMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
	}
}

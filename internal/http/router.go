package http

import (
	"github.com/gin-gonic/gin"

	"github.com/equilibra/equilibra-backend/internal/http/handlers"
	"github.com/equilibra/equilibra-backend/internal/http/middleware"
	"github.com/equilibra/equilibra-backend/internal/platform/logger"
)

// RouterConfig carries everything the router needs. All fields are required.
type RouterConfig struct {
	Log            *logger.Logger
	Auth           *middleware.AuthMiddleware
	Health         *handlers.HealthHandler
	AuthHandler    *handlers.AuthHandler
	Emotions       *handlers.EmotionHandler
	Symptoms       *handlers.SymptomHandler
	ThoughtRecords *handlers.ThoughtRecordHandler
	EmotionRecords *handlers.EmotionRecordHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(cfg.Log))
	r.Use(middleware.CORS())

	r.GET("/healthcheck", cfg.Health.HealthCheck)

	// Catalog routes are public: the mobile client reads them before login.
	r.POST("/emotions", cfg.Emotions.Add)
	r.GET("/emotions", cfg.Emotions.List)
	r.POST("/symptoms", cfg.Symptoms.Add)
	r.GET("/symptoms", cfg.Symptoms.List)

	auth := r.Group("/", cfg.Auth.RequireAuth())
	{
		auth.POST("/auth/login", cfg.AuthHandler.Login)
		auth.GET("/auth/me", cfg.AuthHandler.Me)
		auth.GET("/auth/verify-token", cfg.AuthHandler.VerifyToken)

		auth.GET("/emotions/frequency", cfg.Emotions.Frequency)
		auth.GET("/symptoms/symptoms-time-patterns", cfg.Symptoms.TimePatterns)

		auth.POST("/thought-records", cfg.ThoughtRecords.Create)
		auth.GET("/thought-records", cfg.ThoughtRecords.List)
		auth.GET("/thought-records/patterns", cfg.ThoughtRecords.Patterns)
		auth.GET("/thought-records/insights-summary", cfg.ThoughtRecords.InsightsSummary)
		auth.PUT("/thought-records/:record_id", cfg.ThoughtRecords.Update)
		auth.DELETE("/thought-records/:record_id", cfg.ThoughtRecords.Delete)

		auth.POST("/emotion-records", cfg.EmotionRecords.Create)
		auth.GET("/emotion-records", cfg.EmotionRecords.List)
		auth.GET("/emotion-records/patterns", cfg.EmotionRecords.Patterns)
		auth.PUT("/emotion-records/:record_id", cfg.EmotionRecords.Update)
		auth.DELETE("/emotion-records/:record_id", cfg.EmotionRecords.Delete)
	}

	return r
}

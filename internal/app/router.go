package app

import (
	"github.com/gin-gonic/gin"

	apphttp "github.com/equilibra/equilibra-backend/internal/http"
	"github.com/equilibra/equilibra-backend/internal/platform/logger"
)

func wireRouter(log *logger.Logger, hs Handlers, mw Middleware) *gin.Engine {
	log.Info("Wiring router...")
	return apphttp.NewRouter(apphttp.RouterConfig{
		Log:            log,
		Auth:           mw.Auth,
		Health:         hs.Health,
		AuthHandler:    hs.Auth,
		Emotions:       hs.Emotion,
		Symptoms:       hs.Symptom,
		ThoughtRecords: hs.ThoughtRecord,
		EmotionRecords: hs.EmotionRecord,
	})
}

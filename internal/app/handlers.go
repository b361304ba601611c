package app

import (
	"github.com/equilibra/equilibra-backend/internal/http/handlers"
	"github.com/equilibra/equilibra-backend/internal/platform/logger"
)

type Handlers struct {
	Health        *handlers.HealthHandler
	Auth          *handlers.AuthHandler
	Emotion       *handlers.EmotionHandler
	Symptom       *handlers.SymptomHandler
	ThoughtRecord *handlers.ThoughtRecordHandler
	EmotionRecord *handlers.EmotionRecordHandler
}

func wireHandlers(log *logger.Logger, svcs Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health:        handlers.NewHealthHandler(),
		Auth:          handlers.NewAuthHandler(log, svcs.Auth),
		Emotion:       handlers.NewEmotionHandler(log, svcs.Emotion),
		Symptom:       handlers.NewSymptomHandler(log, svcs.Symptom),
		ThoughtRecord: handlers.NewThoughtRecordHandler(log, svcs.ThoughtRecord),
		EmotionRecord: handlers.NewEmotionRecordHandler(log, svcs.EmotionRecord),
	}
}

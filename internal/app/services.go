package app

import (
	"fmt"

	"github.com/equilibra/equilibra-backend/internal/platform/logger"
	"github.com/equilibra/equilibra-backend/internal/services"
)

type Services struct {
	Auth          services.AuthService
	Emotion       services.EmotionService
	Symptom       services.SymptomService
	ThoughtRecord services.ThoughtRecordService
	EmotionRecord services.EmotionRecordService
}

func wireServices(log *logger.Logger, cfg Config, repos Repos) (Services, error) {
	log.Info("Wiring services...")

	verifier, err := services.NewFirebaseVerifier(services.FirebaseVerifierConfig{
		ProjectID: cfg.FirebaseProjectID,
	})
	if err != nil {
		return Services{}, fmt.Errorf("init token verifier: %w", err)
	}

	return Services{
		Auth:          services.NewAuthService(log, verifier, repos.User),
		Emotion:       services.NewEmotionService(log, repos.Emotion),
		Symptom:       services.NewSymptomService(log, repos.Symptom),
		ThoughtRecord: services.NewThoughtRecordService(log, repos.ThoughtRecord, repos.Symptom, repos.Emotion),
		EmotionRecord: services.NewEmotionRecordService(log, repos.EmotionRecord, repos.Emotion),
	}, nil
}

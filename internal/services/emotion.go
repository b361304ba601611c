package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/equilibra/equilibra-backend/internal/data/repos/emotion"
	"github.com/equilibra/equilibra-backend/internal/domain"
	pkgerrors "github.com/equilibra/equilibra-backend/internal/pkg/errors"
	"github.com/equilibra/equilibra-backend/internal/platform/logger"
)

type EmotionService interface {
	Add(ctx context.Context, name string, description *string) (*domain.Emotion, error)
	List(ctx context.Context) ([]*domain.Emotion, error)
	FrequencyForUser(ctx context.Context, uid string) ([]domain.EmotionCount, error)
}

type emotionService struct {
	log         *logger.Logger
	emotionRepo emotion.EmotionRepo
}

func NewEmotionService(log *logger.Logger, emotionRepo emotion.EmotionRepo) EmotionService {
	return &emotionService{
		log:         log.With("service", "EmotionService"),
		emotionRepo: emotionRepo,
	}
}

func (es *emotionService) Add(ctx context.Context, name string, description *string) (*domain.Emotion, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: emotion name is required", pkgerrors.ErrInvalidArgument)
	}
	return es.emotionRepo.Create(ctx, name, description)
}

func (es *emotionService) List(ctx context.Context) ([]*domain.Emotion, error) {
	return es.emotionRepo.List(ctx)
}

func (es *emotionService) FrequencyForUser(ctx context.Context, uid string) ([]domain.EmotionCount, error) {
	return es.emotionRepo.FrequencyByUser(ctx, uid)
}

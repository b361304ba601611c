package services

import (
	"context"
	"fmt"

	"github.com/equilibra/equilibra-backend/internal/data/repos/symptom"
	"github.com/equilibra/equilibra-backend/internal/domain"
	"github.com/equilibra/equilibra-backend/internal/normalization"
	pkgerrors "github.com/equilibra/equilibra-backend/internal/pkg/errors"
	"github.com/equilibra/equilibra-backend/internal/platform/logger"
)

type SymptomService interface {
	// Add upserts a catalog symptom. "Fatigue ", "fatigue" and " FATIGUE"
	// all resolve to the same stored entity.
	Add(ctx context.Context, name string, description *string) (*domain.Symptom, error)
	List(ctx context.Context) ([]*domain.Symptom, error)
	TimePatternsForUser(ctx context.Context, uid string) ([]domain.SymptomTimePattern, error)
}

type symptomService struct {
	log         *logger.Logger
	symptomRepo symptom.SymptomRepo
}

func NewSymptomService(log *logger.Logger, symptomRepo symptom.SymptomRepo) SymptomService {
	return &symptomService{
		log:         log.With("service", "SymptomService"),
		symptomRepo: symptomRepo,
	}
}

func (ss *symptomService) Add(ctx context.Context, name string, description *string) (*domain.Symptom, error) {
	normalized := normalization.ParseInputString(name)
	if normalized == "" {
		return nil, fmt.Errorf("%w: symptom name is required", pkgerrors.ErrInvalidArgument)
	}
	return ss.symptomRepo.Upsert(ctx, normalized, description)
}

func (ss *symptomService) List(ctx context.Context) ([]*domain.Symptom, error) {
	return ss.symptomRepo.List(ctx)
}

func (ss *symptomService) TimePatternsForUser(ctx context.Context, uid string) ([]domain.SymptomTimePattern, error) {
	return ss.symptomRepo.TimePatternsByUser(ctx, uid)
}

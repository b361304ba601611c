package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/equilibra/equilibra-backend/internal/data/repos/record"
	"github.com/equilibra/equilibra-backend/internal/domain"
	pkgerrors "github.com/equilibra/equilibra-backend/internal/pkg/errors"
	"github.com/equilibra/equilibra-backend/internal/platform/logger"
)

// EmotionRecordInput carries client-settable fields for a new emotion record.
type EmotionRecordInput struct {
	Timestamp            *time.Time
	Title                *string
	SituationDescription *string
	Emotion              string
	UnderlyingBelief     *string
}

type EmotionRecordService interface {
	Create(ctx context.Context, uid string, input EmotionRecordInput) (*domain.EmotionRecord, error)
	List(ctx context.Context, uid string, filter domain.RecordFilter) ([]*domain.EmotionRecord, error)
	Patterns(ctx context.Context, uid string) ([]domain.EmotionCount, error)
	Update(ctx context.Context, uid, recordID string, update domain.RecordUpdate) (*domain.EmotionRecord, error)
	Delete(ctx context.Context, uid, recordID string) error
}

type emotionRecordService struct {
	log        *logger.Logger
	recordRepo record.EmotionRecordRepo
	catalog    CatalogChecker
}

func NewEmotionRecordService(log *logger.Logger, recordRepo record.EmotionRecordRepo, catalog CatalogChecker) EmotionRecordService {
	return &emotionRecordService{
		log:        log.With("service", "EmotionRecordService"),
		recordRepo: recordRepo,
		catalog:    catalog,
	}
}

func (es *emotionRecordService) Create(ctx context.Context, uid string, input EmotionRecordInput) (*domain.EmotionRecord, error) {
	emotionName, err := es.validEmotion(ctx, input.Emotion)
	if err != nil {
		return nil, err
	}

	timestamp := time.Now().UTC()
	if input.Timestamp != nil {
		timestamp = input.Timestamp.UTC()
	}

	rec := &domain.EmotionRecord{
		UserID:               uid,
		Timestamp:            timestamp,
		Title:                input.Title,
		SituationDescription: input.SituationDescription,
		Emotion:              emotionName,
		UnderlyingBelief:     input.UnderlyingBelief,
	}

	created, err := es.recordRepo.Create(ctx, rec)
	if err != nil {
		return nil, err
	}
	if created == nil {
		return nil, fmt.Errorf("create emotion record: owner node missing for uid")
	}
	return created, nil
}

func (es *emotionRecordService) List(ctx context.Context, uid string, filter domain.RecordFilter) ([]*domain.EmotionRecord, error) {
	filter.Emotion = strings.TrimSpace(filter.Emotion)
	filter.Symptom = ""
	return es.recordRepo.ListByUser(ctx, uid, filter)
}

func (es *emotionRecordService) Patterns(ctx context.Context, uid string) ([]domain.EmotionCount, error) {
	return es.recordRepo.PatternsByUser(ctx, uid)
}

func (es *emotionRecordService) Update(ctx context.Context, uid, recordID string, update domain.RecordUpdate) (*domain.EmotionRecord, error) {
	if err := es.checkOwnership(ctx, uid, recordID); err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if update.Timestamp != nil {
		updates["timestamp"] = update.Timestamp.UTC()
	}
	if update.Title != nil {
		updates["title"] = *update.Title
	}
	if update.SituationDescription != nil {
		updates["situation_description"] = *update.SituationDescription
	}
	if update.Emotion != nil {
		emotionName, err := es.validEmotion(ctx, *update.Emotion)
		if err != nil {
			return nil, err
		}
		updates["emotion"] = emotionName
	}
	if update.UnderlyingBelief != nil {
		updates["underlying_belief"] = *update.UnderlyingBelief
	}
	if len(updates) == 0 {
		return nil, fmt.Errorf("%w: no updatable fields provided", pkgerrors.ErrInvalidArgument)
	}

	updated, err := es.recordRepo.Update(ctx, recordID, updates)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, pkgerrors.ErrNotFound
	}
	return updated, nil
}

func (es *emotionRecordService) Delete(ctx context.Context, uid, recordID string) error {
	if err := es.checkOwnership(ctx, uid, recordID); err != nil {
		return err
	}

	deleted, err := es.recordRepo.Delete(ctx, recordID)
	if err != nil {
		return err
	}
	if !deleted {
		return pkgerrors.ErrNotFound
	}
	return nil
}

// Same membership scan as thought records; unowned ids read as not-found.
func (es *emotionRecordService) checkOwnership(ctx context.Context, uid, recordID string) error {
	records, err := es.recordRepo.ListByUser(ctx, uid, domain.RecordFilter{})
	if err != nil {
		return err
	}
	for _, r := range records {
		if r.ID == recordID {
			return nil
		}
	}
	return pkgerrors.ErrNotFound
}

func (es *emotionRecordService) validEmotion(ctx context.Context, name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("%w: emotion is required", pkgerrors.ErrInvalidArgument)
	}
	exists, err := es.catalog.ExistsByName(ctx, name)
	if err != nil {
		return "", err
	}
	if !exists {
		return "", fmt.Errorf("%w: unknown emotion %q", pkgerrors.ErrInvalidArgument, name)
	}
	return name, nil
}

package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/equilibra/equilibra-backend/internal/data/repos/record"
	"github.com/equilibra/equilibra-backend/internal/data/repos/symptom"
	"github.com/equilibra/equilibra-backend/internal/domain"
	"github.com/equilibra/equilibra-backend/internal/normalization"
	pkgerrors "github.com/equilibra/equilibra-backend/internal/pkg/errors"
	"github.com/equilibra/equilibra-backend/internal/platform/logger"
)

// ThoughtRecordInput carries client-settable fields for a new thought record.
// The owner and timestamps are decided server-side.
type ThoughtRecordInput struct {
	Timestamp            *time.Time
	Title                *string
	SituationDescription *string
	Emotion              string
	UnderlyingBelief     *string
	Symptoms             []string
}

type ThoughtRecordService interface {
	Create(ctx context.Context, uid string, input ThoughtRecordInput) (*domain.ThoughtRecord, error)
	List(ctx context.Context, uid string, filter domain.RecordFilter) ([]*domain.ThoughtRecord, error)
	Patterns(ctx context.Context, uid string) ([]domain.EmotionCount, error)
	Update(ctx context.Context, uid, recordID string, update domain.RecordUpdate) (*domain.ThoughtRecord, error)
	Delete(ctx context.Context, uid, recordID string) error
	InsightsSummary(ctx context.Context, uid string) (*domain.InsightsSummary, error)
}

type thoughtRecordService struct {
	log         *logger.Logger
	recordRepo  record.ThoughtRecordRepo
	symptomRepo symptom.SymptomRepo
	catalog     CatalogChecker
}

// CatalogChecker answers whether an emotion name exists in the catalog.
type CatalogChecker interface {
	ExistsByName(ctx context.Context, name string) (bool, error)
}

func NewThoughtRecordService(log *logger.Logger, recordRepo record.ThoughtRecordRepo, symptomRepo symptom.SymptomRepo, catalog CatalogChecker) ThoughtRecordService {
	return &thoughtRecordService{
		log:         log.With("service", "ThoughtRecordService"),
		recordRepo:  recordRepo,
		symptomRepo: symptomRepo,
		catalog:     catalog,
	}
}

func (ts *thoughtRecordService) Create(ctx context.Context, uid string, input ThoughtRecordInput) (*domain.ThoughtRecord, error) {
	emotionName, err := ts.validEmotion(ctx, input.Emotion)
	if err != nil {
		return nil, err
	}

	timestamp := time.Now().UTC()
	if input.Timestamp != nil {
		timestamp = input.Timestamp.UTC()
	}

	rec := &domain.ThoughtRecord{
		UserID:               uid,
		Timestamp:            timestamp,
		Title:                input.Title,
		SituationDescription: input.SituationDescription,
		Emotion:              emotionName,
		UnderlyingBelief:     input.UnderlyingBelief,
		Symptoms:             normalization.SymptomNames(input.Symptoms),
	}

	created, err := ts.recordRepo.Create(ctx, rec)
	if err != nil {
		return nil, err
	}
	if created == nil {
		return nil, fmt.Errorf("create thought record: owner node missing for uid")
	}
	return created, nil
}

func (ts *thoughtRecordService) List(ctx context.Context, uid string, filter domain.RecordFilter) ([]*domain.ThoughtRecord, error) {
	filter.Emotion = strings.TrimSpace(filter.Emotion)
	filter.Symptom = normalization.ParseInputString(filter.Symptom)
	return ts.recordRepo.ListByUser(ctx, uid, filter)
}

func (ts *thoughtRecordService) Patterns(ctx context.Context, uid string) ([]domain.EmotionCount, error) {
	return ts.recordRepo.PatternsByUser(ctx, uid)
}

func (ts *thoughtRecordService) Update(ctx context.Context, uid, recordID string, update domain.RecordUpdate) (*domain.ThoughtRecord, error) {
	if err := ts.checkOwnership(ctx, uid, recordID); err != nil {
		return nil, err
	}

	updates, err := ts.buildUpdates(ctx, update)
	if err != nil {
		return nil, err
	}

	updated, err := ts.recordRepo.Update(ctx, recordID, updates)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, pkgerrors.ErrNotFound
	}
	return updated, nil
}

func (ts *thoughtRecordService) Delete(ctx context.Context, uid, recordID string) error {
	if err := ts.checkOwnership(ctx, uid, recordID); err != nil {
		return err
	}

	deleted, err := ts.recordRepo.Delete(ctx, recordID)
	if err != nil {
		return err
	}
	if !deleted {
		return pkgerrors.ErrNotFound
	}
	return nil
}

func (ts *thoughtRecordService) InsightsSummary(ctx context.Context, uid string) (*domain.InsightsSummary, error) {
	summary := &domain.InsightsSummary{}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		counts, err := ts.recordRepo.PatternsByUser(gctx, uid)
		if err != nil {
			return err
		}
		summary.TopEmotions = counts
		return nil
	})
	g.Go(func() error {
		patterns, err := ts.symptomRepo.TimePatternsByUser(gctx, uid)
		if err != nil {
			return err
		}
		summary.TimePatterns = patterns
		return nil
	})
	g.Go(func() error {
		words, err := ts.recordRepo.KeywordsByUser(gctx, uid, 10)
		if err != nil {
			return err
		}
		summary.Keywords = words
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return summary, nil
}

// checkOwnership fetches the caller's records and tests membership before any
// mutation. Unowned ids surface as not-found so existence is never confirmed.
// A server-side filtered existence query would beat the linear scan at scale.
func (ts *thoughtRecordService) checkOwnership(ctx context.Context, uid, recordID string) error {
	records, err := ts.recordRepo.ListByUser(ctx, uid, domain.RecordFilter{})
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

func (ts *thoughtRecordService) buildUpdates(ctx context.Context, update domain.RecordUpdate) (map[string]any, error) {
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
		emotionName, err := ts.validEmotion(ctx, *update.Emotion)
		if err != nil {
			return nil, err
		}
		updates["emotion"] = emotionName
	}
	if update.UnderlyingBelief != nil {
		updates["underlying_belief"] = *update.UnderlyingBelief
	}
	if update.Symptoms != nil {
		updates["symptoms"] = normalization.SymptomNames(update.Symptoms)
	}
	if len(updates) == 0 {
		return nil, fmt.Errorf("%w: no updatable fields provided", pkgerrors.ErrInvalidArgument)
	}
	return updates, nil
}

func (ts *thoughtRecordService) validEmotion(ctx context.Context, name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("%w: emotion is required", pkgerrors.ErrInvalidArgument)
	}
	exists, err := ts.catalog.ExistsByName(ctx, name)
	if err != nil {
		return "", err
	}
	if !exists {
		return "", fmt.Errorf("%w: unknown emotion %q", pkgerrors.ErrInvalidArgument, name)
	}
	return name, nil
}

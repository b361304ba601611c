package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/equilibra/equilibra-backend/internal/domain"
	pkgerrors "github.com/equilibra/equilibra-backend/internal/pkg/errors"
)

type fakeThoughtRecordRepo struct {
	records  []*domain.ThoughtRecord
	created  *domain.ThoughtRecord
	updates  map[string]any
	deleted  []string
	patterns []domain.EmotionCount
	keywords []domain.KeywordCount
}

func (f *fakeThoughtRecordRepo) Create(ctx context.Context, rec *domain.ThoughtRecord) (*domain.ThoughtRecord, error) {
	stored := *rec
	stored.ID = "tr-1"
	f.created = &stored
	return &stored, nil
}

func (f *fakeThoughtRecordRepo) ListByUser(ctx context.Context, uid string, filter domain.RecordFilter) ([]*domain.ThoughtRecord, error) {
	return f.records, nil
}

func (f *fakeThoughtRecordRepo) PatternsByUser(ctx context.Context, uid string) ([]domain.EmotionCount, error) {
	return f.patterns, nil
}

func (f *fakeThoughtRecordRepo) Update(ctx context.Context, recordID string, updates map[string]any) (*domain.ThoughtRecord, error) {
	f.updates = updates
	for _, r := range f.records {
		if r.ID == recordID {
			return r, nil
		}
	}
	return nil, nil
}

func (f *fakeThoughtRecordRepo) Delete(ctx context.Context, recordID string) (bool, error) {
	f.deleted = append(f.deleted, recordID)
	for _, r := range f.records {
		if r.ID == recordID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeThoughtRecordRepo) KeywordsByUser(ctx context.Context, uid string, limit int) ([]domain.KeywordCount, error) {
	return f.keywords, nil
}

type fakeSymptomRepo struct {
	upserted     []string
	timePatterns []domain.SymptomTimePattern
}

func (f *fakeSymptomRepo) Upsert(ctx context.Context, name string, description *string) (*domain.Symptom, error) {
	f.upserted = append(f.upserted, name)
	return &domain.Symptom{ID: "s-1", Name: name, Description: description}, nil
}

func (f *fakeSymptomRepo) List(ctx context.Context) ([]*domain.Symptom, error) {
	return nil, nil
}

func (f *fakeSymptomRepo) TimePatternsByUser(ctx context.Context, uid string) ([]domain.SymptomTimePattern, error) {
	return f.timePatterns, nil
}

type fakeCatalog struct {
	known map[string]bool
}

func (f *fakeCatalog) ExistsByName(ctx context.Context, name string) (bool, error) {
	return f.known[name], nil
}

func newThoughtRecordServiceForTest(t *testing.T, repo *fakeThoughtRecordRepo, symptoms *fakeSymptomRepo, known ...string) ThoughtRecordService {
	t.Helper()
	catalog := &fakeCatalog{known: map[string]bool{}}
	for _, name := range known {
		catalog.known[name] = true
	}
	return NewThoughtRecordService(testLogger(t), repo, symptoms, catalog)
}

func TestThoughtRecordCreateRejectsUnknownEmotion(t *testing.T) {
	svc := newThoughtRecordServiceForTest(t, &fakeThoughtRecordRepo{}, &fakeSymptomRepo{}, "anxiety")

	_, err := svc.Create(context.Background(), "uid-1", ThoughtRecordInput{Emotion: "bliss"})
	if !errors.Is(err, pkgerrors.ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestThoughtRecordCreateNormalizesSymptoms(t *testing.T) {
	repo := &fakeThoughtRecordRepo{}
	svc := newThoughtRecordServiceForTest(t, repo, &fakeSymptomRepo{}, "anxiety")

	rec, err := svc.Create(context.Background(), "uid-1", ThoughtRecordInput{
		Emotion:  "anxiety",
		Symptoms: []string{"Racing Heart ", "racing heart", " SWEATING"},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if rec.UserID != "uid-1" {
		t.Fatalf("owner not set, got %q", rec.UserID)
	}
	want := []string{"racing heart", "sweating"}
	if len(repo.created.Symptoms) != len(want) {
		t.Fatalf("symptoms = %v, want %v", repo.created.Symptoms, want)
	}
	for i := range want {
		if repo.created.Symptoms[i] != want[i] {
			t.Fatalf("symptoms = %v, want %v", repo.created.Symptoms, want)
		}
	}
}

func TestThoughtRecordCreateDefaultsTimestamp(t *testing.T) {
	repo := &fakeThoughtRecordRepo{}
	svc := newThoughtRecordServiceForTest(t, repo, &fakeSymptomRepo{}, "anxiety")

	before := time.Now().UTC()
	_, err := svc.Create(context.Background(), "uid-1", ThoughtRecordInput{Emotion: "anxiety"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if repo.created.Timestamp.Before(before) || repo.created.Timestamp.After(time.Now().UTC()) {
		t.Fatalf("timestamp not defaulted to now: %v", repo.created.Timestamp)
	}
}

func TestThoughtRecordUpdateUnownedIsNotFound(t *testing.T) {
	repo := &fakeThoughtRecordRepo{records: []*domain.ThoughtRecord{{ID: "tr-1", UserID: "uid-1"}}}
	svc := newThoughtRecordServiceForTest(t, repo, &fakeSymptomRepo{}, "anxiety")

	title := "stolen"
	_, err := svc.Update(context.Background(), "uid-1", "tr-other", domain.RecordUpdate{Title: &title})
	if !errors.Is(err, pkgerrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if repo.updates != nil {
		t.Fatalf("update reached the repo for an unowned record: %v", repo.updates)
	}
}

func TestThoughtRecordUpdateEmptyIsInvalid(t *testing.T) {
	repo := &fakeThoughtRecordRepo{records: []*domain.ThoughtRecord{{ID: "tr-1", UserID: "uid-1"}}}
	svc := newThoughtRecordServiceForTest(t, repo, &fakeSymptomRepo{}, "anxiety")

	_, err := svc.Update(context.Background(), "uid-1", "tr-1", domain.RecordUpdate{})
	if !errors.Is(err, pkgerrors.ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestThoughtRecordUpdateBuildsWhitelistedProps(t *testing.T) {
	repo := &fakeThoughtRecordRepo{records: []*domain.ThoughtRecord{{ID: "tr-1", UserID: "uid-1"}}}
	svc := newThoughtRecordServiceForTest(t, repo, &fakeSymptomRepo{}, "anxiety", "calm")

	emotion := "calm"
	title := "after the walk"
	_, err := svc.Update(context.Background(), "uid-1", "tr-1", domain.RecordUpdate{
		Emotion:  &emotion,
		Title:    &title,
		Symptoms: []string{" Fatigue", "fatigue"},
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if repo.updates["emotion"] != "calm" || repo.updates["title"] != "after the walk" {
		t.Fatalf("unexpected updates: %v", repo.updates)
	}
	symptoms, ok := repo.updates["symptoms"].([]string)
	if !ok || len(symptoms) != 1 || symptoms[0] != "fatigue" {
		t.Fatalf("symptoms not normalized in updates: %v", repo.updates["symptoms"])
	}
	if _, present := repo.updates["user_id"]; present {
		t.Fatal("owner must not be client-settable")
	}
}

func TestThoughtRecordDeleteUnownedIsNotFound(t *testing.T) {
	repo := &fakeThoughtRecordRepo{records: []*domain.ThoughtRecord{{ID: "tr-1", UserID: "uid-1"}}}
	svc := newThoughtRecordServiceForTest(t, repo, &fakeSymptomRepo{}, "anxiety")

	if err := svc.Delete(context.Background(), "uid-1", "tr-missing"); !errors.Is(err, pkgerrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if len(repo.deleted) != 0 {
		t.Fatalf("delete reached the repo for an unowned record: %v", repo.deleted)
	}
}

func TestThoughtRecordInsightsSummaryAssemblesAggregates(t *testing.T) {
	repo := &fakeThoughtRecordRepo{
		records:  []*domain.ThoughtRecord{{ID: "tr-1", UserID: "uid-1"}},
		patterns: []domain.EmotionCount{{Emotion: "anxiety", Count: 4}},
		keywords: []domain.KeywordCount{{Word: "meeting", Count: 3}},
	}
	symptoms := &fakeSymptomRepo{
		timePatterns: []domain.SymptomTimePattern{{Symptom: "fatigue", Period: "morning", Count: 2}},
	}
	svc := newThoughtRecordServiceForTest(t, repo, symptoms, "anxiety")

	summary, err := svc.InsightsSummary(context.Background(), "uid-1")
	if err != nil {
		t.Fatalf("InsightsSummary: %v", err)
	}
	if len(summary.TopEmotions) != 1 || summary.TopEmotions[0].Emotion != "anxiety" {
		t.Fatalf("top emotions = %v", summary.TopEmotions)
	}
	if len(summary.TimePatterns) != 1 || summary.TimePatterns[0].Period != "morning" {
		t.Fatalf("time patterns = %v", summary.TimePatterns)
	}
	if len(summary.Keywords) != 1 || summary.Keywords[0].Word != "meeting" {
		t.Fatalf("keywords = %v", summary.Keywords)
	}
}

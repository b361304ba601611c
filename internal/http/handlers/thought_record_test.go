package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/equilibra/equilibra-backend/internal/domain"
	pkgerrors "github.com/equilibra/equilibra-backend/internal/pkg/errors"
	"github.com/equilibra/equilibra-backend/internal/platform/logger"
	"github.com/equilibra/equilibra-backend/internal/requestdata"
	"github.com/equilibra/equilibra-backend/internal/services"
)

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("init logger: %v", err)
	}
	return log
}

// withUser mimics the auth middleware for handler tests.
func withUser(u *domain.User) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := requestdata.WithRequestData(c.Request.Context(), &requestdata.RequestData{User: u})
		c.Request = c.Request.WithContext(ctx)
	}
}

type stubThoughtRecordService struct {
	createUID   string
	createInput services.ThoughtRecordInput
	deleteErr   error
	updateErr   error
	record      *domain.ThoughtRecord
	records     []*domain.ThoughtRecord
	summary     *domain.InsightsSummary
}

func (s *stubThoughtRecordService) Create(ctx context.Context, uid string, input services.ThoughtRecordInput) (*domain.ThoughtRecord, error) {
	s.createUID = uid
	s.createInput = input
	return s.record, nil
}

func (s *stubThoughtRecordService) List(ctx context.Context, uid string, filter domain.RecordFilter) ([]*domain.ThoughtRecord, error) {
	return s.records, nil
}

func (s *stubThoughtRecordService) Patterns(ctx context.Context, uid string) ([]domain.EmotionCount, error) {
	return nil, nil
}

func (s *stubThoughtRecordService) Update(ctx context.Context, uid, recordID string, update domain.RecordUpdate) (*domain.ThoughtRecord, error) {
	if s.updateErr != nil {
		return nil, s.updateErr
	}
	return s.record, nil
}

func (s *stubThoughtRecordService) Delete(ctx context.Context, uid, recordID string) error {
	return s.deleteErr
}

func (s *stubThoughtRecordService) InsightsSummary(ctx context.Context, uid string) (*domain.InsightsSummary, error) {
	return s.summary, nil
}

func newThoughtRecordTestRouter(t *testing.T, svc *stubThoughtRecordService, caller *domain.User) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	h := NewThoughtRecordHandler(testLogger(t), svc)
	r := gin.New()
	g := r.Group("/", withUser(caller))
	g.POST("/thought-records", h.Create)
	g.GET("/thought-records", h.List)
	g.GET("/thought-records/insights-summary", h.InsightsSummary)
	g.PUT("/thought-records/:record_id", h.Update)
	g.DELETE("/thought-records/:record_id", h.Delete)
	return r
}

func TestThoughtRecordCreateUsesCallerIdentity(t *testing.T) {
	svc := &stubThoughtRecordService{record: &domain.ThoughtRecord{ID: "tr-1", UserID: "uid-1", Emotion: "anxiety"}}
	r := newThoughtRecordTestRouter(t, svc, &domain.User{UID: "uid-1"})

	// The body claims a different owner; the caller's uid must win.
	body := bytes.NewBufferString(`{"emotion":"anxiety","user_id":"uid-intruder"}`)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/thought-records", body)
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	if svc.createUID != "uid-1" {
		t.Fatalf("service called with uid %q, want uid-1", svc.createUID)
	}
}

func TestThoughtRecordCreateRequiresEmotion(t *testing.T) {
	svc := &stubThoughtRecordService{}
	r := newThoughtRecordTestRouter(t, svc, &domain.User{UID: "uid-1"})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/thought-records", bytes.NewBufferString(`{"title":"no emotion"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestThoughtRecordListRejectsBadDate(t *testing.T) {
	r := newThoughtRecordTestRouter(t, &stubThoughtRecordService{}, &domain.User{UID: "uid-1"})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/thought-records?start_date=yesterday", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestThoughtRecordDeleteMissingIsNotFound(t *testing.T) {
	svc := &stubThoughtRecordService{deleteErr: pkgerrors.ErrNotFound}
	r := newThoughtRecordTestRouter(t, svc, &domain.User{UID: "uid-1"})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/thought-records/tr-missing", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
}

func TestThoughtRecordDeleteEnvelope(t *testing.T) {
	r := newThoughtRecordTestRouter(t, &stubThoughtRecordService{}, &domain.User{UID: "uid-1"})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/thought-records/tr-1", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if resp["message"] != "Record deleted successfully" {
		t.Fatalf("message = %q", resp["message"])
	}
}

func TestThoughtRecordUpdateUnownedIsNotFound(t *testing.T) {
	svc := &stubThoughtRecordService{updateErr: pkgerrors.ErrNotFound}
	r := newThoughtRecordTestRouter(t, svc, &domain.User{UID: "uid-1"})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/thought-records/tr-other", bytes.NewBufferString(`{"title":"x"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
}

func TestThoughtRecordInsightsSummary(t *testing.T) {
	svc := &stubThoughtRecordService{summary: &domain.InsightsSummary{
		TopEmotions: []domain.EmotionCount{{Emotion: "anxiety", Count: 4}},
	}}
	r := newThoughtRecordTestRouter(t, svc, &domain.User{UID: "uid-1"})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/thought-records/insights-summary", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var summary domain.InsightsSummary
	if err := json.Unmarshal(w.Body.Bytes(), &summary); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(summary.TopEmotions) != 1 || summary.TopEmotions[0].Emotion != "anxiety" {
		t.Fatalf("top emotions = %v", summary.TopEmotions)
	}
}

package record

import (
	"strings"
	"testing"
	"time"

	"github.com/equilibra/equilibra-backend/internal/domain"
)

func TestListQueryNoFilter(t *testing.T) {
	t.Parallel()

	q, params := listQuery("ThoughtRecord", "uid-1", domain.RecordFilter{})

	if !strings.Contains(q, "(r:ThoughtRecord)") {
		t.Fatalf("label missing: %q", q)
	}
	if !strings.Contains(q, "ORDER BY r.timestamp DESC") {
		t.Fatalf("ordering missing: %q", q)
	}
	if strings.Contains(q, "AND") {
		t.Fatalf("unexpected predicate: %q", q)
	}
	if params["user_id"] != "uid-1" {
		t.Fatalf("params = %v", params)
	}
}

func TestListQueryAllFilters(t *testing.T) {
	t.Parallel()

	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	q, params := listQuery("EmotionRecord", "uid-2", domain.RecordFilter{
		StartDate: &start,
		EndDate:   &end,
		Emotion:   "anxiety",
		Symptom:   "fatigue",
	})

	for _, want := range []string{
		"r.timestamp >= datetime($start_date)",
		"r.timestamp <= datetime($end_date)",
		"r.emotion = $emotion",
		"$symptom IN r.symptoms",
	} {
		if !strings.Contains(q, want) {
			t.Fatalf("predicate %q missing from %q", want, q)
		}
	}
	if params["emotion"] != "anxiety" || params["symptom"] != "fatigue" {
		t.Fatalf("params = %v", params)
	}
	// Filter values must never be interpolated into the query text.
	for _, leaked := range []string{"anxiety", "fatigue", "2025"} {
		if strings.Contains(q, leaked) {
			t.Fatalf("value %q leaked into query: %q", leaked, q)
		}
	}
}

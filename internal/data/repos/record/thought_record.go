package record

import (
	"context"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/equilibra/equilibra-backend/internal/data/graph"
	"github.com/equilibra/equilibra-backend/internal/domain"
	"github.com/equilibra/equilibra-backend/internal/platform/logger"
	"github.com/equilibra/equilibra-backend/internal/platform/neo4jdb"
)

type ThoughtRecordRepo interface {
	Create(ctx context.Context, rec *domain.ThoughtRecord) (*domain.ThoughtRecord, error)
	ListByUser(ctx context.Context, uid string, filter domain.RecordFilter) ([]*domain.ThoughtRecord, error)
	// PatternsByUser returns the caller's top emotions across thought
	// records, at most five rows, descending by count.
	PatternsByUser(ctx context.Context, uid string) ([]domain.EmotionCount, error)
	// Update applies the whitelisted property map and bumps updated_at.
	// Returns nil when no record matches.
	Update(ctx context.Context, recordID string, updates map[string]any) (*domain.ThoughtRecord, error)
	Delete(ctx context.Context, recordID string) (bool, error)
	// KeywordsByUser splits situation and belief text DB-side and counts
	// recurring words.
	KeywordsByUser(ctx context.Context, uid string, limit int) ([]domain.KeywordCount, error)
}

type thoughtRecordRepo struct {
	client *neo4jdb.Client
	log    *logger.Logger
}

func NewThoughtRecordRepo(client *neo4jdb.Client, baseLog *logger.Logger) ThoughtRecordRepo {
	return &thoughtRecordRepo{client: client, log: baseLog.With("repo", "ThoughtRecordRepo")}
}

func (tr *thoughtRecordRepo) Create(ctx context.Context, rec *domain.ThoughtRecord) (*domain.ThoughtRecord, error) {
	query := `
MATCH (u:User {uid: $user_id})
CREATE (r:ThoughtRecord {
  id: randomUUID(),
  user_id: $user_id,
  timestamp: datetime($timestamp),
  title: $title,
  situation_description: $situation_description,
  symptoms: $symptoms,
  emotion: $emotion,
  underlying_belief: $underlying_belief,
  created_at: datetime(),
  updated_at: datetime()
})
CREATE (u)-[:HAS_RECORD]->(r)
FOREACH (name IN $symptoms |
  MERGE (s:Symptom {name: name})
  ON CREATE SET s.id = randomUUID()
  MERGE (r)-[:HAS_SYMPTOM]->(s)
)
RETURN r`

	params := map[string]any{
		"user_id":               rec.UserID,
		"timestamp":             rec.Timestamp.UTC().Format(time.RFC3339Nano),
		"title":                 rec.Title,
		"situation_description": rec.SituationDescription,
		"symptoms":              rec.Symptoms,
		"emotion":               rec.Emotion,
		"underlying_belief":     rec.UnderlyingBelief,
	}

	out, err := tr.client.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, query, params)
		if err != nil {
			return nil, err
		}
		recs, err := res.Collect(ctx)
		if err != nil {
			return nil, err
		}
		if len(recs) == 0 {
			return nil, nil
		}
		return mapThoughtRecord(recs[0])
	})
	if err != nil {
		tr.log.Error("create thought record failed", "error", err)
		return nil, err
	}
	if out == nil {
		return nil, nil
	}
	return out.(*domain.ThoughtRecord), nil
}

func (tr *thoughtRecordRepo) ListByUser(ctx context.Context, uid string, filter domain.RecordFilter) ([]*domain.ThoughtRecord, error) {
	query, params := listQuery("ThoughtRecord", uid, filter)

	out, err := tr.client.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, query, params)
		if err != nil {
			return nil, err
		}
		recs, err := res.Collect(ctx)
		if err != nil {
			return nil, err
		}
		records := make([]*domain.ThoughtRecord, 0, len(recs))
		for _, rec := range recs {
			r, err := mapThoughtRecord(rec)
			if err != nil {
				return nil, err
			}
			records = append(records, r)
		}
		return records, nil
	})
	if err != nil {
		tr.log.Error("list thought records failed", "error", err)
		return nil, err
	}
	return out.([]*domain.ThoughtRecord), nil
}

func (tr *thoughtRecordRepo) PatternsByUser(ctx context.Context, uid string) ([]domain.EmotionCount, error) {
	counts, err := emotionPatterns(ctx, tr.client, "ThoughtRecord", uid)
	if err != nil {
		tr.log.Error("thought patterns query failed", "error", err)
		return nil, err
	}
	return counts, nil
}

func (tr *thoughtRecordRepo) Update(ctx context.Context, recordID string, updates map[string]any) (*domain.ThoughtRecord, error) {
	query := `
MATCH (r:ThoughtRecord {id: $record_id})
SET r += $updates, r.updated_at = datetime()
RETURN r`

	// A symptoms change also rewires the HAS_SYMPTOM edges.
	symptoms, hasSymptoms := updates["symptoms"]
	if hasSymptoms {
		query = `
MATCH (r:ThoughtRecord {id: $record_id})
SET r += $updates, r.updated_at = datetime()
WITH r
OPTIONAL MATCH (r)-[old:HAS_SYMPTOM]->(:Symptom)
DELETE old
WITH DISTINCT r
FOREACH (name IN $symptoms |
  MERGE (s:Symptom {name: name})
  ON CREATE SET s.id = randomUUID()
  MERGE (r)-[:HAS_SYMPTOM]->(s)
)
RETURN r`
	}

	params := map[string]any{"record_id": recordID, "updates": updates}
	if hasSymptoms {
		params["symptoms"] = symptoms
	}

	out, err := tr.client.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, query, params)
		if err != nil {
			return nil, err
		}
		recs, err := res.Collect(ctx)
		if err != nil {
			return nil, err
		}
		if len(recs) == 0 {
			return nil, nil
		}
		return mapThoughtRecord(recs[0])
	})
	if err != nil {
		tr.log.Error("update thought record failed", "error", err)
		return nil, err
	}
	if out == nil {
		return nil, nil
	}
	return out.(*domain.ThoughtRecord), nil
}

func (tr *thoughtRecordRepo) Delete(ctx context.Context, recordID string) (bool, error) {
	deleted, err := deleteRecord(ctx, tr.client, "ThoughtRecord", recordID)
	if err != nil {
		tr.log.Error("delete thought record failed", "error", err)
		return false, err
	}
	return deleted, nil
}

func (tr *thoughtRecordRepo) KeywordsByUser(ctx context.Context, uid string, limit int) ([]domain.KeywordCount, error) {
	if limit <= 0 {
		limit = 10
	}

	query := `
MATCH (u:User {uid: $user_id})-[:HAS_RECORD]->(r:ThoughtRecord)
WITH coalesce(r.situation_description, '') + ' ' + coalesce(r.underlying_belief, '') AS text
UNWIND [w IN split(toLower(text), ' ') WHERE size(w) >= $min_length] AS word
RETURN word, count(*) AS count
ORDER BY count DESC, word
LIMIT $limit`

	params := map[string]any{
		"user_id":    uid,
		"min_length": 4,
		"limit":      limit,
	}

	out, err := tr.client.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, query, params)
		if err != nil {
			return nil, err
		}
		recs, err := res.Collect(ctx)
		if err != nil {
			return nil, err
		}
		words := make([]domain.KeywordCount, 0, len(recs))
		for _, rec := range recs {
			word, _ := rec.Get("word")
			count, _ := rec.Get("count")
			words = append(words, domain.KeywordCount{
				Word:  graph.StringValue(word),
				Count: graph.Int64Value(count),
			})
		}
		return words, nil
	})
	if err != nil {
		tr.log.Error("keyword query failed", "error", err)
		return nil, err
	}
	return out.([]domain.KeywordCount), nil
}

package record

import (
	"context"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/equilibra/equilibra-backend/internal/domain"
	"github.com/equilibra/equilibra-backend/internal/platform/logger"
	"github.com/equilibra/equilibra-backend/internal/platform/neo4jdb"
)

type EmotionRecordRepo interface {
	Create(ctx context.Context, rec *domain.EmotionRecord) (*domain.EmotionRecord, error)
	ListByUser(ctx context.Context, uid string, filter domain.RecordFilter) ([]*domain.EmotionRecord, error)
	PatternsByUser(ctx context.Context, uid string) ([]domain.EmotionCount, error)
	Update(ctx context.Context, recordID string, updates map[string]any) (*domain.EmotionRecord, error)
	Delete(ctx context.Context, recordID string) (bool, error)
}

type emotionRecordRepo struct {
	client *neo4jdb.Client
	log    *logger.Logger
}

func NewEmotionRecordRepo(client *neo4jdb.Client, baseLog *logger.Logger) EmotionRecordRepo {
	return &emotionRecordRepo{client: client, log: baseLog.With("repo", "EmotionRecordRepo")}
}

func (er *emotionRecordRepo) Create(ctx context.Context, rec *domain.EmotionRecord) (*domain.EmotionRecord, error) {
	query := `
MATCH (u:User {uid: $user_id})
CREATE (r:EmotionRecord {
  id: randomUUID(),
  user_id: $user_id,
  timestamp: datetime($timestamp),
  title: $title,
  situation_description: $situation_description,
  emotion: $emotion,
  underlying_belief: $underlying_belief,
  created_at: datetime(),
  updated_at: datetime()
})
CREATE (u)-[:HAS_RECORD]->(r)
RETURN r`

	params := map[string]any{
		"user_id":               rec.UserID,
		"timestamp":             rec.Timestamp.UTC().Format(time.RFC3339Nano),
		"title":                 rec.Title,
		"situation_description": rec.SituationDescription,
		"emotion":               rec.Emotion,
		"underlying_belief":     rec.UnderlyingBelief,
	}

	out, err := er.client.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
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
		return mapEmotionRecord(recs[0])
	})
	if err != nil {
		er.log.Error("create emotion record failed", "error", err)
		return nil, err
	}
	if out == nil {
		return nil, nil
	}
	return out.(*domain.EmotionRecord), nil
}

func (er *emotionRecordRepo) ListByUser(ctx context.Context, uid string, filter domain.RecordFilter) ([]*domain.EmotionRecord, error) {
	query, params := listQuery("EmotionRecord", uid, filter)

	out, err := er.client.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, query, params)
		if err != nil {
			return nil, err
		}
		recs, err := res.Collect(ctx)
		if err != nil {
			return nil, err
		}
		records := make([]*domain.EmotionRecord, 0, len(recs))
		for _, rec := range recs {
			r, err := mapEmotionRecord(rec)
			if err != nil {
				return nil, err
			}
			records = append(records, r)
		}
		return records, nil
	})
	if err != nil {
		er.log.Error("list emotion records failed", "error", err)
		return nil, err
	}
	return out.([]*domain.EmotionRecord), nil
}

func (er *emotionRecordRepo) PatternsByUser(ctx context.Context, uid string) ([]domain.EmotionCount, error) {
	counts, err := emotionPatterns(ctx, er.client, "EmotionRecord", uid)
	if err != nil {
		er.log.Error("emotion record patterns query failed", "error", err)
		return nil, err
	}
	return counts, nil
}

func (er *emotionRecordRepo) Update(ctx context.Context, recordID string, updates map[string]any) (*domain.EmotionRecord, error) {
	query := `
MATCH (r:EmotionRecord {id: $record_id})
SET r += $updates, r.updated_at = datetime()
RETURN r`

	out, err := er.client.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, query, map[string]any{"record_id": recordID, "updates": updates})
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
		return mapEmotionRecord(recs[0])
	})
	if err != nil {
		er.log.Error("update emotion record failed", "error", err)
		return nil, err
	}
	if out == nil {
		return nil, nil
	}
	return out.(*domain.EmotionRecord), nil
}

func (er *emotionRecordRepo) Delete(ctx context.Context, recordID string) (bool, error) {
	deleted, err := deleteRecord(ctx, er.client, "EmotionRecord", recordID)
	if err != nil {
		er.log.Error("delete emotion record failed", "error", err)
		return false, err
	}
	return deleted, nil
}

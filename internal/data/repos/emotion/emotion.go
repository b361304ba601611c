package emotion

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/equilibra/equilibra-backend/internal/data/graph"
	"github.com/equilibra/equilibra-backend/internal/domain"
	"github.com/equilibra/equilibra-backend/internal/platform/logger"
	"github.com/equilibra/equilibra-backend/internal/platform/neo4jdb"
)

type EmotionRepo interface {
	Create(ctx context.Context, name string, description *string) (*domain.Emotion, error)
	List(ctx context.Context) ([]*domain.Emotion, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
	// FrequencyByUser returns the caller's most recorded emotions, at most
	// five rows, descending by count.
	FrequencyByUser(ctx context.Context, uid string) ([]domain.EmotionCount, error)
}

type emotionRepo struct {
	client *neo4jdb.Client
	log    *logger.Logger
}

func NewEmotionRepo(client *neo4jdb.Client, baseLog *logger.Logger) EmotionRepo {
	return &emotionRepo{client: client, log: baseLog.With("repo", "EmotionRepo")}
}

func (er *emotionRepo) Create(ctx context.Context, name string, description *string) (*domain.Emotion, error) {
	query := `
CREATE (e:Emotion {id: randomUUID(), name: $name, description: $description})
RETURN e`

	out, err := er.client.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, query, map[string]any{"name": name, "description": description})
		if err != nil {
			return nil, err
		}
		rec, err := res.Single(ctx)
		if err != nil {
			return nil, err
		}
		return mapEmotionRecord(rec)
	})
	if err != nil {
		er.log.Error("create emotion failed", "error", err)
		return nil, err
	}
	return out.(*domain.Emotion), nil
}

func (er *emotionRepo) List(ctx context.Context) ([]*domain.Emotion, error) {
	query := `
MATCH (e:Emotion)
RETURN e
ORDER BY e.name`

	out, err := er.client.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, query, nil)
		if err != nil {
			return nil, err
		}
		recs, err := res.Collect(ctx)
		if err != nil {
			return nil, err
		}
		emotions := make([]*domain.Emotion, 0, len(recs))
		for _, rec := range recs {
			e, err := mapEmotionRecord(rec)
			if err != nil {
				return nil, err
			}
			emotions = append(emotions, e)
		}
		return emotions, nil
	})
	if err != nil {
		er.log.Error("list emotions failed", "error", err)
		return nil, err
	}
	return out.([]*domain.Emotion), nil
}

func (er *emotionRepo) ExistsByName(ctx context.Context, name string) (bool, error) {
	query := `
MATCH (e:Emotion)
WHERE toLower(e.name) = toLower($name)
RETURN count(e) > 0 AS exists`

	out, err := er.client.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, query, map[string]any{"name": name})
		if err != nil {
			return nil, err
		}
		rec, err := res.Single(ctx)
		if err != nil {
			return nil, err
		}
		val, _ := rec.Get("exists")
		exists, _ := val.(bool)
		return exists, nil
	})
	if err != nil {
		er.log.Error("emotion existence check failed", "error", err)
		return false, err
	}
	return out.(bool), nil
}

func (er *emotionRepo) FrequencyByUser(ctx context.Context, uid string) ([]domain.EmotionCount, error) {
	query := `
MATCH (u:User {uid: $user_id})-[:HAS_RECORD]->(r:ThoughtRecord)
WITH r.emotion AS emotion, count(r) AS count
ORDER BY count DESC
RETURN emotion, count
LIMIT 5`

	out, err := er.client.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, query, map[string]any{"user_id": uid})
		if err != nil {
			return nil, err
		}
		recs, err := res.Collect(ctx)
		if err != nil {
			return nil, err
		}
		counts := make([]domain.EmotionCount, 0, len(recs))
		for _, rec := range recs {
			emotion, _ := rec.Get("emotion")
			count, _ := rec.Get("count")
			counts = append(counts, domain.EmotionCount{
				Emotion: graph.StringValue(emotion),
				Count:   graph.Int64Value(count),
			})
		}
		return counts, nil
	})
	if err != nil {
		er.log.Error("emotion frequency query failed", "error", err)
		return nil, err
	}
	return out.([]domain.EmotionCount), nil
}

func mapEmotionRecord(rec *neo4j.Record) (*domain.Emotion, error) {
	val, _ := rec.Get("e")
	props, ok := graph.NodeProps(val)
	if !ok {
		return nil, fmt.Errorf("unexpected emotion result shape")
	}
	return &domain.Emotion{
		ID:          graph.StringProp(props, "id"),
		Name:        graph.StringProp(props, "name"),
		Description: graph.StringPtrProp(props, "description"),
	}, nil
}

package record

import (
	"context"
	"fmt"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/equilibra/equilibra-backend/internal/data/graph"
	"github.com/equilibra/equilibra-backend/internal/domain"
	"github.com/equilibra/equilibra-backend/internal/platform/neo4jdb"
)

// listQuery builds the filtered list query shared by both record families.
// Every optional predicate binds a named parameter; values never reach the
// query text.
func listQuery(label, uid string, filter domain.RecordFilter) (string, map[string]any) {
	b := graph.NewQuery(fmt.Sprintf(`MATCH (u:User {uid: $user_id})-[:HAS_RECORD]->(r:%s)
WHERE 1=1`, label)).
		Param("user_id", uid)

	if filter.StartDate != nil {
		b.Where("r.timestamp >= datetime($start_date)", "start_date", filter.StartDate.UTC().Format(time.RFC3339Nano))
	}
	if filter.EndDate != nil {
		b.Where("r.timestamp <= datetime($end_date)", "end_date", filter.EndDate.UTC().Format(time.RFC3339Nano))
	}
	b.WhereIf(filter.Emotion != "", "r.emotion = $emotion", "emotion", filter.Emotion)
	b.WhereIf(filter.Symptom != "", "$symptom IN r.symptoms", "symptom", filter.Symptom)

	return b.Tail("RETURN r").Tail("ORDER BY r.timestamp DESC").Build()
}

func emotionPatterns(ctx context.Context, client *neo4jdb.Client, label, uid string) ([]domain.EmotionCount, error) {
	query := fmt.Sprintf(`
MATCH (u:User {uid: $user_id})-[:HAS_RECORD]->(r:%s)
WITH r.emotion AS emotion, count(*) AS count
ORDER BY count DESC
RETURN emotion, count
LIMIT 5`, label)

	out, err := client.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
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
		return nil, err
	}
	return out.([]domain.EmotionCount), nil
}

func deleteRecord(ctx context.Context, client *neo4jdb.Client, label, recordID string) (bool, error) {
	query := fmt.Sprintf(`
MATCH (r:%s {id: $record_id})
DETACH DELETE r
RETURN count(r) AS deleted`, label)

	out, err := client.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, query, map[string]any{"record_id": recordID})
		if err != nil {
			return nil, err
		}
		rec, err := res.Single(ctx)
		if err != nil {
			return nil, err
		}
		deleted, _ := rec.Get("deleted")
		return graph.Int64Value(deleted) > 0, nil
	})
	if err != nil {
		return false, err
	}
	return out.(bool), nil
}

func mapThoughtRecord(rec *neo4j.Record) (*domain.ThoughtRecord, error) {
	val, _ := rec.Get("r")
	props, ok := graph.NodeProps(val)
	if !ok {
		return nil, fmt.Errorf("unexpected thought record result shape")
	}
	return &domain.ThoughtRecord{
		ID:                   graph.StringProp(props, "id"),
		UserID:               graph.StringProp(props, "user_id"),
		Timestamp:            graph.TimeProp(props, "timestamp"),
		Title:                graph.StringPtrProp(props, "title"),
		SituationDescription: graph.StringPtrProp(props, "situation_description"),
		Emotion:              graph.StringProp(props, "emotion"),
		UnderlyingBelief:     graph.StringPtrProp(props, "underlying_belief"),
		Symptoms:             graph.StringSliceProp(props, "symptoms"),
		CreatedAt:            graph.TimeProp(props, "created_at"),
		UpdatedAt:            graph.TimeProp(props, "updated_at"),
	}, nil
}

func mapEmotionRecord(rec *neo4j.Record) (*domain.EmotionRecord, error) {
	val, _ := rec.Get("r")
	props, ok := graph.NodeProps(val)
	if !ok {
		return nil, fmt.Errorf("unexpected emotion record result shape")
	}
	return &domain.EmotionRecord{
		ID:                   graph.StringProp(props, "id"),
		UserID:               graph.StringProp(props, "user_id"),
		Timestamp:            graph.TimeProp(props, "timestamp"),
		Title:                graph.StringPtrProp(props, "title"),
		SituationDescription: graph.StringPtrProp(props, "situation_description"),
		Emotion:              graph.StringProp(props, "emotion"),
		UnderlyingBelief:     graph.StringPtrProp(props, "underlying_belief"),
		CreatedAt:            graph.TimeProp(props, "created_at"),
		UpdatedAt:            graph.TimeProp(props, "updated_at"),
	}, nil
}

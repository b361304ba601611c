package symptom

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/equilibra/equilibra-backend/internal/data/graph"
	"github.com/equilibra/equilibra-backend/internal/domain"
	"github.com/equilibra/equilibra-backend/internal/platform/logger"
	"github.com/equilibra/equilibra-backend/internal/platform/neo4jdb"
)

type SymptomRepo interface {
	// Upsert creates-or-returns a symptom by name. Callers pass the name
	// already normalized; the normalized form is the node key.
	Upsert(ctx context.Context, name string, description *string) (*domain.Symptom, error)
	List(ctx context.Context) ([]*domain.Symptom, error)
	// TimePatternsByUser correlates the caller's recorded symptoms with the
	// time-of-day bucket of their records.
	TimePatternsByUser(ctx context.Context, uid string) ([]domain.SymptomTimePattern, error)
}

type symptomRepo struct {
	client *neo4jdb.Client
	log    *logger.Logger
}

func NewSymptomRepo(client *neo4jdb.Client, baseLog *logger.Logger) SymptomRepo {
	return &symptomRepo{client: client, log: baseLog.With("repo", "SymptomRepo")}
}

func (sr *symptomRepo) Upsert(ctx context.Context, name string, description *string) (*domain.Symptom, error) {
	query := `
MERGE (s:Symptom {name: $name})
ON CREATE SET s.id = randomUUID(), s.description = $description
RETURN s`

	out, err := sr.client.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, query, map[string]any{"name": name, "description": description})
		if err != nil {
			return nil, err
		}
		rec, err := res.Single(ctx)
		if err != nil {
			return nil, err
		}
		return mapSymptomRecord(rec)
	})
	if err != nil {
		sr.log.Error("upsert symptom failed", "error", err)
		return nil, err
	}
	return out.(*domain.Symptom), nil
}

func (sr *symptomRepo) List(ctx context.Context) ([]*domain.Symptom, error) {
	query := `
MATCH (s:Symptom)
RETURN s
ORDER BY s.name`

	out, err := sr.client.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, query, nil)
		if err != nil {
			return nil, err
		}
		recs, err := res.Collect(ctx)
		if err != nil {
			return nil, err
		}
		symptoms := make([]*domain.Symptom, 0, len(recs))
		for _, rec := range recs {
			s, err := mapSymptomRecord(rec)
			if err != nil {
				return nil, err
			}
			symptoms = append(symptoms, s)
		}
		return symptoms, nil
	})
	if err != nil {
		sr.log.Error("list symptoms failed", "error", err)
		return nil, err
	}
	return out.([]*domain.Symptom), nil
}

func (sr *symptomRepo) TimePatternsByUser(ctx context.Context, uid string) ([]domain.SymptomTimePattern, error) {
	query := `
MATCH (u:User {uid: $user_id})-[:HAS_RECORD]->(r:ThoughtRecord)
UNWIND r.symptoms AS symptom
WITH symptom, r.timestamp.hour AS hour
WITH symptom,
     CASE
       WHEN hour < 6 THEN 'night'
       WHEN hour < 12 THEN 'morning'
       WHEN hour < 18 THEN 'afternoon'
       ELSE 'evening'
     END AS period
RETURN symptom, period, count(*) AS count
ORDER BY count DESC, symptom, period`

	out, err := sr.client.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, query, map[string]any{"user_id": uid})
		if err != nil {
			return nil, err
		}
		recs, err := res.Collect(ctx)
		if err != nil {
			return nil, err
		}
		patterns := make([]domain.SymptomTimePattern, 0, len(recs))
		for _, rec := range recs {
			symptom, _ := rec.Get("symptom")
			period, _ := rec.Get("period")
			count, _ := rec.Get("count")
			patterns = append(patterns, domain.SymptomTimePattern{
				Symptom: graph.StringValue(symptom),
				Period:  graph.StringValue(period),
				Count:   graph.Int64Value(count),
			})
		}
		return patterns, nil
	})
	if err != nil {
		sr.log.Error("symptom time patterns query failed", "error", err)
		return nil, err
	}
	return out.([]domain.SymptomTimePattern), nil
}

func mapSymptomRecord(rec *neo4j.Record) (*domain.Symptom, error) {
	val, _ := rec.Get("s")
	props, ok := graph.NodeProps(val)
	if !ok {
		return nil, fmt.Errorf("unexpected symptom result shape")
	}
	return &domain.Symptom{
		ID:          graph.StringProp(props, "id"),
		Name:        graph.StringProp(props, "name"),
		Description: graph.StringPtrProp(props, "description"),
	}, nil
}

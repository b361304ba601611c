package user

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/equilibra/equilibra-backend/internal/data/graph"
	"github.com/equilibra/equilibra-backend/internal/domain"
	"github.com/equilibra/equilibra-backend/internal/platform/logger"
	"github.com/equilibra/equilibra-backend/internal/platform/neo4jdb"
)

type UserRepo interface {
	GetByUID(ctx context.Context, uid string) (*domain.User, error)
	// Upsert resolves-or-creates a user node keyed by the external subject id.
	// A single MERGE keeps concurrent first requests from racing into
	// duplicate users.
	Upsert(ctx context.Context, user *domain.User) (*domain.User, error)
}

type userRepo struct {
	client *neo4jdb.Client
	log    *logger.Logger
}

func NewUserRepo(client *neo4jdb.Client, baseLog *logger.Logger) UserRepo {
	return &userRepo{client: client, log: baseLog.With("repo", "UserRepo")}
}

func (ur *userRepo) GetByUID(ctx context.Context, uid string) (*domain.User, error) {
	query := `
MATCH (u:User {uid: $uid})
RETURN u`

	out, err := ur.client.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, query, map[string]any{"uid": uid})
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
		return mapUserRecord(recs[0])
	})
	if err != nil {
		ur.log.Error("get user by uid failed", "error", err)
		return nil, err
	}
	if out == nil {
		return nil, nil
	}
	return out.(*domain.User), nil
}

func (ur *userRepo) Upsert(ctx context.Context, user *domain.User) (*domain.User, error) {
	query := `
MERGE (u:User {uid: $uid})
ON CREATE SET u.email = $email, u.name = $name, u.photo_url = $photo_url
RETURN u`

	params := map[string]any{
		"uid":       user.UID,
		"email":     user.Email,
		"name":      user.Name,
		"photo_url": user.PhotoURL,
	}

	out, err := ur.client.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, query, params)
		if err != nil {
			return nil, err
		}
		rec, err := res.Single(ctx)
		if err != nil {
			return nil, err
		}
		return mapUserRecord(rec)
	})
	if err != nil {
		ur.log.Error("upsert user failed", "error", err)
		return nil, err
	}
	return out.(*domain.User), nil
}

func mapUserRecord(rec *neo4j.Record) (*domain.User, error) {
	val, _ := rec.Get("u")
	props, ok := graph.NodeProps(val)
	if !ok {
		return nil, fmt.Errorf("unexpected user result shape")
	}
	return &domain.User{
		UID:      graph.StringProp(props, "uid"),
		Email:    graph.StringProp(props, "email"),
		Name:     graph.StringProp(props, "name"),
		PhotoURL: graph.StringProp(props, "photo_url"),
	}, nil
}

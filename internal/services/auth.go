package services

import (
	"context"
	"fmt"

	"github.com/equilibra/equilibra-backend/internal/data/repos/user"
	"github.com/equilibra/equilibra-backend/internal/domain"
	pkgerrors "github.com/equilibra/equilibra-backend/internal/pkg/errors"
	"github.com/equilibra/equilibra-backend/internal/platform/logger"
	"github.com/equilibra/equilibra-backend/internal/requestdata"
)

type AuthService interface {
	// VerifyToken checks the credential against the identity provider and
	// returns the claimed identity without touching the graph.
	VerifyToken(ctx context.Context, tokenString string) (*domain.User, error)
	// ResolveUser verifies the credential and resolves-or-creates the local
	// user node keyed by the provider's subject id.
	ResolveUser(ctx context.Context, tokenString string) (*domain.User, error)
	// SetContextFromToken resolves the caller and stashes it in request data.
	SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error)
}

type authService struct {
	log      *logger.Logger
	verifier TokenVerifier
	userRepo user.UserRepo
}

func NewAuthService(log *logger.Logger, verifier TokenVerifier, userRepo user.UserRepo) AuthService {
	return &authService{
		log:      log.With("service", "AuthService"),
		verifier: verifier,
		userRepo: userRepo,
	}
}

func (as *authService) VerifyToken(ctx context.Context, tokenString string) (*domain.User, error) {
	claims, err := as.verifier.Verify(ctx, tokenString)
	if err != nil {
		// The caller only ever sees a generic auth failure; expired vs
		// malformed stays in the log.
		as.log.Debug("token verification failed", "error", err)
		return nil, pkgerrors.ErrUnauthorized
	}
	return &domain.User{
		UID:      claims.Subject,
		Email:    claims.Email,
		Name:     claims.Name,
		PhotoURL: claims.PhotoURL,
	}, nil
}

func (as *authService) ResolveUser(ctx context.Context, tokenString string) (*domain.User, error) {
	claimed, err := as.VerifyToken(ctx, tokenString)
	if err != nil {
		return nil, err
	}

	resolved, err := as.userRepo.Upsert(ctx, claimed)
	if err != nil {
		return nil, fmt.Errorf("resolve user: %w", err)
	}
	return resolved, nil
}

func (as *authService) SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error) {
	resolved, err := as.ResolveUser(ctx, tokenString)
	if err != nil {
		return ctx, err
	}
	return requestdata.WithRequestData(ctx, &requestdata.RequestData{
		TokenString: tokenString,
		User:        resolved,
	}), nil
}

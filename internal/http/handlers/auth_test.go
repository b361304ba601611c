package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/equilibra/equilibra-backend/internal/domain"
	pkgerrors "github.com/equilibra/equilibra-backend/internal/pkg/errors"
)

type stubAuthService struct {
	user *domain.User
	err  error
}

func (s *stubAuthService) VerifyToken(ctx context.Context, tokenString string) (*domain.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.user, nil
}

func (s *stubAuthService) ResolveUser(ctx context.Context, tokenString string) (*domain.User, error) {
	return s.VerifyToken(ctx, tokenString)
}

func (s *stubAuthService) SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error) {
	return ctx, s.err
}

func newAuthTestRouter(t *testing.T, svc *stubAuthService, caller *domain.User) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	h := NewAuthHandler(testLogger(t), svc)
	r := gin.New()
	g := r.Group("/auth", withUser(caller))
	g.POST("/login", h.Login)
	g.GET("/me", h.Me)
	g.GET("/verify-token", h.VerifyToken)
	return r
}

func TestAuthMeReturnsCaller(t *testing.T) {
	r := newAuthTestRouter(t, &stubAuthService{}, &domain.User{UID: "uid-1", Email: "a@example.com"})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var resp struct {
		User domain.User `json:"user"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if resp.User.UID != "uid-1" || resp.User.Email != "a@example.com" {
		t.Fatalf("user = %+v", resp.User)
	}
}

func TestAuthLoginEnvelope(t *testing.T) {
	r := newAuthTestRouter(t, &stubAuthService{}, &domain.User{UID: "uid-1"})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var resp struct {
		Message string      `json:"message"`
		User    domain.User `json:"user"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if resp.Message != "Login successful" || resp.User.UID != "uid-1" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestAuthVerifyTokenQueryParam(t *testing.T) {
	svc := &stubAuthService{user: &domain.User{UID: "uid-1"}}
	r := newAuthTestRouter(t, svc, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/auth/verify-token?id_token=tok", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if resp["message"] != "Token is valid" || resp["uid"] != "uid-1" {
		t.Fatalf("unexpected response: %v", resp)
	}
}

func TestAuthVerifyTokenRejectsBadToken(t *testing.T) {
	r := newAuthTestRouter(t, &stubAuthService{err: pkgerrors.ErrUnauthorized}, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/auth/verify-token?id_token=bad", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}

func TestAuthVerifyTokenRequiresToken(t *testing.T) {
	r := newAuthTestRouter(t, &stubAuthService{}, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/auth/verify-token", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}

package services

import (
	"context"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// IdentityClaims is the subset of verified token claims the backend uses.
type IdentityClaims struct {
	Subject  string
	Email    string
	Name     string
	PhotoURL string
}

// TokenVerifier checks a bearer credential against the external identity
// provider and returns its claims.
type TokenVerifier interface {
	Verify(ctx context.Context, idToken string) (*IdentityClaims, error)
}

const defaultFirebaseJWKSURL = "https://www.googleapis.com/service_accounts/v1/jwk/securetoken@system.gserviceaccount.com"

type FirebaseVerifierConfig struct {
	ProjectID  string
	JWKSURL    string // defaults to the securetoken JWK endpoint
	HTTPClient *http.Client
}

type firebaseVerifier struct {
	projectID string
	issuer    string
	jwks      *jwksCache
}

func NewFirebaseVerifier(cfg FirebaseVerifierConfig) (TokenVerifier, error) {
	projectID := strings.TrimSpace(cfg.ProjectID)
	if projectID == "" {
		return nil, fmt.Errorf("firebase verifier: project id is required")
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	jwksURL := strings.TrimSpace(cfg.JWKSURL)
	if jwksURL == "" {
		jwksURL = defaultFirebaseJWKSURL
	}

	return &firebaseVerifier{
		projectID: projectID,
		issuer:    "https://securetoken.google.com/" + projectID,
		jwks:      newJWKSCache(httpClient, jwksURL),
	}, nil
}

func (v *firebaseVerifier) Verify(ctx context.Context, idToken string) (*IdentityClaims, error) {
	if strings.TrimSpace(idToken) == "" {
		return nil, fmt.Errorf("id token is empty")
	}

	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{"RS256"}),
		jwt.WithIssuer(v.issuer),
		jwt.WithAudience(v.projectID),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(30*time.Second),
	)

	claims := jwt.MapClaims{}
	tok, err := parser.ParseWithClaims(idToken, claims, func(t *jwt.Token) (any, error) {
		kid, _ := t.Header["kid"].(string)
		if strings.TrimSpace(kid) == "" {
			return nil, fmt.Errorf("missing kid")
		}
		return v.jwks.getKey(ctx, kid)
	})
	if err != nil {
		return nil, fmt.Errorf("invalid id token: %w", err)
	}
	if tok == nil || !tok.Valid {
		return nil, fmt.Errorf("invalid id token")
	}

	sub, _ := claims["sub"].(string)
	if strings.TrimSpace(sub) == "" {
		return nil, fmt.Errorf("missing sub claim")
	}

	out := &IdentityClaims{Subject: sub}
	if email, _ := claims["email"].(string); email != "" {
		out.Email = email
	}
	if name, _ := claims["name"].(string); name != "" {
		out.Name = name
	}
	if picture, _ := claims["picture"].(string); picture != "" {
		out.PhotoURL = picture
	}
	return out, nil
}

// ----- JWKS cache (RSA only; the securetoken endpoint publishes RS256 keys) -----

type jwksCache struct {
	httpClient *http.Client
	jwksURL    string

	mu        sync.RWMutex
	keys      map[string]*rsa.PublicKey
	fetchedAt time.Time
	ttl       time.Duration
}

func newJWKSCache(httpClient *http.Client, jwksURL string) *jwksCache {
	return &jwksCache{
		httpClient: httpClient,
		jwksURL:    jwksURL,
		keys:       map[string]*rsa.PublicKey{},
		ttl:        6 * time.Hour,
	}
}

type jwkSet struct {
	Keys []jwk `json:"keys"`
}

type jwk struct {
	Kty string `json:"kty"`
	Kid string `json:"kid"`
	Use string `json:"use"`
	Alg string `json:"alg"`
	N   string `json:"n"`
	E   string `json:"e"`
}

func (j *jwksCache) getKey(ctx context.Context, kid string) (*rsa.PublicKey, error) {
	j.mu.RLock()
	key := j.keys[kid]
	stale := time.Since(j.fetchedAt) > j.ttl
	j.mu.RUnlock()

	if key != nil && !stale {
		return key, nil
	}

	if err := j.refresh(ctx); err != nil {
		// A refresh hiccup must not invalidate a still-cached key.
		j.mu.RLock()
		key = j.keys[kid]
		j.mu.RUnlock()
		if key != nil {
			return key, nil
		}
		return nil, err
	}

	j.mu.RLock()
	defer j.mu.RUnlock()
	key = j.keys[kid]
	if key == nil {
		return nil, fmt.Errorf("kid not found in jwks: %s", kid)
	}
	return key, nil
}

func (j *jwksCache) refresh(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, j.jwksURL, nil)
	if err != nil {
		return err
	}
	res, err := j.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return fmt.Errorf("jwks fetch failed: %s", res.Status)
	}

	var set jwkSet
	if err := json.NewDecoder(res.Body).Decode(&set); err != nil {
		return err
	}

	next := map[string]*rsa.PublicKey{}
	for _, k := range set.Keys {
		if strings.TrimSpace(k.Kid) == "" || k.Kty != "RSA" {
			continue
		}
		pub, err := rsaFromModExp(k.N, k.E)
		if err != nil {
			continue
		}
		next[k.Kid] = pub
	}
	if len(next) == 0 {
		return errors.New("jwks contained no usable keys")
	}

	j.mu.Lock()
	j.keys = next
	j.fetchedAt = time.Now()
	j.mu.Unlock()
	return nil
}

func rsaFromModExp(nB64, eB64 string) (*rsa.PublicKey, error) {
	nb, err := base64.RawURLEncoding.DecodeString(nB64)
	if err != nil {
		return nil, err
	}
	eb, err := base64.RawURLEncoding.DecodeString(eB64)
	if err != nil {
		return nil, err
	}

	n := new(big.Int).SetBytes(nb)
	e := 0
	for _, b := range eb {
		e = e<<8 + int(b)
	}
	if e == 0 {
		return nil, fmt.Errorf("invalid exponent")
	}
	return &rsa.PublicKey{N: n, E: e}, nil
}

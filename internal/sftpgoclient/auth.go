package sftpgoclient

import (
	"context"
	"encoding/base64"
	"sync"
	"time"

	"sigs.k8s.io/controller-runtime/pkg/log"

	"github.com/snapp-incubator/sftpgo-operator/internal/metrics"
)

// DefaultTokenSafetyMargin is subtracted from the issuer-reported expiry so that a token
// is treated as expired slightly early.
const DefaultTokenSafetyMargin = 30 * time.Second

// AuthContext produces the Authorization header value for a request.
type AuthContext interface {
	AuthHeader(ctx context.Context) (string, error)
}

// TokenIssuer exchanges long-lived admin credentials for a short-lived token.
type TokenIssuer interface {
	IssueToken(ctx context.Context, username, password string) (*AccessToken, error)
}

func basicAuthHeader(username, password string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(username+":"+password))
}

func bearerAuthHeader(token string) string {
	return "Bearer " + token
}

// storedToken is replaced wholesale on refresh; expiresAt already has the margin applied.
type storedToken struct {
	accessToken string
	expiresAt   time.Time
}

func (t *storedToken) validAt(now time.Time) bool {
	return t != nil && t.expiresAt.After(now)
}

type tokenStore struct {
	mu    sync.RWMutex
	token *storedToken
}

// load returns the header of the cached token if it is still valid.
func (s *tokenStore) load(now time.Time) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.loadLocked(now)
}

// loadLocked must be called with mu held.
func (s *tokenStore) loadLocked(now time.Time) (string, bool) {
	if !s.token.validAt(now) {
		return "", false
	}
	return bearerAuthHeader(s.token.accessToken), true
}

// RefreshableAuthContext caches an admin token and refreshes it when it goes stale.
// At most one refresh is in flight at a time; readers of a valid token never block each other.
type RefreshableAuthContext struct {
	username string
	password string
	issuer   TokenIssuer
	server   string
	margin   time.Duration
	now      func() time.Time

	store tokenStore
}

type AuthOption func(*RefreshableAuthContext)

// WithSafetyMargin overrides DefaultTokenSafetyMargin. Negative values are ignored.
func WithSafetyMargin(margin time.Duration) AuthOption {
	return func(a *RefreshableAuthContext) {
		if margin >= 0 {
			a.margin = margin
		}
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) AuthOption {
	return func(a *RefreshableAuthContext) {
		a.now = now
	}
}

// WithServerName labels metrics with the server the credentials belong to.
func WithServerName(server string) AuthOption {
	return func(a *RefreshableAuthContext) {
		a.server = server
	}
}

func NewRefreshableAuthContext(username, password string, issuer TokenIssuer, opts ...AuthOption) *RefreshableAuthContext {
	a := &RefreshableAuthContext{
		username: username,
		password: password,
		issuer:   issuer,
		margin:   DefaultTokenSafetyMargin,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// AuthHeader returns "Bearer <token>", issuing a new token first if the cached one is stale.
// Issuer errors are returned unchanged and nothing is cached.
func (a *RefreshableAuthContext) AuthHeader(ctx context.Context) (string, error) {
	if header, ok := a.store.load(a.now()); ok {
		return header, nil
	}

	a.store.mu.Lock()
	defer a.store.mu.Unlock()

	// Another caller may have refreshed while we were waiting for the write lock.
	if header, ok := a.store.loadLocked(a.now()); ok {
		return header, nil
	}

	logger := log.FromContext(ctx).WithValues("server", a.server)
	token, err := a.issuer.IssueToken(ctx, a.username, a.password)
	metrics.RecordTokenIssuance(a.server, err)
	if err != nil {
		logger.V(1).Info("admin token issuance failed", "error", err.Error())
		return "", err
	}

	a.store.token = &storedToken{
		accessToken: token.AccessToken,
		expiresAt:   token.ExpiresAt.Add(-a.margin),
	}
	logger.V(1).Info("issued admin token", "expiresAt", token.ExpiresAt)

	return bearerAuthHeader(token.AccessToken), nil
}

// Invalidate drops the cached token if header, the value a request was rejected with,
// still refers to it. A token refreshed since that request was sent is kept.
func (a *RefreshableAuthContext) Invalidate(header string) {
	a.store.mu.Lock()
	defer a.store.mu.Unlock()

	if a.store.token == nil || bearerAuthHeader(a.store.token.accessToken) != header {
		return
	}
	a.store.token = nil
	log.Log.WithName("sftpgoclient").V(1).Info("admin token invalidated", "server", a.server)
}

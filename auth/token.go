package auth

import (
	"context"
	stderrors "errors"
	"fmt"
	"sync"
	"time"

	"sync-lab/contract"
	"sync-lab/errors"

	"github.com/golang-jwt/jwt/v5"
)

const issuer = "sync-lab"

// Claims defines the data carried by a coordination credential.
// SessionID changes when the service replaces the session behind a token.
type Claims struct {
	UserID    string `json:"user_id"`
	SessionID string `json:"session_id,omitempty"`
	jwt.RegisteredClaims
}

// GenerateToken creates a signed JWT for a specific user and session.
func GenerateToken(key []byte, userID, sessionID string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID:    userID,
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    issuer,
		},
	}
	// HS256 (HMAC with SHA256)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(key)
}

// ValidateToken parses and validates the signature and expiration of a JWT string.
func ValidateToken(key []byte, tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return key, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}
	return nil, jwt.ErrSignatureInvalid
}

// RefreshFunc exchanges the current token for a new one.
type RefreshFunc func(ctx context.Context, current string) (string, error)

var _ contract.TokenProvider = (*TokenSource)(nil)

// TokenSource holds the credential of the local account.
// The client never verifies the signature: it only reads the expiry to decide
// when to refresh, the service does the real validation.
type TokenSource struct {
	mu      sync.RWMutex
	token   string
	margin  time.Duration
	refresh RefreshFunc
	now     func() time.Time
}

func NewTokenSource(token string, margin time.Duration, refresh RefreshFunc) *TokenSource {
	return &TokenSource{token: token, margin: margin, refresh: refresh, now: time.Now}
}

func (s *TokenSource) Token(_ context.Context) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.token == "" {
		return "", errors.ErrNoCredential
	}
	return s.token, nil
}

// NeedsRefresh is true once the token expires within the refresh margin.
// Tokens without an expiry never need a refresh.
func (s *TokenSource) NeedsRefresh() bool {
	s.mu.RLock()
	token := s.token
	s.mu.RUnlock()
	if token == "" || s.refresh == nil {
		return false
	}
	claims, err := unverifiedClaims(token)
	if err != nil || claims.ExpiresAt == nil {
		return false
	}
	return s.now().Add(s.margin).After(claims.ExpiresAt.Time)
}

// Refresh swaps the stored token. A different session id in the new token
// means the service replaced the session.
func (s *TokenSource) Refresh(ctx context.Context) (contract.RefreshOutcome, error) {
	if s.refresh == nil {
		return contract.RefreshNone, nil
	}
	s.mu.RLock()
	current := s.token
	s.mu.RUnlock()

	next, err := s.refresh(ctx, current)
	if err != nil {
		if stderrors.Is(err, errors.ErrUnauthorized) {
			return contract.RefreshNone, err
		}
		return contract.RefreshNone, fmt.Errorf("%w: %v", errors.ErrRefreshFailed, err)
	}
	if next == "" {
		return contract.RefreshNone, fmt.Errorf("%w: empty token", errors.ErrRefreshFailed)
	}

	s.mu.Lock()
	s.token = next
	s.mu.Unlock()

	if sessionOf(current) != sessionOf(next) {
		return contract.RefreshSessionReplaced, nil
	}
	return contract.RefreshRenewed, nil
}

func unverifiedClaims(token string) (*Claims, error) {
	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, err
	}
	return claims, nil
}

func sessionOf(token string) string {
	claims, err := unverifiedClaims(token)
	if err != nil {
		return ""
	}
	return claims.SessionID
}

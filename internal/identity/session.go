package identity

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/julianstephens/wishlog/internal/constants"
	"github.com/julianstephens/wishlog/internal/keyring"
	"github.com/julianstephens/wishlog/internal/logger"
)

// DefaultSessionTTL is how long a login lasts.
const DefaultSessionTTL = 30 * 24 * time.Hour

// TokenStore persists the signed session token.
type TokenStore interface {
	Get() (string, error)
	Set(token string) error
	Delete() error
}

// KeyringTokens keeps the session token in the OS keyring.
type KeyringTokens struct{}

func (KeyringTokens) Get() (string, error) { return keyring.GetSessionToken() }
func (KeyringTokens) Set(token string) error { return keyring.SetSessionToken(token) }
func (KeyringTokens) Delete() error { return keyring.DeleteSessionToken() }

// Claims are the session token claims. The subject is the user ID.
type Claims struct {
	jwt.RegisteredClaims
}

// Session is a Provider backed by an HS256-signed token. Missing, invalid
// and expired tokens all report unauthenticated.
type Session struct {
	secret []byte
	tokens TokenStore
	now    func() time.Time
	hub    hub
}

func NewSession(secret string, tokens TokenStore) *Session {
	return &Session{secret: []byte(secret), tokens: tokens, now: time.Now}
}

// Issue signs a token for userID that expires after ttl.
func (s *Session) Issue(userID string, ttl time.Duration) (string, error) {
	if len(s.secret) == 0 {
		return "", errors.New("session secret is not configured")
	}
	if userID == "" {
		return "", errors.New("user id cannot be empty")
	}

	now := s.now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    constants.TokenIssuer,
			Subject:   userID,
			ID:        uuid.New().String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return signed, nil
}

// Verify checks the signature, issuer and validity window of tokenString.
func (s *Session) Verify(tokenString string) (*Claims, error) {
	if len(s.secret) == 0 {
		return nil, errors.New("session secret is not configured")
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	},
		jwt.WithIssuer(constants.TokenIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to parse session token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Subject == "" {
		return nil, errors.New("invalid session token")
	}
	return claims, nil
}

// Current reads and verifies the stored token.
func (s *Session) Current() State {
	token, err := s.tokens.Get()
	if err != nil {
		if !errors.Is(err, keyring.ErrNotFound) {
			logger.Warn("Failed to read session token", "error", err)
		}
		return State{}
	}
	claims, err := s.Verify(token)
	if err != nil {
		logger.Debug("Stored session rejected", "error", err)
		return State{}
	}
	return State{UserID: claims.Subject, Authenticated: true}
}

func (s *Session) Watch(ctx context.Context) <-chan State {
	return s.hub.subscribe(ctx, s.Current())
}

// Login issues and stores a token for userID and notifies watchers.
func (s *Session) Login(userID string, ttl time.Duration) error {
	token, err := s.Issue(userID, ttl)
	if err != nil {
		return err
	}
	if err := s.tokens.Set(token); err != nil {
		return err
	}
	logger.Info("Logged in", "user", userID)
	s.hub.publish(State{UserID: userID, Authenticated: true})
	return nil
}

// Logout removes the stored token and notifies watchers. Logging out
// without a session is not an error.
func (s *Session) Logout() error {
	if err := s.tokens.Delete(); err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return err
	}
	logger.Info("Logged out")
	s.hub.publish(State{})
	return nil
}

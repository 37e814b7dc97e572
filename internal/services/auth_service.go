package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/localnerve/singletea-api/internal/models"
	"github.com/localnerve/singletea-api/internal/types"
	"go.uber.org/zap"
)

// SessionCookieName is the cookie carrying the session token
const SessionCookieName = "token"

// invalidCredentialsMessage is shared by unknown-email and wrong-password failures
const invalidCredentialsMessage = "Invalid email or password"

// Claims is the content of a session token
type Claims struct {
	UserID string `json:"id"`
	jwt.RegisteredClaims
}

// Session is an issued token and when it stops being valid
type Session struct {
	Token     string
	ExpiresAt time.Time
}

// SessionIssuer verifies credentials and issues signed session tokens
type SessionIssuer struct {
	users       *UserStore
	secret      []byte
	ttl         time.Duration
	revocations Revocations
	log         *zap.Logger
	now         func() time.Time
}

// NewSessionIssuer creates an issuer. A nil revocations list disables revocation.
func NewSessionIssuer(users *UserStore, secret string, ttl time.Duration, revocations Revocations, log *zap.Logger) *SessionIssuer {
	if revocations == nil {
		revocations = NopRevocations{}
	}
	return &SessionIssuer{
		users:       users,
		secret:      []byte(secret),
		ttl:         ttl,
		revocations: revocations,
		log:         log,
		now:         time.Now,
	}
}

// TTL is the lifetime of issued tokens
func (s *SessionIssuer) TTL() time.Duration {
	return s.ttl
}

// Login checks credentials and issues a session for the user
func (s *SessionIssuer) Login(ctx context.Context, email, password string) (*models.User, *Session, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if types.IsType(err, types.NotFound) {
			return nil, nil, types.NewError(types.InvalidCredentials, invalidCredentialsMessage, nil)
		}
		return nil, nil, err
	}
	if !s.users.VerifyPassword(user, password) {
		return nil, nil, types.NewError(types.InvalidCredentials, invalidCredentialsMessage, nil)
	}

	session, err := s.Issue(user.ID)
	if err != nil {
		return nil, nil, err
	}
	s.log.Info("user logged in", zap.String("userID", user.ID))
	return user, session, nil
}

// Issue signs a token for userID
func (s *SessionIssuer) Issue(userID string) (*Session, error) {
	now := s.now()
	expiresAt := now.Add(s.ttl)
	claims := Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return nil, types.NewServerError(fmt.Errorf("sign token: %w", err))
	}
	return &Session{Token: signed, ExpiresAt: expiresAt}, nil
}

// Parse checks the signature and expiry of a token and returns its claims
func (s *SessionIssuer) Parse(tokenStr string) (*Claims, error) {
	if len(s.secret) == 0 {
		return nil, errors.New("jwt secret is empty")
	}
	claims := &Claims{}
	tok, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now), jwt.WithExpirationRequired())
	if err != nil || !tok.Valid {
		if err == nil {
			err = errors.New("invalid token")
		}
		return nil, err
	}
	if claims.UserID == "" {
		return nil, errors.New("invalid claims")
	}
	return claims, nil
}

// ValidateSession resolves a session cookie into claims. Every failure is Unauthenticated.
func (s *SessionIssuer) ValidateSession(ctx context.Context, tokenStr string) (*Claims, error) {
	if tokenStr == "" {
		return nil, types.NewError(types.Unauthenticated, "No token, authorization denied", nil)
	}
	claims, err := s.Parse(tokenStr)
	if err != nil {
		return nil, types.NewError(types.Unauthenticated, "Invalid token", err)
	}
	if claims.ID != "" {
		revoked, err := s.revocations.IsRevoked(ctx, claims.ID)
		if err != nil {
			// fail open
			s.log.Warn("revocation check failed", zap.Error(err))
		} else if revoked {
			return nil, types.NewError(types.Unauthenticated, "Session has been logged out", nil)
		}
	}
	return claims, nil
}

// Logout revokes the token when it is still valid. Clearing the cookie is the caller's job.
func (s *SessionIssuer) Logout(ctx context.Context, tokenStr string) error {
	if tokenStr == "" {
		return nil
	}
	claims, err := s.Parse(tokenStr)
	if err != nil || claims.ID == "" || claims.ExpiresAt == nil {
		return nil
	}
	remaining := claims.ExpiresAt.Sub(s.now())
	if remaining <= 0 {
		return nil
	}
	if err := s.revocations.Revoke(ctx, claims.ID, remaining); err != nil {
		s.log.Warn("failed to revoke session", zap.String("userID", claims.UserID), zap.Error(err))
		return nil
	}
	s.log.Info("user logged out", zap.String("userID", claims.UserID))
	return nil
}

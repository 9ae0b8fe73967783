// Package session turns a login into an opaque, server-side session and
// resolves bearer tokens back to an identity.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/BruksfildServices01/staffing-scheduler/internal/domain/access"
)

// ErrInvalidToken covers bad signatures, expired tokens and revoked
// sessions alike.
var ErrInvalidToken = errors.New("invalid session token")

type Manager struct {
	store  Store
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewManager(store Store, secret string, ttl time.Duration) *Manager {
	return &Manager{
		store:  store,
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

func (m *Manager) TTL() time.Duration {
	return m.ttl
}

// Open starts a session and returns its signed token.
func (m *Manager) Open(ctx context.Context, userID uint, role access.Role) (string, *Session, error) {
	now := m.now()
	s := Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		Role:      role,
		CreatedAt: now,
		ExpiresAt: now.Add(m.ttl),
	}

	if err := m.store.Save(ctx, s); err != nil {
		return "", nil, fmt.Errorf("save session: %w", err)
	}

	claims := jwt.MapClaims{
		"sub":  s.UserID,
		"role": string(s.Role),
		"sid":  s.ID,
		"iat":  now.Unix(),
		"exp":  s.ExpiresAt.Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		_ = m.store.Delete(ctx, s.ID)
		return "", nil, fmt.Errorf("sign token: %w", err)
	}
	return token, &s, nil
}

// Resolve maps a token to the identity of a live session.
func (m *Manager) Resolve(ctx context.Context, token string) (*access.Identity, error) {
	claims, err := m.parse(token, true)
	if err != nil {
		return nil, err
	}

	sid, _ := claims["sid"].(string)
	sub, _ := claims["sub"].(float64)

	s, err := m.store.Get(ctx, sid)
	if errors.Is(err, ErrNotFound) {
		return nil, ErrInvalidToken
	}
	if err != nil {
		return nil, err
	}
	if s.UserID != uint(sub) {
		return nil, ErrInvalidToken
	}

	return &access.Identity{UserID: s.UserID, Role: s.Role, SessionID: s.ID}, nil
}

// Close destroys the session behind token. It never fails on a token that is
// already expired, revoked or unreadable.
func (m *Manager) Close(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	claims, err := m.parse(token, false)
	if err != nil {
		return nil
	}
	sid, _ := claims["sid"].(string)
	if sid == "" {
		return nil
	}
	return m.store.Delete(ctx, sid)
}

func (m *Manager) parse(token string, checkExpiry bool) (jwt.MapClaims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(m.now),
	}
	if !checkExpiry {
		opts = append(opts, jwt.WithoutClaimsValidation())
	} else {
		opts = append(opts, jwt.WithExpirationRequired())
	}

	parsed, err := jwt.Parse(token, func(*jwt.Token) (interface{}, error) {
		return m.secret, nil
	}, opts...)
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}
	if sid, _ := claims["sid"].(string); sid == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

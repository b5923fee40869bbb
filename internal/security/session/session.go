package session

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/yourorg/moodtunes/internal/domain"
)

// CookieName is the cookie carrying the session token
const CookieName = "moodtunes_session"

// Identity is the authenticated caller extracted from a valid token
type Identity struct {
	UserID   int64
	Username string
}

// Claims are the signed contents of a session token
type Claims struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// Manager issues and validates stateless session tokens. Tokens use a fixed
// expiry window with no sliding renewal; logout puts the token id on the
// revocation list until its natural expiry.
type Manager struct {
	secret  []byte
	issuer  string
	ttl     time.Duration
	revoked RevocationStore
	logger  *slog.Logger
}

// NewManager creates a session manager
func NewManager(secret string, ttl time.Duration, revoked RevocationStore, logger *slog.Logger) *Manager {
	if secret == "" {
		secret = "change-me-in-production"
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		secret:  []byte(secret),
		issuer:  "moodtunes",
		ttl:     ttl,
		revoked: revoked,
		logger:  logger,
	}
}

// Issue binds the user's id and username into a signed token
func (m *Manager) Issue(user *domain.User) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(m.ttl)

	claims := Claims{
		UserID:   user.ID,
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			Issuer:    m.issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		m.logger.Error("failed to sign session token", slog.String("error", err.Error()))
		return "", time.Time{}, fmt.Errorf("%w: failed to issue session", domain.ErrAuthentication)
	}
	return signed, expiresAt, nil
}

// Validate returns the identity iff the token verifies, is unexpired, and
// has not been revoked. Any failure is domain.ErrAuthentication: absence or
// invalidity of session evidence always fails closed.
func (m *Manager) Validate(ctx context.Context, tokenString string) (*Identity, error) {
	claims, err := m.parse(tokenString)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid session token", domain.ErrAuthentication)
	}

	revoked, err := m.revoked.IsRevoked(ctx, claims.ID)
	if err != nil {
		// Revocation store unavailable: accept the signed token but log it,
		// so an infrastructure outage does not log everyone out.
		m.logger.Warn("revocation check failed", slog.String("error", err.Error()))
	} else if revoked {
		return nil, fmt.Errorf("%w: session revoked", domain.ErrAuthentication)
	}

	return &Identity{UserID: claims.UserID, Username: claims.Username}, nil
}

// Revoke puts the token's id on the revocation list until the token would
// have expired on its own. Already-invalid tokens are a no-op.
func (m *Manager) Revoke(ctx context.Context, tokenString string) error {
	claims, err := m.parse(tokenString)
	if err != nil {
		return nil
	}

	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl <= 0 {
		return nil
	}

	if err := m.revoked.Revoke(ctx, claims.ID, ttl); err != nil {
		m.logger.Error("failed to revoke session", slog.String("error", err.Error()))
		return fmt.Errorf("failed to revoke session: %w", err)
	}
	return nil
}

func (m *Manager) parse(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("parse token failed: %w", err)
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}
	return claims, nil
}

package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/yourorg/moodtunes/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

// dummyHash is compared against when the username does not exist, so the
// unknown-user and wrong-password paths take comparable time.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// AuthService handles account registration and credential verification
type AuthService struct {
	userRepo domain.UserRepository
	logger   *slog.Logger
}

// NewAuthService creates a new authentication service
func NewAuthService(userRepo domain.UserRepository, logger *slog.Logger) *AuthService {
	if logger == nil {
		logger = slog.Default()
	}

	return &AuthService{
		userRepo: userRepo,
		logger:   logger,
	}
}

// Register creates a new user account. The plaintext password is hashed with
// bcrypt and never stored or logged. Duplicate usernames or emails surface
// as domain.ErrConflict from the repository's unique constraints.
func (s *AuthService) Register(ctx context.Context, username, email, password string) (*domain.User, error) {
	if username == "" || email == "" || password == "" {
		return nil, fmt.Errorf("%w: username, email, and password are required", domain.ErrValidation)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("failed to hash password", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	user := &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return nil, err
		}
		s.logger.Error("failed to create user", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	s.logger.Info("user registered",
		slog.Int64("user_id", user.ID),
		slog.String("username", user.Username),
	)

	return user, nil
}

// VerifyCredentials returns the user iff the username exists and the stored
// hash verifies against the password. The unknown-user and wrong-password
// cases are indistinguishable to the caller: both return the same
// domain.ErrAuthentication.
func (s *AuthService) VerifyCredentials(ctx context.Context, username, password string) (*domain.User, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		// Burn a comparison anyway to keep timing consistent with the
		// wrong-password path.
		_ = bcrypt.CompareHashAndPassword([]byte(dummyHash), []byte(password))
		s.logger.Info("login attempt for unknown username")
		return nil, fmt.Errorf("%w: invalid credentials", domain.ErrAuthentication)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		s.logger.Info("login failed", slog.String("username", username))
		return nil, fmt.Errorf("%w: invalid credentials", domain.ErrAuthentication)
	}

	return user, nil
}

// GetByID looks up a user by id
func (s *AuthService) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// Package services implements server-side business logic on top of the
// repository layer.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/cardkeep/cardkeep/internal/common"
	"github.com/cardkeep/cardkeep/internal/logging"
	"github.com/cardkeep/cardkeep/internal/server/auth"
	"github.com/cardkeep/cardkeep/internal/server/config"
	"github.com/cardkeep/cardkeep/internal/server/models"
	"github.com/cardkeep/cardkeep/internal/server/repositories/repomanager"
	"golang.org/x/crypto/bcrypt"
)

// TokenPair bundles the short-lived access token with its refresh token.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// UserService implements registration, login, token refresh and password
// resets for user accounts.
type UserService struct {
	db                           *sql.DB
	repomanager                  repomanager.RepositoryManager
	logger                       logging.Logger
	jwtSecret                    []byte
	accessTokenValidityDuration  time.Duration
	refreshTokenValidityDuration time.Duration
	resetTokenValidityDuration   time.Duration
}

func NewUserService(db *sql.DB, rm repomanager.RepositoryManager, cfg *config.Config, logger logging.Logger) *UserService {
	return &UserService{
		db:                           db,
		repomanager:                  rm,
		logger:                       logger.With("module", "user_service"),
		jwtSecret:                    []byte(cfg.SecretKey),
		accessTokenValidityDuration:  cfg.AccessTokenValidityDuration,
		refreshTokenValidityDuration: cfg.RefreshTokenValidityDuration,
		resetTokenValidityDuration:   cfg.ResetTokenValidityDuration,
	}
}

// Register creates a user account and immediately issues a token pair, the
// same way the mobile client signs users in right after signup.
func (s *UserService) Register(ctx context.Context, displayName, email, password string) (*models.User, *TokenPair, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{
		Email:        email,
		DisplayName:  displayName,
		PasswordHash: hash,
	}

	user, err = s.repomanager.Users(s.db).Create(ctx, user)
	if err != nil {
		return nil, nil, fmt.Errorf("error creating user: %w", err)
	}

	tokens, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, nil, err
	}

	return user, tokens, nil
}

// Login verifies the credentials and issues a token pair. Unknown emails and
// wrong passwords are indistinguishable to the caller.
func (s *UserService) Login(ctx context.Context, email, password string) (*models.User, *TokenPair, error) {
	user, err := s.repomanager.Users(s.db).GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, nil, common.ErrUnauthorized
		}
		return nil, nil, common.ErrInternal
	}

	if bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)) != nil {
		return nil, nil, common.ErrUnauthorized
	}

	tokens, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, nil, err
	}

	return user, tokens, nil
}

// Refresh exchanges a valid refresh token for a fresh token pair. The old
// refresh token is invalidated.
func (s *UserService) Refresh(ctx context.Context, refreshToken string) (*models.User, *TokenPair, error) {
	repo := s.repomanager.RefreshTokens(s.db)

	stored, err := repo.Find(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, nil, common.ErrUnauthorized
		}
		return nil, nil, common.ErrInternal
	}

	if time.Now().After(stored.ExpiresAt) {
		_ = repo.Delete(ctx, refreshToken)
		return nil, nil, common.ErrRefreshTokenExpired
	}

	user, err := s.repomanager.Users(s.db).GetByID(ctx, stored.UserID)
	if err != nil {
		return nil, nil, common.ErrInternal
	}

	if err := repo.Delete(ctx, refreshToken); err != nil {
		return nil, nil, common.ErrInternal
	}

	tokens, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, nil, err
	}

	return user, tokens, nil
}

// Logout invalidates the given refresh token. Access tokens simply expire.
func (s *UserService) Logout(ctx context.Context, refreshToken string) error {
	if err := s.repomanager.RefreshTokens(s.db).Delete(ctx, refreshToken); err != nil {
		return common.ErrInternal
	}
	return nil
}

// RequestPasswordReset issues a one-time reset token for the account with the
// given email. To avoid leaking which emails are registered, an unknown email
// succeeds without creating a token.
func (s *UserService) RequestPasswordReset(ctx context.Context, email string) error {
	user, err := s.repomanager.Users(s.db).GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil
		}
		return common.ErrInternal
	}

	token, err := common.MakeRandHexString(32)
	if err != nil {
		return common.ErrInternal
	}

	err = s.repomanager.PasswordResets(s.db).Create(ctx, user.ID, token, s.resetTokenValidityDuration)
	if err != nil {
		return common.ErrInternal
	}

	// There is no mail delivery in this deployment; the token is logged so an
	// operator can hand it to the user.
	s.logger.Info(ctx, "password reset token issued", "user_id", user.ID, "token", token)
	return nil
}

// ResetPassword consumes a reset token and stores the new password hash. All
// refresh tokens of the user are revoked.
func (s *UserService) ResetPassword(ctx context.Context, token, newPassword string) error {
	reset, err := s.repomanager.PasswordResets(s.db).Consume(ctx, token)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return common.ErrInvalidToken
		}
		return common.ErrInternal
	}

	if time.Now().After(reset.ExpiresAt) {
		return common.ErrResetTokenExpired
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return common.ErrInternal
	}

	if err := s.repomanager.Users(s.db).UpdatePassword(ctx, reset.UserID, hash); err != nil {
		return common.ErrInternal
	}

	if err := s.repomanager.RefreshTokens(s.db).DeleteForUser(ctx, reset.UserID); err != nil {
		return common.ErrInternal
	}

	return nil
}

func (s *UserService) issueTokens(ctx context.Context, user *models.User) (*TokenPair, error) {
	accessToken, err := auth.GenerateToken(user.ID, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		return nil, common.ErrInternal
	}

	refreshToken, err := common.MakeRandHexString(32)
	if err != nil {
		return nil, common.ErrInternal
	}

	err = s.repomanager.RefreshTokens(s.db).Create(ctx, user.ID, refreshToken, s.refreshTokenValidityDuration)
	if err != nil {
		return nil, common.ErrInternal
	}

	return &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

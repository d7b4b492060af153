package service

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"github.com/Sidnaik04/YT-Assistant/internal/auth"
	"github.com/Sidnaik04/YT-Assistant/internal/config"
	"github.com/Sidnaik04/YT-Assistant/internal/domain"
	"github.com/Sidnaik04/YT-Assistant/internal/repository"
	apperrors "github.com/Sidnaik04/YT-Assistant/pkg/util"
)

const uniqueViolationCode = "23505"

// TokenPair bundles the tokens returned by a successful login.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
}

// AuthService coordinates registration, login, logout and token refresh.
type AuthService struct {
	users      repository.UserRepository
	blacklist  auth.TokenBlacklist
	tokenMgr   *auth.TokenManager
	bcryptCost int
	logger     *zap.Logger
}

// NewAuthService builds the service.
func NewAuthService(cfg config.AuthConfig, users repository.UserRepository, blacklist auth.TokenBlacklist, logger *zap.Logger) (*AuthService, error) {
	tokenMgr, err := auth.NewTokenManager(cfg)
	if err != nil {
		return nil, err
	}
	return &AuthService{
		users:      users,
		blacklist:  blacklist,
		tokenMgr:   tokenMgr,
		bcryptCost: cfg.BcryptCost,
		logger:     logger,
	}, nil
}

// Register creates a new account. No tokens are issued at registration.
func (s *AuthService) Register(ctx context.Context, email, password string) (*domain.User, error) {
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, apperrors.NewConflict("email already registered", nil)
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NewStoreUnavailable("credential store", err)
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{Email: email, PasswordHash: hash}
	if err := s.users.Create(ctx, user); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return nil, apperrors.NewConflict("email already registered", nil)
		}
		return nil, apperrors.NewStoreUnavailable("credential store", err)
	}
	return user, nil
}

// Login authenticates by email and password and issues one access and one
// refresh token. Unknown email and wrong password produce the identical
// external error so accounts cannot be enumerated.
func (s *AuthService) Login(ctx context.Context, email, password string) (*TokenPair, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			s.logger.Debug("login failed: unknown email", zap.String("email", email))
			return nil, apperrors.NewUnauthorized("invalid email or password")
		}
		return nil, apperrors.NewStoreUnavailable("credential store", err)
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		s.logger.Debug("login failed: password mismatch", zap.Int64("user_id", user.ID))
		return nil, apperrors.NewUnauthorized("invalid email or password")
	}

	accessToken, claims, err := s.tokenMgr.IssueAccess(user.ID)
	if err != nil {
		return nil, err
	}
	refreshToken, _, err := s.tokenMgr.IssueRefresh(user.ID)
	if err != nil {
		return nil, err
	}
	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    claims.ExpiresAt.Time,
	}, nil
}

// Logout blacklists the token id for the token's remaining lifetime. A token
// that already expired naturally needs no entry; revoking twice is harmless.
// Returns whether a revocation entry was written.
func (s *AuthService) Logout(ctx context.Context, tokenID string, expiresAt time.Time) (bool, error) {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return false, nil
	}
	if err := s.blacklist.Revoke(ctx, tokenID, ttl); err != nil {
		return false, apperrors.NewStoreUnavailable("revocation store", err)
	}
	return true, nil
}

// Refresh exchanges a live refresh token for a new access token. The refresh
// token's own id is checked against the blacklist, so a revoked refresh
// token stays dead.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (string, time.Time, error) {
	claims, err := s.tokenMgr.Decode(refreshToken)
	if err != nil {
		if errors.Is(err, auth.ErrTokenExpired) {
			return "", time.Time{}, apperrors.NewUnauthorized("token expired")
		}
		return "", time.Time{}, apperrors.NewUnauthorized("invalid token")
	}
	if claims.TokenType != auth.TokenTypeRefresh {
		return "", time.Time{}, apperrors.NewUnauthorized("invalid token")
	}

	revoked, err := s.blacklist.IsRevoked(ctx, claims.ID)
	if err != nil {
		return "", time.Time{}, apperrors.NewStoreUnavailable("revocation store", err)
	}
	if revoked {
		return "", time.Time{}, apperrors.NewUnauthorized("token has been revoked")
	}

	accessToken, accessClaims, err := s.tokenMgr.IssueAccess(claims.UserID)
	if err != nil {
		return "", time.Time{}, err
	}
	return accessToken, accessClaims.ExpiresAt.Time, nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

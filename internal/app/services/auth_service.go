package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/emre/schoolhub/internal/app/auth"
	"github.com/emre/schoolhub/internal/app/models"
	"github.com/emre/schoolhub/internal/pkg/apperrors"
	pkgauth "github.com/emre/schoolhub/internal/pkg/auth"
)

// ErrAuthValidation wraps input validation failures in this service.
var ErrAuthValidation = fmt.Errorf("%w: auth input rejected", apperrors.ErrValidationFailed)

// unknownUserHash is a real cost-12 hash generated at startup. Comparing a
// malformed literal would short-circuit inside bcrypt before the key
// derivation runs, so only a well-formed hash makes the unknown-username
// path take as long as a wrong password.
var unknownUserHash = func() string {
	hash, err := pkgauth.HashPassword("timing-equalizer-placeholder")
	if err != nil {
		panic(fmt.Sprintf("failed to generate login timing hash: %v", err))
	}
	return hash
}()

// UserStore defines the account operations the auth service depends on
type UserStore interface {
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	UpdateLastLogin(ctx context.Context, userID int64) error
	UpdateStatus(ctx context.Context, username string, enabled, locked bool) error
}

// TokenStore defines the refresh token operations the auth service depends on
type TokenStore interface {
	CreateToken(ctx context.Context, token string, userID int64, expiryDate time.Time) error
	GetTokenUserID(ctx context.Context, token string) (int64, error)
	RevokeToken(ctx context.Context, token string) error
	RevokeAllUserTokens(ctx context.Context, userID int64) error
}

// AuthService handles credential verification, token lifecycle and account
// status operations.
type AuthService struct {
	userRepo   UserStore
	tokenRepo  TokenStore
	jwtService *pkgauth.JWTService
	logger     zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo UserStore, tokenRepo TokenStore, jwtService *pkgauth.JWTService, logger zerolog.Logger) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		tokenRepo:  tokenRepo,
		jwtService: jwtService,
		logger:     logger,
	}
}

// LoginResult carries the outcome of a successful login
type LoginResult struct {
	User                  *models.User
	AccessToken           string
	RefreshToken          string
	ExpiresIn             int
	RefreshTokenExpiresIn int
}

// Login verifies credentials and issues a token pair. Every failure kind
// (unknown username, wrong password, disabled, locked) is distinguishable
// here for diagnostics; the boundary collapses them into one generic
// sign-in failure.
func (s *AuthService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	if strings.TrimSpace(username) == "" || password == "" {
		return nil, apperrors.ErrInvalidCredentials
	}

	user, err := s.userRepo.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			// Run the hash comparison anyway so unknown usernames take the
			// same time as wrong passwords.
			pkgauth.CheckPassword(unknownUserHash, password)
			return nil, apperrors.ErrUserNotFound
		}
		s.logger.Error().Err(err).Str("username", username).Msg("Error loading user during login")
		return nil, fmt.Errorf("failed to verify credentials: %w", err)
	}

	if !pkgauth.CheckPassword(user.Password, password) {
		return nil, apperrors.ErrInvalidCredentials
	}
	if !user.Enabled {
		return nil, apperrors.ErrAccountDisabled
	}
	if user.Locked {
		return nil, apperrors.ErrAccountLocked
	}

	accessToken, refreshToken, expiresIn, refreshExpiresIn, err := s.jwtService.GenerateTokenPair(user)
	if err != nil {
		s.logger.Error().Err(err).Int64("userID", user.ID).Msg("Error generating token pair")
		return nil, fmt.Errorf("failed to generate tokens: %w", err)
	}

	if err := s.tokenRepo.CreateToken(ctx, refreshToken, user.ID, s.jwtService.GetRefreshTokenExpiry()); err != nil {
		return nil, fmt.Errorf("failed to persist refresh token: %w", err)
	}

	if err := s.userRepo.UpdateLastLogin(ctx, user.ID); err != nil {
		// Login still succeeds; the timestamp is best effort.
		s.logger.Warn().Err(err).Int64("userID", user.ID).Msg("Failed to update last login timestamp")
	}

	return &LoginResult{
		User:                  user,
		AccessToken:           accessToken,
		RefreshToken:          refreshToken,
		ExpiresIn:             expiresIn,
		RefreshTokenExpiresIn: refreshExpiresIn,
	}, nil
}

// Refresh rotates a refresh token and issues a new token pair. Account
// status is re-checked, so a disabled or locked account cannot extend its
// session.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*LoginResult, error) {
	if strings.TrimSpace(refreshToken) == "" {
		return nil, apperrors.ErrTokenInvalid
	}

	userID, err := s.tokenRepo.GetTokenUserID(ctx, refreshToken)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !user.Enabled {
		return nil, apperrors.ErrAccountDisabled
	}
	if user.Locked {
		return nil, apperrors.ErrAccountLocked
	}

	if err := s.tokenRepo.RevokeToken(ctx, refreshToken); err != nil {
		return nil, fmt.Errorf("failed to rotate refresh token: %w", err)
	}

	accessToken, newRefreshToken, expiresIn, refreshExpiresIn, err := s.jwtService.GenerateTokenPair(user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate tokens: %w", err)
	}

	if err := s.tokenRepo.CreateToken(ctx, newRefreshToken, user.ID, s.jwtService.GetRefreshTokenExpiry()); err != nil {
		return nil, fmt.Errorf("failed to persist refresh token: %w", err)
	}

	return &LoginResult{
		User:                  user,
		AccessToken:           accessToken,
		RefreshToken:          newRefreshToken,
		ExpiresIn:             expiresIn,
		RefreshTokenExpiresIn: refreshExpiresIn,
	}, nil
}

// Logout revokes a refresh token
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	if strings.TrimSpace(refreshToken) == "" {
		return apperrors.ErrTokenInvalid
	}
	err := s.tokenRepo.RevokeToken(ctx, refreshToken)
	if err != nil && !errors.Is(err, apperrors.ErrTokenNotFound) {
		return err
	}
	return nil
}

// SetAccountStatus updates the enabled/locked flags of an account. Teacher
// only. Disabling or locking also revokes the account's refresh tokens so
// the status change cannot be outrun by a token refresh.
func (s *AuthService) SetAccountStatus(ctx context.Context, principal *auth.Principal, username string, enabled, locked bool) error {
	if err := auth.RequireRole(principal, models.RoleTeacher); err != nil {
		return err
	}

	if strings.TrimSpace(username) == "" {
		return fmt.Errorf("%w: username cannot be empty", ErrAuthValidation)
	}

	user, err := s.userRepo.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			// The caller is a verified teacher, so a missing account is a
			// plain not-found here rather than a collapsed sign-in failure.
			return apperrors.ErrResourceNotFound
		}
		return err
	}

	if err := s.userRepo.UpdateStatus(ctx, username, enabled, locked); err != nil {
		return err
	}

	if !enabled || locked {
		if err := s.tokenRepo.RevokeAllUserTokens(ctx, user.ID); err != nil {
			s.logger.Error().Err(err).Str("username", username).Msg("Failed to revoke tokens after status change")
			return err
		}
	}

	s.logger.Info().Str("username", username).Bool("enabled", enabled).Bool("locked", locked).
		Str("actor", principal.Username).Msg("Account status updated")
	return nil
}

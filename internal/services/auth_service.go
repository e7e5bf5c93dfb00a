package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"launch-tms/internal/dto"
	"launch-tms/internal/entities"
	"launch-tms/internal/repositories"
	"launch-tms/pkg/config"
	apperrors "launch-tms/pkg/errors"
	"launch-tms/pkg/service"
	"launch-tms/pkg/utils"
)

type AuthServiceInterface interface {
	Login(ctx context.Context, payload dto.LoginDTO) (*dto.AuthResponseDTO, error)
	Refresh(ctx context.Context, payload dto.RefreshDTO) (*dto.AuthResponseDTO, error)
	Logout(ctx context.Context, payload dto.RefreshDTO) error
	Me(ctx context.Context, userID uuid.UUID) (*entities.User, error)
}

type AuthService struct {
	userRepo  repositories.UserRepositoryInterface
	cacheRepo repositories.CacheRepositoryInterface
	jwtSvc    service.JWTService
	cfg       *config.AuthConfig
	logger    *zap.Logger
}

func NewAuthService(
	userRepo repositories.UserRepositoryInterface,
	cacheRepo repositories.CacheRepositoryInterface,
	jwtSvc service.JWTService,
	cfg *config.AuthConfig,
	logger *zap.Logger,
) AuthServiceInterface {
	return &AuthService{
		userRepo:  userRepo,
		cacheRepo: cacheRepo,
		jwtSvc:    jwtSvc,
		cfg:       cfg,
		logger:    logger,
	}
}

func loginAttemptsKey(email string) string { return fmt.Sprintf("login_attempts:%s", email) }
func revokedTokenKey(jti string) string    { return fmt.Sprintf("revoked_token:%s", jti) }

func (s *AuthService) Login(ctx context.Context, payload dto.LoginDTO) (*dto.AuthResponseDTO, error) {
	logger := s.logger.With(zap.String("email", payload.Email))

	attemptsStr, _ := s.cacheRepo.Get(ctx, loginAttemptsKey(payload.Email))
	if attempts, _ := strconv.Atoi(attemptsStr); attempts >= s.cfg.MaxLoginAttempts {
		logger.Warn("login blocked, too many failed attempts")
		return nil, apperrors.NewHttpError(
			http.StatusTooManyRequests,
			fmt.Sprintf("Too many failed attempts. Try again in %.0f minutes.", s.cfg.LockoutDuration.Minutes()),
			nil, nil,
		)
	}

	user, err := s.userRepo.FindUserByEmail(ctx, payload.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.recordFailedLogin(ctx, payload.Email)
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}
	if !user.IsActive {
		logger.Warn("login rejected for inactive account", zap.String("user_id", user.ID.String()))
		return nil, apperrors.ErrInvalidCredentials
	}
	if !utils.CheckPassword(user.Password, payload.Password) {
		s.recordFailedLogin(ctx, payload.Email)
		return nil, apperrors.ErrInvalidCredentials
	}

	if err := s.cacheRepo.Del(ctx, loginAttemptsKey(payload.Email)); err != nil {
		logger.Warn("failed to reset login attempt counter", zap.Error(err))
	}

	accessToken, refreshToken, err := s.jwtSvc.GenerateTokens(user.ID)
	if err != nil {
		return nil, err
	}
	logger.Info("user logged in", zap.String("user_id", user.ID.String()))
	return s.authResponse(accessToken, refreshToken, user), nil
}

// Refresh rotates the token pair. The presented refresh token is revoked for
// the rest of its lifetime so it can be used exactly once.
func (s *AuthService) Refresh(ctx context.Context, payload dto.RefreshDTO) (*dto.AuthResponseDTO, error) {
	claims, err := s.jwtSvc.ValidateToken(payload.RefreshToken)
	if err != nil {
		return nil, err
	}
	if !claims.IsRefreshToken {
		return nil, apperrors.ErrTokenIsNotRefresh
	}
	if _, err := s.cacheRepo.Get(ctx, revokedTokenKey(claims.ID)); err == nil {
		s.logger.Warn("revoked refresh token presented", zap.String("user_id", claims.UserID.String()))
		return nil, apperrors.ErrTokenRevoked
	}

	user, err := s.userRepo.FindUser(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrUnauthorized
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, apperrors.ErrUnauthorized
	}

	if err := s.revokeToken(ctx, claims); err != nil {
		s.logger.Warn("failed to revoke rotated refresh token", zap.Error(err))
	}

	accessToken, refreshToken, err := s.jwtSvc.GenerateTokens(user.ID)
	if err != nil {
		return nil, err
	}
	return s.authResponse(accessToken, refreshToken, user), nil
}

func (s *AuthService) Logout(ctx context.Context, payload dto.RefreshDTO) error {
	claims, err := s.jwtSvc.ValidateToken(payload.RefreshToken)
	if err != nil {
		// An invalid token has nothing left to revoke.
		return nil
	}
	if !claims.IsRefreshToken {
		return apperrors.ErrTokenIsNotRefresh
	}
	s.logger.Info("user logged out", zap.String("user_id", claims.UserID.String()))
	return s.revokeToken(ctx, claims)
}

func (s *AuthService) Me(ctx context.Context, userID uuid.UUID) (*entities.User, error) {
	return s.userRepo.FindUser(ctx, userID)
}

func (s *AuthService) recordFailedLogin(ctx context.Context, email string) {
	key := loginAttemptsKey(email)
	attempts, err := s.cacheRepo.Incr(ctx, key)
	if err != nil {
		s.logger.Warn("failed to record login attempt", zap.Error(err))
		return
	}
	if attempts == 1 {
		if _, err := s.cacheRepo.Expire(ctx, key, s.cfg.LockoutDuration); err != nil {
			s.logger.Warn("failed to set lockout window", zap.Error(err))
		}
	}
}

func (s *AuthService) revokeToken(ctx context.Context, claims *service.JwtCustomClaim) error {
	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl <= 0 {
		return nil
	}
	return s.cacheRepo.Set(ctx, revokedTokenKey(claims.ID), "revoked", ttl)
}

func (s *AuthService) authResponse(accessToken, refreshToken string, user *entities.User) *dto.AuthResponseDTO {
	return &dto.AuthResponseDTO{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User: dto.UserPublicDTO{
			ID:           user.ID,
			Email:        user.Email,
			FirstName:    user.FirstName,
			LastName:     user.LastName,
			Role:         user.Role,
			CompanyID:    user.CompanyID,
			DivisionID:   user.DivisionID,
			DepartmentID: user.DepartmentID,
			TerminalID:   user.TerminalID,
			Theme:        user.Theme,
			Language:     user.Language,
			Timezone:     user.Timezone,
		},
	}
}

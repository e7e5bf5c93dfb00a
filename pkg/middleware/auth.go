package middleware

import (
	"context"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"launch-tms/internal/repositories"
	"launch-tms/pkg/contextkeys"
	apperrors "launch-tms/pkg/errors"
	"launch-tms/pkg/service"
	"launch-tms/pkg/utils"
)

type AuthMiddleware struct {
	jwtService service.JWTService
	userRepo   repositories.UserRepositoryInterface
	logger     *zap.Logger
}

func NewAuthMiddleware(jwtSvc service.JWTService, userRepo repositories.UserRepositoryInterface, logger *zap.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtSvc,
		userRepo:   userRepo,
		logger:     logger,
	}
}

// Auth validates the bearer token and loads a fresh user row to build the
// request principal. Role and assignment changes take effect on the next
// request, not on token expiry.
func (m *AuthMiddleware) Auth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			return utils.ErrorResponse(c, apperrors.ErrEmptyAuthHeader, m.logger)
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return utils.ErrorResponse(c, apperrors.ErrInvalidAuthHeader, m.logger)
		}

		claims, err := m.jwtService.ValidateToken(parts[1])
		if err != nil {
			m.logger.Warn("token validation failed", zap.Error(err))
			return utils.ErrorResponse(c, err, m.logger)
		}
		if claims.IsRefreshToken {
			m.logger.Warn("refresh token presented as access token",
				zap.String("user_id", claims.UserID.String()))
			return utils.ErrorResponse(c, apperrors.ErrTokenIsNotAccess, m.logger)
		}

		user, err := m.userRepo.FindUser(c.Request().Context(), claims.UserID)
		if err != nil {
			m.logger.Warn("token holder no longer exists", zap.String("user_id", claims.UserID.String()))
			return utils.ErrorResponse(c, apperrors.ErrUnauthorized, m.logger)
		}
		if !user.IsActive {
			return utils.ErrorResponse(c, apperrors.ErrUnauthorized, m.logger)
		}

		ctx := c.Request().Context()
		ctx = context.WithValue(ctx, contextkeys.UserIDKey, user.ID)
		ctx = context.WithValue(ctx, contextkeys.PrincipalKey, user.Principal())
		c.SetRequest(c.Request().WithContext(ctx))

		return next(c)
	}
}

package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"launch-tms/internal/authz"
	"launch-tms/internal/dto"
	"launch-tms/internal/entities"
	"launch-tms/pkg/config"
	apperrors "launch-tms/pkg/errors"
	"launch-tms/pkg/service"
	"launch-tms/pkg/utils"
)

const testPassword = "correct-horse-battery"

func newAuthFixture(t *testing.T) (AuthServiceInterface, *fakeCacheRepo, *entities.User) {
	t.Helper()

	hash, err := utils.HashPassword(testPassword)
	require.NoError(t, err)

	user := &entities.User{
		ID:        uuid.New(),
		Email:     "dispatcher@example.com",
		FirstName: "Morgan",
		LastName:  "Reyes",
		Password:  hash,
		Role:      string(authz.RoleUser),
		CompanyID: uuidPtr(companyA),
		IsActive:  true,
	}
	cache := newFakeCacheRepo()
	jwtSvc := service.NewJWTService("test-secret", time.Minute*15, time.Hour, zap.NewNop())
	cfg := &config.AuthConfig{MaxLoginAttempts: 3, LockoutDuration: time.Minute * 15}
	svc := NewAuthService(newFakeUserRepo(user), cache, jwtSvc, cfg, zap.NewNop())
	return svc, cache, user
}

func TestLogin_Success(t *testing.T) {
	svc, _, user := newAuthFixture(t)

	resp, err := svc.Login(context.Background(), dto.LoginDTO{Email: user.Email, Password: testPassword})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, user.Email, resp.User.Email)
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, cache, user := newAuthFixture(t)

	_, err := svc.Login(context.Background(), dto.LoginDTO{Email: user.Email, Password: "nope"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	attempts, err := cache.Get(context.Background(), loginAttemptsKey(user.Email))
	require.NoError(t, err)
	assert.Equal(t, "1", attempts)
}

func TestLogin_UnknownEmailLooksLikeWrongPassword(t *testing.T) {
	svc, _, _ := newAuthFixture(t)

	_, err := svc.Login(context.Background(), dto.LoginDTO{Email: "ghost@example.com", Password: "whatever"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestLogin_LockoutAfterMaxAttempts(t *testing.T) {
	svc, _, user := newAuthFixture(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := svc.Login(ctx, dto.LoginDTO{Email: user.Email, Password: "nope"})
		assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	}

	// even the correct password is rejected while locked out
	_, err := svc.Login(ctx, dto.LoginDTO{Email: user.Email, Password: testPassword})
	require.Error(t, err)
	httpErr, ok := err.(*apperrors.HttpError)
	require.True(t, ok)
	assert.Equal(t, 429, httpErr.Code)
}

func TestLogin_SuccessClearsFailedAttempts(t *testing.T) {
	svc, cache, user := newAuthFixture(t)
	ctx := context.Background()

	_, err := svc.Login(ctx, dto.LoginDTO{Email: user.Email, Password: "nope"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	_, err = svc.Login(ctx, dto.LoginDTO{Email: user.Email, Password: testPassword})
	require.NoError(t, err)

	_, err = cache.Get(ctx, loginAttemptsKey(user.Email))
	assert.Error(t, err, "attempts counter should be cleared")
}

func TestLogin_InactiveUser(t *testing.T) {
	svc, _, user := newAuthFixture(t)
	user.IsActive = false

	_, err := svc.Login(context.Background(), dto.LoginDTO{Email: user.Email, Password: testPassword})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestRefresh_RotatesAndRevokesOldToken(t *testing.T) {
	svc, _, user := newAuthFixture(t)
	ctx := context.Background()

	login, err := svc.Login(ctx, dto.LoginDTO{Email: user.Email, Password: testPassword})
	require.NoError(t, err)

	refreshed, err := svc.Refresh(ctx, dto.RefreshDTO{RefreshToken: login.RefreshToken})
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.RefreshToken)

	// the rotated-out token is spent
	_, err = svc.Refresh(ctx, dto.RefreshDTO{RefreshToken: login.RefreshToken})
	assert.ErrorIs(t, err, apperrors.ErrTokenRevoked)

	// the new one still works
	_, err = svc.Refresh(ctx, dto.RefreshDTO{RefreshToken: refreshed.RefreshToken})
	assert.NoError(t, err)
}

func TestRefresh_AccessTokenRejected(t *testing.T) {
	svc, _, user := newAuthFixture(t)
	ctx := context.Background()

	login, err := svc.Login(ctx, dto.LoginDTO{Email: user.Email, Password: testPassword})
	require.NoError(t, err)

	_, err = svc.Refresh(ctx, dto.RefreshDTO{RefreshToken: login.AccessToken})
	assert.ErrorIs(t, err, apperrors.ErrTokenIsNotRefresh)
}

func TestLogout_RevokesRefreshToken(t *testing.T) {
	svc, _, user := newAuthFixture(t)
	ctx := context.Background()

	login, err := svc.Login(ctx, dto.LoginDTO{Email: user.Email, Password: testPassword})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, dto.RefreshDTO{RefreshToken: login.RefreshToken}))

	_, err = svc.Refresh(ctx, dto.RefreshDTO{RefreshToken: login.RefreshToken})
	assert.ErrorIs(t, err, apperrors.ErrTokenRevoked)
}

func TestLogout_InvalidTokenIsNoop(t *testing.T) {
	svc, _, _ := newAuthFixture(t)
	assert.NoError(t, svc.Logout(context.Background(), dto.RefreshDTO{RefreshToken: "garbage"}))
}

package utils

import (
	"context"

	"launch-tms/internal/authz"
	"launch-tms/pkg/contextkeys"
	apperrors "launch-tms/pkg/errors"

	"github.com/google/uuid"
)

// GetPrincipalFromCtx returns the principal placed into the request context
// by the auth middleware.
func GetPrincipalFromCtx(ctx context.Context) (authz.Principal, error) {
	p, ok := ctx.Value(contextkeys.PrincipalKey).(authz.Principal)
	if !ok {
		return authz.Principal{}, apperrors.ErrPrincipalNotFoundInContext
	}
	return p, nil
}

func GetUserIDFromCtx(ctx context.Context) (uuid.UUID, error) {
	id, ok := ctx.Value(contextkeys.UserIDKey).(uuid.UUID)
	if !ok {
		return uuid.Nil, apperrors.ErrPrincipalNotFoundInContext
	}
	return id, nil
}

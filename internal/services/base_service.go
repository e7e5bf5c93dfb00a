package services

import (
	"launch-tms/internal/authz"
	apperrors "launch-tms/pkg/errors"
)

// decisionError translates an authorization decision into the transport
// error taxonomy. Scope misses read as NotFound so out-of-scope resources do
// not reveal their existence; capability misses read as Forbidden.
func decisionError(d authz.Decision) error {
	switch d {
	case authz.Grant:
		return nil
	case authz.DenyForbidden:
		return apperrors.ErrForbidden
	default:
		return apperrors.ErrNotFound
	}
}

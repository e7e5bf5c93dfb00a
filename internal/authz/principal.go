package authz

import (
	"github.com/google/uuid"
)

// Principal is the immutable per-request snapshot of the authenticated user's
// role and organizational assignment. It is built once by the auth middleware
// from a fresh user row and passed explicitly; the resolver keeps no ambient
// state.
type Principal struct {
	ID   uuid.UUID
	Role Role

	CompanyID    *uuid.UUID
	DivisionID   *uuid.UUID
	DepartmentID *uuid.UUID
	TerminalID   *uuid.UUID

	// Hydrated ancestry of the assigned units, taken from the user row's
	// joins. Detects contradictory assignments and gives bound scopes their
	// ancestor chain; nil when the corresponding assignment is nil.
	DepartmentDivisionID *uuid.UUID
	TerminalDepartmentID *uuid.UUID
	TerminalDivisionID   *uuid.UUID
}

// ScopeKeys are a resource instance's organizational placement keys, used for
// single-object authorization. Repositories hydrate the full chain via joins
// where the row itself carries only a parent reference.
type ScopeKeys struct {
	CompanyID    *uuid.UUID
	DivisionID   *uuid.UUID
	DepartmentID *uuid.UUID
	TerminalID   *uuid.UUID
}

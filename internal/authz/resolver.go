package authz

import (
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ScopeKind is the level a principal's visibility is anchored at.
type ScopeKind int

const (
	// ScopeNone is the fail-closed default: no records are visible.
	ScopeNone ScopeKind = iota
	// ScopeAll is the system_admin sentinel: no scoping predicate at all.
	ScopeAll
	ScopeCompany
	ScopeDivision
	ScopeDepartment
	ScopeTerminal
)

func (k ScopeKind) String() string {
	switch k {
	case ScopeNone:
		return "none"
	case ScopeAll:
		return "all"
	case ScopeCompany:
		return "company"
	case ScopeDivision:
		return "division"
	case ScopeDepartment:
		return "department"
	case ScopeTerminal:
		return "terminal"
	}
	return "unknown"
}

// Scope is the resolved visibility of a principal: a kind plus the anchor
// organizational unit. CompanyID is set for every kind except All and None.
// Levels above the anchor hold the anchor's known ancestors (uuid.Nil when
// the user row could not hydrate one), so single-object reads of ancestor
// org units agree with the collection predicates of Condition.
type Scope struct {
	Kind         ScopeKind
	CompanyID    uuid.UUID
	DivisionID   uuid.UUID // anchor when Kind == ScopeDivision, else ancestor
	DepartmentID uuid.UUID // anchor when Kind == ScopeDepartment, else ancestor
	TerminalID   uuid.UUID // anchor when Kind == ScopeTerminal
}

func (s Scope) IsAll() bool  { return s.Kind == ScopeAll }
func (s Scope) IsNone() bool { return s.Kind == ScopeNone }

func (s Scope) anchorID() uuid.UUID {
	switch s.Kind {
	case ScopeCompany:
		return s.CompanyID
	case ScopeDivision:
		return s.DivisionID
	case ScopeDepartment:
		return s.DepartmentID
	case ScopeTerminal:
		return s.TerminalID
	}
	return uuid.Nil
}

// Allows checks a single resource instance's placement keys against the
// scope. Matching at the anchor level is sufficient: placement columns are
// validated chain-consistent on every write, so a division match implies the
// company match and so on.
func (s Scope) Allows(keys ScopeKeys) bool {
	switch s.Kind {
	case ScopeAll:
		return true
	case ScopeNone:
		return false
	case ScopeCompany:
		return keys.CompanyID != nil && *keys.CompanyID == s.CompanyID
	case ScopeDivision:
		return keys.DivisionID != nil && *keys.DivisionID == s.DivisionID
	case ScopeDepartment:
		return keys.DepartmentID != nil && *keys.DepartmentID == s.DepartmentID
	case ScopeTerminal:
		return keys.TerminalID != nil && *keys.TerminalID == s.TerminalID
	}
	return false
}

// allowsAncestorUnit checks whether keys describe an organizational unit on
// the chain between the scope's anchor and its company. Collection queries
// already include those units (the scoping chains resolve ancestry through
// subqueries), so a direct fetch of a unit visible in a listing must not
// 404. Applies only to the four org-unit resources; anchored records placed
// above the scope stay hidden. An ancestor the user row could not hydrate
// stays uuid.Nil and denies.
func (s Scope) allowsAncestorUnit(res Resource, keys ScopeKeys) bool {
	level, ok := orgUnitLevels[res]
	if !ok {
		return false
	}
	switch s.Kind {
	case ScopeAll:
		return true
	case ScopeNone:
		return false
	}
	if level > s.Kind {
		// Units below the anchor carry the anchor in their own keys and
		// are already covered by Allows.
		return false
	}
	switch level {
	case ScopeCompany:
		return keys.CompanyID != nil && *keys.CompanyID == s.CompanyID
	case ScopeDivision:
		return keys.DivisionID != nil && s.DivisionID != uuid.Nil && *keys.DivisionID == s.DivisionID
	case ScopeDepartment:
		return keys.DepartmentID != nil && s.DepartmentID != uuid.Nil && *keys.DepartmentID == s.DepartmentID
	case ScopeTerminal:
		return keys.TerminalID != nil && *keys.TerminalID == s.TerminalID
	}
	return false
}

// Decision is the outcome of an authorization check. Scope misses surface as
// NotFound so out-of-scope resources do not leak their existence across
// tenant boundaries; capability misses surface as Forbidden.
type Decision int

const (
	Grant Decision = iota
	DenyForbidden
	DenyNotFound
)

// Resolver computes visibility scopes and authorization decisions. It is a
// pure function of its inputs and safe for concurrent use; the logger is only
// used to report principal configuration anomalies.
type Resolver struct {
	logger *zap.Logger
}

func NewResolver(logger *zap.Logger) *Resolver {
	return &Resolver{logger: logger}
}

// Resolve maps a principal to its scope. Role order, most permissive first;
// among assignment levels the narrowest non-null assignment wins, which also
// covers contradictory assignments (stale data fails toward least privilege).
func (r *Resolver) Resolve(p Principal) Scope {
	if p.Role == RoleSystemAdmin {
		return Scope{Kind: ScopeAll}
	}

	if p.CompanyID == nil {
		// Mis-provisioned or unauthenticated principal. Never broadens.
		r.logger.Error("unscoped principal: non-admin without company assignment resolves to empty access",
			zap.String("user_id", p.ID.String()),
			zap.String("role", string(p.Role)),
		)
		return Scope{Kind: ScopeNone}
	}

	if p.TerminalID != nil {
		if p.DepartmentID != nil && p.TerminalDepartmentID != nil && *p.TerminalDepartmentID != *p.DepartmentID {
			r.logInconsistentScope(p, "terminal is not under the assigned department")
		}
		s := Scope{Kind: ScopeTerminal, CompanyID: *p.CompanyID, TerminalID: *p.TerminalID}
		// Ancestors come from the terminal's own chain, not the possibly
		// contradictory flat assignments.
		if p.TerminalDepartmentID != nil {
			s.DepartmentID = *p.TerminalDepartmentID
		}
		if p.TerminalDivisionID != nil {
			s.DivisionID = *p.TerminalDivisionID
		}
		return s
	}

	if p.DepartmentID != nil {
		if p.DivisionID != nil && p.DepartmentDivisionID != nil && *p.DepartmentDivisionID != *p.DivisionID {
			r.logInconsistentScope(p, "department is not under the assigned division")
		}
		s := Scope{Kind: ScopeDepartment, CompanyID: *p.CompanyID, DepartmentID: *p.DepartmentID}
		if p.DepartmentDivisionID != nil {
			s.DivisionID = *p.DepartmentDivisionID
		}
		return s
	}

	if p.DivisionID != nil {
		// Regional manager case: one division, many departments.
		return Scope{Kind: ScopeDivision, CompanyID: *p.CompanyID, DivisionID: *p.DivisionID}
	}

	return Scope{Kind: ScopeCompany, CompanyID: *p.CompanyID}
}

// Authorize runs the capability overlay and, when instance keys are given,
// the scoping predicate. Both must pass. A nil keys argument checks the
// capability alone (collection endpoints scope through Scope.Condition
// instead). Org units above the scope's anchor are readable but never
// writable through the ancestor path.
func (r *Resolver) Authorize(p Principal, op OperationClass, res Resource, keys *ScopeKeys) Decision {
	if !p.Role.Can(op) {
		return DenyForbidden
	}
	if keys == nil {
		return Grant
	}
	scope := r.Resolve(p)
	if scope.Allows(*keys) {
		return Grant
	}
	if op == OpRead && scope.allowsAncestorUnit(res, *keys) {
		return Grant
	}
	return DenyNotFound
}

// Data-quality warning, not a request error: the request proceeds with the
// narrowest valid interpretation.
func (r *Resolver) logInconsistentScope(p Principal, detail string) {
	r.logger.Warn("inconsistent scope assignment, narrowing to least privilege",
		zap.String("user_id", p.ID.String()),
		zap.String("role", string(p.Role)),
		zap.String("detail", detail),
	)
}

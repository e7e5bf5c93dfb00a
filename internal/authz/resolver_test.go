package authz

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func uuidPtr(id uuid.UUID) *uuid.UUID { return &id }

var (
	companyA    = uuid.MustParse("00000000-0000-0000-0000-0000000000aa")
	companyB    = uuid.MustParse("00000000-0000-0000-0000-0000000000bb")
	divisionSE  = uuid.MustParse("00000000-0000-0000-0000-0000000000d1")
	divisionNW  = uuid.MustParse("00000000-0000-0000-0000-0000000000d2")
	deptGAOps   = uuid.MustParse("00000000-0000-0000-0000-0000000000e1")
	deptFLOps   = uuid.MustParse("00000000-0000-0000-0000-0000000000e2")
	terminalATL = uuid.MustParse("00000000-0000-0000-0000-0000000000f1")
	terminalSAV = uuid.MustParse("00000000-0000-0000-0000-0000000000f2")
)

func newTestResolver() *Resolver {
	return NewResolver(zap.NewNop())
}

func TestResolve_SystemAdminSeesEverything(t *testing.T) {
	r := newTestResolver()

	// organizational fields are irrelevant for system_admin
	principals := []Principal{
		{ID: uuid.New(), Role: RoleSystemAdmin},
		{ID: uuid.New(), Role: RoleSystemAdmin, CompanyID: uuidPtr(companyA)},
		{ID: uuid.New(), Role: RoleSystemAdmin, CompanyID: uuidPtr(companyA), TerminalID: uuidPtr(terminalATL)},
	}
	for _, p := range principals {
		scope := r.Resolve(p)
		assert.True(t, scope.IsAll())
		assert.True(t, scope.Allows(ScopeKeys{CompanyID: uuidPtr(companyB)}))
		assert.True(t, scope.Allows(ScopeKeys{}))
	}
}

func TestResolve_UnscopedPrincipalFailsClosed(t *testing.T) {
	r := newTestResolver()

	for _, role := range []Role{RoleCompanyAdmin, RoleDepartmentManager, RoleUser, Role("garbage")} {
		scope := r.Resolve(Principal{ID: uuid.New(), Role: role})
		require.True(t, scope.IsNone(), "role %s without company must resolve to empty scope", role)
		assert.False(t, scope.Allows(ScopeKeys{CompanyID: uuidPtr(companyA)}))
	}
}

func TestResolve_CompanyScope(t *testing.T) {
	r := newTestResolver()
	scope := r.Resolve(Principal{ID: uuid.New(), Role: RoleCompanyAdmin, CompanyID: uuidPtr(companyA)})

	assert.Equal(t, ScopeCompany, scope.Kind)
	assert.True(t, scope.Allows(ScopeKeys{CompanyID: uuidPtr(companyA)}))
	assert.False(t, scope.Allows(ScopeKeys{CompanyID: uuidPtr(companyB)}))
	assert.False(t, scope.Allows(ScopeKeys{}), "resource without a company key is never visible to a scoped principal")
}

func TestResolve_RegionalManagerDivisionScope(t *testing.T) {
	r := newTestResolver()
	// division assigned, department null: the regional manager case
	scope := r.Resolve(Principal{
		ID:         uuid.New(),
		Role:       RoleDepartmentManager,
		CompanyID:  uuidPtr(companyA),
		DivisionID: uuidPtr(divisionSE),
	})

	require.Equal(t, ScopeDivision, scope.Kind)

	inSE := ScopeKeys{CompanyID: uuidPtr(companyA), DivisionID: uuidPtr(divisionSE), DepartmentID: uuidPtr(deptGAOps)}
	inNW := ScopeKeys{CompanyID: uuidPtr(companyA), DivisionID: uuidPtr(divisionNW)}
	assert.True(t, scope.Allows(inSE))
	assert.False(t, scope.Allows(inNW))
}

func TestResolve_DepartmentScope(t *testing.T) {
	r := newTestResolver()
	scope := r.Resolve(Principal{
		ID:           uuid.New(),
		Role:         RoleDepartmentManager,
		CompanyID:    uuidPtr(companyA),
		DivisionID:   uuidPtr(divisionSE),
		DepartmentID: uuidPtr(deptGAOps),
	})

	require.Equal(t, ScopeDepartment, scope.Kind)
	assert.True(t, scope.Allows(ScopeKeys{CompanyID: uuidPtr(companyA), DivisionID: uuidPtr(divisionSE), DepartmentID: uuidPtr(deptGAOps)}))
	assert.False(t, scope.Allows(ScopeKeys{CompanyID: uuidPtr(companyA), DivisionID: uuidPtr(divisionSE), DepartmentID: uuidPtr(deptFLOps)}))
}

func TestResolve_TerminalScopeIsNarrowest(t *testing.T) {
	r := newTestResolver()
	scope := r.Resolve(Principal{
		ID:           uuid.New(),
		Role:         RoleUser,
		CompanyID:    uuidPtr(companyA),
		DepartmentID: uuidPtr(deptGAOps),
		TerminalID:   uuidPtr(terminalATL),
	})

	require.Equal(t, ScopeTerminal, scope.Kind)
	assert.True(t, scope.Allows(ScopeKeys{CompanyID: uuidPtr(companyA), TerminalID: uuidPtr(terminalATL)}))
	assert.False(t, scope.Allows(ScopeKeys{CompanyID: uuidPtr(companyA), TerminalID: uuidPtr(terminalSAV)}))
	// a department-level record without terminal placement is outside a terminal scope
	assert.False(t, scope.Allows(ScopeKeys{CompanyID: uuidPtr(companyA), DepartmentID: uuidPtr(deptGAOps)}))
}

// Narrowing monotonicity: everything a terminal-scoped principal can see, the
// department-scoped principal owning that terminal can see as well.
func TestResolve_NarrowingMonotonicity(t *testing.T) {
	r := newTestResolver()

	terminalScoped := r.Resolve(Principal{
		ID: uuid.New(), Role: RoleUser,
		CompanyID: uuidPtr(companyA), DepartmentID: uuidPtr(deptGAOps), TerminalID: uuidPtr(terminalATL),
	})
	departmentScoped := r.Resolve(Principal{
		ID: uuid.New(), Role: RoleUser,
		CompanyID: uuidPtr(companyA), DepartmentID: uuidPtr(deptGAOps),
	})

	// records under terminal ATL, hydrated with their full chain
	samples := []ScopeKeys{
		{CompanyID: uuidPtr(companyA), DivisionID: uuidPtr(divisionSE), DepartmentID: uuidPtr(deptGAOps), TerminalID: uuidPtr(terminalATL)},
		{CompanyID: uuidPtr(companyA), DepartmentID: uuidPtr(deptGAOps), TerminalID: uuidPtr(terminalATL)},
	}
	for _, keys := range samples {
		if terminalScoped.Allows(keys) {
			assert.True(t, departmentScoped.Allows(keys), "department scope must contain its terminals' scope")
		}
	}
}

func TestResolve_InconsistentAssignmentNarrowestWins(t *testing.T) {
	r := newTestResolver()

	// department GA-OPS claims division SE, principal claims division NW
	scope := r.Resolve(Principal{
		ID:                   uuid.New(),
		Role:                 RoleDepartmentManager,
		CompanyID:            uuidPtr(companyA),
		DivisionID:           uuidPtr(divisionNW),
		DepartmentID:         uuidPtr(deptGAOps),
		DepartmentDivisionID: uuidPtr(divisionSE),
	})

	// request completes, scoped to the department only
	require.Equal(t, ScopeDepartment, scope.Kind)
	assert.Equal(t, deptGAOps, scope.DepartmentID)
	assert.False(t, scope.Allows(ScopeKeys{CompanyID: uuidPtr(companyA), DivisionID: uuidPtr(divisionNW)}))
}

func TestResolve_Idempotent(t *testing.T) {
	r := newTestResolver()
	p := Principal{
		ID: uuid.New(), Role: RoleDepartmentManager,
		CompanyID: uuidPtr(companyA), DivisionID: uuidPtr(divisionSE),
	}
	assert.Equal(t, r.Resolve(p), r.Resolve(p))
}

func TestAuthorize_CapabilityOverlay(t *testing.T) {
	r := newTestResolver()

	companyAdmin := Principal{ID: uuid.New(), Role: RoleCompanyAdmin, CompanyID: uuidPtr(companyA)}
	deptManager := Principal{ID: uuid.New(), Role: RoleDepartmentManager, CompanyID: uuidPtr(companyA), DepartmentID: uuidPtr(deptGAOps)}
	plainUser := Principal{ID: uuid.New(), Role: RoleUser, CompanyID: uuidPtr(companyA), TerminalID: uuidPtr(terminalATL)}

	// managing org units is for admins only; failure is Forbidden, not NotFound
	assert.Equal(t, Grant, r.Authorize(companyAdmin, OpManageOrg, ResourceDivision, nil))
	assert.Equal(t, DenyForbidden, r.Authorize(deptManager, OpManageOrg, ResourceDivision, nil))
	assert.Equal(t, DenyForbidden, r.Authorize(plainUser, OpManageOrg, ResourceDivision, nil))

	assert.Equal(t, Grant, r.Authorize(companyAdmin, OpManageUsers, ResourceUser, nil))
	assert.Equal(t, DenyForbidden, r.Authorize(deptManager, OpManageUsers, ResourceUser, nil))

	assert.Equal(t, Grant, r.Authorize(deptManager, OpManageFleet, ResourceLoad, nil))
	assert.Equal(t, DenyForbidden, r.Authorize(plainUser, OpManageFleet, ResourceLoad, nil))

	// reads are open to every role; scope decides the rest
	assert.Equal(t, Grant, r.Authorize(plainUser, OpRead, ResourceLoad, nil))
}

func TestAuthorize_CrossTenantReadIsNotFound(t *testing.T) {
	r := newTestResolver()
	companyAdmin := Principal{ID: uuid.New(), Role: RoleCompanyAdmin, CompanyID: uuidPtr(companyA)}

	loadInB := ScopeKeys{CompanyID: uuidPtr(companyB)}
	assert.Equal(t, DenyNotFound, r.Authorize(companyAdmin, OpRead, ResourceLoad, &loadInB))
}

func TestAuthorize_PostWritePlacementCheck(t *testing.T) {
	r := newTestResolver()
	// terminal-scoped manager may not create a load originating elsewhere
	manager := Principal{
		ID: uuid.New(), Role: RoleDepartmentManager,
		CompanyID: uuidPtr(companyA), DepartmentID: uuidPtr(deptGAOps), TerminalID: uuidPtr(terminalATL),
	}

	inScope := ScopeKeys{CompanyID: uuidPtr(companyA), DepartmentID: uuidPtr(deptGAOps), TerminalID: uuidPtr(terminalATL)}
	outOfScope := ScopeKeys{CompanyID: uuidPtr(companyA), DepartmentID: uuidPtr(deptGAOps), TerminalID: uuidPtr(terminalSAV)}

	assert.Equal(t, Grant, r.Authorize(manager, OpManageFleet, ResourceLoad, &inScope))
	assert.Equal(t, DenyNotFound, r.Authorize(manager, OpManageFleet, ResourceLoad, &outOfScope))
}

func TestRoleParsing(t *testing.T) {
	for _, valid := range []string{"system_admin", "company_admin", "department_manager", "user"} {
		role, ok := ParseRole(valid)
		assert.True(t, ok)
		assert.True(t, role.Valid())
	}
	_, ok := ParseRole("superuser")
	assert.False(t, ok)
	assert.False(t, Role("superuser").Can(OpRead))
}

func TestResolve_ScopeCarriesHydratedAncestors(t *testing.T) {
	r := newTestResolver()

	deptScoped := r.Resolve(Principal{
		ID: uuid.New(), Role: RoleDepartmentManager,
		CompanyID: uuidPtr(companyA), DepartmentID: uuidPtr(deptGAOps),
		DepartmentDivisionID: uuidPtr(divisionSE),
	})
	assert.Equal(t, divisionSE, deptScoped.DivisionID)

	terminalScoped := r.Resolve(Principal{
		ID: uuid.New(), Role: RoleUser,
		CompanyID: uuidPtr(companyA), TerminalID: uuidPtr(terminalATL),
		TerminalDepartmentID: uuidPtr(deptGAOps), TerminalDivisionID: uuidPtr(divisionSE),
	})
	assert.Equal(t, deptGAOps, terminalScoped.DepartmentID)
	assert.Equal(t, divisionSE, terminalScoped.DivisionID)
}

// Collections resolve ancestry through the scoping-chain subqueries, so a
// unit that shows up in a listing must also be fetchable directly.
func TestAuthorize_AncestorOrgUnitsReadable(t *testing.T) {
	r := newTestResolver()
	manager := Principal{
		ID: uuid.New(), Role: RoleDepartmentManager,
		CompanyID: uuidPtr(companyA), DepartmentID: uuidPtr(deptGAOps),
		DepartmentDivisionID: uuidPtr(divisionSE),
	}

	ownCompany := ScopeKeys{CompanyID: uuidPtr(companyA)}
	otherCompany := ScopeKeys{CompanyID: uuidPtr(companyB)}
	ownDivision := ScopeKeys{CompanyID: uuidPtr(companyA), DivisionID: uuidPtr(divisionSE)}
	siblingDivision := ScopeKeys{CompanyID: uuidPtr(companyA), DivisionID: uuidPtr(divisionNW)}

	assert.Equal(t, Grant, r.Authorize(manager, OpRead, ResourceCompany, &ownCompany))
	assert.Equal(t, DenyNotFound, r.Authorize(manager, OpRead, ResourceCompany, &otherCompany))
	assert.Equal(t, Grant, r.Authorize(manager, OpRead, ResourceDivision, &ownDivision))
	assert.Equal(t, DenyNotFound, r.Authorize(manager, OpRead, ResourceDivision, &siblingDivision))
}

func TestAuthorize_TerminalScopeSeesItsChain(t *testing.T) {
	r := newTestResolver()
	dispatcher := Principal{
		ID: uuid.New(), Role: RoleUser,
		CompanyID: uuidPtr(companyA), TerminalID: uuidPtr(terminalATL),
		TerminalDepartmentID: uuidPtr(deptGAOps), TerminalDivisionID: uuidPtr(divisionSE),
	}

	ownDept := ScopeKeys{CompanyID: uuidPtr(companyA), DivisionID: uuidPtr(divisionSE), DepartmentID: uuidPtr(deptGAOps)}
	siblingDept := ScopeKeys{CompanyID: uuidPtr(companyA), DivisionID: uuidPtr(divisionSE), DepartmentID: uuidPtr(deptFLOps)}
	ownDivision := ScopeKeys{CompanyID: uuidPtr(companyA), DivisionID: uuidPtr(divisionSE)}
	ownCompany := ScopeKeys{CompanyID: uuidPtr(companyA)}

	assert.Equal(t, Grant, r.Authorize(dispatcher, OpRead, ResourceDepartment, &ownDept))
	assert.Equal(t, DenyNotFound, r.Authorize(dispatcher, OpRead, ResourceDepartment, &siblingDept))
	assert.Equal(t, Grant, r.Authorize(dispatcher, OpRead, ResourceDivision, &ownDivision))
	assert.Equal(t, Grant, r.Authorize(dispatcher, OpRead, ResourceCompany, &ownCompany))
}

func TestAuthorize_AncestorUnitsAreReadOnly(t *testing.T) {
	r := newTestResolver()
	manager := Principal{
		ID: uuid.New(), Role: RoleDepartmentManager,
		CompanyID: uuidPtr(companyA), DepartmentID: uuidPtr(deptGAOps),
		DepartmentDivisionID: uuidPtr(divisionSE),
	}

	ownDivision := ScopeKeys{CompanyID: uuidPtr(companyA), DivisionID: uuidPtr(divisionSE)}
	require.Equal(t, Grant, r.Authorize(manager, OpRead, ResourceDivision, &ownDivision))
	// the capability passes (department managers manage fleet) but the
	// ancestor path never grants writes
	assert.Equal(t, DenyNotFound, r.Authorize(manager, OpManageFleet, ResourceDivision, &ownDivision))
}

func TestAuthorize_AnchoredRecordsAboveScopeStayHidden(t *testing.T) {
	r := newTestResolver()
	manager := Principal{
		ID: uuid.New(), Role: RoleDepartmentManager,
		CompanyID: uuidPtr(companyA), DepartmentID: uuidPtr(deptGAOps),
		DepartmentDivisionID: uuidPtr(divisionSE),
	}

	// a division-level driver shares its key shape with the division itself
	// but is not an org unit and stays outside a department scope
	divisionDriver := ScopeKeys{CompanyID: uuidPtr(companyA), DivisionID: uuidPtr(divisionSE)}
	assert.Equal(t, DenyNotFound, r.Authorize(manager, OpRead, ResourceDriver, &divisionDriver))
}

func TestAuthorize_UnhydratedAncestorFailsClosed(t *testing.T) {
	r := newTestResolver()
	// terminal assignment without the ancestry joins: the division above the
	// terminal is unknown and must not become visible
	dispatcher := Principal{
		ID: uuid.New(), Role: RoleUser,
		CompanyID: uuidPtr(companyA), TerminalID: uuidPtr(terminalATL),
	}

	division := ScopeKeys{CompanyID: uuidPtr(companyA), DivisionID: uuidPtr(divisionSE)}
	assert.Equal(t, DenyNotFound, r.Authorize(dispatcher, OpRead, ResourceDivision, &division))
	// the company is always known on a bound scope
	company := ScopeKeys{CompanyID: uuidPtr(companyA)}
	assert.Equal(t, Grant, r.Authorize(dispatcher, OpRead, ResourceCompany, &company))
}

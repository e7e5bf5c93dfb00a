package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"launch-tms/internal/authz"
	"launch-tms/internal/dto"
	"launch-tms/internal/entities"
	apperrors "launch-tms/pkg/errors"
)

func newUserFixture(t *testing.T, existing ...*entities.User) (UserServiceInterface, *fakeUserRepo) {
	t.Helper()
	repo := newFakeUserRepo(existing...)
	svc := NewUserService(repo, newOrgPlacementResolver(), authz.NewResolver(zap.NewNop()), zap.NewNop())
	return svc, repo
}

func TestCreateUser_PlacementHydratedAndScoped(t *testing.T) {
	svc, _ := newUserFixture(t)
	ctx := ctxWithPrincipal(authz.Principal{
		ID: uuid.New(), Role: authz.RoleCompanyAdmin, CompanyID: uuidPtr(companyA),
	})

	created, err := svc.CreateUser(ctx, dto.CreateUserDTO{
		Email: "new.dispatcher@example.com", Password: "longenough",
		FirstName: "Sam", LastName: "Hale", Role: string(authz.RoleUser),
		CompanyID: uuidPtr(companyA), TerminalID: uuidPtr(terminalATL),
	})
	require.NoError(t, err)
	require.NotNil(t, created.DivisionID)
	require.NotNil(t, created.DepartmentID)
	assert.Equal(t, divisionSE, *created.DivisionID)
	assert.Equal(t, deptGAOps, *created.DepartmentID)
	assert.Equal(t, "light", created.Theme)
	assert.True(t, created.IsActive)
	assert.NotEqual(t, "longenough", created.Password, "password must be stored hashed")
}

func TestCreateUser_OutsideCallerScopeIsNotFound(t *testing.T) {
	svc, _ := newUserFixture(t)

	// department manager of GA ops tries to create a company-wide admin
	ctx := ctxWithPrincipal(authz.Principal{
		ID: uuid.New(), Role: authz.RoleDepartmentManager, CompanyID: uuidPtr(companyA),
		DivisionID: uuidPtr(divisionSE), DepartmentID: uuidPtr(deptGAOps),
	})

	_, err := svc.CreateUser(ctx, dto.CreateUserDTO{
		Email: "x@example.com", Password: "longenough",
		FirstName: "A", LastName: "B", Role: string(authz.RoleUser),
		CompanyID: uuidPtr(companyA),
	})
	// department managers hold no user-management capability at all
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
}

func TestCreateUser_SystemAdminRules(t *testing.T) {
	svc, _ := newUserFixture(t)

	admin := ctxWithPrincipal(authz.Principal{ID: uuid.New(), Role: authz.RoleSystemAdmin})
	companyAdmin := ctxWithPrincipal(authz.Principal{
		ID: uuid.New(), Role: authz.RoleCompanyAdmin, CompanyID: uuidPtr(companyA),
	})

	// org assignment on a system_admin account is contradictory
	_, err := svc.CreateUser(admin, dto.CreateUserDTO{
		Email: "op@example.com", Password: "longenough",
		FirstName: "Op", LastName: "Erator", Role: string(authz.RoleSystemAdmin),
		CompanyID: uuidPtr(companyA),
	})
	requireBadRequest(t, err)

	// a tenant-scoped caller cannot mint platform operators
	_, err = svc.CreateUser(companyAdmin, dto.CreateUserDTO{
		Email: "op@example.com", Password: "longenough",
		FirstName: "Op", LastName: "Erator", Role: string(authz.RoleSystemAdmin),
	})
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	created, err := svc.CreateUser(admin, dto.CreateUserDTO{
		Email: "op@example.com", Password: "longenough",
		FirstName: "Op", LastName: "Erator", Role: string(authz.RoleSystemAdmin),
	})
	require.NoError(t, err)
	assert.Nil(t, created.CompanyID)
}

func TestCreateUser_NonAdminRoleRequiresCompany(t *testing.T) {
	svc, _ := newUserFixture(t)
	ctx := ctxWithPrincipal(authz.Principal{ID: uuid.New(), Role: authz.RoleSystemAdmin})

	_, err := svc.CreateUser(ctx, dto.CreateUserDTO{
		Email: "y@example.com", Password: "longenough",
		FirstName: "A", LastName: "B", Role: string(authz.RoleUser),
	})
	requireBadRequest(t, err)
}

func TestDeleteUser_SelfDeleteBlocked(t *testing.T) {
	callerID := uuid.New()
	caller := &entities.User{
		ID: callerID, Email: "admin@example.com", Role: string(authz.RoleCompanyAdmin),
		CompanyID: uuidPtr(companyA), IsActive: true,
	}
	svc, _ := newUserFixture(t, caller)
	ctx := ctxWithPrincipal(caller.Principal())

	err := svc.DeleteUser(ctx, callerID)
	requireBadRequest(t, err)
}

func TestFindUser_CrossCompanyIsNotFound(t *testing.T) {
	other := &entities.User{
		ID: uuid.New(), Email: "other@example.com", Role: string(authz.RoleUser),
		CompanyID: uuidPtr(companyB), IsActive: true,
	}
	svc, _ := newUserFixture(t, other)
	ctx := ctxWithPrincipal(authz.Principal{
		ID: uuid.New(), Role: authz.RoleCompanyAdmin, CompanyID: uuidPtr(companyA),
	})

	_, err := svc.FindUser(ctx, other.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestUpdateUser_PromotionToSystemAdminNeedsFullScope(t *testing.T) {
	target := &entities.User{
		ID: uuid.New(), Email: "driver@example.com", Role: string(authz.RoleUser),
		CompanyID: uuidPtr(companyA), IsActive: true,
	}
	svc, _ := newUserFixture(t, target)

	tenantAdmin := ctxWithPrincipal(authz.Principal{
		ID: uuid.New(), Role: authz.RoleCompanyAdmin, CompanyID: uuidPtr(companyA),
	})
	_, err := svc.UpdateUser(tenantAdmin, target.ID, dto.UpdateUserDTO{
		Role: strP(string(authz.RoleSystemAdmin)),
	})
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
}

func TestUpdateUser_SelfPromotionBlocked(t *testing.T) {
	callerID := uuid.New()
	caller := &entities.User{
		ID: callerID, Email: "admin@example.com", Role: string(authz.RoleCompanyAdmin),
		CompanyID: uuidPtr(companyA), IsActive: true,
	}
	svc, _ := newUserFixture(t, caller)
	ctx := ctxWithPrincipal(caller.Principal())

	_, err := svc.UpdateUser(ctx, callerID, dto.UpdateUserDTO{
		Role: strP(string(authz.RoleSystemAdmin)),
	})
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
}

func TestUpdateUser_PromotedOperatorCannotKeepAssignment(t *testing.T) {
	target := &entities.User{
		ID: uuid.New(), Email: "manager@example.com", Role: string(authz.RoleCompanyAdmin),
		CompanyID: uuidPtr(companyA), IsActive: true,
	}
	svc, _ := newUserFixture(t, target)
	operator := ctxWithPrincipal(authz.Principal{ID: uuid.New(), Role: authz.RoleSystemAdmin})

	// the target still carries its company; the promotion must not produce
	// an operator row bound to a tenant
	_, err := svc.UpdateUser(operator, target.ID, dto.UpdateUserDTO{
		Role: strP(string(authz.RoleSystemAdmin)),
	})
	requireBadRequest(t, err)
}

func TestUpdateUser_DemotedOperatorNeedsCompany(t *testing.T) {
	target := &entities.User{
		ID: uuid.New(), Email: "operator@example.com", Role: string(authz.RoleSystemAdmin),
		IsActive: true,
	}
	svc, _ := newUserFixture(t, target)
	operator := ctxWithPrincipal(authz.Principal{ID: uuid.New(), Role: authz.RoleSystemAdmin})

	_, err := svc.UpdateUser(operator, target.ID, dto.UpdateUserDTO{
		Role: strP(string(authz.RoleCompanyAdmin)),
	})
	requireBadRequest(t, err)

	updated, err := svc.UpdateUser(operator, target.ID, dto.UpdateUserDTO{
		Role:      strP(string(authz.RoleCompanyAdmin)),
		CompanyID: uuidPtr(companyA),
	})
	require.NoError(t, err)
	assert.Equal(t, string(authz.RoleCompanyAdmin), updated.Role)
	assert.Equal(t, companyA, *updated.CompanyID)
}

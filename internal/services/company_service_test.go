package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"launch-tms/internal/authz"
	"launch-tms/internal/dto"
	"launch-tms/internal/entities"
	apperrors "launch-tms/pkg/errors"
	"launch-tms/pkg/types"
)

type fakeCompanyRepo struct {
	companies map[uuid.UUID]*entities.Company
}

func (f *fakeCompanyRepo) GetCompanies(ctx context.Context, scope authz.Scope, filter types.Filter) ([]entities.Company, uint64, error) {
	return nil, 0, nil
}

func (f *fakeCompanyRepo) FindCompany(ctx context.Context, id uuid.UUID) (*entities.Company, error) {
	if c, ok := f.companies[id]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, apperrors.ErrNotFound
}

func (f *fakeCompanyRepo) CreateCompany(ctx context.Context, c *entities.Company) (*entities.Company, error) {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	f.companies[c.ID] = c
	return c, nil
}

func (f *fakeCompanyRepo) UpdateCompany(ctx context.Context, c *entities.Company) (*entities.Company, error) {
	if _, ok := f.companies[c.ID]; !ok {
		return nil, apperrors.ErrNotFound
	}
	f.companies[c.ID] = c
	return c, nil
}

func (f *fakeCompanyRepo) DeleteCompany(ctx context.Context, id uuid.UUID) error {
	if _, ok := f.companies[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(f.companies, id)
	return nil
}

func newCompanyFixture(existing ...*entities.Company) (CompanyServiceInterface, *fakeCompanyRepo) {
	repo := &fakeCompanyRepo{companies: make(map[uuid.UUID]*entities.Company)}
	for _, c := range existing {
		repo.companies[c.ID] = c
	}
	return NewCompanyService(repo, authz.NewResolver(zap.NewNop()), zap.NewNop()), repo
}

func TestCreateCompany_SystemAdminOnly(t *testing.T) {
	svc, _ := newCompanyFixture()

	// a company row sits outside any tenant scope, so even a company admin
	// with full org capability cannot create one
	ctx := ctxWithPrincipal(authz.Principal{
		ID: uuid.New(), Role: authz.RoleCompanyAdmin, CompanyID: uuidPtr(companyA),
	})
	_, err := svc.CreateCompany(ctx, dto.CreateCompanyDTO{Name: "New Carrier", Code: "NEWC"})
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	admin := ctxWithPrincipal(authz.Principal{ID: uuid.New(), Role: authz.RoleSystemAdmin})
	created, err := svc.CreateCompany(admin, dto.CreateCompanyDTO{Name: "New Carrier", Code: "NEWC"})
	require.NoError(t, err)
	assert.True(t, created.IsActive)
	assert.Equal(t, "NEWC", created.Code)
}

func TestCreateCompany_NoCapabilityIsForbidden(t *testing.T) {
	svc, _ := newCompanyFixture()
	ctx := ctxWithPrincipal(authz.Principal{
		ID: uuid.New(), Role: authz.RoleUser, CompanyID: uuidPtr(companyA),
	})

	_, err := svc.CreateCompany(ctx, dto.CreateCompanyDTO{Name: "X", Code: "X"})
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
}

func TestFindCompany_OutOfScopeIsNotFound(t *testing.T) {
	existing := &entities.Company{ID: companyB, Name: "Other Carrier", Code: "OTH", IsActive: true}
	svc, _ := newCompanyFixture(existing)

	ctx := ctxWithPrincipal(authz.Principal{
		ID: uuid.New(), Role: authz.RoleCompanyAdmin, CompanyID: uuidPtr(companyA),
	})
	_, err := svc.FindCompany(ctx, companyB)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	own := &entities.Company{ID: companyA, Name: "Own Carrier", Code: "OWN", IsActive: true}
	svc, _ = newCompanyFixture(own)
	got, err := svc.FindCompany(ctx, companyA)
	require.NoError(t, err)
	assert.Equal(t, "OWN", got.Code)
}

// The company listing includes the principal's own company at every scope
// level, so fetching it by id must succeed for scoped principals too.
func TestFindCompany_OwnCompanyVisibleToScopedPrincipals(t *testing.T) {
	own := &entities.Company{ID: companyA, Name: "Own Carrier", Code: "OWN", IsActive: true}
	other := &entities.Company{ID: companyB, Name: "Other Carrier", Code: "OTH", IsActive: true}
	svc, _ := newCompanyFixture(own, other)

	deptManager := ctxWithPrincipal(authz.Principal{
		ID: uuid.New(), Role: authz.RoleDepartmentManager,
		CompanyID: uuidPtr(companyA), DepartmentID: uuidPtr(deptGAOps),
		DepartmentDivisionID: uuidPtr(divisionSE),
	})
	got, err := svc.FindCompany(deptManager, companyA)
	require.NoError(t, err)
	assert.Equal(t, "OWN", got.Code)
	_, err = svc.FindCompany(deptManager, companyB)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	dispatcher := ctxWithPrincipal(authz.Principal{
		ID: uuid.New(), Role: authz.RoleUser,
		CompanyID: uuidPtr(companyA), TerminalID: uuidPtr(terminalATL),
		TerminalDepartmentID: uuidPtr(deptGAOps), TerminalDivisionID: uuidPtr(divisionSE),
	})
	got, err = svc.FindCompany(dispatcher, companyA)
	require.NoError(t, err)
	assert.Equal(t, "OWN", got.Code)
}

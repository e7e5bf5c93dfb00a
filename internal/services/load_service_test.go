package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"launch-tms/internal/authz"
	"launch-tms/internal/dto"
	"launch-tms/internal/entities"
	apperrors "launch-tms/pkg/errors"
)

func strP(s string) *string { return &s }

func newLoadFixture(t *testing.T) (LoadServiceInterface, *fakeLoadRepo, uuid.UUID) {
	t.Helper()
	repo := &fakeLoadRepo{loads: make(map[uuid.UUID]*entities.Load)}
	svc := NewLoadService(repo, newOrgPlacementResolver(), authz.NewResolver(zap.NewNop()), zap.NewNop())

	load := &entities.Load{
		ID:               uuid.New(),
		LoadNumber:       "L-1001",
		Status:           entities.LoadStatusAssigned,
		PickupDate:       time.Now(),
		DeliveryDate:     time.Now().Add(48 * time.Hour),
		CompanyID:        companyA,
		DivisionID:       uuidPtr(divisionSE),
		DepartmentID:     uuidPtr(deptGAOps),
		OriginTerminalID: uuidPtr(terminalATL),
	}
	repo.loads[load.ID] = load
	return svc, repo, load.ID
}

func TestCanTransitionLoad(t *testing.T) {
	cases := []struct {
		from, to string
		ok       bool
	}{
		{entities.LoadStatusPending, entities.LoadStatusAssigned, true},
		{entities.LoadStatusPending, entities.LoadStatusCancelled, true},
		{entities.LoadStatusPending, entities.LoadStatusInTransit, false},
		{entities.LoadStatusAssigned, entities.LoadStatusInTransit, true},
		{entities.LoadStatusAssigned, entities.LoadStatusPending, true},
		{entities.LoadStatusInTransit, entities.LoadStatusDelivered, true},
		{entities.LoadStatusInTransit, entities.LoadStatusPending, false},
		{entities.LoadStatusDelivered, entities.LoadStatusPending, false},
		{entities.LoadStatusCancelled, entities.LoadStatusAssigned, false},
		{entities.LoadStatusDelivered, entities.LoadStatusDelivered, true},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.ok, canTransitionLoad(tc.from, tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestUpdateLoad_StatusChangeRecordsEvent(t *testing.T) {
	svc, repo, loadID := newLoadFixture(t)
	ctx := ctxWithPrincipal(authz.Principal{
		ID: uuid.New(), Role: authz.RoleCompanyAdmin, CompanyID: uuidPtr(companyA),
	})

	updated, err := svc.UpdateLoad(ctx, loadID, dto.UpdateLoadDTO{Status: strP(entities.LoadStatusInTransit)})
	require.NoError(t, err)
	assert.Equal(t, entities.LoadStatusInTransit, updated.Status)

	require.Len(t, repo.events, 1)
	assert.Equal(t, loadID, repo.events[0].LoadID)
	assert.Equal(t, entities.LoadEventUpdate, repo.events[0].EventType)
	assert.Contains(t, repo.events[0].Description, "assigned")
	assert.Contains(t, repo.events[0].Description, "in_transit")
}

func TestUpdateLoad_EventWriteFailureDoesNotFailUpdate(t *testing.T) {
	svc, repo, loadID := newLoadFixture(t)
	repo.failEventCreate = true
	ctx := ctxWithPrincipal(authz.Principal{
		ID: uuid.New(), Role: authz.RoleCompanyAdmin, CompanyID: uuidPtr(companyA),
	})

	updated, err := svc.UpdateLoad(ctx, loadID, dto.UpdateLoadDTO{Status: strP(entities.LoadStatusInTransit)})
	require.NoError(t, err)
	assert.Equal(t, entities.LoadStatusInTransit, updated.Status)
	assert.Empty(t, repo.events)
}

func TestUpdateLoad_InvalidTransition(t *testing.T) {
	svc, _, loadID := newLoadFixture(t)
	ctx := ctxWithPrincipal(authz.Principal{
		ID: uuid.New(), Role: authz.RoleCompanyAdmin, CompanyID: uuidPtr(companyA),
	})

	_, err := svc.UpdateLoad(ctx, loadID, dto.UpdateLoadDTO{Status: strP(entities.LoadStatusDelivered)})
	require.Error(t, err)
	httpErr, ok := err.(*apperrors.HttpError)
	require.True(t, ok)
	assert.Equal(t, 400, httpErr.Code)
}

func TestFindLoad_OutOfScopeIsNotFound(t *testing.T) {
	svc, _, loadID := newLoadFixture(t)

	// same capability level, different company: existence must not leak
	ctx := ctxWithPrincipal(authz.Principal{
		ID: uuid.New(), Role: authz.RoleCompanyAdmin, CompanyID: uuidPtr(companyB),
	})
	_, err := svc.FindLoad(ctx, loadID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestUpdateLoad_CapabilityBeforeScope(t *testing.T) {
	svc, _, loadID := newLoadFixture(t)

	// a plain user inside the terminal can read but not mutate
	ctx := ctxWithPrincipal(authz.Principal{
		ID: uuid.New(), Role: authz.RoleUser, CompanyID: uuidPtr(companyA),
		DivisionID: uuidPtr(divisionSE), DepartmentID: uuidPtr(deptGAOps), TerminalID: uuidPtr(terminalATL),
	})
	_, err := svc.UpdateLoad(ctx, loadID, dto.UpdateLoadDTO{Notes: strP("reweighed")})
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	_, err = svc.FindLoad(ctx, loadID)
	assert.NoError(t, err)
}

func TestDeleteLoad_InTransitBlocked(t *testing.T) {
	svc, repo, loadID := newLoadFixture(t)
	repo.loads[loadID].Status = entities.LoadStatusInTransit
	ctx := ctxWithPrincipal(authz.Principal{
		ID: uuid.New(), Role: authz.RoleCompanyAdmin, CompanyID: uuidPtr(companyA),
	})

	err := svc.DeleteLoad(ctx, loadID)
	require.Error(t, err)
	httpErr, ok := err.(*apperrors.HttpError)
	require.True(t, ok)
	assert.Equal(t, 400, httpErr.Code)
}

func TestCreateLoad_DeliveryBeforePickupRejected(t *testing.T) {
	svc, _, _ := newLoadFixture(t)
	ctx := ctxWithPrincipal(authz.Principal{
		ID: uuid.New(), Role: authz.RoleCompanyAdmin, CompanyID: uuidPtr(companyA),
	})

	now := time.Now()
	_, err := svc.CreateLoad(ctx, dto.CreateLoadDTO{
		LoadNumber: "L-2001", Shipper: "Acme", Receiver: "Summit",
		PickupDate: now, DeliveryDate: now.Add(-time.Hour),
		CompanyID: companyA, OriginTerminalID: uuidPtr(terminalATL),
	})
	require.Error(t, err)
	httpErr, ok := err.(*apperrors.HttpError)
	require.True(t, ok)
	assert.Equal(t, 400, httpErr.Code)
}

func TestCreateLoad_HydratesPlacementFromTerminal(t *testing.T) {
	svc, _, _ := newLoadFixture(t)
	ctx := ctxWithPrincipal(authz.Principal{
		ID: uuid.New(), Role: authz.RoleCompanyAdmin, CompanyID: uuidPtr(companyA),
	})

	now := time.Now()
	created, err := svc.CreateLoad(ctx, dto.CreateLoadDTO{
		LoadNumber: "L-2002", Shipper: "Acme", Receiver: "Summit",
		PickupDate: now, DeliveryDate: now.Add(24 * time.Hour),
		CompanyID: companyA, OriginTerminalID: uuidPtr(terminalATL),
	})
	require.NoError(t, err)
	require.NotNil(t, created.DivisionID)
	require.NotNil(t, created.DepartmentID)
	assert.Equal(t, divisionSE, *created.DivisionID)
	assert.Equal(t, deptGAOps, *created.DepartmentID)
	assert.Equal(t, entities.LoadStatusPending, created.Status)
}

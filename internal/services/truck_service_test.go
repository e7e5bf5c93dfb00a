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
	apperrors "launch-tms/pkg/errors"
	"launch-tms/pkg/types"
)

type fakeTruckRepo struct {
	trucks  map[uuid.UUID]*entities.Truck
	records []entities.MaintenanceRecord
}

func (f *fakeTruckRepo) GetTrucks(ctx context.Context, scope authz.Scope, filter types.Filter) ([]entities.Truck, uint64, error) {
	return nil, 0, nil
}

func (f *fakeTruckRepo) FindTruck(ctx context.Context, id uuid.UUID) (*entities.Truck, error) {
	if t, ok := f.trucks[id]; ok {
		cp := *t
		return &cp, nil
	}
	return nil, apperrors.ErrNotFound
}

func (f *fakeTruckRepo) CreateTruck(ctx context.Context, t *entities.Truck) (*entities.Truck, error) {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	f.trucks[t.ID] = t
	return t, nil
}

func (f *fakeTruckRepo) UpdateTruck(ctx context.Context, t *entities.Truck) (*entities.Truck, error) {
	if _, ok := f.trucks[t.ID]; !ok {
		return nil, apperrors.ErrNotFound
	}
	f.trucks[t.ID] = t
	return t, nil
}

func (f *fakeTruckRepo) DeleteTruck(ctx context.Context, id uuid.UUID) error {
	if _, ok := f.trucks[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(f.trucks, id)
	return nil
}

func (f *fakeTruckRepo) GetMaintenanceRecords(ctx context.Context, truckID uuid.UUID) ([]entities.MaintenanceRecord, error) {
	var out []entities.MaintenanceRecord
	for _, m := range f.records {
		if m.TruckID == truckID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeTruckRepo) CreateMaintenanceRecord(ctx context.Context, m *entities.MaintenanceRecord) (*entities.MaintenanceRecord, error) {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	f.records = append(f.records, *m)
	return m, nil
}

func newTruckFixture(existing ...*entities.Truck) (TruckServiceInterface, *fakeTruckRepo) {
	repo := &fakeTruckRepo{trucks: make(map[uuid.UUID]*entities.Truck)}
	for _, t := range existing {
		repo.trucks[t.ID] = t
	}
	svc := NewTruckService(repo, newOrgPlacementResolver(), authz.NewResolver(zap.NewNop()), zap.NewNop())
	return svc, repo
}

func newTruckAtTerminalATL() *entities.Truck {
	return &entities.Truck{
		ID: uuid.New(), Make: "Freightliner", Model: "Cascadia", Year: 2022,
		LicensePlate: "GA-1234", VIN: "1FUJGLDR0NLAA1234", Status: entities.VehicleStatusAvailable,
		Mileage:   120000,
		CompanyID: companyA, DivisionID: uuidPtr(divisionSE),
		DepartmentID: uuidPtr(deptGAOps), HomeTerminalID: uuidPtr(terminalATL),
	}
}

func TestCreateMaintenanceRecord_ScopedThroughTruck(t *testing.T) {
	truck := newTruckAtTerminalATL()
	svc, repo := newTruckFixture(truck)

	manager := ctxWithPrincipal(authz.Principal{
		ID: uuid.New(), Role: authz.RoleDepartmentManager,
		CompanyID: uuidPtr(companyA), DepartmentID: uuidPtr(deptGAOps),
	})
	created, err := svc.CreateMaintenanceRecord(manager, truck.ID, dto.CreateMaintenanceRecordDTO{
		MaintenanceType: entities.MaintenanceTypeRoutine,
		Description:     "oil change and filter",
		PerformedBy:     "Peach State Truck Centers",
		PerformedDate:   time.Now(),
		Cost:            412.50,
	})
	require.NoError(t, err)
	assert.Equal(t, truck.ID, created.TruckID)
	assert.Len(t, repo.records, 1)

	records, err := svc.GetMaintenanceRecords(manager, truck.ID)
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestCreateMaintenanceRecord_OutOfScopeTruckIsNotFound(t *testing.T) {
	truck := newTruckAtTerminalATL()
	svc, _ := newTruckFixture(truck)

	otherCompany := ctxWithPrincipal(authz.Principal{
		ID: uuid.New(), Role: authz.RoleCompanyAdmin, CompanyID: uuidPtr(companyB),
	})
	_, err := svc.CreateMaintenanceRecord(otherCompany, truck.ID, dto.CreateMaintenanceRecordDTO{
		MaintenanceType: entities.MaintenanceTypeRepair,
		Description:     "brake replacement",
		PerformedBy:     "shop",
		PerformedDate:   time.Now(),
	})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	_, err = svc.GetMaintenanceRecords(otherCompany, truck.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestCreateMaintenanceRecord_ReadOnlyRoleForbidden(t *testing.T) {
	truck := newTruckAtTerminalATL()
	svc, _ := newTruckFixture(truck)

	dispatcher := ctxWithPrincipal(authz.Principal{
		ID: uuid.New(), Role: authz.RoleUser,
		CompanyID: uuidPtr(companyA), TerminalID: uuidPtr(terminalATL),
	})
	_, err := svc.CreateMaintenanceRecord(dispatcher, truck.ID, dto.CreateMaintenanceRecordDTO{
		MaintenanceType: entities.MaintenanceTypeInspection,
		Description:     "annual DOT inspection",
		PerformedBy:     "shop",
		PerformedDate:   time.Now(),
	})
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	// reading the history stays open to the terminal's own users
	_, err = svc.GetMaintenanceRecords(dispatcher, truck.ID)
	assert.NoError(t, err)
}

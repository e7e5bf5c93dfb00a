package services

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"launch-tms/internal/authz"
	"launch-tms/internal/dto"
	"launch-tms/internal/entities"
	"launch-tms/internal/repositories"
	"launch-tms/pkg/types"
	"launch-tms/pkg/utils"
)

type TruckServiceInterface interface {
	GetTrucks(ctx context.Context, filter types.Filter) ([]entities.Truck, uint64, error)
	FindTruck(ctx context.Context, id uuid.UUID) (*entities.Truck, error)
	CreateTruck(ctx context.Context, payload dto.CreateTruckDTO) (*entities.Truck, error)
	UpdateTruck(ctx context.Context, id uuid.UUID, payload dto.UpdateTruckDTO) (*entities.Truck, error)
	DeleteTruck(ctx context.Context, id uuid.UUID) error
	GetMaintenanceRecords(ctx context.Context, truckID uuid.UUID) ([]entities.MaintenanceRecord, error)
	CreateMaintenanceRecord(ctx context.Context, truckID uuid.UUID, payload dto.CreateMaintenanceRecordDTO) (*entities.MaintenanceRecord, error)
}

type TruckService struct {
	repo      repositories.TruckRepositoryInterface
	placement *PlacementResolver
	resolver  *authz.Resolver
	logger    *zap.Logger
}

func NewTruckService(
	repo repositories.TruckRepositoryInterface,
	placement *PlacementResolver,
	resolver *authz.Resolver,
	logger *zap.Logger,
) TruckServiceInterface {
	return &TruckService{repo: repo, placement: placement, resolver: resolver, logger: logger}
}

func (s *TruckService) GetTrucks(ctx context.Context, filter types.Filter) ([]entities.Truck, uint64, error) {
	p, err := utils.GetPrincipalFromCtx(ctx)
	if err != nil {
		return nil, 0, err
	}
	if d := s.resolver.Authorize(p, authz.OpRead, authz.ResourceTruck, nil); d != authz.Grant {
		return nil, 0, decisionError(d)
	}
	return s.repo.GetTrucks(ctx, s.resolver.Resolve(p), filter)
}

func (s *TruckService) FindTruck(ctx context.Context, id uuid.UUID) (*entities.Truck, error) {
	p, err := utils.GetPrincipalFromCtx(ctx)
	if err != nil {
		return nil, err
	}
	truck, err := s.repo.FindTruck(ctx, id)
	if err != nil {
		return nil, err
	}
	keys := truck.ScopeKeys()
	if d := s.resolver.Authorize(p, authz.OpRead, authz.ResourceTruck, &keys); d != authz.Grant {
		return nil, decisionError(d)
	}
	return truck, nil
}

func (s *TruckService) CreateTruck(ctx context.Context, payload dto.CreateTruckDTO) (*entities.Truck, error) {
	p, err := utils.GetPrincipalFromCtx(ctx)
	if err != nil {
		return nil, err
	}
	pl, err := s.placement.resolve(ctx, payload.CompanyID, payload.DivisionID, payload.DepartmentID, payload.HomeTerminalID)
	if err != nil {
		return nil, err
	}
	keys := pl.scopeKeys()
	if d := s.resolver.Authorize(p, authz.OpManageFleet, authz.ResourceTruck, &keys); d != authz.Grant {
		return nil, decisionError(d)
	}

	status := payload.Status
	if status == "" {
		status = entities.VehicleStatusAvailable
	}
	truck := &entities.Truck{
		Make:               payload.Make,
		Model:              payload.Model,
		Year:               payload.Year,
		LicensePlate:       payload.LicensePlate,
		VIN:                payload.VIN,
		Status:             status,
		Mileage:            payload.Mileage,
		NextMaintenanceDue: payload.NextMaintenanceDue.Ptr(),
		RegistrationExpiry: payload.RegistrationExpiry.Ptr(),
		InsuranceExpiry:    payload.InsuranceExpiry.Ptr(),
		CompanyID:          pl.CompanyID,
		DivisionID:         pl.DivisionID,
		DepartmentID:       pl.DepartmentID,
		HomeTerminalID:     pl.TerminalID,
	}
	created, err := s.repo.CreateTruck(ctx, truck)
	if err != nil {
		return nil, err
	}
	s.logger.Info("truck created",
		zap.String("truck_id", created.ID.String()),
		zap.String("vin", created.VIN),
		zap.String("created_by", p.ID.String()),
	)
	return created, nil
}

func (s *TruckService) UpdateTruck(ctx context.Context, id uuid.UUID, payload dto.UpdateTruckDTO) (*entities.Truck, error) {
	p, err := utils.GetPrincipalFromCtx(ctx)
	if err != nil {
		return nil, err
	}
	truck, err := s.repo.FindTruck(ctx, id)
	if err != nil {
		return nil, err
	}
	keys := truck.ScopeKeys()
	if d := s.resolver.Authorize(p, authz.OpManageFleet, authz.ResourceTruck, &keys); d != authz.Grant {
		return nil, decisionError(d)
	}

	if payload.Make != nil {
		truck.Make = *payload.Make
	}
	if payload.Model != nil {
		truck.Model = *payload.Model
	}
	if payload.Year != nil {
		truck.Year = *payload.Year
	}
	if payload.LicensePlate != nil {
		truck.LicensePlate = *payload.LicensePlate
	}
	if payload.VIN != nil {
		truck.VIN = *payload.VIN
	}
	if payload.Status != nil {
		truck.Status = *payload.Status
	}
	if payload.Mileage != nil {
		truck.Mileage = *payload.Mileage
	}
	if payload.NextMaintenanceDue.Valid {
		truck.NextMaintenanceDue = payload.NextMaintenanceDue.Ptr()
	}
	if payload.RegistrationExpiry.Valid {
		truck.RegistrationExpiry = payload.RegistrationExpiry.Ptr()
	}
	if payload.InsuranceExpiry.Valid {
		truck.InsuranceExpiry = payload.InsuranceExpiry.Ptr()
	}
	if payload.AssignedDriverID != nil {
		truck.AssignedDriverID = payload.AssignedDriverID
	}

	if payload.DivisionID != nil || payload.DepartmentID != nil || payload.HomeTerminalID != nil {
		pl, err := s.placement.resolve(ctx, truck.CompanyID, payload.DivisionID, payload.DepartmentID, payload.HomeTerminalID)
		if err != nil {
			return nil, err
		}
		newKeys := pl.scopeKeys()
		if d := s.resolver.Authorize(p, authz.OpManageFleet, authz.ResourceTruck, &newKeys); d != authz.Grant {
			return nil, decisionError(d)
		}
		truck.DivisionID = pl.DivisionID
		truck.DepartmentID = pl.DepartmentID
		truck.HomeTerminalID = pl.TerminalID
	}

	return s.repo.UpdateTruck(ctx, truck)
}

func (s *TruckService) DeleteTruck(ctx context.Context, id uuid.UUID) error {
	p, err := utils.GetPrincipalFromCtx(ctx)
	if err != nil {
		return err
	}
	truck, err := s.repo.FindTruck(ctx, id)
	if err != nil {
		return err
	}
	keys := truck.ScopeKeys()
	if d := s.resolver.Authorize(p, authz.OpManageFleet, authz.ResourceTruck, &keys); d != authz.Grant {
		return decisionError(d)
	}
	s.logger.Info("truck deleted",
		zap.String("truck_id", id.String()),
		zap.String("deleted_by", p.ID.String()),
	)
	return s.repo.DeleteTruck(ctx, id)
}

func (s *TruckService) GetMaintenanceRecords(ctx context.Context, truckID uuid.UUID) ([]entities.MaintenanceRecord, error) {
	p, err := utils.GetPrincipalFromCtx(ctx)
	if err != nil {
		return nil, err
	}
	truck, err := s.repo.FindTruck(ctx, truckID)
	if err != nil {
		return nil, err
	}
	keys := truck.ScopeKeys()
	if d := s.resolver.Authorize(p, authz.OpRead, authz.ResourceTruck, &keys); d != authz.Grant {
		return nil, decisionError(d)
	}
	return s.repo.GetMaintenanceRecords(ctx, truckID)
}

func (s *TruckService) CreateMaintenanceRecord(ctx context.Context, truckID uuid.UUID, payload dto.CreateMaintenanceRecordDTO) (*entities.MaintenanceRecord, error) {
	p, err := utils.GetPrincipalFromCtx(ctx)
	if err != nil {
		return nil, err
	}
	truck, err := s.repo.FindTruck(ctx, truckID)
	if err != nil {
		return nil, err
	}
	keys := truck.ScopeKeys()
	if d := s.resolver.Authorize(p, authz.OpManageFleet, authz.ResourceTruck, &keys); d != authz.Grant {
		return nil, decisionError(d)
	}

	record := &entities.MaintenanceRecord{
		TruckID:          truckID,
		MaintenanceType:  payload.MaintenanceType,
		Description:      payload.Description,
		PerformedBy:      payload.PerformedBy,
		PerformedDate:    payload.PerformedDate,
		MileageAtService: payload.MileageAtService,
		Cost:             payload.Cost,
		PartsCost:        payload.PartsCost,
		LaborCost:        payload.LaborCost,
		LaborHours:       payload.LaborHours,
		Notes:            payload.Notes,
	}
	return s.repo.CreateMaintenanceRecord(ctx, record)
}

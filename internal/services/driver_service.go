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

type DriverServiceInterface interface {
	GetDrivers(ctx context.Context, filter types.Filter) ([]entities.Driver, uint64, error)
	FindDriver(ctx context.Context, id uuid.UUID) (*entities.Driver, error)
	CreateDriver(ctx context.Context, payload dto.CreateDriverDTO) (*entities.Driver, error)
	UpdateDriver(ctx context.Context, id uuid.UUID, payload dto.UpdateDriverDTO) (*entities.Driver, error)
	DeleteDriver(ctx context.Context, id uuid.UUID) error
}

type DriverService struct {
	repo      repositories.DriverRepositoryInterface
	placement *PlacementResolver
	resolver  *authz.Resolver
	logger    *zap.Logger
}

func NewDriverService(
	repo repositories.DriverRepositoryInterface,
	placement *PlacementResolver,
	resolver *authz.Resolver,
	logger *zap.Logger,
) DriverServiceInterface {
	return &DriverService{repo: repo, placement: placement, resolver: resolver, logger: logger}
}

func (s *DriverService) GetDrivers(ctx context.Context, filter types.Filter) ([]entities.Driver, uint64, error) {
	p, err := utils.GetPrincipalFromCtx(ctx)
	if err != nil {
		return nil, 0, err
	}
	if d := s.resolver.Authorize(p, authz.OpRead, authz.ResourceDriver, nil); d != authz.Grant {
		return nil, 0, decisionError(d)
	}
	return s.repo.GetDrivers(ctx, s.resolver.Resolve(p), filter)
}

func (s *DriverService) FindDriver(ctx context.Context, id uuid.UUID) (*entities.Driver, error) {
	p, err := utils.GetPrincipalFromCtx(ctx)
	if err != nil {
		return nil, err
	}
	driver, err := s.repo.FindDriver(ctx, id)
	if err != nil {
		return nil, err
	}
	keys := driver.ScopeKeys()
	if d := s.resolver.Authorize(p, authz.OpRead, authz.ResourceDriver, &keys); d != authz.Grant {
		return nil, decisionError(d)
	}
	return driver, nil
}

func (s *DriverService) CreateDriver(ctx context.Context, payload dto.CreateDriverDTO) (*entities.Driver, error) {
	p, err := utils.GetPrincipalFromCtx(ctx)
	if err != nil {
		return nil, err
	}
	pl, err := s.placement.resolve(ctx, payload.CompanyID, payload.DivisionID, payload.DepartmentID, payload.HomeTerminalID)
	if err != nil {
		return nil, err
	}
	keys := pl.scopeKeys()
	if d := s.resolver.Authorize(p, authz.OpManageFleet, authz.ResourceDriver, &keys); d != authz.Grant {
		return nil, decisionError(d)
	}

	status := payload.Status
	if status == "" {
		status = entities.DriverStatusActive
	}
	driver := &entities.Driver{
		FirstName:             payload.FirstName,
		LastName:              payload.LastName,
		Email:                 payload.Email,
		Phone:                 payload.Phone,
		HireDate:              payload.HireDate,
		Status:                status,
		LicenseNumber:         payload.LicenseNumber,
		LicenseExpiry:         payload.LicenseExpiry,
		EmergencyContactName:  payload.EmergencyContactName,
		EmergencyContactPhone: payload.EmergencyContactPhone,
		CompanyID:             pl.CompanyID,
		DivisionID:            pl.DivisionID,
		DepartmentID:          pl.DepartmentID,
		HomeTerminalID:        pl.TerminalID,
	}
	created, err := s.repo.CreateDriver(ctx, driver)
	if err != nil {
		return nil, err
	}
	s.logger.Info("driver created",
		zap.String("driver_id", created.ID.String()),
		zap.String("created_by", p.ID.String()),
	)
	return created, nil
}

func (s *DriverService) UpdateDriver(ctx context.Context, id uuid.UUID, payload dto.UpdateDriverDTO) (*entities.Driver, error) {
	p, err := utils.GetPrincipalFromCtx(ctx)
	if err != nil {
		return nil, err
	}
	driver, err := s.repo.FindDriver(ctx, id)
	if err != nil {
		return nil, err
	}
	keys := driver.ScopeKeys()
	if d := s.resolver.Authorize(p, authz.OpManageFleet, authz.ResourceDriver, &keys); d != authz.Grant {
		return nil, decisionError(d)
	}

	if payload.FirstName != nil {
		driver.FirstName = *payload.FirstName
	}
	if payload.LastName != nil {
		driver.LastName = *payload.LastName
	}
	if payload.Email != nil {
		driver.Email = *payload.Email
	}
	if payload.Phone != nil {
		driver.Phone = *payload.Phone
	}
	if payload.Status != nil {
		driver.Status = *payload.Status
	}
	if payload.HireDate.Valid {
		driver.HireDate = payload.HireDate.Time
	}
	if payload.LicenseNumber != nil {
		driver.LicenseNumber = *payload.LicenseNumber
	}
	if payload.LicenseExpiry.Valid {
		driver.LicenseExpiry = payload.LicenseExpiry.Time
	}
	if payload.EmergencyContactName != nil {
		driver.EmergencyContactName = *payload.EmergencyContactName
	}
	if payload.EmergencyContactPhone != nil {
		driver.EmergencyContactPhone = *payload.EmergencyContactPhone
	}
	if payload.AssignedTruckID != nil {
		driver.AssignedTruckID = payload.AssignedTruckID
	}

	if payload.DivisionID != nil || payload.DepartmentID != nil || payload.HomeTerminalID != nil {
		pl, err := s.placement.resolve(ctx, driver.CompanyID, payload.DivisionID, payload.DepartmentID, payload.HomeTerminalID)
		if err != nil {
			return nil, err
		}
		newKeys := pl.scopeKeys()
		if d := s.resolver.Authorize(p, authz.OpManageFleet, authz.ResourceDriver, &newKeys); d != authz.Grant {
			return nil, decisionError(d)
		}
		driver.DivisionID = pl.DivisionID
		driver.DepartmentID = pl.DepartmentID
		driver.HomeTerminalID = pl.TerminalID
	}

	return s.repo.UpdateDriver(ctx, driver)
}

func (s *DriverService) DeleteDriver(ctx context.Context, id uuid.UUID) error {
	p, err := utils.GetPrincipalFromCtx(ctx)
	if err != nil {
		return err
	}
	driver, err := s.repo.FindDriver(ctx, id)
	if err != nil {
		return err
	}
	keys := driver.ScopeKeys()
	if d := s.resolver.Authorize(p, authz.OpManageFleet, authz.ResourceDriver, &keys); d != authz.Grant {
		return decisionError(d)
	}
	s.logger.Info("driver deleted",
		zap.String("driver_id", id.String()),
		zap.String("deleted_by", p.ID.String()),
	)
	return s.repo.DeleteDriver(ctx, id)
}

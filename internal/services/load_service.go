package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"launch-tms/internal/authz"
	"launch-tms/internal/dto"
	"launch-tms/internal/entities"
	"launch-tms/internal/repositories"
	apperrors "launch-tms/pkg/errors"
	"launch-tms/pkg/types"
	"launch-tms/pkg/utils"
)

// loadStatusTransitions is the dispatch lifecycle. Cancelled and delivered
// are terminal.
var loadStatusTransitions = map[string][]string{
	entities.LoadStatusPending:   {entities.LoadStatusAssigned, entities.LoadStatusCancelled},
	entities.LoadStatusAssigned:  {entities.LoadStatusInTransit, entities.LoadStatusPending, entities.LoadStatusCancelled},
	entities.LoadStatusInTransit: {entities.LoadStatusDelivered, entities.LoadStatusCancelled},
}

func canTransitionLoad(from, to string) bool {
	if from == to {
		return true
	}
	for _, allowed := range loadStatusTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

type LoadServiceInterface interface {
	GetLoads(ctx context.Context, filter types.Filter) ([]entities.Load, uint64, error)
	FindLoad(ctx context.Context, id uuid.UUID) (*entities.Load, error)
	CreateLoad(ctx context.Context, payload dto.CreateLoadDTO) (*entities.Load, error)
	UpdateLoad(ctx context.Context, id uuid.UUID, payload dto.UpdateLoadDTO) (*entities.Load, error)
	DeleteLoad(ctx context.Context, id uuid.UUID) error

	GetLoadEvents(ctx context.Context, loadID uuid.UUID) ([]entities.LoadEvent, error)
	CreateLoadEvent(ctx context.Context, loadID uuid.UUID, payload dto.CreateLoadEventDTO) (*entities.LoadEvent, error)
}

type LoadService struct {
	repo      repositories.LoadRepositoryInterface
	placement *PlacementResolver
	resolver  *authz.Resolver
	logger    *zap.Logger
}

func NewLoadService(
	repo repositories.LoadRepositoryInterface,
	placement *PlacementResolver,
	resolver *authz.Resolver,
	logger *zap.Logger,
) LoadServiceInterface {
	return &LoadService{repo: repo, placement: placement, resolver: resolver, logger: logger}
}

func (s *LoadService) GetLoads(ctx context.Context, filter types.Filter) ([]entities.Load, uint64, error) {
	p, err := utils.GetPrincipalFromCtx(ctx)
	if err != nil {
		return nil, 0, err
	}
	if d := s.resolver.Authorize(p, authz.OpRead, authz.ResourceLoad, nil); d != authz.Grant {
		return nil, 0, decisionError(d)
	}
	return s.repo.GetLoads(ctx, s.resolver.Resolve(p), filter)
}

func (s *LoadService) FindLoad(ctx context.Context, id uuid.UUID) (*entities.Load, error) {
	p, err := utils.GetPrincipalFromCtx(ctx)
	if err != nil {
		return nil, err
	}
	load, err := s.repo.FindLoad(ctx, id)
	if err != nil {
		return nil, err
	}
	keys := load.ScopeKeys()
	if d := s.resolver.Authorize(p, authz.OpRead, authz.ResourceLoad, &keys); d != authz.Grant {
		return nil, decisionError(d)
	}
	return load, nil
}

func (s *LoadService) CreateLoad(ctx context.Context, payload dto.CreateLoadDTO) (*entities.Load, error) {
	p, err := utils.GetPrincipalFromCtx(ctx)
	if err != nil {
		return nil, err
	}
	// A load belongs to its origin terminal's chain; the destination terminal
	// only has to exist within the same company.
	pl, err := s.placement.resolve(ctx, payload.CompanyID, payload.DivisionID, payload.DepartmentID, payload.OriginTerminalID)
	if err != nil {
		return nil, err
	}
	if payload.DestinationTerminalID != nil {
		if _, err := s.placement.resolve(ctx, payload.CompanyID, nil, nil, payload.DestinationTerminalID); err != nil {
			return nil, err
		}
	}
	keys := pl.scopeKeys()
	if d := s.resolver.Authorize(p, authz.OpManageFleet, authz.ResourceLoad, &keys); d != authz.Grant {
		return nil, decisionError(d)
	}

	if !payload.DeliveryDate.After(payload.PickupDate) {
		return nil, apperrors.NewBadRequestError("delivery_date must be after pickup_date")
	}

	status := payload.Status
	if status == "" {
		status = entities.LoadStatusPending
	}
	load := &entities.Load{
		LoadNumber:            payload.LoadNumber,
		BOLNumber:             payload.BOLNumber,
		Shipper:               payload.Shipper,
		Receiver:              payload.Receiver,
		PickupAddress:         payload.PickupAddress,
		PickupCity:            payload.PickupCity,
		PickupState:           payload.PickupState,
		PickupZip:             payload.PickupZip,
		DeliveryAddress:       payload.DeliveryAddress,
		DeliveryCity:          payload.DeliveryCity,
		DeliveryState:         payload.DeliveryState,
		DeliveryZip:           payload.DeliveryZip,
		AssignedDriverID:      payload.AssignedDriverID,
		AssignedTruckID:       payload.AssignedTruckID,
		Status:                status,
		CargoDescription:      payload.CargoDescription,
		WeightLbs:             payload.WeightLbs,
		DistanceMiles:         payload.DistanceMiles,
		Hazmat:                payload.Hazmat,
		PickupDate:            payload.PickupDate,
		DeliveryDate:          payload.DeliveryDate,
		Rate:                  payload.Rate,
		Notes:                 payload.Notes,
		CompanyID:             pl.CompanyID,
		DivisionID:            pl.DivisionID,
		DepartmentID:          pl.DepartmentID,
		OriginTerminalID:      pl.TerminalID,
		DestinationTerminalID: payload.DestinationTerminalID,
		DispatchedBy:          p.ID.String(),
	}
	created, err := s.repo.CreateLoad(ctx, load)
	if err != nil {
		return nil, err
	}
	s.logger.Info("load created",
		zap.String("load_id", created.ID.String()),
		zap.String("load_number", created.LoadNumber),
		zap.String("created_by", p.ID.String()),
	)
	return created, nil
}

func (s *LoadService) UpdateLoad(ctx context.Context, id uuid.UUID, payload dto.UpdateLoadDTO) (*entities.Load, error) {
	p, err := utils.GetPrincipalFromCtx(ctx)
	if err != nil {
		return nil, err
	}
	load, err := s.repo.FindLoad(ctx, id)
	if err != nil {
		return nil, err
	}
	keys := load.ScopeKeys()
	if d := s.resolver.Authorize(p, authz.OpManageFleet, authz.ResourceLoad, &keys); d != authz.Grant {
		return nil, decisionError(d)
	}

	previousStatus := load.Status
	if payload.Status != nil && !canTransitionLoad(load.Status, *payload.Status) {
		return nil, apperrors.NewBadRequestError(
			fmt.Sprintf("load cannot move from %s to %s", load.Status, *payload.Status))
	}

	if payload.BOLNumber != nil {
		load.BOLNumber = *payload.BOLNumber
	}
	if payload.Shipper != nil {
		load.Shipper = *payload.Shipper
	}
	if payload.Receiver != nil {
		load.Receiver = *payload.Receiver
	}
	if payload.PickupAddress != nil {
		load.PickupAddress = *payload.PickupAddress
	}
	if payload.PickupCity != nil {
		load.PickupCity = *payload.PickupCity
	}
	if payload.PickupState != nil {
		load.PickupState = *payload.PickupState
	}
	if payload.PickupZip != nil {
		load.PickupZip = *payload.PickupZip
	}
	if payload.DeliveryAddress != nil {
		load.DeliveryAddress = *payload.DeliveryAddress
	}
	if payload.DeliveryCity != nil {
		load.DeliveryCity = *payload.DeliveryCity
	}
	if payload.DeliveryState != nil {
		load.DeliveryState = *payload.DeliveryState
	}
	if payload.DeliveryZip != nil {
		load.DeliveryZip = *payload.DeliveryZip
	}
	if payload.Status != nil {
		load.Status = *payload.Status
	}
	if payload.CargoDescription != nil {
		load.CargoDescription = *payload.CargoDescription
	}
	if payload.WeightLbs != nil {
		load.WeightLbs = *payload.WeightLbs
	}
	if payload.DistanceMiles != nil {
		load.DistanceMiles = payload.DistanceMiles
	}
	if payload.Hazmat != nil {
		load.Hazmat = *payload.Hazmat
	}
	if payload.PickupDate.Valid {
		load.PickupDate = payload.PickupDate.Time
	}
	if payload.DeliveryDate.Valid {
		load.DeliveryDate = payload.DeliveryDate.Time
	}
	if payload.Rate != nil {
		load.Rate = *payload.Rate
	}
	if payload.Notes != nil {
		load.Notes = *payload.Notes
	}
	if payload.AssignedDriverID != nil {
		load.AssignedDriverID = payload.AssignedDriverID
	}
	if payload.AssignedTruckID != nil {
		load.AssignedTruckID = payload.AssignedTruckID
	}

	if payload.DivisionID != nil || payload.DepartmentID != nil || payload.OriginTerminalID != nil {
		pl, err := s.placement.resolve(ctx, load.CompanyID, payload.DivisionID, payload.DepartmentID, payload.OriginTerminalID)
		if err != nil {
			return nil, err
		}
		newKeys := pl.scopeKeys()
		if d := s.resolver.Authorize(p, authz.OpManageFleet, authz.ResourceLoad, &newKeys); d != authz.Grant {
			return nil, decisionError(d)
		}
		load.DivisionID = pl.DivisionID
		load.DepartmentID = pl.DepartmentID
		load.OriginTerminalID = pl.TerminalID
	}
	if payload.DestinationTerminalID != nil {
		if _, err := s.placement.resolve(ctx, load.CompanyID, nil, nil, payload.DestinationTerminalID); err != nil {
			return nil, err
		}
		load.DestinationTerminalID = payload.DestinationTerminalID
	}

	updated, err := s.repo.UpdateLoad(ctx, load)
	if err != nil {
		return nil, err
	}

	if updated.Status != previousStatus {
		event := &entities.LoadEvent{
			LoadID:      updated.ID,
			EventType:   entities.LoadEventUpdate,
			Description: fmt.Sprintf("status changed from %s to %s", previousStatus, updated.Status),
			Timestamp:   time.Now(),
			ReportedBy:  p.ID.String(),
			Severity:    "info",
			Resolved:    true,
		}
		if _, err := s.repo.CreateLoadEvent(ctx, event); err != nil {
			// The status change itself succeeded; a missing timeline entry is
			// not worth failing the request over.
			s.logger.Error("failed to record load status event",
				zap.String("load_id", updated.ID.String()), zap.Error(err))
		}
	}
	return updated, nil
}

func (s *LoadService) DeleteLoad(ctx context.Context, id uuid.UUID) error {
	p, err := utils.GetPrincipalFromCtx(ctx)
	if err != nil {
		return err
	}
	load, err := s.repo.FindLoad(ctx, id)
	if err != nil {
		return err
	}
	keys := load.ScopeKeys()
	if d := s.resolver.Authorize(p, authz.OpManageFleet, authz.ResourceLoad, &keys); d != authz.Grant {
		return decisionError(d)
	}
	if load.Status == entities.LoadStatusInTransit {
		return apperrors.NewBadRequestError("a load in transit cannot be deleted")
	}
	s.logger.Info("load deleted",
		zap.String("load_id", id.String()),
		zap.String("deleted_by", p.ID.String()),
	)
	return s.repo.DeleteLoad(ctx, id)
}

func (s *LoadService) GetLoadEvents(ctx context.Context, loadID uuid.UUID) ([]entities.LoadEvent, error) {
	p, err := utils.GetPrincipalFromCtx(ctx)
	if err != nil {
		return nil, err
	}
	load, err := s.repo.FindLoad(ctx, loadID)
	if err != nil {
		return nil, err
	}
	keys := load.ScopeKeys()
	if d := s.resolver.Authorize(p, authz.OpRead, authz.ResourceLoad, &keys); d != authz.Grant {
		return nil, decisionError(d)
	}
	return s.repo.GetLoadEvents(ctx, loadID)
}

func (s *LoadService) CreateLoadEvent(ctx context.Context, loadID uuid.UUID, payload dto.CreateLoadEventDTO) (*entities.LoadEvent, error) {
	p, err := utils.GetPrincipalFromCtx(ctx)
	if err != nil {
		return nil, err
	}
	load, err := s.repo.FindLoad(ctx, loadID)
	if err != nil {
		return nil, err
	}
	keys := load.ScopeKeys()
	if d := s.resolver.Authorize(p, authz.OpManageFleet, authz.ResourceLoad, &keys); d != authz.Grant {
		return nil, decisionError(d)
	}

	severity := payload.Severity
	if severity == "" {
		severity = "info"
	}
	event := &entities.LoadEvent{
		LoadID:        loadID,
		EventType:     payload.EventType,
		Description:   payload.Description,
		Timestamp:     time.Now(),
		LocationCity:  payload.LocationCity,
		LocationState: payload.LocationState,
		ReportedBy:    p.ID.String(),
		Severity:      severity,
		Resolved:      false,
	}
	return s.repo.CreateLoadEvent(ctx, event)
}

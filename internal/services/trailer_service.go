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

type TrailerServiceInterface interface {
	GetTrailers(ctx context.Context, filter types.Filter) ([]entities.Trailer, uint64, error)
	FindTrailer(ctx context.Context, id uuid.UUID) (*entities.Trailer, error)
	CreateTrailer(ctx context.Context, payload dto.CreateTrailerDTO) (*entities.Trailer, error)
	UpdateTrailer(ctx context.Context, id uuid.UUID, payload dto.UpdateTrailerDTO) (*entities.Trailer, error)
	DeleteTrailer(ctx context.Context, id uuid.UUID) error
}

type TrailerService struct {
	repo      repositories.TrailerRepositoryInterface
	placement *PlacementResolver
	resolver  *authz.Resolver
	logger    *zap.Logger
}

func NewTrailerService(
	repo repositories.TrailerRepositoryInterface,
	placement *PlacementResolver,
	resolver *authz.Resolver,
	logger *zap.Logger,
) TrailerServiceInterface {
	return &TrailerService{repo: repo, placement: placement, resolver: resolver, logger: logger}
}

func (s *TrailerService) GetTrailers(ctx context.Context, filter types.Filter) ([]entities.Trailer, uint64, error) {
	p, err := utils.GetPrincipalFromCtx(ctx)
	if err != nil {
		return nil, 0, err
	}
	if d := s.resolver.Authorize(p, authz.OpRead, authz.ResourceTrailer, nil); d != authz.Grant {
		return nil, 0, decisionError(d)
	}
	return s.repo.GetTrailers(ctx, s.resolver.Resolve(p), filter)
}

func (s *TrailerService) FindTrailer(ctx context.Context, id uuid.UUID) (*entities.Trailer, error) {
	p, err := utils.GetPrincipalFromCtx(ctx)
	if err != nil {
		return nil, err
	}
	trailer, err := s.repo.FindTrailer(ctx, id)
	if err != nil {
		return nil, err
	}
	keys := trailer.ScopeKeys()
	if d := s.resolver.Authorize(p, authz.OpRead, authz.ResourceTrailer, &keys); d != authz.Grant {
		return nil, decisionError(d)
	}
	return trailer, nil
}

func (s *TrailerService) CreateTrailer(ctx context.Context, payload dto.CreateTrailerDTO) (*entities.Trailer, error) {
	p, err := utils.GetPrincipalFromCtx(ctx)
	if err != nil {
		return nil, err
	}
	pl, err := s.placement.resolve(ctx, payload.CompanyID, payload.DivisionID, payload.DepartmentID, payload.HomeTerminalID)
	if err != nil {
		return nil, err
	}
	keys := pl.scopeKeys()
	if d := s.resolver.Authorize(p, authz.OpManageFleet, authz.ResourceTrailer, &keys); d != authz.Grant {
		return nil, decisionError(d)
	}

	status := payload.Status
	if status == "" {
		status = entities.VehicleStatusAvailable
	}
	trailer := &entities.Trailer{
		TrailerNumber:      payload.TrailerNumber,
		Make:               payload.Make,
		Model:              payload.Model,
		Year:               payload.Year,
		VIN:                payload.VIN,
		TrailerType:        payload.TrailerType,
		CapacityTons:       payload.CapacityTons.Ptr(),
		LengthFeet:         payload.LengthFeet.Ptr(),
		Status:             status,
		NextInspectionDue:  payload.NextInspectionDue.Ptr(),
		RegistrationExpiry: payload.RegistrationExpiry.Ptr(),
		CompanyID:          pl.CompanyID,
		DivisionID:         pl.DivisionID,
		DepartmentID:       pl.DepartmentID,
		HomeTerminalID:     pl.TerminalID,
	}
	created, err := s.repo.CreateTrailer(ctx, trailer)
	if err != nil {
		return nil, err
	}
	s.logger.Info("trailer created",
		zap.String("trailer_id", created.ID.String()),
		zap.String("trailer_number", created.TrailerNumber),
		zap.String("created_by", p.ID.String()),
	)
	return created, nil
}

func (s *TrailerService) UpdateTrailer(ctx context.Context, id uuid.UUID, payload dto.UpdateTrailerDTO) (*entities.Trailer, error) {
	p, err := utils.GetPrincipalFromCtx(ctx)
	if err != nil {
		return nil, err
	}
	trailer, err := s.repo.FindTrailer(ctx, id)
	if err != nil {
		return nil, err
	}
	keys := trailer.ScopeKeys()
	if d := s.resolver.Authorize(p, authz.OpManageFleet, authz.ResourceTrailer, &keys); d != authz.Grant {
		return nil, decisionError(d)
	}

	if payload.TrailerNumber != nil {
		trailer.TrailerNumber = *payload.TrailerNumber
	}
	if payload.Make != nil {
		trailer.Make = *payload.Make
	}
	if payload.Model != nil {
		trailer.Model = *payload.Model
	}
	if payload.Year != nil {
		trailer.Year = payload.Year
	}
	if payload.VIN != nil {
		trailer.VIN = *payload.VIN
	}
	if payload.TrailerType != nil {
		trailer.TrailerType = *payload.TrailerType
	}
	if payload.Status != nil {
		trailer.Status = *payload.Status
	}
	if payload.CapacityTons.Valid {
		trailer.CapacityTons = payload.CapacityTons.Ptr()
	}
	if payload.LengthFeet.Valid {
		trailer.LengthFeet = payload.LengthFeet.Ptr()
	}
	if payload.NextInspectionDue.Valid {
		trailer.NextInspectionDue = payload.NextInspectionDue.Ptr()
	}
	if payload.RegistrationExpiry.Valid {
		trailer.RegistrationExpiry = payload.RegistrationExpiry.Ptr()
	}

	if payload.DivisionID != nil || payload.DepartmentID != nil || payload.HomeTerminalID != nil {
		pl, err := s.placement.resolve(ctx, trailer.CompanyID, payload.DivisionID, payload.DepartmentID, payload.HomeTerminalID)
		if err != nil {
			return nil, err
		}
		newKeys := pl.scopeKeys()
		if d := s.resolver.Authorize(p, authz.OpManageFleet, authz.ResourceTrailer, &newKeys); d != authz.Grant {
			return nil, decisionError(d)
		}
		trailer.DivisionID = pl.DivisionID
		trailer.DepartmentID = pl.DepartmentID
		trailer.HomeTerminalID = pl.TerminalID
	}

	return s.repo.UpdateTrailer(ctx, trailer)
}

func (s *TrailerService) DeleteTrailer(ctx context.Context, id uuid.UUID) error {
	p, err := utils.GetPrincipalFromCtx(ctx)
	if err != nil {
		return err
	}
	trailer, err := s.repo.FindTrailer(ctx, id)
	if err != nil {
		return err
	}
	keys := trailer.ScopeKeys()
	if d := s.resolver.Authorize(p, authz.OpManageFleet, authz.ResourceTrailer, &keys); d != authz.Grant {
		return decisionError(d)
	}
	s.logger.Info("trailer deleted",
		zap.String("trailer_id", id.String()),
		zap.String("deleted_by", p.ID.String()),
	)
	return s.repo.DeleteTrailer(ctx, id)
}

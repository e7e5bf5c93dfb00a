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

type DivisionServiceInterface interface {
	GetDivisions(ctx context.Context, filter types.Filter) ([]entities.Division, uint64, error)
	FindDivision(ctx context.Context, id uuid.UUID) (*entities.Division, error)
	CreateDivision(ctx context.Context, payload dto.CreateDivisionDTO) (*entities.Division, error)
	UpdateDivision(ctx context.Context, id uuid.UUID, payload dto.UpdateDivisionDTO) (*entities.Division, error)
	DeleteDivision(ctx context.Context, id uuid.UUID) error
}

type DivisionService struct {
	repo     repositories.DivisionRepositoryInterface
	resolver *authz.Resolver
	logger   *zap.Logger
}

func NewDivisionService(repo repositories.DivisionRepositoryInterface, resolver *authz.Resolver, logger *zap.Logger) DivisionServiceInterface {
	return &DivisionService{repo: repo, resolver: resolver, logger: logger}
}

func (s *DivisionService) GetDivisions(ctx context.Context, filter types.Filter) ([]entities.Division, uint64, error) {
	p, err := utils.GetPrincipalFromCtx(ctx)
	if err != nil {
		return nil, 0, err
	}
	if d := s.resolver.Authorize(p, authz.OpRead, authz.ResourceDivision, nil); d != authz.Grant {
		return nil, 0, decisionError(d)
	}
	return s.repo.GetDivisions(ctx, s.resolver.Resolve(p), filter)
}

func (s *DivisionService) FindDivision(ctx context.Context, id uuid.UUID) (*entities.Division, error) {
	p, err := utils.GetPrincipalFromCtx(ctx)
	if err != nil {
		return nil, err
	}
	division, err := s.repo.FindDivision(ctx, id)
	if err != nil {
		return nil, err
	}
	keys := division.ScopeKeys()
	if d := s.resolver.Authorize(p, authz.OpRead, authz.ResourceDivision, &keys); d != authz.Grant {
		return nil, decisionError(d)
	}
	return division, nil
}

func (s *DivisionService) CreateDivision(ctx context.Context, payload dto.CreateDivisionDTO) (*entities.Division, error) {
	p, err := utils.GetPrincipalFromCtx(ctx)
	if err != nil {
		return nil, err
	}
	// The new row must land inside the caller's scope.
	keys := authz.ScopeKeys{CompanyID: &payload.CompanyID}
	if d := s.resolver.Authorize(p, authz.OpManageOrg, authz.ResourceDivision, &keys); d != authz.Grant {
		return nil, decisionError(d)
	}

	division := &entities.Division{
		CompanyID:    payload.CompanyID,
		Name:         payload.Name,
		Code:         payload.Code,
		ManagerEmail: payload.ManagerEmail,
		IsActive:     true,
	}
	created, err := s.repo.CreateDivision(ctx, division)
	if err != nil {
		return nil, err
	}
	s.logger.Info("division created",
		zap.String("division_id", created.ID.String()),
		zap.String("company_id", created.CompanyID.String()),
		zap.String("created_by", p.ID.String()),
	)
	return created, nil
}

func (s *DivisionService) UpdateDivision(ctx context.Context, id uuid.UUID, payload dto.UpdateDivisionDTO) (*entities.Division, error) {
	p, err := utils.GetPrincipalFromCtx(ctx)
	if err != nil {
		return nil, err
	}
	division, err := s.repo.FindDivision(ctx, id)
	if err != nil {
		return nil, err
	}
	keys := division.ScopeKeys()
	if d := s.resolver.Authorize(p, authz.OpManageOrg, authz.ResourceDivision, &keys); d != authz.Grant {
		return nil, decisionError(d)
	}

	if payload.Name != nil {
		division.Name = *payload.Name
	}
	if payload.ManagerEmail != nil {
		division.ManagerEmail = *payload.ManagerEmail
	}
	if payload.IsActive != nil {
		division.IsActive = *payload.IsActive
	}
	return s.repo.UpdateDivision(ctx, division)
}

func (s *DivisionService) DeleteDivision(ctx context.Context, id uuid.UUID) error {
	p, err := utils.GetPrincipalFromCtx(ctx)
	if err != nil {
		return err
	}
	division, err := s.repo.FindDivision(ctx, id)
	if err != nil {
		return err
	}
	keys := division.ScopeKeys()
	if d := s.resolver.Authorize(p, authz.OpManageOrg, authz.ResourceDivision, &keys); d != authz.Grant {
		return decisionError(d)
	}
	s.logger.Info("division deleted",
		zap.String("division_id", id.String()),
		zap.String("deleted_by", p.ID.String()),
	)
	return s.repo.DeleteDivision(ctx, id)
}

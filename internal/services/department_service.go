package services

import (
	"context"
	"errors"

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

type DepartmentServiceInterface interface {
	GetDepartments(ctx context.Context, filter types.Filter) ([]entities.Department, uint64, error)
	FindDepartment(ctx context.Context, id uuid.UUID) (*entities.Department, error)
	CreateDepartment(ctx context.Context, payload dto.CreateDepartmentDTO) (*entities.Department, error)
	UpdateDepartment(ctx context.Context, id uuid.UUID, payload dto.UpdateDepartmentDTO) (*entities.Department, error)
	DeleteDepartment(ctx context.Context, id uuid.UUID) error
}

type DepartmentService struct {
	repo         repositories.DepartmentRepositoryInterface
	divisionRepo repositories.DivisionRepositoryInterface
	resolver     *authz.Resolver
	logger       *zap.Logger
}

func NewDepartmentService(
	repo repositories.DepartmentRepositoryInterface,
	divisionRepo repositories.DivisionRepositoryInterface,
	resolver *authz.Resolver,
	logger *zap.Logger,
) DepartmentServiceInterface {
	return &DepartmentService{repo: repo, divisionRepo: divisionRepo, resolver: resolver, logger: logger}
}

func (s *DepartmentService) GetDepartments(ctx context.Context, filter types.Filter) ([]entities.Department, uint64, error) {
	p, err := utils.GetPrincipalFromCtx(ctx)
	if err != nil {
		return nil, 0, err
	}
	if d := s.resolver.Authorize(p, authz.OpRead, authz.ResourceDepartment, nil); d != authz.Grant {
		return nil, 0, decisionError(d)
	}
	return s.repo.GetDepartments(ctx, s.resolver.Resolve(p), filter)
}

func (s *DepartmentService) FindDepartment(ctx context.Context, id uuid.UUID) (*entities.Department, error) {
	p, err := utils.GetPrincipalFromCtx(ctx)
	if err != nil {
		return nil, err
	}
	department, err := s.repo.FindDepartment(ctx, id)
	if err != nil {
		return nil, err
	}
	keys := department.ScopeKeys()
	if d := s.resolver.Authorize(p, authz.OpRead, authz.ResourceDepartment, &keys); d != authz.Grant {
		return nil, decisionError(d)
	}
	return department, nil
}

func (s *DepartmentService) CreateDepartment(ctx context.Context, payload dto.CreateDepartmentDTO) (*entities.Department, error) {
	p, err := utils.GetPrincipalFromCtx(ctx)
	if err != nil {
		return nil, err
	}
	division, err := s.divisionRepo.FindDivision(ctx, payload.DivisionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewBadRequestError("division does not exist")
		}
		return nil, err
	}
	keys := authz.ScopeKeys{CompanyID: &division.CompanyID, DivisionID: &division.ID}
	if d := s.resolver.Authorize(p, authz.OpManageOrg, authz.ResourceDepartment, &keys); d != authz.Grant {
		return nil, decisionError(d)
	}

	department := &entities.Department{
		DivisionID:   payload.DivisionID,
		Name:         payload.Name,
		Code:         payload.Code,
		ManagerEmail: payload.ManagerEmail,
		IsActive:     true,
	}
	created, err := s.repo.CreateDepartment(ctx, department)
	if err != nil {
		return nil, err
	}
	s.logger.Info("department created",
		zap.String("department_id", created.ID.String()),
		zap.String("division_id", created.DivisionID.String()),
		zap.String("created_by", p.ID.String()),
	)
	return created, nil
}

func (s *DepartmentService) UpdateDepartment(ctx context.Context, id uuid.UUID, payload dto.UpdateDepartmentDTO) (*entities.Department, error) {
	p, err := utils.GetPrincipalFromCtx(ctx)
	if err != nil {
		return nil, err
	}
	department, err := s.repo.FindDepartment(ctx, id)
	if err != nil {
		return nil, err
	}
	keys := department.ScopeKeys()
	if d := s.resolver.Authorize(p, authz.OpManageOrg, authz.ResourceDepartment, &keys); d != authz.Grant {
		return nil, decisionError(d)
	}

	if payload.Name != nil {
		department.Name = *payload.Name
	}
	if payload.ManagerEmail != nil {
		department.ManagerEmail = *payload.ManagerEmail
	}
	if payload.IsActive != nil {
		department.IsActive = *payload.IsActive
	}
	return s.repo.UpdateDepartment(ctx, department)
}

func (s *DepartmentService) DeleteDepartment(ctx context.Context, id uuid.UUID) error {
	p, err := utils.GetPrincipalFromCtx(ctx)
	if err != nil {
		return err
	}
	department, err := s.repo.FindDepartment(ctx, id)
	if err != nil {
		return err
	}
	keys := department.ScopeKeys()
	if d := s.resolver.Authorize(p, authz.OpManageOrg, authz.ResourceDepartment, &keys); d != authz.Grant {
		return decisionError(d)
	}
	s.logger.Info("department deleted",
		zap.String("department_id", id.String()),
		zap.String("deleted_by", p.ID.String()),
	)
	return s.repo.DeleteDepartment(ctx, id)
}

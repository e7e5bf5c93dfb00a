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

type TerminalServiceInterface interface {
	GetTerminals(ctx context.Context, filter types.Filter) ([]entities.Terminal, uint64, error)
	FindTerminal(ctx context.Context, id uuid.UUID) (*entities.Terminal, error)
	CreateTerminal(ctx context.Context, payload dto.CreateTerminalDTO) (*entities.Terminal, error)
	UpdateTerminal(ctx context.Context, id uuid.UUID, payload dto.UpdateTerminalDTO) (*entities.Terminal, error)
	DeleteTerminal(ctx context.Context, id uuid.UUID) error
}

type TerminalService struct {
	repo           repositories.TerminalRepositoryInterface
	departmentRepo repositories.DepartmentRepositoryInterface
	resolver       *authz.Resolver
	logger         *zap.Logger
}

func NewTerminalService(
	repo repositories.TerminalRepositoryInterface,
	departmentRepo repositories.DepartmentRepositoryInterface,
	resolver *authz.Resolver,
	logger *zap.Logger,
) TerminalServiceInterface {
	return &TerminalService{repo: repo, departmentRepo: departmentRepo, resolver: resolver, logger: logger}
}

func (s *TerminalService) GetTerminals(ctx context.Context, filter types.Filter) ([]entities.Terminal, uint64, error) {
	p, err := utils.GetPrincipalFromCtx(ctx)
	if err != nil {
		return nil, 0, err
	}
	if d := s.resolver.Authorize(p, authz.OpRead, authz.ResourceTerminal, nil); d != authz.Grant {
		return nil, 0, decisionError(d)
	}
	return s.repo.GetTerminals(ctx, s.resolver.Resolve(p), filter)
}

func (s *TerminalService) FindTerminal(ctx context.Context, id uuid.UUID) (*entities.Terminal, error) {
	p, err := utils.GetPrincipalFromCtx(ctx)
	if err != nil {
		return nil, err
	}
	terminal, err := s.repo.FindTerminal(ctx, id)
	if err != nil {
		return nil, err
	}
	keys := terminal.ScopeKeys()
	if d := s.resolver.Authorize(p, authz.OpRead, authz.ResourceTerminal, &keys); d != authz.Grant {
		return nil, decisionError(d)
	}
	return terminal, nil
}

func (s *TerminalService) CreateTerminal(ctx context.Context, payload dto.CreateTerminalDTO) (*entities.Terminal, error) {
	p, err := utils.GetPrincipalFromCtx(ctx)
	if err != nil {
		return nil, err
	}
	department, err := s.departmentRepo.FindDepartment(ctx, payload.DepartmentID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewBadRequestError("department does not exist")
		}
		return nil, err
	}
	keys := authz.ScopeKeys{
		CompanyID:    &department.CompanyID,
		DivisionID:   &department.DivisionID,
		DepartmentID: &department.ID,
	}
	if d := s.resolver.Authorize(p, authz.OpManageOrg, authz.ResourceTerminal, &keys); d != authz.Grant {
		return nil, decisionError(d)
	}

	terminal := &entities.Terminal{
		DepartmentID:  payload.DepartmentID,
		Name:          payload.Name,
		Code:          payload.Code,
		AddressStreet: payload.AddressStreet,
		AddressCity:   payload.AddressCity,
		AddressState:  payload.AddressState,
		AddressZip:    payload.AddressZip,
		Phone:         payload.Phone,
		ManagerEmail:  payload.ManagerEmail,
		IsActive:      true,
	}
	created, err := s.repo.CreateTerminal(ctx, terminal)
	if err != nil {
		return nil, err
	}
	s.logger.Info("terminal created",
		zap.String("terminal_id", created.ID.String()),
		zap.String("department_id", created.DepartmentID.String()),
		zap.String("created_by", p.ID.String()),
	)
	return created, nil
}

func (s *TerminalService) UpdateTerminal(ctx context.Context, id uuid.UUID, payload dto.UpdateTerminalDTO) (*entities.Terminal, error) {
	p, err := utils.GetPrincipalFromCtx(ctx)
	if err != nil {
		return nil, err
	}
	terminal, err := s.repo.FindTerminal(ctx, id)
	if err != nil {
		return nil, err
	}
	keys := terminal.ScopeKeys()
	if d := s.resolver.Authorize(p, authz.OpManageOrg, authz.ResourceTerminal, &keys); d != authz.Grant {
		return nil, decisionError(d)
	}

	if payload.Name != nil {
		terminal.Name = *payload.Name
	}
	if payload.AddressStreet != nil {
		terminal.AddressStreet = *payload.AddressStreet
	}
	if payload.AddressCity != nil {
		terminal.AddressCity = *payload.AddressCity
	}
	if payload.AddressState != nil {
		terminal.AddressState = *payload.AddressState
	}
	if payload.AddressZip != nil {
		terminal.AddressZip = *payload.AddressZip
	}
	if payload.Phone != nil {
		terminal.Phone = *payload.Phone
	}
	if payload.ManagerEmail != nil {
		terminal.ManagerEmail = *payload.ManagerEmail
	}
	if payload.IsActive != nil {
		terminal.IsActive = *payload.IsActive
	}
	return s.repo.UpdateTerminal(ctx, terminal)
}

func (s *TerminalService) DeleteTerminal(ctx context.Context, id uuid.UUID) error {
	p, err := utils.GetPrincipalFromCtx(ctx)
	if err != nil {
		return err
	}
	terminal, err := s.repo.FindTerminal(ctx, id)
	if err != nil {
		return err
	}
	keys := terminal.ScopeKeys()
	if d := s.resolver.Authorize(p, authz.OpManageOrg, authz.ResourceTerminal, &keys); d != authz.Grant {
		return decisionError(d)
	}
	s.logger.Info("terminal deleted",
		zap.String("terminal_id", id.String()),
		zap.String("deleted_by", p.ID.String()),
	)
	return s.repo.DeleteTerminal(ctx, id)
}

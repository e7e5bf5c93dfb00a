package services

import (
	"context"

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

type UserServiceInterface interface {
	GetUsers(ctx context.Context, filter types.Filter) ([]entities.User, uint64, error)
	FindUser(ctx context.Context, id uuid.UUID) (*entities.User, error)
	CreateUser(ctx context.Context, payload dto.CreateUserDTO) (*entities.User, error)
	UpdateUser(ctx context.Context, id uuid.UUID, payload dto.UpdateUserDTO) (*entities.User, error)
	DeleteUser(ctx context.Context, id uuid.UUID) error
}

type UserService struct {
	repo      repositories.UserRepositoryInterface
	placement *PlacementResolver
	resolver  *authz.Resolver
	logger    *zap.Logger
}

func NewUserService(
	repo repositories.UserRepositoryInterface,
	placement *PlacementResolver,
	resolver *authz.Resolver,
	logger *zap.Logger,
) UserServiceInterface {
	return &UserService{repo: repo, placement: placement, resolver: resolver, logger: logger}
}

func (s *UserService) GetUsers(ctx context.Context, filter types.Filter) ([]entities.User, uint64, error) {
	p, err := utils.GetPrincipalFromCtx(ctx)
	if err != nil {
		return nil, 0, err
	}
	if d := s.resolver.Authorize(p, authz.OpRead, authz.ResourceUser, nil); d != authz.Grant {
		return nil, 0, decisionError(d)
	}
	return s.repo.GetUsers(ctx, s.resolver.Resolve(p), filter)
}

func (s *UserService) FindUser(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	p, err := utils.GetPrincipalFromCtx(ctx)
	if err != nil {
		return nil, err
	}
	user, err := s.repo.FindUser(ctx, id)
	if err != nil {
		return nil, err
	}
	keys := user.ScopeKeys()
	if d := s.resolver.Authorize(p, authz.OpRead, authz.ResourceUser, &keys); d != authz.Grant {
		return nil, decisionError(d)
	}
	return user, nil
}

func (s *UserService) CreateUser(ctx context.Context, payload dto.CreateUserDTO) (*entities.User, error) {
	p, err := utils.GetPrincipalFromCtx(ctx)
	if err != nil {
		return nil, err
	}
	if d := s.resolver.Authorize(p, authz.OpManageUsers, authz.ResourceUser, nil); d != authz.Grant {
		return nil, decisionError(d)
	}

	user := &entities.User{
		Email:     payload.Email,
		FirstName: payload.FirstName,
		LastName:  payload.LastName,
		Phone:     payload.Phone,
		Role:      payload.Role,
		Theme:     payload.Theme,
		Language:  payload.Language,
		Timezone:  payload.Timezone,
		IsActive:  true,
	}
	if user.Theme == "" {
		user.Theme = "light"
	}
	if user.Language == "" {
		user.Language = "en"
	}

	if payload.Role == string(authz.RoleSystemAdmin) {
		// Platform operators sit above the tenant tree.
		if payload.CompanyID != nil || payload.DivisionID != nil || payload.DepartmentID != nil || payload.TerminalID != nil {
			return nil, apperrors.NewBadRequestError("a system administrator cannot carry an organizational assignment")
		}
		if !s.resolver.Resolve(p).IsAll() {
			return nil, apperrors.ErrForbidden
		}
	} else {
		if payload.CompanyID == nil {
			return nil, apperrors.NewBadRequestError("company_id is required for this role")
		}
		pl, err := s.placement.resolve(ctx, *payload.CompanyID, payload.DivisionID, payload.DepartmentID, payload.TerminalID)
		if err != nil {
			return nil, err
		}
		keys := pl.scopeKeys()
		if d := s.resolver.Authorize(p, authz.OpManageUsers, authz.ResourceUser, &keys); d != authz.Grant {
			return nil, decisionError(d)
		}
		user.CompanyID = keys.CompanyID
		user.DivisionID = pl.DivisionID
		user.DepartmentID = pl.DepartmentID
		user.TerminalID = pl.TerminalID
	}

	hash, err := utils.HashPassword(payload.Password)
	if err != nil {
		return nil, err
	}
	user.Password = hash

	created, err := s.repo.CreateUser(ctx, user)
	if err != nil {
		return nil, err
	}
	s.logger.Info("user created",
		zap.String("user_id", created.ID.String()),
		zap.String("role", created.Role),
		zap.String("created_by", p.ID.String()),
	)
	return created, nil
}

func (s *UserService) UpdateUser(ctx context.Context, id uuid.UUID, payload dto.UpdateUserDTO) (*entities.User, error) {
	p, err := utils.GetPrincipalFromCtx(ctx)
	if err != nil {
		return nil, err
	}
	user, err := s.repo.FindUser(ctx, id)
	if err != nil {
		return nil, err
	}
	keys := user.ScopeKeys()
	if d := s.resolver.Authorize(p, authz.OpManageUsers, authz.ResourceUser, &keys); d != authz.Grant {
		return nil, decisionError(d)
	}

	if payload.Email != nil {
		user.Email = *payload.Email
	}
	if payload.FirstName != nil {
		user.FirstName = *payload.FirstName
	}
	if payload.LastName != nil {
		user.LastName = *payload.LastName
	}
	if payload.Phone != nil {
		user.Phone = *payload.Phone
	}
	if payload.Role != nil && *payload.Role != user.Role {
		// Crossing the system_admin boundary in either direction is a
		// platform-operator action; tenant admins stay inside their tenant.
		crossesAdmin := *payload.Role == string(authz.RoleSystemAdmin) ||
			user.Role == string(authz.RoleSystemAdmin)
		if crossesAdmin && !s.resolver.Resolve(p).IsAll() {
			return nil, apperrors.ErrForbidden
		}
		user.Role = *payload.Role
	}
	if payload.Theme != nil {
		user.Theme = *payload.Theme
	}
	if payload.Language != nil {
		user.Language = *payload.Language
	}
	if payload.Timezone != nil {
		user.Timezone = *payload.Timezone
	}
	if payload.IsActive != nil {
		user.IsActive = *payload.IsActive
	}

	if payload.CompanyID != nil || payload.DivisionID != nil || payload.DepartmentID != nil || payload.TerminalID != nil {
		companyID := user.CompanyID
		if payload.CompanyID != nil {
			companyID = payload.CompanyID
		}
		if companyID == nil {
			return nil, apperrors.NewBadRequestError("company_id is required to assign organizational units")
		}
		divisionID := payload.DivisionID
		departmentID := payload.DepartmentID
		terminalID := payload.TerminalID
		pl, err := s.placement.resolve(ctx, *companyID, divisionID, departmentID, terminalID)
		if err != nil {
			return nil, err
		}
		newKeys := pl.scopeKeys()
		if d := s.resolver.Authorize(p, authz.OpManageUsers, authz.ResourceUser, &newKeys); d != authz.Grant {
			return nil, decisionError(d)
		}
		user.CompanyID = newKeys.CompanyID
		user.DivisionID = pl.DivisionID
		user.DepartmentID = pl.DepartmentID
		user.TerminalID = pl.TerminalID
	}

	if payload.Password != nil {
		hash, err := utils.HashPassword(*payload.Password)
		if err != nil {
			return nil, err
		}
		user.Password = hash
	}

	// Same structural rules as creation: operators sit above the tenant
	// tree, everyone else belongs to a company.
	if user.Role == string(authz.RoleSystemAdmin) {
		if user.CompanyID != nil || user.DivisionID != nil || user.DepartmentID != nil || user.TerminalID != nil {
			return nil, apperrors.NewBadRequestError("a system administrator cannot carry an organizational assignment")
		}
	} else if user.CompanyID == nil {
		return nil, apperrors.NewBadRequestError("company_id is required for this role")
	}

	return s.repo.UpdateUser(ctx, user)
}

func (s *UserService) DeleteUser(ctx context.Context, id uuid.UUID) error {
	p, err := utils.GetPrincipalFromCtx(ctx)
	if err != nil {
		return err
	}
	if p.ID == id {
		return apperrors.NewBadRequestError("you cannot delete your own account")
	}
	user, err := s.repo.FindUser(ctx, id)
	if err != nil {
		return err
	}
	keys := user.ScopeKeys()
	if d := s.resolver.Authorize(p, authz.OpManageUsers, authz.ResourceUser, &keys); d != authz.Grant {
		return decisionError(d)
	}
	s.logger.Info("user deleted",
		zap.String("user_id", id.String()),
		zap.String("deleted_by", p.ID.String()),
	)
	return s.repo.DeleteUser(ctx, id)
}

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

type CompanyServiceInterface interface {
	GetCompanies(ctx context.Context, filter types.Filter) ([]entities.Company, uint64, error)
	FindCompany(ctx context.Context, id uuid.UUID) (*entities.Company, error)
	CreateCompany(ctx context.Context, payload dto.CreateCompanyDTO) (*entities.Company, error)
	UpdateCompany(ctx context.Context, id uuid.UUID, payload dto.UpdateCompanyDTO) (*entities.Company, error)
	DeleteCompany(ctx context.Context, id uuid.UUID) error
}

type CompanyService struct {
	repo     repositories.CompanyRepositoryInterface
	resolver *authz.Resolver
	logger   *zap.Logger
}

func NewCompanyService(repo repositories.CompanyRepositoryInterface, resolver *authz.Resolver, logger *zap.Logger) CompanyServiceInterface {
	return &CompanyService{repo: repo, resolver: resolver, logger: logger}
}

func (s *CompanyService) GetCompanies(ctx context.Context, filter types.Filter) ([]entities.Company, uint64, error) {
	p, err := utils.GetPrincipalFromCtx(ctx)
	if err != nil {
		return nil, 0, err
	}
	if d := s.resolver.Authorize(p, authz.OpRead, authz.ResourceCompany, nil); d != authz.Grant {
		return nil, 0, decisionError(d)
	}
	return s.repo.GetCompanies(ctx, s.resolver.Resolve(p), filter)
}

func (s *CompanyService) FindCompany(ctx context.Context, id uuid.UUID) (*entities.Company, error) {
	p, err := utils.GetPrincipalFromCtx(ctx)
	if err != nil {
		return nil, err
	}
	company, err := s.repo.FindCompany(ctx, id)
	if err != nil {
		return nil, err
	}
	keys := company.ScopeKeys()
	if d := s.resolver.Authorize(p, authz.OpRead, authz.ResourceCompany, &keys); d != authz.Grant {
		return nil, decisionError(d)
	}
	return company, nil
}

// CreateCompany provisions a new tenant. A company-scoped admin can never
// place a row outside their own company, so only the unrestricted scope may
// create one.
func (s *CompanyService) CreateCompany(ctx context.Context, payload dto.CreateCompanyDTO) (*entities.Company, error) {
	p, err := utils.GetPrincipalFromCtx(ctx)
	if err != nil {
		return nil, err
	}
	if d := s.resolver.Authorize(p, authz.OpManageOrg, authz.ResourceCompany, nil); d != authz.Grant {
		return nil, decisionError(d)
	}
	if !s.resolver.Resolve(p).IsAll() {
		return nil, apperrors.ErrForbidden
	}

	company := &entities.Company{
		Name:          payload.Name,
		Code:          payload.Code,
		AddressStreet: payload.AddressStreet,
		AddressCity:   payload.AddressCity,
		AddressState:  payload.AddressState,
		AddressZip:    payload.AddressZip,
		Phone:         payload.Phone,
		Email:         payload.Email,
		Timezone:      payload.Timezone,
		IsActive:      true,
	}
	created, err := s.repo.CreateCompany(ctx, company)
	if err != nil {
		return nil, err
	}
	s.logger.Info("company created",
		zap.String("company_id", created.ID.String()),
		zap.String("code", created.Code),
		zap.String("created_by", p.ID.String()),
	)
	return created, nil
}

func (s *CompanyService) UpdateCompany(ctx context.Context, id uuid.UUID, payload dto.UpdateCompanyDTO) (*entities.Company, error) {
	p, err := utils.GetPrincipalFromCtx(ctx)
	if err != nil {
		return nil, err
	}
	company, err := s.repo.FindCompany(ctx, id)
	if err != nil {
		return nil, err
	}
	keys := company.ScopeKeys()
	if d := s.resolver.Authorize(p, authz.OpManageOrg, authz.ResourceCompany, &keys); d != authz.Grant {
		return nil, decisionError(d)
	}

	if payload.Name != nil {
		company.Name = *payload.Name
	}
	if payload.AddressStreet != nil {
		company.AddressStreet = *payload.AddressStreet
	}
	if payload.AddressCity != nil {
		company.AddressCity = *payload.AddressCity
	}
	if payload.AddressState != nil {
		company.AddressState = *payload.AddressState
	}
	if payload.AddressZip != nil {
		company.AddressZip = *payload.AddressZip
	}
	if payload.Phone != nil {
		company.Phone = *payload.Phone
	}
	if payload.Email != nil {
		company.Email = *payload.Email
	}
	if payload.Timezone != nil {
		company.Timezone = *payload.Timezone
	}
	if payload.IsActive != nil {
		company.IsActive = *payload.IsActive
	}
	return s.repo.UpdateCompany(ctx, company)
}

func (s *CompanyService) DeleteCompany(ctx context.Context, id uuid.UUID) error {
	p, err := utils.GetPrincipalFromCtx(ctx)
	if err != nil {
		return err
	}
	company, err := s.repo.FindCompany(ctx, id)
	if err != nil {
		return err
	}
	keys := company.ScopeKeys()
	if d := s.resolver.Authorize(p, authz.OpManageOrg, authz.ResourceCompany, &keys); d != authz.Grant {
		return decisionError(d)
	}
	s.logger.Info("company deleted",
		zap.String("company_id", id.String()),
		zap.String("deleted_by", p.ID.String()),
	)
	return s.repo.DeleteCompany(ctx, id)
}

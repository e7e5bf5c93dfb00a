package services

import (
	"context"

	"go.uber.org/zap"

	"launch-tms/internal/authz"
	"launch-tms/internal/dto"
	"launch-tms/internal/repositories"
	"launch-tms/pkg/utils"
)

type ReportServiceInterface interface {
	GetFleetSummary(ctx context.Context) ([]dto.FleetSummaryDTO, error)
	GetLoadActivity(ctx context.Context) ([]dto.LoadActivityDTO, error)
}

type reportService struct {
	reportRepo repositories.ReportRepositoryInterface
	resolver   *authz.Resolver
	logger     *zap.Logger
}

func NewReportService(
	reportRepo repositories.ReportRepositoryInterface,
	resolver *authz.Resolver,
	logger *zap.Logger,
) ReportServiceInterface {
	return &reportService{reportRepo: reportRepo, resolver: resolver, logger: logger}
}

func (s *reportService) GetFleetSummary(ctx context.Context) ([]dto.FleetSummaryDTO, error) {
	p, err := utils.GetPrincipalFromCtx(ctx)
	if err != nil {
		return nil, err
	}
	if d := s.resolver.Authorize(p, authz.OpRead, authz.ResourceTruck, nil); d != authz.Grant {
		return nil, decisionError(d)
	}
	return s.reportRepo.GetFleetSummary(ctx, s.resolver.Resolve(p))
}

func (s *reportService) GetLoadActivity(ctx context.Context) ([]dto.LoadActivityDTO, error) {
	p, err := utils.GetPrincipalFromCtx(ctx)
	if err != nil {
		return nil, err
	}
	if d := s.resolver.Authorize(p, authz.OpRead, authz.ResourceLoad, nil); d != authz.Grant {
		return nil, decisionError(d)
	}
	return s.reportRepo.GetLoadActivity(ctx, s.resolver.Resolve(p))
}

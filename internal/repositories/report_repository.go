package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"launch-tms/internal/authz"
	"launch-tms/internal/dto"
)

type ReportRepositoryInterface interface {
	GetFleetSummary(ctx context.Context, scope authz.Scope) ([]dto.FleetSummaryDTO, error)
	GetLoadActivity(ctx context.Context, scope authz.Scope) ([]dto.LoadActivityDTO, error)
}

type ReportRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewReportRepository(storage *pgxpool.Pool, logger *zap.Logger) ReportRepositoryInterface {
	return &ReportRepository{storage: storage, logger: logger}
}

// GetFleetSummary aggregates fleet counts per terminal. The terminal set is
// narrowed by the caller's scope, so counts never leak across tenants.
func (r *ReportRepository) GetFleetSummary(ctx context.Context, scope authz.Scope) ([]dto.FleetSummaryDTO, error) {
	if scope.IsNone() {
		return []dto.FleetSummaryDTO{}, nil
	}

	terminals := psql.Select("t.id", "t.name").
		From("terminals t" +
			" JOIN departments d ON t.department_id = d.id" +
			" JOIN divisions dv ON d.division_id = dv.id").
		Where("t.is_active = TRUE")
	if cond := scope.Condition(authz.ResourceTerminal, "t"); cond != nil {
		terminals = terminals.Where(cond)
	}
	terminalsSQL, args, err := terminals.ToSql()
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`
		SELECT st.id, st.name,
			(SELECT COUNT(*) FROM drivers WHERE home_terminal_id = st.id) AS drivers,
			(SELECT COUNT(*) FROM trucks WHERE home_terminal_id = st.id) AS trucks,
			(SELECT COUNT(*) FROM trailers WHERE home_terminal_id = st.id) AS trailers,
			(SELECT COUNT(*) FROM loads WHERE origin_terminal_id = st.id AND status IN ('pending', 'assigned', 'in_transit')) AS active_loads
		FROM (%s) st
		ORDER BY st.name`, terminalsSQL)

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying fleet summary: %w", err)
	}
	defer rows.Close()

	summary := make([]dto.FleetSummaryDTO, 0)
	for rows.Next() {
		var row dto.FleetSummaryDTO
		if err := rows.Scan(&row.TerminalID, &row.TerminalName, &row.Drivers, &row.Trucks, &row.Trailers, &row.ActiveLoads); err != nil {
			return nil, err
		}
		summary = append(summary, row)
	}
	return summary, rows.Err()
}

func (r *ReportRepository) GetLoadActivity(ctx context.Context, scope authz.Scope) ([]dto.LoadActivityDTO, error) {
	if scope.IsNone() {
		return []dto.LoadActivityDTO{}, nil
	}

	query := psql.Select("l.status", "COUNT(*)").
		From(loadTable + " l").
		GroupBy("l.status").
		OrderBy("l.status")
	if cond := scope.Condition(authz.ResourceLoad, "l"); cond != nil {
		query = query.Where(cond)
	}
	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.storage.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("querying load activity: %w", err)
	}
	defer rows.Close()

	activity := make([]dto.LoadActivityDTO, 0)
	for rows.Next() {
		var row dto.LoadActivityDTO
		if err := rows.Scan(&row.Status, &row.Count); err != nil {
			return nil, err
		}
		activity = append(activity, row)
	}
	return activity, rows.Err()
}

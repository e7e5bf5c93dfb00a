package repositories

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"launch-tms/internal/authz"
	"launch-tms/internal/entities"
	apperrors "launch-tms/pkg/errors"
	"launch-tms/pkg/types"
)

const trailerTable = "trailers"

var trailerFields = []string{
	"tr.id", "tr.trailer_number", "tr.make", "tr.model", "tr.year", "tr.vin",
	"tr.trailer_type", "tr.capacity_tons", "tr.length_feet", "tr.status",
	"tr.next_inspection_due", "tr.registration_expiry",
	"tr.company_id", "tr.division_id", "tr.department_id", "tr.home_terminal_id",
	"tr.created_at", "tr.updated_at",
}

var (
	trailerAllowedFilterFields = map[string]string{
		"status":           "tr.status",
		"trailer_type":     "tr.trailer_type",
		"company_id":       "tr.company_id",
		"division_id":      "tr.division_id",
		"department_id":    "tr.department_id",
		"home_terminal_id": "tr.home_terminal_id",
	}
	trailerAllowedSortFields = map[string]string{
		"trailer_number": "tr.trailer_number",
		"trailer_type":   "tr.trailer_type",
		"year":           "tr.year",
		"created_at":     "tr.created_at",
	}
)

type TrailerRepositoryInterface interface {
	GetTrailers(ctx context.Context, scope authz.Scope, filter types.Filter) ([]entities.Trailer, uint64, error)
	FindTrailer(ctx context.Context, id uuid.UUID) (*entities.Trailer, error)
	CreateTrailer(ctx context.Context, trailer *entities.Trailer) (*entities.Trailer, error)
	UpdateTrailer(ctx context.Context, trailer *entities.Trailer) (*entities.Trailer, error)
	DeleteTrailer(ctx context.Context, id uuid.UUID) error
}

type TrailerRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewTrailerRepository(storage *pgxpool.Pool, logger *zap.Logger) TrailerRepositoryInterface {
	return &TrailerRepository{storage: storage, logger: logger}
}

func scanTrailer(row pgx.Row) (*entities.Trailer, error) {
	var t entities.Trailer
	err := row.Scan(
		&t.ID, &t.TrailerNumber, &t.Make, &t.Model, &t.Year, &t.VIN,
		&t.TrailerType, &t.CapacityTons, &t.LengthFeet, &t.Status,
		&t.NextInspectionDue, &t.RegistrationExpiry,
		&t.CompanyID, &t.DivisionID, &t.DepartmentID, &t.HomeTerminalID,
		&t.CreatedAt, &t.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning trailer: %w", err)
	}
	return &t, nil
}

func (r *TrailerRepository) GetTrailers(ctx context.Context, scope authz.Scope, filter types.Filter) ([]entities.Trailer, uint64, error) {
	if scope.IsNone() {
		return []entities.Trailer{}, 0, nil
	}

	conds := listConditions(filter, trailerAllowedFilterFields)
	if cond := scope.Condition(authz.ResourceTrailer, "tr"); cond != nil {
		conds = append(conds, cond)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		conds = append(conds, sq.Or{
			sq.ILike{"tr.trailer_number": pattern},
			sq.ILike{"tr.vin": pattern},
		})
	}

	countQuery := psql.Select("COUNT(*)").From(trailerTable + " tr")
	for _, cond := range conds {
		countQuery = countQuery.Where(cond)
	}
	sqlStr, args, err := countQuery.ToSql()
	if err != nil {
		return nil, 0, err
	}
	var total uint64
	if err := r.storage.QueryRow(ctx, sqlStr, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("counting trailers: %w", err)
	}
	if total == 0 {
		return []entities.Trailer{}, 0, nil
	}

	query := psql.Select(trailerFields...).From(trailerTable + " tr")
	for _, cond := range conds {
		query = query.Where(cond)
	}
	query = query.OrderBy(orderByClause(filter, trailerAllowedSortFields, "tr.trailer_number ASC"))
	query = applyPagination(query, filter)

	sqlStr, args, err = query.ToSql()
	if err != nil {
		return nil, 0, err
	}
	rows, err := r.storage.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	trailers := make([]entities.Trailer, 0, total)
	for rows.Next() {
		t, err := scanTrailer(rows)
		if err != nil {
			return nil, 0, err
		}
		trailers = append(trailers, *t)
	}
	return trailers, total, rows.Err()
}

func (r *TrailerRepository) FindTrailer(ctx context.Context, id uuid.UUID) (*entities.Trailer, error) {
	sqlStr, args, err := psql.Select(trailerFields...).
		From(trailerTable + " tr").
		Where(sq.Eq{"tr.id": id}).
		ToSql()
	if err != nil {
		return nil, err
	}
	return scanTrailer(r.storage.QueryRow(ctx, sqlStr, args...))
}

func (r *TrailerRepository) CreateTrailer(ctx context.Context, trailer *entities.Trailer) (*entities.Trailer, error) {
	sqlStr, args, err := psql.Insert(trailerTable).
		Columns("trailer_number", "make", "model", "year", "vin",
			"trailer_type", "capacity_tons", "length_feet", "status",
			"next_inspection_due", "registration_expiry",
			"company_id", "division_id", "department_id", "home_terminal_id").
		Values(trailer.TrailerNumber, trailer.Make, trailer.Model, trailer.Year, trailer.VIN,
			trailer.TrailerType, trailer.CapacityTons, trailer.LengthFeet, trailer.Status,
			trailer.NextInspectionDue, trailer.RegistrationExpiry,
			trailer.CompanyID, trailer.DivisionID, trailer.DepartmentID, trailer.HomeTerminalID).
		Suffix("RETURNING " + stripAlias(trailerFields, "tr.")).
		ToSql()
	if err != nil {
		return nil, err
	}
	created, err := scanTrailer(r.storage.QueryRow(ctx, sqlStr, args...))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperrors.NewConflictError("trailer with this VIN or number already exists")
		}
		return nil, err
	}
	return created, nil
}

func (r *TrailerRepository) UpdateTrailer(ctx context.Context, trailer *entities.Trailer) (*entities.Trailer, error) {
	sqlStr, args, err := psql.Update(trailerTable).
		Set("trailer_number", trailer.TrailerNumber).
		Set("make", trailer.Make).
		Set("model", trailer.Model).
		Set("year", trailer.Year).
		Set("vin", trailer.VIN).
		Set("trailer_type", trailer.TrailerType).
		Set("capacity_tons", trailer.CapacityTons).
		Set("length_feet", trailer.LengthFeet).
		Set("status", trailer.Status).
		Set("next_inspection_due", trailer.NextInspectionDue).
		Set("registration_expiry", trailer.RegistrationExpiry).
		Set("division_id", trailer.DivisionID).
		Set("department_id", trailer.DepartmentID).
		Set("home_terminal_id", trailer.HomeTerminalID).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": trailer.ID}).
		Suffix("RETURNING " + stripAlias(trailerFields, "tr.")).
		ToSql()
	if err != nil {
		return nil, err
	}
	updated, err := scanTrailer(r.storage.QueryRow(ctx, sqlStr, args...))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperrors.NewConflictError("trailer with this VIN or number already exists")
		}
		return nil, err
	}
	return updated, nil
}

func (r *TrailerRepository) DeleteTrailer(ctx context.Context, id uuid.UUID) error {
	sqlStr, args, err := psql.Delete(trailerTable).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return err
	}
	tag, err := r.storage.Exec(ctx, sqlStr, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

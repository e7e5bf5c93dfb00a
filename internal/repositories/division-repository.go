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

const divisionTable = "divisions"

var divisionFields = []string{
	"dv.id", "dv.company_id", "dv.name", "dv.code", "dv.manager_email", "dv.is_active",
	"dv.created_at", "dv.updated_at",
}

var (
	divisionAllowedFilterFields = map[string]string{"company_id": "dv.company_id", "is_active": "dv.is_active"}
	divisionAllowedSortFields   = map[string]string{"name": "dv.name", "code": "dv.code", "created_at": "dv.created_at"}
)

type DivisionRepositoryInterface interface {
	GetDivisions(ctx context.Context, scope authz.Scope, filter types.Filter) ([]entities.Division, uint64, error)
	FindDivision(ctx context.Context, id uuid.UUID) (*entities.Division, error)
	CreateDivision(ctx context.Context, division *entities.Division) (*entities.Division, error)
	UpdateDivision(ctx context.Context, division *entities.Division) (*entities.Division, error)
	DeleteDivision(ctx context.Context, id uuid.UUID) error
}

type DivisionRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewDivisionRepository(storage *pgxpool.Pool, logger *zap.Logger) DivisionRepositoryInterface {
	return &DivisionRepository{storage: storage, logger: logger}
}

func scanDivision(row pgx.Row) (*entities.Division, error) {
	var d entities.Division
	err := row.Scan(&d.ID, &d.CompanyID, &d.Name, &d.Code, &d.ManagerEmail, &d.IsActive, &d.CreatedAt, &d.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning division: %w", err)
	}
	return &d, nil
}

func (r *DivisionRepository) GetDivisions(ctx context.Context, scope authz.Scope, filter types.Filter) ([]entities.Division, uint64, error) {
	if scope.IsNone() {
		return []entities.Division{}, 0, nil
	}

	conds := listConditions(filter, divisionAllowedFilterFields)
	if cond := scope.Condition(authz.ResourceDivision, "dv"); cond != nil {
		conds = append(conds, cond)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		conds = append(conds, sq.Or{sq.ILike{"dv.name": pattern}, sq.ILike{"dv.code": pattern}})
	}

	countQuery := psql.Select("COUNT(*)").From(divisionTable + " dv")
	for _, cond := range conds {
		countQuery = countQuery.Where(cond)
	}
	sqlStr, args, err := countQuery.ToSql()
	if err != nil {
		return nil, 0, err
	}
	var total uint64
	if err := r.storage.QueryRow(ctx, sqlStr, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("counting divisions: %w", err)
	}
	if total == 0 {
		return []entities.Division{}, 0, nil
	}

	query := psql.Select(divisionFields...).From(divisionTable + " dv")
	for _, cond := range conds {
		query = query.Where(cond)
	}
	query = query.OrderBy(orderByClause(filter, divisionAllowedSortFields, "dv.name ASC"))
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

	divisions := make([]entities.Division, 0, total)
	for rows.Next() {
		d, err := scanDivision(rows)
		if err != nil {
			return nil, 0, err
		}
		divisions = append(divisions, *d)
	}
	return divisions, total, rows.Err()
}

func (r *DivisionRepository) FindDivision(ctx context.Context, id uuid.UUID) (*entities.Division, error) {
	sqlStr, args, err := psql.Select(divisionFields...).
		From(divisionTable + " dv").
		Where(sq.Eq{"dv.id": id}).
		ToSql()
	if err != nil {
		return nil, err
	}
	return scanDivision(r.storage.QueryRow(ctx, sqlStr, args...))
}

func (r *DivisionRepository) CreateDivision(ctx context.Context, division *entities.Division) (*entities.Division, error) {
	sqlStr, args, err := psql.Insert(divisionTable).
		Columns("company_id", "name", "code", "manager_email", "is_active").
		Values(division.CompanyID, division.Name, division.Code, division.ManagerEmail, division.IsActive).
		Suffix("RETURNING " + stripAlias(divisionFields, "dv.")).
		ToSql()
	if err != nil {
		return nil, err
	}
	created, err := scanDivision(r.storage.QueryRow(ctx, sqlStr, args...))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperrors.NewConflictError("division with this code already exists in the company")
		}
		return nil, err
	}
	return created, nil
}

func (r *DivisionRepository) UpdateDivision(ctx context.Context, division *entities.Division) (*entities.Division, error) {
	sqlStr, args, err := psql.Update(divisionTable).
		Set("name", division.Name).
		Set("code", division.Code).
		Set("manager_email", division.ManagerEmail).
		Set("is_active", division.IsActive).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": division.ID}).
		Suffix("RETURNING " + stripAlias(divisionFields, "dv.")).
		ToSql()
	if err != nil {
		return nil, err
	}
	updated, err := scanDivision(r.storage.QueryRow(ctx, sqlStr, args...))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperrors.NewConflictError("division with this code already exists in the company")
		}
		return nil, err
	}
	return updated, nil
}

func (r *DivisionRepository) DeleteDivision(ctx context.Context, id uuid.UUID) error {
	sqlStr, args, err := psql.Delete(divisionTable).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return err
	}
	tag, err := r.storage.Exec(ctx, sqlStr, args...)
	if isForeignKeyViolation(err) {
		return apperrors.NewConflictError("division still has departments or records assigned to it")
	}
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

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

const departmentTable = "departments"

// company_id rides along from the divisions join so single-object
// authorization has the full placement chain without a second query.
var departmentFields = []string{
	"d.id", "d.division_id", "d.name", "d.code", "d.manager_email", "d.is_active",
	"d.created_at", "d.updated_at",
	"dv.company_id",
}

const departmentJoin = "departments d JOIN divisions dv ON d.division_id = dv.id"

var (
	departmentAllowedFilterFields = map[string]string{"division_id": "d.division_id", "is_active": "d.is_active"}
	departmentAllowedSortFields   = map[string]string{"name": "d.name", "code": "d.code", "created_at": "d.created_at"}
)

type DepartmentRepositoryInterface interface {
	GetDepartments(ctx context.Context, scope authz.Scope, filter types.Filter) ([]entities.Department, uint64, error)
	FindDepartment(ctx context.Context, id uuid.UUID) (*entities.Department, error)
	CreateDepartment(ctx context.Context, department *entities.Department) (*entities.Department, error)
	UpdateDepartment(ctx context.Context, department *entities.Department) (*entities.Department, error)
	DeleteDepartment(ctx context.Context, id uuid.UUID) error
}

type DepartmentRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewDepartmentRepository(storage *pgxpool.Pool, logger *zap.Logger) DepartmentRepositoryInterface {
	return &DepartmentRepository{storage: storage, logger: logger}
}

func scanDepartment(row pgx.Row) (*entities.Department, error) {
	var d entities.Department
	err := row.Scan(&d.ID, &d.DivisionID, &d.Name, &d.Code, &d.ManagerEmail, &d.IsActive,
		&d.CreatedAt, &d.UpdatedAt, &d.CompanyID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning department: %w", err)
	}
	return &d, nil
}

func (r *DepartmentRepository) GetDepartments(ctx context.Context, scope authz.Scope, filter types.Filter) ([]entities.Department, uint64, error) {
	if scope.IsNone() {
		return []entities.Department{}, 0, nil
	}

	conds := listConditions(filter, departmentAllowedFilterFields)
	if cond := scope.Condition(authz.ResourceDepartment, "d"); cond != nil {
		conds = append(conds, cond)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		conds = append(conds, sq.Or{sq.ILike{"d.name": pattern}, sq.ILike{"d.code": pattern}})
	}

	countQuery := psql.Select("COUNT(*)").From(departmentJoin)
	for _, cond := range conds {
		countQuery = countQuery.Where(cond)
	}
	sqlStr, args, err := countQuery.ToSql()
	if err != nil {
		return nil, 0, err
	}
	var total uint64
	if err := r.storage.QueryRow(ctx, sqlStr, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("counting departments: %w", err)
	}
	if total == 0 {
		return []entities.Department{}, 0, nil
	}

	query := psql.Select(departmentFields...).From(departmentJoin)
	for _, cond := range conds {
		query = query.Where(cond)
	}
	query = query.OrderBy(orderByClause(filter, departmentAllowedSortFields, "d.name ASC"))
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

	departments := make([]entities.Department, 0, total)
	for rows.Next() {
		d, err := scanDepartment(rows)
		if err != nil {
			return nil, 0, err
		}
		departments = append(departments, *d)
	}
	return departments, total, rows.Err()
}

func (r *DepartmentRepository) FindDepartment(ctx context.Context, id uuid.UUID) (*entities.Department, error) {
	sqlStr, args, err := psql.Select(departmentFields...).
		From(departmentJoin).
		Where(sq.Eq{"d.id": id}).
		ToSql()
	if err != nil {
		return nil, err
	}
	return scanDepartment(r.storage.QueryRow(ctx, sqlStr, args...))
}

func (r *DepartmentRepository) CreateDepartment(ctx context.Context, department *entities.Department) (*entities.Department, error) {
	sqlStr, args, err := psql.Insert(departmentTable).
		Columns("division_id", "name", "code", "manager_email", "is_active").
		Values(department.DivisionID, department.Name, department.Code, department.ManagerEmail, department.IsActive).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return nil, err
	}
	var id uuid.UUID
	if err := r.storage.QueryRow(ctx, sqlStr, args...).Scan(&id); err != nil {
		if isUniqueViolation(err) {
			return nil, apperrors.NewConflictError("department with this code already exists in the division")
		}
		return nil, err
	}
	return r.FindDepartment(ctx, id)
}

func (r *DepartmentRepository) UpdateDepartment(ctx context.Context, department *entities.Department) (*entities.Department, error) {
	sqlStr, args, err := psql.Update(departmentTable).
		Set("name", department.Name).
		Set("code", department.Code).
		Set("manager_email", department.ManagerEmail).
		Set("is_active", department.IsActive).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": department.ID}).
		ToSql()
	if err != nil {
		return nil, err
	}
	tag, err := r.storage.Exec(ctx, sqlStr, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperrors.NewConflictError("department with this code already exists in the division")
		}
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, apperrors.ErrNotFound
	}
	return r.FindDepartment(ctx, department.ID)
}

func (r *DepartmentRepository) DeleteDepartment(ctx context.Context, id uuid.UUID) error {
	sqlStr, args, err := psql.Delete(departmentTable).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return err
	}
	tag, err := r.storage.Exec(ctx, sqlStr, args...)
	if isForeignKeyViolation(err) {
		return apperrors.NewConflictError("department still has terminals or records assigned to it")
	}
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

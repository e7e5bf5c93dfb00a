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

const driverTable = "drivers"

var driverFields = []string{
	"dr.id", "dr.first_name", "dr.last_name", "dr.email", "dr.phone",
	"dr.hire_date", "dr.status",
	"dr.license_number", "dr.license_expiry",
	"dr.emergency_contact_name", "dr.emergency_contact_phone",
	"dr.company_id", "dr.division_id", "dr.department_id", "dr.home_terminal_id",
	"dr.assigned_truck_id",
	"dr.created_at", "dr.updated_at",
}

var (
	driverAllowedFilterFields = map[string]string{
		"status":           "dr.status",
		"company_id":       "dr.company_id",
		"division_id":      "dr.division_id",
		"department_id":    "dr.department_id",
		"home_terminal_id": "dr.home_terminal_id",
	}
	driverAllowedSortFields = map[string]string{
		"first_name":     "dr.first_name",
		"last_name":      "dr.last_name",
		"hire_date":      "dr.hire_date",
		"license_expiry": "dr.license_expiry",
		"created_at":     "dr.created_at",
	}
)

type DriverRepositoryInterface interface {
	GetDrivers(ctx context.Context, scope authz.Scope, filter types.Filter) ([]entities.Driver, uint64, error)
	FindDriver(ctx context.Context, id uuid.UUID) (*entities.Driver, error)
	CreateDriver(ctx context.Context, driver *entities.Driver) (*entities.Driver, error)
	UpdateDriver(ctx context.Context, driver *entities.Driver) (*entities.Driver, error)
	DeleteDriver(ctx context.Context, id uuid.UUID) error
}

type DriverRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewDriverRepository(storage *pgxpool.Pool, logger *zap.Logger) DriverRepositoryInterface {
	return &DriverRepository{storage: storage, logger: logger}
}

func scanDriver(row pgx.Row) (*entities.Driver, error) {
	var d entities.Driver
	err := row.Scan(
		&d.ID, &d.FirstName, &d.LastName, &d.Email, &d.Phone,
		&d.HireDate, &d.Status,
		&d.LicenseNumber, &d.LicenseExpiry,
		&d.EmergencyContactName, &d.EmergencyContactPhone,
		&d.CompanyID, &d.DivisionID, &d.DepartmentID, &d.HomeTerminalID,
		&d.AssignedTruckID,
		&d.CreatedAt, &d.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning driver: %w", err)
	}
	return &d, nil
}

func (r *DriverRepository) GetDrivers(ctx context.Context, scope authz.Scope, filter types.Filter) ([]entities.Driver, uint64, error) {
	if scope.IsNone() {
		return []entities.Driver{}, 0, nil
	}

	conds := listConditions(filter, driverAllowedFilterFields)
	if cond := scope.Condition(authz.ResourceDriver, "dr"); cond != nil {
		conds = append(conds, cond)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		conds = append(conds, sq.Or{
			sq.ILike{"dr.first_name": pattern},
			sq.ILike{"dr.last_name": pattern},
			sq.ILike{"dr.license_number": pattern},
		})
	}

	countQuery := psql.Select("COUNT(*)").From(driverTable + " dr")
	for _, cond := range conds {
		countQuery = countQuery.Where(cond)
	}
	sqlStr, args, err := countQuery.ToSql()
	if err != nil {
		return nil, 0, err
	}
	var total uint64
	if err := r.storage.QueryRow(ctx, sqlStr, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("counting drivers: %w", err)
	}
	if total == 0 {
		return []entities.Driver{}, 0, nil
	}

	query := psql.Select(driverFields...).From(driverTable + " dr")
	for _, cond := range conds {
		query = query.Where(cond)
	}
	query = query.OrderBy(orderByClause(filter, driverAllowedSortFields, "dr.last_name ASC, dr.first_name ASC"))
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

	drivers := make([]entities.Driver, 0, total)
	for rows.Next() {
		d, err := scanDriver(rows)
		if err != nil {
			return nil, 0, err
		}
		drivers = append(drivers, *d)
	}
	return drivers, total, rows.Err()
}

func (r *DriverRepository) FindDriver(ctx context.Context, id uuid.UUID) (*entities.Driver, error) {
	sqlStr, args, err := psql.Select(driverFields...).
		From(driverTable + " dr").
		Where(sq.Eq{"dr.id": id}).
		ToSql()
	if err != nil {
		return nil, err
	}
	return scanDriver(r.storage.QueryRow(ctx, sqlStr, args...))
}

func (r *DriverRepository) CreateDriver(ctx context.Context, driver *entities.Driver) (*entities.Driver, error) {
	sqlStr, args, err := psql.Insert(driverTable).
		Columns("first_name", "last_name", "email", "phone", "hire_date", "status",
			"license_number", "license_expiry",
			"emergency_contact_name", "emergency_contact_phone",
			"company_id", "division_id", "department_id", "home_terminal_id").
		Values(driver.FirstName, driver.LastName, driver.Email, driver.Phone, driver.HireDate, driver.Status,
			driver.LicenseNumber, driver.LicenseExpiry,
			driver.EmergencyContactName, driver.EmergencyContactPhone,
			driver.CompanyID, driver.DivisionID, driver.DepartmentID, driver.HomeTerminalID).
		Suffix("RETURNING " + stripAlias(driverFields, "dr.")).
		ToSql()
	if err != nil {
		return nil, err
	}
	created, err := scanDriver(r.storage.QueryRow(ctx, sqlStr, args...))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperrors.NewConflictError("driver with this license number already exists")
		}
		return nil, err
	}
	return created, nil
}

func (r *DriverRepository) UpdateDriver(ctx context.Context, driver *entities.Driver) (*entities.Driver, error) {
	sqlStr, args, err := psql.Update(driverTable).
		Set("first_name", driver.FirstName).
		Set("last_name", driver.LastName).
		Set("email", driver.Email).
		Set("phone", driver.Phone).
		Set("hire_date", driver.HireDate).
		Set("status", driver.Status).
		Set("license_number", driver.LicenseNumber).
		Set("license_expiry", driver.LicenseExpiry).
		Set("emergency_contact_name", driver.EmergencyContactName).
		Set("emergency_contact_phone", driver.EmergencyContactPhone).
		Set("division_id", driver.DivisionID).
		Set("department_id", driver.DepartmentID).
		Set("home_terminal_id", driver.HomeTerminalID).
		Set("assigned_truck_id", driver.AssignedTruckID).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": driver.ID}).
		Suffix("RETURNING " + stripAlias(driverFields, "dr.")).
		ToSql()
	if err != nil {
		return nil, err
	}
	updated, err := scanDriver(r.storage.QueryRow(ctx, sqlStr, args...))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperrors.NewConflictError("driver with this license number already exists")
		}
		return nil, err
	}
	return updated, nil
}

func (r *DriverRepository) DeleteDriver(ctx context.Context, id uuid.UUID) error {
	sqlStr, args, err := psql.Delete(driverTable).Where(sq.Eq{"id": id}).ToSql()
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

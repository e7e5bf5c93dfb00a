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

const (
	truckTable             = "trucks"
	maintenanceRecordTable = "maintenance_records"
)

var truckFields = []string{
	"tk.id", "tk.make", "tk.model", "tk.year", "tk.license_plate", "tk.vin",
	"tk.status", "tk.mileage",
	"tk.next_maintenance_due", "tk.registration_expiry", "tk.insurance_expiry",
	"tk.assigned_driver_id",
	"tk.company_id", "tk.division_id", "tk.department_id", "tk.home_terminal_id",
	"tk.created_at", "tk.updated_at",
}

var maintenanceRecordFields = []string{
	"m.id", "m.truck_id", "m.maintenance_type", "m.description",
	"m.performed_by", "m.performed_date", "m.mileage_at_service",
	"m.cost", "m.parts_cost", "m.labor_cost", "m.labor_hours",
	"m.notes",
	"m.created_at", "m.updated_at",
}

var (
	truckAllowedFilterFields = map[string]string{
		"status":           "tk.status",
		"make":             "tk.make",
		"year":             "tk.year",
		"company_id":       "tk.company_id",
		"division_id":      "tk.division_id",
		"department_id":    "tk.department_id",
		"home_terminal_id": "tk.home_terminal_id",
	}
	truckAllowedSortFields = map[string]string{
		"make":       "tk.make",
		"year":       "tk.year",
		"mileage":    "tk.mileage",
		"created_at": "tk.created_at",
	}
)

type TruckRepositoryInterface interface {
	GetTrucks(ctx context.Context, scope authz.Scope, filter types.Filter) ([]entities.Truck, uint64, error)
	FindTruck(ctx context.Context, id uuid.UUID) (*entities.Truck, error)
	CreateTruck(ctx context.Context, truck *entities.Truck) (*entities.Truck, error)
	UpdateTruck(ctx context.Context, truck *entities.Truck) (*entities.Truck, error)
	DeleteTruck(ctx context.Context, id uuid.UUID) error
	GetMaintenanceRecords(ctx context.Context, truckID uuid.UUID) ([]entities.MaintenanceRecord, error)
	CreateMaintenanceRecord(ctx context.Context, record *entities.MaintenanceRecord) (*entities.MaintenanceRecord, error)
}

type TruckRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewTruckRepository(storage *pgxpool.Pool, logger *zap.Logger) TruckRepositoryInterface {
	return &TruckRepository{storage: storage, logger: logger}
}

func scanTruck(row pgx.Row) (*entities.Truck, error) {
	var t entities.Truck
	err := row.Scan(
		&t.ID, &t.Make, &t.Model, &t.Year, &t.LicensePlate, &t.VIN,
		&t.Status, &t.Mileage,
		&t.NextMaintenanceDue, &t.RegistrationExpiry, &t.InsuranceExpiry,
		&t.AssignedDriverID,
		&t.CompanyID, &t.DivisionID, &t.DepartmentID, &t.HomeTerminalID,
		&t.CreatedAt, &t.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning truck: %w", err)
	}
	return &t, nil
}

func (r *TruckRepository) GetTrucks(ctx context.Context, scope authz.Scope, filter types.Filter) ([]entities.Truck, uint64, error) {
	if scope.IsNone() {
		return []entities.Truck{}, 0, nil
	}

	conds := listConditions(filter, truckAllowedFilterFields)
	if cond := scope.Condition(authz.ResourceTruck, "tk"); cond != nil {
		conds = append(conds, cond)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		conds = append(conds, sq.Or{
			sq.ILike{"tk.make": pattern},
			sq.ILike{"tk.model": pattern},
			sq.ILike{"tk.vin": pattern},
			sq.ILike{"tk.license_plate": pattern},
		})
	}

	countQuery := psql.Select("COUNT(*)").From(truckTable + " tk")
	for _, cond := range conds {
		countQuery = countQuery.Where(cond)
	}
	sqlStr, args, err := countQuery.ToSql()
	if err != nil {
		return nil, 0, err
	}
	var total uint64
	if err := r.storage.QueryRow(ctx, sqlStr, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("counting trucks: %w", err)
	}
	if total == 0 {
		return []entities.Truck{}, 0, nil
	}

	query := psql.Select(truckFields...).From(truckTable + " tk")
	for _, cond := range conds {
		query = query.Where(cond)
	}
	query = query.OrderBy(orderByClause(filter, truckAllowedSortFields, "tk.created_at DESC"))
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

	trucks := make([]entities.Truck, 0, total)
	for rows.Next() {
		t, err := scanTruck(rows)
		if err != nil {
			return nil, 0, err
		}
		trucks = append(trucks, *t)
	}
	return trucks, total, rows.Err()
}

func (r *TruckRepository) FindTruck(ctx context.Context, id uuid.UUID) (*entities.Truck, error) {
	sqlStr, args, err := psql.Select(truckFields...).
		From(truckTable + " tk").
		Where(sq.Eq{"tk.id": id}).
		ToSql()
	if err != nil {
		return nil, err
	}
	return scanTruck(r.storage.QueryRow(ctx, sqlStr, args...))
}

func (r *TruckRepository) CreateTruck(ctx context.Context, truck *entities.Truck) (*entities.Truck, error) {
	sqlStr, args, err := psql.Insert(truckTable).
		Columns("make", "model", "year", "license_plate", "vin", "status", "mileage",
			"next_maintenance_due", "registration_expiry", "insurance_expiry",
			"company_id", "division_id", "department_id", "home_terminal_id").
		Values(truck.Make, truck.Model, truck.Year, truck.LicensePlate, truck.VIN, truck.Status, truck.Mileage,
			truck.NextMaintenanceDue, truck.RegistrationExpiry, truck.InsuranceExpiry,
			truck.CompanyID, truck.DivisionID, truck.DepartmentID, truck.HomeTerminalID).
		Suffix("RETURNING " + stripAlias(truckFields, "tk.")).
		ToSql()
	if err != nil {
		return nil, err
	}
	created, err := scanTruck(r.storage.QueryRow(ctx, sqlStr, args...))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperrors.NewConflictError("truck with this VIN already exists")
		}
		return nil, err
	}
	return created, nil
}

func (r *TruckRepository) UpdateTruck(ctx context.Context, truck *entities.Truck) (*entities.Truck, error) {
	sqlStr, args, err := psql.Update(truckTable).
		Set("make", truck.Make).
		Set("model", truck.Model).
		Set("year", truck.Year).
		Set("license_plate", truck.LicensePlate).
		Set("vin", truck.VIN).
		Set("status", truck.Status).
		Set("mileage", truck.Mileage).
		Set("next_maintenance_due", truck.NextMaintenanceDue).
		Set("registration_expiry", truck.RegistrationExpiry).
		Set("insurance_expiry", truck.InsuranceExpiry).
		Set("assigned_driver_id", truck.AssignedDriverID).
		Set("division_id", truck.DivisionID).
		Set("department_id", truck.DepartmentID).
		Set("home_terminal_id", truck.HomeTerminalID).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": truck.ID}).
		Suffix("RETURNING " + stripAlias(truckFields, "tk.")).
		ToSql()
	if err != nil {
		return nil, err
	}
	updated, err := scanTruck(r.storage.QueryRow(ctx, sqlStr, args...))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperrors.NewConflictError("truck with this VIN already exists")
		}
		return nil, err
	}
	return updated, nil
}

func (r *TruckRepository) DeleteTruck(ctx context.Context, id uuid.UUID) error {
	sqlStr, args, err := psql.Delete(truckTable).Where(sq.Eq{"id": id}).ToSql()
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

func scanMaintenanceRecord(row pgx.Row) (*entities.MaintenanceRecord, error) {
	var m entities.MaintenanceRecord
	err := row.Scan(
		&m.ID, &m.TruckID, &m.MaintenanceType, &m.Description,
		&m.PerformedBy, &m.PerformedDate, &m.MileageAtService,
		&m.Cost, &m.PartsCost, &m.LaborCost, &m.LaborHours,
		&m.Notes,
		&m.CreatedAt, &m.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning maintenance record: %w", err)
	}
	return &m, nil
}

// Maintenance records are scoped through their parent truck; the service
// authorizes against the truck before touching the history.
func (r *TruckRepository) GetMaintenanceRecords(ctx context.Context, truckID uuid.UUID) ([]entities.MaintenanceRecord, error) {
	sqlStr, args, err := psql.Select(maintenanceRecordFields...).
		From(maintenanceRecordTable + " m").
		Where(sq.Eq{"m.truck_id": truckID}).
		OrderBy("m.performed_date DESC").
		ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := r.storage.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]entities.MaintenanceRecord, 0)
	for rows.Next() {
		m, err := scanMaintenanceRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *m)
	}
	return records, rows.Err()
}

func (r *TruckRepository) CreateMaintenanceRecord(ctx context.Context, record *entities.MaintenanceRecord) (*entities.MaintenanceRecord, error) {
	sqlStr, args, err := psql.Insert(maintenanceRecordTable).
		Columns("truck_id", "maintenance_type", "description",
			"performed_by", "performed_date", "mileage_at_service",
			"cost", "parts_cost", "labor_cost", "labor_hours", "notes").
		Values(record.TruckID, record.MaintenanceType, record.Description,
			record.PerformedBy, record.PerformedDate, record.MileageAtService,
			record.Cost, record.PartsCost, record.LaborCost, record.LaborHours, record.Notes).
		Suffix("RETURNING " + stripAlias(maintenanceRecordFields, "m.")).
		ToSql()
	if err != nil {
		return nil, err
	}
	return scanMaintenanceRecord(r.storage.QueryRow(ctx, sqlStr, args...))
}

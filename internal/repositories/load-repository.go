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
	loadTable      = "loads"
	loadEventTable = "load_events"
)

var loadFields = []string{
	"l.id", "l.load_number", "l.bol_number",
	"l.shipper", "l.receiver",
	"l.pickup_address", "l.pickup_city", "l.pickup_state", "l.pickup_zip",
	"l.delivery_address", "l.delivery_city", "l.delivery_state", "l.delivery_zip",
	"l.assigned_driver_id", "l.assigned_truck_id",
	"l.status",
	"l.cargo_description", "l.weight_lbs", "l.distance_miles", "l.hazmat",
	"l.pickup_date", "l.delivery_date",
	"l.rate", "l.notes",
	"l.company_id", "l.division_id", "l.department_id",
	"l.origin_terminal_id", "l.destination_terminal_id",
	"l.dispatched_by",
	"l.created_at", "l.updated_at",
}

var loadEventFields = []string{
	"e.id", "e.load_id", "e.event_type", "e.description", "e.timestamp",
	"e.location_city", "e.location_state",
	"e.reported_by", "e.severity", "e.resolved",
	"e.created_at", "e.updated_at",
}

var (
	loadAllowedFilterFields = map[string]string{
		"status":                  "l.status",
		"hazmat":                  "l.hazmat",
		"company_id":              "l.company_id",
		"division_id":             "l.division_id",
		"department_id":           "l.department_id",
		"origin_terminal_id":      "l.origin_terminal_id",
		"assigned_driver_id":      "l.assigned_driver_id",
		"assigned_truck_id":       "l.assigned_truck_id",
		"pickup_state":            "l.pickup_state",
		"delivery_state":          "l.delivery_state",
		"destination_terminal_id": "l.destination_terminal_id",
	}
	loadAllowedSortFields = map[string]string{
		"load_number":   "l.load_number",
		"pickup_date":   "l.pickup_date",
		"delivery_date": "l.delivery_date",
		"rate":          "l.rate",
		"created_at":    "l.created_at",
	}
)

type LoadRepositoryInterface interface {
	GetLoads(ctx context.Context, scope authz.Scope, filter types.Filter) ([]entities.Load, uint64, error)
	FindLoad(ctx context.Context, id uuid.UUID) (*entities.Load, error)
	CreateLoad(ctx context.Context, load *entities.Load) (*entities.Load, error)
	UpdateLoad(ctx context.Context, load *entities.Load) (*entities.Load, error)
	DeleteLoad(ctx context.Context, id uuid.UUID) error

	GetLoadEvents(ctx context.Context, loadID uuid.UUID) ([]entities.LoadEvent, error)
	CreateLoadEvent(ctx context.Context, event *entities.LoadEvent) (*entities.LoadEvent, error)
}

type LoadRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewLoadRepository(storage *pgxpool.Pool, logger *zap.Logger) LoadRepositoryInterface {
	return &LoadRepository{storage: storage, logger: logger}
}

func scanLoad(row pgx.Row) (*entities.Load, error) {
	var l entities.Load
	err := row.Scan(
		&l.ID, &l.LoadNumber, &l.BOLNumber,
		&l.Shipper, &l.Receiver,
		&l.PickupAddress, &l.PickupCity, &l.PickupState, &l.PickupZip,
		&l.DeliveryAddress, &l.DeliveryCity, &l.DeliveryState, &l.DeliveryZip,
		&l.AssignedDriverID, &l.AssignedTruckID,
		&l.Status,
		&l.CargoDescription, &l.WeightLbs, &l.DistanceMiles, &l.Hazmat,
		&l.PickupDate, &l.DeliveryDate,
		&l.Rate, &l.Notes,
		&l.CompanyID, &l.DivisionID, &l.DepartmentID,
		&l.OriginTerminalID, &l.DestinationTerminalID,
		&l.DispatchedBy,
		&l.CreatedAt, &l.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning load: %w", err)
	}
	return &l, nil
}

func scanLoadEvent(row pgx.Row) (*entities.LoadEvent, error) {
	var e entities.LoadEvent
	err := row.Scan(
		&e.ID, &e.LoadID, &e.EventType, &e.Description, &e.Timestamp,
		&e.LocationCity, &e.LocationState,
		&e.ReportedBy, &e.Severity, &e.Resolved,
		&e.CreatedAt, &e.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning load event: %w", err)
	}
	return &e, nil
}

func (r *LoadRepository) GetLoads(ctx context.Context, scope authz.Scope, filter types.Filter) ([]entities.Load, uint64, error) {
	if scope.IsNone() {
		return []entities.Load{}, 0, nil
	}

	conds := listConditions(filter, loadAllowedFilterFields)
	if cond := scope.Condition(authz.ResourceLoad, "l"); cond != nil {
		conds = append(conds, cond)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		conds = append(conds, sq.Or{
			sq.ILike{"l.load_number": pattern},
			sq.ILike{"l.bol_number": pattern},
			sq.ILike{"l.shipper": pattern},
			sq.ILike{"l.receiver": pattern},
		})
	}

	countQuery := psql.Select("COUNT(*)").From(loadTable + " l")
	for _, cond := range conds {
		countQuery = countQuery.Where(cond)
	}
	sqlStr, args, err := countQuery.ToSql()
	if err != nil {
		return nil, 0, err
	}
	var total uint64
	if err := r.storage.QueryRow(ctx, sqlStr, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("counting loads: %w", err)
	}
	if total == 0 {
		return []entities.Load{}, 0, nil
	}

	query := psql.Select(loadFields...).From(loadTable + " l")
	for _, cond := range conds {
		query = query.Where(cond)
	}
	query = query.OrderBy(orderByClause(filter, loadAllowedSortFields, "l.pickup_date DESC"))
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

	loads := make([]entities.Load, 0, total)
	for rows.Next() {
		l, err := scanLoad(rows)
		if err != nil {
			return nil, 0, err
		}
		loads = append(loads, *l)
	}
	return loads, total, rows.Err()
}

func (r *LoadRepository) FindLoad(ctx context.Context, id uuid.UUID) (*entities.Load, error) {
	sqlStr, args, err := psql.Select(loadFields...).
		From(loadTable + " l").
		Where(sq.Eq{"l.id": id}).
		ToSql()
	if err != nil {
		return nil, err
	}
	return scanLoad(r.storage.QueryRow(ctx, sqlStr, args...))
}

func (r *LoadRepository) CreateLoad(ctx context.Context, load *entities.Load) (*entities.Load, error) {
	sqlStr, args, err := psql.Insert(loadTable).
		Columns("load_number", "bol_number", "shipper", "receiver",
			"pickup_address", "pickup_city", "pickup_state", "pickup_zip",
			"delivery_address", "delivery_city", "delivery_state", "delivery_zip",
			"assigned_driver_id", "assigned_truck_id", "status",
			"cargo_description", "weight_lbs", "distance_miles", "hazmat",
			"pickup_date", "delivery_date", "rate", "notes",
			"company_id", "division_id", "department_id",
			"origin_terminal_id", "destination_terminal_id", "dispatched_by").
		Values(load.LoadNumber, load.BOLNumber, load.Shipper, load.Receiver,
			load.PickupAddress, load.PickupCity, load.PickupState, load.PickupZip,
			load.DeliveryAddress, load.DeliveryCity, load.DeliveryState, load.DeliveryZip,
			load.AssignedDriverID, load.AssignedTruckID, load.Status,
			load.CargoDescription, load.WeightLbs, load.DistanceMiles, load.Hazmat,
			load.PickupDate, load.DeliveryDate, load.Rate, load.Notes,
			load.CompanyID, load.DivisionID, load.DepartmentID,
			load.OriginTerminalID, load.DestinationTerminalID, load.DispatchedBy).
		Suffix("RETURNING " + stripAlias(loadFields, "l.")).
		ToSql()
	if err != nil {
		return nil, err
	}
	created, err := scanLoad(r.storage.QueryRow(ctx, sqlStr, args...))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperrors.NewConflictError("load with this number already exists in the company")
		}
		return nil, err
	}
	return created, nil
}

func (r *LoadRepository) UpdateLoad(ctx context.Context, load *entities.Load) (*entities.Load, error) {
	sqlStr, args, err := psql.Update(loadTable).
		Set("bol_number", load.BOLNumber).
		Set("shipper", load.Shipper).
		Set("receiver", load.Receiver).
		Set("pickup_address", load.PickupAddress).
		Set("pickup_city", load.PickupCity).
		Set("pickup_state", load.PickupState).
		Set("pickup_zip", load.PickupZip).
		Set("delivery_address", load.DeliveryAddress).
		Set("delivery_city", load.DeliveryCity).
		Set("delivery_state", load.DeliveryState).
		Set("delivery_zip", load.DeliveryZip).
		Set("assigned_driver_id", load.AssignedDriverID).
		Set("assigned_truck_id", load.AssignedTruckID).
		Set("status", load.Status).
		Set("cargo_description", load.CargoDescription).
		Set("weight_lbs", load.WeightLbs).
		Set("distance_miles", load.DistanceMiles).
		Set("hazmat", load.Hazmat).
		Set("pickup_date", load.PickupDate).
		Set("delivery_date", load.DeliveryDate).
		Set("rate", load.Rate).
		Set("notes", load.Notes).
		Set("division_id", load.DivisionID).
		Set("department_id", load.DepartmentID).
		Set("origin_terminal_id", load.OriginTerminalID).
		Set("destination_terminal_id", load.DestinationTerminalID).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": load.ID}).
		Suffix("RETURNING " + stripAlias(loadFields, "l.")).
		ToSql()
	if err != nil {
		return nil, err
	}
	updated, err := scanLoad(r.storage.QueryRow(ctx, sqlStr, args...))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperrors.NewConflictError("load with this number already exists in the company")
		}
		return nil, err
	}
	return updated, nil
}

func (r *LoadRepository) DeleteLoad(ctx context.Context, id uuid.UUID) error {
	sqlStr, args, err := psql.Delete(loadTable).Where(sq.Eq{"id": id}).ToSql()
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

// Load events are scoped through their parent load; the service authorizes
// against the load before touching the timeline.
func (r *LoadRepository) GetLoadEvents(ctx context.Context, loadID uuid.UUID) ([]entities.LoadEvent, error) {
	sqlStr, args, err := psql.Select(loadEventFields...).
		From(loadEventTable + " e").
		Where(sq.Eq{"e.load_id": loadID}).
		OrderBy("e.timestamp DESC").
		ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := r.storage.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]entities.LoadEvent, 0)
	for rows.Next() {
		e, err := scanLoadEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, *e)
	}
	return events, rows.Err()
}

func (r *LoadRepository) CreateLoadEvent(ctx context.Context, event *entities.LoadEvent) (*entities.LoadEvent, error) {
	sqlStr, args, err := psql.Insert(loadEventTable).
		Columns("load_id", "event_type", "description", "timestamp",
			"location_city", "location_state", "reported_by", "severity", "resolved").
		Values(event.LoadID, event.EventType, event.Description, event.Timestamp,
			event.LocationCity, event.LocationState, event.ReportedBy, event.Severity, event.Resolved).
		Suffix("RETURNING " + stripAlias(loadEventFields, "e.")).
		ToSql()
	if err != nil {
		return nil, err
	}
	return scanLoadEvent(r.storage.QueryRow(ctx, sqlStr, args...))
}

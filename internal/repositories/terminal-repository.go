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

const terminalTable = "terminals"

var terminalFields = []string{
	"t.id", "t.department_id", "t.name", "t.code",
	"t.address_street", "t.address_city", "t.address_state", "t.address_zip",
	"t.phone", "t.manager_email", "t.is_active",
	"t.created_at", "t.updated_at",
	"d.division_id", "dv.company_id",
}

const terminalJoin = "terminals t" +
	" JOIN departments d ON t.department_id = d.id" +
	" JOIN divisions dv ON d.division_id = dv.id"

var (
	terminalAllowedFilterFields = map[string]string{
		"department_id": "t.department_id",
		"is_active":     "t.is_active",
		"address_state": "t.address_state",
	}
	terminalAllowedSortFields = map[string]string{"name": "t.name", "code": "t.code", "created_at": "t.created_at"}
)

type TerminalRepositoryInterface interface {
	GetTerminals(ctx context.Context, scope authz.Scope, filter types.Filter) ([]entities.Terminal, uint64, error)
	FindTerminal(ctx context.Context, id uuid.UUID) (*entities.Terminal, error)
	CreateTerminal(ctx context.Context, terminal *entities.Terminal) (*entities.Terminal, error)
	UpdateTerminal(ctx context.Context, terminal *entities.Terminal) (*entities.Terminal, error)
	DeleteTerminal(ctx context.Context, id uuid.UUID) error
}

type TerminalRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewTerminalRepository(storage *pgxpool.Pool, logger *zap.Logger) TerminalRepositoryInterface {
	return &TerminalRepository{storage: storage, logger: logger}
}

func scanTerminal(row pgx.Row) (*entities.Terminal, error) {
	var t entities.Terminal
	err := row.Scan(&t.ID, &t.DepartmentID, &t.Name, &t.Code,
		&t.AddressStreet, &t.AddressCity, &t.AddressState, &t.AddressZip,
		&t.Phone, &t.ManagerEmail, &t.IsActive,
		&t.CreatedAt, &t.UpdatedAt,
		&t.DivisionID, &t.CompanyID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning terminal: %w", err)
	}
	return &t, nil
}

func (r *TerminalRepository) GetTerminals(ctx context.Context, scope authz.Scope, filter types.Filter) ([]entities.Terminal, uint64, error) {
	if scope.IsNone() {
		return []entities.Terminal{}, 0, nil
	}

	conds := listConditions(filter, terminalAllowedFilterFields)
	if cond := scope.Condition(authz.ResourceTerminal, "t"); cond != nil {
		conds = append(conds, cond)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		conds = append(conds, sq.Or{
			sq.ILike{"t.name": pattern},
			sq.ILike{"t.code": pattern},
			sq.ILike{"t.address_city": pattern},
		})
	}

	countQuery := psql.Select("COUNT(*)").From(terminalJoin)
	for _, cond := range conds {
		countQuery = countQuery.Where(cond)
	}
	sqlStr, args, err := countQuery.ToSql()
	if err != nil {
		return nil, 0, err
	}
	var total uint64
	if err := r.storage.QueryRow(ctx, sqlStr, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("counting terminals: %w", err)
	}
	if total == 0 {
		return []entities.Terminal{}, 0, nil
	}

	query := psql.Select(terminalFields...).From(terminalJoin)
	for _, cond := range conds {
		query = query.Where(cond)
	}
	query = query.OrderBy(orderByClause(filter, terminalAllowedSortFields, "t.name ASC"))
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

	terminals := make([]entities.Terminal, 0, total)
	for rows.Next() {
		t, err := scanTerminal(rows)
		if err != nil {
			return nil, 0, err
		}
		terminals = append(terminals, *t)
	}
	return terminals, total, rows.Err()
}

func (r *TerminalRepository) FindTerminal(ctx context.Context, id uuid.UUID) (*entities.Terminal, error) {
	sqlStr, args, err := psql.Select(terminalFields...).
		From(terminalJoin).
		Where(sq.Eq{"t.id": id}).
		ToSql()
	if err != nil {
		return nil, err
	}
	return scanTerminal(r.storage.QueryRow(ctx, sqlStr, args...))
}

func (r *TerminalRepository) CreateTerminal(ctx context.Context, terminal *entities.Terminal) (*entities.Terminal, error) {
	sqlStr, args, err := psql.Insert(terminalTable).
		Columns("department_id", "name", "code",
			"address_street", "address_city", "address_state", "address_zip",
			"phone", "manager_email", "is_active").
		Values(terminal.DepartmentID, terminal.Name, terminal.Code,
			terminal.AddressStreet, terminal.AddressCity, terminal.AddressState, terminal.AddressZip,
			terminal.Phone, terminal.ManagerEmail, terminal.IsActive).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return nil, err
	}
	var id uuid.UUID
	if err := r.storage.QueryRow(ctx, sqlStr, args...).Scan(&id); err != nil {
		if isUniqueViolation(err) {
			return nil, apperrors.NewConflictError("terminal with this code already exists in the department")
		}
		return nil, err
	}
	return r.FindTerminal(ctx, id)
}

func (r *TerminalRepository) UpdateTerminal(ctx context.Context, terminal *entities.Terminal) (*entities.Terminal, error) {
	sqlStr, args, err := psql.Update(terminalTable).
		Set("name", terminal.Name).
		Set("code", terminal.Code).
		Set("address_street", terminal.AddressStreet).
		Set("address_city", terminal.AddressCity).
		Set("address_state", terminal.AddressState).
		Set("address_zip", terminal.AddressZip).
		Set("phone", terminal.Phone).
		Set("manager_email", terminal.ManagerEmail).
		Set("is_active", terminal.IsActive).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": terminal.ID}).
		ToSql()
	if err != nil {
		return nil, err
	}
	tag, err := r.storage.Exec(ctx, sqlStr, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperrors.NewConflictError("terminal with this code already exists in the department")
		}
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, apperrors.ErrNotFound
	}
	return r.FindTerminal(ctx, terminal.ID)
}

func (r *TerminalRepository) DeleteTerminal(ctx context.Context, id uuid.UUID) error {
	sqlStr, args, err := psql.Delete(terminalTable).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return err
	}
	tag, err := r.storage.Exec(ctx, sqlStr, args...)
	if isForeignKeyViolation(err) {
		return apperrors.NewConflictError("terminal still has records assigned to it")
	}
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

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

const userTable = "users"

// The ancestry columns of the assigned department and terminal ride along so
// the resolver can detect contradictory assignments without extra queries.
var userFields = []string{
	"u.id", "u.email", "u.first_name", "u.last_name", "u.phone", "u.password", "u.role",
	"u.company_id", "u.division_id", "u.department_id", "u.terminal_id",
	"u.theme", "u.language", "u.timezone", "u.is_active",
	"u.created_at", "u.updated_at", "u.deleted_at",
	"d.division_id AS department_division_id",
	"t.department_id AS terminal_department_id",
	"td.division_id AS terminal_division_id",
}

const userJoin = "users u" +
	" LEFT JOIN departments d ON u.department_id = d.id" +
	" LEFT JOIN terminals t ON u.terminal_id = t.id" +
	" LEFT JOIN departments td ON t.department_id = td.id"

var (
	userAllowedFilterFields = map[string]string{
		"role":          "u.role",
		"is_active":     "u.is_active",
		"company_id":    "u.company_id",
		"division_id":   "u.division_id",
		"department_id": "u.department_id",
		"terminal_id":   "u.terminal_id",
	}
	userAllowedSortFields = map[string]string{
		"email":      "u.email",
		"first_name": "u.first_name",
		"last_name":  "u.last_name",
		"created_at": "u.created_at",
	}
)

type UserRepositoryInterface interface {
	GetUsers(ctx context.Context, scope authz.Scope, filter types.Filter) ([]entities.User, uint64, error)
	FindUser(ctx context.Context, id uuid.UUID) (*entities.User, error)
	FindUserByEmail(ctx context.Context, email string) (*entities.User, error)
	CreateUser(ctx context.Context, user *entities.User) (*entities.User, error)
	UpdateUser(ctx context.Context, user *entities.User) (*entities.User, error)
	UpdatePassword(ctx context.Context, userID uuid.UUID, passwordHash string) error
	DeleteUser(ctx context.Context, id uuid.UUID) error
}

type UserRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewUserRepository(storage *pgxpool.Pool, logger *zap.Logger) UserRepositoryInterface {
	return &UserRepository{storage: storage, logger: logger}
}

func scanUser(row pgx.Row) (*entities.User, error) {
	var u entities.User
	err := row.Scan(
		&u.ID, &u.Email, &u.FirstName, &u.LastName, &u.Phone, &u.Password, &u.Role,
		&u.CompanyID, &u.DivisionID, &u.DepartmentID, &u.TerminalID,
		&u.Theme, &u.Language, &u.Timezone, &u.IsActive,
		&u.CreatedAt, &u.UpdatedAt, &u.DeletedAt,
		&u.DepartmentDivisionID, &u.TerminalDepartmentID, &u.TerminalDivisionID,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning user: %w", err)
	}
	return &u, nil
}

func (r *UserRepository) GetUsers(ctx context.Context, scope authz.Scope, filter types.Filter) ([]entities.User, uint64, error) {
	if scope.IsNone() {
		return []entities.User{}, 0, nil
	}

	conds := listConditions(filter, userAllowedFilterFields)
	conds = append(conds, sq.Expr("u.deleted_at IS NULL"))
	if cond := scope.Condition(authz.ResourceUser, "u"); cond != nil {
		conds = append(conds, cond)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		conds = append(conds, sq.Or{
			sq.ILike{"u.email": pattern},
			sq.ILike{"u.first_name": pattern},
			sq.ILike{"u.last_name": pattern},
		})
	}

	countQuery := psql.Select("COUNT(*)").From(userJoin)
	for _, cond := range conds {
		countQuery = countQuery.Where(cond)
	}
	sqlStr, args, err := countQuery.ToSql()
	if err != nil {
		return nil, 0, err
	}
	var total uint64
	if err := r.storage.QueryRow(ctx, sqlStr, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("counting users: %w", err)
	}
	if total == 0 {
		return []entities.User{}, 0, nil
	}

	query := psql.Select(userFields...).From(userJoin)
	for _, cond := range conds {
		query = query.Where(cond)
	}
	query = query.OrderBy(orderByClause(filter, userAllowedSortFields, "u.last_name ASC, u.first_name ASC"))
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

	users := make([]entities.User, 0, total)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, 0, err
		}
		users = append(users, *u)
	}
	return users, total, rows.Err()
}

func (r *UserRepository) FindUser(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	sqlStr, args, err := psql.Select(userFields...).
		From(userJoin).
		Where(sq.Eq{"u.id": id}).
		Where("u.deleted_at IS NULL").
		ToSql()
	if err != nil {
		return nil, err
	}
	return scanUser(r.storage.QueryRow(ctx, sqlStr, args...))
}

func (r *UserRepository) FindUserByEmail(ctx context.Context, email string) (*entities.User, error) {
	sqlStr, args, err := psql.Select(userFields...).
		From(userJoin).
		Where(sq.Eq{"u.email": email}).
		Where("u.deleted_at IS NULL").
		ToSql()
	if err != nil {
		return nil, err
	}
	return scanUser(r.storage.QueryRow(ctx, sqlStr, args...))
}

func (r *UserRepository) CreateUser(ctx context.Context, user *entities.User) (*entities.User, error) {
	sqlStr, args, err := psql.Insert(userTable).
		Columns("email", "first_name", "last_name", "phone", "password", "role",
			"company_id", "division_id", "department_id", "terminal_id",
			"theme", "language", "timezone", "is_active").
		Values(user.Email, user.FirstName, user.LastName, user.Phone, user.Password, user.Role,
			user.CompanyID, user.DivisionID, user.DepartmentID, user.TerminalID,
			user.Theme, user.Language, user.Timezone, user.IsActive).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return nil, err
	}
	var id uuid.UUID
	if err := r.storage.QueryRow(ctx, sqlStr, args...).Scan(&id); err != nil {
		if isUniqueViolation(err) {
			return nil, apperrors.NewConflictError("user with this email already exists")
		}
		return nil, err
	}
	return r.FindUser(ctx, id)
}

func (r *UserRepository) UpdateUser(ctx context.Context, user *entities.User) (*entities.User, error) {
	sqlStr, args, err := psql.Update(userTable).
		Set("email", user.Email).
		Set("first_name", user.FirstName).
		Set("last_name", user.LastName).
		Set("phone", user.Phone).
		Set("role", user.Role).
		Set("company_id", user.CompanyID).
		Set("division_id", user.DivisionID).
		Set("department_id", user.DepartmentID).
		Set("terminal_id", user.TerminalID).
		Set("theme", user.Theme).
		Set("language", user.Language).
		Set("timezone", user.Timezone).
		Set("is_active", user.IsActive).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": user.ID}).
		Where("deleted_at IS NULL").
		ToSql()
	if err != nil {
		return nil, err
	}
	tag, err := r.storage.Exec(ctx, sqlStr, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperrors.NewConflictError("user with this email already exists")
		}
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, apperrors.ErrNotFound
	}
	return r.FindUser(ctx, user.ID)
}

func (r *UserRepository) UpdatePassword(ctx context.Context, userID uuid.UUID, passwordHash string) error {
	sqlStr, args, err := psql.Update(userTable).
		Set("password", passwordHash).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": userID}).
		Where("deleted_at IS NULL").
		ToSql()
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

func (r *UserRepository) DeleteUser(ctx context.Context, id uuid.UUID) error {
	sqlStr, args, err := psql.Update(userTable).
		Set("deleted_at", sq.Expr("NOW()")).
		Set("is_active", false).
		Where(sq.Eq{"id": id}).
		Where("deleted_at IS NULL").
		ToSql()
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

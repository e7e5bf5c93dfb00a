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

const companyTable = "companies"

var companyFields = []string{
	"c.id", "c.name", "c.code",
	"c.address_street", "c.address_city", "c.address_state", "c.address_zip",
	"c.phone", "c.email", "c.timezone", "c.is_active",
	"c.created_at", "c.updated_at",
}

var (
	companyAllowedFilterFields = map[string]string{"is_active": "c.is_active", "address_state": "c.address_state"}
	companyAllowedSortFields   = map[string]string{"name": "c.name", "code": "c.code", "created_at": "c.created_at"}
)

type CompanyRepositoryInterface interface {
	GetCompanies(ctx context.Context, scope authz.Scope, filter types.Filter) ([]entities.Company, uint64, error)
	FindCompany(ctx context.Context, id uuid.UUID) (*entities.Company, error)
	CreateCompany(ctx context.Context, company *entities.Company) (*entities.Company, error)
	UpdateCompany(ctx context.Context, company *entities.Company) (*entities.Company, error)
	DeleteCompany(ctx context.Context, id uuid.UUID) error
}

type CompanyRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewCompanyRepository(storage *pgxpool.Pool, logger *zap.Logger) CompanyRepositoryInterface {
	return &CompanyRepository{storage: storage, logger: logger}
}

func scanCompany(row pgx.Row) (*entities.Company, error) {
	var c entities.Company
	err := row.Scan(
		&c.ID, &c.Name, &c.Code,
		&c.AddressStreet, &c.AddressCity, &c.AddressState, &c.AddressZip,
		&c.Phone, &c.Email, &c.Timezone, &c.IsActive,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning company: %w", err)
	}
	return &c, nil
}

func (r *CompanyRepository) GetCompanies(ctx context.Context, scope authz.Scope, filter types.Filter) ([]entities.Company, uint64, error) {
	if scope.IsNone() {
		return []entities.Company{}, 0, nil
	}

	conds := listConditions(filter, companyAllowedFilterFields)
	if cond := scope.Condition(authz.ResourceCompany, "c"); cond != nil {
		conds = append(conds, cond)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		conds = append(conds, sq.Or{sq.ILike{"c.name": pattern}, sq.ILike{"c.code": pattern}})
	}

	countQuery := psql.Select("COUNT(*)").From(companyTable + " c")
	for _, cond := range conds {
		countQuery = countQuery.Where(cond)
	}
	sqlStr, args, err := countQuery.ToSql()
	if err != nil {
		return nil, 0, err
	}
	var total uint64
	if err := r.storage.QueryRow(ctx, sqlStr, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("counting companies: %w", err)
	}
	if total == 0 {
		return []entities.Company{}, 0, nil
	}

	query := psql.Select(companyFields...).From(companyTable + " c")
	for _, cond := range conds {
		query = query.Where(cond)
	}
	query = query.OrderBy(orderByClause(filter, companyAllowedSortFields, "c.name ASC"))
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

	companies := make([]entities.Company, 0, total)
	for rows.Next() {
		c, err := scanCompany(rows)
		if err != nil {
			return nil, 0, err
		}
		companies = append(companies, *c)
	}
	return companies, total, rows.Err()
}

func (r *CompanyRepository) FindCompany(ctx context.Context, id uuid.UUID) (*entities.Company, error) {
	sqlStr, args, err := psql.Select(companyFields...).
		From(companyTable + " c").
		Where(sq.Eq{"c.id": id}).
		ToSql()
	if err != nil {
		return nil, err
	}
	return scanCompany(r.storage.QueryRow(ctx, sqlStr, args...))
}

func (r *CompanyRepository) CreateCompany(ctx context.Context, company *entities.Company) (*entities.Company, error) {
	sqlStr, args, err := psql.Insert(companyTable).
		Columns("name", "code", "address_street", "address_city", "address_state", "address_zip",
			"phone", "email", "timezone", "is_active").
		Values(company.Name, company.Code, company.AddressStreet, company.AddressCity,
			company.AddressState, company.AddressZip, company.Phone, company.Email,
			company.Timezone, company.IsActive).
		Suffix("RETURNING " + returningCompanyFields()).
		ToSql()
	if err != nil {
		return nil, err
	}
	created, err := scanCompany(r.storage.QueryRow(ctx, sqlStr, args...))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperrors.NewConflictError("company with this code already exists")
		}
		return nil, err
	}
	return created, nil
}

func (r *CompanyRepository) UpdateCompany(ctx context.Context, company *entities.Company) (*entities.Company, error) {
	sqlStr, args, err := psql.Update(companyTable).
		Set("name", company.Name).
		Set("code", company.Code).
		Set("address_street", company.AddressStreet).
		Set("address_city", company.AddressCity).
		Set("address_state", company.AddressState).
		Set("address_zip", company.AddressZip).
		Set("phone", company.Phone).
		Set("email", company.Email).
		Set("timezone", company.Timezone).
		Set("is_active", company.IsActive).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": company.ID}).
		Suffix("RETURNING " + returningCompanyFields()).
		ToSql()
	if err != nil {
		return nil, err
	}
	updated, err := scanCompany(r.storage.QueryRow(ctx, sqlStr, args...))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperrors.NewConflictError("company with this code already exists")
		}
		return nil, err
	}
	return updated, nil
}

func (r *CompanyRepository) DeleteCompany(ctx context.Context, id uuid.UUID) error {
	sqlStr, args, err := psql.Delete(companyTable).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return err
	}
	tag, err := r.storage.Exec(ctx, sqlStr, args...)
	if isForeignKeyViolation(err) {
		return apperrors.NewConflictError("company still has divisions or records assigned to it")
	}
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// RETURNING clauses carry no alias, so strip the one the select list uses.
func returningCompanyFields() string {
	return stripAlias(companyFields, "c.")
}

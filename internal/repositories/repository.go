package repositories

import (
	"errors"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgconn"

	"launch-tms/pkg/types"
)

// psql is the shared statement builder; every query in this package goes
// through it so placeholders always render as $1, $2, ...
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation
}

// listConditions turns a parsed filter into squirrel conditions. Only fields
// present in the allowed map reach the query; everything else is ignored, not
// an error. Comma-separated values become an IN list.
func listConditions(filter types.Filter, allowedFilterFields map[string]string) []sq.Sqlizer {
	conds := make([]sq.Sqlizer, 0, len(filter.Filter))
	for key, value := range filter.Filter {
		column, ok := allowedFilterFields[key]
		if !ok {
			continue
		}
		if strVal, ok := value.(string); ok && strings.Contains(strVal, ",") {
			items := strings.Split(strVal, ",")
			vals := make([]interface{}, 0, len(items))
			for _, item := range items {
				vals = append(vals, strings.TrimSpace(item))
			}
			conds = append(conds, sq.Eq{column: vals})
			continue
		}
		conds = append(conds, sq.Eq{column: value})
	}
	return conds
}

// orderByClause resolves the requested sort against the allowed map, falling
// back to the given default when nothing usable was requested.
func orderByClause(filter types.Filter, allowedSortFields map[string]string, fallback string) string {
	if len(filter.Sort) == 0 {
		return fallback
	}
	sorts := make([]string, 0, len(filter.Sort))
	for field, direction := range filter.Sort {
		column, ok := allowedSortFields[field]
		if !ok {
			continue
		}
		order := "ASC"
		if strings.EqualFold(direction, "desc") {
			order = "DESC"
		}
		sorts = append(sorts, fmt.Sprintf("%s %s", column, order))
	}
	if len(sorts) == 0 {
		return fallback
	}
	return strings.Join(sorts, ", ")
}

// stripAlias renders a select field list without its table alias, for use in
// RETURNING clauses.
func stripAlias(fields []string, prefix string) string {
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = strings.TrimPrefix(f, prefix)
	}
	return strings.Join(out, ", ")
}

func applyPagination(b sq.SelectBuilder, filter types.Filter) sq.SelectBuilder {
	if !filter.WithPagination {
		return b
	}
	return b.Limit(uint64(filter.Limit)).Offset(uint64(filter.Offset))
}

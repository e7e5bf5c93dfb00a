package repositories

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"launch-tms/pkg/types"
)

var testAllowed = map[string]string{
	"status":     "l.status",
	"company_id": "l.company_id",
}

func TestListConditions_IgnoresUnknownFields(t *testing.T) {
	filter := types.Filter{Filter: map[string]interface{}{
		"status":   "pending",
		"password": "x' OR 1=1 --",
	}}

	conds := listConditions(filter, testAllowed)
	require.Len(t, conds, 1)

	sql, args, err := conds[0].ToSql()
	require.NoError(t, err)
	assert.Equal(t, "l.status = ?", sql)
	assert.Equal(t, []interface{}{"pending"}, args)
}

func TestListConditions_CommaSeparatedBecomesIn(t *testing.T) {
	filter := types.Filter{Filter: map[string]interface{}{
		"status": "pending, assigned,in_transit",
	}}

	conds := listConditions(filter, testAllowed)
	require.Len(t, conds, 1)

	sql, args, err := conds[0].ToSql()
	require.NoError(t, err)
	assert.Equal(t, "l.status IN (?,?,?)", sql)
	assert.Equal(t, []interface{}{"pending", "assigned", "in_transit"}, args)
}

func TestOrderByClause(t *testing.T) {
	allowed := map[string]string{"created_at": "l.created_at", "status": "l.status"}

	assert.Equal(t, "l.created_at DESC",
		orderByClause(types.Filter{}, allowed, "l.created_at DESC"))

	assert.Equal(t, "l.status DESC",
		orderByClause(types.Filter{Sort: map[string]string{"status": "desc"}}, allowed, "l.created_at DESC"))

	// unknown sort fields fall back rather than reaching the query
	assert.Equal(t, "l.created_at DESC",
		orderByClause(types.Filter{Sort: map[string]string{"password": "asc"}}, allowed, "l.created_at DESC"))
}

func TestStripAlias(t *testing.T) {
	assert.Equal(t, "id, status, c.other",
		stripAlias([]string{"l.id", "l.status", "c.other"}, "l."))
}

func TestApplyPagination(t *testing.T) {
	base := psql.Select("id").From("loads")

	sql, _, err := applyPagination(base, types.Filter{}).ToSql()
	require.NoError(t, err)
	assert.NotContains(t, sql, "LIMIT")

	sql, args, err := applyPagination(base, types.Filter{WithPagination: true, Limit: 25, Offset: 50}).ToSql()
	require.NoError(t, err)
	assert.Contains(t, sql, "LIMIT 25")
	assert.Contains(t, sql, "OFFSET 50")
	assert.Empty(t, args)
}

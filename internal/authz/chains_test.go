package authz

import (
	"testing"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateChains_AllResourcesRegistered(t *testing.T) {
	require.NoError(t, ValidateChains())
}

func TestCondition_AllSentinel(t *testing.T) {
	scope := Scope{Kind: ScopeAll}
	for _, res := range allResources {
		assert.Nil(t, scope.Condition(res, "x"), "system_admin needs no predicate for %s", res)
	}
}

func TestCondition_NoneSentinelMatchesNothing(t *testing.T) {
	scope := Scope{Kind: ScopeNone}
	cond := scope.Condition(ResourceLoad, "l")
	require.NotNil(t, cond)

	sql, args, err := sq.Select("*").From("loads l").Where(cond).ToSql()
	require.NoError(t, err)
	assert.Contains(t, sql, "1 = 0")
	assert.Empty(t, args)
}

func TestCondition_DirectColumns(t *testing.T) {
	terminal := uuid.New()
	scope := Scope{Kind: ScopeTerminal, CompanyID: uuid.New(), TerminalID: terminal}

	cases := map[Resource]string{
		ResourceUser:    "u.terminal_id",
		ResourceDriver:  "u.home_terminal_id",
		ResourceTruck:   "u.home_terminal_id",
		ResourceTrailer: "u.home_terminal_id",
		ResourceLoad:    "u.origin_terminal_id",
	}
	for res, column := range cases {
		sql, args, err := sq.Select("*").From(string(res) + " u").Where(scope.Condition(res, "u")).ToSql()
		require.NoError(t, err)
		assert.Contains(t, sql, column+" = ?", "resource %s", res)
		// squirrel resolves the uuid's driver.Valuer while rendering Eq
		assert.Equal(t, []interface{}{terminal.String()}, args)
	}
}

func TestCondition_OrgAncestorsResolveThroughSubqueries(t *testing.T) {
	terminal := uuid.New()
	scope := Scope{Kind: ScopeTerminal, CompanyID: uuid.New(), TerminalID: terminal}

	// a terminal-scoped principal still sees the org units above its terminal
	for _, res := range []Resource{ResourceCompany, ResourceDivision, ResourceDepartment} {
		cond := scope.Condition(res, "o")
		require.NotNil(t, cond)
		sql, args, err := sq.Select("*").From(string(res) + " o").Where(cond).ToSql()
		require.NoError(t, err)
		assert.Contains(t, sql, "IN (SELECT", "resource %s", res)
		assert.Equal(t, []interface{}{terminal}, args)
	}
}

func TestCondition_DivisionScopeOnTerminals(t *testing.T) {
	division := uuid.New()
	scope := Scope{Kind: ScopeDivision, CompanyID: uuid.New(), DivisionID: division}

	sql, args, err := sq.Select("*").From("terminals t").Where(scope.Condition(ResourceTerminal, "t")).ToSql()
	require.NoError(t, err)
	assert.Contains(t, sql, "t.department_id IN (SELECT id FROM departments WHERE division_id = ?)")
	assert.Equal(t, []interface{}{division}, args)
}

func TestCondition_CompanyScope(t *testing.T) {
	company := uuid.New()
	scope := Scope{Kind: ScopeCompany, CompanyID: company}

	sql, _, err := sq.Select("*").From("companies c").Where(scope.Condition(ResourceCompany, "c")).ToSql()
	require.NoError(t, err)
	assert.Contains(t, sql, "c.id = ?")

	sql, _, err = sq.Select("*").From("divisions d").Where(scope.Condition(ResourceDivision, "d")).ToSql()
	require.NoError(t, err)
	assert.Contains(t, sql, "d.company_id = ?")
}

func TestCondition_UnknownResourcePanics(t *testing.T) {
	scope := Scope{Kind: ScopeCompany, CompanyID: uuid.New()}
	assert.Panics(t, func() {
		scope.Condition(Resource("invoices"), "i")
	})
}

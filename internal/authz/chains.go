package authz

import (
	"fmt"

	sq "github.com/Masterminds/squirrel"
)

// Resource identifies a scoped resource type. Every resource must have a
// complete scoping chain registered below; ValidateChains enforces this at
// startup so an unregistered type fails loudly once, not per-request.
type Resource string

const (
	ResourceCompany    Resource = "companies"
	ResourceDivision   Resource = "divisions"
	ResourceDepartment Resource = "departments"
	ResourceTerminal   Resource = "terminals"
	ResourceUser       Resource = "users"
	ResourceDriver     Resource = "drivers"
	ResourceTruck      Resource = "trucks"
	ResourceTrailer    Resource = "trailers"
	ResourceLoad       Resource = "loads"
)

var allResources = []Resource{
	ResourceCompany, ResourceDivision, ResourceDepartment, ResourceTerminal,
	ResourceUser, ResourceDriver, ResourceTruck, ResourceTrailer, ResourceLoad,
}

// orgUnitLevels marks the resources that are themselves nodes of the
// organizational tree, keyed to the scope level they sit at. Ancestor-unit
// reads apply to these only; fleet and user records are always anchored.
var orgUnitLevels = map[Resource]ScopeKind{
	ResourceCompany:    ScopeCompany,
	ResourceDivision:   ScopeDivision,
	ResourceDepartment: ScopeDepartment,
	ResourceTerminal:   ScopeTerminal,
}

// chainClause is one entry of a resource's scoping chain: how rows of the
// resource's table relate to the anchor unit of a given scope level. Either a
// direct equality column on the resource's table, or an IN-subquery over the
// anchor id for levels the table has no column for (organizational tables
// relate to deeper anchors through the tree).
type chainClause struct {
	column   string // resource column equal to the anchor id
	inColumn string // resource column fed to the subquery ("id" when empty)
	subquery string // subquery producing the allowed inColumn values, one ? arg
}

type chainSpec map[ScopeKind]chainClause

// scopingChains declares, per resource type, the foreign-key path from its
// rows to each organizational level. Fleet and user tables carry denormalized
// placement columns kept chain-consistent on write, so direct equality is
// equivalent to walking the chain. Organizational tables reach anchors below
// their own level through descendant subqueries.
var scopingChains = map[Resource]chainSpec{
	ResourceCompany: {
		ScopeCompany:    {column: "id"},
		ScopeDivision:   {subquery: "SELECT company_id FROM divisions WHERE id = ?"},
		ScopeDepartment: {subquery: "SELECT dv.company_id FROM departments d JOIN divisions dv ON d.division_id = dv.id WHERE d.id = ?"},
		ScopeTerminal:   {subquery: "SELECT dv.company_id FROM terminals t JOIN departments d ON t.department_id = d.id JOIN divisions dv ON d.division_id = dv.id WHERE t.id = ?"},
	},
	ResourceDivision: {
		ScopeCompany:    {column: "company_id"},
		ScopeDivision:   {column: "id"},
		ScopeDepartment: {subquery: "SELECT division_id FROM departments WHERE id = ?"},
		ScopeTerminal:   {subquery: "SELECT d.division_id FROM terminals t JOIN departments d ON t.department_id = d.id WHERE t.id = ?"},
	},
	ResourceDepartment: {
		ScopeCompany:    {inColumn: "division_id", subquery: "SELECT id FROM divisions WHERE company_id = ?"},
		ScopeDivision:   {column: "division_id"},
		ScopeDepartment: {column: "id"},
		ScopeTerminal:   {subquery: "SELECT department_id FROM terminals WHERE id = ?"},
	},
	ResourceTerminal: {
		ScopeCompany:    {inColumn: "department_id", subquery: "SELECT d.id FROM departments d JOIN divisions dv ON d.division_id = dv.id WHERE dv.company_id = ?"},
		ScopeDivision:   {inColumn: "department_id", subquery: "SELECT id FROM departments WHERE division_id = ?"},
		ScopeDepartment: {column: "department_id"},
		ScopeTerminal:   {column: "id"},
	},
	ResourceUser: {
		ScopeCompany:    {column: "company_id"},
		ScopeDivision:   {column: "division_id"},
		ScopeDepartment: {column: "department_id"},
		ScopeTerminal:   {column: "terminal_id"},
	},
	ResourceDriver: {
		ScopeCompany:    {column: "company_id"},
		ScopeDivision:   {column: "division_id"},
		ScopeDepartment: {column: "department_id"},
		ScopeTerminal:   {column: "home_terminal_id"},
	},
	ResourceTruck: {
		ScopeCompany:    {column: "company_id"},
		ScopeDivision:   {column: "division_id"},
		ScopeDepartment: {column: "department_id"},
		ScopeTerminal:   {column: "home_terminal_id"},
	},
	ResourceTrailer: {
		ScopeCompany:    {column: "company_id"},
		ScopeDivision:   {column: "division_id"},
		ScopeDepartment: {column: "department_id"},
		ScopeTerminal:   {column: "home_terminal_id"},
	},
	// Loads are owned by their origin terminal's chain; the destination
	// terminal is routing data, not an ownership key.
	ResourceLoad: {
		ScopeCompany:    {column: "company_id"},
		ScopeDivision:   {column: "division_id"},
		ScopeDepartment: {column: "department_id"},
		ScopeTerminal:   {column: "origin_terminal_id"},
	},
}

// ValidateChains verifies every resource has a clause for every scope level.
// Called from main; a gap is a programming error (a resource type was added
// without its chain) and must not surface per-request.
func ValidateChains() error {
	for _, res := range allResources {
		spec, ok := scopingChains[res]
		if !ok {
			return fmt.Errorf("authz: resource %q has no scoping chain registered", res)
		}
		for _, kind := range []ScopeKind{ScopeCompany, ScopeDivision, ScopeDepartment, ScopeTerminal} {
			cl, ok := spec[kind]
			if !ok {
				return fmt.Errorf("authz: resource %q has no scoping clause for level %s", res, kind)
			}
			if cl.column == "" && cl.subquery == "" {
				return fmt.Errorf("authz: resource %q has an empty scoping clause for level %s", res, kind)
			}
		}
	}
	return nil
}

// Condition renders the scope as a SQL predicate over the resource's table.
// Returns nil for ScopeAll (no predicate) and a never-true predicate for
// ScopeNone; callers short-circuit the None case with IsNone to avoid the
// round trip.
func (s Scope) Condition(res Resource, alias string) sq.Sqlizer {
	switch s.Kind {
	case ScopeAll:
		return nil
	case ScopeNone:
		return sq.Expr("1 = 0")
	}

	spec, ok := scopingChains[res]
	if !ok {
		panic(fmt.Sprintf("authz: resource %q has no scoping chain registered", res))
	}
	cl := spec[s.Kind]
	anchor := s.anchorID()

	if cl.column != "" {
		return sq.Eq{alias + "." + cl.column: anchor}
	}
	inColumn := cl.inColumn
	if inColumn == "" {
		inColumn = "id"
	}
	return sq.Expr(fmt.Sprintf("%s.%s IN (%s)", alias, inColumn, cl.subquery), anchor)
}

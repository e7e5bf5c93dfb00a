package authz

// Role is the principal's role, ordered by descending scope breadth.
type Role string

const (
	RoleSystemAdmin       Role = "system_admin"
	RoleCompanyAdmin      Role = "company_admin"
	RoleDepartmentManager Role = "department_manager"
	RoleUser              Role = "user"
)

func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleSystemAdmin, RoleCompanyAdmin, RoleDepartmentManager, RoleUser:
		return Role(s), true
	}
	return "", false
}

func (r Role) Valid() bool {
	_, ok := ParseRole(string(r))
	return ok
}

// OperationClass groups endpoints by the kind of mutation they perform.
// Reads are a single class: visibility is decided by scope alone.
type OperationClass int

const (
	OpRead OperationClass = iota
	OpManageOrg
	OpManageUsers
	OpManageFleet
)

// capabilityMatrix gates operation classes per role, independent of scope.
// Scope then restricts WHICH records the granted operation may touch.
var capabilityMatrix = map[Role]map[OperationClass]bool{
	RoleSystemAdmin: {
		OpRead:        true,
		OpManageOrg:   true,
		OpManageUsers: true,
		OpManageFleet: true,
	},
	RoleCompanyAdmin: {
		OpRead:        true,
		OpManageOrg:   true,
		OpManageUsers: true,
		OpManageFleet: true,
	},
	RoleDepartmentManager: {
		OpRead:        true,
		OpManageFleet: true,
	},
	RoleUser: {
		OpRead: true,
	},
}

// Can reports whether the role may perform the operation class at all.
// Unknown roles get nothing.
func (r Role) Can(op OperationClass) bool {
	caps, ok := capabilityMatrix[r]
	if !ok {
		return false
	}
	return caps[op]
}

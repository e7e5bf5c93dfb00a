package seeders

import (
	"context"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"

	"launch-tms/internal/authz"
	"launch-tms/pkg/utils"
)

type seedUser struct {
	email        string
	firstName    string
	lastName     string
	role         authz.Role
	companyID    *string
	divisionID   *string
	departmentID *string
	terminalID   *string
}

func strPtr(s string) *string { return &s }

func seedUsers(ctx context.Context, db *pgxpool.Pool) error {
	password := os.Getenv("SEED_USER_PASSWORD")
	if password == "" {
		password = "ChangeMe123!"
	}
	hash, err := utils.HashPassword(password)
	if err != nil {
		return fmt.Errorf("hash seed password: %w", err)
	}

	users := []seedUser{
		{
			email: "admin@launchtms.example", firstName: "System", lastName: "Admin",
			role: authz.RoleSystemAdmin,
		},
		{
			email: "company.admin@launchtms.example", firstName: "Casey", lastName: "Wheeler",
			role: authz.RoleCompanyAdmin, companyID: strPtr(DemoCompanyID),
		},
		{
			email: "regional.manager@launchtms.example", firstName: "Riley", lastName: "Navarro",
			role: authz.RoleDepartmentManager, companyID: strPtr(DemoCompanyID),
			divisionID: strPtr(DemoDivisionEastID),
		},
		{
			email: "dept.manager@launchtms.example", firstName: "Dana", lastName: "Okafor",
			role: authz.RoleDepartmentManager, companyID: strPtr(DemoCompanyID),
			divisionID: strPtr(DemoDivisionEastID), departmentID: strPtr(DemoDepartmentID),
		},
		{
			email: "dispatcher@launchtms.example", firstName: "Morgan", lastName: "Reyes",
			role: authz.RoleUser, companyID: strPtr(DemoCompanyID),
			divisionID: strPtr(DemoDivisionEastID), departmentID: strPtr(DemoDepartmentID),
			terminalID: strPtr(DemoTerminalID),
		},
	}

	for _, u := range users {
		_, err := db.Exec(ctx, `
			INSERT INTO users (email, first_name, last_name, password, role, company_id, division_id, department_id, terminal_id)
			SELECT $1, $2, $3, $4, $5, $6, $7, $8, $9
			WHERE NOT EXISTS (SELECT 1 FROM users WHERE email = $1 AND deleted_at IS NULL)`,
			u.email, u.firstName, u.lastName, hash, string(u.role),
			u.companyID, u.divisionID, u.departmentID, u.terminalID,
		)
		if err != nil {
			return fmt.Errorf("seed user %s: %w", u.email, err)
		}
	}

	return nil
}

package seeders

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	DemoCompanyID      = "11111111-0000-0000-0000-000000000001"
	DemoDivisionEastID = "22222222-0000-0000-0000-000000000001"
	DemoDivisionWestID = "22222222-0000-0000-0000-000000000002"
	DemoDepartmentID   = "33333333-0000-0000-0000-000000000001"
	DemoTerminalID     = "44444444-0000-0000-0000-000000000001"
)

func seedOrgTree(ctx context.Context, db *pgxpool.Pool) error {
	_, err := db.Exec(ctx, `
		INSERT INTO companies (id, name, code, address_city, address_state, timezone, email)
		VALUES ($1, 'Launch Logistics', 'LAUNCH', 'Columbus', 'OH', 'America/New_York', 'ops@launchlogistics.example')
		ON CONFLICT (code) DO NOTHING`,
		DemoCompanyID,
	)
	if err != nil {
		return fmt.Errorf("seed company: %w", err)
	}

	divisions := []struct {
		id, name, code string
	}{
		{DemoDivisionEastID, "East Division", "EAST"},
		{DemoDivisionWestID, "West Division", "WEST"},
	}
	for _, d := range divisions {
		_, err := db.Exec(ctx, `
			INSERT INTO divisions (id, company_id, name, code)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (company_id, code) DO NOTHING`,
			d.id, DemoCompanyID, d.name, d.code,
		)
		if err != nil {
			return fmt.Errorf("seed division %s: %w", d.code, err)
		}
	}

	_, err = db.Exec(ctx, `
		INSERT INTO departments (id, division_id, name, code)
		VALUES ($1, $2, 'Regional Operations', 'REG-OPS')
		ON CONFLICT (division_id, code) DO NOTHING`,
		DemoDepartmentID, DemoDivisionEastID,
	)
	if err != nil {
		return fmt.Errorf("seed department: %w", err)
	}

	_, err = db.Exec(ctx, `
		INSERT INTO terminals (id, department_id, name, code, address_city, address_state)
		VALUES ($1, $2, 'Columbus Terminal', 'CMH-01', 'Columbus', 'OH')
		ON CONFLICT (department_id, code) DO NOTHING`,
		DemoTerminalID, DemoDepartmentID,
	)
	if err != nil {
		return fmt.Errorf("seed terminal: %w", err)
	}

	return nil
}

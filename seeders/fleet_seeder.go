package seeders

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	demoDriverID  = "55555555-0000-0000-0000-000000000001"
	demoTruckID   = "66666666-0000-0000-0000-000000000001"
	demoTrailerID = "77777777-0000-0000-0000-000000000001"
	demoLoadID    = "88888888-0000-0000-0000-000000000001"
)

func seedFleet(ctx context.Context, db *pgxpool.Pool) error {
	_, err := db.Exec(ctx, `
		INSERT INTO drivers (id, first_name, last_name, email, phone, hire_date, status,
			license_number, license_expiry, company_id, division_id, department_id, home_terminal_id)
		VALUES ($1, 'Jordan', 'Bell', 'jordan.bell@launchtms.example', '614-555-0101',
			now() - interval '2 years', 'active', 'OH-4821937', now() + interval '18 months',
			$2, $3, $4, $5)
		ON CONFLICT (license_number) DO NOTHING`,
		demoDriverID, DemoCompanyID, DemoDivisionEastID, DemoDepartmentID, DemoTerminalID,
	)
	if err != nil {
		return fmt.Errorf("seed driver: %w", err)
	}

	_, err = db.Exec(ctx, `
		INSERT INTO trucks (id, make, model, year, license_plate, vin, status, mileage,
			company_id, division_id, department_id, home_terminal_id)
		VALUES ($1, 'Freightliner', 'Cascadia', 2022, 'OH-TRK-101', '1FUJGLDR2NLAA1001', 'available', 182500,
			$2, $3, $4, $5)
		ON CONFLICT (vin) DO NOTHING`,
		demoTruckID, DemoCompanyID, DemoDivisionEastID, DemoDepartmentID, DemoTerminalID,
	)
	if err != nil {
		return fmt.Errorf("seed truck: %w", err)
	}

	_, err = db.Exec(ctx, `
		INSERT INTO trailers (id, trailer_number, make, model, year, vin, trailer_type,
			capacity_tons, length_feet, status, company_id, division_id, department_id, home_terminal_id)
		VALUES ($1, 'TRL-2101', 'Wabash', 'DuraPlate', 2021, '1JJV532D8ML3C1001', 'dry_van',
			22.5, 53, 'available', $2, $3, $4, $5)
		ON CONFLICT (vin) DO NOTHING`,
		demoTrailerID, DemoCompanyID, DemoDivisionEastID, DemoDepartmentID, DemoTerminalID,
	)
	if err != nil {
		return fmt.Errorf("seed trailer: %w", err)
	}

	_, err = db.Exec(ctx, `
		INSERT INTO loads (id, load_number, bol_number, shipper, receiver,
			pickup_address, pickup_city, pickup_state, pickup_zip,
			delivery_address, delivery_city, delivery_state, delivery_zip,
			status, cargo_description, weight_lbs, distance_miles,
			pickup_date, delivery_date, rate,
			company_id, division_id, department_id, origin_terminal_id)
		VALUES ($1, 'L-2026-0001', 'BOL-88412', 'Acme Manufacturing', 'Summit Retail DC',
			'1200 Industrial Pkwy', 'Columbus', 'OH', '43204',
			'450 Commerce Dr', 'Pittsburgh', 'PA', '15201',
			'pending', 'Palletized consumer goods', 38500, 185,
			now() + interval '1 day', now() + interval '2 days', 1450.00,
			$2, $3, $4, $5)
		ON CONFLICT (company_id, load_number) DO NOTHING`,
		demoLoadID, DemoCompanyID, DemoDivisionEastID, DemoDepartmentID, DemoTerminalID,
	)
	if err != nil {
		return fmt.Errorf("seed load: %w", err)
	}

	return nil
}

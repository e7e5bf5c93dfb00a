package seeders

import (
	"context"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Fixed IDs so seeders are idempotent and re-runs do not duplicate rows.
// The demo tree is one company with two divisions; the east division has
// a full department/terminal chain underneath it.

// SeedOrganization creates the demo company tree.
func SeedOrganization(db *pgxpool.Pool) {
	ctx := context.Background()
	log.Println("seeding organization tree...")

	if err := seedOrgTree(ctx, db); err != nil {
		log.Fatalf("failed to seed organization tree: %v", err)
	}
	log.Println("organization tree seeded")
}

// SeedUsers creates the system admin and one user per role level.
func SeedUsers(db *pgxpool.Pool) {
	ctx := context.Background()
	log.Println("seeding users...")

	if err := seedUsers(ctx, db); err != nil {
		log.Fatalf("failed to seed users: %v", err)
	}
	log.Println("users seeded")
}

// SeedFleet creates sample drivers, trucks, trailers and loads under the
// demo terminal. Depends on the organization tree.
func SeedFleet(db *pgxpool.Pool) {
	ctx := context.Background()
	log.Println("seeding fleet...")

	if err := seedFleet(ctx, db); err != nil {
		log.Fatalf("failed to seed fleet: %v", err)
	}
	log.Println("fleet seeded")
}

package main

import (
	"flag"
	"log"

	"launch-tms/pkg/config"
	"launch-tms/pkg/database/postgresql"
	"launch-tms/seeders"
)

func main() {
	runOrg := flag.Bool("org", false, "seed the demo organization tree (company, divisions, department, terminal)")
	runUsers := flag.Bool("users", false, "seed the system admin and one user per role level")
	runFleet := flag.Bool("fleet", false, "seed sample drivers, trucks, trailers and loads")
	runAll := flag.Bool("all", false, "run all seeders")

	flag.Parse()

	if !*runOrg && !*runUsers && !*runFleet && !*runAll {
		log.Println("no seeder selected")
		flag.PrintDefaults()
		return
	}

	cfg := config.New()
	dbPool := postgresql.ConnectDB(cfg.Postgres.DSN)
	defer dbPool.Close()

	// users and fleet depend on the organization tree
	if *runAll || *runOrg {
		seeders.SeedOrganization(dbPool)
	}
	if *runAll || *runUsers {
		seeders.SeedUsers(dbPool)
	}
	if *runAll || *runFleet {
		seeders.SeedFleet(dbPool)
	}

	log.Println("seeding complete")
}

package main

import (
	"os"

	"tracker/cmd/migration/initialize"
	"tracker/cmd/migration/seed"
	"tracker/config"
	"tracker/internal/database"
	"tracker/internal/logger"

	migrate "github.com/rubenv/sql-migrate"
)

func main() {
	config, err := config.InitConfig()
	if err != nil {
		os.Exit(1)
	}

	logger.Init(config.Environment)
	log := logger.New("migration").Function("main")

	db, err := database.New(config)
	if err != nil {
		log.Er("failed to open database", err)
		os.Exit(1)
	}
	defer func() { _ = db.Close() }()

	sqlDB, err := db.SQL.DB()
	if err != nil {
		log.Er("failed to access sql database", err)
		os.Exit(1)
	}

	migrations := &migrate.FileMigrationSource{Dir: config.MigrationsDir}

	applied, err := migrate.Exec(sqlDB, "sqlite3", migrations, migrate.Up)
	if err != nil {
		log.Er("failed to run migrations", err)
		os.Exit(1)
	}
	log.Info("Migrations applied", "count", applied, "dir", config.MigrationsDir)

	if err := initialize.InitializeTables(db.SQL, config, logger.New("migration")); err != nil {
		log.Er("schema verification failed", err)
		os.Exit(1)
	}

	if config.Environment == "development" {
		if err := seed.Seed(db.SQL, config, logger.New("migration")); err != nil {
			log.Er("failed to seed development data", err)
			os.Exit(1)
		}
	}
}

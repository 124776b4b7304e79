package initialize

import (
	"tracker/config"
	"tracker/internal/logger"

	"gorm.io/gorm"
)

// requiredTables is the full schema the migrations are expected to produce.
var requiredTables = []string{
	"users",
	"health_entries",
	"mental_entries",
	"fitness_entries",
	"medications",
	"therapy_sessions",
	"workout_plans",
	"planned_workouts",
	"exercises",
}

func InitializeTables(db *gorm.DB, config config.Config, log logger.Logger) error {
	log = log.Function("InitializeTables")
	log.Info("Verifying schema after migration")

	for _, table := range requiredTables {
		if !db.Migrator().HasTable(table) {
			return log.Error("required table missing after migration", "table", table)
		}
	}

	log.Info("Table initialization complete")
	return nil
}

package app

import (
	"tracker/config"
	"tracker/internal/database"
	"tracker/internal/events"
	"tracker/internal/handlers/middleware"
	"tracker/internal/logger"
	"tracker/internal/models"
	"tracker/internal/repositories"
	"tracker/internal/services"
	"tracker/internal/websockets"

	adminController "tracker/internal/controllers/admin"
	fitnessController "tracker/internal/controllers/fitness"
	healthController "tracker/internal/controllers/health"
	mentalController "tracker/internal/controllers/mental"
	userController "tracker/internal/controllers/users"
)

type App struct {
	Database   database.DB
	Middleware middleware.Middleware
	Websocket  *websockets.Manager
	EventBus   *events.EventBus
	Config     config.Config

	// Services
	TransactionService *services.TransactionService
	CacheInvalidation  *services.CacheInvalidationService

	// Repositories
	UserRepo       repositories.UserRepository
	HealthRepo     repositories.EntryRepository[models.HealthEntry]
	MentalRepo     repositories.EntryRepository[models.MentalEntry]
	FitnessRepo    repositories.EntryRepository[models.FitnessEntry]
	PlanRepo       repositories.WorkoutPlanRepository
	TherapyRepo    repositories.TherapySessionRepository
	MedicationRepo repositories.MedicationRepository

	// Controllers
	UserController    *userController.UserController
	HealthController  *healthController.HealthController
	MentalController  *mentalController.MentalController
	FitnessController *fitnessController.FitnessController
	AdminController   *adminController.AdminController
}

func New() (*App, error) {
	log := logger.New("app").Function("New")

	config, err := config.InitConfig()
	if err != nil {
		return &App{}, log.Err("failed to initialize config", err)
	}

	db, err := database.New(config)
	if err != nil {
		return &App{}, log.Err("failed to create database", err)
	}

	eventBus := events.New(db.Cache.Events, config)

	// Initialize services
	transactionService := services.NewTransactionService(db)
	cacheInvalidation := services.NewCacheInvalidationService(db, eventBus)

	// Initialize repositories
	userRepo := repositories.New(db)

	healthSchema, _ := models.SchemaFor(models.DomainHealth)
	mentalSchema, _ := models.SchemaFor(models.DomainMental)
	fitnessSchema, _ := models.SchemaFor(models.DomainFitness)

	healthRepo := repositories.NewEntryRepository[models.HealthEntry](db, healthSchema)
	mentalRepo := repositories.NewEntryRepository[models.MentalEntry](db, mentalSchema)
	fitnessRepo := repositories.NewEntryRepository[models.FitnessEntry](db, fitnessSchema)
	planRepo := repositories.NewWorkoutPlan(db)
	therapyRepo := repositories.NewTherapySession(db)
	medicationRepo := repositories.NewMedication(db)

	// Initialize controllers with repositories and services
	middleware := middleware.New(db, eventBus, config, userRepo)
	userController := userController.New(eventBus, userRepo, db, config)
	healthController := healthController.New(healthRepo, medicationRepo, eventBus, db)
	mentalController := mentalController.New(mentalRepo, therapyRepo, eventBus, db)
	fitnessController := fitnessController.New(fitnessRepo, planRepo, transactionService, eventBus, db)
	adminController := adminController.New(eventBus, config)

	websocket, err := websockets.New(db, eventBus, config)
	if err != nil {
		return &App{}, log.Err("failed to create websocket manager", err)
	}

	app := &App{
		Database:           db,
		Config:             config,
		Middleware:         middleware,
		TransactionService: transactionService,
		CacheInvalidation:  cacheInvalidation,
		UserRepo:           userRepo,
		HealthRepo:         healthRepo,
		MentalRepo:         mentalRepo,
		FitnessRepo:        fitnessRepo,
		PlanRepo:           planRepo,
		TherapyRepo:        therapyRepo,
		MedicationRepo:     medicationRepo,
		UserController:     userController,
		HealthController:   healthController,
		MentalController:   mentalController,
		FitnessController:  fitnessController,
		AdminController:    adminController,
		Websocket:          websocket,
		EventBus:           eventBus,
	}

	if err := app.validate(); err != nil {
		return &App{}, log.Err("failed to validate app", err)
	}

	return app, nil
}

func (a *App) validate() error {
	log := logger.New("app").Function("validate")
	if a.Database.SQL == nil {
		return log.ErrMsg("database is nil")
	}

	if a.Config == (config.Config{}) {
		return log.ErrMsg("config is nil")
	}

	nilChecks := []any{
		a.Websocket,
		a.EventBus,
		a.TransactionService,
		a.CacheInvalidation,
		a.UserController,
		a.AdminController,
		a.HealthController,
		a.MentalController,
		a.FitnessController,
		a.UserRepo,
		a.HealthRepo,
		a.MentalRepo,
		a.FitnessRepo,
		a.PlanRepo,
		a.TherapyRepo,
		a.MedicationRepo,
	}

	for _, check := range nilChecks {
		if check == nil {
			return log.ErrMsg("nil check failed")
		}
	}

	return nil
}

func (a *App) Close() (err error) {
	if a.EventBus != nil {
		if closeErr := a.EventBus.Close(); closeErr != nil {
			err = closeErr
		}
	}

	if dbErr := a.Database.Close(); dbErr != nil {
		err = dbErr
	}

	return err
}

package app

import (
	"shiftwatch/config"
	"shiftwatch/internal/database"
	"shiftwatch/internal/events"
	"shiftwatch/internal/handlers/middleware"
	"shiftwatch/internal/logger"
	"shiftwatch/internal/repositories"
	"shiftwatch/internal/services"
	"shiftwatch/internal/websockets"

	adminController "shiftwatch/internal/controllers/admin"
	announcementController "shiftwatch/internal/controllers/announcements"
	employeeController "shiftwatch/internal/controllers/employees"
	insightsController "shiftwatch/internal/controllers/insights"
	suggestionController "shiftwatch/internal/controllers/suggestions"
	timeOffController "shiftwatch/internal/controllers/timeoff"
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
	EmployeeRepo     repositories.EmployeeRepository
	TaskRepo         repositories.TaskRepository
	TimeOffRepo      repositories.TimeOffRepository
	SuggestionRepo   repositories.SuggestionRepository
	AnnouncementRepo repositories.AnnouncementRepository

	// Controllers
	AdminController        *adminController.AdminController
	InsightsController     *insightsController.InsightsController
	SuggestionController   *suggestionController.SuggestionController
	EmployeeController     *employeeController.EmployeeController
	TimeOffController      *timeOffController.TimeOffController
	AnnouncementController *announcementController.AnnouncementController
}

// New opens storage, applies pending migrations and wires every component.
func New(config config.Config) (*App, error) {
	log := logger.New("app").Function("New")

	db, err := database.New(config)
	if err != nil {
		return &App{}, log.Err("failed to create database", err)
	}

	applied, err := db.Migrate()
	if err != nil {
		_ = db.Close()
		return &App{}, log.Err("failed to migrate database", err)
	}
	if applied > 0 {
		log.Info("applied migrations", "count", applied)
	}

	eventBus := events.New(db.Cache.Events, config)

	// Initialize services
	transactionService := services.NewTransactionService(db)

	// Initialize repositories
	employeeRepo := repositories.NewEmployee(db, config.CacheEmployeeTTL)
	taskRepo := repositories.NewTask(db)
	timeOffRepo := repositories.NewTimeOff(db)
	suggestionRepo := repositories.NewSuggestion(db)
	announcementRepo := repositories.NewAnnouncement(db)

	cacheInvalidation := services.NewCacheInvalidationService(eventBus, employeeRepo)

	// Initialize controllers with repositories and services
	admin := adminController.New(config)
	insights := insightsController.New(employeeRepo, timeOffRepo, config)

	websocket, err := websockets.New(eventBus)
	if err != nil {
		_ = db.Close()
		return &App{}, log.Err("failed to create websocket manager", err)
	}

	app := &App{
		Database:           db,
		Config:             config,
		Middleware:         middleware.New(admin),
		Websocket:          websocket,
		EventBus:           eventBus,
		TransactionService: transactionService,
		CacheInvalidation:  cacheInvalidation,
		EmployeeRepo:       employeeRepo,
		TaskRepo:           taskRepo,
		TimeOffRepo:        timeOffRepo,
		SuggestionRepo:     suggestionRepo,
		AnnouncementRepo:   announcementRepo,
		AdminController:    admin,
		InsightsController: insights,
		SuggestionController: suggestionController.New(
			transactionService, suggestionRepo, taskRepo, insights, eventBus, config,
		),
		EmployeeController:     employeeController.New(employeeRepo, taskRepo, eventBus, config),
		TimeOffController:      timeOffController.New(timeOffRepo, employeeRepo, eventBus),
		AnnouncementController: announcementController.New(transactionService, announcementRepo, config),
	}

	if err := app.validate(); err != nil {
		_ = app.Close()
		return &App{}, log.Err("failed to validate app", err)
	}

	return app, nil
}

func (a *App) validate() error {
	log := logger.New("app").Function("validate")
	if a.Database.SQL == nil {
		return log.ErrMsg("database is nil")
	}

	if a.Config.DatabaseDbPath == "" {
		return log.ErrMsg("config is empty")
	}

	missing := map[string]bool{
		"websocket":              a.Websocket == nil,
		"eventBus":               a.EventBus == nil,
		"transactionService":     a.TransactionService == nil,
		"cacheInvalidation":      a.CacheInvalidation == nil,
		"employeeRepo":           a.EmployeeRepo == nil,
		"taskRepo":               a.TaskRepo == nil,
		"timeOffRepo":            a.TimeOffRepo == nil,
		"suggestionRepo":         a.SuggestionRepo == nil,
		"announcementRepo":       a.AnnouncementRepo == nil,
		"adminController":        a.AdminController == nil,
		"insightsController":     a.InsightsController == nil,
		"suggestionController":   a.SuggestionController == nil,
		"employeeController":     a.EmployeeController == nil,
		"timeOffController":      a.TimeOffController == nil,
		"announcementController": a.AnnouncementController == nil,
	}

	for name, isNil := range missing {
		if isNil {
			return log.Error("nil check failed", "component", name)
		}
	}

	return nil
}

func (a *App) Close() (err error) {
	if a.CacheInvalidation != nil {
		a.CacheInvalidation.Close()
	}

	if a.Websocket != nil {
		a.Websocket.Close()
	}

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

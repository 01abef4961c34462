// Package dependency provides dependency injection for the application.
package dependency

import (
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/gestor-gastos/backend/config"
	"github.com/gestor-gastos/backend/internal/application/adapter"
	"github.com/gestor-gastos/backend/internal/application/store"
	"github.com/gestor-gastos/backend/internal/application/usecase/account"
	"github.com/gestor-gastos/backend/internal/application/usecase/category"
	"github.com/gestor-gastos/backend/internal/application/usecase/dashboard"
	"github.com/gestor-gastos/backend/internal/application/usecase/session"
	"github.com/gestor-gastos/backend/internal/application/usecase/statefile"
	"github.com/gestor-gastos/backend/internal/application/usecase/transaction"
	"github.com/gestor-gastos/backend/internal/infra/server/router"
	"github.com/gestor-gastos/backend/internal/integration/adapters"
	"github.com/gestor-gastos/backend/internal/integration/entrypoint/controller"
	"github.com/gestor-gastos/backend/internal/integration/entrypoint/middleware"
	"github.com/gestor-gastos/backend/internal/integration/persistence"
)

// Injector holds all application dependencies.
type Injector struct {
	Config *config.Config
	DB     *gorm.DB
	Store  *store.Store
	Router *router.Router
}

// NewInjector creates a new dependency injector with all dependencies wired.
// redisClient may be nil; the snapshot cache is skipped in that case.
func NewInjector(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, dbHealthChecker func() bool) *Injector {
	// Snapshot repository, optionally cached
	var snapshotRepo adapter.SnapshotRepository = persistence.NewSnapshotRepository(db)
	if redisClient != nil {
		snapshotRepo = persistence.NewCachedSnapshotRepository(snapshotRepo, redisClient, cfg.Redis.CacheTTL)
	}

	// State store and adapters
	stateStore := store.New(snapshotRepo)
	sessionTokens := adapters.NewSessionTokens(cfg.Session.Secret, cfg.Session.Duration)

	// Use cases
	openSessionUseCase := session.NewOpenSessionUseCase(stateStore, sessionTokens)
	createAccountUseCase := account.NewCreateAccountUseCase(stateStore)
	createCategoryUseCase := category.NewCreateCategoryUseCase(stateStore)
	recordTransactionUseCase := transaction.NewRecordTransactionUseCase(stateStore)
	listTransactionsUseCase := transaction.NewListTransactionsUseCase(stateStore)
	getSummaryUseCase := dashboard.NewGetSummaryUseCase(stateStore)
	exportStateUseCase := statefile.NewExportStateUseCase(stateStore)
	importStateUseCase := statefile.NewImportStateUseCase(stateStore)

	// Controllers and middleware
	healthController := controller.NewHealthController(dbHealthChecker)
	sessionController := controller.NewSessionController(openSessionUseCase)
	stateController := controller.NewStateController(stateStore, exportStateUseCase, importStateUseCase)
	accountController := controller.NewAccountController(createAccountUseCase)
	categoryController := controller.NewCategoryController(createCategoryUseCase)
	transactionController := controller.NewTransactionController(recordTransactionUseCase, listTransactionsUseCase)
	dashboardController := controller.NewDashboardController(getSummaryUseCase)
	sessionRateLimiter := middleware.NewRateLimiter()
	authMiddleware := middleware.NewAuthMiddleware(sessionTokens)

	r := router.NewRouter(
		healthController,
		sessionController,
		stateController,
		accountController,
		categoryController,
		transactionController,
		dashboardController,
		sessionRateLimiter,
		authMiddleware,
	)

	return &Injector{
		Config: cfg,
		DB:     db,
		Store:  stateStore,
		Router: r,
	}
}

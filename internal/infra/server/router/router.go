// Package router sets up the HTTP routing for the application.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/gestor-gastos/backend/internal/integration/entrypoint/controller"
	"github.com/gestor-gastos/backend/internal/integration/entrypoint/middleware"
)

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine                *gin.Engine
	healthController      *controller.HealthController
	sessionController     *controller.SessionController
	stateController       *controller.StateController
	accountController     *controller.AccountController
	categoryController    *controller.CategoryController
	transactionController *controller.TransactionController
	dashboardController   *controller.DashboardController
	sessionRateLimiter    *middleware.RateLimiter
	authMiddleware        *middleware.AuthMiddleware
}

// NewRouter creates a new router instance with all dependencies.
func NewRouter(
	healthController *controller.HealthController,
	sessionController *controller.SessionController,
	stateController *controller.StateController,
	accountController *controller.AccountController,
	categoryController *controller.CategoryController,
	transactionController *controller.TransactionController,
	dashboardController *controller.DashboardController,
	sessionRateLimiter *middleware.RateLimiter,
	authMiddleware *middleware.AuthMiddleware,
) *Router {
	return &Router{
		healthController:      healthController,
		sessionController:     sessionController,
		stateController:       stateController,
		accountController:     accountController,
		categoryController:    categoryController,
		transactionController: transactionController,
		dashboardController:   dashboardController,
		sessionRateLimiter:    sessionRateLimiter,
		authMiddleware:        authMiddleware,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	// Set Gin mode based on environment
	if environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else if environment == "test" {
		gin.SetMode(gin.TestMode)
	}

	// Create router with default middleware (logger and recovery)
	r.engine = gin.Default()

	// Setup routes
	r.setupHealthRoutes()
	r.setupAPIRoutes()

	return r.engine
}

// setupHealthRoutes configures health check endpoints.
func (r *Router) setupHealthRoutes() {
	r.engine.GET("/health", r.healthController.Check)
}

// setupAPIRoutes configures the main API routes.
func (r *Router) setupAPIRoutes() {
	// API v1 group
	v1 := r.engine.Group("/api/v1")
	{
		// Session route (rate limited, no authentication)
		if r.sessionController != nil && r.sessionRateLimiter != nil {
			v1.POST("/session", r.sessionRateLimiter.Middleware(), r.sessionController.Create)
		}

		// State routes (require authentication)
		if r.stateController != nil && r.authMiddleware != nil {
			state := v1.Group("/state")
			state.Use(r.authMiddleware.Authenticate())
			{
				state.GET("", r.stateController.Get)
				state.GET("/export", r.stateController.Export)
				state.POST("/import", r.stateController.Import)
				state.GET("/events", r.stateController.Events)
			}
		}

		// Account routes (require authentication)
		if r.accountController != nil && r.authMiddleware != nil {
			accounts := v1.Group("/accounts")
			accounts.Use(r.authMiddleware.Authenticate())
			{
				accounts.POST("", r.accountController.Create)
			}
		}

		// Category routes (require authentication)
		if r.categoryController != nil && r.authMiddleware != nil {
			categories := v1.Group("/categories")
			categories.Use(r.authMiddleware.Authenticate())
			{
				categories.POST("", r.categoryController.Create)
			}
		}

		// Transaction routes (require authentication)
		if r.transactionController != nil && r.authMiddleware != nil {
			transactions := v1.Group("/transactions")
			transactions.Use(r.authMiddleware.Authenticate())
			{
				transactions.GET("", r.transactionController.List)
				transactions.POST("", r.transactionController.Record)
			}
		}

		// Dashboard routes (require authentication)
		if r.dashboardController != nil && r.authMiddleware != nil {
			dashboard := v1.Group("/dashboard")
			dashboard.Use(r.authMiddleware.Authenticate())
			{
				dashboard.GET("/summary", r.dashboardController.Summary)
			}
		}
	}
}

// Engine returns the underlying Gin engine.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}

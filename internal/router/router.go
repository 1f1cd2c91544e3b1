package router

import (
	"database/sql"

	"inventory_backend/internal/handlers"
	"inventory_backend/internal/middleware"
	"inventory_backend/internal/repositories"
	"inventory_backend/internal/services"

	"github.com/gin-gonic/gin"
)

// Setup initializes the routing for the application.
func Setup(engine *gin.Engine, db *sql.DB) {
	// Initialize Repositories
	userRepo := repositories.NewUserRepository(db)
	requestRepo := repositories.NewLoginRequestRepository(db)
	logRepo := repositories.NewLoginLogRepository(db)
	itemRepo := repositories.NewItemRepository(db)
	txnRepo := repositories.NewTransactionRepository(db)

	// Initialize Services
	authService := services.NewAuthService(userRepo, requestRepo, logRepo, db)
	userService := services.NewUserService(userRepo, db)
	inventoryService := services.NewInventoryService(itemRepo, txnRepo, db)
	reportService := services.NewReportService(txnRepo)

	// Initialize Handlers
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)
	inventoryHandler := handlers.NewInventoryHandler(inventoryService)
	reportHandler := handlers.NewReportHandler(reportService)

	apiV1 := engine.Group("/api/v1")

	// Public authentication routes
	apiV1.POST("/auth/login", authHandler.Login)

	// Authenticated routes
	authenticated := apiV1.Group("")
	authenticated.Use(middleware.AuthMiddleware())
	{
		authenticated.GET("/auth/me", authHandler.GetCurrentUser)
		authenticated.PUT("/auth/credentials", userHandler.UpdateCredentials)

		SetupLoginRequestRoutes(authenticated, authHandler)
		SetupUserRoutes(authenticated, userHandler)
		SetupInventoryRoutes(authenticated, inventoryHandler)
		SetupReportRoutes(authenticated, reportHandler)
	}
}

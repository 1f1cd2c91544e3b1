package router

import (
	"inventory_backend/internal/handlers"
	"inventory_backend/internal/middleware"
	"inventory_backend/internal/models"

	"github.com/gin-gonic/gin"
)

// SetupLoginRequestRoutes sets up the admin approval queue routes.
func SetupLoginRequestRoutes(authenticatedGroup *gin.RouterGroup, authHandler *handlers.AuthHandler) {
	requestRoutes := authenticatedGroup.Group("/login-requests")
	requestRoutes.Use(middleware.RoleAuthMiddleware(models.RoleAdmin))
	{
		requestRoutes.GET("", authHandler.ListPendingRequests)
		requestRoutes.POST("/:id/approve", authHandler.ApproveRequest)
		requestRoutes.POST("/:id/deny", authHandler.DenyRequest)
	}

	logRoutes := authenticatedGroup.Group("/login-log")
	logRoutes.Use(middleware.RoleAuthMiddleware(models.RoleAdmin))
	{
		logRoutes.GET("", authHandler.GetLoginLog)
		logRoutes.DELETE("", authHandler.ResetLoginLog)
	}
}

// SetupUserRoutes sets up the user management routes (admin only).
func SetupUserRoutes(authenticatedGroup *gin.RouterGroup, userHandler *handlers.UserHandler) {
	userRoutes := authenticatedGroup.Group("/users")
	userRoutes.Use(middleware.RoleAuthMiddleware(models.RoleAdmin))
	{
		userRoutes.POST("", userHandler.CreateUser)
		userRoutes.GET("", userHandler.GetUsers)
		userRoutes.DELETE("/:id", userHandler.DeleteUser)
	}
}

// SetupInventoryRoutes sets up category and item routes.
// Reads and takes are open to admin and staff; structural writes are admin only.
func SetupInventoryRoutes(authenticatedGroup *gin.RouterGroup, inventoryHandler *handlers.InventoryHandler) {
	categoryWrite := authenticatedGroup.Group("/categories")
	categoryWrite.Use(middleware.RoleAuthMiddleware(models.RoleAdmin))
	{
		categoryWrite.POST("", inventoryHandler.CreateCategory)
		categoryWrite.DELETE("/:id", inventoryHandler.DeleteCategory)
	}
	authenticatedGroup.GET("/categories",
		middleware.RoleAuthMiddleware(models.RoleAdmin, models.RoleStaff), inventoryHandler.GetCategories)

	itemWrite := authenticatedGroup.Group("/items")
	itemWrite.Use(middleware.RoleAuthMiddleware(models.RoleAdmin))
	{
		itemWrite.POST("", inventoryHandler.CreateItem)
		itemWrite.PUT("/:id/quantity", inventoryHandler.SetQuantity)
		itemWrite.DELETE("/:id", inventoryHandler.DeleteItem)
	}

	itemShared := authenticatedGroup.Group("")
	itemShared.Use(middleware.RoleAuthMiddleware(models.RoleAdmin, models.RoleStaff))
	{
		itemShared.GET("/items", inventoryHandler.GetItems)
		itemShared.POST("/items/:id/take", inventoryHandler.TakeItem)
		itemShared.GET("/alerts/low-stock", inventoryHandler.GetLowStockAlerts)
	}
}

// SetupReportRoutes sets up the report routes (admin only).
func SetupReportRoutes(authenticatedGroup *gin.RouterGroup, reportHandler *handlers.ReportHandler) {
	reportRoutes := authenticatedGroup.Group("/reports")
	reportRoutes.Use(middleware.RoleAuthMiddleware(models.RoleAdmin))
	{
		reportRoutes.GET("/transactions", reportHandler.GetTransactions)
		reportRoutes.GET("/items/:id/last-take", reportHandler.GetLastTake)
	}
}

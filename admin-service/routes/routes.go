package routes

import (
	"orgadmin-backend/admin-service/handlers"
	"orgadmin-backend/admin-service/middleware"
	"orgadmin-backend/shared/config"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

// SetupRouter wires middleware and all resource routes onto a Gin engine
func SetupRouter(db *gorm.DB, cfg *config.Config) *gin.Engine {
	router := gin.New()

	router.Use(middleware.RequestLogger(cfg.IsDevelopment()))
	router.Use(middleware.GlobalErrorHandler(cfg.IsDevelopment()))

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.CORSOrigin},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		AllowCredentials: true,
	}))

	orgHandler := handlers.NewOrganizationHandler(db)
	userHandler := handlers.NewUserHandler(db)

	api := router.Group("/api")
	{
		// Organization routes
		api.GET("/organizations", orgHandler.GetOrganizations)
		api.GET("/organizations/:id", orgHandler.GetOrganization)
		api.POST("/organizations", orgHandler.CreateOrganization)
		api.PUT("/organizations/:id", orgHandler.UpdateOrganization)
		api.DELETE("/organizations/:id", orgHandler.DeleteOrganization)
		api.PATCH("/organizations/:id/status", orgHandler.UpdateOrganizationStatus)

		// User routes
		api.GET("/users", userHandler.GetUsers)
		api.GET("/users/organization/:orgId", userHandler.GetUsersByOrganization)
		api.GET("/users/:id", userHandler.GetUser)
		api.POST("/users", userHandler.CreateUser)
		api.PUT("/users/:id", userHandler.UpdateUser)
		api.DELETE("/users/:id", userHandler.DeleteUser)
		api.PATCH("/users/:id/status", userHandler.UpdateUserStatus)
	}

	// Health check
	router.GET("/health", handlers.HealthCheck)

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// 404 handler
	router.NoRoute(middleware.NotFoundHandler())

	return router
}

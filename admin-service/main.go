package main

import (
	"log"

	"orgadmin-backend/admin-service/routes"
	"orgadmin-backend/shared/config"
	"orgadmin-backend/shared/database"

	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	config.LoadConfig()
	cfg := config.GetConfig()

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer database.Close(db)

	router := routes.SetupRouter(db, cfg)

	log.Printf("🚀 Admin Service starting on port %s (environment: %s)...", cfg.Port, cfg.AppEnv)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

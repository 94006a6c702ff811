package main

import (
	"log"
	"os"

	"cafe-billing/config"
	"cafe-billing/internal/handler"
	"cafe-billing/internal/ledger"
	"cafe-billing/pkg/database"

	"github.com/gin-gonic/gin"
)

func main() {
	// 1. Load Configuration
	config.LoadConfig()
	if config.AppConfig.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// 2. Connect to Database
	database.Connect()

	// 3. Auto-Migrate Models
	log.Println("Running migrations...")
	if err := database.Migrate(database.DB); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}
	log.Println("Migrations completed successfully.")

	// 3a. Seed Data
	database.SeedAdmin(database.DB, config.AppConfig.Defaults)

	// 4. Initialize Router
	svc := ledger.New(database.DB, ledger.OptionsFromConfig(config.AppConfig.Ledger))
	errorLog := log.New(os.Stderr, "ERROR\t", log.Ldate|log.Ltime|log.Lshortfile)
	r := handler.NewRouter(svc, config.AppConfig, errorLog)

	// 5. Start Server
	port := config.AppConfig.Server.Port
	log.Printf("Server starting on port %s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}

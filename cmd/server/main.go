package main

import (
	"log"

	"github.com/jkask/blabber/backend/internal/router"
	"github.com/jkask/blabber/backend/pkg/config"
	"github.com/jkask/blabber/backend/validators"
	"github.com/labstack/echo/v4"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database connections
	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize databases: %v", err)
	}
	defer db.CloseDB() // Ensure database connections are closed when main exits

	// Create Echo instance
	e := echo.New()

	// Setup global middleware
	config.SetupMiddleware(e)

	// Validator
	e.Validator = validators.NewValidator()

	// Setup routes and dependencies
	router.SetupRoutes(e, db.Postgres, db.Mongo, cfg)

	// Start server
	log.Printf("Starting server in %s mode on port %s", cfg.Env, cfg.Port)
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}

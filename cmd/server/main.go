// Copyright (c) 2026 Himanshu Singh
// License: MIT
// Project: Network Inventory Manager

package main

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/23himanshusingh/network-inventory-manager/internal/config"
	"github.com/23himanshusingh/network-inventory-manager/internal/database"
	"github.com/23himanshusingh/network-inventory-manager/internal/handlers"
	"github.com/23himanshusingh/network-inventory-manager/internal/routes"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Could not load config: %v", err)
	}

	// Connect to local database, migrate and seed
	database.Connect(cfg)

	// Wire handler layer to the shared connection
	handlers.InitServices()

	// Create and configure Fiber app
	app := fiber.New()
	routes.SetupRoutes(app, cfg)

	// Start HTTP server
	log.Printf("Server starting on port %s", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

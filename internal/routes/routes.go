// Copyright (c) 2026 Himanshu Singh
// License: MIT
// Project: Network Inventory Manager

package routes

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"github.com/23himanshusingh/network-inventory-manager/internal/config"
	"github.com/23himanshusingh/network-inventory-manager/internal/handlers"
	"github.com/23himanshusingh/network-inventory-manager/internal/models"
)

func SetupRoutes(app *fiber.App, cfg *config.Config) {
	app.Use(recover.New())
	app.Use(requestid.New())

	allowOrigins := strings.TrimSpace(cfg.CorsAllowOrigins)
	if allowOrigins == "" {
		allowOrigins = "http://localhost:5000,http://127.0.0.1:5000"
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     allowOrigins,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: false,
	}))
	app.Use(logger.New())

	// API routes
	api := app.Group("/api/v1")

	// Auth routes (public)
	api.Post("/auth/login", handlers.Login)

	// Auth routes (protected)
	authProtected := api.Group("/auth")
	authProtected.Use(handlers.JWTMiddleware)
	authProtected.Put("/change-password", handlers.ChangePassword)

	// User management routes (protected - Admin only)
	users := api.Group("/users")
	users.Use(handlers.JWTMiddleware)
	users.Use(handlers.RequireRole(models.RoleAdmin))
	users.Get("/", handlers.GetUsers)
	users.Post("/", handlers.CreateUser)
	users.Put("/:id", handlers.UpdateUser)
	users.Delete("/:id", handlers.DeleteUser)
	users.Post("/:id/reset-password", handlers.ResetUserPassword)

	// Headend routes (reads for all roles, writes for Planner/Admin)
	headends := api.Group("/headends")
	headends.Use(handlers.JWTMiddleware)
	headends.Get("/", handlers.ListHeadends)
	headends.Get("/:id", handlers.GetHeadend)
	headendsWrite := headends.Group("")
	headendsWrite.Use(handlers.RequireAnyRole(models.RolePlanner, models.RoleAdmin))
	headendsWrite.Post("/", handlers.CreateHeadend)

	// FDH routes
	fdhs := api.Group("/fdhs")
	fdhs.Use(handlers.JWTMiddleware)
	fdhs.Get("/", handlers.ListFDHs)
	fdhs.Get("/:id", handlers.GetFDH)
	fdhs.Get("/:id/topology", handlers.GetHubTopology)
	fdhsWrite := fdhs.Group("")
	fdhsWrite.Use(handlers.RequireAnyRole(models.RolePlanner, models.RoleAdmin))
	fdhsWrite.Post("/", handlers.CreateFDH)
	fdhsWrite.Put("/:id", handlers.UpdateFDH)

	// Splitter routes
	splitters := api.Group("/splitters")
	splitters.Use(handlers.JWTMiddleware)
	splitters.Get("/", handlers.ListSplitters)
	splitters.Get("/:id", handlers.GetSplitter)
	splittersWrite := splitters.Group("")
	splittersWrite.Use(handlers.RequireAnyRole(models.RolePlanner, models.RoleAdmin))
	splittersWrite.Post("/", handlers.CreateSplitter)
	splittersWrite.Put("/:id", handlers.UpdateSplitter)

	// Customer routes
	customers := api.Group("/customers")
	customers.Use(handlers.JWTMiddleware)
	customers.Get("/", handlers.ListCustomers)
	customers.Get("/:id", handlers.GetCustomer)
	customers.Get("/:id/topology", handlers.GetCustomerTopology)
	customers.Get("/:id/assignments", handlers.ListCustomerAssignments)
	customersWrite := customers.Group("")
	customersWrite.Use(handlers.RequireAnyRole(models.RolePlanner, models.RoleAdmin, models.RoleSupportAgent))
	customersWrite.Post("/", handlers.CreateCustomer)
	customersWrite.Put("/:id", handlers.UpdateCustomer)
	customersWrite.Post("/:id/assign-splitter", handlers.AssignCustomerToSplitter)
	customersWrite.Post("/:id/release-port", handlers.ReleaseCustomerPort)

	// Asset routes (technicians can report faults, Planner/Admin manage)
	assets := api.Group("/assets")
	assets.Use(handlers.JWTMiddleware)
	assets.Get("/", handlers.ListAssets)
	assets.Get("/:id", handlers.GetAsset)
	assets.Post("/:id/fault", handlers.RequireAnyRole(models.RoleTechnician, models.RolePlanner, models.RoleAdmin), handlers.ReportAssetFault)
	assetsWrite := assets.Group("")
	assetsWrite.Use(handlers.RequireAnyRole(models.RolePlanner, models.RoleAdmin))
	assetsWrite.Post("/", handlers.CreateAsset)
	assetsWrite.Put("/:id", handlers.UpdateAsset)
	assetsWrite.Post("/:id/retire", handlers.RetireAsset)
	assetsWrite.Post("/:id/assign", handlers.AssignAsset)

	// Serial number topology lookup (support desk entry point)
	api.Get("/topology/serial/:serial", handlers.JWTMiddleware, handlers.ResolveTopologyBySerial)

	// Technician and task routes
	technicians := api.Group("/technicians")
	technicians.Use(handlers.JWTMiddleware)
	technicians.Get("/", handlers.ListTechnicians)
	technicians.Get("/:id", handlers.GetTechnician)
	technicians.Post("/", handlers.RequireAnyRole(models.RolePlanner, models.RoleAdmin), handlers.CreateTechnician)

	tasks := api.Group("/tasks")
	tasks.Use(handlers.JWTMiddleware)
	tasks.Get("/", handlers.ListTasks)
	tasks.Post("/", handlers.RequireAnyRole(models.RolePlanner, models.RoleAdmin), handlers.CreateTask)
	tasks.Put("/:id", handlers.RequireAnyRole(models.RoleTechnician, models.RolePlanner, models.RoleAdmin), handlers.UpdateTask)

	// Stats routes (protected - All roles)
	stats := api.Group("/stats")
	stats.Use(handlers.JWTMiddleware)
	stats.Get("/", handlers.GetStats)
	stats.Get("/system", handlers.GetSystemStatus)

	// Audit log routes (protected - Admin only)
	audit := api.Group("/audit")
	audit.Use(handlers.JWTMiddleware)
	audit.Use(handlers.RequireAnyRole(models.RoleAdmin))
	audit.Get("/", handlers.GetAuditLog)

	// Reactive endpoints (protected)
	reactiveGroup := api.Group("/reactive")
	reactiveGroup.Use(handlers.JWTMiddleware)
	reactiveGroup.Get("/events", handlers.EventsHandler)      // SSE event stream
	reactiveGroup.Get("/assets", handlers.AssetStreamHandler) // Reactive asset list
	reactiveGroup.Get("/search", handlers.AssetSearchHandler) // Debounced search
	reactiveGroup.Get("/stats", handlers.EventStatsHandler)   // Aggregated event stats

	// Static files for the dashboard build
	app.Static("/assets", "./static/assets")
	app.Static("/", "./static")

	// Redirect root to React dashboard
	app.Get("/", func(c *fiber.Ctx) error {
		return c.Redirect("/index.html")
	})
}

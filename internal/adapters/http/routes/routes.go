package routes

import (
	"machinehub/internal/adapters/http/handlers"
	"machinehub/internal/adapters/http/middleware"
	"machinehub/internal/adapters/persistence/repositories"
	"machinehub/internal/config"
	"machinehub/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"gorm.io/gorm"
)

// Setup configures all routes for the application
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	refreshTokenRepo := repositories.NewRefreshTokenRepository(db)
	categoryRepo := repositories.NewCategoryRepository(db)
	machineRepo := repositories.NewMachineRepository(db)
	bookingRepo := repositories.NewBookingRepository(db)

	// Initialize services
	authService := services.NewAuthService(userRepo, refreshTokenRepo, cfg)
	oauthService := services.NewOAuthService(cfg.OAuth)
	userService := services.NewUserService(userRepo)
	machineService := services.NewMachineService(machineRepo, categoryRepo)
	bookingService := services.NewBookingService(bookingRepo, machineRepo)
	dashboardService := services.NewDashboardService(userRepo, machineRepo, bookingRepo)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler()
	authHandler := handlers.NewAuthHandler(authService, cfg)
	oauthHandler := handlers.NewOAuthHandler(oauthService, authService, cfg)
	userHandler := handlers.NewUserHandler(userService)
	machineHandler := handlers.NewMachineHandler(machineService, bookingService)
	bookingHandler := handlers.NewBookingHandler(bookingService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// API v1 group
	apiV1 := app.Group("/api/v1")
	setupAPIV1Routes(apiV1, healthHandler, authHandler, oauthHandler, userHandler,
		machineHandler, bookingHandler, dashboardHandler, cfg)
}

// setupAPIV1Routes configures API v1 routes
func setupAPIV1Routes(
	router fiber.Router,
	healthHandler *handlers.HealthHandler,
	authHandler *handlers.AuthHandler,
	oauthHandler *handlers.OAuthHandler,
	userHandler *handlers.UserHandler,
	machineHandler *handlers.MachineHandler,
	bookingHandler *handlers.BookingHandler,
	dashboardHandler *handlers.DashboardHandler,
	cfg *config.Config,
) {
	// API Info
	router.Get("/", healthHandler.APIInfo)

	// Auth routes (public)
	authRoutes := router.Group("/auth")
	setupAuthRoutes(authRoutes, authHandler, oauthHandler, cfg)

	// Catalog routes (public)
	setupCatalogRoutes(router, machineHandler)

	// User management routes (Admin only)
	userRoutes := router.Group("/users")
	userRoutes.Use(middleware.AuthMiddleware(cfg))
	userRoutes.Use(middleware.AdminOnly())
	setupUserRoutes(userRoutes, userHandler)

	// Profile routes (Authenticated users)
	profileRoutes := router.Group("/profile")
	profileRoutes.Use(middleware.AuthMiddleware(cfg))
	setupProfileRoutes(profileRoutes, userHandler)

	// Machine management routes (Owner/Admin)
	setupMachineRoutes(router, machineHandler, cfg)

	// Booking routes (Authenticated users)
	bookingRoutes := router.Group("/bookings")
	bookingRoutes.Use(middleware.AuthMiddleware(cfg))
	setupBookingRoutes(bookingRoutes, bookingHandler)

	// Owner routes (Owner/Admin)
	ownerRoutes := router.Group("/owner")
	ownerRoutes.Use(middleware.AuthMiddleware(cfg))
	ownerRoutes.Use(middleware.OwnerOrAdmin())
	setupOwnerRoutes(ownerRoutes, machineHandler, bookingHandler)

	// Dashboard routes
	dashboardRoutes := router.Group("/dashboard")
	dashboardRoutes.Use(middleware.AuthMiddleware(cfg))
	setupDashboardRoutes(dashboardRoutes, dashboardHandler)
}

// setupAuthRoutes configures authentication routes
func setupAuthRoutes(router fiber.Router, handler *handlers.AuthHandler, oauthHandler *handlers.OAuthHandler, cfg *config.Config) {
	// Public routes (rate limited against brute force)
	router.Post("/register", middleware.AuthRateLimiter(), handler.Register)
	router.Post("/login", middleware.AuthRateLimiter(), handler.Login)
	router.Post("/refresh", handler.RefreshToken)
	router.Post("/logout", handler.Logout)

	// External identity provider
	router.Get("/oauth/url", oauthHandler.GetLoginURL)
	router.Get("/oauth/callback", oauthHandler.Callback)

	// Protected routes
	router.Get("/me", middleware.AuthMiddleware(cfg), handler.Me)
	router.Post("/logout-all", middleware.AuthMiddleware(cfg), handler.LogoutAll)
}

// setupCatalogRoutes configures the public catalog routes
func setupCatalogRoutes(router fiber.Router, handler *handlers.MachineHandler) {
	router.Get("/categories", middleware.CatalogCache(), handler.ListCategories)
	router.Get("/machines", middleware.CatalogCache(), handler.ListMachines)
	router.Get("/machines/:id", handler.GetMachine)
	router.Get("/machines/:id/availability", handler.GetAvailability)
}

// setupUserRoutes configures user management routes (Admin only)
func setupUserRoutes(router fiber.Router, handler *handlers.UserHandler) {
	router.Get("/", handler.ListUsers)
	router.Get("/:id", handler.GetUser)
	router.Put("/:id", handler.UpdateUser)
	router.Delete("/:id", handler.DeleteUser)
	router.Put("/:id/role", handler.SetUserRole)
}

// setupProfileRoutes configures profile routes (Authenticated)
func setupProfileRoutes(router fiber.Router, handler *handlers.UserHandler) {
	router.Get("/", handler.GetProfile)
	router.Put("/", handler.UpdateProfile)
	router.Put("/password", middleware.StrictRateLimiter(), handler.ChangePassword)
}

// setupMachineRoutes configures machine management routes (Owner/Admin)
func setupMachineRoutes(router fiber.Router, handler *handlers.MachineHandler, cfg *config.Config) {
	machineRoutes := router.Group("/machines")
	machineRoutes.Use(middleware.AuthMiddleware(cfg))
	machineRoutes.Use(middleware.OwnerOrAdmin())

	machineRoutes.Post("/", handler.CreateMachine)
	machineRoutes.Put("/:id", handler.UpdateMachine)
	machineRoutes.Delete("/:id", handler.DeleteMachine)
}

// setupBookingRoutes configures booking routes (Authenticated)
func setupBookingRoutes(router fiber.Router, handler *handlers.BookingHandler) {
	router.Post("/", handler.CreateBooking)
	router.Get("/my", handler.ListMyBookings)
	router.Get("/:id", handler.GetBooking)
	router.Put("/:id/cancel", handler.CancelBooking)

	// Owner decisions on incoming bookings
	router.Put("/:id/confirm", middleware.OwnerOrAdmin(), handler.ConfirmBooking)
	router.Put("/:id/reject", middleware.OwnerOrAdmin(), handler.RejectBooking)
}

// setupOwnerRoutes configures owner-scoped listing routes (Owner/Admin)
func setupOwnerRoutes(router fiber.Router, machineHandler *handlers.MachineHandler, bookingHandler *handlers.BookingHandler) {
	router.Get("/machines", machineHandler.ListOwnMachines)
	router.Get("/bookings", bookingHandler.ListOwnerBookings)
}

// setupDashboardRoutes configures dashboard routes
func setupDashboardRoutes(router fiber.Router, handler *handlers.DashboardHandler) {
	// Owner dashboard (Owner/Admin only)
	router.Get("/owner", middleware.OwnerOrAdmin(), handler.OwnerDashboard)

	// Admin dashboard (Admin only)
	router.Get("/admin", middleware.AdminOnly(), handler.AdminDashboard)
}

package router

import (
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"volunflow/internal/auth"
	"volunflow/internal/config"
	"volunflow/internal/handler"
	"volunflow/internal/media"
	"volunflow/internal/middleware"
	"volunflow/internal/model"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	jwtService *auth.JWTService,
	store *media.Storage,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	eventHandler *handler.EventHandler,
	notificationHandler *handler.NotificationHandler,
	adminHandler *handler.AdminHandler,
	contactHandler *handler.ContactHandler,
	healthHandler *handler.HealthHandler,
) {
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(echomw.CORS())

	e.GET("/healthz", healthHandler.Check)
	e.GET("/swagger/*", echoSwagger.WrapHandler)
	e.Static("/media", cfg.MediaDir)

	anyRole := middleware.RequireRoles(jwtService, model.RoleAdmin, model.RoleOrganizer, model.RoleVolunteer)
	adminOnly := middleware.RequireRoles(jwtService, model.RoleAdmin)
	organizers := middleware.RequireRoles(jwtService, model.RoleAdmin, model.RoleOrganizer)
	intake := middleware.MediaIntake(store)

	api := e.Group("/api/v1")

	// Credential flows, all public
	api.GET("/auth/login", authHandler.Login)
	api.GET("/auth/login/:id", authHandler.Login)
	api.GET("/auth/generate_otp", authHandler.GenerateOTP)
	api.GET("/auth/generate_otp/:id", authHandler.GenerateOTP)
	api.GET("/auth/verify_otp", authHandler.VerifyOTP)
	api.GET("/auth/verify_otp/:id", authHandler.VerifyOTP)

	// Users
	api.GET("/users", userHandler.List)
	api.POST("/users", userHandler.Create, intake)
	api.GET("/users/:id", userHandler.Get)
	api.PATCH("/users/:id", userHandler.Update, anyRole, intake)
	api.DELETE("/users/:id", userHandler.Delete, adminOnly)

	// Events
	api.GET("/events", eventHandler.List)
	api.POST("/events", eventHandler.Create, organizers, intake)
	api.GET("/events/:id", eventHandler.Get)
	api.PATCH("/events/:id", eventHandler.Update, anyRole)
	api.DELETE("/events/:id", eventHandler.Delete, organizers)

	// Embedded notification lists
	api.GET("/notifications/:id", notificationHandler.List, anyRole)
	api.PATCH("/notifications/:id", notificationHandler.Update, anyRole)

	// Admin reads
	api.GET("/admin/:id", adminHandler.Get, adminOnly)

	// Contact form
	api.POST("/contact", contactHandler.Submit)
}

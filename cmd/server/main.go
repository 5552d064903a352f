package main

import (
	"context"
	"log"
	"net/http"

	_ "volunflow/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"volunflow/internal/auth"
	"volunflow/internal/config"
	"volunflow/internal/db"
	"volunflow/internal/handler"
	"volunflow/internal/mail"
	"volunflow/internal/media"
	"volunflow/internal/repository"
	"volunflow/internal/router"
	"volunflow/internal/service"
	"volunflow/internal/validation"
)

// @title VolunFlow API
// @version 1.0
// @description Volunteer and event coordination backend with JWT authentication, OTP email verification, and media uploads.
// @host localhost:3000
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("logger init: %v", err)
	}
	defer logger.Sync()

	database, err := db.Connect(context.Background(), cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		logger.Fatal("database init", zap.Error(err))
	}
	defer func() {
		if err := database.Client().Disconnect(context.Background()); err != nil {
			logger.Error("database disconnect", zap.Error(err))
		}
	}()

	store, err := media.NewStorage(cfg.MediaDir)
	if err != nil {
		logger.Fatal("media storage init", zap.Error(err))
	}

	// Shared components
	repo := repository.NewDocumentRepository(database)
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	validator := validation.New()
	notifier := mail.NewSMTPNotifier(mail.Config{
		Host:         cfg.SMTPHost,
		Port:         cfg.SMTPPort,
		Username:     cfg.SMTPUsername,
		Password:     cfg.SMTPPassword,
		From:         cfg.MailFrom,
		ContactInbox: cfg.ContactInbox,
	}, logger)

	// Services
	crudService := service.NewCrudService(repo, jwtService)
	authService := service.NewAuthService(repo, jwtService, notifier)
	userService := service.NewUserService(repo, crudService, jwtService, notifier)
	notificationService := service.NewNotificationService(repo)

	// Handlers
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(crudService, userService, validator)
	eventHandler := handler.NewEventHandler(crudService, validator)
	notificationHandler := handler.NewNotificationHandler(notificationService, validator)
	adminHandler := handler.NewAdminHandler(crudService)
	contactHandler := handler.NewContactHandler(notifier)
	healthHandler := handler.NewHealthHandler(database)

	e := echo.New()
	e.HideBanner = true

	router.Register(
		e,
		cfg,
		jwtService,
		store,
		authHandler,
		userHandler,
		eventHandler,
		notificationHandler,
		adminHandler,
		contactHandler,
		healthHandler,
	)

	logger.Info("starting server",
		zap.String("port", cfg.ServerPort),
		zap.String("database", cfg.MongoDB))

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		logger.Fatal("server start", zap.Error(err))
	}
}

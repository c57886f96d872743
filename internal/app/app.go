package app

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/temcen/cravequest/internal/config"
	"github.com/temcen/cravequest/internal/database"
	"github.com/temcen/cravequest/internal/handlers"
	"github.com/temcen/cravequest/internal/middleware"
	"github.com/temcen/cravequest/internal/services"
)

type App struct {
	config   *config.Config
	logger   *logrus.Logger
	db       *database.Database
	services *services.Services
	handlers *handlers.Handlers
	router   *gin.Engine
}

func New(cfg *config.Config) (*App, error) {
	app := &App{
		config: cfg,
		logger: setupLogger(cfg),
	}

	db, err := database.New(cfg, app.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	services, err := services.New(cfg, app.logger, db)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}
	app.services = services

	app.handlers, err = handlers.New(cfg, app.logger, services)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize handlers: %w", err)
	}

	app.setupRouter()

	return app, nil
}

func (a *App) Router() *gin.Engine {
	return a.router
}

func (a *App) Shutdown(ctx context.Context) error {
	a.logger.Info("Shutting down application...")

	if err := a.services.FeedbackBus.Close(); err != nil {
		a.logger.WithError(err).Error("Error closing feedback bus")
	}

	if err := a.db.Close(); err != nil {
		a.logger.WithError(err).Error("Error closing database connections")
		return err
	}

	return nil
}

func setupLogger(cfg *config.Config) *logrus.Logger {
	logger := logrus.New()

	level, err := logrus.ParseLevel(cfg.Logging.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	if cfg.Logging.Format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	return logger
}

func (a *App) setupRouter() {
	if a.config.Server.Mode == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(a.logger))
	router.Use(middleware.Recovery(a.logger))
	router.Use(middleware.CORS(a.config))

	// Health and metrics stay outside auth.
	router.GET("/health", a.handlers.Health.Check)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API key to JWT exchange.
	router.POST("/auth/token", a.handlers.Auth.Token)

	api := router.Group("/api/v1")
	{
		api.Use(middleware.Auth(a.services.Auth, a.logger))
		api.Use(middleware.RateLimit(a.services.RateLimit, a.logger))

		recipes := api.Group("/recipes")
		{
			recipes.POST("", a.handlers.Recipe.Ingest)
			recipes.GET("", a.handlers.Recipe.List)
			recipes.GET("/:recipeId", a.handlers.Recipe.Get)
			recipes.PUT("/:recipeId", a.handlers.Recipe.Replace)
			recipes.GET("/:recipeId/quality", a.handlers.Recipe.Quality)
			recipes.POST("/:recipeId/made", a.handlers.Recipe.MarkMade)
			recipes.POST("/:recipeId/feedback", a.handlers.Feedback.Submit)
		}

		users := api.Group("/users")
		{
			users.GET("/:userId/profile", a.handlers.Profile.Get)
			users.PUT("/:userId/profile", a.handlers.Profile.Update)
			users.GET("/:userId/recommendation", a.handlers.Recommendation.Get)
			users.GET("/:userId/recipes/:recipeId/value", a.handlers.Recommendation.Value)
		}
	}

	a.router = router
}

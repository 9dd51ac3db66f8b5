package main

import (
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"libraryhub/internal/config"
	"libraryhub/internal/database"
	"libraryhub/internal/handler"
	"libraryhub/internal/middleware"
	"libraryhub/internal/repository"
	"libraryhub/internal/service"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("could not load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	logger := newLogger(cfg)

	db, err := database.ConnectDB(cfg, logger)
	if err != nil {
		logger.Error("database connection failed", slog.Any("error", err))
		os.Exit(1)
	}
	defer database.Close(db)

	// Repositories
	userRepo := repository.NewUserRepository(db)
	bookRepo := repository.NewBookRepository(db)
	authorRepo := repository.NewAuthorRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	borrowRepo := repository.NewBorrowRepository(db)
	refreshTokenRepo := repository.NewRefreshTokenRepository(db)

	// Services
	authService := service.NewAuthService(userRepo, refreshTokenRepo, cfg)
	userService := service.NewUserService(userRepo, logger)
	bookService := service.NewBookService(bookRepo)
	authorService := service.NewAuthorService(authorRepo)
	categoryService := service.NewCategoryService(categoryRepo)
	borrowService := service.NewBorrowService(borrowRepo, userRepo, cfg.MaxBorrowWindow)

	// Handlers
	authHandler := handler.NewAuthHandler(authService, cfg.AccessTokenTTL)
	userHandler := handler.NewUserHandler(userService, borrowService)
	bookHandler := handler.NewBookHandler(bookService)
	authorHandler := handler.NewAuthorHandler(authorService)
	categoryHandler := handler.NewCategoryHandler(categoryService)
	borrowHandler := handler.NewBorrowHandler(borrowService)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(middleware.CORS(cfg.CORSOrigins))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	authHandler.RegisterRoutes(api.Group("/auth"))

	authed := api.Group("", middleware.AuthMiddleware(authService))

	// The password-change endpoint stays reachable while the account is
	// still on a temporary password; everything else is gated.
	authed.PUT("/users/me/password", userHandler.ChangePassword)

	protected := authed.Group("", middleware.RequirePasswordChanged(userRepo))
	bookHandler.RegisterRoutes(protected.Group("/books"))
	authorHandler.RegisterRoutes(protected.Group("/authors"))
	categoryHandler.RegisterRoutes(protected.Group("/categories"))
	borrowHandler.RegisterRoutes(protected.Group("/borrows"))
	userHandler.RegisterRoutes(protected.Group("/users"))

	addr := fmt.Sprintf(":%d", cfg.HTTPPort)
	logger.Info("starting api server", slog.String("addr", addr))
	if err := r.Run(addr); err != nil {
		logger.Error("server stopped", slog.Any("error", err))
		os.Exit(1)
	}
}

func newLogger(cfg *config.Config) *slog.Logger {
	var level slog.Level
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if cfg.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}

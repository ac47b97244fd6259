package main

import (
	"context"
	"log"
	"net/http"

	_ "todoapp/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"todoapp/internal/auth"
	"todoapp/internal/cache"
	"todoapp/internal/config"
	"todoapp/internal/db"
	"todoapp/internal/handler"
	"todoapp/internal/model"
	"todoapp/internal/repository"
	"todoapp/internal/router"
	"todoapp/internal/service"
)

// @title Todo App API
// @version 1.0
// @description Multi-user to-do list API with JWT authentication.
// @host localhost:8080
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// Run migrations for all models
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Task{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	if err := cacheClient.Ping(context.Background()); err != nil {
		log.Printf("redis unavailable, caching disabled: %v", err)
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	taskRepo := repository.NewTaskRepository(gormDB)

	// Initialize auth components
	tokenService := auth.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	hasher := auth.NewBcryptHasher()

	// Initialize services
	authService := service.NewAuthService(userRepo, hasher, tokenService, cacheClient)
	taskService := service.NewTaskService(taskRepo, cacheClient)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	todoHandler := handler.NewTodoHandler(taskService)

	// Register routes
	router.Register(e, tokenService, authHandler, todoHandler)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}

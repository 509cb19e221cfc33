package main

import (
	"context"
	"log"
	"net/http"

	_ "groupchat/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"groupchat/internal/auth"
	"groupchat/internal/cache"
	"groupchat/internal/config"
	"groupchat/internal/db"
	"groupchat/internal/handler"
	"groupchat/internal/repository"
	"groupchat/internal/router"
	"groupchat/internal/service"
)

// @title Group Chat API
// @version 1.0
// @description Chat backend with user administration, JWT authentication, groups and group messaging.
// @host localhost:3000
// @schemes http
// @securityDefinitions.apikey TokenAuth
// @in header
// @name Authorization
// @description Raw session token, no scheme prefix.
func main() {
	cfg := config.Load()

	e := echo.New()
	e.Use(middleware.RequestID())

	ctx := context.Background()
	database, err := db.NewMongo(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}
	if err := db.EnsureIndexes(ctx, database); err != nil {
		log.Fatalf("ensure indexes: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Initialize repositories
	userRepo := repository.NewUserRepository(database)
	groupRepo := repository.NewGroupRepository(database)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret)

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtService)
	userService := service.NewUserService(userRepo)
	groupService := service.NewGroupService(groupRepo, cacheClient)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	groupHandler := handler.NewGroupHandler(groupService)

	// Register routes
	router.Register(e, cfg, authHandler, userHandler, groupHandler)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}

package main

import (
	"log"
	"net/http"
	"os"

	_ "gymbook/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"gymbook/internal/cache"
	"gymbook/internal/config"
	"gymbook/internal/db"
	"gymbook/internal/handler"
	"gymbook/internal/model"
	"gymbook/internal/repository"
	"gymbook/internal/router"
	"gymbook/internal/service"
)

// @title Gymbook API
// @version 1.0
// @description Record-keeping backend for club users and their memberships.
// @host localhost:8080
// @BasePath /api
// @schemes http
func main() {
	cfg := config.Load()

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// Drop tables if RESET_DB environment variable is set
	if os.Getenv("RESET_DB") == "true" {
		log.Println("RESET_DB=true detected, dropping all tables...")
		for _, table := range []interface{}{&model.Membership{}, &model.User{}} {
			if err := gormDB.Migrator().DropTable(table); err != nil {
				log.Printf("Warning: Failed to drop table (may not exist): %v", err)
			}
		}
		log.Println("Tables dropped")
	}

	// Run migrations for all models
	if err := gormDB.AutoMigrate(&model.User{}, &model.Membership{}); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	membershipRepo := repository.NewMembershipRepository(gormDB)

	// Initialize services
	userService := service.NewUserService(userRepo, cacheClient)
	membershipService := service.NewMembershipService(membershipRepo, userRepo, cacheClient)

	// Initialize handlers
	userHandler := handler.NewUserHandler(userService)
	membershipHandler := handler.NewMembershipHandler(membershipService)
	seedHandler := handler.NewSeedHandler(userService, membershipService)

	// Register routes
	router.Register(e, userHandler, membershipHandler, seedHandler)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}

package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "rbacauth/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"rbacauth/internal/auth"
	"rbacauth/internal/cache"
	"rbacauth/internal/config"
	"rbacauth/internal/db"
	"rbacauth/internal/handler"
	"rbacauth/internal/logging"
	"rbacauth/internal/repository"
	"rbacauth/internal/router"
	"rbacauth/internal/service"
)

// @title RBAC Auth API
// @version 1.0
// @description User signup and login with cookie sessions, plus role management and assignment.
// @host localhost:8080
// @BasePath /
// @schemes http
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN, cfg.DBMaxOpenConns)
	if err != nil {
		logger.Fatal("database init", zap.Error(err))
	}

	if cfg.ResetDB {
		logger.Warn("RESET_DB=true detected, dropping all tables")
		if err := db.Reset(gormDB); err != nil {
			logger.Warn("drop tables", zap.Error(err))
		}
	}

	if err := db.Migrate(gormDB); err != nil {
		logger.Fatal("migrate", zap.Error(err))
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	if cacheClient.Enabled() {
		pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		if err := cacheClient.Ping(pingCtx); err != nil {
			logger.Warn("redis unreachable, continuing without cache", zap.String("addr", cfg.RedisAddr), zap.Error(err))
		}
		cancel()
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	roleRepo := repository.NewRoleRepository(gormDB)
	userRoleRepo := repository.NewUserRoleRepository(gormDB)

	// Initialize auth components
	var tokenOpts []auth.Option
	if cfg.SessionRevocation {
		if !cacheClient.Enabled() {
			logger.Warn("SESSION_REVOCATION requires REDIS_ADDR; logout will not revoke tokens")
		}
		tokenOpts = append(tokenOpts, auth.WithRevocation(auth.NewTokenStore(cacheClient)))
	}
	jwtService := auth.NewJWTService(cfg.JWTSecret, tokenOpts...)
	hasher := auth.NewBcryptHasher(auth.DefaultBcryptCost)

	// Initialize services
	resolver := service.NewResolver(userRepo, roleRepo)
	authService := service.NewAuthService(userRepo, resolver, hasher, jwtService)
	userService := service.NewUserService(userRepo, resolver, hasher, jwtService)
	roleService := service.NewRoleService(roleRepo, resolver, cacheClient)
	userRoleService := service.NewUserRoleService(userRoleRepo, resolver)

	// Initialize handlers
	secureCookie := cfg.IsProduction()
	authHandler := handler.NewAuthHandler(authService, secureCookie, logger)
	userHandler := handler.NewUserHandler(userService, secureCookie, logger)
	roleHandler := handler.NewRoleHandler(roleService, userRoleService, logger)

	e := echo.New()
	e.HideBanner = true
	router.Register(e, logger, authService, authHandler, userHandler, roleHandler)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	addr := ":" + cfg.ServerPort
	go func() {
		logger.Info("server starting", zap.String("addr", addr), zap.String("swagger", "http://localhost"+addr+"/swagger/index.html"))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server start", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", zap.Error(err))
	}
	if err := cacheClient.Close(); err != nil {
		logger.Warn("close redis", zap.Error(err))
	}
	if err := db.Close(gormDB); err != nil {
		logger.Warn("close database", zap.Error(err))
	}
}

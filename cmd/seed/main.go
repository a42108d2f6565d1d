package main

import (
	"context"
	"errors"
	"fmt"
	"log"

	"go.uber.org/zap"

	"rbacauth/internal/cache"
	"rbacauth/internal/config"
	"rbacauth/internal/db"
	apperrors "rbacauth/internal/errors"
	"rbacauth/internal/logging"
	"rbacauth/internal/repository"
	"rbacauth/internal/service"
)

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

	logger.Info("starting seed script")

	gormDB, err := db.NewMySQL(cfg.MySQLDSN, cfg.DBMaxOpenConns)
	if err != nil {
		logger.Fatal("connect database", zap.Error(err))
	}
	defer func() { _ = db.Close(gormDB) }()

	if err := db.Migrate(gormDB); err != nil {
		logger.Fatal("migrate", zap.Error(err))
	}

	// The role list is cached by the server; seeding through the service
	// invalidates it.
	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	defer func() { _ = cacheClient.Close() }()

	roleRepo := repository.NewRoleRepository(gormDB)
	resolver := service.NewResolver(repository.NewUserRepository(gormDB), roleRepo)
	roles := service.NewRoleService(roleRepo, resolver, cacheClient)

	created, existing, err := seedRoles(context.Background(), roles, cfg.SeedRoles)
	if err != nil {
		logger.Fatal("seed roles", zap.Error(err))
	}

	logger.Info("seed completed",
		zap.Int("created", created),
		zap.Int("existing", existing),
		zap.Int("total", created+existing),
	)
}

// seedRoles creates every named role, counting names that already exist.
func seedRoles(ctx context.Context, roles service.RoleService, names []string) (created int, existing int, err error) {
	for _, name := range names {
		if _, err := roles.CreateRole(ctx, name); err != nil {
			if errors.Is(err, apperrors.ErrRoleExists) {
				existing++
				continue
			}
			return created, existing, fmt.Errorf("create role %q: %w", name, err)
		}
		created++
	}
	return created, existing, nil
}

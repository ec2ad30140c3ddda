package main

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/sqooli/partner-api/internal/config"
	"github.com/sqooli/partner-api/internal/domain/audit"
	"github.com/sqooli/partner-api/internal/domain/partner"
	"github.com/sqooli/partner-api/internal/domain/permission"
	"github.com/sqooli/partner-api/internal/domain/role"
	"github.com/sqooli/partner-api/internal/domain/user"
	"github.com/sqooli/partner-api/internal/pkg/database"
	"github.com/sqooli/partner-api/internal/pkg/logger"
	"github.com/sqooli/partner-api/migrations"
)

func main() {
	cfg := config.Load()
	logger.Init(logger.Config{Level: cfg.LogLevel, Environment: cfg.Env})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	db, err := database.NewPostgres(ctx, cfg.DatabaseURL, database.PoolConfig{MaxOpen: 4})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer database.ClosePostgres(db)

	scripts, err := migrations.Scripts()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load migrations")
	}
	if err := database.Migrate(ctx, db, scripts...); err != nil {
		log.Fatal().Err(err).Msg("Failed to apply migrations")
	}
	log.Info().Int("scripts", len(scripts)).Msg("Migrations applied")

	userRepo := user.NewRepository(db)
	auditService := audit.NewService(audit.NewRepository(db))
	permissionService := permission.NewService(permission.NewRepository(db))
	roleService := role.NewService(role.NewRepository(db), permissionService, userRepo, auditService)
	userService := user.NewService(userRepo, roleService, permissionService, auditService)
	partnerService := partner.NewService(partner.NewRepository(db), userService, permissionService, auditService)

	perms, err := permissionService.Seed(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to seed permissions")
	}
	log.Info().Bool("seeded", perms.Seeded).Int("created", perms.Created).Int("total", perms.Total).Msg("Permissions")

	roles, err := roleService.Seed(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to seed roles")
	}
	log.Info().Bool("seeded", roles.Seeded).Int("created", roles.Created).Int("total", roles.Total).Msg("Roles")

	if cfg.SeedSuperAdminEmail == "" {
		log.Info().Msg("SEED_SUPERADMIN_EMAIL not set, skipping super admin")
		return
	}

	system, err := partnerService.EnsureSystem(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to ensure System partner")
	}

	existing, err := userService.GetByEmail(ctx, cfg.SeedSuperAdminEmail)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to look up super admin")
	}
	if existing != nil {
		log.Info().Str("user_id", existing.ID.String()).Msg("Super admin already exists")
		return
	}

	created, err := userService.Create(ctx, system.ID, &user.CreateRequest{
		Name:  cfg.SeedSuperAdminName,
		Email: cfg.SeedSuperAdminEmail,
		Role:  role.SuperAdmin,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create super admin")
	}

	// Credentials go to stdout only, never to the log file.
	fmt.Println("--- Super admin ---")
	fmt.Printf("email:     %s\n", created.Credentials.Email)
	fmt.Printf("extension: %s\n", created.Credentials.Extension)
	fmt.Printf("password:  %s\n", created.Credentials.Password)
	fmt.Println("-------------------")
}

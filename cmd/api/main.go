package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/sqooli/partner-api/internal/config"
	"github.com/sqooli/partner-api/internal/domain/audit"
	"github.com/sqooli/partner-api/internal/domain/auth"
	"github.com/sqooli/partner-api/internal/domain/campaign"
	"github.com/sqooli/partner-api/internal/domain/enrollment"
	"github.com/sqooli/partner-api/internal/domain/notification"
	"github.com/sqooli/partner-api/internal/domain/partner"
	"github.com/sqooli/partner-api/internal/domain/permission"
	"github.com/sqooli/partner-api/internal/domain/program"
	"github.com/sqooli/partner-api/internal/domain/revenue"
	"github.com/sqooli/partner-api/internal/domain/role"
	"github.com/sqooli/partner-api/internal/domain/session"
	"github.com/sqooli/partner-api/internal/domain/transaction"
	"github.com/sqooli/partner-api/internal/domain/user"
	"github.com/sqooli/partner-api/internal/domain/wallet"
	"github.com/sqooli/partner-api/internal/middleware"
	"github.com/sqooli/partner-api/internal/pkg/database"
	"github.com/sqooli/partner-api/internal/pkg/logger"
)

func main() {
	cfg := config.Load()
	closer := logger.Init(logger.Config{
		Level:       cfg.LogLevel,
		Environment: cfg.Env,
		LogFile:     cfg.LogFile,
		MaxSizeMB:   cfg.LogFileMaxSizeMB,
		MaxBackups:  cfg.LogFileMaxBackups,
	})
	defer closer.Close()

	log.Info().
		Str("env", cfg.Env).
		Str("port", cfg.Port).
		Str("session_store", cfg.SessionStore).
		Msg("Starting partner API")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgres(ctx, cfg.DatabaseURL, database.PoolConfig{})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer database.ClosePostgres(db)

	var sessionStore session.Store = session.NewPostgresStore(db)
	if cfg.UsesRedisSessions() {
		redis, err := database.NewRedis(ctx, cfg.RedisURL)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to Redis")
		}
		defer database.CloseRedis(redis)
		sessionStore = session.NewRedisStore(redis)
	}

	// ---------- Repositories ----------
	permissionRepo := permission.NewRepository(db)
	roleRepo := role.NewRepository(db)
	userRepo := user.NewRepository(db)
	partnerRepo := partner.NewRepository(db)
	programRepo := program.NewRepository(db)
	campaignRepo := campaign.NewRepository(db)
	transactionRepo := transaction.NewRepository(db)
	enrollmentRepo := enrollment.NewRepository(db)
	revenueRepo := revenue.NewRepository(db)
	walletRepo := wallet.NewRepository(db)
	notificationRepo := notification.NewRepository(db)
	auditRepo := audit.NewRepository(db)

	// ---------- Services ----------
	auditService := audit.NewService(auditRepo)
	permissionService := permission.NewService(permissionRepo)
	roleService := role.NewService(roleRepo, permissionService, userRepo, auditService)
	userService := user.NewService(userRepo, roleService, permissionService, auditService)
	partnerService := partner.NewService(partnerRepo, userService, permissionService, auditService)
	sessionService := session.NewService(sessionStore, userService, cfg.SessionTTL)
	authService := auth.NewService(userService, sessionService, permissionService, partnerService)

	programService := program.NewService(programRepo)
	campaignService := campaign.NewService(campaignRepo, partnerService, programService, auditService)
	transactionService := transaction.NewService(transactionRepo, partnerService)
	enrollmentService := enrollment.NewService(enrollmentRepo, programService, campaignService, transactionService)
	notificationService := notification.NewService(notificationRepo)
	walletService := wallet.NewService(walletRepo, partnerService, auditService, notificationService)

	ledger := revenue.NewTxLedger(db, revenueRepo, enrollmentRepo, walletRepo, transactionRepo)
	revenueService := revenue.NewService(revenueRepo, ledger, transactionService, campaignService,
		enrollmentService, notificationService, cfg.Location())

	// ---------- Background jobs ----------
	cleanup := notification.NewCleanupJob(notificationRepo, cfg.NotificationRetentionDays)
	go cleanup.Start(ctx, cfg.NotificationCleanupEvery)

	// ---------- Router ----------
	router := newRouter(cfg, routes{
		auth:         auth.NewHandler(authService),
		sessions:     session.NewHandler(sessionService),
		permissions:  permission.NewHandler(permissionService),
		roles:        role.NewHandler(roleService),
		users:        user.NewHandler(userService),
		partners:     partner.NewHandler(partnerService),
		programs:     program.NewHandler(programService),
		campaigns:    campaign.NewHandler(campaignService),
		transactions: transaction.NewHandler(transactionService),
		enrollments:  enrollment.NewHandler(enrollmentService),
		revenue:      revenue.NewHandler(revenueService),
		wallets:      wallet.NewHandler(walletService),
		notify:       notification.NewHandler(notificationService),
		audit:        audit.NewHandler(auditService),
	}, middleware.SessionAuth(authService))

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server error")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited properly")
}

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"qr-slot-allocator/config"
	httpHandler "qr-slot-allocator/internal/adapter/http/handler"
	"qr-slot-allocator/internal/adapter/storage/memory"
	pgStorage "qr-slot-allocator/internal/adapter/storage/postgres"
	redisStorage "qr-slot-allocator/internal/adapter/storage/redis"
	"qr-slot-allocator/internal/core/domain"
	"qr-slot-allocator/internal/core/ports"
	"qr-slot-allocator/internal/service"
	"qr-slot-allocator/pkg/logger"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"github.com/spf13/pflag"
)

func main() {
	flags := pflag.NewFlagSet("qr-slot-allocator", pflag.ContinueOnError)
	configPath := flags.StringP("config", "c", "", "path to a YAML config file")
	envFile := flags.String("env-file", ".env", "dotenv file loaded before the environment is read")
	if err := flags.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "parsing flags: %v\n", err)
		os.Exit(2)
	}

	envErr := config.LoadEnv(*envFile)

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)
	if envErr != nil {
		log.Debug().Err(envErr).Str("file", *envFile).Msg("no dotenv file loaded")
	}
	gin.SetMode(cfg.Server.Mode)

	log.Info().
		Str("mode", cfg.Server.Mode).
		Str("storage", cfg.Storage.Driver).
		Int("port", cfg.Server.Port).
		Msg("Starting QR slot allocator")

	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("jwt.secret is required (QRA_JWT_SECRET)")
	}

	cal, err := domain.NewCalendar(cfg.Pool.Timezone, cfg.Pool.TimezoneByEvent())
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid pool timezone configuration")
	}

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	var (
		slotRepo       ports.SlotRepository
		auditRepo      ports.AuditRepository
		idempCache     ports.IdempotencyCache
		rateLimitStore *redisStorage.RateLimitStore
		checkers       []ports.HealthChecker
		rdb            *goredis.Client
	)

	if cfg.Storage.Driver != config.DriverMemory {
		rdb, err = redisStorage.NewClient(ctx, cfg.Redis, log)
		switch {
		case err == nil:
			defer rdb.Close()
			log.Info().Msg("Redis connected")
		case cfg.Storage.Driver == config.DriverRedis:
			log.Fatal().Err(err).Msg("Failed to connect to Redis")
		default:
			log.Warn().Err(err).Msg("Redis unavailable, idempotency keys and rate limiting disabled")
			rdb = nil
		}
	}

	switch cfg.Storage.Driver {
	case config.DriverPostgres:
		pool, err := pgStorage.NewPool(ctx, cfg.Database, log)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
		}
		defer pool.Close()
		log.Info().Msg("PostgreSQL connected")
		if cfg.Database.AutoMigrate {
			if err := pgStorage.EnsureSchema(ctx, pool); err != nil {
				log.Fatal().Err(err).Msg("Failed to apply database schema")
			}
		}

		slotRepo = pgStorage.NewSlotRepo(pool)
		auditRepo = pgStorage.NewAuditRepository(pool)
		checkers = append(checkers, pgStorage.NewHealthCheck(pool))
	case config.DriverRedis:
		slotRepo = redisStorage.NewSlotStore(rdb)
	default:
		log.Warn().Msg("Using in-memory slot store, counters are lost on restart")
		slotRepo = memory.NewSlotStore()
	}

	if rdb != nil {
		idempCache = redisStorage.NewIdempotencyCache(rdb)
		rateLimitStore = redisStorage.NewRateLimitStore(rdb)
		checkers = append(checkers, redisStorage.NewHealthCheck(rdb, cfg.Storage.Driver == config.DriverRedis))
	}

	auditSvc := service.NewAuditService(auditRepo, log)
	registry := service.NewRegistryService(slotRepo, cal, cfg.Pool.DefaultMaxDailyCount, log)
	allocSvc := service.NewAllocatorService(registry, idempCache, auditSvc, service.AllocatorOptions{
		MaxRetries:     cfg.Allocator.MaxRetries,
		Timeout:        cfg.Allocator.Timeout,
		IdempotencyTTL: cfg.Allocator.IdempotencyTTL,
	}, log)
	schedulerSvc := service.NewSchedulerService(slotRepo, cal, cfg.Scheduler.Interval, auditSvc, log)
	insightsSvc := service.NewInsightsService(registry, cal)
	tokenSvc := service.NewJWTTokenService(cfg.JWT.Secret, cfg.JWT.Expiry, cfg.JWT.Issuer)

	for _, seed := range cfg.Pool.Slots {
		slot, err := registry.RegisterSlot(ctx, ports.RegisterSlotRequest{
			EventID:       seed.EventID,
			SlotID:        seed.SlotID,
			PayeeHandle:   seed.PayeeHandle,
			MaxDailyCount: seed.MaxDailyCount,
		})
		if err != nil {
			log.Fatal().Err(err).Str("event_id", seed.EventID).Str("slot_id", seed.SlotID).Msg("Failed to seed slot")
		}
		log.Info().
			Str("event_id", slot.EventID).
			Str("slot_id", slot.SlotID).
			Int("max_daily_count", slot.MaxDailyCount).
			Msg("Slot seeded")
	}

	if cfg.Scheduler.Enabled {
		schedulerSvc.Start(ctx)
	}

	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		AllocatorSvc:   allocSvc,
		Registry:       registry,
		InsightsSvc:    insightsSvc,
		SchedulerSvc:   schedulerSvc,
		TokenSvc:       tokenSvc,
		RateLimitStore: rateLimitStore,
		HealthCheckers: checkers,
		AuditSvc:       auditSvc,
		Logger:         log,
	})

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}

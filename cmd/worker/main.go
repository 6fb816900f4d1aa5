// Package main is the entry point for the ranking worker.
//
// The worker owns the full pipeline:
//   - Loads the local student roster and course catalog from PostgreSQL
//   - Collects performance snapshots from the SMS platform API
//   - Refreshes cached rankings in Redis on a schedule
//   - Serves the read API (health probes and rankings) over HTTP
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/bs1gr/AUT-MIEEK-SMS-sub001/config"
	"github.com/bs1gr/AUT-MIEEK-SMS-sub001/internal/application/command"
	"github.com/bs1gr/AUT-MIEEK-SMS-sub001/internal/application/query"
	"github.com/bs1gr/AUT-MIEEK-SMS-sub001/internal/application/snapshot"
	"github.com/bs1gr/AUT-MIEEK-SMS-sub001/internal/infrastructure/external/sms"
	"github.com/bs1gr/AUT-MIEEK-SMS-sub001/internal/infrastructure/persistence/postgres"
	"github.com/bs1gr/AUT-MIEEK-SMS-sub001/internal/infrastructure/persistence/redis"
	"github.com/bs1gr/AUT-MIEEK-SMS-sub001/internal/infrastructure/scheduler"
	"github.com/bs1gr/AUT-MIEEK-SMS-sub001/internal/infrastructure/scheduler/jobs"
	httpapi "github.com/bs1gr/AUT-MIEEK-SMS-sub001/internal/interface/http"
	"github.com/bs1gr/AUT-MIEEK-SMS-sub001/internal/interface/http/handlers"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "fatal error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	// ─────────────────────────────────────────────────────────────────────────
	// 1. CONFIGURATION
	// ─────────────────────────────────────────────────────────────────────────
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// ─────────────────────────────────────────────────────────────────────────
	// 2. LOGGING
	// ─────────────────────────────────────────────────────────────────────────
	log := setupLogger(cfg)
	log.Info("starting ranking worker",
		"app", cfg.App.Name,
		"version", cfg.App.Version,
		"env", string(cfg.App.Environment),
		"timezone", cfg.App.Timezone,
	)

	// ─────────────────────────────────────────────────────────────────────────
	// 3. DATABASE (PostgreSQL)
	// ─────────────────────────────────────────────────────────────────────────
	log.Info("connecting to database...")
	dbConn, err := postgres.NewConnectionFromURL(ctx, cfg.Database.URL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer func() {
		log.Info("closing database connection...")
		dbConn.Close()
	}()

	if err := dbConn.Ping(ctx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}
	log.Info("database connection established")

	log.Info("checking database migrations...")
	migrator := postgres.NewMigrator(dbConn)
	if err := migrator.Migrate(ctx); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	log.Info("database schema is up to date")

	// ─────────────────────────────────────────────────────────────────────────
	// 4. REDIS (optional ranking cache)
	// ─────────────────────────────────────────────────────────────────────────
	var rankingCache *redis.RankingCache
	var redisCache *redis.Cache

	if !cfg.Redis.Disabled {
		log.Info("connecting to Redis...", "addr", fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port))
		redisCfg := redis.DefaultConfig()
		redisCfg.Host = cfg.Redis.Host
		redisCfg.Port = cfg.Redis.Port
		redisCfg.Password = cfg.Redis.Password
		redisCfg.DB = cfg.Redis.DB
		redisCfg.PoolSize = cfg.Redis.PoolSize
		redisCfg.MinIdleConns = cfg.Redis.MinIdleConns
		redisCfg.DialTimeout = cfg.Redis.DialTimeout
		redisCfg.ReadTimeout = cfg.Redis.ReadTimeout
		redisCfg.WriteTimeout = cfg.Redis.WriteTimeout

		redisCache, err = redis.NewCache(redisCfg)
		if err != nil {
			// Every read falls back to live collection without the cache,
			// so a missing Redis degrades the service rather than failing it.
			log.Warn("failed to connect to Redis, rankings will be computed live", "error", err)
			redisCache = nil
		} else {
			defer redisCache.Close()
			rankingCache = redis.NewRankingCache(redisCache, cfg.Redis.RankingTTL)
			log.Info("Redis connection established")
		}
	} else {
		log.Info("Redis disabled, rankings will be computed live")
	}

	// ─────────────────────────────────────────────────────────────────────────
	// 5. SMS PLATFORM CLIENT
	// ─────────────────────────────────────────────────────────────────────────
	smsConfig := sms.DefaultClientConfig(cfg.SMS.BaseURL)
	smsConfig.APIKey = cfg.SMS.APIKey
	smsConfig.Timeout = cfg.SMS.RequestTimeout
	smsConfig.Logger = log
	smsConfig.Debug = cfg.App.Debug
	smsConfig.RateLimiterConfig.RequestsPerSecond = float64(cfg.SMS.RateLimit)
	smsConfig.RateLimiterConfig.BurstSize = cfg.SMS.RateLimitBurst
	smsConfig.RetryConfig.MaxRetries = cfg.SMS.MaxRetries
	smsConfig.RetryConfig.InitialBackoff = cfg.SMS.RetryBaseDelay
	smsConfig.RetryConfig.MaxBackoff = cfg.SMS.RetryMaxDelay
	smsConfig.CircuitBreakerConfig.FailureThreshold = cfg.SMS.CircuitBreakerThreshold
	smsConfig.CircuitBreakerConfig.Timeout = cfg.SMS.CircuitBreakerTimeout
	smsClient := sms.NewClient(smsConfig)
	log.Info("SMS platform client initialized", "base_url", cfg.SMS.BaseURL)

	// ─────────────────────────────────────────────────────────────────────────
	// 6. REPOSITORIES AND COLLECTION PIPELINE
	// ─────────────────────────────────────────────────────────────────────────
	studentRepo := postgres.NewStudentRepository(dbConn)
	courseRepo := postgres.NewCourseRepository(dbConn)

	fetcher := snapshot.NewFetcher(smsClient, snapshot.FetcherConfig{
		Timeout: cfg.Ranking.FetchTimeout,
	}, log)

	orchestrator := snapshot.NewOrchestrator(fetcher, snapshot.Config{
		WindowSize:     cfg.Ranking.WindowSize,
		MaxStudents:    cfg.Ranking.MaxStudents,
		TopCount:       cfg.Ranking.TopCount,
		MinSufficiency: cfg.Ranking.MinSufficiency,
	}, log)

	// A typed nil would make the handler think a cache exists.
	var queryCache query.RankingCache
	if rankingCache != nil {
		queryCache = rankingCache
	}
	rankingsHandler := query.NewGetRankingsHandler(studentRepo, courseRepo, orchestrator, queryCache, log)

	var studentRankHandler *query.GetStudentRankHandler
	if rankingCache != nil {
		studentRankHandler = query.NewGetStudentRankHandler(rankingCache, log)
	}

	syncHandler := command.NewSyncCatalogHandler(smsClient, studentRepo, courseRepo, log)

	// ─────────────────────────────────────────────────────────────────────────
	// 7. SCHEDULER (periodic catalog sync and ranking refresh)
	// ─────────────────────────────────────────────────────────────────────────
	if cfg.Scheduler.Enabled {
		sched := scheduler.NewScheduler(scheduler.Config{
			Logger:   log,
			Timezone: cfg.App.Location,
		})

		syncJob := jobs.NewSyncCatalogJob(syncHandler, cfg.Scheduler.JobTimeout, log)
		if err := sched.Register(syncJob, scheduler.NewIntervalSchedule(cfg.Scheduler.SyncInterval)); err != nil {
			return fmt.Errorf("failed to register sync job: %w", err)
		}

		var refreshJob *jobs.RefreshRankingsJob
		if rankingCache != nil {
			refreshJob = jobs.NewRefreshRankingsJob(
				studentRepo,
				courseRepo,
				orchestrator,
				rankingCache,
				jobs.RefreshRankingsConfig{
					Timeout: cfg.Scheduler.JobTimeout,
				},
				log,
			)

			if err := sched.Register(refreshJob, scheduler.NewIntervalSchedule(cfg.Scheduler.RefreshInterval)); err != nil {
				return fmt.Errorf("failed to register refresh job: %w", err)
			}
		} else {
			log.Info("no ranking cache, refresh job skipped")
		}

		if err := sched.Start(ctx); err != nil {
			return fmt.Errorf("failed to start scheduler: %w", err)
		}
		defer func() {
			log.Info("stopping scheduler...")
			_ = sched.Stop()
		}()

		if refreshJob != nil {
			// Warm the cache so the first API reads do not pay for a
			// full collection pass.
			go func() {
				if _, err := sched.RunNow(ctx, refreshJob.Name()); err != nil {
					log.Warn("initial ranking refresh failed", "error", err)
				}
			}()
		}
	}

	// ─────────────────────────────────────────────────────────────────────────
	// 8. HTTP SERVER
	// ─────────────────────────────────────────────────────────────────────────
	healthChecker := handlers.NewCompositeHealthChecker(cfg.App.Version)
	healthChecker.AddCheck("database", handlers.NewDatabaseCheck(dbConn))
	if redisCache != nil {
		healthChecker.AddCheck("cache", handlers.NewCacheCheck(redisCache))
	}
	healthChecker.AddCheck("sms_api", handlers.NewExternalAPICheck(smsClient))

	serverConfig := httpapi.DefaultConfig()
	serverConfig.Host = cfg.HTTP.Host
	serverConfig.Port = cfg.HTTP.Port
	serverConfig.ReadTimeout = cfg.HTTP.ReadTimeout
	serverConfig.WriteTimeout = cfg.HTTP.WriteTimeout
	serverConfig.IdleTimeout = cfg.HTTP.IdleTimeout
	serverConfig.EnableCORS = cfg.HTTP.EnableCORS
	serverConfig.AllowedOrigins = cfg.HTTP.AllowedOrigins
	serverConfig.RateLimitPerMinute = cfg.HTTP.RateLimitPerMinute

	server := httpapi.NewServer(serverConfig, httpapi.Dependencies{
		GetRankingsHandler:    rankingsHandler,
		GetStudentRankHandler: studentRankHandler,
		Logger:                log,
		HealthChecker:         healthChecker,
	})

	serverErrCh := server.StartAsync()
	log.Info("HTTP server started", "address", server.Address())

	// ─────────────────────────────────────────────────────────────────────────
	// 9. GRACEFUL SHUTDOWN
	// ─────────────────────────────────────────────────────────────────────────
	log.Info("ranking worker is running")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)

	select {
	case sig := <-sigCh:
		log.Info("received shutdown signal", "signal", sig.String())
	case err := <-serverErrCh:
		if err != nil {
			return fmt.Errorf("http server failed: %w", err)
		}
	}

	log.Info("starting graceful shutdown...", "timeout", cfg.App.ShutdownTimeout.String())
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.App.ShutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("http server shutdown failed", "error", err)
	}

	log.Info("shutdown completed successfully")
	return nil
}

// setupLogger builds the structured logger from observability settings.
func setupLogger(cfg *config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Observability.LogLevel),
	}
	if cfg.App.Debug {
		opts.Level = slog.LevelDebug
	}

	var handler slog.Handler
	if strings.EqualFold(cfg.Observability.LogFormat, "text") || cfg.IsDevelopment() {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	log := slog.New(handler)
	slog.SetDefault(log)
	return log
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

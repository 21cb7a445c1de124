package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/chatforge/booking-engine/internal/api/router"
	"github.com/chatforge/booking-engine/internal/appointments"
	"github.com/chatforge/booking-engine/internal/booking"
	"github.com/chatforge/booking-engine/internal/bots"
	"github.com/chatforge/booking-engine/internal/chat"
	appconfig "github.com/chatforge/booking-engine/internal/config"
	"github.com/chatforge/booking-engine/internal/observability/metrics"
	"github.com/chatforge/booking-engine/internal/schedule"
	"github.com/chatforge/booking-engine/internal/session"
	"github.com/chatforge/booking-engine/pkg/logging"
)

func main() {
	// .env is a local-dev convenience; absence is not an error.
	_ = godotenv.Load()

	cfg := appconfig.Load()

	logger := logging.New(cfg.LogLevel)
	logger.Info("starting booking-engine API server",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	bookingMetrics := metrics.NewBookingMetrics(registry)

	// Storage. Without DATABASE_URL everything runs in memory, which is
	// enough for local development and the demo widget.
	var (
		apptRepo        appointments.Repository = appointments.NewInMemoryRepository()
		botStore        bots.Store              = seededBotStore()
		transcriptStore *chat.TranscriptStore
	)
	if cfg.DatabaseURL != "" {
		pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
		if err != nil {
			logger.Error("failed to create postgres pool", "error", err)
			os.Exit(1)
		}
		defer pool.Close()
		if err := pool.Ping(context.Background()); err != nil {
			logger.Error("failed to ping postgres", "error", err)
			os.Exit(1)
		}
		apptRepo = appointments.NewPostgresRepository(pool)
		botStore = bots.NewPostgresStore(pool)

		// Transcripts ride on database/sql; a separate small pool is fine.
		db, err := sql.Open("pgx", cfg.DatabaseURL)
		if err != nil {
			logger.Error("failed to open transcript db", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		transcriptStore = chat.NewTranscriptStore(db)
		logger.Info("postgres storage enabled")
	} else {
		logger.Warn("DATABASE_URL not set; using in-memory storage")
	}

	var sessionStore session.Store = session.NewInMemoryStore()
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := client.Ping(context.Background()).Err(); err != nil {
			logger.Error("failed to ping redis", "error", err)
			os.Exit(1)
		}
		defer client.Close()
		sessionStore = session.NewRedisStore(client, cfg.SessionTTL)
		logger.Info("redis session store enabled", "ttl", cfg.SessionTTL.String())
	} else {
		logger.Warn("REDIS_ADDR not set; sessions are in-memory and lost on restart")
	}

	// Core services
	apptService := appointments.NewService(apptRepo, logger)
	engine := booking.NewEngine(apptService, logger,
		booking.WithSlotStep(cfg.SlotStepMinutes),
		booking.WithBuffer(cfg.BookingBufferMinutes),
		booking.WithMetrics(bookingMetrics),
	)

	chatHandler := chat.NewHandler(engine, sessionStore, botStore, transcriptStore, logger)
	apptHandler := appointments.NewHandler(apptRepo, apptService, logger)

	r := router.New(&router.Config{
		Logger:              logger,
		ChatHandler:         chatHandler,
		AppointmentsHandler: apptHandler,
		MetricsHandler:      promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		AdminJWTSecret:      cfg.AdminJWTSecret,
		CORSAllowedOrigins:  cfg.CORSAllowedOrigins,
		ChatRateLimit:       cfg.ChatRateLimit,
		ChatRateBurst:       cfg.ChatRateBurst,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}

// seededBotStore gives the in-memory mode one working bot so the widget can
// be exercised without a database.
func seededBotStore() *bots.InMemoryStore {
	store := bots.NewInMemoryStore()
	store.Put(&bots.Bot{
		ID:   "demo",
		Name: "Demo Bot",
		Hours: schedule.Hours{
			Open:          "09:00",
			Close:         "17:00",
			TimezoneLabel: "America/New_York",
		},
	})
	return store
}

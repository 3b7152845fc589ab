package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/eaglebank/ledger/internal/command"
	"github.com/eaglebank/ledger/internal/config"
	"github.com/eaglebank/ledger/internal/events"
	"github.com/eaglebank/ledger/internal/handler"
	"github.com/eaglebank/ledger/internal/middleware"
	"github.com/eaglebank/ledger/internal/models"
	"github.com/eaglebank/ledger/internal/query"
	ledgerredis "github.com/eaglebank/ledger/internal/redis"
	"github.com/eaglebank/ledger/internal/repository"
	"github.com/eaglebank/ledger/internal/storage"
	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Invalid environment variables", "error", err)
		os.Exit(1)
	}
	setupLogging(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Database connection
	db, err := storage.Open(ctx, cfg.DatabaseClient, cfg.DatabaseURL)
	if err != nil {
		slog.Error("Failed to connect to database", "client", cfg.DatabaseClient, "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := storage.Migrate(db); err != nil {
		slog.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Redis is optional: without it reads go straight to the database and no
	// events are emitted.
	var rdb *goredis.Client
	if cfg.RedisEnabled() {
		client, err := ledgerredis.NewClient(ctx, ledgerredis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			slog.Error("Failed to connect to Redis", "addr", cfg.RedisAddr, "error", err)
			os.Exit(1)
		}
		defer client.Close()
		rdb = client.Client
	}

	publisher := events.NewPublisher(rdb)
	viewCache := ledgerredis.NewViewCache[models.TransactionView](rdb, 24*time.Hour)

	// CQRS: write repo, read repo
	writeRepo := repository.NewTransactionWriteRepository(db)
	readRepo := repository.NewTransactionReadRepository(db, viewCache)

	commandSvc := command.NewTransactionCommandService(writeRepo, readRepo, publisher)
	querySvc := query.NewTransactionQueryService(readRepo)

	transactionHandler := handler.NewTransactionHandler(commandSvc, querySvc, cfg.IsProduction())

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery(), middleware.LoggingMiddleware())

	router.GET("/health", func(c *gin.Context) {
		if err := db.PingContext(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	transactionHandler.RegisterRoutes(router.Group("/transactions"))

	srv := &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		slog.Info("Shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}
	}()

	slog.Info("Ledger service starting", "port", cfg.Port, "env", cfg.Env,
		"database", cfg.DatabaseClient, "redis", cfg.RedisEnabled())
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Failed to start server", "error", err)
		os.Exit(1)
	}
	slog.Info("Server stopped")
}

func setupLogging(cfg *config.Config) {
	opts := &slog.HandlerOptions{Level: cfg.LogLevel}
	var h slog.Handler
	if cfg.IsProduction() {
		h = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		h = slog.NewTextHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(h))
}

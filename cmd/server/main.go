package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	authhandler "cnft/internal/auth/handler"
	jwttoken "cnft/internal/jwt_token"
	"cnft/internal/platform/config"
	"cnft/internal/platform/httpserver"
	"cnft/internal/platform/logger"
	"cnft/internal/platform/metrics"
	"cnft/internal/platform/postgres"
	platformredis "cnft/internal/platform/redis"
	"cnft/internal/registry/events"
	"cnft/internal/registry/handler"
	registrymetrics "cnft/internal/registry/metrics"
	"cnft/internal/registry/service"
	permissionstore "cnft/internal/registry/store/permission"
	tokenstore "cnft/internal/registry/store/token"
	treasurystore "cnft/internal/registry/store/treasury"
)

// main wires dependencies and owns the process lifecycle. Business logic
// lives in the internal service packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("server exited with error", "error", err.Error())
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, log *slog.Logger) error {
	var (
		tokens      service.TokenStore
		permissions permissionstore.Store
		treasury    service.TreasuryStore
		runner      service.TxRunner
	)
	if cfg.DatabaseURL != "" {
		db, err := postgres.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer db.Close()
		if err := applySchema(ctx, db); err != nil {
			return err
		}
		tokens = tokenstore.NewPostgres(db)
		permissions = permissionstore.NewPostgres(db)
		treasury = treasurystore.NewPostgres(db)
		runner = postgres.NewRunner(db)
		log.Info("using postgres stores")
	} else {
		tokens = tokenstore.NewInMemory()
		permissions = permissionstore.NewInMemory()
		treasury = treasurystore.NewInMemory()
		log.Info("using in-memory stores")
	}

	redisClient, err := platformredis.New(cfg.Redis)
	if err != nil {
		return err
	}
	if redisClient != nil {
		defer redisClient.Close()
		permissions = permissionstore.NewRedisCache(permissions, redisClient.Client, config.PermissionCacheTTL)
		log.Info("permission lookups cached in redis")
	}

	publisher := events.NewLogSink(log)
	if len(cfg.Kafka.Brokers) > 0 {
		kafka, err := events.NewKafka(ctx, cfg.Kafka.Brokers, cfg.Kafka.Topic)
		if err != nil {
			return err
		}
		defer kafka.Close()
		publisher.WithNext(kafka)
		log.Info("publishing registry events to kafka", "topic", cfg.Kafka.Topic)
	}

	registry := service.New(
		service.Config{
			Name:      "ConfidentialNFT",
			Symbol:    "CNFT",
			MintPrice: cfg.Registry.MintPriceWei,
			MaxSupply: cfg.Registry.MaxSupply,
			Admin:     cfg.Registry.AdminAddress,
		},
		tokens, permissions, treasury,
		service.WithTxRunner(runner),
		service.WithPublisher(publisher),
		service.WithMetrics(registrymetrics.New()),
		service.WithLogger(log),
	)

	jwtService := jwttoken.NewJWTService(cfg.Server.JWTSigningKey, "cnft", "cnft-api")

	router := chi.NewRouter()
	handler.New(registry, log, jwtService, metrics.NewHTTP()).Register(router)
	authhandler.New(jwtService, log, cfg.Registry.AdminAddress, cfg.Registry.AdminSecretHash, cfg.Server.TokenTTL).Register(router)
	router.Handle("/metrics", promhttp.Handler())
	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	srv := httpserver.New(cfg.Server.Addr, router)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting cnft registry", "addr", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func applySchema(ctx context.Context, db *sql.DB) error {
	for _, schema := range []string{tokenstore.Schema(), permissionstore.Schema(), treasurystore.Schema()} {
		if _, err := db.ExecContext(ctx, schema); err != nil {
			return err
		}
	}
	return nil
}

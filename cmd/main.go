package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fjod/pharmacy_cashier/internal/backend"
	"github.com/fjod/pharmacy_cashier/internal/cache"
	"github.com/fjod/pharmacy_cashier/internal/cart"
	"github.com/fjod/pharmacy_cashier/internal/config"
	h "github.com/fjod/pharmacy_cashier/internal/http"
	"github.com/fjod/pharmacy_cashier/internal/metrics"
	"github.com/fjod/pharmacy_cashier/internal/publisher"
	"github.com/fjod/pharmacy_cashier/internal/repository"
	"github.com/fjod/pharmacy_cashier/internal/service"
	"github.com/fjod/pharmacy_cashier/pkg/logger"
	"github.com/redis/go-redis/v9"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

const serviceName = "pharmacy-cashier"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Options{
		Service: serviceName,
		Env:     cfg.Env,
		Level:   cfg.LogLevel,
	})

	if err := run(cfg, log); err != nil {
		log.Error("cashier service stopped with error", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *slog.Logger) error {
	ctx := context.Background()
	reg := metrics.NewRegistry()

	repo, closeRepo, err := openRepository(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeRepo()

	parkedCache, closeCache := openCache(ctx, cfg, log)
	defer closeCache()

	parked := service.NewParkedOrderService(repo, parkedCache, cfg.StoreID, log)

	client := backend.New(cfg.BackendURL, cfg.RequestTimeout,
		backend.WithLogger(log),
		backend.WithLatencyObserver(reg.ObserveBackend),
		backend.WithShopID(cfg.StoreID),
	)
	log.Info("using pharmacy backend", "url", cfg.BackendURL, "shop_id", cfg.StoreID)

	var orders cart.OrderSubmitter = client
	if cfg.OrderSink == config.OrderSinkKafka {
		kafkaOrders := publisher.NewKafkaOrderSubmitter(cfg.StoreID, cfg.KafkaBrokers...)
		defer func() {
			if err := kafkaOrders.Close(); err != nil {
				log.Warn("failed to close kafka writer", "error", err)
			}
		}()
		orders = kafkaOrders
		log.Info("publishing orders to kafka", "brokers", cfg.KafkaBrokers, "topic", publisher.OrdersTopic)
	}

	sessions := h.NewSessionRegistry(func(terminalID string) *cart.Session {
		log.Info("opening cashier session", "terminal_id", terminalID)
		return cart.NewSession(cart.Collaborators{
			Products: client,
			Members:  client,
			Parked:   parked,
			Orders:   orders,
			Rewards:  client,
		}, cart.WithStoreID(cfg.StoreID))
	})
	sessions.OnCreate(reg.ActiveSessions.Inc)
	sessions.OnEvict(reg.ActiveSessions.Dec)
	sessions.StartSweeper(h.SessionIdleTTL, h.SessionSweepInterval)
	defer sessions.Stop()

	handler := h.NewCashierHandler(sessions, cfg.RequestTimeout, reg, log)
	srv := &http.Server{
		Addr: ":" + cfg.HTTPPort,
		Handler: h.NewRouter(handler, h.RouterConfig{
			RequestTimeout:     cfg.RequestTimeout + 5*time.Second,
			MaxRequestBodySize: cfg.MaxRequestBodySize,
			Metrics:            reg.Handler(),
		}),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: cfg.RequestTimeout + 10*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	grpcServer := grpc.NewServer()
	healthServer := health.NewServer()
	healthpb.RegisterHealthServer(grpcServer, healthServer)
	reflection.Register(grpcServer)
	healthServer.SetServingStatus(serviceName, healthpb.HealthCheckResponse_SERVING)

	lis, err := net.Listen("tcp", ":"+cfg.GRPCPort)
	if err != nil {
		return fmt.Errorf("failed to listen on grpc port: %w", err)
	}

	errCh := make(chan error, 2)
	go func() {
		log.Info("health service listening", "port", cfg.GRPCPort)
		if err := grpcServer.Serve(lis); err != nil {
			errCh <- fmt.Errorf("grpc server: %w", err)
		}
	}()
	go func() {
		log.Info("cashier http api listening", "port", cfg.HTTPPort, "store_id", cfg.StoreID)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	var runErr error
	select {
	case sig := <-quit:
		log.Info("shutting down", "signal", sig.String())
	case runErr = <-errCh:
	}

	healthServer.Shutdown()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("http server forced to shutdown", "error", err)
	}
	grpcServer.GracefulStop()

	log.Info("cashier service stopped")
	return runErr
}

func openRepository(ctx context.Context, cfg *config.Config, log *slog.Logger) (repository.ParkedOrderRepository, func(), error) {
	if cfg.ParkedStore == config.ParkedStoreMemory {
		log.Warn("parked orders kept in memory; they will not survive a restart")
		return repository.NewMemoryRepository(), func() {}, nil
	}

	connectCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	db, err := repository.ConnectMongoDB(connectCtx, cfg.MongoURI, cfg.MongoDBName)
	if err != nil {
		return nil, nil, err
	}
	repo := repository.NewMongoRepository(db)
	if err := repo.CreateIndexes(connectCtx); err != nil {
		return nil, nil, err
	}
	log.Info("connected to MongoDB", "database", cfg.MongoDBName)

	return repo, func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := db.Client().Disconnect(disconnectCtx); err != nil {
			log.Warn("failed to disconnect MongoDB", "error", err)
		}
	}, nil
}

// openCache falls back to no caching when Redis is not configured or not
// reachable; parked orders are always read through to the repository then.
func openCache(ctx context.Context, cfg *config.Config, log *slog.Logger) (cache.ParkedOrderCache, func()) {
	if cfg.RedisAddr == "" {
		return cache.Noop{}, func() {}
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       0,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		log.Warn("redis unavailable, parked-order listing cache disabled", "addr", cfg.RedisAddr, "error", err)
		_ = client.Close()
		return cache.Noop{}, func() {}
	}
	log.Info("redis ping succeeded", "addr", cfg.RedisAddr)
	return cache.NewRedisCache(client), func() { _ = client.Close() }
}

package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"shopng/config"
	"shopng/internal/admin"
	"shopng/internal/api"
	"shopng/internal/broker"
	"shopng/internal/cart"
	"shopng/internal/catalog"
	"shopng/internal/gateway"
	"shopng/internal/kvstore"
	"shopng/internal/orders"
	"shopng/internal/profile"
	"shopng/internal/session"
	"shopng/internal/users"
	"shopng/internal/util"
	"shopng/internal/worker"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {

	cfg := config.Load()

	if err := util.InitLogger(cfg.Server.Env); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer util.SyncLogger()

	logger := util.GetLogger()
	logger.Info("Starting shopng admin service")

	tp, err := util.InitTracer("shopng", cfg.Observ.JaegerEndpoint)
	if err != nil {
		log.Fatalf("Failed to initialize tracer: %v", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tp.Shutdown(ctx); err != nil {
			log.Printf("Error shutting down tracer: %v", err)
		}
	}()

	// Scoped persistent store for profiles. Redis in a real deployment;
	// the in-memory store keeps local runs dependency-free.
	var kv kvstore.Store
	if redisStore, err := kvstore.NewRedis(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB); err != nil {
		logger.Warn("Redis unavailable, using in-memory profile store", zap.Error(err))
		kv = kvstore.NewMemory()
	} else {
		defer redisStore.Close()
		kv = redisStore
	}

	// Transport collaborator: SQL when configured, seeded demo data
	// otherwise.
	var gw gateway.Gateway
	if cfg.Database.URL != "" {
		sqlGW, err := gateway.NewSQL(cfg.Database.URL)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer sqlGW.Close()
		gw = sqlGW
	} else {
		gw = gateway.NewSeeded(catalog.NewSeeded().Products())
	}

	producer := broker.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.TopicEvents)
	defer producer.Close()
	publisher := broker.NewEventPublisher(producer)

	ctx := context.Background()

	products, err := gw.GetProducts(ctx)
	if err != nil {
		log.Fatalf("Failed to load products: %v", err)
	}
	store := catalog.New(products)

	sessions := session.NewProvider()
	profiles := profile.NewStore(kv, sessions)
	shoppingCart := cart.New()

	orderDir := orders.NewDirectory(gw, publisher)
	if err := orderDir.Load(ctx); err != nil {
		logger.Error("Initial order load failed", zap.Error(err))
	}

	userDir := users.NewDirectory(gw, publisher)
	if err := userDir.Load(ctx); err != nil {
		logger.Error("Initial user load failed", zap.Error(err))
	}

	view := admin.NewView(userDir, profiles, sessions)

	workerCtx, workerCancel := context.WithCancel(context.Background())
	defer workerCancel()

	auditConsumer := broker.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.TopicEvents, cfg.Kafka.ConsumerGroup)
	auditWorker := worker.NewAuditWorker(auditConsumer)
	go func() {
		if err := auditWorker.Start(workerCtx); err != nil {
			log.Printf("Audit worker error: %v", err)
		}
	}()

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	handler := api.NewHandler(store, shoppingCart, orderDir, userDir, profiles, sessions, view)
	handler.SetupRoutes(router)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		log.Printf("Starting HTTP server on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	workerCancel()
	auditWorker.Stop()

	log.Println("Server exited")
}

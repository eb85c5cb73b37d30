package main

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/waste3d/learnpath-api/config"
	"github.com/waste3d/learnpath-api/internal/application/usecase"
	"github.com/waste3d/learnpath-api/internal/catalog"
	"github.com/waste3d/learnpath-api/internal/domain"
	"github.com/waste3d/learnpath-api/internal/infrastructure/cache"
	"github.com/waste3d/learnpath-api/internal/infrastructure/database"
	"github.com/waste3d/learnpath-api/internal/infrastructure/repository"
	"github.com/waste3d/learnpath-api/internal/infrastructure/security"
	"github.com/waste3d/learnpath-api/internal/middleware"
	grpc_server "github.com/waste3d/learnpath-api/internal/transport/grpc"
	handlers "github.com/waste3d/learnpath-api/internal/transport/http"

	"github.com/redis/go-redis/v9"
)

func main() {
	// 1. Config
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	defaultTier, err := domain.ParseTier(cfg.DefaultTier)
	if err != nil {
		log.Fatalf("Invalid DEFAULT_TIER %q: %v", cfg.DefaultTier, err)
	}
	if cfg.AccessSecret == "" {
		log.Println("ACCESS_SECRET is empty, only anonymous users will be accepted")
	}

	// 2. Database
	db, err := database.Open(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("Failed to get DB handle: %v", err)
	}

	// 3. Migrations
	log.Println("Running migrations...")
	if err := repository.Migrate(context.Background(), db); err != nil {
		log.Fatalf("Failed to migrate DB: %v", err)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
	})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	log.Println("Connected to Redis at", cfg.RedisAddr)

	// 4. Catalog
	courses, err := catalog.Load()
	if err != nil {
		log.Fatalf("Failed to load course catalog: %v", err)
	}

	// 5. Layers
	progressUseCase := usecase.NewProgressUseCase(
		courses,
		repository.NewProgressRepository(db),
		repository.NewEnrollmentRepository(db),
		repository.NewOnboardingRepository(db),
		repository.NewLoginRepository(db),
		cache.NewSnapshotCache(rdb, cfg.SnapshotTTL),
		defaultTier,
	)

	progressHandler := handlers.NewProgressHandler(progressUseCase)
	router := handlers.NewRouter(
		progressHandler,
		handlers.NewCourseHandler(progressUseCase, progressHandler),
		handlers.NewUserHandler(progressUseCase),
		middleware.NewRateLimiter(rdb),
		security.NewTokenManager(cfg.AccessSecret),
		handlers.RouterConfig{
			AllowedOrigins:  cfg.Origins(),
			ToggleRateLimit: cfg.ToggleRateLimit,
		},
	)

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	// 6. gRPC health
	monitor := grpc_server.NewHealthMonitor(map[string]grpc_server.Probe{
		"postgres": sqlDB.PingContext,
		"redis": func(ctx context.Context) error {
			return rdb.Ping(ctx).Err()
		},
	})
	go monitor.Run(ctx, 10*time.Second)

	lis, err := net.Listen("tcp", cfg.GRPCPort)
	if err != nil {
		log.Fatalf("Failed to listen on %s: %v", cfg.GRPCPort, err)
	}
	grpcServer := grpc_server.NewServer(monitor)

	go func() {
		log.Printf("gRPC health running on %s", cfg.GRPCPort)
		if err := grpcServer.Serve(lis); err != nil {
			log.Fatalf("Failed to serve gRPC: %v", err)
		}
	}()

	// 7. HTTP
	srv := &http.Server{
		Addr:    cfg.HTTPPort,
		Handler: router,
	}

	go func() {
		log.Printf("Learnpath API running on %s", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to run server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)
	<-quit

	log.Println("Shutting down server...")
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP shutdown: %v", err)
	}
	grpcServer.GracefulStop()

	if err := rdb.Close(); err != nil {
		log.Printf("Redis close: %v", err)
	}
	if err := sqlDB.Close(); err != nil {
		log.Printf("DB close: %v", err)
	}
}

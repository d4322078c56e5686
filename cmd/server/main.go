package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	stdhttp "net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/bettrack/api/internal/adapters/cache/redis"
	"github.com/bettrack/api/internal/adapters/handler/http"
	"github.com/bettrack/api/internal/adapters/hash"
	"github.com/bettrack/api/internal/adapters/repository/postgres"
	"github.com/bettrack/api/internal/adapters/token/jwt"
	"github.com/bettrack/api/internal/config"
	"github.com/bettrack/api/internal/core/ports"
	"github.com/bettrack/api/internal/core/services"
	"github.com/bettrack/api/internal/logger"
	"github.com/bettrack/api/internal/metrics"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	cfg := config.Load()

	lgr, err := logger.New("bettrack-api", cfg.Env)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = lgr.Sync() }()

	if cfg.JWTSecret == "" {
		lgr.Fatal("JWT_SECRET is required")
	}

	db, err := sql.Open("postgres", cfg.PostgresDSN())
	if err != nil {
		lgr.Fatal("failed to open postgres", zap.Error(err))
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		lgr.Fatal("failed to ping postgres", zap.Error(err))
	}

	var statsCache ports.StatsCache
	if cfg.RedisAddr != "" {
		rdb, err := redis.Connect(context.Background(), cfg.RedisAddr)
		if err != nil {
			lgr.Fatal("failed to connect redis", zap.Error(err))
		}
		defer rdb.Close()
		statsCache = redis.NewStatsCache(rdb)
	}

	userRepo := postgres.NewUserRepository(db)
	tokenRepo := postgres.NewRefreshTokenRepository(db)
	betRepo := postgres.NewBetRepository(db)
	statsRepo := postgres.NewStatsRepository(db)

	hasher := hash.NewBcryptHasher()
	signer := jwt.NewSigner([]byte(cfg.JWTSecret), cfg.JWTIssuer, cfg.JWTAudience, cfg.AccessTTL)

	authSvc := services.NewAuthService(userRepo, tokenRepo, hasher, signer, cfg.RefreshTTL, lgr)
	betSvc := services.NewBetService(betRepo, statsCache, lgr)
	statsSvc := services.NewStatsService(statsRepo, statsCache, lgr)

	authHandler := http.NewAuthHandler(authSvc, lgr)
	betHandler := http.NewBetHandler(betSvc, statsSvc, lgr)
	dashboardHandler := http.NewDashboardHandler(statsSvc, lgr)

	handler := http.NewHandler(authHandler, betHandler, dashboardHandler, signer)
	server := &stdhttp.Server{Addr: cfg.HTTPAddr, Handler: handler}

	metricsSrv := metrics.Start(cfg.MetricsPort, func(ctx context.Context) error {
		return db.PingContext(ctx)
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		lgr.Info("server listening", zap.String("addr", cfg.HTTPAddr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, stdhttp.ErrServerClosed) {
			lgr.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	lgr.Info("gracefully shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		lgr.Error("server shutdown failed", zap.Error(err))
	}
	if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
		lgr.Error("metrics server shutdown failed", zap.Error(err))
	}
}

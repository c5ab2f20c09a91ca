package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	redisv9 "github.com/redis/go-redis/v9"

	"company_research/internal/app/di"
	"company_research/internal/app/router"
	authentity "company_research/internal/feature/auth/domain/entity"
	authhandler "company_research/internal/feature/auth/transport/handler"
	researchadapters "company_research/internal/feature/research/adapters"
	researchhandler "company_research/internal/feature/research/transport/handler"
	infradb "company_research/internal/platform/db"
	"company_research/internal/platform/http/handler"
	jwtmw "company_research/internal/platform/jwt"
	"company_research/internal/platform/logging"
	infraredis "company_research/internal/platform/redis"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := godotenv.Load(".env"); err != nil {
		slog.Info(".env not found; using system environment variables")
	}
	logging.Setup(logging.LoadConfig())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// db
	db, err := infradb.OpenDB(infradb.LoadConfigFromEnv(), &authentity.User{}, &researchadapters.ReportModel{})
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	sqlDB, err := db.DB()
	if err != nil {
		slog.Error("failed to access database handle", "error", err)
		os.Exit(1)
	}
	defer sqlDB.Close()
	readiness := map[string]handler.Pinger{"database": sqlDB}

	// Redis（任意）
	var rdb *redisv9.Client
	if redisCfg := infraredis.LoadConfig(); redisCfg.Enabled() {
		if rdb, err = infraredis.NewRedisClient(ctx, redisCfg); err != nil {
			slog.Warn("Redis unavailable; token revocation disabled", "error", err)
			rdb = nil
		} else {
			defer func() {
				if err := rdb.Close(); err != nil {
					slog.Error("failed to close Redis client", "error", err)
				}
			}()
			readiness["redis"] = handler.PingFunc(func(ctx context.Context) error { return rdb.Ping(ctx).Err() })
		}
	} else {
		slog.Warn("REDIS_HOST is not set; token revocation disabled")
	}
	revocations := di.NewRevocationStore(rdb)

	if os.Getenv(jwtmw.EnvKeyJWTSecret) == "" {
		slog.Warn("JWT_SECRET is not set; authenticated endpoints will fail")
	}

	// Handler
	handlers := router.Handlers{
		Auth:           authhandler.NewAuthHandler(di.NewAuthUsecase(db, revocations)),
		Research:       researchhandler.NewResearchHandler(di.NewResearchUsecase(ctx)),
		Reports:        researchhandler.NewReportHandler(di.NewReportUsecase(db)),
		Readiness:      readiness,
		Revocations:    revocations,
		AnalyzeLimiter: di.NewAnalyzeLimiter(),
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router.NewRouter(handlers),
		ReadHeaderTimeout: 10 * time.Second,
		// 分析は言語モデルの応答を待つため長めに設定
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		slog.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server stopped unexpectedly", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown failed", "error", err)
	}
	slog.Info("server stopped")
}

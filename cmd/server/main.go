package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"

	"github.com/ignatzorin/freelancehub-backend/internal/app"
	"github.com/ignatzorin/freelancehub-backend/internal/config"
	"github.com/ignatzorin/freelancehub-backend/internal/db"
	"github.com/ignatzorin/freelancehub-backend/internal/goroutine"
	"github.com/ignatzorin/freelancehub-backend/internal/infrastructure/cache"
	"github.com/ignatzorin/freelancehub-backend/internal/infrastructure/persistence"
	"github.com/ignatzorin/freelancehub-backend/internal/logger"
	"github.com/ignatzorin/freelancehub-backend/internal/service"
)

func main() {
	// Готовим контекст для graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("main: ошибка загрузки конфигурации: %v", err)
	}
	logger.Init(cfg.Env)
	mainLog := logger.WithComponent("main")

	// Подключение к базе и миграции.
	dbConn, err := db.NewPostgres(ctx, cfg.DatabaseURL, db.DefaultPool)
	if err != nil {
		mainLog.WithError(err).Fatal("ошибка подключения к базе")
	}
	defer safeClose(dbConn)

	applied, err := db.RunMigrations(ctx, dbConn, cfg.MigrationsPath)
	if err != nil {
		mainLog.WithError(err).Fatal("ошибка миграций")
	}
	mainLog.WithField("applied", applied).Info("migrations done")

	identityCache, closeCache := newIdentityCache(ctx, cfg)
	defer closeCache()

	application := app.New(cfg, app.Repositories{
		Users:    persistence.NewUserRepositoryAdapter(dbConn),
		Profiles: persistence.NewProfileRepositoryAdapter(dbConn),
		Jobs:     persistence.NewJobRepositoryAdapter(dbConn),
		Payments: persistence.NewPaymentRepositoryAdapter(dbConn),
	}, identityCache, dbConn)

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           application.Router,
		ReadTimeout:       cfg.HTTPReadTimeout,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      cfg.HTTPWriteTimeout,
		IdleTimeout:       60 * time.Second,
	}

	// Завершаем сервер при получении сигнала.
	goroutine.SafeGoWithContext(ctx, "shutdown", func(ctx context.Context) {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			mainLog.WithError(err).Error("ошибка остановки http сервера")
		}
	})

	mainLog.WithField("port", cfg.HTTPPort).Info("HTTP сервер запущен")

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		mainLog.WithError(err).Fatal("сервер завершился с ошибкой")
	}
	mainLog.Info("сервер остановлен")
}

// newIdentityCache выбирает Redis, если задан REDIS_URL, иначе кэш в памяти процесса.
func newIdentityCache(ctx context.Context, cfg *config.Config) (service.IdentityCache, func()) {
	cacheLog := logger.WithComponent("main")
	if cfg.RedisURL == "" {
		cacheLog.Info("REDIS_URL не задан, identity кэшируется в памяти")
		return cache.NewMemoryIdentityCache(ctx, cfg.IdentityCacheTTL), func() {}
	}

	opt, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		cacheLog.WithError(err).Fatal("некорректный REDIS_URL")
	}
	client := redis.NewClient(opt)

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		cacheLog.WithError(err).Warn("redis недоступен, identity кэшируется в памяти")
		_ = client.Close()
		return cache.NewMemoryIdentityCache(ctx, cfg.IdentityCacheTTL), func() {}
	}

	return cache.NewRedisIdentityCache(client, cfg.IdentityCacheTTL), func() {
		if err := client.Close(); err != nil {
			cacheLog.WithError(err).Warn("ошибка закрытия redis")
		}
	}
}

// safeClose закрывает соединение с базой.
func safeClose(conn *sqlx.DB) {
	if err := conn.Close(); err != nil {
		log.Printf("main: ошибка закрытия базы: %v", err)
	}
}

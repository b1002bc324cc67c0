package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/ignatzorin/freelancehub-backend/internal/config"
	"github.com/ignatzorin/freelancehub-backend/internal/db"
	"github.com/ignatzorin/freelancehub-backend/internal/infrastructure/persistence"
	"github.com/ignatzorin/freelancehub-backend/internal/logger"
	"github.com/ignatzorin/freelancehub-backend/internal/service"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("seed: ошибка загрузки конфигурации: %v", err)
	}
	logger.Init(cfg.Env)
	seedLog := logger.WithComponent("seed")

	dbConn, err := db.NewPostgres(ctx, cfg.DatabaseURL, db.DefaultPool)
	if err != nil {
		seedLog.WithError(err).Fatal("ошибка подключения к базе")
	}
	defer func() {
		if err := dbConn.Close(); err != nil {
			seedLog.WithError(err).Warn("ошибка закрытия базы")
		}
	}()

	if _, err := db.RunMigrations(ctx, dbConn, cfg.MigrationsPath); err != nil {
		seedLog.WithError(err).Fatal("ошибка миграций")
	}

	seeder := service.NewSeedService(
		persistence.NewUserRepositoryAdapter(dbConn),
		persistence.NewProfileRepositoryAdapter(dbConn),
	)
	result, err := seeder.Seed(ctx)
	if err != nil {
		seedLog.WithError(err).Fatal("seed failed")
	}

	seedLog.WithField("users_created", result.UsersCreated).
		WithField("users_skipped", result.UsersSkipped).
		WithField("profiles_created", result.ProfilesCreated).
		Info("seed done")
	log.Printf("seed: все демо пользователи используют пароль %q (admin@example.com, client@example.com, dancer@example.com ...)", service.SeedPassword)
}

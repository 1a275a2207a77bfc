package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Freeeeeet/classroom_bot/internal/api"
	"github.com/Freeeeeet/classroom_bot/internal/app"
	"github.com/Freeeeeet/classroom_bot/internal/config"
	"github.com/Freeeeeet/classroom_bot/internal/controller"
	"github.com/Freeeeeet/classroom_bot/internal/repository"
	"github.com/Freeeeeet/classroom_bot/internal/service"
	"github.com/go-telegram/bot"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := app.NewLogger(cfg.Environment)
	defer logger.Sync()

	logger.Info("Starting classroom bot",
		zap.String("api_url", cfg.APIURL),
		zap.String("timezone", cfg.Location.String()),
		zap.Duration("cancel_cutoff", cfg.CancelCutoff),
		zap.String("reminder_cron", cfg.ReminderCron),
	)

	// Отмена по SIGINT/SIGTERM
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info("Signal received, shutting down", zap.String("signal", sig.String()))
		cancel()
	}()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal("Bot stopped with error", zap.Error(err))
	}
	logger.Info("Bot stopped")
}

func run(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	pool, err := pgxpool.New(ctx, cfg.DBDSN)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		return err
	}

	migrator, err := app.NewMigrator(pool, cfg.MigrationsPath, logger)
	if err != nil {
		return err
	}
	defer migrator.Close()

	if err := migrator.Run(ctx); err != nil {
		return err
	}

	sessionRepo := repository.NewSessionRepository(pool)
	backend := api.NewClient(cfg.APIURL, cfg.HTTPTimeout, logger)

	sessions := service.NewSessionService(sessionRepo, backend, logger)
	schedules := service.NewScheduleService(backend, cfg.Location, cfg.WeekStart, nil, logger)
	enrollments := service.NewEnrollmentService(backend, cfg.CancelCutoff, cfg.Location, nil, logger)

	botInstance, err := bot.New(cfg.TelegramToken)
	if err != nil {
		return err
	}

	botController := controller.NewBotController(botInstance, sessions, schedules, enrollments, logger)
	if err := botController.RegisterHandlers(ctx); err != nil {
		return err
	}

	scheduler := app.NewScheduler(sessions, schedules, botController, cfg.ReminderCron, cfg.Location, logger)
	if err := scheduler.Start(ctx); err != nil {
		return err
	}
	defer scheduler.Stop()

	// Блокируется до отмены ctx
	return botController.Start(ctx)
}

package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/SscSPs/partner_ledger_app/internal/core/services"
	"github.com/SscSPs/partner_ledger_app/internal/jobs"
	"github.com/SscSPs/partner_ledger_app/internal/notify/telegram"
	"github.com/SscSPs/partner_ledger_app/internal/platform/config"
	"github.com/SscSPs/partner_ledger_app/internal/repositories/database/pgsql"
	"github.com/SscSPs/partner_ledger_app/internal/utils"
	"github.com/SscSPs/partner_ledger_app/pkg/database"
	"github.com/hibiken/asynq"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := utils.NewLogger(cfg.IsProduction)
	slog.SetDefault(logger)

	pool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck)
	if err != nil {
		logger.Error("connect database", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	redisOpts := asynq.RedisClientOpt{Addr: cfg.RedisAddr, Password: cfg.RedisPassword, DB: cfg.RedisDB}

	// The worker never records transactions, so it needs no job enqueuer.
	sender := telegram.NewClient(cfg.TelegramAPIBaseURL, cfg.TelegramBotToken)
	svcContainer := services.NewServiceContainer(cfg, pgsql.NewRepositoryProvider(pool), nil, sender)

	alertJob := jobs.NewDebtAlertJob(svcContainer.Notification, logger)
	noticeJob := jobs.NewTransactionNoticeJob(svcContainer.Notification, logger)
	reconcileJob := jobs.NewDebtReconcileJob(svcContainer.Reconcile, logger)

	var cron []jobs.CronRegistration
	if cfg.ReconcileCron != "" {
		reconcileTask, err := jobs.NewDebtReconcileTask("cron")
		if err != nil {
			logger.Error("build reconcile task", slog.Any("error", err))
			os.Exit(1)
		}
		cron = append(cron, jobs.CronRegistration{
			Spec:    cfg.ReconcileCron,
			Task:    reconcileTask,
			Options: []asynq.Option{asynq.MaxRetry(3)},
		})
	}

	worker, err := jobs.NewWorker(jobs.WorkerConfig{
		RedisOpts:   redisOpts,
		Logger:      logger,
		Concurrency: cfg.WorkerConcurrency,
		Handlers: []jobs.TaskHandler{
			{Type: jobs.TaskNotifyDebtOverLimit, Handler: alertJob.Handle},
			{Type: jobs.TaskNotifyTransaction, Handler: noticeJob.Handle},
			{Type: jobs.TaskDebtReconcile, Handler: reconcileJob.Handle},
		},
		Cron: cron,
	})
	if err != nil {
		logger.Error("init worker", slog.Any("error", err))
		os.Exit(1)
	}

	// Repair any drift left by a previous crash before serving alerts.
	client := jobs.NewClient(redisOpts)
	if _, err := client.EnqueueReconcile(ctx, "startup"); err != nil {
		logger.Warn("enqueue startup reconcile", slog.Any("error", err))
	}
	if err := client.Close(); err != nil {
		logger.Warn("close job client", slog.Any("error", err))
	}

	if err := worker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("worker run", slog.Any("error", err))
		os.Exit(1)
	}
}

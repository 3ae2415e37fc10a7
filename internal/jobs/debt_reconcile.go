package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	portssvc "github.com/SscSPs/partner_ledger_app/internal/core/ports/services"
	"github.com/hibiken/asynq"
)

// DebtReconcileJob repairs drift between stored and computed balances.
type DebtReconcileJob struct {
	Reconciler portssvc.ReconcileSvc
	Logger     *slog.Logger
}

// NewDebtReconcileJob initialises the reconcile handler.
func NewDebtReconcileJob(reconciler portssvc.ReconcileSvc, logger *slog.Logger) *DebtReconcileJob {
	return &DebtReconcileJob{Reconciler: reconciler, Logger: logger}
}

// Handle runs one reconciliation pass.
func (j *DebtReconcileJob) Handle(ctx context.Context, t *asynq.Task) error {
	if j == nil || j.Reconciler == nil {
		return errors.New("debt reconcile: handler not configured")
	}
	var payload DebtReconcilePayload
	if len(t.Payload()) > 0 {
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			return asynq.SkipRetry
		}
	}

	logger := j.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With(slog.String("trigger", payload.Trigger))

	start := time.Now()
	logger.Info("starting debt reconciliation")
	result, err := j.Reconciler.ReconcileCurrentDebt(ctx)
	if err != nil {
		logger.Error("debt reconciliation failed", slog.Any("error", err))
		return err
	}
	logger.Info("completed debt reconciliation",
		slog.Int("checked", result.Checked),
		slog.Int("repaired", result.Repaired),
		slog.Duration("duration", time.Since(start)),
	)
	return nil
}

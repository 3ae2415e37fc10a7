package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SscSPs/partner_ledger_app/internal/apperrors"
	portssvc "github.com/SscSPs/partner_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/partner_ledger_app/internal/core/services"
	"github.com/hibiken/asynq"
)

// TransactionNoticeJob delivers queued per-transaction notices.
type TransactionNoticeJob struct {
	Notifier portssvc.NotificationSvc
	Logger   *slog.Logger
}

// NewTransactionNoticeJob initialises the notice handler.
func NewTransactionNoticeJob(notifier portssvc.NotificationSvc, logger *slog.Logger) *TransactionNoticeJob {
	return &TransactionNoticeJob{Notifier: notifier, Logger: logger}
}

// Handle follows the same retry rules as DebtAlertJob.Handle.
func (j *TransactionNoticeJob) Handle(ctx context.Context, t *asynq.Task) error {
	if j == nil || j.Notifier == nil {
		return errors.New("transaction notice: handler not configured")
	}
	var payload TransactionNoticePayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}
	if payload.TransactionID == "" {
		return asynq.SkipRetry
	}

	logger := j.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With(slog.String("transaction_id", payload.TransactionID))

	err := j.Notifier.SendTransactionNotice(ctx, payload.TransactionID)
	switch {
	case err == nil:
		logger.Info("transaction notice delivered")
		return nil
	case errors.Is(err, services.ErrNoChatID):
		logger.Info("transaction notice skipped, partner has no telegram chat")
		return nil
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Warn("transaction notice dropped, transaction or partner not found")
		return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
	default:
		logger.Error("transaction notice delivery failed", slog.Any("error", err))
		return err
	}
}

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

// DebtAlertJob delivers queued over-limit alerts.
type DebtAlertJob struct {
	Notifier portssvc.NotificationSvc
	Logger   *slog.Logger
}

// NewDebtAlertJob initialises the alert handler.
func NewDebtAlertJob(notifier portssvc.NotificationSvc, logger *slog.Logger) *DebtAlertJob {
	return &DebtAlertJob{Notifier: notifier, Logger: logger}
}

// Handle sends one alert. Partners without a chat are skipped; a vanished
// partner is not retried; delivery failures are retried by asynq.
func (j *DebtAlertJob) Handle(ctx context.Context, t *asynq.Task) error {
	if j == nil || j.Notifier == nil {
		return errors.New("debt alert: handler not configured")
	}
	var payload DebtOverLimitPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}
	if payload.PartnerID == "" {
		return asynq.SkipRetry
	}

	logger := j.logger().With(
		slog.String("partner_id", payload.PartnerID),
		slog.String("transaction_id", payload.TransactionID),
	)

	err := j.Notifier.SendDebtAlert(ctx, payload.toAlert())
	switch {
	case err == nil:
		logger.Info("debt alert delivered")
		return nil
	case errors.Is(err, services.ErrNoChatID):
		logger.Info("debt alert skipped, partner has no telegram chat")
		return nil
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Warn("debt alert dropped, partner not found")
		return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
	default:
		logger.Error("debt alert delivery failed", slog.Any("error", err))
		return err
	}
}

func (j *DebtAlertJob) logger() *slog.Logger {
	if j.Logger == nil {
		return slog.Default()
	}
	return j.Logger
}

package services

import (
	"context"

	"github.com/SscSPs/partner_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// DebtAlert describes a partner whose balance crossed its limit.
type DebtAlert struct {
	PartnerID     string
	TransactionID string
	DebtAmount    decimal.Decimal
	DebtLimit     decimal.Decimal
}

// DebtAlertEnqueuer schedules an over-limit notification for asynchronous delivery.
type DebtAlertEnqueuer interface {
	EnqueueDebtAlert(ctx context.Context, alert DebtAlert) error
}

// TransactionNoticeEnqueuer schedules the per-transaction Telegram notice.
type TransactionNoticeEnqueuer interface {
	EnqueueTransactionNotice(ctx context.Context, transactionID string) error
}

// NotificationEnqueuer is everything the API process hands to the job queue.
type NotificationEnqueuer interface {
	DebtAlertEnqueuer
	TransactionNoticeEnqueuer
}

// NotificationSvc delivers partner alerts and exposes their history.
type NotificationSvc interface {
	// SendDebtAlert renders and delivers an alert, recording the outcome.
	SendDebtAlert(ctx context.Context, alert DebtAlert) error

	// SendTransactionNotice tells the partner about one recorded transaction.
	SendTransactionNotice(ctx context.Context, transactionID string) error

	// BindTelegramChat links a partner to the chat that sent "/start <partnerID>"
	// and switches its preference to TELEGRAM.
	BindTelegramChat(ctx context.Context, partnerID, chatID string) error

	ListNotificationLogs(ctx context.Context, partnerID string, limit int) ([]domain.NotificationLog, error)
}

// ReconcileResult reports what a reconciliation pass changed.
type ReconcileResult struct {
	Checked  int
	Repaired int
}

// ReconcileSvc rewrites drifted partners.current_debt values.
type ReconcileSvc interface {
	ReconcileCurrentDebt(ctx context.Context) (ReconcileResult, error)
}

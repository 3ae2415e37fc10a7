package jobs

import (
	"encoding/json"
	"time"

	portssvc "github.com/SscSPs/partner_ledger_app/internal/core/ports/services"
	"github.com/hibiken/asynq"
	"github.com/shopspring/decimal"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskNotifyDebtOverLimit delivers an over-limit alert to a partner's chat.
	TaskNotifyDebtOverLimit = "notify:debt_over_limit"
	// TaskNotifyTransaction tells a partner about one recorded transaction.
	TaskNotifyTransaction = "notify:transaction"
	// TaskDebtReconcile recomputes balances and repairs drifted current_debt values.
	TaskDebtReconcile = "debt:reconcile"
)

// DebtOverLimitPayload is the queued form of a DebtAlert.
type DebtOverLimitPayload struct {
	PartnerID     string          `json:"partner_id"`
	TransactionID string          `json:"transaction_id"`
	DebtAmount    decimal.Decimal `json:"debt_amount"`
	DebtLimit     decimal.Decimal `json:"debt_limit"`
}

func (p DebtOverLimitPayload) toAlert() portssvc.DebtAlert {
	return portssvc.DebtAlert{
		PartnerID:     p.PartnerID,
		TransactionID: p.TransactionID,
		DebtAmount:    p.DebtAmount,
		DebtLimit:     p.DebtLimit,
	}
}

// NewDebtOverLimitTask constructs an Asynq task for a debt alert.
func NewDebtOverLimitTask(alert portssvc.DebtAlert) (*asynq.Task, error) {
	body, err := json.Marshal(DebtOverLimitPayload{
		PartnerID:     alert.PartnerID,
		TransactionID: alert.TransactionID,
		DebtAmount:    alert.DebtAmount,
		DebtLimit:     alert.DebtLimit,
	})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskNotifyDebtOverLimit, body,
		asynq.Queue(QueueDefault),
		asynq.MaxRetry(5),
		asynq.Timeout(30*time.Second),
	), nil
}

// TransactionNoticePayload names the transaction to announce. The worker
// reloads it so the notice reflects what was committed.
type TransactionNoticePayload struct {
	TransactionID string `json:"transaction_id"`
}

// NewTransactionNoticeTask constructs an Asynq task for a transaction notice.
func NewTransactionNoticeTask(transactionID string) (*asynq.Task, error) {
	body, err := json.Marshal(TransactionNoticePayload{TransactionID: transactionID})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskNotifyTransaction, body,
		asynq.Queue(QueueDefault),
		asynq.MaxRetry(5),
		asynq.Timeout(30*time.Second),
	), nil
}

// DebtReconcilePayload carries scheduling metadata.
type DebtReconcilePayload struct {
	Trigger string `json:"trigger"`
}

// NewDebtReconcileTask constructs an Asynq task for balance reconciliation.
func NewDebtReconcileTask(trigger string) (*asynq.Task, error) {
	body, err := json.Marshal(DebtReconcilePayload{Trigger: trigger})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskDebtReconcile, body, asynq.Queue(QueueDefault)), nil
}

package jobs

import (
	"context"
	"fmt"

	portssvc "github.com/SscSPs/partner_ledger_app/internal/core/ports/services"
	"github.com/hibiken/asynq"
)

// Client submits jobs to the queue.
type Client struct {
	client *asynq.Client
}

// NewClient constructs an Asynq client.
func NewClient(redisOpts asynq.RedisConnOpt) *Client {
	return &Client{client: asynq.NewClient(redisOpts)}
}

var _ portssvc.NotificationEnqueuer = (*Client)(nil)

// EnqueueDebtAlert enqueues a notify:debt_over_limit task.
func (c *Client) EnqueueDebtAlert(ctx context.Context, alert portssvc.DebtAlert) error {
	task, err := NewDebtOverLimitTask(alert)
	if err != nil {
		return fmt.Errorf("failed to build debt alert task: %w", err)
	}
	if _, err := c.client.EnqueueContext(ctx, task); err != nil {
		return fmt.Errorf("failed to enqueue debt alert for partner %s: %w", alert.PartnerID, err)
	}
	return nil
}

// EnqueueTransactionNotice enqueues a notify:transaction task.
func (c *Client) EnqueueTransactionNotice(ctx context.Context, transactionID string) error {
	task, err := NewTransactionNoticeTask(transactionID)
	if err != nil {
		return fmt.Errorf("failed to build transaction notice task: %w", err)
	}
	if _, err := c.client.EnqueueContext(ctx, task); err != nil {
		return fmt.Errorf("failed to enqueue transaction notice for %s: %w", transactionID, err)
	}
	return nil
}

// EnqueueReconcile enqueues an immediate reconciliation pass.
func (c *Client) EnqueueReconcile(ctx context.Context, trigger string) (*asynq.TaskInfo, error) {
	task, err := NewDebtReconcileTask(trigger)
	if err != nil {
		return nil, err
	}
	return c.client.EnqueueContext(ctx, task)
}

// Close releases client resources.
func (c *Client) Close() error {
	return c.client.Close()
}

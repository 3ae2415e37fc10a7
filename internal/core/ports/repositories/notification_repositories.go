package repositories

import (
	"context"

	"github.com/SscSPs/partner_ledger_app/internal/core/domain"
)

// NotificationLogRepository stores outbound notification attempts.
type NotificationLogRepository interface {
	SaveNotificationLog(ctx context.Context, log domain.NotificationLog) error
	ListNotificationLogsByPartner(ctx context.Context, partnerID string, limit int) ([]domain.NotificationLog, error)
}

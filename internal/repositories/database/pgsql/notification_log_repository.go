package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/partner_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/partner_ledger_app/internal/core/ports/repositories"
	"github.com/SscSPs/partner_ledger_app/internal/models"
	"github.com/SscSPs/partner_ledger_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxNotificationLogRepository struct {
	BaseRepository
}

func newPgxNotificationLogRepository(pool *pgxpool.Pool) portsrepo.NotificationLogRepository {
	return &PgxNotificationLogRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.NotificationLogRepository = (*PgxNotificationLogRepository)(nil)

// SaveNotificationLog records one delivery attempt.
func (r *PgxNotificationLogRepository) SaveNotificationLog(ctx context.Context, log domain.NotificationLog) error {
	m := mapping.ToModelNotificationLog(log)
	query := `
		INSERT INTO notification_logs (log_id, partner_id, transaction_id, channel, message, status, error, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.LogID, m.PartnerID, m.TransactionID, m.Channel, m.Message, m.Status, m.Error, m.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert notification log %s: %w", m.LogID, err)
	}
	return nil
}

// ListNotificationLogsByPartner returns the newest attempts first.
func (r *PgxNotificationLogRepository) ListNotificationLogsByPartner(ctx context.Context, partnerID string, limit int) ([]domain.NotificationLog, error) {
	query := `
		SELECT log_id, partner_id, transaction_id, channel, message, status, error, created_at
		FROM notification_logs
		WHERE partner_id = $1
		ORDER BY created_at DESC, log_id DESC
		LIMIT $2;
	`
	rows, err := r.Pool.Query(ctx, query, partnerID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query notification logs: %w", err)
	}
	defer rows.Close()

	logs := []domain.NotificationLog{}
	for rows.Next() {
		var m models.NotificationLog
		if err := rows.Scan(&m.LogID, &m.PartnerID, &m.TransactionID, &m.Channel, &m.Message, &m.Status, &m.Error, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan notification log row: %w", err)
		}
		logs = append(logs, mapping.ToDomainNotificationLog(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating notification log rows: %w", err)
	}
	return logs, nil
}

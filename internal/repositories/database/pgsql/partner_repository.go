package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/partner_ledger_app/internal/apperrors"
	"github.com/SscSPs/partner_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/partner_ledger_app/internal/core/ports/repositories"
	"github.com/SscSPs/partner_ledger_app/internal/models"
	"github.com/SscSPs/partner_ledger_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const partnerColumns = `partner_id, name, partner_type, phone, address, is_active, debt_limit, current_debt,
		telegram_chat_id, notification_preference, created_at, created_by, last_updated_at, last_updated_by`

// PgxPartnerRepository provides a concrete implementation for partner persistence using pgx.
type PgxPartnerRepository struct {
	BaseRepository
}

func newPgxPartnerRepository(pool *pgxpool.Pool) portsrepo.PartnerRepositoryFacade {
	return &PgxPartnerRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.PartnerRepositoryFacade = (*PgxPartnerRepository)(nil)

func scanPartner(row rowScanner) (domain.Partner, error) {
	var m models.Partner
	err := row.Scan(
		&m.PartnerID, &m.Name, &m.Type, &m.Phone, &m.Address, &m.IsActive,
		&m.DebtLimit, &m.CurrentDebt, &m.TelegramChatID, &m.NotificationPreference,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		return domain.Partner{}, err
	}
	return mapping.ToDomainPartner(m), nil
}

func (r *PgxPartnerRepository) queryPartners(ctx context.Context, query string, args ...any) ([]domain.Partner, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query partners: %w", err)
	}
	defer rows.Close()

	partners := []domain.Partner{}
	for rows.Next() {
		p, err := scanPartner(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan partner row: %w", err)
		}
		partners = append(partners, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating partner rows: %w", err)
	}
	return partners, nil
}

// FindPartnerByID retrieves a partner by its ID.
func (r *PgxPartnerRepository) FindPartnerByID(ctx context.Context, partnerID string) (*domain.Partner, error) {
	query := `SELECT ` + partnerColumns + ` FROM partners WHERE partner_id = $1;`
	p, err := scanPartner(r.Pool.QueryRow(ctx, query, partnerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find partner by ID %s: %w", partnerID, err)
	}
	return &p, nil
}

// ListPartners returns every partner ordered by name.
func (r *PgxPartnerRepository) ListPartners(ctx context.Context) ([]domain.Partner, error) {
	query := `SELECT ` + partnerColumns + ` FROM partners ORDER BY name ASC, partner_id ASC;`
	return r.queryPartners(ctx, query)
}

// ListPartnersByType returns partners of one type ordered by name.
func (r *PgxPartnerRepository) ListPartnersByType(ctx context.Context, partnerType domain.PartnerType) ([]domain.Partner, error) {
	query := `SELECT ` + partnerColumns + ` FROM partners WHERE partner_type = $1 ORDER BY name ASC, partner_id ASC;`
	return r.queryPartners(ctx, query, string(partnerType))
}

// SavePartner inserts a new partner.
func (r *PgxPartnerRepository) SavePartner(ctx context.Context, partner domain.Partner) error {
	m := mapping.ToModelPartner(partner)
	query := `
		INSERT INTO partners (` + partnerColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.PartnerID, m.Name, m.Type, m.Phone, m.Address, m.IsActive,
		m.DebtLimit, m.CurrentDebt, m.TelegramChatID, m.NotificationPreference,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: partner %s", apperrors.ErrDuplicate, m.PartnerID)
		}
		return fmt.Errorf("failed to insert partner %s: %w", m.PartnerID, err)
	}
	return nil
}

// UpdatePartner updates the descriptive fields of a partner. Debt columns are
// owned by the balance-changing writes and are not touched here.
func (r *PgxPartnerRepository) UpdatePartner(ctx context.Context, partner domain.Partner) error {
	m := mapping.ToModelPartner(partner)
	query := `
		UPDATE partners
		SET name = $1, partner_type = $2, phone = $3, address = $4, is_active = $5,
		    telegram_chat_id = $6, notification_preference = $7,
		    last_updated_at = $8, last_updated_by = $9
		WHERE partner_id = $10;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		m.Name, m.Type, m.Phone, m.Address, m.IsActive,
		m.TelegramChatID, m.NotificationPreference,
		m.LastUpdatedAt, m.LastUpdatedBy, m.PartnerID,
	)
	if err != nil {
		return fmt.Errorf("failed to update partner %s: %w", m.PartnerID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// UpdateDebtLimit sets a new debt ceiling.
func (r *PgxPartnerRepository) UpdateDebtLimit(ctx context.Context, partnerID string, debtLimit decimal.Decimal, userID string, now time.Time) error {
	query := `UPDATE partners SET debt_limit = $1, last_updated_at = $2, last_updated_by = $3 WHERE partner_id = $4;`
	cmdTag, err := r.Pool.Exec(ctx, query, debtLimit, now, userID, partnerID)
	if err != nil {
		return fmt.Errorf("failed to update debt limit for partner %s: %w", partnerID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

const outstandingDebtQuery = `
	SELECT COALESCE(SUM(CASE transaction_type WHEN 'IN' THEN -amount ELSE amount END), 0)
	FROM transactions
	WHERE partner_id = $1 AND payment_status <> 'PAID';`

// RecomputeCurrentDebt re-derives partners.current_debt from the partner's
// unsettled transactions while holding the partner row lock, so it cannot
// overwrite a balance change committed by a concurrent writer. The row is only
// written when the stored value differs.
func (r *PgxPartnerRepository) RecomputeCurrentDebt(ctx context.Context, partnerID string, now time.Time) (previous, current decimal.Decimal, err error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return previous, current, err
	}
	defer r.Rollback(ctx, tx) // Will be ignored if transaction is committed successfully

	if err := lockPartner(ctx, tx, partnerID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return previous, current, fmt.Errorf("partner %s: %w", partnerID, apperrors.ErrNotFound)
		}
		return previous, current, apperrors.NewAppError(500, "failed to lock partner "+partnerID, err)
	}

	if err := tx.QueryRow(ctx, `SELECT current_debt FROM partners WHERE partner_id = $1;`, partnerID).Scan(&previous); err != nil {
		return previous, current, apperrors.NewAppError(500, "failed to read current debt for partner "+partnerID, err)
	}
	if err := tx.QueryRow(ctx, outstandingDebtQuery, partnerID).Scan(&current); err != nil {
		return previous, current, apperrors.NewAppError(500, "failed to sum outstanding transactions for partner "+partnerID, err)
	}

	if !previous.Equal(current) {
		query := `UPDATE partners SET current_debt = $1, last_updated_at = $2 WHERE partner_id = $3;`
		if _, err := tx.Exec(ctx, query, current, now, partnerID); err != nil {
			return previous, current, apperrors.NewAppError(500, "failed to repair current debt for partner "+partnerID, err)
		}
	}

	if err := r.Commit(ctx, tx); err != nil {
		return previous, current, err
	}
	return previous, current, nil
}

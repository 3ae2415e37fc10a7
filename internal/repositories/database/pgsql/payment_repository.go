package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/partner_ledger_app/internal/apperrors"
	"github.com/SscSPs/partner_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/partner_ledger_app/internal/core/ports/repositories"
	"github.com/SscSPs/partner_ledger_app/internal/models"
	"github.com/SscSPs/partner_ledger_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const paymentColumns = `p.payment_id, p.partner_id, p.amount, p.method, p.status, p.note,
		p.created_at, p.created_by, p.last_updated_at, p.last_updated_by`

// PgxPaymentRepository persists payments and the settlement they cause.
type PgxPaymentRepository struct {
	BaseRepository
}

func newPgxPaymentRepository(pool *pgxpool.Pool) portsrepo.PaymentRepositoryFacade {
	return &PgxPaymentRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.PaymentRepositoryFacade = (*PgxPaymentRepository)(nil)

// SavePaymentWithSettlement inserts the payment and its links, moves each
// transaction to its new status and adds debtDelta to current_debt, all in one commit.
func (r *PgxPaymentRepository) SavePaymentWithSettlement(ctx context.Context, payment domain.Payment, changes []domain.StatusChange, debtDelta decimal.Decimal) error {
	m := mapping.ToModelPayment(payment)

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx) // Will be ignored if transaction is committed successfully

	if err := lockPartner(ctx, tx, m.PartnerID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("partner %s: %w", m.PartnerID, apperrors.ErrNotFound)
		}
		return apperrors.NewAppError(500, "failed to lock partner "+m.PartnerID, err)
	}

	batch := &pgx.Batch{}
	batch.Queue(`
		INSERT INTO payments (payment_id, partner_id, amount, method, status, note, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);`,
		m.PaymentID, m.PartnerID, m.Amount, m.Method, m.Status, m.Note,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	for i, id := range payment.TransactionIDs {
		batch.Queue(`INSERT INTO payment_transactions (payment_id, transaction_id, position) VALUES ($1, $2, $3);`,
			m.PaymentID, id, i)
	}
	// The status guard makes a concurrent settlement of the same row fail instead of double counting.
	for _, c := range changes {
		batch.Queue(`
			UPDATE transactions SET payment_status = $1, last_updated_at = $2, last_updated_by = $3
			WHERE transaction_id = $4 AND partner_id = $5 AND payment_status = $6;`,
			string(c.To), m.CreatedAt, m.CreatedBy, c.TransactionID, m.PartnerID, string(c.From))
	}
	if !debtDelta.IsZero() {
		batch.Queue(addCurrentDebtQuery, debtDelta, m.CreatedAt, m.CreatedBy, m.PartnerID)
	}

	br := tx.SendBatch(ctx, batch)
	if _, err := br.Exec(); err != nil {
		br.Close()
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: payment %s", apperrors.ErrDuplicate, m.PaymentID)
		}
		return apperrors.NewAppError(500, "failed to insert payment "+m.PaymentID, err)
	}
	for range payment.TransactionIDs {
		if _, err := br.Exec(); err != nil {
			br.Close()
			return apperrors.NewAppError(500, "failed to link transactions to payment "+m.PaymentID, err)
		}
	}
	for _, c := range changes {
		cmdTag, err := br.Exec()
		if err != nil {
			br.Close()
			return apperrors.NewAppError(500, "failed to settle transaction "+c.TransactionID, err)
		}
		if cmdTag.RowsAffected() != 1 {
			br.Close()
			return apperrors.NewValidationError("transaction %s is no longer %s", c.TransactionID, c.From)
		}
	}
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to update current debt for partner "+m.PartnerID, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return apperrors.NewAppError(500, "failed to commit payment "+m.PaymentID, err)
	}
	return nil
}

// FindPaymentByID retrieves a payment with its settled transaction IDs.
func (r *PgxPaymentRepository) FindPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error) {
	payments, err := r.queryPayments(ctx, `SELECT `+paymentColumns+` FROM payments p WHERE p.payment_id = $1;`, paymentID)
	if err != nil {
		return nil, err
	}
	if len(payments) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &payments[0], nil
}

// ListPaymentsByPartner returns the partner's payments, oldest first.
func (r *PgxPaymentRepository) ListPaymentsByPartner(ctx context.Context, partnerID string) ([]domain.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments p WHERE p.partner_id = $1 ORDER BY p.created_at ASC, p.payment_id ASC;`
	return r.queryPayments(ctx, query, partnerID)
}

// ListPaymentsByTransaction returns every payment that touched the transaction.
func (r *PgxPaymentRepository) ListPaymentsByTransaction(ctx context.Context, transactionID string) ([]domain.Payment, error) {
	query := `
		SELECT ` + paymentColumns + `
		FROM payments p
		JOIN payment_transactions pt ON pt.payment_id = p.payment_id
		WHERE pt.transaction_id = $1
		ORDER BY p.created_at ASC, p.payment_id ASC;
	`
	return r.queryPayments(ctx, query, transactionID)
}

func (r *PgxPaymentRepository) queryPayments(ctx context.Context, query string, args ...any) ([]domain.Payment, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query payments: %w", err)
	}
	defer rows.Close()

	var modelPayments []models.Payment
	for rows.Next() {
		var m models.Payment
		if err := rows.Scan(
			&m.PaymentID, &m.PartnerID, &m.Amount, &m.Method, &m.Status, &m.Note,
			&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
		); err != nil {
			return nil, fmt.Errorf("failed to scan payment row: %w", err)
		}
		modelPayments = append(modelPayments, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating payment rows: %w", err)
	}

	ids := make([]string, len(modelPayments))
	for i, m := range modelPayments {
		ids[i] = m.PaymentID
	}
	links, err := r.transactionIDsByPayment(ctx, ids)
	if err != nil {
		return nil, err
	}

	payments := make([]domain.Payment, len(modelPayments))
	for i, m := range modelPayments {
		payments[i] = mapping.ToDomainPayment(m, links[m.PaymentID])
	}
	return payments, nil
}

func (r *PgxPaymentRepository) transactionIDsByPayment(ctx context.Context, paymentIDs []string) (map[string][]string, error) {
	links := make(map[string][]string, len(paymentIDs))
	if len(paymentIDs) == 0 {
		return links, nil
	}
	rows, err := r.Pool.Query(ctx, `
		SELECT payment_id, transaction_id FROM payment_transactions
		WHERE payment_id = ANY($1)
		ORDER BY payment_id, position;`, paymentIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query payment links: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var paymentID, transactionID string
		if err := rows.Scan(&paymentID, &transactionID); err != nil {
			return nil, fmt.Errorf("failed to scan payment link: %w", err)
		}
		links[paymentID] = append(links[paymentID], transactionID)
	}
	return links, rows.Err()
}

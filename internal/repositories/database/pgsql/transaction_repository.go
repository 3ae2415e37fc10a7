package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/SscSPs/partner_ledger_app/internal/apperrors"
	"github.com/SscSPs/partner_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/partner_ledger_app/internal/core/ports/repositories"
	"github.com/SscSPs/partner_ledger_app/internal/models"
	"github.com/SscSPs/partner_ledger_app/internal/utils/accounting"
	"github.com/SscSPs/partner_ledger_app/internal/utils/mapping"
	"github.com/SscSPs/partner_ledger_app/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const transactionColumns = `transaction_id, partner_id, transaction_type, product_id, quantity, price, amount,
		payment_status, payment_method, description, vehicle_number, due_date,
		created_at, created_by, last_updated_at, last_updated_by`

const insertTransactionQuery = `
	INSERT INTO transactions (` + transactionColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);
`

const addCurrentDebtQuery = `
	UPDATE partners SET current_debt = current_debt + $1, last_updated_at = $2, last_updated_by = $3
	WHERE partner_id = $4;
`

// PgxTransactionRepository persists partner transactions and keeps
// partners.current_debt in step with them.
type PgxTransactionRepository struct {
	BaseRepository
}

func newPgxTransactionRepository(pool *pgxpool.Pool) portsrepo.TransactionRepositoryFacade {
	return &PgxTransactionRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.TransactionRepositoryFacade = (*PgxTransactionRepository)(nil)

func scanTransaction(row rowScanner) (domain.Transaction, error) {
	var m models.Transaction
	err := row.Scan(
		&m.TransactionID, &m.PartnerID, &m.Type, &m.ProductID, &m.Quantity, &m.Price, &m.Amount,
		&m.PaymentStatus, &m.PaymentMethod, &m.Description, &m.VehicleNumber, &m.DueDate,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		return domain.Transaction{}, err
	}
	return mapping.ToDomainTransaction(m), nil
}

func (r *PgxTransactionRepository) queryTransactions(ctx context.Context, query string, args ...any) ([]domain.Transaction, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	txns := []domain.Transaction{}
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		txns = append(txns, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transaction rows: %w", err)
	}
	return txns, nil
}

// whereClause builds the filter conditions and their args. Placeholders start at $1.
func whereClause(filter domain.TransactionFilter) ([]string, []any) {
	conds := []string{}
	args := []any{}
	add := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, strings.Replace(cond, "?", "$"+strconv.Itoa(len(args)), 1))
	}
	if filter.PartnerID != "" {
		add("partner_id = ?", filter.PartnerID)
	}
	if filter.Type != "" {
		add("transaction_type = ?", string(filter.Type))
	}
	if filter.Status != "" {
		add("payment_status = ?", string(filter.Status))
	}
	if filter.CreatedFrom != nil {
		add("created_at >= ?", *filter.CreatedFrom)
	}
	if filter.CreatedBefore != nil {
		add("created_at < ?", *filter.CreatedBefore)
	}
	return conds, args
}

// ListTransactions returns every transaction matching filter ordered by (created_at, id).
func (r *PgxTransactionRepository) ListTransactions(ctx context.Context, filter domain.TransactionFilter) ([]domain.Transaction, error) {
	conds, args := whereClause(filter)
	query := `SELECT ` + transactionColumns + ` FROM transactions`
	if len(conds) > 0 {
		query += ` WHERE ` + strings.Join(conds, " AND ")
	}
	query += ` ORDER BY created_at ASC, transaction_id ASC;`
	return r.queryTransactions(ctx, query, args...)
}

// ListTransactionsByPartner returns all transactions of a partner ordered by created_at.
func (r *PgxTransactionRepository) ListTransactionsByPartner(ctx context.Context, partnerID string) ([]domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE partner_id = $1 ORDER BY created_at ASC, transaction_id ASC;`
	return r.queryTransactions(ctx, query, partnerID)
}

// FindTransactionByID retrieves a transaction by its ID.
func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE transaction_id = $1;`
	t, err := scanTransaction(r.Pool.QueryRow(ctx, query, transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find transaction by ID %s: %w", transactionID, err)
	}
	return &t, nil
}

// FindTransactionsByIDs returns the found transactions keyed by ID.
func (r *PgxTransactionRepository) FindTransactionsByIDs(ctx context.Context, transactionIDs []string) (map[string]domain.Transaction, error) {
	result := make(map[string]domain.Transaction, len(transactionIDs))
	if len(transactionIDs) == 0 {
		return result, nil
	}
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE transaction_id = ANY($1);`
	txns, err := r.queryTransactions(ctx, query, transactionIDs)
	if err != nil {
		return nil, err
	}
	for _, t := range txns {
		result[t.TransactionID] = t
	}
	return result, nil
}

// ListTransactionsPage returns at most limit transactions after the cursor and
// the cursor of the following page (nil on the last page).
func (r *PgxTransactionRepository) ListTransactionsPage(ctx context.Context, filter domain.TransactionFilter, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	conds, args := whereClause(filter)
	if nextToken != nil && *nextToken != "" {
		createdAt, id, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		args = append(args, createdAt, id)
		conds = append(conds, fmt.Sprintf("(created_at, transaction_id) > ($%d, $%d)", len(args)-1, len(args)))
	}

	query := `SELECT ` + transactionColumns + ` FROM transactions`
	if len(conds) > 0 {
		query += ` WHERE ` + strings.Join(conds, " AND ")
	}
	// Fetch one extra row to know whether another page exists.
	args = append(args, limit+1)
	query += fmt.Sprintf(` ORDER BY created_at ASC, transaction_id ASC LIMIT $%d;`, len(args))

	txns, err := r.queryTransactions(ctx, query, args...)
	if err != nil {
		return nil, nil, err
	}

	var next *string
	if len(txns) > limit {
		txns = txns[:limit]
		last := txns[len(txns)-1]
		token := pagination.EncodeToken(last.CreatedAt, last.TransactionID)
		next = &token
	}
	return txns, next, nil
}

// SaveTransaction inserts one transaction and applies its signed amount to the
// partner's current_debt when it is not already settled.
func (r *PgxTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	return r.saveAll(ctx, txn.PartnerID, []domain.Transaction{txn})
}

// SaveBarter inserts both legs of a barter in one commit.
func (r *PgxTransactionRepository) SaveBarter(ctx context.Context, out domain.Transaction, in domain.Transaction) error {
	if out.PartnerID != in.PartnerID {
		return apperrors.NewValidationError("barter legs belong to different partners")
	}
	return r.saveAll(ctx, out.PartnerID, []domain.Transaction{out, in})
}

func (r *PgxTransactionRepository) saveAll(ctx context.Context, partnerID string, txns []domain.Transaction) error {
	delta := decimal.Zero
	for _, t := range txns {
		if t.IsSettled() {
			continue
		}
		signed, err := accounting.SignedDebtChange(t)
		if err != nil {
			return fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		delta = delta.Add(signed)
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx) // Will be ignored if transaction is committed successfully

	if err := lockPartner(ctx, tx, partnerID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("partner %s: %w", partnerID, apperrors.ErrNotFound)
		}
		return apperrors.NewAppError(500, "failed to lock partner "+partnerID, err)
	}

	batch := &pgx.Batch{}
	for _, t := range txns {
		m := mapping.ToModelTransaction(t)
		batch.Queue(insertTransactionQuery,
			m.TransactionID, m.PartnerID, m.Type, m.ProductID, m.Quantity, m.Price, m.Amount,
			m.PaymentStatus, m.PaymentMethod, m.Description, m.VehicleNumber, m.DueDate,
			m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
		)
	}
	if !delta.IsZero() {
		last := txns[len(txns)-1]
		batch.Queue(addCurrentDebtQuery, delta, last.CreatedAt, last.CreatedBy, partnerID)
	}

	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: transaction already exists", apperrors.ErrDuplicate)
		}
		return apperrors.NewAppError(500, "failed to execute transaction batch for partner "+partnerID, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return apperrors.NewAppError(500, "failed to commit transactions for partner "+partnerID, err)
	}
	return nil
}

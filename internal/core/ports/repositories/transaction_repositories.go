package repositories

import (
	"context"

	"github.com/SscSPs/partner_ledger_app/internal/core/domain"
)

// TransactionReader is the read interface the debt engine depends on.
type TransactionReader interface {
	// ListTransactions returns every transaction matching filter (zero filter = all).
	ListTransactions(ctx context.Context, filter domain.TransactionFilter) ([]domain.Transaction, error)

	// ListTransactionsByPartner returns all transactions of a partner ordered by created_at.
	ListTransactionsByPartner(ctx context.Context, partnerID string) ([]domain.Transaction, error)

	// FindTransactionByID returns apperrors.ErrNotFound when absent.
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// FindTransactionsByIDs returns the found transactions keyed by ID; missing IDs are simply absent.
	FindTransactionsByIDs(ctx context.Context, transactionIDs []string) (map[string]domain.Transaction, error)

	// ListTransactionsPage returns one page ordered by (created_at, id) and the cursor of the next page.
	ListTransactionsPage(ctx context.Context, filter domain.TransactionFilter, limit int, nextToken *string) ([]domain.Transaction, *string, error)
}

// TransactionWriter persists new transactions. Every method is atomic and keeps
// partners.current_debt in step with the inserted rows.
type TransactionWriter interface {
	SaveTransaction(ctx context.Context, txn domain.Transaction) error

	// SaveBarter inserts both legs of a barter in one commit.
	SaveBarter(ctx context.Context, out domain.Transaction, in domain.Transaction) error
}

// TransactionRepositoryFacade combines all transaction-related repository interfaces
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
}

package services

import (
	"context"

	"github.com/SscSPs/partner_ledger_app/internal/core/domain"
	"github.com/SscSPs/partner_ledger_app/internal/dto"
)

// TransactionReaderSvc defines read operations for transactions
type TransactionReaderSvc interface {
	GetTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)
	ListTransactions(ctx context.Context, params dto.ListTransactionsParams) ([]domain.Transaction, *string, error)
}

// TransactionWriterSvc defines write operations for transactions
type TransactionWriterSvc interface {
	CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest, userID string) (*domain.Transaction, error)
	// CreateBarter records both legs of a barter atomically and returns (out, in).
	CreateBarter(ctx context.Context, req dto.CreateBarterRequest, userID string) (*domain.Transaction, *domain.Transaction, error)
}

// TransactionSvcFacade combines all transaction-related service interfaces
type TransactionSvcFacade interface {
	TransactionReaderSvc
	TransactionWriterSvc
}

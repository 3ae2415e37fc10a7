package services

import (
	"context"
	"io"

	"github.com/SscSPs/partner_ledger_app/internal/core/domain"
)

// DebtReaderSvc computes partner balances from stored transactions.
type DebtReaderSvc interface {
	// GetDebtSummaries returns one summary per partner with at least one
	// unsettled transaction, sorted by partner name then ID.
	GetDebtSummaries(ctx context.Context) ([]domain.DebtSummary, error)

	// GetDebtDetail returns the balance of one partner and all its transactions.
	GetDebtDetail(ctx context.Context, partnerID string) (*domain.DebtDetail, error)

	// ListDebtSummaries applies filter to GetDebtSummaries.
	ListDebtSummaries(ctx context.Context, filter domain.DebtSummaryFilter) ([]domain.DebtSummary, error)
}

// DebtExportSvc renders balances as downloadable documents.
type DebtExportSvc interface {
	// ExportDebtSummaries writes the filtered summaries to w as an xlsx workbook.
	ExportDebtSummaries(ctx context.Context, filter domain.DebtSummaryFilter, w io.Writer) error
}

// DebtSvcFacade combines all debt-related service interfaces
type DebtSvcFacade interface {
	DebtReaderSvc
	DebtExportSvc
}

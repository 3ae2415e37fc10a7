package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/SscSPs/partner_ledger_app/internal/apperrors"
	"github.com/SscSPs/partner_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/partner_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/partner_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/partner_ledger_app/internal/report"
)

// maxReportPeriod bounds a single report to keep the in-memory fold small.
const maxReportPeriod = 366 * 24 * time.Hour

type reportService struct {
	BaseService
	txnRepo portsrepo.TransactionReader
	now     func() time.Time
}

// NewReportService creates the period trade report service.
func NewReportService(txnRepo portsrepo.TransactionReader) portssvc.ReportSvc {
	return &reportService{txnRepo: txnRepo, now: time.Now}
}

var _ portssvc.ReportSvc = (*reportService)(nil)

func (s *reportService) GenerateTradeReport(ctx context.Context, from, to time.Time) (*domain.TradeReport, error) {
	if !from.Before(to) {
		return nil, apperrors.NewValidationError("report start must be before its end")
	}
	if to.Sub(from) > maxReportPeriod {
		return nil, apperrors.NewValidationError("report period cannot exceed one year")
	}

	txns, err := s.txnRepo.ListTransactions(ctx, domain.TransactionFilter{CreatedFrom: &from, CreatedBefore: &to})
	if err != nil {
		s.LogError(ctx, err, "Failed to load transactions for report")
		return nil, fmt.Errorf("failed to load transactions: %w", err)
	}

	r, err := report.SummarizeTrade(txns, from, to)
	if err != nil {
		s.LogError(ctx, err, "Failed to summarize trade")
		return nil, fmt.Errorf("failed to summarize trade: %w", err)
	}

	s.LogInfo(ctx, "Trade report generated",
		slog.Time("from", from),
		slog.Time("to", to),
		slog.Int("transactions", r.TransactionCount))
	return &r, nil
}

func (s *reportService) ExportTradeReport(ctx context.Context, from, to time.Time, w io.Writer) error {
	r, err := s.GenerateTradeReport(ctx, from, to)
	if err != nil {
		return err
	}
	if err := report.WriteTradeReport(w, *r, s.now()); err != nil {
		s.LogError(ctx, err, "Failed to render trade report")
		return fmt.Errorf("failed to render trade report: %w", err)
	}
	return nil
}

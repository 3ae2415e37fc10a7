package services

import (
	"context"
	"io"
	"time"

	"github.com/SscSPs/partner_ledger_app/internal/core/domain"
)

// ReportSvc aggregates recorded trade over a period.
type ReportSvc interface {
	// GenerateTradeReport covers transactions created in [from, to).
	GenerateTradeReport(ctx context.Context, from, to time.Time) (*domain.TradeReport, error)

	// ExportTradeReport writes the same report to w as an xlsx workbook.
	ExportTradeReport(ctx context.Context, from, to time.Time, w io.Writer) error
}

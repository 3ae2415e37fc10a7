package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"time"

	"github.com/SscSPs/partner_ledger_app/internal/apperrors"
	"github.com/SscSPs/partner_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/partner_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/partner_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/partner_ledger_app/internal/report"
	"github.com/SscSPs/partner_ledger_app/internal/utils/accounting"
)

// debtService derives partner balances from the transaction log. It holds no
// state and never reads partners.current_debt.
type debtService struct {
	BaseService
	txnRepo     portsrepo.TransactionReader
	partnerRepo portsrepo.PartnerReader
	now         func() time.Time
}

// NewDebtService creates a new debt service.
func NewDebtService(txnRepo portsrepo.TransactionReader, partnerRepo portsrepo.PartnerReader) portssvc.DebtSvcFacade {
	return &debtService{
		txnRepo:     txnRepo,
		partnerRepo: partnerRepo,
		now:         time.Now,
	}
}

var _ portssvc.DebtSvcFacade = (*debtService)(nil)

func (s *debtService) GetDebtSummaries(ctx context.Context) ([]domain.DebtSummary, error) {
	txns, err := s.txnRepo.ListTransactions(ctx, domain.TransactionFilter{})
	if err != nil {
		s.LogError(ctx, err, "Failed to list transactions for debt summaries")
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	groups, err := accounting.GroupDebtByPartner(txns)
	if err != nil {
		s.LogError(ctx, err, "Failed to accumulate partner debt")
		return nil, fmt.Errorf("failed to compute debt: %w", err)
	}

	partners, err := s.partnerRepo.ListPartners(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list partners for debt summaries")
		return nil, fmt.Errorf("failed to list partners: %w", err)
	}
	byID := make(map[string]*domain.Partner, len(partners))
	for i := range partners {
		byID[partners[i].PartnerID] = &partners[i]
	}

	summaries := make([]domain.DebtSummary, 0, len(groups))
	for partnerID, acc := range groups {
		partner, ok := byID[partnerID]
		if !ok {
			err := &apperrors.IntegrityError{PartnerID: partnerID}
			s.LogError(ctx, err, "Transactions reference a missing partner",
				slog.String("partner_id", partnerID),
				slog.Int("transaction_count", acc.Count))
			return nil, err
		}
		summaries = append(summaries, buildSummary(partner, *acc))
	}

	sort.Slice(summaries, func(i, j int) bool {
		if summaries[i].PartnerName != summaries[j].PartnerName {
			return summaries[i].PartnerName < summaries[j].PartnerName
		}
		return summaries[i].PartnerID < summaries[j].PartnerID
	})

	s.LogDebug(ctx, "Debt summaries computed",
		slog.Int("transactions", len(txns)),
		slog.Int("summaries", len(summaries)))
	return summaries, nil
}

func (s *debtService) GetDebtDetail(ctx context.Context, partnerID string) (*domain.DebtDetail, error) {
	partner, err := s.partnerRepo.FindPartnerByID(ctx, partnerID)
	if err != nil {
		s.LogError(ctx, err, "Failed to find partner for debt detail", slog.String("partner_id", partnerID))
		return nil, fmt.Errorf("failed to find partner %s: %w", partnerID, err)
	}

	txns, err := s.txnRepo.ListTransactionsByPartner(ctx, partnerID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list partner transactions", slog.String("partner_id", partnerID))
		return nil, fmt.Errorf("failed to list transactions for partner %s: %w", partnerID, err)
	}

	acc, err := accounting.AccumulateDebt(txns)
	if err != nil {
		s.LogError(ctx, err, "Failed to accumulate partner debt", slog.String("partner_id", partnerID))
		return nil, fmt.Errorf("failed to compute debt: %w", err)
	}

	sort.SliceStable(txns, func(i, j int) bool {
		return txns[i].CreatedAt.Before(txns[j].CreatedAt)
	})
	if txns == nil {
		txns = []domain.Transaction{}
	}

	return &domain.DebtDetail{
		DebtSummary:  buildSummary(partner, acc),
		Transactions: txns,
	}, nil
}

func (s *debtService) ListDebtSummaries(ctx context.Context, filter domain.DebtSummaryFilter) ([]domain.DebtSummary, error) {
	summaries, err := s.GetDebtSummaries(ctx)
	if err != nil {
		return nil, err
	}
	filtered := make([]domain.DebtSummary, 0, len(summaries))
	for _, sum := range summaries {
		if filter.Matches(sum) {
			filtered = append(filtered, sum)
		}
	}
	return filtered, nil
}

func (s *debtService) ExportDebtSummaries(ctx context.Context, filter domain.DebtSummaryFilter, w io.Writer) error {
	summaries, err := s.ListDebtSummaries(ctx, filter)
	if err != nil {
		return err
	}
	if err := report.WriteDebtSummaries(w, summaries, s.now()); err != nil {
		s.LogError(ctx, err, "Failed to render debt export")
		return fmt.Errorf("failed to render debt export: %w", err)
	}
	s.LogInfo(ctx, "Debt summaries exported", slog.Int("rows", len(summaries)))
	return nil
}

func buildSummary(partner *domain.Partner, acc accounting.PartnerDebt) domain.DebtSummary {
	return domain.DebtSummary{
		PartnerID:           partner.PartnerID,
		PartnerName:         partner.Name,
		PartnerType:         partner.Type,
		DebtAmount:          acc.DebtAmount,
		DebtLimit:           partner.DebtLimit,
		LastTransactionDate: acc.LastTransactionDate,
		IsOverLimit:         accounting.IsOverLimit(acc.DebtAmount, partner.DebtLimit),
	}
}

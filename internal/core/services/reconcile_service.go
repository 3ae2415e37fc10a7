package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	portsrepo "github.com/SscSPs/partner_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/partner_ledger_app/internal/core/ports/services"
)

type reconcileService struct {
	BaseService
	debtReader  portssvc.DebtReaderSvc
	partnerRepo portsrepo.PartnerRepositoryFacade
}

// NewReconcileService creates the service that repairs partners.current_debt.
// Each partner is recomputed inside its own locked database transaction.
func NewReconcileService(debtReader portssvc.DebtReaderSvc, partnerRepo portsrepo.PartnerRepositoryFacade) portssvc.ReconcileSvc {
	return &reconcileService{debtReader: debtReader, partnerRepo: partnerRepo}
}

var _ portssvc.ReconcileSvc = (*reconcileService)(nil)

func (s *reconcileService) ReconcileCurrentDebt(ctx context.Context) (portssvc.ReconcileResult, error) {
	var result portssvc.ReconcileResult

	// A transaction pointing at a missing partner means the store itself is
	// inconsistent; repairing balances on top of that would hide it.
	if _, err := s.debtReader.GetDebtSummaries(ctx); err != nil {
		return result, fmt.Errorf("failed to compute debt summaries: %w", err)
	}

	partners, err := s.partnerRepo.ListPartners(ctx)
	if err != nil {
		return result, fmt.Errorf("failed to list partners: %w", err)
	}

	now := time.Now()
	for _, p := range partners {
		result.Checked++
		previous, current, err := s.partnerRepo.RecomputeCurrentDebt(ctx, p.PartnerID, now)
		if err != nil {
			s.LogError(ctx, err, "Failed to repair current debt", slog.String("partner_id", p.PartnerID))
			return result, fmt.Errorf("failed to repair partner %s: %w", p.PartnerID, err)
		}
		if previous.Equal(current) {
			continue
		}
		s.LogWarn(ctx, "Repaired drifted current debt",
			slog.String("partner_id", p.PartnerID),
			slog.String("stored", previous.String()),
			slog.String("computed", current.String()))
		result.Repaired++
	}

	s.LogInfo(ctx, "Current debt reconciliation finished",
		slog.Int("checked", result.Checked),
		slog.Int("repaired", result.Repaired))
	return result, nil
}

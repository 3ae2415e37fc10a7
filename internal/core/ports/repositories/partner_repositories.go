package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/partner_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// PartnerReader defines read operations for partner data
type PartnerReader interface {
	// FindPartnerByID returns apperrors.ErrNotFound when no partner has the ID.
	FindPartnerByID(ctx context.Context, partnerID string) (*domain.Partner, error)

	// ListPartners returns every partner ordered by name.
	ListPartners(ctx context.Context) ([]domain.Partner, error)

	// ListPartnersByType returns partners of one type ordered by name.
	ListPartnersByType(ctx context.Context, partnerType domain.PartnerType) ([]domain.Partner, error)
}

// PartnerWriter defines write operations for partner data
type PartnerWriter interface {
	SavePartner(ctx context.Context, partner domain.Partner) error
	UpdatePartner(ctx context.Context, partner domain.Partner) error
	UpdateDebtLimit(ctx context.Context, partnerID string, debtLimit decimal.Decimal, userID string, now time.Time) error

	// RecomputeCurrentDebt re-derives the materialized balance from the partner's
	// unsettled transactions under the partner row lock and returns the stored
	// value before and after. Used by reconciliation only.
	RecomputeCurrentDebt(ctx context.Context, partnerID string, now time.Time) (previous, current decimal.Decimal, err error)
}

// PartnerRepositoryFacade combines all partner-related repository interfaces
type PartnerRepositoryFacade interface {
	PartnerReader
	PartnerWriter
}

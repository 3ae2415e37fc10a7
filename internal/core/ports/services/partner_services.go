package services

import (
	"context"

	"github.com/SscSPs/partner_ledger_app/internal/core/domain"
	"github.com/SscSPs/partner_ledger_app/internal/dto"
	"github.com/shopspring/decimal"
)

// PartnerReaderSvc defines read operations for partners
type PartnerReaderSvc interface {
	GetPartnerByID(ctx context.Context, partnerID string) (*domain.Partner, error)
	// ListPartners returns all partners, or only those of partnerType when it is non-nil.
	ListPartners(ctx context.Context, partnerType *domain.PartnerType) ([]domain.Partner, error)
}

// PartnerWriterSvc defines write operations for partners
type PartnerWriterSvc interface {
	CreatePartner(ctx context.Context, req dto.CreatePartnerRequest, userID string) (*domain.Partner, error)
	UpdatePartner(ctx context.Context, partnerID string, req dto.UpdatePartnerRequest, userID string) (*domain.Partner, error)
	UpdateDebtLimit(ctx context.Context, partnerID string, debtLimit decimal.Decimal, userID string) (*domain.Partner, error)
}

// PartnerSvcFacade combines all partner-related service interfaces
type PartnerSvcFacade interface {
	PartnerReaderSvc
	PartnerWriterSvc
}

package repositories

import (
	"context"

	"github.com/SscSPs/partner_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// PaymentReader defines read operations for payment data
type PaymentReader interface {
	FindPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error)
	ListPaymentsByPartner(ctx context.Context, partnerID string) ([]domain.Payment, error)
	ListPaymentsByTransaction(ctx context.Context, transactionID string) ([]domain.Payment, error)
}

// PaymentWriter defines write operations for payment data
type PaymentWriter interface {
	// SavePaymentWithSettlement inserts the payment, applies every status change
	// and adds debtDelta to the partner's current_debt in a single commit.
	// A status change whose From no longer matches the stored status aborts the
	// commit with apperrors.ErrValidation.
	SavePaymentWithSettlement(ctx context.Context, payment domain.Payment, changes []domain.StatusChange, debtDelta decimal.Decimal) error
}

// PaymentRepositoryFacade combines all payment-related repository interfaces
type PaymentRepositoryFacade interface {
	PaymentReader
	PaymentWriter
}

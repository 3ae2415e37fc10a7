package services

import (
	"context"

	"github.com/SscSPs/partner_ledger_app/internal/core/domain"
	"github.com/SscSPs/partner_ledger_app/internal/dto"
)

// PaymentReaderSvc defines read operations for payments
type PaymentReaderSvc interface {
	ListPaymentsByPartner(ctx context.Context, partnerID string) ([]domain.Payment, error)
	ListPaymentsByTransaction(ctx context.Context, transactionID string) ([]domain.Payment, error)
}

// PaymentWriterSvc defines write operations for payments
type PaymentWriterSvc interface {
	CreatePayment(ctx context.Context, req dto.CreatePaymentRequest, userID string) (*domain.Payment, error)
}

// PaymentSvcFacade combines all payment-related service interfaces
type PaymentSvcFacade interface {
	PaymentReaderSvc
	PaymentWriterSvc
}

package dto

import (
	"time"

	"github.com/SscSPs/partner_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreatePaymentRequest settles one or more transactions of a partner.
type CreatePaymentRequest struct {
	PartnerID      string          `json:"partnerID" binding:"required"`
	TransactionIDs []string        `json:"transactionIDs" binding:"required,min=1,dive,required"`
	Amount         decimal.Decimal `json:"amount" binding:"dgte0,dscale4"`
	Method         string          `json:"method" binding:"required,oneof=CASH TRANSFER"`
	Note           string          `json:"note"`
}

// ListPaymentsParams selects payments by partner or by settled transaction.
type ListPaymentsParams struct {
	PartnerID     string `form:"partnerID"`
	TransactionID string `form:"transactionID"`
}

// PaymentResponse defines the data returned for a payment.
type PaymentResponse struct {
	PaymentID      string               `json:"paymentID"`
	PartnerID      string               `json:"partnerID"`
	TransactionIDs []string             `json:"transactionIDs"`
	Amount         decimal.Decimal      `json:"amount"`
	Method         domain.PaymentMethod `json:"method"`
	Status         domain.PaymentStatus `json:"status"`
	Note           string               `json:"note"`
	CreatedAt      time.Time            `json:"createdAt"`
	CreatedBy      string               `json:"createdBy"`
}

// ListPaymentsResponse wraps the list of payments.
type ListPaymentsResponse struct {
	Payments []PaymentResponse `json:"payments"`
}

// ToPaymentResponse converts a domain.Payment to its DTO
func ToPaymentResponse(p *domain.Payment) PaymentResponse {
	return PaymentResponse{
		PaymentID:      p.PaymentID,
		PartnerID:      p.PartnerID,
		TransactionIDs: p.TransactionIDs,
		Amount:         p.Amount,
		Method:         p.Method,
		Status:         p.Status,
		Note:           p.Note,
		CreatedAt:      p.CreatedAt,
		CreatedBy:      p.CreatedBy,
	}
}

// ToListPaymentsResponse converts a slice of domain.Payment
func ToListPaymentsResponse(payments []domain.Payment) ListPaymentsResponse {
	res := make([]PaymentResponse, len(payments))
	for i := range payments {
		res[i] = ToPaymentResponse(&payments[i])
	}
	return ListPaymentsResponse{Payments: res}
}

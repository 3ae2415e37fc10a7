package dto

import (
	"time"

	"github.com/SscSPs/partner_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateTransactionRequest defines the data needed to record a trade.
type CreateTransactionRequest struct {
	PartnerID     string          `json:"partnerID" binding:"required"`
	Type          string          `json:"type" binding:"required,oneof=IN OUT"`
	ProductID     string          `json:"productID"`
	Quantity      decimal.Decimal `json:"quantity" binding:"dgte0,dscale4"`
	Price         decimal.Decimal `json:"price" binding:"dgte0,dscale4"`
	PaymentStatus string          `json:"paymentStatus" binding:"omitempty,oneof=PENDING PARTIAL PAID"`
	PaymentMethod string          `json:"paymentMethod" binding:"omitempty,oneof=CASH TRANSFER"`
	Description   string          `json:"description"`
	VehicleNumber string          `json:"vehicleNumber"`
	DueDate       *time.Time      `json:"dueDate"`
}

// BarterLeg is one side of a goods-for-goods exchange.
type BarterLeg struct {
	ProductID string          `json:"productID" binding:"required"`
	Quantity  decimal.Decimal `json:"quantity" binding:"dgte0,dscale4"`
	Price     decimal.Decimal `json:"price" binding:"dgte0,dscale4"`
}

// CreateBarterRequest records goods shipped (Out) against goods received (In).
type CreateBarterRequest struct {
	PartnerID     string    `json:"partnerID" binding:"required"`
	Out           BarterLeg `json:"out"`
	In            BarterLeg `json:"in"`
	VehicleNumber string    `json:"vehicleNumber"`
	Description   string    `json:"description"`
}

// ListTransactionsParams defines query parameters for listing transactions.
type ListTransactionsParams struct {
	PartnerID string  `form:"partnerID"`
	Type      string  `form:"type" binding:"omitempty,oneof=IN OUT"`
	Status    string  `form:"status" binding:"omitempty,oneof=PENDING PARTIAL PAID"`
	Limit     int     `form:"limit,default=20"`
	NextToken *string `form:"nextToken"`
}

// ToFilter converts query parameters into a domain filter.
func (p ListTransactionsParams) ToFilter() domain.TransactionFilter {
	return domain.TransactionFilter{
		PartnerID: p.PartnerID,
		Type:      domain.TransactionType(p.Type),
		Status:    domain.PaymentStatus(p.Status),
	}
}

// TransactionResponse defines the data returned for a transaction.
type TransactionResponse struct {
	TransactionID string                 `json:"transactionID"`
	PartnerID     string                 `json:"partnerID"`
	Type          domain.TransactionType `json:"type"`
	ProductID     string                 `json:"productID"`
	Quantity      decimal.Decimal        `json:"quantity"`
	Price         decimal.Decimal        `json:"price"`
	Amount        decimal.Decimal        `json:"amount"`
	PaymentStatus domain.PaymentStatus   `json:"paymentStatus"`
	PaymentMethod domain.PaymentMethod   `json:"paymentMethod"`
	Description   string                 `json:"description"`
	VehicleNumber string                 `json:"vehicleNumber,omitempty"`
	DueDate       *time.Time             `json:"dueDate,omitempty"`
	CreatedAt     time.Time              `json:"createdAt"`
	CreatedBy     string                 `json:"createdBy"`
}

// ListTransactionsResponse wraps one page of transactions.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	NextToken    *string               `json:"nextToken,omitempty"`
}

// BarterResponse returns both legs of a barter.
type BarterResponse struct {
	Out TransactionResponse `json:"out"`
	In  TransactionResponse `json:"in"`
}

// ToTransactionResponse converts a domain.Transaction to its DTO
func ToTransactionResponse(t *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID: t.TransactionID,
		PartnerID:     t.PartnerID,
		Type:          t.Type,
		ProductID:     t.ProductID,
		Quantity:      t.Quantity,
		Price:         t.Price,
		Amount:        t.Amount(),
		PaymentStatus: t.PaymentStatus,
		PaymentMethod: t.PaymentMethod,
		Description:   t.Description,
		VehicleNumber: t.VehicleNumber,
		DueDate:       t.DueDate,
		CreatedAt:     t.CreatedAt,
		CreatedBy:     t.CreatedBy,
	}
}

// ToListTransactionResponse converts a slice of domain.Transaction
func ToListTransactionResponse(txns []domain.Transaction) []TransactionResponse {
	res := make([]TransactionResponse, len(txns))
	for i := range txns {
		res[i] = ToTransactionResponse(&txns[i])
	}
	return res
}

package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType is the direction goods move relative to the company.
type TransactionType string

const (
	// TransactionIn means the company receives goods; the company owes the partner.
	TransactionIn TransactionType = "IN"
	// TransactionOut means the company ships goods; the partner owes the company.
	TransactionOut TransactionType = "OUT"
)

// PaymentStatus tracks settlement of a transaction.
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "PENDING"
	PaymentPartial PaymentStatus = "PARTIAL"
	PaymentPaid    PaymentStatus = "PAID"
)

// PaymentMethod is how a transaction or payment is settled.
type PaymentMethod string

const (
	MethodCash     PaymentMethod = "CASH"
	MethodTransfer PaymentMethod = "TRANSFER"
	MethodBarter   PaymentMethod = "BARTER"
)

// Transaction is a single trade record with a partner. Rows are immutable
// once created except for PaymentStatus.
type Transaction struct {
	TransactionID string          `json:"transactionID"` // Primary Key (UUID)
	PartnerID     string          `json:"partnerID"`     // FK -> partners.partner_id
	Type          TransactionType `json:"type"`
	ProductID     string          `json:"productID"`
	Quantity      decimal.Decimal `json:"quantity"`
	Price         decimal.Decimal `json:"price"`
	PaymentStatus PaymentStatus   `json:"paymentStatus"`
	PaymentMethod PaymentMethod   `json:"paymentMethod"`
	Description   string          `json:"description"`
	VehicleNumber string          `json:"vehicleNumber"`
	DueDate       *time.Time      `json:"dueDate,omitempty"`
	AuditFields
}

// Amount returns quantity × price.
func (t Transaction) Amount() decimal.Decimal {
	return t.Quantity.Mul(t.Price)
}

// IsSettled reports whether the transaction no longer contributes to debt.
func (t Transaction) IsSettled() bool {
	return t.PaymentStatus == PaymentPaid
}

// TransactionFilter narrows transaction listings. Zero values mean "any".
type TransactionFilter struct {
	PartnerID string
	Type      TransactionType
	Status    PaymentStatus
	// CreatedFrom is inclusive, CreatedBefore exclusive.
	CreatedFrom   *time.Time
	CreatedBefore *time.Time
}

package domain

import "github.com/shopspring/decimal"

// Payment settles one or more transactions of a single partner.
type Payment struct {
	PaymentID      string          `json:"paymentID"`
	PartnerID      string          `json:"partnerID"`
	TransactionIDs []string        `json:"transactionIDs"`
	Amount         decimal.Decimal `json:"amount"`
	Method         PaymentMethod   `json:"method"`
	Status         PaymentStatus   `json:"status"`
	Note           string          `json:"note"`
	AuditFields
}

// StatusChange is a paymentStatus transition applied when a payment is saved.
type StatusChange struct {
	TransactionID string
	From          PaymentStatus
	To            PaymentStatus
}

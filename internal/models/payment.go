package models

import "github.com/shopspring/decimal"

// Payment is the row shape of the payments table. The settled transaction IDs
// live in payment_transactions.
type Payment struct {
	PaymentID string          `db:"payment_id"`
	PartnerID string          `db:"partner_id"`
	Amount    decimal.Decimal `db:"amount"`
	Method    string          `db:"method"`
	Status    string          `db:"status"`
	Note      string          `db:"note"`
	AuditFields
}

package models

import (
	"database/sql"

	"github.com/shopspring/decimal"
)

// TransactionType indicates whether goods came IN to or went OUT of the company.
type TransactionType string

const (
	TransactionIn  TransactionType = "IN"
	TransactionOut TransactionType = "OUT"
)

// Transaction is the row shape of the transactions table.
// Amount is stored as well so reports can sum without recomputing quantity*price.
type Transaction struct {
	TransactionID string          `db:"transaction_id"`
	PartnerID     string          `db:"partner_id"`
	Type          TransactionType `db:"transaction_type"`
	ProductID     string          `db:"product_id"`
	Quantity      decimal.Decimal `db:"quantity"`
	Price         decimal.Decimal `db:"price"`
	Amount        decimal.Decimal `db:"amount"`
	PaymentStatus string          `db:"payment_status"`
	PaymentMethod string          `db:"payment_method"`
	Description   string          `db:"description"`
	VehicleNumber string          `db:"vehicle_number"`
	DueDate       sql.NullTime    `db:"due_date"`
	AuditFields
}

package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductTotals is the goods flow of one product inside a report period.
type ProductTotals struct {
	ProductID   string          `json:"productID"`
	InQuantity  decimal.Decimal `json:"inQuantity"`
	InAmount    decimal.Decimal `json:"inAmount"`
	OutQuantity decimal.Decimal `json:"outQuantity"`
	OutAmount   decimal.Decimal `json:"outAmount"`
}

// TradeReport summarizes the transactions recorded in [From, To).
// Revenue is the value of goods shipped (OUT), PurchaseCost the value of goods
// received (IN), regardless of payment status.
type TradeReport struct {
	From             time.Time       `json:"from"`
	To               time.Time       `json:"to"`
	Revenue          decimal.Decimal `json:"revenue"`
	PurchaseCost     decimal.Decimal `json:"purchaseCost"`
	GrossProfit      decimal.Decimal `json:"grossProfit"`
	TransactionCount int             `json:"transactionCount"`
	ByProduct        []ProductTotals `json:"byProduct"`
}

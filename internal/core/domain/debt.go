package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DebtSummary is the outstanding balance of one partner. Positive DebtAmount
// means the partner owes the company; negative means the company owes the partner.
type DebtSummary struct {
	PartnerID           string          `json:"partnerID"`
	PartnerName         string          `json:"partnerName"`
	PartnerType         PartnerType     `json:"partnerType"`
	DebtAmount          decimal.Decimal `json:"debtAmount"`
	DebtLimit           decimal.Decimal `json:"debtLimit"`
	LastTransactionDate *time.Time      `json:"lastTransactionDate"`
	IsOverLimit         bool            `json:"isOverLimit"`
}

// DebtDetail is a DebtSummary plus every transaction of the partner,
// settled ones included.
type DebtDetail struct {
	DebtSummary
	Transactions []Transaction `json:"transactions"`
}

// DebtSummaryFilter narrows a summary listing. Nil fields mean "any".
type DebtSummaryFilter struct {
	IsOverLimit *bool
	PartnerType *PartnerType
}

// Matches reports whether s passes the filter.
func (f DebtSummaryFilter) Matches(s DebtSummary) bool {
	if f.IsOverLimit != nil && s.IsOverLimit != *f.IsOverLimit {
		return false
	}
	if f.PartnerType != nil && s.PartnerType != *f.PartnerType {
		return false
	}
	return true
}

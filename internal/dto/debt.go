package dto

import (
	"time"

	"github.com/SscSPs/partner_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ListDebtSummariesParams defines query parameters for the debt dashboard.
type ListDebtSummariesParams struct {
	IsOverLimit *bool  `form:"isOverLimit"`
	PartnerType string `form:"partnerType" binding:"omitempty,oneof=SUPPLIER CUSTOMER BOTH"`
}

// ToFilter converts query parameters into a domain filter.
func (p ListDebtSummariesParams) ToFilter() domain.DebtSummaryFilter {
	filter := domain.DebtSummaryFilter{IsOverLimit: p.IsOverLimit}
	if p.PartnerType != "" {
		pt := domain.PartnerType(p.PartnerType)
		filter.PartnerType = &pt
	}
	return filter
}

// DebtSummaryResponse defines the data returned for one partner balance.
type DebtSummaryResponse struct {
	PartnerID           string             `json:"partnerID"`
	PartnerName         string             `json:"partnerName"`
	PartnerType         domain.PartnerType `json:"partnerType"`
	DebtAmount          decimal.Decimal    `json:"debtAmount"`
	DebtLimit           decimal.Decimal    `json:"debtLimit"`
	LastTransactionDate *time.Time         `json:"lastTransactionDate"`
	IsOverLimit         bool               `json:"isOverLimit"`
}

// DebtDetailResponse is a summary plus the partner's full transaction history.
type DebtDetailResponse struct {
	DebtSummaryResponse
	Transactions []TransactionResponse `json:"transactions"`
}

// ListDebtSummariesResponse wraps the list of summaries.
type ListDebtSummariesResponse struct {
	Summaries []DebtSummaryResponse `json:"summaries"`
	Total     int                   `json:"total"`
}

// ToDebtSummaryResponse converts a domain.DebtSummary to its DTO
func ToDebtSummaryResponse(s domain.DebtSummary) DebtSummaryResponse {
	return DebtSummaryResponse{
		PartnerID:           s.PartnerID,
		PartnerName:         s.PartnerName,
		PartnerType:         s.PartnerType,
		DebtAmount:          s.DebtAmount,
		DebtLimit:           s.DebtLimit,
		LastTransactionDate: s.LastTransactionDate,
		IsOverLimit:         s.IsOverLimit,
	}
}

// ToListDebtSummariesResponse converts a slice of summaries.
func ToListDebtSummariesResponse(summaries []domain.DebtSummary) ListDebtSummariesResponse {
	res := make([]DebtSummaryResponse, len(summaries))
	for i, s := range summaries {
		res[i] = ToDebtSummaryResponse(s)
	}
	return ListDebtSummariesResponse{Summaries: res, Total: len(res)}
}

// ToDebtDetailResponse converts a domain.DebtDetail to its DTO
func ToDebtDetailResponse(d *domain.DebtDetail) DebtDetailResponse {
	return DebtDetailResponse{
		DebtSummaryResponse: ToDebtSummaryResponse(d.DebtSummary),
		Transactions:        ToListTransactionResponse(d.Transactions),
	}
}

package dto

import (
	"time"

	"github.com/SscSPs/partner_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

const reportDateLayout = "2006-01-02"

// TradeReportParams selects a report period by calendar day, both ends inclusive.
type TradeReportParams struct {
	From string `form:"from" binding:"required,datetime=2006-01-02"`
	To   string `form:"to" binding:"required,datetime=2006-01-02"`
}

// Period converts the inclusive days into the half-open [from, to) range the
// service works with, in business local time.
func (p TradeReportParams) Period() (time.Time, time.Time, error) {
	from, err := time.ParseInLocation(reportDateLayout, p.From, domain.BusinessLocation)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	to, err := time.ParseInLocation(reportDateLayout, p.To, domain.BusinessLocation)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return from, to.AddDate(0, 0, 1), nil
}

// ProductTotalsResponse is one product row of a trade report.
type ProductTotalsResponse struct {
	ProductID   string          `json:"productID"`
	InQuantity  decimal.Decimal `json:"inQuantity"`
	InAmount    decimal.Decimal `json:"inAmount"`
	OutQuantity decimal.Decimal `json:"outQuantity"`
	OutAmount   decimal.Decimal `json:"outAmount"`
}

// TradeReportResponse defines the data returned for a trade report.
type TradeReportResponse struct {
	From             string                  `json:"from"`
	To               string                  `json:"to"`
	Revenue          decimal.Decimal         `json:"revenue"`
	PurchaseCost     decimal.Decimal         `json:"purchaseCost"`
	GrossProfit      decimal.Decimal         `json:"grossProfit"`
	TransactionCount int                     `json:"transactionCount"`
	ByProduct        []ProductTotalsResponse `json:"byProduct"`
}

// ToTradeReportResponse echoes the period back as inclusive calendar days.
func ToTradeReportResponse(r *domain.TradeReport) TradeReportResponse {
	rows := make([]ProductTotalsResponse, len(r.ByProduct))
	for i, p := range r.ByProduct {
		rows[i] = ProductTotalsResponse(p)
	}
	return TradeReportResponse{
		From:             r.From.In(domain.BusinessLocation).Format(reportDateLayout),
		To:               r.To.In(domain.BusinessLocation).AddDate(0, 0, -1).Format(reportDateLayout),
		Revenue:          r.Revenue,
		PurchaseCost:     r.PurchaseCost,
		GrossProfit:      r.GrossProfit,
		TransactionCount: r.TransactionCount,
		ByProduct:        rows,
	}
}

package report

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/SscSPs/partner_ledger_app/internal/core/domain"
	"github.com/SscSPs/partner_ledger_app/internal/utils"
	"github.com/xuri/excelize/v2"
)

// TradeSheetName is the worksheet holding the per-product totals.
const TradeSheetName = "BaoCao"

var tradeHeaders = []string{
	"Sản phẩm", "SL nhập", "Tiền nhập", "SL xuất", "Tiền xuất",
}

// SummarizeTrade folds txns into a TradeReport. Products are sorted by ID;
// transactions without a product are grouped under "".
func SummarizeTrade(txns []domain.Transaction, from, to time.Time) (domain.TradeReport, error) {
	r := domain.TradeReport{From: from, To: to, ByProduct: []domain.ProductTotals{}}
	byProduct := map[string]*domain.ProductTotals{}

	for _, t := range txns {
		p, ok := byProduct[t.ProductID]
		if !ok {
			p = &domain.ProductTotals{ProductID: t.ProductID}
			byProduct[t.ProductID] = p
		}
		amount := t.Amount()
		switch t.Type {
		case domain.TransactionIn:
			r.PurchaseCost = r.PurchaseCost.Add(amount)
			p.InQuantity = p.InQuantity.Add(t.Quantity)
			p.InAmount = p.InAmount.Add(amount)
		case domain.TransactionOut:
			r.Revenue = r.Revenue.Add(amount)
			p.OutQuantity = p.OutQuantity.Add(t.Quantity)
			p.OutAmount = p.OutAmount.Add(amount)
		default:
			return domain.TradeReport{}, fmt.Errorf("unknown transaction type '%s' for transaction ID %s", t.Type, t.TransactionID)
		}
		r.TransactionCount++
	}

	r.GrossProfit = r.Revenue.Sub(r.PurchaseCost)
	for _, p := range byProduct {
		r.ByProduct = append(r.ByProduct, *p)
	}
	sort.Slice(r.ByProduct, func(i, j int) bool {
		return r.ByProduct[i].ProductID < r.ByProduct[j].ProductID
	})
	return r, nil
}

// WriteTradeReport renders a TradeReport as an xlsx workbook into w.
func WriteTradeReport(w io.Writer, r domain.TradeReport, generatedAt time.Time) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", TradeSheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	// The period is stored half-open; people read the last day inclusively.
	lastDay := r.To.Add(-time.Nanosecond)
	title := fmt.Sprintf("Báo cáo từ %s đến %s", r.From.Format("02/01/2006"), lastDay.Format("02/01/2006"))
	if err := f.SetCellValue(TradeSheetName, "A1", title); err != nil {
		return fmt.Errorf("write title: %w", err)
	}

	totals := [][2]any{
		{"Doanh thu", r.Revenue.InexactFloat64()},
		{"Tiền hàng nhập", r.PurchaseCost.InexactFloat64()},
		{"Lợi nhuận gộp", r.GrossProfit.InexactFloat64()},
		{"Số giao dịch", r.TransactionCount},
	}
	for i, kv := range totals {
		row := i + 3
		if err := f.SetCellValue(TradeSheetName, fmt.Sprintf("A%d", row), kv[0]); err != nil {
			return fmt.Errorf("write total label: %w", err)
		}
		if err := f.SetCellValue(TradeSheetName, fmt.Sprintf("B%d", row), kv[1]); err != nil {
			return fmt.Errorf("write total value: %w", err)
		}
	}

	headerRow := len(totals) + 4
	for i, h := range tradeHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, headerRow)
		if err := f.SetCellValue(TradeSheetName, cell, h); err != nil {
			return fmt.Errorf("write header %s: %w", h, err)
		}
	}
	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}
	first, _ := excelize.CoordinatesToCellName(1, headerRow)
	last, _ := excelize.CoordinatesToCellName(len(tradeHeaders), headerRow)
	if err := f.SetCellStyle(TradeSheetName, first, last, headerStyle); err != nil {
		return fmt.Errorf("apply header style: %w", err)
	}

	for i, p := range r.ByProduct {
		row := headerRow + 1 + i
		values := []any{
			p.ProductID,
			p.InQuantity.InexactFloat64(),
			p.InAmount.InexactFloat64(),
			p.OutQuantity.InexactFloat64(),
			p.OutAmount.InexactFloat64(),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			if err := f.SetCellValue(TradeSheetName, cell, v); err != nil {
				return fmt.Errorf("write row %d: %w", row, err)
			}
		}
	}

	footerRow := headerRow + len(r.ByProduct) + 2
	footer := fmt.Sprintf("Xuất lúc %s, lợi nhuận gộp %s", generatedAt.Format("15:04 02/01/2006"), utils.FormatVND(r.GrossProfit))
	if err := f.SetCellValue(TradeSheetName, fmt.Sprintf("A%d", footerRow), footer); err != nil {
		return fmt.Errorf("write footer: %w", err)
	}

	if err := f.SetColWidth(TradeSheetName, "A", "A", 28); err != nil {
		return fmt.Errorf("set width: %w", err)
	}

	return f.Write(w)
}

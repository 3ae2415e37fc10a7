package report

import (
	"fmt"
	"io"
	"time"

	"github.com/SscSPs/partner_ledger_app/internal/core/domain"
	"github.com/SscSPs/partner_ledger_app/internal/utils"
	"github.com/xuri/excelize/v2"
)

// DebtSheetName is the worksheet holding the partner balances.
const DebtSheetName = "CongNo"

var debtHeaders = []string{
	"Đối tác", "Loại", "Số nợ", "Chiều", "Hạn mức", "Vượt hạn mức", "Giao dịch gần nhất",
}

// Direction labels a balance: "Nợ" when the partner owes the company, "Có" when
// the company owes the partner, empty when settled.
func Direction(s domain.DebtSummary) string {
	switch {
	case s.DebtAmount.IsPositive():
		return "Nợ"
	case s.DebtAmount.IsNegative():
		return "Có"
	}
	return ""
}

// WriteDebtSummaries renders summaries as an xlsx workbook into w.
func WriteDebtSummaries(w io.Writer, summaries []domain.DebtSummary, generatedAt time.Time) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", DebtSheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	for i, h := range debtHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(DebtSheetName, cell, h); err != nil {
			return fmt.Errorf("write header %s: %w", h, err)
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}
	lastHeader, _ := excelize.CoordinatesToCellName(len(debtHeaders), 1)
	if err := f.SetCellStyle(DebtSheetName, "A1", lastHeader, headerStyle); err != nil {
		return fmt.Errorf("apply header style: %w", err)
	}

	for i, s := range summaries {
		row := i + 2
		lastDate := ""
		if s.LastTransactionDate != nil {
			lastDate = s.LastTransactionDate.Format("02/01/2006")
		}
		overLimit := "Không"
		if s.IsOverLimit {
			overLimit = "Có"
		}
		values := []any{
			s.PartnerName,
			string(s.PartnerType),
			s.DebtAmount.Abs().InexactFloat64(),
			Direction(s),
			s.DebtLimit.InexactFloat64(),
			overLimit,
			lastDate,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			if err := f.SetCellValue(DebtSheetName, cell, v); err != nil {
				return fmt.Errorf("write row %d: %w", row, err)
			}
		}
	}

	footerRow := len(summaries) + 3
	footer := fmt.Sprintf("Xuất lúc %s, tổng %d đối tác", generatedAt.Format("15:04 02/01/2006"), len(summaries))
	if err := f.SetCellValue(DebtSheetName, fmt.Sprintf("A%d", footerRow), footer); err != nil {
		return fmt.Errorf("write footer: %w", err)
	}
	if total := netTotal(summaries); total != "" {
		if err := f.SetCellValue(DebtSheetName, fmt.Sprintf("A%d", footerRow+1), "Tổng số dư ròng: "+total); err != nil {
			return fmt.Errorf("write total: %w", err)
		}
	}

	if err := f.SetColWidth(DebtSheetName, "A", "A", 32); err != nil {
		return fmt.Errorf("set width: %w", err)
	}

	return f.Write(w)
}

func netTotal(summaries []domain.DebtSummary) string {
	if len(summaries) == 0 {
		return ""
	}
	total := summaries[0].DebtAmount
	for _, s := range summaries[1:] {
		total = total.Add(s.DebtAmount)
	}
	return utils.FormatVND(total)
}

package utils

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatVND renders an amount the way invoices show dong: rounded to whole
// units, dot-grouped thousands, trailing currency sign.
// Example: 1500000 -> "1.500.000 ₫", -2500 -> "-2.500 ₫"
func FormatVND(amount decimal.Decimal) string {
	s := amount.Round(0).Abs().String()
	var b strings.Builder
	if amount.Round(0).IsNegative() {
		b.WriteByte('-')
	}
	lead := len(s) % 3
	if lead == 0 {
		lead = 3
	}
	b.WriteString(s[:lead])
	for i := lead; i < len(s); i += 3 {
		b.WriteByte('.')
		b.WriteString(s[i : i+3])
	}
	b.WriteString(" ₫")
	return b.String()
}

package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// MoneyScale is the number of fractional digits stored for quantities,
// prices and amounts (NUMERIC(_, 4) columns).
const MoneyScale = 4

// BusinessLocation is the operation's wall clock (Vietnam, no DST). Report
// day boundaries and dates shown to partners use it.
var BusinessLocation = time.FixedZone("ICT", 7*60*60)

// FitsMoneyScale reports whether d can be stored without rounding.
func FitsMoneyScale(d decimal.Decimal) bool {
	return d.Equal(d.Round(MoneyScale))
}

// AuditFields holds standard audit information for domain entities.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"` // UserID Reference
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"` // UserID Reference
}

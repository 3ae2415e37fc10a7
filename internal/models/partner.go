package models

import (
	"database/sql"

	"github.com/shopspring/decimal"
)

type PartnerType string

// Partner is the row shape of the partners table.
type Partner struct {
	PartnerID              string          `db:"partner_id"`
	Name                   string          `db:"name"`
	Type                   PartnerType     `db:"partner_type"`
	Phone                  string          `db:"phone"`
	Address                string          `db:"address"`
	IsActive               bool            `db:"is_active"`
	DebtLimit              decimal.Decimal `db:"debt_limit"`
	CurrentDebt            decimal.Decimal `db:"current_debt"`
	TelegramChatID         sql.NullString  `db:"telegram_chat_id"`
	NotificationPreference string          `db:"notification_preference"`
	AuditFields
}

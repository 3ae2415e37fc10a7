package domain

import (
	"github.com/shopspring/decimal"
)

// PartnerType classifies who the company trades with.
type PartnerType string

const (
	PartnerSupplier PartnerType = "SUPPLIER"
	PartnerCustomer PartnerType = "CUSTOMER"
	PartnerBoth     PartnerType = "BOTH"
)

// IsValid reports whether t is one of the known partner types.
func (t PartnerType) IsValid() bool {
	switch t {
	case PartnerSupplier, PartnerCustomer, PartnerBoth:
		return true
	}
	return false
}

// NotificationPreference selects the outbound channel for partner alerts.
type NotificationPreference string

const (
	NotifyTelegram NotificationPreference = "TELEGRAM"
	NotifyNone     NotificationPreference = "NONE"
)

// Partner is a customer and/or supplier with a debt ceiling.
type Partner struct {
	PartnerID   string          `json:"partnerID"` // Primary Key (UUID)
	Name        string          `json:"name"`
	Type        PartnerType     `json:"type"`
	Phone       string          `json:"phone"`
	Address     string          `json:"address"`
	IsActive    bool            `json:"isActive"`
	DebtLimit   decimal.Decimal `json:"debtLimit"` // ceiling on |outstanding balance|
	// CurrentDebt is a materialized copy of the computed balance. It is
	// written in the same DB transaction as every balance-changing write and
	// repaired by the reconcile job; debt queries never read it.
	CurrentDebt            decimal.Decimal        `json:"currentDebt"`
	TelegramChatID         *string                `json:"telegramChatID,omitempty"`
	NotificationPreference NotificationPreference `json:"notificationPreference"`
	AuditFields
}

// WantsTelegram reports whether over-limit alerts should go to Telegram.
func (p *Partner) WantsTelegram() bool {
	return p.NotificationPreference == NotifyTelegram && p.TelegramChatID != nil && *p.TelegramChatID != ""
}

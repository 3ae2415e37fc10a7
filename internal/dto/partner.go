package dto

import (
	"time"

	"github.com/SscSPs/partner_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreatePartnerRequest defines the data needed to create a new partner.
type CreatePartnerRequest struct {
	Name                   string          `json:"name" binding:"required"`
	Type                   string          `json:"type" binding:"required,oneof=SUPPLIER CUSTOMER BOTH"`
	Phone                  string          `json:"phone"`
	Address                string          `json:"address"`
	DebtLimit              decimal.Decimal `json:"debtLimit" binding:"dgte0,dscale4"`
	TelegramChatID         *string         `json:"telegramChatID"`
	NotificationPreference string          `json:"notificationPreference" binding:"omitempty,oneof=TELEGRAM NONE"`
}

// UpdatePartnerRequest defines the data allowed for updating a partner.
// Use pointers to distinguish between zero-value updates and fields not provided.
type UpdatePartnerRequest struct {
	Name                   *string `json:"name"`
	Type                   *string `json:"type" binding:"omitempty,oneof=SUPPLIER CUSTOMER BOTH"`
	Phone                  *string `json:"phone"`
	Address                *string `json:"address"`
	IsActive               *bool   `json:"isActive"`
	TelegramChatID         *string `json:"telegramChatID"`
	NotificationPreference *string `json:"notificationPreference" binding:"omitempty,oneof=TELEGRAM NONE"`
}

// UpdateDebtLimitRequest sets a partner's debt ceiling.
type UpdateDebtLimitRequest struct {
	DebtLimit decimal.Decimal `json:"debtLimit" binding:"dgte0,dscale4"`
}

// ListPartnersParams defines query parameters for listing partners.
type ListPartnersParams struct {
	Type string `form:"type" binding:"omitempty,oneof=SUPPLIER CUSTOMER BOTH"`
}

// PartnerResponse defines the data returned for a partner.
type PartnerResponse struct {
	PartnerID              string                        `json:"partnerID"`
	Name                   string                        `json:"name"`
	Type                   domain.PartnerType            `json:"type"`
	Phone                  string                        `json:"phone"`
	Address                string                        `json:"address"`
	IsActive               bool                          `json:"isActive"`
	DebtLimit              decimal.Decimal               `json:"debtLimit"`
	CurrentDebt            decimal.Decimal               `json:"currentDebt"`
	TelegramChatID         *string                       `json:"telegramChatID,omitempty"`
	NotificationPreference domain.NotificationPreference `json:"notificationPreference"`
	CreatedAt              time.Time                     `json:"createdAt"`
	CreatedBy              string                        `json:"createdBy"`
	LastUpdatedAt          time.Time                     `json:"lastUpdatedAt"`
	LastUpdatedBy          string                        `json:"lastUpdatedBy"`
}

// ListPartnersResponse wraps the list of partners.
type ListPartnersResponse struct {
	Partners []PartnerResponse `json:"partners"`
}

// ToPartnerResponse converts a domain.Partner to PartnerResponse DTO
func ToPartnerResponse(p *domain.Partner) PartnerResponse {
	return PartnerResponse{
		PartnerID:              p.PartnerID,
		Name:                   p.Name,
		Type:                   p.Type,
		Phone:                  p.Phone,
		Address:                p.Address,
		IsActive:               p.IsActive,
		DebtLimit:              p.DebtLimit,
		CurrentDebt:            p.CurrentDebt,
		TelegramChatID:         p.TelegramChatID,
		NotificationPreference: p.NotificationPreference,
		CreatedAt:              p.CreatedAt,
		CreatedBy:              p.CreatedBy,
		LastUpdatedAt:          p.LastUpdatedAt,
		LastUpdatedBy:          p.LastUpdatedBy,
	}
}

// ToListPartnersResponse converts a slice of domain.Partner
func ToListPartnersResponse(partners []domain.Partner) ListPartnersResponse {
	res := make([]PartnerResponse, len(partners))
	for i := range partners {
		res[i] = ToPartnerResponse(&partners[i])
	}
	return ListPartnersResponse{Partners: res}
}

// NotificationLogResponse defines the data returned for a notification attempt.
type NotificationLogResponse struct {
	LogID         string                     `json:"logID"`
	TransactionID *string                    `json:"transactionID,omitempty"`
	Channel       domain.NotificationChannel `json:"channel"`
	Message       string                     `json:"message"`
	Status        domain.NotificationStatus  `json:"status"`
	Error         *string                    `json:"error,omitempty"`
	CreatedAt     time.Time                  `json:"createdAt"`
}

// ToListNotificationLogResponse converts notification logs to DTOs.
func ToListNotificationLogResponse(logs []domain.NotificationLog) []NotificationLogResponse {
	res := make([]NotificationLogResponse, len(logs))
	for i, l := range logs {
		res[i] = NotificationLogResponse{
			LogID:         l.LogID,
			TransactionID: l.TransactionID,
			Channel:       l.Channel,
			Message:       l.Message,
			Status:        l.Status,
			Error:         l.Error,
			CreatedAt:     l.CreatedAt,
		}
	}
	return res
}

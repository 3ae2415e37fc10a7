package mapping

import (
	"github.com/SscSPs/partner_ledger_app/internal/core/domain"
	"github.com/SscSPs/partner_ledger_app/internal/models"
)

// ToModelPartner converts a domain Partner to a model Partner
func ToModelPartner(d domain.Partner) models.Partner {
	return models.Partner{
		PartnerID:              d.PartnerID,
		Name:                   d.Name,
		Type:                   models.PartnerType(d.Type),
		Phone:                  d.Phone,
		Address:                d.Address,
		IsActive:               d.IsActive,
		DebtLimit:              d.DebtLimit,
		CurrentDebt:            d.CurrentDebt,
		TelegramChatID:         toNullString(d.TelegramChatID),
		NotificationPreference: string(d.NotificationPreference),
		AuditFields:            toModelAudit(d.AuditFields),
	}
}

// ToDomainPartner converts a model Partner to a domain Partner
func ToDomainPartner(m models.Partner) domain.Partner {
	return domain.Partner{
		PartnerID:              m.PartnerID,
		Name:                   m.Name,
		Type:                   domain.PartnerType(m.Type),
		Phone:                  m.Phone,
		Address:                m.Address,
		IsActive:               m.IsActive,
		DebtLimit:              m.DebtLimit,
		CurrentDebt:            m.CurrentDebt,
		TelegramChatID:         fromNullString(m.TelegramChatID),
		NotificationPreference: domain.NotificationPreference(m.NotificationPreference),
		AuditFields:            toDomainAudit(m.AuditFields),
	}
}

package mapping

import (
	"github.com/SscSPs/partner_ledger_app/internal/core/domain"
	"github.com/SscSPs/partner_ledger_app/internal/models"
)

func ToModelNotificationLog(d domain.NotificationLog) models.NotificationLog {
	return models.NotificationLog{
		LogID:         d.LogID,
		PartnerID:     d.PartnerID,
		TransactionID: toNullString(d.TransactionID),
		Channel:       string(d.Channel),
		Message:       d.Message,
		Status:        string(d.Status),
		Error:         toNullString(d.Error),
		CreatedAt:     d.CreatedAt,
	}
}

func ToDomainNotificationLog(m models.NotificationLog) domain.NotificationLog {
	return domain.NotificationLog{
		LogID:         m.LogID,
		PartnerID:     m.PartnerID,
		TransactionID: fromNullString(m.TransactionID),
		Channel:       domain.NotificationChannel(m.Channel),
		Message:       m.Message,
		Status:        domain.NotificationStatus(m.Status),
		Error:         fromNullString(m.Error),
		CreatedAt:     m.CreatedAt,
	}
}

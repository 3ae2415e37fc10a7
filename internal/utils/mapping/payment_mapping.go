package mapping

import (
	"github.com/SscSPs/partner_ledger_app/internal/core/domain"
	"github.com/SscSPs/partner_ledger_app/internal/models"
)

// ToModelPayment converts a domain Payment to a model Payment. TransactionIDs
// are persisted separately.
func ToModelPayment(d domain.Payment) models.Payment {
	return models.Payment{
		PaymentID:   d.PaymentID,
		PartnerID:   d.PartnerID,
		Amount:      d.Amount,
		Method:      string(d.Method),
		Status:      string(d.Status),
		Note:        d.Note,
		AuditFields: toModelAudit(d.AuditFields),
	}
}

// ToDomainPayment converts a model Payment and its linked transaction IDs to a domain Payment
func ToDomainPayment(m models.Payment, transactionIDs []string) domain.Payment {
	if transactionIDs == nil {
		transactionIDs = []string{}
	}
	return domain.Payment{
		PaymentID:      m.PaymentID,
		PartnerID:      m.PartnerID,
		TransactionIDs: transactionIDs,
		Amount:         m.Amount,
		Method:         domain.PaymentMethod(m.Method),
		Status:         domain.PaymentStatus(m.Status),
		Note:           m.Note,
		AuditFields:    toDomainAudit(m.AuditFields),
	}
}

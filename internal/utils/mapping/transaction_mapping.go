package mapping

import (
	"github.com/SscSPs/partner_ledger_app/internal/core/domain"
	"github.com/SscSPs/partner_ledger_app/internal/models"
)

// ToModelTransaction converts a domain Transaction to a model Transaction,
// filling the stored amount column.
func ToModelTransaction(d domain.Transaction) models.Transaction {
	return models.Transaction{
		TransactionID: d.TransactionID,
		PartnerID:     d.PartnerID,
		Type:          models.TransactionType(d.Type),
		ProductID:     d.ProductID,
		Quantity:      d.Quantity,
		Price:         d.Price,
		Amount:        d.Amount(),
		PaymentStatus: string(d.PaymentStatus),
		PaymentMethod: string(d.PaymentMethod),
		Description:   d.Description,
		VehicleNumber: d.VehicleNumber,
		DueDate:       toNullTime(d.DueDate),
		AuditFields:   toModelAudit(d.AuditFields),
	}
}

// ToDomainTransaction converts a model Transaction to a domain Transaction
func ToDomainTransaction(m models.Transaction) domain.Transaction {
	return domain.Transaction{
		TransactionID: m.TransactionID,
		PartnerID:     m.PartnerID,
		Type:          domain.TransactionType(m.Type),
		ProductID:     m.ProductID,
		Quantity:      m.Quantity,
		Price:         m.Price,
		PaymentStatus: domain.PaymentStatus(m.PaymentStatus),
		PaymentMethod: domain.PaymentMethod(m.PaymentMethod),
		Description:   m.Description,
		VehicleNumber: m.VehicleNumber,
		DueDate:       fromNullTime(m.DueDate),
		AuditFields:   toDomainAudit(m.AuditFields),
	}
}

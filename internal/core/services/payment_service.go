package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/partner_ledger_app/internal/apperrors"
	"github.com/SscSPs/partner_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/partner_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/partner_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/partner_ledger_app/internal/dto"
	"github.com/SscSPs/partner_ledger_app/internal/utils/accounting"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type paymentService struct {
	BaseService
	paymentRepo portsrepo.PaymentRepositoryFacade
	txnRepo     portsrepo.TransactionReader
	partnerRepo portsrepo.PartnerReader
}

// NewPaymentService creates a new payment service.
func NewPaymentService(paymentRepo portsrepo.PaymentRepositoryFacade, txnRepo portsrepo.TransactionReader, partnerRepo portsrepo.PartnerReader) portssvc.PaymentSvcFacade {
	return &paymentService{
		paymentRepo: paymentRepo,
		txnRepo:     txnRepo,
		partnerRepo: partnerRepo,
	}
}

var _ portssvc.PaymentSvcFacade = (*paymentService)(nil)

func (s *paymentService) CreatePayment(ctx context.Context, req dto.CreatePaymentRequest, userID string) (*domain.Payment, error) {
	if !req.Amount.IsPositive() {
		return nil, apperrors.NewValidationError("payment amount must be positive")
	}
	if !domain.FitsMoneyScale(req.Amount) {
		return nil, apperrors.NewValidationError("payment amount allows at most %d decimal places", domain.MoneyScale)
	}
	ids := uniqueIDs(req.TransactionIDs)
	if len(ids) == 0 {
		return nil, apperrors.NewValidationError("at least one transaction is required")
	}

	if _, err := s.partnerRepo.FindPartnerByID(ctx, req.PartnerID); err != nil {
		return nil, fmt.Errorf("failed to find partner %s: %w", req.PartnerID, err)
	}

	found, err := s.txnRepo.FindTransactionsByIDs(ctx, ids)
	if err != nil {
		s.LogError(ctx, err, "Failed to load transactions for payment", slog.String("partner_id", req.PartnerID))
		return nil, fmt.Errorf("failed to load transactions: %w", err)
	}

	changes := make([]domain.StatusChange, 0, len(ids))
	settled := make([]domain.Transaction, 0, len(ids))
	for _, id := range ids {
		txn, ok := found[id]
		if !ok {
			return nil, apperrors.NewValidationError("transaction %s does not exist", id)
		}
		if txn.PartnerID != req.PartnerID {
			return nil, apperrors.NewValidationError("transaction %s belongs to another partner", id)
		}
		if txn.IsSettled() {
			return nil, apperrors.NewValidationError("transaction %s is already paid", id)
		}
	}

	allocations, err := allocatePayment(req.Amount, ids, found)
	if err != nil {
		return nil, err
	}
	for _, a := range allocations {
		txn := found[a.TransactionID]
		if a.To == domain.PaymentPaid {
			settled = append(settled, txn)
		}
		changes = append(changes, domain.StatusChange{TransactionID: txn.TransactionID, From: txn.PaymentStatus, To: a.To})
	}

	delta, err := accounting.SettlementDelta(settled)
	if err != nil {
		s.LogError(ctx, err, "Failed to compute settlement delta")
		return nil, fmt.Errorf("failed to compute settlement: %w", err)
	}

	status := domain.PaymentPartial
	if len(settled) == len(changes) {
		status = domain.PaymentPaid
	}

	now := time.Now()
	payment := domain.Payment{
		PaymentID:      uuid.NewString(),
		PartnerID:      req.PartnerID,
		TransactionIDs: ids,
		Amount:         req.Amount,
		Method:         domain.PaymentMethod(req.Method),
		Status:         status,
		Note:           req.Note,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.paymentRepo.SavePaymentWithSettlement(ctx, payment, changes, delta); err != nil {
		s.LogError(ctx, err, "Failed to save payment", slog.String("partner_id", req.PartnerID))
		return nil, fmt.Errorf("failed to save payment: %w", err)
	}

	s.LogInfo(ctx, "Payment recorded",
		slog.String("payment_id", payment.PaymentID),
		slog.String("partner_id", payment.PartnerID),
		slog.String("status", string(status)),
		slog.String("debt_delta", delta.String()))
	return &payment, nil
}

func (s *paymentService) ListPaymentsByPartner(ctx context.Context, partnerID string) ([]domain.Payment, error) {
	payments, err := s.paymentRepo.ListPaymentsByPartner(ctx, partnerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments for partner %s: %w", partnerID, err)
	}
	if payments == nil {
		payments = []domain.Payment{}
	}
	return payments, nil
}

func (s *paymentService) ListPaymentsByTransaction(ctx context.Context, transactionID string) ([]domain.Payment, error) {
	payments, err := s.paymentRepo.ListPaymentsByTransaction(ctx, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments for transaction %s: %w", transactionID, err)
	}
	if payments == nil {
		payments = []domain.Payment{}
	}
	return payments, nil
}

type allocation struct {
	TransactionID string
	To            domain.PaymentStatus
}

// allocatePayment spends amount across the transactions in request order.
// Each transaction consumes up to its full amount; the one the money runs out
// on becomes PARTIAL. A transaction left with nothing to apply is rejected
// rather than silently attached to the payment.
func allocatePayment(amount decimal.Decimal, ids []string, txns map[string]domain.Transaction) ([]allocation, error) {
	remaining := amount
	out := make([]allocation, 0, len(ids))
	for _, id := range ids {
		owed := txns[id].Amount()
		switch {
		case remaining.GreaterThanOrEqual(owed):
			out = append(out, allocation{TransactionID: id, To: domain.PaymentPaid})
			remaining = remaining.Sub(owed)
		case remaining.IsPositive():
			out = append(out, allocation{TransactionID: id, To: domain.PaymentPartial})
			remaining = decimal.Zero
		default:
			return nil, apperrors.NewValidationError("payment amount is exhausted before transaction %s", id)
		}
	}
	return out, nil
}

// uniqueIDs drops blanks and duplicates, keeping first-seen order.
func uniqueIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

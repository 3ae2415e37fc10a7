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
	"github.com/SscSPs/partner_ledger_app/internal/utils/pagination"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	defaultTransactionPageSize = 20
	maxTransactionPageSize     = 200
)

type transactionService struct {
	BaseService
	txnRepo     portsrepo.TransactionRepositoryFacade
	partnerRepo portsrepo.PartnerReader
	debtReader  portssvc.DebtReaderSvc
	alerts      portssvc.DebtAlertEnqueuer
	notices     portssvc.TransactionNoticeEnqueuer
	now         func() time.Time
}

// TransactionServiceOption is a functional option for configuring the transaction service
type TransactionServiceOption func(*transactionService)

// WithDebtAlerts enables over-limit alerts after each committed transaction.
func WithDebtAlerts(debtReader portssvc.DebtReaderSvc, alerts portssvc.DebtAlertEnqueuer) TransactionServiceOption {
	return func(s *transactionService) {
		s.debtReader = debtReader
		s.alerts = alerts
	}
}

// WithTransactionNotices enables the per-transaction Telegram notice.
func WithTransactionNotices(notices portssvc.TransactionNoticeEnqueuer) TransactionServiceOption {
	return func(s *transactionService) {
		s.notices = notices
	}
}

// WithClock overrides time.Now, mostly for tests.
func WithClock(now func() time.Time) TransactionServiceOption {
	return func(s *transactionService) {
		s.now = now
	}
}

// NewTransactionService creates a new transaction service with the provided options
func NewTransactionService(txnRepo portsrepo.TransactionRepositoryFacade, partnerRepo portsrepo.PartnerReader, options ...TransactionServiceOption) portssvc.TransactionSvcFacade {
	svc := &transactionService{
		txnRepo:     txnRepo,
		partnerRepo: partnerRepo,
		now:         time.Now,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.TransactionSvcFacade = (*transactionService)(nil)

func (s *transactionService) CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest, userID string) (*domain.Transaction, error) {
	partner, err := s.activePartner(ctx, req.PartnerID)
	if err != nil {
		return nil, err
	}
	if err := validateLine(req.Quantity, req.Price); err != nil {
		return nil, err
	}

	txnType := domain.TransactionType(req.Type)
	if txnType != domain.TransactionIn && txnType != domain.TransactionOut {
		return nil, apperrors.NewValidationError("invalid transaction type %q", req.Type)
	}
	status := domain.PaymentStatus(req.PaymentStatus)
	if status == "" {
		status = domain.PaymentPending
	}
	method := domain.PaymentMethod(req.PaymentMethod)
	if method == "" {
		method = domain.MethodCash
	}

	now := s.now()
	txn := domain.Transaction{
		TransactionID: uuid.NewString(),
		PartnerID:     partner.PartnerID,
		Type:          txnType,
		ProductID:     req.ProductID,
		Quantity:      req.Quantity,
		Price:         req.Price,
		PaymentStatus: status,
		PaymentMethod: method,
		Description:   req.Description,
		VehicleNumber: req.VehicleNumber,
		DueDate:       req.DueDate,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.txnRepo.SaveTransaction(ctx, txn); err != nil {
		s.LogError(ctx, err, "Failed to save transaction",
			slog.String("partner_id", partner.PartnerID),
			slog.String("type", string(txnType)))
		return nil, fmt.Errorf("failed to save transaction: %w", err)
	}

	s.LogInfo(ctx, "Transaction created",
		slog.String("transaction_id", txn.TransactionID),
		slog.String("partner_id", partner.PartnerID),
		slog.String("amount", txn.Amount().String()))

	s.maybeNotify(ctx, partner, txn.TransactionID)
	if !txn.IsSettled() {
		s.maybeAlert(ctx, partner, txn.TransactionID)
	}
	return &txn, nil
}

// maybeNotify enqueues the transaction notice. Like maybeAlert it never fails the request.
func (s *transactionService) maybeNotify(ctx context.Context, partner *domain.Partner, transactionID string) {
	if s.notices == nil || !partner.WantsTelegram() {
		return
	}
	if err := s.notices.EnqueueTransactionNotice(ctx, transactionID); err != nil {
		s.LogError(ctx, err, "Failed to enqueue transaction notice",
			slog.String("partner_id", partner.PartnerID),
			slog.String("transaction_id", transactionID))
	}
}

// maybeAlert enqueues an over-limit notification. Failures are logged and swallowed:
// the transaction is already committed.
func (s *transactionService) maybeAlert(ctx context.Context, partner *domain.Partner, transactionID string) {
	if s.debtReader == nil || s.alerts == nil || !partner.WantsTelegram() {
		return
	}
	detail, err := s.debtReader.GetDebtDetail(ctx, partner.PartnerID)
	if err != nil {
		s.LogError(ctx, err, "Failed to recompute debt for alert", slog.String("partner_id", partner.PartnerID))
		return
	}
	if !detail.IsOverLimit {
		return
	}
	alert := portssvc.DebtAlert{
		PartnerID:     partner.PartnerID,
		TransactionID: transactionID,
		DebtAmount:    detail.DebtAmount,
		DebtLimit:     detail.DebtLimit,
	}
	if err := s.alerts.EnqueueDebtAlert(ctx, alert); err != nil {
		s.LogError(ctx, err, "Failed to enqueue debt alert", slog.String("partner_id", partner.PartnerID))
		return
	}
	s.LogInfo(ctx, "Debt alert enqueued",
		slog.String("partner_id", partner.PartnerID),
		slog.String("debt_amount", detail.DebtAmount.String()))
}

func (s *transactionService) CreateBarter(ctx context.Context, req dto.CreateBarterRequest, userID string) (*domain.Transaction, *domain.Transaction, error) {
	partner, err := s.activePartner(ctx, req.PartnerID)
	if err != nil {
		return nil, nil, err
	}
	for _, leg := range []dto.BarterLeg{req.Out, req.In} {
		if leg.ProductID == "" {
			return nil, nil, apperrors.NewValidationError("both barter legs need a product")
		}
		if err := validateLine(leg.Quantity, leg.Price); err != nil {
			return nil, nil, err
		}
	}

	now := s.now()
	audit := domain.AuditFields{CreatedAt: now, CreatedBy: userID, LastUpdatedAt: now, LastUpdatedBy: userID}
	leg := func(t domain.TransactionType, l dto.BarterLeg) domain.Transaction {
		return domain.Transaction{
			TransactionID: uuid.NewString(),
			PartnerID:     partner.PartnerID,
			Type:          t,
			ProductID:     l.ProductID,
			Quantity:      l.Quantity,
			Price:         l.Price,
			PaymentStatus: domain.PaymentPaid,
			PaymentMethod: domain.MethodBarter,
			Description:   req.Description,
			VehicleNumber: req.VehicleNumber,
			AuditFields:   audit,
		}
	}
	out := leg(domain.TransactionOut, req.Out)
	in := leg(domain.TransactionIn, req.In)

	if err := s.txnRepo.SaveBarter(ctx, out, in); err != nil {
		s.LogError(ctx, err, "Failed to save barter", slog.String("partner_id", partner.PartnerID))
		return nil, nil, fmt.Errorf("failed to save barter: %w", err)
	}

	s.LogInfo(ctx, "Barter recorded",
		slog.String("partner_id", partner.PartnerID),
		slog.String("out_transaction_id", out.TransactionID),
		slog.String("in_transaction_id", in.TransactionID))

	s.maybeNotify(ctx, partner, out.TransactionID)
	s.maybeNotify(ctx, partner, in.TransactionID)
	return &out, &in, nil
}

func (s *transactionService) GetTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	txn, err := s.txnRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to find transaction %s: %w", transactionID, err)
	}
	return txn, nil
}

func (s *transactionService) ListTransactions(ctx context.Context, params dto.ListTransactionsParams) ([]domain.Transaction, *string, error) {
	limit := pagination.NormalizeLimit(params.Limit, defaultTransactionPageSize, maxTransactionPageSize)
	if params.NextToken != nil {
		if _, _, err := pagination.DecodeToken(*params.NextToken); err != nil {
			return nil, nil, apperrors.NewValidationError("invalid nextToken")
		}
	}

	txns, next, err := s.txnRepo.ListTransactionsPage(ctx, params.ToFilter(), limit, params.NextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list transactions")
		return nil, nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	if txns == nil {
		txns = []domain.Transaction{}
	}
	return txns, next, nil
}

// validateLine rejects negative values and anything the NUMERIC(_, 4)
// columns would round, including the quantity × price product.
func validateLine(quantity, price decimal.Decimal) error {
	if quantity.IsNegative() || price.IsNegative() {
		return apperrors.NewValidationError("quantity and price must not be negative")
	}
	if !domain.FitsMoneyScale(quantity) || !domain.FitsMoneyScale(price) {
		return apperrors.NewValidationError("quantity and price allow at most %d decimal places", domain.MoneyScale)
	}
	if !domain.FitsMoneyScale(quantity.Mul(price)) {
		return apperrors.NewValidationError("amount %s exceeds %d decimal places", quantity.Mul(price).String(), domain.MoneyScale)
	}
	return nil
}

func (s *transactionService) activePartner(ctx context.Context, partnerID string) (*domain.Partner, error) {
	partner, err := s.partnerRepo.FindPartnerByID(ctx, partnerID)
	if err != nil {
		s.LogError(ctx, err, "Failed to find partner for transaction", slog.String("partner_id", partnerID))
		return nil, fmt.Errorf("failed to find partner %s: %w", partnerID, err)
	}
	if !partner.IsActive {
		return nil, apperrors.NewValidationError("partner %s is inactive", partnerID)
	}
	return partner, nil
}

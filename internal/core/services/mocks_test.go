package services_test

import (
	"context"
	"time"

	"github.com/SscSPs/partner_ledger_app/internal/core/domain"
	portssvc "github.com/SscSPs/partner_ledger_app/internal/core/ports/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// --- Mock PartnerRepository ---
type MockPartnerRepository struct {
	mock.Mock
}

func (m *MockPartnerRepository) FindPartnerByID(ctx context.Context, partnerID string) (*domain.Partner, error) {
	args := m.Called(ctx, partnerID)
	var p *domain.Partner
	if args.Get(0) != nil {
		p = args.Get(0).(*domain.Partner)
	}
	return p, args.Error(1)
}

func (m *MockPartnerRepository) ListPartners(ctx context.Context) ([]domain.Partner, error) {
	args := m.Called(ctx)
	var ps []domain.Partner
	if args.Get(0) != nil {
		ps = args.Get(0).([]domain.Partner)
	}
	return ps, args.Error(1)
}

func (m *MockPartnerRepository) ListPartnersByType(ctx context.Context, partnerType domain.PartnerType) ([]domain.Partner, error) {
	args := m.Called(ctx, partnerType)
	var ps []domain.Partner
	if args.Get(0) != nil {
		ps = args.Get(0).([]domain.Partner)
	}
	return ps, args.Error(1)
}

func (m *MockPartnerRepository) SavePartner(ctx context.Context, partner domain.Partner) error {
	return m.Called(ctx, partner).Error(0)
}

func (m *MockPartnerRepository) UpdatePartner(ctx context.Context, partner domain.Partner) error {
	return m.Called(ctx, partner).Error(0)
}

func (m *MockPartnerRepository) UpdateDebtLimit(ctx context.Context, partnerID string, debtLimit decimal.Decimal, userID string, now time.Time) error {
	return m.Called(ctx, partnerID, debtLimit, userID, now).Error(0)
}

func (m *MockPartnerRepository) RecomputeCurrentDebt(ctx context.Context, partnerID string, now time.Time) (decimal.Decimal, decimal.Decimal, error) {
	args := m.Called(ctx, partnerID, now)
	return args.Get(0).(decimal.Decimal), args.Get(1).(decimal.Decimal), args.Error(2)
}

// --- Mock TransactionRepository ---
type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) ListTransactions(ctx context.Context, filter domain.TransactionFilter) ([]domain.Transaction, error) {
	args := m.Called(ctx, filter)
	var ts []domain.Transaction
	if args.Get(0) != nil {
		ts = args.Get(0).([]domain.Transaction)
	}
	return ts, args.Error(1)
}

func (m *MockTransactionRepository) ListTransactionsByPartner(ctx context.Context, partnerID string) ([]domain.Transaction, error) {
	args := m.Called(ctx, partnerID)
	var ts []domain.Transaction
	if args.Get(0) != nil {
		ts = args.Get(0).([]domain.Transaction)
	}
	return ts, args.Error(1)
}

func (m *MockTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID)
	var t *domain.Transaction
	if args.Get(0) != nil {
		t = args.Get(0).(*domain.Transaction)
	}
	return t, args.Error(1)
}

func (m *MockTransactionRepository) FindTransactionsByIDs(ctx context.Context, transactionIDs []string) (map[string]domain.Transaction, error) {
	args := m.Called(ctx, transactionIDs)
	var ts map[string]domain.Transaction
	if args.Get(0) != nil {
		ts = args.Get(0).(map[string]domain.Transaction)
	}
	return ts, args.Error(1)
}

func (m *MockTransactionRepository) ListTransactionsPage(ctx context.Context, filter domain.TransactionFilter, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	args := m.Called(ctx, filter, limit, nextToken)
	var ts []domain.Transaction
	if args.Get(0) != nil {
		ts = args.Get(0).([]domain.Transaction)
	}
	var next *string
	if args.Get(1) != nil {
		next = args.Get(1).(*string)
	}
	return ts, next, args.Error(2)
}

func (m *MockTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	return m.Called(ctx, txn).Error(0)
}

func (m *MockTransactionRepository) SaveBarter(ctx context.Context, out domain.Transaction, in domain.Transaction) error {
	return m.Called(ctx, out, in).Error(0)
}

// --- Mock PaymentRepository ---
type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) FindPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error) {
	args := m.Called(ctx, paymentID)
	var p *domain.Payment
	if args.Get(0) != nil {
		p = args.Get(0).(*domain.Payment)
	}
	return p, args.Error(1)
}

func (m *MockPaymentRepository) ListPaymentsByPartner(ctx context.Context, partnerID string) ([]domain.Payment, error) {
	args := m.Called(ctx, partnerID)
	var ps []domain.Payment
	if args.Get(0) != nil {
		ps = args.Get(0).([]domain.Payment)
	}
	return ps, args.Error(1)
}

func (m *MockPaymentRepository) ListPaymentsByTransaction(ctx context.Context, transactionID string) ([]domain.Payment, error) {
	args := m.Called(ctx, transactionID)
	var ps []domain.Payment
	if args.Get(0) != nil {
		ps = args.Get(0).([]domain.Payment)
	}
	return ps, args.Error(1)
}

func (m *MockPaymentRepository) SavePaymentWithSettlement(ctx context.Context, payment domain.Payment, changes []domain.StatusChange, debtDelta decimal.Decimal) error {
	return m.Called(ctx, payment, changes, debtDelta).Error(0)
}

// --- Mock UserRepository ---
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	var u *domain.User
	if args.Get(0) != nil {
		u = args.Get(0).(*domain.User)
	}
	return u, args.Error(1)
}

func (m *MockUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	var u *domain.User
	if args.Get(0) != nil {
		u = args.Get(0).(*domain.User)
	}
	return u, args.Error(1)
}

func (m *MockUserRepository) FindUsers(ctx context.Context, limit int, offset int) ([]domain.User, error) {
	args := m.Called(ctx, limit, offset)
	var us []domain.User
	if args.Get(0) != nil {
		us = args.Get(0).([]domain.User)
	}
	return us, args.Error(1)
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepository) UpdateLastLogin(ctx context.Context, userID string, at time.Time) error {
	return m.Called(ctx, userID, at).Error(0)
}

// --- Mock NotificationLogRepository ---
type MockNotificationLogRepository struct {
	mock.Mock
}

func (m *MockNotificationLogRepository) SaveNotificationLog(ctx context.Context, log domain.NotificationLog) error {
	return m.Called(ctx, log).Error(0)
}

func (m *MockNotificationLogRepository) ListNotificationLogsByPartner(ctx context.Context, partnerID string, limit int) ([]domain.NotificationLog, error) {
	args := m.Called(ctx, partnerID, limit)
	var ls []domain.NotificationLog
	if args.Get(0) != nil {
		ls = args.Get(0).([]domain.NotificationLog)
	}
	return ls, args.Error(1)
}

// --- Mock collaborators ---
type MockAlertEnqueuer struct {
	mock.Mock
}

func (m *MockAlertEnqueuer) EnqueueDebtAlert(ctx context.Context, alert portssvc.DebtAlert) error {
	return m.Called(ctx, alert).Error(0)
}

func (m *MockAlertEnqueuer) EnqueueTransactionNotice(ctx context.Context, transactionID string) error {
	return m.Called(ctx, transactionID).Error(0)
}

var _ portssvc.NotificationEnqueuer = (*MockAlertEnqueuer)(nil)

type MockSender struct {
	mock.Mock
}

func (m *MockSender) SendMessage(ctx context.Context, chatID, text string) error {
	return m.Called(ctx, chatID, text).Error(0)
}

// --- Fixtures ---
func newTxn(id, partnerID string, typ domain.TransactionType, qty, price int64, status domain.PaymentStatus, at time.Time) domain.Transaction {
	return domain.Transaction{
		TransactionID: id,
		PartnerID:     partnerID,
		Type:          typ,
		Quantity:      decimal.NewFromInt(qty),
		Price:         decimal.NewFromInt(price),
		PaymentStatus: status,
		AuditFields:   domain.AuditFields{CreatedAt: at},
	}
}

func newPartner(id, name string, limit int64) domain.Partner {
	return domain.Partner{
		PartnerID:              id,
		Name:                   name,
		Type:                   domain.PartnerBoth,
		IsActive:               true,
		DebtLimit:              decimal.NewFromInt(limit),
		CurrentDebt:            decimal.Zero,
		NotificationPreference: domain.NotifyNone,
	}
}

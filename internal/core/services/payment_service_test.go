package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/partner_ledger_app/internal/apperrors"
	"github.com/SscSPs/partner_ledger_app/internal/core/domain"
	portssvc "github.com/SscSPs/partner_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/partner_ledger_app/internal/core/services"
	"github.com/SscSPs/partner_ledger_app/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type PaymentServiceTestSuite struct {
	suite.Suite
	ctx         context.Context
	paymentRepo *MockPaymentRepository
	txnRepo     *MockTransactionRepository
	partnerRepo *MockPartnerRepository
	service     portssvc.PaymentSvcFacade
	partner     domain.Partner
	t0          time.Time
}

func (suite *PaymentServiceTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.paymentRepo = new(MockPaymentRepository)
	suite.txnRepo = new(MockTransactionRepository)
	suite.partnerRepo = new(MockPartnerRepository)
	suite.service = services.NewPaymentService(suite.paymentRepo, suite.txnRepo, suite.partnerRepo)
	suite.partner = newPartner("p1", "A", 0)
	suite.t0 = time.Date(2024, 8, 1, 0, 0, 0, 0, time.UTC)
}

func (suite *PaymentServiceTestSuite) TearDownTest() {
	suite.paymentRepo.AssertExpectations(suite.T())
	suite.txnRepo.AssertExpectations(suite.T())
	suite.partnerRepo.AssertExpectations(suite.T())
}

func (suite *PaymentServiceTestSuite) expectLoad(ids []string, txns ...domain.Transaction) {
	found := make(map[string]domain.Transaction, len(txns))
	for _, t := range txns {
		found[t.TransactionID] = t
	}
	suite.partnerRepo.On("FindPartnerByID", suite.ctx, "p1").Return(&suite.partner, nil).Once()
	suite.txnRepo.On("FindTransactionsByIDs", suite.ctx, ids).Return(found, nil).Once()
}

func (suite *PaymentServiceTestSuite) TestCreatePayment_FullSettlement() {
	suite.expectLoad([]string{"t1", "t2"},
		newTxn("t1", "p1", domain.TransactionOut, 5, 100, domain.PaymentPending, suite.t0),
		newTxn("t2", "p1", domain.TransactionIn, 1, 100, domain.PaymentPartial, suite.t0),
	)
	suite.paymentRepo.On("SavePaymentWithSettlement", suite.ctx,
		mock.MatchedBy(func(p domain.Payment) bool {
			return p.Status == domain.PaymentPaid && p.PartnerID == "p1" && len(p.TransactionIDs) == 2
		}),
		[]domain.StatusChange{
			{TransactionID: "t1", From: domain.PaymentPending, To: domain.PaymentPaid},
			{TransactionID: "t2", From: domain.PaymentPartial, To: domain.PaymentPaid},
		},
		mock.MatchedBy(func(d decimal.Decimal) bool { return d.Equal(decimal.NewFromInt(-400)) }),
	).Return(nil).Once()

	payment, err := suite.service.CreatePayment(suite.ctx, dto.CreatePaymentRequest{
		PartnerID:      "p1",
		TransactionIDs: []string{"t1", "t2", "t1"},
		Amount:         decimal.NewFromInt(600),
		Method:         "CASH",
	}, "u1")

	suite.Require().NoError(err)
	suite.Equal(domain.PaymentPaid, payment.Status)
	suite.Equal([]string{"t1", "t2"}, payment.TransactionIDs)
}

func (suite *PaymentServiceTestSuite) TestCreatePayment_PartialWhenAmountTooSmall() {
	suite.expectLoad([]string{"t1", "t2"},
		newTxn("t1", "p1", domain.TransactionOut, 5, 100, domain.PaymentPending, suite.t0),
		newTxn("t2", "p1", domain.TransactionOut, 1, 100, domain.PaymentPending, suite.t0),
	)
	suite.paymentRepo.On("SavePaymentWithSettlement", suite.ctx,
		mock.MatchedBy(func(p domain.Payment) bool { return p.Status == domain.PaymentPartial }),
		[]domain.StatusChange{
			{TransactionID: "t1", From: domain.PaymentPending, To: domain.PaymentPaid},
			{TransactionID: "t2", From: domain.PaymentPending, To: domain.PaymentPartial},
		},
		mock.MatchedBy(func(d decimal.Decimal) bool { return d.Equal(decimal.NewFromInt(-500)) }),
	).Return(nil).Once()

	payment, err := suite.service.CreatePayment(suite.ctx, dto.CreatePaymentRequest{
		PartnerID:      "p1",
		TransactionIDs: []string{"t1", "t2"},
		Amount:         decimal.NewFromInt(550),
		Method:         "TRANSFER",
	}, "u1")

	suite.Require().NoError(err)
	suite.Equal(domain.PaymentPartial, payment.Status)
}

func (suite *PaymentServiceTestSuite) TestCreatePayment_AmountIsSpentCumulatively() {
	suite.expectLoad([]string{"t1", "t2", "t3"},
		newTxn("t1", "p1", domain.TransactionOut, 10, 100, domain.PaymentPending, suite.t0),
		newTxn("t2", "p1", domain.TransactionOut, 10, 100, domain.PaymentPending, suite.t0),
		newTxn("t3", "p1", domain.TransactionOut, 10, 100, domain.PaymentPending, suite.t0),
	)

	// 1000 covers t1 exactly; nothing is left for t2 or t3.
	_, err := suite.service.CreatePayment(suite.ctx, dto.CreatePaymentRequest{
		PartnerID:      "p1",
		TransactionIDs: []string{"t1", "t2", "t3"},
		Amount:         decimal.NewFromInt(1000),
		Method:         "CASH",
	}, "u1")

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Contains(err.Error(), "t2")
	suite.paymentRepo.AssertNotCalled(suite.T(), "SavePaymentWithSettlement", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PaymentServiceTestSuite) TestCreatePayment_SmallPaymentSettlesOnlyOne() {
	suite.expectLoad([]string{"t1", "t2"},
		newTxn("t1", "p1", domain.TransactionOut, 10, 100, domain.PaymentPending, suite.t0),
		newTxn("t2", "p1", domain.TransactionIn, 10, 100, domain.PaymentPending, suite.t0),
	)
	suite.paymentRepo.On("SavePaymentWithSettlement", suite.ctx,
		mock.MatchedBy(func(p domain.Payment) bool { return p.Status == domain.PaymentPartial }),
		[]domain.StatusChange{
			{TransactionID: "t1", From: domain.PaymentPending, To: domain.PaymentPaid},
			{TransactionID: "t2", From: domain.PaymentPending, To: domain.PaymentPartial},
		},
		mock.MatchedBy(func(d decimal.Decimal) bool { return d.Equal(decimal.NewFromInt(-1000)) }),
	).Return(nil).Once()

	payment, err := suite.service.CreatePayment(suite.ctx, dto.CreatePaymentRequest{
		PartnerID:      "p1",
		TransactionIDs: []string{"t1", "t2"},
		Amount:         decimal.NewFromInt(1500),
		Method:         "CASH",
	}, "u1")

	suite.Require().NoError(err)
	suite.Equal(domain.PaymentPartial, payment.Status)
}

func (suite *PaymentServiceTestSuite) TestCreatePayment_ForeignTransaction() {
	suite.expectLoad([]string{"t1"},
		newTxn("t1", "p2", domain.TransactionOut, 1, 100, domain.PaymentPending, suite.t0),
	)

	_, err := suite.service.CreatePayment(suite.ctx, dto.CreatePaymentRequest{
		PartnerID: "p1", TransactionIDs: []string{"t1"}, Amount: decimal.NewFromInt(100), Method: "CASH",
	}, "u1")

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.paymentRepo.AssertNotCalled(suite.T(), "SavePaymentWithSettlement", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PaymentServiceTestSuite) TestCreatePayment_AlreadyPaid() {
	suite.expectLoad([]string{"t1"},
		newTxn("t1", "p1", domain.TransactionOut, 1, 100, domain.PaymentPaid, suite.t0),
	)

	_, err := suite.service.CreatePayment(suite.ctx, dto.CreatePaymentRequest{
		PartnerID: "p1", TransactionIDs: []string{"t1"}, Amount: decimal.NewFromInt(100), Method: "CASH",
	}, "u1")

	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *PaymentServiceTestSuite) TestCreatePayment_MissingTransaction() {
	suite.expectLoad([]string{"t1"})

	_, err := suite.service.CreatePayment(suite.ctx, dto.CreatePaymentRequest{
		PartnerID: "p1", TransactionIDs: []string{"t1"}, Amount: decimal.NewFromInt(100), Method: "CASH",
	}, "u1")

	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *PaymentServiceTestSuite) TestCreatePayment_NonPositiveAmount() {
	_, err := suite.service.CreatePayment(suite.ctx, dto.CreatePaymentRequest{
		PartnerID: "p1", TransactionIDs: []string{"t1"}, Amount: decimal.Zero, Method: "CASH",
	}, "u1")

	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *PaymentServiceTestSuite) TestCreatePayment_SaveError() {
	suite.expectLoad([]string{"t1"},
		newTxn("t1", "p1", domain.TransactionOut, 1, 100, domain.PaymentPending, suite.t0),
	)
	suite.paymentRepo.On("SavePaymentWithSettlement", suite.ctx, mock.Anything, mock.Anything, mock.Anything).Return(assert.AnError).Once()

	payment, err := suite.service.CreatePayment(suite.ctx, dto.CreatePaymentRequest{
		PartnerID: "p1", TransactionIDs: []string{"t1"}, Amount: decimal.NewFromInt(100), Method: "CASH",
	}, "u1")

	suite.Nil(payment)
	suite.ErrorIs(err, assert.AnError)
}

func (suite *PaymentServiceTestSuite) TestCreatePayment_RejectsExcessScale() {
	_, err := suite.service.CreatePayment(suite.ctx, dto.CreatePaymentRequest{
		PartnerID: "p1", TransactionIDs: []string{"t1"}, Amount: decimal.RequireFromString("100.00001"), Method: "CASH",
	}, "u1")
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *PaymentServiceTestSuite) TestListPaymentsByPartner_EmptyIsNotNil() {
	suite.paymentRepo.On("ListPaymentsByPartner", suite.ctx, "p1").Return(nil, nil).Once()

	payments, err := suite.service.ListPaymentsByPartner(suite.ctx, "p1")

	suite.Require().NoError(err)
	suite.NotNil(payments)
}

func TestPaymentServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PaymentServiceTestSuite))
}

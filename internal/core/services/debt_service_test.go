package services_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/SscSPs/partner_ledger_app/internal/apperrors"
	"github.com/SscSPs/partner_ledger_app/internal/core/domain"
	portssvc "github.com/SscSPs/partner_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/partner_ledger_app/internal/core/services"
	"github.com/SscSPs/partner_ledger_app/internal/report"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"github.com/xuri/excelize/v2"
)

type DebtServiceTestSuite struct {
	suite.Suite
	ctx         context.Context
	txnRepo     *MockTransactionRepository
	partnerRepo *MockPartnerRepository
	service     portssvc.DebtSvcFacade
	t0          time.Time
}

func (suite *DebtServiceTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.txnRepo = new(MockTransactionRepository)
	suite.partnerRepo = new(MockPartnerRepository)
	suite.service = services.NewDebtService(suite.txnRepo, suite.partnerRepo)
	suite.t0 = time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)
}

func (suite *DebtServiceTestSuite) TearDownTest() {
	suite.txnRepo.AssertExpectations(suite.T())
	suite.partnerRepo.AssertExpectations(suite.T())
}

func (suite *DebtServiceTestSuite) expectAll(txns []domain.Transaction, partners []domain.Partner) {
	suite.txnRepo.On("ListTransactions", suite.ctx, domain.TransactionFilter{}).Return(txns, nil).Once()
	suite.partnerRepo.On("ListPartners", suite.ctx).Return(partners, nil).Once()
}

// --- GetDebtSummaries ---

func (suite *DebtServiceTestSuite) TestGetDebtSummaries_NetsInAgainstOut() {
	suite.expectAll([]domain.Transaction{
		newTxn("t1", "p1", domain.TransactionIn, 10, 100, domain.PaymentPending, suite.t0),
		newTxn("t2", "p1", domain.TransactionOut, 5, 100, domain.PaymentPending, suite.t0.Add(time.Hour)),
	}, []domain.Partner{newPartner("p1", "Hòa Bình", 400)})

	summaries, err := suite.service.GetDebtSummaries(suite.ctx)

	suite.Require().NoError(err)
	suite.Require().Len(summaries, 1)
	s := summaries[0]
	suite.Equal("p1", s.PartnerID)
	suite.Equal("Hòa Bình", s.PartnerName)
	suite.True(decimal.NewFromInt(-500).Equal(s.DebtAmount))
	suite.True(s.IsOverLimit)
	suite.Require().NotNil(s.LastTransactionDate)
	suite.True(suite.t0.Add(time.Hour).Equal(*s.LastTransactionDate))
}

func (suite *DebtServiceTestSuite) TestGetDebtSummaries_PaidContributesNothing() {
	suite.expectAll([]domain.Transaction{
		newTxn("t1", "p1", domain.TransactionIn, 10, 100, domain.PaymentPaid, suite.t0),
		newTxn("t2", "p1", domain.TransactionOut, 5, 100, domain.PaymentPending, suite.t0),
	}, []domain.Partner{newPartner("p1", "Hòa Bình", 400)})

	summaries, err := suite.service.GetDebtSummaries(suite.ctx)

	suite.Require().NoError(err)
	suite.Require().Len(summaries, 1)
	suite.True(decimal.NewFromInt(500).Equal(summaries[0].DebtAmount))
	suite.True(summaries[0].IsOverLimit)
}

func (suite *DebtServiceTestSuite) TestGetDebtSummaries_OmitsFullyPaidPartners() {
	suite.expectAll([]domain.Transaction{
		newTxn("t1", "p1", domain.TransactionOut, 1, 100, domain.PaymentPaid, suite.t0),
		newTxn("t2", "p2", domain.TransactionOut, 1, 100, domain.PaymentPartial, suite.t0),
	}, []domain.Partner{newPartner("p1", "A", 0), newPartner("p2", "B", 1000), newPartner("p3", "C", 0)})

	summaries, err := suite.service.GetDebtSummaries(suite.ctx)

	suite.Require().NoError(err)
	suite.Require().Len(summaries, 1)
	suite.Equal("p2", summaries[0].PartnerID)
	suite.False(summaries[0].IsOverLimit)
}

func (suite *DebtServiceTestSuite) TestGetDebtSummaries_AtLimitIsNotOver() {
	suite.expectAll([]domain.Transaction{
		newTxn("t1", "p1", domain.TransactionOut, 4, 100, domain.PaymentPending, suite.t0),
	}, []domain.Partner{newPartner("p1", "A", 400)})

	summaries, err := suite.service.GetDebtSummaries(suite.ctx)

	suite.Require().NoError(err)
	suite.False(summaries[0].IsOverLimit)
}

func (suite *DebtServiceTestSuite) TestGetDebtSummaries_SortedByNameThenID() {
	suite.expectAll([]domain.Transaction{
		newTxn("t1", "p3", domain.TransactionOut, 1, 1, domain.PaymentPending, suite.t0),
		newTxn("t2", "p2", domain.TransactionOut, 1, 1, domain.PaymentPending, suite.t0),
		newTxn("t3", "p1", domain.TransactionOut, 1, 1, domain.PaymentPending, suite.t0),
	}, []domain.Partner{newPartner("p1", "Zeta", 0), newPartner("p2", "Alpha", 0), newPartner("p3", "Alpha", 0)})

	summaries, err := suite.service.GetDebtSummaries(suite.ctx)

	suite.Require().NoError(err)
	ids := []string{summaries[0].PartnerID, summaries[1].PartnerID, summaries[2].PartnerID}
	suite.Equal([]string{"p2", "p3", "p1"}, ids)
}

func (suite *DebtServiceTestSuite) TestGetDebtSummaries_OrphanIsIntegrityError() {
	suite.expectAll([]domain.Transaction{
		newTxn("t1", "p1", domain.TransactionOut, 1, 100, domain.PaymentPending, suite.t0),
		newTxn("t2", "ghost", domain.TransactionOut, 1, 100, domain.PaymentPending, suite.t0),
	}, []domain.Partner{newPartner("p1", "A", 0)})

	summaries, err := suite.service.GetDebtSummaries(suite.ctx)

	suite.Require().Error(err)
	suite.Nil(summaries)
	suite.ErrorIs(err, apperrors.ErrIntegrity)
	suite.NotErrorIs(err, apperrors.ErrNotFound)
	var integrityErr *apperrors.IntegrityError
	suite.Require().ErrorAs(err, &integrityErr)
	suite.Equal("ghost", integrityErr.PartnerID)
}

func (suite *DebtServiceTestSuite) TestGetDebtSummaries_Empty() {
	suite.expectAll(nil, nil)

	summaries, err := suite.service.GetDebtSummaries(suite.ctx)

	suite.Require().NoError(err)
	suite.NotNil(summaries)
	suite.Empty(summaries)
}

func (suite *DebtServiceTestSuite) TestGetDebtSummaries_TransactionStoreError() {
	suite.txnRepo.On("ListTransactions", suite.ctx, domain.TransactionFilter{}).Return(nil, assert.AnError).Once()

	summaries, err := suite.service.GetDebtSummaries(suite.ctx)

	suite.Require().Error(err)
	suite.Nil(summaries)
	suite.ErrorIs(err, assert.AnError)
	suite.partnerRepo.AssertNotCalled(suite.T(), "ListPartners", suite.ctx)
}

func (suite *DebtServiceTestSuite) TestGetDebtSummaries_PartnerStoreError() {
	suite.txnRepo.On("ListTransactions", suite.ctx, domain.TransactionFilter{}).Return([]domain.Transaction{}, nil).Once()
	suite.partnerRepo.On("ListPartners", suite.ctx).Return(nil, assert.AnError).Once()

	_, err := suite.service.GetDebtSummaries(suite.ctx)

	suite.ErrorIs(err, assert.AnError)
}

func (suite *DebtServiceTestSuite) TestGetDebtSummaries_UnknownTypeFails() {
	suite.txnRepo.On("ListTransactions", suite.ctx, domain.TransactionFilter{}).Return([]domain.Transaction{
		newTxn("t1", "p1", domain.TransactionType("LOAN"), 1, 1, domain.PaymentPending, suite.t0),
	}, nil).Once()

	_, err := suite.service.GetDebtSummaries(suite.ctx)

	suite.Require().Error(err)
	suite.Contains(err.Error(), "unknown transaction type")
}

// --- GetDebtDetail ---

func (suite *DebtServiceTestSuite) TestGetDebtDetail_IncludesPaidInListButNotInSum() {
	p := newPartner("p1", "A", 400)
	suite.partnerRepo.On("FindPartnerByID", suite.ctx, "p1").Return(&p, nil).Once()
	suite.txnRepo.On("ListTransactionsByPartner", suite.ctx, "p1").Return([]domain.Transaction{
		newTxn("t2", "p1", domain.TransactionOut, 5, 100, domain.PaymentPending, suite.t0.Add(time.Hour)),
		newTxn("t1", "p1", domain.TransactionIn, 10, 100, domain.PaymentPaid, suite.t0),
		newTxn("t3", "p1", domain.TransactionIn, 1, 100, domain.PaymentPaid, suite.t0.Add(2*time.Hour)),
	}, nil).Once()

	detail, err := suite.service.GetDebtDetail(suite.ctx, "p1")

	suite.Require().NoError(err)
	suite.True(decimal.NewFromInt(500).Equal(detail.DebtAmount))
	suite.True(detail.IsOverLimit)
	suite.Require().Len(detail.Transactions, 3)
	suite.Equal("t1", detail.Transactions[0].TransactionID, "ordered by createdAt ascending")
	suite.Equal("t3", detail.Transactions[2].TransactionID)
	suite.Require().NotNil(detail.LastTransactionDate)
	suite.True(suite.t0.Add(time.Hour).Equal(*detail.LastTransactionDate), "last date ignores paid rows")
}

func (suite *DebtServiceTestSuite) TestGetDebtDetail_NoTransactions() {
	p := newPartner("p1", "A", 0)
	suite.partnerRepo.On("FindPartnerByID", suite.ctx, "p1").Return(&p, nil).Once()
	suite.txnRepo.On("ListTransactionsByPartner", suite.ctx, "p1").Return(nil, nil).Once()

	detail, err := suite.service.GetDebtDetail(suite.ctx, "p1")

	suite.Require().NoError(err)
	suite.True(detail.DebtAmount.IsZero())
	suite.False(detail.IsOverLimit)
	suite.Nil(detail.LastTransactionDate)
	suite.NotNil(detail.Transactions)
	suite.Empty(detail.Transactions)
}

func (suite *DebtServiceTestSuite) TestGetDebtDetail_AllPaidHasNoLastTransactionDate() {
	p := newPartner("p1", "A", 0)
	suite.partnerRepo.On("FindPartnerByID", suite.ctx, "p1").Return(&p, nil).Once()
	suite.txnRepo.On("ListTransactionsByPartner", suite.ctx, "p1").Return([]domain.Transaction{
		newTxn("t1", "p1", domain.TransactionOut, 5, 100, domain.PaymentPaid, suite.t0),
		newTxn("t2", "p1", domain.TransactionIn, 3, 100, domain.PaymentPaid, suite.t0.Add(time.Hour)),
	}, nil).Once()

	detail, err := suite.service.GetDebtDetail(suite.ctx, "p1")

	suite.Require().NoError(err)
	suite.True(detail.DebtAmount.IsZero())
	suite.False(detail.IsOverLimit, "zero balance against a zero limit")
	suite.Nil(detail.LastTransactionDate, "paid rows never set the last transaction date")
	suite.Len(detail.Transactions, 2)
}

func (suite *DebtServiceTestSuite) TestGetDebtDetail_PartnerNotFound() {
	suite.partnerRepo.On("FindPartnerByID", suite.ctx, "nope").Return(nil, apperrors.ErrNotFound).Once()

	detail, err := suite.service.GetDebtDetail(suite.ctx, "nope")

	suite.Nil(detail)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.txnRepo.AssertNotCalled(suite.T(), "ListTransactionsByPartner", suite.ctx, "nope")
}

func (suite *DebtServiceTestSuite) TestGetDebtDetail_TransactionStoreError() {
	p := newPartner("p1", "A", 0)
	suite.partnerRepo.On("FindPartnerByID", suite.ctx, "p1").Return(&p, nil).Once()
	suite.txnRepo.On("ListTransactionsByPartner", suite.ctx, "p1").Return(nil, assert.AnError).Once()

	_, err := suite.service.GetDebtDetail(suite.ctx, "p1")

	suite.ErrorIs(err, assert.AnError)
}

// --- ListDebtSummaries / Export ---

func (suite *DebtServiceTestSuite) TestListDebtSummaries_Filters() {
	suppliers := newPartner("p1", "A", 100)
	suppliers.Type = domain.PartnerSupplier
	customer := newPartner("p2", "B", 10000)
	customer.Type = domain.PartnerCustomer
	suite.expectAll([]domain.Transaction{
		newTxn("t1", "p1", domain.TransactionIn, 1, 500, domain.PaymentPending, suite.t0),
		newTxn("t2", "p2", domain.TransactionOut, 1, 500, domain.PaymentPending, suite.t0),
	}, []domain.Partner{suppliers, customer})

	over := true
	summaries, err := suite.service.ListDebtSummaries(suite.ctx, domain.DebtSummaryFilter{IsOverLimit: &over})

	suite.Require().NoError(err)
	suite.Require().Len(summaries, 1)
	suite.Equal("p1", summaries[0].PartnerID)

	suite.expectAll([]domain.Transaction{
		newTxn("t2", "p2", domain.TransactionOut, 1, 500, domain.PaymentPending, suite.t0),
	}, []domain.Partner{suppliers, customer})
	pt := domain.PartnerSupplier
	summaries, err = suite.service.ListDebtSummaries(suite.ctx, domain.DebtSummaryFilter{PartnerType: &pt})
	suite.Require().NoError(err)
	suite.Empty(summaries)
}

func (suite *DebtServiceTestSuite) TestExportDebtSummaries_WritesWorkbook() {
	suite.expectAll([]domain.Transaction{
		newTxn("t1", "p1", domain.TransactionOut, 2, 250, domain.PaymentPending, suite.t0),
	}, []domain.Partner{newPartner("p1", "Minh Long", 100)})

	var buf bytes.Buffer
	err := suite.service.ExportDebtSummaries(suite.ctx, domain.DebtSummaryFilter{}, &buf)
	suite.Require().NoError(err)

	f, err := excelize.OpenReader(&buf)
	suite.Require().NoError(err)
	defer f.Close()
	rows, err := f.GetRows(report.DebtSheetName)
	suite.Require().NoError(err)
	suite.Equal("Minh Long", rows[1][0])
	suite.Equal("500", rows[1][2])
}

func (suite *DebtServiceTestSuite) TestExportDebtSummaries_PropagatesIntegrityError() {
	suite.expectAll([]domain.Transaction{
		newTxn("t1", "ghost", domain.TransactionOut, 1, 1, domain.PaymentPending, suite.t0),
	}, nil)

	var buf bytes.Buffer
	err := suite.service.ExportDebtSummaries(suite.ctx, domain.DebtSummaryFilter{}, &buf)

	suite.ErrorIs(err, apperrors.ErrIntegrity)
	suite.Zero(buf.Len())
}

func TestDebtServiceTestSuite(t *testing.T) {
	suite.Run(t, new(DebtServiceTestSuite))
}

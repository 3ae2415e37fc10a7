package services_test

import (
	"context"
	"testing"

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

type PartnerServiceTestSuite struct {
	suite.Suite
	ctx         context.Context
	partnerRepo *MockPartnerRepository
	service     portssvc.PartnerSvcFacade
}

func (suite *PartnerServiceTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.partnerRepo = new(MockPartnerRepository)
	suite.service = services.NewPartnerService(suite.partnerRepo)
}

func (suite *PartnerServiceTestSuite) TearDownTest() {
	suite.partnerRepo.AssertExpectations(suite.T())
}

func (suite *PartnerServiceTestSuite) TestCreatePartner_Success() {
	suite.partnerRepo.On("SavePartner", suite.ctx, mock.MatchedBy(func(p domain.Partner) bool {
		return p.Name == "Đại Phát" && p.Type == domain.PartnerSupplier && p.IsActive &&
			p.CurrentDebt.IsZero() && p.NotificationPreference == domain.NotifyNone
	})).Return(nil).Once()

	partner, err := suite.service.CreatePartner(suite.ctx, dto.CreatePartnerRequest{
		Name:      " Đại Phát ",
		Type:      "SUPPLIER",
		DebtLimit: decimal.NewFromInt(5_000_000),
	}, "admin")

	suite.Require().NoError(err)
	suite.NotEmpty(partner.PartnerID)
	suite.Equal("admin", partner.CreatedBy)
}

func (suite *PartnerServiceTestSuite) TestCreatePartner_NegativeLimit() {
	_, err := suite.service.CreatePartner(suite.ctx, dto.CreatePartnerRequest{
		Name: "A", Type: "CUSTOMER", DebtLimit: decimal.NewFromInt(-1),
	}, "admin")

	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *PartnerServiceTestSuite) TestCreatePartner_BadType() {
	_, err := suite.service.CreatePartner(suite.ctx, dto.CreatePartnerRequest{Name: "A", Type: "VENDOR"}, "admin")

	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *PartnerServiceTestSuite) TestListPartners_ByType() {
	pt := domain.PartnerCustomer
	suite.partnerRepo.On("ListPartnersByType", suite.ctx, pt).Return([]domain.Partner{newPartner("p1", "A", 0)}, nil).Once()

	partners, err := suite.service.ListPartners(suite.ctx, &pt)

	suite.Require().NoError(err)
	suite.Len(partners, 1)
}

func (suite *PartnerServiceTestSuite) TestListPartners_Error() {
	suite.partnerRepo.On("ListPartners", suite.ctx).Return(nil, assert.AnError).Once()

	_, err := suite.service.ListPartners(suite.ctx, nil)

	suite.ErrorIs(err, assert.AnError)
}

func (suite *PartnerServiceTestSuite) TestUpdatePartner_NoChangeSkipsWrite() {
	p := newPartner("p1", "A", 0)
	suite.partnerRepo.On("FindPartnerByID", suite.ctx, "p1").Return(&p, nil).Once()
	same := "A"

	partner, err := suite.service.UpdatePartner(suite.ctx, "p1", dto.UpdatePartnerRequest{Name: &same}, "admin")

	suite.Require().NoError(err)
	suite.Equal("A", partner.Name)
	suite.partnerRepo.AssertNotCalled(suite.T(), "UpdatePartner", mock.Anything, mock.Anything)
}

func (suite *PartnerServiceTestSuite) TestUpdatePartner_TelegramOptIn() {
	p := newPartner("p1", "A", 0)
	suite.partnerRepo.On("FindPartnerByID", suite.ctx, "p1").Return(&p, nil).Once()
	suite.partnerRepo.On("UpdatePartner", suite.ctx, mock.MatchedBy(func(u domain.Partner) bool {
		return u.WantsTelegram() && u.LastUpdatedBy == "admin"
	})).Return(nil).Once()
	chat := "777"
	pref := "TELEGRAM"

	partner, err := suite.service.UpdatePartner(suite.ctx, "p1", dto.UpdatePartnerRequest{TelegramChatID: &chat, NotificationPreference: &pref}, "admin")

	suite.Require().NoError(err)
	suite.True(partner.WantsTelegram())
}

func (suite *PartnerServiceTestSuite) TestUpdateDebtLimit() {
	p := newPartner("p1", "A", 100)
	suite.partnerRepo.On("FindPartnerByID", suite.ctx, "p1").Return(&p, nil).Once()
	suite.partnerRepo.On("UpdateDebtLimit", suite.ctx, "p1", decimal.NewFromInt(900), "admin", mock.AnythingOfType("time.Time")).Return(nil).Once()

	partner, err := suite.service.UpdateDebtLimit(suite.ctx, "p1", decimal.NewFromInt(900), "admin")

	suite.Require().NoError(err)
	suite.True(partner.DebtLimit.Equal(decimal.NewFromInt(900)))
}

func (suite *PartnerServiceTestSuite) TestUpdateDebtLimit_NotFound() {
	suite.partnerRepo.On("FindPartnerByID", suite.ctx, "p1").Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.UpdateDebtLimit(suite.ctx, "p1", decimal.NewFromInt(1), "admin")

	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *PartnerServiceTestSuite) TestDebtLimit_RejectsExcessScale() {
	limit := decimal.RequireFromString("1000.12345")

	_, err := suite.service.CreatePartner(suite.ctx, dto.CreatePartnerRequest{Name: "A", Type: "CUSTOMER", DebtLimit: limit}, "admin")
	suite.ErrorIs(err, apperrors.ErrValidation)

	_, err = suite.service.UpdateDebtLimit(suite.ctx, "p1", limit, "admin")
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.partnerRepo.AssertNotCalled(suite.T(), "UpdateDebtLimit", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestPartnerServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PartnerServiceTestSuite))
}

package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/finledger/fincore/internal/apperrors"
	"github.com/finledger/fincore/internal/core/domain"
	portssvc "github.com/finledger/fincore/internal/core/ports/services"
	"github.com/finledger/fincore/internal/core/services"
)

type PeriodServiceTestSuite struct {
	suite.Suite
	mockPeriodRepo *MockPeriodRepository
	mockCompanySvc *MockCompanyService
	mockAuditSvc   *MockAuditService
	mockNotifier   *MockAlertNotifier
	service        portssvc.PeriodSvcFacade
	companyID      string
	adminID        string
}

func (suite *PeriodServiceTestSuite) SetupTest() {
	suite.mockPeriodRepo = new(MockPeriodRepository)
	suite.mockCompanySvc = new(MockCompanyService)
	suite.mockAuditSvc = new(MockAuditService)
	suite.mockNotifier = new(MockAlertNotifier)
	suite.service = services.NewPeriodService(suite.mockPeriodRepo, suite.mockCompanySvc, suite.mockAuditSvc, suite.mockNotifier)

	suite.companyID = uuid.NewString()
	suite.adminID = uuid.NewString()
}

func (suite *PeriodServiceTestSuite) TestIsPostable_OpenPeriod() {
	ctx := context.Background()
	date := time.Date(2025, time.March, 15, 0, 0, 0, 0, time.UTC)

	suite.mockPeriodRepo.On("FindOpenPeriodCovering", ctx, suite.companyID, date).
		Return(&domain.FiscalPeriod{PeriodID: uuid.NewString(), Status: domain.PeriodOpen}, nil).Once()

	postable, err := suite.service.IsPostable(ctx, suite.companyID, date)

	suite.Require().NoError(err)
	suite.True(postable)
}

func (suite *PeriodServiceTestSuite) TestIsPostable_NoPeriodFailsClosed() {
	ctx := context.Background()
	date := time.Date(2030, time.July, 1, 0, 0, 0, 0, time.UTC)

	suite.mockPeriodRepo.On("FindOpenPeriodCovering", ctx, suite.companyID, date).
		Return(nil, apperrors.ErrNotFound).Once()

	postable, err := suite.service.IsPostable(ctx, suite.companyID, date)

	// A date with no period at all is not postable, and that is not an error.
	suite.Require().NoError(err)
	suite.False(postable)
}

func (suite *PeriodServiceTestSuite) TestIsPostable_RepoError() {
	ctx := context.Background()
	date := time.Now()

	suite.mockPeriodRepo.On("FindOpenPeriodCovering", ctx, suite.companyID, date).
		Return(nil, assert.AnError).Once()

	postable, err := suite.service.IsPostable(ctx, suite.companyID, date)

	suite.Require().Error(err)
	suite.False(postable)
}

func (suite *PeriodServiceTestSuite) TestCreateYearPeriods_Success() {
	ctx := context.Background()

	suite.mockCompanySvc.On("AuthorizeUserAction", ctx, suite.adminID, suite.companyID, domain.RoleAdmin).Return(nil).Once()
	suite.mockPeriodRepo.On("CountOverlappingPeriods", ctx, suite.companyID, mock.Anything, mock.Anything).Return(0, nil).Once()
	suite.mockPeriodRepo.On("SavePeriods", ctx, mock.AnythingOfType("[]domain.FiscalPeriod")).Return(nil).Once()

	periods, err := suite.service.CreateYearPeriods(ctx, suite.companyID, 2025, suite.adminID)

	suite.Require().NoError(err)
	suite.Require().Len(periods, 12)
	suite.Equal("2025-01", periods[0].Name)
	suite.Equal("2025-12", periods[11].Name)
	suite.Equal(domain.PeriodOpen, periods[0].Status)

	// Each period starts on the 1st and ends on the last day of its month.
	feb := periods[1]
	suite.Equal(time.Date(2025, time.February, 1, 0, 0, 0, 0, time.UTC), feb.StartDate)
	suite.Equal(time.Date(2025, time.February, 28, 0, 0, 0, 0, time.UTC), feb.EndDate)

	suite.mockPeriodRepo.AssertExpectations(suite.T())
}

func (suite *PeriodServiceTestSuite) TestCreateYearPeriods_Overlap() {
	ctx := context.Background()

	suite.mockCompanySvc.On("AuthorizeUserAction", ctx, suite.adminID, suite.companyID, domain.RoleAdmin).Return(nil).Once()
	suite.mockPeriodRepo.On("CountOverlappingPeriods", ctx, suite.companyID, mock.Anything, mock.Anything).Return(3, nil).Once()

	_, err := suite.service.CreateYearPeriods(ctx, suite.companyID, 2025, suite.adminID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockPeriodRepo.AssertNotCalled(suite.T(), "SavePeriods", mock.Anything, mock.Anything)
}

func (suite *PeriodServiceTestSuite) TestClosePeriod_Success() {
	ctx := context.Background()
	periodID := uuid.NewString()

	suite.mockCompanySvc.On("AuthorizeUserAction", ctx, suite.adminID, suite.companyID, domain.RoleAdmin).Return(nil).Once()
	suite.mockPeriodRepo.On("FindPeriodByID", ctx, suite.companyID, periodID).
		Return(&domain.FiscalPeriod{PeriodID: periodID, Status: domain.PeriodOpen}, nil).Once()
	suite.mockPeriodRepo.On("UpdatePeriodStatus", ctx, suite.companyID, periodID, domain.PeriodClosed, suite.adminID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockAuditSvc.On("Append", ctx, mock.MatchedBy(func(input domain.AuditInput) bool {
		return input.Action == domain.AuditActionClose && input.TargetID == periodID
	})).Return(&domain.AuditLogEntry{}, nil).Once()

	err := suite.service.ClosePeriod(ctx, suite.companyID, periodID, suite.adminID)

	suite.Require().NoError(err)
	suite.mockPeriodRepo.AssertExpectations(suite.T())
	suite.mockAuditSvc.AssertExpectations(suite.T())
}

func (suite *PeriodServiceTestSuite) TestClosePeriod_AlreadyClosed() {
	ctx := context.Background()
	periodID := uuid.NewString()

	suite.mockCompanySvc.On("AuthorizeUserAction", ctx, suite.adminID, suite.companyID, domain.RoleAdmin).Return(nil).Once()
	suite.mockPeriodRepo.On("FindPeriodByID", ctx, suite.companyID, periodID).
		Return(&domain.FiscalPeriod{PeriodID: periodID, Status: domain.PeriodClosed}, nil).Once()

	err := suite.service.ClosePeriod(ctx, suite.companyID, periodID, suite.adminID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockPeriodRepo.AssertNotCalled(suite.T(), "UpdatePeriodStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PeriodServiceTestSuite) TestOpenPeriod_AuditFailureAlertsButDoesNotFail() {
	ctx := context.Background()
	periodID := uuid.NewString()

	suite.mockCompanySvc.On("AuthorizeUserAction", ctx, suite.adminID, suite.companyID, domain.RoleAdmin).Return(nil).Once()
	suite.mockPeriodRepo.On("FindPeriodByID", ctx, suite.companyID, periodID).
		Return(&domain.FiscalPeriod{PeriodID: periodID, Status: domain.PeriodClosed}, nil).Once()
	suite.mockPeriodRepo.On("UpdatePeriodStatus", ctx, suite.companyID, periodID, domain.PeriodOpen, suite.adminID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockAuditSvc.On("Append", ctx, mock.AnythingOfType("domain.AuditInput")).
		Return(nil, assert.AnError).Once()
	suite.mockNotifier.On("NotifyAuditFailure", ctx, suite.companyID, domain.AuditActionOpen, assert.AnError).Once()

	// The status change already committed; a failed audit append raises an
	// alert instead of failing the call.
	err := suite.service.OpenPeriod(ctx, suite.companyID, periodID, suite.adminID)

	suite.Require().NoError(err)
	suite.mockNotifier.AssertExpectations(suite.T())
}

func TestPeriodService(t *testing.T) {
	suite.Run(t, new(PeriodServiceTestSuite))
}

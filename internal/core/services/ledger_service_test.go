package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/finledger/fincore/internal/apperrors"
	"github.com/finledger/fincore/internal/core/domain"
	portssvc "github.com/finledger/fincore/internal/core/ports/services"
	"github.com/finledger/fincore/internal/core/services"
)

type LedgerServiceTestSuite struct {
	suite.Suite
	mockJournalRepo  *MockJournalRepository
	mockAccountSvc   *MockAccountService
	mockPeriodSvc    *MockPeriodService
	mockCompanySvc   *MockCompanyService
	service          portssvc.LedgerSvcFacade
	companyID        string
	userID           string
	cashAccount      domain.Account
	revenueAccount   domain.Account
	expenseAccount   domain.Account
	inactiveAccount  domain.Account
}

func (suite *LedgerServiceTestSuite) SetupTest() {
	suite.mockJournalRepo = new(MockJournalRepository)
	suite.mockAccountSvc = new(MockAccountService)
	suite.mockPeriodSvc = new(MockPeriodService)
	suite.mockCompanySvc = new(MockCompanyService)
	suite.service = services.NewLedgerService(suite.mockJournalRepo, suite.mockAccountSvc, suite.mockPeriodSvc, suite.mockCompanySvc)

	suite.companyID = uuid.NewString()
	suite.userID = uuid.NewString()

	suite.cashAccount = domain.Account{
		AccountID:   uuid.NewString(),
		CompanyID:   suite.companyID,
		AccountType: domain.Asset,
		IsActive:    true,
	}
	suite.revenueAccount = domain.Account{
		AccountID:   uuid.NewString(),
		CompanyID:   suite.companyID,
		AccountType: domain.Revenue,
		IsActive:    true,
	}
	suite.expenseAccount = domain.Account{
		AccountID:   uuid.NewString(),
		CompanyID:   suite.companyID,
		AccountType: domain.Expense,
		IsActive:    true,
	}
	suite.inactiveAccount = domain.Account{
		AccountID:   uuid.NewString(),
		CompanyID:   suite.companyID,
		AccountType: domain.Expense,
		IsActive:    false,
	}
}

func (suite *LedgerServiceTestSuite) accountsMap(accounts ...domain.Account) map[string]domain.Account {
	m := make(map[string]domain.Account, len(accounts))
	for _, a := range accounts {
		m[a.AccountID] = a
	}
	return m
}

func (suite *LedgerServiceTestSuite) postInput(amount int64) portssvc.PostInput {
	return portssvc.PostInput{
		SourceType:  string(domain.DocInvoice),
		SourceID:    uuid.NewString(),
		PostingDate: time.Now(),
		Description: "Invoice posting",
		Lines: []domain.JournalLine{
			{AccountID: suite.cashAccount.AccountID, Amount: decimal.NewFromInt(amount), Side: domain.Debit},
			{AccountID: suite.revenueAccount.AccountID, Amount: decimal.NewFromInt(amount), Side: domain.Credit},
		},
	}
}

func (suite *LedgerServiceTestSuite) TestPost_Success() {
	ctx := context.Background()
	input := suite.postInput(250)

	suite.mockPeriodSvc.On("IsPostable", ctx, suite.companyID, input.PostingDate).Return(true, nil).Once()
	suite.mockAccountSvc.On("GetAccountByIDs", ctx, suite.companyID, mock.Anything).
		Return(suite.accountsMap(suite.cashAccount, suite.revenueAccount), nil).Once()
	suite.mockJournalRepo.On("SaveEntry", ctx, mock.AnythingOfType("domain.JournalEntry"), mock.AnythingOfType("[]domain.JournalLine"), mock.AnythingOfType("map[string]decimal.Decimal")).Return(nil).Once()

	entry, err := suite.service.Post(ctx, suite.companyID, input, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(entry)
	suite.NotEmpty(entry.EntryID)
	suite.Equal(domain.EntryPosted, entry.Status)
	suite.Equal(suite.companyID, entry.CompanyID)
	suite.True(entry.Amount.Equal(decimal.NewFromInt(250)))
	suite.Len(entry.Lines, 2)
	suite.Equal(suite.userID, entry.CreatedBy)

	// A debit to an asset and a credit to revenue both increase their balances.
	savedChanges := suite.mockJournalRepo.Calls[0].Arguments.Get(3).(map[string]decimal.Decimal)
	suite.True(savedChanges[suite.cashAccount.AccountID].Equal(decimal.NewFromInt(250)))
	suite.True(savedChanges[suite.revenueAccount.AccountID].Equal(decimal.NewFromInt(250)))

	suite.mockJournalRepo.AssertExpectations(suite.T())
	suite.mockPeriodSvc.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestPost_Unbalanced() {
	ctx := context.Background()
	input := portssvc.PostInput{
		PostingDate: time.Now(),
		Lines: []domain.JournalLine{
			{AccountID: suite.cashAccount.AccountID, Amount: decimal.NewFromInt(100), Side: domain.Debit},
			{AccountID: suite.revenueAccount.AccountID, Amount: decimal.NewFromInt(90), Side: domain.Credit},
		},
	}

	_, err := suite.service.Post(ctx, suite.companyID, input, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrUnbalanced)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveEntry", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestPost_SingleAccount() {
	ctx := context.Background()
	// Balanced but both lines hit the same account.
	input := portssvc.PostInput{
		PostingDate: time.Now(),
		Lines: []domain.JournalLine{
			{AccountID: suite.cashAccount.AccountID, Amount: decimal.NewFromInt(100), Side: domain.Debit},
			{AccountID: suite.cashAccount.AccountID, Amount: decimal.NewFromInt(100), Side: domain.Credit},
		},
	}

	_, err := suite.service.Post(ctx, suite.companyID, input, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *LedgerServiceTestSuite) TestPost_PeriodLocked() {
	ctx := context.Background()
	input := suite.postInput(100)

	suite.mockPeriodSvc.On("IsPostable", ctx, suite.companyID, input.PostingDate).Return(false, nil).Once()

	_, err := suite.service.Post(ctx, suite.companyID, input, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrPeriodLocked)
	suite.mockAccountSvc.AssertNotCalled(suite.T(), "GetAccountByIDs", mock.Anything, mock.Anything, mock.Anything)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveEntry", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestPost_InactiveAccount() {
	ctx := context.Background()
	input := portssvc.PostInput{
		PostingDate: time.Now(),
		Lines: []domain.JournalLine{
			{AccountID: suite.inactiveAccount.AccountID, Amount: decimal.NewFromInt(100), Side: domain.Debit},
			{AccountID: suite.revenueAccount.AccountID, Amount: decimal.NewFromInt(100), Side: domain.Credit},
		},
	}

	suite.mockPeriodSvc.On("IsPostable", ctx, suite.companyID, input.PostingDate).Return(true, nil).Once()
	suite.mockAccountSvc.On("GetAccountByIDs", ctx, suite.companyID, mock.Anything).
		Return(suite.accountsMap(suite.inactiveAccount, suite.revenueAccount), nil).Once()

	_, err := suite.service.Post(ctx, suite.companyID, input, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveEntry", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestReverse_Success() {
	ctx := context.Background()
	entryID := uuid.NewString()

	original := domain.JournalEntry{
		EntryID:     entryID,
		CompanyID:   suite.companyID,
		PostingDate: time.Now().AddDate(0, 0, -3),
		SourceType:  string(domain.DocInvoice),
		SourceID:    uuid.NewString(),
		Amount:      decimal.NewFromInt(500),
		Status:      domain.EntryPosted,
	}
	originalLines := []domain.JournalLine{
		{LineID: uuid.NewString(), EntryID: entryID, AccountID: suite.cashAccount.AccountID, Amount: decimal.NewFromInt(500), Side: domain.Debit},
		{LineID: uuid.NewString(), EntryID: entryID, AccountID: suite.revenueAccount.AccountID, Amount: decimal.NewFromInt(500), Side: domain.Credit},
	}

	suite.mockJournalRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockJournalRepo.On("Rollback", ctx, mock.Anything).Return(nil).Once()
	suite.mockJournalRepo.On("FindEntryByID", ctx, entryID).Return(&original, nil).Once()
	suite.mockJournalRepo.On("FindLinesByEntryID", ctx, entryID).Return(originalLines, nil).Once()
	suite.mockPeriodSvc.On("IsPostable", ctx, suite.companyID, mock.AnythingOfType("time.Time")).Return(true, nil).Once()
	suite.mockAccountSvc.On("GetAccountByIDs", ctx, suite.companyID, mock.Anything).
		Return(suite.accountsMap(suite.cashAccount, suite.revenueAccount), nil).Once()
	suite.mockJournalRepo.On("SaveEntryInTx", ctx, mock.Anything, mock.AnythingOfType("domain.JournalEntry"), mock.AnythingOfType("[]domain.JournalLine"), mock.AnythingOfType("map[string]decimal.Decimal")).Return(nil).Once()
	suite.mockJournalRepo.On("UpdateEntryStatusAndLinks", ctx, mock.Anything, entryID, domain.EntryReversed, mock.AnythingOfType("*string"), suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockJournalRepo.On("Commit", ctx, mock.Anything).Return(nil).Once()

	reversal, err := suite.service.Reverse(ctx, suite.companyID, entryID, "duplicate posting", suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(reversal)
	suite.Equal(domain.SourceReversal, reversal.SourceType)
	suite.Equal(entryID, reversal.SourceID)
	suite.Require().NotNil(reversal.OriginalEntryID)
	suite.Equal(entryID, *reversal.OriginalEntryID)
	suite.Require().Len(reversal.Lines, 2)

	// Every line keeps its account and amount but swaps side.
	suite.Equal(domain.Credit, reversal.Lines[0].Side)
	suite.Equal(suite.cashAccount.AccountID, reversal.Lines[0].AccountID)
	suite.True(reversal.Lines[0].Amount.Equal(decimal.NewFromInt(500)))
	suite.Equal(domain.Debit, reversal.Lines[1].Side)

	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestReverse_AlreadyReversed() {
	ctx := context.Background()
	entryID := uuid.NewString()
	reversingID := uuid.NewString()

	original := domain.JournalEntry{
		EntryID:          entryID,
		CompanyID:        suite.companyID,
		Status:           domain.EntryReversed,
		ReversingEntryID: &reversingID,
	}

	suite.mockJournalRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockJournalRepo.On("Rollback", ctx, mock.Anything).Return(nil).Once()
	suite.mockJournalRepo.On("FindEntryByID", ctx, entryID).Return(&original, nil).Once()

	_, err := suite.service.Reverse(ctx, suite.companyID, entryID, "again", suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrAlreadyReversed)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveEntryInTx", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestReverse_WrongCompany() {
	ctx := context.Background()
	entryID := uuid.NewString()

	original := domain.JournalEntry{
		EntryID:   entryID,
		CompanyID: uuid.NewString(),
		Status:    domain.EntryPosted,
	}

	suite.mockJournalRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockJournalRepo.On("Rollback", ctx, mock.Anything).Return(nil).Once()
	suite.mockJournalRepo.On("FindEntryByID", ctx, entryID).Return(&original, nil).Once()

	_, err := suite.service.Reverse(ctx, suite.companyID, entryID, "not yours", suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *LedgerServiceTestSuite) TestGetEntry_WrongCompanyHidden() {
	ctx := context.Background()
	entryID := uuid.NewString()

	suite.mockCompanySvc.On("AuthorizeUserAction", ctx, suite.userID, suite.companyID, domain.RoleReadOnly).Return(nil).Once()
	suite.mockJournalRepo.On("FindEntryByID", ctx, entryID).
		Return(&domain.JournalEntry{EntryID: entryID, CompanyID: uuid.NewString()}, nil).Once()

	_, err := suite.service.GetEntry(ctx, suite.companyID, entryID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func TestLedgerService(t *testing.T) {
	suite.Run(t, new(LedgerServiceTestSuite))
}

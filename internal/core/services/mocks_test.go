package services_test

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/finledger/fincore/internal/core/domain"
	portsrepo "github.com/finledger/fincore/internal/core/ports/repositories"
	portssvc "github.com/finledger/fincore/internal/core/ports/services"
	"github.com/finledger/fincore/internal/dto"
)

// --- Mock CompanyService ---

type MockCompanyService struct {
	mock.Mock
}

var _ portssvc.CompanySvcFacade = (*MockCompanyService)(nil)

func (m *MockCompanyService) GetCompanyByID(ctx context.Context, companyID string) (*domain.Company, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Company), args.Error(1)
}

func (m *MockCompanyService) CreateCompany(ctx context.Context, req dto.CreateCompanyRequest, creatorUserID string) (*domain.Company, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Company), args.Error(1)
}

func (m *MockCompanyService) AddMember(ctx context.Context, companyID string, req dto.AddMemberRequest, addingUserID string) error {
	args := m.Called(ctx, companyID, req, addingUserID)
	return args.Error(0)
}

func (m *MockCompanyService) AuthorizeUserAction(ctx context.Context, userID, companyID string, requiredRole domain.CompanyRole) error {
	args := m.Called(ctx, userID, companyID, requiredRole)
	return args.Error(0)
}

// --- Mock AccountService ---

type MockAccountService struct {
	mock.Mock
}

var _ portssvc.AccountSvcFacade = (*MockAccountService)(nil)

func (m *MockAccountService) GetAccountByID(ctx context.Context, companyID, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, companyID, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) GetAccountByIDs(ctx context.Context, companyID string, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, companyID, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountService) ListAccounts(ctx context.Context, companyID, requestingUserID string) ([]domain.Account, error) {
	args := m.Called(ctx, companyID, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountService) CreateAccount(ctx context.Context, companyID string, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error) {
	args := m.Called(ctx, companyID, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

// --- Mock PeriodService ---

type MockPeriodService struct {
	mock.Mock
}

var _ portssvc.PeriodSvcFacade = (*MockPeriodService)(nil)

func (m *MockPeriodService) IsPostable(ctx context.Context, companyID string, date time.Time) (bool, error) {
	args := m.Called(ctx, companyID, date)
	return args.Bool(0), args.Error(1)
}

func (m *MockPeriodService) ListPeriods(ctx context.Context, companyID, requestingUserID string) ([]domain.FiscalPeriod, error) {
	args := m.Called(ctx, companyID, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FiscalPeriod), args.Error(1)
}

func (m *MockPeriodService) CreateYearPeriods(ctx context.Context, companyID string, year int, creatorUserID string) ([]domain.FiscalPeriod, error) {
	args := m.Called(ctx, companyID, year, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FiscalPeriod), args.Error(1)
}

func (m *MockPeriodService) ClosePeriod(ctx context.Context, companyID, periodID, actorID string) error {
	args := m.Called(ctx, companyID, periodID, actorID)
	return args.Error(0)
}

func (m *MockPeriodService) OpenPeriod(ctx context.Context, companyID, periodID, actorID string) error {
	args := m.Called(ctx, companyID, periodID, actorID)
	return args.Error(0)
}

// --- Mock ApprovalService ---

type MockApprovalService struct {
	mock.Mock
}

var _ portssvc.ApprovalSvcFacade = (*MockApprovalService)(nil)

func (m *MockApprovalService) CreateRule(ctx context.Context, companyID string, req dto.CreateApprovalRuleRequest, creatorUserID string) (*domain.ApprovalRule, error) {
	args := m.Called(ctx, companyID, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ApprovalRule), args.Error(1)
}

func (m *MockApprovalService) ListRules(ctx context.Context, companyID, requestingUserID string) ([]domain.ApprovalRule, error) {
	args := m.Called(ctx, companyID, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ApprovalRule), args.Error(1)
}

func (m *MockApprovalService) MatchRule(ctx context.Context, companyID string, docType domain.DocumentType, amount decimal.Decimal) (*domain.ApprovalRule, error) {
	args := m.Called(ctx, companyID, docType, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ApprovalRule), args.Error(1)
}

func (m *MockApprovalService) SubmitInTx(ctx context.Context, tx pgx.Tx, request domain.ApprovalRequest) (*domain.ApprovalRequest, error) {
	args := m.Called(ctx, tx, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ApprovalRequest), args.Error(1)
}

func (m *MockApprovalService) Approve(ctx context.Context, companyID, requestID, actorID, comment string) (*domain.ApprovalRequest, error) {
	args := m.Called(ctx, companyID, requestID, actorID, comment)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ApprovalRequest), args.Error(1)
}

func (m *MockApprovalService) Reject(ctx context.Context, companyID, requestID, actorID, comment string) (*domain.ApprovalRequest, error) {
	args := m.Called(ctx, companyID, requestID, actorID, comment)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ApprovalRequest), args.Error(1)
}

func (m *MockApprovalService) GetRequest(ctx context.Context, companyID, requestID, requestingUserID string) (*domain.ApprovalRequest, error) {
	args := m.Called(ctx, companyID, requestID, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ApprovalRequest), args.Error(1)
}

func (m *MockApprovalService) GetPendingByDocument(ctx context.Context, companyID string, docType domain.DocumentType, documentID string) (*domain.ApprovalRequest, error) {
	args := m.Called(ctx, companyID, docType, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ApprovalRequest), args.Error(1)
}

func (m *MockApprovalService) ListPending(ctx context.Context, companyID, requestingUserID string) ([]domain.ApprovalRequest, error) {
	args := m.Called(ctx, companyID, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ApprovalRequest), args.Error(1)
}

// --- Mock LedgerService ---

type MockLedgerService struct {
	mock.Mock
}

var _ portssvc.LedgerSvcFacade = (*MockLedgerService)(nil)

func (m *MockLedgerService) GetEntry(ctx context.Context, companyID, entryID, requestingUserID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, companyID, entryID, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockLedgerService) ListEntries(ctx context.Context, companyID, requestingUserID string, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error) {
	args := m.Called(ctx, companyID, requestingUserID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListEntriesResponse), args.Error(1)
}

func (m *MockLedgerService) Post(ctx context.Context, companyID string, input portssvc.PostInput, actorID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, companyID, input, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockLedgerService) PostInTx(ctx context.Context, tx pgx.Tx, companyID string, input portssvc.PostInput, actorID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, tx, companyID, input, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockLedgerService) Reverse(ctx context.Context, companyID, entryID, reason, actorID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, companyID, entryID, reason, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockLedgerService) ReverseInTx(ctx context.Context, tx pgx.Tx, companyID, entryID, reason, actorID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, tx, companyID, entryID, reason, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

// --- Mock AuditService ---

type MockAuditService struct {
	mock.Mock
}

var _ portssvc.AuditSvcFacade = (*MockAuditService)(nil)

func (m *MockAuditService) Append(ctx context.Context, input domain.AuditInput) (*domain.AuditLogEntry, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AuditLogEntry), args.Error(1)
}

func (m *MockAuditService) AppendInTx(ctx context.Context, tx pgx.Tx, input domain.AuditInput) (*domain.AuditLogEntry, error) {
	args := m.Called(ctx, tx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AuditLogEntry), args.Error(1)
}

func (m *MockAuditService) VerifyChain(ctx context.Context, companyID, requestingUserID string) (*domain.ChainVerification, error) {
	args := m.Called(ctx, companyID, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ChainVerification), args.Error(1)
}

func (m *MockAuditService) ListEntries(ctx context.Context, companyID, requestingUserID string, params dto.ListAuditEntriesParams) (*dto.ListAuditEntriesResponse, error) {
	args := m.Called(ctx, companyID, requestingUserID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListAuditEntriesResponse), args.Error(1)
}

// --- Mock AlertNotifier ---

type MockAlertNotifier struct {
	mock.Mock
}

var _ portssvc.AlertNotifier = (*MockAlertNotifier)(nil)

func (m *MockAlertNotifier) NotifyAuditFailure(ctx context.Context, companyID, action string, err error) {
	m.Called(ctx, companyID, action, err)
}

// --- Mock DocumentAdapter ---

type MockDocumentAdapter struct {
	mock.Mock
	docType domain.DocumentType
}

var _ portssvc.DocumentAdapter = (*MockDocumentAdapter)(nil)

func (m *MockDocumentAdapter) DocumentType() domain.DocumentType {
	return m.docType
}

func (m *MockDocumentAdapter) Load(ctx context.Context, companyID, documentID string) (*domain.SourceDocument, error) {
	args := m.Called(ctx, companyID, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SourceDocument), args.Error(1)
}

func (m *MockDocumentAdapter) LoadForUpdate(ctx context.Context, tx pgx.Tx, companyID, documentID string) (*domain.SourceDocument, error) {
	args := m.Called(ctx, tx, companyID, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SourceDocument), args.Error(1)
}

func (m *MockDocumentAdapter) BuildLines(ctx context.Context, doc *domain.SourceDocument) ([]domain.JournalLine, error) {
	args := m.Called(ctx, doc)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalLine), args.Error(1)
}

func (m *MockDocumentAdapter) ApplyStatusInTx(ctx context.Context, tx pgx.Tx, companyID, documentID string, status domain.DocumentStatus, actorID string) error {
	args := m.Called(ctx, tx, companyID, documentID, status, actorID)
	return args.Error(0)
}

// --- Mock JournalRepository ---

type MockJournalRepository struct {
	mock.Mock
}

var _ portsrepo.JournalRepositoryWithTx = (*MockJournalRepository)(nil)

func (m *MockJournalRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *MockJournalRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockJournalRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockJournalRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalRepository) FindEntryBySource(ctx context.Context, companyID, sourceType, sourceID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, companyID, sourceType, sourceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalRepository) ListEntriesByCompany(ctx context.Context, companyID string, limit int, nextToken *string) ([]domain.JournalEntry, *string, error) {
	args := m.Called(ctx, companyID, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedToken = &tokenVal
	}
	return args.Get(0).([]domain.JournalEntry), returnedToken, args.Error(2)
}

func (m *MockJournalRepository) SaveEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalLine, balanceChanges map[string]decimal.Decimal) error {
	args := m.Called(ctx, entry, lines, balanceChanges)
	return args.Error(0)
}

func (m *MockJournalRepository) SaveEntryInTx(ctx context.Context, tx pgx.Tx, entry domain.JournalEntry, lines []domain.JournalLine, balanceChanges map[string]decimal.Decimal) error {
	args := m.Called(ctx, tx, entry, lines, balanceChanges)
	return args.Error(0)
}

func (m *MockJournalRepository) UpdateEntryStatusAndLinks(ctx context.Context, tx pgx.Tx, entryID string, status domain.EntryStatus, reversingEntryID *string, updatedBy string, updatedAt time.Time) error {
	args := m.Called(ctx, tx, entryID, status, reversingEntryID, updatedBy, updatedAt)
	return args.Error(0)
}

func (m *MockJournalRepository) FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.JournalLine, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalLine), args.Error(1)
}

// --- Mock ApprovalRepository ---

type MockApprovalRepository struct {
	mock.Mock
}

var _ portsrepo.ApprovalRepositoryWithTx = (*MockApprovalRepository)(nil)

func (m *MockApprovalRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *MockApprovalRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockApprovalRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockApprovalRepository) FindMatchingRule(ctx context.Context, companyID string, docType domain.DocumentType, amount decimal.Decimal) (*domain.ApprovalRule, error) {
	args := m.Called(ctx, companyID, docType, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ApprovalRule), args.Error(1)
}

func (m *MockApprovalRepository) FindRuleByID(ctx context.Context, companyID, ruleID string) (*domain.ApprovalRule, error) {
	args := m.Called(ctx, companyID, ruleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ApprovalRule), args.Error(1)
}

func (m *MockApprovalRepository) ListRulesByCompany(ctx context.Context, companyID string) ([]domain.ApprovalRule, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ApprovalRule), args.Error(1)
}

func (m *MockApprovalRepository) SaveRule(ctx context.Context, rule domain.ApprovalRule) error {
	args := m.Called(ctx, rule)
	return args.Error(0)
}

func (m *MockApprovalRepository) FindRequestByID(ctx context.Context, companyID, requestID string) (*domain.ApprovalRequest, error) {
	args := m.Called(ctx, companyID, requestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ApprovalRequest), args.Error(1)
}

func (m *MockApprovalRepository) FindRequestByIDForUpdate(ctx context.Context, tx pgx.Tx, companyID, requestID string) (*domain.ApprovalRequest, error) {
	args := m.Called(ctx, tx, companyID, requestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ApprovalRequest), args.Error(1)
}

func (m *MockApprovalRepository) FindPendingRequestByDocument(ctx context.Context, companyID string, docType domain.DocumentType, documentID string) (*domain.ApprovalRequest, error) {
	args := m.Called(ctx, companyID, docType, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ApprovalRequest), args.Error(1)
}

func (m *MockApprovalRepository) ListPendingRequests(ctx context.Context, companyID string) ([]domain.ApprovalRequest, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ApprovalRequest), args.Error(1)
}

func (m *MockApprovalRepository) SaveRequest(ctx context.Context, request domain.ApprovalRequest) error {
	args := m.Called(ctx, request)
	return args.Error(0)
}

func (m *MockApprovalRepository) SaveRequestInTx(ctx context.Context, tx pgx.Tx, request domain.ApprovalRequest) error {
	args := m.Called(ctx, tx, request)
	return args.Error(0)
}

func (m *MockApprovalRepository) RecordDecision(ctx context.Context, tx pgx.Tx, decision domain.ApprovalDecision, newStatus domain.ApprovalStatus, newCurrentStep int, decidedAt *time.Time) error {
	args := m.Called(ctx, tx, decision, newStatus, newCurrentStep, decidedAt)
	return args.Error(0)
}

// --- Mock PeriodRepository ---

type MockPeriodRepository struct {
	mock.Mock
}

var _ portsrepo.PeriodRepositoryFacade = (*MockPeriodRepository)(nil)

func (m *MockPeriodRepository) FindPeriodByID(ctx context.Context, companyID, periodID string) (*domain.FiscalPeriod, error) {
	args := m.Called(ctx, companyID, periodID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FiscalPeriod), args.Error(1)
}

func (m *MockPeriodRepository) FindOpenPeriodCovering(ctx context.Context, companyID string, date time.Time) (*domain.FiscalPeriod, error) {
	args := m.Called(ctx, companyID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FiscalPeriod), args.Error(1)
}

func (m *MockPeriodRepository) ListPeriodsByCompany(ctx context.Context, companyID string) ([]domain.FiscalPeriod, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FiscalPeriod), args.Error(1)
}

func (m *MockPeriodRepository) CountOverlappingPeriods(ctx context.Context, companyID string, startDate, endDate time.Time) (int, error) {
	args := m.Called(ctx, companyID, startDate, endDate)
	return args.Int(0), args.Error(1)
}

func (m *MockPeriodRepository) SavePeriods(ctx context.Context, periods []domain.FiscalPeriod) error {
	args := m.Called(ctx, periods)
	return args.Error(0)
}

func (m *MockPeriodRepository) UpdatePeriodStatus(ctx context.Context, companyID, periodID string, status domain.PeriodStatus, updatedBy string, updatedAt time.Time) error {
	args := m.Called(ctx, companyID, periodID, status, updatedBy, updatedAt)
	return args.Error(0)
}

// --- Mock AuditRepository ---

type MockAuditRepository struct {
	mock.Mock
}

var _ portsrepo.AuditRepositoryWithTx = (*MockAuditRepository)(nil)

func (m *MockAuditRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *MockAuditRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockAuditRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockAuditRepository) ListEntriesByCompany(ctx context.Context, companyID string, limit int, nextToken *string) ([]domain.AuditLogEntry, *string, error) {
	args := m.Called(ctx, companyID, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedToken = &tokenVal
	}
	return args.Get(0).([]domain.AuditLogEntry), returnedToken, args.Error(2)
}

func (m *MockAuditRepository) ListAllEntriesByCompany(ctx context.Context, companyID string) ([]domain.AuditLogEntry, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AuditLogEntry), args.Error(1)
}

func (m *MockAuditRepository) AppendEntry(ctx context.Context, input domain.AuditInput) (*domain.AuditLogEntry, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AuditLogEntry), args.Error(1)
}

func (m *MockAuditRepository) AppendEntryInTx(ctx context.Context, tx pgx.Tx, input domain.AuditInput) (*domain.AuditLogEntry, error) {
	args := m.Called(ctx, tx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AuditLogEntry), args.Error(1)
}

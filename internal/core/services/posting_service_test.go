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

type PostingServiceTestSuite struct {
	suite.Suite
	mockAdapter     *MockDocumentAdapter
	mockCompanySvc  *MockCompanyService
	mockPeriodSvc   *MockPeriodService
	mockApprovalSvc *MockApprovalService
	mockLedgerSvc   *MockLedgerService
	mockAuditSvc    *MockAuditService
	mockJournalRepo *MockJournalRepository
	mockNotifier    *MockAlertNotifier
	service         portssvc.PostingOrchestratorSvc
	companyID       string
	actorID         string
	document        domain.SourceDocument
}

func (suite *PostingServiceTestSuite) SetupTest() {
	suite.buildService(true)
}

// buildService wires the orchestrator with the given audit mode. The journal
// repository mock doubles as the transaction manager, like the real container
// reusing the document repository's Begin/Commit/Rollback.
func (suite *PostingServiceTestSuite) buildService(auditStrict bool) {
	suite.mockAdapter = &MockDocumentAdapter{docType: domain.DocInvoice}
	suite.mockCompanySvc = new(MockCompanyService)
	suite.mockPeriodSvc = new(MockPeriodService)
	suite.mockApprovalSvc = new(MockApprovalService)
	suite.mockLedgerSvc = new(MockLedgerService)
	suite.mockAuditSvc = new(MockAuditService)
	suite.mockJournalRepo = new(MockJournalRepository)
	suite.mockNotifier = new(MockAlertNotifier)

	registry := portssvc.AdapterRegistry{}
	registry.Register(suite.mockAdapter)

	suite.service = services.NewPostingService(
		registry,
		suite.mockCompanySvc,
		suite.mockPeriodSvc,
		suite.mockApprovalSvc,
		suite.mockLedgerSvc,
		suite.mockAuditSvc,
		suite.mockJournalRepo,
		suite.mockJournalRepo,
		suite.mockNotifier,
		auditStrict,
	)

	suite.companyID = uuid.NewString()
	suite.actorID = uuid.NewString()
	suite.document = domain.SourceDocument{
		DocumentID:   uuid.NewString(),
		CompanyID:    suite.companyID,
		DocumentType: domain.DocInvoice,
		Number:       "INV-1001",
		Amount:       decimal.NewFromInt(1200),
		DocumentDate: time.Date(2025, time.April, 10, 0, 0, 0, 0, time.UTC),
		Status:       domain.DocDraft,
	}
}

func (suite *PostingServiceTestSuite) expectAuthorized() {
	suite.mockCompanySvc.On("AuthorizeUserAction", mock.Anything, suite.actorID, suite.companyID, domain.RoleMember).Return(nil).Once()
}

func (suite *PostingServiceTestSuite) expectTx() {
	suite.mockJournalRepo.On("Begin", mock.Anything).Return(nil, nil).Once()
	suite.mockJournalRepo.On("Rollback", mock.Anything, mock.Anything).Return(nil).Once()
	suite.mockJournalRepo.On("Commit", mock.Anything, mock.Anything).Return(nil).Once()
}

func (suite *PostingServiceTestSuite) TestRequestPosting_UnknownType() {
	ctx := context.Background()
	suite.expectAuthorized()

	_, err := suite.service.RequestPosting(ctx, suite.companyID, domain.DocPayrollRun, suite.document.DocumentID, suite.actorID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *PostingServiceTestSuite) TestRequestPosting_PeriodLocked() {
	ctx := context.Background()
	doc := suite.document
	suite.expectAuthorized()
	suite.mockAdapter.On("Load", ctx, suite.companyID, doc.DocumentID).Return(&doc, nil).Once()
	suite.mockPeriodSvc.On("IsPostable", ctx, suite.companyID, doc.DocumentDate).Return(false, nil).Once()

	_, err := suite.service.RequestPosting(ctx, suite.companyID, domain.DocInvoice, doc.DocumentID, suite.actorID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrPeriodLocked)
	// Nothing was written: no transaction, no rule lookup.
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "Begin", mock.Anything)
	suite.mockApprovalSvc.AssertNotCalled(suite.T(), "MatchRule", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PostingServiceTestSuite) TestRequestPosting_AlreadyPosted() {
	ctx := context.Background()
	doc := suite.document
	doc.Status = domain.DocPosted
	suite.expectAuthorized()
	suite.mockAdapter.On("Load", ctx, suite.companyID, doc.DocumentID).Return(&doc, nil).Once()

	_, err := suite.service.RequestPosting(ctx, suite.companyID, domain.DocInvoice, doc.DocumentID, suite.actorID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrAlreadyPosted)
}

func (suite *PostingServiceTestSuite) TestRequestPosting_ResubmitReturnsOpenRequest() {
	ctx := context.Background()
	doc := suite.document
	doc.Status = domain.DocPendingApproval
	pending := &domain.ApprovalRequest{RequestID: uuid.NewString(), Status: domain.ApprovalPending}

	suite.expectAuthorized()
	suite.mockAdapter.On("Load", ctx, suite.companyID, doc.DocumentID).Return(&doc, nil).Once()
	suite.mockApprovalSvc.On("GetPendingByDocument", ctx, suite.companyID, domain.DocInvoice, doc.DocumentID).Return(pending, nil).Once()

	result, err := suite.service.RequestPosting(ctx, suite.companyID, domain.DocInvoice, doc.DocumentID, suite.actorID)

	suite.Require().NoError(err)
	suite.Equal(portssvc.PostingPendingApproval, result.Status)
	suite.Require().NotNil(result.ApprovalRequestID)
	suite.Equal(pending.RequestID, *result.ApprovalRequestID)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "Begin", mock.Anything)
}

func (suite *PostingServiceTestSuite) TestRequestPosting_RuleMatched_SubmitsForApproval() {
	ctx := context.Background()
	doc := suite.document
	rule := &domain.ApprovalRule{RuleID: uuid.NewString(), DocumentType: domain.DocInvoice, Priority: 10}
	request := &domain.ApprovalRequest{RequestID: uuid.NewString(), Status: domain.ApprovalPending, CurrentStep: 1}

	suite.expectAuthorized()
	suite.mockAdapter.On("Load", ctx, suite.companyID, doc.DocumentID).Return(&doc, nil).Once()
	suite.mockPeriodSvc.On("IsPostable", ctx, suite.companyID, doc.DocumentDate).Return(true, nil).Once()
	suite.mockApprovalSvc.On("MatchRule", ctx, suite.companyID, domain.DocInvoice, doc.Amount).Return(rule, nil).Once()
	suite.expectTx()
	suite.mockApprovalSvc.On("SubmitInTx", ctx, mock.Anything, mock.AnythingOfType("domain.ApprovalRequest")).Return(request, nil).Once()
	suite.mockAdapter.On("ApplyStatusInTx", ctx, mock.Anything, suite.companyID, doc.DocumentID, domain.DocPendingApproval, suite.actorID).Return(nil).Once()
	suite.mockAuditSvc.On("AppendInTx", ctx, mock.Anything, mock.MatchedBy(func(input domain.AuditInput) bool {
		return input.Action == domain.AuditActionSubmit && input.TargetID == request.RequestID
	})).Return(&domain.AuditLogEntry{}, nil).Once()

	result, err := suite.service.RequestPosting(ctx, suite.companyID, domain.DocInvoice, doc.DocumentID, suite.actorID)

	suite.Require().NoError(err)
	suite.Equal(portssvc.PostingPendingApproval, result.Status)
	suite.Nil(result.JournalEntryID)
	// The ledger is untouched while the document sits in approval.
	suite.mockLedgerSvc.AssertNotCalled(suite.T(), "PostInTx", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.mockApprovalSvc.AssertExpectations(suite.T())
	suite.mockAuditSvc.AssertExpectations(suite.T())
}

func (suite *PostingServiceTestSuite) TestRequestPosting_NoRule_AutoPosts() {
	ctx := context.Background()
	doc := suite.document
	entry := &domain.JournalEntry{EntryID: uuid.NewString(), CompanyID: suite.companyID, Amount: doc.Amount}
	lines := []domain.JournalLine{
		{AccountID: uuid.NewString(), Amount: doc.Amount, Side: domain.Debit},
		{AccountID: uuid.NewString(), Amount: doc.Amount, Side: domain.Credit},
	}

	suite.expectAuthorized()
	suite.mockAdapter.On("Load", ctx, suite.companyID, doc.DocumentID).Return(&doc, nil).Once()
	suite.mockPeriodSvc.On("IsPostable", ctx, suite.companyID, doc.DocumentDate).Return(true, nil).Twice()
	suite.mockApprovalSvc.On("MatchRule", ctx, suite.companyID, domain.DocInvoice, doc.Amount).Return(nil, nil).Once()
	suite.expectTx()
	suite.mockAdapter.On("LoadForUpdate", ctx, mock.Anything, suite.companyID, doc.DocumentID).Return(&doc, nil).Once()
	suite.mockAdapter.On("BuildLines", ctx, &doc).Return(lines, nil).Once()
	suite.mockLedgerSvc.On("PostInTx", ctx, mock.Anything, suite.companyID, mock.MatchedBy(func(input portssvc.PostInput) bool {
		return input.SourceType == string(domain.DocInvoice) && input.SourceID == doc.DocumentID
	}), suite.actorID).Return(entry, nil).Once()
	suite.mockAdapter.On("ApplyStatusInTx", ctx, mock.Anything, suite.companyID, doc.DocumentID, domain.DocPosted, suite.actorID).Return(nil).Once()
	suite.mockAuditSvc.On("AppendInTx", ctx, mock.Anything, mock.MatchedBy(func(input domain.AuditInput) bool {
		return input.Action == domain.AuditActionPost && input.TargetID == entry.EntryID
	})).Return(&domain.AuditLogEntry{}, nil).Once()

	result, err := suite.service.RequestPosting(ctx, suite.companyID, domain.DocInvoice, doc.DocumentID, suite.actorID)

	suite.Require().NoError(err)
	suite.Equal(portssvc.PostingPosted, result.Status)
	suite.Require().NotNil(result.JournalEntryID)
	suite.Equal(entry.EntryID, *result.JournalEntryID)
	suite.mockLedgerSvc.AssertExpectations(suite.T())
}

func (suite *PostingServiceTestSuite) TestRequestPosting_PeriodClosesBeforePostingTx() {
	ctx := context.Background()
	doc := suite.document

	suite.expectAuthorized()
	suite.mockAdapter.On("Load", ctx, suite.companyID, doc.DocumentID).Return(&doc, nil).Once()
	// Open at the pre-check, closed again inside the posting transaction.
	suite.mockPeriodSvc.On("IsPostable", ctx, suite.companyID, doc.DocumentDate).Return(true, nil).Once()
	suite.mockPeriodSvc.On("IsPostable", ctx, suite.companyID, doc.DocumentDate).Return(false, nil).Once()
	suite.mockApprovalSvc.On("MatchRule", ctx, suite.companyID, domain.DocInvoice, doc.Amount).Return(nil, nil).Once()
	suite.mockJournalRepo.On("Begin", mock.Anything).Return(nil, nil).Once()
	suite.mockJournalRepo.On("Rollback", mock.Anything, mock.Anything).Return(nil).Once()
	suite.mockAdapter.On("LoadForUpdate", ctx, mock.Anything, suite.companyID, doc.DocumentID).Return(&doc, nil).Once()

	_, err := suite.service.RequestPosting(ctx, suite.companyID, domain.DocInvoice, doc.DocumentID, suite.actorID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrPeriodLocked)
	suite.mockLedgerSvc.AssertNotCalled(suite.T(), "PostInTx", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "Commit", mock.Anything, mock.Anything)
}

func (suite *PostingServiceTestSuite) TestApproveDocument_IntermediateStepStaysPending() {
	ctx := context.Background()
	requestID := uuid.NewString()
	request := &domain.ApprovalRequest{
		RequestID:    requestID,
		DocumentType: domain.DocInvoice,
		DocumentID:   suite.document.DocumentID,
		Status:       domain.ApprovalPending,
		CurrentStep:  2,
	}

	suite.mockApprovalSvc.On("Approve", ctx, suite.companyID, requestID, suite.actorID, "ok").Return(request, nil).Once()
	suite.mockAuditSvc.On("Append", ctx, mock.MatchedBy(func(input domain.AuditInput) bool {
		return input.Action == domain.AuditActionApprove && input.TargetID == requestID
	})).Return(&domain.AuditLogEntry{}, nil).Once()

	result, err := suite.service.ApproveDocument(ctx, suite.companyID, requestID, suite.actorID, "ok")

	suite.Require().NoError(err)
	suite.Equal(portssvc.PostingPendingApproval, result.Status)
	suite.mockAdapter.AssertNotCalled(suite.T(), "Load", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PostingServiceTestSuite) TestApproveDocument_FinalApprovalPosts() {
	ctx := context.Background()
	doc := suite.document
	doc.Status = domain.DocPendingApproval
	requestID := uuid.NewString()
	request := &domain.ApprovalRequest{
		RequestID:    requestID,
		DocumentType: domain.DocInvoice,
		DocumentID:   doc.DocumentID,
		Status:       domain.ApprovalApproved,
		CurrentStep:  2,
	}
	entry := &domain.JournalEntry{EntryID: uuid.NewString(), CompanyID: suite.companyID, Amount: doc.Amount}
	lines := []domain.JournalLine{
		{AccountID: uuid.NewString(), Amount: doc.Amount, Side: domain.Debit},
		{AccountID: uuid.NewString(), Amount: doc.Amount, Side: domain.Credit},
	}

	suite.mockApprovalSvc.On("Approve", ctx, suite.companyID, requestID, suite.actorID, "final").Return(request, nil).Once()
	suite.mockAuditSvc.On("Append", ctx, mock.AnythingOfType("domain.AuditInput")).Return(&domain.AuditLogEntry{}, nil).Once()
	suite.mockAdapter.On("Load", ctx, suite.companyID, doc.DocumentID).Return(&doc, nil).Once()
	// One transaction flips the document to APPROVED, a second one posts it.
	suite.mockJournalRepo.On("Begin", mock.Anything).Return(nil, nil).Twice()
	suite.mockJournalRepo.On("Rollback", mock.Anything, mock.Anything).Return(nil).Twice()
	suite.mockJournalRepo.On("Commit", mock.Anything, mock.Anything).Return(nil).Twice()
	suite.mockAdapter.On("ApplyStatusInTx", ctx, mock.Anything, suite.companyID, doc.DocumentID, domain.DocApproved, suite.actorID).Return(nil).Once()
	suite.mockAdapter.On("LoadForUpdate", ctx, mock.Anything, suite.companyID, doc.DocumentID).Return(&doc, nil).Once()
	suite.mockPeriodSvc.On("IsPostable", ctx, suite.companyID, doc.DocumentDate).Return(true, nil).Once()
	suite.mockAdapter.On("BuildLines", ctx, &doc).Return(lines, nil).Once()
	suite.mockLedgerSvc.On("PostInTx", ctx, mock.Anything, suite.companyID, mock.AnythingOfType("services.PostInput"), suite.actorID).Return(entry, nil).Once()
	suite.mockAdapter.On("ApplyStatusInTx", ctx, mock.Anything, suite.companyID, doc.DocumentID, domain.DocPosted, suite.actorID).Return(nil).Once()
	suite.mockAuditSvc.On("AppendInTx", ctx, mock.Anything, mock.MatchedBy(func(input domain.AuditInput) bool {
		return input.Action == domain.AuditActionPost
	})).Return(&domain.AuditLogEntry{}, nil).Once()

	result, err := suite.service.ApproveDocument(ctx, suite.companyID, requestID, suite.actorID, "final")

	suite.Require().NoError(err)
	suite.Equal(portssvc.PostingPosted, result.Status)
	suite.Require().NotNil(result.JournalEntryID)
	suite.Equal(entry.EntryID, *result.JournalEntryID)
}

func (suite *PostingServiceTestSuite) TestApproveDocument_PostFailureLeavesDocumentApproved() {
	ctx := context.Background()
	doc := suite.document
	doc.Status = domain.DocPendingApproval
	requestID := uuid.NewString()
	request := &domain.ApprovalRequest{
		RequestID:    requestID,
		DocumentType: domain.DocInvoice,
		DocumentID:   doc.DocumentID,
		Status:       domain.ApprovalApproved,
		CurrentStep:  1,
	}

	suite.mockApprovalSvc.On("Approve", ctx, suite.companyID, requestID, suite.actorID, "final").Return(request, nil).Once()
	suite.mockAuditSvc.On("Append", ctx, mock.AnythingOfType("domain.AuditInput")).Return(&domain.AuditLogEntry{}, nil).Once()
	suite.mockAdapter.On("Load", ctx, suite.companyID, doc.DocumentID).Return(&doc, nil).Once()

	// The approved flip commits on its own transaction.
	suite.mockJournalRepo.On("Begin", mock.Anything).Return(nil, nil).Twice()
	suite.mockJournalRepo.On("Rollback", mock.Anything, mock.Anything).Return(nil).Twice()
	suite.mockJournalRepo.On("Commit", mock.Anything, mock.Anything).Return(nil).Once()
	suite.mockAdapter.On("ApplyStatusInTx", ctx, mock.Anything, suite.companyID, doc.DocumentID, domain.DocApproved, suite.actorID).Return(nil).Once()

	// The posting transaction then fails: the period closed during approval.
	suite.mockAdapter.On("LoadForUpdate", ctx, mock.Anything, suite.companyID, doc.DocumentID).Return(&doc, nil).Once()
	suite.mockPeriodSvc.On("IsPostable", ctx, suite.companyID, doc.DocumentDate).Return(false, nil).Once()

	_, err := suite.service.ApproveDocument(ctx, suite.companyID, requestID, suite.actorID, "final")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrPeriodLocked)
	// The document was flipped to APPROVED before the posting attempt, so a
	// later RequestPosting can finish the job once the period reopens.
	suite.Equal(domain.DocApproved, doc.Status)
	suite.mockAdapter.AssertExpectations(suite.T())
	suite.mockLedgerSvc.AssertNotCalled(suite.T(), "PostInTx", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PostingServiceTestSuite) TestRequestPosting_ApprovedDocumentPostsWithoutRuleMatch() {
	ctx := context.Background()
	doc := suite.document
	doc.Status = domain.DocApproved
	entry := &domain.JournalEntry{EntryID: uuid.NewString(), CompanyID: suite.companyID, Amount: doc.Amount}
	lines := []domain.JournalLine{
		{AccountID: uuid.NewString(), Amount: doc.Amount, Side: domain.Debit},
		{AccountID: uuid.NewString(), Amount: doc.Amount, Side: domain.Credit},
	}

	suite.expectAuthorized()
	suite.mockAdapter.On("Load", ctx, suite.companyID, doc.DocumentID).Return(&doc, nil).Once()
	suite.mockPeriodSvc.On("IsPostable", ctx, suite.companyID, doc.DocumentDate).Return(true, nil).Twice()
	suite.expectTx()
	suite.mockAdapter.On("LoadForUpdate", ctx, mock.Anything, suite.companyID, doc.DocumentID).Return(&doc, nil).Once()
	suite.mockAdapter.On("BuildLines", ctx, &doc).Return(lines, nil).Once()
	suite.mockLedgerSvc.On("PostInTx", ctx, mock.Anything, suite.companyID, mock.AnythingOfType("services.PostInput"), suite.actorID).Return(entry, nil).Once()
	suite.mockAdapter.On("ApplyStatusInTx", ctx, mock.Anything, suite.companyID, doc.DocumentID, domain.DocPosted, suite.actorID).Return(nil).Once()
	suite.mockAuditSvc.On("AppendInTx", ctx, mock.Anything, mock.AnythingOfType("domain.AuditInput")).Return(&domain.AuditLogEntry{}, nil).Once()

	result, err := suite.service.RequestPosting(ctx, suite.companyID, domain.DocInvoice, doc.DocumentID, suite.actorID)

	suite.Require().NoError(err)
	suite.Equal(portssvc.PostingPosted, result.Status)
	// An already-approved document does not consult the rules again.
	suite.mockApprovalSvc.AssertNotCalled(suite.T(), "MatchRule", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PostingServiceTestSuite) TestRejectDocument() {
	ctx := context.Background()
	requestID := uuid.NewString()
	request := &domain.ApprovalRequest{
		RequestID:    requestID,
		DocumentType: domain.DocInvoice,
		DocumentID:   suite.document.DocumentID,
		Status:       domain.ApprovalRejected,
	}

	suite.mockApprovalSvc.On("Reject", ctx, suite.companyID, requestID, suite.actorID, "no").Return(request, nil).Once()
	suite.expectTx()
	suite.mockAdapter.On("ApplyStatusInTx", ctx, mock.Anything, suite.companyID, suite.document.DocumentID, domain.DocRejected, suite.actorID).Return(nil).Once()
	suite.mockAuditSvc.On("AppendInTx", ctx, mock.Anything, mock.MatchedBy(func(input domain.AuditInput) bool {
		return input.Action == domain.AuditActionReject
	})).Return(&domain.AuditLogEntry{}, nil).Once()

	err := suite.service.RejectDocument(ctx, suite.companyID, requestID, suite.actorID, "no")

	suite.Require().NoError(err)
	suite.mockLedgerSvc.AssertNotCalled(suite.T(), "PostInTx", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.mockAdapter.AssertExpectations(suite.T())
}

func (suite *PostingServiceTestSuite) TestCancelPosting() {
	ctx := context.Background()
	doc := suite.document
	doc.Status = domain.DocPosted
	entry := &domain.JournalEntry{EntryID: uuid.NewString(), CompanyID: suite.companyID, Status: domain.EntryPosted}
	reversal := &domain.JournalEntry{EntryID: uuid.NewString(), CompanyID: suite.companyID, SourceType: domain.SourceReversal}

	suite.expectAuthorized()
	suite.expectTx()
	suite.mockAdapter.On("LoadForUpdate", ctx, mock.Anything, suite.companyID, doc.DocumentID).Return(&doc, nil).Once()
	suite.mockJournalRepo.On("FindEntryBySource", ctx, suite.companyID, string(domain.DocInvoice), doc.DocumentID).Return(entry, nil).Once()
	suite.mockLedgerSvc.On("ReverseInTx", ctx, mock.Anything, suite.companyID, entry.EntryID, "ordered twice", suite.actorID).Return(reversal, nil).Once()
	suite.mockAdapter.On("ApplyStatusInTx", ctx, mock.Anything, suite.companyID, doc.DocumentID, domain.DocCancelled, suite.actorID).Return(nil).Once()
	suite.mockAuditSvc.On("AppendInTx", ctx, mock.Anything, mock.MatchedBy(func(input domain.AuditInput) bool {
		return input.Action == domain.AuditActionReverse && input.TargetID == entry.EntryID
	})).Return(&domain.AuditLogEntry{}, nil).Once()

	result, err := suite.service.CancelPosting(ctx, suite.companyID, domain.DocInvoice, doc.DocumentID, "ordered twice", suite.actorID)

	suite.Require().NoError(err)
	suite.Equal(reversal.EntryID, result.EntryID)
}

func (suite *PostingServiceTestSuite) TestCancelPosting_NotPosted() {
	ctx := context.Background()
	doc := suite.document // still DRAFT

	suite.expectAuthorized()
	suite.mockJournalRepo.On("Begin", mock.Anything).Return(nil, nil).Once()
	suite.mockJournalRepo.On("Rollback", mock.Anything, mock.Anything).Return(nil).Once()
	suite.mockAdapter.On("LoadForUpdate", ctx, mock.Anything, suite.companyID, doc.DocumentID).Return(&doc, nil).Once()

	_, err := suite.service.CancelPosting(ctx, suite.companyID, domain.DocInvoice, doc.DocumentID, "nope", suite.actorID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockLedgerSvc.AssertNotCalled(suite.T(), "ReverseInTx", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PostingServiceTestSuite) TestBestEffortAudit_FailureAlertsButPosts() {
	ctx := context.Background()
	suite.buildService(false)
	doc := suite.document
	entry := &domain.JournalEntry{EntryID: uuid.NewString(), CompanyID: suite.companyID, Amount: doc.Amount}
	lines := []domain.JournalLine{
		{AccountID: uuid.NewString(), Amount: doc.Amount, Side: domain.Debit},
		{AccountID: uuid.NewString(), Amount: doc.Amount, Side: domain.Credit},
	}

	suite.expectAuthorized()
	suite.mockAdapter.On("Load", ctx, suite.companyID, doc.DocumentID).Return(&doc, nil).Once()
	suite.mockPeriodSvc.On("IsPostable", ctx, suite.companyID, doc.DocumentDate).Return(true, nil).Twice()
	suite.mockApprovalSvc.On("MatchRule", ctx, suite.companyID, domain.DocInvoice, doc.Amount).Return(nil, nil).Once()
	suite.expectTx()
	suite.mockAdapter.On("LoadForUpdate", ctx, mock.Anything, suite.companyID, doc.DocumentID).Return(&doc, nil).Once()
	suite.mockAdapter.On("BuildLines", ctx, &doc).Return(lines, nil).Once()
	suite.mockLedgerSvc.On("PostInTx", ctx, mock.Anything, suite.companyID, mock.AnythingOfType("services.PostInput"), suite.actorID).Return(entry, nil).Once()
	suite.mockAdapter.On("ApplyStatusInTx", ctx, mock.Anything, suite.companyID, doc.DocumentID, domain.DocPosted, suite.actorID).Return(nil).Once()

	// Best-effort mode appends after commit; its failure alerts instead of failing.
	auditErr := apperrors.ErrInternal
	suite.mockAuditSvc.On("Append", ctx, mock.AnythingOfType("domain.AuditInput")).Return(nil, auditErr).Once()
	suite.mockNotifier.On("NotifyAuditFailure", ctx, suite.companyID, domain.AuditActionPost, auditErr).Once()

	result, err := suite.service.RequestPosting(ctx, suite.companyID, domain.DocInvoice, doc.DocumentID, suite.actorID)

	suite.Require().NoError(err)
	suite.Equal(portssvc.PostingPosted, result.Status)
	suite.mockAuditSvc.AssertNotCalled(suite.T(), "AppendInTx", mock.Anything, mock.Anything, mock.Anything)
	suite.mockNotifier.AssertExpectations(suite.T())
}

func TestPostingService(t *testing.T) {
	suite.Run(t, new(PostingServiceTestSuite))
}

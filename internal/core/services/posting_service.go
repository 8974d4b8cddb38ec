package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/finledger/fincore/internal/apperrors"
	"github.com/finledger/fincore/internal/core/domain"
	portsrepo "github.com/finledger/fincore/internal/core/ports/repositories"
	portssvc "github.com/finledger/fincore/internal/core/ports/services"
	"github.com/finledger/fincore/internal/middleware"
)

const (
	auditTargetEntry    = "JOURNAL_ENTRY"
	auditTargetDocument = "SOURCE_DOCUMENT"
	auditTargetRequest  = "APPROVAL_REQUEST"
)

// postingService coordinates period lock, approval gating, ledger posting and
// audit recording. It owns the transaction; the collaborating services only
// participate through their ...InTx variants.
type postingService struct {
	adapters    portssvc.AdapterRegistry
	companySvc  portssvc.CompanySvcFacade
	periodSvc   portssvc.PeriodReaderSvc
	approvalSvc portssvc.ApprovalSvcFacade
	ledgerSvc   portssvc.LedgerSvcFacade
	auditSvc    portssvc.AuditSvcFacade
	journalRepo portsrepo.JournalReader
	txManager   portsrepo.TransactionManager
	notifier    portssvc.AlertNotifier
	auditStrict bool
}

// NewPostingService creates the posting orchestrator. With auditStrict the
// audit append joins the business transaction; otherwise it runs best-effort
// after commit and failures go to the alert notifier.
func NewPostingService(
	adapters portssvc.AdapterRegistry,
	companySvc portssvc.CompanySvcFacade,
	periodSvc portssvc.PeriodReaderSvc,
	approvalSvc portssvc.ApprovalSvcFacade,
	ledgerSvc portssvc.LedgerSvcFacade,
	auditSvc portssvc.AuditSvcFacade,
	journalRepo portsrepo.JournalReader,
	txManager portsrepo.TransactionManager,
	notifier portssvc.AlertNotifier,
	auditStrict bool,
) portssvc.PostingOrchestratorSvc {
	return &postingService{
		adapters:    adapters,
		companySvc:  companySvc,
		periodSvc:   periodSvc,
		approvalSvc: approvalSvc,
		ledgerSvc:   ledgerSvc,
		auditSvc:    auditSvc,
		journalRepo: journalRepo,
		txManager:   txManager,
		notifier:    notifier,
		auditStrict: auditStrict,
	}
}

var _ portssvc.PostingOrchestratorSvc = (*postingService)(nil)

// recordAudit appends an audit entry according to the configured mode. In
// strict mode it joins tx and an error fails the caller's transaction. In
// best-effort mode it is deferred until after commit via the returned func;
// failures are logged and alerted but never propagate.
func (s *postingService) recordAudit(ctx context.Context, tx pgx.Tx, input domain.AuditInput) (func(), error) {
	if s.auditStrict {
		_, err := s.auditSvc.AppendInTx(ctx, tx, input)
		return func() {}, err
	}

	return func() {
		if _, err := s.auditSvc.Append(ctx, input); err != nil {
			logger := middleware.GetLoggerFromCtx(ctx)
			logger.Error("Best-effort audit append failed",
				slog.String("company_id", input.CompanyID),
				slog.String("action", input.Action),
				slog.String("target_id", input.TargetID),
				slog.String("error", err.Error()))
			s.notifier.NotifyAuditFailure(ctx, input.CompanyID, input.Action, err)
		}
	}, nil
}

// RequestPosting runs the posting pipeline for a document.
func (s *postingService) RequestPosting(ctx context.Context, companyID string, docType domain.DocumentType, documentID, actorID string) (*portssvc.PostingResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.companySvc.AuthorizeUserAction(ctx, actorID, companyID, domain.RoleMember); err != nil {
		return nil, err
	}

	adapter := s.adapters.Get(docType)
	if adapter == nil {
		return nil, fmt.Errorf("%w: document type %s is not postable", apperrors.ErrValidation, docType)
	}

	doc, err := adapter.Load(ctx, companyID, documentID)
	if err != nil {
		return nil, err
	}
	switch doc.Status {
	case domain.DocPosted:
		return nil, fmt.Errorf("%w: document %s", apperrors.ErrAlreadyPosted, documentID)
	case domain.DocRejected, domain.DocCancelled:
		return nil, fmt.Errorf("%w: document %s is %s", apperrors.ErrConflict, documentID, doc.Status)
	case domain.DocPendingApproval:
		// Idempotent resubmit: point the caller at the open request.
		pending, err := s.approvalSvc.GetPendingByDocument(ctx, companyID, docType, documentID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: document %s awaits approval but its request was not found", apperrors.ErrConflict, documentID)
			}
			return nil, err
		}
		return &portssvc.PostingResult{Status: portssvc.PostingPendingApproval, ApprovalRequestID: &pending.RequestID}, nil
	}

	// Period lock is checked before any write.
	postable, err := s.periodSvc.IsPostable(ctx, companyID, doc.DocumentDate)
	if err != nil {
		return nil, err
	}
	if !postable {
		return nil, fmt.Errorf("%w: document date %s", apperrors.ErrPeriodLocked, doc.DocumentDate.Format("2006-01-02"))
	}

	if doc.Status != domain.DocApproved {
		rule, err := s.approvalSvc.MatchRule(ctx, companyID, docType, doc.Amount)
		if err != nil {
			return nil, err
		}
		if rule != nil {
			return s.submitForApproval(ctx, adapter, doc, rule, actorID)
		}
		// No rule configured for this type and amount: the document posts
		// without review. Deliberate default-allow, surfaced on every hit.
		logger.Warn("No approval rule matched, auto-approving posting",
			slog.String("company_id", companyID),
			slog.String("document_type", string(docType)),
			slog.String("document_id", documentID),
			slog.String("amount", doc.Amount.String()))
	}

	return s.postDocument(ctx, adapter, doc, actorID)
}

// submitForApproval creates the PENDING request and flips the document, one
// transaction. A concurrent duplicate submit loses on the open-request index.
func (s *postingService) submitForApproval(ctx context.Context, adapter portssvc.DocumentAdapter, doc *domain.SourceDocument, rule *domain.ApprovalRule, actorID string) (*portssvc.PostingResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	tx, err := s.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer s.txManager.Rollback(ctx, tx)

	request, err := s.approvalSvc.SubmitInTx(ctx, tx, domain.ApprovalRequest{
		CompanyID:      doc.CompanyID,
		DocumentType:   doc.DocumentType,
		DocumentID:     doc.DocumentID,
		DocumentNumber: doc.Number,
		RuleID:         rule.RuleID,
		RequestedBy:    actorID,
		RequestedAt:    time.Now(),
	})
	if err != nil {
		return nil, err
	}

	if err := adapter.ApplyStatusInTx(ctx, tx, doc.CompanyID, doc.DocumentID, domain.DocPendingApproval, actorID); err != nil {
		return nil, err
	}

	flush, err := s.recordAudit(ctx, tx, domain.AuditInput{
		CompanyID:  doc.CompanyID,
		ActorID:    actorID,
		TargetType: auditTargetRequest,
		TargetID:   request.RequestID,
		Action:     domain.AuditActionSubmit,
		AfterValue: string(domain.ApprovalPending),
	})
	if err != nil {
		return nil, err
	}

	if err := s.txManager.Commit(ctx, tx); err != nil {
		return nil, err
	}
	flush()

	logger.Info("Document submitted for approval",
		slog.String("document_id", doc.DocumentID),
		slog.String("request_id", request.RequestID),
		slog.String("rule_id", rule.RuleID))
	return &portssvc.PostingResult{
		Status:            portssvc.PostingPendingApproval,
		ApprovalRequestID: &request.RequestID,
	}, nil
}

// postDocument runs the atomic posting unit: lock the document, re-check the
// period, build lines, post the entry, flip the document, record the audit.
func (s *postingService) postDocument(ctx context.Context, adapter portssvc.DocumentAdapter, doc *domain.SourceDocument, actorID string) (*portssvc.PostingResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	tx, err := s.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer s.txManager.Rollback(ctx, tx)

	locked, err := adapter.LoadForUpdate(ctx, tx, doc.CompanyID, doc.DocumentID)
	if err != nil {
		return nil, err
	}
	if locked.Status == domain.DocPosted {
		return nil, fmt.Errorf("%w: document %s", apperrors.ErrAlreadyPosted, doc.DocumentID)
	}

	// The period may have closed while the document sat in approval.
	postable, err := s.periodSvc.IsPostable(ctx, locked.CompanyID, locked.DocumentDate)
	if err != nil {
		return nil, err
	}
	if !postable {
		return nil, fmt.Errorf("%w: document date %s", apperrors.ErrPeriodLocked, locked.DocumentDate.Format("2006-01-02"))
	}

	lines, err := adapter.BuildLines(ctx, locked)
	if err != nil {
		return nil, err
	}

	entry, err := s.ledgerSvc.PostInTx(ctx, tx, locked.CompanyID, portssvc.PostInput{
		SourceType:  string(locked.DocumentType),
		SourceID:    locked.DocumentID,
		PostingDate: locked.DocumentDate,
		Description: locked.Description,
		Lines:       lines,
	}, actorID)
	if err != nil {
		return nil, err
	}

	if err := adapter.ApplyStatusInTx(ctx, tx, locked.CompanyID, locked.DocumentID, domain.DocPosted, actorID); err != nil {
		return nil, err
	}

	flush, err := s.recordAudit(ctx, tx, domain.AuditInput{
		CompanyID:   locked.CompanyID,
		ActorID:     actorID,
		TargetType:  auditTargetEntry,
		TargetID:    entry.EntryID,
		Action:      domain.AuditActionPost,
		BeforeValue: string(locked.Status),
		AfterValue:  string(domain.DocPosted),
	})
	if err != nil {
		return nil, err
	}

	if err := s.txManager.Commit(ctx, tx); err != nil {
		return nil, err
	}
	flush()

	logger.Info("Document posted",
		slog.String("document_id", locked.DocumentID),
		slog.String("entry_id", entry.EntryID),
		slog.String("amount", entry.Amount.String()))
	return &portssvc.PostingResult{
		Status:         portssvc.PostingPosted,
		JournalEntryID: &entry.EntryID,
	}, nil
}

// ApproveDocument records an approval decision; the final approval continues
// straight into posting.
func (s *postingService) ApproveDocument(ctx context.Context, companyID, requestID, actorID, comment string) (*portssvc.PostingResult, error) {
	request, err := s.approvalSvc.Approve(ctx, companyID, requestID, actorID, comment)
	if err != nil {
		return nil, err
	}

	if _, err := s.auditSvc.Append(ctx, domain.AuditInput{
		CompanyID:  companyID,
		ActorID:    actorID,
		TargetType: auditTargetRequest,
		TargetID:   requestID,
		Action:     domain.AuditActionApprove,
		AfterValue: string(request.Status),
	}); err != nil {
		logger := middleware.GetLoggerFromCtx(ctx)
		logger.Error("Failed to audit approval decision", slog.String("request_id", requestID), slog.String("error", err.Error()))
		s.notifier.NotifyAuditFailure(ctx, companyID, domain.AuditActionApprove, err)
	}

	if request.Status != domain.ApprovalApproved {
		return &portssvc.PostingResult{
			Status:            portssvc.PostingPendingApproval,
			ApprovalRequestID: &request.RequestID,
		}, nil
	}

	adapter := s.adapters.Get(request.DocumentType)
	if adapter == nil {
		return nil, fmt.Errorf("%w: document type %s is not postable", apperrors.ErrValidation, request.DocumentType)
	}
	doc, err := adapter.Load(ctx, companyID, request.DocumentID)
	if err != nil {
		return nil, err
	}

	// The approved status is persisted on its own transaction before posting
	// begins. If the posting transaction fails, for instance because the
	// period closed while the document sat in approval, the document stays
	// APPROVED and a later RequestPosting resumes straight into posting
	// instead of wedging against the now-decided request.
	if doc.Status != domain.DocApproved {
		if err := s.markApproved(ctx, adapter, companyID, request.DocumentID, actorID); err != nil {
			return nil, err
		}
		doc.Status = domain.DocApproved
	}

	return s.postDocument(ctx, adapter, doc, actorID)
}

func (s *postingService) markApproved(ctx context.Context, adapter portssvc.DocumentAdapter, companyID, documentID, actorID string) error {
	tx, err := s.txManager.Begin(ctx)
	if err != nil {
		return err
	}
	defer s.txManager.Rollback(ctx, tx)

	if err := adapter.ApplyStatusInTx(ctx, tx, companyID, documentID, domain.DocApproved, actorID); err != nil {
		return err
	}
	return s.txManager.Commit(ctx, tx)
}

// RejectDocument terminally rejects the request and its document.
func (s *postingService) RejectDocument(ctx context.Context, companyID, requestID, actorID, comment string) error {
	request, err := s.approvalSvc.Reject(ctx, companyID, requestID, actorID, comment)
	if err != nil {
		return err
	}

	adapter := s.adapters.Get(request.DocumentType)
	if adapter == nil {
		return fmt.Errorf("%w: document type %s is not postable", apperrors.ErrValidation, request.DocumentType)
	}

	tx, err := s.txManager.Begin(ctx)
	if err != nil {
		return err
	}
	defer s.txManager.Rollback(ctx, tx)

	if err := adapter.ApplyStatusInTx(ctx, tx, companyID, request.DocumentID, domain.DocRejected, actorID); err != nil {
		return err
	}

	flush, err := s.recordAudit(ctx, tx, domain.AuditInput{
		CompanyID:  companyID,
		ActorID:    actorID,
		TargetType: auditTargetRequest,
		TargetID:   requestID,
		Action:     domain.AuditActionReject,
		AfterValue: string(domain.ApprovalRejected),
	})
	if err != nil {
		return err
	}

	if err := s.txManager.Commit(ctx, tx); err != nil {
		return err
	}
	flush()
	return nil
}

// CancelPosting reverses the document's journal entry and marks the document
// cancelled, one transaction.
func (s *postingService) CancelPosting(ctx context.Context, companyID string, docType domain.DocumentType, documentID, reason, actorID string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.companySvc.AuthorizeUserAction(ctx, actorID, companyID, domain.RoleMember); err != nil {
		return nil, err
	}

	adapter := s.adapters.Get(docType)
	if adapter == nil {
		return nil, fmt.Errorf("%w: document type %s is not postable", apperrors.ErrValidation, docType)
	}

	tx, err := s.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer s.txManager.Rollback(ctx, tx)

	doc, err := adapter.LoadForUpdate(ctx, tx, companyID, documentID)
	if err != nil {
		return nil, err
	}
	if doc.Status != domain.DocPosted {
		return nil, fmt.Errorf("%w: document %s is %s, only posted documents can be cancelled", apperrors.ErrConflict, documentID, doc.Status)
	}

	entry, err := s.journalRepo.FindEntryBySource(ctx, companyID, string(docType), documentID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: no journal entry found for document %s", apperrors.ErrConflict, documentID)
		}
		return nil, err
	}

	reversal, err := s.ledgerSvc.ReverseInTx(ctx, tx, companyID, entry.EntryID, reason, actorID)
	if err != nil {
		return nil, err
	}

	if err := adapter.ApplyStatusInTx(ctx, tx, companyID, documentID, domain.DocCancelled, actorID); err != nil {
		return nil, err
	}

	flush, err := s.recordAudit(ctx, tx, domain.AuditInput{
		CompanyID:   companyID,
		ActorID:     actorID,
		TargetType:  auditTargetEntry,
		TargetID:    entry.EntryID,
		Action:      domain.AuditActionReverse,
		BeforeValue: string(domain.EntryPosted),
		AfterValue:  string(domain.EntryReversed),
	})
	if err != nil {
		return nil, err
	}

	if err := s.txManager.Commit(ctx, tx); err != nil {
		return nil, err
	}
	flush()

	logger.Info("Posting cancelled",
		slog.String("document_id", documentID),
		slog.String("reversal_entry_id", reversal.EntryID))
	return reversal, nil
}

package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/finledger/fincore/internal/apperrors"
	"github.com/finledger/fincore/internal/core/domain"
	portsrepo "github.com/finledger/fincore/internal/core/ports/repositories"
	portssvc "github.com/finledger/fincore/internal/core/ports/services"
	"github.com/finledger/fincore/internal/dto"
	"github.com/finledger/fincore/internal/middleware"
)

type approvalService struct {
	approvalRepo portsrepo.ApprovalRepositoryWithTx
	companySvc   portssvc.CompanySvcFacade
}

// NewApprovalService creates a new ApprovalService.
func NewApprovalService(approvalRepo portsrepo.ApprovalRepositoryWithTx, companySvc portssvc.CompanySvcFacade) portssvc.ApprovalSvcFacade {
	return &approvalService{
		approvalRepo: approvalRepo,
		companySvc:   companySvc,
	}
}

var _ portssvc.ApprovalSvcFacade = (*approvalService)(nil)

// CreateRule creates an approval rule with its steps. Step numbers are
// assigned from the request order.
func (s *approvalService) CreateRule(ctx context.Context, companyID string, req dto.CreateApprovalRuleRequest, creatorUserID string) (*domain.ApprovalRule, error) {
	if err := s.companySvc.AuthorizeUserAction(ctx, creatorUserID, companyID, domain.RoleAdmin); err != nil {
		return nil, err
	}

	if req.MinAmount != nil && req.MaxAmount != nil && req.MinAmount.GreaterThan(*req.MaxAmount) {
		return nil, fmt.Errorf("%w: minAmount exceeds maxAmount", apperrors.ErrValidation)
	}

	now := time.Now()
	rule := domain.ApprovalRule{
		RuleID:       uuid.NewString(),
		CompanyID:    companyID,
		DocumentType: req.DocumentType,
		MinAmount:    req.MinAmount,
		MaxAmount:    req.MaxAmount,
		Priority:     req.Priority,
		IsActive:     true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}
	rule.Steps = make([]domain.ApprovalStep, len(req.Steps))
	for i, step := range req.Steps {
		rule.Steps[i] = domain.ApprovalStep{
			RuleID:     rule.RuleID,
			StepNumber: i + 1,
			ApproverID: step.ApproverID,
		}
	}

	if err := s.approvalRepo.SaveRule(ctx, rule); err != nil {
		return nil, err
	}

	logger := middleware.GetLoggerFromCtx(ctx)
	logger.Info("Approval rule created", slog.String("rule_id", rule.RuleID), slog.String("document_type", string(rule.DocumentType)))
	return &rule, nil
}

// ListRules retrieves a company's rules ordered by priority.
func (s *approvalService) ListRules(ctx context.Context, companyID, requestingUserID string) ([]domain.ApprovalRule, error) {
	if err := s.companySvc.AuthorizeUserAction(ctx, requestingUserID, companyID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	return s.approvalRepo.ListRulesByCompany(ctx, companyID)
}

// MatchRule finds the applicable rule for a document, or nil when none matches.
func (s *approvalService) MatchRule(ctx context.Context, companyID string, docType domain.DocumentType, amount decimal.Decimal) (*domain.ApprovalRule, error) {
	rule, err := s.approvalRepo.FindMatchingRule(ctx, companyID, docType, amount)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return rule, nil
}

// SubmitInTx creates a PENDING request for a document within the caller's transaction.
func (s *approvalService) SubmitInTx(ctx context.Context, tx pgx.Tx, request domain.ApprovalRequest) (*domain.ApprovalRequest, error) {
	if request.RequestID == "" {
		request.RequestID = uuid.NewString()
	}
	request.Status = domain.ApprovalPending
	request.CurrentStep = 1
	if request.RequestedAt.IsZero() {
		request.RequestedAt = time.Now()
	}

	if err := s.approvalRepo.SaveRequestInTx(ctx, tx, request); err != nil {
		return nil, err
	}
	return &request, nil
}

// Approve records an approval for the request's current step. While earlier
// steps remain the request stays PENDING with the step advanced; the final
// step's approval makes it APPROVED.
func (s *approvalService) Approve(ctx context.Context, companyID, requestID, actorID, comment string) (*domain.ApprovalRequest, error) {
	return s.decide(ctx, companyID, requestID, actorID, comment, true)
}

// Reject terminally rejects the request from its current step.
func (s *approvalService) Reject(ctx context.Context, companyID, requestID, actorID, comment string) (*domain.ApprovalRequest, error) {
	return s.decide(ctx, companyID, requestID, actorID, comment, false)
}

func (s *approvalService) decide(ctx context.Context, companyID, requestID, actorID, comment string, approved bool) (*domain.ApprovalRequest, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	tx, err := s.approvalRepo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer s.approvalRepo.Rollback(ctx, tx)

	request, err := s.approvalRepo.FindRequestByIDForUpdate(ctx, tx, companyID, requestID)
	if err != nil {
		return nil, err
	}
	if request.Status != domain.ApprovalPending {
		return nil, fmt.Errorf("%w: request %s is %s", apperrors.ErrStaleRequest, requestID, request.Status)
	}

	rule, err := s.approvalRepo.FindRuleByID(ctx, companyID, request.RuleID)
	if err != nil {
		return nil, err
	}

	var currentApprover string
	for _, step := range rule.Steps {
		if step.StepNumber == request.CurrentStep {
			currentApprover = step.ApproverID
			break
		}
	}
	if currentApprover == "" {
		return nil, fmt.Errorf("%w: rule %s has no step %d", apperrors.ErrInternal, rule.RuleID, request.CurrentStep)
	}
	if currentApprover != actorID {
		return nil, fmt.Errorf("%w: step %d awaits approval from another user", apperrors.ErrForbidden, request.CurrentStep)
	}

	now := time.Now()
	decision := domain.ApprovalDecision{
		DecisionID: uuid.NewString(),
		RequestID:  requestID,
		StepNumber: request.CurrentStep,
		ActorID:    actorID,
		Approved:   approved,
		Comment:    comment,
		DecidedAt:  now,
	}

	newStatus := domain.ApprovalPending
	newStep := request.CurrentStep
	var decidedAt *time.Time

	switch {
	case !approved:
		newStatus = domain.ApprovalRejected
		decidedAt = &now
	case request.CurrentStep >= len(rule.Steps):
		newStatus = domain.ApprovalApproved
		decidedAt = &now
	default:
		newStep = request.CurrentStep + 1
	}

	if err := s.approvalRepo.RecordDecision(ctx, tx, decision, newStatus, newStep, decidedAt); err != nil {
		return nil, err
	}

	if err := s.approvalRepo.Commit(ctx, tx); err != nil {
		return nil, err
	}

	request.Status = newStatus
	request.CurrentStep = newStep
	request.DecidedAt = decidedAt
	request.Decisions = append(request.Decisions, decision)

	logger.Info("Approval decision recorded",
		slog.String("request_id", requestID),
		slog.Bool("approved", approved),
		slog.String("status", string(newStatus)),
		slog.Int("current_step", newStep))
	return request, nil
}

// GetRequest retrieves a request with its decisions.
func (s *approvalService) GetRequest(ctx context.Context, companyID, requestID, requestingUserID string) (*domain.ApprovalRequest, error) {
	if err := s.companySvc.AuthorizeUserAction(ctx, requestingUserID, companyID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	return s.approvalRepo.FindRequestByID(ctx, companyID, requestID)
}

// GetPendingByDocument retrieves the open request for a document.
func (s *approvalService) GetPendingByDocument(ctx context.Context, companyID string, docType domain.DocumentType, documentID string) (*domain.ApprovalRequest, error) {
	return s.approvalRepo.FindPendingRequestByDocument(ctx, companyID, docType, documentID)
}

// ListPending retrieves PENDING requests for a company.
func (s *approvalService) ListPending(ctx context.Context, companyID, requestingUserID string) ([]domain.ApprovalRequest, error) {
	if err := s.companySvc.AuthorizeUserAction(ctx, requestingUserID, companyID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	return s.approvalRepo.ListPendingRequests(ctx, companyID)
}

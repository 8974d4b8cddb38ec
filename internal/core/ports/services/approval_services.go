package services

import (
	"context"

	"github.com/finledger/fincore/internal/core/domain"
	"github.com/finledger/fincore/internal/dto"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// ApprovalRuleSvc defines rule configuration operations.
type ApprovalRuleSvc interface {
	// CreateRule creates an approval rule with its steps.
	CreateRule(ctx context.Context, companyID string, req dto.CreateApprovalRuleRequest, creatorUserID string) (*domain.ApprovalRule, error)

	// ListRules retrieves a company's rules ordered by priority.
	ListRules(ctx context.Context, companyID, requestingUserID string) ([]domain.ApprovalRule, error)

	// MatchRule finds the applicable rule for a document, or nil when none
	// matches (the orchestrator then auto-approves: default-allow).
	MatchRule(ctx context.Context, companyID string, docType domain.DocumentType, amount decimal.Decimal) (*domain.ApprovalRule, error)
}

// ApprovalRequestSvc defines routing request operations.
type ApprovalRequestSvc interface {
	// SubmitInTx creates a PENDING request for a document within the caller's
	// transaction. A second open request for the same document fails with ErrDuplicate.
	SubmitInTx(ctx context.Context, tx pgx.Tx, request domain.ApprovalRequest) (*domain.ApprovalRequest, error)

	// Approve records an approval for the request's current step. Returns the
	// resulting status: PENDING while steps remain, APPROVED at the final step.
	Approve(ctx context.Context, companyID, requestID, actorID, comment string) (*domain.ApprovalRequest, error)

	// Reject terminally rejects the request from its current step.
	Reject(ctx context.Context, companyID, requestID, actorID, comment string) (*domain.ApprovalRequest, error)

	// GetRequest retrieves a request with its decisions, verifying the
	// requesting user's company membership.
	GetRequest(ctx context.Context, companyID, requestID, requestingUserID string) (*domain.ApprovalRequest, error)

	// GetPendingByDocument retrieves the open request for a document, or ErrNotFound.
	GetPendingByDocument(ctx context.Context, companyID string, docType domain.DocumentType, documentID string) (*domain.ApprovalRequest, error)

	// ListPending retrieves PENDING requests for a company.
	ListPending(ctx context.Context, companyID, requestingUserID string) ([]domain.ApprovalRequest, error)
}

// ApprovalSvcFacade combines all approval-related service interfaces
type ApprovalSvcFacade interface {
	ApprovalRuleSvc
	ApprovalRequestSvc
}

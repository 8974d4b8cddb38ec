package repositories

import (
	"context"
	"time"

	"github.com/finledger/fincore/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// ApprovalRuleReader defines read operations for approval rule data
type ApprovalRuleReader interface {
	// FindMatchingRule retrieves the highest-priority active rule for the
	// document type whose amount band contains the amount, or ErrNotFound.
	FindMatchingRule(ctx context.Context, companyID string, docType domain.DocumentType, amount decimal.Decimal) (*domain.ApprovalRule, error)

	// FindRuleByID retrieves a rule with its steps.
	FindRuleByID(ctx context.Context, companyID, ruleID string) (*domain.ApprovalRule, error)

	// ListRulesByCompany retrieves all rules of a company ordered by priority.
	ListRulesByCompany(ctx context.Context, companyID string) ([]domain.ApprovalRule, error)
}

// ApprovalRuleWriter defines write operations for approval rule data
type ApprovalRuleWriter interface {
	// SaveRule inserts a rule and its steps atomically.
	SaveRule(ctx context.Context, rule domain.ApprovalRule) error
}

// ApprovalRequestReader defines read operations for approval request data
type ApprovalRequestReader interface {
	// FindRequestByID retrieves a request with its decisions.
	FindRequestByID(ctx context.Context, companyID, requestID string) (*domain.ApprovalRequest, error)

	// FindRequestByIDForUpdate retrieves the request row locked for update.
	// Must be called within a transaction.
	FindRequestByIDForUpdate(ctx context.Context, tx pgx.Tx, companyID, requestID string) (*domain.ApprovalRequest, error)

	// FindPendingRequestByDocument retrieves the open request for a document, or ErrNotFound.
	FindPendingRequestByDocument(ctx context.Context, companyID string, docType domain.DocumentType, documentID string) (*domain.ApprovalRequest, error)

	// ListPendingRequests retrieves PENDING requests for a company.
	ListPendingRequests(ctx context.Context, companyID string) ([]domain.ApprovalRequest, error)
}

// ApprovalRequestWriter defines write operations for approval request data
type ApprovalRequestWriter interface {
	// SaveRequest inserts a request. The unique open-request-per-document
	// constraint surfaces as ErrDuplicate.
	SaveRequest(ctx context.Context, request domain.ApprovalRequest) error

	// SaveRequestInTx is SaveRequest participating in a caller-owned transaction.
	SaveRequestInTx(ctx context.Context, tx pgx.Tx, request domain.ApprovalRequest) error

	// RecordDecision inserts a decision row and updates the request's step,
	// status and decision time within the caller's transaction.
	RecordDecision(ctx context.Context, tx pgx.Tx, decision domain.ApprovalDecision, newStatus domain.ApprovalStatus, newCurrentStep int, decidedAt *time.Time) error
}

// ApprovalRepositoryFacade combines all approval-related repository interfaces
type ApprovalRepositoryFacade interface {
	ApprovalRuleReader
	ApprovalRuleWriter
	ApprovalRequestReader
	ApprovalRequestWriter
}

// ApprovalRepositoryWithTx extends ApprovalRepositoryFacade with transaction capabilities
type ApprovalRepositoryWithTx interface {
	ApprovalRepositoryFacade
	TransactionManager
}

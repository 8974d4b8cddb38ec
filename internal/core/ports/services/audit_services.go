package services

import (
	"context"

	"github.com/finledger/fincore/internal/core/domain"
	"github.com/finledger/fincore/internal/dto"
	"github.com/jackc/pgx/v5"
)

// AuditRecorderSvc appends entries to a company's hash chain.
type AuditRecorderSvc interface {
	// Append records an action in its own transaction.
	Append(ctx context.Context, input domain.AuditInput) (*domain.AuditLogEntry, error)

	// AppendInTx records an action within the caller's transaction, so the
	// audit entry commits or rolls back with the business write.
	AppendInTx(ctx context.Context, tx pgx.Tx, input domain.AuditInput) (*domain.AuditLogEntry, error)
}

// AuditVerifierSvc walks and validates a company's chain.
type AuditVerifierSvc interface {
	// VerifyChain recomputes every hash and checks predecessor linkage.
	VerifyChain(ctx context.Context, companyID, requestingUserID string) (*domain.ChainVerification, error)
}

// AuditReaderSvc lists chain entries.
type AuditReaderSvc interface {
	// ListEntries retrieves a paginated view of the chain in sequence order.
	ListEntries(ctx context.Context, companyID, requestingUserID string, params dto.ListAuditEntriesParams) (*dto.ListAuditEntriesResponse, error)
}

// AuditSvcFacade combines all audit-related service interfaces
type AuditSvcFacade interface {
	AuditRecorderSvc
	AuditVerifierSvc
	AuditReaderSvc
}

// AlertNotifier is the operational-alerting collaborator. Best-effort audit
// failures are reported here so they never pass silently.
type AlertNotifier interface {
	// NotifyAuditFailure reports a failed audit append for the given company and action.
	NotifyAuditFailure(ctx context.Context, companyID, action string, err error)
}

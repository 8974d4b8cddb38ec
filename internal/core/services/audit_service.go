package services

import (
	"context"
	"log/slog"

	"github.com/jackc/pgx/v5"

	"github.com/finledger/fincore/internal/core/domain"
	portsrepo "github.com/finledger/fincore/internal/core/ports/repositories"
	portssvc "github.com/finledger/fincore/internal/core/ports/services"
	"github.com/finledger/fincore/internal/dto"
	"github.com/finledger/fincore/internal/middleware"
	"github.com/finledger/fincore/internal/utils/auditchain"
)

type auditService struct {
	auditRepo  portsrepo.AuditRepositoryWithTx
	companySvc portssvc.CompanySvcFacade
}

// NewAuditService creates a new AuditService.
func NewAuditService(auditRepo portsrepo.AuditRepositoryWithTx, companySvc portssvc.CompanySvcFacade) portssvc.AuditSvcFacade {
	return &auditService{
		auditRepo:  auditRepo,
		companySvc: companySvc,
	}
}

var _ portssvc.AuditSvcFacade = (*auditService)(nil)

// Append records an action in its own transaction.
func (s *auditService) Append(ctx context.Context, input domain.AuditInput) (*domain.AuditLogEntry, error) {
	return s.auditRepo.AppendEntry(ctx, input)
}

// AppendInTx records an action within the caller's transaction.
func (s *auditService) AppendInTx(ctx context.Context, tx pgx.Tx, input domain.AuditInput) (*domain.AuditLogEntry, error) {
	return s.auditRepo.AppendEntryInTx(ctx, tx, input)
}

// VerifyChain recomputes every hash in the company's chain and checks
// predecessor linkage. An invalid result is an operational alert, not a
// user-facing error: the call itself still succeeds.
func (s *auditService) VerifyChain(ctx context.Context, companyID, requestingUserID string) (*domain.ChainVerification, error) {
	if err := s.companySvc.AuthorizeUserAction(ctx, requestingUserID, companyID, domain.RoleAdmin); err != nil {
		return nil, err
	}

	entries, err := s.auditRepo.ListAllEntriesByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}

	result := auditchain.Verify(entries)
	if !result.IsValid {
		logger := middleware.GetLoggerFromCtx(ctx)
		logger.Error("Audit chain integrity violation detected",
			slog.String("company_id", companyID),
			slog.Int("total_entries", result.TotalEntries),
			slog.Int("invalid_count", len(result.InvalidSequences)),
			slog.Int64("first_invalid_sequence", result.InvalidSequences[0]))
	}
	return &result, nil
}

// ListEntries retrieves a paginated view of the chain in sequence order.
func (s *auditService) ListEntries(ctx context.Context, companyID, requestingUserID string, params dto.ListAuditEntriesParams) (*dto.ListAuditEntriesResponse, error) {
	if err := s.companySvc.AuthorizeUserAction(ctx, requestingUserID, companyID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	entries, nextToken, err := s.auditRepo.ListEntriesByCompany(ctx, companyID, params.Limit, params.NextToken)
	if err != nil {
		return nil, err
	}

	return &dto.ListAuditEntriesResponse{
		Entries:   dto.ToAuditLogEntryResponses(entries),
		NextToken: nextToken,
	}, nil
}

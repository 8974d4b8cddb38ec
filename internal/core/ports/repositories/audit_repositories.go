package repositories

import (
	"context"

	"github.com/finledger/fincore/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// AuditReader defines read operations for the audit chain. The chain is
// append-only: no update or delete operation exists on any interface.
type AuditReader interface {
	// ListEntriesByCompany retrieves audit entries in sequence order with
	// token-based pagination.
	ListEntriesByCompany(ctx context.Context, companyID string, limit int, nextToken *string) ([]domain.AuditLogEntry, *string, error)

	// ListAllEntriesByCompany retrieves the complete chain in sequence order,
	// used by chain verification.
	ListAllEntriesByCompany(ctx context.Context, companyID string) ([]domain.AuditLogEntry, error)
}

// AuditWriter defines the append operation for the audit chain.
type AuditWriter interface {
	// AppendEntry appends one entry within its own transaction, locking the
	// company's chain tail to serialize concurrent appenders.
	AppendEntry(ctx context.Context, input domain.AuditInput) (*domain.AuditLogEntry, error)

	// AppendEntryInTx is AppendEntry participating in a caller-owned transaction.
	AppendEntryInTx(ctx context.Context, tx pgx.Tx, input domain.AuditInput) (*domain.AuditLogEntry, error)
}

// AuditRepositoryFacade combines audit chain repository interfaces
type AuditRepositoryFacade interface {
	AuditReader
	AuditWriter
}

// AuditRepositoryWithTx extends AuditRepositoryFacade with transaction capabilities
type AuditRepositoryWithTx interface {
	AuditRepositoryFacade
	TransactionManager
}

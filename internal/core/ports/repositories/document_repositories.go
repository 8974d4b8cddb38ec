package repositories

import (
	"context"
	"time"

	"github.com/finledger/fincore/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// DocumentReader defines read operations for source document data
type DocumentReader interface {
	// FindDocumentByID retrieves a specific source document.
	FindDocumentByID(ctx context.Context, companyID string, docType domain.DocumentType, documentID string) (*domain.SourceDocument, error)

	// FindDocumentByIDForUpdate retrieves the document row locked for update.
	// Must be called within a transaction.
	FindDocumentByIDForUpdate(ctx context.Context, tx pgx.Tx, companyID string, docType domain.DocumentType, documentID string) (*domain.SourceDocument, error)

	// ListDocumentsByCompany retrieves documents of a company, newest first.
	ListDocumentsByCompany(ctx context.Context, companyID string, limit int, nextToken *string) ([]domain.SourceDocument, *string, error)
}

// DocumentWriter defines write operations for source document data
type DocumentWriter interface {
	// SaveDocument inserts a new source document.
	SaveDocument(ctx context.Context, doc domain.SourceDocument) error

	// UpdateDocumentStatusInTx transitions a document's status within the
	// caller's transaction.
	UpdateDocumentStatusInTx(ctx context.Context, tx pgx.Tx, companyID string, docType domain.DocumentType, documentID string, status domain.DocumentStatus, updatedBy string, updatedAt time.Time) error
}

// AccountMappingReader resolves posting accounts for line-less documents.
type AccountMappingReader interface {
	// FindAccountMapping retrieves the mapping for a (company, document type), or ErrNotFound.
	FindAccountMapping(ctx context.Context, companyID string, docType domain.DocumentType) (*domain.AccountMapping, error)
}

// AccountMappingWriter defines write operations for account mappings.
type AccountMappingWriter interface {
	// SaveAccountMapping upserts the mapping for a (company, document type).
	SaveAccountMapping(ctx context.Context, m domain.AccountMapping) error
}

// DocumentRepositoryFacade combines all document-related repository interfaces
type DocumentRepositoryFacade interface {
	DocumentReader
	DocumentWriter
	AccountMappingReader
	AccountMappingWriter
}

// DocumentRepositoryWithTx extends DocumentRepositoryFacade with transaction capabilities
type DocumentRepositoryWithTx interface {
	DocumentRepositoryFacade
	TransactionManager
}

package services

import (
	"context"

	"github.com/finledger/fincore/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// DocumentAdapter is how the posting orchestrator talks to a document kind.
// Each postable type registers one adapter; the orchestrator dispatches
// through the registry instead of branching on type names.
type DocumentAdapter interface {
	// DocumentType identifies the kind this adapter serves.
	DocumentType() domain.DocumentType

	// Load retrieves the document's financial view.
	Load(ctx context.Context, companyID, documentID string) (*domain.SourceDocument, error)

	// LoadForUpdate retrieves the document row locked on the caller's transaction.
	LoadForUpdate(ctx context.Context, tx pgx.Tx, companyID, documentID string) (*domain.SourceDocument, error)

	// BuildLines produces the balanced journal lines for the document, either
	// from its explicit lines or from the company's account mapping.
	BuildLines(ctx context.Context, doc *domain.SourceDocument) ([]domain.JournalLine, error)

	// ApplyStatusInTx transitions the document's posting status within the
	// caller's transaction.
	ApplyStatusInTx(ctx context.Context, tx pgx.Tx, companyID, documentID string, status domain.DocumentStatus, actorID string) error
}

// AdapterRegistry maps document types to their adapters.
type AdapterRegistry map[domain.DocumentType]DocumentAdapter

// Register adds an adapter under its own document type.
func (r AdapterRegistry) Register(a DocumentAdapter) {
	r[a.DocumentType()] = a
}

// Get returns the adapter for a type, or nil when the type is not postable.
func (r AdapterRegistry) Get(docType domain.DocumentType) DocumentAdapter {
	return r[docType]
}

package services

import (
	"context"
	"time"

	"github.com/finledger/fincore/internal/core/domain"
	"github.com/finledger/fincore/internal/dto"
	"github.com/jackc/pgx/v5"
)

// PostInput is everything the ledger engine needs to create one entry.
// Rounding (tax apportionment and the like) happens before lines are built;
// the engine only validates and persists.
type PostInput struct {
	SourceType  string
	SourceID    string
	PostingDate time.Time
	Description string
	Lines       []domain.JournalLine
}

// LedgerReaderSvc defines read operations for journal entries
type LedgerReaderSvc interface {
	// GetEntry retrieves an entry with its lines.
	GetEntry(ctx context.Context, companyID, entryID, requestingUserID string) (*domain.JournalEntry, error)

	// ListEntries retrieves a paginated list of entries for a company.
	ListEntries(ctx context.Context, companyID, requestingUserID string, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error)
}

// LedgerPosterSvc defines the posting and reversal operations.
type LedgerPosterSvc interface {
	// Post validates the double-entry invariant and source idempotence, then
	// persists the entry as POSTED in its own transaction.
	Post(ctx context.Context, companyID string, input PostInput, actorID string) (*domain.JournalEntry, error)

	// PostInTx is Post participating in a caller-owned transaction, used by the
	// posting orchestrator to combine ledger, audit and document writes.
	PostInTx(ctx context.Context, tx pgx.Tx, companyID string, input PostInput, actorID string) (*domain.JournalEntry, error)

	// Reverse creates the exact-offsetting entry for a posted entry and marks
	// the original REVERSED, in its own transaction.
	Reverse(ctx context.Context, companyID, entryID, reason, actorID string) (*domain.JournalEntry, error)

	// ReverseInTx is Reverse participating in a caller-owned transaction.
	ReverseInTx(ctx context.Context, tx pgx.Tx, companyID, entryID, reason, actorID string) (*domain.JournalEntry, error)
}

// LedgerSvcFacade combines all ledger-related service interfaces
type LedgerSvcFacade interface {
	LedgerReaderSvc
	LedgerPosterSvc
}

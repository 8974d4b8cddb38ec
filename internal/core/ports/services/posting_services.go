package services

import (
	"context"

	"github.com/finledger/fincore/internal/core/domain"
	"github.com/finledger/fincore/internal/dto"
)

// PostingStatus is the outcome of a posting request.
type PostingStatus string

const (
	PostingPosted          PostingStatus = "POSTED"
	PostingPendingApproval PostingStatus = "PENDING_APPROVAL"
)

// PostingResult describes what happened to a posting request: either a journal
// entry was created, or an approval request now gates the document.
type PostingResult struct {
	Status            PostingStatus
	JournalEntryID    *string
	ApprovalRequestID *string
}

// DocumentSvcFacade manages the generic postable documents and their mappings.
type DocumentSvcFacade interface {
	// CreateDocument creates a DRAFT document.
	CreateDocument(ctx context.Context, companyID string, req dto.CreateDocumentRequest, creatorUserID string) (*domain.SourceDocument, error)

	// GetDocument retrieves a document.
	GetDocument(ctx context.Context, companyID string, docType domain.DocumentType, documentID, requestingUserID string) (*domain.SourceDocument, error)

	// ListDocuments retrieves a page of a company's documents.
	ListDocuments(ctx context.Context, companyID, requestingUserID string, limit int, nextToken *string) ([]domain.SourceDocument, *string, error)

	// SetAccountMapping configures posting accounts for a document type.
	SetAccountMapping(ctx context.Context, companyID string, req dto.SetAccountMappingRequest, actorID string) error
}

// PostingOrchestratorSvc coordinates period lock, approval gating, ledger
// posting and audit recording as one unit of work.
type PostingOrchestratorSvc interface {
	// RequestPosting runs the posting pipeline for a document: period check,
	// approval gating, then ledger post + audit + document status atomically.
	RequestPosting(ctx context.Context, companyID string, docType domain.DocumentType, documentID, actorID string) (*PostingResult, error)

	// ApproveDocument records an approval decision; when the request reaches
	// APPROVED it continues straight into posting.
	ApproveDocument(ctx context.Context, companyID, requestID, actorID, comment string) (*PostingResult, error)

	// RejectDocument terminally rejects the request and its document.
	RejectDocument(ctx context.Context, companyID, requestID, actorID, comment string) error

	// CancelPosting reverses the document's journal entry and marks the
	// document cancelled.
	CancelPosting(ctx context.Context, companyID string, docType domain.DocumentType, documentID, reason, actorID string) (*domain.JournalEntry, error)
}

package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/finledger/fincore/internal/apperrors"
	"github.com/finledger/fincore/internal/core/domain"
	portsrepo "github.com/finledger/fincore/internal/core/ports/repositories"
	portssvc "github.com/finledger/fincore/internal/core/ports/services"
	"github.com/finledger/fincore/internal/dto"
	"github.com/finledger/fincore/internal/middleware"
)

type documentService struct {
	documentRepo portsrepo.DocumentRepositoryWithTx
	companySvc   portssvc.CompanySvcFacade
}

// NewDocumentService creates a new DocumentService.
func NewDocumentService(documentRepo portsrepo.DocumentRepositoryWithTx, companySvc portssvc.CompanySvcFacade) portssvc.DocumentSvcFacade {
	return &documentService{
		documentRepo: documentRepo,
		companySvc:   companySvc,
	}
}

var _ portssvc.DocumentSvcFacade = (*documentService)(nil)

// CreateDocument creates a DRAFT document.
func (s *documentService) CreateDocument(ctx context.Context, companyID string, req dto.CreateDocumentRequest, creatorUserID string) (*domain.SourceDocument, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.companySvc.AuthorizeUserAction(ctx, creatorUserID, companyID, domain.RoleMember); err != nil {
		return nil, err
	}

	now := time.Now()
	doc := domain.SourceDocument{
		DocumentID:   uuid.NewString(),
		CompanyID:    companyID,
		DocumentType: req.DocumentType,
		Number:       req.Number,
		Amount:       req.Amount,
		DocumentDate: req.DocumentDate,
		Description:  req.Description,
		Status:       domain.DocDraft,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}
	if len(req.Lines) > 0 {
		doc.Lines = make([]domain.DocumentLine, len(req.Lines))
		for i, line := range req.Lines {
			doc.Lines[i] = domain.DocumentLine{
				AccountID: line.AccountID,
				Amount:    line.Amount,
				Side:      line.Side,
				Memo:      line.Memo,
			}
		}
	}

	if err := s.documentRepo.SaveDocument(ctx, doc); err != nil {
		logger.Error("Failed to save document", slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Document created",
		slog.String("document_id", doc.DocumentID),
		slog.String("document_type", string(doc.DocumentType)),
		slog.String("number", doc.Number))
	return &doc, nil
}

// GetDocument retrieves a document.
func (s *documentService) GetDocument(ctx context.Context, companyID string, docType domain.DocumentType, documentID, requestingUserID string) (*domain.SourceDocument, error) {
	if err := s.companySvc.AuthorizeUserAction(ctx, requestingUserID, companyID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	return s.documentRepo.FindDocumentByID(ctx, companyID, docType, documentID)
}

// ListDocuments retrieves a page of a company's documents.
func (s *documentService) ListDocuments(ctx context.Context, companyID, requestingUserID string, limit int, nextToken *string) ([]domain.SourceDocument, *string, error) {
	if err := s.companySvc.AuthorizeUserAction(ctx, requestingUserID, companyID, domain.RoleReadOnly); err != nil {
		return nil, nil, err
	}
	return s.documentRepo.ListDocumentsByCompany(ctx, companyID, limit, nextToken)
}

// SetAccountMapping configures posting accounts for a document type.
func (s *documentService) SetAccountMapping(ctx context.Context, companyID string, req dto.SetAccountMappingRequest, actorID string) error {
	if err := s.companySvc.AuthorizeUserAction(ctx, actorID, companyID, domain.RoleAdmin); err != nil {
		return err
	}
	if req.DebitAccountID == req.CreditAccountID {
		return fmt.Errorf("%w: debit and credit accounts must differ", apperrors.ErrValidation)
	}

	now := time.Now()
	return s.documentRepo.SaveAccountMapping(ctx, domain.AccountMapping{
		CompanyID:       companyID,
		DocumentType:    req.DocumentType,
		DebitAccountID:  req.DebitAccountID,
		CreditAccountID: req.CreditAccountID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorID,
		},
	})
}

// sourceDocumentAdapter serves one document type backed by the generic
// source_documents table. Invoices, vendor bills and payroll runs all share
// this shape; a future document kind with its own storage supplies its own
// adapter instead.
type sourceDocumentAdapter struct {
	docType      domain.DocumentType
	documentRepo portsrepo.DocumentRepositoryFacade
}

// NewSourceDocumentAdapter creates the adapter for one generic document type.
func NewSourceDocumentAdapter(docType domain.DocumentType, documentRepo portsrepo.DocumentRepositoryFacade) portssvc.DocumentAdapter {
	return &sourceDocumentAdapter{
		docType:      docType,
		documentRepo: documentRepo,
	}
}

var _ portssvc.DocumentAdapter = (*sourceDocumentAdapter)(nil)

func (a *sourceDocumentAdapter) DocumentType() domain.DocumentType {
	return a.docType
}

func (a *sourceDocumentAdapter) Load(ctx context.Context, companyID, documentID string) (*domain.SourceDocument, error) {
	return a.documentRepo.FindDocumentByID(ctx, companyID, a.docType, documentID)
}

func (a *sourceDocumentAdapter) LoadForUpdate(ctx context.Context, tx pgx.Tx, companyID, documentID string) (*domain.SourceDocument, error) {
	return a.documentRepo.FindDocumentByIDForUpdate(ctx, tx, companyID, a.docType, documentID)
}

// BuildLines returns the document's explicit lines when present; otherwise it
// builds the two-line debit/credit pair from the company's account mapping.
func (a *sourceDocumentAdapter) BuildLines(ctx context.Context, doc *domain.SourceDocument) ([]domain.JournalLine, error) {
	if len(doc.Lines) > 0 {
		lines := make([]domain.JournalLine, len(doc.Lines))
		for i, dl := range doc.Lines {
			lines[i] = domain.JournalLine{
				AccountID: dl.AccountID,
				Amount:    dl.Amount,
				Side:      dl.Side,
				Memo:      dl.Memo,
			}
		}
		return lines, nil
	}

	m, err := a.documentRepo.FindAccountMapping(ctx, doc.CompanyID, a.docType)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: no account mapping configured for %s", apperrors.ErrValidation, a.docType)
		}
		return nil, err
	}

	return []domain.JournalLine{
		{AccountID: m.DebitAccountID, Amount: doc.Amount, Side: domain.Debit, Memo: doc.Number},
		{AccountID: m.CreditAccountID, Amount: doc.Amount, Side: domain.Credit, Memo: doc.Number},
	}, nil
}

func (a *sourceDocumentAdapter) ApplyStatusInTx(ctx context.Context, tx pgx.Tx, companyID, documentID string, status domain.DocumentStatus, actorID string) error {
	return a.documentRepo.UpdateDocumentStatusInTx(ctx, tx, companyID, a.docType, documentID, status, actorID, time.Now())
}

package dto

import (
	"time"

	"github.com/finledger/fincore/internal/core/domain"
	"github.com/shopspring/decimal"
)

// DocumentLineRequest is an optional explicit posting line on a document.
type DocumentLineRequest struct {
	AccountID string          `json:"accountID" binding:"required"`
	Amount    decimal.Decimal `json:"amount" binding:"required,decimalgt0"`
	Side      domain.LineSide `json:"side" binding:"required,oneof=DEBIT CREDIT"`
	Memo      string          `json:"memo"`
}

// CreateDocumentRequest defines the data needed to create a postable document.
type CreateDocumentRequest struct {
	DocumentType domain.DocumentType   `json:"documentType" binding:"required,oneof=INVOICE VENDOR_BILL PAYROLL_RUN"`
	Number       string                `json:"number" binding:"required"`
	Amount       decimal.Decimal       `json:"amount" binding:"required,decimalgt0"`
	DocumentDate time.Time             `json:"documentDate" binding:"required"`
	Description  string                `json:"description"`
	Lines        []DocumentLineRequest `json:"lines" binding:"omitempty,min=2,dive"` // Optional; mapping fallback when absent
}

// SubmitDocumentRequest identifies the document kind being submitted for posting.
type SubmitDocumentRequest struct {
	DocumentType domain.DocumentType `json:"documentType" binding:"required,oneof=INVOICE VENDOR_BILL PAYROLL_RUN"`
}

// CancelDocumentRequest defines the payload for cancelling a posted document.
type CancelDocumentRequest struct {
	DocumentType domain.DocumentType `json:"documentType" binding:"required,oneof=INVOICE VENDOR_BILL PAYROLL_RUN"`
	Reason       string              `json:"reason" binding:"required"`
}

// SetAccountMappingRequest defines the posting accounts for a document type.
type SetAccountMappingRequest struct {
	DocumentType    domain.DocumentType `json:"documentType" binding:"required,oneof=INVOICE VENDOR_BILL PAYROLL_RUN"`
	DebitAccountID  string              `json:"debitAccountID" binding:"required"`
	CreditAccountID string              `json:"creditAccountID" binding:"required"`
}

// SourceDocumentResponse defines the data returned for a source document.
type SourceDocumentResponse struct {
	DocumentID   string          `json:"documentID"`
	CompanyID    string          `json:"companyID"`
	DocumentType string          `json:"documentType"`
	Number       string          `json:"number"`
	Amount       decimal.Decimal `json:"amount"`
	DocumentDate time.Time       `json:"documentDate"`
	Description  string          `json:"description"`
	Status       string          `json:"status"`
	CreatedAt    time.Time       `json:"createdAt"`
	CreatedBy    string          `json:"createdBy"`
}

// ListDocumentsResponse wraps a page of source documents.
type ListDocumentsResponse struct {
	Documents []SourceDocumentResponse `json:"documents"`
	NextToken *string                  `json:"nextToken,omitempty"`
}

// ToSourceDocumentResponse converts a domain.SourceDocument to its DTO.
func ToSourceDocumentResponse(d *domain.SourceDocument) SourceDocumentResponse {
	return SourceDocumentResponse{
		DocumentID:   d.DocumentID,
		CompanyID:    d.CompanyID,
		DocumentType: string(d.DocumentType),
		Number:       d.Number,
		Amount:       d.Amount,
		DocumentDate: d.DocumentDate,
		Description:  d.Description,
		Status:       string(d.Status),
		CreatedAt:    d.CreatedAt,
		CreatedBy:    d.CreatedBy,
	}
}

// ToSourceDocumentResponses converts a slice of domain.SourceDocument to DTOs.
func ToSourceDocumentResponses(docs []domain.SourceDocument) []SourceDocumentResponse {
	res := make([]SourceDocumentResponse, len(docs))
	for i := range docs {
		res[i] = ToSourceDocumentResponse(&docs[i])
	}
	return res
}

package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DocumentType identifies a postable business document kind.
type DocumentType string

const (
	DocInvoice    DocumentType = "INVOICE"
	DocVendorBill DocumentType = "VENDOR_BILL"
	DocPayrollRun DocumentType = "PAYROLL_RUN"
)

// DocumentStatus is the lifecycle of a postable document as seen by the
// posting orchestrator.
type DocumentStatus string

const (
	DocDraft           DocumentStatus = "DRAFT"
	DocPendingApproval DocumentStatus = "PENDING_APPROVAL"
	DocApproved        DocumentStatus = "APPROVED"
	DocPosted          DocumentStatus = "POSTED"
	DocRejected        DocumentStatus = "REJECTED"
	DocCancelled       DocumentStatus = "CANCELLED"
)

// SourceDocument is the generic financial view of a business document:
// everything the posting orchestrator needs, independent of the document's
// own form fields.
type SourceDocument struct {
	DocumentID   string          `json:"documentID"` // Primary Key (UUID)
	CompanyID    string          `json:"companyID"`  // FK -> companies.company_id (Not Null)
	DocumentType DocumentType    `json:"documentType"`
	Number       string          `json:"number"` // Human-facing document number
	Amount       decimal.Decimal `json:"amount"` // Gross amount, positive
	DocumentDate time.Time       `json:"documentDate"`
	Description  string          `json:"description"`
	Status       DocumentStatus  `json:"status"`
	Lines        []DocumentLine  `json:"lines,omitempty"` // Optional pre-built posting lines
	AuditFields
}

// DocumentLine is an optional caller-supplied posting line. Documents without
// explicit lines fall back to the company's account mapping for their type.
type DocumentLine struct {
	AccountID string          `json:"accountID"`
	Amount    decimal.Decimal `json:"amount"`
	Side      LineSide        `json:"side"`
	Memo      string          `json:"memo"`
}

// AccountMapping resolves which accounts a line-less document of a given type
// debits and credits. One mapping per (company, document type).
type AccountMapping struct {
	CompanyID       string       `json:"companyID"`
	DocumentType    DocumentType `json:"documentType"`
	DebitAccountID  string       `json:"debitAccountID"`
	CreditAccountID string       `json:"creditAccountID"`
	AuditFields
}

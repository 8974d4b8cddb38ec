package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// DocumentStatus is the posting lifecycle of a source document.
type DocumentStatus string

const (
	DocDraft           DocumentStatus = "DRAFT"
	DocPendingApproval DocumentStatus = "PENDING_APPROVAL"
	DocApproved        DocumentStatus = "APPROVED"
	DocPosted          DocumentStatus = "POSTED"
	DocRejected        DocumentStatus = "REJECTED"
	DocCancelled       DocumentStatus = "CANCELLED"
)

// SourceDocument is the DB representation of a postable business document.
// Lines is a JSON column holding optional caller-supplied posting lines.
type SourceDocument struct {
	DocumentID   string          `db:"document_id"`
	CompanyID    string          `db:"company_id"`
	DocumentType string          `db:"document_type"`
	Number       string          `db:"number"`
	Amount       decimal.Decimal `db:"amount"`
	DocumentDate time.Time       `db:"document_date"`
	Description  string          `db:"description"`
	Status       DocumentStatus  `db:"status"`
	Lines        []byte          `db:"lines"` // JSON, nullable
	AuditFields
}

// AccountMapping resolves debit/credit accounts for line-less documents.
type AccountMapping struct {
	CompanyID       string `db:"company_id"`
	DocumentType    string `db:"document_type"`
	DebitAccountID  string `db:"debit_account_id"`
	CreditAccountID string `db:"credit_account_id"`
	AuditFields
}

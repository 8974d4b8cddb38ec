package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryStatus indicates the state of a journal entry.
type EntryStatus string

const (
	EntryDraft    EntryStatus = "DRAFT"
	EntryPosted   EntryStatus = "POSTED"
	EntryReversed EntryStatus = "REVERSED"
)

// LineSide indicates whether a journal line is a debit or a credit.
type LineSide string

const (
	Debit  LineSide = "DEBIT"
	Credit LineSide = "CREDIT"
)

// JournalEntry is the DB representation of a balanced financial event.
type JournalEntry struct {
	EntryID          string          `json:"entryID"`
	CompanyID        string          `json:"companyID"`
	PostingDate      time.Time       `json:"postingDate"`
	SourceType       string          `json:"sourceType"`
	SourceID         string          `json:"sourceID"`
	Description      string          `json:"description"`
	Amount           decimal.Decimal `json:"amount"`
	Status           EntryStatus     `json:"status"`
	OriginalEntryID  *string         `json:"originalEntryID,omitempty"`
	ReversingEntryID *string         `json:"reversingEntryID,omitempty"`
	AuditFields
}

// JournalLine is the DB representation of a single debit or credit line.
type JournalLine struct {
	LineID    string          `json:"lineID"`
	EntryID   string          `json:"entryID"`
	AccountID string          `json:"accountID"`
	Amount    decimal.Decimal `json:"amount"`
	Side      LineSide        `json:"side"`
	Memo      string          `json:"memo"`
	AuditFields
}

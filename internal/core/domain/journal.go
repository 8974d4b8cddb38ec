package domain

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

// SourceReversal tags journal entries created by reversing another entry.
const SourceReversal = "REVERSAL"

// JournalEntry represents a single balanced financial event composed of
// multiple journal lines. Once posted, lines are immutable; corrections happen
// only through an exact-offsetting reversal entry.
type JournalEntry struct {
	EntryID          string        `json:"entryID"`     // Primary Key (UUID)
	CompanyID        string        `json:"companyID"`   // FK -> companies.company_id (Not Null)
	PostingDate      time.Time     `json:"postingDate"` // Date the event takes ledger effect
	SourceType       string        `json:"sourceType"`  // Originating document type (or REVERSAL)
	SourceID         string        `json:"sourceID"`    // Originating document ID (or reversed entry ID)
	Description      string        `json:"description"` // Nullable
	Amount           decimal.Decimal `json:"amount"`    // Total debit side of the entry
	Status           EntryStatus   `json:"status"`
	OriginalEntryID  *string       `json:"originalEntryID,omitempty"`  // Set on reversal entries
	ReversingEntryID *string       `json:"reversingEntryID,omitempty"` // Set on reversed originals
	Lines            []JournalLine `json:"lines,omitempty"`
	AuditFields
}

// JournalLine is a single debit or credit against one account within an entry.
type JournalLine struct {
	LineID    string          `json:"lineID"`    // Primary Key (UUID)
	EntryID   string          `json:"entryID"`   // FK -> journal_entries.entry_id (Not Null)
	AccountID string          `json:"accountID"` // FK -> accounts.account_id (Not Null)
	Amount    decimal.Decimal `json:"amount"`    // Strictly positive
	Side      LineSide        `json:"side"`      // DEBIT or CREDIT
	Memo      string          `json:"memo"`      // Nullable
	AuditFields
}

// Opposite returns the swapped side, used when building reversal lines.
func (s LineSide) Opposite() LineSide {
	if s == Debit {
		return Credit
	}
	return Debit
}

package domain

import "time"

// Audit actions recorded by the posting flow.
const (
	AuditActionSubmit  = "SUBMIT"
	AuditActionApprove = "APPROVE"
	AuditActionReject  = "REJECT"
	AuditActionPost    = "POST"
	AuditActionReverse = "REVERSE"
	AuditActionClose   = "CLOSE_PERIOD"
	AuditActionOpen    = "OPEN_PERIOD"
)

// AuditInput is what a call site supplies when recording an action; sequence,
// hashes and timestamps are filled in by the recorder.
type AuditInput struct {
	CompanyID   string
	ActorID     string
	TargetType  string // e.g. "JOURNAL_ENTRY", "APPROVAL_REQUEST"
	TargetID    string
	Action      string
	BeforeValue string // Optional JSON snapshot
	AfterValue  string // Optional JSON snapshot
}

// AuditLogEntry is one link of a company's tamper-evident hash chain. Entries
// are append-only; no update or delete is ever exposed.
type AuditLogEntry struct {
	AuditID      string    `json:"auditID"`  // Primary Key (UUID)
	CompanyID    string    `json:"companyID"` // Chain scope
	Sequence     int64     `json:"sequence"`  // 1-based per company
	ActorID      string    `json:"actorID"`
	TargetType   string    `json:"targetType"`
	TargetID     string    `json:"targetID"`
	Action       string    `json:"action"`
	BeforeValue  string    `json:"beforeValue,omitempty"`
	AfterValue   string    `json:"afterValue,omitempty"`
	OccurredAt   time.Time `json:"occurredAt"`
	PreviousHash string    `json:"previousHash"` // Prior entry's CurrentHash, or the genesis marker
	CurrentHash  string    `json:"currentHash"`
}

// ChainVerification is the result of walking a company's audit chain.
type ChainVerification struct {
	IsValid          bool    `json:"isValid"`
	TotalEntries     int     `json:"totalEntries"`
	InvalidSequences []int64 `json:"invalidSequences"`
}

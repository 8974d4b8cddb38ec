package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ApprovalStatus indicates the state of an approval request.
type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "PENDING"
	ApprovalApproved ApprovalStatus = "APPROVED"
	ApprovalRejected ApprovalStatus = "REJECTED"
)

// ApprovalRule is the DB representation of an approval routing rule.
type ApprovalRule struct {
	RuleID       string           `db:"rule_id"`
	CompanyID    string           `db:"company_id"`
	DocumentType string           `db:"document_type"`
	MinAmount    *decimal.Decimal `db:"min_amount"` // Nullable
	MaxAmount    *decimal.Decimal `db:"max_amount"` // Nullable
	Priority     int              `db:"priority"`
	IsActive     bool             `db:"is_active"`
	AuditFields
}

// ApprovalStep names the approver for one rule step.
type ApprovalStep struct {
	RuleID     string `db:"rule_id"`
	StepNumber int    `db:"step_number"`
	ApproverID string `db:"approver_id"`
}

// ApprovalRequest is the DB representation of a routing instance.
type ApprovalRequest struct {
	RequestID      string         `db:"request_id"`
	CompanyID      string         `db:"company_id"`
	DocumentType   string         `db:"document_type"`
	DocumentID     string         `db:"document_id"`
	DocumentNumber string         `db:"document_number"`
	RuleID         string         `db:"rule_id"`
	RequestedBy    string         `db:"requested_by"`
	Status         ApprovalStatus `db:"status"`
	CurrentStep    int            `db:"current_step"`
	RequestedAt    time.Time      `db:"requested_at"`
	DecidedAt      *time.Time     `db:"decided_at"` // Nullable
}

// ApprovalDecision records one approve/reject action on a request step.
type ApprovalDecision struct {
	DecisionID string    `db:"decision_id"`
	RequestID  string    `db:"request_id"`
	StepNumber int       `db:"step_number"`
	ActorID    string    `db:"actor_id"`
	Approved   bool      `db:"approved"`
	Comment    string    `db:"comment"`
	DecidedAt  time.Time `db:"decided_at"`
}

package domain

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

// ApprovalRule selects, by document type and amount band, whether a document
// must pass a routing request before posting. Rules are evaluated in priority
// order; the first active match applies.
type ApprovalRule struct {
	RuleID       string           `json:"ruleID"`    // Primary Key (UUID)
	CompanyID    string           `json:"companyID"` // FK -> companies.company_id (Not Null)
	DocumentType DocumentType     `json:"documentType"`
	MinAmount    *decimal.Decimal `json:"minAmount,omitempty"` // Inclusive, nil = unbounded
	MaxAmount    *decimal.Decimal `json:"maxAmount,omitempty"` // Inclusive, nil = unbounded
	Priority     int              `json:"priority"`            // Higher value wins
	IsActive     bool             `json:"isActive"`
	Steps        []ApprovalStep   `json:"steps,omitempty"`
	AuditFields
}

// ApprovalStep names the approver for one step of a rule's routing sequence.
type ApprovalStep struct {
	RuleID     string `json:"ruleID"`
	StepNumber int    `json:"stepNumber"` // 1-based
	ApproverID string `json:"approverID"` // UserID authorized to decide this step
}

// Matches reports whether the rule applies to a document amount. Nil bounds
// leave that side of the band open.
func (r ApprovalRule) Matches(amount decimal.Decimal) bool {
	if r.MinAmount != nil && amount.LessThan(*r.MinAmount) {
		return false
	}
	if r.MaxAmount != nil && amount.GreaterThan(*r.MaxAmount) {
		return false
	}
	return true
}

// ApprovalRequest is one routing instance for a document. At most one PENDING
// request may exist per (documentType, documentID).
type ApprovalRequest struct {
	RequestID      string             `json:"requestID"` // Primary Key (UUID)
	CompanyID      string             `json:"companyID"` // FK -> companies.company_id (Not Null)
	DocumentType   DocumentType       `json:"documentType"`
	DocumentID     string             `json:"documentID"`
	DocumentNumber string             `json:"documentNumber"`
	RuleID         string             `json:"ruleID"` // FK -> approval_rules.rule_id
	RequestedBy    string             `json:"requestedBy"`
	Status         ApprovalStatus     `json:"status"`
	CurrentStep    int                `json:"currentStep"` // 1-based step awaiting decision
	RequestedAt    time.Time          `json:"requestedAt"`
	DecidedAt      *time.Time         `json:"decidedAt,omitempty"` // Set when terminal
	Decisions      []ApprovalDecision `json:"decisions,omitempty"`
}

// ApprovalDecision records one approve/reject action taken on a request step.
type ApprovalDecision struct {
	DecisionID string    `json:"decisionID"` // Primary Key (UUID)
	RequestID  string    `json:"requestID"`  // FK -> approval_requests.request_id
	StepNumber int       `json:"stepNumber"`
	ActorID    string    `json:"actorID"`
	Approved   bool      `json:"approved"`
	Comment    string    `json:"comment"`
	DecidedAt  time.Time `json:"decidedAt"`
}

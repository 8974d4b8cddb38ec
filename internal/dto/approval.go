package dto

import (
	"time"

	"github.com/finledger/fincore/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateApprovalRuleRequest defines the data needed to create an approval rule.
type CreateApprovalRuleRequest struct {
	DocumentType domain.DocumentType      `json:"documentType" binding:"required,oneof=INVOICE VENDOR_BILL PAYROLL_RUN"`
	MinAmount    *decimal.Decimal         `json:"minAmount"` // Optional, inclusive
	MaxAmount    *decimal.Decimal         `json:"maxAmount"` // Optional, inclusive
	Priority     int                      `json:"priority" binding:"min=0"`
	Steps        []ApprovalStepRequest    `json:"steps" binding:"required,min=1,dive"`
}

// ApprovalStepRequest names the approver for one routing step.
type ApprovalStepRequest struct {
	ApproverID string `json:"approverID" binding:"required"`
}

// DecisionRequest defines the payload for approving or rejecting a request.
type DecisionRequest struct {
	Comment string `json:"comment"`
}

// ApprovalRuleResponse defines the data returned for an approval rule.
type ApprovalRuleResponse struct {
	RuleID       string           `json:"ruleID"`
	DocumentType string           `json:"documentType"`
	MinAmount    *decimal.Decimal `json:"minAmount,omitempty"`
	MaxAmount    *decimal.Decimal `json:"maxAmount,omitempty"`
	Priority     int              `json:"priority"`
	IsActive     bool             `json:"isActive"`
	Steps        []string         `json:"steps"` // Approver IDs in step order
}

// ApprovalRequestResponse defines the data returned for an approval request.
type ApprovalRequestResponse struct {
	RequestID      string     `json:"requestID"`
	DocumentType   string     `json:"documentType"`
	DocumentID     string     `json:"documentID"`
	DocumentNumber string     `json:"documentNumber"`
	RuleID         string     `json:"ruleID"`
	RequestedBy    string     `json:"requestedBy"`
	Status         string     `json:"status"`
	CurrentStep    int        `json:"currentStep"`
	RequestedAt    time.Time  `json:"requestedAt"`
	DecidedAt      *time.Time `json:"decidedAt,omitempty"`
}

// ListApprovalRequestsResponse wraps pending approval requests.
type ListApprovalRequestsResponse struct {
	Requests []ApprovalRequestResponse `json:"requests"`
}

// ListApprovalRulesResponse wraps approval rules.
type ListApprovalRulesResponse struct {
	Rules []ApprovalRuleResponse `json:"rules"`
}

// ToApprovalRuleResponse converts a domain.ApprovalRule to ApprovalRuleResponse DTO.
func ToApprovalRuleResponse(r *domain.ApprovalRule) ApprovalRuleResponse {
	steps := make([]string, len(r.Steps))
	for i, s := range r.Steps {
		steps[i] = s.ApproverID
	}
	return ApprovalRuleResponse{
		RuleID:       r.RuleID,
		DocumentType: string(r.DocumentType),
		MinAmount:    r.MinAmount,
		MaxAmount:    r.MaxAmount,
		Priority:     r.Priority,
		IsActive:     r.IsActive,
		Steps:        steps,
	}
}

// ToApprovalRequestResponse converts a domain.ApprovalRequest to ApprovalRequestResponse DTO.
func ToApprovalRequestResponse(r *domain.ApprovalRequest) ApprovalRequestResponse {
	return ApprovalRequestResponse{
		RequestID:      r.RequestID,
		DocumentType:   string(r.DocumentType),
		DocumentID:     r.DocumentID,
		DocumentNumber: r.DocumentNumber,
		RuleID:         r.RuleID,
		RequestedBy:    r.RequestedBy,
		Status:         string(r.Status),
		CurrentStep:    r.CurrentStep,
		RequestedAt:    r.RequestedAt,
		DecidedAt:      r.DecidedAt,
	}
}

// ToApprovalRequestResponses converts a slice of domain.ApprovalRequest to DTOs.
func ToApprovalRequestResponses(requests []domain.ApprovalRequest) []ApprovalRequestResponse {
	res := make([]ApprovalRequestResponse, len(requests))
	for i := range requests {
		res[i] = ToApprovalRequestResponse(&requests[i])
	}
	return res
}

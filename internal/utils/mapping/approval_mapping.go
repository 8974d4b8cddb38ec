package mapping

import (
	"github.com/finledger/fincore/internal/core/domain"
	"github.com/finledger/fincore/internal/models"
)

// ToModelApprovalRule converts a domain ApprovalRule to a model ApprovalRule
func ToModelApprovalRule(d domain.ApprovalRule) models.ApprovalRule {
	return models.ApprovalRule{
		RuleID:       d.RuleID,
		CompanyID:    d.CompanyID,
		DocumentType: string(d.DocumentType),
		MinAmount:    d.MinAmount,
		MaxAmount:    d.MaxAmount,
		Priority:     d.Priority,
		IsActive:     d.IsActive,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainApprovalRule converts a model ApprovalRule to a domain ApprovalRule
func ToDomainApprovalRule(m models.ApprovalRule) domain.ApprovalRule {
	return domain.ApprovalRule{
		RuleID:       m.RuleID,
		CompanyID:    m.CompanyID,
		DocumentType: domain.DocumentType(m.DocumentType),
		MinAmount:    m.MinAmount,
		MaxAmount:    m.MaxAmount,
		Priority:     m.Priority,
		IsActive:     m.IsActive,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainApprovalStep converts a model ApprovalStep to a domain ApprovalStep
func ToDomainApprovalStep(m models.ApprovalStep) domain.ApprovalStep {
	return domain.ApprovalStep{
		RuleID:     m.RuleID,
		StepNumber: m.StepNumber,
		ApproverID: m.ApproverID,
	}
}

// ToModelApprovalRequest converts a domain ApprovalRequest to a model ApprovalRequest
func ToModelApprovalRequest(d domain.ApprovalRequest) models.ApprovalRequest {
	return models.ApprovalRequest{
		RequestID:      d.RequestID,
		CompanyID:      d.CompanyID,
		DocumentType:   string(d.DocumentType),
		DocumentID:     d.DocumentID,
		DocumentNumber: d.DocumentNumber,
		RuleID:         d.RuleID,
		RequestedBy:    d.RequestedBy,
		Status:         models.ApprovalStatus(d.Status),
		CurrentStep:    d.CurrentStep,
		RequestedAt:    d.RequestedAt,
		DecidedAt:      d.DecidedAt,
	}
}

// ToDomainApprovalRequest converts a model ApprovalRequest to a domain ApprovalRequest
func ToDomainApprovalRequest(m models.ApprovalRequest) domain.ApprovalRequest {
	return domain.ApprovalRequest{
		RequestID:      m.RequestID,
		CompanyID:      m.CompanyID,
		DocumentType:   domain.DocumentType(m.DocumentType),
		DocumentID:     m.DocumentID,
		DocumentNumber: m.DocumentNumber,
		RuleID:         m.RuleID,
		RequestedBy:    m.RequestedBy,
		Status:         domain.ApprovalStatus(m.Status),
		CurrentStep:    m.CurrentStep,
		RequestedAt:    m.RequestedAt,
		DecidedAt:      m.DecidedAt,
	}
}

// ToDomainApprovalDecision converts a model ApprovalDecision to a domain ApprovalDecision
func ToDomainApprovalDecision(m models.ApprovalDecision) domain.ApprovalDecision {
	return domain.ApprovalDecision{
		DecisionID: m.DecisionID,
		RequestID:  m.RequestID,
		StepNumber: m.StepNumber,
		ActorID:    m.ActorID,
		Approved:   m.Approved,
		Comment:    m.Comment,
		DecidedAt:  m.DecidedAt,
	}
}

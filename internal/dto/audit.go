package dto

import (
	"time"

	"github.com/finledger/fincore/internal/core/domain"
)

// AuditLogEntryResponse defines the data returned for one audit chain entry.
type AuditLogEntryResponse struct {
	AuditID      string    `json:"auditID"`
	Sequence     int64     `json:"sequence"`
	ActorID      string    `json:"actorID"`
	TargetType   string    `json:"targetType"`
	TargetID     string    `json:"targetID"`
	Action       string    `json:"action"`
	BeforeValue  string    `json:"beforeValue,omitempty"`
	AfterValue   string    `json:"afterValue,omitempty"`
	OccurredAt   time.Time `json:"occurredAt"`
	PreviousHash string    `json:"previousHash"`
	CurrentHash  string    `json:"currentHash"`
}

// ListAuditEntriesParams defines query parameters for listing audit entries.
type ListAuditEntriesParams struct {
	Limit     int     `form:"limit,default=50"`
	NextToken *string `form:"nextToken"`
}

// ListAuditEntriesResponse wraps a page of audit entries.
type ListAuditEntriesResponse struct {
	Entries   []AuditLogEntryResponse `json:"entries"`
	NextToken *string                 `json:"nextToken,omitempty"`
}

// ChainVerificationResponse is the result of a chain integrity check.
type ChainVerificationResponse struct {
	IsValid          bool    `json:"isValid"`
	TotalEntries     int     `json:"totalEntries"`
	InvalidCount     int     `json:"invalidCount"`
	InvalidSequences []int64 `json:"invalidSequences,omitempty"`
}

// ToAuditLogEntryResponse converts a domain.AuditLogEntry to AuditLogEntryResponse DTO.
func ToAuditLogEntryResponse(e *domain.AuditLogEntry) AuditLogEntryResponse {
	return AuditLogEntryResponse{
		AuditID:      e.AuditID,
		Sequence:     e.Sequence,
		ActorID:      e.ActorID,
		TargetType:   e.TargetType,
		TargetID:     e.TargetID,
		Action:       e.Action,
		BeforeValue:  e.BeforeValue,
		AfterValue:   e.AfterValue,
		OccurredAt:   e.OccurredAt,
		PreviousHash: e.PreviousHash,
		CurrentHash:  e.CurrentHash,
	}
}

// ToAuditLogEntryResponses converts a slice of domain.AuditLogEntry to DTOs.
func ToAuditLogEntryResponses(entries []domain.AuditLogEntry) []AuditLogEntryResponse {
	res := make([]AuditLogEntryResponse, len(entries))
	for i := range entries {
		res[i] = ToAuditLogEntryResponse(&entries[i])
	}
	return res
}

// ToChainVerificationResponse converts a domain.ChainVerification to its DTO.
func ToChainVerificationResponse(v *domain.ChainVerification) ChainVerificationResponse {
	return ChainVerificationResponse{
		IsValid:          v.IsValid,
		TotalEntries:     v.TotalEntries,
		InvalidCount:     len(v.InvalidSequences),
		InvalidSequences: v.InvalidSequences,
	}
}

package mapping

import (
	"github.com/finledger/fincore/internal/core/domain"
	"github.com/finledger/fincore/internal/models"
)

// ToModelAuditLogEntry converts a domain AuditLogEntry to a model AuditLogEntry
func ToModelAuditLogEntry(d domain.AuditLogEntry) models.AuditLogEntry {
	return models.AuditLogEntry{
		AuditID:      d.AuditID,
		CompanyID:    d.CompanyID,
		Sequence:     d.Sequence,
		ActorID:      d.ActorID,
		TargetType:   d.TargetType,
		TargetID:     d.TargetID,
		Action:       d.Action,
		BeforeValue:  d.BeforeValue,
		AfterValue:   d.AfterValue,
		OccurredAt:   d.OccurredAt,
		PreviousHash: d.PreviousHash,
		CurrentHash:  d.CurrentHash,
	}
}

// ToDomainAuditLogEntry converts a model AuditLogEntry to a domain AuditLogEntry
func ToDomainAuditLogEntry(m models.AuditLogEntry) domain.AuditLogEntry {
	return domain.AuditLogEntry{
		AuditID:      m.AuditID,
		CompanyID:    m.CompanyID,
		Sequence:     m.Sequence,
		ActorID:      m.ActorID,
		TargetType:   m.TargetType,
		TargetID:     m.TargetID,
		Action:       m.Action,
		BeforeValue:  m.BeforeValue,
		AfterValue:   m.AfterValue,
		OccurredAt:   m.OccurredAt,
		PreviousHash: m.PreviousHash,
		CurrentHash:  m.CurrentHash,
	}
}

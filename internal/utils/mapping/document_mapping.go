package mapping

import (
	"encoding/json"
	"fmt"

	"github.com/finledger/fincore/internal/core/domain"
	"github.com/finledger/fincore/internal/models"
)

// ToModelSourceDocument converts a domain SourceDocument to a model SourceDocument,
// serializing any explicit posting lines to JSON.
func ToModelSourceDocument(d domain.SourceDocument) (models.SourceDocument, error) {
	m := models.SourceDocument{
		DocumentID:   d.DocumentID,
		CompanyID:    d.CompanyID,
		DocumentType: string(d.DocumentType),
		Number:       d.Number,
		Amount:       d.Amount,
		DocumentDate: d.DocumentDate,
		Description:  d.Description,
		Status:       models.DocumentStatus(d.Status),
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
	if len(d.Lines) > 0 {
		raw, err := json.Marshal(d.Lines)
		if err != nil {
			return models.SourceDocument{}, fmt.Errorf("failed to marshal document lines: %w", err)
		}
		m.Lines = raw
	}
	return m, nil
}

// ToDomainSourceDocument converts a model SourceDocument to a domain SourceDocument.
func ToDomainSourceDocument(m models.SourceDocument) (domain.SourceDocument, error) {
	d := domain.SourceDocument{
		DocumentID:   m.DocumentID,
		CompanyID:    m.CompanyID,
		DocumentType: domain.DocumentType(m.DocumentType),
		Number:       m.Number,
		Amount:       m.Amount,
		DocumentDate: m.DocumentDate,
		Description:  m.Description,
		Status:       domain.DocumentStatus(m.Status),
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
	if len(m.Lines) > 0 {
		if err := json.Unmarshal(m.Lines, &d.Lines); err != nil {
			return domain.SourceDocument{}, fmt.Errorf("failed to unmarshal document lines: %w", err)
		}
	}
	return d, nil
}

// ToModelAccountMapping converts a domain AccountMapping to a model AccountMapping
func ToModelAccountMapping(d domain.AccountMapping) models.AccountMapping {
	return models.AccountMapping{
		CompanyID:       d.CompanyID,
		DocumentType:    string(d.DocumentType),
		DebitAccountID:  d.DebitAccountID,
		CreditAccountID: d.CreditAccountID,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainAccountMapping converts a model AccountMapping to a domain AccountMapping
func ToDomainAccountMapping(m models.AccountMapping) domain.AccountMapping {
	return domain.AccountMapping{
		CompanyID:       m.CompanyID,
		DocumentType:    domain.DocumentType(m.DocumentType),
		DebitAccountID:  m.DebitAccountID,
		CreditAccountID: m.CreditAccountID,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

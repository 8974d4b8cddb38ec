package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/finledger/fincore/internal/apperrors"
	"github.com/finledger/fincore/internal/core/domain"
	portsrepo "github.com/finledger/fincore/internal/core/ports/repositories"
	"github.com/finledger/fincore/internal/models"
	"github.com/finledger/fincore/internal/utils/mapping"
	"github.com/finledger/fincore/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxDocumentRepository struct {
	BaseRepository
}

// newPgxDocumentRepository creates a new repository for source documents and account mappings.
func newPgxDocumentRepository(pool *pgxpool.Pool) portsrepo.DocumentRepositoryWithTx {
	return &PgxDocumentRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.DocumentRepositoryWithTx = (*PgxDocumentRepository)(nil)

const documentColumns = `document_id, company_id, document_type, number, amount, document_date, description, status, lines, created_at, created_by, last_updated_at, last_updated_by`

// SaveDocument inserts a new source document.
func (r *PgxDocumentRepository) SaveDocument(ctx context.Context, doc domain.SourceDocument) error {
	m, err := mapping.ToModelSourceDocument(doc)
	if err != nil {
		return apperrors.NewAppError(500, "failed to serialize document "+doc.DocumentID, err)
	}

	query := `
		INSERT INTO source_documents (` + documentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err = r.Pool.Exec(ctx, query,
		m.DocumentID,
		m.CompanyID,
		m.DocumentType,
		m.Number,
		m.Amount,
		m.DocumentDate,
		m.Description,
		m.Status,
		m.Lines,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: document number %s already exists for type %s", apperrors.ErrDuplicate, m.Number, m.DocumentType)
		}
		return apperrors.NewAppError(500, "failed to save document "+m.DocumentID, err)
	}
	return nil
}

// FindDocumentByID retrieves a specific source document.
func (r *PgxDocumentRepository) FindDocumentByID(ctx context.Context, companyID string, docType domain.DocumentType, documentID string) (*domain.SourceDocument, error) {
	query := `
		SELECT ` + documentColumns + `
		FROM source_documents
		WHERE document_id = $1 AND company_id = $2 AND document_type = $3;
	`
	return r.queryDocument(ctx, r.Pool, query, documentID, companyID, string(docType))
}

// FindDocumentByIDForUpdate retrieves the document row locked until the
// caller's transaction finishes.
func (r *PgxDocumentRepository) FindDocumentByIDForUpdate(ctx context.Context, tx pgx.Tx, companyID string, docType domain.DocumentType, documentID string) (*domain.SourceDocument, error) {
	query := `
		SELECT ` + documentColumns + `
		FROM source_documents
		WHERE document_id = $1 AND company_id = $2 AND document_type = $3
		FOR UPDATE;
	`
	return r.queryDocument(ctx, tx, query, documentID, companyID, string(docType))
}

type rowQuerier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func (r *PgxDocumentRepository) queryDocument(ctx context.Context, q rowQuerier, query string, args ...any) (*domain.SourceDocument, error) {
	m, err := scanDocumentRow(q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find document", err)
	}

	doc, err := mapping.ToDomainSourceDocument(*m)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to deserialize document "+m.DocumentID, err)
	}
	return &doc, nil
}

// ListDocumentsByCompany retrieves documents of a company, newest first, with
// token-based pagination.
func (r *PgxDocumentRepository) ListDocumentsByCompany(ctx context.Context, companyID string, limit int, nextToken *string) ([]domain.SourceDocument, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	fetchLimit := limit + 1

	baseQuery := `
		SELECT ` + documentColumns + `
		FROM source_documents
		WHERE company_id = $1
	`
	orderByClause := `ORDER BY document_date DESC, created_at DESC`

	var rows pgx.Rows
	var err error
	args := []interface{}{companyID}

	if nextToken != nil && *nextToken != "" {
		lastDate, lastCreatedAt, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}

		cursorClause := `AND (document_date, created_at) < ($2, $3)`
		args = append(args, lastDate, lastCreatedAt)

		query := baseQuery + " " + cursorClause + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
		args = append(args, fetchLimit)
		rows, err = r.Pool.Query(ctx, query, args...)
	} else {
		query := baseQuery + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
		args = append(args, fetchLimit)
		rows, err = r.Pool.Query(ctx, query, args...)
	}

	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query documents for company "+companyID, err)
	}
	defer rows.Close()

	modelDocs := make([]models.SourceDocument, 0, fetchLimit)
	for rows.Next() {
		m, scanErr := scanDocumentRow(rows)
		if scanErr != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan document row for company "+companyID, scanErr)
		}
		modelDocs = append(modelDocs, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating document rows for company "+companyID, err)
	}

	var nextTokenVal *string
	results := modelDocs
	if len(modelDocs) > limit {
		last := modelDocs[limit-1]
		token := pagination.EncodeToken(last.DocumentDate, last.CreatedAt)
		nextTokenVal = &token
		results = modelDocs[:limit]
	}

	docs := make([]domain.SourceDocument, len(results))
	for i, m := range results {
		d, convErr := mapping.ToDomainSourceDocument(m)
		if convErr != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to deserialize document "+m.DocumentID, convErr)
		}
		docs[i] = d
	}
	return docs, nextTokenVal, nil
}

// UpdateDocumentStatusInTx transitions a document's status on the caller's transaction.
func (r *PgxDocumentRepository) UpdateDocumentStatusInTx(ctx context.Context, tx pgx.Tx, companyID string, docType domain.DocumentType, documentID string, status domain.DocumentStatus, updatedBy string, updatedAt time.Time) error {
	query := `
		UPDATE source_documents
		SET status = $4,
		    last_updated_at = $5,
		    last_updated_by = $6
		WHERE document_id = $1 AND company_id = $2 AND document_type = $3;
	`
	cmdTag, err := tx.Exec(ctx, query, documentID, companyID, string(docType), string(status), updatedAt, updatedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update status for document "+documentID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// FindAccountMapping retrieves the mapping for a (company, document type).
func (r *PgxDocumentRepository) FindAccountMapping(ctx context.Context, companyID string, docType domain.DocumentType) (*domain.AccountMapping, error) {
	query := `
		SELECT company_id, document_type, debit_account_id, credit_account_id, created_at, created_by, last_updated_at, last_updated_by
		FROM account_mappings
		WHERE company_id = $1 AND document_type = $2;
	`
	var m models.AccountMapping
	err := r.Pool.QueryRow(ctx, query, companyID, string(docType)).Scan(
		&m.CompanyID,
		&m.DocumentType,
		&m.DebitAccountID,
		&m.CreditAccountID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find account mapping for "+string(docType), err)
	}

	am := mapping.ToDomainAccountMapping(m)
	return &am, nil
}

// SaveAccountMapping upserts the mapping for a (company, document type).
func (r *PgxDocumentRepository) SaveAccountMapping(ctx context.Context, am domain.AccountMapping) error {
	m := mapping.ToModelAccountMapping(am)

	query := `
		INSERT INTO account_mappings (company_id, document_type, debit_account_id, credit_account_id, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (company_id, document_type) DO UPDATE
		SET debit_account_id = EXCLUDED.debit_account_id,
		    credit_account_id = EXCLUDED.credit_account_id,
		    last_updated_at = EXCLUDED.last_updated_at,
		    last_updated_by = EXCLUDED.last_updated_by;
	`
	_, err := r.Pool.Exec(ctx, query,
		m.CompanyID,
		m.DocumentType,
		m.DebitAccountID,
		m.CreditAccountID,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to save account mapping for "+m.DocumentType, err)
	}
	return nil
}

func scanDocumentRow(row rowScanner) (*models.SourceDocument, error) {
	var m models.SourceDocument
	err := row.Scan(
		&m.DocumentID,
		&m.CompanyID,
		&m.DocumentType,
		&m.Number,
		&m.Amount,
		&m.DocumentDate,
		&m.Description,
		&m.Status,
		&m.Lines,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

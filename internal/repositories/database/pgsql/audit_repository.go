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
	"github.com/finledger/fincore/internal/utils/auditchain"
	"github.com/finledger/fincore/internal/utils/mapping"
	"github.com/finledger/fincore/internal/utils/pagination"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxAuditRepository struct {
	BaseRepository
}

// newPgxAuditRepository creates a new repository for the append-only audit chain.
func newPgxAuditRepository(pool *pgxpool.Pool) portsrepo.AuditRepositoryWithTx {
	return &PgxAuditRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.AuditRepositoryWithTx = (*PgxAuditRepository)(nil)

const auditColumns = `audit_id, company_id, sequence, actor_id, target_type, target_id, action, before_value, after_value, occurred_at, previous_hash, current_hash`

// AppendEntry appends one entry within its own transaction.
func (r *PgxAuditRepository) AppendEntry(ctx context.Context, input domain.AuditInput) (*domain.AuditLogEntry, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	entry, err := r.AppendEntryInTx(ctx, tx, input)
	if err != nil {
		return nil, err
	}
	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return entry, nil
}

// AppendEntryInTx appends one entry on the caller's transaction. Appenders
// serialize on the tenant's companies row: locking the tail log row alone is
// not enough, since a blocked appender re-reads the same old tail after the
// winner commits and computes a duplicate sequence, and a first append has no
// tail row to lock at all. The unique (company_id, sequence) constraint
// backstops the lock.
func (r *PgxAuditRepository) AppendEntryInTx(ctx context.Context, tx pgx.Tx, input domain.AuditInput) (*domain.AuditLogEntry, error) {
	lockQuery := `
		SELECT company_id
		FROM companies
		WHERE company_id = $1
		FOR UPDATE;
	`
	var lockedCompanyID string
	if err := tx.QueryRow(ctx, lockQuery, input.CompanyID).Scan(&lockedCompanyID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: company %s", apperrors.ErrNotFound, input.CompanyID)
		}
		return nil, apperrors.NewAppError(500, "failed to lock audit chain for company "+input.CompanyID, err)
	}

	tailQuery := `
		SELECT sequence, current_hash
		FROM audit_logs
		WHERE company_id = $1
		ORDER BY sequence DESC
		LIMIT 1;
	`
	var lastSeq int64
	prevHash := auditchain.GenesisHash
	err := tx.QueryRow(ctx, tailQuery, input.CompanyID).Scan(&lastSeq, &prevHash)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NewAppError(500, "failed to read audit chain tail for company "+input.CompanyID, err)
	}

	entry := domain.AuditLogEntry{
		AuditID:      uuid.NewString(),
		CompanyID:    input.CompanyID,
		Sequence:     lastSeq + 1,
		ActorID:      input.ActorID,
		TargetType:   input.TargetType,
		TargetID:     input.TargetID,
		Action:       input.Action,
		BeforeValue:  input.BeforeValue,
		AfterValue:   input.AfterValue,
		OccurredAt:   time.Now().UTC(),
		PreviousHash: prevHash,
	}
	entry.CurrentHash = auditchain.ComputeHash(entry)

	m := mapping.ToModelAuditLogEntry(entry)
	insertQuery := `
		INSERT INTO audit_logs (` + auditColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err = tx.Exec(ctx, insertQuery,
		m.AuditID,
		m.CompanyID,
		m.Sequence,
		m.ActorID,
		m.TargetType,
		m.TargetID,
		m.Action,
		m.BeforeValue,
		m.AfterValue,
		m.OccurredAt,
		m.PreviousHash,
		m.CurrentHash,
	)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to append audit entry for company "+input.CompanyID, err)
	}
	return &entry, nil
}

// ListEntriesByCompany retrieves audit entries in sequence order with
// token-based pagination.
func (r *PgxAuditRepository) ListEntriesByCompany(ctx context.Context, companyID string, limit int, nextToken *string) ([]domain.AuditLogEntry, *string, error) {
	if limit <= 0 {
		limit = 50
	}
	fetchLimit := limit + 1

	baseQuery := `
		SELECT ` + auditColumns + `
		FROM audit_logs
		WHERE company_id = $1
	`
	orderByClause := `ORDER BY sequence`

	var rows pgx.Rows
	var err error
	args := []interface{}{companyID}

	if nextToken != nil && *nextToken != "" {
		lastSeq, decodeErr := pagination.DecodeSequenceToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}

		cursorClause := `AND sequence > $2`
		args = append(args, lastSeq)

		query := baseQuery + " " + cursorClause + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
		args = append(args, fetchLimit)
		rows, err = r.Pool.Query(ctx, query, args...)
	} else {
		query := baseQuery + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
		args = append(args, fetchLimit)
		rows, err = r.Pool.Query(ctx, query, args...)
	}

	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query audit entries for company "+companyID, err)
	}
	defer rows.Close()

	modelEntries := make([]models.AuditLogEntry, 0, fetchLimit)
	for rows.Next() {
		m, scanErr := scanAuditRow(rows)
		if scanErr != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan audit row for company "+companyID, scanErr)
		}
		modelEntries = append(modelEntries, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating audit rows for company "+companyID, err)
	}

	var nextTokenVal *string
	results := modelEntries
	if len(modelEntries) > limit {
		last := modelEntries[limit-1]
		token := pagination.EncodeSequenceToken(last.Sequence)
		nextTokenVal = &token
		results = modelEntries[:limit]
	}

	entries := make([]domain.AuditLogEntry, len(results))
	for i, m := range results {
		entries[i] = mapping.ToDomainAuditLogEntry(m)
	}
	return entries, nextTokenVal, nil
}

// ListAllEntriesByCompany retrieves the complete chain in sequence order.
func (r *PgxAuditRepository) ListAllEntriesByCompany(ctx context.Context, companyID string) ([]domain.AuditLogEntry, error) {
	query := `
		SELECT ` + auditColumns + `
		FROM audit_logs
		WHERE company_id = $1
		ORDER BY sequence;
	`
	rows, err := r.Pool.Query(ctx, query, companyID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query audit chain for company "+companyID, err)
	}
	defer rows.Close()

	entries := []domain.AuditLogEntry{}
	for rows.Next() {
		m, scanErr := scanAuditRow(rows)
		if scanErr != nil {
			return nil, apperrors.NewAppError(500, "failed to scan audit row for company "+companyID, scanErr)
		}
		entries = append(entries, mapping.ToDomainAuditLogEntry(*m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating audit rows for company "+companyID, err)
	}
	return entries, nil
}

func scanAuditRow(row rowScanner) (*models.AuditLogEntry, error) {
	var m models.AuditLogEntry
	err := row.Scan(
		&m.AuditID,
		&m.CompanyID,
		&m.Sequence,
		&m.ActorID,
		&m.TargetType,
		&m.TargetID,
		&m.Action,
		&m.BeforeValue,
		&m.AfterValue,
		&m.OccurredAt,
		&m.PreviousHash,
		&m.CurrentHash,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

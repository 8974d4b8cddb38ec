package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/finledger/fincore/internal/apperrors"
	"github.com/finledger/fincore/internal/core/domain"
	portsrepo "github.com/finledger/fincore/internal/core/ports/repositories"
	"github.com/finledger/fincore/internal/models"
	"github.com/finledger/fincore/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxPeriodRepository struct {
	BaseRepository
}

// newPgxPeriodRepository creates a new repository for fiscal period data.
func newPgxPeriodRepository(pool *pgxpool.Pool) portsrepo.PeriodRepositoryFacade {
	return &PgxPeriodRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.PeriodRepositoryFacade = (*PgxPeriodRepository)(nil)

const periodColumns = `period_id, company_id, name, start_date, end_date, status, created_at, created_by, last_updated_at, last_updated_by`

// FindPeriodByID retrieves a specific fiscal period.
func (r *PgxPeriodRepository) FindPeriodByID(ctx context.Context, companyID, periodID string) (*domain.FiscalPeriod, error) {
	query := `
		SELECT ` + periodColumns + `
		FROM fiscal_periods
		WHERE period_id = $1 AND company_id = $2;
	`
	var m models.FiscalPeriod
	err := r.Pool.QueryRow(ctx, query, periodID, companyID).Scan(
		&m.PeriodID,
		&m.CompanyID,
		&m.Name,
		&m.StartDate,
		&m.EndDate,
		&m.Status,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find fiscal period "+periodID, err)
	}

	period := mapping.ToDomainFiscalPeriod(m)
	return &period, nil
}

// FindOpenPeriodCovering retrieves the OPEN period whose date range contains
// the given date. ErrNotFound means the date is not postable, whether because
// no period exists there or because the covering period is closed.
func (r *PgxPeriodRepository) FindOpenPeriodCovering(ctx context.Context, companyID string, date time.Time) (*domain.FiscalPeriod, error) {
	query := `
		SELECT ` + periodColumns + `
		FROM fiscal_periods
		WHERE company_id = $1
		  AND status = 'OPEN'
		  AND start_date <= $2::date
		  AND end_date >= $2::date
		LIMIT 1;
	`
	var m models.FiscalPeriod
	err := r.Pool.QueryRow(ctx, query, companyID, date).Scan(
		&m.PeriodID,
		&m.CompanyID,
		&m.Name,
		&m.StartDate,
		&m.EndDate,
		&m.Status,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find open period for company "+companyID, err)
	}

	period := mapping.ToDomainFiscalPeriod(m)
	return &period, nil
}

// ListPeriodsByCompany retrieves all periods of a company ordered by start date.
func (r *PgxPeriodRepository) ListPeriodsByCompany(ctx context.Context, companyID string) ([]domain.FiscalPeriod, error) {
	query := `
		SELECT ` + periodColumns + `
		FROM fiscal_periods
		WHERE company_id = $1
		ORDER BY start_date;
	`
	rows, err := r.Pool.Query(ctx, query, companyID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query periods for company "+companyID, err)
	}
	defer rows.Close()

	periods := []domain.FiscalPeriod{}
	for rows.Next() {
		var m models.FiscalPeriod
		err := rows.Scan(
			&m.PeriodID,
			&m.CompanyID,
			&m.Name,
			&m.StartDate,
			&m.EndDate,
			&m.Status,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan period row for company "+companyID, err)
		}
		periods = append(periods, mapping.ToDomainFiscalPeriod(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating period rows for company "+companyID, err)
	}
	return periods, nil
}

// CountOverlappingPeriods counts periods overlapping the given date range.
func (r *PgxPeriodRepository) CountOverlappingPeriods(ctx context.Context, companyID string, startDate, endDate time.Time) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM fiscal_periods
		WHERE company_id = $1
		  AND start_date <= $3::date
		  AND end_date >= $2::date;
	`
	var count int
	if err := r.Pool.QueryRow(ctx, query, companyID, startDate, endDate).Scan(&count); err != nil {
		return 0, apperrors.NewAppError(500, "failed to count overlapping periods for company "+companyID, err)
	}
	return count, nil
}

// SavePeriods inserts a batch of periods atomically.
func (r *PgxPeriodRepository) SavePeriods(ctx context.Context, periods []domain.FiscalPeriod) error {
	if len(periods) == 0 {
		return nil
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	query := `
		INSERT INTO fiscal_periods (` + periodColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	batch := &pgx.Batch{}
	for _, p := range periods {
		m := mapping.ToModelFiscalPeriod(p)
		batch.Queue(query,
			m.PeriodID,
			m.CompanyID,
			m.Name,
			m.StartDate,
			m.EndDate,
			m.Status,
			m.CreatedAt,
			m.CreatedBy,
			m.LastUpdatedAt,
			m.LastUpdatedBy,
		)
	}

	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: fiscal period already exists", apperrors.ErrDuplicate)
		}
		return apperrors.NewAppError(500, "failed to insert fiscal periods", err)
	}

	return r.Commit(ctx, tx)
}

// UpdatePeriodStatus transitions a period's status. The row is locked first so
// a close racing with a concurrent posting serializes on the period row.
func (r *PgxPeriodRepository) UpdatePeriodStatus(ctx context.Context, companyID, periodID string, status domain.PeriodStatus, updatedBy string, updatedAt time.Time) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	lockQuery := `
		SELECT period_id FROM fiscal_periods
		WHERE period_id = $1 AND company_id = $2
		FOR UPDATE;
	`
	var lockedID string
	if err := tx.QueryRow(ctx, lockQuery, periodID, companyID).Scan(&lockedID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrNotFound
		}
		return apperrors.NewAppError(500, "failed to lock fiscal period "+periodID, err)
	}

	updateQuery := `
		UPDATE fiscal_periods
		SET status = $3,
		    last_updated_at = $4,
		    last_updated_by = $5
		WHERE period_id = $1 AND company_id = $2;
	`
	if _, err := tx.Exec(ctx, updateQuery, periodID, companyID, string(status), updatedAt, updatedBy); err != nil {
		return apperrors.NewAppError(500, "failed to update fiscal period status for "+periodID, err)
	}

	return r.Commit(ctx, tx)
}

package repositories

import (
	"context"
	"time"

	"github.com/finledger/fincore/internal/core/domain"
)

// PeriodReader defines read operations for fiscal period data
type PeriodReader interface {
	// FindPeriodByID retrieves a specific fiscal period.
	FindPeriodByID(ctx context.Context, companyID, periodID string) (*domain.FiscalPeriod, error)

	// FindOpenPeriodCovering retrieves the OPEN period covering the given date,
	// or ErrNotFound when no open period covers it.
	FindOpenPeriodCovering(ctx context.Context, companyID string, date time.Time) (*domain.FiscalPeriod, error)

	// ListPeriodsByCompany retrieves all periods of a company ordered by start date.
	ListPeriodsByCompany(ctx context.Context, companyID string) ([]domain.FiscalPeriod, error)

	// CountOverlappingPeriods counts periods overlapping the given date range.
	CountOverlappingPeriods(ctx context.Context, companyID string, startDate, endDate time.Time) (int, error)
}

// PeriodWriter defines write operations for fiscal period data
type PeriodWriter interface {
	// SavePeriods inserts a batch of periods atomically.
	SavePeriods(ctx context.Context, periods []domain.FiscalPeriod) error

	// UpdatePeriodStatus transitions a period's status under a row lock.
	UpdatePeriodStatus(ctx context.Context, companyID, periodID string, status domain.PeriodStatus, updatedBy string, updatedAt time.Time) error
}

// PeriodRepositoryFacade combines all period-related repository interfaces
type PeriodRepositoryFacade interface {
	PeriodReader
	PeriodWriter
}

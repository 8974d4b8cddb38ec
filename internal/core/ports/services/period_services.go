package services

import (
	"context"
	"time"

	"github.com/finledger/fincore/internal/core/domain"
)

// PeriodReaderSvc defines read operations for fiscal periods
type PeriodReaderSvc interface {
	// IsPostable reports whether an OPEN period covers the date. Missing
	// coverage means not postable (fail closed).
	IsPostable(ctx context.Context, companyID string, date time.Time) (bool, error)

	// ListPeriods retrieves all periods of a company ordered by start date.
	ListPeriods(ctx context.Context, companyID, requestingUserID string) ([]domain.FiscalPeriod, error)
}

// PeriodWriterSvc defines write operations for fiscal periods
type PeriodWriterSvc interface {
	// CreateYearPeriods creates 12 monthly periods for a calendar year.
	CreateYearPeriods(ctx context.Context, companyID string, year int, creatorUserID string) ([]domain.FiscalPeriod, error)

	// ClosePeriod transitions a period to CLOSED. Existing journal entries are unaffected.
	ClosePeriod(ctx context.Context, companyID, periodID, actorID string) error

	// OpenPeriod transitions a period back to OPEN.
	OpenPeriod(ctx context.Context, companyID, periodID, actorID string) error
}

// PeriodSvcFacade combines all period-related service interfaces
type PeriodSvcFacade interface {
	PeriodReaderSvc
	PeriodWriterSvc
}

package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/finledger/fincore/internal/apperrors"
	"github.com/finledger/fincore/internal/core/domain"
	portsrepo "github.com/finledger/fincore/internal/core/ports/repositories"
	portssvc "github.com/finledger/fincore/internal/core/ports/services"
	"github.com/finledger/fincore/internal/middleware"
)

const auditTargetPeriod = "FISCAL_PERIOD"

type periodService struct {
	periodRepo portsrepo.PeriodRepositoryFacade
	companySvc portssvc.CompanySvcFacade
	auditSvc   portssvc.AuditRecorderSvc
	notifier   portssvc.AlertNotifier
}

// NewPeriodService creates a new PeriodService.
func NewPeriodService(periodRepo portsrepo.PeriodRepositoryFacade, companySvc portssvc.CompanySvcFacade, auditSvc portssvc.AuditRecorderSvc, notifier portssvc.AlertNotifier) portssvc.PeriodSvcFacade {
	return &periodService{
		periodRepo: periodRepo,
		companySvc: companySvc,
		auditSvc:   auditSvc,
		notifier:   notifier,
	}
}

var _ portssvc.PeriodSvcFacade = (*periodService)(nil)

// IsPostable reports whether an OPEN period covers the date. A date with no
// period at all is treated exactly like a closed one: not postable.
func (s *periodService) IsPostable(ctx context.Context, companyID string, date time.Time) (bool, error) {
	_, err := s.periodRepo.FindOpenPeriodCovering(ctx, companyID, date)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// ListPeriods retrieves all periods of a company ordered by start date.
func (s *periodService) ListPeriods(ctx context.Context, companyID, requestingUserID string) ([]domain.FiscalPeriod, error) {
	if err := s.companySvc.AuthorizeUserAction(ctx, requestingUserID, companyID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	return s.periodRepo.ListPeriodsByCompany(ctx, companyID)
}

// CreateYearPeriods creates 12 monthly OPEN periods for a calendar year.
// Fails when any of the new periods would overlap an existing one.
func (s *periodService) CreateYearPeriods(ctx context.Context, companyID string, year int, creatorUserID string) ([]domain.FiscalPeriod, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.companySvc.AuthorizeUserAction(ctx, creatorUserID, companyID, domain.RoleAdmin); err != nil {
		return nil, err
	}

	yearStart := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	yearEnd := time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)
	count, err := s.periodRepo.CountOverlappingPeriods(ctx, companyID, yearStart, yearEnd)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, fmt.Errorf("%w: fiscal periods already exist within year %d", apperrors.ErrConflict, year)
	}

	now := time.Now()
	periods := make([]domain.FiscalPeriod, 0, 12)
	for month := time.January; month <= time.December; month++ {
		start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
		end := start.AddDate(0, 1, -1)
		periods = append(periods, domain.FiscalPeriod{
			PeriodID:  uuid.NewString(),
			CompanyID: companyID,
			Name:      start.Format("2006-01"),
			StartDate: start,
			EndDate:   end,
			Status:    domain.PeriodOpen,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     creatorUserID,
				LastUpdatedAt: now,
				LastUpdatedBy: creatorUserID,
			},
		})
	}

	if err := s.periodRepo.SavePeriods(ctx, periods); err != nil {
		logger.Error("Failed to save fiscal periods", slog.String("company_id", companyID), slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Fiscal periods created", slog.String("company_id", companyID), slog.Int("year", year))
	return periods, nil
}

// ClosePeriod transitions a period to CLOSED. Journal entries already posted
// into the period are untouched; only future postings are blocked.
func (s *periodService) ClosePeriod(ctx context.Context, companyID, periodID, actorID string) error {
	return s.setPeriodStatus(ctx, companyID, periodID, actorID, domain.PeriodClosed, domain.AuditActionClose)
}

// OpenPeriod transitions a period back to OPEN.
func (s *periodService) OpenPeriod(ctx context.Context, companyID, periodID, actorID string) error {
	return s.setPeriodStatus(ctx, companyID, periodID, actorID, domain.PeriodOpen, domain.AuditActionOpen)
}

func (s *periodService) setPeriodStatus(ctx context.Context, companyID, periodID, actorID string, status domain.PeriodStatus, action string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.companySvc.AuthorizeUserAction(ctx, actorID, companyID, domain.RoleAdmin); err != nil {
		return err
	}

	period, err := s.periodRepo.FindPeriodByID(ctx, companyID, periodID)
	if err != nil {
		return err
	}
	if period.Status == status {
		return fmt.Errorf("%w: period %s is already %s", apperrors.ErrConflict, periodID, status)
	}

	if err := s.periodRepo.UpdatePeriodStatus(ctx, companyID, periodID, status, actorID, time.Now()); err != nil {
		return err
	}

	if _, err := s.auditSvc.Append(ctx, domain.AuditInput{
		CompanyID:   companyID,
		ActorID:     actorID,
		TargetType:  auditTargetPeriod,
		TargetID:    periodID,
		Action:      action,
		BeforeValue: string(period.Status),
		AfterValue:  string(status),
	}); err != nil {
		// The status change is already committed; the failed append is
		// surfaced through the alert channel like any other audit gap.
		logger.Error("Failed to record period status change in audit log", slog.String("period_id", periodID), slog.String("error", err.Error()))
		s.notifier.NotifyAuditFailure(ctx, companyID, action, err)
	}

	logger.Info("Period status changed", slog.String("period_id", periodID), slog.String("status", string(status)))
	return nil
}

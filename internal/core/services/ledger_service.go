package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/finledger/fincore/internal/apperrors"
	"github.com/finledger/fincore/internal/core/domain"
	portsrepo "github.com/finledger/fincore/internal/core/ports/repositories"
	portssvc "github.com/finledger/fincore/internal/core/ports/services"
	"github.com/finledger/fincore/internal/dto"
	"github.com/finledger/fincore/internal/middleware"
	"github.com/finledger/fincore/internal/utils/accounting"
)

// ledgerService is the double-entry posting engine. It validates, persists and
// reverses journal entries; what to post and when is the orchestrator's job.
type ledgerService struct {
	journalRepo portsrepo.JournalRepositoryWithTx
	accountSvc  portssvc.AccountSvcFacade
	periodSvc   portssvc.PeriodReaderSvc
	companySvc  portssvc.CompanySvcFacade
}

// NewLedgerService creates a new LedgerService.
func NewLedgerService(journalRepo portsrepo.JournalRepositoryWithTx, accountSvc portssvc.AccountSvcFacade, periodSvc portssvc.PeriodReaderSvc, companySvc portssvc.CompanySvcFacade) portssvc.LedgerSvcFacade {
	return &ledgerService{
		journalRepo: journalRepo,
		accountSvc:  accountSvc,
		periodSvc:   periodSvc,
		companySvc:  companySvc,
	}
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

// prepareEntry validates the posting input and builds the entry, its lines and
// the per-account balance deltas. No writes happen here.
func (s *ledgerService) prepareEntry(ctx context.Context, companyID string, input portssvc.PostInput, actorID string) (*domain.JournalEntry, []domain.JournalLine, map[string]decimal.Decimal, error) {
	if err := accounting.ValidateEntryBalance(input.Lines); err != nil {
		return nil, nil, nil, err
	}

	accountIDSet := make(map[string]struct{}, len(input.Lines))
	for _, line := range input.Lines {
		accountIDSet[line.AccountID] = struct{}{}
	}
	if len(accountIDSet) < 2 {
		return nil, nil, nil, fmt.Errorf("%w: journal entry must affect at least two different accounts", apperrors.ErrValidation)
	}

	postable, err := s.periodSvc.IsPostable(ctx, companyID, input.PostingDate)
	if err != nil {
		return nil, nil, nil, err
	}
	if !postable {
		return nil, nil, nil, fmt.Errorf("%w: posting date %s", apperrors.ErrPeriodLocked, input.PostingDate.Format("2006-01-02"))
	}

	accountIDs := make([]string, 0, len(accountIDSet))
	for id := range accountIDSet {
		accountIDs = append(accountIDs, id)
	}
	accounts, err := s.accountSvc.GetAccountByIDs(ctx, companyID, accountIDs)
	if err != nil {
		return nil, nil, nil, err
	}

	balanceChanges := make(map[string]decimal.Decimal, len(accountIDs))
	for _, line := range input.Lines {
		acc := accounts[line.AccountID]
		if !acc.IsActive {
			return nil, nil, nil, fmt.Errorf("%w: account %s is inactive", apperrors.ErrValidation, line.AccountID)
		}
		signed, err := accounting.CalculateSignedAmount(line, acc.AccountType)
		if err != nil {
			return nil, nil, nil, err
		}
		balanceChanges[line.AccountID] = balanceChanges[line.AccountID].Add(signed)
	}

	now := time.Now()
	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     actorID,
		LastUpdatedAt: now,
		LastUpdatedBy: actorID,
	}

	entry := domain.JournalEntry{
		EntryID:     uuid.NewString(),
		CompanyID:   companyID,
		PostingDate: input.PostingDate,
		SourceType:  input.SourceType,
		SourceID:    input.SourceID,
		Description: input.Description,
		Amount:      accounting.EntryAmount(input.Lines),
		Status:      domain.EntryPosted,
		AuditFields: audit,
	}

	lines := make([]domain.JournalLine, len(input.Lines))
	for i, line := range input.Lines {
		lines[i] = domain.JournalLine{
			LineID:      uuid.NewString(),
			EntryID:     entry.EntryID,
			AccountID:   line.AccountID,
			Amount:      line.Amount,
			Side:        line.Side,
			Memo:        line.Memo,
			AuditFields: audit,
		}
	}
	entry.Lines = lines

	return &entry, lines, balanceChanges, nil
}

// Post validates and persists an entry as POSTED in its own transaction.
func (s *ledgerService) Post(ctx context.Context, companyID string, input portssvc.PostInput, actorID string) (*domain.JournalEntry, error) {
	entry, lines, balanceChanges, err := s.prepareEntry(ctx, companyID, input, actorID)
	if err != nil {
		return nil, err
	}

	if err := s.journalRepo.SaveEntry(ctx, *entry, lines, balanceChanges); err != nil {
		return nil, err
	}

	logger := middleware.GetLoggerFromCtx(ctx)
	logger.Info("Journal entry posted",
		slog.String("entry_id", entry.EntryID),
		slog.String("company_id", companyID),
		slog.String("source", input.SourceType+"/"+input.SourceID),
		slog.String("amount", entry.Amount.String()))
	return entry, nil
}

// PostInTx is Post on a caller-owned transaction.
func (s *ledgerService) PostInTx(ctx context.Context, tx pgx.Tx, companyID string, input portssvc.PostInput, actorID string) (*domain.JournalEntry, error) {
	entry, lines, balanceChanges, err := s.prepareEntry(ctx, companyID, input, actorID)
	if err != nil {
		return nil, err
	}

	if err := s.journalRepo.SaveEntryInTx(ctx, tx, *entry, lines, balanceChanges); err != nil {
		return nil, err
	}
	return entry, nil
}

// Reverse creates the exact-offsetting entry for a posted entry and marks the
// original REVERSED, in its own transaction.
func (s *ledgerService) Reverse(ctx context.Context, companyID, entryID, reason, actorID string) (*domain.JournalEntry, error) {
	tx, err := s.journalRepo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer s.journalRepo.Rollback(ctx, tx)

	reversal, err := s.ReverseInTx(ctx, tx, companyID, entryID, reason, actorID)
	if err != nil {
		return nil, err
	}

	if err := s.journalRepo.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return reversal, nil
}

// ReverseInTx is Reverse on a caller-owned transaction. Every line of the
// original is negated by swapping its side; amounts and accounts are untouched.
func (s *ledgerService) ReverseInTx(ctx context.Context, tx pgx.Tx, companyID, entryID, reason, actorID string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	original, err := s.journalRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if original.CompanyID != companyID {
		return nil, apperrors.ErrNotFound
	}
	if original.Status == domain.EntryReversed || original.ReversingEntryID != nil {
		return nil, fmt.Errorf("%w: entry %s", apperrors.ErrAlreadyReversed, entryID)
	}
	if original.Status != domain.EntryPosted {
		return nil, fmt.Errorf("%w: only posted entries can be reversed", apperrors.ErrConflict)
	}

	originalLines, err := s.journalRepo.FindLinesByEntryID(ctx, entryID)
	if err != nil {
		return nil, err
	}

	reversalLines := make([]domain.JournalLine, len(originalLines))
	for i, line := range originalLines {
		reversalLines[i] = domain.JournalLine{
			AccountID: line.AccountID,
			Amount:    line.Amount,
			Side:      line.Side.Opposite(),
			Memo:      line.Memo,
		}
	}

	input := portssvc.PostInput{
		SourceType:  domain.SourceReversal,
		SourceID:    entryID,
		PostingDate: time.Now(),
		Description: reason,
		Lines:       reversalLines,
	}

	reversal, _, balanceChanges, err := s.prepareEntry(ctx, companyID, input, actorID)
	if err != nil {
		return nil, err
	}
	reversal.OriginalEntryID = &original.EntryID

	if err := s.journalRepo.SaveEntryInTx(ctx, tx, *reversal, reversal.Lines, balanceChanges); err != nil {
		return nil, err
	}

	if err := s.journalRepo.UpdateEntryStatusAndLinks(ctx, tx, original.EntryID, domain.EntryReversed, &reversal.EntryID, actorID, time.Now()); err != nil {
		return nil, err
	}

	logger.Info("Journal entry reversed",
		slog.String("original_entry_id", original.EntryID),
		slog.String("reversal_entry_id", reversal.EntryID),
		slog.String("company_id", companyID))
	return reversal, nil
}

// GetEntry retrieves an entry with its lines.
func (s *ledgerService) GetEntry(ctx context.Context, companyID, entryID, requestingUserID string) (*domain.JournalEntry, error) {
	if err := s.companySvc.AuthorizeUserAction(ctx, requestingUserID, companyID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	entry, err := s.journalRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if entry.CompanyID != companyID {
		return nil, apperrors.ErrNotFound
	}

	lines, err := s.journalRepo.FindLinesByEntryID(ctx, entryID)
	if err != nil {
		return nil, err
	}
	entry.Lines = lines
	return entry, nil
}

// ListEntries retrieves a paginated list of entries for a company.
func (s *ledgerService) ListEntries(ctx context.Context, companyID, requestingUserID string, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error) {
	if err := s.companySvc.AuthorizeUserAction(ctx, requestingUserID, companyID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	entries, nextToken, err := s.journalRepo.ListEntriesByCompany(ctx, companyID, params.Limit, params.NextToken)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return &dto.ListEntriesResponse{Entries: []dto.JournalEntryResponse{}}, nil
		}
		return nil, err
	}

	return &dto.ListEntriesResponse{
		Entries:   dto.ToJournalEntryResponses(entries),
		NextToken: nextToken,
	}, nil
}

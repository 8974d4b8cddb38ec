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
	"github.com/shopspring/decimal"
)

type PgxApprovalRepository struct {
	BaseRepository
}

// newPgxApprovalRepository creates a new repository for approval rules, requests and decisions.
func newPgxApprovalRepository(pool *pgxpool.Pool) portsrepo.ApprovalRepositoryWithTx {
	return &PgxApprovalRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ApprovalRepositoryWithTx = (*PgxApprovalRepository)(nil)

const ruleColumns = `rule_id, company_id, document_type, min_amount, max_amount, priority, is_active, created_at, created_by, last_updated_at, last_updated_by`

const requestColumns = `request_id, company_id, document_type, document_id, document_number, rule_id, requested_by, status, current_step, requested_at, decided_at`

// SaveRule inserts a rule and its steps atomically.
func (r *PgxApprovalRepository) SaveRule(ctx context.Context, rule domain.ApprovalRule) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	m := mapping.ToModelApprovalRule(rule)
	ruleQuery := `
		INSERT INTO approval_rules (` + ruleColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err = tx.Exec(ctx, ruleQuery,
		m.RuleID,
		m.CompanyID,
		m.DocumentType,
		m.MinAmount,
		m.MaxAmount,
		m.Priority,
		m.IsActive,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: approval rule %s already exists", apperrors.ErrDuplicate, m.RuleID)
		}
		return apperrors.NewAppError(500, "failed to insert approval rule "+m.RuleID, err)
	}

	stepQuery := `
		INSERT INTO approval_rule_steps (rule_id, step_number, approver_id)
		VALUES ($1, $2, $3);
	`
	batch := &pgx.Batch{}
	for _, step := range rule.Steps {
		batch.Queue(stepQuery, m.RuleID, step.StepNumber, step.ApproverID)
	}
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to insert steps for rule "+m.RuleID, err)
	}

	return r.Commit(ctx, tx)
}

// FindMatchingRule retrieves the best active rule for a document type and
// amount. Higher priority wins; priority ties break on the earliest created rule.
func (r *PgxApprovalRepository) FindMatchingRule(ctx context.Context, companyID string, docType domain.DocumentType, amount decimal.Decimal) (*domain.ApprovalRule, error) {
	query := `
		SELECT ` + ruleColumns + `
		FROM approval_rules
		WHERE company_id = $1
		  AND document_type = $2
		  AND is_active
		  AND (min_amount IS NULL OR min_amount <= $3)
		  AND (max_amount IS NULL OR max_amount >= $3)
		ORDER BY priority DESC, created_at ASC
		LIMIT 1;
	`
	m, err := scanRuleRow(r.Pool.QueryRow(ctx, query, companyID, string(docType), amount))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find matching rule for "+string(docType), err)
	}

	rule := mapping.ToDomainApprovalRule(*m)
	steps, err := r.findStepsByRuleID(ctx, rule.RuleID)
	if err != nil {
		return nil, err
	}
	rule.Steps = steps
	return &rule, nil
}

// FindRuleByID retrieves a rule with its steps.
func (r *PgxApprovalRepository) FindRuleByID(ctx context.Context, companyID, ruleID string) (*domain.ApprovalRule, error) {
	query := `
		SELECT ` + ruleColumns + `
		FROM approval_rules
		WHERE rule_id = $1 AND company_id = $2;
	`
	m, err := scanRuleRow(r.Pool.QueryRow(ctx, query, ruleID, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find approval rule "+ruleID, err)
	}

	rule := mapping.ToDomainApprovalRule(*m)
	steps, err := r.findStepsByRuleID(ctx, rule.RuleID)
	if err != nil {
		return nil, err
	}
	rule.Steps = steps
	return &rule, nil
}

// ListRulesByCompany retrieves all rules of a company ordered by priority.
func (r *PgxApprovalRepository) ListRulesByCompany(ctx context.Context, companyID string) ([]domain.ApprovalRule, error) {
	query := `
		SELECT ` + ruleColumns + `
		FROM approval_rules
		WHERE company_id = $1
		ORDER BY document_type, priority DESC;
	`
	rows, err := r.Pool.Query(ctx, query, companyID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query rules for company "+companyID, err)
	}
	defer rows.Close()

	rules := []domain.ApprovalRule{}
	for rows.Next() {
		m, scanErr := scanRuleRow(rows)
		if scanErr != nil {
			return nil, apperrors.NewAppError(500, "failed to scan rule row for company "+companyID, scanErr)
		}
		rules = append(rules, mapping.ToDomainApprovalRule(*m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating rule rows for company "+companyID, err)
	}

	for i := range rules {
		steps, err := r.findStepsByRuleID(ctx, rules[i].RuleID)
		if err != nil {
			return nil, err
		}
		rules[i].Steps = steps
	}
	return rules, nil
}

func (r *PgxApprovalRepository) findStepsByRuleID(ctx context.Context, ruleID string) ([]domain.ApprovalStep, error) {
	query := `
		SELECT rule_id, step_number, approver_id
		FROM approval_rule_steps
		WHERE rule_id = $1
		ORDER BY step_number;
	`
	rows, err := r.Pool.Query(ctx, query, ruleID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query steps for rule "+ruleID, err)
	}
	defer rows.Close()

	steps := []domain.ApprovalStep{}
	for rows.Next() {
		var m models.ApprovalStep
		if err := rows.Scan(&m.RuleID, &m.StepNumber, &m.ApproverID); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan step row for rule "+ruleID, err)
		}
		steps = append(steps, mapping.ToDomainApprovalStep(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating step rows for rule "+ruleID, err)
	}
	return steps, nil
}

// SaveRequest inserts a request in its own transaction.
func (r *PgxApprovalRepository) SaveRequest(ctx context.Context, request domain.ApprovalRequest) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := r.SaveRequestInTx(ctx, tx, request); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// SaveRequestInTx inserts a request on the caller's transaction. The partial
// unique index on open requests surfaces a concurrent duplicate submit as
// ErrDuplicate.
func (r *PgxApprovalRepository) SaveRequestInTx(ctx context.Context, tx pgx.Tx, request domain.ApprovalRequest) error {
	m := mapping.ToModelApprovalRequest(request)

	query := `
		INSERT INTO approval_requests (` + requestColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := tx.Exec(ctx, query,
		m.RequestID,
		m.CompanyID,
		m.DocumentType,
		m.DocumentID,
		m.DocumentNumber,
		m.RuleID,
		m.RequestedBy,
		m.Status,
		m.CurrentStep,
		m.RequestedAt,
		m.DecidedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: open approval request already exists for document %s", apperrors.ErrDuplicate, m.DocumentID)
		}
		return apperrors.NewAppError(500, "failed to insert approval request "+m.RequestID, err)
	}
	return nil
}

// FindRequestByID retrieves a request with its decisions.
func (r *PgxApprovalRepository) FindRequestByID(ctx context.Context, companyID, requestID string) (*domain.ApprovalRequest, error) {
	query := `
		SELECT ` + requestColumns + `
		FROM approval_requests
		WHERE request_id = $1 AND company_id = $2;
	`
	m, err := scanRequestRow(r.Pool.QueryRow(ctx, query, requestID, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find approval request "+requestID, err)
	}

	request := mapping.ToDomainApprovalRequest(*m)
	decisions, err := r.findDecisionsByRequestID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	request.Decisions = decisions
	return &request, nil
}

// FindRequestByIDForUpdate retrieves the request row locked until the caller's
// transaction finishes, serializing concurrent decisions on the same request.
func (r *PgxApprovalRepository) FindRequestByIDForUpdate(ctx context.Context, tx pgx.Tx, companyID, requestID string) (*domain.ApprovalRequest, error) {
	query := `
		SELECT ` + requestColumns + `
		FROM approval_requests
		WHERE request_id = $1 AND company_id = $2
		FOR UPDATE;
	`
	m, err := scanRequestRow(tx.QueryRow(ctx, query, requestID, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to lock approval request "+requestID, err)
	}

	request := mapping.ToDomainApprovalRequest(*m)
	return &request, nil
}

// FindPendingRequestByDocument retrieves the open request for a document.
func (r *PgxApprovalRepository) FindPendingRequestByDocument(ctx context.Context, companyID string, docType domain.DocumentType, documentID string) (*domain.ApprovalRequest, error) {
	query := `
		SELECT ` + requestColumns + `
		FROM approval_requests
		WHERE company_id = $1 AND document_type = $2 AND document_id = $3 AND status = 'PENDING';
	`
	m, err := scanRequestRow(r.Pool.QueryRow(ctx, query, companyID, string(docType), documentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find pending request for document "+documentID, err)
	}

	request := mapping.ToDomainApprovalRequest(*m)
	return &request, nil
}

// ListPendingRequests retrieves PENDING requests for a company, oldest first.
func (r *PgxApprovalRepository) ListPendingRequests(ctx context.Context, companyID string) ([]domain.ApprovalRequest, error) {
	query := `
		SELECT ` + requestColumns + `
		FROM approval_requests
		WHERE company_id = $1 AND status = 'PENDING'
		ORDER BY requested_at;
	`
	rows, err := r.Pool.Query(ctx, query, companyID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query pending requests for company "+companyID, err)
	}
	defer rows.Close()

	requests := []domain.ApprovalRequest{}
	for rows.Next() {
		m, scanErr := scanRequestRow(rows)
		if scanErr != nil {
			return nil, apperrors.NewAppError(500, "failed to scan request row for company "+companyID, scanErr)
		}
		requests = append(requests, mapping.ToDomainApprovalRequest(*m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating request rows for company "+companyID, err)
	}
	return requests, nil
}

// RecordDecision inserts a decision row and moves the request to its next
// state on the caller's transaction.
func (r *PgxApprovalRepository) RecordDecision(ctx context.Context, tx pgx.Tx, decision domain.ApprovalDecision, newStatus domain.ApprovalStatus, newCurrentStep int, decidedAt *time.Time) error {
	decisionQuery := `
		INSERT INTO approval_decisions (decision_id, request_id, step_number, actor_id, approved, comment, decided_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err := tx.Exec(ctx, decisionQuery,
		decision.DecisionID,
		decision.RequestID,
		decision.StepNumber,
		decision.ActorID,
		decision.Approved,
		decision.Comment,
		decision.DecidedAt,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert decision for request "+decision.RequestID, err)
	}

	requestQuery := `
		UPDATE approval_requests
		SET status = $2,
		    current_step = $3,
		    decided_at = $4
		WHERE request_id = $1;
	`
	cmdTag, err := tx.Exec(ctx, requestQuery, decision.RequestID, string(newStatus), newCurrentStep, decidedAt)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update request "+decision.RequestID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxApprovalRepository) findDecisionsByRequestID(ctx context.Context, requestID string) ([]domain.ApprovalDecision, error) {
	query := `
		SELECT decision_id, request_id, step_number, actor_id, approved, comment, decided_at
		FROM approval_decisions
		WHERE request_id = $1
		ORDER BY decided_at, step_number;
	`
	rows, err := r.Pool.Query(ctx, query, requestID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query decisions for request "+requestID, err)
	}
	defer rows.Close()

	decisions := []domain.ApprovalDecision{}
	for rows.Next() {
		var m models.ApprovalDecision
		err := rows.Scan(
			&m.DecisionID,
			&m.RequestID,
			&m.StepNumber,
			&m.ActorID,
			&m.Approved,
			&m.Comment,
			&m.DecidedAt,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan decision row for request "+requestID, err)
		}
		decisions = append(decisions, mapping.ToDomainApprovalDecision(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating decision rows for request "+requestID, err)
	}
	return decisions, nil
}

func scanRuleRow(row rowScanner) (*models.ApprovalRule, error) {
	var m models.ApprovalRule
	err := row.Scan(
		&m.RuleID,
		&m.CompanyID,
		&m.DocumentType,
		&m.MinAmount,
		&m.MaxAmount,
		&m.Priority,
		&m.IsActive,
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

func scanRequestRow(row rowScanner) (*models.ApprovalRequest, error) {
	var m models.ApprovalRequest
	err := row.Scan(
		&m.RequestID,
		&m.CompanyID,
		&m.DocumentType,
		&m.DocumentID,
		&m.DocumentNumber,
		&m.RuleID,
		&m.RequestedBy,
		&m.Status,
		&m.CurrentStep,
		&m.RequestedAt,
		&m.DecidedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

package pgsql

import (
	portsrepo "github.com/finledger/fincore/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	companyRepo := newPgxCompanyRepository(dbPool)
	accountRepo := newPgxAccountRepository(dbPool)
	periodRepo := newPgxPeriodRepository(dbPool)
	journalRepo := newPgxJournalRepository(dbPool, accountRepo)
	approvalRepo := newPgxApprovalRepository(dbPool)
	auditRepo := newPgxAuditRepository(dbPool)
	documentRepo := newPgxDocumentRepository(dbPool)

	return portsrepo.RepositoryProvider{
		CompanyRepo:  companyRepo,
		AccountRepo:  accountRepo,
		PeriodRepo:   periodRepo,
		JournalRepo:  journalRepo,
		ApprovalRepo: approvalRepo,
		AuditRepo:    auditRepo,
		DocumentRepo: documentRepo,
	}
}

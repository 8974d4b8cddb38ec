package services

import (
	"github.com/finledger/fincore/internal/core/domain"
	portsrepo "github.com/finledger/fincore/internal/core/ports/repositories"
	portssvc "github.com/finledger/fincore/internal/core/ports/services"
	"github.com/finledger/fincore/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, notifier portssvc.AlertNotifier) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Company service first: every other service authorizes through it.
	container.Company = NewCompanyService(repos.CompanyRepo)

	container.Account = NewAccountService(repos.AccountRepo, container.Company)
	container.Audit = NewAuditService(repos.AuditRepo, container.Company)
	container.Period = NewPeriodService(repos.PeriodRepo, container.Company, container.Audit, notifier)
	container.Ledger = NewLedgerService(repos.JournalRepo, container.Account, container.Period, container.Company)
	container.Approval = NewApprovalService(repos.ApprovalRepo, container.Company)
	container.Document = NewDocumentService(repos.DocumentRepo, container.Company)

	// One adapter per postable type, all backed by the generic document table.
	adapters := portssvc.AdapterRegistry{}
	for _, docType := range []domain.DocumentType{domain.DocInvoice, domain.DocVendorBill, domain.DocPayrollRun} {
		adapters.Register(NewSourceDocumentAdapter(docType, repos.DocumentRepo))
	}

	container.Posting = NewPostingService(
		adapters,
		container.Company,
		container.Period,
		container.Approval,
		container.Ledger,
		container.Audit,
		repos.JournalRepo,
		repos.DocumentRepo,
		notifier,
		cfg.AuditStrict,
	)

	return container
}

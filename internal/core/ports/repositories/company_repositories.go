package repositories

import (
	"context"

	"github.com/finledger/fincore/internal/core/domain"
)

// CompanyReader defines read operations for company data
type CompanyReader interface {
	// FindCompanyByID retrieves a specific company.
	FindCompanyByID(ctx context.Context, companyID string) (*domain.Company, error)

	// FindUserCompanyRole retrieves a user's membership in a company, or ErrNotFound.
	FindUserCompanyRole(ctx context.Context, userID, companyID string) (*domain.UserCompany, error)
}

// CompanyWriter defines write operations for company data
type CompanyWriter interface {
	// SaveCompany inserts a new company.
	SaveCompany(ctx context.Context, company domain.Company) error

	// AddUserToCompany creates a membership row.
	AddUserToCompany(ctx context.Context, membership domain.UserCompany) error
}

// CompanyRepositoryFacade combines all company-related repository interfaces
type CompanyRepositoryFacade interface {
	CompanyReader
	CompanyWriter
}

package services

import (
	"context"

	"github.com/finledger/fincore/internal/core/domain"
	"github.com/finledger/fincore/internal/dto"
)

// CompanyReaderSvc defines read operations for company data
type CompanyReaderSvc interface {
	// GetCompanyByID retrieves a specific company.
	GetCompanyByID(ctx context.Context, companyID string) (*domain.Company, error)
}

// CompanyWriterSvc defines write operations for company data
type CompanyWriterSvc interface {
	// CreateCompany creates a company and makes the creator its admin.
	CreateCompany(ctx context.Context, req dto.CreateCompanyRequest, creatorUserID string) (*domain.Company, error)

	// AddMember adds a user to a company with a role.
	AddMember(ctx context.Context, companyID string, req dto.AddMemberRequest, addingUserID string) error
}

// CompanyAuthorizerSvc checks membership-based permissions.
type CompanyAuthorizerSvc interface {
	// AuthorizeUserAction returns ErrForbidden unless the user holds at least
	// the required role in the company.
	AuthorizeUserAction(ctx context.Context, userID, companyID string, requiredRole domain.CompanyRole) error
}

// CompanySvcFacade combines all company-related service interfaces
type CompanySvcFacade interface {
	CompanyReaderSvc
	CompanyWriterSvc
	CompanyAuthorizerSvc
}

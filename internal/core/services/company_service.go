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
	"github.com/finledger/fincore/internal/dto"
	"github.com/finledger/fincore/internal/middleware"
)

// roleRank orders company roles by privilege for authorization checks.
var roleRank = map[domain.CompanyRole]int{
	domain.RoleReadOnly: 1,
	domain.RoleMember:   2,
	domain.RoleAdmin:    3,
}

type companyService struct {
	companyRepo portsrepo.CompanyRepositoryFacade
}

// NewCompanyService creates a new CompanyService.
func NewCompanyService(companyRepo portsrepo.CompanyRepositoryFacade) portssvc.CompanySvcFacade {
	return &companyService{companyRepo: companyRepo}
}

var _ portssvc.CompanySvcFacade = (*companyService)(nil)

// CreateCompany creates a company and makes the creator its admin.
func (s *companyService) CreateCompany(ctx context.Context, req dto.CreateCompanyRequest, creatorUserID string) (*domain.Company, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	now := time.Now()

	company := domain.Company{
		CompanyID:    uuid.NewString(),
		Name:         req.Name,
		CurrencyCode: req.CurrencyCode,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.companyRepo.SaveCompany(ctx, company); err != nil {
		logger.Error("Failed to save company", slog.String("error", err.Error()))
		return nil, err
	}

	membership := domain.UserCompany{
		UserID:    creatorUserID,
		CompanyID: company.CompanyID,
		Role:      domain.RoleAdmin,
		JoinedAt:  now,
	}
	if err := s.companyRepo.AddUserToCompany(ctx, membership); err != nil {
		logger.Error("Failed to add creator as admin", slog.String("company_id", company.CompanyID), slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Company created", slog.String("company_id", company.CompanyID), slog.String("created_by", creatorUserID))
	return &company, nil
}

// GetCompanyByID retrieves a specific company.
func (s *companyService) GetCompanyByID(ctx context.Context, companyID string) (*domain.Company, error) {
	return s.companyRepo.FindCompanyByID(ctx, companyID)
}

// AddMember adds a user to a company with a role. Only admins may manage membership.
func (s *companyService) AddMember(ctx context.Context, companyID string, req dto.AddMemberRequest, addingUserID string) error {
	if err := s.AuthorizeUserAction(ctx, addingUserID, companyID, domain.RoleAdmin); err != nil {
		return err
	}

	membership := domain.UserCompany{
		UserID:    req.UserID,
		CompanyID: companyID,
		Role:      req.Role,
		JoinedAt:  time.Now(),
	}
	return s.companyRepo.AddUserToCompany(ctx, membership)
}

// AuthorizeUserAction returns ErrForbidden unless the user holds at least the
// required role in the company. A missing membership is also forbidden: the
// caller learns nothing about whether the company exists.
func (s *companyService) AuthorizeUserAction(ctx context.Context, userID, companyID string, requiredRole domain.CompanyRole) error {
	membership, err := s.companyRepo.FindUserCompanyRole(ctx, userID, companyID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("%w: user %s is not a member of company %s", apperrors.ErrForbidden, userID, companyID)
		}
		return err
	}

	if roleRank[membership.Role] < roleRank[requiredRole] {
		return fmt.Errorf("%w: role %s does not permit this action", apperrors.ErrForbidden, membership.Role)
	}
	return nil
}

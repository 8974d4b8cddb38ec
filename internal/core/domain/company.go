package domain

import "time"

// CompanyRole defines a user's permission level within a company.
type CompanyRole string

const (
	RoleAdmin    CompanyRole = "ADMIN"
	RoleMember   CompanyRole = "MEMBER"
	RoleReadOnly CompanyRole = "READONLY"
)

// Company is the accounting entity (tenant). Every core row belongs to exactly
// one company and every query filters on its ID.
type Company struct {
	CompanyID    string `json:"companyID"` // Primary Key (UUID)
	Name         string `json:"name"`
	CurrencyCode string `json:"currencyCode"` // Reporting currency
	AuditFields
}

// UserCompany represents a user's membership in a company.
type UserCompany struct {
	UserID    string      `json:"userID"`
	CompanyID string      `json:"companyID"`
	Role      CompanyRole `json:"role"`
	JoinedAt  time.Time   `json:"joinedAt"`
}

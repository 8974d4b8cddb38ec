package models

import "time"

// CompanyRole defines a user's permission level within a company.
type CompanyRole string

const (
	RoleAdmin    CompanyRole = "ADMIN"
	RoleMember   CompanyRole = "MEMBER"
	RoleReadOnly CompanyRole = "READONLY"
)

// Company is the accounting entity (tenant) row.
type Company struct {
	CompanyID    string `db:"company_id"`
	Name         string `db:"name"`
	CurrencyCode string `db:"currency_code"`
	AuditFields
}

// UserCompany represents a user's membership row.
type UserCompany struct {
	UserID    string      `db:"user_id"`
	CompanyID string      `db:"company_id"`
	Role      CompanyRole `db:"role"`
	JoinedAt  time.Time   `db:"joined_at"`
}

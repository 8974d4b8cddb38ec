package domain

import (
	"github.com/shopspring/decimal"
)

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// Account represents a general ledger account within one company.
type Account struct {
	AccountID   string          `json:"accountID"` // Primary Key (UUID)
	CompanyID   string          `json:"companyID"` // FK -> companies.company_id (Not Null)
	Name        string          `json:"name"`
	AccountType AccountType     `json:"accountType"` // ASSET, LIABILITY, etc.
	Description string          `json:"description"` // Nullable
	IsActive    bool            `json:"isActive"`
	Balance     decimal.Decimal `json:"balance"` // Persisted balance, maintained under row lock
	AuditFields
}

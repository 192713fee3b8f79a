package accounting

import (
	"github.com/google/uuid"
	"github.com/tatweer/accounting/internal/domain/shared"
)

// RootType classifies an account at the top of the chart of accounts
type RootType string

const (
	RootTypeAsset     RootType = "ASSET"
	RootTypeLiability RootType = "LIABILITY"
	RootTypeEquity    RootType = "EQUITY"
	RootTypeIncome    RootType = "INCOME"
	RootTypeExpense   RootType = "EXPENSE"
)

// IsValid checks if the root type is a valid RootType
func (t RootType) IsValid() bool {
	switch t {
	case RootTypeAsset, RootTypeLiability, RootTypeEquity, RootTypeIncome, RootTypeExpense:
		return true
	}
	return false
}

// String returns the string representation
func (t RootType) String() string {
	return string(t)
}

// DebitIncreases reports whether a debit posting increases the balance
// of accounts under this root type. Asset and Expense balances grow on
// the debit side; Liability, Equity and Income grow on the credit side.
func (t RootType) DebitIncreases() bool {
	return t == RootTypeAsset || t == RootTypeExpense
}

// Account is a node in a company's chart of accounts. The hierarchy is
// kept as parent references only; tree traversal is done through
// AccountTree, never through live object links.
type Account struct {
	shared.BaseEntity
	Name          string     `json:"name"`
	AccountNumber string     `json:"account_number"`
	CompanyID     uuid.UUID  `json:"company_id"`
	ParentID      *uuid.UUID `json:"parent_id"` // nil for root accounts
	IsGroup       bool       `json:"is_group"`
	RootType      RootType   `json:"root_type"`
	Currency      string     `json:"currency"`
	Disabled      bool       `json:"disabled"`
}

// NewAccount creates a new account
func NewAccount(companyID uuid.UUID, name, accountNumber string, rootType RootType, parentID *uuid.UUID, isGroup bool) (*Account, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_ACCOUNT_NAME", "Account name cannot be empty")
	}
	if !rootType.IsValid() {
		return nil, shared.NewDomainError("INVALID_ROOT_TYPE", "Account root type is not valid")
	}
	if companyID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_COMPANY", "Company ID cannot be empty")
	}

	return &Account{
		BaseEntity:    shared.NewBaseEntity(),
		Name:          name,
		AccountNumber: accountNumber,
		CompanyID:     companyID,
		ParentID:      parentID,
		IsGroup:       isGroup,
		RootType:      rootType,
	}, nil
}

// IsRoot reports whether the account sits at the top of the hierarchy
func (a *Account) IsRoot() bool {
	return a.ParentID == nil
}

// DisplayName returns "number - name" when an account number is set
func (a *Account) DisplayName() string {
	if a.AccountNumber != "" {
		return a.AccountNumber + " - " + a.Name
	}
	return a.Name
}

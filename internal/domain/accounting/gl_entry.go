package accounting

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tatweer/accounting/internal/domain/shared"
)

// Dimensions are free-form accounting dimension tags on a ledger
// entry. Implements GORM Scanner/Valuer for JSONB storage.
type Dimensions map[string]string

// Value implements driver.Valuer interface for GORM to store as JSONB
func (d Dimensions) Value() (driver.Value, error) {
	if d == nil {
		return "{}", nil
	}
	return json.Marshal(d)
}

// Scan implements sql.Scanner interface for GORM to read from JSONB
func (d *Dimensions) Scan(value interface{}) error {
	if value == nil {
		*d = Dimensions{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into Dimensions", value)
	}
	return json.Unmarshal(bytes, d)
}

// GLEntry is an immutable posted ledger transaction line. Entries are
// produced and owned by the platform's posting machinery; this system
// only reads them within a date range and account set.
type GLEntry struct {
	shared.BaseEntity
	AccountID   uuid.UUID         `json:"account_id"`
	CompanyID   uuid.UUID         `json:"company_id"`
	PostingDate time.Time         `json:"posting_date"`
	Debit       decimal.Decimal   `json:"debit"`
	Credit      decimal.Decimal   `json:"credit"`
	Currency    string            `json:"currency"`
	VoucherType VoucherType       `json:"voucher_type"`
	VoucherNo   string            `json:"voucher_no"`
	IsOpening   bool              `json:"is_opening"`
	IsCancelled bool              `json:"is_cancelled"`
	CostCenter  string            `json:"cost_center"`
	Project     string            `json:"project"`
	Dimensions  Dimensions        `json:"dimensions,omitempty"`
}

// NewGLEntry creates a posted ledger line
func NewGLEntry(companyID, accountID uuid.UUID, postingDate time.Time, debit, credit decimal.Decimal, currency string) (*GLEntry, error) {
	if companyID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_COMPANY", "Company ID cannot be empty")
	}
	if accountID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ACCOUNT", "Account ID cannot be empty")
	}
	if debit.IsNegative() || credit.IsNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Debit and credit amounts cannot be negative")
	}

	return &GLEntry{
		BaseEntity:  shared.NewBaseEntity(),
		AccountID:   accountID,
		CompanyID:   companyID,
		PostingDate: postingDate,
		Debit:       debit,
		Credit:      credit,
		Currency:    currency,
	}, nil
}

// GLEntryFilter narrows ledger queries by dimension tags. An empty
// filter matches every entry.
type GLEntryFilter struct {
	CostCenter string
	Project    string
	Dimensions map[string]string
}

// IsEmpty reports whether the filter applies no narrowing at all
func (f GLEntryFilter) IsEmpty() bool {
	return f.CostCenter == "" && f.Project == "" && len(f.Dimensions) == 0
}

// Matches reports whether the entry satisfies every set dimension
func (f GLEntryFilter) Matches(e *GLEntry) bool {
	if f.CostCenter != "" && e.CostCenter != f.CostCenter {
		return false
	}
	if f.Project != "" && e.Project != f.Project {
		return false
	}
	for key, want := range f.Dimensions {
		if e.Dimensions[key] != want {
			return false
		}
	}
	return true
}

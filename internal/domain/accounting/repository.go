package accounting

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AccountRepository provides read access to the chart of accounts.
// Accounts are owned by the platform; this system never mutates them.
type AccountRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Account, error)
	FindByCompany(ctx context.Context, companyID uuid.UUID) ([]Account, error)
}

// GLAggregate is a per-account debit/credit sum returned by ledger
// aggregation queries.
type GLAggregate struct {
	AccountID uuid.UUID
	Debit     decimal.Decimal
	Credit    decimal.Decimal
}

// GLEntryRepository provides read access to posted ledger entries.
// Cancelled entries are excluded by every query.
type GLEntryRepository interface {
	// FindInRange returns non-opening entries for the account set with
	// posting date in [from, to], narrowed by the dimension filter.
	FindInRange(ctx context.Context, accountIDs []uuid.UUID, from, to time.Time, filter GLEntryFilter) ([]GLEntry, error)

	// SumOpeningBalance aggregates debit/credit per account for entries
	// before the given date, plus entries flagged as opening regardless
	// of their posting date.
	SumOpeningBalance(ctx context.Context, accountIDs []uuid.UUID, before time.Time, filter GLEntryFilter) ([]GLAggregate, error)
}

// JournalEntryRepository persists journal entry workflow progress.
// Creation of depreciation entries happens elsewhere in the platform.
type JournalEntryRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*JournalEntry, error)

	// FindDraftByVoucherType returns draft entries of the given voucher
	// type in entry number order.
	FindDraftByVoucherType(ctx context.Context, voucherType VoucherType) ([]JournalEntry, error)

	CountDraftByVoucherType(ctx context.Context, voucherType VoucherType) (int64, error)

	// Save persists the entry's current workflow state and remarks
	Save(ctx context.Context, entry *JournalEntry) error

	// Submit finalizes an entry. The backing store rejects a second
	// submit of an already-submitted document.
	Submit(ctx context.Context, entry *JournalEntry) error
}

// FiscalYearRepository resolves fiscal year boundaries
type FiscalYearRepository interface {
	FindByName(ctx context.Context, companyID uuid.UUID, name string) (*FiscalYear, error)
	FindCovering(ctx context.Context, companyID uuid.UUID, date time.Time) (*FiscalYear, error)
}

// CompanyRepository provides read access to companies
type CompanyRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Company, error)
}

// ExchangeRateRepository resolves dated conversion rates
type ExchangeRateRepository interface {
	// FindRate returns the latest rate from one currency to another
	// effective on or before the given date.
	FindRate(ctx context.Context, fromCurrency, toCurrency string, onDate time.Time) (*ExchangeRate, error)
}

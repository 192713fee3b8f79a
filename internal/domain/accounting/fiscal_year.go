package accounting

import (
	"time"

	"github.com/google/uuid"
	"github.com/tatweer/accounting/internal/domain/shared"
)

// FiscalYear is an accounting period boundary for a company
type FiscalYear struct {
	shared.BaseEntity
	Name      string    `json:"name"`
	CompanyID uuid.UUID `json:"company_id"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
}

// NewFiscalYear creates a new fiscal year
func NewFiscalYear(companyID uuid.UUID, name string, startDate, endDate time.Time) (*FiscalYear, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_FISCAL_YEAR", "Fiscal year name cannot be empty")
	}
	if companyID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_COMPANY", "Company ID cannot be empty")
	}
	if startDate.After(endDate) {
		return nil, shared.NewDomainError("INVALID_FISCAL_YEAR", "Fiscal year start date cannot be after end date")
	}

	return &FiscalYear{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		CompanyID:  companyID,
		StartDate:  startDate,
		EndDate:    endDate,
	}, nil
}

// Contains reports whether the date falls inside the fiscal year,
// boundaries included. Only the calendar date is compared.
func (f *FiscalYear) Contains(date time.Time) bool {
	d := truncateToDay(date)
	return !d.Before(truncateToDay(f.StartDate)) && !d.After(truncateToDay(f.EndDate))
}

// truncateToDay drops the time-of-day component
func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// Company is a legal entity owning a chart of accounts
type Company struct {
	shared.BaseEntity
	Name            string `json:"name"`
	Abbreviation    string `json:"abbreviation"`
	DefaultCurrency string `json:"default_currency"`
}

// NewCompany creates a new company
func NewCompany(name, abbreviation, defaultCurrency string) (*Company, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_COMPANY", "Company name cannot be empty")
	}
	if defaultCurrency == "" {
		return nil, shared.NewDomainError("INVALID_CURRENCY", "Default currency cannot be empty")
	}

	return &Company{
		BaseEntity:      shared.NewBaseEntity(),
		Name:            name,
		Abbreviation:    abbreviation,
		DefaultCurrency: defaultCurrency,
	}, nil
}

package accounting

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/tatweer/accounting/internal/domain/shared"
)

// ExchangeRate is a dated conversion rate between two currencies. The
// rate applicable to a date is the latest rate effective on or before
// that date.
type ExchangeRate struct {
	shared.BaseEntity
	FromCurrency  string          `json:"from_currency"`
	ToCurrency    string          `json:"to_currency"`
	Rate          decimal.Decimal `json:"rate"`
	EffectiveDate time.Time       `json:"effective_date"`
}

// NewExchangeRate creates a new dated exchange rate
func NewExchangeRate(fromCurrency, toCurrency string, rate decimal.Decimal, effectiveDate time.Time) (*ExchangeRate, error) {
	if fromCurrency == "" || toCurrency == "" {
		return nil, shared.NewDomainError("INVALID_CURRENCY", "Exchange rate currencies cannot be empty")
	}
	if rate.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_RATE", "Exchange rate must be positive")
	}

	return &ExchangeRate{
		BaseEntity:    shared.NewBaseEntity(),
		FromCurrency:  fromCurrency,
		ToCurrency:    toCurrency,
		Rate:          rate,
		EffectiveDate: effectiveDate,
	}, nil
}

// Convert applies the rate to an amount
func (r *ExchangeRate) Convert(amount decimal.Decimal) decimal.Decimal {
	return amount.Mul(r.Rate)
}

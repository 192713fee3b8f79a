package persistence

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/tatweer/accounting/internal/domain/accounting"
	"github.com/tatweer/accounting/internal/domain/shared"
	"github.com/tatweer/accounting/internal/infrastructure/persistence/models"
)

// GormExchangeRateRepository implements ExchangeRateRepository using GORM
type GormExchangeRateRepository struct {
	db *gorm.DB
}

// NewGormExchangeRateRepository creates a new GormExchangeRateRepository
func NewGormExchangeRateRepository(db *gorm.DB) *GormExchangeRateRepository {
	return &GormExchangeRateRepository{db: db}
}

// FindRate returns the latest rate from one currency to another
// effective on or before the given date.
func (r *GormExchangeRateRepository) FindRate(ctx context.Context, fromCurrency, toCurrency string, onDate time.Time) (*accounting.ExchangeRate, error) {
	var model models.ExchangeRateModel
	if err := r.db.WithContext(ctx).
		Where("from_currency = ? AND to_currency = ? AND effective_date <= ?", fromCurrency, toCurrency, onDate).
		Order("effective_date DESC").
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewDomainError("MISSING_EXCHANGE_RATE",
				"No exchange rate from "+fromCurrency+" to "+toCurrency+" effective on the requested date")
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

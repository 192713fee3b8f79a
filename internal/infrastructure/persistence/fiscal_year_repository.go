package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tatweer/accounting/internal/domain/accounting"
	"github.com/tatweer/accounting/internal/domain/shared"
	"github.com/tatweer/accounting/internal/infrastructure/persistence/models"
)

// GormFiscalYearRepository implements FiscalYearRepository using GORM
type GormFiscalYearRepository struct {
	db *gorm.DB
}

// NewGormFiscalYearRepository creates a new GormFiscalYearRepository
func NewGormFiscalYearRepository(db *gorm.DB) *GormFiscalYearRepository {
	return &GormFiscalYearRepository{db: db}
}

// FindByName finds a fiscal year by its name for a company
func (r *GormFiscalYearRepository) FindByName(ctx context.Context, companyID uuid.UUID, name string) (*accounting.FiscalYear, error) {
	var model models.FiscalYearModel
	if err := r.db.WithContext(ctx).
		Where("company_id = ? AND name = ?", companyID, name).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindCovering finds the fiscal year containing the given date
func (r *GormFiscalYearRepository) FindCovering(ctx context.Context, companyID uuid.UUID, date time.Time) (*accounting.FiscalYear, error) {
	var model models.FiscalYearModel
	if err := r.db.WithContext(ctx).
		Where("company_id = ? AND start_date <= ? AND end_date >= ?", companyID, date, date).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

package persistence

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tatweer/accounting/internal/domain/accounting"
	"github.com/tatweer/accounting/internal/infrastructure/persistence/models"
)

// GormGLEntryRepository implements GLEntryRepository using GORM.
// Cancelled ledger lines are filtered out of every query.
type GormGLEntryRepository struct {
	db *gorm.DB
}

// NewGormGLEntryRepository creates a new GormGLEntryRepository
func NewGormGLEntryRepository(db *gorm.DB) *GormGLEntryRepository {
	return &GormGLEntryRepository{db: db}
}

// FindInRange returns non-opening ledger entries for the account set
// with posting date in [from, to].
func (r *GormGLEntryRepository) FindInRange(ctx context.Context, accountIDs []uuid.UUID, from, to time.Time, filter accounting.GLEntryFilter) ([]accounting.GLEntry, error) {
	if len(accountIDs) == 0 {
		return nil, nil
	}

	query := r.db.WithContext(ctx).Model(&models.GLEntryModel{}).
		Where("account_id IN ?", accountIDs).
		Where("posting_date >= ? AND posting_date <= ?", from, to).
		Where("is_opening = ?", false).
		Where("is_cancelled = ?", false)
	query = applyGLFilter(query, filter)

	var entryModels []models.GLEntryModel
	if err := query.Order("posting_date ASC").Find(&entryModels).Error; err != nil {
		return nil, err
	}

	entries := make([]accounting.GLEntry, len(entryModels))
	for i, model := range entryModels {
		entries[i] = *model.ToDomain()
	}
	return entries, nil
}

// SumOpeningBalance aggregates debit/credit per account for entries
// posted before the given date. Entries flagged as opening are counted
// regardless of their posting date.
func (r *GormGLEntryRepository) SumOpeningBalance(ctx context.Context, accountIDs []uuid.UUID, before time.Time, filter accounting.GLEntryFilter) ([]accounting.GLAggregate, error) {
	if len(accountIDs) == 0 {
		return nil, nil
	}

	query := r.db.WithContext(ctx).Model(&models.GLEntryModel{}).
		Select("account_id, COALESCE(SUM(debit), 0) AS debit, COALESCE(SUM(credit), 0) AS credit").
		Where("account_id IN ?", accountIDs).
		Where("(posting_date < ? OR is_opening = ?)", before, true).
		Where("is_cancelled = ?", false).
		Group("account_id")
	query = applyGLFilter(query, filter)

	var aggregates []accounting.GLAggregate
	if err := query.Scan(&aggregates).Error; err != nil {
		return nil, err
	}
	return aggregates, nil
}

// applyGLFilter narrows a ledger query by the dimension filter.
// Free-form dimensions use jsonb containment, so every requested key
// must match.
func applyGLFilter(query *gorm.DB, filter accounting.GLEntryFilter) *gorm.DB {
	if filter.CostCenter != "" {
		query = query.Where("cost_center = ?", filter.CostCenter)
	}
	if filter.Project != "" {
		query = query.Where("project = ?", filter.Project)
	}
	if len(filter.Dimensions) > 0 {
		// Marshal of map[string]string cannot fail
		wanted, _ := json.Marshal(filter.Dimensions)
		query = query.Where("dimensions @> ?", string(wanted))
	}
	return query
}

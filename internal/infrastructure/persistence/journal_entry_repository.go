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

// GormJournalEntryRepository implements JournalEntryRepository using GORM
type GormJournalEntryRepository struct {
	db *gorm.DB
}

// NewGormJournalEntryRepository creates a new GormJournalEntryRepository
func NewGormJournalEntryRepository(db *gorm.DB) *GormJournalEntryRepository {
	return &GormJournalEntryRepository{db: db}
}

// FindByID finds a journal entry by its ID
func (r *GormJournalEntryRepository) FindByID(ctx context.Context, id uuid.UUID) (*accounting.JournalEntry, error) {
	var model models.JournalEntryModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindDraftByVoucherType returns draft entries of the given voucher
// type in entry number order.
func (r *GormJournalEntryRepository) FindDraftByVoucherType(ctx context.Context, voucherType accounting.VoucherType) ([]accounting.JournalEntry, error) {
	var entryModels []models.JournalEntryModel
	if err := r.db.WithContext(ctx).
		Where("voucher_type = ? AND workflow_state = ?", voucherType, accounting.WorkflowStateDraft).
		Order("entry_number ASC").
		Find(&entryModels).Error; err != nil {
		return nil, err
	}

	entries := make([]accounting.JournalEntry, len(entryModels))
	for i, model := range entryModels {
		entries[i] = *model.ToDomain()
	}
	return entries, nil
}

// CountDraftByVoucherType counts draft entries of the given voucher type
func (r *GormJournalEntryRepository) CountDraftByVoucherType(ctx context.Context, voucherType accounting.VoucherType) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.JournalEntryModel{}).
		Where("voucher_type = ? AND workflow_state = ?", voucherType, accounting.WorkflowStateDraft).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save persists the entry's current workflow state and remarks
func (r *GormJournalEntryRepository) Save(ctx context.Context, entry *accounting.JournalEntry) error {
	model := models.JournalEntryModelFromDomain(entry)
	return r.db.WithContext(ctx).Save(model).Error
}

// Submit finalizes an entry. The state guard makes a second submit of
// the same document fail instead of silently overwriting it.
func (r *GormJournalEntryRepository) Submit(ctx context.Context, entry *accounting.JournalEntry) error {
	result := r.db.WithContext(ctx).Model(&models.JournalEntryModel{}).
		Where("id = ? AND workflow_state <> ?", entry.ID, accounting.WorkflowStateSubmitted).
		Updates(map[string]interface{}{
			"workflow_state": accounting.WorkflowStateSubmitted,
			"submitted_at":   entry.SubmittedAt,
			"updated_at":     time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NewDomainError("ALREADY_SUBMITTED", "Journal entry has already been submitted")
	}
	return nil
}

package persistence

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/tatweer/accounting/internal/domain/accounting"
	"github.com/tatweer/accounting/internal/domain/shared"
)

// newMockDB creates a GORM connection backed by sqlmock
func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return gormDB, mock, mockDB
}

func journalEntryColumns() []string {
	return []string{
		"id", "created_at", "updated_at", "entry_number", "company_id",
		"voucher_type", "workflow_state", "posting_date", "remark",
		"user_remark", "submitted_at",
	}
}

func TestGormJournalEntryRepository_FindByID(t *testing.T) {
	t.Run("finds existing entry", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormJournalEntryRepository(gormDB)

		entryID := uuid.New()
		companyID := uuid.New()
		now := time.Now()

		rows := sqlmock.NewRows(journalEntryColumns()).
			AddRow(entryID, now, now, "ACC-JV-2026-00001", companyID,
				"DEPRECIATION_ENTRY", "DRAFT", now, "Depreciation for March", "", nil)

		mock.ExpectQuery(`SELECT \* FROM "journal_entries" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(entryID, 1).
			WillReturnRows(rows)

		entry, err := repo.FindByID(context.Background(), entryID)

		assert.NoError(t, err)
		require.NotNil(t, entry)
		assert.Equal(t, entryID, entry.ID)
		assert.Equal(t, accounting.VoucherTypeDepreciationEntry, entry.VoucherType)
		assert.Equal(t, accounting.WorkflowStateDraft, entry.WorkflowState)
		assert.Equal(t, "Depreciation for March", entry.Remark)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns ErrNotFound for missing entry", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormJournalEntryRepository(gormDB)

		entryID := uuid.New()
		mock.ExpectQuery(`SELECT \* FROM "journal_entries" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(entryID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		entry, err := repo.FindByID(context.Background(), entryID)

		assert.Nil(t, entry)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormJournalEntryRepository_FindDraftByVoucherType(t *testing.T) {
	t.Run("returns drafts ordered by entry number", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormJournalEntryRepository(gormDB)

		companyID := uuid.New()
		now := time.Now()

		rows := sqlmock.NewRows(journalEntryColumns()).
			AddRow(uuid.New(), now, now, "ACC-JV-2026-00001", companyID,
				"DEPRECIATION_ENTRY", "DRAFT", now, "first", "", nil).
			AddRow(uuid.New(), now, now, "ACC-JV-2026-00002", companyID,
				"DEPRECIATION_ENTRY", "DRAFT", now, "second", "", nil)

		mock.ExpectQuery(`SELECT \* FROM "journal_entries" WHERE voucher_type = \$1 AND workflow_state = \$2 ORDER BY entry_number ASC`).
			WithArgs("DEPRECIATION_ENTRY", "DRAFT").
			WillReturnRows(rows)

		entries, err := repo.FindDraftByVoucherType(context.Background(), accounting.VoucherTypeDepreciationEntry)

		assert.NoError(t, err)
		require.Len(t, entries, 2)
		assert.Equal(t, "ACC-JV-2026-00001", entries[0].EntryNumber)
		assert.Equal(t, "ACC-JV-2026-00002", entries[1].EntryNumber)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns empty slice when no drafts", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormJournalEntryRepository(gormDB)

		mock.ExpectQuery(`SELECT \* FROM "journal_entries" WHERE voucher_type = \$1 AND workflow_state = \$2 ORDER BY entry_number ASC`).
			WithArgs("DEPRECIATION_ENTRY", "DRAFT").
			WillReturnRows(sqlmock.NewRows(journalEntryColumns()))

		entries, err := repo.FindDraftByVoucherType(context.Background(), accounting.VoucherTypeDepreciationEntry)

		assert.NoError(t, err)
		assert.Empty(t, entries)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormJournalEntryRepository_CountDraftByVoucherType(t *testing.T) {
	gormDB, mock, mockDB := newMockDB(t)
	defer mockDB.Close()
	repo := NewGormJournalEntryRepository(gormDB)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "journal_entries" WHERE voucher_type = \$1 AND workflow_state = \$2`).
		WithArgs("DEPRECIATION_ENTRY", "DRAFT").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	count, err := repo.CountDraftByVoucherType(context.Background(), accounting.VoucherTypeDepreciationEntry)

	assert.NoError(t, err)
	assert.Equal(t, int64(3), count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormJournalEntryRepository_Submit(t *testing.T) {
	t.Run("updates a not-yet-submitted entry", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormJournalEntryRepository(gormDB)

		entry, err := accounting.NewJournalEntry(uuid.New(), "ACC-JV-2026-00001",
			accounting.VoucherTypeDepreciationEntry, time.Now())
		require.NoError(t, err)
		require.NoError(t, entry.Approve())
		require.NoError(t, entry.Submit())

		mock.ExpectExec(`UPDATE "journal_entries" SET .* WHERE id = \$\d+ AND workflow_state <> \$\d+`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Submit(context.Background(), entry))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rejects double submit", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormJournalEntryRepository(gormDB)

		entry, err := accounting.NewJournalEntry(uuid.New(), "ACC-JV-2026-00001",
			accounting.VoucherTypeDepreciationEntry, time.Now())
		require.NoError(t, err)
		require.NoError(t, entry.Approve())
		require.NoError(t, entry.Submit())

		mock.ExpectExec(`UPDATE "journal_entries" SET .* WHERE id = \$\d+ AND workflow_state <> \$\d+`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err = repo.Submit(context.Background(), entry)

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ALREADY_SUBMITTED", domainErr.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

package accounting

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGLEntry(t *testing.T) {
	companyID := uuid.New()
	accountID := uuid.New()
	postingDate := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	t.Run("creates entry with correct values", func(t *testing.T) {
		entry, err := NewGLEntry(companyID, accountID, postingDate,
			decimal.NewFromFloat(500.00), decimal.Zero, "SAR")

		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, entry.ID)
		assert.Equal(t, accountID, entry.AccountID)
		assert.Equal(t, companyID, entry.CompanyID)
		assert.True(t, decimal.NewFromFloat(500.00).Equal(entry.Debit))
		assert.True(t, entry.Credit.IsZero())
		assert.Equal(t, "SAR", entry.Currency)
		assert.False(t, entry.IsOpening)
		assert.False(t, entry.IsCancelled)
	})

	t.Run("fails with nil company", func(t *testing.T) {
		_, err := NewGLEntry(uuid.Nil, accountID, postingDate, decimal.Zero, decimal.Zero, "SAR")
		assert.Error(t, err)
	})

	t.Run("fails with nil account", func(t *testing.T) {
		_, err := NewGLEntry(companyID, uuid.Nil, postingDate, decimal.Zero, decimal.Zero, "SAR")
		assert.Error(t, err)
	})

	t.Run("fails with negative amounts", func(t *testing.T) {
		_, err := NewGLEntry(companyID, accountID, postingDate,
			decimal.NewFromFloat(-1), decimal.Zero, "SAR")
		assert.Error(t, err)

		_, err = NewGLEntry(companyID, accountID, postingDate,
			decimal.Zero, decimal.NewFromFloat(-1), "SAR")
		assert.Error(t, err)
	})
}

func TestGLEntryFilter(t *testing.T) {
	newEntry := func(t *testing.T) *GLEntry {
		entry, err := NewGLEntry(uuid.New(), uuid.New(), time.Now(),
			decimal.NewFromFloat(100), decimal.Zero, "SAR")
		require.NoError(t, err)
		entry.CostCenter = "Main - TC"
		entry.Project = "Expansion"
		entry.Dimensions = map[string]string{"branch": "Riyadh"}
		return entry
	}

	t.Run("IsEmpty", func(t *testing.T) {
		assert.True(t, GLEntryFilter{}.IsEmpty())
		assert.False(t, GLEntryFilter{CostCenter: "Main - TC"}.IsEmpty())
		assert.False(t, GLEntryFilter{Project: "Expansion"}.IsEmpty())
		assert.False(t, GLEntryFilter{Dimensions: map[string]string{"branch": "Riyadh"}}.IsEmpty())
	})

	t.Run("empty filter matches everything", func(t *testing.T) {
		assert.True(t, GLEntryFilter{}.Matches(newEntry(t)))
	})

	t.Run("matches on cost center", func(t *testing.T) {
		entry := newEntry(t)
		assert.True(t, GLEntryFilter{CostCenter: "Main - TC"}.Matches(entry))
		assert.False(t, GLEntryFilter{CostCenter: "Branch - TC"}.Matches(entry))
	})

	t.Run("matches on project", func(t *testing.T) {
		entry := newEntry(t)
		assert.True(t, GLEntryFilter{Project: "Expansion"}.Matches(entry))
		assert.False(t, GLEntryFilter{Project: "Other"}.Matches(entry))
	})

	t.Run("matches on custom dimensions", func(t *testing.T) {
		entry := newEntry(t)
		assert.True(t, GLEntryFilter{Dimensions: map[string]string{"branch": "Riyadh"}}.Matches(entry))
		assert.False(t, GLEntryFilter{Dimensions: map[string]string{"branch": "Jeddah"}}.Matches(entry))
		assert.False(t, GLEntryFilter{Dimensions: map[string]string{"region": "West"}}.Matches(entry))
	})

	t.Run("all set dimensions must match", func(t *testing.T) {
		entry := newEntry(t)
		filter := GLEntryFilter{
			CostCenter: "Main - TC",
			Project:    "Other",
		}
		assert.False(t, filter.Matches(entry))
	})
}

func TestExchangeRate(t *testing.T) {
	t.Run("creates rate with correct values", func(t *testing.T) {
		rate, err := NewExchangeRate("USD", "SAR", decimal.NewFromFloat(3.75),
			time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))

		require.NoError(t, err)
		assert.Equal(t, "USD", rate.FromCurrency)
		assert.Equal(t, "SAR", rate.ToCurrency)
	})

	t.Run("fails with empty currencies", func(t *testing.T) {
		_, err := NewExchangeRate("", "SAR", decimal.NewFromFloat(3.75), time.Now())
		assert.Error(t, err)

		_, err = NewExchangeRate("USD", "", decimal.NewFromFloat(3.75), time.Now())
		assert.Error(t, err)
	})

	t.Run("fails with non-positive rate", func(t *testing.T) {
		_, err := NewExchangeRate("USD", "SAR", decimal.Zero, time.Now())
		assert.Error(t, err)

		_, err = NewExchangeRate("USD", "SAR", decimal.NewFromFloat(-1), time.Now())
		assert.Error(t, err)
	})

	t.Run("Convert multiplies by the rate", func(t *testing.T) {
		rate, err := NewExchangeRate("USD", "SAR", decimal.NewFromFloat(3.75), time.Now())
		require.NoError(t, err)

		converted := rate.Convert(decimal.NewFromFloat(100))

		assert.True(t, decimal.NewFromFloat(375).Equal(converted))
	})
}

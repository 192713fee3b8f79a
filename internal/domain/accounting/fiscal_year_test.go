package accounting

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFiscalYear(t *testing.T) {
	companyID := uuid.New()
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC)

	t.Run("creates fiscal year with correct values", func(t *testing.T) {
		fy, err := NewFiscalYear(companyID, "2026", start, end)

		require.NoError(t, err)
		assert.Equal(t, "2026", fy.Name)
		assert.Equal(t, companyID, fy.CompanyID)
		assert.Equal(t, start, fy.StartDate)
		assert.Equal(t, end, fy.EndDate)
	})

	t.Run("fails with empty name", func(t *testing.T) {
		_, err := NewFiscalYear(companyID, "", start, end)
		assert.Error(t, err)
	})

	t.Run("fails with nil company", func(t *testing.T) {
		_, err := NewFiscalYear(uuid.Nil, "2026", start, end)
		assert.Error(t, err)
	})

	t.Run("fails when start is after end", func(t *testing.T) {
		_, err := NewFiscalYear(companyID, "2026", end, start)
		assert.Error(t, err)
	})
}

func TestFiscalYear_Contains(t *testing.T) {
	fy, err := NewFiscalYear(uuid.New(), "2026",
		time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	t.Run("contains a date inside the year", func(t *testing.T) {
		assert.True(t, fy.Contains(time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)))
	})

	t.Run("boundaries are inclusive", func(t *testing.T) {
		assert.True(t, fy.Contains(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)))
		assert.True(t, fy.Contains(time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC)))
	})

	t.Run("time of day on the boundary is ignored", func(t *testing.T) {
		assert.True(t, fy.Contains(time.Date(2026, 12, 31, 23, 59, 59, 0, time.UTC)))
	})

	t.Run("excludes dates outside the year", func(t *testing.T) {
		assert.False(t, fy.Contains(time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)))
		assert.False(t, fy.Contains(time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC)))
	})
}

func TestNewCompany(t *testing.T) {
	t.Run("creates company with correct values", func(t *testing.T) {
		company, err := NewCompany("Tatweer Holding", "TH", "SAR")

		require.NoError(t, err)
		assert.Equal(t, "Tatweer Holding", company.Name)
		assert.Equal(t, "TH", company.Abbreviation)
		assert.Equal(t, "SAR", company.DefaultCurrency)
	})

	t.Run("fails with empty name", func(t *testing.T) {
		_, err := NewCompany("", "TH", "SAR")
		assert.Error(t, err)
	})

	t.Run("fails with empty currency", func(t *testing.T) {
		_, err := NewCompany("Tatweer Holding", "TH", "")
		assert.Error(t, err)
	})
}

package service

import (
	"testing"

	"go-sales-tracker/internal/model"
	"go-sales-tracker/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func intPtr(v int) *int { return &v }

func TestSummary(t *testing.T) {
	t.Run("Override replaces the computed aggregate", func(t *testing.T) {
		saleRepo := &mockSaleRepo{aggregates: []repository.MonthlyAggregate{
			{Month: 1, Quantity: 5, TotalPrice: 1000},
		}}
		monthlyRepo := &mockMonthlyRepo{entries: []model.MonthlySales{
			{ID: 1, Year: 2025, Month: 1, Quantity: 9, TotalPrice: 2000},
		}}
		svc := NewSalesService(saleRepo, monthlyRepo)

		summary, err := svc.Summary(intPtr(2025))
		require.NoError(t, err)
		require.Len(t, summary, 1)
		assert.Equal(t, 1, summary[0].Month)
		assert.Equal(t, 9, summary[0].Quantity, "override is authoritative, not additive")
		assert.Equal(t, 20.00, summary[0].TotalPrice)
	})

	t.Run("Profit variation is a first difference", func(t *testing.T) {
		saleRepo := &mockSaleRepo{aggregates: []repository.MonthlyAggregate{
			{Month: 1, Quantity: 1, TotalPrice: 1000},
			{Month: 2, Quantity: 1, TotalPrice: 1500},
			{Month: 3, Quantity: 1, TotalPrice: 1200},
		}}
		svc := NewSalesService(saleRepo, &mockMonthlyRepo{})

		summary, err := svc.Summary(nil)
		require.NoError(t, err)
		require.Len(t, summary, 3)
		assert.Equal(t, 0.0, summary[0].ProfitVariation)
		assert.Equal(t, 5.0, summary[1].ProfitVariation)
		assert.Equal(t, -3.0, summary[2].ProfitVariation)
	})

	t.Run("Override month with no raw rows is emitted synthetically", func(t *testing.T) {
		saleRepo := &mockSaleRepo{aggregates: []repository.MonthlyAggregate{
			{Month: 1, Quantity: 5, TotalPrice: 1000},
		}}
		monthlyRepo := &mockMonthlyRepo{entries: []model.MonthlySales{
			{ID: 1, Year: 2025, Month: 4, Quantity: 3, TotalPrice: 700},
		}}
		svc := NewSalesService(saleRepo, monthlyRepo)

		summary, err := svc.Summary(intPtr(2025))
		require.NoError(t, err)
		require.Len(t, summary, 2)
		assert.Equal(t, 1, summary[0].Month)
		assert.Equal(t, 4, summary[1].Month)
		assert.Equal(t, 7.00, summary[1].TotalPrice)
		assert.Equal(t, -3.00, summary[1].ProfitVariation)
	})

	t.Run("Result is sorted by month", func(t *testing.T) {
		saleRepo := &mockSaleRepo{aggregates: []repository.MonthlyAggregate{
			{Month: 3, Quantity: 1, TotalPrice: 100},
			{Month: 7, Quantity: 1, TotalPrice: 100},
		}}
		monthlyRepo := &mockMonthlyRepo{entries: []model.MonthlySales{
			{ID: 1, Year: 2025, Month: 5, Quantity: 1, TotalPrice: 100},
		}}
		svc := NewSalesService(saleRepo, monthlyRepo)

		summary, err := svc.Summary(intPtr(2025))
		require.NoError(t, err)
		require.Len(t, summary, 3)
		assert.Equal(t, []int{3, 5, 7}, []int{summary[0].Month, summary[1].Month, summary[2].Month})
	})

	t.Run("No data yields an empty slice", func(t *testing.T) {
		svc := NewSalesService(&mockSaleRepo{}, &mockMonthlyRepo{})

		summary, err := svc.Summary(nil)
		require.NoError(t, err)
		assert.Empty(t, summary)
	})
}

func TestYears(t *testing.T) {
	saleRepo := &mockSaleRepo{years: []int{2025, 2024}}
	monthlyRepo := &mockMonthlyRepo{entries: []model.MonthlySales{
		{ID: 1, Year: 2026, Month: 1},
		{ID: 2, Year: 2025, Month: 2},
	}}
	svc := NewSalesService(saleRepo, monthlyRepo)

	years, err := svc.Years()
	require.NoError(t, err)
	assert.Equal(t, []int{2024, 2025, 2026}, years)
}

func TestUpsertOverride(t *testing.T) {
	t.Run("Second call wins, single row remains", func(t *testing.T) {
		monthlyRepo := &mockMonthlyRepo{}
		svc := NewSalesService(&mockSaleRepo{}, monthlyRepo)

		first, err := svc.UpsertOverride(2025, 1, 5, decimal.RequireFromString("10.00"))
		require.NoError(t, err)

		second, err := svc.UpsertOverride(2025, 1, 9, decimal.RequireFromString("20.00"))
		require.NoError(t, err)

		assert.Equal(t, first.ID, second.ID)
		assert.Len(t, monthlyRepo.entries, 1)
		assert.Equal(t, 9, monthlyRepo.entries[0].Quantity)
		assert.Equal(t, int64(2000), monthlyRepo.entries[0].TotalPrice)
	})

	t.Run("Idempotent under identical repeats", func(t *testing.T) {
		monthlyRepo := &mockMonthlyRepo{}
		svc := NewSalesService(&mockSaleRepo{}, monthlyRepo)

		_, err := svc.UpsertOverride(2025, 3, 5, decimal.RequireFromString("10.00"))
		require.NoError(t, err)
		_, err = svc.UpsertOverride(2025, 3, 5, decimal.RequireFromString("10.00"))
		require.NoError(t, err)

		assert.Len(t, monthlyRepo.entries, 1)
	})

	t.Run("Rejects out-of-range month", func(t *testing.T) {
		svc := NewSalesService(&mockSaleRepo{}, &mockMonthlyRepo{})

		_, err := svc.UpsertOverride(2025, 13, 1, decimal.RequireFromString("1.00"))
		assert.ErrorIs(t, err, ErrInvalidMonth)

		_, err = svc.UpsertOverride(2025, 0, 1, decimal.RequireFromString("1.00"))
		assert.ErrorIs(t, err, ErrInvalidMonth)
	})
}

func TestSalesImportCSV(t *testing.T) {
	header := "product_id,quantity,total_price,date\n"

	t.Run("Clean file creates every row", func(t *testing.T) {
		saleRepo := &mockSaleRepo{}
		svc := NewSalesService(saleRepo, &mockMonthlyRepo{})

		result, err := svc.ImportCSV([]byte(header +
			"1,5,19.99,2025-01-15\n" +
			"2,3,10.00,2025-02-01\n"))
		require.NoError(t, err)
		assert.Equal(t, 2, result.Created)
		assert.Equal(t, 0, result.Skipped)
		assert.Empty(t, result.Errors)
		require.Len(t, saleRepo.sales, 2)
		assert.Equal(t, 1, saleRepo.sales[0].Month, "month is derived from the date")
		assert.Equal(t, int64(1999), saleRepo.sales[0].TotalPrice)
	})

	t.Run("Earlier successes persist when a later row fails", func(t *testing.T) {
		saleRepo := &mockSaleRepo{}
		svc := NewSalesService(saleRepo, &mockMonthlyRepo{})

		result, err := svc.ImportCSV([]byte(header +
			"1,5,19.99,2025-01-15\n" +
			"1,5,19.99,not-a-date\n" +
			"2,3,10.00,2025-02-01\n"))
		require.NoError(t, err)
		assert.Equal(t, 2, result.Created)
		assert.Equal(t, 1, result.Skipped)
		assert.Equal(t, 3, result.Created+result.Skipped)
		require.Len(t, result.Errors, 1)
		assert.Equal(t, 2, result.Errors[0].Row)
		assert.Len(t, saleRepo.sales, 2, "incremental pipeline keeps earlier commits")
	})

	t.Run("Missing required fields are skipped", func(t *testing.T) {
		saleRepo := &mockSaleRepo{}
		svc := NewSalesService(saleRepo, &mockMonthlyRepo{})

		result, err := svc.ImportCSV([]byte(header +
			",5,19.99,2025-01-15\n" +
			"1,0,19.99,2025-01-15\n" +
			"1,5,19.99,\n"))
		require.NoError(t, err)
		assert.Equal(t, 0, result.Created)
		assert.Equal(t, 3, result.Skipped)
		assert.Len(t, result.Errors, 3)
	})

	t.Run("Legacy positional format without header", func(t *testing.T) {
		saleRepo := &mockSaleRepo{}
		svc := NewSalesService(saleRepo, &mockMonthlyRepo{})

		result, err := svc.ImportCSV([]byte(
			"10,1,5,19.99,2025-03-15\n" +
				"11,2,3\n"))
		require.NoError(t, err)
		assert.Equal(t, 1, result.Created)
		assert.Equal(t, 1, result.Skipped)
		require.Len(t, result.Errors, 1)
		assert.Equal(t, 2, result.Errors[0].Row)
		assert.Equal(t, "incomplete row", result.Errors[0].Error)
		require.Len(t, saleRepo.sales, 1)
		assert.Equal(t, 3, saleRepo.sales[0].Month)
	})

	t.Run("Row-level constraint violation skips only that row", func(t *testing.T) {
		saleRepo := &mockSaleRepo{createErr: map[uint]error{99: gorm.ErrForeignKeyViolated}}
		svc := NewSalesService(saleRepo, &mockMonthlyRepo{})

		result, err := svc.ImportCSV([]byte(header +
			"1,5,19.99,2025-01-15\n" +
			"99,3,10.00,2025-02-01\n" +
			"2,2,5.00,2025-03-01\n"))
		require.NoError(t, err)
		assert.Equal(t, 2, result.Created)
		assert.Equal(t, 1, result.Skipped)
		require.Len(t, result.Errors, 1)
		assert.Equal(t, 2, result.Errors[0].Row)
	})

	t.Run("Empty file", func(t *testing.T) {
		svc := NewSalesService(&mockSaleRepo{}, &mockMonthlyRepo{})

		result, err := svc.ImportCSV(nil)
		require.NoError(t, err)
		assert.Equal(t, 0, result.Created)
		assert.Empty(t, result.Errors)
	})
}

func TestSalesExportCSV(t *testing.T) {
	saleRepo := &mockSaleRepo{}
	svc := NewSalesService(saleRepo, &mockMonthlyRepo{})

	_, err := svc.ImportCSV([]byte("product_id,quantity,total_price,date\n1,5,19.99,2025-01-15\n"))
	require.NoError(t, err)

	data, err := svc.ExportCSV(nil)
	require.NoError(t, err)
	assert.Equal(t, "id,product_id,quantity,total_price,date\n1,1,5,19.99,2025-01-15\n", string(data))
}

package service

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"go-sales-tracker/internal/model"
	"go-sales-tracker/internal/repository"
	"go-sales-tracker/pkg/money"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type SalesService interface {
	Summary(year *int) ([]SalesSummaryItem, error)
	Years() ([]int, error)
	UpsertOverride(year, month, quantity int, totalPrice decimal.Decimal) (*model.MonthlySales, error)
	ImportCSV(contents []byte) (*ImportResult, error)
	ExportCSV(year *int) ([]byte, error)
}

// SalesSummaryItem is one month of the summary. ProfitVariation is the
// first difference against the previous month's total in decimal currency
// units, not a percentage; the first entry is always 0.
type SalesSummaryItem struct {
	Month           int     `json:"month"`
	Quantity        int     `json:"quantity"`
	TotalPrice      float64 `json:"total_price"`
	ProfitVariation float64 `json:"profit_variation"`
}

type salesService struct {
	saleRepo    repository.SaleRepository
	monthlyRepo repository.MonthlySalesRepository
}

func NewSalesService(sRepo repository.SaleRepository, mRepo repository.MonthlySalesRepository) SalesService {
	return &salesService{
		saleRepo:    sRepo,
		monthlyRepo: mRepo,
	}
}

// Summary merges the per-month aggregates over raw sales with the manual
// overrides. An override replaces the computed month entirely; override
// months with no raw rows are emitted as synthetic entries when a year
// filter is given.
func (s *salesService) Summary(year *int) ([]SalesSummaryItem, error) {
	overrides := make(map[int]model.MonthlySales)
	var overrideRows []model.MonthlySales
	if year != nil {
		var err error
		overrideRows, err = s.monthlyRepo.FindByYear(*year)
		if err != nil {
			return nil, err
		}
		for _, entry := range overrideRows {
			overrides[entry.Month] = entry
		}
	}

	aggregates, err := s.saleRepo.MonthlyAggregate(year)
	if err != nil {
		return nil, err
	}

	type monthTotal struct {
		month    int
		quantity int
		cents    int64
	}

	totals := make([]monthTotal, 0, len(aggregates)+len(overrideRows))
	seen := make(map[int]bool, len(aggregates))
	for _, agg := range aggregates {
		seen[agg.Month] = true
		if entry, ok := overrides[agg.Month]; ok {
			totals = append(totals, monthTotal{entry.Month, entry.Quantity, entry.TotalPrice})
		} else {
			totals = append(totals, monthTotal{agg.Month, agg.Quantity, agg.TotalPrice})
		}
	}
	for _, entry := range overrideRows {
		if !seen[entry.Month] {
			totals = append(totals, monthTotal{entry.Month, entry.Quantity, entry.TotalPrice})
		}
	}

	sort.Slice(totals, func(i, j int) bool { return totals[i].month < totals[j].month })

	items := make([]SalesSummaryItem, 0, len(totals))
	var prevCents int64
	for i, total := range totals {
		item := SalesSummaryItem{
			Month:      total.month,
			Quantity:   total.quantity,
			TotalPrice: money.FromMinorUnits(total.cents).InexactFloat64(),
		}
		if i > 0 {
			item.ProfitVariation = money.FromMinorUnits(total.cents - prevCents).InexactFloat64()
		}
		prevCents = total.cents
		items = append(items, item)
	}
	return items, nil
}

// Years returns the sorted, deduplicated union of years seen in sale dates
// and in override rows.
func (s *salesService) Years() ([]int, error) {
	saleYears, err := s.saleRepo.DistinctYears()
	if err != nil {
		return nil, err
	}
	overrideYears, err := s.monthlyRepo.DistinctYears()
	if err != nil {
		return nil, err
	}

	set := make(map[int]bool, len(saleYears)+len(overrideYears))
	for _, year := range saleYears {
		set[year] = true
	}
	for _, year := range overrideYears {
		set[year] = true
	}

	years := make([]int, 0, len(set))
	for year := range set {
		years = append(years, year)
	}
	sort.Ints(years)
	return years, nil
}

func (s *salesService) UpsertOverride(year, month, quantity int, totalPrice decimal.Decimal) (*model.MonthlySales, error) {
	if month < 1 || month > 12 {
		return nil, ErrInvalidMonth
	}
	if quantity < 0 {
		return nil, errors.New("quantity must not be negative")
	}
	if totalPrice.IsNegative() {
		return nil, errors.New("total price must not be negative")
	}

	entry, err := s.monthlyRepo.Upsert(year, month, quantity, money.ToMinorUnits(totalPrice))
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, errors.New("override for this month was updated concurrently, retry")
		}
		return nil, err
	}
	return entry, nil
}

// ImportCSV commits row by row: valid rows persist even when later rows
// fail, and created + skipped always equals the number of data rows. The
// first line is sniffed for a product_id column; without one the legacy
// positional layout [_, product_id, quantity, total_price, date] applies
// and every line is data.
func (s *salesService) ImportCSV(contents []byte) (*ImportResult, error) {
	result := newImportResult()

	records, err := readCSV(contents)
	if err != nil {
		result.addError(0, fmt.Sprintf("malformed csv: %v", err))
		return result, nil
	}
	if len(records) == 0 {
		return result, nil
	}

	idx := headerIndex(records[0])
	_, hasHeader := idx["product_id"]

	data := records
	if hasHeader {
		data = records[1:]
	}

	for i, record := range data {
		row := i + 1

		var productIDRaw, quantityRaw, amountRaw, dateRaw string
		if hasHeader {
			productIDRaw = field(record, idx, "product_id")
			quantityRaw = field(record, idx, "quantity")
			amountRaw = field(record, idx, "total_price")
			dateRaw = field(record, idx, "date")
		} else {
			if len(record) < 5 {
				result.Skipped++
				result.addError(row, "incomplete row")
				continue
			}
			productIDRaw = strings.TrimSpace(record[1])
			quantityRaw = strings.TrimSpace(record[2])
			amountRaw = strings.TrimSpace(record[3])
			dateRaw = strings.TrimSpace(record[4])
		}

		productID, err := parseOptionalInt(productIDRaw)
		if err != nil {
			result.Skipped++
			result.addError(row, fmt.Sprintf("invalid product_id '%s'", productIDRaw))
			continue
		}
		quantity, err := parseOptionalInt(quantityRaw)
		if err != nil {
			result.Skipped++
			result.addError(row, fmt.Sprintf("invalid quantity '%s'", quantityRaw))
			continue
		}

		if productID == 0 || quantity == 0 || dateRaw == "" {
			result.Skipped++
			result.addError(row, "missing required fields")
			continue
		}

		amount := decimal.Zero
		if amountRaw != "" {
			amount, err = money.ParseAmount(amountRaw)
			if err != nil {
				result.Skipped++
				result.addError(row, fmt.Sprintf("invalid total_price '%s'", amountRaw))
				continue
			}
		}

		date, err := time.Parse("2006-01-02", dateRaw)
		if err != nil {
			result.Skipped++
			result.addError(row, fmt.Sprintf("invalid date '%s', expected YYYY-MM-DD", dateRaw))
			continue
		}

		sale := model.Sale{
			ProductID:  uint(productID),
			Month:      int(date.Month()), // derived, never taken from the file
			Quantity:   quantity,
			TotalPrice: money.ToMinorUnits(amount),
			Date:       &date,
		}
		if err := s.saleRepo.Create(&sale); err != nil {
			if errors.Is(err, gorm.ErrForeignKeyViolated) || errors.Is(err, gorm.ErrDuplicatedKey) {
				result.Skipped++
				result.addError(row, fmt.Sprintf("constraint violation: %v", err))
				continue
			}
			// Store fault: earlier rows stay committed, the request fails.
			return nil, err
		}
		result.Created++
	}

	return result, nil
}

func parseOptionalInt(raw string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	return strconv.Atoi(raw)
}

func (s *salesService) ExportCSV(year *int) ([]byte, error) {
	sales, err := s.saleRepo.FindAll(year)
	if err != nil {
		return nil, err
	}

	rows := make([][]string, 0, len(sales))
	for _, sale := range sales {
		date := ""
		if sale.Date != nil {
			date = sale.Date.Format("2006-01-02")
		}
		rows = append(rows, []string{
			strconv.FormatUint(uint64(sale.ID), 10),
			strconv.FormatUint(uint64(sale.ProductID), 10),
			strconv.Itoa(sale.Quantity),
			money.FromMinorUnits(sale.TotalPrice).StringFixed(2),
			date,
		})
	}
	return writeCSV([]string{"id", "product_id", "quantity", "total_price", "date"}, rows)
}

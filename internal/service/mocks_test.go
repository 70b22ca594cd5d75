package service

import (
	"strings"

	"go-sales-tracker/internal/model"
	"go-sales-tracker/internal/repository"

	"gorm.io/gorm"
)

// --- Mock Repositories ---

type mockCategoryRepo struct {
	categories []model.Category
	batchErr   error
	nextID     uint
}

func newMockCategoryRepo(names ...string) *mockCategoryRepo {
	repo := &mockCategoryRepo{}
	for _, name := range names {
		repo.nextID++
		repo.categories = append(repo.categories, model.Category{ID: repo.nextID, Name: name})
	}
	return repo
}

func (m *mockCategoryRepo) FindAll() ([]model.Category, error) {
	return m.categories, nil
}

func (m *mockCategoryRepo) FindByID(id uint) (*model.Category, error) {
	for i := range m.categories {
		if m.categories[i].ID == id {
			category := m.categories[i]
			return &category, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCategoryRepo) FindByNameCI(name string) (*model.Category, error) {
	for i := range m.categories {
		if strings.EqualFold(m.categories[i].Name, name) {
			category := m.categories[i]
			return &category, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCategoryRepo) ExistingNamesCI() (map[string]bool, error) {
	existing := make(map[string]bool, len(m.categories))
	for _, category := range m.categories {
		existing[strings.ToLower(category.Name)] = true
	}
	return existing, nil
}

func (m *mockCategoryRepo) Create(category *model.Category) error {
	m.nextID++
	category.ID = m.nextID
	m.categories = append(m.categories, *category)
	return nil
}

func (m *mockCategoryRepo) CreateAll(categories []model.Category) error {
	if m.batchErr != nil {
		return m.batchErr
	}
	for i := range categories {
		m.nextID++
		categories[i].ID = m.nextID
	}
	m.categories = append(m.categories, categories...)
	return nil
}

func (m *mockCategoryRepo) Update(category *model.Category) error {
	for i := range m.categories {
		if m.categories[i].ID == category.ID {
			m.categories[i] = *category
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

type mockProductRepo struct {
	products    []model.Product
	categoryIDs map[uint]bool
	batchErr    error
	nextID      uint
}

func (m *mockProductRepo) FindAll() ([]model.Product, error) {
	return m.products, nil
}

func (m *mockProductRepo) FindByID(id uint) (*model.Product, error) {
	for i := range m.products {
		if m.products[i].ID == id {
			product := m.products[i]
			return &product, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockProductRepo) CategoryIDSet() (map[uint]bool, error) {
	return m.categoryIDs, nil
}

func (m *mockProductRepo) Create(product *model.Product) error {
	m.nextID++
	product.ID = m.nextID
	m.products = append(m.products, *product)
	return nil
}

func (m *mockProductRepo) CreateAll(products []model.Product) error {
	if m.batchErr != nil {
		return m.batchErr
	}
	for i := range products {
		m.nextID++
		products[i].ID = m.nextID
	}
	m.products = append(m.products, products...)
	return nil
}

func (m *mockProductRepo) Update(product *model.Product) error {
	for i := range m.products {
		if m.products[i].ID == product.ID {
			m.products[i] = *product
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (m *mockProductRepo) Delete(id uint) error {
	for i := range m.products {
		if m.products[i].ID == id {
			m.products = append(m.products[:i], m.products[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

type mockSaleRepo struct {
	sales      []model.Sale
	aggregates []repository.MonthlyAggregate
	years      []int
	createErr  map[uint]error // keyed by product id
	nextID     uint
}

func (m *mockSaleRepo) Create(sale *model.Sale) error {
	if err := m.createErr[sale.ProductID]; err != nil {
		return err
	}
	m.nextID++
	sale.ID = m.nextID
	m.sales = append(m.sales, *sale)
	return nil
}

func (m *mockSaleRepo) FindAll(year *int) ([]model.Sale, error) {
	if year == nil {
		return m.sales, nil
	}
	var filtered []model.Sale
	for _, sale := range m.sales {
		if sale.Date != nil && sale.Date.Year() == *year {
			filtered = append(filtered, sale)
		}
	}
	return filtered, nil
}

func (m *mockSaleRepo) MonthlyAggregate(year *int) ([]repository.MonthlyAggregate, error) {
	return m.aggregates, nil
}

func (m *mockSaleRepo) DistinctYears() ([]int, error) {
	return m.years, nil
}

func (m *mockSaleRepo) CountByProductID(productID uint) (int64, error) {
	var count int64
	for _, sale := range m.sales {
		if sale.ProductID == productID {
			count++
		}
	}
	return count, nil
}

type mockMonthlyRepo struct {
	entries []model.MonthlySales
	nextID  uint
}

func (m *mockMonthlyRepo) FindByYear(year int) ([]model.MonthlySales, error) {
	var entries []model.MonthlySales
	for _, entry := range m.entries {
		if entry.Year == year {
			entries = append(entries, entry)
		}
	}
	return entries, nil
}

func (m *mockMonthlyRepo) Upsert(year, month, quantity int, totalPrice int64) (*model.MonthlySales, error) {
	for i := range m.entries {
		if m.entries[i].Year == year && m.entries[i].Month == month {
			m.entries[i].Quantity = quantity
			m.entries[i].TotalPrice = totalPrice
			entry := m.entries[i]
			return &entry, nil
		}
	}
	m.nextID++
	entry := model.MonthlySales{ID: m.nextID, Year: year, Month: month, Quantity: quantity, TotalPrice: totalPrice}
	m.entries = append(m.entries, entry)
	return &entry, nil
}

func (m *mockMonthlyRepo) DistinctYears() ([]int, error) {
	seen := make(map[int]bool)
	var years []int
	for _, entry := range m.entries {
		if !seen[entry.Year] {
			seen[entry.Year] = true
			years = append(years, entry.Year)
		}
	}
	return years, nil
}

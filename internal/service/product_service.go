package service

import (
	"errors"
	"fmt"
	"strconv"

	"go-sales-tracker/internal/model"
	"go-sales-tracker/internal/repository"
	"go-sales-tracker/pkg/money"
	"go-sales-tracker/pkg/validator"

	"gorm.io/gorm"
)

type ProductService interface {
	List() ([]model.Product, error)
	Create(req *model.Product) (*model.Product, error)
	Update(id uint, req *model.Product) (*model.Product, error)
	Delete(id uint) error
	ImportCSV(contents []byte) (*ImportResult, error)
	ExportCSV() ([]byte, error)
}

type productService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	saleRepo     repository.SaleRepository
}

func NewProductService(pRepo repository.ProductRepository, cRepo repository.CategoryRepository, sRepo repository.SaleRepository) ProductService {
	return &productService{
		productRepo:  pRepo,
		categoryRepo: cRepo,
		saleRepo:     sRepo,
	}
}

func (s *productService) List() ([]model.Product, error) {
	return s.productRepo.FindAll()
}

func (s *productService) Create(req *model.Product) (*model.Product, error) {
	// 1. Validasi Struct Dasar
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return nil, fmt.Errorf("validation failed: field '%s' failed on tag '%s'", firstErr.FailedField, firstErr.Tag)
	}

	// 2. Referential check terhadap category
	if _, err := s.categoryRepo.FindByID(req.CategoryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryMissing
		}
		return nil, err
	}

	req.Category = nil
	if err := s.productRepo.Create(req); err != nil {
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return nil, ErrCategoryMissing
		}
		return nil, err
	}
	return req, nil
}

func (s *productService) Update(id uint, req *model.Product) (*model.Product, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return nil, fmt.Errorf("validation failed: field '%s' failed on tag '%s'", firstErr.FailedField, firstErr.Tag)
	}

	existing, err := s.productRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	if _, err := s.categoryRepo.FindByID(req.CategoryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryMissing
		}
		return nil, err
	}

	// Full-field update
	existing.Name = req.Name
	existing.Description = req.Description
	existing.CategoryID = req.CategoryID
	existing.Price = req.Price
	existing.Brand = req.Brand
	existing.Category = nil

	if err := s.productRepo.Update(existing); err != nil {
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return nil, ErrCategoryMissing
		}
		return nil, err
	}
	return existing, nil
}

// Delete is restricted: a product still referenced by sale rows is not
// removed, so the sales history never dangles.
func (s *productService) Delete(id uint) error {
	if _, err := s.productRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductNotFound
		}
		return err
	}

	count, err := s.saleRepo.CountByProductID(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrProductHasSales
	}

	if err := s.productRepo.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductNotFound
		}
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return ErrProductHasSales
		}
		return err
	}
	return nil
}

var productCSVColumns = []string{"name", "description", "category_id", "price", "brand"}

// ImportCSV is all-or-nothing, like the category import: one invalid row
// rejects the whole file with zero rows persisted.
func (s *productService) ImportCSV(contents []byte) (*ImportResult, error) {
	result := newImportResult()

	records, err := readCSV(contents)
	if err != nil {
		result.addError(0, fmt.Sprintf("malformed csv: %v", err))
		return result, nil
	}
	if len(records) == 0 {
		result.addError(0, "empty file")
		return result, nil
	}

	idx := headerIndex(records[0])
	for _, col := range productCSVColumns {
		if _, ok := idx[col]; !ok {
			result.addError(0, fmt.Sprintf("header is missing column '%s'", col))
			return result, nil
		}
	}

	categoryIDs, err := s.productRepo.CategoryIDSet()
	if err != nil {
		return nil, err
	}

	batch := make([]model.Product, 0, len(records)-1)
	for i, record := range records[1:] {
		row := i + 1

		name := field(record, idx, "name")
		description := field(record, idx, "description")
		brand := field(record, idx, "brand")
		if name == "" || description == "" || brand == "" {
			result.addError(row, "missing required fields")
			continue
		}

		categoryID, err := strconv.ParseUint(field(record, idx, "category_id"), 10, 64)
		if err != nil {
			result.addError(row, fmt.Sprintf("invalid category_id '%s'", field(record, idx, "category_id")))
			continue
		}
		if !categoryIDs[uint(categoryID)] {
			result.addError(row, fmt.Sprintf("category %d does not exist", categoryID))
			continue
		}

		price, err := money.ParseAmount(field(record, idx, "price"))
		if err != nil {
			result.addError(row, fmt.Sprintf("invalid price '%s'", field(record, idx, "price")))
			continue
		}

		batch = append(batch, model.Product{
			Name:        name,
			Description: description,
			CategoryID:  uint(categoryID),
			Price:       price,
			Brand:       brand,
		})
	}

	if len(result.Errors) > 0 {
		result.Skipped = len(result.Errors)
		return result, nil
	}

	if err := s.productRepo.CreateAll(batch); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) || errors.Is(err, gorm.ErrForeignKeyViolated) {
			result.Skipped = len(batch)
			result.addError(0, "constraint violation while saving; no rows were created")
			return result, nil
		}
		return nil, err
	}
	result.Created = len(batch)
	return result, nil
}

func (s *productService) ExportCSV() ([]byte, error) {
	products, err := s.productRepo.FindAll()
	if err != nil {
		return nil, err
	}

	rows := make([][]string, 0, len(products))
	for _, product := range products {
		rows = append(rows, []string{
			strconv.FormatUint(uint64(product.ID), 10),
			product.Name,
			product.Description,
			strconv.FormatUint(uint64(product.CategoryID), 10),
			product.Price.StringFixed(2),
			product.Brand,
		})
	}
	return writeCSV([]string{"id", "name", "description", "category_id", "price", "brand"}, rows)
}

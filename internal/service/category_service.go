package service

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"go-sales-tracker/internal/model"
	"go-sales-tracker/internal/repository"
	"go-sales-tracker/pkg/validator"

	"gorm.io/gorm"
)

type CategoryService interface {
	List() ([]model.Category, error)
	Create(req *model.Category) (*model.Category, error)
	Rename(id uint, name string) (*model.Category, error)
	ImportCSV(contents []byte) (*ImportResult, error)
	ExportCSV() ([]byte, error)
}

type categoryService struct {
	categoryRepo repository.CategoryRepository
}

func NewCategoryService(repo repository.CategoryRepository) CategoryService {
	return &categoryService{categoryRepo: repo}
}

func (s *categoryService) List() ([]model.Category, error) {
	return s.categoryRepo.FindAll()
}

func (s *categoryService) Create(req *model.Category) (*model.Category, error) {
	req.Name = strings.TrimSpace(req.Name)

	// 1. Validasi Struct Dasar
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return nil, fmt.Errorf("validation failed: field '%s' failed on tag '%s'", firstErr.FailedField, firstErr.Tag)
	}

	// 2. Cek Duplikasi nama (case-insensitive)
	existing, err := s.categoryRepo.FindByNameCI(req.Name)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, ErrDuplicateCategory
	}

	// 3. Simpan ke Database. The unique index catches the race where a
	// concurrent writer slipped past the pre-check.
	if err := s.categoryRepo.Create(req); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateCategory
		}
		return nil, err
	}
	return req, nil
}

func (s *categoryService) Rename(id uint, name string) (*model.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.New("validation failed: field 'Category.Name' failed on tag 'required'")
	}

	category, err := s.categoryRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}

	existing, err := s.categoryRepo.FindByNameCI(name)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if existing != nil && existing.ID != id {
		return nil, ErrDuplicateCategory
	}

	category.Name = name
	if err := s.categoryRepo.Update(category); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateCategory
		}
		return nil, err
	}
	return category, nil
}

// validCategoryHeader accepts exactly the column sets "name" and "id,name".
func validCategoryHeader(idx map[string]int) bool {
	if _, ok := idx["name"]; !ok {
		return false
	}
	for col := range idx {
		if col != "name" && col != "id" {
			return false
		}
	}
	return true
}

// ImportCSV is all-or-nothing: if any data row fails validation, nothing
// is persisted and every failure is reported with its 1-based row number.
func (s *categoryService) ImportCSV(contents []byte) (*ImportResult, error) {
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
	if !validCategoryHeader(idx) {
		result.addError(0, "header must contain exactly the columns 'name' or 'id,name'")
		return result, nil
	}

	existing, err := s.categoryRepo.ExistingNamesCI()
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	batch := make([]model.Category, 0, len(records)-1)
	for i, record := range records[1:] {
		row := i + 1
		name := field(record, idx, "name")
		key := strings.ToLower(name)
		switch {
		case name == "":
			result.addError(row, "name is required")
		case seen[key]:
			result.addError(row, fmt.Sprintf("duplicate name '%s' in file", name))
		case existing[key]:
			result.addError(row, fmt.Sprintf("category '%s' already exists", name))
		default:
			seen[key] = true
			batch = append(batch, model.Category{Name: name})
		}
	}

	if len(result.Errors) > 0 {
		result.Skipped = len(result.Errors)
		return result, nil
	}

	if err := s.categoryRepo.CreateAll(batch); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Race with a concurrent writer; the batch rolled back whole.
			result.Skipped = len(batch)
			result.addError(0, "duplicate category name detected while saving; no rows were created")
			return result, nil
		}
		return nil, err
	}
	result.Created = len(batch)
	return result, nil
}

func (s *categoryService) ExportCSV() ([]byte, error) {
	categories, err := s.categoryRepo.FindAll()
	if err != nil {
		return nil, err
	}

	rows := make([][]string, 0, len(categories))
	for _, category := range categories {
		rows = append(rows, []string{
			strconv.FormatUint(uint64(category.ID), 10),
			category.Name,
		})
	}
	return writeCSV([]string{"id", "name"}, rows)
}

package repository

import (
	"strings"

	"go-sales-tracker/internal/model"

	"gorm.io/gorm"
)

type CategoryRepository interface {
	FindAll() ([]model.Category, error)
	FindByID(id uint) (*model.Category, error)
	FindByNameCI(name string) (*model.Category, error)
	ExistingNamesCI() (map[string]bool, error)
	Create(category *model.Category) error
	CreateAll(categories []model.Category) error
	Update(category *model.Category) error
}

type categoryRepo struct {
	db *gorm.DB
}

func NewCategoryRepo(db *gorm.DB) CategoryRepository {
	return &categoryRepo{db}
}

func (r *categoryRepo) FindAll() ([]model.Category, error) {
	var categories []model.Category
	err := r.db.Order("id ASC").Find(&categories).Error
	return categories, err
}

func (r *categoryRepo) FindByID(id uint) (*model.Category, error) {
	var category model.Category
	if err := r.db.First(&category, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

// FindByNameCI matches names case-insensitively, mirroring the unique
// index on LOWER(name).
func (r *categoryRepo) FindByNameCI(name string) (*model.Category, error) {
	var category model.Category
	if err := r.db.First(&category, "LOWER(name) = LOWER(?)", name).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepo) ExistingNamesCI() (map[string]bool, error) {
	var names []string
	if err := r.db.Model(&model.Category{}).Pluck("name", &names).Error; err != nil {
		return nil, err
	}
	existing := make(map[string]bool, len(names))
	for _, name := range names {
		existing[strings.ToLower(name)] = true
	}
	return existing, nil
}

func (r *categoryRepo) Create(category *model.Category) error {
	return r.db.Create(category).Error
}

// CreateAll persists the whole batch in one transaction; either every
// category is created or none is.
func (r *categoryRepo) CreateAll(categories []model.Category) error {
	if len(categories) == 0 {
		return nil
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&categories).Error
	})
}

func (r *categoryRepo) Update(category *model.Category) error {
	return r.db.Save(category).Error
}

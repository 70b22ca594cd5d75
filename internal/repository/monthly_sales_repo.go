package repository

import (
	"errors"

	"go-sales-tracker/internal/model"

	"gorm.io/gorm"
)

type MonthlySalesRepository interface {
	FindByYear(year int) ([]model.MonthlySales, error)
	Upsert(year, month, quantity int, totalPrice int64) (*model.MonthlySales, error)
	DistinctYears() ([]int, error)
}

type monthlySalesRepo struct {
	db *gorm.DB
}

func NewMonthlySalesRepo(db *gorm.DB) MonthlySalesRepository {
	return &monthlySalesRepo{db}
}

func (r *monthlySalesRepo) FindByYear(year int) ([]model.MonthlySales, error) {
	var entries []model.MonthlySales
	err := r.db.Where("year = ?", year).Order("month ASC").Find(&entries).Error
	return entries, err
}

// Upsert overwrites the override for (year, month) in place, or inserts a
// new row. At most one row per calendar month survives; the unique index
// on (year, month) is the final arbiter under concurrent writers.
func (r *monthlySalesRepo) Upsert(year, month, quantity int, totalPrice int64) (*model.MonthlySales, error) {
	var entry model.MonthlySales
	err := r.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Where("year = ? AND month = ?", year, month).First(&entry).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			entry = model.MonthlySales{
				Year:       year,
				Month:      month,
				Quantity:   quantity,
				TotalPrice: totalPrice,
			}
			return tx.Create(&entry).Error
		}
		if err != nil {
			return err
		}

		entry.Quantity = quantity
		entry.TotalPrice = totalPrice
		return tx.Save(&entry).Error
	})
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *monthlySalesRepo) DistinctYears() ([]int, error) {
	var years []int
	err := r.db.Model(&model.MonthlySales{}).Distinct().Pluck("year", &years).Error
	return years, err
}

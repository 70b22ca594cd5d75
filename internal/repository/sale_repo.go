package repository

import (
	"go-sales-tracker/internal/model"

	"gorm.io/gorm"
)

type SaleRepository interface {
	Create(sale *model.Sale) error
	FindAll(year *int) ([]model.Sale, error)
	MonthlyAggregate(year *int) ([]MonthlyAggregate, error)
	DistinctYears() ([]int, error)
	CountByProductID(productID uint) (int64, error)
}

// MonthlyAggregate holds the per-month sums over raw sale rows.
type MonthlyAggregate struct {
	Month      int   `json:"month"`
	Quantity   int   `json:"quantity"`
	TotalPrice int64 `json:"total_price"`
}

type saleRepo struct {
	db *gorm.DB
}

func NewSaleRepo(db *gorm.DB) SaleRepository {
	return &saleRepo{db}
}

func (r *saleRepo) Create(sale *model.Sale) error {
	return r.db.Create(sale).Error
}

func (r *saleRepo) FindAll(year *int) ([]model.Sale, error) {
	var sales []model.Sale
	query := r.db.Model(&model.Sale{})
	if year != nil {
		query = query.Where("EXTRACT(YEAR FROM date) = ?", *year)
	}
	err := query.Order("id ASC").Find(&sales).Error
	return sales, err
}

func (r *saleRepo) MonthlyAggregate(year *int) ([]MonthlyAggregate, error) {
	var results []MonthlyAggregate

	query := r.db.Model(&model.Sale{}).
		Select(`
			month,
			COALESCE(SUM(quantity), 0) as quantity,
			COALESCE(SUM(total_price), 0) as total_price
		`)
	if year != nil {
		query = query.Where("EXTRACT(YEAR FROM date) = ?", *year)
	}

	rows, err := query.Group("month").Order("month ASC").Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var agg MonthlyAggregate
		if err := rows.Scan(&agg.Month, &agg.Quantity, &agg.TotalPrice); err != nil {
			return nil, err
		}
		results = append(results, agg)
	}

	return results, nil
}

func (r *saleRepo) DistinctYears() ([]int, error) {
	var years []int
	err := r.db.Model(&model.Sale{}).
		Where("date IS NOT NULL").
		Distinct().
		Pluck("CAST(EXTRACT(YEAR FROM date) AS INTEGER)", &years).Error
	return years, err
}

func (r *saleRepo) CountByProductID(productID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.Sale{}).Where("product_id = ?", productID).Count(&count).Error
	return count, err
}

package model

import "github.com/shopspring/decimal"

type Product struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	Name        string          `gorm:"type:varchar(100);not null" json:"name" validate:"required"`
	Description string          `gorm:"type:varchar(120);not null" json:"description" validate:"required"`
	CategoryID  uint            `gorm:"not null" json:"category_id" validate:"required"`
	Category    *Category       `gorm:"foreignKey:CategoryID" json:"category,omitempty" validate:"-"` // Relasi - skip validation
	Price       decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"price"`
	Brand       string          `gorm:"type:varchar(120);not null" json:"brand" validate:"required"`
}

func (Product) TableName() string {
	return "products"
}

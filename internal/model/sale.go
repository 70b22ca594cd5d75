package model

import "time"

// Sale is one raw sales record, usually ingested from CSV. Month is always
// derived from Date by the writer when Date is present; both columns are
// persisted for compatibility with pre-existing rows that have no date.
type Sale struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	ProductID  uint       `gorm:"not null" json:"product_id" validate:"required"`
	Product    *Product   `gorm:"foreignKey:ProductID" json:"product,omitempty" validate:"-"`
	Month      int        `gorm:"not null" json:"month" validate:"min=1,max=12"`
	Quantity   int        `gorm:"not null" json:"quantity" validate:"required,gt=0"`
	TotalPrice int64      `gorm:"not null" json:"total_price"` // minor units (cents)
	Date       *time.Time `gorm:"type:date" json:"date,omitempty"`
}

func (Sale) TableName() string {
	return "sales"
}

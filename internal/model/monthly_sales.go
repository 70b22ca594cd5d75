package model

// MonthlySales is a manually entered monthly figure. When present it
// supersedes the computed aggregate for its (year, month) entirely; it is
// never additive.
type MonthlySales struct {
	ID         uint  `gorm:"primaryKey" json:"id"`
	Year       int   `gorm:"not null;uniqueIndex:idx_monthly_sales_year_month" json:"year"`
	Month      int   `gorm:"not null;uniqueIndex:idx_monthly_sales_year_month" json:"month"`
	Quantity   int   `gorm:"not null" json:"quantity"`
	TotalPrice int64 `gorm:"not null" json:"total_price"` // minor units (cents)
}

func (MonthlySales) TableName() string {
	return "monthly_sales"
}

package model

// Category groups products. Names are unique case-insensitively, enforced
// by a pre-insert lookup and, as the final arbiter, a unique index on
// LOWER(name).
type Category struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"type:varchar(100);not null" json:"name" validate:"required"`
}

func (Category) TableName() string {
	return "categories"
}

package models

import "time"

// Product is a bakery listing. Price is stored in minor currency units.
type Product struct {
	ID           int64     `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name         string    `gorm:"column:name;not null" json:"name"`
	Price        int64     `gorm:"column:price;not null" json:"price"`
	Description  string    `gorm:"column:description" json:"description"`
	CategoryID   *int64    `gorm:"column:category_id" json:"categoryId"`
	Category     *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	ImageURL     string    `gorm:"column:image_url" json:"imageUrl"`
	IsBestSeller bool      `gorm:"column:is_best_seller;not null;default:false" json:"isBestSeller"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime" json:"-"`
}

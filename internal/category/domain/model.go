package domain

import "time"

type Category struct {
	ID          int64     `gorm:"primaryKey"`
	StoreID     int64     `gorm:"column:store_id"`
	BillboardID int64     `gorm:"column:billboard_id"`
	Name        string    `gorm:"column:name"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (Category) TableName() string { return "categories" }

// Listing is a category joined with its billboard for storefront reads.
type Listing struct {
	Category
	BillboardLabel    string `gorm:"column:billboard_label"`
	BillboardImageURL string `gorm:"column:billboard_image_url"`
}

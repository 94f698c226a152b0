package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID         int64           `gorm:"primaryKey"`
	StoreID    int64           `gorm:"column:store_id"`
	CategoryID int64           `gorm:"column:category_id"`
	SizeID     int64           `gorm:"column:size_id"`
	ColorID    int64           `gorm:"column:color_id"`
	Name       string          `gorm:"column:name"`
	Price      decimal.Decimal `gorm:"column:price"`
	IsFeatured bool            `gorm:"column:is_featured"`
	IsArchived bool            `gorm:"column:is_archived"`
	CreatedAt  time.Time       `gorm:"column:created_at"`
	UpdatedAt  time.Time       `gorm:"column:updated_at"`
}

func (Product) TableName() string { return "products" }

type Image struct {
	ID        int64     `gorm:"primaryKey"`
	ProductID int64     `gorm:"column:product_id"`
	URL       string    `gorm:"column:url"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (Image) TableName() string { return "images" }

// Listing is a product joined with the names of what it references.
type Listing struct {
	Product
	CategoryName string `gorm:"column:category_name"`
	SizeName     string `gorm:"column:size_name"`
	SizeValue    string `gorm:"column:size_value"`
	ColorName    string `gorm:"column:color_name"`
	ColorValue   string `gorm:"column:color_value"`
}

// ListFilter narrows a storefront listing. Nil fields are not applied.
type ListFilter struct {
	StoreID    int64
	CategoryID *int64
	SizeID     *int64
	ColorID    *int64
	IsFeatured *bool
	// IncludeArchived is false for storefront reads.
	IncludeArchived bool
	SortBy          string
	OrderBy         string
}

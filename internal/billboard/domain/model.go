package domain

import "time"

type Billboard struct {
	ID        int64     `gorm:"primaryKey"`
	StoreID   int64     `gorm:"column:store_id"`
	Label     string    `gorm:"column:label"`
	ImageURL  string    `gorm:"column:image_url"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (Billboard) TableName() string { return "billboards" }

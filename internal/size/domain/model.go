package domain

import "time"

type Size struct {
	ID        int64     `gorm:"primaryKey"`
	StoreID   int64     `gorm:"column:store_id"`
	Name      string    `gorm:"column:name"`
	Value     string    `gorm:"column:value"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (Size) TableName() string { return "sizes" }

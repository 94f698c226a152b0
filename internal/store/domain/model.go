package domain

import "time"

type Store struct {
	ID        int64     `gorm:"primaryKey"`
	UserID    string    `gorm:"column:user_id"`
	Name      string    `gorm:"column:name"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (Store) TableName() string { return "stores" }

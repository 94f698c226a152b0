package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, db *gorm.DB, color *Color) error
	FindByID(ctx context.Context, db *gorm.DB, storeID, id int64) (*Color, error)
	List(ctx context.Context, db *gorm.DB, storeID int64) ([]Color, error)
	Update(ctx context.Context, db *gorm.DB, color *Color) error
	Delete(ctx context.Context, db *gorm.DB, storeID, id int64) error
}

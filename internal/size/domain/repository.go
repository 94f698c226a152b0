package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, db *gorm.DB, size *Size) error
	FindByID(ctx context.Context, db *gorm.DB, storeID, id int64) (*Size, error)
	List(ctx context.Context, db *gorm.DB, storeID int64) ([]Size, error)
	Update(ctx context.Context, db *gorm.DB, size *Size) error
	Delete(ctx context.Context, db *gorm.DB, storeID, id int64) error
}

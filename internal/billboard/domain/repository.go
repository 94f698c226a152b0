package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, db *gorm.DB, billboard *Billboard) error
	FindByID(ctx context.Context, db *gorm.DB, storeID, id int64) (*Billboard, error)
	List(ctx context.Context, db *gorm.DB, storeID int64) ([]Billboard, error)
	Update(ctx context.Context, db *gorm.DB, billboard *Billboard) error
	Delete(ctx context.Context, db *gorm.DB, storeID, id int64) error
}

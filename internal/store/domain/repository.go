package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, db *gorm.DB, store *Store) error
	FindByID(ctx context.Context, db *gorm.DB, id int64) (*Store, error)
	ListByOwner(ctx context.Context, db *gorm.DB, userID string) ([]Store, error)
	Update(ctx context.Context, db *gorm.DB, store *Store) error
	Delete(ctx context.Context, db *gorm.DB, id int64) error
}

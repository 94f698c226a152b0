package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, db *gorm.DB, order *Order, items []OrderItem) error
	FindByID(ctx context.Context, db *gorm.DB, storeID, id int64) (*Order, error)
	List(ctx context.Context, db *gorm.DB, storeID int64) ([]Order, error)
	LinesFor(ctx context.Context, db *gorm.DB, orderIDs []int64) (map[int64][]Line, error)
	Update(ctx context.Context, db *gorm.DB, order *Order) error
	Delete(ctx context.Context, db *gorm.DB, storeID, id int64) error

	// ProductsInStore returns which of productIDs exist in storeID.
	ProductsInStore(ctx context.Context, db *gorm.DB, storeID int64, productIDs []int64) (map[int64]bool, error)
}

package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, db *gorm.DB, category *Category) error
	FindByID(ctx context.Context, db *gorm.DB, storeID, id int64) (*Category, error)
	FindListing(ctx context.Context, db *gorm.DB, storeID, id int64) (*Listing, error)
	List(ctx context.Context, db *gorm.DB, storeID int64) ([]Listing, error)
	Update(ctx context.Context, db *gorm.DB, category *Category) error
	Delete(ctx context.Context, db *gorm.DB, storeID, id int64) error
	// BillboardInStore reports whether billboardID exists in storeID.
	BillboardInStore(ctx context.Context, db *gorm.DB, storeID, billboardID int64) (bool, error)
}

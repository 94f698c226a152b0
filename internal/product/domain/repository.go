package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, db *gorm.DB, product *Product) error
	FindByID(ctx context.Context, db *gorm.DB, storeID, id int64) (*Product, error)
	FindListing(ctx context.Context, db *gorm.DB, storeID, id int64) (*Listing, error)
	List(ctx context.Context, db *gorm.DB, filter ListFilter) ([]Listing, error)
	Update(ctx context.Context, db *gorm.DB, product *Product) error
	Delete(ctx context.Context, db *gorm.DB, storeID, id int64) error

	ReplaceImages(ctx context.Context, db *gorm.DB, productID int64, images []Image) error
	ImagesFor(ctx context.Context, db *gorm.DB, productIDs []int64) (map[int64][]Image, error)

	// InStore counts rows of table with the given id in storeID.
	InStore(ctx context.Context, db *gorm.DB, table string, storeID, id int64) (bool, error)
}

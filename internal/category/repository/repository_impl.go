package repository

import (
	"context"

	"github.com/smallbiznis/storeadmin/internal/category/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

const listingColumns = `c.id, c.store_id, c.billboard_id, c.name, c.created_at, c.updated_at,
	b.label AS billboard_label, b.image_url AS billboard_image_url`

func (r *repo) Create(ctx context.Context, db *gorm.DB, category *domain.Category) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO categories (id, store_id, billboard_id, name, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		category.ID,
		category.StoreID,
		category.BillboardID,
		category.Name,
		category.CreatedAt,
		category.UpdatedAt,
	).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, storeID, id int64) (*domain.Category, error) {
	var c domain.Category
	err := db.WithContext(ctx).Raw(
		`SELECT id, store_id, billboard_id, name, created_at, updated_at
		 FROM categories WHERE store_id = ? AND id = ?`,
		storeID,
		id,
	).Scan(&c).Error
	if err != nil {
		return nil, err
	}
	if c.ID == 0 {
		return nil, nil
	}
	return &c, nil
}

func (r *repo) FindListing(ctx context.Context, db *gorm.DB, storeID, id int64) (*domain.Listing, error) {
	var l domain.Listing
	err := db.WithContext(ctx).Raw(
		`SELECT `+listingColumns+`
		 FROM categories c JOIN billboards b ON b.id = c.billboard_id
		 WHERE c.store_id = ? AND c.id = ?`,
		storeID,
		id,
	).Scan(&l).Error
	if err != nil {
		return nil, err
	}
	if l.ID == 0 {
		return nil, nil
	}
	return &l, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, storeID int64) ([]domain.Listing, error) {
	var items []domain.Listing
	err := db.WithContext(ctx).Raw(
		`SELECT `+listingColumns+`
		 FROM categories c JOIN billboards b ON b.id = c.billboard_id
		 WHERE c.store_id = ? ORDER BY c.created_at DESC, c.id DESC`,
		storeID,
	).Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, category *domain.Category) error {
	if category == nil {
		return gorm.ErrInvalidData
	}
	return db.WithContext(ctx).Exec(
		`UPDATE categories SET billboard_id = ?, name = ?, updated_at = ?
		 WHERE store_id = ? AND id = ?`,
		category.BillboardID,
		category.Name,
		category.UpdatedAt,
		category.StoreID,
		category.ID,
	).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, storeID, id int64) error {
	return db.WithContext(ctx).Exec(
		`DELETE FROM categories WHERE store_id = ? AND id = ?`,
		storeID,
		id,
	).Error
}

func (r *repo) BillboardInStore(ctx context.Context, db *gorm.DB, storeID, billboardID int64) (bool, error) {
	var n int64
	err := db.WithContext(ctx).Raw(
		`SELECT COUNT(1) FROM billboards WHERE store_id = ? AND id = ?`,
		storeID,
		billboardID,
	).Scan(&n).Error
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

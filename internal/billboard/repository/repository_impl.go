package repository

import (
	"context"

	"github.com/smallbiznis/storeadmin/internal/billboard/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Create(ctx context.Context, db *gorm.DB, billboard *domain.Billboard) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO billboards (id, store_id, label, image_url, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		billboard.ID,
		billboard.StoreID,
		billboard.Label,
		billboard.ImageURL,
		billboard.CreatedAt,
		billboard.UpdatedAt,
	).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, storeID, id int64) (*domain.Billboard, error) {
	var b domain.Billboard
	err := db.WithContext(ctx).Raw(
		`SELECT id, store_id, label, image_url, created_at, updated_at
		 FROM billboards WHERE store_id = ? AND id = ?`,
		storeID,
		id,
	).Scan(&b).Error
	if err != nil {
		return nil, err
	}
	if b.ID == 0 {
		return nil, nil
	}
	return &b, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, storeID int64) ([]domain.Billboard, error) {
	var items []domain.Billboard
	err := db.WithContext(ctx).Raw(
		`SELECT id, store_id, label, image_url, created_at, updated_at
		 FROM billboards WHERE store_id = ? ORDER BY created_at DESC, id DESC`,
		storeID,
	).Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, billboard *domain.Billboard) error {
	if billboard == nil {
		return gorm.ErrInvalidData
	}
	return db.WithContext(ctx).Exec(
		`UPDATE billboards SET label = ?, image_url = ?, updated_at = ?
		 WHERE store_id = ? AND id = ?`,
		billboard.Label,
		billboard.ImageURL,
		billboard.UpdatedAt,
		billboard.StoreID,
		billboard.ID,
	).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, storeID, id int64) error {
	return db.WithContext(ctx).Exec(
		`DELETE FROM billboards WHERE store_id = ? AND id = ?`,
		storeID,
		id,
	).Error
}

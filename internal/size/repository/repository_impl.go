package repository

import (
	"context"

	"github.com/smallbiznis/storeadmin/internal/size/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Create(ctx context.Context, db *gorm.DB, size *domain.Size) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO sizes (id, store_id, name, value, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		size.ID,
		size.StoreID,
		size.Name,
		size.Value,
		size.CreatedAt,
		size.UpdatedAt,
	).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, storeID, id int64) (*domain.Size, error) {
	var sz domain.Size
	err := db.WithContext(ctx).Raw(
		`SELECT id, store_id, name, value, created_at, updated_at
		 FROM sizes WHERE store_id = ? AND id = ?`,
		storeID,
		id,
	).Scan(&sz).Error
	if err != nil {
		return nil, err
	}
	if sz.ID == 0 {
		return nil, nil
	}
	return &sz, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, storeID int64) ([]domain.Size, error) {
	var items []domain.Size
	err := db.WithContext(ctx).Raw(
		`SELECT id, store_id, name, value, created_at, updated_at
		 FROM sizes WHERE store_id = ? ORDER BY created_at DESC, id DESC`,
		storeID,
	).Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, size *domain.Size) error {
	if size == nil {
		return gorm.ErrInvalidData
	}
	return db.WithContext(ctx).Exec(
		`UPDATE sizes SET name = ?, value = ?, updated_at = ?
		 WHERE store_id = ? AND id = ?`,
		size.Name,
		size.Value,
		size.UpdatedAt,
		size.StoreID,
		size.ID,
	).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, storeID, id int64) error {
	return db.WithContext(ctx).Exec(
		`DELETE FROM sizes WHERE store_id = ? AND id = ?`,
		storeID,
		id,
	).Error
}

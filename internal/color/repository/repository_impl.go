package repository

import (
	"context"

	"github.com/smallbiznis/storeadmin/internal/color/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Create(ctx context.Context, db *gorm.DB, color *domain.Color) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO colors (id, store_id, name, value, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		color.ID,
		color.StoreID,
		color.Name,
		color.Value,
		color.CreatedAt,
		color.UpdatedAt,
	).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, storeID, id int64) (*domain.Color, error) {
	var c domain.Color
	err := db.WithContext(ctx).Raw(
		`SELECT id, store_id, name, value, created_at, updated_at
		 FROM colors WHERE store_id = ? AND id = ?`,
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

func (r *repo) List(ctx context.Context, db *gorm.DB, storeID int64) ([]domain.Color, error) {
	var items []domain.Color
	err := db.WithContext(ctx).Raw(
		`SELECT id, store_id, name, value, created_at, updated_at
		 FROM colors WHERE store_id = ? ORDER BY created_at DESC, id DESC`,
		storeID,
	).Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, color *domain.Color) error {
	if color == nil {
		return gorm.ErrInvalidData
	}
	return db.WithContext(ctx).Exec(
		`UPDATE colors SET name = ?, value = ?, updated_at = ?
		 WHERE store_id = ? AND id = ?`,
		color.Name,
		color.Value,
		color.UpdatedAt,
		color.StoreID,
		color.ID,
	).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, storeID, id int64) error {
	return db.WithContext(ctx).Exec(
		`DELETE FROM colors WHERE store_id = ? AND id = ?`,
		storeID,
		id,
	).Error
}

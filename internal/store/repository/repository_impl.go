package repository

import (
	"context"

	"github.com/smallbiznis/storeadmin/internal/store/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Create(ctx context.Context, db *gorm.DB, store *domain.Store) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO stores (id, user_id, name, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?)`,
		store.ID,
		store.UserID,
		store.Name,
		store.CreatedAt,
		store.UpdatedAt,
	).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id int64) (*domain.Store, error) {
	var s domain.Store
	err := db.WithContext(ctx).Raw(
		`SELECT id, user_id, name, created_at, updated_at
		 FROM stores WHERE id = ?`,
		id,
	).Scan(&s).Error
	if err != nil {
		return nil, err
	}
	if s.ID == 0 {
		return nil, nil
	}
	return &s, nil
}

func (r *repo) ListByOwner(ctx context.Context, db *gorm.DB, userID string) ([]domain.Store, error) {
	var items []domain.Store
	err := db.WithContext(ctx).Raw(
		`SELECT id, user_id, name, created_at, updated_at
		 FROM stores WHERE user_id = ? ORDER BY created_at ASC, id ASC`,
		userID,
	).Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, store *domain.Store) error {
	if store == nil {
		return gorm.ErrInvalidData
	}
	return db.WithContext(ctx).Exec(
		`UPDATE stores SET name = ?, updated_at = ? WHERE id = ?`,
		store.Name,
		store.UpdatedAt,
		store.ID,
	).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id int64) error {
	return db.WithContext(ctx).Exec(`DELETE FROM stores WHERE id = ?`, id).Error
}

package repository

import (
	"context"

	"github.com/smallbiznis/storeadmin/internal/order/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Create(ctx context.Context, db *gorm.DB, order *domain.Order, items []domain.OrderItem) error {
	err := db.WithContext(ctx).Exec(
		`INSERT INTO orders (id, store_id, is_paid, phone, address, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		order.ID,
		order.StoreID,
		order.IsPaid,
		order.Phone,
		order.Address,
		order.CreatedAt,
		order.UpdatedAt,
	).Error
	if err != nil {
		return err
	}

	for _, item := range items {
		err := db.WithContext(ctx).Exec(
			`INSERT INTO order_items (id, order_id, product_id) VALUES (?, ?, ?)`,
			item.ID,
			order.ID,
			item.ProductID,
		).Error
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, storeID, id int64) (*domain.Order, error) {
	var o domain.Order
	err := db.WithContext(ctx).Raw(
		`SELECT id, store_id, is_paid, phone, address, created_at, updated_at
		 FROM orders WHERE store_id = ? AND id = ?`,
		storeID,
		id,
	).Scan(&o).Error
	if err != nil {
		return nil, err
	}
	if o.ID == 0 {
		return nil, nil
	}
	return &o, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, storeID int64) ([]domain.Order, error) {
	var items []domain.Order
	err := db.WithContext(ctx).Raw(
		`SELECT id, store_id, is_paid, phone, address, created_at, updated_at
		 FROM orders WHERE store_id = ? ORDER BY created_at DESC, id DESC`,
		storeID,
	).Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) LinesFor(ctx context.Context, db *gorm.DB, orderIDs []int64) (map[int64][]domain.Line, error) {
	out := make(map[int64][]domain.Line, len(orderIDs))
	if len(orderIDs) == 0 {
		return out, nil
	}

	var lines []domain.Line
	err := db.WithContext(ctx).Raw(
		`SELECT oi.id, oi.order_id, oi.product_id, p.name AS product_name, p.price AS product_price
		 FROM order_items oi JOIN products p ON p.id = oi.product_id
		 WHERE oi.order_id IN ? ORDER BY oi.id ASC`,
		orderIDs,
	).Scan(&lines).Error
	if err != nil {
		return nil, err
	}
	for _, line := range lines {
		out[line.OrderID] = append(out[line.OrderID], line)
	}
	return out, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, order *domain.Order) error {
	if order == nil {
		return gorm.ErrInvalidData
	}
	return db.WithContext(ctx).Exec(
		`UPDATE orders SET is_paid = ?, phone = ?, address = ?, updated_at = ?
		 WHERE store_id = ? AND id = ?`,
		order.IsPaid,
		order.Phone,
		order.Address,
		order.UpdatedAt,
		order.StoreID,
		order.ID,
	).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, storeID, id int64) error {
	return db.WithContext(ctx).Exec(
		`DELETE FROM orders WHERE store_id = ? AND id = ?`,
		storeID,
		id,
	).Error
}

func (r *repo) ProductsInStore(ctx context.Context, db *gorm.DB, storeID int64, productIDs []int64) (map[int64]bool, error) {
	found := make(map[int64]bool, len(productIDs))
	if len(productIDs) == 0 {
		return found, nil
	}

	var ids []int64
	err := db.WithContext(ctx).Raw(
		`SELECT id FROM products WHERE store_id = ? AND id IN ?`,
		storeID,
		productIDs,
	).Scan(&ids).Error
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		found[id] = true
	}
	return found, nil
}

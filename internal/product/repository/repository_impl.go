package repository

import (
	"context"
	"fmt"

	"github.com/smallbiznis/storeadmin/internal/product/domain"
	"github.com/smallbiznis/storeadmin/pkg/db/option"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

const listingColumns = `p.id, p.store_id, p.category_id, p.size_id, p.color_id, p.name, p.price,
	p.is_featured, p.is_archived, p.created_at, p.updated_at,
	c.name AS category_name, s.name AS size_name, s.value AS size_value,
	co.name AS color_name, co.value AS color_value`

var sortable = map[string]bool{
	"created_at": true,
	"updated_at": true,
	"name":       true,
	"price":      true,
}

// Reference tables a product may point at.
var referenceTables = map[string]bool{
	"categories": true,
	"sizes":      true,
	"colors":     true,
	"products":   true,
}

func (r *repo) Create(ctx context.Context, db *gorm.DB, product *domain.Product) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO products (id, store_id, category_id, size_id, color_id, name, price,
		 is_featured, is_archived, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		product.ID,
		product.StoreID,
		product.CategoryID,
		product.SizeID,
		product.ColorID,
		product.Name,
		product.Price,
		product.IsFeatured,
		product.IsArchived,
		product.CreatedAt,
		product.UpdatedAt,
	).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, storeID, id int64) (*domain.Product, error) {
	var p domain.Product
	err := db.WithContext(ctx).Raw(
		`SELECT id, store_id, category_id, size_id, color_id, name, price,
		 is_featured, is_archived, created_at, updated_at
		 FROM products WHERE store_id = ? AND id = ?`,
		storeID,
		id,
	).Scan(&p).Error
	if err != nil {
		return nil, err
	}
	if p.ID == 0 {
		return nil, nil
	}
	return &p, nil
}

func (r *repo) joined(ctx context.Context, db *gorm.DB) *gorm.DB {
	return db.WithContext(ctx).
		Table("products p").
		Select(listingColumns).
		Joins("JOIN categories c ON c.id = p.category_id").
		Joins("JOIN sizes s ON s.id = p.size_id").
		Joins("JOIN colors co ON co.id = p.color_id")
}

func (r *repo) FindListing(ctx context.Context, db *gorm.DB, storeID, id int64) (*domain.Listing, error) {
	var l domain.Listing
	err := r.joined(ctx, db).
		Where("p.store_id = ? AND p.id = ?", storeID, id).
		Scan(&l).Error
	if err != nil {
		return nil, err
	}
	if l.ID == 0 {
		return nil, nil
	}
	return &l, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, filter domain.ListFilter) ([]domain.Listing, error) {
	stmt := r.joined(ctx, db).Where("p.store_id = ?", filter.StoreID)
	if !filter.IncludeArchived {
		stmt = stmt.Where("p.is_archived = ?", false)
	}
	stmt = option.Apply(stmt,
		option.WithEquals("p.category_id", filter.CategoryID),
		option.WithEquals("p.size_id", filter.SizeID),
		option.WithEquals("p.color_id", filter.ColorID),
		option.WithEquals("p.is_featured", filter.IsFeatured),
		option.WithSortBy(option.WithQuerySortBy(filter.SortBy, filter.OrderBy, sortable).On("p")),
	)

	var items []domain.Listing
	if err := stmt.Scan(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, product *domain.Product) error {
	if product == nil {
		return gorm.ErrInvalidData
	}
	return db.WithContext(ctx).Exec(
		`UPDATE products SET category_id = ?, size_id = ?, color_id = ?, name = ?, price = ?,
		 is_featured = ?, is_archived = ?, updated_at = ?
		 WHERE store_id = ? AND id = ?`,
		product.CategoryID,
		product.SizeID,
		product.ColorID,
		product.Name,
		product.Price,
		product.IsFeatured,
		product.IsArchived,
		product.UpdatedAt,
		product.StoreID,
		product.ID,
	).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, storeID, id int64) error {
	return db.WithContext(ctx).Exec(
		`DELETE FROM products WHERE store_id = ? AND id = ?`,
		storeID,
		id,
	).Error
}

// ReplaceImages swaps the product's image set for images.
func (r *repo) ReplaceImages(ctx context.Context, db *gorm.DB, productID int64, images []domain.Image) error {
	if err := db.WithContext(ctx).Exec(`DELETE FROM images WHERE product_id = ?`, productID).Error; err != nil {
		return err
	}
	for _, img := range images {
		err := db.WithContext(ctx).Exec(
			`INSERT INTO images (id, product_id, url, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
			img.ID,
			productID,
			img.URL,
			img.CreatedAt,
			img.UpdatedAt,
		).Error
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *repo) ImagesFor(ctx context.Context, db *gorm.DB, productIDs []int64) (map[int64][]domain.Image, error) {
	out := make(map[int64][]domain.Image, len(productIDs))
	if len(productIDs) == 0 {
		return out, nil
	}

	var images []domain.Image
	err := db.WithContext(ctx).Raw(
		`SELECT id, product_id, url, created_at, updated_at
		 FROM images WHERE product_id IN ? ORDER BY created_at ASC, id ASC`,
		productIDs,
	).Scan(&images).Error
	if err != nil {
		return nil, err
	}
	for _, img := range images {
		out[img.ProductID] = append(out[img.ProductID], img)
	}
	return out, nil
}

func (r *repo) InStore(ctx context.Context, db *gorm.DB, table string, storeID, id int64) (bool, error) {
	if !referenceTables[table] {
		return false, fmt.Errorf("unknown reference table %q", table)
	}
	var n int64
	err := db.WithContext(ctx).Raw(
		fmt.Sprintf(`SELECT COUNT(1) FROM %s WHERE store_id = ? AND id = ?`, table),
		storeID,
		id,
	).Scan(&n).Error
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

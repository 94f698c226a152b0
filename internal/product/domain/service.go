package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/smallbiznis/storeadmin/internal/integrity"
	"github.com/smallbiznis/storeadmin/internal/resource"
)

type Service interface {
	List(ctx context.Context, req ListRequest) ([]Response, error)
	Get(ctx context.Context, storeID, id string) (*Response, error)
	Create(ctx context.Context, req CreateRequest) (*Response, error)
	Update(ctx context.Context, req UpdateRequest) (*Response, error)
	Delete(ctx context.Context, req DeleteRequest) (*Response, error)
}

type ImageInput struct {
	URL string `json:"url"`
}

type Fields struct {
	Name       string           `json:"name"`
	Images     []ImageInput     `json:"images"`
	Price      *decimal.Decimal `json:"price"`
	CategoryID string           `json:"categoryId"`
	SizeID     string           `json:"sizeId"`
	ColorID    string           `json:"colorId"`
	IsFeatured bool             `json:"isFeatured"`
	IsArchived bool             `json:"isArchived"`
}

type ListRequest struct {
	StoreID    string
	CategoryID string
	SizeID     string
	ColorID    string
	IsFeatured string
	SortBy     string
	OrderBy    string
}

type CreateRequest struct {
	StoreID string `json:"-"`
	Fields
}

type UpdateRequest struct {
	StoreID string `json:"-"`
	ID      string `json:"-"`
	Fields
}

type DeleteRequest struct {
	StoreID string
	ID      string
}

type ImageResponse struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

type Ref struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Value string `json:"value,omitempty"`
}

type Response struct {
	ID         string          `json:"id"`
	StoreID    string          `json:"storeId"`
	CategoryID string          `json:"categoryId"`
	SizeID     string          `json:"sizeId"`
	ColorID    string          `json:"colorId"`
	Name       string          `json:"name"`
	Price      decimal.Decimal `json:"price"`
	IsFeatured bool            `json:"isFeatured"`
	IsArchived bool            `json:"isArchived"`
	Images     []ImageResponse `json:"images"`
	Category   *Ref            `json:"category,omitempty"`
	Size       *Ref            `json:"size,omitempty"`
	Color      *Ref            `json:"color,omitempty"`
	CreatedAt  time.Time       `json:"createdAt"`
	UpdatedAt  time.Time       `json:"updatedAt"`
}

// Reference conflicts for ids that do not name a record of the product's store.
var (
	ErrCategoryNotInStore = resource.Conflict("Category does not belong to this store")
	ErrSizeNotInStore     = resource.Conflict("Size does not belong to this store")
	ErrColorNotInStore    = resource.Conflict("Color does not belong to this store")
)

var Kind = resource.Kind[Fields]{
	Name:  integrity.Product,
	Title: "Product",
	Required: []resource.Requirement[Fields]{
		{Message: "Name is required", Present: func(f Fields) bool { return resource.Text(f.Name) }},
		{Message: "Images are required", Present: hasImages},
		{Message: "Price is required", Present: func(f Fields) bool { return f.Price != nil }},
		{Message: "Category ID is required", Present: func(f Fields) bool { return resource.Text(f.CategoryID) }},
		{Message: "Size ID is required", Present: func(f Fields) bool { return resource.Text(f.SizeID) }},
		{Message: "Color ID is required", Present: func(f Fields) bool { return resource.Text(f.ColorID) }},
	},
	Validate: func(f Fields) error {
		if f.Price.IsNegative() {
			return resource.Invalid("Price must not be negative")
		}
		// Stored as NUMERIC(12, 2).
		if !f.Price.Equal(f.Price.Truncate(2)) {
			return resource.Invalid("Price must have at most 2 decimal places")
		}
		return nil
	},
}

func hasImages(f Fields) bool {
	if len(f.Images) == 0 {
		return false
	}
	for _, img := range f.Images {
		if !resource.Text(img.URL) {
			return false
		}
	}
	return true
}

package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/smallbiznis/storeadmin/internal/integrity"
	"github.com/smallbiznis/storeadmin/internal/resource"
)

// Service manages a store's orders. Every operation, reads included, is
// restricted to the store owner.
type Service interface {
	List(ctx context.Context, storeID string) ([]Response, error)
	Get(ctx context.Context, storeID, id string) (*Response, error)
	Create(ctx context.Context, req CreateRequest) (*Response, error)
	Update(ctx context.Context, req UpdateRequest) (*Response, error)
	Delete(ctx context.Context, req DeleteRequest) (*Response, error)
}

type Fields struct {
	Phone      string   `json:"phone"`
	Address    string   `json:"address"`
	IsPaid     bool     `json:"isPaid"`
	ProductIDs []string `json:"productIds"`
}

// Patch carries the mutable order fields. Nil fields are left unchanged.
type Patch struct {
	IsPaid  *bool   `json:"isPaid"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
}

type CreateRequest struct {
	StoreID string `json:"-"`
	Fields
}

type UpdateRequest struct {
	StoreID string `json:"-"`
	ID      string `json:"-"`
	Patch
}

type DeleteRequest struct {
	StoreID string
	ID      string
}

type ProductRef struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

type ItemResponse struct {
	ID        string      `json:"id"`
	ProductID string      `json:"productId"`
	Product   *ProductRef `json:"product,omitempty"`
}

type Response struct {
	ID         string          `json:"id"`
	StoreID    string          `json:"storeId"`
	IsPaid     bool            `json:"isPaid"`
	Phone      string          `json:"phone"`
	Address    string          `json:"address"`
	OrderItems []ItemResponse  `json:"orderItems"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
	CreatedAt  time.Time       `json:"createdAt"`
	UpdatedAt  time.Time       `json:"updatedAt"`
}

var ErrProductNotInStore = resource.Conflict("Product does not belong to this store")

var Kind = resource.Kind[Fields]{
	Name:  integrity.Order,
	Title: "Order",
	Required: []resource.Requirement[Fields]{
		{Message: "Phone is required", Present: func(f Fields) bool { return resource.Text(f.Phone) }},
		{Message: "Product IDs are required", Present: hasProducts},
	},
}

// PatchKind has no required fields; a phone, when sent, must not be blank.
var PatchKind = resource.Kind[Patch]{
	Name:  integrity.Order,
	Title: "Order",
	Validate: func(p Patch) error {
		if p.Phone != nil && !resource.Text(*p.Phone) {
			return resource.Invalid("Phone is required")
		}
		return nil
	},
}

func hasProducts(f Fields) bool {
	if len(f.ProductIDs) == 0 {
		return false
	}
	for _, id := range f.ProductIDs {
		if !resource.Text(id) {
			return false
		}
	}
	return true
}

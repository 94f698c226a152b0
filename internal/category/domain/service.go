package domain

import (
	"context"
	"time"

	"github.com/smallbiznis/storeadmin/internal/integrity"
	"github.com/smallbiznis/storeadmin/internal/resource"
)

type Service interface {
	List(ctx context.Context, storeID string) ([]Response, error)
	Get(ctx context.Context, storeID, id string) (*Response, error)
	Create(ctx context.Context, req CreateRequest) (*Response, error)
	Update(ctx context.Context, req UpdateRequest) (*Response, error)
	Delete(ctx context.Context, req DeleteRequest) (*Response, error)
}

type Fields struct {
	Name        string `json:"name"`
	BillboardID string `json:"billboardId"`
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

type BillboardRef struct {
	ID       string `json:"id"`
	Label    string `json:"label"`
	ImageURL string `json:"imageUrl"`
}

type Response struct {
	ID          string        `json:"id"`
	StoreID     string        `json:"storeId"`
	BillboardID string        `json:"billboardId"`
	Name        string        `json:"name"`
	Billboard   *BillboardRef `json:"billboard,omitempty"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}

// ErrBillboardNotInStore rejects a billboard id that does not name a billboard
// of the category's store.
var ErrBillboardNotInStore = resource.Conflict("Billboard does not belong to this store")

var Kind = resource.Kind[Fields]{
	Name:  integrity.Category,
	Title: "Category",
	Required: []resource.Requirement[Fields]{
		{Message: "Name is required", Present: func(f Fields) bool { return resource.Text(f.Name) }},
		{Message: "Billboard ID is required", Present: func(f Fields) bool { return resource.Text(f.BillboardID) }},
	},
}

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
	Name  string `json:"name"`
	Value string `json:"value"`
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

type Response struct {
	ID        string    `json:"id"`
	StoreID   string    `json:"storeId"`
	Name      string    `json:"name"`
	Value     string    `json:"value"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

var Kind = resource.Kind[Fields]{
	Name:  integrity.Size,
	Title: "Size",
	Required: []resource.Requirement[Fields]{
		{Message: "Name is required", Present: func(f Fields) bool { return resource.Text(f.Name) }},
		{Message: "Value is required", Present: func(f Fields) bool { return resource.Text(f.Value) }},
	},
}

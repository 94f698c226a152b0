package domain

import (
	"context"
	"time"

	"github.com/smallbiznis/storeadmin/internal/integrity"
	"github.com/smallbiznis/storeadmin/internal/resource"
)

// Service manages the stores owned by the calling identity.
type Service interface {
	List(ctx context.Context) ([]Response, error)
	Get(ctx context.Context, id string) (*Response, error)
	Create(ctx context.Context, req CreateRequest) (*Response, error)
	Update(ctx context.Context, req UpdateRequest) (*Response, error)
	Delete(ctx context.Context, id string) (*Response, error)
}

type Fields struct {
	Name string `json:"name"`
}

type CreateRequest struct {
	Fields
}

type UpdateRequest struct {
	ID string `json:"-"`
	Fields
}

type Response struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

var Kind = resource.Kind[Fields]{
	Name:  integrity.Store,
	Title: "Store",
	Root:  true,
	Required: []resource.Requirement[Fields]{
		{Message: "Name is required", Present: func(f Fields) bool { return resource.Text(f.Name) }},
	},
}

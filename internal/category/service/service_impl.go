package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/storeadmin/internal/category/domain"
	"github.com/smallbiznis/storeadmin/internal/clock"
	"github.com/smallbiznis/storeadmin/internal/identity"
	"github.com/smallbiznis/storeadmin/internal/integrity"
	"github.com/smallbiznis/storeadmin/internal/ownership"
	"github.com/smallbiznis/storeadmin/internal/resource"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Clock clock.Clock
	Guard ownership.Guard
	Repo  domain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	clock clock.Clock
	guard ownership.Guard
	repo  domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("category.service"),
		genID: p.GenID,
		clock: p.Clock,
		guard: p.Guard,
		repo:  p.Repo,
	}
}

// List returns the store's categories with their billboards.
func (s *Service) List(ctx context.Context, storeID string) ([]domain.Response, error) {
	resp := []domain.Response{}
	id, err := resource.ParseID(storeID)
	if err != nil {
		return resp, nil
	}

	items, err := s.repo.List(ctx, s.db, id.Int64())
	if err != nil {
		return nil, err
	}
	for i := range items {
		resp = append(resp, toListingResponse(&items[i]))
	}
	return resp, nil
}

func (s *Service) Get(ctx context.Context, storeID, id string) (*domain.Response, error) {
	store, err := resource.ParseID(storeID)
	if err != nil {
		return nil, nil
	}
	categoryID, err := resource.ParseID(id)
	if err != nil {
		return nil, nil
	}

	item, err := s.repo.FindListing(ctx, s.db, store.Int64(), categoryID.Int64())
	if err != nil || item == nil {
		return nil, err
	}
	resp := toListingResponse(item)
	return &resp, nil
}

func (s *Service) Create(ctx context.Context, req domain.CreateRequest) (*domain.Response, error) {
	scope, err := resource.Authorize(ctx, s.guard, domain.Kind, resource.OpCreate, identity.UserID(ctx), req.StoreID, "", req.Fields)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	item := &domain.Category{
		ID:        s.genID.Generate().Int64(),
		StoreID:   scope.StoreID.Int64(),
		Name:      strings.TrimSpace(req.Name),
		CreatedAt: now,
		UpdatedAt: now,
	}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		billboardID, err := s.billboard(ctx, tx, scope.StoreID, req.BillboardID)
		if err != nil {
			return err
		}
		item.BillboardID = billboardID
		return s.repo.Create(ctx, tx, item)
	})
	if err = integrity.TranslateReference(err, domain.ErrBillboardNotInStore.Error()); err != nil {
		return nil, err
	}

	resp := toResponse(item)
	return &resp, nil
}

func (s *Service) Update(ctx context.Context, req domain.UpdateRequest) (*domain.Response, error) {
	scope, err := resource.Authorize(ctx, s.guard, domain.Kind, resource.OpUpdate, identity.UserID(ctx), req.StoreID, req.ID, req.Fields)
	if err != nil {
		return nil, err
	}

	var updated *domain.Category
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		item, err := s.repo.FindByID(ctx, tx, scope.StoreID.Int64(), scope.RecordID.Int64())
		if err != nil {
			return err
		}
		if item == nil {
			return resource.NotFound(domain.Kind.Title)
		}

		billboardID, err := s.billboard(ctx, tx, scope.StoreID, req.BillboardID)
		if err != nil {
			return err
		}

		item.Name = strings.TrimSpace(req.Name)
		item.BillboardID = billboardID
		item.UpdatedAt = s.clock.Now()
		if err := s.repo.Update(ctx, tx, item); err != nil {
			return err
		}
		updated = item
		return nil
	})
	if err = integrity.TranslateReference(err, domain.ErrBillboardNotInStore.Error()); err != nil {
		return nil, err
	}

	resp := toResponse(updated)
	return &resp, nil
}

// Delete refuses while any product is filed under the category.
func (s *Service) Delete(ctx context.Context, req domain.DeleteRequest) (*domain.Response, error) {
	scope, err := resource.Authorize(ctx, s.guard, domain.Kind, resource.OpDelete, identity.UserID(ctx), req.StoreID, req.ID, domain.Fields{})
	if err != nil {
		return nil, err
	}

	var deleted *domain.Category
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		item, err := s.repo.FindByID(ctx, tx, scope.StoreID.Int64(), scope.RecordID.Int64())
		if err != nil {
			return err
		}
		if item == nil {
			return resource.NotFound(domain.Kind.Title)
		}

		decision, err := integrity.CanDelete(ctx, tx, integrity.Category, scope.RecordID)
		if err != nil {
			return err
		}
		if err := decision.Err(integrity.Category); err != nil {
			return err
		}

		if err := s.repo.Delete(ctx, tx, item.StoreID, item.ID); err != nil {
			return err
		}
		deleted = item
		return nil
	})
	if err = integrity.TranslateDelete(integrity.Category, err); err != nil {
		return nil, err
	}

	resp := toResponse(deleted)
	return &resp, nil
}

func (s *Service) billboard(ctx context.Context, tx *gorm.DB, storeID snowflake.ID, raw string) (int64, error) {
	id, err := resource.ParseID(raw)
	if err != nil {
		return 0, domain.ErrBillboardNotInStore
	}
	ok, err := s.repo.BillboardInStore(ctx, tx, storeID.Int64(), id.Int64())
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, domain.ErrBillboardNotInStore
	}
	return id.Int64(), nil
}

func toResponse(c *domain.Category) domain.Response {
	return domain.Response{
		ID:          snowflake.ID(c.ID).String(),
		StoreID:     snowflake.ID(c.StoreID).String(),
		BillboardID: snowflake.ID(c.BillboardID).String(),
		Name:        c.Name,
		CreatedAt:   c.CreatedAt.UTC(),
		UpdatedAt:   c.UpdatedAt.UTC(),
	}
}

func toListingResponse(l *domain.Listing) domain.Response {
	resp := toResponse(&l.Category)
	resp.Billboard = &domain.BillboardRef{
		ID:       resp.BillboardID,
		Label:    l.BillboardLabel,
		ImageURL: l.BillboardImageURL,
	}
	return resp
}

package service

import (
	"context"
	"strconv"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/storeadmin/internal/clock"
	"github.com/smallbiznis/storeadmin/internal/identity"
	"github.com/smallbiznis/storeadmin/internal/integrity"
	"github.com/smallbiznis/storeadmin/internal/ownership"
	"github.com/smallbiznis/storeadmin/internal/product/domain"
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
		log:   p.Log.Named("product.service"),
		genID: p.GenID,
		clock: p.Clock,
		guard: p.Guard,
		repo:  p.Repo,
	}
}

// List returns the store's unarchived products. Filters that do not parse
// match nothing rather than being ignored.
func (s *Service) List(ctx context.Context, req domain.ListRequest) ([]domain.Response, error) {
	resp := []domain.Response{}
	storeID, err := resource.ParseID(req.StoreID)
	if err != nil {
		return resp, nil
	}

	filter := domain.ListFilter{
		StoreID: storeID.Int64(),
		SortBy:  req.SortBy,
		OrderBy: req.OrderBy,
	}
	var ok bool
	if filter.CategoryID, ok = optionalID(req.CategoryID); !ok {
		return resp, nil
	}
	if filter.SizeID, ok = optionalID(req.SizeID); !ok {
		return resp, nil
	}
	if filter.ColorID, ok = optionalID(req.ColorID); !ok {
		return resp, nil
	}
	if raw := strings.TrimSpace(req.IsFeatured); raw != "" {
		featured, err := strconv.ParseBool(raw)
		if err != nil {
			return resp, nil
		}
		filter.IsFeatured = &featured
	}

	items, err := s.repo.List(ctx, s.db, filter)
	if err != nil {
		return nil, err
	}

	ids := make([]int64, 0, len(items))
	for i := range items {
		ids = append(ids, items[i].ID)
	}
	images, err := s.repo.ImagesFor(ctx, s.db, ids)
	if err != nil {
		return nil, err
	}

	for i := range items {
		resp = append(resp, toListingResponse(&items[i], images[items[i].ID]))
	}
	return resp, nil
}

func (s *Service) Get(ctx context.Context, storeID, id string) (*domain.Response, error) {
	store, err := resource.ParseID(storeID)
	if err != nil {
		return nil, nil
	}
	productID, err := resource.ParseID(id)
	if err != nil {
		return nil, nil
	}

	item, err := s.repo.FindListing(ctx, s.db, store.Int64(), productID.Int64())
	if err != nil || item == nil {
		return nil, err
	}
	images, err := s.repo.ImagesFor(ctx, s.db, []int64{item.ID})
	if err != nil {
		return nil, err
	}

	resp := toListingResponse(item, images[item.ID])
	return &resp, nil
}

func (s *Service) Create(ctx context.Context, req domain.CreateRequest) (*domain.Response, error) {
	scope, err := resource.Authorize(ctx, s.guard, domain.Kind, resource.OpCreate, identity.UserID(ctx), req.StoreID, "", req.Fields)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	item := &domain.Product{
		ID:         s.genID.Generate().Int64(),
		StoreID:    scope.StoreID.Int64(),
		Name:       strings.TrimSpace(req.Name),
		Price:      *req.Price,
		IsFeatured: req.IsFeatured,
		IsArchived: req.IsArchived,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	images := s.images(req.Images)

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.references(ctx, tx, scope.StoreID, req.Fields, item); err != nil {
			return err
		}
		if err := s.repo.Create(ctx, tx, item); err != nil {
			return err
		}
		return s.repo.ReplaceImages(ctx, tx, item.ID, images)
	})
	if err = integrity.TranslateReference(err, "Product references a record outside this store"); err != nil {
		return nil, err
	}

	resp := toResponse(item, images)
	return &resp, nil
}

// Update replaces every field of the product including its image set.
func (s *Service) Update(ctx context.Context, req domain.UpdateRequest) (*domain.Response, error) {
	scope, err := resource.Authorize(ctx, s.guard, domain.Kind, resource.OpUpdate, identity.UserID(ctx), req.StoreID, req.ID, req.Fields)
	if err != nil {
		return nil, err
	}

	images := s.images(req.Images)
	var updated *domain.Product
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		item, err := s.repo.FindByID(ctx, tx, scope.StoreID.Int64(), scope.RecordID.Int64())
		if err != nil {
			return err
		}
		if item == nil {
			return resource.NotFound(domain.Kind.Title)
		}
		if err := s.references(ctx, tx, scope.StoreID, req.Fields, item); err != nil {
			return err
		}

		item.Name = strings.TrimSpace(req.Name)
		item.Price = *req.Price
		item.IsFeatured = req.IsFeatured
		item.IsArchived = req.IsArchived
		item.UpdatedAt = s.clock.Now()
		if err := s.repo.Update(ctx, tx, item); err != nil {
			return err
		}
		if err := s.repo.ReplaceImages(ctx, tx, item.ID, images); err != nil {
			return err
		}
		updated = item
		return nil
	})
	if err = integrity.TranslateReference(err, "Product references a record outside this store"); err != nil {
		return nil, err
	}

	resp := toResponse(updated, images)
	return &resp, nil
}

// Delete refuses while any order line names the product. Images go with it.
func (s *Service) Delete(ctx context.Context, req domain.DeleteRequest) (*domain.Response, error) {
	scope, err := resource.Authorize(ctx, s.guard, domain.Kind, resource.OpDelete, identity.UserID(ctx), req.StoreID, req.ID, domain.Fields{})
	if err != nil {
		return nil, err
	}

	var (
		deleted *domain.Product
		images  []domain.Image
	)
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		item, err := s.repo.FindByID(ctx, tx, scope.StoreID.Int64(), scope.RecordID.Int64())
		if err != nil {
			return err
		}
		if item == nil {
			return resource.NotFound(domain.Kind.Title)
		}

		decision, err := integrity.CanDelete(ctx, tx, integrity.Product, scope.RecordID)
		if err != nil {
			return err
		}
		if err := decision.Err(integrity.Product); err != nil {
			return err
		}

		byProduct, err := s.repo.ImagesFor(ctx, tx, []int64{item.ID})
		if err != nil {
			return err
		}
		if err := s.repo.Delete(ctx, tx, item.StoreID, item.ID); err != nil {
			return err
		}
		deleted, images = item, byProduct[item.ID]
		return nil
	})
	if err = integrity.TranslateDelete(integrity.Product, err); err != nil {
		return nil, err
	}

	resp := toResponse(deleted, images)
	return &resp, nil
}

// references resolves the category, size and color ids of f against storeID
// and stores them on item.
func (s *Service) references(ctx context.Context, tx *gorm.DB, storeID snowflake.ID, f domain.Fields, item *domain.Product) error {
	refs := []struct {
		table string
		raw   string
		dst   *int64
		err   error
	}{
		{table: "categories", raw: f.CategoryID, dst: &item.CategoryID, err: domain.ErrCategoryNotInStore},
		{table: "sizes", raw: f.SizeID, dst: &item.SizeID, err: domain.ErrSizeNotInStore},
		{table: "colors", raw: f.ColorID, dst: &item.ColorID, err: domain.ErrColorNotInStore},
	}
	for _, ref := range refs {
		id, err := resource.ParseID(ref.raw)
		if err != nil {
			return ref.err
		}
		ok, err := s.repo.InStore(ctx, tx, ref.table, storeID.Int64(), id.Int64())
		if err != nil {
			return err
		}
		if !ok {
			return ref.err
		}
		*ref.dst = id.Int64()
	}
	return nil
}

func (s *Service) images(inputs []domain.ImageInput) []domain.Image {
	now := s.clock.Now()
	images := make([]domain.Image, 0, len(inputs))
	for _, in := range inputs {
		images = append(images, domain.Image{
			ID:        s.genID.Generate().Int64(),
			URL:       strings.TrimSpace(in.URL),
			CreatedAt: now,
			UpdatedAt: now,
		})
	}
	return images
}

func optionalID(raw string) (*int64, bool) {
	if strings.TrimSpace(raw) == "" {
		return nil, true
	}
	id, err := resource.ParseID(raw)
	if err != nil {
		return nil, false
	}
	v := id.Int64()
	return &v, true
}

func toResponse(p *domain.Product, images []domain.Image) domain.Response {
	resp := domain.Response{
		ID:         snowflake.ID(p.ID).String(),
		StoreID:    snowflake.ID(p.StoreID).String(),
		CategoryID: snowflake.ID(p.CategoryID).String(),
		SizeID:     snowflake.ID(p.SizeID).String(),
		ColorID:    snowflake.ID(p.ColorID).String(),
		Name:       p.Name,
		Price:      p.Price,
		IsFeatured: p.IsFeatured,
		IsArchived: p.IsArchived,
		Images:     make([]domain.ImageResponse, 0, len(images)),
		CreatedAt:  p.CreatedAt.UTC(),
		UpdatedAt:  p.UpdatedAt.UTC(),
	}
	for _, img := range images {
		resp.Images = append(resp.Images, domain.ImageResponse{
			ID:  snowflake.ID(img.ID).String(),
			URL: img.URL,
		})
	}
	return resp
}

func toListingResponse(l *domain.Listing, images []domain.Image) domain.Response {
	resp := toResponse(&l.Product, images)
	resp.Category = &domain.Ref{ID: resp.CategoryID, Name: l.CategoryName}
	resp.Size = &domain.Ref{ID: resp.SizeID, Name: l.SizeName, Value: l.SizeValue}
	resp.Color = &domain.Ref{ID: resp.ColorID, Name: l.ColorName, Value: l.ColorValue}
	return resp
}

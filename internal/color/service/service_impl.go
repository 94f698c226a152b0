package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/storeadmin/internal/clock"
	"github.com/smallbiznis/storeadmin/internal/identity"
	"github.com/smallbiznis/storeadmin/internal/integrity"
	"github.com/smallbiznis/storeadmin/internal/ownership"
	"github.com/smallbiznis/storeadmin/internal/resource"
	"github.com/smallbiznis/storeadmin/internal/color/domain"
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
		log:   p.Log.Named("color.service"),
		genID: p.GenID,
		clock: p.Clock,
		guard: p.Guard,
		repo:  p.Repo,
	}
}

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
		resp = append(resp, toResponse(&items[i]))
	}
	return resp, nil
}

func (s *Service) Get(ctx context.Context, storeID, id string) (*domain.Response, error) {
	store, err := resource.ParseID(storeID)
	if err != nil {
		return nil, nil
	}
	colorID, err := resource.ParseID(id)
	if err != nil {
		return nil, nil
	}

	item, err := s.repo.FindByID(ctx, s.db, store.Int64(), colorID.Int64())
	if err != nil || item == nil {
		return nil, err
	}
	resp := toResponse(item)
	return &resp, nil
}

func (s *Service) Create(ctx context.Context, req domain.CreateRequest) (*domain.Response, error) {
	scope, err := resource.Authorize(ctx, s.guard, domain.Kind, resource.OpCreate, identity.UserID(ctx), req.StoreID, "", req.Fields)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	item := &domain.Color{
		ID:        s.genID.Generate().Int64(),
		StoreID:   scope.StoreID.Int64(),
		Name:      strings.TrimSpace(req.Name),
		Value:     strings.TrimSpace(req.Value),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(ctx, s.db, item); err != nil {
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

	var updated *domain.Color
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		item, err := s.repo.FindByID(ctx, tx, scope.StoreID.Int64(), scope.RecordID.Int64())
		if err != nil {
			return err
		}
		if item == nil {
			return resource.NotFound(domain.Kind.Title)
		}

		item.Name = strings.TrimSpace(req.Name)
		item.Value = strings.TrimSpace(req.Value)
		item.UpdatedAt = s.clock.Now()
		if err := s.repo.Update(ctx, tx, item); err != nil {
			return err
		}
		updated = item
		return nil
	})
	if err != nil {
		return nil, err
	}

	resp := toResponse(updated)
	return &resp, nil
}

func (s *Service) Delete(ctx context.Context, req domain.DeleteRequest) (*domain.Response, error) {
	scope, err := resource.Authorize(ctx, s.guard, domain.Kind, resource.OpDelete, identity.UserID(ctx), req.StoreID, req.ID, domain.Fields{})
	if err != nil {
		return nil, err
	}

	var deleted *domain.Color
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		item, err := s.repo.FindByID(ctx, tx, scope.StoreID.Int64(), scope.RecordID.Int64())
		if err != nil {
			return err
		}
		if item == nil {
			return resource.NotFound(domain.Kind.Title)
		}

		decision, err := integrity.CanDelete(ctx, tx, integrity.Color, scope.RecordID)
		if err != nil {
			return err
		}
		if err := decision.Err(integrity.Color); err != nil {
			return err
		}

		if err := s.repo.Delete(ctx, tx, item.StoreID, item.ID); err != nil {
			return err
		}
		deleted = item
		return nil
	})
	if err = integrity.TranslateDelete(integrity.Color, err); err != nil {
		return nil, err
	}

	resp := toResponse(deleted)
	return &resp, nil
}

func toResponse(c *domain.Color) domain.Response {
	return domain.Response{
		ID:        snowflake.ID(c.ID).String(),
		StoreID:   snowflake.ID(c.StoreID).String(),
		Name:      c.Name,
		Value:     c.Value,
		CreatedAt: c.CreatedAt.UTC(),
		UpdatedAt: c.UpdatedAt.UTC(),
	}
}

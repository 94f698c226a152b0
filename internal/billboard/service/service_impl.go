package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/storeadmin/internal/billboard/domain"
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
		log:   p.Log.Named("billboard.service"),
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
	billboardID, err := resource.ParseID(id)
	if err != nil {
		return nil, nil
	}

	item, err := s.repo.FindByID(ctx, s.db, store.Int64(), billboardID.Int64())
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
	item := &domain.Billboard{
		ID:        s.genID.Generate().Int64(),
		StoreID:   scope.StoreID.Int64(),
		Label:     strings.TrimSpace(req.Label),
		ImageURL:  strings.TrimSpace(req.ImageURL),
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

	var updated *domain.Billboard
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		item, err := s.repo.FindByID(ctx, tx, scope.StoreID.Int64(), scope.RecordID.Int64())
		if err != nil {
			return err
		}
		if item == nil {
			return resource.NotFound(domain.Kind.Title)
		}

		item.Label = strings.TrimSpace(req.Label)
		item.ImageURL = strings.TrimSpace(req.ImageURL)
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

// Delete refuses while any category still uses the billboard.
func (s *Service) Delete(ctx context.Context, req domain.DeleteRequest) (*domain.Response, error) {
	scope, err := resource.Authorize(ctx, s.guard, domain.Kind, resource.OpDelete, identity.UserID(ctx), req.StoreID, req.ID, domain.Fields{})
	if err != nil {
		return nil, err
	}

	var deleted *domain.Billboard
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		item, err := s.repo.FindByID(ctx, tx, scope.StoreID.Int64(), scope.RecordID.Int64())
		if err != nil {
			return err
		}
		if item == nil {
			return resource.NotFound(domain.Kind.Title)
		}

		decision, err := integrity.CanDelete(ctx, tx, integrity.Billboard, scope.RecordID)
		if err != nil {
			return err
		}
		if err := decision.Err(integrity.Billboard); err != nil {
			s.log.Info("billboard delete blocked",
				zap.Int64("billboard_id", item.ID),
				zap.String("dependent", decision.Dependent),
			)
			return err
		}

		if err := s.repo.Delete(ctx, tx, item.StoreID, item.ID); err != nil {
			return err
		}
		deleted = item
		return nil
	})
	if err = integrity.TranslateDelete(integrity.Billboard, err); err != nil {
		return nil, err
	}

	resp := toResponse(deleted)
	return &resp, nil
}

func toResponse(b *domain.Billboard) domain.Response {
	return domain.Response{
		ID:        snowflake.ID(b.ID).String(),
		StoreID:   snowflake.ID(b.StoreID).String(),
		Label:     b.Label,
		ImageURL:  b.ImageURL,
		CreatedAt: b.CreatedAt.UTC(),
		UpdatedAt: b.UpdatedAt.UTC(),
	}
}

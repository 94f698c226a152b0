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
	"github.com/smallbiznis/storeadmin/internal/store/domain"
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
		log:   p.Log.Named("store.service"),
		genID: p.GenID,
		clock: p.Clock,
		guard: p.Guard,
		repo:  p.Repo,
	}
}

func (s *Service) List(ctx context.Context) ([]domain.Response, error) {
	userID := identity.UserID(ctx)
	if userID == "" {
		return nil, resource.ErrUnauthenticated
	}

	items, err := s.repo.ListByOwner(ctx, s.db, userID)
	if err != nil {
		return nil, err
	}

	resp := make([]domain.Response, 0, len(items))
	for i := range items {
		resp = append(resp, toResponse(&items[i]))
	}
	return resp, nil
}

// Get returns the caller's store, or nil when it does not exist or belongs to
// someone else.
func (s *Service) Get(ctx context.Context, id string) (*domain.Response, error) {
	userID := identity.UserID(ctx)
	if userID == "" {
		return nil, resource.ErrUnauthenticated
	}

	storeID, err := resource.ParseID(id)
	if err != nil {
		return nil, nil
	}
	item, err := s.repo.FindByID(ctx, s.db, storeID.Int64())
	if err != nil {
		return nil, err
	}
	if item == nil || item.UserID != userID {
		return nil, nil
	}

	resp := toResponse(item)
	return &resp, nil
}

func (s *Service) Create(ctx context.Context, req domain.CreateRequest) (*domain.Response, error) {
	scope, err := resource.Authorize(ctx, s.guard, domain.Kind, resource.OpCreate, identity.UserID(ctx), "", "", req.Fields)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	item := &domain.Store{
		ID:        s.genID.Generate().Int64(),
		UserID:    scope.UserID,
		Name:      strings.TrimSpace(req.Name),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(ctx, s.db, item); err != nil {
		return nil, err
	}

	s.log.Info("store created", zap.Int64("store_id", item.ID), zap.String("user_id", item.UserID))
	resp := toResponse(item)
	return &resp, nil
}

func (s *Service) Update(ctx context.Context, req domain.UpdateRequest) (*domain.Response, error) {
	scope, err := resource.Authorize(ctx, s.guard, domain.Kind, resource.OpUpdate, identity.UserID(ctx), req.ID, req.ID, req.Fields)
	if err != nil {
		return nil, err
	}

	var updated *domain.Store
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		item, err := s.repo.FindByID(ctx, tx, scope.StoreID.Int64())
		if err != nil {
			return err
		}
		if item == nil {
			return resource.NotFound(domain.Kind.Title)
		}

		item.Name = strings.TrimSpace(req.Name)
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

// Delete removes an empty store. Stores with any child record are refused.
func (s *Service) Delete(ctx context.Context, id string) (*domain.Response, error) {
	scope, err := resource.Authorize(ctx, s.guard, domain.Kind, resource.OpDelete, identity.UserID(ctx), id, id, domain.Fields{})
	if err != nil {
		return nil, err
	}

	var deleted *domain.Store
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		item, err := s.repo.FindByID(ctx, tx, scope.StoreID.Int64())
		if err != nil {
			return err
		}
		if item == nil {
			return resource.NotFound(domain.Kind.Title)
		}

		decision, err := integrity.CanDelete(ctx, tx, integrity.Store, scope.StoreID)
		if err != nil {
			return err
		}
		if err := decision.Err(integrity.Store); err != nil {
			return err
		}

		if err := s.repo.Delete(ctx, tx, item.ID); err != nil {
			return err
		}
		deleted = item
		return nil
	})
	if err = integrity.TranslateDelete(integrity.Store, err); err != nil {
		return nil, err
	}

	s.log.Info("store deleted", zap.Int64("store_id", deleted.ID))
	resp := toResponse(deleted)
	return &resp, nil
}

func toResponse(s *domain.Store) domain.Response {
	return domain.Response{
		ID:        snowflake.ID(s.ID).String(),
		UserID:    s.UserID,
		Name:      s.Name,
		CreatedAt: s.CreatedAt.UTC(),
		UpdatedAt: s.UpdatedAt.UTC(),
	}
}

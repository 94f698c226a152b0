package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/storeadmin/internal/clock"
	"github.com/smallbiznis/storeadmin/internal/identity"
	"github.com/smallbiznis/storeadmin/internal/integrity"
	"github.com/smallbiznis/storeadmin/internal/order/domain"
	"github.com/smallbiznis/storeadmin/internal/ownership"
	"github.com/smallbiznis/storeadmin/internal/resource"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const actionRead = "read"

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
		log:   p.Log.Named("order.service"),
		genID: p.GenID,
		clock: p.Clock,
		guard: p.Guard,
		repo:  p.Repo,
	}
}

// authorizeRead checks the caller owns storeID. Orders carry customer contact
// details so reads are not public.
func (s *Service) authorizeRead(ctx context.Context, storeID string) (snowflake.ID, error) {
	userID := identity.UserID(ctx)
	if userID == "" {
		return 0, resource.ErrUnauthenticated
	}
	outcome, err := s.guard.AuthorizeAction(ctx, userID, storeID, integrity.Order, actionRead)
	if err != nil {
		return 0, fmt.Errorf("authorize read order: %w", err)
	}
	switch outcome {
	case ownership.Authorized:
	case ownership.Unauthenticated:
		return 0, resource.ErrUnauthenticated
	default:
		return 0, resource.ErrForbidden
	}
	id, _ := snowflake.ParseString(strings.TrimSpace(storeID))
	return id, nil
}

func (s *Service) List(ctx context.Context, storeID string) ([]domain.Response, error) {
	store, err := s.authorizeRead(ctx, storeID)
	if err != nil {
		return nil, err
	}

	orders, err := s.repo.List(ctx, s.db, store.Int64())
	if err != nil {
		return nil, err
	}
	ids := make([]int64, 0, len(orders))
	for _, o := range orders {
		ids = append(ids, o.ID)
	}
	lines, err := s.repo.LinesFor(ctx, s.db, ids)
	if err != nil {
		return nil, err
	}

	resp := make([]domain.Response, 0, len(orders))
	for i := range orders {
		resp = append(resp, toResponse(&orders[i], lines[orders[i].ID]))
	}
	return resp, nil
}

func (s *Service) Get(ctx context.Context, storeID, id string) (*domain.Response, error) {
	store, err := s.authorizeRead(ctx, storeID)
	if err != nil {
		return nil, err
	}
	orderID, err := resource.ParseID(id)
	if err != nil {
		return nil, nil
	}

	order, err := s.repo.FindByID(ctx, s.db, store.Int64(), orderID.Int64())
	if err != nil || order == nil {
		return nil, err
	}
	lines, err := s.repo.LinesFor(ctx, s.db, []int64{order.ID})
	if err != nil {
		return nil, err
	}

	resp := toResponse(order, lines[order.ID])
	return &resp, nil
}

func (s *Service) Create(ctx context.Context, req domain.CreateRequest) (*domain.Response, error) {
	scope, err := resource.Authorize(ctx, s.guard, domain.Kind, resource.OpCreate, identity.UserID(ctx), req.StoreID, "", req.Fields)
	if err != nil {
		return nil, err
	}

	productIDs := make([]int64, 0, len(req.ProductIDs))
	for _, raw := range req.ProductIDs {
		id, err := resource.ParseID(raw)
		if err != nil {
			return nil, domain.ErrProductNotInStore
		}
		productIDs = append(productIDs, id.Int64())
	}

	now := s.clock.Now()
	order := &domain.Order{
		ID:        s.genID.Generate().Int64(),
		StoreID:   scope.StoreID.Int64(),
		IsPaid:    req.IsPaid,
		Phone:     strings.TrimSpace(req.Phone),
		Address:   strings.TrimSpace(req.Address),
		CreatedAt: now,
		UpdatedAt: now,
	}
	items := make([]domain.OrderItem, 0, len(productIDs))
	for _, productID := range productIDs {
		items = append(items, domain.OrderItem{
			ID:        s.genID.Generate().Int64(),
			OrderID:   order.ID,
			ProductID: productID,
		})
	}

	var lines []domain.Line
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		found, err := s.repo.ProductsInStore(ctx, tx, order.StoreID, productIDs)
		if err != nil {
			return err
		}
		for _, id := range productIDs {
			if !found[id] {
				return domain.ErrProductNotInStore
			}
		}

		if err := s.repo.Create(ctx, tx, order, items); err != nil {
			return err
		}
		byOrder, err := s.repo.LinesFor(ctx, tx, []int64{order.ID})
		if err != nil {
			return err
		}
		lines = byOrder[order.ID]
		return nil
	})
	if err = integrity.TranslateReference(err, domain.ErrProductNotInStore.Error()); err != nil {
		return nil, err
	}

	s.log.Info("order created",
		zap.Int64("order_id", order.ID),
		zap.Int64("store_id", order.StoreID),
		zap.Int("items", len(items)),
	)
	resp := toResponse(order, lines)
	return &resp, nil
}

func (s *Service) Update(ctx context.Context, req domain.UpdateRequest) (*domain.Response, error) {
	scope, err := resource.Authorize(ctx, s.guard, domain.PatchKind, resource.OpUpdate, identity.UserID(ctx), req.StoreID, req.ID, req.Patch)
	if err != nil {
		return nil, err
	}

	var (
		updated *domain.Order
		lines   []domain.Line
	)
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		order, err := s.repo.FindByID(ctx, tx, scope.StoreID.Int64(), scope.RecordID.Int64())
		if err != nil {
			return err
		}
		if order == nil {
			return resource.NotFound(domain.PatchKind.Title)
		}

		if req.IsPaid != nil {
			order.IsPaid = *req.IsPaid
		}
		if req.Phone != nil {
			order.Phone = strings.TrimSpace(*req.Phone)
		}
		if req.Address != nil {
			order.Address = strings.TrimSpace(*req.Address)
		}
		order.UpdatedAt = s.clock.Now()
		if err := s.repo.Update(ctx, tx, order); err != nil {
			return err
		}

		byOrder, err := s.repo.LinesFor(ctx, tx, []int64{order.ID})
		if err != nil {
			return err
		}
		updated, lines = order, byOrder[order.ID]
		return nil
	})
	if err != nil {
		return nil, err
	}

	resp := toResponse(updated, lines)
	return &resp, nil
}

// Delete removes the order and its lines. Nothing depends on an order.
func (s *Service) Delete(ctx context.Context, req domain.DeleteRequest) (*domain.Response, error) {
	scope, err := resource.Authorize(ctx, s.guard, domain.Kind, resource.OpDelete, identity.UserID(ctx), req.StoreID, req.ID, domain.Fields{})
	if err != nil {
		return nil, err
	}

	var (
		deleted *domain.Order
		lines   []domain.Line
	)
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		order, err := s.repo.FindByID(ctx, tx, scope.StoreID.Int64(), scope.RecordID.Int64())
		if err != nil {
			return err
		}
		if order == nil {
			return resource.NotFound(domain.Kind.Title)
		}

		decision, err := integrity.CanDelete(ctx, tx, integrity.Order, scope.RecordID)
		if err != nil {
			return err
		}
		if err := decision.Err(integrity.Order); err != nil {
			return err
		}

		byOrder, err := s.repo.LinesFor(ctx, tx, []int64{order.ID})
		if err != nil {
			return err
		}
		if err := s.repo.Delete(ctx, tx, order.StoreID, order.ID); err != nil {
			return err
		}
		deleted, lines = order, byOrder[order.ID]
		return nil
	})
	if err = integrity.TranslateDelete(integrity.Order, err); err != nil {
		return nil, err
	}

	resp := toResponse(deleted, lines)
	return &resp, nil
}

func toResponse(o *domain.Order, lines []domain.Line) domain.Response {
	resp := domain.Response{
		ID:         snowflake.ID(o.ID).String(),
		StoreID:    snowflake.ID(o.StoreID).String(),
		IsPaid:     o.IsPaid,
		Phone:      o.Phone,
		Address:    o.Address,
		OrderItems: make([]domain.ItemResponse, 0, len(lines)),
		CreatedAt:  o.CreatedAt.UTC(),
		UpdatedAt:  o.UpdatedAt.UTC(),
	}
	for _, line := range lines {
		productID := snowflake.ID(line.ProductID).String()
		resp.OrderItems = append(resp.OrderItems, domain.ItemResponse{
			ID:        snowflake.ID(line.ID).String(),
			ProductID: productID,
			Product: &domain.ProductRef{
				ID:    productID,
				Name:  line.ProductName,
				Price: line.ProductPrice,
			},
		})
		resp.TotalPrice = resp.TotalPrice.Add(line.ProductPrice)
	}
	return resp
}

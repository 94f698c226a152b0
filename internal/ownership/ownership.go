package ownership

import (
	"context"
	_ "embed"
	"errors"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	gormadapter "github.com/casbin/gorm-adapter/v3"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:embed model.conf
var modelText string

// Outcome is the result of an ownership check.
type Outcome int

const (
	Authorized Outcome = iota
	Unauthenticated
	Forbidden
)

func (o Outcome) String() string {
	switch o {
	case Authorized:
		return "authorized"
	case Unauthenticated:
		return "unauthenticated"
	case Forbidden:
		return "forbidden"
	default:
		return "unknown"
	}
}

const (
	RoleOwner = "role:owner"

	ObjectStore  = "store"
	ActionManage = "manage"
)

var Module = fx.Module("ownership",
	fx.Provide(NewEnforcer),
	fx.Provide(New),
)

// Guard decides whether a user may mutate resources of a store. It only reads.
type Guard interface {
	// Authorize checks that userID owns storeID.
	Authorize(ctx context.Context, userID, storeID string) (Outcome, error)
	// AuthorizeAction additionally requires the owner role to be granted
	// action on object by the policy table.
	AuthorizeAction(ctx context.Context, userID, storeID, object, action string) (Outcome, error)
}

type Params struct {
	fx.In

	DB       *gorm.DB
	Log      *zap.Logger
	Enforcer *casbin.SyncedEnforcer
}

type guard struct {
	db       *gorm.DB
	log      *zap.Logger
	enforcer *casbin.SyncedEnforcer
}

func New(p Params) Guard {
	return &guard{
		db:       p.DB,
		log:      p.Log.Named("ownership.guard"),
		enforcer: p.Enforcer,
	}
}

// NewEnforcer loads the persisted policy table and seeds the owner grant.
func NewEnforcer(db *gorm.DB) (*casbin.SyncedEnforcer, error) {
	adapter, err := gormadapter.NewAdapterByDB(db)
	if err != nil {
		return nil, err
	}
	m, err := model.NewModelFromString(modelText)
	if err != nil {
		return nil, err
	}
	enforcer, err := casbin.NewSyncedEnforcer(m, adapter)
	if err != nil {
		return nil, err
	}
	enforcer.EnableAutoSave(true)
	if err := enforcer.LoadPolicy(); err != nil {
		return nil, err
	}

	has, err := enforcer.HasPolicy(RoleOwner, "*", "*")
	if err != nil {
		return nil, err
	}
	if !has {
		if _, err := enforcer.AddPolicy(RoleOwner, "*", "*"); err != nil {
			return nil, err
		}
	}
	return enforcer, nil
}

func (g *guard) Authorize(ctx context.Context, userID, storeID string) (Outcome, error) {
	return g.AuthorizeAction(ctx, userID, storeID, ObjectStore, ActionManage)
}

func (g *guard) AuthorizeAction(ctx context.Context, userID, storeID, object, action string) (Outcome, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return Unauthenticated, nil
	}

	id, err := snowflake.ParseString(strings.TrimSpace(storeID))
	if err != nil || id <= 0 {
		return Forbidden, nil
	}

	owner, err := g.ownerOf(ctx, id)
	if err != nil {
		return Forbidden, err
	}
	if owner == "" || owner != userID {
		g.log.Debug("store not owned by caller",
			zap.String("store_id", id.String()),
			zap.String("user_id", userID),
		)
		return Forbidden, nil
	}

	allowed, err := g.enforcer.Enforce(RoleOwner, object, action)
	if err != nil {
		return Forbidden, err
	}
	if !allowed {
		return Forbidden, nil
	}
	return Authorized, nil
}

func (g *guard) ownerOf(ctx context.Context, storeID snowflake.ID) (string, error) {
	var row struct {
		UserID string `gorm:"column:user_id"`
	}
	err := g.db.WithContext(ctx).Raw(
		`SELECT user_id FROM stores WHERE id = ? LIMIT 1`,
		storeID,
	).Scan(&row).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}
	return strings.TrimSpace(row.UserID), nil
}

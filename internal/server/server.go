package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	billboarddomain "github.com/smallbiznis/storeadmin/internal/billboard/domain"
	categorydomain "github.com/smallbiznis/storeadmin/internal/category/domain"
	colordomain "github.com/smallbiznis/storeadmin/internal/color/domain"
	"github.com/smallbiznis/storeadmin/internal/config"
	"github.com/smallbiznis/storeadmin/internal/identity"
	"github.com/smallbiznis/storeadmin/internal/integrity"
	"github.com/smallbiznis/storeadmin/internal/observability"
	obslogger "github.com/smallbiznis/storeadmin/internal/observability/logger"
	obsmetrics "github.com/smallbiznis/storeadmin/internal/observability/metrics"
	obstracing "github.com/smallbiznis/storeadmin/internal/observability/tracing"
	orderdomain "github.com/smallbiznis/storeadmin/internal/order/domain"
	productdomain "github.com/smallbiznis/storeadmin/internal/product/domain"
	"github.com/smallbiznis/storeadmin/internal/resource"
	sizedomain "github.com/smallbiznis/storeadmin/internal/size/domain"
	storedomain "github.com/smallbiznis/storeadmin/internal/store/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("http.server",
	fx.Provide(NewEngine),
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

type EngineParams struct {
	fx.In

	ObsCfg      observability.Config
	HTTPMetrics *obsmetrics.HTTPMetrics `optional:"true"`
	Metrics     *obsmetrics.Metrics     `optional:"true"`
	Identity    identity.Provider
	CORS        *config.CORSConfigHolder `optional:"true"`
}

func NewEngine(p EngineParams) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obslogger.GinMiddleware(obslogger.MiddlewareConfig{
		Debug:           p.ObsCfg.Debug(),
		ErrorClassifier: classifyErrorForLog,
	}))
	r.Use(obstracing.GinMiddleware())
	r.Use(obsmetrics.GinMiddleware(p.HTTPMetrics))
	r.Use(IdentityMiddleware(p.Identity))
	r.Use(CORSMiddleware(p.CORS))
	r.Use(ErrorHandlingMiddleware(p.Metrics))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func run(lc fx.Lifecycle, cfg config.Config, r *gin.Engine, log *zap.Logger) {
	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Fatal("http server stopped", zap.Error(err))
				}
			}()
			log.Info("http server listening", zap.String("addr", cfg.HTTPAddr))
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine       *gin.Engine
	storeSvc     storedomain.Service
	billboardSvc billboarddomain.Service
	categorySvc  categorydomain.Service
	sizeSvc      sizedomain.Service
	colorSvc     colordomain.Service
	productSvc   productdomain.Service
	orderSvc     orderdomain.Service
}

type ServerParams struct {
	fx.In

	Gin          *gin.Engine
	StoreSvc     storedomain.Service
	BillboardSvc billboarddomain.Service
	CategorySvc  categorydomain.Service
	SizeSvc      sizedomain.Service
	ColorSvc     colordomain.Service
	ProductSvc   productdomain.Service
	OrderSvc     orderdomain.Service
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:       p.Gin,
		storeSvc:     p.StoreSvc,
		billboardSvc: p.BillboardSvc,
		categorySvc:  p.CategorySvc,
		sizeSvc:      p.SizeSvc,
		colorSvc:     p.ColorSvc,
		productSvc:   p.ProductSvc,
		orderSvc:     p.OrderSvc,
	}

	svc.registerStoreRoutes()
	svc.registerStoreScopedRoutes()

	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerStoreRoutes() {
	stores := s.engine.Group("/api/stores")

	stores.GET("", operation(integrity.Store, opList), s.ListStores)
	stores.POST("", operation(integrity.Store, resource.OpCreate), s.CreateStore)
	stores.GET("/:storeId", operation(integrity.Store, opGet), s.GetStore)
	stores.PATCH("/:storeId", operation(integrity.Store, resource.OpUpdate), s.UpdateStore)
	stores.DELETE("/:storeId", operation(integrity.Store, resource.OpDelete), s.DeleteStore)
}

func (s *Server) registerStoreScopedRoutes() {
	api := s.engine.Group("/api/:storeId")

	billboards := api.Group("/billboards")
	billboards.GET("", operation(integrity.Billboard, opList), s.ListBillboards)
	billboards.GET("/:id", operation(integrity.Billboard, opGet), s.GetBillboard)
	billboards.POST("", operation(integrity.Billboard, resource.OpCreate), s.CreateBillboard)
	billboards.PATCH("", operation(integrity.Billboard, resource.OpUpdate), s.UpdateBillboard)
	billboards.PATCH("/:id", operation(integrity.Billboard, resource.OpUpdate), s.UpdateBillboard)
	billboards.DELETE("", operation(integrity.Billboard, resource.OpDelete), s.DeleteBillboard)
	billboards.DELETE("/:id", operation(integrity.Billboard, resource.OpDelete), s.DeleteBillboard)

	categories := api.Group("/categories")
	categories.GET("", operation(integrity.Category, opList), s.ListCategories)
	categories.GET("/:id", operation(integrity.Category, opGet), s.GetCategory)
	categories.POST("", operation(integrity.Category, resource.OpCreate), s.CreateCategory)
	categories.PATCH("", operation(integrity.Category, resource.OpUpdate), s.UpdateCategory)
	categories.PATCH("/:id", operation(integrity.Category, resource.OpUpdate), s.UpdateCategory)
	categories.DELETE("", operation(integrity.Category, resource.OpDelete), s.DeleteCategory)
	categories.DELETE("/:id", operation(integrity.Category, resource.OpDelete), s.DeleteCategory)

	sizes := api.Group("/sizes")
	sizes.GET("", operation(integrity.Size, opList), s.ListSizes)
	sizes.GET("/:id", operation(integrity.Size, opGet), s.GetSize)
	sizes.POST("", operation(integrity.Size, resource.OpCreate), s.CreateSize)
	sizes.PATCH("", operation(integrity.Size, resource.OpUpdate), s.UpdateSize)
	sizes.PATCH("/:id", operation(integrity.Size, resource.OpUpdate), s.UpdateSize)
	sizes.DELETE("", operation(integrity.Size, resource.OpDelete), s.DeleteSize)
	sizes.DELETE("/:id", operation(integrity.Size, resource.OpDelete), s.DeleteSize)

	colors := api.Group("/colors")
	colors.GET("", operation(integrity.Color, opList), s.ListColors)
	colors.GET("/:id", operation(integrity.Color, opGet), s.GetColor)
	colors.POST("", operation(integrity.Color, resource.OpCreate), s.CreateColor)
	colors.PATCH("", operation(integrity.Color, resource.OpUpdate), s.UpdateColor)
	colors.PATCH("/:id", operation(integrity.Color, resource.OpUpdate), s.UpdateColor)
	colors.DELETE("", operation(integrity.Color, resource.OpDelete), s.DeleteColor)
	colors.DELETE("/:id", operation(integrity.Color, resource.OpDelete), s.DeleteColor)

	products := api.Group("/products")
	products.GET("", operation(integrity.Product, opList), s.ListProducts)
	products.GET("/:id", operation(integrity.Product, opGet), s.GetProduct)
	products.POST("", operation(integrity.Product, resource.OpCreate), s.CreateProduct)
	products.PATCH("", operation(integrity.Product, resource.OpUpdate), s.UpdateProduct)
	products.PATCH("/:id", operation(integrity.Product, resource.OpUpdate), s.UpdateProduct)
	products.DELETE("", operation(integrity.Product, resource.OpDelete), s.DeleteProduct)
	products.DELETE("/:id", operation(integrity.Product, resource.OpDelete), s.DeleteProduct)

	orders := api.Group("/orders")
	orders.GET("", operation(integrity.Order, opList), s.ListOrders)
	orders.GET("/:id", operation(integrity.Order, opGet), s.GetOrder)
	orders.POST("", operation(integrity.Order, resource.OpCreate), s.CreateOrder)
	orders.PATCH("", operation(integrity.Order, resource.OpUpdate), s.UpdateOrder)
	orders.PATCH("/:id", operation(integrity.Order, resource.OpUpdate), s.UpdateOrder)
	orders.DELETE("", operation(integrity.Order, resource.OpDelete), s.DeleteOrder)
	orders.DELETE("/:id", operation(integrity.Order, resource.OpDelete), s.DeleteOrder)
}

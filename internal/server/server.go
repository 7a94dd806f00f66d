package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	categorydomain "github.com/railzwaylabs/backoffice/internal/category/domain"
	"github.com/railzwaylabs/backoffice/internal/config"
	dashboarddomain "github.com/railzwaylabs/backoffice/internal/dashboard/domain"
	"github.com/railzwaylabs/backoffice/internal/observability"
	orderdomain "github.com/railzwaylabs/backoffice/internal/order/domain"
	productdomain "github.com/railzwaylabs/backoffice/internal/product/domain"
	"github.com/railzwaylabs/backoffice/pkg/db"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const healthTimeout = 2 * time.Second

type Params struct {
	fx.In

	Config       config.Config
	Log          *zap.Logger
	DB           *gorm.DB
	ProductSvc   productdomain.Service
	CategorySvc  categorydomain.Service
	OrderSvc     orderdomain.Service
	DashboardSvc dashboarddomain.Service
	Metrics      *observability.HTTPMetrics `optional:"true"`
	Gatherer     prometheus.Gatherer        `optional:"true"`
	Tracer       trace.TracerProvider       `optional:"true"`
}

type Server struct {
	cfg          config.Config
	log          *zap.Logger
	db           *gorm.DB
	productSvc   productdomain.Service
	categorySvc  categorydomain.Service
	orderSvc     orderdomain.Service
	dashboardSvc dashboarddomain.Service
	metrics      *observability.HTTPMetrics
	gatherer     prometheus.Gatherer
	tracer       trace.TracerProvider
}

func New(p Params) *Server {
	tracer := p.Tracer
	if tracer == nil {
		tracer = noop.NewTracerProvider()
	}
	return &Server{
		cfg:          p.Config,
		log:          p.Log.Named("http"),
		db:           p.DB,
		productSvc:   p.ProductSvc,
		categorySvc:  p.CategorySvc,
		orderSvc:     p.OrderSvc,
		dashboardSvc: p.DashboardSvc,
		metrics:      p.Metrics,
		gatherer:     p.Gatherer,
		tracer:       tracer,
	}
}

// Engine builds the gin router with middleware and every route registered.
func (s *Server) Engine() *gin.Engine {
	if !s.cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery(), RequestID(), Tracing(s.tracer), AccessLog(s.log))
	if s.metrics != nil {
		r.Use(Metrics(s.metrics))
	}

	r.GET("/healthz", s.Health)
	if s.cfg.Metrics.Enabled && s.gatherer != nil {
		r.GET(s.cfg.Metrics.Path, gin.WrapH(promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{})))
	}

	s.registerAdminRoutes(r.Group("/api/admin"))
	return r
}

func (s *Server) registerAdminRoutes(admin *gin.RouterGroup) {
	admin.GET("/dashboard", s.GetDashboard)

	admin.GET("/products", s.ListProducts)
	admin.POST("/products", s.CreateProduct)
	admin.GET("/products/categories", s.ListProductCategories)
	admin.GET("/products/:id", s.GetProduct)
	admin.PUT("/products/:id", s.UpdateProduct)
	admin.DELETE("/products/:id", s.DeleteProduct)

	admin.GET("/categories", s.ListCategories)
	admin.POST("/categories", s.CreateCategory)
	admin.GET("/categories/:id", s.GetCategory)
	admin.GET("/categories/:id/products", s.ListCategoryProducts)
	admin.PUT("/categories/:id", s.UpdateCategory)
	admin.DELETE("/categories/:id", s.DeleteCategory)

	admin.GET("/orders", s.ListOrders)
	admin.GET("/orders/:id", s.GetOrder)
	admin.POST("/orders/:id/status", s.UpdateOrderStatus)
	admin.POST("/orders/:id/payment-status", s.UpdatePaymentStatus)
	admin.DELETE("/orders/:id", s.DeleteOrder)
}

// @Summary      Health
// @Description  Reports whether the database is reachable
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      503  {object}  map[string]string
// @Router       /healthz [get]
func (s *Server) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
	defer cancel()

	if err := db.Ping(ctx, s.db); err != nil {
		s.log.Warn("health check failed", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// RunHTTP binds the listener on start and drains in-flight requests on stop.
func RunHTTP(lc fx.Lifecycle, s *Server) {
	srv := &http.Server{
		Addr:              s.cfg.HTTP.Addr,
		Handler:           s.Engine(),
		ReadHeaderTimeout: time.Second,
		ReadTimeout:       s.cfg.HTTP.ReadTimeout,
		WriteTimeout:      s.cfg.HTTP.WriteTimeout,
		MaxHeaderBytes:    1 << 20,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			ln, err := net.Listen("tcp", srv.Addr)
			if err != nil {
				return err
			}
			s.log.Info("server listening", zap.String("addr", ln.Addr().String()))
			go func() {
				if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
					s.log.Error("server stopped", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			timeout := s.cfg.HTTP.ShutdownTimeout
			if timeout <= 0 {
				timeout = 10 * time.Second
			}
			shutdownCtx, cancel := context.WithTimeout(ctx, timeout)
			defer cancel()

			s.log.Info("shutting down server", zap.Duration("timeout", timeout))
			return srv.Shutdown(shutdownCtx)
		},
	})
}
